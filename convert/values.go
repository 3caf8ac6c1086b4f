/*
values.go - Value aggregation and interpolation

PURPOSE:
  Convert a value-bearing range: the destination range comes from the
  range algorithm, and this file computes one value per destination
  period. Coarsening assigns every source period to the destination
  period containing its base boundary and reduces with begin/end/mean/
  sum. Refining repeats the coarse value across contained periods
  (const), or reads the source as a piecewise-linear function through
  its anchor boundaries (linear). Coarsening under linear interpolation
  reduces over a daily linear reconstruction of the source instead of
  the discrete samples, which is an approximation with tolerance, not an
  exact reduction.

MISSING VALUES:
  Positions outside the source range and NaN samples contribute NaN to
  reductions; SkipNaNs drops them instead. Holiday observations of a
  filtered business-daily source are dropped entirely, as if never
  observed. A destination period left with no contributions is NaN.

METHOD LEGALITY:
  Coarsening accepts begin, end, mean, sum (default mean); const fails.
  Refining accepts only const (the default); aggregations fail. Equal
  fineness (same class, different parameter) coarsens with one-to-one
  spans, so the default mean is the identity on each matched value.

SEE ALSO:
  - range.go: where the destination range and trimming come from
  - options.go: Method, Interpolation, Base and the toggles
*/
package convert

import (
	"fmt"
	"math"
	"sort"

	"github.com/warp/frequency-engine/moments"
)

// Values converts a range and its values to the destination frequency,
// returning the converted range and one value per destination period.
// values must hold exactly one value per source period.
func Values(to moments.Frequency, r moments.Range, values []float64, opts ...Options) (moments.Range, []float64, error) {
	opt := pick(opts)
	if err := opt.check(); err != nil {
		return moments.Range{}, nil, err
	}
	if len(values) != r.Len() {
		return moments.Range{}, nil, &InvalidArgumentError{
			Name:  "values",
			Value: fmt.Sprintf("%d values for %d periods", len(values), r.Len()),
			Legal: []string{"one value per source period"},
		}
	}
	from := r.Frequency()
	if from == to {
		return r, append([]float64(nil), values...), nil
	}
	if from.Class() == moments.Unit || to.Class() == moments.Unit {
		return moments.Range{}, nil, &NotImplementedError{From: from, To: to}
	}

	up := fineness(to) > fineness(from)
	method := opt.Method
	if up {
		if method == MethodDefault {
			method = MethodConst
		}
		if method != MethodConst {
			return moments.Range{}, nil, &InvalidArgumentError{Name: "method", Value: method.String(), Legal: []string{"const"}}
		}
	} else {
		if method == MethodDefault {
			method = MethodMean
		}
		if method == MethodConst {
			return moments.Range{}, nil, &InvalidArgumentError{Name: "method", Value: method.String(), Legal: []string{"begin", "end", "mean", "sum"}}
		}
	}

	st := opt.settle()
	dest, err := convertRange(to, r, opt, st)
	if err != nil {
		return moments.Range{}, nil, err
	}
	if r.IsEmpty() || dest.IsEmpty() {
		return dest, []float64{}, nil
	}

	var holiday func(moments.Date) bool
	if from.Class() == moments.BusinessDaily {
		holiday = st.holiday
	}
	skip := st.skipNaNs

	var out []float64
	switch {
	case up && opt.Interpolation == InterpLinear:
		out = upLinear(to, from, r, values, dest, opt.Base, holiday, skip)
	case up:
		out = upConst(from, r, values, dest, opt.Base, holiday)
	case opt.Interpolation == InterpLinear:
		out = downLinear(from, r, values, dest, method, opt.Base, holiday, skip)
	default:
		out = downDiscrete(from, r, values, dest, method, opt.Base, holiday, skip)
	}
	return dest, out, nil
}

// =============================================================================
// COARSENING
// =============================================================================

// downDiscrete reduces the discrete source samples assigned to each
// destination period.
func downDiscrete(from moments.Frequency, r moments.Range, values []float64, dest moments.Range, method Method, base Base, holiday func(moments.Date) bool, skip bool) []float64 {
	sample := sampler(from, r, values, holiday)
	out := make([]float64, 0, dest.Len())
	for _, s := range dest.Moments() {
		lo, hi := srcSpan(from, s, base)
		out = append(out, reduceSpan(method, lo, hi, sample, skip))
	}
	return out
}

// srcSpan returns the inclusive span of source ordinals whose base boundary
// falls inside the destination period s.
func srcSpan(from moments.Frequency, s moments.Moment, base Base) (lo, hi int64) {
	if from.IsYP() {
		first, last := s.MonthSpan()
		np := monthsPer(from)
		c := monthShiftOf(from)
		if base == BaseBegin {
			return ceilDiv(first-c, np), floorDiv(last-c, np)
		}
		return ceilDiv(first-np+1-c, np), floorDiv(last-np+1-c, np)
	}
	fd := s.FirstDate().DayNumber()
	ld := s.LastDate().DayNumber()
	switch from.Class() {
	case moments.Weekly:
		ed := int64(from.EndDay())
		if base == BaseBegin {
			return ceilDiv(fd-ed+13, 7), floorDiv(ld-ed+13, 7)
		}
		return ceilDiv(fd-ed+7, 7), floorDiv(ld-ed+7, 7)
	case moments.Daily:
		return fd, ld
	default: // BusinessDaily
		return moments.FromDate(moments.BD, s.FirstDate(), moments.BiasNext).Ordinal(),
			moments.FromDate(moments.BD, s.LastDate(), moments.BiasPrevious).Ordinal()
	}
}

// sampler returns the per-ordinal sample accessor: value plus whether the
// observation participates at all. Filtered holidays do not participate;
// positions outside the source range participate as NaN.
func sampler(from moments.Frequency, r moments.Range, values []float64, holiday func(moments.Date) bool) func(int64) (float64, bool) {
	firstOrd := r.First().Ordinal()
	lastOrd := r.Last().Ordinal()
	return func(ord int64) (float64, bool) {
		if holiday != nil && holiday(moments.New(from, ord).FirstDate()) {
			return 0, false
		}
		if ord < firstOrd || ord > lastOrd {
			return math.NaN(), true
		}
		return values[int(ord-firstOrd)], true
	}
}

// reduceSpan applies the aggregation method over the ordinal span.
func reduceSpan(method Method, lo, hi int64, sample func(int64) (float64, bool), skip bool) float64 {
	switch method {
	case MethodBegin:
		for ord := lo; ord <= hi; ord++ {
			v, in := sample(ord)
			if !in || (skip && math.IsNaN(v)) {
				continue
			}
			return v
		}
		return math.NaN()
	case MethodEnd:
		for ord := hi; ord >= lo; ord-- {
			v, in := sample(ord)
			if !in || (skip && math.IsNaN(v)) {
				continue
			}
			return v
		}
		return math.NaN()
	default: // MethodMean, MethodSum
		sum, n := 0.0, 0
		for ord := lo; ord <= hi; ord++ {
			v, in := sample(ord)
			if !in || (skip && math.IsNaN(v)) {
				continue
			}
			sum += v
			n++
		}
		if n == 0 {
			return math.NaN()
		}
		if method == MethodSum {
			return sum
		}
		return sum / float64(n)
	}
}

// downLinear reduces over a daily piecewise-linear reconstruction of the
// source instead of its discrete samples. Sum reads the values as per-period
// totals and reconstructs the daily rate; the other methods reconstruct the
// level.
func downLinear(from moments.Frequency, r moments.Range, values []float64, dest moments.Range, method Method, base Base, holiday func(moments.Date) bool, skip bool) []float64 {
	firstOrd := r.First().Ordinal()
	xs := make([]float64, 0, len(values))
	ys := make([]float64, 0, len(values))
	for i, v := range values {
		m := moments.New(from, firstOrd+int64(i))
		if holiday != nil && holiday(m.FirstDate()) {
			continue
		}
		if skip && math.IsNaN(v) {
			continue
		}
		fd := m.FirstDate().DayNumber()
		ld := m.LastDate().DayNumber()
		if method == MethodSum {
			v /= float64(ld - fd + 1)
		}
		xs = append(xs, anchorAt(float64(fd), float64(ld), base))
		ys = append(ys, v)
	}
	pw := piecewise{xs: xs, ys: ys}

	out := make([]float64, 0, dest.Len())
	for _, s := range dest.Moments() {
		fd := s.FirstDate().DayNumber()
		ld := s.LastDate().DayNumber()
		switch method {
		case MethodBegin:
			out = append(out, pw.at(float64(fd)))
		case MethodEnd:
			out = append(out, pw.at(float64(ld)))
		case MethodSum:
			total := 0.0
			for d := fd; d <= ld; d++ {
				total += pw.at(float64(d))
			}
			out = append(out, total)
		default: // MethodMean
			total := 0.0
			for d := fd; d <= ld; d++ {
				total += pw.at(float64(d))
			}
			out = append(out, total/float64(ld-fd+1))
		}
	}
	return out
}

// =============================================================================
// REFINING
// =============================================================================

// upConst repeats each coarse value across the finer periods it covers. A
// destination period whose base boundary has no source observation (outside
// the range, a weekend under a business-daily source, or a filtered
// holiday) gets NaN.
func upConst(from moments.Frequency, r moments.Range, values []float64, dest moments.Range, base Base, holiday func(moments.Date) bool) []float64 {
	sample := sampler(from, r, values, holiday)
	out := make([]float64, 0, dest.Len())
	for _, j := range dest.Moments() {
		ord, ok := sourceIndex(from, j, base, holiday)
		if !ok {
			out = append(out, math.NaN())
			continue
		}
		v, in := sample(ord)
		if !in {
			v = math.NaN()
		}
		out = append(out, v)
	}
	return out
}

// sourceIndex locates the source period containing the base boundary of the
// destination period j. ok is false when no source period exists for it.
func sourceIndex(from moments.Frequency, j moments.Moment, base Base, holiday func(moments.Date) bool) (int64, bool) {
	if from.IsYP() && j.Frequency().IsYP() {
		first, last := j.MonthSpan()
		mi := last
		if base == BaseBegin {
			mi = first
		}
		return moments.FromMonthIndex(from, mi).Ordinal(), true
	}
	d := boundaryDate(j, base)
	if from.Class() == moments.BusinessDaily {
		if d.IsWeekend() {
			return 0, false
		}
		if holiday != nil && holiday(d) {
			return 0, false
		}
		return moments.FromDate(moments.BD, d).Ordinal(), true
	}
	return moments.FromDate(from, d).Ordinal(), true
}

// upLinear interpolates linearly between successive coarse anchor values.
// Anchors sit at the destination-grid position of each source period's
// base boundary (or midpoint), and the edges extrapolate with the nearest
// segment's slope.
func upLinear(to, from moments.Frequency, r moments.Range, values []float64, dest moments.Range, base Base, holiday func(moments.Date) bool, skip bool) []float64 {
	firstOrd := r.First().Ordinal()
	xs := make([]float64, 0, len(values))
	ys := make([]float64, 0, len(values))
	for i, v := range values {
		m := moments.New(from, firstOrd+int64(i))
		if holiday != nil && holiday(m.FirstDate()) {
			continue
		}
		if skip && math.IsNaN(v) {
			continue
		}
		bm, _, _ := containing(to, m, BaseBegin, moments.BiasNext)
		em, _, _ := containing(to, m, BaseEnd, moments.BiasPrevious)
		xs = append(xs, anchorAt(float64(bm.Ordinal()), float64(em.Ordinal()), base))
		ys = append(ys, v)
	}
	pw := piecewise{xs: xs, ys: ys}

	out := make([]float64, 0, dest.Len())
	for _, j := range dest.Moments() {
		out = append(out, pw.at(float64(j.Ordinal())))
	}
	return out
}

// anchorAt places an anchor on the begin, middle or end of a span.
func anchorAt(begin, end float64, base Base) float64 {
	switch base {
	case BaseBegin:
		return begin
	case BaseMiddle:
		return (begin + end) / 2
	}
	return end
}

// =============================================================================
// PIECEWISE-LINEAR EVALUATION
// =============================================================================

// piecewise is a piecewise-linear function through strictly increasing
// anchor positions. Evaluation outside the anchors extrapolates along the
// nearest segment.
type piecewise struct {
	xs, ys []float64
}

func (p piecewise) at(x float64) float64 {
	n := len(p.xs)
	if n == 0 {
		return math.NaN()
	}
	if n == 1 {
		return p.ys[0]
	}
	seg := sort.SearchFloat64s(p.xs, x) - 1
	if seg < 0 {
		seg = 0
	}
	if seg > n-2 {
		seg = n - 2
	}
	dx := p.xs[seg+1] - p.xs[seg]
	if dx == 0 {
		return p.ys[seg]
	}
	t := (x - p.xs[seg]) / dx
	return p.ys[seg] + t*(p.ys[seg+1]-p.ys[seg])
}
