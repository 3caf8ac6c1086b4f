/*
range.go - Range conversion

PURPOSE:
  Convert a contiguous range to another frequency. The leading edge is
  anchored by the destination period containing the first period's start
  boundary, the trailing edge by the one containing the last period's end
  boundary. Each edge period then survives only if the source actually
  covers all of it, which is decided by probing one source period beyond
  the edge: if the probe lands in the same destination period, coverage
  is partial there. The probe works identically for month-aligned and
  calendar pairs, where variable month lengths rule out closed-form
  division.

TRIM:
  The Trim option names the edge to keep intact. TrimBoth drops any
  partially covered edge period, TrimBegin keeps the leading one,
  TrimEnd keeps the trailing one.

HOLIDAYS:
  Business-daily sources under an active holiday filter align on the
  holiday-free observations: edge anchoring and probing both step over
  holidays.

SEE ALSO:
  - moment.go: single-moment conversion
  - values.go: the value policies applied over a converted range
*/
package convert

import "github.com/warp/frequency-engine/moments"

// Range converts r to the destination frequency under the Trim policy.
// Converting to the exact source frequency returns r unchanged. An empty
// input yields an empty output anchored at the destination period of the
// input's first bound; emptiness is preserved, never an error.
func Range(to moments.Frequency, r moments.Range, opts ...Options) (moments.Range, error) {
	opt := pick(opts)
	if err := opt.check(); err != nil {
		return moments.Range{}, err
	}
	return convertRange(to, r, opt, opt.settle())
}

// convertRange is Range after validation, with the store-backed knobs
// already settled so Values shares a single resolution with it.
func convertRange(to moments.Frequency, r moments.Range, opt Options, st settled) (moments.Range, error) {
	from := r.Frequency()
	if from == to {
		return r, nil
	}
	if from.Class() == moments.Unit || to.Class() == moments.Unit {
		return moments.Range{}, &NotImplementedError{From: from, To: to}
	}

	var holiday func(moments.Date) bool
	if from.Class() == moments.BusinessDaily {
		holiday = st.holiday
	}

	if r.IsEmpty() {
		return emptyAt(to, r.First()), nil
	}

	first, last := r.First(), r.Last()
	if holiday != nil {
		for !first.After(last) && holiday(first.FirstDate()) {
			first = first.Shift(1)
		}
		for !last.Before(first) && holiday(last.FirstDate()) {
			last = last.Shift(-1)
		}
		if first.After(last) {
			return emptyAt(to, r.First()), nil
		}
	}

	fi, _, _ := containing(to, first, BaseBegin, moments.BiasNext)
	li, _, _ := containing(to, last, BaseEnd, moments.BiasPrevious)

	prev := stepPast(first, -1, holiday)
	next := stepPast(last, +1, holiday)
	before, _, _ := containing(to, prev, BaseEnd, moments.BiasPrevious)
	after, _, _ := containing(to, next, BaseBegin, moments.BiasNext)

	if before == fi && (opt.Trim == TrimBoth || opt.Trim == TrimEnd) {
		fi = fi.Shift(1)
	}
	if after == li && (opt.Trim == TrimBoth || opt.Trim == TrimBegin) {
		li = li.Shift(-1)
	}
	return moments.NewRange(fi, li), nil
}

// emptyAt builds the canonical empty destination range anchored at the
// destination period of m.
func emptyAt(to moments.Frequency, m moments.Moment) moments.Range {
	fi, _, _ := containing(to, m, BaseBegin, moments.BiasNext)
	return moments.NewRange(fi, fi.Shift(-1))
}

// stepPast returns the source period adjacent to m in the given direction,
// skipping holidays when a filter is active.
func stepPast(m moments.Moment, dir int64, holiday func(moments.Date) bool) moments.Moment {
	p := m.Shift(dir)
	if holiday != nil {
		for holiday(p.FirstDate()) {
			p = p.Shift(dir)
		}
	}
	return p
}
