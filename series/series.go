/*
series.go - Value-bearing series

PURPOSE:
  A Series binds a contiguous run of float64 observations to the moment
  grid: the first moment fixes the alignment and position i holds the
  value of first+i. NaN is the missing value. Retargeting a series to
  another frequency goes through the conversion engine, which computes
  the destination range and one value per destination period.

MUTABILITY:
  Set writes through the receiver and extends the span with NaN padding
  when the moment lies outside it, so a series can be built up
  observation by observation. Reads never mutate, and At outside the
  span is simply missing.

SEE ALSO:
  - convert: the engine Convert delegates to
*/
package series

import (
	"fmt"
	"math"

	"github.com/warp/frequency-engine/convert"
	"github.com/warp/frequency-engine/moments"
)

// Series is a contiguous run of observations at one frequency. Construct
// with New or Filled; the zero value is not useful.
type Series struct {
	first  moments.Moment
	values []float64
}

// New builds a series holding values starting at first. The slice is
// copied; an empty or nil slice gives an empty series anchored at first.
func New(first moments.Moment, values []float64) *Series {
	return &Series{first: first, values: append([]float64(nil), values...)}
}

// Filled builds a series covering r with every observation set to v.
func Filled(r moments.Range, v float64) *Series {
	vals := make([]float64, r.Len())
	for i := range vals {
		vals[i] = v
	}
	return &Series{first: r.First(), values: vals}
}

// First returns the moment of the first observation.
func (s *Series) First() moments.Moment { return s.first }

// Frequency returns the series frequency.
func (s *Series) Frequency() moments.Frequency { return s.first.Frequency() }

// Len returns the number of observations.
func (s *Series) Len() int { return len(s.values) }

// Range returns the span of the observations, empty when there are none.
func (s *Series) Range() moments.Range { return moments.RangeFrom(s.first, len(s.values)) }

// Values returns a copy of the observations.
func (s *Series) Values() []float64 { return append([]float64(nil), s.values...) }

// At returns the observation at m, NaN when m lies outside the span.
// Panics with a MixedFrequencyError on a probe at another frequency.
func (s *Series) At(m moments.Moment) float64 {
	i := s.index("series at", m)
	if i < 0 || i >= len(s.values) {
		return math.NaN()
	}
	return s.values[i]
}

// Set writes the observation at m, extending the span with NaN padding
// when m lies outside it. Panics with a MixedFrequencyError on a write
// at another frequency.
func (s *Series) Set(m moments.Moment, v float64) {
	i := s.index("series set", m)
	switch {
	case len(s.values) == 0:
		s.first = m
		s.values = []float64{v}
		return
	case i < 0:
		pad := make([]float64, -i, -i+len(s.values))
		fillNaN(pad)
		s.values = append(pad, s.values...)
		s.first = m
		i = 0
	case i >= len(s.values):
		grown := make([]float64, i+1)
		copy(grown, s.values)
		fillNaN(grown[len(s.values):])
		s.values = grown
	}
	s.values[i] = v
}

// Window returns the sub-series over the overlap of r and the span,
// possibly empty. Panics on a mixed-frequency window.
func (s *Series) Window(r moments.Range) *Series {
	overlap := r.Intersect(s.Range())
	if overlap.IsEmpty() {
		return &Series{first: overlap.First()}
	}
	lo := int(overlap.First().Ordinal() - s.first.Ordinal())
	return New(overlap.First(), s.values[lo:lo+overlap.Len()])
}

// Convert retargets the series to another frequency. The observations
// follow the aggregation or interpolation policy in opts; the result
// covers the destination periods the source fully covers.
func (s *Series) Convert(to moments.Frequency, opts ...convert.Options) (*Series, error) {
	dest, vals, err := convert.Values(to, s.Range(), s.values, opts...)
	if err != nil {
		return nil, err
	}
	return &Series{first: dest.First(), values: vals}, nil
}

// String renders the span followed by the observations.
func (s *Series) String() string {
	return fmt.Sprintf("%s %v", s.Range(), s.values)
}

// index translates m to a position relative to the first observation,
// enforcing the same-frequency contract.
func (s *Series) index(op string, m moments.Moment) int {
	if m.Frequency() != s.first.Frequency() {
		panic(&moments.MixedFrequencyError{Op: op, Left: s.first.Frequency(), Right: m.Frequency()})
	}
	return int(m.Ordinal() - s.first.Ordinal())
}

func fillNaN(vs []float64) {
	for i := range vs {
		vs[i] = math.NaN()
	}
}
