/*
range.go - Contiguous moment ranges and strided sequences

PURPOSE:
  Range is the inclusive span [first, last] of moments at one frequency,
  step always 1. An empty range (last before first) is a legitimate value:
  conversions preserve it rather than erroring, so callers can compose
  range math without guarding every step. Stride is the separate
  secondary construct for non-unit steps built from a Duration; it exists
  for custom sampling only and never feeds conversion.

SEE ALSO:
  - moment.go: the element type
  - convert package: range retargeting between frequencies
*/
package moments

// Range is an immutable contiguous span of moments. Both bounds carry the
// same frequency; NewRange enforces that.
type Range struct {
	first Moment
	last  Moment
}

// NewRange builds the inclusive range [first, last]. A last before first is
// allowed and denotes the empty range. Panics with a MixedFrequencyError
// when the bounds disagree on frequency.
func NewRange(first, last Moment) Range {
	mustSameFreq("range", first.freq, last.freq)
	return Range{first: first, last: last}
}

// SingletonRange is the one-moment range [m, m].
func SingletonRange(m Moment) Range {
	return Range{first: m, last: m}
}

// RangeFrom spans n consecutive moments starting at first. n <= 0 gives an
// empty range anchored at first.
func RangeFrom(first Moment, n int) Range {
	return Range{first: first, last: first.Shift(int64(n) - 1)}
}

// First returns the lower bound.
func (r Range) First() Moment { return r.first }

// Last returns the upper bound.
func (r Range) Last() Moment { return r.last }

// Frequency returns the shared frequency of the bounds.
func (r Range) Frequency() Frequency { return r.first.freq }

// IsEmpty reports whether the range holds no moments.
func (r Range) IsEmpty() bool { return r.last.ord < r.first.ord }

// Len returns the number of moments as a plain int for ordinary indexing,
// 0 when empty.
func (r Range) Len() int {
	if r.IsEmpty() {
		return 0
	}
	return int(r.last.ord - r.first.ord + 1)
}

// Contains reports membership. Panics on a mixed-frequency probe.
func (r Range) Contains(m Moment) bool {
	mustSameFreq("contains", r.first.freq, m.freq)
	return r.first.ord <= m.ord && m.ord <= r.last.ord
}

// Union spans both ranges: [min(first, first'), max(last, last')]. Panics on
// mixed frequencies.
func (r Range) Union(other Range) Range {
	mustSameFreq("union", r.first.freq, other.first.freq)
	u := r
	if other.first.ord < u.first.ord {
		u.first = other.first
	}
	if other.last.ord > u.last.ord {
		u.last = other.last
	}
	return u
}

// Intersect returns the overlap of both ranges, possibly empty. Panics on
// mixed frequencies.
func (r Range) Intersect(other Range) Range {
	mustSameFreq("intersect", r.first.freq, other.first.freq)
	v := r
	if other.first.ord > v.first.ord {
		v.first = other.first
	}
	if other.last.ord < v.last.ord {
		v.last = other.last
	}
	return v
}

// At returns the i-th moment, 0-based. Out-of-range indexes panic like a
// slice access would.
func (r Range) At(i int) Moment {
	if i < 0 || i >= r.Len() {
		panic(&IllegalOperationError{Op: "range index", Left: r.String()})
	}
	return r.first.Shift(int64(i))
}

// Moments materializes the range as a slice, empty for empty ranges.
func (r Range) Moments() []Moment {
	out := make([]Moment, r.Len())
	for i := range out {
		out[i] = r.first.Shift(int64(i))
	}
	return out
}

// String renders "first:last", e.g. "2020Q1:2021Q4" or "2022M8:2022M7" for
// an empty month range.
func (r Range) String() string {
	return r.first.String() + ":" + r.last.String()
}

// =============================================================================
// STRIDE
// =============================================================================

// Stride is a fixed-count arithmetic sequence of moments stepped by a
// Duration. Unlike Range it may skip periods; conversion never consumes it.
type Stride struct {
	start Moment
	step  Duration
	count int
}

// NewStride builds the sequence start, start+step, ... with count elements.
// Panics when the step's frequency differs from the start's; a negative
// count is treated as zero.
func NewStride(start Moment, step Duration, count int) Stride {
	mustSameFreq("stride", start.freq, step.freq)
	if count < 0 {
		count = 0
	}
	return Stride{start: start, step: step, count: count}
}

// Len returns the number of elements.
func (s Stride) Len() int { return s.count }

// At returns the i-th element, 0-based.
func (s Stride) At(i int) Moment {
	if i < 0 || i >= s.count {
		panic(&IllegalOperationError{Op: "stride index", Left: s.start.String()})
	}
	return s.start.Shift(int64(i) * s.step.n)
}

// Moments materializes the sequence.
func (s Stride) Moments() []Moment {
	out := make([]Moment, s.count)
	for i := range out {
		out[i] = s.start.Shift(int64(i) * s.step.n)
	}
	return out
}
