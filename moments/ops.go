/*
ops.go - Error-returning operand layer

PURPOSE:
  The methods on Moment and Duration panic on contract violations, which
  is the right behavior for code that controls both operands. Layers fed
  by untrusted input (the HTTP API, request factories) need the same
  semantics as error values instead. This file provides that: Add, Sub,
  Compare and Equal over a closed operand sum of Moment, Duration and
  Int, returning exactly the errors the method layer would panic with.

RULES (same table as moment.go):
  moment + moment        -> IllegalOperationError
  moment +/- duration    -> moment        (same frequency only)
  moment - moment        -> duration      (same frequency only)
  duration +/- duration  -> duration      (same frequency only)
  duration - moment      -> IllegalOperationError
  int with anything      -> same-frequency period offset / raw ordinal
  compare moment/duration-> IllegalComparisonError even when frequencies
                            match; there is no order between a point and
                            a distance
  Equal                  -> never errors; mismatched kinds or tags are
                            simply unequal

SEE ALSO:
  - moment.go: the panicking method layer
  - api package: the consumer of this layer
*/
package moments

import "strconv"

// Operand is the closed set of values the dynamic layer operates on:
// Moment, Duration, or Int.
type Operand interface {
	isOperand()
	String() string
}

// Int is a bare integer operand, interpreted against a moment or duration
// as a same-frequency period offset or raw ordinal.
type Int int64

func (Moment) isOperand()   {}
func (Duration) isOperand() {}
func (Int) isOperand()      {}

func (i Int) String() string { return "integer " + strconv.FormatInt(int64(i), 10) }

func describe(op Operand) string {
	switch v := op.(type) {
	case Moment:
		return "moment " + v.String()
	case Duration:
		return "duration " + v.String()
	default:
		return op.String()
	}
}

// Add combines two operands, following the rules table above.
func Add(a, b Operand) (Operand, error) {
	switch x := a.(type) {
	case Moment:
		switch y := b.(type) {
		case Moment:
			return nil, &IllegalOperationError{Op: "add", Left: describe(a), Right: describe(b)}
		case Duration:
			if x.freq != y.freq {
				return nil, &MixedFrequencyError{Op: "add", Left: x.freq, Right: y.freq}
			}
			return x.Add(y), nil
		case Int:
			return x.Shift(int64(y)), nil
		}
	case Duration:
		switch y := b.(type) {
		case Moment:
			return Add(b, a)
		case Duration:
			if x.freq != y.freq {
				return nil, &MixedFrequencyError{Op: "add", Left: x.freq, Right: y.freq}
			}
			return x.Add(y), nil
		case Int:
			return x.Shift(int64(y)), nil
		}
	case Int:
		switch y := b.(type) {
		case Int:
			return x + y, nil
		default:
			return Add(b, a)
		}
	}
	return nil, &IllegalOperationError{Op: "add", Left: describe(a), Right: describe(b)}
}

// Sub subtracts b from a, following the rules table above.
func Sub(a, b Operand) (Operand, error) {
	switch x := a.(type) {
	case Moment:
		switch y := b.(type) {
		case Moment:
			if x.freq != y.freq {
				return nil, &MixedFrequencyError{Op: "subtract", Left: x.freq, Right: y.freq}
			}
			return x.Sub(y), nil
		case Duration:
			if x.freq != y.freq {
				return nil, &MixedFrequencyError{Op: "subtract", Left: x.freq, Right: y.freq}
			}
			return x.Add(y.Neg()), nil
		case Int:
			return x.Shift(-int64(y)), nil
		}
	case Duration:
		switch y := b.(type) {
		case Moment:
			return nil, &IllegalOperationError{Op: "subtract", Left: describe(a), Right: describe(b)}
		case Duration:
			if x.freq != y.freq {
				return nil, &MixedFrequencyError{Op: "subtract", Left: x.freq, Right: y.freq}
			}
			return x.Sub(y), nil
		case Int:
			return x.Shift(-int64(y)), nil
		}
	case Int:
		switch y := b.(type) {
		case Moment:
			return nil, &IllegalOperationError{Op: "subtract", Left: describe(a), Right: describe(b)}
		case Duration:
			return Duration{freq: y.freq, n: int64(x) - y.n}, nil
		case Int:
			return x - y, nil
		}
	}
	return nil, &IllegalOperationError{Op: "subtract", Left: describe(a), Right: describe(b)}
}

// Compare orders a against b, returning -1, 0 or +1.
func Compare(a, b Operand) (int, error) {
	switch x := a.(type) {
	case Moment:
		switch y := b.(type) {
		case Moment:
			if x.freq != y.freq {
				return 0, &MixedFrequencyError{Op: "compare", Left: x.freq, Right: y.freq}
			}
			return cmpInt(x.ord, y.ord), nil
		case Duration:
			return 0, &IllegalComparisonError{Left: describe(a), Right: describe(b)}
		case Int:
			return cmpInt(x.ord, int64(y)), nil
		}
	case Duration:
		switch y := b.(type) {
		case Moment:
			return 0, &IllegalComparisonError{Left: describe(a), Right: describe(b)}
		case Duration:
			if x.freq != y.freq {
				return 0, &MixedFrequencyError{Op: "compare", Left: x.freq, Right: y.freq}
			}
			return cmpInt(x.n, y.n), nil
		case Int:
			return cmpInt(x.n, int64(y)), nil
		}
	case Int:
		switch y := b.(type) {
		case Moment:
			return cmpInt(int64(x), y.ord), nil
		case Duration:
			return cmpInt(int64(x), y.n), nil
		case Int:
			return cmpInt(int64(x), int64(y)), nil
		}
	}
	return 0, &IllegalComparisonError{Left: describe(a), Right: describe(b)}
}

// Equal reports operand equality. It never errors: a moment never equals a
// duration, differing frequency parameterizations are unequal, and a bare
// integer matches the raw ordinal or period count.
func Equal(a, b Operand) bool {
	switch x := a.(type) {
	case Moment:
		switch y := b.(type) {
		case Moment:
			return x == y
		case Int:
			return x.ord == int64(y)
		}
	case Duration:
		switch y := b.(type) {
		case Duration:
			return x == y
		case Int:
			return x.n == int64(y)
		}
	case Int:
		if y, ok := b.(Int); ok {
			return x == y
		}
		return Equal(b, a)
	}
	return false
}
