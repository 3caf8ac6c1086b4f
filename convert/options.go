/*
options.go - Conversion options

PURPOSE:
  The knobs of the conversion engine, each a small enum whose zero value
  is the engine default, so the zero Options struct means "convert the
  usual way". Options are explicit values threaded into every call; the
  engine keeps no state of its own. The toggles fall back to the process
  options store, resolved once per call and never cached across calls,
  with explicit per-call settings winning.

KNOBS:
  Base           which boundary of a period represents it (end, begin,
                 or middle for linear interpolation anchors)
  Rounding       how a boundary that misses the destination grid lands
                 on it (previous, current, next; default is previous for
                 BusinessDaily destinations, current otherwise)
  Trim           which partially covered edge periods of a converted
                 range are dropped
  Method         the per-destination-period value computation (begin,
                 end, mean, sum when coarsening; const when refining)
  Interpolation  none for discrete values, linear for a piecewise-linear
                 reading of the source
  SkipNaNs       drop missing values from reductions instead of
                 propagating them
  SkipHolidays   drop holiday observations from business-daily sources;
                 requires a Holidays predicate

SEE ALSO:
  - moment.go, range.go, values.go: the consumers
  - options package: the process-wide default store
*/
package convert

import (
	"fmt"

	"github.com/warp/frequency-engine/calendars"
	"github.com/warp/frequency-engine/moments"
	"github.com/warp/frequency-engine/options"
)

// =============================================================================
// BASE
// =============================================================================

// Base selects which boundary of a period represents it during conversion.
type Base uint8

const (
	// BaseEnd represents a period by its last day. The default.
	BaseEnd Base = iota
	// BaseBegin represents a period by its first day.
	BaseBegin
	// BaseMiddle represents a period by its midpoint. Only meaningful as a
	// linear interpolation anchor.
	BaseMiddle
)

func (b Base) String() string {
	switch b {
	case BaseEnd:
		return "end"
	case BaseBegin:
		return "begin"
	case BaseMiddle:
		return "middle"
	}
	return fmt.Sprintf("Base(%d)", uint8(b))
}

// ParseBase reads "end", "begin" or "middle".
func ParseBase(s string) (Base, error) {
	switch s {
	case "end", "":
		return BaseEnd, nil
	case "begin":
		return BaseBegin, nil
	case "middle":
		return BaseMiddle, nil
	}
	return 0, &InvalidArgumentError{Name: "base", Value: s, Legal: []string{"end", "begin", "middle"}}
}

// =============================================================================
// ROUNDING
// =============================================================================

// Rounding is the policy for landing a boundary on the destination grid
// when it does not hit a grid point exactly.
type Rounding uint8

const (
	// RoundDefault resolves to RoundPrevious for BusinessDaily destinations
	// and RoundCurrent otherwise.
	RoundDefault Rounding = iota
	// RoundPrevious steps back to the latest destination period completed
	// on or before the boundary.
	RoundPrevious
	// RoundCurrent takes the destination period containing the boundary,
	// and refuses weekend boundaries for BusinessDaily destinations.
	RoundCurrent
	// RoundNext steps forward to the earliest destination period starting
	// on or after the boundary.
	RoundNext
)

func (r Rounding) String() string {
	switch r {
	case RoundDefault:
		return "default"
	case RoundPrevious:
		return "previous"
	case RoundCurrent:
		return "current"
	case RoundNext:
		return "next"
	}
	return fmt.Sprintf("Rounding(%d)", uint8(r))
}

// ParseRounding reads "previous", "current" or "next".
func ParseRounding(s string) (Rounding, error) {
	switch s {
	case "":
		return RoundDefault, nil
	case "previous":
		return RoundPrevious, nil
	case "current":
		return RoundCurrent, nil
	case "next":
		return RoundNext, nil
	}
	return 0, &InvalidArgumentError{Name: "rounding", Value: s, Legal: []string{"previous", "current", "next"}}
}

// resolve replaces RoundDefault with the concrete policy for a destination.
func (r Rounding) resolve(to moments.Frequency) Rounding {
	if r != RoundDefault {
		return r
	}
	if to.Class() == moments.BusinessDaily {
		return RoundPrevious
	}
	return RoundCurrent
}

// =============================================================================
// TRIM
// =============================================================================

// Trim names the edge a range conversion must keep intact: TrimBegin never
// drops the leading destination period, TrimEnd never drops the trailing
// one, TrimBoth protects neither.
type Trim uint8

const (
	// TrimBoth drops partially covered periods at both edges. The default.
	TrimBoth Trim = iota
	// TrimBegin keeps a partially covered leading period, dropping only a
	// partial trailing one.
	TrimBegin
	// TrimEnd keeps a partially covered trailing period, dropping only a
	// partial leading one.
	TrimEnd
)

func (t Trim) String() string {
	switch t {
	case TrimBoth:
		return "both"
	case TrimBegin:
		return "begin"
	case TrimEnd:
		return "end"
	}
	return fmt.Sprintf("Trim(%d)", uint8(t))
}

// ParseTrim reads "both", "begin" or "end".
func ParseTrim(s string) (Trim, error) {
	switch s {
	case "both", "":
		return TrimBoth, nil
	case "begin":
		return TrimBegin, nil
	case "end":
		return TrimEnd, nil
	}
	return 0, &InvalidArgumentError{Name: "trim", Value: s, Legal: []string{"both", "begin", "end"}}
}

// =============================================================================
// METHOD
// =============================================================================

// Method is the per-destination-period value computation policy.
type Method uint8

const (
	// MethodDefault resolves to MethodMean when coarsening and MethodConst
	// when refining.
	MethodDefault Method = iota
	// MethodBegin takes the first value assigned to the destination period.
	MethodBegin
	// MethodEnd takes the last value assigned to the destination period.
	MethodEnd
	// MethodMean averages the values assigned to the destination period.
	MethodMean
	// MethodSum totals the values assigned to the destination period.
	MethodSum
	// MethodConst repeats the coarse value across the finer periods it
	// covers.
	MethodConst
)

func (m Method) String() string {
	switch m {
	case MethodDefault:
		return "default"
	case MethodBegin:
		return "begin"
	case MethodEnd:
		return "end"
	case MethodMean:
		return "mean"
	case MethodSum:
		return "sum"
	case MethodConst:
		return "const"
	}
	return fmt.Sprintf("Method(%d)", uint8(m))
}

// ParseMethod reads "begin", "end", "mean", "sum" or "const".
func ParseMethod(s string) (Method, error) {
	switch s {
	case "":
		return MethodDefault, nil
	case "begin":
		return MethodBegin, nil
	case "end":
		return MethodEnd, nil
	case "mean":
		return MethodMean, nil
	case "sum":
		return MethodSum, nil
	case "const":
		return MethodConst, nil
	}
	return 0, &InvalidArgumentError{Name: "method", Value: s, Legal: []string{"begin", "end", "mean", "sum", "const"}}
}

// =============================================================================
// INTERPOLATION
// =============================================================================

// Interpolation selects between discrete sample points and a
// piecewise-linear reading of the source values.
type Interpolation uint8

const (
	// InterpNone treats values as discrete samples. The default.
	InterpNone Interpolation = iota
	// InterpLinear reads the source as a piecewise-linear function anchored
	// at period boundaries or midpoints per Base.
	InterpLinear
)

func (i Interpolation) String() string {
	switch i {
	case InterpNone:
		return "none"
	case InterpLinear:
		return "linear"
	}
	return fmt.Sprintf("Interpolation(%d)", uint8(i))
}

// ParseInterpolation reads "none" or "linear".
func ParseInterpolation(s string) (Interpolation, error) {
	switch s {
	case "none", "":
		return InterpNone, nil
	case "linear":
		return InterpLinear, nil
	}
	return 0, &InvalidArgumentError{Name: "interpolation", Value: s, Legal: []string{"none", "linear"}}
}

// =============================================================================
// TOGGLE
// =============================================================================

// Toggle is a three-state switch: follow the process default, or force on
// or off for this call.
type Toggle uint8

const (
	// ToggleDefault follows the process-wide default.
	ToggleDefault Toggle = iota
	// ToggleOn forces the behavior on for this call.
	ToggleOn
	// ToggleOff forces the behavior off for this call.
	ToggleOff
)

func (t Toggle) String() string {
	switch t {
	case ToggleDefault:
		return "default"
	case ToggleOn:
		return "on"
	case ToggleOff:
		return "off"
	}
	return fmt.Sprintf("Toggle(%d)", uint8(t))
}

// enabled resolves the toggle against a fallback default.
func (t Toggle) enabled(dflt bool) bool {
	switch t {
	case ToggleOn:
		return true
	case ToggleOff:
		return false
	}
	return dflt
}

// =============================================================================
// OPTIONS
// =============================================================================

// Options bundles the conversion knobs. The zero value is the engine
// default for every knob. At most one Options value is passed per call.
type Options struct {
	Base          Base
	Rounding      Rounding
	Trim          Trim
	Method        Method
	Interpolation Interpolation

	// SkipNaNs drops missing values from reductions. ToggleDefault follows
	// the process options store.
	SkipNaNs Toggle

	// SkipHolidays filters holiday observations out of business-daily
	// sources. ToggleDefault follows the process options store.
	SkipHolidays Toggle

	// Holidays reports whether a date is a holiday. Consulted only for
	// business-daily sources when SkipHolidays is on. Nil falls back to
	// the registered calendar named by the process options store.
	Holidays func(moments.Date) bool
}

// pick extracts the single optional Options value.
func pick(opts []Options) Options {
	if len(opts) > 0 {
		return opts[0]
	}
	return Options{}
}

// check validates that every enum field holds a declared constant.
func (o Options) check() error {
	if o.Base > BaseMiddle {
		return &InvalidArgumentError{Name: "base", Value: o.Base.String(), Legal: []string{"end", "begin", "middle"}}
	}
	if o.Rounding > RoundNext {
		return &InvalidArgumentError{Name: "rounding", Value: o.Rounding.String(), Legal: []string{"previous", "current", "next"}}
	}
	if o.Trim > TrimEnd {
		return &InvalidArgumentError{Name: "trim", Value: o.Trim.String(), Legal: []string{"both", "begin", "end"}}
	}
	if o.Method > MethodConst {
		return &InvalidArgumentError{Name: "method", Value: o.Method.String(), Legal: []string{"begin", "end", "mean", "sum", "const"}}
	}
	if o.Interpolation > InterpLinear {
		return &InvalidArgumentError{Name: "interpolation", Value: o.Interpolation.String(), Legal: []string{"none", "linear"}}
	}
	if o.SkipNaNs > ToggleOff || o.SkipHolidays > ToggleOff {
		return &InvalidArgumentError{Name: "toggle", Value: "out of range", Legal: []string{"default", "on", "off"}}
	}
	if o.Base == BaseMiddle && o.Interpolation != InterpLinear {
		return &InvalidArgumentError{Name: "base", Value: o.Base.String(), Legal: []string{"end", "begin"}}
	}
	return nil
}

// settled is the per-call resolution of the store-backed knobs.
type settled struct {
	skipNaNs bool
	holiday  func(moments.Date) bool
}

// settle resolves the store-backed knobs once for a call. Explicit
// fields win; the process store fills what the call leaves at default,
// and its registered calendar supplies the holiday predicate when the
// call gives none. holiday is nil whenever filtering is off.
func (o Options) settle() settled {
	snap := options.Default().Snapshot()
	s := settled{skipNaNs: o.SkipNaNs.enabled(snap.SkipNaNs)}
	if !o.SkipHolidays.enabled(snap.SkipHolidays) {
		return s
	}
	s.holiday = o.Holidays
	if s.holiday == nil {
		if cal, ok := calendars.Get(snap.Calendar); ok {
			s.holiday = cal.IsHoliday
		}
	}
	return s
}
