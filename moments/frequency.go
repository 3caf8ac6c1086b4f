/*
frequency.go - Frequency tags

PURPOSE:
  A Frequency identifies how the integer ordinal of a Moment or Duration
  maps onto the calendar. It is a small comparable value: a class plus an
  optional parameter (fiscal end month for Yearly/Quarterly, ISO end day
  for Weekly). Two tags are interchangeable exactly when == says so; every
  arithmetic and conversion rule in this module keys off that equality.

CLASSES:
  Unit           dimensionless ordinal, no calendar meaning
  Yearly         1 period/year, fiscal year ends in EndMonth (default 12)
  Quarterly      4 periods/year, EndMonth names the mod-3 family (default 3)
  Monthly        12 periods/year
  Weekly         1 period/week, week ends on ISO day EndDay (default 7=Sunday)
  Daily          1 period/calendar day
  BusinessDaily  1 period/weekday; weekends are not part of the ordinal
                 sequence

ORDINAL ANCHORING:
  Year-period (YP) classes:  ordinal = periodsPerYear*year + (period-1),
  shifted by the fiscal offset. Daily: ordinal = day number with
  0001-01-01 = 1. BusinessDaily: ordinal 1 = Monday 0001-01-01, five
  ordinals per calendar week. Weekly{ed}: week w covers day numbers
  [7w+ed-13, 7w+ed-7].

SEE ALSO:
  - moment.go: ordinal arithmetic and date anchoring
  - parse.go: text forms ("Quarterly{1}", "W", ...)
*/
package moments

import "fmt"

// Class enumerates the frequency families.
type Class uint8

const (
	Unit Class = iota
	Yearly
	Quarterly
	Monthly
	Weekly
	Daily
	BusinessDaily
)

func (c Class) String() string {
	switch c {
	case Unit:
		return "Unit"
	case Yearly:
		return "Yearly"
	case Quarterly:
		return "Quarterly"
	case Monthly:
		return "Monthly"
	case Weekly:
		return "Weekly"
	case Daily:
		return "Daily"
	case BusinessDaily:
		return "BusinessDaily"
	default:
		return fmt.Sprintf("Class(%d)", uint8(c))
	}
}

// Frequency is an immutable frequency tag. The zero value is Unit.
type Frequency struct {
	class Class
	param uint8 // end month 1-12 (Yearly), 1-3 (Quarterly), end day 1-7 (Weekly)
}

// Default-parameter tags. These cover the common calendars: fiscal years
// ending December, quarters ending in the Mar/Jun/Sep/Dec family, weeks
// ending Sunday.
var (
	U  = Frequency{class: Unit}
	Y  = Frequency{class: Yearly, param: 12}
	Q  = Frequency{class: Quarterly, param: 3}
	M  = Frequency{class: Monthly}
	W  = Frequency{class: Weekly, param: 7}
	D  = Frequency{class: Daily}
	BD = Frequency{class: BusinessDaily}
)

// YearlyEnding returns the yearly frequency whose fiscal year ends in the
// given month. The month is normalized into 1..12.
func YearlyEnding(month int) Frequency {
	return Frequency{class: Yearly, param: uint8(normCycle(month, 12))}
}

// QuarterlyEnding returns the quarterly frequency whose fourth period ends in
// the given month. Months twelve apart or three apart produce the same tag:
// the parameter is stored as its mod-3 representative in 1..3, so e.g.
// QuarterlyEnding(10) == QuarterlyEnding(1).
func QuarterlyEnding(month int) Frequency {
	return Frequency{class: Quarterly, param: uint8(normCycle(month, 3))}
}

// WeeklyEnding returns the weekly frequency whose week ends on the given ISO
// weekday (1=Monday .. 7=Sunday). The day is normalized into 1..7.
func WeeklyEnding(day int) Frequency {
	return Frequency{class: Weekly, param: uint8(normCycle(day, 7))}
}

// normCycle maps v into 1..n.
func normCycle(v, n int) int {
	return int(floorMod(int64(v-1), int64(n))) + 1
}

// Class returns the frequency family.
func (f Frequency) Class() Class { return f.class }

// IsYP reports whether f is a year-period frequency (Yearly, Quarterly,
// Monthly), i.e. one with a fixed number of periods per year.
func (f Frequency) IsYP() bool {
	return f.class == Yearly || f.class == Quarterly || f.class == Monthly
}

// HasDates reports whether f moments anchor to calendar dates. Only Unit
// does not.
func (f Frequency) HasDates() bool { return f.class != Unit }

// PeriodsPerYear returns 1, 4 or 12 for YP frequencies and 0 otherwise.
func (f Frequency) PeriodsPerYear() int {
	switch f.class {
	case Yearly:
		return 1
	case Quarterly:
		return 4
	case Monthly:
		return 12
	default:
		return 0
	}
}

// EndMonth returns the fiscal end month for Yearly (1..12) and Quarterly
// (1..3, the mod-3 representative), and 0 for other classes.
func (f Frequency) EndMonth() int {
	if f.class == Yearly || f.class == Quarterly {
		return int(f.param)
	}
	return 0
}

// EndDay returns the ISO end weekday for Weekly (1..7) and 0 otherwise.
func (f Frequency) EndDay() int {
	if f.class == Weekly {
		return int(f.param)
	}
	return 0
}

// monthsPerPeriod returns 12, 3 or 1 for YP frequencies.
func (f Frequency) monthsPerPeriod() int64 {
	return int64(12 / f.PeriodsPerYear())
}

// monthShift is the fiscal correction c such that period o of a YP frequency
// covers month indexes [o*np+c, o*np+np-1+c], np = monthsPerPeriod. It is 0
// for default parameters and always in (-np, 0].
func (f Frequency) monthShift() int64 {
	np := f.monthsPerPeriod()
	return floorMod(int64(f.param)-1, np) + 1 - np
}

// rank orders classes coarse to fine for conversion direction decisions.
// Equal ranks (same class, different parameter) convert as equals.
func (f Frequency) rank() int {
	switch f.class {
	case Yearly:
		return 1
	case Quarterly:
		return 2
	case Monthly:
		return 3
	case Weekly:
		return 4
	case BusinessDaily:
		return 5
	case Daily:
		return 6
	default:
		return 0
	}
}

// String renders the tag with the parameter suffix omitted for defaults:
// "Yearly", "Yearly{6}", "Quarterly{1}", "Weekly{4}", "BusinessDaily".
func (f Frequency) String() string {
	switch f.class {
	case Yearly:
		if f.param != 12 {
			return fmt.Sprintf("Yearly{%d}", f.param)
		}
	case Quarterly:
		if f.param != 3 {
			return fmt.Sprintf("Quarterly{%d}", f.param)
		}
	case Weekly:
		if f.param != 7 {
			return fmt.Sprintf("Weekly{%d}", f.param)
		}
	}
	return f.class.String()
}

// suffix is the compact letter form used by moment/duration literals.
func (f Frequency) suffix() string {
	switch f.class {
	case Unit:
		return "U"
	case Yearly:
		return "Y"
	case Quarterly:
		return "Q"
	case Monthly:
		return "M"
	case Weekly:
		return "W"
	case Daily:
		return "D"
	case BusinessDaily:
		return "B"
	}
	return "?"
}

// paramSuffix is "{n}" for non-default parameters, "" otherwise.
func (f Frequency) paramSuffix() string {
	switch f.class {
	case Yearly:
		if f.param != 12 {
			return fmt.Sprintf("{%d}", f.param)
		}
	case Quarterly:
		if f.param != 3 {
			return fmt.Sprintf("{%d}", f.param)
		}
	case Weekly:
		if f.param != 7 {
			return fmt.Sprintf("{%d}", f.param)
		}
	}
	return ""
}
