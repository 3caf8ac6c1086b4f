/*
moment.go - Moments and durations

PURPOSE:
  Moment is a point in time: an int64 ordinal tagged with a Frequency.
  Duration is a distance between two moments of one frequency. Both are
  immutable values; arithmetic allocates new ones.

ORDINAL REPRESENTATION:
  YP frequencies    ordinal = periodsPerYear*year + (period-1); the
                    decomposition uses floor division so period stays in
                    1..periodsPerYear for every ordinal, including <= 0
  Daily             ordinal = day number (0001-01-01 = 1)
  BusinessDaily     five ordinals per calendar week; ordinal 1 = Monday
                    0001-01-01, day number = ord + 2*floor((ord-1)/5)
  Weekly{ed}        week w covers day numbers [7w+ed-13, 7w+ed-7]
  Unit              no calendar meaning

ARITHMETIC RULES:
  Moment - Moment = Duration, Moment +/- Duration = Moment, Duration +/-
  Duration = Duration, all same-frequency only. A bare int64 shifts a
  Moment or Duration by that many periods (Shift) and round-trips exactly:
  m.Sub(m.Shift(-k)) has count k. Mixing frequency tags panics with a
  *MixedFrequencyError; asking for dates or year/period where the
  frequency has none panics with an *IllegalOperationError. Callers that
  need error returns instead of panics use the operand layer in ops.go.

SEE ALSO:
  - frequency.go: tags and fiscal parameters
  - date.go: the calendar primitive behind FirstDate/LastDate
  - ops.go: error-returning arithmetic for untrusted input
*/
package moments

import "fmt"

// Bias selects which business day represents a weekend date.
type Bias uint8

const (
	// BiasPrevious lands Saturday/Sunday on the preceding Friday.
	BiasPrevious Bias = iota
	// BiasNext lands Saturday/Sunday on the following Monday.
	BiasNext
)

// =============================================================================
// MOMENT
// =============================================================================

// Moment is an ordinal point in time at a given frequency. Moments are
// comparable with ==; moments of different frequencies or parameters are
// simply unequal.
type Moment struct {
	freq Frequency
	ord  int64
}

// New builds a moment directly from its ordinal.
func New(f Frequency, ordinal int64) Moment {
	return Moment{freq: f, ord: ordinal}
}

// FromYearPeriod builds a YP moment from a year and a period in
// 1..periodsPerYear. Non-YP frequencies and out-of-range periods are
// rejected.
func FromYearPeriod(f Frequency, year, period int) (Moment, error) {
	ppy := f.PeriodsPerYear()
	if ppy == 0 {
		return Moment{}, &IllegalOperationError{Op: "year-period construction", Left: f.String()}
	}
	if period < 1 || period > ppy {
		return Moment{}, fmt.Errorf("period %d out of 1..%d for %s: %w", period, ppy, f, ErrIllegalOperation)
	}
	return Moment{freq: f, ord: int64(ppy)*int64(year) + int64(period) - 1}, nil
}

// FromDate builds the moment containing the given date. For YP frequencies
// that is the fiscal period covering the date's month; for Weekly the week
// containing the date; for Daily the date itself. For BusinessDaily a
// weekend date has no containing moment and the bias decides: BiasPrevious
// (the default) lands on the preceding Friday, BiasNext on the following
// Monday. Unit moments have no dates and panic.
func FromDate(f Frequency, d Date, bias ...Bias) Moment {
	b := BiasPrevious
	if len(bias) > 0 {
		b = bias[0]
	}
	switch f.class {
	case Daily:
		return Moment{freq: f, ord: d.DayNumber()}
	case BusinessDaily:
		n := d.DayNumber()
		weeks := floorDiv(n-1, 7)
		rem := floorMod(n-1, 7) // 0=Mon .. 6=Sun
		switch {
		case rem <= 4:
			return Moment{freq: f, ord: 5*weeks + rem + 1}
		case b == BiasNext:
			return Moment{freq: f, ord: 5*(weeks+1) + 1}
		default:
			return Moment{freq: f, ord: 5*weeks + 5}
		}
	case Weekly:
		return Moment{freq: f, ord: floorDiv(d.DayNumber()-int64(f.param)+13, 7)}
	case Yearly, Quarterly, Monthly:
		return FromMonthIndex(f, d.MonthIndex())
	}
	panic(&IllegalOperationError{Op: "date anchoring", Left: f.String()})
}

// FromMonthIndex builds the YP moment whose period covers the linear month
// index 12*year + (month-1). Panics for non-YP frequencies.
func FromMonthIndex(f Frequency, mi int64) Moment {
	if !f.IsYP() {
		panic(&IllegalOperationError{Op: "month anchoring", Left: f.String()})
	}
	return Moment{freq: f, ord: floorDiv(mi-f.monthShift(), f.monthsPerPeriod())}
}

// Frequency returns the moment's tag.
func (m Moment) Frequency() Frequency { return m.freq }

// Ordinal returns the raw ordinal.
func (m Moment) Ordinal() int64 { return m.ord }

// YearPeriod decomposes a YP moment into (year, period), the exact inverse
// of FromYearPeriod: periodsPerYear*year + (period-1) == ordinal with
// period in 1..periodsPerYear for every ordinal. Panics for non-YP
// frequencies.
func (m Moment) YearPeriod() (year, period int) {
	ppy := int64(m.freq.PeriodsPerYear())
	if ppy == 0 {
		panic(&IllegalOperationError{Op: "year-period decomposition", Left: m.freq.String()})
	}
	y := floorDiv(m.ord, ppy)
	return int(y), int(m.ord - ppy*y + 1)
}

// Year returns the fiscal year of a YP moment.
func (m Moment) Year() int {
	y, _ := m.YearPeriod()
	return y
}

// MonthSpan returns the first and last linear month index covered by a YP
// period. Panics for non-YP frequencies.
func (m Moment) MonthSpan() (first, last int64) {
	if !m.freq.IsYP() {
		panic(&IllegalOperationError{Op: "month span", Left: m.freq.String()})
	}
	np := m.freq.monthsPerPeriod()
	first = m.ord*np + m.freq.monthShift()
	return first, first + np - 1
}

// FirstDate returns the first calendar day of the period. Panics for Unit.
func (m Moment) FirstDate() Date {
	switch m.freq.class {
	case Daily:
		return DateFromDayNumber(m.ord)
	case BusinessDaily:
		return DateFromDayNumber(m.dayNumber())
	case Weekly:
		return DateFromDayNumber(7*m.ord + int64(m.freq.param) - 13)
	case Yearly, Quarterly, Monthly:
		first, _ := m.MonthSpan()
		return firstOfMonthIndex(first)
	}
	panic(&IllegalOperationError{Op: "date anchoring", Left: m.freq.String()})
}

// LastDate returns the last calendar day of the period. For Daily and
// BusinessDaily it equals FirstDate. Panics for Unit.
func (m Moment) LastDate() Date {
	switch m.freq.class {
	case Daily:
		return DateFromDayNumber(m.ord)
	case BusinessDaily:
		return DateFromDayNumber(m.dayNumber())
	case Weekly:
		return DateFromDayNumber(7*m.ord + int64(m.freq.param) - 7)
	case Yearly, Quarterly, Monthly:
		_, last := m.MonthSpan()
		return lastOfMonthIndex(last)
	}
	panic(&IllegalOperationError{Op: "date anchoring", Left: m.freq.String()})
}

// dayNumber maps a BusinessDaily ordinal onto its calendar day number.
func (m Moment) dayNumber() int64 {
	return m.ord + 2*floorDiv(m.ord-1, 5)
}

// Add steps the moment forward by a duration of the same frequency.
func (m Moment) Add(d Duration) Moment {
	mustSameFreq("add", m.freq, d.freq)
	return Moment{freq: m.freq, ord: m.ord + d.n}
}

// Sub returns the distance from other to m. Adding two moments is undefined;
// only their difference exists.
func (m Moment) Sub(other Moment) Duration {
	mustSameFreq("subtract", m.freq, other.freq)
	return Duration{freq: m.freq, n: m.ord - other.ord}
}

// Shift steps the moment by n periods. This is the controlled integer
// escape hatch: m.Sub(m.Shift(-k)).Count() == k exactly.
func (m Moment) Shift(n int64) Moment {
	return Moment{freq: m.freq, ord: m.ord + n}
}

// Compare orders two moments of the same frequency, returning -1, 0 or +1.
func (m Moment) Compare(other Moment) int {
	mustSameFreq("compare", m.freq, other.freq)
	return cmpInt(m.ord, other.ord)
}

// Before reports whether m is earlier than other (same frequency only).
func (m Moment) Before(other Moment) bool { return m.Compare(other) < 0 }

// After reports whether m is later than other (same frequency only).
func (m Moment) After(other Moment) bool { return m.Compare(other) > 0 }

// String renders the literal form: "2020Y", "2020Q1", "1988M12", "5U",
// "2022-05-02" (Daily), "2022-05-02B" (BusinessDaily), "2022-05-08W"
// (Weekly, the week's last day; its weekday is the end-day parameter).
func (m Moment) String() string {
	switch m.freq.class {
	case Unit:
		return fmt.Sprintf("%dU", m.ord)
	case Yearly:
		y, _ := m.YearPeriod()
		return fmt.Sprintf("%dY%s", y, m.freq.paramSuffix())
	case Quarterly:
		y, p := m.YearPeriod()
		return fmt.Sprintf("%dQ%d%s", y, p, m.freq.paramSuffix())
	case Monthly:
		y, p := m.YearPeriod()
		return fmt.Sprintf("%dM%d", y, p)
	case Weekly:
		return m.LastDate().String() + "W"
	case Daily:
		return m.FirstDate().String()
	case BusinessDaily:
		return m.FirstDate().String() + "B"
	}
	return fmt.Sprintf("Moment(%s,%d)", m.freq, m.ord)
}

// =============================================================================
// DURATION
// =============================================================================

// Duration is a signed distance measured in periods of one frequency.
type Duration struct {
	freq Frequency
	n    int64
}

// NewDuration builds a duration of n periods at frequency f.
func NewDuration(f Frequency, n int64) Duration {
	return Duration{freq: f, n: n}
}

// Frequency returns the duration's tag.
func (d Duration) Frequency() Frequency { return d.freq }

// Count returns the signed number of periods.
func (d Duration) Count() int64 { return d.n }

// Add sums two durations of the same frequency.
func (d Duration) Add(other Duration) Duration {
	mustSameFreq("add", d.freq, other.freq)
	return Duration{freq: d.freq, n: d.n + other.n}
}

// Sub subtracts a duration of the same frequency.
func (d Duration) Sub(other Duration) Duration {
	mustSameFreq("subtract", d.freq, other.freq)
	return Duration{freq: d.freq, n: d.n - other.n}
}

// Neg flips the sign.
func (d Duration) Neg() Duration { return Duration{freq: d.freq, n: -d.n} }

// Shift grows the duration by n periods.
func (d Duration) Shift(n int64) Duration { return Duration{freq: d.freq, n: d.n + n} }

// Compare orders two durations of the same frequency.
func (d Duration) Compare(other Duration) int {
	mustSameFreq("compare", d.freq, other.freq)
	return cmpInt(d.n, other.n)
}

// String renders e.g. "5Q", "-3M", "12W{4}", "7U".
func (d Duration) String() string {
	return fmt.Sprintf("%d%s%s", d.n, d.freq.suffix(), d.freq.paramSuffix())
}

// mustSameFreq panics with a MixedFrequencyError unless the tags match.
func mustSameFreq(op string, a, b Frequency) {
	if a != b {
		panic(&MixedFrequencyError{Op: op, Left: a, Right: b})
	}
}
