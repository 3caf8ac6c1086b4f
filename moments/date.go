/*
date.go - Civil calendar dates

PURPOSE:
  Date is the proleptic-Gregorian calendar primitive under all ordinal
  anchoring: year/month/day, day number, weekday, day-of-year, and
  day/month stepping. Ordinal math must stay exact for arbitrary years
  (moments are plain int64 ordinals and tests exercise ordinals at and
  below zero), so all date arithmetic is integer civil-calendar algebra.
  time.Time appears only in the converters at the edges; it is never used
  for arithmetic here.

DAY NUMBERS:
  DayNumber is the classic day count with 0001-01-01 = day 1 and day 1 a
  Monday. Daily moment ordinals equal day numbers; weekly and
  business-daily ordinals derive from them.

SEE ALSO:
  - moment.go: ordinal <-> date anchoring per frequency
*/
package moments

import (
	"fmt"
	"time"
)

// Date is a civil calendar date. The zero value is the zero year's January 1;
// construct dates with NewDate or DateFromDayNumber. Dates are comparable
// with ==.
type Date struct {
	year  int
	month time.Month
	day   int
}

// NewDate builds a date, normalizing out-of-range month/day values the way
// cascading calendar arithmetic expects (month 13 rolls into the next year,
// day 0 into the previous month, and so on).
func NewDate(year int, month time.Month, day int) Date {
	y := int64(year) + floorDiv(int64(month)-1, 12)
	m := time.Month(floorMod(int64(month)-1, 12) + 1)
	if day >= 1 && day <= daysInMonth(int(y), m) {
		return Date{year: int(y), month: m, day: day}
	}
	return DateFromDayNumber(daynumFromCivil(int(y), m, 1) + int64(day) - 1)
}

// DateFromDayNumber is the inverse of DayNumber.
func DateFromDayNumber(n int64) Date {
	y, m, d := civilFromDaynum(n)
	return Date{year: y, month: m, day: d}
}

// DateFromTime truncates a time.Time to its civil date (in the Time's own
// location).
func DateFromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{year: y, month: m, day: d}
}

// Year returns the calendar year.
func (d Date) Year() int { return d.year }

// Month returns the calendar month.
func (d Date) Month() time.Month { return d.month }

// Day returns the day of month.
func (d Date) Day() int { return d.day }

// DayNumber returns the proleptic-Gregorian day count with 0001-01-01 = 1.
func (d Date) DayNumber() int64 {
	return daynumFromCivil(d.year, d.month, d.day)
}

// Weekday returns the ISO weekday, 1=Monday .. 7=Sunday.
func (d Date) Weekday() int {
	return int(floorMod(d.DayNumber()-1, 7)) + 1
}

// IsWeekend reports whether the date falls on Saturday or Sunday.
func (d Date) IsWeekend() bool {
	return d.Weekday() >= 6
}

// DayOfYear returns 1 for January 1 through 365/366 for December 31.
func (d Date) DayOfYear() int {
	return int(d.DayNumber() - daynumFromCivil(d.year, time.January, 1) + 1)
}

// AddDays steps the date by n calendar days (n may be negative).
func (d Date) AddDays(n int64) Date {
	return DateFromDayNumber(d.DayNumber() + n)
}

// AddMonths steps the date by n calendar months, clamping the day of month
// to the target month's length (Jan 31 + 1 month = Feb 28/29).
func (d Date) AddMonths(n int) Date {
	mi := d.MonthIndex() + int64(n)
	y, m := yearMonthFromIndex(mi)
	day := d.day
	if max := daysInMonth(y, m); day > max {
		day = max
	}
	return Date{year: y, month: m, day: day}
}

// MonthIndex returns the linear month count 12*year + (month-1). Fiscal
// period arithmetic runs in this space.
func (d Date) MonthIndex() int64 {
	return 12*int64(d.year) + int64(d.month) - 1
}

// Before reports whether d is earlier than other.
func (d Date) Before(other Date) bool { return d.Compare(other) < 0 }

// After reports whether d is later than other.
func (d Date) After(other Date) bool { return d.Compare(other) > 0 }

// Compare returns -1, 0 or +1 ordering d against other.
func (d Date) Compare(other Date) int {
	switch {
	case d.year != other.year:
		return cmpInt(int64(d.year), int64(other.year))
	case d.month != other.month:
		return cmpInt(int64(d.month), int64(other.month))
	default:
		return cmpInt(int64(d.day), int64(other.day))
	}
}

// Time returns the date at midnight UTC.
func (d Date) Time() time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
}

// String renders the ISO form, "2022-05-02". Negative and five-digit years
// keep their natural width.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.year, int(d.month), d.day)
}

// =============================================================================
// MONTH HELPERS
// =============================================================================

func yearMonthFromIndex(mi int64) (int, time.Month) {
	return int(floorDiv(mi, 12)), time.Month(floorMod(mi, 12) + 1)
}

// firstOfMonthIndex returns the first day of linear month mi.
func firstOfMonthIndex(mi int64) Date {
	y, m := yearMonthFromIndex(mi)
	return Date{year: y, month: m, day: 1}
}

// lastOfMonthIndex returns the last day of linear month mi.
func lastOfMonthIndex(mi int64) Date {
	y, m := yearMonthFromIndex(mi)
	return Date{year: y, month: m, day: daysInMonth(y, m)}
}

func daysInMonth(year int, month time.Month) int {
	switch month {
	case time.April, time.June, time.September, time.November:
		return 30
	case time.February:
		if isLeapYear(year) {
			return 29
		}
		return 28
	default:
		return 31
	}
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// =============================================================================
// CIVIL DAY-NUMBER ALGORITHMS
// =============================================================================
// Integer-only conversions between (year, month, day) and the day number,
// valid over the whole int64 range of proleptic-Gregorian dates.

func daynumFromCivil(year int, month time.Month, day int) int64 {
	y := int64(year)
	if month <= time.February {
		y--
	}
	era := floorDiv(y, 400)
	yoe := y - era*400
	mp := int64((int(month) + 9) % 12)
	doy := (153*mp+2)/5 + int64(day) - 1
	doe := yoe*365 + yoe/4 - yoe/100 + doy
	return era*146097 + doe - 305
}

func civilFromDaynum(n int64) (int, time.Month, int) {
	z := n + 305
	era := floorDiv(z, 146097)
	doe := z - era*146097
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365
	y := yoe + era*400
	doy := doe - (365*yoe + yoe/4 - yoe/100)
	mp := (5*doy + 2) / 153
	day := int(doy - (153*mp+2)/5 + 1)
	month := time.Month(mp + 3)
	if mp >= 10 {
		month = time.Month(mp - 9)
	}
	if month <= time.February {
		y++
	}
	return int(y), month, day
}

// =============================================================================
// INTEGER DIVISION HELPERS
// =============================================================================
// Floor semantics everywhere: Go's native / and % truncate toward zero,
// which breaks period decomposition for ordinals at or below zero.

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int64) int64 {
	return a - floorDiv(a, b)*b
}

func ceilDiv(a, b int64) int64 {
	return -floorDiv(-a, b)
}

func cmpInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
