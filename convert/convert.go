/*
convert.go - Shared machinery of the conversion engine

PURPOSE:
  The one primitive every conversion path reduces to: find the
  destination period containing a boundary of a source period, and
  report whether the boundary lands exactly on the destination's own
  boundary. Year-period pairs resolve in linear month space, everything
  else through an explicit calendar date. Per-pair special cases beyond
  that dispatch are deliberately absent; correctness never depends on
  which path runs.

CONVERSION FAMILIES:
  YP <-> YP                 month index arithmetic, no dates touched
  YP/Weekly <-> calendar    boundary date, re-anchored at the destination
  BusinessDaily anywhere    same, with weekend bias when the destination
                            grid has no period for the date

SEE ALSO:
  - moment.go: single-moment conversion and rounding
  - range.go: range conversion and edge trimming
  - values.go: value aggregation and interpolation
*/
package convert

import "github.com/warp/frequency-engine/moments"

// containing locates the destination period holding the side boundary of
// the source moment m. aligned reports whether that boundary coincides
// with the destination period's same-side boundary. For BusinessDaily
// destinations a weekend boundary has no containing period: the result is
// biased to the neighboring business day, weekend is set, and aligned is
// false. side must be BaseEnd or BaseBegin.
func containing(to moments.Frequency, m moments.Moment, side Base, bias moments.Bias) (cur moments.Moment, aligned, weekend bool) {
	if m.Frequency().IsYP() && to.IsYP() {
		first, last := m.MonthSpan()
		mi := last
		if side == BaseBegin {
			mi = first
		}
		cur = moments.FromMonthIndex(to, mi)
		cb, ce := cur.MonthSpan()
		if side == BaseBegin {
			return cur, mi == cb, false
		}
		return cur, mi == ce, false
	}

	d := boundaryDate(m, side)
	if to.Class() == moments.BusinessDaily {
		if d.IsWeekend() {
			return moments.FromDate(to, d, bias), false, true
		}
		return moments.FromDate(to, d), true, false
	}
	cur = moments.FromDate(to, d)
	if side == BaseBegin {
		return cur, d == cur.FirstDate(), false
	}
	return cur, d == cur.LastDate(), false
}

// boundaryDate returns the calendar day representing m under side.
func boundaryDate(m moments.Moment, side Base) moments.Date {
	if side == BaseBegin {
		return m.FirstDate()
	}
	return m.LastDate()
}

// fineness orders frequency classes coarse to fine. Equal fineness (same
// class, different parameter) converts through the coarsening path with
// one-to-one period spans.
func fineness(f moments.Frequency) int {
	switch f.Class() {
	case moments.Yearly:
		return 1
	case moments.Quarterly:
		return 2
	case moments.Monthly:
		return 3
	case moments.Weekly:
		return 4
	case moments.BusinessDaily:
		return 5
	case moments.Daily:
		return 6
	}
	return 0
}

// monthsPer returns the month width of one period of a YP frequency.
func monthsPer(f moments.Frequency) int64 {
	return int64(12 / f.PeriodsPerYear())
}

// monthShiftOf is the fiscal correction c such that period o of a YP
// frequency covers month indexes [o*np+c, o*np+np-1+c]. Always in (-np, 0].
func monthShiftOf(f moments.Frequency) int64 {
	np := monthsPer(f)
	return floorMod(int64(f.EndMonth())-1, np) + 1 - np
}

// Floor semantics everywhere, matching the ordinal arithmetic in moments.

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int64) int64 {
	return a - b*floorDiv(a, b)
}

func ceilDiv(a, b int64) int64 {
	return -floorDiv(-a, b)
}
