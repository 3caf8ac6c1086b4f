/*
moment.go - Single-moment conversion

PURPOSE:
  Convert one moment to another frequency. The boundary selected by
  Options.Base represents the source period; the destination period
  containing that boundary is the RoundCurrent answer, and RoundPrevious/
  RoundNext step off it when the boundary does not line up with the
  destination grid. For BusinessDaily destinations the stepping becomes
  the weekend bias, and RoundCurrent refuses weekend boundaries outright
  rather than guessing a direction.

ROUNDING, under the default end base:
  previous  latest destination period completed on or before the boundary
  current   destination period containing the boundary
  next      earliest destination period completing on or after the
            boundary (the containing period itself)
  Under the begin base the roles mirror: previous and current take the
  containing period, next steps forward past an unaligned boundary.

SEE ALSO:
  - convert.go: the containing/alignment primitive
  - range.go: the range analogue, which aligns both edges at once
*/
package convert

import "github.com/warp/frequency-engine/moments"

// Moment converts m to the destination frequency. Converting to the exact
// source frequency returns m unchanged. Pairs involving Unit are not
// implemented.
func Moment(to moments.Frequency, m moments.Moment, opts ...Options) (moments.Moment, error) {
	opt := pick(opts)
	if err := opt.check(); err != nil {
		return moments.Moment{}, err
	}
	if opt.Base == BaseMiddle {
		return moments.Moment{}, &InvalidArgumentError{Name: "base", Value: opt.Base.String(), Legal: []string{"end", "begin"}}
	}
	from := m.Frequency()
	if from == to {
		return m, nil
	}
	if from.Class() == moments.Unit || to.Class() == moments.Unit {
		return moments.Moment{}, &NotImplementedError{From: from, To: to}
	}

	rounding := opt.Rounding.resolve(to)
	bias := moments.BiasPrevious
	if rounding == RoundNext {
		bias = moments.BiasNext
	}
	cur, aligned, weekend := containing(to, m, opt.Base, bias)

	switch rounding {
	case RoundCurrent:
		if weekend {
			return moments.Moment{}, &WeekendBoundaryError{Date: boundaryDate(m, opt.Base)}
		}
		return cur, nil
	case RoundPrevious:
		if !weekend && !aligned && opt.Base == BaseEnd {
			return cur.Shift(-1), nil
		}
		return cur, nil
	default: // RoundNext
		if !weekend && !aligned && opt.Base == BaseBegin {
			return cur.Shift(1), nil
		}
		return cur, nil
	}
}
