/*
parse.go - Text forms for frequencies, moments, durations and ranges

PURPOSE:
  The Go rendition of literal-constant sugar: "2020Q1", "1988M12",
  "2020Y{6}", "2022-05-02B" parse straight into moments, round-tripping
  through the String methods on each type. Parsing is strict (periods and
  fiscal parameters must be in range, dates must be zero-padded ISO);
  the constructors stay forgiving, normalization belongs to them.

TEXT FORMS:
  frequency   "Yearly", "Yearly{6}", "Q", "Quarterly{1}", "W{4}", "BD", ...
  moment      "2020Y", "2020Y{6}", "2020Q1", "2020Q1{2}", "1988M12", "5U",
              "2022-05-02" (Daily), "2022-05-02B" (BusinessDaily, weekday
              dates only), "2022-05-08W" (Weekly; the date is the week's
              last day and names the end-day parameter)
  duration    "5Q", "-3M", "12W{4}", "7U"
  range       "first:last", e.g. "2020Q1:2021Q4"

SEE ALSO:
  - moment.go, frequency.go, range.go: the String inverses
*/
package moments

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseFrequency reads a frequency tag from text. Full class names and
// single-letter forms are accepted case-insensitively, with an optional
// "{n}" fiscal parameter for Yearly (1..12), Quarterly (1..12, stored as
// its mod-3 representative) and Weekly (1..7).
func ParseFrequency(s string) (Frequency, error) {
	body, param, hasParam, ok := splitBraceParam(s)
	if !ok || body == "" {
		return Frequency{}, &ParseError{Input: s, Want: "frequency"}
	}
	var f Frequency
	switch strings.ToLower(body) {
	case "u", "unit":
		f = U
	case "y", "yearly":
		f = Y
	case "q", "quarterly":
		f = Q
	case "m", "monthly":
		f = M
	case "w", "weekly":
		f = W
	case "d", "daily":
		f = D
	case "b", "bd", "businessdaily":
		f = BD
	default:
		return Frequency{}, &ParseError{Input: s, Want: "frequency"}
	}
	if !hasParam {
		return f, nil
	}
	switch f.class {
	case Yearly:
		if param < 1 || param > 12 {
			return Frequency{}, &ParseError{Input: s, Want: "frequency"}
		}
		return YearlyEnding(param), nil
	case Quarterly:
		if param < 1 || param > 12 {
			return Frequency{}, &ParseError{Input: s, Want: "frequency"}
		}
		return QuarterlyEnding(param), nil
	case Weekly:
		if param < 1 || param > 7 {
			return Frequency{}, &ParseError{Input: s, Want: "frequency"}
		}
		return WeeklyEnding(param), nil
	default:
		return Frequency{}, &ParseError{Input: s, Want: "frequency"}
	}
}

// ParseMoment reads a moment literal. See the file header for the accepted
// forms; the result round-trips through Moment.String.
func ParseMoment(s string) (Moment, error) {
	if s == "" {
		return Moment{}, &ParseError{Input: s, Want: "moment"}
	}
	if strings.Contains(s[1:], "-") {
		return parseDateMoment(s)
	}
	return parseYPMoment(s)
}

// MustParseMoment is ParseMoment panicking on malformed input, for literals
// in code and tests.
func MustParseMoment(s string) Moment {
	m, err := ParseMoment(s)
	if err != nil {
		panic(err)
	}
	return m
}

func parseDateMoment(s string) (Moment, error) {
	class := byte('D')
	body := s
	switch s[len(s)-1] {
	case 'B', 'W', 'D':
		class = s[len(s)-1]
		body = s[:len(s)-1]
	}
	d, err := ParseDate(body)
	if err != nil {
		return Moment{}, &ParseError{Input: s, Want: "moment"}
	}
	switch class {
	case 'D':
		return New(D, d.DayNumber()), nil
	case 'B':
		if d.IsWeekend() {
			return Moment{}, fmt.Errorf("%s falls on a weekend, not a business day: %w", body, ErrParse)
		}
		return FromDate(BD, d), nil
	default:
		return FromDate(WeeklyEnding(d.Weekday()), d), nil
	}
}

func parseYPMoment(s string) (Moment, error) {
	body, param, hasParam, ok := splitBraceParam(s)
	if !ok {
		return Moment{}, &ParseError{Input: s, Want: "moment"}
	}
	li := strings.IndexAny(body, "YQMUyqmu")
	if li < 1 {
		return Moment{}, &ParseError{Input: s, Want: "moment"}
	}
	year, err := strconv.ParseInt(body[:li], 10, 64)
	if err != nil {
		return Moment{}, &ParseError{Input: s, Want: "moment"}
	}
	rest := body[li+1:]
	var f Frequency
	var period int
	switch body[li] {
	case 'U', 'u':
		if rest != "" || hasParam {
			return Moment{}, &ParseError{Input: s, Want: "moment"}
		}
		return New(U, year), nil
	case 'Y', 'y':
		if rest != "" {
			return Moment{}, &ParseError{Input: s, Want: "moment"}
		}
		f, period = Y, 1
		if hasParam {
			if param < 1 || param > 12 {
				return Moment{}, &ParseError{Input: s, Want: "moment"}
			}
			f = YearlyEnding(param)
		}
	case 'Q', 'q':
		p, err := strconv.Atoi(rest)
		if err != nil || p < 1 || p > 4 {
			return Moment{}, &ParseError{Input: s, Want: "moment"}
		}
		f, period = Q, p
		if hasParam {
			if param < 1 || param > 12 {
				return Moment{}, &ParseError{Input: s, Want: "moment"}
			}
			f = QuarterlyEnding(param)
		}
	case 'M', 'm':
		p, err := strconv.Atoi(rest)
		if err != nil || p < 1 || p > 12 || hasParam {
			return Moment{}, &ParseError{Input: s, Want: "moment"}
		}
		f, period = M, p
	}
	m, err := FromYearPeriod(f, int(year), period)
	if err != nil {
		return Moment{}, &ParseError{Input: s, Want: "moment"}
	}
	return m, nil
}

// ParseDuration reads a duration literal such as "5Q", "-3M" or "12W{4}".
func ParseDuration(s string) (Duration, error) {
	body, param, hasParam, ok := splitBraceParam(s)
	if !ok {
		return Duration{}, &ParseError{Input: s, Want: "duration"}
	}
	li := strings.IndexAny(body, "YQMWDBUyqmwdbu")
	if li < 1 || li != len(body)-1 {
		return Duration{}, &ParseError{Input: s, Want: "duration"}
	}
	n, err := strconv.ParseInt(body[:li], 10, 64)
	if err != nil {
		return Duration{}, &ParseError{Input: s, Want: "duration"}
	}
	suffix := string(body[li])
	if hasParam {
		suffix = fmt.Sprintf("%s{%d}", suffix, param)
	}
	f, err := ParseFrequency(suffix)
	if err != nil {
		return Duration{}, &ParseError{Input: s, Want: "duration"}
	}
	return NewDuration(f, n), nil
}

// ParseRange reads "first:last". Bounds of differing frequencies are a
// MixedFrequencyError, not a parse error.
func ParseRange(s string) (Range, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return Range{}, &ParseError{Input: s, Want: "range"}
	}
	first, err := ParseMoment(parts[0])
	if err != nil {
		return Range{}, &ParseError{Input: s, Want: "range"}
	}
	last, err := ParseMoment(parts[1])
	if err != nil {
		return Range{}, &ParseError{Input: s, Want: "range"}
	}
	if first.freq != last.freq {
		return Range{}, &MixedFrequencyError{Op: "range", Left: first.freq, Right: last.freq}
	}
	return Range{first: first, last: last}, nil
}

// MustParseRange is ParseRange panicking on malformed input.
func MustParseRange(s string) Range {
	r, err := ParseRange(s)
	if err != nil {
		panic(err)
	}
	return r
}

// ParseOperand reads an operand for the dynamic layer: a bare integer, a
// moment literal, or a duration literal, tried in that order.
func ParseOperand(s string) (Operand, error) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Int(n), nil
	}
	if m, err := ParseMoment(s); err == nil {
		return m, nil
	}
	if d, err := ParseDuration(s); err == nil {
		return d, nil
	}
	return nil, &ParseError{Input: s, Want: "operand"}
}

// ParseDate reads a zero-padded ISO date, optionally with a negative year:
// "2022-05-02", "-0044-03-15".
func ParseDate(s string) (Date, error) {
	body := s
	neg := false
	if strings.HasPrefix(body, "-") {
		neg = true
		body = body[1:]
	}
	parts := strings.Split(body, "-")
	if len(parts) != 3 || len(parts[0]) == 0 || len(parts[1]) != 2 || len(parts[2]) != 2 {
		return Date{}, &ParseError{Input: s, Want: "date"}
	}
	year, err1 := strconv.Atoi(parts[0])
	month, err2 := strconv.Atoi(parts[1])
	day, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return Date{}, &ParseError{Input: s, Want: "date"}
	}
	if neg {
		year = -year
	}
	if month < 1 || month > 12 || day < 1 || day > daysInMonth(year, time.Month(month)) {
		return Date{}, &ParseError{Input: s, Want: "date"}
	}
	return Date{year: year, month: time.Month(month), day: day}, nil
}

// splitBraceParam splits "body{n}" into its pieces; ok is false for
// malformed braces.
func splitBraceParam(s string) (body string, param int, hasParam, ok bool) {
	i := strings.IndexByte(s, '{')
	if i < 0 {
		return s, 0, false, true
	}
	if !strings.HasSuffix(s, "}") {
		return "", 0, false, false
	}
	n, err := strconv.Atoi(s[i+1 : len(s)-1])
	if err != nil {
		return "", 0, false, false
	}
	return s[:i], n, true, true
}
