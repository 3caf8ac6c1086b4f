/*
calendars.go - Holiday calendars

PURPOSE:
  The holiday mask consumed by business-day conversions. A Calendar
  answers one question, whether a civil date is a holiday. List is the
  concrete implementation: an explicit set of dates plus annual
  month/day rules. WeekendOnly is the degenerate mask for callers that
  want business-day semantics with no holidays at all; the business-day
  ordinal grid already excludes weekends, so it masks nothing there.

HOLIDAYS NEVER SHIFT ORDINALS:
  Masking a date does not renumber the business-day grid. Conversions
  consult the mask only to filter alignment probes and value spans.

SEE ALSO:
  - registry.go: in-process named lookup
  - yaml.go: file-backed definitions
  - store.go: persisted definitions
*/
package calendars

import (
	"sort"
	"time"

	"github.com/warp/frequency-engine/moments"
)

// Calendar is a named holiday mask.
type Calendar interface {
	Name() string
	IsHoliday(d moments.Date) bool
}

// =============================================================================
// WEEKEND-ONLY - the empty mask
// =============================================================================

// WeekendOnly marks Saturdays and Sundays and nothing else.
type WeekendOnly struct{}

func (WeekendOnly) Name() string { return "weekend-only" }

func (WeekendOnly) IsHoliday(d moments.Date) bool { return d.IsWeekend() }

// =============================================================================
// LIST - explicit dates plus annual rules
// =============================================================================

// Rule is an annual holiday: the same month and day every year.
type Rule struct {
	Month time.Month
	Day   int
	Label string
}

// Holiday is one materialized holiday date.
type Holiday struct {
	Date  moments.Date
	Label string
}

// List is a Calendar built from explicit dates and annual rules.
type List struct {
	name  string
	dates map[moments.Date]string
	rules []Rule
}

func NewList(name string) *List {
	return &List{name: name, dates: make(map[moments.Date]string)}
}

// AddDate marks a single date. Returns the list for chaining.
func (l *List) AddDate(d moments.Date, label string) *List {
	l.dates[d] = label
	return l
}

// AddRule marks the same month/day in every year.
func (l *List) AddRule(month time.Month, day int, label string) *List {
	l.rules = append(l.rules, Rule{Month: month, Day: day, Label: label})
	return l
}

func (l *List) Name() string { return l.name }

func (l *List) IsHoliday(d moments.Date) bool {
	if _, ok := l.dates[d]; ok {
		return true
	}
	for _, r := range l.rules {
		if d.Month() == r.Month && d.Day() == r.Day {
			return true
		}
	}
	return false
}

// InYear materializes the holidays falling inside one calendar year,
// sorted by date. A rule that names a day the year does not have
// (February 29 off leap years) contributes nothing that year.
func (l *List) InYear(year int) []Holiday {
	var out []Holiday
	for d, label := range l.dates {
		if d.Year() == year {
			out = append(out, Holiday{Date: d, Label: label})
		}
	}
	for _, r := range l.rules {
		d := moments.NewDate(year, r.Month, r.Day)
		if d.Month() != r.Month || d.Day() != r.Day {
			continue
		}
		if _, dup := l.dates[d]; dup {
			continue
		}
		out = append(out, Holiday{Date: d, Label: r.Label})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}
