/*
Package factory provides JSON to Go domain conversion.

PURPOSE:
  Converts JSON definitions into domain values: holiday calendars into
  calendars.Record and conversion options into convert.Options. This
  enables configuration without code changes - operators define
  calendars in JSON or YAML, clients send option objects over HTTP, and
  the factory builds the proper Go values.

JSON SCHEMA (calendar):
  {
    "name": "us-federal",
    "dates": [
      {"date": "2022-05-30", "name": "Memorial Day"}
    ],
    "rules": [
      {"month": 7, "day": 4, "name": "Independence Day"}
    ]
  }

USAGE:
  factory := NewCalendarFactory()

  // From JSON string
  rec, err := factory.Parse(jsonString)

  // Persist and activate
  saved, err := store.Save(ctx, rec)
  calendars.Register(saved.Calendar())

SEE ALSO:
  - calendars/store.go: Record definition
  - requests.go: conversion option parsing
  - api: the HTTP surface using both
*/
package factory

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/warp/frequency-engine/calendars"
	"github.com/warp/frequency-engine/moments"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// CalendarJSON is the JSON representation of a calendar definition.
type CalendarJSON struct {
	ID    string     `json:"id,omitempty"`
	Name  string     `json:"name"`
	Dates []DateJSON `json:"dates,omitempty"`
	Rules []RuleJSON `json:"rules,omitempty"`
}

// DateJSON is one explicit holiday date.
type DateJSON struct {
	Date string `json:"date"`
	Name string `json:"name,omitempty"`
}

// RuleJSON is an annual month/day holiday.
type RuleJSON struct {
	Month int    `json:"month"`
	Day   int    `json:"day"`
	Name  string `json:"name,omitempty"`
}

// =============================================================================
// CALENDAR FACTORY
// =============================================================================

// CalendarFactory converts JSON calendar definitions to records.
type CalendarFactory struct{}

// NewCalendarFactory creates a new calendar factory.
func NewCalendarFactory() *CalendarFactory {
	return &CalendarFactory{}
}

// Parse parses a JSON string into a calendar record.
func (f *CalendarFactory) Parse(jsonStr string) (calendars.Record, error) {
	var cj CalendarJSON
	if err := json.Unmarshal([]byte(jsonStr), &cj); err != nil {
		return calendars.Record{}, fmt.Errorf("failed to parse calendar JSON: %w", err)
	}
	return f.FromJSON(cj)
}

// FromJSON converts CalendarJSON to a calendar record.
func (f *CalendarFactory) FromJSON(cj CalendarJSON) (calendars.Record, error) {
	if cj.Name == "" {
		return calendars.Record{}, fmt.Errorf("calendar definition requires a name")
	}
	rec := calendars.Record{ID: cj.ID, Name: cj.Name}
	for _, dj := range cj.Dates {
		d, err := moments.ParseDate(dj.Date)
		if err != nil {
			return calendars.Record{}, fmt.Errorf("calendar %s: %w", cj.Name, err)
		}
		rec.Dates = append(rec.Dates, calendars.DateEntry{Date: d, Label: dj.Name})
	}
	for _, rj := range cj.Rules {
		if rj.Month < 1 || rj.Month > 12 || rj.Day < 1 || rj.Day > 31 {
			return calendars.Record{}, fmt.Errorf("calendar %s: rule month %d day %d out of range", cj.Name, rj.Month, rj.Day)
		}
		rec.Rules = append(rec.Rules, calendars.Rule{Month: time.Month(rj.Month), Day: rj.Day, Label: rj.Name})
	}
	return rec, nil
}

// ToJSON converts a calendar record to CalendarJSON.
func (f *CalendarFactory) ToJSON(rec calendars.Record) CalendarJSON {
	cj := CalendarJSON{ID: rec.ID, Name: rec.Name}
	for _, e := range rec.Dates {
		cj.Dates = append(cj.Dates, DateJSON{Date: e.Date.String(), Name: e.Label})
	}
	for _, r := range rec.Rules {
		cj.Rules = append(cj.Rules, RuleJSON{Month: int(r.Month), Day: r.Day, Name: r.Label})
	}
	return cj
}
