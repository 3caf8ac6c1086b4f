/*
requests.go - Conversion request construction

PURPOSE:
  Builds convert.Options from the wire form carried by conversion
  requests. Enum fields arrive as the strings the engine documents
  ("end", "previous", "both", "mean", "linear"), toggles as optional
  booleans whose absence means "follow the process default", and the
  holiday mask as a registered calendar name resolved here so an unknown
  name fails loudly at the request boundary.

SEE ALSO:
  - convert/options.go: the parsed result
  - api: the callers
*/
package factory

import (
	"fmt"

	"github.com/warp/frequency-engine/calendars"
	"github.com/warp/frequency-engine/convert"
)

// OptionsJSON is the JSON representation of conversion options. The zero
// value parses to the engine defaults.
type OptionsJSON struct {
	Base          string `json:"base,omitempty"`
	Rounding      string `json:"rounding,omitempty"`
	Trim          string `json:"trim,omitempty"`
	Method        string `json:"method,omitempty"`
	Interpolation string `json:"interpolation,omitempty"`
	SkipNaNs      *bool  `json:"skip_nans,omitempty"`
	SkipHolidays  *bool  `json:"skip_holidays,omitempty"`
	Calendar      string `json:"calendar,omitempty"`
}

// ParseOptions converts OptionsJSON to convert.Options. A named calendar
// is resolved against the process registry; an unknown name fails with
// calendars.ErrNotFound.
func ParseOptions(oj OptionsJSON) (convert.Options, error) {
	var opt convert.Options
	var err error
	if opt.Base, err = convert.ParseBase(oj.Base); err != nil {
		return convert.Options{}, err
	}
	if opt.Rounding, err = convert.ParseRounding(oj.Rounding); err != nil {
		return convert.Options{}, err
	}
	if opt.Trim, err = convert.ParseTrim(oj.Trim); err != nil {
		return convert.Options{}, err
	}
	if opt.Method, err = convert.ParseMethod(oj.Method); err != nil {
		return convert.Options{}, err
	}
	if opt.Interpolation, err = convert.ParseInterpolation(oj.Interpolation); err != nil {
		return convert.Options{}, err
	}
	opt.SkipNaNs = parseToggle(oj.SkipNaNs)
	opt.SkipHolidays = parseToggle(oj.SkipHolidays)
	if oj.Calendar != "" {
		cal, ok := calendars.Get(oj.Calendar)
		if !ok {
			return convert.Options{}, fmt.Errorf("calendar %q: %w", oj.Calendar, calendars.ErrNotFound)
		}
		opt.Holidays = cal.IsHoliday
	}
	return opt, nil
}

// ToggleJSON renders a toggle back to its wire form, nil for the
// process default.
func ToggleJSON(t convert.Toggle) *bool {
	switch t {
	case convert.ToggleOn:
		on := true
		return &on
	case convert.ToggleOff:
		off := false
		return &off
	}
	return nil
}

func parseToggle(b *bool) convert.Toggle {
	switch {
	case b == nil:
		return convert.ToggleDefault
	case *b:
		return convert.ToggleOn
	default:
		return convert.ToggleOff
	}
}
