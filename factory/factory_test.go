package factory_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/frequency-engine/calendars"
	"github.com/warp/frequency-engine/convert"
	"github.com/warp/frequency-engine/factory"
	"github.com/warp/frequency-engine/moments"
)

func TestCalendarFactory_ParseFullDefinition(t *testing.T) {
	f := factory.NewCalendarFactory()

	rec, err := f.Parse(`{
		"name": "us-federal",
		"dates": [{"date": "2022-05-30", "name": "Memorial Day"}],
		"rules": [{"month": 7, "day": 4, "name": "Independence Day"}]
	}`)
	require.NoError(t, err)

	assert.Equal(t, "us-federal", rec.Name)
	require.Len(t, rec.Dates, 1)
	assert.Equal(t, moments.NewDate(2022, time.May, 30), rec.Dates[0].Date)
	require.Len(t, rec.Rules, 1)
	assert.Equal(t, time.July, rec.Rules[0].Month)

	cal := rec.Calendar()
	assert.True(t, cal.IsHoliday(moments.NewDate(2022, time.May, 30)))
	assert.True(t, cal.IsHoliday(moments.NewDate(2030, time.July, 4)))
}

func TestCalendarFactory_RoundTrip(t *testing.T) {
	f := factory.NewCalendarFactory()
	rec := calendars.Record{
		ID:    "cal-1",
		Name:  "ops",
		Dates: []calendars.DateEntry{{Date: moments.NewDate(2022, time.May, 2), Label: "Company Day"}},
		Rules: []calendars.Rule{{Month: time.December, Day: 25, Label: "Christmas"}},
	}

	back, err := f.FromJSON(f.ToJSON(rec))
	require.NoError(t, err)
	assert.Equal(t, rec, back)
}

func TestCalendarFactory_Invalid(t *testing.T) {
	f := factory.NewCalendarFactory()

	cases := map[string]string{
		"malformed":    `{`,
		"missing name": `{"dates": []}`,
		"bad date":     `{"name": "x", "dates": [{"date": "2022-5-30"}]}`,
		"bad rule":     `{"name": "x", "rules": [{"month": 13, "day": 1}]}`,
	}
	for label, doc := range cases {
		_, err := f.Parse(doc)
		assert.Error(t, err, label)
	}
}

func TestParseOptions_FullObject(t *testing.T) {
	calendars.Register(calendars.NewList("opt-test").AddDate(moments.NewDate(2022, time.May, 3), ""))
	defer calendars.Remove("opt-test")

	on := true
	off := false
	opt, err := factory.ParseOptions(factory.OptionsJSON{
		Base:          "begin",
		Rounding:      "next",
		Trim:          "end",
		Method:        "sum",
		Interpolation: "linear",
		SkipNaNs:      &off,
		SkipHolidays:  &on,
		Calendar:      "opt-test",
	})
	require.NoError(t, err)

	assert.Equal(t, convert.BaseBegin, opt.Base)
	assert.Equal(t, convert.RoundNext, opt.Rounding)
	assert.Equal(t, convert.TrimEnd, opt.Trim)
	assert.Equal(t, convert.MethodSum, opt.Method)
	assert.Equal(t, convert.InterpLinear, opt.Interpolation)
	assert.Equal(t, convert.ToggleOff, opt.SkipNaNs)
	assert.Equal(t, convert.ToggleOn, opt.SkipHolidays)
	require.NotNil(t, opt.Holidays)
	assert.True(t, opt.Holidays(moments.NewDate(2022, time.May, 3)))
	assert.False(t, opt.Holidays(moments.NewDate(2022, time.May, 4)))
}

func TestParseOptions_EmptyMeansDefaults(t *testing.T) {
	opt, err := factory.ParseOptions(factory.OptionsJSON{})
	require.NoError(t, err)

	assert.Equal(t, convert.BaseEnd, opt.Base)
	assert.Equal(t, convert.RoundDefault, opt.Rounding)
	assert.Equal(t, convert.TrimBoth, opt.Trim)
	assert.Equal(t, convert.MethodDefault, opt.Method)
	assert.Equal(t, convert.InterpNone, opt.Interpolation)
	assert.Equal(t, convert.ToggleDefault, opt.SkipNaNs)
	assert.Equal(t, convert.ToggleDefault, opt.SkipHolidays)
	assert.Nil(t, opt.Holidays)
}

func TestParseOptions_Invalid(t *testing.T) {
	_, err := factory.ParseOptions(factory.OptionsJSON{Base: "center"})
	assert.ErrorIs(t, err, convert.ErrInvalidArgument)

	_, err = factory.ParseOptions(factory.OptionsJSON{Method: "median"})
	assert.ErrorIs(t, err, convert.ErrInvalidArgument)

	_, err = factory.ParseOptions(factory.OptionsJSON{Calendar: "no-such-calendar"})
	assert.ErrorIs(t, err, calendars.ErrNotFound)
}

func TestToggleJSON_RoundTrip(t *testing.T) {
	assert.Nil(t, factory.ToggleJSON(convert.ToggleDefault))

	on := factory.ToggleJSON(convert.ToggleOn)
	require.NotNil(t, on)
	assert.True(t, *on)

	off := factory.ToggleJSON(convert.ToggleOff)
	require.NotNil(t, off)
	assert.False(t, *off)
}
