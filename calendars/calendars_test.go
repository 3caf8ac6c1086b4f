package calendars_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/frequency-engine/calendars"
	"github.com/warp/frequency-engine/moments"
)

func TestList_DatesAndRules(t *testing.T) {
	// GIVEN: an explicit date and an annual rule
	cal := calendars.NewList("us-federal").
		AddDate(moments.NewDate(2022, time.May, 30), "Memorial Day").
		AddRule(time.July, 4, "Independence Day")

	assert.Equal(t, "us-federal", cal.Name())

	// THEN: the explicit date matches only in its own year
	assert.True(t, cal.IsHoliday(moments.NewDate(2022, time.May, 30)))
	assert.False(t, cal.IsHoliday(moments.NewDate(2023, time.May, 30)))

	// AND: the rule matches every year
	assert.True(t, cal.IsHoliday(moments.NewDate(2022, time.July, 4)))
	assert.True(t, cal.IsHoliday(moments.NewDate(1976, time.July, 4)))
	assert.False(t, cal.IsHoliday(moments.NewDate(2022, time.July, 5)))
}

func TestList_InYear_SortedAndDeduplicated(t *testing.T) {
	cal := calendars.NewList("mix").
		AddRule(time.January, 1, "New Year").
		AddDate(moments.NewDate(2022, time.December, 26), "Boxing Day observed").
		AddDate(moments.NewDate(2022, time.January, 1), "New Year explicit")

	hs := cal.InYear(2022)
	require.Len(t, hs, 2)
	assert.Equal(t, moments.NewDate(2022, time.January, 1), hs[0].Date)
	assert.Equal(t, "New Year explicit", hs[0].Label)
	assert.Equal(t, moments.NewDate(2022, time.December, 26), hs[1].Date)
}

func TestList_InYear_LeapRule(t *testing.T) {
	cal := calendars.NewList("leap").AddRule(time.February, 29, "Leap Day")

	assert.Len(t, cal.InYear(2024), 1)
	assert.Empty(t, cal.InYear(2023))
}

func TestWeekendOnly_MasksNothingOnWeekdays(t *testing.T) {
	cal := calendars.WeekendOnly{}

	assert.Equal(t, "weekend-only", cal.Name())
	assert.True(t, cal.IsHoliday(moments.NewDate(2022, time.May, 7)))  // Saturday
	assert.True(t, cal.IsHoliday(moments.NewDate(2022, time.May, 8)))  // Sunday
	assert.False(t, cal.IsHoliday(moments.NewDate(2022, time.May, 9))) // Monday
}

func TestRegistry_RegisterGetReplaceRemove(t *testing.T) {
	reg := calendars.NewRegistry()
	reg.Register(calendars.NewList("b").AddRule(time.January, 1, ""))
	reg.Register(calendars.NewList("a"))

	assert.Equal(t, []string{"a", "b"}, reg.Names())

	got, ok := reg.Get("b")
	require.True(t, ok)
	assert.True(t, got.IsHoliday(moments.NewDate(2030, time.January, 1)))

	// Re-registering the same name replaces the calendar.
	reg.Register(calendars.NewList("b"))
	got, ok = reg.Get("b")
	require.True(t, ok)
	assert.False(t, got.IsHoliday(moments.NewDate(2030, time.January, 1)))

	reg.Remove("b")
	_, ok = reg.Get("b")
	assert.False(t, ok)
	assert.Equal(t, []string{"a"}, reg.Names())
}

func TestDefaultRegistry_PackageHelpers(t *testing.T) {
	defer calendars.Remove("tmp-test-cal")

	calendars.Register(calendars.NewList("tmp-test-cal"))
	_, ok := calendars.Get("tmp-test-cal")
	assert.True(t, ok)
	assert.Contains(t, calendars.Names(), "tmp-test-cal")
}

func TestParseYAML_FullDefinition(t *testing.T) {
	doc := []byte(`
name: us-federal
dates:
  - date: 2022-05-30
    name: Memorial Day
rules:
  - month: 7
    day: 4
    name: Independence Day
`)

	cal, err := calendars.ParseYAML(doc)
	require.NoError(t, err)
	assert.Equal(t, "us-federal", cal.Name())
	assert.True(t, cal.IsHoliday(moments.NewDate(2022, time.May, 30)))
	assert.True(t, cal.IsHoliday(moments.NewDate(2025, time.July, 4)))
	assert.False(t, cal.IsHoliday(moments.NewDate(2022, time.May, 31)))
}

func TestParseYAML_Invalid(t *testing.T) {
	cases := map[string]string{
		"missing name": "dates:\n  - date: 2022-05-30\n",
		"bad date":     "name: x\ndates:\n  - date: 2022-5-30\n",
		"bad rule":     "name: x\nrules:\n  - month: 13\n    day: 1\n",
		"not yaml":     "{",
	}
	for label, doc := range cases {
		_, err := calendars.ParseYAML([]byte(doc))
		assert.Error(t, err, label)
	}
}

func TestLoadFile_NameDefaultsToFileName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "uk-bank.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rules:\n  - month: 12\n    day: 25\n    name: Christmas\n"), 0o644))

	cal, err := calendars.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "uk-bank", cal.Name())
	assert.True(t, cal.IsHoliday(moments.NewDate(2022, time.December, 25)))
}

func TestLoadDir_ReadsYAMLFilesOnly(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yml"), []byte("name: beta\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yaml"), []byte("name: alpha\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignore me"), 0o644))

	lists, err := calendars.LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, lists, 2)
	assert.Equal(t, "alpha", lists[0].Name())
	assert.Equal(t, "beta", lists[1].Name())
}

func TestRecord_MaterializesCalendar(t *testing.T) {
	rec := calendars.Record{
		Name:  "ops",
		Dates: []calendars.DateEntry{{Date: moments.NewDate(2022, time.May, 2), Label: "Company Day"}},
		Rules: []calendars.Rule{{Month: time.December, Day: 25, Label: "Christmas"}},
	}

	cal := rec.Calendar()
	assert.Equal(t, "ops", cal.Name())
	assert.True(t, cal.IsHoliday(moments.NewDate(2022, time.May, 2)))
	assert.True(t, cal.IsHoliday(moments.NewDate(1999, time.December, 25)))
	assert.False(t, cal.IsHoliday(moments.NewDate(2022, time.May, 3)))
}
