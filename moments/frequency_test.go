package moments_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/warp/frequency-engine/moments"
)

func TestFrequency_EqualityIsSemantic(t *testing.T) {
	// Default parameters and their explicit forms are the same tag.
	assert.Equal(t, moments.Y, moments.YearlyEnding(12))
	assert.Equal(t, moments.Q, moments.QuarterlyEnding(3))
	assert.Equal(t, moments.W, moments.WeeklyEnding(7))

	// Quarterly end months are a mod-3 family.
	assert.Equal(t, moments.QuarterlyEnding(1), moments.QuarterlyEnding(10))
	assert.Equal(t, moments.QuarterlyEnding(2), moments.QuarterlyEnding(11))
	assert.Equal(t, moments.Q, moments.QuarterlyEnding(12))

	// Different parameters are different tags.
	assert.NotEqual(t, moments.Y, moments.YearlyEnding(6))
	assert.NotEqual(t, moments.QuarterlyEnding(1), moments.QuarterlyEnding(2))
	assert.NotEqual(t, moments.W, moments.WeeklyEnding(5))
	assert.NotEqual(t, moments.D, moments.BD)
}

func TestFrequency_ConstructorsNormalize(t *testing.T) {
	assert.Equal(t, moments.YearlyEnding(1), moments.YearlyEnding(13))
	assert.Equal(t, moments.Y, moments.YearlyEnding(0))
	assert.Equal(t, moments.WeeklyEnding(1), moments.WeeklyEnding(8))
	assert.Equal(t, moments.W, moments.WeeklyEnding(0))
	assert.Equal(t, moments.QuarterlyEnding(2), moments.QuarterlyEnding(-1))
}

func TestFrequency_Accessors(t *testing.T) {
	assert.Equal(t, 1, moments.Y.PeriodsPerYear())
	assert.Equal(t, 4, moments.Q.PeriodsPerYear())
	assert.Equal(t, 12, moments.M.PeriodsPerYear())
	assert.Equal(t, 0, moments.W.PeriodsPerYear())
	assert.Equal(t, 0, moments.D.PeriodsPerYear())

	assert.True(t, moments.Y.IsYP())
	assert.True(t, moments.M.IsYP())
	assert.False(t, moments.W.IsYP())
	assert.False(t, moments.U.IsYP())

	assert.True(t, moments.D.HasDates())
	assert.False(t, moments.U.HasDates())

	assert.Equal(t, 6, moments.YearlyEnding(6).EndMonth())
	assert.Equal(t, 1, moments.QuarterlyEnding(1).EndMonth())
	assert.Equal(t, 0, moments.M.EndMonth())
	assert.Equal(t, 4, moments.WeeklyEnding(4).EndDay())
	assert.Equal(t, 0, moments.D.EndDay())
}

func TestFrequency_String(t *testing.T) {
	assert.Equal(t, "Yearly", moments.Y.String())
	assert.Equal(t, "Yearly{6}", moments.YearlyEnding(6).String())
	assert.Equal(t, "Quarterly", moments.Q.String())
	assert.Equal(t, "Quarterly{1}", moments.QuarterlyEnding(1).String())
	assert.Equal(t, "Monthly", moments.M.String())
	assert.Equal(t, "Weekly", moments.W.String())
	assert.Equal(t, "Weekly{4}", moments.WeeklyEnding(4).String())
	assert.Equal(t, "Daily", moments.D.String())
	assert.Equal(t, "BusinessDaily", moments.BD.String())
	assert.Equal(t, "Unit", moments.U.String())
}

func TestFrequency_ZeroValueIsUnit(t *testing.T) {
	var f moments.Frequency
	assert.Equal(t, moments.U, f)
	assert.Equal(t, moments.Unit, f.Class())
}
