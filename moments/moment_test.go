package moments_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/frequency-engine/moments"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

// panicsWith runs fn and asserts it panics with an error matching the
// sentinel.
func panicsWith(t *testing.T, sentinel error, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected a panic")
		err, ok := r.(error)
		require.True(t, ok, "panic value should be an error, got %T", r)
		assert.ErrorIs(t, err, sentinel)
	}()
	fn()
}

func yp(t *testing.T, f moments.Frequency, year, period int) moments.Moment {
	t.Helper()
	m, err := moments.FromYearPeriod(f, year, period)
	require.NoError(t, err)
	return m
}

// =============================================================================
// YEAR-PERIOD DECOMPOSITION
// =============================================================================

func TestMoment_YearPeriod_ExactInverse(t *testing.T) {
	// The decomposition must keep period in 1..periodsPerYear for every
	// ordinal, including those at and below zero, and preserve
	// ppy*year + (period-1) == ordinal.
	for _, f := range []moments.Frequency{
		moments.Y, moments.YearlyEnding(6), moments.Q, moments.QuarterlyEnding(1), moments.M,
	} {
		ppy := f.PeriodsPerYear()
		for ord := int64(-30); ord <= 30; ord++ {
			m := moments.New(f, ord)
			y, p := m.YearPeriod()
			require.GreaterOrEqual(t, p, 1, "%s ordinal %d", f, ord)
			require.LessOrEqual(t, p, ppy, "%s ordinal %d", f, ord)
			require.Equal(t, ord, int64(ppy)*int64(y)+int64(p)-1, "%s ordinal %d", f, ord)

			back, err := moments.FromYearPeriod(f, y, p)
			require.NoError(t, err)
			require.Equal(t, m, back)
		}
	}
}

func TestMoment_YearPeriod_NegativeOrdinals(t *testing.T) {
	y, p := moments.New(moments.Q, -1).YearPeriod()
	assert.Equal(t, -1, y)
	assert.Equal(t, 4, p)

	y, p = moments.New(moments.M, -1).YearPeriod()
	assert.Equal(t, -1, y)
	assert.Equal(t, 12, p)

	y, p = moments.New(moments.Q, 0).YearPeriod()
	assert.Equal(t, 0, y)
	assert.Equal(t, 1, p)
}

func TestFromYearPeriod_Rejections(t *testing.T) {
	_, err := moments.FromYearPeriod(moments.D, 2022, 1)
	assert.ErrorIs(t, err, moments.ErrIllegalOperation)

	_, err = moments.FromYearPeriod(moments.Q, 2022, 5)
	assert.ErrorIs(t, err, moments.ErrIllegalOperation)

	_, err = moments.FromYearPeriod(moments.Q, 2022, 0)
	assert.Error(t, err)
}

// =============================================================================
// DATE ANCHORING
// =============================================================================

func TestMoment_PeriodBoundaries_FiscalOffsets(t *testing.T) {
	cases := []struct {
		m     moments.Moment
		first string
		last  string
	}{
		{moments.MustParseMoment("2020Q1"), "2020-01-01", "2020-03-31"},
		{moments.MustParseMoment("2020Q1{1}"), "2019-11-01", "2020-01-31"},
		{moments.MustParseMoment("2020Q1{2}"), "2019-12-01", "2020-02-29"},
		{moments.MustParseMoment("2020Y"), "2020-01-01", "2020-12-31"},
		{moments.MustParseMoment("2020Y{6}"), "2019-07-01", "2020-06-30"},
		{moments.MustParseMoment("1988M12"), "1988-12-01", "1988-12-31"},
		{moments.MustParseMoment("1Y"), "0001-01-01", "0001-12-31"},
	}
	for _, c := range cases {
		assert.Equal(t, c.first, c.m.FirstDate().String(), "first of %s", c.m)
		assert.Equal(t, c.last, c.m.LastDate().String(), "last of %s", c.m)
	}
}

func TestMoment_Weekly_Boundaries(t *testing.T) {
	// Week 1 of the default (Sunday-ending) calendar is the epoch week.
	w1 := moments.New(moments.W, 1)
	assert.Equal(t, "0001-01-01", w1.FirstDate().String())
	assert.Equal(t, "0001-01-07", w1.LastDate().String())

	// A Thursday-ending week containing Monday 2022-05-02 runs Apr 29..May 5.
	wk := moments.FromDate(moments.WeeklyEnding(4), moments.NewDate(2022, time.May, 2))
	assert.Equal(t, "2022-04-29", wk.FirstDate().String())
	assert.Equal(t, "2022-05-05", wk.LastDate().String())
	assert.Equal(t, 4, wk.LastDate().Weekday())
}

func TestMoment_BusinessDaily_FiveDayBlocks(t *testing.T) {
	// Ordinal 1 is Monday 0001-01-01; each block of five ordinals spans one
	// calendar week.
	b1 := moments.New(moments.BD, 1)
	assert.Equal(t, "0001-01-01", b1.FirstDate().String())
	assert.Equal(t, "0001-01-05", moments.New(moments.BD, 5).FirstDate().String())
	assert.Equal(t, "0001-01-08", moments.New(moments.BD, 6).FirstDate().String())

	// Stepping five business days from a Monday lands on the next Monday.
	mon := moments.FromDate(moments.BD, moments.NewDate(2022, time.May, 2))
	assert.Equal(t, "2022-05-06", mon.Shift(4).FirstDate().String())
	assert.Equal(t, "2022-05-09", mon.Shift(5).FirstDate().String())

	// Round trip through dates for a stretch of ordinals.
	for ord := mon.Ordinal() - 200; ord <= mon.Ordinal()+200; ord++ {
		m := moments.New(moments.BD, ord)
		d := m.FirstDate()
		require.False(t, d.IsWeekend(), "ordinal %d maps to weekend %s", ord, d)
		require.Equal(t, m, moments.FromDate(moments.BD, d), "round trip at %d", ord)
	}
}

func TestFromDate_BusinessDaily_WeekendBias(t *testing.T) {
	sat := moments.NewDate(2022, time.May, 7)
	sun := moments.NewDate(2022, time.May, 8)

	// Default bias lands on the preceding Friday.
	assert.Equal(t, "2022-05-06", moments.FromDate(moments.BD, sat).FirstDate().String())
	assert.Equal(t, "2022-05-06", moments.FromDate(moments.BD, sun).FirstDate().String())

	// BiasNext lands on the following Monday.
	assert.Equal(t, "2022-05-09", moments.FromDate(moments.BD, sat, moments.BiasNext).FirstDate().String())
	assert.Equal(t, "2022-05-09", moments.FromDate(moments.BD, sun, moments.BiasNext).FirstDate().String())
}

func TestFromDate_ContainingPeriods(t *testing.T) {
	d := moments.NewDate(2022, time.May, 2)
	assert.Equal(t, moments.MustParseMoment("2022M5"), moments.FromDate(moments.M, d))
	assert.Equal(t, moments.MustParseMoment("2022Q2"), moments.FromDate(moments.Q, d))
	assert.Equal(t, moments.MustParseMoment("2022Y"), moments.FromDate(moments.Y, d))

	// Fiscal-year-ending-June: May 2022 belongs to fiscal 2022.
	fy := moments.FromDate(moments.YearlyEnding(6), d)
	year, period := fy.YearPeriod()
	assert.Equal(t, 2022, year)
	assert.Equal(t, 1, period)

	// July 2022 belongs to fiscal 2023.
	fy = moments.FromDate(moments.YearlyEnding(6), moments.NewDate(2022, time.July, 3))
	assert.Equal(t, 2023, fy.Year())
}

// =============================================================================
// ARITHMETIC
// =============================================================================

func TestMoment_DifferenceInvariant(t *testing.T) {
	// m - (m - k) == k for every frequency.
	for _, f := range []moments.Frequency{
		moments.U, moments.Y, moments.YearlyEnding(3), moments.Q, moments.M,
		moments.W, moments.WeeklyEnding(2), moments.D, moments.BD,
	} {
		m := moments.New(f, 12345)
		for k := int64(-10); k <= 10; k++ {
			require.Equal(t, k, m.Sub(m.Shift(-k)).Count(), "%s k=%d", f, k)
		}
	}
}

func TestMoment_AddSubCompare(t *testing.T) {
	q1 := moments.MustParseMoment("2020Q1")
	q3 := moments.MustParseMoment("2020Q3")

	assert.Equal(t, q3, q1.Add(moments.NewDuration(moments.Q, 2)))
	assert.Equal(t, int64(2), q3.Sub(q1).Count())
	assert.Equal(t, q1, q3.Add(q1.Sub(q3)))
	assert.True(t, q1.Before(q3))
	assert.True(t, q3.After(q1))
	assert.Equal(t, 0, q1.Compare(q1))
	assert.Equal(t, -1, q1.Compare(q3))
}

func TestDuration_Arithmetic(t *testing.T) {
	a := moments.NewDuration(moments.M, 5)
	b := moments.NewDuration(moments.M, 3)

	assert.Equal(t, int64(8), a.Add(b).Count())
	assert.Equal(t, int64(2), a.Sub(b).Count())
	assert.Equal(t, int64(-5), a.Neg().Count())
	assert.Equal(t, int64(6), a.Shift(1).Count())
	assert.Equal(t, 1, a.Compare(b))
	assert.Equal(t, moments.M, a.Frequency())
}

// =============================================================================
// FAILURE POLICY
// =============================================================================

func TestMoment_MixedFrequency_AlwaysPanics(t *testing.T) {
	q := moments.MustParseMoment("2020Q1")
	m := moments.MustParseMoment("2020M2")
	dq := moments.NewDuration(moments.Q, 1)
	dm := moments.NewDuration(moments.M, 1)

	panicsWith(t, moments.ErrMixedFrequency, func() { q.Add(dm) })
	panicsWith(t, moments.ErrMixedFrequency, func() { q.Sub(m) })
	panicsWith(t, moments.ErrMixedFrequency, func() { q.Compare(m) })
	panicsWith(t, moments.ErrMixedFrequency, func() { _ = q.Before(m) })
	panicsWith(t, moments.ErrMixedFrequency, func() { dq.Add(dm) })
	panicsWith(t, moments.ErrMixedFrequency, func() { dq.Sub(dm) })
	panicsWith(t, moments.ErrMixedFrequency, func() { dq.Compare(dm) })

	// Same class, different parameter, still mixed.
	q1 := moments.MustParseMoment("2020Q1{1}")
	panicsWith(t, moments.ErrMixedFrequency, func() { q.Sub(q1) })
}

func TestMoment_EqualityNeverPanics(t *testing.T) {
	q := moments.MustParseMoment("2020Q1")
	q1 := moments.MustParseMoment("2020Q1{1}")

	// Same ordinal, different parameterization: unequal, not an error.
	assert.Equal(t, q.Ordinal(), q1.Ordinal())
	assert.NotEqual(t, q, q1)
}

func TestMoment_CalendarAccessors_RejectWrongClass(t *testing.T) {
	panicsWith(t, moments.ErrIllegalOperation, func() { moments.New(moments.D, 1).YearPeriod() })
	panicsWith(t, moments.ErrIllegalOperation, func() { moments.New(moments.U, 1).FirstDate() })
	panicsWith(t, moments.ErrIllegalOperation, func() { moments.New(moments.U, 1).LastDate() })
	panicsWith(t, moments.ErrIllegalOperation, func() { moments.New(moments.W, 1).MonthSpan() })
	panicsWith(t, moments.ErrIllegalOperation, func() { moments.FromDate(moments.U, moments.NewDate(2022, 1, 1)) })
}

func TestMoment_String(t *testing.T) {
	assert.Equal(t, "2020Q1", moments.MustParseMoment("2020Q1").String())
	assert.Equal(t, "2020Q1{1}", yp(t, moments.QuarterlyEnding(1), 2020, 1).String())
	assert.Equal(t, "2020Y{6}", yp(t, moments.YearlyEnding(6), 2020, 1).String())
	assert.Equal(t, "1988M12", yp(t, moments.M, 1988, 12).String())
	assert.Equal(t, "5U", moments.New(moments.U, 5).String())
	assert.Equal(t, "2022-05-02", moments.FromDate(moments.D, moments.NewDate(2022, time.May, 2)).String())
	assert.Equal(t, "2022-05-02B", moments.FromDate(moments.BD, moments.NewDate(2022, time.May, 2)).String())
	assert.Equal(t, "2022-05-08W", moments.FromDate(moments.W, moments.NewDate(2022, time.May, 2)).String())
	assert.Equal(t, "-5Q2", moments.MustParseMoment("-5Q2").String())
}
