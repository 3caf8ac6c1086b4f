package convert_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/frequency-engine/calendars"
	"github.com/warp/frequency-engine/convert"
	"github.com/warp/frequency-engine/moments"
	"github.com/warp/frequency-engine/options"
)

func seq(n int) []float64 {
	vs := make([]float64, n)
	for i := range vs {
		vs[i] = float64(i + 1)
	}
	return vs
}

func mustConvertValues(t *testing.T, to moments.Frequency, r moments.Range, vs []float64, opts ...convert.Options) (moments.Range, []float64) {
	t.Helper()
	dest, out, err := convert.Values(to, r, vs, opts...)
	require.NoError(t, err)
	require.Len(t, out, dest.Len())
	return dest, out
}

func TestValues_YearlyToQuarterly_ConstRepeats(t *testing.T) {
	// GIVEN: yearly values [1,2] for years 22 and 23
	// THEN:  each value repeats across its four quarters
	r := moments.MustParseRange("22Y:23Y")

	dest, out := mustConvertValues(t, moments.Q, r, []float64{1, 2})
	assert.Equal(t, "22Q1:23Q4", dest.String())
	assert.Equal(t, []float64{1, 1, 1, 1, 2, 2, 2, 2}, out)
}

func TestValues_QuarterlyToYearly_MeanOverCompleteYears(t *testing.T) {
	// GIVEN: [1,1,2,2,3,3,4,4,5,5,6,6,7,7,8,8] starting 1Q2
	// THEN:  the partial years are trimmed and the complete years average
	//        to [3,5,7]
	r := moments.MustParseRange("1Q2:5Q1")
	vs := []float64{1, 1, 2, 2, 3, 3, 4, 4, 5, 5, 6, 6, 7, 7, 8, 8}

	dest, out := mustConvertValues(t, moments.Y, r, vs)
	assert.Equal(t, "2Y:4Y", dest.String())
	assert.Equal(t, []float64{3, 5, 7}, out)
}

func TestValues_BusinessDailyToMonthly_SingleCompleteMonth(t *testing.T) {
	// GIVEN: 42 business-daily values 1..42 starting Monday 2022-05-02
	// THEN:  only May is complete; its 22 business days average 11.5
	first := moments.FromDate(moments.BD, moments.NewDate(2022, 5, 2))
	r := moments.RangeFrom(first, 42)

	dest, out := mustConvertValues(t, moments.M, r, seq(42))
	assert.Equal(t, "2022M5:2022M5", dest.String())
	assert.Equal(t, []float64{11.5}, out)
}

func TestValues_DownsamplingMethods(t *testing.T) {
	r := moments.MustParseRange("1Q2:5Q1")
	vs := []float64{1, 1, 2, 2, 3, 3, 4, 4, 5, 5, 6, 6, 7, 7, 8, 8}

	// Year 2 holds [2,3,3,4].
	_, sums := mustConvertValues(t, moments.Y, r, vs, convert.Options{Method: convert.MethodSum})
	assert.Equal(t, []float64{12, 20, 28}, sums)

	_, begins := mustConvertValues(t, moments.Y, r, vs, convert.Options{Method: convert.MethodBegin})
	assert.Equal(t, []float64{2, 4, 6}, begins)

	_, ends := mustConvertValues(t, moments.Y, r, vs, convert.Options{Method: convert.MethodEnd})
	assert.Equal(t, []float64{4, 6, 8}, ends)
}

func TestValues_MethodDirectionMismatch_Rejected(t *testing.T) {
	years := moments.MustParseRange("22Y:23Y")
	quarters := moments.MustParseRange("2020Q1:2021Q4")

	// Aggregations cannot refine.
	_, _, err := convert.Values(moments.Q, years, []float64{1, 2}, convert.Options{Method: convert.MethodMean})
	require.Error(t, err)
	assert.ErrorIs(t, err, convert.ErrInvalidArgument)

	var iae *convert.InvalidArgumentError
	require.ErrorAs(t, err, &iae)
	assert.Equal(t, "method", iae.Name)
	assert.Equal(t, []string{"const"}, iae.Legal)

	// Const cannot coarsen.
	_, _, err = convert.Values(moments.Y, quarters, seq(8), convert.Options{Method: convert.MethodConst})
	require.Error(t, err)
	assert.ErrorIs(t, err, convert.ErrInvalidArgument)
}

func TestValues_NaNPropagationAndSkip(t *testing.T) {
	// GIVEN: a NaN inside year 3's quarters
	// THEN:  the mean poisons by default and skips on request
	r := moments.MustParseRange("1Q2:5Q1")
	vs := []float64{1, 1, 2, 2, 3, 3, 4, 4, 5, 5, 6, 6, 7, 7, 8, 8}
	vs[7] = math.NaN() // 3Q1

	_, out := mustConvertValues(t, moments.Y, r, vs)
	assert.Equal(t, 3.0, out[0])
	assert.True(t, math.IsNaN(out[1]))
	assert.Equal(t, 7.0, out[2])

	_, skipped := mustConvertValues(t, moments.Y, r, vs, convert.Options{SkipNaNs: convert.ToggleOn})
	assert.InDelta(t, 16.0/3.0, skipped[1], 1e-12)
}

func TestValues_KeptPartialEdge_OutOfRangeContributesNaN(t *testing.T) {
	// Keeping the partial leading year leaves 1Q1 out of range; it
	// contributes NaN unless skipped.
	r := moments.MustParseRange("1Q2:5Q1")
	vs := []float64{1, 1, 2, 2, 3, 3, 4, 4, 5, 5, 6, 6, 7, 7, 8, 8}

	dest, out := mustConvertValues(t, moments.Y, r, vs, convert.Options{Trim: convert.TrimBegin})
	assert.Equal(t, "1Y:4Y", dest.String())
	assert.True(t, math.IsNaN(out[0]))

	_, skipped := mustConvertValues(t, moments.Y, r, vs, convert.Options{Trim: convert.TrimBegin, SkipNaNs: convert.ToggleOn})
	assert.InDelta(t, 4.0/3.0, skipped[0], 1e-12)
}

func TestValues_LinearUpsampling_AnchorBases(t *testing.T) {
	// GIVEN: yearly [1,2] for years 22 and 23 interpolated to quarters
	// THEN:  anchors at year ends give [0.25 .. 2.0] in steps of 0.25;
	//        begin and middle anchors shift the same line
	r := moments.MustParseRange("22Y:23Y")
	vs := []float64{1, 2}

	dest, out := mustConvertValues(t, moments.Q, r, vs, convert.Options{Interpolation: convert.InterpLinear})
	assert.Equal(t, "22Q1:23Q4", dest.String())
	want := []float64{0.25, 0.5, 0.75, 1.0, 1.25, 1.5, 1.75, 2.0}
	for i := range want {
		assert.InDelta(t, want[i], out[i], 1e-12, "quarter %d", i)
	}

	_, beginOut := mustConvertValues(t, moments.Q, r, vs, convert.Options{Interpolation: convert.InterpLinear, Base: convert.BaseBegin})
	wantBegin := []float64{1.0, 1.25, 1.5, 1.75, 2.0, 2.25, 2.5, 2.75}
	for i := range wantBegin {
		assert.InDelta(t, wantBegin[i], beginOut[i], 1e-12, "quarter %d", i)
	}

	_, midOut := mustConvertValues(t, moments.Q, r, vs, convert.Options{Interpolation: convert.InterpLinear, Base: convert.BaseMiddle})
	wantMid := []float64{0.625, 0.875, 1.125, 1.375, 1.625, 1.875, 2.125, 2.375}
	for i := range wantMid {
		assert.InDelta(t, wantMid[i], midOut[i], 1e-12, "quarter %d", i)
	}
}

func TestValues_MiddleBaseWithoutLinear_Rejected(t *testing.T) {
	r := moments.MustParseRange("22Y:23Y")

	_, _, err := convert.Values(moments.Q, r, []float64{1, 2}, convert.Options{Base: convert.BaseMiddle})
	require.Error(t, err)
	assert.ErrorIs(t, err, convert.ErrInvalidArgument)
}

func TestValues_LinearDownsampling_ConstantIsExact(t *testing.T) {
	// A constant source reconstructs to the same constant, so the linear
	// mean matches exactly even across misaligned weekly boundaries.
	first := moments.FromDate(moments.W, moments.NewDate(2022, 4, 25))
	r := moments.RangeFrom(first, 6)
	vs := []float64{5, 5, 5, 5, 5, 5}

	dest, out := mustConvertValues(t, moments.M, r, vs, convert.Options{Interpolation: convert.InterpLinear})
	assert.Equal(t, "2022M5:2022M5", dest.String())
	require.Len(t, out, 1)
	assert.InDelta(t, 5.0, out[0], 1e-9)
}

func TestValues_LinearDownsampling_SumReconstructsDailyRate(t *testing.T) {
	// Daily values of 1.0 sum to the number of days in the month.
	first := moments.FromDate(moments.D, moments.NewDate(2022, 4, 30))
	r := moments.RangeFrom(first, 33) // Apr 30 .. Jun 1
	vs := make([]float64, 33)
	for i := range vs {
		vs[i] = 1
	}

	dest, out := mustConvertValues(t, moments.M, r, vs, convert.Options{Interpolation: convert.InterpLinear, Method: convert.MethodSum})
	assert.Equal(t, "2022M5:2022M5", dest.String())
	require.Len(t, out, 1)
	assert.InDelta(t, 31.0, out[0], 1e-9)
}

func TestValues_BusinessDailyToDaily_WeekendsAreMissing(t *testing.T) {
	// GIVEN: six business days spanning one weekend
	// THEN:  the daily rendition carries NaN on Saturday and Sunday
	first := moments.FromDate(moments.BD, moments.NewDate(2022, 5, 2))
	r := moments.RangeFrom(first, 6) // Mon May 2 .. Mon May 9

	dest, out := mustConvertValues(t, moments.D, r, seq(6))
	assert.Equal(t, "2022-05-02:2022-05-09", dest.String())
	require.Len(t, out, 8)
	assert.Equal(t, []float64{1, 2, 3, 4, 5}, out[:5])
	assert.True(t, math.IsNaN(out[5]))
	assert.True(t, math.IsNaN(out[6]))
	assert.Equal(t, 6.0, out[7])
}

func TestValues_HolidayFilter_DropsObservations(t *testing.T) {
	// GIVEN: one business week with Tuesday declared a holiday
	// THEN:  the weekly mean is taken over the four remaining observations
	first := moments.FromDate(moments.BD, moments.NewDate(2022, 5, 2))
	r := moments.RangeFrom(first, 5)
	vs := []float64{1, 2, 3, 4, 5}

	tuesday := moments.NewDate(2022, 5, 3)
	opts := convert.Options{
		SkipHolidays: convert.ToggleOn,
		Holidays:     func(d moments.Date) bool { return d == tuesday },
	}

	dest, out := mustConvertValues(t, moments.W, r, vs, opts)
	assert.Equal(t, "2022-05-08W:2022-05-08W", dest.String())
	assert.InDelta(t, 3.25, out[0], 1e-12)

	_, plain := mustConvertValues(t, moments.W, r, vs)
	assert.Equal(t, 3.0, plain[0])
}

func TestValues_EqualFineness_MapsOneToOne(t *testing.T) {
	// Sunday-ended weeks against Thursday-ended weeks: each destination
	// week contains exactly one source end day.
	first := moments.FromDate(moments.W, moments.NewDate(2022, 5, 2))
	r := moments.RangeFrom(first, 3)

	dest, out := mustConvertValues(t, moments.WeeklyEnding(4), r, []float64{1, 2, 3})
	assert.Equal(t, 2, dest.Len())
	assert.Equal(t, []float64{1, 2}, out)
}

func TestValues_SameFrequency_CopiesValues(t *testing.T) {
	r := moments.MustParseRange("2020Q1:2020Q4")
	vs := []float64{1, 2, 3, 4}

	dest, out := mustConvertValues(t, moments.Q, r, vs)
	assert.Equal(t, r, dest)
	assert.Equal(t, vs, out)

	out[0] = 99
	assert.Equal(t, 1.0, vs[0])
}

func TestValues_LengthMismatch_Rejected(t *testing.T) {
	r := moments.MustParseRange("2020Q1:2020Q4")

	_, _, err := convert.Values(moments.Y, r, []float64{1, 2})
	require.Error(t, err)
	assert.ErrorIs(t, err, convert.ErrInvalidArgument)

	var iae *convert.InvalidArgumentError
	require.ErrorAs(t, err, &iae)
	assert.Equal(t, "values", iae.Name)
}

func TestValues_EmptySource_EmptyResult(t *testing.T) {
	empty := moments.MustParseRange("2022M8:2022M7")

	dest, out, err := convert.Values(moments.Q, empty, nil)
	require.NoError(t, err)
	assert.True(t, dest.IsEmpty())
	assert.Empty(t, out)
}

func TestValues_ProcessDefaults_FillUnsetToggles(t *testing.T) {
	// GIVEN: the process store enabling holiday skips through a
	//        registered calendar, and a call with no explicit options
	calendars.Register(calendars.NewList("ops-closure").AddDate(moments.NewDate(2022, time.May, 3), "Closure"))
	options.Default().SetSkipHolidays(true)
	options.Default().SetCalendar("ops-closure")
	defer func() {
		options.Default().Reset()
		calendars.Remove("ops-closure")
	}()

	first := moments.FromDate(moments.BD, moments.NewDate(2022, time.May, 2))
	r := moments.RangeFrom(first, 5)
	vs := []float64{1, 2, 3, 4, 5}

	_, out := mustConvertValues(t, moments.W, r, vs)
	assert.InDelta(t, 3.25, out[0], 1e-12)

	// WHEN: the call forces the toggle off
	// THEN: the explicit setting beats the store
	_, plain := mustConvertValues(t, moments.W, r, vs, convert.Options{SkipHolidays: convert.ToggleOff})
	assert.Equal(t, 3.0, plain[0])
}

func TestValues_ProcessDefaults_SkipNaNs(t *testing.T) {
	options.Default().SetSkipNaNs(true)
	defer options.Default().Reset()

	r := moments.MustParseRange("2020Q1:2020Q4")
	vs := []float64{2, math.NaN(), 3, 4}

	_, out := mustConvertValues(t, moments.Y, r, vs)
	assert.Equal(t, 3.0, out[0])

	_, poisoned := mustConvertValues(t, moments.Y, r, vs, convert.Options{SkipNaNs: convert.ToggleOff})
	assert.True(t, math.IsNaN(poisoned[0]))
}
