/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:

	Provides pre-built scenarios that load calendars and run sample
	conversions demonstrating specific engine features. Each scenario
	returns the conversions it ran so a client can display them.

AVAILABLE SCENARIOS:

	yearly-refine:     Yearly series repeated across quarters
	quarterly-mean:    Quarterly series averaged into fiscal years
	trading-month:     Business-daily series aggregated into months,
	                   with and without the holiday mask
	weekly-linear:     Weekly series read linearly into months

HOW SCENARIOS WORK:
 1. Upsert any calendars the scenario needs into the store
 2. Register them for conversions
 3. Run the sample series conversions
 4. Report the results

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "quarterly-mean"}

ADDING NEW SCENARIOS:
 1. Add to 'scenarios' slice with ID, name, description
 2. Create loader function: loadXxxScenario(ctx, h)
 3. Add case to LoadScenario handler

SEE ALSO:
  - handlers.go: writeJSON/writeDomainError helpers
  - series: the container the samples run through
*/
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/warp/frequency-engine/calendars"
	"github.com/warp/frequency-engine/convert"
	"github.com/warp/frequency-engine/moments"
	"github.com/warp/frequency-engine/series"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "yearly-refine",
		Name:        "Yearly to Quarterly",
		Description: "A two-year annual series repeated across its quarters",
		Category:    "refining",
	},
	{
		ID:          "quarterly-mean",
		Name:        "Quarterly Mean",
		Description: "Sixteen quarters starting 1Q2 averaged into complete fiscal years",
		Category:    "coarsening",
	},
	{
		ID:          "trading-month",
		Name:        "Trading Month",
		Description: "42 business days from 2022-05-02 aggregated into complete months, with and without the US federal holiday mask",
		Category:    "calendar",
	},
	{
		ID:          "weekly-linear",
		Name:        "Weekly Linear",
		Description: "A weekly series read as a piecewise-linear function into months",
		Category:    "interpolation",
	},
}

// ListScenarios returns available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// GetCurrentScenario returns the most recently loaded scenario, if any.
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	if h.currentScenario == "" {
		writeJSON(w, http.StatusOK, map[string]any{"scenario": nil})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"scenario": h.currentScenario})
}

// LoadScenario loads a demo scenario.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if !decodeBody(w, r, &req) {
		return
	}

	var result ScenarioResultDTO
	var err error
	switch req.ScenarioID {
	case "yearly-refine":
		result, err = loadYearlyRefineScenario(r.Context(), h)
	case "quarterly-mean":
		result, err = loadQuarterlyMeanScenario(r.Context(), h)
	case "trading-month":
		result, err = loadTradingMonthScenario(r.Context(), h)
	case "weekly-linear":
		result, err = loadWeeklyLinearScenario(r.Context(), h)
	default:
		writeError(w, http.StatusNotFound, "Unknown scenario", nil)
		return
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}

	h.currentScenario = req.ScenarioID
	writeJSON(w, http.StatusOK, result)
}

// =============================================================================
// SCENARIO LOADERS
// =============================================================================

// runSample converts one series and wraps it for the scenario report.
func runSample(label string, start string, values []float64, to moments.Frequency, opts ...convert.Options) (ScenarioConversionDTO, error) {
	src := series.New(moments.MustParseMoment(start), values)
	got, err := src.Convert(to, opts...)
	if err != nil {
		return ScenarioConversionDTO{}, err
	}
	return ScenarioConversionDTO{
		Label:  label,
		Source: src.Range().String(),
		Result: toSeriesResponse(got),
	}, nil
}

func loadYearlyRefineScenario(_ context.Context, _ *Handler) (ScenarioResultDTO, error) {
	// [1,2] starting 22Y lands on 22Q1:23Q4 as [1,1,1,1,2,2,2,2].
	repeated, err := runSample("const repetition", "22Y", []float64{1, 2}, moments.Q)
	if err != nil {
		return ScenarioResultDTO{}, err
	}
	linear, err := runSample("linear interpolation", "22Y", []float64{1, 2}, moments.Q,
		convert.Options{Interpolation: convert.InterpLinear})
	if err != nil {
		return ScenarioResultDTO{}, err
	}
	return ScenarioResultDTO{
		Scenario:    "yearly-refine",
		Conversions: []ScenarioConversionDTO{repeated, linear},
	}, nil
}

func loadQuarterlyMeanScenario(_ context.Context, _ *Handler) (ScenarioResultDTO, error) {
	// Sixteen half-repeated values starting 1Q2; only years 2..4 are
	// completely covered, so the mean lands on 2Y:4Y as [3,5,7].
	values := []float64{1, 1, 2, 2, 3, 3, 4, 4, 5, 5, 6, 6, 7, 7, 8, 8}
	mean, err := runSample("mean", "1Q2", values, moments.Y,
		convert.Options{Method: convert.MethodMean})
	if err != nil {
		return ScenarioResultDTO{}, err
	}
	sum, err := runSample("sum", "1Q2", values, moments.Y,
		convert.Options{Method: convert.MethodSum})
	if err != nil {
		return ScenarioResultDTO{}, err
	}
	return ScenarioResultDTO{
		Scenario:    "quarterly-mean",
		Conversions: []ScenarioConversionDTO{mean, sum},
	}, nil
}

func loadTradingMonthScenario(ctx context.Context, h *Handler) (ScenarioResultDTO, error) {
	rec := calendars.Record{
		Name: "us-federal",
		Dates: []calendars.DateEntry{
			{Date: moments.NewDate(2022, time.May, 30), Label: "Memorial Day"},
			{Date: moments.NewDate(2022, time.June, 20), Label: "Juneteenth (observed)"},
		},
		Rules: []calendars.Rule{
			{Month: time.July, Day: 4, Label: "Independence Day"},
			{Month: time.December, Day: 25, Label: "Christmas Day"},
		},
	}
	saved, err := h.Store.Save(ctx, rec)
	if err != nil {
		return ScenarioResultDTO{}, err
	}
	cal := saved.Calendar()
	h.Registry.Register(cal)

	// 42 business days from Monday 2022-05-02: May is the only complete
	// month, mean 11.5 over its 22 trading days.
	values := make([]float64, 42)
	for i := range values {
		values[i] = float64(i + 1)
	}
	plain, err := runSample("monthly mean", "2022-05-02B", values, moments.M)
	if err != nil {
		return ScenarioResultDTO{}, err
	}
	masked, err := runSample("monthly mean, holidays skipped", "2022-05-02B", values, moments.M,
		convert.Options{SkipHolidays: convert.ToggleOn, Holidays: cal.IsHoliday})
	if err != nil {
		return ScenarioResultDTO{}, err
	}
	return ScenarioResultDTO{
		Scenario:    "trading-month",
		Calendars:   []string{saved.Name},
		Conversions: []ScenarioConversionDTO{plain, masked},
	}, nil
}

func loadWeeklyLinearScenario(_ context.Context, _ *Handler) (ScenarioResultDTO, error) {
	// Thirteen Sunday-ended weeks spanning 2022 Q1; month boundaries cut
	// weeks, so the linear reading smooths the misalignment.
	values := make([]float64, 13)
	for i := range values {
		values[i] = float64(10 + i)
	}
	discrete, err := runSample("discrete mean", "2022-01-02W", values, moments.M,
		convert.Options{Method: convert.MethodMean})
	if err != nil {
		return ScenarioResultDTO{}, err
	}
	linear, err := runSample("linear mean", "2022-01-02W", values, moments.M,
		convert.Options{Method: convert.MethodMean, Interpolation: convert.InterpLinear})
	if err != nil {
		return ScenarioResultDTO{}, err
	}
	return ScenarioResultDTO{
		Scenario:    "weekly-linear",
		Conversions: []ScenarioConversionDTO{discrete, linear},
	}, nil
}
