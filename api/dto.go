/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Complex response wrappers

MOMENT AND RANGE WIRE FORM:
  Moments and ranges travel as their literal text forms ("2020Q1",
  "1988M12", "2022-05-02B", "22Q1:23Q4"), parsed through moments.Parse*.
  Frequencies travel as their tag strings ("Q", "Yearly{6}", "W{5}").

VALUE WIRE FORM:
  Series values are decimal strings ("11.5"), parsed and formatted with
  shopspring/decimal so clients get an exact decimal round-trip instead
  of float formatting noise. A JSON null is the missing value (NaN).

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - factory/requests.go: OptionsJSON, the conversion option wire form
  - factory/calendar.go: CalendarJSON, the calendar wire form
*/
package api

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/warp/frequency-engine/calendars"
	"github.com/warp/frequency-engine/factory"
	"github.com/warp/frequency-engine/moments"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// FrequencyDTO describes one supported frequency tag.
type FrequencyDTO struct {
	Tag            string `json:"tag"`
	Class          string `json:"class"`
	PeriodsPerYear int    `json:"periods_per_year,omitempty"`
	EndMonth       int    `json:"end_month,omitempty"`
	EndDay         int    `json:"end_day,omitempty"`
}

// ConvertMomentRequest converts a single moment to another frequency.
type ConvertMomentRequest struct {
	To      string              `json:"to"`
	Moment  string              `json:"moment"`
	Options factory.OptionsJSON `json:"options,omitempty"`
}

// ConvertMomentResponse is the converted moment.
type ConvertMomentResponse struct {
	Moment    string `json:"moment"`
	Frequency string `json:"frequency"`
	Ordinal   int64  `json:"ordinal"`
}

// ConvertRangeRequest converts a contiguous range to another frequency.
type ConvertRangeRequest struct {
	To      string              `json:"to"`
	Range   string              `json:"range"`
	Options factory.OptionsJSON `json:"options,omitempty"`
}

// ConvertRangeResponse is the converted range. Empty ranges are legitimate
// results and are reported, not errored.
type ConvertRangeResponse struct {
	Range     string `json:"range"`
	First     string `json:"first"`
	Last      string `json:"last"`
	Frequency string `json:"frequency"`
	Length    int    `json:"length"`
	Empty     bool   `json:"empty"`
}

// ConvertSeriesRequest retargets a value series to another frequency.
type ConvertSeriesRequest struct {
	To      string              `json:"to"`
	Start   string              `json:"start"`
	Values  []*string           `json:"values"`
	Options factory.OptionsJSON `json:"options,omitempty"`
}

// ConvertSeriesResponse is the retargeted series.
type ConvertSeriesResponse struct {
	Range     string    `json:"range"`
	Start     string    `json:"start"`
	Frequency string    `json:"frequency"`
	Values    []*string `json:"values"`
}

// DescribeMomentRequest asks for the decomposition of one moment literal.
type DescribeMomentRequest struct {
	Moment string `json:"moment"`
}

// MomentDTO is the full decomposition of a moment.
type MomentDTO struct {
	Moment    string `json:"moment"`
	Frequency string `json:"frequency"`
	Ordinal   int64  `json:"ordinal"`
	Year      *int   `json:"year,omitempty"`
	Period    *int   `json:"period,omitempty"`
	FirstDate string `json:"first_date,omitempty"`
	LastDate  string `json:"last_date,omitempty"`
}

// ShiftMomentRequest steps a moment by a whole number of its own periods.
type ShiftMomentRequest struct {
	Moment string `json:"moment"`
	By     int64  `json:"by"`
}

// DiffMomentsRequest asks for the distance between two moments.
type DiffMomentsRequest struct {
	A string `json:"a"`
	B string `json:"b"`
}

// DiffMomentsResponse is the signed distance a-b in periods.
type DiffMomentsResponse struct {
	Count     int64  `json:"count"`
	Frequency string `json:"frequency"`
}

// CalendarDTO represents a stored calendar definition.
type CalendarDTO struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Dates     []factory.DateJSON `json:"dates,omitempty"`
	Rules     []factory.RuleJSON `json:"rules,omitempty"`
	CreatedAt string             `json:"created_at,omitempty"`
	UpdatedAt string             `json:"updated_at,omitempty"`
}

// HolidayDTO is one materialized holiday date.
type HolidayDTO struct {
	Date string `json:"date"`
	Name string `json:"name,omitempty"`
}

// OptionsDTO mirrors the process options store.
type OptionsDTO struct {
	SkipHolidays bool   `json:"skip_holidays"`
	SkipNaNs     bool   `json:"skip_nans"`
	Calendar     string `json:"calendar,omitempty"`
}

// ScenarioDTO represents a demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category,omitempty"`
}

// LoadScenarioRequest selects the scenario to load.
type LoadScenarioRequest struct {
	ScenarioID string `json:"scenario_id"`
}

// ScenarioResultDTO reports what a loaded scenario set up and the sample
// conversions it ran.
type ScenarioResultDTO struct {
	Scenario    string                  `json:"scenario"`
	Calendars   []string                `json:"calendars,omitempty"`
	Conversions []ScenarioConversionDTO `json:"conversions"`
}

// ScenarioConversionDTO is one sample conversion inside a scenario.
type ScenarioConversionDTO struct {
	Label  string                `json:"label"`
	Source string                `json:"source"`
	Result ConvertSeriesResponse `json:"result"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

// decodeValues parses decimal-string values, mapping null to NaN.
func decodeValues(in []*string) ([]float64, error) {
	out := make([]float64, len(in))
	for i, s := range in {
		if s == nil {
			out[i] = math.NaN()
			continue
		}
		d, err := decimal.NewFromString(*s)
		if err != nil {
			return nil, err
		}
		out[i], _ = d.Float64()
	}
	return out, nil
}

// encodeValues formats values as decimal strings, mapping NaN to null.
func encodeValues(in []float64) []*string {
	out := make([]*string, len(in))
	for i, v := range in {
		if math.IsNaN(v) {
			continue
		}
		s := decimal.NewFromFloat(v).String()
		out[i] = &s
	}
	return out
}

func toMomentDTO(m moments.Moment) MomentDTO {
	dto := MomentDTO{
		Moment:    m.String(),
		Frequency: m.Frequency().String(),
		Ordinal:   m.Ordinal(),
	}
	if m.Frequency().IsYP() {
		y, p := m.YearPeriod()
		dto.Year = &y
		dto.Period = &p
	}
	if m.Frequency().HasDates() {
		dto.FirstDate = m.FirstDate().String()
		dto.LastDate = m.LastDate().String()
	}
	return dto
}

func toRangeResponse(r moments.Range) ConvertRangeResponse {
	return ConvertRangeResponse{
		Range:     r.String(),
		First:     r.First().String(),
		Last:      r.Last().String(),
		Frequency: r.Frequency().String(),
		Length:    r.Len(),
		Empty:     r.IsEmpty(),
	}
}

func toCalendarDTO(f *factory.CalendarFactory, rec calendars.Record) CalendarDTO {
	cj := f.ToJSON(rec)
	dto := CalendarDTO{
		ID:    rec.ID,
		Name:  rec.Name,
		Dates: cj.Dates,
		Rules: cj.Rules,
	}
	if !rec.CreatedAt.IsZero() {
		dto.CreatedAt = rec.CreatedAt.Format(timeFormat)
	}
	if !rec.UpdatedAt.IsZero() {
		dto.UpdatedAt = rec.UpdatedAt.Format(timeFormat)
	}
	return dto
}
