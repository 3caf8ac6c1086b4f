/*
handlers.go - HTTP API handlers for the frequency engine

PURPOSE:
  Exposes the conversion engine via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Frequencies:
    GET    /api/frequencies            List supported frequency tags

  Conversion:
    POST   /api/convert/moment         Convert a single moment
    POST   /api/convert/range          Convert a contiguous range
    POST   /api/convert/series         Retarget a value series

  Moments:
    POST   /api/moments/describe       Decompose a moment literal
    POST   /api/moments/shift          Step a moment by n periods
    POST   /api/moments/diff           Distance between two moments

  Calendars:
    GET    /api/calendars              List stored calendars
    POST   /api/calendars              Create/replace a calendar
    GET    /api/calendars/{id}         Get one calendar
    GET    /api/calendars/{id}/holidays  Holidays in one year
    DELETE /api/calendars/{id}         Delete a calendar

  Options:
    GET    /api/options                Read process conversion defaults
    PUT    /api/options                Replace process conversion defaults

  Scenarios:
    GET    /api/scenarios              List demo scenarios
    POST   /api/scenarios/load         Load a demo scenario

ARCHITECTURE:
  Handler struct holds all dependencies:
  - Store: calendar persistence
  - Registry: in-process calendars available to conversions
  - Options: process-wide conversion defaults
  - CalendarFactory: JSON to Record conversion

REQUEST FLOW:
  1. Parse HTTP request
  2. Validate input
  3. Call domain logic (convert, series, calendars)
  4. Serialize response
  5. Handle errors

ERROR HANDLING:
  Domain errors map onto HTTP status codes:
  - 400: parse errors, mixed frequencies, illegal operations,
         invalid option arguments
  - 404: unknown calendar id or name
  - 409: round_to=current landing on a weekend boundary
  - 422: conversion pair not implemented
  - 500: storage failures

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo scenario loaders
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/warp/frequency-engine/calendars"
	"github.com/warp/frequency-engine/convert"
	"github.com/warp/frequency-engine/factory"
	"github.com/warp/frequency-engine/moments"
	"github.com/warp/frequency-engine/options"
	"github.com/warp/frequency-engine/series"
)

const timeFormat = time.RFC3339

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store           calendars.Store
	Registry        *calendars.Registry
	Options         *options.Store
	CalendarFactory *factory.CalendarFactory

	// Track currently loaded scenario
	currentScenario string
}

// NewHandler creates a new handler backed by the given store, wired to the
// process-wide registry and options store.
func NewHandler(store calendars.Store) *Handler {
	return &Handler{
		Store:           store,
		Registry:        calendars.DefaultRegistry(),
		Options:         options.Default(),
		CalendarFactory: factory.NewCalendarFactory(),
	}
}

// SyncRegistry loads every stored calendar into the registry. Called on
// startup and after scenario loads so conversions see stored definitions.
func (h *Handler) SyncRegistry(ctx context.Context) error {
	recs, err := h.Store.List(ctx)
	if err != nil {
		return err
	}
	for _, rec := range recs {
		h.Registry.Register(rec.Calendar())
	}
	return nil
}

// =============================================================================
// FREQUENCY HANDLERS
// =============================================================================

// supportedFrequencies enumerates every calendar-bearing tag: twelve
// yearly fiscal offsets, the three quarterly mod-3 families, monthly,
// seven weekly end days, daily and business daily.
func supportedFrequencies() []moments.Frequency {
	var fs []moments.Frequency
	for month := 1; month <= 12; month++ {
		fs = append(fs, moments.YearlyEnding(month))
	}
	for month := 1; month <= 3; month++ {
		fs = append(fs, moments.QuarterlyEnding(month))
	}
	fs = append(fs, moments.M)
	for day := 1; day <= 7; day++ {
		fs = append(fs, moments.WeeklyEnding(day))
	}
	return append(fs, moments.D, moments.BD)
}

// ListFrequencies returns the supported frequency tags.
func (h *Handler) ListFrequencies(w http.ResponseWriter, r *http.Request) {
	fs := supportedFrequencies()
	dtos := make([]FrequencyDTO, len(fs))
	for i, f := range fs {
		dto := FrequencyDTO{
			Tag:            f.String(),
			Class:          f.Class().String(),
			PeriodsPerYear: f.PeriodsPerYear(),
		}
		switch f.Class() {
		case moments.Yearly, moments.Quarterly:
			dto.EndMonth = f.EndMonth()
		case moments.Weekly:
			dto.EndDay = f.EndDay()
		}
		dtos[i] = dto
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// CONVERSION HANDLERS
// =============================================================================

// ConvertMoment converts a single moment to another frequency.
func (h *Handler) ConvertMoment(w http.ResponseWriter, r *http.Request) {
	var req ConvertMomentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	to, err := moments.ParseFrequency(req.To)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	m, err := moments.ParseMoment(req.Moment)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	opt, err := factory.ParseOptions(req.Options)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	got, err := convert.Moment(to, m, opt)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ConvertMomentResponse{
		Moment:    got.String(),
		Frequency: got.Frequency().String(),
		Ordinal:   got.Ordinal(),
	})
}

// ConvertRange converts a contiguous range to another frequency.
func (h *Handler) ConvertRange(w http.ResponseWriter, r *http.Request) {
	var req ConvertRangeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	to, err := moments.ParseFrequency(req.To)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	rng, err := moments.ParseRange(req.Range)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	opt, err := factory.ParseOptions(req.Options)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	got, err := convert.Range(to, rng, opt)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toRangeResponse(got))
}

// ConvertSeries retargets a value series to another frequency.
func (h *Handler) ConvertSeries(w http.ResponseWriter, r *http.Request) {
	var req ConvertSeriesRequest
	if !decodeBody(w, r, &req) {
		return
	}

	to, err := moments.ParseFrequency(req.To)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	start, err := moments.ParseMoment(req.Start)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if len(req.Values) == 0 {
		writeError(w, http.StatusBadRequest, "Series requires at least one value", nil)
		return
	}
	values, err := decodeValues(req.Values)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid series value", err)
		return
	}
	opt, err := factory.ParseOptions(req.Options)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	got, err := series.New(start, values).Convert(to, opt)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toSeriesResponse(got))
}

func toSeriesResponse(s *series.Series) ConvertSeriesResponse {
	resp := ConvertSeriesResponse{
		Range:     s.Range().String(),
		Frequency: s.Frequency().String(),
		Values:    encodeValues(s.Values()),
	}
	if s.Len() > 0 {
		resp.Start = s.First().String()
	}
	return resp
}

// =============================================================================
// MOMENT HANDLERS
// =============================================================================

// DescribeMoment decomposes a moment literal.
func (h *Handler) DescribeMoment(w http.ResponseWriter, r *http.Request) {
	var req DescribeMomentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	m, err := moments.ParseMoment(req.Moment)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toMomentDTO(m))
}

// ShiftMoment steps a moment by a whole number of its own periods.
func (h *Handler) ShiftMoment(w http.ResponseWriter, r *http.Request) {
	var req ShiftMomentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	m, err := moments.ParseMoment(req.Moment)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toMomentDTO(m.Shift(req.By)))
}

// DiffMoments returns the signed distance a-b between two moments of the
// same frequency. Mixed frequencies are a 400, matching the core contract.
func (h *Handler) DiffMoments(w http.ResponseWriter, r *http.Request) {
	var req DiffMomentsRequest
	if !decodeBody(w, r, &req) {
		return
	}

	a, err := moments.ParseMoment(req.A)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	b, err := moments.ParseMoment(req.B)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	diff, err := moments.Sub(a, b)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	d := diff.(moments.Duration)

	writeJSON(w, http.StatusOK, DiffMomentsResponse{
		Count:     d.Count(),
		Frequency: d.Frequency().String(),
	})
}

// =============================================================================
// CALENDAR HANDLERS
// =============================================================================

// ListCalendars returns all stored calendar definitions.
func (h *Handler) ListCalendars(w http.ResponseWriter, r *http.Request) {
	recs, err := h.Store.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list calendars", err)
		return
	}

	dtos := make([]CalendarDTO, len(recs))
	for i, rec := range recs {
		dtos[i] = toCalendarDTO(h.CalendarFactory, rec)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateCalendar stores a calendar definition (upsert by name) and
// registers it for conversions.
func (h *Handler) CreateCalendar(w http.ResponseWriter, r *http.Request) {
	var cj factory.CalendarJSON
	if !decodeBody(w, r, &cj) {
		return
	}

	rec, err := h.CalendarFactory.FromJSON(cj)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid calendar definition", err)
		return
	}

	saved, err := h.Store.Save(r.Context(), rec)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save calendar", err)
		return
	}
	h.Registry.Register(saved.Calendar())

	writeJSON(w, http.StatusCreated, toCalendarDTO(h.CalendarFactory, saved))
}

// GetCalendar returns one stored calendar by id.
func (h *Handler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	rec, err := h.Store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCalendarDTO(h.CalendarFactory, rec))
}

// ListCalendarHolidays materializes one calendar's holidays for a year.
// GET /api/calendars/{id}/holidays?year=2022
func (h *Handler) ListCalendarHolidays(w http.ResponseWriter, r *http.Request) {
	rec, err := h.Store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid or missing year parameter", err)
		return
	}

	holidays := rec.Calendar().InYear(year)
	dtos := make([]HolidayDTO, len(holidays))
	for i, hol := range holidays {
		dtos[i] = HolidayDTO{Date: hol.Date.String(), Name: hol.Label}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// DeleteCalendar removes a stored calendar and unregisters it.
func (h *Handler) DeleteCalendar(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	rec, err := h.Store.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if err := h.Store.Delete(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	h.Registry.Remove(rec.Name)

	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// OPTIONS HANDLERS
// =============================================================================

// GetOptions returns the process conversion defaults.
func (h *Handler) GetOptions(w http.ResponseWriter, r *http.Request) {
	snap := h.Options.Snapshot()
	writeJSON(w, http.StatusOK, OptionsDTO{
		SkipHolidays: snap.SkipHolidays,
		SkipNaNs:     snap.SkipNaNs,
		Calendar:     snap.Calendar,
	})
}

// PutOptions replaces the process conversion defaults. A named calendar
// must be registered.
func (h *Handler) PutOptions(w http.ResponseWriter, r *http.Request) {
	var req OptionsDTO
	if !decodeBody(w, r, &req) {
		return
	}

	if req.Calendar != "" {
		if _, ok := h.Registry.Get(req.Calendar); !ok {
			writeError(w, http.StatusNotFound, "Calendar not registered", errors.New(req.Calendar))
			return
		}
	}

	h.Options.Replace(options.Options{
		SkipHolidays: req.SkipHolidays,
		SkipNaNs:     req.SkipNaNs,
		Calendar:     req.Calendar,
	})

	h.GetOptions(w, r)
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

// decodeBody parses the request body, writing a 400 on malformed JSON.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return false
	}
	return true
}

// writeDomainError maps a domain error onto its HTTP status.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, calendars.ErrNotFound):
		writeCoded(w, http.StatusNotFound, "not_found", err)
	case convert.IsWeekendBoundary(err):
		writeCoded(w, http.StatusConflict, "weekend_boundary", err)
	case convert.IsNotImplemented(err):
		writeCoded(w, http.StatusUnprocessableEntity, "not_implemented", err)
	case convert.IsInvalidArgument(err):
		writeCoded(w, http.StatusBadRequest, "invalid_argument", err)
	case moments.IsParse(err):
		writeCoded(w, http.StatusBadRequest, "parse_error", err)
	case moments.IsMixedFrequency(err):
		writeCoded(w, http.StatusBadRequest, "mixed_frequency", err)
	case moments.IsIllegalOperation(err), moments.IsIllegalComparison(err):
		writeCoded(w, http.StatusBadRequest, "illegal_operation", err)
	default:
		writeCoded(w, http.StatusInternalServerError, "internal", err)
	}
}

func writeCoded(w http.ResponseWriter, status int, code string, err error) {
	writeJSON(w, status, ErrorResponse{Error: err.Error(), Code: code})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
