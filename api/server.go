/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

ROUTER: chi
  Chi was chosen for:
  - Lightweight and fast
  - Context-based
  - Middleware support
  - RESTful route patterns

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for frontend clients

ROUTE GROUPS:
  /api/frequencies      Supported frequency tags
  /api/convert/*        Moment, range, series conversion
  /api/moments/*        Decomposition and arithmetic
  /api/calendars/*      Holiday calendar management
  /api/options          Process conversion defaults
  /api/scenarios/*      Demo scenarios

SECURITY NOTE:
  No authentication middleware currently. All endpoints are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/frequencies", h.ListFrequencies)

		// Conversion routes
		r.Route("/convert", func(r chi.Router) {
			r.Post("/moment", h.ConvertMoment)
			r.Post("/range", h.ConvertRange)
			r.Post("/series", h.ConvertSeries)
		})

		// Moment routes
		r.Route("/moments", func(r chi.Router) {
			r.Post("/describe", h.DescribeMoment)
			r.Post("/shift", h.ShiftMoment)
			r.Post("/diff", h.DiffMoments)
		})

		// Calendar routes
		r.Route("/calendars", func(r chi.Router) {
			r.Get("/", h.ListCalendars)
			r.Post("/", h.CreateCalendar)
			r.Get("/{id}", h.GetCalendar)
			r.Get("/{id}/holidays", h.ListCalendarHolidays)
			r.Delete("/{id}", h.DeleteCalendar)
		})

		// Option routes
		r.Route("/options", func(r chi.Router) {
			r.Get("/", h.GetOptions)
			r.Put("/", h.PutOptions)
		})

		// Scenario routes
		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Get("/current", h.GetCurrentScenario)
			r.Post("/load", h.LoadScenario)
		})
	})

	return r
}
