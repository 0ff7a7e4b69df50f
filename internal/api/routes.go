package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/calmarendian/calendar-api/internal/config"
)

// SetupRoutes configures all HTTP routes and returns the router.
//
// Date conversion routes are public; chronicle mutations require an API key.
func SetupRoutes(handlers *Handlers, cfg *config.Config, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(Recovery(logger))
	r.Use(RequestLogger(logger))
	r.Use(CORS())

	r.Get("/health", handlers.HealthCheck)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/dates", func(r chi.Router) {
			r.Get("/elements", handlers.GetDateFromElements)
			r.Get("/adr/{adr}", handlers.GetDateByADR)
			r.Get("/{date}", handlers.GetDate)
		})

		r.Route("/events", func(r chi.Router) {
			r.Get("/date/{date}", handlers.GetEventsByDate)
			r.Get("/range", handlers.GetEventsInRange)

			// Mutations require an API key
			r.Group(func(r chi.Router) {
				r.Use(RequireAPIKey(cfg, logger))
				r.Post("/", handlers.CreateEvent)
				r.Delete("/{id}", handlers.DeleteEvent)
			})
		})
	})

	return r
}
