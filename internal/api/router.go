package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"visit-schedule-service/internal/api/handlers"
	"visit-schedule-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(planner *services.Planner, corsOrigins []string) http.Handler {
	sessions := &handlers.SessionHandler{Planner: planner}
	timeline := &handlers.TimelineHandler{Planner: planner}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(loggingMiddleware)
	r.Use(chimiddleware.Recoverer)
	r.Use(corsMiddleware(corsOrigins))

	r.Get("/health", handlers.Health)

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", sessions.Create)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", sessions.Get)
			r.Delete("/", sessions.Discard)
			r.Put("/trip", sessions.UpdateTrip)

			r.Get("/origins", sessions.ListOrigins)
			r.Post("/origins", sessions.RegisterOrigin)

			r.Get("/timeline", timeline.Timeline)

			r.Post("/destinations", sessions.AddDestination)
			r.Post("/destinations/import", sessions.ImportLegacy)
			r.Route("/destinations/{index}", func(r chi.Router) {
				r.Delete("/", sessions.DeleteDestination)
				r.Get("/candidates", timeline.Candidates)
				r.Put("/pin", timeline.Pin)
				r.Delete("/pin", timeline.Unpin)
			})
		})
	})

	return r
}
