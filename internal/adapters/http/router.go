// Package http provides the inbound HTTP adapter of "emuctl serve": the
// health and status routes and the server lifecycle.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/emuctl/internal/adapters/http/handlers"
)

// NewRouter creates an HTTP handler with all routes registered.
// Middleware is applied globally in the order given.
func NewRouter(
	healthHandler *handlers.HealthHandler,
	statusHandler *handlers.StatusHandler,
	middlewares ...func(http.Handler) http.Handler,
) http.Handler {
	r := chi.NewRouter()

	for _, mw := range middlewares {
		r.Use(mw)
	}

	r.Get("/health/live", healthHandler.Liveness)
	r.Get("/health/ready", healthHandler.Readiness)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/status", statusHandler.Status)
		r.Get("/env", statusHandler.Env)
	})

	return r
}
