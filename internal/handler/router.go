package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/apolozov/shortlink/internal/auth"
	"github.com/apolozov/shortlink/internal/metrics"
	"github.com/apolozov/shortlink/internal/middleware"
)

// SetupRouter wires the HTTP surface. An empty corsOrigins list allows all
// origins. Redirects, health and metrics stay outside the auth group.
func (h *Handler) SetupRouter(verifier *auth.Verifier, corsOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger(h.logger))
	r.Use(middleware.Metrics)
	r.Use(middleware.Gzip)

	allowed := corsOrigins
	if len(allowed) == 0 {
		allowed = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowed,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	r.Get("/health", h.HealthHandler)
	r.Get("/ready", h.ReadyHandler)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.RequireAuth(verifier, h.logger))
		r.Get("/urls", h.UserURLsHandler)
		r.Post("/shorten", h.ShortenHandler)
		r.Delete("/urls/{id}", h.DeleteURLHandler)
	})

	r.Get("/{code}", h.RedirectHandler)

	return r
}
