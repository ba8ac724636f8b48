package handler

import (
	"net/http"

	"github.com/apolozov/shortlink/internal/models"
)

// HealthHandler reports liveness; it never touches the datastore.
func (h *Handler) HealthHandler(rw http.ResponseWriter, r *http.Request) {
	h.respondJSON(rw, http.StatusOK, models.HealthResponse{Status: "ok"})
}

// ReadyHandler reports readiness by pinging the datastore.
func (h *Handler) ReadyHandler(rw http.ResponseWriter, r *http.Request) {
	if err := h.service.Ping(r.Context()); err != nil {
		h.respondError(rw, http.StatusInternalServerError, "Datastore unavailable", err)
		return
	}

	h.respondJSON(rw, http.StatusOK, models.HealthResponse{Status: "ready"})
}
