package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/apolozov/shortlink/internal/metrics"
	"github.com/apolozov/shortlink/internal/service"
)

func (h *Handler) RedirectHandler(rw http.ResponseWriter, r *http.Request) {
	code := strings.TrimSpace(chi.URLParam(r, "code"))
	if code == "" {
		h.respondError(rw, http.StatusNotFound, "Not found", nil)
		return
	}

	originalURL, err := h.service.Resolve(r.Context(), code)
	switch {
	case errors.Is(err, service.ErrNotFound):
		h.respondError(rw, http.StatusNotFound, "Not found", nil)
	case errors.Is(err, service.ErrEmptyOriginal):
		h.respondError(rw, http.StatusInternalServerError, "URL record missing original_url", err)
	case err != nil:
		h.respondError(rw, http.StatusInternalServerError, "Internal Server Error", err)
	default:
		metrics.RecordRedirect()
		http.Redirect(rw, r, originalURL, http.StatusFound)
	}
}
