package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/apolozov/shortlink/internal/metrics"
	"github.com/apolozov/shortlink/internal/middleware"
	"github.com/apolozov/shortlink/internal/models"
	"github.com/apolozov/shortlink/internal/service"
)

func (h *Handler) ShortenHandler(rw http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		h.respondError(rw, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	var req models.ShortenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(rw, http.StatusBadRequest, "Invalid JSON body", nil)
		return
	}

	if strings.TrimSpace(req.OriginalURL) == "" {
		h.respondError(rw, http.StatusBadRequest, "originalUrl is required", nil)
		return
	}

	rec, err := h.service.Shorten(r.Context(), user.ID, req.OriginalURL)
	switch {
	case errors.Is(err, service.ErrInvalidURL):
		h.respondError(rw, http.StatusBadRequest, "originalUrl must be a valid http(s) URL", nil)
	case errors.Is(err, service.ErrQuotaExceeded):
		h.respondError(rw, http.StatusForbidden, "URL limit reached (100)", nil)
	case errors.Is(err, service.ErrCodeExhausted):
		h.respondError(rw, http.StatusInternalServerError, "Failed to generate unique short code", err)
	case err != nil:
		h.respondError(rw, http.StatusInternalServerError, "Internal Server Error", err)
	default:
		metrics.RecordURLCreated()
		h.respondJSON(rw, http.StatusCreated, models.ShortenResponse{URL: rec})
	}
}
