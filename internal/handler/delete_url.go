package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/apolozov/shortlink/internal/middleware"
	"github.com/apolozov/shortlink/internal/models"
	"github.com/apolozov/shortlink/internal/service"
)

func (h *Handler) DeleteURLHandler(rw http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		h.respondError(rw, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		h.respondError(rw, http.StatusBadRequest, "id is required", nil)
		return
	}

	deletedID, err := h.service.Delete(r.Context(), user.ID, id)
	switch {
	case errors.Is(err, service.ErrNotFound):
		h.respondError(rw, http.StatusNotFound, "Not found", nil)
	case err != nil:
		h.respondError(rw, http.StatusInternalServerError, "Internal Server Error", err)
	default:
		h.respondJSON(rw, http.StatusOK, models.DeleteResponse{DeletedID: deletedID})
	}
}
