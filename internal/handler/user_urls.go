package handler

import (
	"net/http"

	"github.com/apolozov/shortlink/internal/middleware"
	"github.com/apolozov/shortlink/internal/models"
)

func (h *Handler) UserURLsHandler(rw http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		h.respondError(rw, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	urls, err := h.service.UserURLs(r.Context(), user.ID)
	if err != nil {
		h.respondError(rw, http.StatusInternalServerError, "Internal Server Error", err)
		return
	}

	h.respondJSON(rw, http.StatusOK, models.UserURLsResponse{URLs: urls})
}
