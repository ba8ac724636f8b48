package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/apolozov/shortlink/internal/models"
	"github.com/apolozov/shortlink/internal/service"
)

type Handler struct {
	service    *service.ShortenerService
	logger     *zap.Logger
	production bool
}

func NewHandler(service *service.ShortenerService, logger *zap.Logger, production bool) *Handler {
	return &Handler{
		service:    service,
		logger:     logger,
		production: production,
	}
}

func (h *Handler) respondJSON(rw http.ResponseWriter, status int, v any) {
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(status)

	if err := json.NewEncoder(rw).Encode(v); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

// respondError is the single error boundary: it logs server-side and writes
// the uniform JSON envelope. Datastore diagnostics (code, details, hint) are
// attached only outside production.
func (h *Handler) respondError(rw http.ResponseWriter, status int, msg string, err error) {
	if err != nil {
		h.logger.Error(msg,
			zap.Int("status", status),
			zap.Error(err))
	}

	resp := models.ErrorResponse{Error: msg}

	var pgErr *pgconn.PgError
	if !h.production && errors.As(err, &pgErr) {
		resp.Code = pgErr.Code
		resp.Details = pgErr.Detail
		resp.Hint = pgErr.Hint
	}

	h.respondJSON(rw, status, resp)
}
