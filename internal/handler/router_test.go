package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/apolozov/shortlink/internal/auth"
	"github.com/apolozov/shortlink/internal/repository"
	"github.com/apolozov/shortlink/internal/service"
)

func TestRouterCORS(t *testing.T) {
	tests := []struct {
		name        string
		corsOrigins []string
		origin      string
		wantAllow   string
	}{
		{
			name:      "empty origins allow all",
			origin:    "https://anything.example",
			wantAllow: "*",
		},
		{
			name:        "configured origin is echoed",
			corsOrigins: []string{"https://app.example"},
			origin:      "https://app.example",
			wantAllow:   "https://app.example",
		},
		{
			name:        "unlisted origin gets no allow header",
			corsOrigins: []string{"https://app.example"},
			origin:      "https://evil.example",
			wantAllow:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := zap.NewNop()
			repo := repository.NewMemoryRepository()
			h := NewHandler(service.NewShortenerService(repo, logger), logger, false)
			router := h.SetupRouter(auth.NewVerifier(testSecret), tt.corsOrigins)

			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			req.Header.Set("Origin", tt.origin)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			result := w.Result()
			defer result.Body.Close()

			assert.Equal(t, http.StatusOK, result.StatusCode)
			assert.Equal(t, tt.wantAllow, result.Header.Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestRouterCORSPreflight(t *testing.T) {
	logger := zap.NewNop()
	repo := repository.NewMemoryRepository()
	h := NewHandler(service.NewShortenerService(repo, logger), logger, false)
	router := h.SetupRouter(auth.NewVerifier(testSecret), []string{"https://app.example"})

	req := httptest.NewRequest(http.MethodOptions, "/api/shorten", nil)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Authorization, Content-Type")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	result := w.Result()
	defer result.Body.Close()

	// Preflight succeeds without a bearer token; only the real request is
	// authenticated.
	assert.Equal(t, "https://app.example", result.Header.Get("Access-Control-Allow-Origin"))
	assert.Contains(t, result.Header.Get("Access-Control-Allow-Methods"), http.MethodPost)
}
