package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/apolozov/shortlink/internal/auth"
	"github.com/apolozov/shortlink/internal/models"
)

type contextKey string

const userKey contextKey = "user"

// RequireAuth rejects requests without a valid bearer token and injects the
// verified identity into the request context. Redirect resolution and health
// are public and must not sit behind this middleware.
func RequireAuth(verifier *auth.Verifier, logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := auth.TokenFromHeader(r.Header.Get("Authorization"))
			if err != nil {
				writeUnauthorized(w, "Missing Bearer token")
				return
			}

			user, err := verifier.Verify(token)
			if err != nil {
				logger.Debug("Token verification failed", zap.Error(err))
				writeUnauthorized(w, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext returns the identity injected by RequireAuth.
func UserFromContext(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(userKey).(models.User)
	return user, ok
}

func writeUnauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(models.ErrorResponse{Error: msg}) //nolint:errcheck
}
