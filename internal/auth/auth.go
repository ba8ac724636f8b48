// Package auth verifies bearer tokens issued by the external identity
// provider. The service never issues tokens itself; it only checks the
// HS256 signature against the shared secret and extracts the identity.
package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v4"

	"github.com/apolozov/shortlink/internal/models"
)

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid or expired token")
)

// Claims mirrors the identity provider's token payload: the user ID in the
// registered subject claim plus the user's email.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// TokenFromHeader extracts the raw token from an
// "Authorization: Bearer <token>" header value.
func TokenFromHeader(header string) (string, error) {
	if header == "" {
		return "", ErrMissingToken
	}

	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") || token == "" {
		return "", ErrMissingToken
	}

	return token, nil
}

// Verify parses and validates the token and returns the authenticated user.
// Any parse, signature or expiry failure collapses into ErrInvalidToken.
func (v *Verifier) Verify(tokenString string) (models.User, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return models.User{}, ErrInvalidToken
	}

	if claims.Subject == "" {
		return models.User{}, ErrInvalidToken
	}

	return models.User{ID: claims.Subject, Email: claims.Email}, nil
}
