package models

import "time"

// URL is the single domain entity: one shortened link owned by one user.
type URL struct {
	ID          string    `json:"id" db:"id"`
	UserID      string    `json:"user_id" db:"user_id"`
	ShortCode   string    `json:"short_code" db:"short_code"`
	OriginalURL string    `json:"original_url" db:"original_url"`
	ClickCount  int64     `json:"click_count" db:"click_count"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// User is the identity resolved from a bearer token by the identity provider.
type User struct {
	ID    string
	Email string
}

type ShortenRequest struct {
	OriginalURL string `json:"originalUrl"`
}

type ShortenResponse struct {
	URL URL `json:"url"`
}

type UserURLsResponse struct {
	URLs []URL `json:"urls"`
}

type DeleteResponse struct {
	DeletedID string `json:"deletedId"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

// ErrorResponse is the uniform error envelope. Code, Details and Hint carry
// datastore diagnostics and are populated only outside production.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
	Hint    string `json:"hint,omitempty"`
}
