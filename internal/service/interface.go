package service

import (
	"context"

	"github.com/apolozov/shortlink/internal/models"
)

// URLRepository is the datastore contract the service depends on. The
// Postgres implementation backs production; the in-memory one backs tests.
type URLRepository interface {
	CountByUser(ctx context.Context, userID string) (int64, error)
	CodeExists(ctx context.Context, code string) (bool, error)
	Insert(ctx context.Context, userID, code, originalURL string) (models.URL, error)
	ListByUser(ctx context.Context, userID string) ([]models.URL, error)
	DeleteByIDAndUser(ctx context.Context, id, userID string) (string, error)
	GetByCode(ctx context.Context, code string) (models.URL, error)
	SetClickCount(ctx context.Context, id string, clicks int64) error
	Ping(ctx context.Context) error
}
