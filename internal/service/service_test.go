package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/apolozov/shortlink/internal/repository"
)

func newTestService() (*ShortenerService, *repository.MemoryRepository) {
	repo := repository.NewMemoryRepository()
	return NewShortenerService(repo, zap.NewNop()), repo
}

func TestShortenValidation(t *testing.T) {
	tests := []struct {
		name        string
		originalURL string
		wantErr     error
	}{
		{
			name:        "positive: https",
			originalURL: "https://example.com",
		},
		{
			name:        "positive: http with path and query",
			originalURL: "http://example.com/path?q=1",
		},
		{
			name:        "negative: not a url",
			originalURL: "not a url",
			wantErr:     ErrInvalidURL,
		},
		{
			name:        "negative: unsupported scheme",
			originalURL: "ftp://host/x",
			wantErr:     ErrInvalidURL,
		},
		{
			name:        "negative: missing scheme",
			originalURL: "example.com/foo",
			wantErr:     ErrInvalidURL,
		},
		{
			name:        "negative: empty",
			originalURL: "",
			wantErr:     ErrInvalidURL,
		},
		{
			name:        "negative: whitespace only",
			originalURL: "   ",
			wantErr:     ErrInvalidURL,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestService()

			rec, err := s.Shorten(context.Background(), "user-1", tt.originalURL)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "user-1", rec.UserID)
			assert.GreaterOrEqual(t, len(rec.ShortCode), minCodeLength)
			assert.LessOrEqual(t, len(rec.ShortCode), maxCodeLength)
			assert.Zero(t, rec.ClickCount)
			assert.NotEmpty(t, rec.ID)
			assert.False(t, rec.CreatedAt.IsZero())
		})
	}
}

func TestShortenQuotaBoundary(t *testing.T) {
	s, repo := newTestService()
	ctx := context.Background()

	for i := 0; i < MaxUserURLs-1; i++ {
		_, err := repo.Insert(ctx, "user-1", fmt.Sprintf("seed%03d", i), "https://example.com/seed")
		require.NoError(t, err)
	}

	// 99 existing records: the 100th allocation still succeeds.
	_, err := s.Shorten(ctx, "user-1", "https://example.com/last")
	require.NoError(t, err)

	count, err := repo.CountByUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(MaxUserURLs), count)

	// At the ceiling the next attempt is rejected before allocation.
	_, err = s.Shorten(ctx, "user-1", "https://example.com/over")
	assert.ErrorIs(t, err, ErrQuotaExceeded)

	// Other users are unaffected.
	_, err = s.Shorten(ctx, "user-2", "https://example.com/other")
	assert.NoError(t, err)
}

func TestShortenCollisionRetry(t *testing.T) {
	s, repo := newTestService()
	ctx := context.Background()

	_, err := repo.Insert(ctx, "user-1", "taken1", "https://example.com/old")
	require.NoError(t, err)

	codes := []string{"taken1", "taken1", "fresh1"}
	var calls int
	s.genCode = func(int) string {
		code := codes[calls]
		calls++
		return code
	}

	rec, err := s.Shorten(ctx, "user-2", "https://example.com/new")
	require.NoError(t, err)
	assert.Equal(t, "fresh1", rec.ShortCode)
	assert.Equal(t, 3, calls)
}

// raceRepo hides existing codes from the pre-check so the insert itself hits
// the uniqueness constraint, mimicking a lost pre-check/insert race.
type raceRepo struct {
	*repository.MemoryRepository
}

func (r *raceRepo) CodeExists(context.Context, string) (bool, error) {
	return false, nil
}

func TestShortenInsertConflictRetry(t *testing.T) {
	mem := repository.NewMemoryRepository()
	s := NewShortenerService(&raceRepo{mem}, zap.NewNop())
	ctx := context.Background()

	_, err := mem.Insert(ctx, "user-1", "taken1", "https://example.com/old")
	require.NoError(t, err)

	codes := []string{"taken1", "fresh2"}
	var calls int
	s.genCode = func(int) string {
		code := codes[calls]
		calls++
		return code
	}

	rec, err := s.Shorten(ctx, "user-2", "https://example.com/new")
	require.NoError(t, err)
	assert.Equal(t, "fresh2", rec.ShortCode)
}

func TestShortenExhausted(t *testing.T) {
	s, repo := newTestService()
	ctx := context.Background()

	_, err := repo.Insert(ctx, "user-1", "taken1", "https://example.com/old")
	require.NoError(t, err)

	var calls int
	s.genCode = func(int) string {
		calls++
		return "taken1"
	}

	_, err = s.Shorten(ctx, "user-2", "https://example.com/new")
	assert.ErrorIs(t, err, ErrCodeExhausted)
	assert.Equal(t, maxAllocAttempts, calls)
}

func TestResolve(t *testing.T) {
	s, repo := newTestService()
	ctx := context.Background()

	rec, err := repo.Insert(ctx, "user-1", "abc123", "https://example.com/page")
	require.NoError(t, err)

	// Resolving twice yields the same URL; only the click count moves.
	for want := int64(1); want <= 2; want++ {
		originalURL, err := s.Resolve(ctx, "abc123")
		require.NoError(t, err)
		assert.Equal(t, "https://example.com/page", originalURL)

		stored, err := repo.GetByCode(ctx, "abc123")
		require.NoError(t, err)
		assert.Equal(t, want, stored.ClickCount)
		assert.Equal(t, rec.ID, stored.ID)
	}
}

func TestResolveNotFound(t *testing.T) {
	s, _ := newTestService()

	_, err := s.Resolve(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveEmptyOriginal(t *testing.T) {
	s, repo := newTestService()
	ctx := context.Background()

	_, err := repo.Insert(ctx, "user-1", "broken1", "")
	require.NoError(t, err)

	_, err = s.Resolve(ctx, "broken1")
	assert.ErrorIs(t, err, ErrEmptyOriginal)

	// The visit is still counted on the anomaly path.
	stored, err := repo.GetByCode(ctx, "broken1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), stored.ClickCount)
}

func TestDelete(t *testing.T) {
	s, repo := newTestService()
	ctx := context.Background()

	rec, err := repo.Insert(ctx, "user-1", "abc123", "https://example.com/page")
	require.NoError(t, err)

	// Someone else's record is reported as missing and left intact.
	_, err = s.Delete(ctx, "user-2", rec.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.GetByCode(ctx, "abc123")
	require.NoError(t, err)

	// A malformed identifier never reaches the datastore.
	_, err = s.Delete(ctx, "user-1", "not-a-uuid")
	assert.ErrorIs(t, err, ErrNotFound)

	deletedID, err := s.Delete(ctx, "user-1", rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, deletedID)

	_, err = repo.GetByCode(ctx, "abc123")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserURLs(t *testing.T) {
	s, repo := newTestService()
	ctx := context.Background()

	urls, err := s.UserURLs(ctx, "user-1")
	require.NoError(t, err)
	assert.NotNil(t, urls)
	assert.Empty(t, urls)

	for _, code := range []string{"first1", "second", "third1"} {
		_, err := repo.Insert(ctx, "user-1", code, "https://example.com/"+code)
		require.NoError(t, err)
	}
	_, err = repo.Insert(ctx, "user-2", "others", "https://example.com/others")
	require.NoError(t, err)

	urls, err = s.UserURLs(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, urls, 3)

	// Newest first.
	assert.Equal(t, "third1", urls[0].ShortCode)
	assert.Equal(t, "second", urls[1].ShortCode)
	assert.Equal(t, "first1", urls[2].ShortCode)
}
