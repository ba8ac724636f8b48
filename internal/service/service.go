// Package service implements the business logic: short code allocation with
// collision retry, the per-user quota gate and redirect resolution with
// click tracking.
package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/apolozov/shortlink/internal/models"
	"github.com/apolozov/shortlink/internal/repository"
)

const (
	// MaxUserURLs is the per-user ceiling on owned records. The count check
	// is not transactional with the insert; concurrent requests near the
	// boundary may transiently exceed it. Accepted as best-effort.
	MaxUserURLs = 100

	maxAllocAttempts = 10
)

var (
	ErrInvalidURL    = errors.New("original url must be an absolute http(s) url")
	ErrQuotaExceeded = errors.New("url quota reached")
	ErrCodeExhausted = errors.New("failed to allocate unique short code")
	ErrEmptyOriginal = errors.New("url record has no original url")

	ErrNotFound = repository.ErrNotFound
)

type ShortenerService struct {
	repo   URLRepository
	logger *zap.Logger

	// genCode is swappable in tests to force collisions.
	genCode func(length int) string
}

func NewShortenerService(repo URLRepository, logger *zap.Logger) *ShortenerService {
	return &ShortenerService{
		repo:    repo,
		logger:  logger,
		genCode: GenerateCode,
	}
}

// Shorten validates the URL, enforces the quota and allocates a unique short
// code for it. Uniqueness ultimately rests on the datastore constraint; the
// existence pre-check only cuts down wasted insert attempts.
func (s *ShortenerService) Shorten(ctx context.Context, userID, originalURL string) (models.URL, error) {
	originalURL = strings.TrimSpace(originalURL)
	if err := validateOriginalURL(originalURL); err != nil {
		return models.URL{}, err
	}

	count, err := s.repo.CountByUser(ctx, userID)
	if err != nil {
		return models.URL{}, fmt.Errorf("count user urls: %w", err)
	}
	if count >= MaxUserURLs {
		return models.URL{}, ErrQuotaExceeded
	}

	for attempt := 0; attempt < maxAllocAttempts; attempt++ {
		code := s.genCode(randomCodeLength())

		exists, err := s.repo.CodeExists(ctx, code)
		if err != nil {
			return models.URL{}, fmt.Errorf("check short code: %w", err)
		}
		if exists {
			continue
		}

		rec, err := s.repo.Insert(ctx, userID, code, originalURL)
		if errors.Is(err, repository.ErrCodeTaken) {
			// Lost the race between pre-check and insert; try another code.
			continue
		}
		if err != nil {
			return models.URL{}, fmt.Errorf("insert url: %w", err)
		}

		return rec, nil
	}

	s.logger.Error("Short code allocation exhausted",
		zap.String("userID", userID),
		zap.Int("attempts", maxAllocAttempts))

	return models.URL{}, ErrCodeExhausted
}

// UserURLs returns all records owned by the user, newest first.
func (s *ShortenerService) UserURLs(ctx context.Context, userID string) ([]models.URL, error) {
	urls, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list user urls: %w", err)
	}
	if urls == nil {
		urls = []models.URL{}
	}
	return urls, nil
}

// Delete removes a record the user owns. A record owned by someone else is
// indistinguishable from a missing one, so existence is not leaked.
func (s *ShortenerService) Delete(ctx context.Context, userID, id string) (string, error) {
	if _, err := uuid.Parse(id); err != nil {
		return "", ErrNotFound
	}
	return s.repo.DeleteByIDAndUser(ctx, id, userID)
}

// Resolve maps a short code to its original URL and records the visit. The
// increment is read-then-write; lost updates under concurrent hits on the
// same code are accepted, and an increment failure never blocks the redirect.
func (s *ShortenerService) Resolve(ctx context.Context, code string) (string, error) {
	rec, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("get url by code: %w", err)
	}

	// The visit is counted before the integrity check: even an anomalous
	// record with no original URL registers the hit.
	if err := s.repo.SetClickCount(ctx, rec.ID, rec.ClickCount+1); err != nil {
		s.logger.Error("Failed to record click",
			zap.String("id", rec.ID),
			zap.Error(err))
	}

	if rec.OriginalURL == "" {
		s.logger.Error("URL record missing original url", zap.String("id", rec.ID))
		return "", ErrEmptyOriginal
	}

	return rec.OriginalURL, nil
}

func (s *ShortenerService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

func validateOriginalURL(raw string) error {
	if raw == "" {
		return ErrInvalidURL
	}

	u, err := url.Parse(raw)
	if err != nil {
		return ErrInvalidURL
	}

	if !u.IsAbs() || u.Host == "" {
		return ErrInvalidURL
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return ErrInvalidURL
	}

	return nil
}
