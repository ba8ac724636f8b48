package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/apolozov/shortlink/internal/models"
)

// MemoryRepository is an in-process implementation of the datastore contract,
// used by tests. It mirrors the Postgres behavior including the short_code
// uniqueness constraint.
type MemoryRepository struct {
	mu    sync.RWMutex
	byID  map[string]models.URL
	order []string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID: make(map[string]models.URL),
	}
}

func (m *MemoryRepository) CountByUser(_ context.Context, userID string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var count int64
	for _, rec := range m.byID {
		if rec.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (m *MemoryRepository) CodeExists(_ context.Context, code string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, rec := range m.byID {
		if rec.ShortCode == code {
			return true, nil
		}
	}
	return false, nil
}

func (m *MemoryRepository) Insert(_ context.Context, userID, code, originalURL string) (models.URL, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, rec := range m.byID {
		if rec.ShortCode == code {
			return models.URL{}, ErrCodeTaken
		}
	}

	rec := models.URL{
		ID:          uuid.New().String(),
		UserID:      userID,
		ShortCode:   code,
		OriginalURL: originalURL,
		ClickCount:  0,
		CreatedAt:   time.Now().UTC(),
	}

	m.byID[rec.ID] = rec
	m.order = append(m.order, rec.ID)

	return rec, nil
}

// ListByUser returns the user's records newest-first. Insertion order breaks
// ties between records created within the clock resolution.
func (m *MemoryRepository) ListByUser(_ context.Context, userID string) ([]models.URL, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	urls := make([]models.URL, 0)
	for i := len(m.order) - 1; i >= 0; i-- {
		rec := m.byID[m.order[i]]
		if rec.UserID == userID {
			urls = append(urls, rec)
		}
	}
	return urls, nil
}

func (m *MemoryRepository) DeleteByIDAndUser(_ context.Context, id, userID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.byID[id]
	if !ok || rec.UserID != userID {
		return "", ErrNotFound
	}

	delete(m.byID, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}

	return id, nil
}

func (m *MemoryRepository) GetByCode(_ context.Context, code string) (models.URL, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, rec := range m.byID {
		if rec.ShortCode == code {
			return rec, nil
		}
	}
	return models.URL{}, ErrNotFound
}

func (m *MemoryRepository) SetClickCount(_ context.Context, id string, clicks int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.byID[id]
	if !ok {
		return ErrNotFound
	}

	rec.ClickCount = clicks
	m.byID[id] = rec
	return nil
}

func (m *MemoryRepository) Ping(_ context.Context) error {
	return nil
}
