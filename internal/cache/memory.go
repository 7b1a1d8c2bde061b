package cache

import (
	"context"
	"sync"
	"time"

	"github.com/mvoronin/authgate/internal/models"
)

type memoryEntry struct {
	rec models.UserRecord
	// zero expiresAt means the entry never expires
	expiresAt time.Time
}

// Memory is the in-process Cache implementation. Records are stored by
// value so callers can mutate what Get returns without racing other
// readers. Expired entries are dropped lazily on access.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry

	// now is a seam for expiry tests
	now func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (m *Memory) Get(ctx context.Context, key string) (*models.UserRecord, bool, error) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok {
		return nil, false, nil
	}

	if !e.expiresAt.IsZero() && m.now().After(e.expiresAt) {
		m.mu.Lock()
		// re-check under the write lock; another writer may have
		// replaced the entry meanwhile
		if cur, ok := m.entries[key]; ok && cur.expiresAt.Equal(e.expiresAt) {
			delete(m.entries, key)
		}
		m.mu.Unlock()
		return nil, false, nil
	}

	rec := e.rec
	return &rec, true, nil
}

func (m *Memory) Set(ctx context.Context, key string, rec *models.UserRecord, ttl time.Duration) error {
	e := memoryEntry{rec: *rec}
	if ttl > 0 {
		e.expiresAt = m.now().Add(ttl)
	}

	m.mu.Lock()
	m.entries[key] = e
	m.mu.Unlock()
	return nil
}

func (m *Memory) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}
