package testhelper

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/atriumlabs/atrium/backend/internal/cache"
)

// MemoryCache is an in-memory cache.Service implementation for tests.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// NewMemoryCache creates an empty in-memory cache
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]memoryEntry)}
}

func (m *MemoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry := memoryEntry{value: fmt.Sprintf("%s", value)}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}
	m.entries[key] = entry
	return nil
}

func (m *MemoryCache) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[key]
	if !ok || (!entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt)) {
		delete(m.entries, key)
		return "", cache.ErrNotFound
	}
	return entry.value, nil
}

func (m *MemoryCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

func (m *MemoryCache) Exists(ctx context.Context, key string) (bool, error) {
	_, err := m.Get(ctx, key)
	if err == cache.ErrNotFound {
		return false, nil
	}
	return err == nil, err
}

func (m *MemoryCache) Close() error {
	return nil
}
