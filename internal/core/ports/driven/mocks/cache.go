package mocks

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/sercha-gateway/internal/core/domain"
	"github.com/custodia-labs/sercha-gateway/internal/core/ports/driven"
)

// Ensure MockCache implements Cache
var _ driven.Cache = (*MockCache)(nil)

// MockCache is an in-memory Cache for testing. TTLs are recorded, not enforced.
type MockCache struct {
	mu     sync.RWMutex
	values map[string]string
	ttls   map[string]time.Duration

	// Err, when set, is returned by every method
	Err error
}

// NewMockCache creates a new MockCache
func NewMockCache() *MockCache {
	return &MockCache{
		values: make(map[string]string),
		ttls:   make(map[string]time.Duration),
	}
}

func (m *MockCache) Set(ctx context.Context, key domain.CacheKey, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.values[key.String()] = value
	m.ttls[key.String()] = ttl
	return nil
}

func (m *MockCache) Get(ctx context.Context, key domain.CacheKey) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.Err != nil {
		return "", m.Err
	}
	value, ok := m.values[key.String()]
	if !ok {
		return "", domain.ErrNotFound
	}
	return value, nil
}

func (m *MockCache) Delete(ctx context.Context, key domain.CacheKey) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	delete(m.values, key.String())
	delete(m.ttls, key.String())
	return nil
}

func (m *MockCache) DeleteByPrefix(ctx context.Context, prefix string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}
	deleted := 0
	for k := range m.values {
		if strings.HasPrefix(k, prefix+"_") {
			delete(m.values, k)
			delete(m.ttls, k)
			deleted++
		}
	}
	return deleted, nil
}

// TTL returns the ttl recorded for key
func (m *MockCache) TTL(key domain.CacheKey) (time.Duration, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ttl, ok := m.ttls[key.String()]
	return ttl, ok
}

// Len returns the number of stored values
func (m *MockCache) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.values)
}
