package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/sercha-gateway/internal/core/domain"
	"github.com/custodia-labs/sercha-gateway/internal/core/ports/driven"
)

// Ensure MockUserDirectory implements UserDirectory
var _ driven.UserDirectory = (*MockUserDirectory)(nil)

// MockUserDirectory is an in-memory UserDirectory for testing.
// It enforces unique usernames and emails like the real table does.
type MockUserDirectory struct {
	mu         sync.RWMutex
	users      map[string]*domain.User
	byUsername map[string]*domain.User
	byEmail    map[string]*domain.User
	nextID     int

	// Err, when set, is returned by every method
	Err error

	// SaveErr, when set, is returned by Save
	SaveErr error
}

// NewMockUserDirectory creates a new MockUserDirectory
func NewMockUserDirectory() *MockUserDirectory {
	return &MockUserDirectory{
		users:      make(map[string]*domain.User),
		byUsername: make(map[string]*domain.User),
		byEmail:    make(map[string]*domain.User),
	}
}

func (m *MockUserDirectory) FindByID(ctx context.Context, id string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.Err != nil {
		return nil, m.Err
	}
	user, ok := m.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (m *MockUserDirectory) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.Err != nil {
		return nil, m.Err
	}
	user, ok := m.byUsername[username]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (m *MockUserDirectory) Save(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if m.SaveErr != nil {
		return m.SaveErr
	}

	if existing, ok := m.byUsername[user.Username]; ok && existing.ID != user.ID {
		return domain.ErrAlreadyExists
	}
	if existing, ok := m.byEmail[user.Email]; ok && existing.ID != user.ID {
		return domain.ErrAlreadyExists
	}

	if user.ID == "" {
		m.nextID++
		user.ID = fmt.Sprintf("user-%d", m.nextID)
	}

	clone := *user
	m.users[clone.ID] = &clone
	m.byUsername[clone.Username] = &clone
	m.byEmail[clone.Email] = &clone
	return nil
}

// Count returns the number of stored users
func (m *MockUserDirectory) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.users)
}
