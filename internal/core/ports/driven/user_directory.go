package driven

import (
	"context"

	"github.com/custodia-labs/sercha-gateway/internal/core/domain"
)

// UserDirectory handles user persistence (PostgreSQL)
type UserDirectory interface {
	// FindByID retrieves a user by ID; domain.ErrNotFound on miss
	FindByID(ctx context.Context, id string) (*domain.User, error)

	// FindByUsername retrieves a user by username; domain.ErrNotFound on miss
	FindByUsername(ctx context.Context, username string) (*domain.User, error)

	// Save persists a user, assigning an ID when it has none.
	// Returns domain.ErrAlreadyExists when the username or email is taken.
	Save(ctx context.Context, user *domain.User) error
}
