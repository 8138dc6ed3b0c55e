package driving

import (
	"context"

	"github.com/custodia-labs/sercha-gateway/internal/core/domain"
)

// UserService handles user profile lookups
type UserService interface {
	// GetByID retrieves a user's public profile by ID
	GetByID(ctx context.Context, id string) (*domain.UserPublic, error)

	// GetByUsername retrieves a user's public profile by username
	GetByUsername(ctx context.Context, username string) (*domain.UserPublic, error)
}
