package driving

import (
	"context"

	"github.com/custodia-labs/sercha-gateway/internal/core/domain"
	"github.com/custodia-labs/sercha-gateway/internal/core/result"
)

// CredentialCheck is Right with the user on a match, Left otherwise
type CredentialCheck = result.Either[domain.Rejection, *domain.UserPublic]

// AuthService handles user authentication and registration
type AuthService interface {
	// ValidateCredentials checks a username/password pair. An unknown user
	// and a wrong password both yield a Left. The error is reserved for
	// infrastructure failures.
	ValidateCredentials(ctx context.Context, username, password string) (CredentialCheck, error)

	// Login issues an access token for an already validated user
	Login(ctx context.Context, user *domain.UserPublic) (*domain.LoginResponse, error)

	// Authenticate validates credentials and issues an access token
	Authenticate(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error)

	// Register creates a new user account
	Register(ctx context.Context, req domain.RegisterRequest) (*domain.RegisterResponse, error)

	// ValidateToken validates an access token and returns the auth context
	ValidateToken(ctx context.Context, token string) (*domain.AuthContext, error)
}
