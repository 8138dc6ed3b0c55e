package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/custodia-labs/sercha-gateway/internal/core/domain"
	"github.com/custodia-labs/sercha-gateway/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-gateway/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-gateway/internal/core/result"
)

// Ensure authService implements AuthService
var _ driving.AuthService = (*authService)(nil)

const registeredMessage = "User successfully registered"

// authService implements the AuthService interface.
// It holds no per-request state and is safe for concurrent use.
type authService struct {
	directory   driven.UserDirectory
	authAdapter driven.AuthAdapter
	logger      *slog.Logger
	now         func() time.Time
}

// NewAuthService creates a new AuthService
func NewAuthService(
	directory driven.UserDirectory,
	authAdapter driven.AuthAdapter,
	logger *slog.Logger,
) driving.AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &authService{
		directory:   directory,
		authAdapter: authAdapter,
		logger:      logger.With("service", "auth"),
		now:         time.Now,
	}
}

// ValidateCredentials checks a username/password pair
func (s *authService) ValidateCredentials(ctx context.Context, username, password string) (driving.CredentialCheck, error) {
	rejected := result.Left[domain.Rejection, *domain.UserPublic](domain.Rejection{})

	user, err := s.directory.FindByUsername(ctx, username)
	if errors.Is(err, domain.ErrNotFound) {
		return rejected, nil
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "user lookup failed", "error", err)
		return rejected, domain.ErrInternal
	}

	if !s.authAdapter.VerifyPassword(password, user.PasswordHash) {
		return rejected, nil
	}

	return result.Right[domain.Rejection](user.ToPublic()), nil
}

// Login issues an access token for a validated user
func (s *authService) Login(ctx context.Context, user *domain.UserPublic) (*domain.LoginResponse, error) {
	if user == nil || user.ID == "" {
		return nil, domain.ErrInvalidInput
	}

	token, err := s.authAdapter.GenerateToken(&domain.TokenClaims{
		Subject:  user.ID,
		Username: user.Username,
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "token signing failed", "user_id", user.ID, "error", err)
		return nil, domain.ErrInternal
	}

	return &domain.LoginResponse{AccessToken: token}, nil
}

// Authenticate validates credentials and issues an access token
func (s *authService) Authenticate(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	check, err := s.ValidateCredentials(ctx, req.Username, req.Password)
	if err != nil {
		return nil, err
	}

	user, ok := check.RightValue()
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}

	return s.Login(ctx, user)
}

// Register creates a new user account
func (s *authService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.RegisterResponse, error) {
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	hash, err := s.authAdapter.HashPassword(req.Password)
	if err != nil {
		s.logger.ErrorContext(ctx, "password hashing failed", "error", err)
		return nil, domain.ErrRegistrationFailed
	}

	now := s.now()
	user := &domain.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.directory.Save(ctx, user); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, domain.ErrRegistrationConflict
		}
		s.logger.ErrorContext(ctx, "saving user failed", "error", err)
		return nil, domain.ErrRegistrationFailed
	}

	s.logger.InfoContext(ctx, "user registered", "user_id", user.ID)
	return &domain.RegisterResponse{Message: registeredMessage}, nil
}

// ValidateToken validates an access token and returns the auth context
func (s *authService) ValidateToken(ctx context.Context, token string) (*domain.AuthContext, error) {
	if token == "" {
		return nil, domain.ErrTokenInvalid
	}

	claims, err := s.authAdapter.ParseToken(token)
	if err != nil || claims.Subject == "" {
		return nil, domain.ErrTokenInvalid
	}

	return &domain.AuthContext{
		UserID:   claims.Subject,
		Username: claims.Username,
	}, nil
}
