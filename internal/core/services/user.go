package services

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/custodia-labs/sercha-gateway/internal/core/domain"
	"github.com/custodia-labs/sercha-gateway/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-gateway/internal/core/ports/driving"
)

// Ensure userService implements UserService
var _ driving.UserService = (*userService)(nil)

// userService implements the UserService interface
type userService struct {
	directory driven.UserDirectory
	cache     driven.Cache // Optional, can be nil
	cacheTTL  time.Duration
	logger    *slog.Logger
}

// NewUserService creates a new UserService. cache may be nil.
func NewUserService(
	directory driven.UserDirectory,
	cache driven.Cache,
	cacheTTL time.Duration,
	logger *slog.Logger,
) driving.UserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &userService{
		directory: directory,
		cache:     cache,
		cacheTTL:  cacheTTL,
		logger:    logger.With("service", "user"),
	}
}

// GetByID retrieves a user's public profile by ID
func (s *userService) GetByID(ctx context.Context, id string) (*domain.UserPublic, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}

	key := domain.CacheKey{Prefix: domain.CachePrefixUsers, Key: id}
	if cached := s.cached(ctx, key); cached != nil {
		return cached, nil
	}

	user, err := s.directory.FindByID(ctx, id)
	if err != nil {
		return nil, s.lookupError(ctx, err)
	}

	public := user.ToPublic()
	s.store(ctx, key, public)
	return public, nil
}

// GetByUsername retrieves a user's public profile by username
func (s *userService) GetByUsername(ctx context.Context, username string) (*domain.UserPublic, error) {
	if username == "" {
		return nil, domain.ErrInvalidInput
	}

	user, err := s.directory.FindByUsername(ctx, username)
	if err != nil {
		return nil, s.lookupError(ctx, err)
	}
	return user.ToPublic(), nil
}

func (s *userService) lookupError(ctx context.Context, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.ErrNotFound
	}
	s.logger.ErrorContext(ctx, "user lookup failed", "error", err)
	return domain.ErrInternal
}

func (s *userService) cached(ctx context.Context, key domain.CacheKey) *domain.UserPublic {
	if s.cache == nil {
		return nil
	}

	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.WarnContext(ctx, "user cache read failed", "key", key.String(), "error", err)
		}
		return nil
	}

	var user domain.UserPublic
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		s.logger.WarnContext(ctx, "discarding malformed cached user", "key", key.String(), "error", err)
		return nil
	}
	return &user
}

func (s *userService) store(ctx context.Context, key domain.CacheKey, user *domain.UserPublic) {
	if s.cache == nil {
		return
	}

	raw, err := json.Marshal(user)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, string(raw), s.cacheTTL); err != nil {
		s.logger.WarnContext(ctx, "user cache write failed", "key", key.String(), "error", err)
	}
}
