package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/lib/pq"

	"github.com/custodia-labs/sercha-gateway/internal/core/domain"
	"github.com/custodia-labs/sercha-gateway/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.UserDirectory = (*UserDirectory)(nil)

// UserDirectory implements driven.UserDirectory using PostgreSQL
type UserDirectory struct {
	db *DB
}

// NewUserDirectory creates a new UserDirectory
func NewUserDirectory(db *DB) *UserDirectory {
	return &UserDirectory{db: db}
}

const selectUser = `
	SELECT id, username, email, password_hash, created_at, updated_at
	FROM users
`

// Save creates or updates a user. New users get a UUID.
func (s *UserDirectory) Save(ctx context.Context, user *domain.User) error {
	id := user.ID
	if id == "" {
		id = uuid.NewString()
	}

	query := `
		INSERT INTO users (id, username, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			username = EXCLUDED.username,
			email = EXCLUDED.email,
			password_hash = EXCLUDED.password_hash,
			updated_at = EXCLUDED.updated_at
	`

	_, err := s.db.ExecContext(ctx, query,
		id,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyExists
		}
		return fmt.Errorf("failed to save user: %w", err)
	}

	user.ID = id
	return nil
}

// FindByID retrieves a user by ID
func (s *UserDirectory) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return s.findOne(ctx, selectUser+"WHERE id = $1", id)
}

// FindByUsername retrieves a user by username
func (s *UserDirectory) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.findOne(ctx, selectUser+"WHERE username = $1", username)
}

func (s *UserDirectory) findOne(ctx context.Context, query string, arg string) (*domain.User, error) {
	var user domain.User
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return &user, nil
}

// isUniqueViolation reports whether err is a Postgres unique constraint violation
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pgerrcode.UniqueViolation
	}
	return false
}
