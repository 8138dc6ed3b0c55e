package driven

import "github.com/custodia-labs/sercha-gateway/internal/core/domain"

// PasswordHasher performs one-way password hashing.
// Implementations must compare in constant time.
type PasswordHasher interface {
	HashPassword(password string) (string, error)
	VerifyPassword(password, hash string) bool
}

// TokenIssuer signs and parses session tokens
type TokenIssuer interface {
	GenerateToken(claims *domain.TokenClaims) (string, error)
	ParseToken(token string) (*domain.TokenClaims, error)
}

// AuthAdapter handles authentication cryptographic operations.
// This does NOT handle storage - use UserDirectory for persistence.
type AuthAdapter interface {
	PasswordHasher
	TokenIssuer
}
