package driven

import (
	"context"
	"time"

	"github.com/custodia-labs/sercha-gateway/internal/core/domain"
)

// Cache is a string key-value cache (Redis)
type Cache interface {
	// Set stores a value; ttl <= 0 means no expiry
	Set(ctx context.Context, key domain.CacheKey, value string, ttl time.Duration) error

	// Get retrieves a value; domain.ErrNotFound on miss
	Get(ctx context.Context, key domain.CacheKey) (string, error)

	// Delete removes a value. Missing keys are not an error.
	Delete(ctx context.Context, key domain.CacheKey) error

	// DeleteByPrefix removes every key stored under prefix and returns the count
	DeleteByPrefix(ctx context.Context, prefix string) (int, error)
}
