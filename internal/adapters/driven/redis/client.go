package redis

import (
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ClientConfig holds Redis connection settings
type ClientConfig struct {
	// URL is a redis:// or rediss:// connection string
	URL string

	// MaxRetries is how many times a failed command is retried
	MaxRetries int

	// RetryDelay is the minimum backoff between retries
	RetryDelay time.Duration
}

// NewClient parses cfg.URL and returns a client with the configured retry policy
func NewClient(cfg ClientConfig) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	if cfg.MaxRetries > 0 {
		opts.MaxRetries = cfg.MaxRetries
	}
	if cfg.RetryDelay > 0 {
		opts.MinRetryBackoff = cfg.RetryDelay
		if opts.MaxRetryBackoff < cfg.RetryDelay {
			opts.MaxRetryBackoff = cfg.RetryDelay
		}
	}

	return redis.NewClient(opts), nil
}
