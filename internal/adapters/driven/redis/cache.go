package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/custodia-labs/sercha-gateway/internal/core/domain"
	"github.com/custodia-labs/sercha-gateway/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.Cache = (*Cache)(nil)

// scanBatch is the COUNT hint for SCAN and the DEL batch size
const scanBatch = 100

// Cache implements driven.Cache using Redis.
// Keys render as "prefix_key", optionally under "namespace:".
type Cache struct {
	client    *redis.Client
	namespace string
}

// NewCache creates a new Redis-backed Cache
func NewCache(client *redis.Client, namespace string) *Cache {
	return &Cache{client: client, namespace: namespace}
}

func (c *Cache) key(k string) string {
	if c.namespace == "" {
		return k
	}
	return c.namespace + ":" + k
}

// Set stores value under key; ttl <= 0 stores without expiry
func (c *Cache) Set(ctx context.Context, key domain.CacheKey, value string, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	if err := c.client.Set(ctx, c.key(key.String()), value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set cache key: %w", err)
	}
	return nil
}

// Get retrieves the value under key
func (c *Cache) Get(ctx context.Context, key domain.CacheKey) (string, error) {
	value, err := c.client.Get(ctx, c.key(key.String())).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get cache key: %w", err)
	}
	return value, nil
}

// Delete removes key
func (c *Cache) Delete(ctx context.Context, key domain.CacheKey) error {
	if err := c.client.Del(ctx, c.key(key.String())).Err(); err != nil {
		return fmt.Errorf("failed to delete cache key: %w", err)
	}
	return nil
}

// DeleteByPrefix removes every key stored under prefix.
// Uses SCAN so large keyspaces are not blocked.
func (c *Cache) DeleteByPrefix(ctx context.Context, prefix string) (int, error) {
	pattern := c.key(prefix + "_*")
	iter := c.client.Scan(ctx, 0, pattern, scanBatch).Iterator()

	deleted := 0
	batch := make([]string, 0, scanBatch)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		n, err := c.client.Del(ctx, batch...).Result()
		if err != nil {
			return fmt.Errorf("failed to delete cache keys: %w", err)
		}
		deleted += int(n)
		batch = batch[:0]
		return nil
	}

	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) >= scanBatch {
			if err := flush(); err != nil {
				return deleted, err
			}
		}
	}
	if err := iter.Err(); err != nil {
		return deleted, fmt.Errorf("failed to scan cache keys: %w", err)
	}
	if err := flush(); err != nil {
		return deleted, err
	}

	return deleted, nil
}

// Ping checks if Redis is reachable
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
