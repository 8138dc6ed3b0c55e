package services

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/url"
	"time"

	"github.com/custodia-labs/sercha-gateway/internal/core/domain"
	"github.com/custodia-labs/sercha-gateway/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-gateway/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-gateway/internal/core/result"
)

// Ensure productService implements ProductService
var _ driving.ProductService = (*productService)(nil)

const (
	productsPath        = "/products"
	productsAllCacheKey = "all"
)

// productService serves the upstream product list with a read-through cache
type productService struct {
	gateway  driving.Gateway
	cache    driven.Cache // Optional, can be nil
	cacheTTL time.Duration
	logger   *slog.Logger
}

// NewProductService creates a new ProductService. cache may be nil.
func NewProductService(
	gateway driving.Gateway,
	cache driven.Cache,
	cacheTTL time.Duration,
	logger *slog.Logger,
) driving.ProductService {
	if logger == nil {
		logger = slog.Default()
	}
	return &productService{
		gateway:  gateway,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger.With("service", "product"),
	}
}

// List returns the upstream product list for query
func (s *productService) List(ctx context.Context, query url.Values) result.Result[json.RawMessage] {
	key := listCacheKey(query)

	if s.cache != nil {
		raw, err := s.cache.Get(ctx, key)
		switch {
		case err == nil:
			return result.Ok(json.RawMessage(raw))
		case !errors.Is(err, domain.ErrNotFound):
			s.logger.WarnContext(ctx, "product cache read failed", "key", key.String(), "error", err)
		}
	}

	fetched := s.gateway.Get(ctx, domain.RequestSpec{
		Path:    productsPath,
		Options: &domain.RequestOptions{Query: query},
	})
	if fetched.IsFailure() {
		return result.Fail[json.RawMessage](fetched.Err())
	}

	body := fetched.Value()
	if s.cache != nil {
		if err := s.cache.Set(ctx, key, string(body), s.cacheTTL); err != nil {
			s.logger.WarnContext(ctx, "product cache write failed", "key", key.String(), "error", err)
		}
	}
	return result.Ok(json.RawMessage(body))
}

// InvalidateCache drops every cached product list
func (s *productService) InvalidateCache(ctx context.Context) (int, error) {
	if s.cache == nil {
		return 0, nil
	}

	deleted, err := s.cache.DeleteByPrefix(ctx, domain.CachePrefixProductsList)
	if err != nil {
		s.logger.ErrorContext(ctx, "product cache invalidation failed", "error", err)
		return 0, err
	}

	s.logger.InfoContext(ctx, "product cache cleared", "deleted", deleted)
	return deleted, nil
}

func listCacheKey(query url.Values) domain.CacheKey {
	key := query.Encode()
	if key == "" {
		key = productsAllCacheKey
	}
	return domain.CacheKey{Prefix: domain.CachePrefixProductsList, Key: key}
}
