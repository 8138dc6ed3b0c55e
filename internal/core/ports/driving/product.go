package driving

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/custodia-labs/sercha-gateway/internal/core/result"
)

// ProductService serves the upstream product catalogue through the cache
type ProductService interface {
	// List returns the upstream product list for the given query
	List(ctx context.Context, query url.Values) result.Result[json.RawMessage]

	// InvalidateCache drops every cached product list and returns the count
	InvalidateCache(ctx context.Context) (int, error)
}
