package driving

import (
	"context"

	"github.com/custodia-labs/sercha-gateway/internal/core/domain"
	"github.com/custodia-labs/sercha-gateway/internal/core/result"
)

// Gateway calls the upstream API. Every failure comes back as a failed
// Result holding a *domain.NormalizedError; nothing else is signalled.
type Gateway interface {
	Request(ctx context.Context, method string, spec domain.RequestSpec) result.Result[[]byte]
	Get(ctx context.Context, spec domain.RequestSpec) result.Result[[]byte]
	Post(ctx context.Context, spec domain.RequestSpec) result.Result[[]byte]
	Put(ctx context.Context, spec domain.RequestSpec) result.Result[[]byte]
	Patch(ctx context.Context, spec domain.RequestSpec) result.Result[[]byte]
	Delete(ctx context.Context, spec domain.RequestSpec) result.Result[[]byte]
}
