package driving

import (
	"context"

	"github.com/custodia-labs/moviematch/internal/core/domain"
)

// QueryService routes a query to the selected retrieval method.
type QueryService interface {
	// Dispatch returns the title/genres rows for a query.
	// Per-query failures (no match, no enthusiasts) yield an empty
	// result and a nil error.
	Dispatch(ctx context.Context, query string, method domain.Method) ([]domain.ResultRow, error)

	// Explain is Dispatch with scores kept.
	Explain(ctx context.Context, query string, method domain.Method) ([]domain.ScoredMovie, error)
}
