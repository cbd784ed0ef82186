package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/moviematch/internal/core/domain"
	"github.com/custodia-labs/moviematch/internal/core/ports/driving"
	"github.com/custodia-labs/moviematch/internal/logger"
)

// Ensure QueryService implements the interface.
var _ driving.QueryService = (*QueryService)(nil)

// QueryService dispatches queries to the retrieval method selected.
type QueryService struct {
	content       driving.ContentMatcher
	collaborative driving.CollaborativeRecommender
}

// NewQueryService creates a query service over both retrieval methods.
func NewQueryService(content driving.ContentMatcher, collaborative driving.CollaborativeRecommender) *QueryService {
	return &QueryService{
		content:       content,
		collaborative: collaborative,
	}
}

// Dispatch returns the title/genres projection of a query's results.
func (s *QueryService) Dispatch(ctx context.Context, query string, method domain.Method) ([]domain.ResultRow, error) {
	scored, err := s.Explain(ctx, query, method)
	if err != nil {
		return nil, err
	}
	return domain.RowsFromScored(scored), nil
}

// Explain returns the scored results of a query. A query that resolves to
// no anchor, or to one without enthusiasts, yields an empty result.
func (s *QueryService) Explain(ctx context.Context, query string, method domain.Method) ([]domain.ScoredMovie, error) {
	var (
		scored []domain.ScoredMovie
		err    error
	)

	switch method {
	case domain.MethodContent:
		scored, err = s.content.Search(ctx, query)
	case domain.MethodCollaborative:
		scored, err = s.collaborative.Recommend(ctx, query)
	default:
		return nil, fmt.Errorf("query: %w: unknown method %q", domain.ErrInvalidInput, method)
	}

	if domain.IsNoResults(err) {
		logger.Info("No results for %s query %q: %v", method.Short(), query, err)
		return []domain.ScoredMovie{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	return scored, nil
}
