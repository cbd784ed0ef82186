package driving

import (
	"context"

	"github.com/custodia-labs/moviematch/internal/core/domain"
)

// ContentMatcher ranks catalog titles by textual similarity to a query.
type ContentMatcher interface {
	// Search returns up to five entries, most similar first.
	// It never fails on an empty or unknown query.
	Search(ctx context.Context, query string) ([]domain.ScoredMovie, error)
}

// CollaborativeRecommender ranks movies by co-rating behaviour around
// the movie a query resolves to.
type CollaborativeRecommender interface {
	// Recommend returns up to ten entries, highest lift first.
	// Returns domain.ErrNotFound when no title matches the query and
	// domain.ErrInsufficientData when the anchor has no enthusiasts.
	Recommend(ctx context.Context, query string) ([]domain.ScoredMovie, error)
}
