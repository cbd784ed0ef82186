package driven

import (
	"context"

	"github.com/custodia-labs/moviematch/internal/core/domain"
)

// DatasetLoader reads the external dataset the catalog is built from.
// Implementations return domain.ErrDataLoad (wrapped) when a source is
// missing, unreadable or has no rows.
type DatasetLoader interface {
	// LoadMovies returns catalog entries in file order.
	// NormalizedTitle is left empty; the catalog builder fills it.
	LoadMovies(ctx context.Context) ([]domain.MovieEntry, error)

	// LoadRatings returns the full rating corpus.
	LoadRatings(ctx context.Context) ([]domain.RatingEvent, error)
}
