package services

import (
	"context"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/custodia-labs/moviematch/internal/core/domain"
	"github.com/custodia-labs/moviematch/internal/core/ports/driving"
	"github.com/custodia-labs/moviematch/internal/logger"
	"github.com/custodia-labs/moviematch/internal/textindex"
)

// Ensure ContentMatcher implements the interface.
var _ driving.ContentMatcher = (*ContentMatcher)(nil)

// ContentLimit is the number of entries content search returns.
const ContentLimit = 5

// ContentMatcher ranks catalog titles by TF-IDF cosine similarity.
type ContentMatcher struct {
	catalog *Catalog
	cache   *cache.Cache
}

// NewContentMatcher creates a content matcher over catalog.
// Results are cached per normalised query for cacheTTL; a non-positive
// TTL disables the cache.
func NewContentMatcher(catalog *Catalog, cacheTTL time.Duration) *ContentMatcher {
	m := &ContentMatcher{catalog: catalog}
	if cacheTTL > 0 {
		m.cache = cache.New(cacheTTL, 2*cacheTTL)
	}
	return m
}

// Search returns up to ContentLimit entries, most similar first.
// Ties keep catalog order, so an empty or unknown query returns the
// first catalog entries with score 0.
func (m *ContentMatcher) Search(ctx context.Context, query string) ([]domain.ScoredMovie, error) {
	logger.Section("Content Search")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	normalized := textindex.CleanTitle(query)
	key := strings.Join(textindex.Tokenize(normalized), " ")
	logger.Debug("Query: %q, normalized: %q", query, normalized)

	if m.cache != nil {
		if x, found := m.cache.Get(key); found {
			logger.Debug("Cache hit for %q", key)
			return slices.Clone(x.([]domain.ScoredMovie)), nil
		}
	}

	scores := m.catalog.Index().Similarities(normalized)

	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	limit := min(ContentLimit, len(order))
	results := make([]domain.ScoredMovie, limit)
	for i := 0; i < limit; i++ {
		row := order[i]
		results[i] = domain.ScoredMovie{
			Movie: m.catalog.Movie(row),
			Score: scores[row],
		}
	}

	logger.Debug("Content search returned %d results", len(results))

	if m.cache != nil {
		m.cache.Set(key, slices.Clone(results), cache.DefaultExpiration)
	}
	return results, nil
}
