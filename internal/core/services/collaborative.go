package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/custodia-labs/moviematch/internal/core/domain"
	"github.com/custodia-labs/moviematch/internal/core/ports/driving"
	"github.com/custodia-labs/moviematch/internal/logger"
)

// Ensure CollaborativeRecommender implements the interface.
var _ driving.CollaborativeRecommender = (*CollaborativeRecommender)(nil)

// Collaborative filtering parameters.
const (
	// CollaborativeLimit is the number of entries a recommendation returns.
	CollaborativeLimit = 10

	// enthusiastRating is the rating a user must exceed to count as
	// rating a movie highly.
	enthusiastRating = 4.0

	// minSimilarFraction is the share of enthusiasts that must rate a
	// movie highly for it to be considered.
	minSimilarFraction = 0.10
)

// CollaborativeRecommender ranks movies by how disproportionately the
// enthusiasts of an anchor movie favour them over the general population.
type CollaborativeRecommender struct {
	catalog     *Catalog
	lowerTitles []string

	// fans maps a movie to the distinct users who rated it highly.
	fans map[int][]int
	// favourites maps a user to the distinct movies they rated highly.
	favourites map[int][]int
}

// NewCollaborativeRecommender indexes the high ratings of catalog.
func NewCollaborativeRecommender(catalog *Catalog) *CollaborativeRecommender {
	r := &CollaborativeRecommender{
		catalog:     catalog,
		lowerTitles: make([]string, catalog.Len()),
		fans:        make(map[int][]int),
		favourites:  make(map[int][]int),
	}

	for i, m := range catalog.Movies() {
		r.lowerTitles[i] = strings.ToLower(m.Title)
	}

	type pair struct{ user, movie int }
	seen := make(map[pair]struct{})
	for _, e := range catalog.Ratings() {
		if e.Rating <= enthusiastRating {
			continue
		}
		p := pair{e.UserID, e.MovieID}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		r.fans[e.MovieID] = append(r.fans[e.MovieID], e.UserID)
		r.favourites[e.UserID] = append(r.favourites[e.UserID], e.MovieID)
	}

	return r
}

// Recommend returns up to CollaborativeLimit movies, highest lift first.
// Equal scores are ordered by movie ID.
func (r *CollaborativeRecommender) Recommend(ctx context.Context, query string) ([]domain.ScoredMovie, error) {
	logger.Section("Collaborative Recommendation")

	anchor, ok := r.Anchor(query)
	if !ok {
		return nil, fmt.Errorf("collaborative: no title matches %q: %w", query, domain.ErrNotFound)
	}
	logger.Debug("Anchor: %d %q", anchor.ID, anchor.Title)

	enthusiasts := r.fans[anchor.ID]
	if len(enthusiasts) == 0 {
		return nil, fmt.Errorf("collaborative: %q: %w", anchor.Title, domain.ErrInsufficientData)
	}
	logger.Debug("Enthusiasts: %d", len(enthusiasts))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Share of enthusiasts rating each movie highly.
	similar := make(map[int]int)
	for _, u := range enthusiasts {
		for _, m := range r.favourites[u] {
			similar[m]++
		}
	}

	survivors := make(map[int]float64)
	for m, n := range similar {
		frac := float64(n) / float64(len(enthusiasts))
		if frac > minSimilarFraction {
			survivors[m] = frac
		}
	}
	logger.Debug("Candidates: %d, above %.2f: %d", len(similar), minSimilarFraction, len(survivors))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Users who rated any survivor highly.
	qualifying := make(map[int]struct{})
	for m := range survivors {
		for _, u := range r.fans[m] {
			qualifying[u] = struct{}{}
		}
	}

	type candidate struct {
		id    int
		score float64
	}
	ranked := make([]candidate, 0, len(survivors))
	for m, simFrac := range survivors {
		allFrac := 0.0
		if len(qualifying) > 0 {
			allFrac = float64(len(r.fans[m])) / float64(len(qualifying))
		}
		score, ok := liftScore(simFrac, allFrac)
		if !ok {
			continue
		}
		ranked = append(ranked, candidate{id: m, score: score})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].id < ranked[j].id
	})
	if len(ranked) > CollaborativeLimit {
		ranked = ranked[:CollaborativeLimit]
	}

	results := make([]domain.ScoredMovie, 0, len(ranked))
	for _, c := range ranked {
		movie, ok := r.catalog.Lookup(c.id)
		if !ok {
			logger.Debug("Movie %d not in catalog, dropped", c.id)
			continue
		}
		results = append(results, domain.ScoredMovie{Movie: movie, Score: c.score})
	}

	logger.Debug("Collaborative recommendation returned %d results", len(results))
	return results, nil
}

// liftScore is simFrac / allFrac. A zero allFrac gives +Inf when simFrac
// is positive; otherwise the movie is excluded.
func liftScore(simFrac, allFrac float64) (float64, bool) {
	if allFrac == 0 {
		if simFrac <= 0 {
			return 0, false
		}
		return math.Inf(1), true
	}
	return simFrac / allFrac, true
}

// Anchor resolves query to the first catalog entry whose title contains
// it, ignoring case.
func (r *CollaborativeRecommender) Anchor(query string) (domain.MovieEntry, bool) {
	q := strings.ToLower(query)
	for i, title := range r.lowerTitles {
		if strings.Contains(title, q) {
			return r.catalog.Movie(i), true
		}
	}
	return domain.MovieEntry{}, false
}
