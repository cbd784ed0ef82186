package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/moviematch/internal/core/domain"
	"github.com/custodia-labs/moviematch/internal/core/ports/driven"
	"github.com/custodia-labs/moviematch/internal/logger"
	"github.com/custodia-labs/moviematch/internal/textindex"
)

// Catalog is the immutable dataset every recommender reads from.
// Row i of the text index corresponds to entry i.
// A Catalog is safe for concurrent use without locking.
type Catalog struct {
	movies  []domain.MovieEntry
	rows    map[int]int
	index   *textindex.Index
	ratings []domain.RatingEvent
}

// BuildCatalog normalises titles and fits the text index.
// The movies slice is copied; ratings is retained as given and must not
// be modified afterwards.
func BuildCatalog(movies []domain.MovieEntry, ratings []domain.RatingEvent) (*Catalog, error) {
	logger.Section("Catalog Build")

	if len(movies) == 0 {
		return nil, fmt.Errorf("%w: catalog is empty", domain.ErrDataLoad)
	}

	c := &Catalog{
		movies:  make([]domain.MovieEntry, len(movies)),
		rows:    make(map[int]int, len(movies)),
		ratings: ratings,
	}

	titles := make([]string, len(movies))
	for i, m := range movies {
		if _, dup := c.rows[m.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate movie id %d", domain.ErrDataLoad, m.ID)
		}
		m.NormalizedTitle = textindex.CleanTitle(m.Title)
		c.movies[i] = m
		c.rows[m.ID] = i
		titles[i] = m.NormalizedTitle
	}

	c.index = textindex.Fit(titles)

	logger.Debug("Catalog: %d movies, %d ratings, %d terms",
		len(c.movies), len(c.ratings), len(c.index.Vocabulary()))

	return c, nil
}

// LoadCatalog reads movies and ratings concurrently through loader and
// builds the catalog. Any load failure is reported as domain.ErrDataLoad.
func LoadCatalog(ctx context.Context, loader driven.DatasetLoader) (*Catalog, error) {
	var (
		movies  []domain.MovieEntry
		ratings []domain.RatingEvent
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		movies, err = loader.LoadMovies(gctx)
		if err != nil {
			return fmt.Errorf("load movies: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		ratings, err = loader.LoadRatings(gctx)
		if err != nil {
			return fmt.Errorf("load ratings: %w", err)
		}
		if len(ratings) == 0 {
			return fmt.Errorf("load ratings: %w: rating corpus is empty", domain.ErrDataLoad)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, wrapDataLoad(err)
	}

	return BuildCatalog(movies, ratings)
}

// wrapDataLoad ensures err matches domain.ErrDataLoad.
func wrapDataLoad(err error) error {
	if domain.IsDataLoad(err) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrDataLoad, err)
}

// Len returns the number of catalog entries.
func (c *Catalog) Len() int {
	return len(c.movies)
}

// Movie returns the entry at row i.
func (c *Catalog) Movie(i int) domain.MovieEntry {
	return c.movies[i]
}

// Movies returns the entries in catalog order. The slice must not be modified.
func (c *Catalog) Movies() []domain.MovieEntry {
	return c.movies
}

// Lookup returns the entry with the given movie ID.
func (c *Catalog) Lookup(id int) (domain.MovieEntry, bool) {
	row, ok := c.rows[id]
	if !ok {
		return domain.MovieEntry{}, false
	}
	return c.movies[row], true
}

// Index returns the fitted title index.
func (c *Catalog) Index() *textindex.Index {
	return c.index
}

// Ratings returns the rating corpus. The slice must not be modified.
func (c *Catalog) Ratings() []domain.RatingEvent {
	return c.ratings
}
