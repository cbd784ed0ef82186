package movielens

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/custodia-labs/moviematch/internal/core/domain"
	"github.com/custodia-labs/moviematch/internal/core/ports/driven"
	"github.com/custodia-labs/moviematch/internal/logger"
)

// Ensure Loader implements the interface.
var _ driven.DatasetLoader = (*Loader)(nil)

// ctxCheckEvery is how many rows are read between context checks.
const ctxCheckEvery = 1 << 16

// Loader reads the catalog and rating corpus from CSV files.
type Loader struct {
	moviesPath  string
	ratingsPath string
}

// NewLoader creates a loader for the given files.
func NewLoader(moviesPath, ratingsPath string) *Loader {
	return &Loader{
		moviesPath:  moviesPath,
		ratingsPath: ratingsPath,
	}
}

// LoadMovies reads the catalog in file order.
func (l *Loader) LoadMovies(ctx context.Context) ([]domain.MovieEntry, error) {
	var movies []domain.MovieEntry

	err := readCSV(ctx, l.moviesPath, []string{"movieId", "title", "genres"},
		func(cols []int, rec []string) error {
			id, err := strconv.Atoi(strings.TrimSpace(rec[cols[0]]))
			if err != nil {
				return fmt.Errorf("movieId %q: %w", rec[cols[0]], err)
			}
			movies = append(movies, domain.MovieEntry{
				ID:     id,
				Title:  rec[cols[1]],
				Genres: domain.ParseGenres(rec[cols[2]]),
			})
			return nil
		})
	if err != nil {
		return nil, err
	}

	logger.Debug("Loaded %d movies from %s", len(movies), l.moviesPath)
	return movies, nil
}

// LoadRatings reads the full rating corpus.
func (l *Loader) LoadRatings(ctx context.Context) ([]domain.RatingEvent, error) {
	var ratings []domain.RatingEvent

	err := readCSV(ctx, l.ratingsPath, []string{"userId", "movieId", "rating"},
		func(cols []int, rec []string) error {
			user, err := strconv.Atoi(strings.TrimSpace(rec[cols[0]]))
			if err != nil {
				return fmt.Errorf("userId %q: %w", rec[cols[0]], err)
			}
			movie, err := strconv.Atoi(strings.TrimSpace(rec[cols[1]]))
			if err != nil {
				return fmt.Errorf("movieId %q: %w", rec[cols[1]], err)
			}
			rating, err := strconv.ParseFloat(strings.TrimSpace(rec[cols[2]]), 64)
			if err != nil {
				return fmt.Errorf("rating %q: %w", rec[cols[2]], err)
			}
			ratings = append(ratings, domain.RatingEvent{UserID: user, MovieID: movie, Rating: rating})
			return nil
		})
	if err != nil {
		return nil, err
	}

	logger.Debug("Loaded %d ratings from %s", len(ratings), l.ratingsPath)
	return ratings, nil
}

// readCSV streams path, locating the required columns by header name and
// calling row for every record. Failures wrap domain.ErrDataLoad.
func readCSV(ctx context.Context, path string, required []string, row func(cols []int, rec []string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrDataLoad, err)
	}
	defer f.Close()

	r := csv.NewReader(bufio.NewReaderSize(f, 1<<20))
	r.ReuseRecord = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %s is empty", domain.ErrDataLoad, path)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrDataLoad, path, err)
	}

	cols, err := columnIndexes(header, required)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrDataLoad, path, err)
	}

	n := 0
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("%w: %s: %w", domain.ErrDataLoad, path, err)
		}

		n++
		if n%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		if err := row(cols, rec); err != nil {
			return fmt.Errorf("%w: %s line %d: %w", domain.ErrDataLoad, path, n+1, err)
		}
	}

	if n == 0 {
		return fmt.Errorf("%w: %s has no rows", domain.ErrDataLoad, path)
	}
	return nil
}

// columnIndexes maps each required column name to its header position.
func columnIndexes(header, required []string) ([]int, error) {
	pos := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		pos[name] = i
	}

	cols := make([]int, len(required))
	for i, name := range required {
		p, ok := pos[name]
		if !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
		cols[i] = p
	}
	return cols, nil
}
