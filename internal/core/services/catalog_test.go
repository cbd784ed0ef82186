package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/moviematch/internal/core/domain"
)

// toyMovies is the two-entry catalog used across service tests.
func toyMovies() []domain.MovieEntry {
	return []domain.MovieEntry{
		{ID: 1, Title: "Toy Story (1995)", Genres: []string{"Animation", "Comedy"}},
		{ID: 2, Title: "Toy Story 2 (1999)", Genres: []string{"Animation"}},
	}
}

// mustCatalog builds a catalog or fails the test.
func mustCatalog(t *testing.T, movies []domain.MovieEntry, ratings []domain.RatingEvent) *Catalog {
	t.Helper()
	c, err := BuildCatalog(movies, ratings)
	require.NoError(t, err)
	return c
}

// mockLoader is a hand-written DatasetLoader.
type mockLoader struct {
	LoadMoviesFunc  func(ctx context.Context) ([]domain.MovieEntry, error)
	LoadRatingsFunc func(ctx context.Context) ([]domain.RatingEvent, error)
}

func (m *mockLoader) LoadMovies(ctx context.Context) ([]domain.MovieEntry, error) {
	return m.LoadMoviesFunc(ctx)
}

func (m *mockLoader) LoadRatings(ctx context.Context) ([]domain.RatingEvent, error) {
	return m.LoadRatingsFunc(ctx)
}

func TestBuildCatalog(t *testing.T) {
	ratings := []domain.RatingEvent{{UserID: 1, MovieID: 1, Rating: 5}}

	c, err := BuildCatalog(toyMovies(), ratings)

	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, "Toy Story 1995", c.Movie(0).NormalizedTitle)
	assert.Equal(t, "Toy Story 2 1999", c.Movie(1).NormalizedTitle)
	assert.Equal(t, c.Len(), c.Index().Len())
	assert.Equal(t, ratings, c.Ratings())

	m, ok := c.Lookup(2)
	require.True(t, ok)
	assert.Equal(t, "Toy Story 2 (1999)", m.Title)

	_, ok = c.Lookup(99)
	assert.False(t, ok)
}

func TestBuildCatalog_DoesNotAliasInput(t *testing.T) {
	movies := toyMovies()
	c := mustCatalog(t, movies, nil)

	movies[0].Title = "changed"

	assert.Equal(t, "Toy Story (1995)", c.Movie(0).Title)
}

func TestBuildCatalog_Empty(t *testing.T) {
	_, err := BuildCatalog(nil, nil)

	assert.ErrorIs(t, err, domain.ErrDataLoad)
}

func TestBuildCatalog_DuplicateID(t *testing.T) {
	movies := append(toyMovies(), domain.MovieEntry{ID: 1, Title: "Again"})

	_, err := BuildCatalog(movies, nil)

	assert.ErrorIs(t, err, domain.ErrDataLoad)
}

func TestLoadCatalog(t *testing.T) {
	loader := &mockLoader{
		LoadMoviesFunc: func(context.Context) ([]domain.MovieEntry, error) {
			return toyMovies(), nil
		},
		LoadRatingsFunc: func(context.Context) ([]domain.RatingEvent, error) {
			return []domain.RatingEvent{{UserID: 1, MovieID: 1, Rating: 4.5}}, nil
		},
	}

	c, err := LoadCatalog(context.Background(), loader)

	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())
	assert.Len(t, c.Ratings(), 1)
}

func TestLoadCatalog_Failures(t *testing.T) {
	okMovies := func(context.Context) ([]domain.MovieEntry, error) { return toyMovies(), nil }
	okRatings := func(context.Context) ([]domain.RatingEvent, error) {
		return []domain.RatingEvent{{UserID: 1, MovieID: 1, Rating: 5}}, nil
	}

	tests := []struct {
		name   string
		loader *mockLoader
	}{
		{
			name: "movies unreadable",
			loader: &mockLoader{
				LoadMoviesFunc: func(context.Context) ([]domain.MovieEntry, error) {
					return nil, errors.New("permission denied")
				},
				LoadRatingsFunc: okRatings,
			},
		},
		{
			name: "ratings unreadable",
			loader: &mockLoader{
				LoadMoviesFunc: okMovies,
				LoadRatingsFunc: func(context.Context) ([]domain.RatingEvent, error) {
					return nil, domain.ErrDataLoad
				},
			},
		},
		{
			name: "ratings empty",
			loader: &mockLoader{
				LoadMoviesFunc:  okMovies,
				LoadRatingsFunc: func(context.Context) ([]domain.RatingEvent, error) { return nil, nil },
			},
		},
		{
			name: "movies empty",
			loader: &mockLoader{
				LoadMoviesFunc:  func(context.Context) ([]domain.MovieEntry, error) { return nil, nil },
				LoadRatingsFunc: okRatings,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadCatalog(context.Background(), tt.loader)
			assert.ErrorIs(t, err, domain.ErrDataLoad)
		})
	}
}
