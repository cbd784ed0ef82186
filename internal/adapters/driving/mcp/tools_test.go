package mcp

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/moviematch/internal/core/domain"
)

func heatResults() []domain.ScoredMovie {
	return []domain.ScoredMovie{
		{Movie: domain.MovieEntry{ID: 6, Title: "Heat (1995)", Genres: []string{"Action", "Crime"}}, Score: math.Inf(1)},
		{Movie: domain.MovieEntry{ID: 7, Title: "Sabrina (1995)"}, Score: 0.25},
	}
}

func TestServer_handleSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("returns results and starts a session", func(t *testing.T) {
		query := &mockQueryService{results: heatResults()}
		server, _ := testServer(t, query)

		_, output, err := server.handleSearch(ctx, nil, SearchInput{Query: "heat"})

		require.NoError(t, err)
		assert.NotEmpty(t, output.SessionID)
		assert.Equal(t, domain.MethodContent.String(), output.Method)
		assert.Equal(t, 2, output.Count)
		assert.Equal(t, "Heat (1995)", output.Results[0].Title)
		assert.Nil(t, output.Results[0].Score, "infinite score is omitted")
		require.NotNil(t, output.Results[1].Score)
		assert.Equal(t, 0.25, *output.Results[1].Score)
		assert.Equal(t, []string{}, output.Results[1].Genres)
		assert.Equal(t, 1, server.sessions.count())
	})

	t.Run("reuses a session and switches method", func(t *testing.T) {
		query := &mockQueryService{}
		server, _ := testServer(t, query)

		_, first, err := server.handleSearch(ctx, nil, SearchInput{Query: "heat"})
		require.NoError(t, err)
		_, second, err := server.handleSearch(ctx, nil, SearchInput{
			Query: "heat", Method: "collaborative", SessionID: first.SessionID,
		})

		require.NoError(t, err)
		assert.Equal(t, first.SessionID, second.SessionID)
		assert.Equal(t, []domain.Method{domain.MethodContent, domain.MethodCollaborative}, query.methods)
		state, err := server.sessions.get(first.SessionID)
		require.NoError(t, err)
		assert.Equal(t, domain.MethodCollaborative, state.Active)
		assert.Equal(t, 1, server.sessions.count())
	})

	t.Run("unknown session", func(t *testing.T) {
		server, _ := testServer(t, &mockQueryService{})

		_, _, err := server.handleSearch(ctx, nil, SearchInput{Query: "heat", SessionID: "nope"})

		assert.ErrorIs(t, err, ErrUnknownSession)
	})

	t.Run("unknown method", func(t *testing.T) {
		server, _ := testServer(t, &mockQueryService{})

		_, _, err := server.handleSearch(ctx, nil, SearchInput{Query: "heat", Method: "popularity"})

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("returns error on query failure", func(t *testing.T) {
		server, _ := testServer(t, &mockQueryService{err: errors.New("query failed")})

		_, _, err := server.handleSearch(ctx, nil, SearchInput{Query: "heat"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "query failed")
	})
}

func TestServer_handleRate(t *testing.T) {
	ctx := context.Background()

	t.Run("records once per changed rating", func(t *testing.T) {
		server, log := testServer(t, &mockQueryService{})
		_, search, err := server.handleSearch(ctx, nil, SearchInput{Query: "heat"})
		require.NoError(t, err)

		in := RateInput{SessionID: search.SessionID, Method: "content", Query: "heat", Rating: 4}
		_, out, err := server.handleRate(ctx, nil, in)
		require.NoError(t, err)
		assert.True(t, out.Recorded)
		assert.Equal(t, 4, out.Rating)

		_, out, err = server.handleRate(ctx, nil, in)
		require.NoError(t, err)
		assert.False(t, out.Recorded, "same rating and query is not recorded twice")

		in.Rating = 2
		_, out, err = server.handleRate(ctx, nil, in)
		require.NoError(t, err)
		assert.True(t, out.Recorded)

		records, err := log.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, []domain.FeedbackRecord{
			{Method: domain.MethodContent, Query: "heat", Rating: 4},
			{Method: domain.MethodContent, Query: "heat", Rating: 2},
		}, records)
	})

	t.Run("without session starts one", func(t *testing.T) {
		server, _ := testServer(t, &mockQueryService{})

		_, out, err := server.handleRate(ctx, nil, RateInput{Method: "cf", Query: "heat", Rating: 5})

		require.NoError(t, err)
		assert.NotEmpty(t, out.SessionID)
		assert.True(t, out.Recorded)
	})

	t.Run("rating out of range", func(t *testing.T) {
		server, log := testServer(t, &mockQueryService{})

		_, _, err := server.handleRate(ctx, nil, RateInput{Method: "content", Query: "heat", Rating: 9})

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		records, _ := log.Load(ctx)
		assert.Empty(t, records)
	})

	t.Run("method is required", func(t *testing.T) {
		server, _ := testServer(t, &mockQueryService{})

		_, _, err := server.handleRate(ctx, nil, RateInput{Query: "heat", Rating: 3})

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("persistence failure keeps session state", func(t *testing.T) {
		server, log := testServer(t, &mockQueryService{})
		log.AppendErr = errors.New("disk full")
		_, search, err := server.handleSearch(ctx, nil, SearchInput{Query: "heat"})
		require.NoError(t, err)

		_, _, err = server.handleRate(ctx, nil, RateInput{SessionID: search.SessionID, Method: "content", Query: "heat", Rating: 3})

		require.Error(t, err)
		state, err := server.sessions.get(search.SessionID)
		require.NoError(t, err)
		assert.Zero(t, state.For(domain.MethodContent).Rating)
	})
}
