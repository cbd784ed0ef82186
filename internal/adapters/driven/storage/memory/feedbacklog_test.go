package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/moviematch/internal/core/domain"
)

func TestFeedbackLog_AppendLoad(t *testing.T) {
	ctx := context.Background()
	log := NewFeedbackLog()

	recs := []domain.FeedbackRecord{
		{Method: domain.MethodContent, Query: "Toy Story", Rating: 4},
		{Method: domain.MethodCollaborative, Query: "Heat", Rating: 2},
	}
	for _, r := range recs {
		require.NoError(t, log.Append(ctx, r))
	}

	got, err := log.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, recs, got)

	// Returned slice is a copy
	got[0].Rating = 1
	again, _ := log.Load(ctx)
	assert.Equal(t, 4, again[0].Rating)
}

func TestFeedbackLog_AppendErr(t *testing.T) {
	ctx := context.Background()
	log := NewFeedbackLog()
	log.AppendErr = errors.New("disk full")

	err := log.Append(ctx, domain.FeedbackRecord{Method: domain.MethodContent, Query: "q", Rating: 3})

	assert.EqualError(t, err, "disk full")
	got, _ := log.Load(ctx)
	assert.Empty(t, got)
}

func TestFeedbackLog_ResetClearsLoadErr(t *testing.T) {
	ctx := context.Background()
	log := NewFeedbackLog(domain.FeedbackRecord{Method: domain.MethodContent, Query: "q", Rating: 5})
	log.LoadErr = domain.ErrMalformedInput

	_, err := log.Load(ctx)
	require.ErrorIs(t, err, domain.ErrMalformedInput)

	require.NoError(t, log.Reset(ctx))
	got, err := log.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, ":memory:", log.Path())
}
