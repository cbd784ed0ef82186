package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/moviematch/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/moviematch/internal/core/domain"
)

func TestFeedbackService_NewSession(t *testing.T) {
	svc := NewFeedbackService(memory.NewFeedbackLog())

	a := svc.NewSession()
	b := svc.NewSession()

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, domain.MethodContent, a.Active)
	assert.Equal(t, domain.MethodState{}, a.For(domain.MethodContent))
}

func TestFeedbackService_SubmitAppends(t *testing.T) {
	ctx := context.Background()
	log := memory.NewFeedbackLog()
	svc := NewFeedbackService(log)

	state, appended, err := svc.Submit(ctx, svc.NewSession(), domain.MethodContent, "Toy Story", 4)

	require.NoError(t, err)
	assert.True(t, appended)
	assert.Equal(t, domain.MethodState{Rating: 4, Query: "Toy Story"}, state.For(domain.MethodContent))

	persisted, _ := log.Load(ctx)
	assert.Equal(t, []domain.FeedbackRecord{{Method: domain.MethodContent, Query: "Toy Story", Rating: 4}}, persisted)
}

func TestFeedbackService_SameSubmissionTwiceAppendsOnce(t *testing.T) {
	ctx := context.Background()
	svc := NewFeedbackService(memory.NewFeedbackLog())
	state := svc.NewSession()

	state, first, err := svc.Submit(ctx, state, domain.MethodCollaborative, "Heat", 5)
	require.NoError(t, err)
	state, second, err := svc.Submit(ctx, state, domain.MethodCollaborative, "Heat", 5)
	require.NoError(t, err)

	assert.True(t, first)
	assert.False(t, second)
	records, _ := svc.Records(ctx)
	assert.Len(t, records, 1)
	assert.Equal(t, 5, state.For(domain.MethodCollaborative).Rating)
}

func TestFeedbackService_ChangeAppends(t *testing.T) {
	ctx := context.Background()
	svc := NewFeedbackService(memory.NewFeedbackLog())
	state := svc.NewSession()

	state, _, _ = svc.Submit(ctx, state, domain.MethodContent, "Heat", 3)
	state, changedRating, _ := svc.Submit(ctx, state, domain.MethodContent, "Heat", 4)
	_, changedQuery, _ := svc.Submit(ctx, state, domain.MethodContent, "Sabrina", 4)

	assert.True(t, changedRating)
	assert.True(t, changedQuery)
	records, _ := svc.Records(ctx)
	assert.Equal(t, []domain.FeedbackRecord{
		{Method: domain.MethodContent, Query: "Heat", Rating: 3},
		{Method: domain.MethodContent, Query: "Heat", Rating: 4},
		{Method: domain.MethodContent, Query: "Sabrina", Rating: 4},
	}, records)
}

func TestFeedbackService_MethodsTrackedSeparately(t *testing.T) {
	ctx := context.Background()
	svc := NewFeedbackService(memory.NewFeedbackLog())
	state := svc.NewSession()

	state, _, _ = svc.Submit(ctx, state, domain.MethodContent, "Heat", 3)
	_, appended, _ := svc.Submit(ctx, state, domain.MethodCollaborative, "Heat", 3)

	assert.True(t, appended)
}

func TestFeedbackService_ZeroRatingIsNoOp(t *testing.T) {
	ctx := context.Background()
	log := memory.NewFeedbackLog()
	svc := NewFeedbackService(log)
	state := svc.NewSession()

	for _, rating := range []int{0, -1} {
		got, appended, err := svc.Submit(ctx, state, domain.MethodContent, "Heat", rating)
		require.NoError(t, err)
		assert.False(t, appended)
		assert.Equal(t, state, got)
	}

	persisted, _ := log.Load(ctx)
	assert.Empty(t, persisted)
}

func TestFeedbackService_InvalidInput(t *testing.T) {
	ctx := context.Background()
	svc := NewFeedbackService(memory.NewFeedbackLog())
	state := svc.NewSession()

	_, _, err := svc.Submit(ctx, state, domain.MethodContent, "Heat", 6)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, _, err = svc.Submit(ctx, state, domain.Method("Hybrid"), "Heat", 3)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFeedbackService_PersistFailureKeepsState(t *testing.T) {
	ctx := context.Background()
	log := memory.NewFeedbackLog()
	svc := NewFeedbackService(log)
	state, _, err := svc.Submit(ctx, svc.NewSession(), domain.MethodContent, "Heat", 2)
	require.NoError(t, err)

	log.AppendErr = errors.New("disk full")
	got, appended, err := svc.Submit(ctx, state, domain.MethodContent, "Heat", 5)

	require.Error(t, err)
	assert.False(t, appended)
	assert.Equal(t, state, got)
	records, _ := svc.Records(ctx)
	assert.Equal(t, []domain.FeedbackRecord{{Method: domain.MethodContent, Query: "Heat", Rating: 2}}, records)

	// The same submission succeeds once storage recovers.
	log.AppendErr = nil
	_, appended, err = svc.Submit(ctx, got, domain.MethodContent, "Heat", 5)
	require.NoError(t, err)
	assert.True(t, appended)
}

func TestFeedbackService_MalformedLogIsReset(t *testing.T) {
	ctx := context.Background()
	log := memory.NewFeedbackLog(domain.FeedbackRecord{Method: domain.MethodContent, Query: "old", Rating: 1})
	log.LoadErr = domain.ErrMalformedInput
	svc := NewFeedbackService(log)

	_, appended, err := svc.Submit(ctx, svc.NewSession(), domain.MethodContent, "Heat", 4)

	require.NoError(t, err)
	assert.True(t, appended)
	persisted, _ := log.Load(ctx)
	assert.Equal(t, []domain.FeedbackRecord{{Method: domain.MethodContent, Query: "Heat", Rating: 4}}, persisted)
}

func TestFeedbackService_LoadFailure(t *testing.T) {
	log := memory.NewFeedbackLog()
	log.LoadErr = errors.New("permission denied")
	svc := NewFeedbackService(log)

	_, err := svc.Records(context.Background())

	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrMalformedInput)
}

func TestFeedbackService_RecordsIncludesExistingLog(t *testing.T) {
	existing := domain.FeedbackRecord{Method: domain.MethodCollaborative, Query: "Jumanji", Rating: 2}
	svc := NewFeedbackService(memory.NewFeedbackLog(existing))

	records, err := svc.Records(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []domain.FeedbackRecord{existing}, records)
}

func TestFeedbackService_SwitchMethod(t *testing.T) {
	svc := NewFeedbackService(memory.NewFeedbackLog())
	state := svc.NewSession().
		With(domain.MethodContent, domain.MethodState{Rating: 4, Query: "Heat"}).
		With(domain.MethodCollaborative, domain.MethodState{Rating: 2, Query: "Sabrina"})

	switched := svc.SwitchMethod(state, domain.MethodCollaborative)

	assert.Equal(t, domain.MethodCollaborative, switched.Active)
	assert.Equal(t, domain.MethodState{}, switched.For(domain.MethodContent))
	assert.Equal(t, domain.MethodState{Rating: 2, Query: "Sabrina"}, switched.For(domain.MethodCollaborative))

	// Input state is untouched.
	assert.Equal(t, 4, state.For(domain.MethodContent).Rating)
}

func TestFeedbackService_SwitchMethodAllowsResubmission(t *testing.T) {
	ctx := context.Background()
	svc := NewFeedbackService(memory.NewFeedbackLog())
	state := svc.NewSession()

	state, _, _ = svc.Submit(ctx, state, domain.MethodContent, "Heat", 4)
	state = svc.SwitchMethod(state, domain.MethodCollaborative)
	state = svc.SwitchMethod(state, domain.MethodContent)
	_, appended, _ := svc.Submit(ctx, state, domain.MethodContent, "Heat", 4)

	assert.True(t, appended)
}

func TestFeedbackService_ResetRating(t *testing.T) {
	ctx := context.Background()
	svc := NewFeedbackService(memory.NewFeedbackLog())
	state := svc.NewSession()

	state, _, _ = svc.Submit(ctx, state, domain.MethodContent, "Heat", 4)
	state = svc.ResetRating(state, domain.MethodContent)

	assert.Equal(t, domain.MethodState{Rating: 0, Query: "Heat"}, state.For(domain.MethodContent))

	_, appended, _ := svc.Submit(ctx, state, domain.MethodContent, "Heat", 4)
	assert.True(t, appended)
}

func TestFeedbackService_ConcurrentSessions(t *testing.T) {
	ctx := context.Background()
	svc := NewFeedbackService(memory.NewFeedbackLog())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := svc.Submit(ctx, svc.NewSession(), domain.MethodContent, "Heat", 1+i%5)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	records, err := svc.Records(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 20)
}

func TestFeedbackService_LogPath(t *testing.T) {
	svc := NewFeedbackService(memory.NewFeedbackLog())

	assert.Equal(t, ":memory:", svc.LogPath())
}
