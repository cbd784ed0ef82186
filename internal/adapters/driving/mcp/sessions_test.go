package mcp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/moviematch/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/moviematch/internal/core/domain"
	"github.com/custodia-labs/moviematch/internal/core/services"
)

func TestSessionStore_NewAndLookup(t *testing.T) {
	store := newSessionStore(services.NewFeedbackService(memory.NewFeedbackLog()), time.Minute)

	state, err := store.get("")
	require.NoError(t, err)
	require.NotEmpty(t, state.ID)

	state = state.With(domain.MethodContent, domain.MethodState{Rating: 4, Query: "heat"})
	store.put(state)

	got, err := store.get(state.ID)
	require.NoError(t, err)
	assert.Equal(t, state, got)
	assert.Equal(t, 1, store.count())

	_, err = store.get("missing")
	assert.ErrorIs(t, err, ErrUnknownSession)
}

func TestSessionStore_IdleSessionsExpire(t *testing.T) {
	store := newSessionStore(services.NewFeedbackService(memory.NewFeedbackLog()), 20*time.Millisecond)

	for range 5 {
		_, err := store.get("")
		require.NoError(t, err)
	}
	state, err := store.get("")
	require.NoError(t, err)

	time.Sleep(60 * time.Millisecond)

	_, err = store.get(state.ID)
	assert.ErrorIs(t, err, ErrUnknownSession)
}
