package mcp

import (
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/custodia-labs/moviematch/internal/core/domain"
	"github.com/custodia-labs/moviematch/internal/core/ports/driving"
)

// sessionIdleTTL is how long a session survives without a tool call.
const sessionIdleTTL = 30 * time.Minute

// sessionStore keeps rating state per MCP session id. Entries expire
// after ttl without use.
type sessionStore struct {
	feedback driving.FeedbackService
	states   *cache.Cache
}

func newSessionStore(feedback driving.FeedbackService, ttl time.Duration) *sessionStore {
	return &sessionStore{
		feedback: feedback,
		states:   cache.New(ttl, 2*ttl),
	}
}

// get returns the state for id and refreshes its expiry. An empty id
// starts a new session.
func (s *sessionStore) get(id string) (domain.SessionRatingState, error) {
	if id == "" {
		state := s.feedback.NewSession()
		s.put(state)
		return state, nil
	}
	x, ok := s.states.Get(id)
	if !ok {
		return domain.SessionRatingState{}, fmt.Errorf("%w: %s", ErrUnknownSession, id)
	}
	state := x.(domain.SessionRatingState)
	s.put(state)
	return state, nil
}

// put stores the updated state.
func (s *sessionStore) put(state domain.SessionRatingState) {
	s.states.Set(state.ID, state, cache.DefaultExpiration)
}

func (s *sessionStore) count() int {
	return s.states.ItemCount()
}
