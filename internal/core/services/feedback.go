package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/moviematch/internal/core/domain"
	"github.com/custodia-labs/moviematch/internal/core/ports/driven"
	"github.com/custodia-labs/moviematch/internal/core/ports/driving"
	"github.com/custodia-labs/moviematch/internal/logger"
)

// Ensure FeedbackService implements the interface.
var _ driving.FeedbackService = (*FeedbackService)(nil)

// FeedbackService records ratings in the feedback log. It is safe for
// concurrent use by many sessions; compare, append and persist run under
// one lock.
type FeedbackService struct {
	log driven.FeedbackLog

	mu      sync.Mutex
	records []domain.FeedbackRecord
	loaded  bool
}

// NewFeedbackService creates a feedback service backed by log.
// The log is read lazily on first use.
func NewFeedbackService(log driven.FeedbackLog) *FeedbackService {
	return &FeedbackService{log: log}
}

// NewSession returns an empty session state with a fresh ID.
func (s *FeedbackService) NewSession() domain.SessionRatingState {
	return domain.NewSessionRatingState(uuid.NewString())
}

// Submit appends a record when rating or query differs from the method's
// previous submission in state. Ratings <= 0 are ignored.
func (s *FeedbackService) Submit(
	ctx context.Context,
	state domain.SessionRatingState,
	method domain.Method,
	query string,
	rating int,
) (domain.SessionRatingState, bool, error) {
	if rating <= 0 {
		return state, false, nil
	}

	record := domain.FeedbackRecord{Method: method, Query: query, Rating: rating}
	if err := record.Validate(); err != nil {
		return state, false, fmt.Errorf("feedback: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev := state.For(method)
	if prev.Rating == rating && prev.Query == query {
		logger.Debug("Session %s: unchanged %s rating for %q", state.ID, method, query)
		return state, false, nil
	}

	if err := s.ensureLoaded(ctx); err != nil {
		return state, false, err
	}

	if err := s.log.Append(ctx, record); err != nil {
		logger.Error(err, "Session %s: persist feedback", state.ID)
		return state, false, fmt.Errorf("feedback: append: %w", err)
	}
	s.records = append(s.records, record)

	logger.Debug("Session %s: recorded %s rating %d for %q", state.ID, method, rating, query)
	return state.With(method, domain.MethodState{Rating: rating, Query: query}), true, nil
}

// SwitchMethod sets the active method and clears the other
// method's scratch state so a stale rating is never resubmitted.
func (s *FeedbackService) SwitchMethod(state domain.SessionRatingState, active domain.Method) domain.SessionRatingState {
	state.Active = active
	return state.With(active.Other(), domain.MethodState{})
}

// ResetRating clears the method's scratch rating and keeps its query.
func (s *FeedbackService) ResetRating(state domain.SessionRatingState, method domain.Method) domain.SessionRatingState {
	ms := state.For(method)
	ms.Rating = 0
	return state.With(method, ms)
}

// Records returns a copy of the accepted log in submission order.
func (s *FeedbackService) Records(ctx context.Context) ([]domain.FeedbackRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	return slices.Clone(s.records), nil
}

// LogPath returns where the log is persisted.
func (s *FeedbackService) LogPath() string {
	return s.log.Path()
}

// ensureLoaded reads the persisted log once (mu held). A log with the
// wrong schema is reset to an empty one.
func (s *FeedbackService) ensureLoaded(ctx context.Context) error {
	if s.loaded {
		return nil
	}

	records, err := s.log.Load(ctx)
	if errors.Is(err, domain.ErrMalformedInput) {
		logger.Warn("Feedback log %s is malformed, recreating it: %v", s.log.Path(), err)
		if resetErr := s.log.Reset(ctx); resetErr != nil {
			return fmt.Errorf("feedback: reset log: %w", resetErr)
		}
		records, err = nil, nil
	}
	if err != nil {
		return fmt.Errorf("feedback: load log: %w", err)
	}

	s.records = records
	s.loaded = true
	logger.Debug("Feedback log %s: %d records", s.log.Path(), len(records))
	return nil
}
