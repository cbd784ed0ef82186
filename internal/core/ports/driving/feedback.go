package driving

import (
	"context"

	"github.com/custodia-labs/moviematch/internal/core/domain"
)

// FeedbackService captures user ratings of search results.
type FeedbackService interface {
	// NewSession returns an empty session state with a fresh ID.
	NewSession() domain.SessionRatingState

	// Submit records a rating for the result list of (method, query).
	// The returned bool reports whether a record was appended.
	// On error the input state is returned unchanged.
	Submit(ctx context.Context, state domain.SessionRatingState, method domain.Method, query string, rating int) (domain.SessionRatingState, bool, error)

	// SwitchMethod sets the active method and clears the
	// other method's scratch state.
	SwitchMethod(state domain.SessionRatingState, active domain.Method) domain.SessionRatingState

	// ResetRating clears the method's scratch rating, keeping its query.
	ResetRating(state domain.SessionRatingState, method domain.Method) domain.SessionRatingState

	// Records returns the accepted feedback log in order.
	Records(ctx context.Context) ([]domain.FeedbackRecord, error)

	// LogPath returns where the log is persisted.
	LogPath() string
}
