package driving

import (
	"context"

	"github.com/custodia-labs/moviematch/internal/core/domain"
)

// StatsService summarises the feedback log.
type StatsService interface {
	// Summarize computes per-method distributions and per-query means.
	Summarize(ctx context.Context) (*domain.FeedbackStats, error)

	// Changes signals after each write to the feedback log until ctx is done.
	Changes(ctx context.Context) (<-chan struct{}, error)
}
