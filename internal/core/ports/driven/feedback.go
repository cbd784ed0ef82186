package driven

import (
	"context"

	"github.com/custodia-labs/moviematch/internal/core/domain"
)

// FeedbackLog persists feedback records in submission order.
// Callers serialise writes; implementations need not be safe for
// concurrent Append.
type FeedbackLog interface {
	// Load returns every persisted record in order. A log that does not
	// exist yet is created empty. A log with the wrong schema returns
	// domain.ErrMalformedInput.
	Load(ctx context.Context) ([]domain.FeedbackRecord, error)

	// Append durably adds one record. On error nothing is persisted.
	Append(ctx context.Context, record domain.FeedbackRecord) error

	// Reset discards every record and recreates an empty log.
	Reset(ctx context.Context) error

	// Path returns the location of the log, for display and watching.
	Path() string
}
