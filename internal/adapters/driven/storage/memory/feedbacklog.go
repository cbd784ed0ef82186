package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/custodia-labs/moviematch/internal/core/domain"
	"github.com/custodia-labs/moviematch/internal/core/ports/driven"
)

// Ensure FeedbackLog implements the interface.
var _ driven.FeedbackLog = (*FeedbackLog)(nil)

// FeedbackLog is an in-memory implementation of driven.FeedbackLog.
type FeedbackLog struct {
	mu      sync.RWMutex
	records []domain.FeedbackRecord

	// AppendErr, when set, is returned by Append without storing the record.
	AppendErr error
	// LoadErr, when set, is returned by Load until Reset is called.
	LoadErr error
}

// NewFeedbackLog creates an empty in-memory feedback log.
func NewFeedbackLog(records ...domain.FeedbackRecord) *FeedbackLog {
	return &FeedbackLog{records: slices.Clone(records)}
}

// Load returns a copy of every record.
func (l *FeedbackLog) Load(_ context.Context) ([]domain.FeedbackRecord, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.LoadErr != nil {
		return nil, l.LoadErr
	}
	return slices.Clone(l.records), nil
}

// Append adds one record.
func (l *FeedbackLog) Append(_ context.Context, record domain.FeedbackRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.AppendErr != nil {
		return l.AppendErr
	}
	l.records = append(l.records, record)
	return nil
}

// Reset discards every record and clears LoadErr.
func (l *FeedbackLog) Reset(_ context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = nil
	l.LoadErr = nil
	return nil
}

// Path returns the log location.
func (l *FeedbackLog) Path() string {
	return ":memory:"
}
