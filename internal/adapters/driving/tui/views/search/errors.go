package search

import "errors"

// Error definitions for the search view.
var (
	// ErrNoQueryService indicates that no query service was provided.
	ErrNoQueryService = errors.New("query service is required")

	// ErrNoFeedbackService indicates that no feedback service was provided.
	ErrNoFeedbackService = errors.New("feedback service is required")
)
