package domain

import (
	"fmt"
	"strings"
)

// Method identifies a retrieval strategy.
// The string values are the spelling persisted in the feedback log.
type Method string

// Available retrieval methods.
const (
	// MethodContent ranks catalog titles by TF-IDF cosine similarity.
	MethodContent Method = "Content-Based"

	// MethodCollaborative ranks movies by co-rating lift.
	MethodCollaborative Method = "Collaborative-Based"
)

// Methods returns every method in display order.
func Methods() []Method {
	return []Method{MethodContent, MethodCollaborative}
}

// IsValid returns true if the method is recognised.
func (m Method) IsValid() bool {
	switch m {
	case MethodContent, MethodCollaborative:
		return true
	default:
		return false
	}
}

// Other returns the opposite method.
func (m Method) Other() Method {
	if m == MethodCollaborative {
		return MethodContent
	}
	return MethodCollaborative
}

// String returns the string representation.
func (m Method) String() string {
	return string(m)
}

// Short returns the flag spelling of the method.
func (m Method) Short() string {
	switch m {
	case MethodContent:
		return "content"
	case MethodCollaborative:
		return "collaborative"
	default:
		return "unknown"
	}
}

// ParseMethod accepts the persisted spelling or the short flag spelling.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "content-based", "content", "cb":
		return MethodContent, nil
	case "collaborative-based", "collaborative", "collab", "cf":
		return MethodCollaborative, nil
	default:
		return "", fmt.Errorf("%w: unknown method %q", ErrInvalidInput, s)
	}
}

// MinRating and MaxRating bound a feedback rating.
const (
	MinRating = 1
	MaxRating = 5
)

// FeedbackRecord maps a search event to the rating the user gave it.
type FeedbackRecord struct {
	Method Method `json:"method"`
	Query  string `json:"query"`
	Rating int    `json:"rating"`
}

// Validate checks the record against the log schema.
func (r FeedbackRecord) Validate() error {
	if !r.Method.IsValid() {
		return fmt.Errorf("%w: unknown method %q", ErrInvalidInput, r.Method)
	}
	if r.Rating < MinRating || r.Rating > MaxRating {
		return fmt.Errorf("%w: rating %d outside %d..%d", ErrInvalidInput, r.Rating, MinRating, MaxRating)
	}
	return nil
}

// MethodState is the last submission seen for one method in a session.
type MethodState struct {
	Rating int
	Query  string
}

// SessionRatingState is per-session scratch state used to detect
// changed submissions. It is a value: every interaction takes one
// and returns the updated copy. It is never persisted.
type SessionRatingState struct {
	// ID correlates log lines for a session.
	ID string

	// Active is the method currently selected in the UI.
	Active Method

	Content       MethodState
	Collaborative MethodState
}

// NewSessionRatingState returns an empty state with content search active.
func NewSessionRatingState(id string) SessionRatingState {
	return SessionRatingState{ID: id, Active: MethodContent}
}

// For returns the scratch state of a method.
func (s SessionRatingState) For(m Method) MethodState {
	if m == MethodCollaborative {
		return s.Collaborative
	}
	return s.Content
}

// With returns a copy with the method's scratch state replaced.
func (s SessionRatingState) With(m Method, ms MethodState) SessionRatingState {
	if m == MethodCollaborative {
		s.Collaborative = ms
	} else {
		s.Content = ms
	}
	return s
}
