// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/moviematch/internal/core/domain"
)

// SearchCompleted carries a ranked result list back to the model.
type SearchCompleted struct {
	Query   string
	Method  domain.Method
	Results []domain.ScoredMovie
	Err     error
}

// RatingSubmitted carries the outcome of a star rating.
// On error State is the state the submission started from.
type RatingSubmitted struct {
	State    domain.SessionRatingState
	Rating   int
	Appended bool
	Err      error
}

// StatsLoaded carries a fresh feedback summary.
type StatsLoaded struct {
	Stats *domain.FeedbackStats
	Err   error
}

// FeedbackChanged signals the feedback log was written.
type FeedbackChanged struct{}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewSearch is the query, results and rating view.
	ViewSearch
	// ViewStats is the feedback dashboard.
	ViewStats
	// ViewHelp is the help/keybindings view.
	ViewHelp
	// ViewSettings is the settings editor.
	ViewSettings
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewSearch:
		return "search"
	case ViewStats:
		return "stats"
	case ViewHelp:
		return "help"
	case ViewSettings:
		return "settings"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// SettingsLoaded carries the current value of every setting by key.
type SettingsLoaded struct {
	Values map[string]string
	Err    error
}

// SettingsSaved signals a setting was saved.
type SettingsSaved struct {
	Key string
	Err error
}
