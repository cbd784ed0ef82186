// Package tui provides an interactive terminal user interface for moviematch.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/moviematch/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Query runs content and collaborative searches.
	Query driving.QueryService

	// Feedback records per-session ratings.
	Feedback driving.FeedbackService

	// Stats summarises the feedback log.
	Stats driving.StatsService

	// Settings manages application settings. Optional.
	Settings driving.SettingsService
}

// NewPorts creates a new Ports aggregate with the required services.
func NewPorts(
	query driving.QueryService,
	feedback driving.FeedbackService,
	stats driving.StatsService,
) *Ports {
	return &Ports{
		Query:    query,
		Feedback: feedback,
		Stats:    stats,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Query == nil {
		return ErrMissingQueryService
	}
	if p.Feedback == nil {
		return ErrMissingFeedbackService
	}
	if p.Stats == nil {
		return ErrMissingStatsService
	}
	return nil
}
