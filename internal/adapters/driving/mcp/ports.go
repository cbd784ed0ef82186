package mcp

import (
	"github.com/custodia-labs/moviematch/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Query runs content and collaborative searches.
	Query driving.QueryService

	// Feedback records ratings against sessions.
	Feedback driving.FeedbackService

	// Stats summarises the feedback log. Optional.
	Stats driving.StatsService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Query == nil {
		return ErrMissingQueryService
	}
	if p.Feedback == nil {
		return ErrMissingFeedbackService
	}
	return nil
}
