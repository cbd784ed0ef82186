package mcp

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/moviematch/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for moviematch resources.
	uriScheme = "moviematch://"

	mimeJSON = "application/json"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "feedback",
		Name:        "feedback",
		Description: "Every accepted rating in submission order",
		MIMEType:    mimeJSON,
	}, s.handleFeedbackResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "stats",
		Name:        "stats",
		Description: "Rating histograms, summaries and per-query means for each method",
		MIMEType:    mimeJSON,
	}, s.handleStatsResource)
}

// handleFeedbackResource returns the feedback log as JSON.
func (s *Server) handleFeedbackResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	records, err := s.ports.Feedback.Records(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading feedback: %w", err)
	}
	if records == nil {
		records = []domain.FeedbackRecord{}
	}
	return jsonResource(req.Params.URI, records)
}

// handleStatsResource returns the feedback statistics as JSON.
func (s *Server) handleStatsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Stats == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	stats, err := s.ports.Stats.Summarize(ctx)
	if err != nil {
		return nil, fmt.Errorf("summarising feedback: %w", err)
	}
	return jsonResource(req.Params.URI, stats)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: mimeJSON,
			Text:     string(data),
		}},
	}, nil
}
