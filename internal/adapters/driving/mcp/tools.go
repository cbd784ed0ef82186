package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/moviematch/internal/core/domain"
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query     string `json:"query" jsonschema:"a movie title or part of one"`
	Method    string `json:"method,omitempty" jsonschema:"content or collaborative (default content)"`
	SessionID string `json:"session_id,omitempty" jsonschema:"session returned by an earlier call; omit to start one"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	SessionID string        `json:"session_id"`
	Query     string        `json:"query"`
	Method    string        `json:"method"`
	Results   []MovieOutput `json:"results"`
	Count     int           `json:"count"`
}

// MovieOutput represents a single recommended movie.
type MovieOutput struct {
	ID     int      `json:"id"`
	Title  string   `json:"title"`
	Genres []string `json:"genres"`
	// Score is omitted when infinite.
	Score *float64 `json:"score,omitempty"`
}

// RateInput is the input schema for the rate tool.
type RateInput struct {
	SessionID string `json:"session_id,omitempty" jsonschema:"session returned by search; omit to start one"`
	Method    string `json:"method" jsonschema:"content or collaborative"`
	Query     string `json:"query" jsonschema:"the query whose results are rated"`
	Rating    int    `json:"rating" jsonschema:"1 to 5 stars"`
}

// RateOutput is the output schema for the rate tool.
type RateOutput struct {
	SessionID string `json:"session_id"`
	Recorded  bool   `json:"recorded"`
	Rating    int    `json:"rating"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Recommend movies for a title by content similarity or by what its fans rated highly",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "rate",
		Description: "Rate a result list from 1 to 5; repeated identical ratings are recorded once per session",
	}, s.handleRate)
}

// parseMethod defaults an empty method to content.
func parseMethod(name string) (domain.Method, error) {
	if name == "" {
		return domain.MethodContent, nil
	}
	return domain.ParseMethod(name)
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, SearchOutput{}, err
	}

	method, err := parseMethod(input.Method)
	if err != nil {
		return nil, SearchOutput{}, err
	}
	state, err := s.sessions.get(input.SessionID)
	if err != nil {
		return nil, SearchOutput{}, err
	}
	if state.Active != method {
		state = s.ports.Feedback.SwitchMethod(state, method)
		s.sessions.put(state)
	}

	scored, err := s.ports.Query.Explain(ctx, input.Query, method)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		SessionID: state.ID,
		Query:     input.Query,
		Method:    method.String(),
		Results:   make([]MovieOutput, len(scored)),
		Count:     len(scored),
	}
	for i, sm := range scored {
		genres := sm.Movie.Genres
		if genres == nil {
			genres = []string{}
		}
		output.Results[i] = MovieOutput{
			ID:     sm.Movie.ID,
			Title:  sm.Movie.Title,
			Genres: genres,
			Score:  sm.JSONScore(),
		}
	}

	return nil, output, nil
}

// handleRate handles the rate tool invocation.
func (s *Server) handleRate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RateInput,
) (*mcp.CallToolResult, RateOutput, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, RateOutput{}, err
	}

	method, err := domain.ParseMethod(input.Method)
	if err != nil {
		return nil, RateOutput{}, err
	}
	state, err := s.sessions.get(input.SessionID)
	if err != nil {
		return nil, RateOutput{}, err
	}

	next, recorded, err := s.ports.Feedback.Submit(ctx, state, method, input.Query, input.Rating)
	if err != nil {
		return nil, RateOutput{}, err
	}
	s.sessions.put(next)

	return nil, RateOutput{
		SessionID: next.ID,
		Recorded:  recorded,
		Rating:    next.For(method).Rating,
	}, nil
}
