// Package mcp provides an MCP (Model Context Protocol) server adapter for moviematch.
// It lets AI assistants request recommendations and record ratings.
package mcp

import "errors"

// ErrMissingQueryService is returned when the query service is not provided.
var ErrMissingQueryService = errors.New("mcp: query service is required")

// ErrMissingFeedbackService is returned when the feedback service is not provided.
var ErrMissingFeedbackService = errors.New("mcp: feedback service is required")

// ErrUnknownSession is returned when a tool names a session this server never issued.
var ErrUnknownSession = errors.New("mcp: unknown session")
