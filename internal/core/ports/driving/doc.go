// Package driving defines the interfaces the CLI, TUI and MCP server use
// to reach the recommendation engine and the feedback log.
//
// Implementations live in internal/core/services.
package driving
