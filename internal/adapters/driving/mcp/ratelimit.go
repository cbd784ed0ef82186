package mcp

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/moviematch/internal/core/domain"
)

// RateLimiter throttles tool calls with a token bucket.
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter creates a limiter from MCP settings. Non-positive values
// fall back to the defaults.
func NewRateLimiter(cfg domain.MCPSettings) *RateLimiter {
	defaults := domain.DefaultAppSettings().MCP
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = defaults.RequestsPerSecond
	}
	if cfg.Burst <= 0 {
		cfg.Burst = defaults.Burst
	}
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
	}
}

// Wait blocks until a call can proceed without exceeding the limit.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if err := r.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("mcp: rate limit: %w", err)
	}
	return nil
}

// Allow reports whether a call can proceed immediately.
func (r *RateLimiter) Allow() bool {
	return r.limiter.Allow()
}
