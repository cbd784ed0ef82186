package stats

import "errors"

// ErrNoStatsService indicates that no stats service was provided.
var ErrNoStatsService = errors.New("stats service is required")
