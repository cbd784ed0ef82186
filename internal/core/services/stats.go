package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/custodia-labs/moviematch/internal/core/domain"
	"github.com/custodia-labs/moviematch/internal/core/ports/driven"
	"github.com/custodia-labs/moviematch/internal/core/ports/driving"
)

// Ensure StatsService implements the interface.
var _ driving.StatsService = (*StatsService)(nil)

// StatsService computes dashboard statistics over the feedback log.
// It reads the log on every call so writes by other processes are seen.
type StatsService struct {
	log     driven.FeedbackLog
	watcher driven.LogWatcher
}

// NewStatsService creates a stats service reading log.
func NewStatsService(log driven.FeedbackLog) *StatsService {
	return &StatsService{log: log}
}

// WithWatcher enables Changes using w.
func (s *StatsService) WithWatcher(w driven.LogWatcher) *StatsService {
	s.watcher = w
	return s
}

// Changes signals after each write to the feedback log until ctx is done.
func (s *StatsService) Changes(ctx context.Context) (<-chan struct{}, error) {
	if s.watcher == nil {
		return nil, fmt.Errorf("stats: %w: no log watcher configured", domain.ErrInvalidInput)
	}
	ch, err := s.watcher.Watch(ctx, s.log.Path())
	if err != nil {
		return nil, fmt.Errorf("stats: watch %s: %w", s.log.Path(), err)
	}
	return ch, nil
}

// Summarize computes per-method distributions and per-query means.
// A malformed log summarises as empty.
func (s *StatsService) Summarize(ctx context.Context) (*domain.FeedbackStats, error) {
	records, err := s.log.Load(ctx)
	if errors.Is(err, domain.ErrMalformedInput) {
		records, err = nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("stats: load log: %w", err)
	}
	return Summarize(records), nil
}

// Summarize computes statistics over records.
func Summarize(records []domain.FeedbackRecord) *domain.FeedbackStats {
	stats := &domain.FeedbackStats{
		Total:   len(records),
		Methods: make([]domain.MethodStats, 0, 2),
		Queries: []domain.QueryStats{},
	}

	byMethod := make(map[domain.Method][]float64)
	type queryKey struct {
		query  string
		method domain.Method
	}
	byQuery := make(map[queryKey][]float64)
	var order []queryKey

	for _, r := range records {
		byMethod[r.Method] = append(byMethod[r.Method], float64(r.Rating))
		k := queryKey{r.Query, r.Method}
		if _, ok := byQuery[k]; !ok {
			order = append(order, k)
		}
		byQuery[k] = append(byQuery[k], float64(r.Rating))
	}

	for _, m := range domain.Methods() {
		ratings := byMethod[m]
		ms := domain.MethodStats{
			Method:  m,
			Count:   len(ratings),
			Summary: Summary(ratings),
		}
		for _, r := range ratings {
			if r >= domain.MinRating && r <= domain.MaxRating {
				ms.Histogram[int(r)-1]++
			}
		}
		stats.Methods = append(stats.Methods, ms)
	}

	sort.SliceStable(order, func(i, j int) bool {
		if order[i].query != order[j].query {
			return order[i].query < order[j].query
		}
		return order[i].method < order[j].method
	})
	for _, k := range order {
		ratings := byQuery[k]
		stats.Queries = append(stats.Queries, domain.QueryStats{
			Query:  k.query,
			Method: k.method,
			Count:  len(ratings),
			Mean:   mean(ratings),
		})
	}

	return stats
}

// Summary returns the five-number summary and mean of values.
// Quartiles interpolate linearly between closest ranks. An empty input
// yields the zero summary.
func Summary(values []float64) domain.RatingSummary {
	if len(values) == 0 {
		return domain.RatingSummary{}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return domain.RatingSummary{
		Min:    sorted[0],
		Q1:     quantile(sorted, 0.25),
		Median: quantile(sorted, 0.5),
		Q3:     quantile(sorted, 0.75),
		Max:    sorted[len(sorted)-1],
		Mean:   mean(sorted),
	}
}

// quantile returns the p-quantile of sorted values.
func quantile(sorted []float64, p float64) float64 {
	pos := p * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
