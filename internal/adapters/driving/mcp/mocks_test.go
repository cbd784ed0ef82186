package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/moviematch/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/moviematch/internal/core/domain"
	"github.com/custodia-labs/moviematch/internal/core/services"
)

// mockQueryService is a mock implementation of driving.QueryService.
type mockQueryService struct {
	results []domain.ScoredMovie
	err     error
	methods []domain.Method
}

func (m *mockQueryService) Dispatch(ctx context.Context, query string, method domain.Method) ([]domain.ResultRow, error) {
	scored, err := m.Explain(ctx, query, method)
	return domain.RowsFromScored(scored), err
}

func (m *mockQueryService) Explain(_ context.Context, _ string, method domain.Method) ([]domain.ScoredMovie, error) {
	m.methods = append(m.methods, method)
	return m.results, m.err
}

// mockStatsService is a mock implementation of driving.StatsService.
type mockStatsService struct {
	stats *domain.FeedbackStats
	err   error
}

func (m *mockStatsService) Summarize(context.Context) (*domain.FeedbackStats, error) {
	return m.stats, m.err
}

func (m *mockStatsService) Changes(context.Context) (<-chan struct{}, error) {
	return nil, domain.ErrInvalidInput
}

// testServer builds a server over an in-memory feedback log.
func testServer(t *testing.T, query *mockQueryService) (*Server, *memory.FeedbackLog) {
	t.Helper()
	log := memory.NewFeedbackLog()
	feedback := services.NewFeedbackService(log)
	server, err := NewServer(&Ports{
		Query:    query,
		Feedback: feedback,
		Stats:    services.NewStatsService(log),
	}, domain.MCPSettings{RequestsPerSecond: 1000, Burst: 100})
	require.NoError(t, err)
	return server, log
}
