package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/moviematch/internal/core/domain"
)

func TestRateCmd_Use(t *testing.T) {
	assert.Equal(t, "rate [method] [query] [rating]", rateCmd.Use)
}

func TestRateCmd_Records(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "rate", "collaborative", "Toy Story", "5")

	require.NoError(t, err)
	assert.Contains(t, out, `Recorded 5/5 for collaborative "Toy Story"`)
	records, err := env.log.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.FeedbackRecord{
		{Method: domain.MethodCollaborative, Query: "Toy Story", Rating: 5},
	}, records)
}

func TestRateCmd_EachRunIsANewSession(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "rate", "content", "heat", "3")
	require.NoError(t, err)
	_, err = execute(t, "rate", "content", "heat", "3")
	require.NoError(t, err)

	records, err := env.log.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestRateCmd_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"wrong arg count", []string{"rate", "content", "heat"}, "accepts 3 arg(s)"},
		{"bad method", []string{"rate", "popularity", "heat", "3"}, "unknown method"},
		{"not a number", []string{"rate", "content", "heat", "five"}, "is not a number"},
		{"too high", []string{"rate", "content", "heat", "6"}, "rating 6 outside 1..5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cleanup := setupTestServices()
			defer cleanup()

			_, err := execute(t, tt.args...)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRateCmd_ZeroRatingNotRecorded(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "rate", "content", "heat", "0")

	require.NoError(t, err)
	assert.Contains(t, out, "Not recorded (rating 0)")
	records, err := env.log.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestRateCmd_PersistFailure(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	env.log.AppendErr = errors.New("disk full")

	_, err := execute(t, "rate", "content", "heat", "3")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate failed")
	assert.Contains(t, err.Error(), "disk full")
}
