package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/moviematch/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/moviematch/internal/core/domain"
)

func TestNewSettingsService(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	require.NotNil(t, service)
}

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAppSettings(), *settings)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("data.movies", "/srv/ml/movies.csv")
	_ = store.Set("feedback.backend", "sqlite")
	_ = store.Set("search.cache_ttl_seconds", 0)
	_ = store.Set("mcp.requests_per_second", 2.5)
	_ = store.Set("mcp.burst", int64(4))

	settings, err := NewSettingsService(store).Get()

	require.NoError(t, err)
	assert.Equal(t, "/srv/ml/movies.csv", settings.Data.MoviesPath)
	assert.Equal(t, domain.FeedbackBackendSQLite, settings.Feedback.Backend)
	assert.Equal(t, 0, settings.Search.CacheTTLSeconds)
	assert.InDelta(t, 2.5, settings.MCP.RequestsPerSecond, 1e-12)
	assert.Equal(t, 4, settings.MCP.Burst)
}

func TestSettingsService_Get_InvalidBackendFallsBack(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("feedback.backend", "parquet")

	settings, err := NewSettingsService(store).Get()

	require.NoError(t, err)
	assert.Equal(t, domain.FeedbackBackendCSV, settings.Feedback.Backend)
}

func TestSettingsService_Save(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	settings := domain.DefaultAppSettings()
	settings.Feedback.Backend = domain.FeedbackBackendSQLite
	settings.Feedback.Path = "/var/lib/moviematch"
	settings.Log.File = "/var/log/moviematch.log"

	require.NoError(t, service.Save(&settings))

	assert.Equal(t, "sqlite", store.GetString("feedback.backend"))
	assert.Equal(t, "/var/lib/moviematch", store.GetString("feedback.path"))
	assert.Equal(t, "/var/log/moviematch.log", store.GetString("log.file"))

	got, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, settings, *got)
}

func TestSettingsService_Save_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.AppSettings)
	}{
		{"empty movies path", func(s *domain.AppSettings) { s.Data.MoviesPath = "" }},
		{"unknown backend", func(s *domain.AppSettings) { s.Feedback.Backend = "parquet" }},
		{"negative ttl", func(s *domain.AppSettings) { s.Search.CacheTTLSeconds = -1 }},
		{"unknown level", func(s *domain.AppSettings) { s.Log.Level = "loud" }},
		{"zero rate", func(s *domain.AppSettings) { s.MCP.RequestsPerSecond = 0 }},
		{"zero burst", func(s *domain.AppSettings) { s.MCP.Burst = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.NewConfigStore()
			service := NewSettingsService(store)
			settings := domain.DefaultAppSettings()
			tt.mutate(&settings)

			err := service.Save(&settings)

			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			_, written := store.Get("data.movies")
			assert.False(t, written, "nothing persisted on validation failure")
		})
	}
}

func TestSettingsService_Set(t *testing.T) {
	tests := []struct {
		key   string
		value string
		check func(t *testing.T, s *domain.AppSettings)
	}{
		{"data.ratings", "r.csv", func(t *testing.T, s *domain.AppSettings) {
			assert.Equal(t, "r.csv", s.Data.RatingsPath)
		}},
		{"feedback.backend", "SQLite", func(t *testing.T, s *domain.AppSettings) {
			assert.Equal(t, domain.FeedbackBackendSQLite, s.Feedback.Backend)
		}},
		{"search.cache_ttl_seconds", "30", func(t *testing.T, s *domain.AppSettings) {
			assert.Equal(t, 30, s.Search.CacheTTLSeconds)
		}},
		{"log.level", "DEBUG", func(t *testing.T, s *domain.AppSettings) {
			assert.Equal(t, "debug", s.Log.Level)
		}},
		{"mcp.requests_per_second", "0.5", func(t *testing.T, s *domain.AppSettings) {
			assert.InDelta(t, 0.5, s.MCP.RequestsPerSecond, 1e-12)
		}},
		{"mcp.burst", "3", func(t *testing.T, s *domain.AppSettings) {
			assert.Equal(t, 3, s.MCP.Burst)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			service := NewSettingsService(memory.NewConfigStore())

			require.NoError(t, service.Set(tt.key, tt.value))

			settings, err := service.Get()
			require.NoError(t, err)
			tt.check(t, settings)
		})
	}
}

func TestSettingsService_Set_Errors(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	assert.ErrorIs(t, service.Set("nope", "x"), domain.ErrInvalidInput)
	assert.ErrorIs(t, service.Set("mcp.burst", "many"), domain.ErrInvalidInput)
	assert.ErrorIs(t, service.Set("mcp.requests_per_second", "fast"), domain.ErrInvalidInput)
	assert.ErrorIs(t, service.Set("feedback.backend", "parquet"), domain.ErrInvalidInput)
}

func TestSettingsService_KeysAndValidate(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	keys := service.Keys()
	assert.Len(t, keys, 9)
	assert.Equal(t, "data.movies", keys[0])

	keys[0] = "mutated"
	assert.Equal(t, "data.movies", service.Keys()[0])

	assert.NoError(t, service.Validate())
	assert.Equal(t, domain.DefaultAppSettings(), service.GetDefaults())
}

func TestSettingsService_Values(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())
	require.NoError(t, service.Set("mcp.requests_per_second", "2.5"))

	values, err := service.Values()

	require.NoError(t, err)
	assert.Len(t, values, len(service.Keys()))
	for _, key := range service.Keys() {
		assert.Contains(t, values, key)
	}
	assert.Equal(t, "data/movies.csv", values["data.movies"])
	assert.Equal(t, "csv", values["feedback.backend"])
	assert.Equal(t, "600", values["search.cache_ttl_seconds"])
	assert.Equal(t, "2.5", values["mcp.requests_per_second"])
	assert.Equal(t, "", values["log.file"])
}
