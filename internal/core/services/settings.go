package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/custodia-labs/moviematch/internal/core/domain"
	"github.com/custodia-labs/moviematch/internal/core/ports/driven"
	"github.com/custodia-labs/moviematch/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyDataMovies        = "data.movies"
	KeyDataRatings       = "data.ratings"
	KeyFeedbackBackend   = "feedback.backend"
	KeyFeedbackPath      = "feedback.path"
	KeySearchCacheTTL    = "search.cache_ttl_seconds"
	KeyLogLevel          = "log.level"
	KeyLogFile           = "log.file"
	KeyMCPRequestsPerSec = "mcp.requests_per_second"
	KeyMCPBurst          = "mcp.burst"
)

// settingKeys lists every key in display order.
var settingKeys = []string{
	KeyDataMovies,
	KeyDataRatings,
	KeyFeedbackBackend,
	KeyFeedbackPath,
	KeySearchCacheTTL,
	KeyLogLevel,
	KeyLogFile,
	KeyMCPRequestsPerSec,
	KeyMCPBurst,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	validate    *validator.Validate
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Get retrieves current application settings, falling back to defaults
// for keys that are not set.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Data: domain.DataSettings{
			MoviesPath:  s.getString(KeyDataMovies, defaults.Data.MoviesPath),
			RatingsPath: s.getString(KeyDataRatings, defaults.Data.RatingsPath),
		},
		Feedback: domain.FeedbackSettings{
			Backend: s.getBackend(defaults.Feedback.Backend),
			Path:    s.getString(KeyFeedbackPath, defaults.Feedback.Path),
		},
		Search: domain.SearchSettings{
			CacheTTLSeconds: s.getInt(KeySearchCacheTTL, defaults.Search.CacheTTLSeconds),
		},
		Log: domain.LogSettings{
			Level: s.getString(KeyLogLevel, defaults.Log.Level),
			File:  s.configStore.GetString(KeyLogFile), // No default - empty logs to stderr
		},
		MCP: domain.MCPSettings{
			RequestsPerSecond: s.getFloat(KeyMCPRequestsPerSec, defaults.MCP.RequestsPerSecond),
			Burst:             s.getInt(KeyMCPBurst, defaults.MCP.Burst),
		},
	}

	return settings, nil
}

// Save validates and persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := s.check(settings); err != nil {
		return err
	}

	values := []struct {
		key   string
		value any
	}{
		{KeyDataMovies, settings.Data.MoviesPath},
		{KeyDataRatings, settings.Data.RatingsPath},
		{KeyFeedbackBackend, settings.Feedback.Backend.String()},
		{KeyFeedbackPath, settings.Feedback.Path},
		{KeySearchCacheTTL, settings.Search.CacheTTLSeconds},
		{KeyLogLevel, settings.Log.Level},
		{KeyLogFile, settings.Log.File},
		{KeyMCPRequestsPerSec, settings.MCP.RequestsPerSecond},
		{KeyMCPBurst, settings.MCP.Burst},
	}

	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// Set updates one key from its string form and persists all settings.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	value = strings.TrimSpace(value)
	switch key {
	case KeyDataMovies:
		settings.Data.MoviesPath = value
	case KeyDataRatings:
		settings.Data.RatingsPath = value
	case KeyFeedbackBackend:
		settings.Feedback.Backend = domain.FeedbackBackend(strings.ToLower(value))
	case KeyFeedbackPath:
		settings.Feedback.Path = value
	case KeySearchCacheTTL:
		if settings.Search.CacheTTLSeconds, err = strconv.Atoi(value); err != nil {
			return fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidInput, key)
		}
	case KeyLogLevel:
		settings.Log.Level = strings.ToLower(value)
	case KeyLogFile:
		settings.Log.File = value
	case KeyMCPRequestsPerSec:
		if settings.MCP.RequestsPerSecond, err = strconv.ParseFloat(value, 64); err != nil {
			return fmt.Errorf("%w: %s must be a number", domain.ErrInvalidInput, key)
		}
	case KeyMCPBurst:
		if settings.MCP.Burst, err = strconv.Atoi(value); err != nil {
			return fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidInput, key)
		}
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	return s.Save(settings)
}

// Keys lists the settable keys in display order.
func (s *SettingsService) Keys() []string {
	keys := make([]string, len(settingKeys))
	copy(keys, settingKeys)
	return keys
}

// Values returns the current value of every key in its string form.
func (s *SettingsService) Values() (map[string]string, error) {
	settings, err := s.Get()
	if err != nil {
		return nil, err
	}
	return map[string]string{
		KeyDataMovies:        settings.Data.MoviesPath,
		KeyDataRatings:       settings.Data.RatingsPath,
		KeyFeedbackBackend:   settings.Feedback.Backend.String(),
		KeyFeedbackPath:      settings.Feedback.Path,
		KeySearchCacheTTL:    strconv.Itoa(settings.Search.CacheTTLSeconds),
		KeyLogLevel:          settings.Log.Level,
		KeyLogFile:           settings.Log.File,
		KeyMCPRequestsPerSec: strconv.FormatFloat(settings.MCP.RequestsPerSecond, 'g', -1, 64),
		KeyMCPBurst:          strconv.Itoa(settings.MCP.Burst),
	}, nil
}

// Validate checks the current settings.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.check(settings)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// check runs struct validation and reports the first failing field.
func (s *SettingsService) check(settings *domain.AppSettings) error {
	err := s.validate.Struct(settings)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Errorf("%w: %s fails %q (got %v)",
			domain.ErrInvalidInput, fe.Namespace(), fe.Tag(), fe.Value())
	}
	return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getBackend(defaultVal domain.FeedbackBackend) domain.FeedbackBackend {
	val := s.configStore.GetString(KeyFeedbackBackend)
	if val == "" {
		return defaultVal
	}
	backend := domain.FeedbackBackend(val)
	if !backend.IsValid() {
		return defaultVal
	}
	return backend
}
