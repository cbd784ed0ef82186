package driving

import "github.com/custodia-labs/moviematch/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save validates and persists application settings.
	Save(settings *domain.AppSettings) error

	// Set updates a single key, e.g. "feedback.backend", from its string form.
	Set(key, value string) error

	// Keys lists the settable keys in display order.
	Keys() []string

	// Values returns the current value of every key in its string form.
	Values() (map[string]string, error)

	// Validate checks the current settings.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
