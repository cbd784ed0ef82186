package domain

// FeedbackBackend selects the feedback log implementation.
type FeedbackBackend string

// Available feedback backends.
const (
	// FeedbackBackendCSV rewrites a CSV file on every accepted submission.
	FeedbackBackendCSV FeedbackBackend = "csv"

	// FeedbackBackendSQLite appends rows to a SQLite table.
	FeedbackBackendSQLite FeedbackBackend = "sqlite"
)

// IsValid returns true if the backend is recognised.
func (b FeedbackBackend) IsValid() bool {
	return b == FeedbackBackendCSV || b == FeedbackBackendSQLite
}

// String returns the string representation.
func (b FeedbackBackend) String() string {
	return string(b)
}

// DataSettings locates the external dataset.
type DataSettings struct {
	// MoviesPath is the catalog CSV (movieId,title,genres).
	MoviesPath string `validate:"required"`

	// RatingsPath is the rating corpus CSV (userId,movieId,rating).
	RatingsPath string `validate:"required"`
}

// FeedbackSettings configures the feedback log.
type FeedbackSettings struct {
	Backend FeedbackBackend `validate:"oneof=csv sqlite"`

	// Path is the CSV file, or the directory holding feedback.db for SQLite.
	Path string `validate:"required"`
}

// SearchSettings holds search behaviour configuration.
type SearchSettings struct {
	// CacheTTLSeconds bounds how long content-search results are cached.
	// Zero disables the cache.
	CacheTTLSeconds int `validate:"gte=0"`
}

// LogSettings configures the process logger.
type LogSettings struct {
	Level string `validate:"oneof=debug info warn error"`

	// File, when set, receives log output with rotation.
	File string
}

// MCPSettings configures the MCP server.
type MCPSettings struct {
	RequestsPerSecond float64 `validate:"gt=0"`
	Burst             int     `validate:"gte=1"`
}

// AppSettings holds all application settings.
type AppSettings struct {
	Data     DataSettings
	Feedback FeedbackSettings
	Search   SearchSettings
	Log      LogSettings
	MCP      MCPSettings
}

// DefaultAppSettings returns settings with sensible defaults.
// Relative paths resolve against the working directory.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Data: DataSettings{
			MoviesPath:  "data/movies.csv",
			RatingsPath: "data/ratings.csv",
		},
		Feedback: FeedbackSettings{
			Backend: FeedbackBackendCSV,
			Path:    "feedback.csv",
		},
		Search: SearchSettings{
			CacheTTLSeconds: 600,
		},
		Log: LogSettings{
			Level: "warn",
		},
		MCP: MCPSettings{
			RequestsPerSecond: 10,
			Burst:             20,
		},
	}
}
