// Package cli provides the cobra command tree for moviematch.
// It is a driving adapter: commands call into the driving ports and
// never touch storage directly.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/moviematch/internal/core/domain"
	"github.com/custodia-labs/moviematch/internal/core/ports/driving"
	"github.com/custodia-labs/moviematch/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// annotationNeeds records what a command needs the loader to build.
const annotationNeeds = "moviematch/needs"

// Values of annotationNeeds.
const (
	needSettings = "settings"
	needData     = "data"
)

// Options carries the global flags.
type Options struct {
	ConfigDir    string
	MoviesPath   string
	RatingsPath  string
	FeedbackPath string
	Verbose      bool
}

// Services bundles the driving ports the commands use.
type Services struct {
	Query    driving.QueryService
	Feedback driving.FeedbackService
	Stats    driving.StatsService
	Settings driving.SettingsService

	// MCP limits the MCP server's tool call rate.
	MCP domain.MCPSettings
}

// Loader builds services once global flags are parsed. withData is false
// for commands that only touch settings, so they work without a dataset.
type Loader func(ctx context.Context, opts Options, withData bool) (*Services, error)

var (
	opts   Options
	loader Loader

	queryService    driving.QueryService
	feedbackService driving.FeedbackService
	statsService    driving.StatsService
	settingsService driving.SettingsService
	mcpSettings     = domain.DefaultAppSettings().MCP
)

var rootCmd = &cobra.Command{
	Use:   "moviematch",
	Short: "Movie recommendations from titles and ratings",
	Long: `moviematch recommends movies two ways:

  content        - TF-IDF similarity between your query and catalog titles
  collaborative  - movies that fans of the matched title rate highly

Rate the result lists to build a feedback log, then compare the methods
with "moviematch stats".`,
	SilenceUsage:      true,
	PersistentPreRunE: bootstrap,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.ConfigDir, "config-dir", "", "configuration directory (default ~/.moviematch)")
	flags.StringVar(&opts.MoviesPath, "movies", "", "catalog CSV (movieId,title,genres)")
	flags.StringVar(&opts.RatingsPath, "ratings", "", "rating CSV (userId,movieId,rating)")
	flags.StringVar(&opts.FeedbackPath, "feedback", "", "feedback log location")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "enable debug logging")
}

// SetLoader installs the function that builds services.
func SetLoader(l Loader) {
	loader = l
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// SetServices installs services directly, bypassing the loader.
func SetServices(s *Services) {
	if s == nil {
		queryService, feedbackService, statsService, settingsService = nil, nil, nil, nil
		return
	}
	queryService = s.Query
	feedbackService = s.Feedback
	statsService = s.Stats
	settingsService = s.Settings
	if s.MCP.Burst > 0 {
		mcpSettings = s.MCP
	}
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// requires records that cmd needs services at the given level.
func requires(cmd *cobra.Command, level string) {
	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}
	cmd.Annotations[annotationNeeds] = level
}

func bootstrap(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(opts.Verbose)

	if loader == nil {
		return nil
	}

	level := cmd.Annotations[annotationNeeds]
	if level == "" {
		return nil
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	logger.Section("Bootstrap")
	services, err := loader(ctx, opts, level == needData)
	if err != nil {
		if domain.IsDataLoad(err) {
			return fmt.Errorf("cannot start: %w", err)
		}
		return err
	}
	SetServices(services)
	return nil
}

// errNotConfigured reports a service the loader did not provide.
func errNotConfigured(name string) error {
	return errors.New(name + " service not configured")
}
