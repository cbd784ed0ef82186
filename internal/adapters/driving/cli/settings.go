package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change moviematch settings.

Settings are stored in config.toml under the configuration directory.
Flags such as --movies override them for a single run.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Long: `Change a single setting and save it.

Keys:
  data.movies                catalog CSV path
  data.ratings               rating CSV path
  feedback.backend           csv or sqlite
  feedback.path              CSV file, or directory holding feedback.db
  search.cache_ttl_seconds   content search cache lifetime (0 disables)
  log.level                  debug, info, warn or error
  log.file                   rotate logs into this file
  mcp.requests_per_second    MCP tool call rate
  mcp.burst                  MCP tool call burst`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	for _, c := range []*cobra.Command{settingsCmd, settingsShowCmd, settingsSetCmd} {
		requires(c, needSettings)
	}
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Data]")
	cmd.Printf("  Movies: %s\n", settings.Data.MoviesPath)
	cmd.Printf("  Ratings: %s\n", settings.Data.RatingsPath)
	cmd.Println()

	cmd.Println("[Feedback]")
	cmd.Printf("  Backend: %s\n", settings.Feedback.Backend)
	cmd.Printf("  Path: %s\n", settings.Feedback.Path)
	cmd.Println()

	cmd.Println("[Search]")
	if settings.Search.CacheTTLSeconds == 0 {
		cmd.Println("  Cache: disabled")
	} else {
		cmd.Printf("  Cache TTL: %ds\n", settings.Search.CacheTTLSeconds)
	}
	cmd.Println()

	cmd.Println("[Log]")
	cmd.Printf("  Level: %s\n", settings.Log.Level)
	logFile := settings.Log.File
	if logFile == "" {
		logFile = "(stderr)"
	}
	cmd.Printf("  File: %s\n", logFile)
	cmd.Println()

	cmd.Println("[MCP]")
	cmd.Printf("  Requests/sec: %g\n", settings.MCP.RequestsPerSecond)
	cmd.Printf("  Burst: %d\n", settings.MCP.Burst)

	if err := settingsService.Validate(); err != nil {
		cmd.Println()
		cmd.Printf("Warning: %v\n", err)
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}

	if err := settingsService.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}
	cmd.Printf("%s = %s\n", args[0], args[1])
	return nil
}
