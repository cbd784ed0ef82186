package cli

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/moviematch/internal/adapters/driving/tui"
	"github.com/custodia-labs/moviematch/internal/logger"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface.

Type a movie title, switch between content and collaborative results with
tab, and rate each list from 1 to 5. The statistics view updates live as
ratings are recorded.

Controls:
  ↑/k, ↓/j - Navigate
  Enter    - Search / Select
  Tab      - Switch method
  1-5      - Rate results
  Esc      - Back
  q        - Quit (from the menu)`,
	RunE: runTUI,
}

func init() {
	requires(tuiCmd, needData)
	rootCmd.AddCommand(tuiCmd)
}

// newTUIPorts builds the TUI ports from the installed services.
func newTUIPorts() *tui.Ports {
	ports := tui.NewPorts(queryService, feedbackService, statsService)
	ports.Settings = settingsService
	return ports
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("TUI panic: %v\n%s", r, debug.Stack())
		}
	}()

	app, err := tui.NewApp(newTUIPorts())
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	// Console logging would draw over the alternate screen.
	if !logger.ToFile() {
		logger.SetOutput(io.Discard)
		defer logger.SetOutput(os.Stderr)
	}

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
