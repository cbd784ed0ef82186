package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/moviematch/internal/core/domain"
	"github.com/custodia-labs/moviematch/internal/logger"
)

// defaultChartWidth is used when stdout is not a terminal.
const defaultChartWidth = 80

var (
	statsJSON  bool
	statsWatch bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarise recorded feedback",
	Long: `Summarises the feedback log: per-method rating histograms, five-number
summaries and the mean rating of each query.

With --watch the summary is redrawn whenever the log changes, including
writes made by other moviematch processes.`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "output statistics as JSON")
	statsCmd.Flags().BoolVarP(&statsWatch, "watch", "w", false, "redraw when the feedback log changes")
	requires(statsCmd, needSettings)
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	if statsService == nil {
		return errNotConfigured("stats")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if err := printStats(ctx, cmd.OutOrStdout()); err != nil {
		return err
	}
	if !statsWatch {
		return nil
	}

	changes, err := statsService.Changes(ctx)
	if err != nil {
		return err
	}
	for range changes {
		logger.Debug("Feedback log changed, redrawing")
		if !statsJSON {
			fmt.Fprint(cmd.OutOrStdout(), "\033[H\033[2J")
		}
		if err := printStats(ctx, cmd.OutOrStdout()); err != nil {
			return err
		}
	}
	return nil
}

func printStats(ctx context.Context, w io.Writer) error {
	stats, err := statsService.Summarize(ctx)
	if err != nil {
		return fmt.Errorf("stats failed: %w", err)
	}
	if statsJSON {
		return writeJSON(w, stats)
	}
	renderStats(w, stats, chartWidth())
	return nil
}

// chartWidth returns the terminal width, or a default when not a terminal.
func chartWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return defaultChartWidth
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return defaultChartWidth
	}
	return width
}

// renderStats writes a plain-text dashboard sized to width columns.
func renderStats(w io.Writer, stats *domain.FeedbackStats, width int) {
	fmt.Fprintf(w, "Feedback records: %d\n", stats.Total)
	if stats.Total == 0 {
		fmt.Fprintln(w, "No feedback recorded yet.")
		return
	}

	// "  5 | " prefix and " 123" suffix
	barWidth := width - 12
	if barWidth < 10 {
		barWidth = 10
	}

	for _, ms := range stats.Methods {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%s (%d)\n", ms.Method, ms.Count)
		if ms.Count == 0 {
			continue
		}

		peak := 0
		for _, n := range ms.Histogram {
			peak = max(peak, n)
		}
		for r := domain.MaxRating; r >= domain.MinRating; r-- {
			n := ms.Histogram[r-1]
			bar := 0
			if peak > 0 {
				bar = n * barWidth / peak
			}
			fmt.Fprintf(w, "  %d | %s %d\n", r, strings.Repeat("#", bar), n)
		}
		s := ms.Summary
		fmt.Fprintf(w, "  min %.2f  q1 %.2f  median %.2f  q3 %.2f  max %.2f  mean %.2f\n",
			s.Min, s.Q1, s.Median, s.Q3, s.Max, s.Mean)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Mean rating by query:")
	for _, q := range stats.Queries {
		fmt.Fprintf(w, "  %-13s %5.2f  (%d)  %s\n", q.Method.Short(), q.Mean, q.Count, q.Query)
	}
}
