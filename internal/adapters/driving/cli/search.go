package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/moviematch/internal/core/domain"
)

var (
	searchMethod string
	searchScores bool
	searchJSON   bool
	searchRate   int
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Recommend movies for a query",
	Long: `Recommends movies for a free-text query.

With --method content (the default) the query is matched against catalog
titles by TF-IDF cosine similarity and the five closest titles are shown.

With --method collaborative the first title containing the query is used
as an anchor, and up to ten movies its fans rate highly are shown, ranked
by how much more those fans favour them than everyone else.

Pass --rate N to record a 1-5 rating for the result list.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchMethod, "method", "m", "content", "retrieval method: content or collaborative")
	searchCmd.Flags().BoolVar(&searchScores, "scores", false, "show similarity or lift scores")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().IntVar(&searchRate, "rate", 0, "rate the result list 1-5")
	requires(searchCmd, needData)
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	if queryService == nil {
		return errNotConfigured("query")
	}

	method, err := domain.ParseMethod(searchMethod)
	if err != nil {
		return err
	}
	if searchRate != 0 && (searchRate < domain.MinRating || searchRate > domain.MaxRating) {
		return fmt.Errorf("%w: --rate must be between %d and %d", domain.ErrInvalidInput, domain.MinRating, domain.MaxRating)
	}

	scored, err := queryService.Explain(cmd.Context(), query, method)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		if err := writeJSON(cmd.OutOrStdout(), newSearchView(query, method, scored, searchScores)); err != nil {
			return err
		}
	} else {
		outputSearchTable(cmd, method, scored)
	}

	if searchRate != 0 {
		return submitRating(cmd, method, query, searchRate)
	}
	return nil
}

func outputSearchTable(cmd *cobra.Command, method domain.Method, scored []domain.ScoredMovie) {
	if len(scored) == 0 {
		cmd.Println("No results found.")
		return
	}

	cmd.Printf("%s results:\n", method)
	cmd.Println()
	rows := domain.RowsFromScored(scored)
	for i := range rows {
		if searchScores {
			cmd.Printf("  [%d] %s (%s)\n", i+1, rows[i], formatScore(scored[i].Score))
			continue
		}
		cmd.Printf("  [%d] %s\n", i+1, rows[i])
	}
}
