package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/moviematch/internal/core/domain"
)

var rateCmd = &cobra.Command{
	Use:   "rate [method] [query] [rating]",
	Short: "Record a rating for a result list",
	Long: `Appends a 1-5 rating for the results a query produced under a method
to the feedback log. Method is content or collaborative.`,
	Args: cobra.ExactArgs(3),
	RunE: runRate,
}

func init() {
	requires(rateCmd, needSettings)
	rootCmd.AddCommand(rateCmd)
}

func runRate(cmd *cobra.Command, args []string) error {
	method, err := domain.ParseMethod(args[0])
	if err != nil {
		return err
	}
	rating, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("%w: rating %q is not a number", domain.ErrInvalidInput, args[2])
	}
	return submitRating(cmd, method, args[1], rating)
}

// submitRating records one rating in a fresh session.
func submitRating(cmd *cobra.Command, method domain.Method, query string, rating int) error {
	if feedbackService == nil {
		return errNotConfigured("feedback")
	}

	state := feedbackService.NewSession()
	_, appended, err := feedbackService.Submit(cmd.Context(), state, method, query, rating)
	if err != nil {
		return fmt.Errorf("rate failed: %w", err)
	}
	switch {
	case appended:
		cmd.Printf("Recorded %d/%d for %s %q in %s\n",
			rating, domain.MaxRating, method.Short(), query, feedbackService.LogPath())
	case rating <= 0:
		cmd.Printf("Not recorded (rating %d)\n", rating)
	}
	return nil
}
