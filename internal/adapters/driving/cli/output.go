package cli

import (
	"fmt"
	"io"
	"math"

	json "github.com/goccy/go-json"

	"github.com/custodia-labs/moviematch/internal/core/domain"
)

// scoredView is the JSON shape of a scored result.
type scoredView struct {
	ID     int      `json:"id"`
	Title  string   `json:"title"`
	Genres []string `json:"genres"`
	Score  *float64 `json:"score,omitempty"`
}

// searchView is the JSON document written by search --json.
type searchView struct {
	Query   string       `json:"query"`
	Method  string       `json:"method"`
	Results []scoredView `json:"results"`
}

func newSearchView(query string, method domain.Method, scored []domain.ScoredMovie, withScores bool) searchView {
	view := searchView{
		Query:   query,
		Method:  method.String(),
		Results: make([]scoredView, len(scored)),
	}
	for i := range scored {
		view.Results[i] = scoredView{
			ID:     scored[i].Movie.ID,
			Title:  scored[i].Movie.Title,
			Genres: scored[i].Movie.Genres,
		}
		if view.Results[i].Genres == nil {
			view.Results[i].Genres = []string{}
		}
		if withScores {
			view.Results[i].Score = scored[i].JSONScore()
		}
	}
	return view
}

// writeJSON writes v as indented JSON followed by a newline.
func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// formatScore renders a score for tables.
func formatScore(score float64) string {
	if math.IsInf(score, 1) {
		return "+Inf"
	}
	return fmt.Sprintf("%.4f", score)
}
