// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/moviematch/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/moviematch/internal/core/domain"
)

// ResultList displays ranked movies as "title - genres" lines.
type ResultList struct {
	results    []domain.ScoredMovie
	selected   int
	showScores bool
	styles     *styles.Styles
	width      int
	height     int
}

// NewResultList creates a new result list component.
func NewResultList(s *styles.Styles) *ResultList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ResultList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the result list.
func (r *ResultList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (r *ResultList) Update(msg tea.Msg) (*ResultList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			r.MoveUp()
		case "down", "j":
			r.MoveDown()
		}
	}
	return r, nil
}

// View renders the result list.
func (r *ResultList) View() string {
	if len(r.results) == 0 {
		return r.styles.Muted.Render("No results")
	}

	lines := make([]string, 0, len(r.results)+2)
	header := r.styles.Subtitle.Render(fmt.Sprintf("Results (%d)", len(r.results)))
	lines = append(lines, header, "")

	// One line per result; header and blank take two.
	visibleCount := max(r.height-2, 1)
	start := 0
	if r.selected >= visibleCount {
		start = r.selected - visibleCount + 1
	}
	end := min(start+visibleCount, len(r.results))

	for i := start; i < end; i++ {
		lines = append(lines, r.renderResult(i))
	}
	return strings.Join(lines, "\n")
}

// renderResult formats one result, truncating to the list width.
func (r *ResultList) renderResult(index int) string {
	indicator := "  "
	if index == r.selected {
		indicator = "> "
	}

	result := r.results[index]
	row := domain.ResultRow{Title: result.Movie.Title, Genres: result.Movie.Genres}

	score := ""
	if r.showScores {
		score = "  " + formatScore(result.Score)
	}

	maxLen := max(r.width-lipgloss.Width(indicator)-len(score)-2, 10)
	text := truncate(row.String(), maxLen)

	if index == r.selected {
		return r.styles.Selected.Render(indicator+text) + r.styles.Muted.Render(score)
	}
	return r.styles.Normal.Render(indicator+text) + r.styles.Muted.Render(score)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

func formatScore(score float64) string {
	if math.IsInf(score, 1) {
		return "+Inf"
	}
	return fmt.Sprintf("%.3f", score)
}

// SetResults updates the result list.
func (r *ResultList) SetResults(results []domain.ScoredMovie) {
	r.results = results
	r.selected = 0
}

// Results returns the current results.
func (r *ResultList) Results() []domain.ScoredMovie {
	return r.results
}

// SetShowScores toggles the score column.
func (r *ResultList) SetShowScores(show bool) {
	r.showScores = show
}

// ShowScores reports whether scores are shown.
func (r *ResultList) ShowScores() bool {
	return r.showScores
}

// Selected returns the index of the selected result.
func (r *ResultList) Selected() int {
	return r.selected
}

// SetSelected sets the selected index.
func (r *ResultList) SetSelected(index int) {
	if index >= 0 && index < len(r.results) {
		r.selected = index
	}
}

// SelectedResult returns the currently selected result, or nil if none.
func (r *ResultList) SelectedResult() *domain.ScoredMovie {
	if len(r.results) == 0 || r.selected < 0 || r.selected >= len(r.results) {
		return nil
	}
	return &r.results[r.selected]
}

// MoveUp moves selection up.
func (r *ResultList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves selection down.
func (r *ResultList) MoveDown() {
	if r.selected < len(r.results)-1 {
		r.selected++
	}
}

// SetDimensions sets the component dimensions.
func (r *ResultList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// Width returns the current width.
func (r *ResultList) Width() int {
	return r.width
}

// Height returns the current height.
func (r *ResultList) Height() int {
	return r.height
}

// Count returns the number of results.
func (r *ResultList) Count() int {
	return len(r.results)
}

// IsEmpty returns whether the list is empty.
func (r *ResultList) IsEmpty() bool {
	return len(r.results) == 0
}
