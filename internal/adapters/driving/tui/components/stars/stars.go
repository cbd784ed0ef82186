// Package stars provides the five-star rating widget.
package stars

import (
	"strings"

	"github.com/custodia-labs/moviematch/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/moviematch/internal/core/domain"
)

const (
	filled = "★"
	empty  = "☆"
)

// Widget renders a rating between 0 (unrated) and domain.MaxRating.
type Widget struct {
	styles *styles.Styles
	rating int
}

// New creates an unrated widget.
func New(s *styles.Styles) *Widget {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &Widget{styles: s}
}

// SetRating sets the displayed rating, clamped to 0..MaxRating.
func (w *Widget) SetRating(rating int) {
	w.rating = min(max(rating, 0), domain.MaxRating)
}

// Rating returns the displayed rating.
func (w *Widget) Rating() int {
	return w.rating
}

// View renders the stars followed by a hint.
func (w *Widget) View() string {
	var b strings.Builder
	b.WriteString(w.styles.StarOn.Render(strings.Repeat(filled, w.rating)))
	b.WriteString(w.styles.StarOff.Render(strings.Repeat(empty, domain.MaxRating-w.rating)))
	if w.rating == 0 {
		b.WriteString(w.styles.Muted.Render("  press 1-5 to rate these results"))
	}
	return b.String()
}

// Plain renders the stars without styling.
func Plain(rating int) string {
	rating = min(max(rating, 0), domain.MaxRating)
	return strings.Repeat(filled, rating) + strings.Repeat(empty, domain.MaxRating-rating)
}
