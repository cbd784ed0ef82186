// Package stats provides the feedback dashboard view for the TUI.
package stats

import (
	"context"
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/moviematch/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/moviematch/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/moviematch/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/moviematch/internal/core/domain"
	"github.com/custodia-labs/moviematch/internal/core/ports/driving"
	"github.com/custodia-labs/moviematch/internal/logger"
)

// View renders rating histograms, box plots and per-query means.
type View struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	service driving.StatsService
	ctx     context.Context

	stats   *domain.FeedbackStats
	changes <-chan struct{}
	watched bool

	width  int
	height int
	ready  bool
	err    error
}

// NewView creates a new stats view.
func NewView(s *styles.Styles, km *keymap.KeyMap, service driving.StatsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &View{
		styles:  s,
		keymap:  km,
		service: service,
		ctx:     context.Background(),
		width:   80,
		height:  24,
	}
}

// WithContext sets the context used for loading and watching.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the statistics and, the first time, starts watching the log.
func (v *View) Init() tea.Cmd {
	cmds := []tea.Cmd{v.load()}
	if !v.watched && v.service != nil {
		v.watched = true
		ch, err := v.service.Changes(v.ctx)
		if err != nil {
			logger.Debug("Feedback log not watched: %v", err)
		} else {
			v.changes = ch
			cmds = append(cmds, v.waitForChange())
		}
	}
	return tea.Batch(cmds...)
}

// Update handles messages for the stats view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		}
		if keymap.Matches(msg.String(), v.keymap.Refresh) {
			return v, v.load()
		}
		return v, nil

	case messages.StatsLoaded:
		v.err = msg.Err
		if msg.Err == nil {
			v.stats = msg.Stats
		}
		return v, nil

	case messages.FeedbackChanged:
		return v, tea.Batch(v.load(), v.waitForChange())
	}
	return v, nil
}

// load summarises the log in the background.
func (v *View) load() tea.Cmd {
	svc := v.service
	ctx := v.ctx
	return func() tea.Msg {
		if svc == nil {
			return messages.StatsLoaded{Err: ErrNoStatsService}
		}
		stats, err := svc.Summarize(ctx)
		return messages.StatsLoaded{Stats: stats, Err: err}
	}
}

// waitForChange blocks until the log changes. It yields nil once the
// watch ends.
func (v *View) waitForChange() tea.Cmd {
	ch := v.changes
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return messages.FeedbackChanged{}
	}
}

// View renders the dashboard.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := []string{v.styles.Title.Render("Feedback statistics"), ""}

	switch {
	case v.err != nil:
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()))
	case v.stats == nil:
		sections = append(sections, v.styles.Muted.Render("Loading..."))
	case v.stats.Total == 0:
		sections = append(sections, v.styles.Muted.Render("No feedback recorded yet. Rate some results first."))
	default:
		sections = append(sections, v.styles.Normal.Render(fmt.Sprintf("%d ratings", v.stats.Total)), "")
		panels := make([]string, 0, len(v.stats.Methods))
		for _, ms := range v.stats.Methods {
			panels = append(panels, v.renderMethod(ms))
		}
		sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, panels...), "")
		sections = append(sections, v.renderQueries())
	}

	sections = append(sections, "", v.renderHelp())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// panelWidth is the inner width of one method panel.
func (v *View) panelWidth() int {
	return max(v.width/2-4, 24)
}

// renderMethod renders the histogram and box plot of one method.
func (v *View) renderMethod(ms domain.MethodStats) string {
	width := v.panelWidth()
	lines := []string{v.styles.Subtitle.Render(fmt.Sprintf("%s (%d)", ms.Method, ms.Count))}

	if ms.Count == 0 {
		lines = append(lines, v.styles.Muted.Render("no ratings"))
		return v.styles.Border.Width(width).Padding(0, 1).Render(strings.Join(lines, "\n"))
	}

	peak := 0
	for _, n := range ms.Histogram {
		peak = max(peak, n)
	}
	barWidth := width - 10
	for r := domain.MaxRating; r >= domain.MinRating; r-- {
		n := ms.Histogram[r-1]
		bar := 0
		if peak > 0 {
			bar = n * barWidth / peak
		}
		lines = append(lines, fmt.Sprintf("%d★ %s %d", r, v.styles.Bar.Render(strings.Repeat("█", bar)), n))
	}

	s := ms.Summary
	lines = append(lines,
		"",
		BoxPlot(s, barWidth+3),
		v.styles.Muted.Render(fmt.Sprintf("med %.1f  q1 %.1f  q3 %.1f  mean %.2f", s.Median, s.Q1, s.Q3, s.Mean)),
	)
	return v.styles.Border.Width(width).Padding(0, 1).Render(strings.Join(lines, "\n"))
}

// renderQueries lists per-query means, as many as fit.
func (v *View) renderQueries() string {
	lines := []string{v.styles.Subtitle.Render("Mean rating by query")}
	room := max(v.height-24, 3)
	for i, q := range v.stats.Queries {
		if i == room {
			lines = append(lines, v.styles.Muted.Render(fmt.Sprintf("... %d more", len(v.stats.Queries)-room)))
			break
		}
		lines = append(lines, fmt.Sprintf("  %-13s %4.2f  %s", q.Method.Short(), q.Mean, q.Query))
	}
	return strings.Join(lines, "\n")
}

func (v *View) renderHelp() string {
	bindings := v.keymap.StatsHelp()
	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("[%s] %s", h.Key, h.Desc))
	}
	return v.styles.Help.Render(strings.Join(hints, "  "))
}

// BoxPlot draws a one-line box plot of s on the 1..5 rating scale.
func BoxPlot(s domain.RatingSummary, width int) string {
	width = max(width, 5)
	pos := func(x float64) int {
		frac := (x - domain.MinRating) / (domain.MaxRating - domain.MinRating)
		return min(max(int(math.Round(frac*float64(width-1))), 0), width-1)
	}

	line := []rune(strings.Repeat(" ", width))
	lo, q1, med, q3, hi := pos(s.Min), pos(s.Q1), pos(s.Median), pos(s.Q3), pos(s.Max)
	for i := lo; i <= hi; i++ {
		line[i] = '─'
	}
	for i := q1; i <= q3; i++ {
		line[i] = '█'
	}
	line[lo] = '├'
	line[hi] = '┤'
	line[med] = '┃'
	return string(line)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Stats returns the last loaded statistics.
func (v *View) Stats() *domain.FeedbackStats {
	return v.stats
}

// Err returns the last load error.
func (v *View) Err() error {
	return v.err
}
