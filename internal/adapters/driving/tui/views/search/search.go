// Package search provides the query, results and rating view for the TUI.
package search

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/moviematch/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/moviematch/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/moviematch/internal/adapters/driving/tui/components/stars"
	"github.com/custodia-labs/moviematch/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/moviematch/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/moviematch/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/moviematch/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/moviematch/internal/core/domain"
	"github.com/custodia-labs/moviematch/internal/core/ports/driving"
	"github.com/custodia-labs/moviematch/internal/logger"
)

// View represents the search view with method tabs, input, results,
// star rating and status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.QueryInput
	list      *list.ResultList
	stars     *stars.Widget
	statusbar *status.Bar

	queryService    driving.QueryService
	feedbackService driving.FeedbackService
	ctx             context.Context

	// method is the active tab.
	method domain.Method

	// session holds the per-method scratch rating state.
	session domain.SessionRatingState

	// shownQuery is the query whose results are displayed.
	shownQuery string

	width      int
	height     int
	ready      bool
	err        error
	focusInput bool // true = typing a query, false = navigating results
	rating     bool // a rating submission is in flight

	// switchedWhileRating is set when the tab changed during a submission.
	// The returned state then predates the switch and is not adopted.
	switchedWhileRating bool
}

// NewView creates a new search view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	queryService driving.QueryService,
	feedbackService driving.FeedbackService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	v := &View{
		styles:          s,
		keymap:          km,
		input:           input.NewQueryInput(s),
		list:            list.NewResultList(s),
		stars:           stars.New(s),
		statusbar:       status.NewBar(s, km),
		queryService:    queryService,
		feedbackService: feedbackService,
		ctx:             context.Background(),
		method:          domain.MethodContent,
		width:           80,
		height:          24,
		focusInput:      true,
	}
	if feedbackService != nil {
		v.session = feedbackService.NewSession()
		v.method = v.session.Active
	}
	v.applyMethod()
	return v
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SearchCompleted:
		v.handleSearchCompleted(msg)
		return v, nil

	case messages.RatingSubmitted:
		v.handleRatingSubmitted(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil
	}

	var cmd tea.Cmd
	if v.focusInput {
		v.input, cmd = v.input.Update(msg)
	}
	return v, cmd
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	if keymap.Matches(msg.String(), v.keymap.ToggleMethod) {
		return v, v.toggleMethod()
	}

	if v.focusInput {
		if msg.Type == tea.KeyEnter {
			query := strings.TrimSpace(v.input.Value())
			if query == "" {
				return v, nil
			}
			v.focusInput = false
			v.input.Blur()
			return v, v.performSearch(query, v.method)
		}
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}

	key := msg.String()
	switch {
	case keymap.Matches(key, v.keymap.Rate):
		rating, _ := strconv.Atoi(key)
		return v, v.submitRating(rating)

	case keymap.Matches(key, v.keymap.ResetRating):
		v.resetRating()
		return v, nil

	case keymap.Matches(key, v.keymap.NewSearch):
		v.focusInput = true
		v.input.SetValue("")
		return v, v.input.Focus()

	case key == "s":
		v.list.SetShowScores(!v.list.ShowScores())
		return v, nil
	}

	v.list, _ = v.list.Update(msg)
	return v, nil
}

// toggleMethod switches tabs, clears the other method's scratch state and
// reruns the displayed query under the new method.
func (v *View) toggleMethod() tea.Cmd {
	v.method = v.method.Other()
	if v.rating {
		v.switchedWhileRating = true
	}
	if v.feedbackService != nil {
		v.session = v.feedbackService.SwitchMethod(v.session, v.method)
	}
	v.applyMethod()
	logger.Debug("Session %s switched to %s", v.session.ID, v.method)

	query := v.shownQuery
	if query == "" {
		query = strings.TrimSpace(v.input.Value())
	}
	v.list.SetResults(nil)
	v.shownQuery = ""
	v.syncStars()
	if query == "" {
		v.statusbar.Clear()
		return nil
	}
	v.focusInput = false
	v.input.Blur()
	return v.performSearch(query, v.method)
}

// applyMethod updates the widgets that depend on the active method.
func (v *View) applyMethod() {
	v.statusbar.SetMethod(v.method)
	if v.method == domain.MethodCollaborative {
		v.input.SetPlaceholder("Title of a movie you like...")
	} else {
		v.input.SetPlaceholder("Type a movie title...")
	}
}

// performSearch runs a query in the background.
func (v *View) performSearch(query string, method domain.Method) tea.Cmd {
	v.statusbar.SetState(status.StateSearching)
	v.statusbar.SetMessage("")
	ctx := v.ctx
	svc := v.queryService
	return func() tea.Msg {
		if svc == nil {
			return messages.ErrorOccurred{Err: ErrNoQueryService}
		}
		results, err := svc.Explain(ctx, query, method)
		return messages.SearchCompleted{Query: query, Method: method, Results: results, Err: err}
	}
}

// handleSearchCompleted shows results unless the user changed tabs meanwhile.
func (v *View) handleSearchCompleted(msg messages.SearchCompleted) {
	if msg.Method != v.method {
		return
	}
	if msg.Err != nil {
		v.setError(msg.Err)
		return
	}

	v.err = nil
	v.shownQuery = msg.Query
	v.list.SetResults(msg.Results)
	v.statusbar.SetState(status.StateResults)
	v.statusbar.SetResultCount(len(msg.Results))
	v.statusbar.SetMessage("")
	if len(msg.Results) == 0 {
		v.statusbar.SetMessage("No matches for " + strconv.Quote(msg.Query))
	}
	v.syncStars()

	v.focusInput = false
	v.input.Blur()
}

// submitRating records stars for the displayed result list.
func (v *View) submitRating(rating int) tea.Cmd {
	if v.shownQuery == "" || v.rating {
		return nil
	}
	if v.feedbackService == nil {
		v.setError(ErrNoFeedbackService)
		return nil
	}

	v.rating = true
	ctx := v.ctx
	svc := v.feedbackService
	state := v.session
	method := v.method
	query := v.shownQuery
	return func() tea.Msg {
		next, appended, err := svc.Submit(ctx, state, method, query, rating)
		return messages.RatingSubmitted{State: next, Rating: rating, Appended: appended, Err: err}
	}
}

// handleRatingSubmitted adopts the new session state on success. A tab
// switch during the submission already cleared the rated method's scratch
// state, so the current session is kept.
func (v *View) handleRatingSubmitted(msg messages.RatingSubmitted) {
	switched := v.switchedWhileRating
	v.rating = false
	v.switchedWhileRating = false
	if msg.Err != nil {
		v.setError(fmt.Errorf("rating not saved: %w", msg.Err))
		return
	}

	if !switched {
		v.session = msg.State
	}
	v.syncStars()
	v.statusbar.SetState(status.StateSaved)
	if msg.Appended {
		v.statusbar.SetMessage(fmt.Sprintf("Saved %d/%d", msg.Rating, domain.MaxRating))
	} else {
		v.statusbar.SetMessage("Rating unchanged")
	}
}

// resetRating clears the active method's stars without touching the log.
func (v *View) resetRating() {
	if v.feedbackService != nil {
		v.session = v.feedbackService.ResetRating(v.session, v.method)
	}
	v.syncStars()
	v.statusbar.SetState(status.StateResults)
	v.statusbar.SetMessage("Rating cleared")
}

// syncStars shows the scratch rating when it belongs to the shown query.
func (v *View) syncStars() {
	ms := v.session.For(v.method)
	if v.shownQuery != "" && ms.Query == v.shownQuery {
		v.stars.SetRating(ms.Rating)
		return
	}
	v.stars.SetRating(0)
}

func (v *View) setError(err error) {
	v.err = err
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(err.Error())
}

// View renders the search view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 12)
	sections = append(sections, v.styles.Title.Render("moviematch"), "", v.renderTabs(), "")
	sections = append(sections, v.input.View(), "")

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	sections = append(sections, v.list.View())
	if v.shownQuery != "" && !v.list.IsEmpty() {
		sections = append(sections, "", v.stars.View())
	}

	sections = append(sections, "", v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderTabs renders the method switcher.
func (v *View) renderTabs() string {
	tabs := make([]string, 0, 2)
	for _, m := range domain.Methods() {
		if m == v.method {
			tabs = append(tabs, v.styles.ActiveTab.Render(m.String()))
		} else {
			tabs = append(tabs, v.styles.InactiveTab.Render(m.String()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-14) // title, tabs, input, stars, status
	v.statusbar.SetWidth(width)
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Method returns the active method.
func (v *View) Method() domain.Method {
	return v.method
}

// Session returns the current rating session state.
func (v *View) Session() domain.SessionRatingState {
	return v.session
}

// Query returns the text in the query input.
func (v *View) Query() string {
	return v.input.Value()
}

// SetQuery sets the query input.
func (v *View) SetQuery(query string) {
	v.input.SetValue(query)
}

// ShownQuery returns the query whose results are displayed.
func (v *View) ShownQuery() string {
	return v.shownQuery
}

// Results returns the displayed results.
func (v *View) Results() []domain.ScoredMovie {
	return v.list.Results()
}

// SelectedIndex returns the index of the selected result.
func (v *View) SelectedIndex() int {
	return v.list.Selected()
}

// Stars returns the displayed rating.
func (v *View) Stars() int {
	return v.stars.Rating()
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// Reset returns the view to input mode, keeping the rating session.
func (v *View) Reset() {
	v.focusInput = true
	v.input.Focus()
	v.input.SetValue("")
	v.list.SetResults(nil)
	v.shownQuery = ""
	v.err = nil
	v.rating = false
	v.syncStars()
	v.statusbar.Clear()
}

// InputFocused returns whether the input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}
