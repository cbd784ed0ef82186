package status

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/moviematch/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/moviematch/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/moviematch/internal/core/domain"
)

func TestNewBar(t *testing.T) {
	bar := NewBar(styles.DefaultStyles(), keymap.DefaultKeyMap())

	require.NotNil(t, bar)
	assert.Equal(t, StateReady, bar.State())
	assert.Equal(t, domain.MethodContent, bar.Method())
	assert.Equal(t, "", bar.Message())
	assert.Equal(t, 0, bar.ResultCount())
}

func TestNewBar_NilStyles(t *testing.T) {
	bar := NewBar(nil, nil)

	require.NotNil(t, bar)
	assert.NotNil(t, bar.styles)
	assert.NotNil(t, bar.keymap)
	assert.Nil(t, bar.Init())
}

func TestStatusBar_Update(t *testing.T) {
	bar := NewBar(nil, nil)

	updated, cmd := bar.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, bar, updated)
	assert.Nil(t, cmd)
}

func TestStatusBar_ViewStates(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*Bar)
		want  []string
	}{
		{
			name:  "ready",
			setup: func(*Bar) {},
			want:  []string{"content", "Ready", "enter: search"},
		},
		{
			name:  "searching",
			setup: func(b *Bar) { b.SetState(StateSearching) },
			want:  []string{"Searching..."},
		},
		{
			name: "results",
			setup: func(b *Bar) {
				b.SetState(StateResults)
				b.SetResultCount(5)
			},
			want: []string{"5 results", "1-5: rate"},
		},
		{
			name: "saved",
			setup: func(b *Bar) {
				b.SetState(StateSaved)
				b.SetMessage("Rated 4/5")
			},
			want: []string{"Rated 4/5"},
		},
		{
			name: "error",
			setup: func(b *Bar) {
				b.SetState(StateError)
				b.SetMessage("boom")
			},
			want: []string{"Error: boom"},
		},
		{
			name: "collaborative",
			setup: func(b *Bar) {
				b.SetMethod(domain.MethodCollaborative)
			},
			want: []string{"collaborative"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := NewBar(nil, nil)
			bar.SetWidth(200)
			tt.setup(bar)

			view := bar.View()

			for _, w := range tt.want {
				assert.Contains(t, view, w)
			}
		})
	}
}

func TestStatusBar_Clear(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetMethod(domain.MethodCollaborative)
	bar.SetState(StateError)
	bar.SetMessage("x")
	bar.SetResultCount(3)

	bar.Clear()

	assert.Equal(t, StateReady, bar.State())
	assert.Equal(t, "", bar.Message())
	assert.Equal(t, 0, bar.ResultCount())
	assert.Equal(t, domain.MethodCollaborative, bar.Method())
}

func TestStatusBar_Width(t *testing.T) {
	bar := NewBar(nil, nil)

	bar.SetWidth(120)

	assert.Equal(t, 120, bar.Width())
}
