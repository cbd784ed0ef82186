package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	require.NotNil(t, km)
}

func TestDefaultKeyMap_QuitBinding(t *testing.T) {
	km := DefaultKeyMap()

	keys := km.Quit.Keys()
	assert.Contains(t, keys, "q")
	assert.Contains(t, keys, "ctrl+c")
}

func TestDefaultKeyMap_ToggleMethodIsTab(t *testing.T) {
	km := DefaultKeyMap()

	assert.Equal(t, []string{"tab"}, km.ToggleMethod.Keys())
}

func TestDefaultKeyMap_RateCoversOneToFive(t *testing.T) {
	km := DefaultKeyMap()

	for _, k := range []string{"1", "2", "3", "4", "5"} {
		assert.True(t, Matches(k, km.Rate), k)
	}
	assert.False(t, Matches("0", km.Rate))
	assert.False(t, Matches("6", km.Rate))
}

func TestDefaultKeyMap_ResetRating(t *testing.T) {
	km := DefaultKeyMap()

	assert.True(t, Matches("r", km.ResetRating))
}

func TestShortHelp(t *testing.T) {
	km := DefaultKeyMap()

	bindings := km.ShortHelp()

	require.Len(t, bindings, 3)
	assert.Equal(t, km.Search, bindings[0])
	assert.Equal(t, km.ToggleMethod, bindings[1])
}

func TestResultsHelp(t *testing.T) {
	km := DefaultKeyMap()

	bindings := km.ResultsHelp()

	require.Len(t, bindings, 5)
	assert.Equal(t, km.Rate, bindings[0])
}

func TestFullHelp(t *testing.T) {
	km := DefaultKeyMap()

	bindings := km.FullHelp()

	assert.Len(t, bindings, 4)
	assert.Len(t, bindings[0], 3) // Up, Down, Select
	assert.Len(t, bindings[3], 2) // Help, Quit
}

func TestMatches_True(t *testing.T) {
	km := DefaultKeyMap()

	assert.True(t, Matches("q", km.Quit))
	assert.True(t, Matches("ctrl+c", km.Quit))
	assert.True(t, Matches("?", km.Help))
	assert.True(t, Matches("up", km.Up))
	assert.True(t, Matches("k", km.Up))
}

func TestMatches_False(t *testing.T) {
	km := DefaultKeyMap()

	assert.False(t, Matches("x", km.Quit))
	assert.False(t, Matches("a", km.Help))
	assert.False(t, Matches("down", km.Up))
}

func TestBindings_HaveHelp(t *testing.T) {
	km := DefaultKeyMap()

	testCases := []struct {
		name    string
		binding key.Binding
	}{
		{"Quit", km.Quit},
		{"Help", km.Help},
		{"Back", km.Back},
		{"Search", km.Search},
		{"Up", km.Up},
		{"Down", km.Down},
		{"Select", km.Select},
		{"NewSearch", km.NewSearch},
		{"ToggleMethod", km.ToggleMethod},
		{"Rate", km.Rate},
		{"ResetRating", km.ResetRating},
		{"Refresh", km.Refresh},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			help := tc.binding.Help()
			assert.NotEmpty(t, help.Key, "binding should have help key")
		})
	}
}
