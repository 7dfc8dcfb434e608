package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tidydocs/internal/organizer"
)

func sampleSuggestions() []organizer.Suggestion {
	return []organizer.Suggestion{
		{CurrentPath: "feature-login.md", SuggestedPath: "docs/features/feature-login.md", Category: "features", Confidence: 0.9},
		{CurrentPath: "api-v1.md", SuggestedPath: "docs/api/api-v1.md", Category: "api", Confidence: 0.9},
		{CurrentPath: "notes.md", SuggestedPath: "docs/planning/notes.md", Category: "planning", Confidence: 0.75},
	}
}

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m ReviewModel, msgs ...tea.Msg) ReviewModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(ReviewModel)
		require.True(t, ok)
	}
	return m
}

func TestReviewStartsFullySelected(t *testing.T) {
	m := NewReviewModel(t.TempDir(), sampleSuggestions())
	assert.Len(t, m.Selected(), 3)
	assert.False(t, m.Confirmed())
}

func TestReviewToggleAndConfirm(t *testing.T) {
	m := NewReviewModel(t.TempDir(), sampleSuggestions())

	// Deselect the second suggestion, then confirm.
	m = update(t, m, key("j"), key(" "))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.True(t, m.Confirmed())
	selected := m.Selected()
	require.Len(t, selected, 2)
	assert.Equal(t, "feature-login.md", selected[0].CurrentPath)
	assert.Equal(t, "notes.md", selected[1].CurrentPath)
}

func TestReviewToggleAll(t *testing.T) {
	m := NewReviewModel(t.TempDir(), sampleSuggestions())

	m = update(t, m, key("a"))
	assert.Empty(t, m.Selected())

	m = update(t, m, key("a"))
	assert.Len(t, m.Selected(), 3)
}

func TestReviewCursorBounds(t *testing.T) {
	m := NewReviewModel(t.TempDir(), sampleSuggestions())

	m = update(t, m, key("k"))
	assert.Equal(t, 0, m.cursor)

	m = update(t, m, key("j"), key("j"), key("j"), key("j"))
	assert.Equal(t, 2, m.cursor)
}

func TestReviewCancelDoesNotConfirm(t *testing.T) {
	m := NewReviewModel(t.TempDir(), sampleSuggestions())
	m = update(t, m, key("q"))
	assert.False(t, m.Confirmed())
}

func TestReviewViewListsSuggestions(t *testing.T) {
	m := NewReviewModel(t.TempDir(), sampleSuggestions())
	out := m.View()

	assert.Contains(t, out, "feature-login.md")
	assert.Contains(t, out, "docs/features/feature-login.md")
	assert.Contains(t, out, "3 of 3 selected")
}

func TestReviewViewEmpty(t *testing.T) {
	m := NewReviewModel(t.TempDir(), nil)
	assert.Contains(t, m.View(), "nothing to review")
}

func TestReviewPreviewMissingFile(t *testing.T) {
	m := NewReviewModel(t.TempDir(), sampleSuggestions())
	m = update(t, m, key("p"))

	assert.Equal(t, modePreview, m.mode)
	assert.Contains(t, m.View(), "Error:")

	m = update(t, m, key("q"))
	assert.Equal(t, modeSelect, m.mode)
}
