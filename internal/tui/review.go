// Package tui implements the interactive review screen used by
// `tidydocs organize --review`: a checklist of suggested moves with a
// rendered markdown preview of the document under the cursor.
package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"tidydocs/internal/organizer"
)

type reviewMode int

const (
	modeSelect reviewMode = iota
	modePreview
)

var (
	reviewTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff5fd2"))
	reviewPathStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#5fd7ff"))
	reviewFaintStyle = lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color("#a8a8a8"))
	reviewErrStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff005f")).Bold(true)
)

// ReviewModel is the Bubble Tea model for reviewing suggested moves.
// Every suggestion starts selected; the user deselects what should stay put.
type ReviewModel struct {
	root        string
	suggestions []organizer.Suggestion
	selected    map[int]struct{}
	cursor      int

	mode     reviewMode
	viewport viewport.Model
	width    int
	height   int

	confirmed bool
	err       error
}

// NewReviewModel creates a review model over the suggestions for one root.
func NewReviewModel(root string, suggestions []organizer.Suggestion) ReviewModel {
	selected := make(map[int]struct{}, len(suggestions))
	for i := range suggestions {
		selected[i] = struct{}{}
	}
	return ReviewModel{
		root:        root,
		suggestions: suggestions,
		selected:    selected,
		viewport:    viewport.New(80, 20),
	}
}

// Confirmed reports whether the user accepted the selection.
func (m ReviewModel) Confirmed() bool {
	return m.confirmed
}

// Selected returns the suggestions still checked, in their original order.
func (m ReviewModel) Selected() []organizer.Suggestion {
	var out []organizer.Suggestion
	for i, s := range m.suggestions {
		if _, ok := m.selected[i]; ok {
			out = append(out, s)
		}
	}
	return out
}

// Init is part of the Bubble Tea Model interface.
func (m ReviewModel) Init() tea.Cmd {
	return nil
}

// Update is part of the Bubble Tea Model interface.
func (m ReviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width - 4
		m.viewport.Height = msg.Height - 6
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeSelect:
			return m.updateSelect(msg)
		case modePreview:
			return m.updatePreview(msg)
		}
	}
	return m, nil
}

func (m ReviewModel) updateSelect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.suggestions)-1 {
			m.cursor++
		}
	case " ":
		if _, ok := m.selected[m.cursor]; ok {
			delete(m.selected, m.cursor)
		} else {
			m.selected[m.cursor] = struct{}{}
		}
	case "a":
		if len(m.selected) == len(m.suggestions) {
			m.selected = make(map[int]struct{})
		} else {
			for i := range m.suggestions {
				m.selected[i] = struct{}{}
			}
		}
	case "p", "tab":
		if len(m.suggestions) > 0 {
			m.loadPreview()
			m.mode = modePreview
		}
	case "enter":
		m.confirmed = true
		return m, tea.Quit
	case "q", "esc", "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m ReviewModel) updatePreview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "tab":
		m.mode = modeSelect
		m.err = nil
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// loadPreview reads and renders the document under the cursor into the
// viewport. Read or render failures show up in the preview pane instead of
// aborting the review.
func (m *ReviewModel) loadPreview() {
	s := m.suggestions[m.cursor]

	content, err := os.ReadFile(filepath.Join(m.root, filepath.FromSlash(s.CurrentPath)))
	if err != nil {
		m.err = err
		m.viewport.SetContent("")
		return
	}

	rendered, err := glamour.Render(string(content), detectGlamourStyle(500*time.Millisecond))
	if err != nil {
		// Fall back to the raw markdown.
		rendered = string(content)
	}
	m.err = nil
	m.viewport.SetContent(rendered)
	m.viewport.GotoTop()
}

// View is part of the Bubble Tea Model interface.
func (m ReviewModel) View() string {
	switch m.mode {
	case modePreview:
		return m.viewPreview()
	default:
		return m.viewSelect()
	}
}

func (m ReviewModel) viewSelect() string {
	var b strings.Builder
	b.WriteString(reviewTitleStyle.Render("Review suggested moves"))
	b.WriteString("\n\n")

	if len(m.suggestions) == 0 {
		b.WriteString("(nothing to review)\n")
		return b.String()
	}

	for i, s := range m.suggestions {
		cursor := "  "
		if m.cursor == i {
			cursor = "> "
		}
		checked := "[ ]"
		if _, ok := m.selected[i]; ok {
			checked = "[x]"
		}
		b.WriteString(fmt.Sprintf("%s%s %s -> %s %s\n",
			cursor, checked,
			s.CurrentPath,
			reviewPathStyle.Render(s.SuggestedPath),
			reviewFaintStyle.Render(fmt.Sprintf("(%s, %.0f%%)", s.Category, s.Confidence*100)),
		))
	}

	b.WriteString("\n")
	b.WriteString(reviewFaintStyle.Render(fmt.Sprintf("%d of %d selected", len(m.selected), len(m.suggestions))))
	b.WriteString("\n")
	b.WriteString(reviewFaintStyle.Render("up/down move, space toggle, a toggle all, p preview, enter apply, q cancel"))
	return b.String()
}

func (m ReviewModel) viewPreview() string {
	s := m.suggestions[m.cursor]

	var b strings.Builder
	b.WriteString(reviewTitleStyle.Render(s.CurrentPath))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(reviewErrStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	} else {
		b.WriteString(m.viewport.View())
		b.WriteString("\n")
	}
	b.WriteString(reviewFaintStyle.Render("up/down scroll, q back"))
	return b.String()
}

// RunReview runs the review screen and returns the suggestions the user kept.
// The second return is false when the user cancelled.
func RunReview(root string, suggestions []organizer.Suggestion) ([]organizer.Suggestion, bool, error) {
	p := tea.NewProgram(NewReviewModel(root, suggestions), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return nil, false, fmt.Errorf("review UI failed: %w", err)
	}

	model, ok := final.(ReviewModel)
	if !ok || !model.Confirmed() {
		return nil, false, nil
	}
	return model.Selected(), true, nil
}

// detectGlamourStyle picks a glamour style from the terminal background,
// respecting GLAMOUR_STYLE when set to a concrete value. Detection can hang
// on terminals that never answer the background query, hence the timeout.
func detectGlamourStyle(timeout time.Duration) string {
	style := os.Getenv("GLAMOUR_STYLE")
	if style != "" && style != "auto" {
		return style
	}

	ch := make(chan string, 1)
	go func() {
		out := termenv.NewOutput(os.Stdout)
		if out.HasDarkBackground() {
			ch <- "dark"
			return
		}
		ch <- "light"
	}()

	select {
	case s := <-ch:
		return s
	case <-time.After(timeout):
		return "dark"
	}
}
