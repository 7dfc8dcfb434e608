package report

import "github.com/charmbracelet/lipgloss"

// Centralized Lip Gloss styles for console report rendering.
// All colors are specified using hex codes.

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff5fd2"))

	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5fd7ff"))

	pathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff"))

	arrowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	categoryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5f5fff"))

	confidenceStyle = lipgloss.NewStyle().
			Faint(true).
			Foreground(lipgloss.Color("#a8a8a8"))

	reasonStyle = lipgloss.NewStyle().
			Faint(true).
			Foreground(lipgloss.Color("#a8a8a8")).
			PaddingLeft(4)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ff5f")).
			Bold(true)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffaf00"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff005f")).
			Bold(true)

	scoreGoodStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ff5f"))

	scoreFairStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffaf00"))

	scorePoorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff005f"))
)
