// Package report renders analysis, apply, and health reports for the
// terminal. Rendering is pure string construction so it can be tested
// without a TTY; color detection happens once at renderer construction.
package report

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/termenv"

	"tidydocs/internal/organizer"
)

const defaultWidth = 100

// Renderer turns reports into terminal output.
type Renderer struct {
	width int
	plain bool
}

// NewRenderer builds a renderer with color support detected from stdout.
// Monochrome terminals and pipes get plain text.
func NewRenderer() *Renderer {
	out := termenv.NewOutput(os.Stdout)
	return &Renderer{
		width: defaultWidth,
		plain: out.ColorProfile() == termenv.Ascii,
	}
}

// NewPlainRenderer builds a renderer that never emits escape sequences.
func NewPlainRenderer() *Renderer {
	return &Renderer{width: defaultWidth, plain: true}
}

func (r *Renderer) render(style lipgloss.Style, s string) string {
	if r.plain {
		return s
	}
	return style.Render(s)
}

// Analysis renders the outcome of an analysis run: the suggestion list with
// reasons, then the document counts.
func (r *Renderer) Analysis(rep *organizer.AnalysisReport) string {
	var b strings.Builder

	b.WriteString(r.render(titleStyle, fmt.Sprintf("Analyzed %s", rep.Root)))
	b.WriteString("\n\n")

	if len(rep.Suggestions) == 0 {
		b.WriteString(r.render(successStyle, "Everything is where it belongs."))
		b.WriteString("\n")
	} else {
		b.WriteString(r.render(headingStyle, fmt.Sprintf("Suggested moves (%d)", len(rep.Suggestions))))
		b.WriteString("\n")
		for _, s := range rep.Suggestions {
			b.WriteString(fmt.Sprintf("  %s %s %s  %s %s\n",
				r.render(pathStyle, s.CurrentPath),
				r.render(arrowStyle, "->"),
				r.render(pathStyle, s.SuggestedPath),
				r.render(categoryStyle, s.Category),
				r.render(confidenceStyle, fmt.Sprintf("(%.0f%%)", s.Confidence*100)),
			))
			for _, reason := range s.Reasons {
				wrapped := wordwrap.String(reason, r.width-8)
				for _, line := range strings.Split(wrapped, "\n") {
					b.WriteString(r.render(reasonStyle, line))
					b.WriteString("\n")
				}
			}
		}
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %d documents: %d well placed, %d protected, %d unclassified, %d to move\n",
		rep.Total, rep.WellPlaced, rep.Protected, rep.Unclassified, rep.Suggested))

	r.writeErrors(&b, rep.Errors)
	return b.String()
}

// Apply renders the outcome of an apply run, one line per attempted move.
func (r *Renderer) Apply(rep *organizer.ApplyReport) string {
	var b strings.Builder

	if rep.DryRun {
		b.WriteString(r.render(warnStyle, "Dry run: no files were moved."))
		b.WriteString("\n\n")
	}

	if rep.VCS != nil && !rep.DryRun {
		switch {
		case !rep.VCS.InRepository:
			b.WriteString(r.render(warnStyle, "Warning: target is not under version control; moves cannot be undone."))
			b.WriteString("\n\n")
		case !rep.VCS.Clean:
			b.WriteString(r.render(warnStyle, "Warning: working tree has uncommitted changes."))
			b.WriteString("\n\n")
		}
	}

	for _, res := range rep.Results {
		line := fmt.Sprintf("%s %s %s",
			r.render(pathStyle, res.From),
			r.render(arrowStyle, "->"),
			r.render(pathStyle, res.To))
		switch {
		case res.Error != "":
			b.WriteString(fmt.Sprintf("  %s %s\n", r.render(errorStyle, "failed:"), line))
			b.WriteString(r.render(reasonStyle, res.Error))
			b.WriteString("\n")
		case res.DryRun:
			b.WriteString(fmt.Sprintf("  %s %s\n", r.render(warnStyle, "would move:"), line))
		default:
			b.WriteString(fmt.Sprintf("  %s %s\n", r.render(successStyle, "moved:"), line))
		}
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %d moved, %d failed, %d below threshold\n",
		rep.Applied, rep.Failed, rep.Skipped))
	return b.String()
}

// Health renders the health report: score, counts, then each finding list.
func (r *Renderer) Health(rep *organizer.HealthReport) string {
	var b strings.Builder

	b.WriteString(r.render(titleStyle, fmt.Sprintf("Documentation health for %s", rep.Root)))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("  Score: %s\n", r.render(r.scoreStyle(rep.Score), fmt.Sprintf("%d/100", rep.Score))))
	b.WriteString(fmt.Sprintf("  %d documents: %d well placed, %d misplaced\n\n",
		rep.Total, rep.WellPlaced, rep.Misplaced))

	if len(rep.Orphaned) > 0 {
		b.WriteString(r.render(headingStyle, fmt.Sprintf("Orphaned (%d)", len(rep.Orphaned))))
		b.WriteString("\n")
		for _, path := range rep.Orphaned {
			b.WriteString(fmt.Sprintf("  %s\n", r.render(pathStyle, path)))
		}
		b.WriteString("\n")
	}

	if len(rep.Stale) > 0 {
		b.WriteString(r.render(headingStyle, fmt.Sprintf("Stale (%d)", len(rep.Stale))))
		b.WriteString("\n")
		for _, s := range rep.Stale {
			b.WriteString(fmt.Sprintf("  %s  %s\n",
				r.render(pathStyle, s.Path),
				r.render(confidenceStyle, "last touched "+s.Modified.Format("2006-01-02"))))
		}
		b.WriteString("\n")
	}

	if len(rep.Naming) > 0 {
		b.WriteString(r.render(headingStyle, fmt.Sprintf("Naming (%d)", len(rep.Naming))))
		b.WriteString("\n")
		for _, n := range rep.Naming {
			b.WriteString(fmt.Sprintf("  %s\n", r.render(pathStyle, n.Path)))
			wrapped := wordwrap.String(n.Issue, r.width-8)
			for _, line := range strings.Split(wrapped, "\n") {
				b.WriteString(r.render(reasonStyle, line))
				b.WriteString("\n")
			}
		}
		b.WriteString("\n")
	}

	r.writeErrors(&b, rep.Errors)
	return b.String()
}

func (r *Renderer) scoreStyle(score int) lipgloss.Style {
	switch {
	case score >= 80:
		return scoreGoodStyle
	case score >= 50:
		return scoreFairStyle
	default:
		return scorePoorStyle
	}
}

func (r *Renderer) writeErrors(b *strings.Builder, errs []string) {
	if len(errs) == 0 {
		return
	}
	b.WriteString("\n")
	b.WriteString(r.render(errorStyle, fmt.Sprintf("Errors (%d)", len(errs))))
	b.WriteString("\n")
	for _, e := range errs {
		b.WriteString(fmt.Sprintf("  %s\n", e))
	}
}
