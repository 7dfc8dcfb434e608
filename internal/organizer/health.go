package organizer

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/frontmatter"

	"tidydocs/internal/placement"
)

// docMeta is the YAML frontmatter shape the health pass understands. Every
// field is optional; documents without frontmatter are perfectly healthy.
type docMeta struct {
	Title       string    `yaml:"title"`
	Description string    `yaml:"description"`
	Updated     time.Time `yaml:"updated"`
}

// HealthCheck surveys the documentation tree without changing it: placement
// correctness, orphaned (unclassifiable) documents, stale documents, and
// naming findings, condensed into a 0-100 score.
//
// Classification here is pattern-only. The AI fallback is deliberately not
// consulted: a health check should be cheap, offline, and repeatable.
func (e *Engine) HealthCheck() (*HealthReport, error) {
	e.errs = nil

	docs, err := e.scan()
	if err != nil {
		return nil, err
	}

	report := &HealthReport{Root: e.root, Total: len(docs)}
	staleCutoff := time.Now().AddDate(0, 0, -e.cfg.StaleAfterDays)

	for _, doc := range docs {
		if e.classifier.Protected(doc.Name, doc.Path) {
			report.WellPlaced++
			continue
		}

		content, err := os.ReadFile(filepath.Join(e.root, filepath.FromSlash(doc.Path)))
		if err != nil {
			e.recordError(fmt.Errorf("failed to read %s: %w", doc.Path, err))
			continue
		}

		result := e.classifier.Classify(doc.Name, doc.Path, string(content))
		if result.None() {
			report.Orphaned = append(report.Orphaned, doc.Path)
		} else if placement.IsCorrectlyPlaced(doc.Dir, e.resolver.ResolveDirectory(result.Category)) {
			report.WellPlaced++
		} else {
			report.Misplaced++
		}

		if e.cfg.StaleAfterDays > 0 {
			modified := lastTouched(content, doc.ModTime)
			if modified.Before(staleCutoff) {
				report.Stale = append(report.Stale, StaleFinding{Path: doc.Path, Modified: modified})
			}
		}
	}

	report.Naming = CheckNaming(docs)
	report.Errors = errorStrings(e.errs)
	report.Score = healthScore(report)
	return report, nil
}

// lastTouched prefers an explicit frontmatter `updated:` date over the file
// modification time. Unparseable frontmatter is never fatal.
func lastTouched(content []byte, modTime time.Time) time.Time {
	var meta docMeta
	if _, err := frontmatter.Parse(bytes.NewReader(content), &meta); err == nil && !meta.Updated.IsZero() {
		return meta.Updated
	}
	return modTime
}

// healthScore condenses the findings into a 0-100 score. Misplacement weighs
// heaviest, then orphans, staleness, and naming.
func healthScore(r *HealthReport) int {
	if r.Total == 0 {
		return 100
	}

	total := float64(r.Total)
	score := 100.0
	score -= 40 * float64(r.Misplaced) / total
	score -= 25 * float64(len(r.Orphaned)) / total
	score -= 20 * float64(len(r.Stale)) / total
	score -= 15 * float64(len(r.Naming)) / total

	if score < 0 {
		score = 0
	}
	return int(score + 0.5)
}
