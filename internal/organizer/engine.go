// Package organizer orchestrates the classification pipeline over a batch of
// documents: enumerate, classify, check placement, suggest, and optionally
// execute relocations.
//
// Each engine instance owns its own suggestion and error lists; instances
// never share mutable state, so several engines in one process cannot
// interfere. Documents are processed strictly one at a time in enumeration
// order, which keeps the suggestion list deterministic even when each
// document awaits its own external AI call.
package organizer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"tidydocs/internal/ai"
	"tidydocs/internal/classify"
	"tidydocs/internal/config"
	"tidydocs/internal/logging"
	"tidydocs/internal/placement"
	"tidydocs/pkg/fileops"
)

// Engine runs the organization pipeline for one target root.
type Engine struct {
	cfg        *config.Config
	classifier *classify.Classifier
	resolver   *placement.Resolver
	enhancer   *ai.Enhancer
	logger     *logging.AppLogger

	root        string
	suggestions []Suggestion
	errs        []error
}

// New creates an engine for the given root directory. The enhancer may be
// nil, which disables AI fallback entirely.
func New(cfg *config.Config, root string, enhancer *ai.Enhancer, logger *logging.AppLogger) *Engine {
	return &Engine{
		cfg:        cfg,
		classifier: cfg.Classifier(),
		resolver:   cfg.Resolver(),
		enhancer:   enhancer,
		logger:     logger,
		root:       root,
	}
}

// Suggestions returns the suggestion list from the last analysis run.
func (e *Engine) Suggestions() []Suggestion {
	return e.suggestions
}

// SetSuggestions replaces the suggestion list. Interactive review uses this
// to narrow the batch to what the user accepted before ApplyMoves runs.
func (e *Engine) SetSuggestions(suggestions []Suggestion) {
	e.suggestions = suggestions
}

// Errors returns the non-fatal errors accumulated so far.
func (e *Engine) Errors() []error {
	return e.errs
}

func (e *Engine) recordError(err error) {
	e.errs = append(e.errs, err)
}

// GenerateSuggestions runs the full analysis pipeline and returns a report.
//
// Per document: protected check, pattern classification, optional AI
// enhancement, placement check. A suggestion is produced only when the
// document is misplaced AND its confidence reaches the suggest threshold;
// documents below the threshold are dropped silently rather than reported as
// low-confidence noise. Per-document read failures are recorded and the
// batch continues.
func (e *Engine) GenerateSuggestions(ctx context.Context) (*AnalysisReport, error) {
	e.suggestions = nil
	e.errs = nil

	docs, err := e.scan()
	if err != nil {
		return nil, err
	}

	report := &AnalysisReport{Root: e.root, Total: len(docs)}

	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if e.classifier.Protected(doc.Name, doc.Path) {
			report.Protected++
			e.logger.Debug("Protected document skipped", "path", doc.Path)
			continue
		}

		content, err := os.ReadFile(filepath.Join(e.root, filepath.FromSlash(doc.Path)))
		if err != nil {
			e.recordError(fmt.Errorf("failed to read %s: %w", doc.Path, err))
			continue
		}

		result := e.classifier.Classify(doc.Name, doc.Path, string(content))

		if e.enhancer != nil {
			result = e.enhancer.MaybeEnhance(ctx, result, string(content), ai.Request{
				Name:       doc.Name,
				Path:       doc.Path,
				Categories: e.cfg.Categories(),
			})
		}

		if result.None() {
			report.Unclassified++
			continue
		}

		expectedDir := e.resolver.ResolveDirectory(result.Category)
		if placement.IsCorrectlyPlaced(doc.Dir, expectedDir) {
			report.WellPlaced++
			continue
		}

		if result.Confidence < e.cfg.SuggestThreshold {
			// Misplaced but not confidently enough to say so.
			report.WellPlaced++
			continue
		}

		e.suggestions = append(e.suggestions, Suggestion{
			CurrentPath:   doc.Path,
			SuggestedPath: e.resolver.SuggestedPath(result.Category, doc.Name),
			Category:      result.Category,
			Confidence:    result.Confidence,
			Reasons:       result.Reasons,
			AIEnhanced:    result.AIEnhanced,
		})
	}

	report.Suggestions = e.suggestions
	report.Suggested = len(e.suggestions)
	report.Errors = errorStrings(e.errs)
	return report, nil
}

// ApplyOptions controls ApplyMoves.
type ApplyOptions struct {
	// DryRun reports what would move without touching the filesystem.
	DryRun bool

	// MinConfidence overrides the configured auto-apply threshold when
	// positive.
	MinConfidence float64

	// SkipThresholdFilter executes every current suggestion regardless of
	// confidence. Interactive review sets this: once the user has accepted
	// a suggestion explicitly, the auto-apply threshold no longer applies.
	SkipThresholdFilter bool
}

// ApplyMoves executes the current suggestions whose confidence reaches the
// auto-apply threshold. A failed move is counted and the batch continues;
// moves are not transactional and already-moved documents stay moved.
func (e *Engine) ApplyMoves(ctx context.Context, opts ApplyOptions) (*ApplyReport, error) {
	threshold := e.cfg.AutoApplyThreshold
	if opts.MinConfidence > 0 {
		threshold = opts.MinConfidence
	}

	report := &ApplyReport{DryRun: opts.DryRun}

	if !opts.DryRun {
		vcs := CheckWorkingTree(e.root)
		report.VCS = &vcs
		if !vcs.InRepository {
			e.logger.Warn("Target is not under version control; moves cannot be undone", "root", e.root)
		} else if !vcs.Clean {
			e.logger.Warn("Working tree has uncommitted changes", "root", e.root)
		}
	}

	for _, s := range e.suggestions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if !opts.SkipThresholdFilter && s.Confidence < threshold {
			report.Skipped++
			continue
		}

		result := MoveResult{From: s.CurrentPath, To: s.SuggestedPath, DryRun: opts.DryRun}
		if opts.DryRun {
			result.Applied = false
			report.Results = append(report.Results, result)
			continue
		}

		src := filepath.Join(e.root, filepath.FromSlash(s.CurrentPath))
		dest := filepath.Join(e.root, filepath.FromSlash(s.SuggestedPath))
		if err := fileops.Move(src, dest); err != nil {
			result.Error = err.Error()
			report.Failed++
			e.recordError(fmt.Errorf("failed to move %s: %w", s.CurrentPath, err))
			e.logger.Error("Move failed", "from", s.CurrentPath, "error", err)
		} else {
			result.Applied = true
			report.Applied++
			e.logger.Info("Moved document", "from", s.CurrentPath, "to", s.SuggestedPath)
		}
		report.Results = append(report.Results, result)
	}

	return report, nil
}

// scan enumerates candidate documents, folding non-fatal walk errors into the
// engine's error list.
func (e *Engine) scan() ([]fileops.DocInfo, error) {
	scanner, err := fileops.NewScanner(e.root, fileops.ScanOptions{
		ExcludeDirs: e.cfg.ExcludeDirs,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open target directory: %w", err)
	}
	defer scanner.Close()

	result, err := scanner.Scan()
	if err != nil {
		return nil, err
	}
	e.errs = append(e.errs, result.Errors...)
	return result.Docs, nil
}

func errorStrings(errs []error) []string {
	if len(errs) == 0 {
		return nil
	}
	out := make([]string, len(errs))
	for i, err := range errs {
		out[i] = err.Error()
	}
	return out
}
