package ai

import (
	"context"
	"fmt"

	"tidydocs/internal/classify"
	"tidydocs/internal/logging"
)

const (
	// DefaultFallbackThreshold is the confidence below which the external
	// classifier is consulted.
	DefaultFallbackThreshold = 0.8

	// confirmationBoost is added to the existing confidence when the AI
	// agrees with the pattern-based category.
	confirmationBoost = 0.1
)

// Enhancer wraps a Classifier with the fallback threshold and the merge
// policy. A nil Enhancer is valid and leaves every result untouched.
type Enhancer struct {
	classifier Classifier
	threshold  float64
	logger     *logging.AppLogger
}

// NewEnhancer creates an enhancer around an external classifier. A threshold
// of zero selects DefaultFallbackThreshold.
func NewEnhancer(classifier Classifier, threshold float64, logger *logging.AppLogger) *Enhancer {
	if threshold == 0 {
		threshold = DefaultFallbackThreshold
	}
	return &Enhancer{
		classifier: classifier,
		threshold:  threshold,
		logger:     logger,
	}
}

// MaybeEnhance consults the external classifier when the existing confidence
// is strictly below the fallback threshold, and merges the answer into the
// existing result.
//
// Merge precedence:
//  1. call failed or returned nothing: existing classification is kept, with
//     only an appended note recording the failure;
//  2. AI strictly more confident: its category and confidence are adopted,
//     AI reason prepended, prior reasons kept after;
//  3. same category: confidence is raised by a fixed boost, capped at 1.0;
//  4. disagreement without higher confidence: existing result kept, the AI's
//     alternative recorded as a reason for visibility.
//
// AIEnhanced is set whenever the call returned a usable result (cases 2-4).
func (e *Enhancer) MaybeEnhance(ctx context.Context, existing classify.Result, excerpt string, req Request) classify.Result {
	if e == nil || e.classifier == nil {
		return existing
	}
	if existing.Confidence >= e.threshold {
		return existing
	}

	req.Excerpt = truncateExcerpt(excerpt)
	req.Prior = existing

	resp, err := e.classifier.Classify(ctx, req)
	if err != nil || resp.Category == "" {
		if err != nil {
			e.logger.Debug("AI classification failed, keeping pattern result",
				"file", req.Name, "error", err)
			existing.Reasons = append(existing.Reasons, fmt.Sprintf("ai fallback failed: %v", err))
		}
		return existing
	}

	switch {
	case resp.Confidence > existing.Confidence:
		reasons := make([]string, 0, len(existing.Reasons)+1)
		reasons = append(reasons, fmt.Sprintf("ai: %s", resp.Reason))
		reasons = append(reasons, existing.Reasons...)
		return classify.Result{
			Category:   resp.Category,
			Confidence: resp.Confidence,
			Reasons:    reasons,
			AIEnhanced: true,
		}

	case resp.Category == existing.Category:
		confidence := existing.Confidence + confirmationBoost
		if confidence > 1.0 {
			confidence = 1.0
		}
		existing.Confidence = confidence
		existing.Reasons = append(existing.Reasons,
			fmt.Sprintf("ai confirmed %s", resp.Category))
		existing.AIEnhanced = true
		return existing

	default:
		existing.Reasons = append(existing.Reasons,
			fmt.Sprintf("ai suggested %s (confidence %.2f), not adopted", resp.Category, resp.Confidence))
		existing.AIEnhanced = true
		return existing
	}
}

// truncateExcerpt caps the excerpt at ExcerptLen characters, never splitting
// a multibyte rune.
func truncateExcerpt(s string) string {
	if len(s) <= ExcerptLen {
		return s
	}
	runes := []rune(s)
	if len(runes) <= ExcerptLen {
		return s
	}
	return string(runes[:ExcerptLen])
}
