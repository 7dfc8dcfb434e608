// Package classify decides which category a markdown document belongs to.
//
// Classification is regex-driven and deliberately simple: rules are evaluated
// in their configured order and the first rule whose pattern accepts the input
// wins. An earlier, broader pattern can therefore shadow a later, more specific
// one for the same document; rule ordering is part of the configuration
// contract, so authors should list specific patterns before general ones.
package classify

import (
	"fmt"
	"regexp"
	"strings"
)

// Default confidence constants for the two matching strategies.
const (
	DefaultFilenameConfidence = 0.9
	DefaultContentConfidence  = 0.5

	// ContentPrefixLen is how much of the document body the content scan sees.
	ContentPrefixLen = 200
)

// Rule pairs a category with its compiled matcher. Rules live in an ordered
// slice, never a map: matching stops at the first accepting rule.
type Rule struct {
	Category string
	Pattern  *regexp.Regexp
}

// RulePattern is the raw, uncompiled form of a rule as it appears in
// configuration.
type RulePattern struct {
	Category string
	Pattern  string
}

// Result is the outcome of classifying one document.
//
// Either Category is empty and Confidence is zero (no classification), or
// Category is set and Confidence is positive. Reasons records, in order, why
// the category was chosen.
type Result struct {
	Category   string
	Confidence float64
	Reasons    []string
	AIEnhanced bool
}

// None reports whether r carries no classification.
func (r Result) None() bool {
	return r.Category == ""
}

// Options tunes the classifier. The zero value is not usable; use
// DefaultOptions as a base.
type Options struct {
	// FilenameConfidence is assigned to filename-rule matches.
	FilenameConfidence float64

	// ContentConfidence is assigned to content-rule matches.
	ContentConfidence float64

	// ContentExcluded lists categories that must never be assigned from a
	// content match. Instruction-style documents are the usual entry here:
	// generic instructional prose shows up in too many documents to be a
	// reliable signal, so such documents are only ever filename-classified.
	ContentExcluded []string
}

// DefaultOptions returns the standard classifier tuning.
func DefaultOptions() Options {
	return Options{
		FilenameConfidence: DefaultFilenameConfidence,
		ContentConfidence:  DefaultContentConfidence,
		ContentExcluded:    []string{"instructions"},
	}
}

// Classifier matches document names and content prefixes against an ordered
// rule list. It is stateless after construction and safe for reuse across
// documents.
type Classifier struct {
	rules     []Rule
	protected map[string]struct{}
	excluded  map[string]struct{}
	opts      Options
}

// New creates a classifier from compiled rules and a protected set of literal
// file names and full paths.
func New(rules []Rule, protected []string, opts Options) *Classifier {
	c := &Classifier{
		rules:     rules,
		protected: make(map[string]struct{}, len(protected)),
		excluded:  make(map[string]struct{}, len(opts.ContentExcluded)),
		opts:      opts,
	}
	for _, p := range protected {
		c.protected[p] = struct{}{}
	}
	for _, cat := range opts.ContentExcluded {
		c.excluded[cat] = struct{}{}
	}
	return c
}

// CompileRules compiles raw configuration patterns into ordered rules.
//
// Patterns are case-insensitive and anchored at the start of the input: a rule
// is a prefix/whole-string test, not a substring search. A malformed pattern is
// a configuration error and fails compilation outright.
func CompileRules(patterns []RulePattern) ([]Rule, error) {
	rules := make([]Rule, 0, len(patterns))
	for _, p := range patterns {
		if strings.TrimSpace(p.Category) == "" {
			return nil, fmt.Errorf("rule with pattern %q has no category", p.Pattern)
		}
		re, err := regexp.Compile("(?i)^(?:" + p.Pattern + ")")
		if err != nil {
			return nil, fmt.Errorf("invalid pattern for category %q: %w", p.Category, err)
		}
		rules = append(rules, Rule{Category: p.Category, Pattern: re})
	}
	return rules, nil
}

// Protected reports whether the document is exempt from classification, by
// exact literal name or full path.
func (c *Classifier) Protected(name, path string) bool {
	if _, ok := c.protected[name]; ok {
		return true
	}
	_, ok := c.protected[path]
	return ok
}

// Classify returns the best category for a document given its base name, its
// path relative to the scan root, and a prefix of its content.
//
// Protected documents always yield the none-result, regardless of what any
// pattern would say. Otherwise the filename scan runs first; only if no
// filename rule accepts does the content scan run, against at most
// ContentPrefixLen characters. An empty content prefix is valid input and
// simply never matches.
func (c *Classifier) Classify(name, path, contentPrefix string) Result {
	if c.Protected(name, path) {
		return Result{}
	}

	for _, rule := range c.rules {
		if rule.Pattern.MatchString(name) {
			return Result{
				Category:   rule.Category,
				Confidence: c.opts.FilenameConfidence,
				Reasons:    []string{"filename match"},
			}
		}
	}

	prefix := truncateRunes(contentPrefix, ContentPrefixLen)
	if prefix != "" {
		for _, rule := range c.rules {
			if _, skip := c.excluded[rule.Category]; skip {
				continue
			}
			if rule.Pattern.MatchString(prefix) {
				return Result{
					Category:   rule.Category,
					Confidence: c.opts.ContentConfidence,
					Reasons:    []string{"content match"},
				}
			}
		}
	}

	return Result{}
}

// truncateRunes caps s at max characters, never splitting a multibyte rune.
func truncateRunes(s string, max int) string {
	if len(s) <= max {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// Categories returns the distinct categories known to the classifier, in rule
// order. Used to tell an external classifier which labels are available.
func (c *Classifier) Categories() []string {
	seen := make(map[string]struct{}, len(c.rules))
	var cats []string
	for _, rule := range c.rules {
		if _, ok := seen[rule.Category]; ok {
			continue
		}
		seen[rule.Category] = struct{}{}
		cats = append(cats, rule.Category)
	}
	return cats
}
