// Package ai provides the optional LLM fallback for low-confidence
// classifications.
//
// The external model is modeled as a capability interface with a single
// method, so the merge logic can be unit-tested without any live network
// dependency. AI failure is never fatal: the pipeline degrades to the
// pattern-based result.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"tidydocs/internal/classify"
)

// ExcerptLen is the maximum number of content characters sent to the external
// classifier.
const ExcerptLen = 2000

// Request carries everything the external classifier sees about a document.
type Request struct {
	Name       string
	Path       string
	Excerpt    string
	Categories []string
	Prior      classify.Result
}

// CategoryScore is an alternative category suggestion with its confidence.
type CategoryScore struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
}

// Response is the external classifier's answer.
type Response struct {
	Category     string
	Confidence   float64
	Reason       string
	Alternatives []CategoryScore
}

// Classifier is the capability interface for an external classification
// function. Implementations must treat the call as side-effect free.
type Classifier interface {
	Classify(ctx context.Context, req Request) (Response, error)
}

// Config holds settings for the concrete LLM clients.
type Config struct {
	Provider    string
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
}

// NewClassifier creates a classifier for the configured provider. The API key
// is resolved from the environment or the OS credential store when not set
// explicitly.
func NewClassifier(cfg Config) (Classifier, error) {
	if cfg.APIKey == "" {
		key, err := ResolveAPIKey(cfg.Provider)
		if err != nil {
			return nil, err
		}
		cfg.APIKey = key
	}

	switch strings.ToLower(cfg.Provider) {
	case "anthropic":
		return newAnthropicClient(cfg)
	case "openai":
		return newOpenAIClient(cfg)
	default:
		return nil, fmt.Errorf("unsupported AI provider: %s", cfg.Provider)
	}
}

// buildPrompt renders the classification request for the model. The response
// contract is a bare JSON object so parsing stays mechanical.
func buildPrompt(req Request) string {
	var b strings.Builder

	b.WriteString("Classify this markdown document into one of the available categories.\n\n")
	fmt.Fprintf(&b, "File name: %s\n", req.Name)
	fmt.Fprintf(&b, "File path: %s\n", req.Path)
	fmt.Fprintf(&b, "Available categories: %s\n", strings.Join(req.Categories, ", "))

	if !req.Prior.None() {
		fmt.Fprintf(&b, "Pattern-based classification so far: %s (confidence %.2f)\n",
			req.Prior.Category, req.Prior.Confidence)
	} else {
		b.WriteString("Pattern-based classification so far: none\n")
	}

	excerpt := req.Excerpt
	if len(excerpt) > ExcerptLen {
		excerpt = excerpt[:ExcerptLen]
	}
	fmt.Fprintf(&b, "\nContent excerpt:\n%s\n", excerpt)

	b.WriteString(`
Respond with ONLY a JSON object in this exact format:
{"category": "...", "confidence": 0.0, "reason": "...", "alternatives": [{"category": "...", "confidence": 0.0}]}
Confidence must be between 0 and 1. Alternatives may be empty.`)

	return b.String()
}

// parseClassification extracts the structured answer from raw model output.
func parseClassification(content string) (Response, error) {
	var jsonResp struct {
		Category     string          `json:"category"`
		Confidence   float64         `json:"confidence"`
		Reason       string          `json:"reason"`
		Alternatives []CategoryScore `json:"alternatives"`
	}

	content = cleanMarkdownWrapper(content)

	if err := json.Unmarshal([]byte(content), &jsonResp); err != nil {
		return Response{}, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	if jsonResp.Category == "" {
		return Response{}, fmt.Errorf("no category found in response")
	}

	return Response{
		Category:     jsonResp.Category,
		Confidence:   clampConfidence(jsonResp.Confidence),
		Reason:       jsonResp.Reason,
		Alternatives: jsonResp.Alternatives,
	}, nil
}

// cleanMarkdownWrapper strips a ```json fence the model sometimes wraps its
// answer in despite instructions.
func cleanMarkdownWrapper(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}

func clampConfidence(c float64) float64 {
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}
