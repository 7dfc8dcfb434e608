package ai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tidydocs/internal/classify"
)

func TestParseClassification(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    Response
		wantErr bool
	}{
		{
			name:    "plain JSON",
			content: `{"category": "guides", "confidence": 0.85, "reason": "tutorial content"}`,
			want:    Response{Category: "guides", Confidence: 0.85, Reason: "tutorial content"},
		},
		{
			name: "markdown fenced JSON",
			content: "```json\n" +
				`{"category": "architecture", "confidence": 0.7, "reason": "design doc"}` +
				"\n```",
			want: Response{Category: "architecture", Confidence: 0.7, Reason: "design doc"},
		},
		{
			name:    "alternatives preserved",
			content: `{"category": "guides", "confidence": 0.6, "reason": "", "alternatives": [{"category": "features", "confidence": 0.3}]}`,
			want: Response{
				Category:     "guides",
				Confidence:   0.6,
				Alternatives: []CategoryScore{{Category: "features", Confidence: 0.3}},
			},
		},
		{
			name:    "confidence clamped to range",
			content: `{"category": "guides", "confidence": 1.7, "reason": "x"}`,
			want:    Response{Category: "guides", Confidence: 1.0, Reason: "x"},
		},
		{
			name:    "missing category is an error",
			content: `{"confidence": 0.9}`,
			wantErr: true,
		},
		{
			name:    "non-JSON is an error",
			content: "The category is probably guides.",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseClassification(tt.content)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildPrompt(t *testing.T) {
	req := Request{
		Name:       "feature-login.md",
		Path:       "notes/feature-login.md",
		Excerpt:    "Describes the login flow.",
		Categories: []string{"features", "guides"},
		Prior:      classify.Result{Category: "guides", Confidence: 0.5},
	}

	prompt := buildPrompt(req)

	assert.Contains(t, prompt, "feature-login.md")
	assert.Contains(t, prompt, "notes/feature-login.md")
	assert.Contains(t, prompt, "features, guides")
	assert.Contains(t, prompt, "guides (confidence 0.50)")
	assert.Contains(t, prompt, "Describes the login flow.")

	t.Run("excerpt capped", func(t *testing.T) {
		req.Excerpt = strings.Repeat("a", ExcerptLen+100)
		p := buildPrompt(req)
		assert.NotContains(t, p, strings.Repeat("a", ExcerptLen+1))
	})

	t.Run("no prior classification", func(t *testing.T) {
		req.Prior = classify.Result{}
		p := buildPrompt(req)
		assert.Contains(t, p, "Pattern-based classification so far: none")
	})
}
