package ai

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tidydocs/internal/classify"
	"tidydocs/internal/logging"
)

// mockClassifier returns a canned response or error and records the request.
type mockClassifier struct {
	resp    Response
	err     error
	called  bool
	lastReq Request
}

func (m *mockClassifier) Classify(_ context.Context, req Request) (Response, error) {
	m.called = true
	m.lastReq = req
	return m.resp, m.err
}

func newTestEnhancer(c Classifier) *Enhancer {
	logger, _ := logging.NewTestLogger()
	return NewEnhancer(c, DefaultFallbackThreshold, logger)
}

func TestMaybeEnhanceSkipsConfidentResults(t *testing.T) {
	mock := &mockClassifier{resp: Response{Category: "guides", Confidence: 0.99}}
	e := newTestEnhancer(mock)

	existing := classify.Result{Category: "features", Confidence: 0.9, Reasons: []string{"filename match"}}
	got := e.MaybeEnhance(context.Background(), existing, "content", Request{Name: "a.md"})

	assert.False(t, mock.called, "classifier must not be consulted at or above the threshold")
	assert.Equal(t, existing, got)
	assert.False(t, got.AIEnhanced)
}

func TestMaybeEnhanceAdoptsMoreConfidentAnswer(t *testing.T) {
	mock := &mockClassifier{resp: Response{
		Category:   "architecture",
		Confidence: 0.9,
		Reason:     "discusses system design",
	}}
	e := newTestEnhancer(mock)

	existing := classify.Result{Category: "guides", Confidence: 0.6, Reasons: []string{"content match"}}
	got := e.MaybeEnhance(context.Background(), existing, "content", Request{Name: "a.md"})

	require.True(t, mock.called)
	assert.Equal(t, "architecture", got.Category)
	assert.Equal(t, 0.9, got.Confidence)
	assert.True(t, got.AIEnhanced)
	require.Len(t, got.Reasons, 2)
	assert.Equal(t, "ai: discusses system design", got.Reasons[0], "AI reason must come first")
	assert.Equal(t, "content match", got.Reasons[1], "prior reasons kept after")
}

func TestMaybeEnhanceConfirmationBoost(t *testing.T) {
	tests := []struct {
		name           string
		existing       float64
		wantConfidence float64
	}{
		{"boost applied", 0.5, 0.6},
		{"boost capped at one", 0.95, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Equal confidence so adoption (case 2) does not trigger.
			mock := &mockClassifier{resp: Response{Category: "guides", Confidence: tt.existing}}
			e := newTestEnhancer(mock)

			existing := classify.Result{Category: "guides", Confidence: tt.existing, Reasons: []string{"content match"}}
			got := e.MaybeEnhance(context.Background(), existing, "content", Request{Name: "a.md"})

			assert.Equal(t, "guides", got.Category)
			assert.InDelta(t, tt.wantConfidence, got.Confidence, 1e-9)
			assert.True(t, got.AIEnhanced)
			require.Len(t, got.Reasons, 2)
			assert.Contains(t, got.Reasons[1], "ai confirmed guides")
		})
	}
}

func TestMaybeEnhanceDisagreementNotAdopted(t *testing.T) {
	mock := &mockClassifier{resp: Response{Category: "architecture", Confidence: 0.5, Reason: "maybe"}}
	e := newTestEnhancer(mock)

	existing := classify.Result{Category: "guides", Confidence: 0.7, Reasons: []string{"content match"}}
	got := e.MaybeEnhance(context.Background(), existing, "content", Request{Name: "a.md"})

	assert.Equal(t, "guides", got.Category, "existing category kept on disagreement")
	assert.Equal(t, 0.7, got.Confidence, "existing confidence kept on disagreement")
	assert.True(t, got.AIEnhanced)
	require.Len(t, got.Reasons, 2)
	assert.Contains(t, got.Reasons[1], "ai suggested architecture (confidence 0.50)")
}

func TestMaybeEnhanceGracefulDegradation(t *testing.T) {
	t.Run("call failure keeps existing classification", func(t *testing.T) {
		mock := &mockClassifier{err: errors.New("network down")}
		e := newTestEnhancer(mock)

		existing := classify.Result{Category: "guides", Confidence: 0.6, Reasons: []string{"content match"}}
		got := e.MaybeEnhance(context.Background(), existing, "content", Request{Name: "a.md"})

		assert.Equal(t, "guides", got.Category)
		assert.Equal(t, 0.6, got.Confidence)
		assert.False(t, got.AIEnhanced, "failed call must not mark the result AI-enhanced")
		require.Len(t, got.Reasons, 2)
		assert.Contains(t, got.Reasons[1], "ai fallback failed")
	})

	t.Run("empty response treated as no answer", func(t *testing.T) {
		mock := &mockClassifier{resp: Response{}}
		e := newTestEnhancer(mock)

		existing := classify.Result{Category: "guides", Confidence: 0.6, Reasons: []string{"content match"}}
		got := e.MaybeEnhance(context.Background(), existing, "content", Request{Name: "a.md"})

		assert.Equal(t, existing, got)
		assert.False(t, got.AIEnhanced)
	})

	t.Run("nil enhancer is a no-op", func(t *testing.T) {
		var e *Enhancer
		existing := classify.Result{Category: "guides", Confidence: 0.6}
		assert.Equal(t, existing, e.MaybeEnhance(context.Background(), existing, "content", Request{}))
	})
}

func TestMaybeEnhanceExcerptTruncation(t *testing.T) {
	mock := &mockClassifier{resp: Response{Category: "guides", Confidence: 0.9}}
	e := newTestEnhancer(mock)

	long := strings.Repeat("x", ExcerptLen+500)
	existing := classify.Result{Category: "", Confidence: 0}
	e.MaybeEnhance(context.Background(), existing, long, Request{Name: "a.md"})

	require.True(t, mock.called)
	assert.Len(t, mock.lastReq.Excerpt, ExcerptLen)
	assert.Equal(t, existing, mock.lastReq.Prior, "prior classification passed for context")
}

func TestMaybeEnhanceExcerptTruncationMultibyte(t *testing.T) {
	mock := &mockClassifier{resp: Response{Category: "guides", Confidence: 0.9}}
	e := newTestEnhancer(mock)

	// Characters, not bytes: two-byte runes must still yield ExcerptLen
	// characters, cut on a rune boundary.
	long := strings.Repeat("é", ExcerptLen+500)
	e.MaybeEnhance(context.Background(), classify.Result{}, long, Request{Name: "a.md"})

	require.True(t, mock.called)
	assert.Equal(t, ExcerptLen, utf8.RuneCountInString(mock.lastReq.Excerpt))
	assert.True(t, utf8.ValidString(mock.lastReq.Excerpt))
}
