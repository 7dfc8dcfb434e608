package organizer

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheckCategorizesFindings(t *testing.T) {
	root := writeDocs(t, map[string]string{
		"README.md":               "# Project",
		"feature-login.md":        "# Feature: login",
		"random-notes.md":         "nothing recognizable here",
		"docs/guides/guide-cli.md": "---\nupdated: 2020-01-02T00:00:00Z\n---\n\nUsage.",
	})

	engine := newTestEngine(t, root, nil)
	report, err := engine.HealthCheck()
	require.NoError(t, err)

	assert.Equal(t, 4, report.Total)
	assert.Equal(t, 2, report.WellPlaced) // README (protected) + guide
	assert.Equal(t, 1, report.Misplaced)
	assert.Equal(t, []string{"random-notes.md"}, report.Orphaned)

	require.Len(t, report.Stale, 1)
	assert.Equal(t, "docs/guides/guide-cli.md", report.Stale[0].Path)
	assert.Equal(t, 2020, report.Stale[0].Modified.Year())

	assert.Empty(t, report.Naming)
	// 100 - 40*(1/4) - 25*(1/4) - 20*(1/4), rounded.
	assert.Equal(t, 79, report.Score)
}

func TestHealthCheckCleanTreeScoresFull(t *testing.T) {
	root := writeDocs(t, map[string]string{
		"docs/features/feature-login.md": "# Feature: login",
		"docs/api/api-v1.md":             "# API v1",
	})

	engine := newTestEngine(t, root, nil)
	report, err := engine.HealthCheck()
	require.NoError(t, err)

	assert.Equal(t, 100, report.Score)
	assert.Equal(t, 2, report.WellPlaced)
	assert.Empty(t, report.Orphaned)
	assert.Empty(t, report.Stale)
}

func TestHealthCheckEmptyTree(t *testing.T) {
	engine := newTestEngine(t, t.TempDir(), nil)
	report, err := engine.HealthCheck()
	require.NoError(t, err)

	assert.Equal(t, 0, report.Total)
	assert.Equal(t, 100, report.Score)
}

func TestHealthCheckStaleDisabled(t *testing.T) {
	root := writeDocs(t, map[string]string{
		"docs/guides/guide-cli.md": "---\nupdated: 2020-01-02T00:00:00Z\n---\n\nUsage.",
	})

	cfg := defaultConfig(t)
	cfg.StaleAfterDays = 0
	engine := newTestEngine(t, root, nil)
	engine.cfg = cfg

	report, err := engine.HealthCheck()
	require.NoError(t, err)
	assert.Empty(t, report.Stale)
}

func TestLastTouchedPrefersFrontmatter(t *testing.T) {
	modTime := time.Now()

	content := []byte("---\nupdated: 2021-06-01T00:00:00Z\n---\n\nBody.")
	got := lastTouched(content, modTime)
	assert.Equal(t, 2021, got.Year())

	// No frontmatter: fall back to the file modification time.
	got = lastTouched([]byte("# Plain document"), modTime)
	assert.Equal(t, modTime, got)

	// Broken frontmatter is not fatal.
	got = lastTouched([]byte("---\nupdated: [not a date\n---\n"), modTime)
	assert.Equal(t, modTime, got)
}

func TestHealthCheckResetsPriorErrors(t *testing.T) {
	root := writeDocs(t, map[string]string{
		"docs/guides/guide-cli.md": "# How to use the CLI",
	})

	engine := newTestEngine(t, root, nil)
	engine.recordError(errors.New("read failure from an earlier analysis"))

	report, err := engine.HealthCheck()
	require.NoError(t, err)

	assert.Empty(t, report.Errors, "errors from a previous run must not leak into the health report")
}

func TestHealthCheckDoesNotModifyTree(t *testing.T) {
	root := writeDocs(t, map[string]string{
		"feature-login.md": "# Feature: login",
	})

	engine := newTestEngine(t, root, nil)
	_, err := engine.HealthCheck()
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(root, "feature-login.md"))
	assert.NoDirExists(t, filepath.Join(root, "docs"))
}
