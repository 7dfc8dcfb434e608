package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveDefaults(t *testing.T) {
	cfg, err := Resolve(Defaults())
	if err != nil {
		t.Fatalf("Resolve(Defaults()) failed: %v", err)
	}

	if cfg.SuggestThreshold != 0.7 {
		t.Errorf("SuggestThreshold = %v, want 0.7", cfg.SuggestThreshold)
	}
	if cfg.AutoApplyThreshold != 0.8 {
		t.Errorf("AutoApplyThreshold = %v, want 0.8", cfg.AutoApplyThreshold)
	}
	if cfg.AI.Enabled {
		t.Error("AI must be disabled by default")
	}
	if len(cfg.Rules) == 0 {
		t.Fatal("default rules missing")
	}
	// Broad catch-all stays last so it cannot shadow specific rules.
	if cfg.Rules[len(cfg.Rules)-1].Category != "guides" {
		t.Errorf("last default rule = %q, want guides", cfg.Rules[len(cfg.Rules)-1].Category)
	}
}

func TestResolveMergesOverrides(t *testing.T) {
	override := FileConfig{
		Rules: []RuleEntry{
			{Category: "rfcs", Pattern: `rfc-.*`},
		},
		DirectoryTemplates: map[string]string{
			"rfcs": "{docsRoot}/rfcs/",
		},
		PathVariables: map[string]string{
			"docsRoot": "documentation",
		},
		Thresholds:     &Thresholds{Suggest: 0.5},
		AI:             &AISettings{Enabled: true, Provider: "openai"},
		StaleAfterDays: 30,
	}

	cfg, err := Resolve(Defaults(), override)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	// Rule list replaced wholesale: ordering is part of its meaning.
	if len(cfg.Rules) != 1 || cfg.Rules[0].Category != "rfcs" {
		t.Errorf("rules not replaced by override: %+v", cfg.Rules)
	}

	// Template maps merge key-wise.
	if cfg.DirectoryTemplates["rfcs"] != "{docsRoot}/rfcs/" {
		t.Error("override template missing")
	}
	if cfg.DirectoryTemplates["guides"] != "{docsRoot}/guides/" {
		t.Error("base template lost in merge")
	}
	if cfg.PathVariables["docsRoot"] != "documentation" {
		t.Error("variable not overridden")
	}

	if cfg.SuggestThreshold != 0.5 {
		t.Errorf("SuggestThreshold = %v, want 0.5", cfg.SuggestThreshold)
	}
	if cfg.AutoApplyThreshold != 0.8 {
		t.Errorf("AutoApplyThreshold = %v, want default 0.8 when not overridden", cfg.AutoApplyThreshold)
	}
	if !cfg.AI.Enabled || cfg.AI.Provider != "openai" {
		t.Errorf("AI settings not merged: %+v", cfg.AI)
	}
	if cfg.StaleAfterDays != 30 {
		t.Errorf("StaleAfterDays = %d, want 30", cfg.StaleAfterDays)
	}
}

func TestResolveRejectsMalformedPattern(t *testing.T) {
	override := FileConfig{
		Rules: []RuleEntry{{Category: "broken", Pattern: `guide-[`}},
	}

	if _, err := Resolve(Defaults(), override); err == nil {
		t.Fatal("malformed pattern must be a hard resolution error")
	}
}

func TestLoadProjectFile(t *testing.T) {
	dir := t.TempDir()
	project := filepath.Join(dir, ProjectFileName)
	content := `
rules:
  - category: notes
    pattern: 'note-.*'
path_variables:
  docsRoot: wiki
`
	if err := os.WriteFile(project, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(cfg.Rules) != 1 || cfg.Rules[0].Category != "notes" {
		t.Errorf("project rules not applied: %+v", cfg.Rules)
	}
	if cfg.PathVariables["docsRoot"] != "wiki" {
		t.Errorf("project variable not applied: %v", cfg.PathVariables)
	}
}

func TestLoadWithoutFilesUsesDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.SuggestThreshold != 0.7 {
		t.Errorf("expected default thresholds, got %v", cfg.SuggestThreshold)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	project := filepath.Join(dir, ProjectFileName)
	if err := os.WriteFile(project, []byte(":\n  - ["), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(dir); err == nil {
		t.Fatal("malformed YAML must be a hard startup error")
	}
}

func TestConfigCategories(t *testing.T) {
	cfg, err := Resolve(Defaults())
	if err != nil {
		t.Fatal(err)
	}

	cats := cfg.Categories()
	if len(cats) == 0 {
		t.Fatal("no categories")
	}
	if cats[0] != "instructions" {
		t.Errorf("categories not in rule order: %v", cats)
	}
}

func TestResolveBareBase(t *testing.T) {
	// A base without thresholds or AI settings resolves with the defaults
	// filled in instead of panicking.
	base := FileConfig{
		Rules: []RuleEntry{
			{Category: "guides", Pattern: `guide-.*`},
		},
	}

	cfg, err := Resolve(base)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if cfg.SuggestThreshold != 0.7 {
		t.Errorf("SuggestThreshold = %v, want default 0.7", cfg.SuggestThreshold)
	}
	if cfg.AI.Provider != "anthropic" {
		t.Errorf("AI.Provider = %q, want default anthropic", cfg.AI.Provider)
	}
}

func TestResolveBareBaseWithThresholdOverride(t *testing.T) {
	base := FileConfig{
		Rules: []RuleEntry{
			{Category: "guides", Pattern: `guide-.*`},
		},
	}
	override := FileConfig{
		Thresholds: &Thresholds{Suggest: 0.6},
		AI:         &AISettings{Enabled: true},
	}

	cfg, err := Resolve(base, override)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if cfg.SuggestThreshold != 0.6 {
		t.Errorf("SuggestThreshold = %v, want 0.6", cfg.SuggestThreshold)
	}
	if cfg.AutoApplyThreshold != 0.8 {
		t.Errorf("AutoApplyThreshold = %v, want default 0.8 kept", cfg.AutoApplyThreshold)
	}
	if !cfg.AI.Enabled {
		t.Error("AI.Enabled = false, want true from override")
	}
}
