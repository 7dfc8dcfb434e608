// Package config loads and resolves tidydocs configuration.
//
// Configuration is plain data with runtime-extensible category keys: new
// categories appear by adding rules and directory templates, never by
// touching code. Resolution happens once at startup: defaults, then the
// global file under the XDG config home, then a project-level file at the
// target root, merged into a single immutable Config. Malformed patterns fail
// resolution outright, before any document is processed.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"tidydocs/internal/classify"
	"tidydocs/internal/logging"
	"tidydocs/internal/placement"
)

const (
	// AppName is the application name used for the config directory.
	AppName = "tidydocs"

	// ProjectFileName is the per-project override file looked up at the
	// target root.
	ProjectFileName = ".tidydocs.yaml"
)

// RuleEntry is one ordered classification rule as written in YAML. Order in
// the list is significant: the first matching rule wins, so authors must list
// specific patterns before general ones.
type RuleEntry struct {
	Category string `yaml:"category"`
	Pattern  string `yaml:"pattern"`
}

// Thresholds are the minimum confidences to report and to execute a
// relocation.
type Thresholds struct {
	Suggest   float64 `yaml:"suggest"`
	AutoApply float64 `yaml:"auto_apply"`
}

// AISettings controls the optional LLM fallback.
type AISettings struct {
	Enabled           bool    `yaml:"enabled"`
	Provider          string  `yaml:"provider"`
	Model             string  `yaml:"model"`
	FallbackThreshold float64 `yaml:"fallback_threshold"`
}

// FileConfig is the partial, uncompiled configuration shape shared by the
// defaults and both override files. Zero-valued fields mean "not set".
type FileConfig struct {
	Rules              []RuleEntry       `yaml:"rules"`
	DirectoryTemplates map[string]string `yaml:"directories"`
	PathVariables      map[string]string `yaml:"path_variables"`
	RootTemplate       string            `yaml:"root_template"`
	Protected          []string          `yaml:"protected"`
	ExcludeDirs        []string          `yaml:"exclude_dirs"`
	ContentExcluded    []string          `yaml:"content_excluded"`
	Thresholds         *Thresholds       `yaml:"thresholds"`
	AI                 *AISettings       `yaml:"ai"`
	StaleAfterDays     int               `yaml:"stale_after_days"`
}

// Config is the resolved, immutable runtime configuration.
type Config struct {
	Rules              []classify.Rule
	Protected          []string
	DirectoryTemplates map[string]string
	PathVariables      map[string]string
	RootTemplate       string
	ContentExcluded    []string
	SuggestThreshold   float64
	AutoApplyThreshold float64
	ExcludeDirs        []string
	StaleAfterDays     int
	AI                 AISettings
}

// GlobalPath returns the standard global config file path.
func GlobalPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.yaml")
}

// Load resolves the effective configuration for a target root directory:
// defaults, overridden by the global file if present, overridden by the
// project file if present.
func Load(targetRoot string) (*Config, error) {
	overrides := make([]FileConfig, 0, 2)

	if fc, ok, err := loadIfExists(GlobalPath()); err != nil {
		return nil, err
	} else if ok {
		overrides = append(overrides, fc)
	}

	projectPath := filepath.Join(targetRoot, ProjectFileName)
	if fc, ok, err := loadIfExists(projectPath); err != nil {
		return nil, err
	} else if ok {
		logging.Debug("Using project config", "path", projectPath)
		overrides = append(overrides, fc)
	}

	return Resolve(Defaults(), overrides...)
}

// LoadFrom resolves configuration from one explicit file over the defaults.
func LoadFrom(path string) (*Config, error) {
	fc, ok, err := loadIfExists(path)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("config file not found: %s", path)
	}
	return Resolve(Defaults(), fc)
}

func loadIfExists(path string) (FileConfig, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, false, nil
		}
		return FileConfig{}, false, fmt.Errorf("failed to open config file %s: %w", path, err)
	}
	defer f.Close()

	var fc FileConfig
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&fc); err != nil {
		return FileConfig{}, false, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return fc, true, nil
}

// Resolve merges override layers onto a base and compiles the result.
//
// Merge rules: the rule list and the protected set are replaced wholesale by
// an override that provides them (ordering is part of their meaning); the
// template and variable maps merge key-wise; scalars override when set.
func Resolve(base FileConfig, overrides ...FileConfig) (*Config, error) {
	// A base other than Defaults() may leave these unset; merge and the
	// final dereference both rely on them.
	if base.Thresholds == nil {
		base.Thresholds = Defaults().Thresholds
	}
	if base.AI == nil {
		base.AI = Defaults().AI
	}

	merged := base
	for _, o := range overrides {
		merged = merge(merged, o)
	}

	patterns := make([]classify.RulePattern, 0, len(merged.Rules))
	for _, r := range merged.Rules {
		patterns = append(patterns, classify.RulePattern{Category: r.Category, Pattern: r.Pattern})
	}
	rules, err := classify.CompileRules(patterns)
	if err != nil {
		return nil, fmt.Errorf("invalid classification rules: %w", err)
	}

	cfg := &Config{
		Rules:              rules,
		Protected:          merged.Protected,
		DirectoryTemplates: merged.DirectoryTemplates,
		PathVariables:      merged.PathVariables,
		RootTemplate:       merged.RootTemplate,
		ContentExcluded:    merged.ContentExcluded,
		SuggestThreshold:   merged.Thresholds.Suggest,
		AutoApplyThreshold: merged.Thresholds.AutoApply,
		ExcludeDirs:        merged.ExcludeDirs,
		StaleAfterDays:     merged.StaleAfterDays,
		AI:                 *merged.AI,
	}
	return cfg, nil
}

func merge(base, override FileConfig) FileConfig {
	out := base

	if len(override.Rules) > 0 {
		out.Rules = override.Rules
	}
	if len(override.Protected) > 0 {
		out.Protected = override.Protected
	}
	if len(override.ContentExcluded) > 0 {
		out.ContentExcluded = override.ContentExcluded
	}
	if len(override.ExcludeDirs) > 0 {
		out.ExcludeDirs = append(out.ExcludeDirs, override.ExcludeDirs...)
	}

	if len(override.DirectoryTemplates) > 0 {
		templates := make(map[string]string, len(base.DirectoryTemplates)+len(override.DirectoryTemplates))
		for k, v := range base.DirectoryTemplates {
			templates[k] = v
		}
		for k, v := range override.DirectoryTemplates {
			templates[k] = v
		}
		out.DirectoryTemplates = templates
	}
	if len(override.PathVariables) > 0 {
		vars := make(map[string]string, len(base.PathVariables)+len(override.PathVariables))
		for k, v := range base.PathVariables {
			vars[k] = v
		}
		for k, v := range override.PathVariables {
			vars[k] = v
		}
		out.PathVariables = vars
	}

	if override.RootTemplate != "" {
		out.RootTemplate = override.RootTemplate
	}
	if override.StaleAfterDays > 0 {
		out.StaleAfterDays = override.StaleAfterDays
	}

	if override.Thresholds != nil {
		t := *out.Thresholds
		if override.Thresholds.Suggest > 0 {
			t.Suggest = override.Thresholds.Suggest
		}
		if override.Thresholds.AutoApply > 0 {
			t.AutoApply = override.Thresholds.AutoApply
		}
		out.Thresholds = &t
	}

	if override.AI != nil {
		a := *out.AI
		a.Enabled = override.AI.Enabled
		if override.AI.Provider != "" {
			a.Provider = override.AI.Provider
		}
		if override.AI.Model != "" {
			a.Model = override.AI.Model
		}
		if override.AI.FallbackThreshold > 0 {
			a.FallbackThreshold = override.AI.FallbackThreshold
		}
		out.AI = &a
	}

	return out
}

// Classifier builds the pattern classifier for this configuration.
func (c *Config) Classifier() *classify.Classifier {
	opts := classify.DefaultOptions()
	opts.ContentExcluded = c.ContentExcluded
	return classify.New(c.Rules, c.Protected, opts)
}

// Resolver builds the placement resolver for this configuration.
func (c *Config) Resolver() *placement.Resolver {
	return placement.NewResolver(c.DirectoryTemplates, c.PathVariables, c.RootTemplate)
}

// Categories returns the distinct configured categories in rule order.
func (c *Config) Categories() []string {
	seen := make(map[string]struct{}, len(c.Rules))
	var cats []string
	for _, r := range c.Rules {
		if _, ok := seen[r.Category]; ok {
			continue
		}
		seen[r.Category] = struct{}{}
		cats = append(cats, r.Category)
	}
	return cats
}
