package config

import "tidydocs/internal/ai"

// Defaults returns the built-in base configuration.
//
// Rule order matters: the first matching rule wins, so an earlier broad
// pattern shadows a later specific one. The defaults keep broad catch-alls
// (guides) last; user configuration should do the same.
func Defaults() FileConfig {
	return FileConfig{
		Rules: []RuleEntry{
			{Category: "instructions", Pattern: `(claude|agents|copilot[-_]instructions|cursorrules)\b.*`},
			{Category: "architecture", Pattern: `(#\s*)?(arch(itecture)?|adr|design)[-_ ].*`},
			{Category: "features", Pattern: `(#\s*)?feature[-_ ].*`},
			{Category: "api", Pattern: `(#\s*)?api[-_ ].*`},
			{Category: "setup", Pattern: `(#\s*)?(setup|install(ation)?|getting[-_ ]started)\b.*`},
			{Category: "planning", Pattern: `(#\s*)?(plan(ning)?|roadmap|milestones?)[-_ .].*`},
			{Category: "guides", Pattern: `(#\s*)?(guide|tutorial|how[-_ ]?to)\b.*`},
		},
		DirectoryTemplates: map[string]string{
			"instructions": "{aiRoot}",
			"architecture": "{docsRoot}/architecture/",
			"features":     "{docsRoot}/features/",
			"api":          "{docsRoot}/api/",
			"setup":        "{docsRoot}/setup/",
			"planning":     "{docsRoot}/planning/",
			"guides":       "{docsRoot}/guides/",
		},
		PathVariables: map[string]string{
			"docsRoot": "docs",
			"aiRoot":   ".",
		},
		RootTemplate: "{docsRoot}/",
		Protected: []string{
			"README.md",
			"LICENSE.md",
			"CHANGELOG.md",
			"CONTRIBUTING.md",
			"CODE_OF_CONDUCT.md",
			"SECURITY.md",
		},
		ContentExcluded: []string{"instructions"},
		Thresholds: &Thresholds{
			Suggest:   0.7,
			AutoApply: 0.8,
		},
		AI: &AISettings{
			Enabled:           false,
			Provider:          "anthropic",
			FallbackThreshold: ai.DefaultFallbackThreshold,
		},
		StaleAfterDays: 180,
	}
}
