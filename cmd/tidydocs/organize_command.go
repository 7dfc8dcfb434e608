package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tidydocs/internal/ai"
	"tidydocs/internal/config"
	"tidydocs/internal/logging"
	"tidydocs/internal/organizer"
	"tidydocs/internal/report"
	"tidydocs/internal/tui"
)

func newOrganizeCommand(ctx *commandContext) *cobra.Command {
	var (
		apply         bool
		dryRun        bool
		useAI         bool
		review        bool
		minConfidence float64
	)

	cmd := &cobra.Command{
		Use:   "organize [dir]",
		Short: "Analyze a documentation tree and optionally move misplaced documents",
		Long: `Analyze the markdown documents under a directory (default: the current
directory) and report which ones should move. Without --apply nothing is
modified. With --review, suggestions are confirmed interactively before
they run.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := ctx.resolveRoot(args)

			cfg, err := ctx.loadConfig(root)
			if err != nil {
				return err
			}

			logger := logging.GetDefault()

			enhancer, err := buildEnhancer(cfg, useAI, logger)
			if err != nil {
				return err
			}

			engine := organizer.New(cfg, root, enhancer, logger)
			analysis, err := engine.GenerateSuggestions(cmd.Context())
			if err != nil {
				return err
			}

			renderer := report.NewRenderer()
			fmt.Fprint(cmd.OutOrStdout(), renderer.Analysis(analysis))

			reviewed := false
			if review {
				if len(analysis.Suggestions) == 0 {
					return nil
				}
				selected, confirmed, err := tui.RunReview(root, analysis.Suggestions)
				if err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled; nothing was moved.")
					return nil
				}
				engine.SetSuggestions(selected)
				apply = true
				reviewed = true
			}

			if !apply && !dryRun {
				return nil
			}

			applied, err := engine.ApplyMoves(cmd.Context(), organizer.ApplyOptions{
				DryRun:        dryRun,
				MinConfidence: minConfidence,
				// Reviewed suggestions were accepted one by one; the
				// auto-apply threshold must not second-guess the user.
				SkipThresholdFilter: reviewed,
			})
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), renderer.Apply(applied))
			return nil
		},
	}

	cmd.Flags().BoolVar(&apply, "apply", false, "Execute the suggested moves that meet the auto-apply threshold")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show which moves would execute without touching the filesystem")
	cmd.Flags().BoolVar(&useAI, "ai", false, "Consult the configured AI provider for low-confidence documents")
	cmd.Flags().BoolVar(&review, "review", false, "Review and confirm suggestions interactively before applying")
	cmd.Flags().Float64Var(&minConfidence, "min-confidence", 0, "Override the auto-apply confidence threshold (0-1)")

	return cmd
}

// buildEnhancer constructs the AI fallback when the flag or the configuration
// asks for it. A missing credential is a startup error here, not a silent
// downgrade: the user explicitly asked for AI.
func buildEnhancer(cfg *config.Config, useAI bool, logger *logging.AppLogger) (*ai.Enhancer, error) {
	if !useAI && !cfg.AI.Enabled {
		return nil, nil
	}

	classifier, err := ai.NewClassifier(ai.Config{
		Provider: cfg.AI.Provider,
		Model:    cfg.AI.Model,
	})
	if err != nil {
		return nil, fmt.Errorf("AI fallback requested but unavailable: %w", err)
	}
	return ai.NewEnhancer(classifier, cfg.AI.FallbackThreshold, logger), nil
}
