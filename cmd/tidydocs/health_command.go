package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"tidydocs/internal/logging"
	"tidydocs/internal/organizer"
	"tidydocs/internal/report"
)

func newHealthCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "health [dir]",
		Short: "Check the health of a documentation tree",
		Long: `Survey the markdown documents under a directory without modifying
anything: placement, orphaned documents, staleness, and naming issues,
condensed into a 0-100 score.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := ctx.resolveRoot(args)

			cfg, err := ctx.loadConfig(root)
			if err != nil {
				return err
			}

			engine := organizer.New(cfg, root, nil, logging.GetDefault())
			rep, err := engine.HealthCheck()
			if err != nil {
				return err
			}

			if jsonOutput {
				data, err := json.MarshalIndent(rep, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}

			fmt.Fprint(cmd.OutOrStdout(), report.NewRenderer().Health(rep))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the report as JSON")
	return cmd
}
