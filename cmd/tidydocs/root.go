package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string

	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:           "tidydocs",
		Short:         "Keep markdown documentation where it belongs",
		Long: `tidydocs classifies the markdown documents in a project by filename and
content patterns, compares where each one lives against the configured
layout, and suggests or executes the moves that bring the tree in line.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	rootCmd.AddCommand(newOrganizeCommand(ctx))
	rootCmd.AddCommand(newHealthCommand(ctx))
	rootCmd.AddCommand(newMCPCommand())
	rootCmd.AddCommand(newAuthCommand())
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}
