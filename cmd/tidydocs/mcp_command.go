package main

import (
	"github.com/spf13/cobra"

	"tidydocs/internal/logging"
	"tidydocs/internal/mcp"
)

func newMCPCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Run the MCP server on stdio",
		Long: `Serve the organization pipeline over the Model Context Protocol on
stdin/stdout, for use by AI assistants. Exposes the analyze_docs,
apply_moves, and health_check tools.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return mcp.NewServer(logging.GetDefault()).Start()
		},
	}
}
