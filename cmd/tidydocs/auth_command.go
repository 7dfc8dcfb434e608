package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tidydocs/internal/ai"
)

func newAuthCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage AI provider credentials",
		Long: `Store, inspect, and remove API keys for the AI fallback in the OS
credential store. Environment variables (ANTHROPIC_API_KEY, OPENAI_API_KEY)
always take precedence over stored keys.`,
	}

	cmd.AddCommand(newAuthSetCommand())
	cmd.AddCommand(newAuthStatusCommand())
	cmd.AddCommand(newAuthDeleteCommand())
	return cmd
}

func newAuthSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set <provider>",
		Short: "Store an API key for a provider",
		Long: `Read an API key from stdin and store it in the OS credential store.
The key is read from stdin rather than taken as an argument so it never
lands in shell history.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			provider := args[0]

			fmt.Fprintf(cmd.OutOrStdout(), "Enter API key for %s: ", provider)
			scanner := bufio.NewScanner(cmd.InOrStdin())
			if !scanner.Scan() {
				return fmt.Errorf("no key provided")
			}
			key := strings.TrimSpace(scanner.Text())
			if key == "" {
				return fmt.Errorf("no key provided")
			}

			if err := ai.StoreAPIKey(provider, key); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Stored API key for %s.\n", provider)
			return nil
		},
	}
}

func newAuthStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status <provider>",
		Short: "Report whether a key is available for a provider",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			provider := args[0]
			if ai.HasAPIKey(provider) {
				fmt.Fprintf(cmd.OutOrStdout(), "API key available for %s.\n", provider)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "No API key found for %s.\n", provider)
			}
			return nil
		},
	}
}

func newAuthDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <provider>",
		Short: "Remove a stored API key for a provider",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			provider := args[0]
			if err := ai.DeleteAPIKey(provider); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed API key for %s.\n", provider)
			return nil
		},
	}
}
