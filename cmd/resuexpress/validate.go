package main

import (
	"fmt"
	"os"

	"github.com/jonathan/resuexpress/internal/document"
	"github.com/jonathan/resuexpress/internal/observability"
	"github.com/spf13/cobra"
)

func newValidateCmd(_ *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a saved document against the document schema",
		Long: "Run a saved document through the same checks and repairs applied when the " +
			"wizard loads it, and show the document the wizard would start from.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read document: %w", err)
			}
			doc, err := document.Hydrate(raw)
			if err != nil {
				return fmt.Errorf("%s is not usable: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is valid\n", args[0])
			observability.NewPrinter(cmd.OutOrStdout()).PrintDocument(doc)
			return nil
		},
	}
}
