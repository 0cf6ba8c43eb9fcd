package main

import (
	"fmt"

	"github.com/jonathan/resuexpress/internal/wizard"
	"github.com/spf13/cobra"
)

func newSetCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "set <field> <value>",
		Short: "Set a personal detail or skills field",
		Long: "Set one of name, email, phone, linkedin, summary or skills. Other field names " +
			"are accepted for the current invocation only and are not saved.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSession(cmd.Context(), func(s *wizard.Session) error {
				if err := s.SetField(args[0], args[1]); err != nil {
					return fmt.Errorf("set %s: %w", args[0], err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s updated\n", args[0])
				return nil
			})
		},
	}
}
