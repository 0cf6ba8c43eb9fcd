package main

import (
	"github.com/jonathan/resuexpress/internal/observability"
	"github.com/jonathan/resuexpress/internal/wizard"
	"github.com/spf13/cobra"
)

func newStatusCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the document, the current step and the templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withSession(cmd.Context(), func(s *wizard.Session) error {
				p := observability.NewPrinter(cmd.OutOrStdout())
				p.PrintDocument(s.Snapshot())
				p.PrintStep(stepInfo(s.StepView()))
				printTemplates(p, s)
				return nil
			})
		},
	}
}
