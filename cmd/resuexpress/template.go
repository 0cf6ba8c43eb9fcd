package main

import (
	"fmt"

	"github.com/jonathan/resuexpress/internal/observability"
	"github.com/jonathan/resuexpress/internal/wizard"
	"github.com/spf13/cobra"
)

func newTemplateCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "List or select résumé templates",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List templates, marking the selected one",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return c.withSession(cmd.Context(), func(s *wizard.Session) error {
					printTemplates(observability.NewPrinter(cmd.OutOrStdout()), s)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "select <key>",
			Short: "Select the template used for preview and export",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.withSession(cmd.Context(), func(s *wizard.Session) error {
					if err := s.SelectTemplate(args[0]); err != nil {
						return fmt.Errorf("select %s: %w", args[0], err)
					}
					fmt.Fprintf(cmd.OutOrStdout(), "selected %s (%s)\n", args[0], s.SelectedTemplate().DisplayName)
					return nil
				})
			},
		},
	)
	return cmd
}

func printTemplates(p *observability.Printer, s *wizard.Session) {
	templates := s.Templates()
	infos := make([]observability.TemplateInfo, 0, len(templates))
	for _, t := range templates {
		infos = append(infos, observability.TemplateInfo{Key: t.Key, DisplayName: t.DisplayName})
	}
	p.PrintTemplates(infos, s.SelectedTemplate().Key)
}
