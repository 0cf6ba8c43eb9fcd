package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jonathan/resuexpress/internal/wizard"
	"github.com/spf13/cobra"
)

func newRenderCmd(c *cli) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print the live preview markup of the selected template",
		Long: "Render the document with the selected template exactly as the preview pane " +
			"shows it. An empty name previews the built-in example résumé.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withSession(cmd.Context(), func(s *wizard.Session) error {
				html := s.Preview().HTML
				if out == "" {
					_, err := io.WriteString(cmd.OutOrStdout(), html+"\n")
					return err
				}
				if err := os.WriteFile(out, []byte(html), 0644); err != nil {
					return fmt.Errorf("failed to write preview: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "preview written to %s\n", out)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write the markup to a file instead of stdout")
	return cmd
}
