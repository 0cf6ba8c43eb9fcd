package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/resuexpress/internal/wizard"
	"github.com/spf13/cobra"
)

func newExportCmd(c *cli) *cobra.Command {
	var (
		format string
		dir    string
		out    string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a standalone HTML or PDF résumé",
		Long: "Assemble the selected template into a standalone document named " +
			"Resuexpress_Resume_<name>_<template>.<ext>. PDF export needs Chrome or Chromium.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format != "html" && format != "pdf" {
				return fmt.Errorf("unknown format %q (want html or pdf)", format)
			}
			return c.withSession(cmd.Context(), func(s *wizard.Session) error {
				var (
					name string
					body []byte
				)
				if format == "pdf" {
					art, pdf, err := s.ExportPDF(cmd.Context())
					if err != nil {
						return err
					}
					name, body = art.FilenameFor("pdf"), pdf
				} else {
					art, err := s.Export()
					if err != nil {
						return err
					}
					name, body = art.Filename, art.Body
				}

				target := out
				if target == "" {
					target = filepath.Join(dir, name)
				}
				if err := os.WriteFile(target, body, 0644); err != nil {
					return fmt.Errorf("failed to write export: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "exported %s\n", target)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "html", "Export format: html or pdf")
	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "Directory the export is written to")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Exact output path, overriding --dir and the generated name")
	return cmd
}
