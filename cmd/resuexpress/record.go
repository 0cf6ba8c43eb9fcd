package main

import (
	"fmt"
	"strconv"

	"github.com/jonathan/resuexpress/internal/types"
	"github.com/jonathan/resuexpress/internal/wizard"
	"github.com/spf13/cobra"
)

func newRecordCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Edit experience, education and projects entries",
	}
	cmd.AddCommand(newRecordAddCmd(c), newRecordRemoveCmd(c), newRecordSetCmd(c))
	return cmd
}

func parseSection(name string) (types.Section, error) {
	section := types.Section(name)
	if !section.Valid() {
		return "", fmt.Errorf("unknown section %q (want experience, education or projects)", name)
	}
	return section, nil
}

func parseIndex(raw string) (int, error) {
	index, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("index must be an integer: %q", raw)
	}
	return index, nil
}

func newRecordAddCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "add <section>",
		Short: "Append an empty entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			section, err := parseSection(args[0])
			if err != nil {
				return err
			}
			return c.withSession(cmd.Context(), func(s *wizard.Session) error {
				index, err := s.AddRecord(section)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "added %s entry %d\n", section, index)
				return nil
			})
		},
	}
}

func newRecordRemoveCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <section> <index>",
		Short: "Remove an entry; the last entry of a section is cleared instead",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			section, err := parseSection(args[0])
			if err != nil {
				return err
			}
			index, err := parseIndex(args[1])
			if err != nil {
				return err
			}
			return c.withSession(cmd.Context(), func(s *wizard.Session) error {
				if err := s.RemoveRecord(section, index); err != nil {
					return err
				}
				remaining := len(s.Snapshot().Records(section))
				fmt.Fprintf(cmd.OutOrStdout(), "removed %s entry %d (%d remaining)\n", section, index, remaining)
				return nil
			})
		},
	}
}

func newRecordSetCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "set <section> <index> <field> <value>",
		Short: "Set one field of an entry",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			section, err := parseSection(args[0])
			if err != nil {
				return err
			}
			index, err := parseIndex(args[1])
			if err != nil {
				return err
			}
			return c.withSession(cmd.Context(), func(s *wizard.Session) error {
				if err := s.UpdateRecordField(section, index, args[2], args[3]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s[%d].%s updated\n", section, index, args[2])
				return nil
			})
		},
	}
}
