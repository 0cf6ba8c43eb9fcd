package main

import (
	"errors"

	"github.com/jonathan/resuexpress/internal/navigation"
	"github.com/jonathan/resuexpress/internal/observability"
	"github.com/jonathan/resuexpress/internal/wizard"
	"github.com/spf13/cobra"
)

func newStepCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "step",
		Short: "Move between wizard steps",
	}
	cmd.AddCommand(
		newStepMoveCmd(c, "next", "Go to the next step", 1),
		newStepMoveCmd(c, "prev", "Go back one step", -1),
	)
	return cmd
}

func newStepMoveCmd(c *cli, use, short string, direction int) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printer := observability.NewPrinter(cmd.OutOrStdout())
			return c.withSession(cmd.Context(), func(s *wizard.Session) error {
				view, err := s.Advance(direction)
				var verr *navigation.ValidationError
				if errors.As(err, &verr) {
					printer.PrintNotice(verr.Notice)
				}
				if err != nil {
					return err
				}
				printer.PrintStep(stepInfo(view))
				return nil
			})
		},
	}
}

func stepInfo(v navigation.StepView) observability.StepInfo {
	return observability.StepInfo{
		Step:       v.Step,
		TotalSteps: v.TotalSteps,
		Title:      v.Title,
		Progress:   v.Progress,
	}
}
