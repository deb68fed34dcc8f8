package cli

import (
	"fmt"

	"github.com/alexanderramin/timekeeper/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newClockInCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "in",
		Aliases: []string{"clock-in"},
		Short:   "Start a session for the current user",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := app.requireUser()
			if err != nil {
				return err
			}
			res, err := app.Tracker.ClockIn(cmd.Context(), app.project(), user)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatClockIn(res))
			return nil
		},
	}
}

func newClockOutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "out",
		Aliases: []string{"clock-out"},
		Short:   "Close the open session for the current user",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := app.requireUser()
			if err != nil {
				return err
			}
			res, err := app.Tracker.ClockOut(cmd.Context(), app.project(), user)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatClockOut(res))
			return nil
		},
	}
}
