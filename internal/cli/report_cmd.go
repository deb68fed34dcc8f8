package cli

import (
	"fmt"

	"github.com/alexanderramin/timekeeper/internal/cli/formatter"
	"github.com/spf13/cobra"
)

// defaultReportDays is the window used when --days is not given.
const defaultReportDays = 7

func newSummaryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show all-time totals and the last sessions of the current user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := app.requireUser()
			if err != nil {
				return err
			}
			sum, err := app.Tracker.Summary(cmd.Context(), app.project(), user)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSummary(user, sum))
			return nil
		},
	}
}

func newReportCmd(app *App) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show the sessions that ended in the last N days",
		Example: `  timekeeper report -u ada --days 1
  timekeeper report -u ada --days 30`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := app.requireUser()
			if err != nil {
				return err
			}
			r, err := app.Tracker.Report(cmd.Context(), app.project(), user, days)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatReport(user, r))
			return nil
		},
	}

	cmd.Flags().IntVarP(&days, "days", "d", defaultReportDays, "Window size in days")
	return cmd
}
