package cli

import (
	"fmt"

	"github.com/alexanderramin/timekeeper/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newUsersCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "Show every user's totals for the current project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			totals, err := app.Tracker.Users(cmd.Context(), app.project())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatUsers(app.project(), totals))
			return nil
		},
	}
}

func newProjectsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "projects",
		Short: "List the project logs in the data directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := app.Tracker.Projects(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatProjects(app.logs.BaseDir(), files))
			return nil
		},
	}
}
