package cli

import (
	"fmt"

	"github.com/alexanderramin/timekeeper/internal/cli/formatter"
	"github.com/alexanderramin/timekeeper/internal/db"
	"github.com/alexanderramin/timekeeper/internal/service"
	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Copy every project log into a SQLite database",
		Long: `Export replaces each project's rows in the SQLite database with the
current contents of its JSON log. The JSON files stay the source of truth.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := db.OpenDB(dbPath)
			if err != nil {
				return fmt.Errorf("opening archive: %w", err)
			}
			defer database.Close()

			svc := service.NewExportService(app.logs, db.NewSQLiteUnitOfWork(database), app.Now, app.Observer)
			res, err := svc.Export(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatExport(dbPath, res))
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path")
	_ = cmd.MarkFlagRequired("db")
	return cmd
}
