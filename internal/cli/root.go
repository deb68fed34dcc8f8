package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alexanderramin/timekeeper/internal/config"
	"github.com/alexanderramin/timekeeper/internal/domain"
	"github.com/alexanderramin/timekeeper/internal/service"
	"github.com/alexanderramin/timekeeper/internal/store"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// App holds the resolved settings and services used by CLI commands.
// Services are built in the root PersistentPreRunE once flags are parsed.
type App struct {
	Config   config.Config
	Observer service.UseCaseObserver

	// Now overrides the clock; nil means time.Now.
	Now func() time.Time

	// In feeds the line-based menu; nil means os.Stdin.
	In io.Reader

	// IsInteractive reports whether stdin is a terminal. Nil means never.
	IsInteractive func() bool

	Tracker service.TrackerService
	logs    *store.Store
}

// NewRootCmd creates the top-level "timekeeper" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "timekeeper",
		Short: "Clock in and out of projects and report the time spent",
		Long: `timekeeper keeps one JSON log per project in a data directory and
records clock-in/clock-out sessions per user.

Run without a subcommand in a terminal to open the interactive menu.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.resolve(cmd.Flags(), cmd.ErrOrStderr())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return cmd.Help()
			}
			return runMenu(cmd, app)
		},
	}

	flags := root.PersistentFlags()
	flags.String("data-dir", "", "Directory holding the <project>_time_log.json files")
	flags.StringP("project", "p", "", fmt.Sprintf("Project name (default %q)", domain.DefaultProjectName))
	flags.StringP("user", "u", "", "Username")
	flags.String("config", "", "YAML config file (default ~/.timekeeper/config.yaml)")

	root.AddCommand(
		newClockInCmd(app),
		newClockOutCmd(app),
		newStatusCmd(app),
		newSummaryCmd(app),
		newReportCmd(app),
		newUsersCmd(app),
		newProjectsCmd(app),
		newMenuCmd(app),
		newWatchCmd(app),
		newExportCmd(app),
	)

	return root
}

// resolve layers command-line flags over the loaded config and wires the
// store and tracker service. Use-case logging goes to stderr.
func (a *App) resolve(flags *pflag.FlagSet, stderr io.Writer) error {
	if flags.Changed("config") {
		path, _ := flags.GetString("config")
		cfg, err := config.LoadConfig(path)
		if err != nil {
			return err
		}
		a.Config = cfg
	}
	for name, dst := range map[string]*string{
		"data-dir": &a.Config.DataDir,
		"project":  &a.Config.Project,
		"user":     &a.Config.User,
	} {
		if v, _ := flags.GetString(name); v != "" {
			*dst = v
		}
	}

	if a.Config.LogUseCases && a.Observer == nil {
		a.Observer = service.NewLogUseCaseObserver(stderr)
	}

	logs, err := store.New(a.Config.DataDir)
	if err != nil {
		return fmt.Errorf("resolving data directory: %w", err)
	}
	a.logs = logs
	a.Tracker = service.NewTrackerService(logs, a.Now, a.Observer)
	return nil
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) input() io.Reader {
	if a.In != nil {
		return a.In
	}
	return os.Stdin
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// project returns the configured project name, or the default one.
func (a *App) project() string {
	return domain.ProjectNameOrDefault(a.Config.Project)
}

// requireUser returns the configured username or a hint on how to set one.
func (a *App) requireUser() (string, error) {
	if a.Config.User == "" {
		return "", fmt.Errorf("%w: pass --user or set %s", service.ErrEmptyUser, config.EnvUser)
	}
	return a.Config.User, nil
}
