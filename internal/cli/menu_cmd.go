package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/alexanderramin/timekeeper/internal/cli/formatter"
	"github.com/alexanderramin/timekeeper/internal/domain"
	"github.com/alexanderramin/timekeeper/internal/service"
	"github.com/alexanderramin/timekeeper/internal/store"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

const (
	newProjectOption = "+ New project"
	newUserOption    = "+ New user"
)

const (
	actionClockIn = iota
	actionClockOut
	actionStatus
	actionSummary
	actionReports
	actionAllUsers
	actionSwitchUser
	actionSwitchProject
	actionQuit
)

var mainMenuOptions = []string{
	"Clock in",
	"Clock out",
	"Status",
	"Summary",
	"Reports",
	"All users (this project)",
	"Switch user",
	"Switch project",
	"Quit",
}

var reportWindows = []int{1, 7, 30}

func newMenuCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Open the interactive menu",
		Long: `Open the interactive menu. In a terminal the menu uses selectable
forms; otherwise it reads numbered choices from stdin, one per line.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMenu(cmd, app)
		},
	}
}

func runMenu(cmd *cobra.Command, app *App) error {
	var p menuPrompter
	if app.interactive() {
		p = huhPrompter{}
	} else {
		p = newLinePrompter(app.input(), cmd.OutOrStdout())
	}

	m := &menu{
		tracker: app.Tracker,
		prompt:  p,
		out:     cmd.OutOrStdout(),
		app:     app,
		user:    app.Config.User,
	}
	if app.Config.Project != "" {
		m.project = app.project()
		m.projectLabel = m.project
	}
	return m.run(cmd.Context())
}

// menu is the interactive loop. It only prompts and prints; every state
// change goes through the tracker service.
type menu struct {
	tracker service.TrackerService
	prompt  menuPrompter
	out     io.Writer
	app     *App

	project      string
	projectLabel string
	user         string
}

func (m *menu) run(ctx context.Context) error {
	err := m.loop(ctx)
	if isMenuExit(err) {
		fmt.Fprintln(m.out, "\nGoodbye.")
		return nil
	}
	return err
}

func (m *menu) loop(ctx context.Context) error {
	if m.project == "" {
		if err := m.chooseProject(ctx); err != nil {
			return err
		}
	}
	if m.user == "" {
		if err := m.chooseUser(ctx); err != nil {
			return err
		}
	}

	for {
		fmt.Fprintf(m.out, "\n%s\n", formatter.Header(fmt.Sprintf("Time Keeper: %s / %s", m.projectLabel, m.user)))
		choice, err := m.prompt.Select("Main menu", mainMenuOptions)
		if err != nil {
			return err
		}

		switch choice {
		case actionClockIn:
			res, err := m.tracker.ClockIn(ctx, m.project, m.user)
			if err != nil {
				return err
			}
			m.print(formatter.FormatClockIn(res))
		case actionClockOut:
			res, err := m.tracker.ClockOut(ctx, m.project, m.user)
			if err != nil {
				return err
			}
			m.print(formatter.FormatClockOut(res))
		case actionStatus:
			view, err := m.tracker.Status(ctx, m.project, m.user)
			if err != nil {
				return err
			}
			m.print(formatter.FormatStatus(m.user, view, m.app.now()))
		case actionSummary:
			sum, err := m.tracker.Summary(ctx, m.project, m.user)
			if err != nil {
				return err
			}
			m.print(formatter.FormatSummary(m.user, sum))
		case actionReports:
			if err := m.reports(ctx); err != nil {
				return err
			}
		case actionAllUsers:
			totals, err := m.tracker.Users(ctx, m.project)
			if err != nil {
				return err
			}
			m.print(formatter.FormatUsers(m.projectLabel, totals))
		case actionSwitchUser:
			if err := m.chooseUser(ctx); err != nil {
				return err
			}
		case actionSwitchProject:
			if err := m.chooseProject(ctx); err != nil {
				return err
			}
			if err := m.chooseUser(ctx); err != nil {
				return err
			}
		case actionQuit:
			return errMenuQuit
		}
	}
}

// reports runs the report sub-menu until the user goes back.
func (m *menu) reports(ctx context.Context) error {
	options := make([]string, 0, len(reportWindows)+1)
	for _, days := range reportWindows {
		options = append(options, domain.ReportLabel(days))
	}
	options = append(options, "Back to main menu")

	for {
		choice, err := m.prompt.Select(fmt.Sprintf("Reports for %s", m.user), options)
		if err != nil {
			return err
		}
		if choice == len(reportWindows) {
			return nil
		}
		r, err := m.tracker.Report(ctx, m.project, m.user, reportWindows[choice])
		if err != nil {
			return err
		}
		m.print(formatter.FormatReport(m.user, r))
	}
}

// chooseProject offers the existing project logs plus a new name. Existing
// logs are addressed by slug so the file found on disk is the one reused.
func (m *menu) chooseProject(ctx context.Context) error {
	files, err := m.tracker.Projects(ctx)
	if err != nil {
		return err
	}

	if len(files) > 0 {
		options := make([]string, 0, len(files)+1)
		for _, f := range files {
			options = append(options, f.Name)
		}
		options = append(options, newProjectOption)

		choice, err := m.prompt.Select("Select a project", options)
		if err != nil {
			return err
		}
		if choice < len(files) {
			m.project = files[choice].Slug
			m.projectLabel = files[choice].Name
			return nil
		}
	}

	name, err := m.prompt.Input(fmt.Sprintf("Project name (blank for %s)", domain.DefaultProjectName))
	if err != nil {
		return err
	}
	m.project = domain.ProjectNameOrDefault(name)
	m.projectLabel = m.project

	exists, err := m.tracker.ProjectExists(ctx, m.project)
	if err != nil {
		return err
	}
	if exists {
		fmt.Fprintf(m.out, "Opening the existing log %s.\n", store.LogFileName(m.project))
	}
	return nil
}

// chooseUser offers the project's known users plus a new name.
func (m *menu) chooseUser(ctx context.Context) error {
	totals, err := m.tracker.Users(ctx, m.project)
	if err != nil {
		return err
	}

	if len(totals) > 0 {
		options := make([]string, 0, len(totals)+1)
		for _, t := range totals {
			options = append(options, t.Username)
		}
		options = append(options, newUserOption)

		choice, err := m.prompt.Select("Select a user", options)
		if err != nil {
			return err
		}
		if choice < len(totals) {
			m.user = totals[choice].Username
			return nil
		}
	}

	for {
		name, err := m.prompt.Input("Username")
		if err != nil {
			return err
		}
		if name != "" {
			m.user = name
			return nil
		}
		fmt.Fprintln(m.out, "Username cannot be empty.")
	}
}

func (m *menu) print(s string) {
	fmt.Fprint(m.out, "\n"+s)
}

var errMenuQuit = errors.New("menu quit")

// isMenuExit reports whether err ends the menu normally: the quit action,
// end of input, or an aborted form.
func isMenuExit(err error) bool {
	return errors.Is(err, errMenuQuit) || errors.Is(err, io.EOF) || errors.Is(err, huh.ErrUserAborted)
}
