package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/timekeeper/internal/cli/formatter"
	"github.com/alexanderramin/timekeeper/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newWatchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Show a live timer for the open session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := app.requireUser()
			if err != nil {
				return err
			}
			view, err := app.Tracker.Status(cmd.Context(), app.project(), user)
			if err != nil {
				return err
			}
			if !view.ClockedIn {
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatStatus(user, view, app.now()))
				return nil
			}

			model := newWatchModel(app.project(), user, *view.Since, app.now)
			p := tea.NewProgram(model,
				tea.WithContext(cmd.Context()),
				tea.WithInput(app.input()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			_, err = p.Run()
			return err
		},
	}
}

type watchKeyMap struct {
	Quit key.Binding
}

func defaultWatchKeyMap() watchKeyMap {
	return watchKeyMap{
		Quit: key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// watchTickMsg refreshes the elapsed time.
type watchTickMsg time.Time

func watchTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return watchTickMsg(t)
	})
}

// watchModel renders the elapsed time of an open session. It never writes;
// clocking out is left to the out command.
type watchModel struct {
	project string
	user    string
	record  domain.UserRecord
	now     func() time.Time

	elapsed  time.Duration
	spinner  spinner.Model
	keys     watchKeyMap
	quitting bool
}

func newWatchModel(project, user, start string, now func() time.Time) watchModel {
	if now == nil {
		now = time.Now
	}
	m := watchModel{
		project: project,
		user:    user,
		record:  domain.UserRecord{ActiveSession: &start},
		now:     now,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(formatter.StylePurple),
		),
		keys: defaultWatchKeyMap(),
	}
	m.elapsed = m.record.Elapsed(now())
	return m
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, watchTick())
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
	case watchTickMsg:
		m.elapsed = m.record.Elapsed(m.now())
		return m, watchTick()
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m watchModel) View() string {
	start := *m.record.ActiveSession
	if m.quitting {
		return fmt.Sprintf("Still clocked in since %s (%s).\n", start, formatter.FormatElapsed(m.elapsed))
	}

	var b strings.Builder
	b.WriteString(formatter.Header(fmt.Sprintf("%s on %s", m.user, m.project)))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%s %s\n", m.spinner.View(), formatter.Bold(formatter.FormatElapsed(m.elapsed)))
	b.WriteString(formatter.Dim("Started at " + start))
	b.WriteString("\n\n")
	b.WriteString(formatter.Dim(m.keys.Quit.Help().Key + " " + m.keys.Quit.Help().Desc))
	b.WriteString("\n")
	return b.String()
}
