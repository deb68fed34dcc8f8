package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/timekeeper/internal/domain"
	"github.com/alexanderramin/timekeeper/internal/service"
	"github.com/alexanderramin/timekeeper/internal/store"
)

// FormatClockIn renders the outcome of a clock-in.
func FormatClockIn(res *service.ClockInResult) string {
	if res.AlreadyActive {
		return fmt.Sprintf("%s\nStarted at: %s\n",
			StyleYellow.Render("Already clocked in."), res.Start)
	}
	return fmt.Sprintf("%s %s %s\n",
		StyleGreen.Render("Clocked in at"), Bold(res.Start), Dim("("+res.User+" on "+res.Project+")"))
}

// FormatClockOut renders the outcome of a clock-out.
func FormatClockOut(res *service.ClockOutResult) string {
	if res.NotClockedIn {
		return StyleYellow.Render("You are not currently clocked in.") + "\n"
	}
	return fmt.Sprintf("%s %s\nSession length: %s minutes %s\n",
		StyleGreen.Render("Clocked out at"), Bold(res.Session.End),
		Number(res.Session.DurationMinutes), Dim("("+FormatMinutes(res.Session.DurationMinutes)+")"))
}

// FormatStatus renders whether user is clocked in. now is used for the
// relative "ago" hint only.
func FormatStatus(user string, view *domain.StatusView, now time.Time) string {
	if !view.ClockedIn || view.Since == nil {
		return fmt.Sprintf("Status for %s: %s\n", Bold(user), ClockIndicator(false))
	}
	line := fmt.Sprintf("Status for %s: %s\nStarted at: %s", Bold(user), ClockIndicator(true), *view.Since)
	if start, err := domain.ParseTimestamp(*view.Since); err == nil {
		line += " " + Dim("("+SinceFrom(start, now)+")")
	}
	return line + "\n"
}

// FormatSummary renders the all-time totals and the most recent sessions.
// Total minutes is the sum of the stored per-session values, so their
// rounding carries into it; Number only trims float noise from that sum
// (0.1+0.2 prints as 0.3), it never re-derives the total from timestamps.
func FormatSummary(user string, sum *domain.Summary) string {
	if sum.Count == 0 {
		return fmt.Sprintf("No sessions logged yet for %s.\n", user)
	}

	totals := fmt.Sprintf("Total sessions: %d\nTotal minutes:  %s\nTotal hours:    %s",
		sum.Count, Number(sum.TotalMinutes), Number(sum.TotalHours))

	var b strings.Builder
	b.WriteString(RenderBox("Dev Time Summary for "+user, totals))
	b.WriteString("\n\n")
	b.WriteString(Header(fmt.Sprintf("Last %d sessions", domain.SummarySessionLimit)))
	b.WriteString("\n")
	b.WriteString(sessionTable(sum.LastSessions))
	return b.String()
}

// FormatReport renders a windowed report.
func FormatReport(user string, r *domain.Report) string {
	if r.Logged == 0 {
		return fmt.Sprintf("No sessions logged yet for %s.\n", user)
	}
	if r.Count == 0 {
		return fmt.Sprintf("No sessions for %s in the last %d days.\n", user, r.Days)
	}

	totals := fmt.Sprintf("Sessions:      %d\nTotal minutes: %s\nTotal hours:   %s",
		r.Count, Number(r.TotalMinutes), Number(r.TotalHours))

	var b strings.Builder
	b.WriteString(RenderBox(r.Label+" Report for "+user, totals))
	b.WriteString("\n\n")
	b.WriteString(Header("Sessions"))
	b.WriteString("\n")
	b.WriteString(sessionTable(r.Sessions))
	return b.String()
}

// FormatUsers renders per-user totals for one project.
func FormatUsers(project string, totals []domain.UserTotal) string {
	if len(totals) == 0 {
		return "No users found yet.\n"
	}

	var all float64
	for _, t := range totals {
		all += t.TotalMinutes
	}

	rows := make([][]string, 0, len(totals))
	for _, t := range totals {
		rows = append(rows, []string{
			Bold(t.Username),
			strconv.Itoa(t.Sessions),
			Number(t.TotalMinutes),
			Number(t.TotalHours),
			RenderShare(t.TotalMinutes, all, 10),
			ClockIndicator(t.ClockedIn),
		})
	}

	return Header("All users: "+project) + "\n" +
		RenderTable([]string{"USER", "SESSIONS", "MINUTES", "HOURS", "SHARE", "STATUS"}, rows)
}

// FormatProjects renders the project log files found in the data directory.
func FormatProjects(dir string, files []store.ProjectFile) string {
	if len(files) == 0 {
		return fmt.Sprintf("No project logs in %s.\n", dir)
	}

	rows := make([][]string, 0, len(files))
	for _, f := range files {
		rows = append(rows, []string{Bold(f.Name), Dim(f.Slug), strconv.Itoa(f.Users)})
	}
	return Header("Projects") + "\n" + RenderTable([]string{"PROJECT", "SLUG", "USERS"}, rows)
}

// FormatExport renders what an archive export wrote, followed by the
// per-user totals read back from the archive.
func FormatExport(path string, res *service.ExportResult) string {
	line := fmt.Sprintf("Exported %d sessions (%d open) from %d projects to %s\n",
		res.Sessions, res.ActiveSessions, res.Projects, path)
	if len(res.Totals) == 0 {
		return line
	}

	rows := make([][]string, 0, len(res.Totals))
	for _, t := range res.Totals {
		open := ""
		if t.ActiveSince != "" {
			open = StyleGreen.Render("since " + t.ActiveSince)
		}
		rows = append(rows, []string{
			Bold(t.Project),
			Dim(t.Slug),
			t.Username,
			strconv.Itoa(t.Sessions),
			Number(t.TotalMinutes),
			open,
		})
	}
	return line + "\n" + Header("Archive totals") + "\n" +
		RenderTable([]string{"PROJECT", "SLUG", "USER", "SESSIONS", "MIN", "OPEN"}, rows)
}

func sessionTable(sessions []domain.Session) string {
	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		rows = append(rows, []string{
			s.Start,
			s.End,
			Number(s.DurationMinutes),
			Dim(FormatMinutes(s.DurationMinutes)),
		})
	}
	return RenderTable([]string{"START", "END", "MIN", ""}, rows)
}
