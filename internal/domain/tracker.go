package domain

import (
	"fmt"
	"time"
)

// SummarySessionLimit is how many recent sessions a Summary carries.
const SummarySessionLimit = 5

// StatusView reports whether a user has an open session.
type StatusView struct {
	ClockedIn bool
	Since     *string
}

// Summary aggregates every stored session of a user.
type Summary struct {
	Count        int
	TotalMinutes float64
	TotalHours   float64
	LastSessions []Session
}

// Report aggregates the sessions that ended inside a trailing window.
type Report struct {
	Days         int
	Label        string
	Cutoff       time.Time
	Count        int
	TotalMinutes float64
	TotalHours   float64
	Sessions     []Session

	// Logged counts every stored session, inside the window or not.
	Logged int
}

// ClockIn opens a session at now and returns the stored start timestamp.
// If a session is already open the record is left as is and the existing
// start is returned together with ErrAlreadyClockedIn.
func (u *UserRecord) ClockIn(now time.Time) (string, error) {
	if u.ActiveSession != nil {
		return *u.ActiveSession, ErrAlreadyClockedIn
	}
	start := FormatTimestamp(now)
	u.ActiveSession = &start
	return start, nil
}

// ClockOut closes the open session at now, appends it and returns it.
// An end before the start (clock set back, DST fall-back on offset-less
// timestamps) is recorded as a zero-minute session.
func (u *UserRecord) ClockOut(now time.Time) (Session, error) {
	if u.ActiveSession == nil {
		return Session{}, ErrNotClockedIn
	}
	start := *u.ActiveSession
	startAt, err := ParseTimestamp(start)
	if err != nil {
		return Session{}, fmt.Errorf("reading active session start: %w", err)
	}

	end := FormatTimestamp(now)
	endAt, err := ParseTimestamp(end)
	if err != nil {
		return Session{}, fmt.Errorf("reading session end: %w", err)
	}

	s := Session{
		Start:           start,
		End:             end,
		DurationMinutes: RoundMinutes(max(endAt.Sub(startAt), 0)),
	}
	u.Sessions = append(u.Sessions, s)
	u.ActiveSession = nil
	return s, nil
}

// Status reports the open session, if any.
func (u *UserRecord) Status() StatusView {
	if u.ActiveSession == nil {
		return StatusView{}
	}
	since := *u.ActiveSession
	return StatusView{ClockedIn: true, Since: &since}
}

// Summary totals every stored session. TotalMinutes is the sum of the
// stored per-session minutes, never re-derived from start and end.
func (u *UserRecord) Summary() Summary {
	total := SumMinutes(u.Sessions)
	from := len(u.Sessions) - SummarySessionLimit
	if from < 0 {
		from = 0
	}
	last := make([]Session, len(u.Sessions)-from)
	copy(last, u.Sessions[from:])

	return Summary{
		Count:        len(u.Sessions),
		TotalMinutes: total,
		TotalHours:   MinutesToHours(total),
		LastSessions: last,
	}
}

// Report keeps the sessions whose end (or start, when end is missing) is at
// or after now minus days calendar days. Sessions with unreadable
// timestamps are left out.
func (u *UserRecord) Report(days int, now time.Time) Report {
	cutoff := now.AddDate(0, 0, -days)

	filtered := make([]Session, 0, len(u.Sessions))
	for _, s := range u.Sessions {
		at, err := ParseTimestamp(CoalesceStr(s.End, s.Start))
		if err != nil {
			continue
		}
		if !at.Before(cutoff) {
			filtered = append(filtered, s)
		}
	}

	total := SumMinutes(filtered)
	return Report{
		Days:         days,
		Label:        ReportLabel(days),
		Cutoff:       cutoff,
		Count:        len(filtered),
		TotalMinutes: total,
		TotalHours:   MinutesToHours(total),
		Sessions:     filtered,
		Logged:       len(u.Sessions),
	}
}

// ReportLabel names a report window.
func ReportLabel(days int) string {
	switch days {
	case 1:
		return "Last 24 hours"
	case 7:
		return "Last 7 days"
	case 30:
		return "Last 30 days"
	default:
		return fmt.Sprintf("Last %d days", days)
	}
}
