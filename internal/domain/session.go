package domain

import (
	"encoding/json"
	"sort"
	"time"
)

// Session is one closed clock-in/clock-out interval as stored on disk.
// Start and End are kept as the stored strings so a load/save cycle never
// rewrites them.
type Session struct {
	Start           string  `json:"start"`
	End             string  `json:"end"`
	DurationMinutes float64 `json:"duration_minutes"`
}

// UserRecord holds one user's closed sessions and the start of the open one.
type UserRecord struct {
	Sessions      []Session `json:"sessions"`
	ActiveSession *string   `json:"active_session"`
}

// MarshalJSON always emits "sessions" as an array, never null.
func (u UserRecord) MarshalJSON() ([]byte, error) {
	type plain UserRecord
	p := plain(u)
	if p.Sessions == nil {
		p.Sessions = []Session{}
	}
	return json.Marshal(p)
}

// ProjectLog is the full content of one project's log file.
type ProjectLog struct {
	Project string                 `json:"project"`
	Users   map[string]*UserRecord `json:"users"`
}

// NewProjectLog returns an empty log for the named project.
func NewProjectLog(project string) *ProjectLog {
	return &ProjectLog{
		Project: project,
		Users:   make(map[string]*UserRecord),
	}
}

// NewUserRecord returns a record with no sessions and nothing active.
func NewUserRecord() *UserRecord {
	return &UserRecord{Sessions: []Session{}}
}

// EnsureUser returns the record for username, creating an empty one first
// if the user has never been seen. Calling it again is a no-op.
func (l *ProjectLog) EnsureUser(username string) *UserRecord {
	if l.Users == nil {
		l.Users = make(map[string]*UserRecord)
	}
	if u, ok := l.Users[username]; ok && u != nil {
		return u
	}
	u := NewUserRecord()
	l.Users[username] = u
	return u
}

// User returns the record for username without creating it.
func (l *ProjectLog) User(username string) (*UserRecord, bool) {
	u, ok := l.Users[username]
	if !ok || u == nil {
		return nil, false
	}
	return u, true
}

// Usernames returns the known users in lexical order.
func (l *ProjectLog) Usernames() []string {
	names := make([]string, 0, len(l.Users))
	for name := range l.Users {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Totals returns per-user totals for every user in the log, ordered by name.
func (l *ProjectLog) Totals() []UserTotal {
	totals := make([]UserTotal, 0, len(l.Users))
	for _, name := range l.Usernames() {
		u := l.Users[name]
		minutes := SumMinutes(u.Sessions)
		totals = append(totals, UserTotal{
			Username:     name,
			Sessions:     len(u.Sessions),
			TotalMinutes: minutes,
			TotalHours:   MinutesToHours(minutes),
			ClockedIn:    u.ActiveSession != nil,
		})
	}
	return totals
}

// UserTotal is one line of the all-users summary.
type UserTotal struct {
	Username     string
	Sessions     int
	TotalMinutes float64
	TotalHours   float64
	ClockedIn    bool
}

// Elapsed returns how long the active session has been open at now.
// It is zero when the user is not clocked in or the start cannot be parsed.
func (u *UserRecord) Elapsed(now time.Time) time.Duration {
	if u.ActiveSession == nil {
		return 0
	}
	start, err := ParseTimestamp(*u.ActiveSession)
	if err != nil {
		return 0
	}
	if d := now.Sub(start); d > 0 {
		return d
	}
	return 0
}
