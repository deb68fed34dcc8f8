package testutil

import (
	"time"

	"github.com/alexanderramin/timekeeper/internal/domain"
	"github.com/google/uuid"
)

// NewID returns a random identifier for archive rows.
func NewID() string {
	return uuid.New().String()
}

// LogOption configures a ProjectLog built by NewTestLog.
type LogOption func(*domain.ProjectLog)

// WithUser adds a user with the given closed sessions.
func WithUser(name string, sessions ...domain.Session) LogOption {
	return func(l *domain.ProjectLog) {
		u := l.EnsureUser(name)
		u.Sessions = append(u.Sessions, sessions...)
	}
}

// WithActiveSession marks the user as clocked in since start.
func WithActiveSession(name string, start time.Time) LogOption {
	return func(l *domain.ProjectLog) {
		ts := domain.FormatTimestamp(start)
		l.EnsureUser(name).ActiveSession = &ts
	}
}

// NewTestLog builds an in-memory project log.
func NewTestLog(project string, opts ...LogOption) *domain.ProjectLog {
	l := domain.NewProjectLog(project)
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// NewTestSession builds a closed session lasting minutes and ending at end.
func NewTestSession(end time.Time, minutes float64) domain.Session {
	start := end.Add(-time.Duration(minutes * float64(time.Minute)))
	return domain.Session{
		Start:           domain.FormatTimestamp(start),
		End:             domain.FormatTimestamp(end),
		DurationMinutes: minutes,
	}
}

// SessionEndedDaysAgo builds a closed session that ended days before now.
func SessionEndedDaysAgo(now time.Time, days int, minutes float64) domain.Session {
	return NewTestSession(now.AddDate(0, 0, -days), minutes)
}
