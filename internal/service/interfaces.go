package service

import (
	"context"
	"errors"

	"github.com/alexanderramin/timekeeper/internal/domain"
	"github.com/alexanderramin/timekeeper/internal/store"
)

var (
	// ErrEmptyUser is returned when a use case is called without a username.
	ErrEmptyUser = errors.New("username is required")

	// ErrInvalidWindow is returned for a report window that is not a positive number of days.
	ErrInvalidWindow = errors.New("report window must be at least one day")
)

// LogStore loads and saves project logs by project name.
type LogStore interface {
	Load(project string) (*domain.ProjectLog, error)
	Save(project string, log *domain.ProjectLog) error
	Projects() ([]store.ProjectFile, error)
	Exists(project string) (bool, error)
}

var _ LogStore = (*store.Store)(nil)

// ClockInResult describes the outcome of a clock-in. AlreadyActive is set
// when the user was clocked in before the call; Start is then the existing
// start and nothing was written.
type ClockInResult struct {
	Project       string
	User          string
	Start         string
	AlreadyActive bool
}

// ClockOutResult describes the outcome of a clock-out. NotClockedIn is set
// when there was no open session; Session is then empty and nothing was written.
type ClockOutResult struct {
	Project      string
	User         string
	Session      domain.Session
	NotClockedIn bool
}

// ExportResult counts what an export wrote to the archive. Totals is read
// back from the archive once every project is written.
type ExportResult struct {
	Projects       int
	Sessions       int
	ActiveSessions int
	Totals         []domain.ArchivedTotal
}

type TrackerService interface {
	ClockIn(ctx context.Context, project, user string) (*ClockInResult, error)
	ClockOut(ctx context.Context, project, user string) (*ClockOutResult, error)
	Status(ctx context.Context, project, user string) (*domain.StatusView, error)
	Summary(ctx context.Context, project, user string) (*domain.Summary, error)
	Report(ctx context.Context, project, user string, days int) (*domain.Report, error)
	Users(ctx context.Context, project string) ([]domain.UserTotal, error)
	Projects(ctx context.Context) ([]store.ProjectFile, error)
	ProjectExists(ctx context.Context, project string) (bool, error)
}

type ExportService interface {
	Export(ctx context.Context) (*ExportResult, error)
}
