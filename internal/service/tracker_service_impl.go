package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/timekeeper/internal/domain"
	"github.com/alexanderramin/timekeeper/internal/store"
)

type trackerService struct {
	logs     LogStore
	now      func() time.Time
	observer UseCaseObserver
}

// NewTrackerService builds the clock-in/out and reporting use cases over a
// log store. A nil now uses time.Now.
func NewTrackerService(logs LogStore, now func() time.Time, observers ...UseCaseObserver) TrackerService {
	if now == nil {
		now = time.Now
	}
	return &trackerService{
		logs:     logs,
		now:      now,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *trackerService) ClockIn(ctx context.Context, project, user string) (result *ClockInResult, err error) {
	project, user = normalize(project, user)
	fields := map[string]any{"project": project, "user": user}
	defer observe(ctx, s.observer, "clock-in", time.Now(), fields, &err)

	if user == "" {
		return nil, ErrEmptyUser
	}
	log, err := s.logs.Load(project)
	if err != nil {
		return nil, err
	}

	start, err := log.EnsureUser(user).ClockIn(s.now())
	result = &ClockInResult{Project: project, User: user, Start: start}
	if errors.Is(err, domain.ErrAlreadyClockedIn) {
		result.AlreadyActive = true
		fields["already_active"] = true
		return result, nil
	}
	if err != nil {
		return nil, err
	}

	if err := s.logs.Save(project, log); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *trackerService) ClockOut(ctx context.Context, project, user string) (result *ClockOutResult, err error) {
	project, user = normalize(project, user)
	fields := map[string]any{"project": project, "user": user}
	defer observe(ctx, s.observer, "clock-out", time.Now(), fields, &err)

	if user == "" {
		return nil, ErrEmptyUser
	}
	log, err := s.logs.Load(project)
	if err != nil {
		return nil, err
	}

	u, ok := log.User(user)
	if !ok {
		return &ClockOutResult{Project: project, User: user, NotClockedIn: true}, nil
	}

	session, err := u.ClockOut(s.now())
	if errors.Is(err, domain.ErrNotClockedIn) {
		fields["not_clocked_in"] = true
		return &ClockOutResult{Project: project, User: user, NotClockedIn: true}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("clocking out %s: %w", user, err)
	}
	fields["duration_minutes"] = session.DurationMinutes

	if err := s.logs.Save(project, log); err != nil {
		return nil, err
	}
	return &ClockOutResult{Project: project, User: user, Session: session}, nil
}

func (s *trackerService) Status(ctx context.Context, project, user string) (*domain.StatusView, error) {
	u, err := s.readUser(ctx, "status", project, user, nil)
	if err != nil {
		return nil, err
	}
	st := u.Status()
	return &st, nil
}

func (s *trackerService) Summary(ctx context.Context, project, user string) (*domain.Summary, error) {
	u, err := s.readUser(ctx, "summary", project, user, nil)
	if err != nil {
		return nil, err
	}
	sum := u.Summary()
	return &sum, nil
}

func (s *trackerService) Report(ctx context.Context, project, user string, days int) (*domain.Report, error) {
	if days < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidWindow, days)
	}
	u, err := s.readUser(ctx, "report", project, user, map[string]any{"days": days})
	if err != nil {
		return nil, err
	}
	r := u.Report(days, s.now())
	return &r, nil
}

func (s *trackerService) Users(ctx context.Context, project string) (totals []domain.UserTotal, err error) {
	project = domain.ProjectNameOrDefault(project)
	defer observe(ctx, s.observer, "users", time.Now(), map[string]any{"project": project}, &err)

	log, err := s.logs.Load(project)
	if err != nil {
		return nil, err
	}
	return log.Totals(), nil
}

func (s *trackerService) Projects(ctx context.Context) (files []store.ProjectFile, err error) {
	defer observe(ctx, s.observer, "projects", time.Now(), nil, &err)
	return s.logs.Projects()
}

// ProjectExists reports whether the project's name maps to a log file that
// is already on disk.
func (s *trackerService) ProjectExists(ctx context.Context, project string) (ok bool, err error) {
	project = domain.ProjectNameOrDefault(project)
	defer observe(ctx, s.observer, "project-exists", time.Now(), map[string]any{"project": project}, &err)
	return s.logs.Exists(project)
}

// readUser loads a user's record for a read-only use case. Unknown users
// get an empty record; nothing is written back.
func (s *trackerService) readUser(ctx context.Context, name, project, user string, extra map[string]any) (u *domain.UserRecord, err error) {
	project, user = normalize(project, user)
	fields := map[string]any{"project": project, "user": user}
	for k, v := range extra {
		fields[k] = v
	}
	defer observe(ctx, s.observer, name, time.Now(), fields, &err)

	if user == "" {
		return nil, ErrEmptyUser
	}
	log, err := s.logs.Load(project)
	if err != nil {
		return nil, err
	}
	if u, ok := log.User(user); ok {
		return u, nil
	}
	return domain.NewUserRecord(), nil
}

func normalize(project, user string) (string, string) {
	return domain.ProjectNameOrDefault(project), strings.TrimSpace(user)
}
