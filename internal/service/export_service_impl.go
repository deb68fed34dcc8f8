package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/timekeeper/internal/db"
	"github.com/alexanderramin/timekeeper/internal/domain"
	"github.com/alexanderramin/timekeeper/internal/repository"
	"github.com/google/uuid"
)

type exportService struct {
	logs     LogStore
	uow      db.UnitOfWork
	now      func() time.Time
	observer UseCaseObserver
}

// NewExportService copies every project log into the SQLite archive behind uow.
func NewExportService(logs LogStore, uow db.UnitOfWork, now func() time.Time, observers ...UseCaseObserver) ExportService {
	if now == nil {
		now = time.Now
	}
	return &exportService{
		logs:     logs,
		uow:      uow,
		now:      now,
		observer: useCaseObserverOrNoop(observers),
	}
}

// Export replaces each project's archived rows with the current contents of
// its log file. Rows are keyed by the file's slug. Each project is written in
// its own transaction; a failure stops the export and leaves earlier
// projects committed.
func (s *exportService) Export(ctx context.Context) (result *ExportResult, err error) {
	fields := map[string]any{}
	defer observe(ctx, s.observer, "export", time.Now(), fields, &err)

	files, err := s.logs.Projects()
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}

	result = &ExportResult{}
	exportedAt := s.now().UTC().Truncate(time.Second)
	for _, pf := range files {
		log, err := s.logs.Load(pf.Slug)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", pf.Path, err)
		}

		var sessions, active int
		err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			var txErr error
			sessions, active, txErr = replaceProject(ctx, repository.NewSQLiteSessionArchive(tx), pf.Slug, log, exportedAt)
			return txErr
		})
		if err != nil {
			return nil, fmt.Errorf("exporting project %q: %w", log.Project, err)
		}

		result.Projects++
		result.Sessions += sessions
		result.ActiveSessions += active
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var txErr error
		result.Totals, txErr = repository.NewSQLiteSessionArchive(tx).Totals(ctx)
		return txErr
	})
	if err != nil {
		return nil, fmt.Errorf("reading archive totals: %w", err)
	}

	fields["projects"] = result.Projects
	fields["sessions"] = result.Sessions
	return result, nil
}

func replaceProject(ctx context.Context, archive repository.SessionArchiveRepo, slug string, log *domain.ProjectLog, exportedAt time.Time) (int, int, error) {
	if err := archive.DeleteProject(ctx, slug); err != nil {
		return 0, 0, err
	}

	var sessions, active int
	for _, name := range log.Usernames() {
		u := log.Users[name]
		for i, sess := range u.Sessions {
			row := &domain.ArchivedSession{
				ID:              uuid.New().String(),
				Slug:            slug,
				Project:         log.Project,
				Username:        name,
				Seq:             i + 1,
				Start:           sess.Start,
				End:             sess.End,
				DurationMinutes: sess.DurationMinutes,
				ExportedAt:      exportedAt,
			}
			if err := archive.Insert(ctx, row); err != nil {
				return 0, 0, err
			}
			sessions++
		}
		if u.ActiveSession != nil {
			if err := archive.SetActive(ctx, slug, log.Project, name, *u.ActiveSession); err != nil {
				return 0, 0, err
			}
			active++
		}
	}
	return sessions, active, nil
}
