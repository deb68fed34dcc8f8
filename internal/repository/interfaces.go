package repository

import (
	"context"

	"github.com/alexanderramin/timekeeper/internal/domain"
)

// SessionArchiveRepo stores an exported copy of the JSON project logs,
// one project per log-file slug.
type SessionArchiveRepo interface {
	DeleteProject(ctx context.Context, slug string) error
	Insert(ctx context.Context, s *domain.ArchivedSession) error
	SetActive(ctx context.Context, slug, project, username, start string) error
	Totals(ctx context.Context) ([]domain.ArchivedTotal, error)
}

var _ SessionArchiveRepo = (*SQLiteSessionArchive)(nil)
