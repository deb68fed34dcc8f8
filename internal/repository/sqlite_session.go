package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/timekeeper/internal/db"
	"github.com/alexanderramin/timekeeper/internal/domain"
)

// SQLiteSessionArchive implements SessionArchiveRepo on SQLite.
type SQLiteSessionArchive struct {
	db db.DBTX
}

// NewSQLiteSessionArchive creates a SQLiteSessionArchive over a *sql.DB or *sql.Tx.
func NewSQLiteSessionArchive(db db.DBTX) *SQLiteSessionArchive {
	return &SQLiteSessionArchive{db: db}
}

func (r *SQLiteSessionArchive) DeleteProject(ctx context.Context, slug string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE slug = ?`, slug); err != nil {
		return fmt.Errorf("deleting archived sessions: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM active_sessions WHERE slug = ?`, slug); err != nil {
		return fmt.Errorf("deleting archived active sessions: %w", err)
	}
	return nil
}

func (r *SQLiteSessionArchive) Insert(ctx context.Context, s *domain.ArchivedSession) error {
	query := `INSERT INTO sessions (id, slug, project, username, seq, started_at, ended_at, duration_minutes, exported_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.Slug,
		s.Project,
		s.Username,
		s.Seq,
		s.Start,
		s.End,
		s.DurationMinutes,
		s.ExportedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting archived session: %w", err)
	}
	return nil
}

func (r *SQLiteSessionArchive) SetActive(ctx context.Context, slug, project, username, start string) error {
	query := `INSERT INTO active_sessions (slug, project, username, started_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(slug, username) DO UPDATE SET project = excluded.project, started_at = excluded.started_at`
	if _, err := r.db.ExecContext(ctx, query, slug, project, username, start); err != nil {
		return fmt.Errorf("archiving active session: %w", err)
	}
	return nil
}

// Totals returns one row per archived user, including users whose only
// archived state is an open session, ordered by slug then username.
func (r *SQLiteSessionArchive) Totals(ctx context.Context) ([]domain.ArchivedTotal, error) {
	query := `SELECT u.slug, u.project, u.username,
			(SELECT COUNT(*) FROM sessions s WHERE s.slug = u.slug AND s.username = u.username),
			(SELECT COALESCE(SUM(s.duration_minutes), 0) FROM sessions s WHERE s.slug = u.slug AND s.username = u.username),
			COALESCE((SELECT a.started_at FROM active_sessions a WHERE a.slug = u.slug AND a.username = u.username), '')
		FROM (
			SELECT slug, project, username FROM sessions
			UNION
			SELECT slug, project, username FROM active_sessions
		) u
		ORDER BY u.slug, u.username`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("totalling archived sessions: %w", err)
	}
	defer rows.Close()

	var totals []domain.ArchivedTotal
	for rows.Next() {
		var t domain.ArchivedTotal
		if err := rows.Scan(&t.Slug, &t.Project, &t.Username, &t.Sessions, &t.TotalMinutes, &t.ActiveSince); err != nil {
			return nil, fmt.Errorf("scanning total row: %w", err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating totals: %w", err)
	}
	return totals, nil
}
