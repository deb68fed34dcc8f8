package db

import (
	"database/sql"
	"fmt"
	"strings"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS sessions (
		id               TEXT PRIMARY KEY,
		slug             TEXT NOT NULL,
		project          TEXT NOT NULL,
		username         TEXT NOT NULL,
		seq              INTEGER NOT NULL,
		started_at       TEXT NOT NULL,
		ended_at         TEXT NOT NULL DEFAULT '',
		duration_minutes REAL NOT NULL,
		exported_at      TEXT NOT NULL,
		UNIQUE(slug, username, seq)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_slug_user ON sessions(slug, username)`,
	`CREATE TABLE IF NOT EXISTS active_sessions (
		slug       TEXT NOT NULL,
		project    TEXT NOT NULL,
		username   TEXT NOT NULL,
		started_at TEXT NOT NULL,
		PRIMARY KEY (slug, username)
	)`,
}

// Migrate applies every schema statement. Statements are idempotent so it
// is safe to run on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
