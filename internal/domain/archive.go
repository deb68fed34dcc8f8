package domain

import "time"

// ArchivedSession is one session row in the SQLite export. Rows are keyed
// by the log file's slug; Project is the display name stored in the file.
type ArchivedSession struct {
	ID              string
	Slug            string
	Project         string
	Username        string
	Seq             int
	Start           string
	End             string
	DurationMinutes float64
	ExportedAt      time.Time
}

// ArchivedTotal is the per-user aggregate read back from the export.
// ActiveSince is empty when the user had no open session.
type ArchivedTotal struct {
	Slug         string
	Project      string
	Username     string
	Sessions     int
	TotalMinutes float64
	ActiveSince  string
}
