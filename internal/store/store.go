// Package store reads and writes per-project JSON time logs.
//
// Each project lives in its own file, <slug>_time_log.json, inside a base
// directory chosen by the caller. Writes overwrite the whole file in place;
// there is no locking and no atomic rename, so concurrent writers race and
// a crash mid-write can leave a truncated file behind.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alexanderramin/timekeeper/internal/domain"
)

// LogFileSuffix ends every project log file name.
const LogFileSuffix = "_time_log.json"

// Store resolves project log files inside one base directory.
type Store struct {
	baseDir string
}

// New returns a Store rooted at baseDir. A leading "~" is expanded to the
// user's home directory.
func New(baseDir string) (*Store, error) {
	dir, err := ExpandHome(baseDir)
	if err != nil {
		return nil, err
	}
	return &Store{baseDir: dir}, nil
}

// BaseDir returns the directory holding the log files.
func (s *Store) BaseDir() string {
	return s.baseDir
}

// Path returns the log file path for a project name.
func (s *Store) Path(project string) string {
	return filepath.Join(s.baseDir, LogFileName(project))
}

// Load reads the named project's log, or returns an empty one when the
// file does not exist yet.
func (s *Store) Load(project string) (*domain.ProjectLog, error) {
	return Load(s.Path(project), project)
}

// Save writes the log to the named project's file. The file is chosen by
// the name the log was loaded under, not the name stored inside it.
func (s *Store) Save(project string, log *domain.ProjectLog) error {
	return Save(log, s.Path(project))
}

// Exists reports whether the project already has a log file.
func (s *Store) Exists(project string) (bool, error) {
	_, err := os.Stat(s.Path(project))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("checking project log: %w", err)
}

// LogFileName returns the file name used for a project's log.
func LogFileName(project string) string {
	return domain.Slugify(domain.ProjectNameOrDefault(project)) + LogFileSuffix
}

// fileLog mirrors the on-disk document with optional top-level keys so that
// older files missing them can be backfilled.
type fileLog struct {
	Project *string                       `json:"project"`
	Users   map[string]*domain.UserRecord `json:"users"`
}

// Load reads the log file at path. A missing file yields a fresh log for
// project. Missing "project" or "users" keys are filled in; malformed JSON
// is returned as an error.
func Load(path, project string) (*domain.ProjectLog, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.NewProjectLog(project), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading project log %s: %w", path, err)
	}

	var raw fileLog
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing project log %s: %w", path, err)
	}

	log := &domain.ProjectLog{
		Project: project,
		Users:   raw.Users,
	}
	if raw.Project != nil {
		log.Project = *raw.Project
	}
	if log.Users == nil {
		log.Users = make(map[string]*domain.UserRecord)
	}
	for name, u := range log.Users {
		if u == nil {
			log.Users[name] = domain.NewUserRecord()
			continue
		}
		if u.Sessions == nil {
			u.Sessions = []domain.Session{}
		}
	}
	return log, nil
}

// Save writes log to path as indented JSON, creating parent directories.
// The previous content is overwritten in place.
func Save(log *domain.ProjectLog, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(encodable(log)); err != nil {
		return fmt.Errorf("encoding project log: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing project log %s: %w", path, err)
	}
	return nil
}

// encodable guarantees "users" is written as an object, never null.
func encodable(log *domain.ProjectLog) *domain.ProjectLog {
	if log.Users != nil {
		return log
	}
	cp := *log
	cp.Users = map[string]*domain.UserRecord{}
	return &cp
}

// ProjectFile describes one log file found in the base directory.
type ProjectFile struct {
	Name  string
	Slug  string
	Path  string
	Users int
}

// Projects lists the project log files in the base directory, ordered by
// slug. The display name comes from the file's "project" key; files that
// cannot be read fall back to their slug. A missing directory is empty.
func (s *Store) Projects() ([]ProjectFile, error) {
	entries, err := os.ReadDir(s.baseDir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", s.baseDir, err)
	}

	var files []ProjectFile
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), LogFileSuffix) {
			continue
		}
		slug := strings.TrimSuffix(e.Name(), LogFileSuffix)
		if slug == "" {
			continue
		}
		pf := ProjectFile{
			Name: slug,
			Slug: slug,
			Path: filepath.Join(s.baseDir, e.Name()),
		}
		if log, err := Load(pf.Path, slug); err == nil {
			pf.Name = domain.CoalesceStr(log.Project, slug)
			pf.Users = len(log.Users)
		}
		files = append(files, pf)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Slug < files[j].Slug })
	return files, nil
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
