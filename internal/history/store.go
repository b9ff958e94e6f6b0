// Package history keeps a SQLite log of summarize runs and their per-file
// outcomes.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/nguyentantai21042004/playlist-digest/internal/summarizer"

	_ "modernc.org/sqlite"
)

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA busy_timeout = 5000;

CREATE TABLE IF NOT EXISTS runs (
    run_id      TEXT PRIMARY KEY,
    source_dir  TEXT NOT NULL DEFAULT '',
    dest_dir    TEXT NOT NULL DEFAULT '',
    started_at  TEXT NOT NULL,
    finished_at TEXT NOT NULL,
    succeeded   INTEGER NOT NULL DEFAULT 0,
    skipped     INTEGER NOT NULL DEFAULT 0,
    failed      INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS run_files (
    run_id      TEXT NOT NULL,
    position    INTEGER NOT NULL,
    path        TEXT NOT NULL,
    title       TEXT NOT NULL DEFAULT '',
    status      TEXT NOT NULL,
    failed_at   TEXT NOT NULL DEFAULT '',
    chunks      INTEGER NOT NULL DEFAULT 0,
    output      TEXT NOT NULL DEFAULT '',
    error       TEXT NOT NULL DEFAULT '',
    duration_ms INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (run_id, position)
);

CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
`

// Fixed-width so that started_at sorts as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Run is one stored batch.
type Run struct {
	ID         string
	SourceDir  string
	DestDir    string
	StartedAt  time.Time
	FinishedAt time.Time
	Succeeded  int
	Skipped    int
	Failed     int
}

// FileRecord is one stored file result.
type FileRecord struct {
	Path     string
	Title    string
	Status   summarizer.Status
	FailedAt summarizer.Status
	Chunks   int
	Output   string
	Error    string
	Duration time.Duration
}

// Store is a run history backed by SQLite.
type Store struct {
	db *sql.DB
}

// Open opens or creates the history database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init history schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// RecordRun stores a batch report and all of its file results in one
// transaction. Recording the same run id twice replaces the earlier copy.
func (s *Store) RecordRun(ctx context.Context, report *summarizer.BatchReport) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	succeeded, skipped, failed := report.Counts()
	if _, err := tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO runs (run_id, source_dir, dest_dir, started_at, finished_at, succeeded, skipped, failed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		report.RunID, report.SourceDir, report.DestDir,
		report.StartedAt.UTC().Format(timeLayout), report.FinishedAt.UTC().Format(timeLayout),
		succeeded, skipped, failed,
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM run_files WHERE run_id = ?", report.RunID); err != nil {
		return fmt.Errorf("clear run files: %w", err)
	}

	for i, res := range report.Results {
		var errText string
		if res.Err != nil {
			errText = res.Err.Error()
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO run_files (run_id, position, path, title, status, failed_at, chunks, output, error, duration_ms)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			report.RunID, i, res.Path, res.Title, string(res.Status), string(res.FailedAt),
			res.Chunks, res.Output, errText, res.Duration.Milliseconds(),
		); err != nil {
			return fmt.Errorf("insert file %s: %w", res.Path, err)
		}
	}

	return tx.Commit()
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, source_dir, dest_dir, started_at, finished_at, succeeded, skipped, failed
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var started, finished string
		if err := rows.Scan(&r.ID, &r.SourceDir, &r.DestDir, &started, &finished, &r.Succeeded, &r.Skipped, &r.Failed); err != nil {
			return nil, err
		}
		if r.StartedAt, err = time.Parse(timeLayout, started); err != nil {
			return nil, fmt.Errorf("run %s: %w", r.ID, err)
		}
		if r.FinishedAt, err = time.Parse(timeLayout, finished); err != nil {
			return nil, fmt.Errorf("run %s: %w", r.ID, err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Files returns the file results of one run in processing order.
func (s *Store) Files(ctx context.Context, runID string) ([]FileRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT path, title, status, failed_at, chunks, output, error, duration_ms
		 FROM run_files WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []FileRecord
	for rows.Next() {
		var f FileRecord
		var status, failedAt string
		var ms int64
		if err := rows.Scan(&f.Path, &f.Title, &status, &failedAt, &f.Chunks, &f.Output, &f.Error, &ms); err != nil {
			return nil, err
		}
		f.Status = summarizer.Status(status)
		f.FailedAt = summarizer.Status(failedAt)
		f.Duration = time.Duration(ms) * time.Millisecond
		files = append(files, f)
	}
	return files, rows.Err()
}
