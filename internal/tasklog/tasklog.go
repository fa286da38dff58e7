// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tasklog persists a journal of per-file processing state in SQLite.
// Each collaborator run gets a run ID; each input file moves through
// Scheduled, Processing, and finally Done or Failed, with attempt counts
// kept across reruns of the same input.
package tasklog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

const schemaVersion = 1

// Status is the processing state of one input file within a run.
type Status string

const (
	StatusScheduled  Status = "Scheduled"
	StatusProcessing Status = "Processing"
	StatusDone       Status = "Done"
	StatusFailed     Status = "Failed"
)

// Task is one journal row.
type Task struct {
	RunID         string
	Input         string
	Status        Status
	StatusChanged time.Time
	Attempts      int
	Detail        string
}

// Store manages the task journal database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the journal database at path, creating parent
// directories and the schema as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating journal directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening journal database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating journal schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS tasks (
			run_id TEXT NOT NULL,
			input TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'Scheduled',
			status_changed TEXT NOT NULL,
			attempts INTEGER NOT NULL DEFAULT 0,
			detail TEXT,
			PRIMARY KEY (run_id, input)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	_, err := s.db.Exec(
		`INSERT OR IGNORE INTO settings (key, value) VALUES ('schema_version', ?)`,
		strconv.Itoa(schemaVersion),
	)
	return err
}

// SchemaVersion reports the version recorded in the settings table.
func (s *Store) SchemaVersion(ctx context.Context) (int, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = 'schema_version'`,
	).Scan(&raw)
	if err != nil {
		return 0, fmt.Errorf("reading schema version: %w", err)
	}
	return strconv.Atoi(raw)
}

// NewRunID returns a fresh identifier for one collaborator run.
func NewRunID() string {
	return uuid.NewString()
}

// Schedule records an input as Scheduled within a run. Scheduling the same
// input again within one run resets its status but keeps its attempt count.
func (s *Store) Schedule(ctx context.Context, runID, input string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (run_id, input, status, status_changed, attempts)
		VALUES (?, ?, ?, ?, 0)
		ON CONFLICT (run_id, input) DO UPDATE SET
			status = excluded.status,
			status_changed = excluded.status_changed`,
		runID, input, StatusScheduled, now())
	if err != nil {
		return fmt.Errorf("scheduling %s: %w", input, err)
	}
	return nil
}

// MarkProcessing moves an input to Processing and increments its attempts.
func (s *Store) MarkProcessing(ctx context.Context, runID, input string) error {
	return s.transition(ctx, runID, input, StatusProcessing, "", true)
}

// MarkDone moves an input to Done.
func (s *Store) MarkDone(ctx context.Context, runID, input string) error {
	return s.transition(ctx, runID, input, StatusDone, "", false)
}

// MarkFailed moves an input to Failed, recording the failure detail.
func (s *Store) MarkFailed(ctx context.Context, runID, input, detail string) error {
	return s.transition(ctx, runID, input, StatusFailed, detail, false)
}

func (s *Store) transition(ctx context.Context, runID, input string, status Status, detail string, bumpAttempts bool) error {
	bump := 0
	if bumpAttempts {
		bump = 1
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE tasks SET
			status = ?,
			status_changed = ?,
			attempts = attempts + ?,
			detail = ?
		WHERE run_id = ? AND input = ?`,
		status, now(), bump, detail, runID, input)
	if err != nil {
		return fmt.Errorf("marking %s %s: %w", input, status, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("marking %s %s: input was never scheduled in run %s", input, status, runID)
	}
	return nil
}

// Tasks returns every journal row of a run, ordered by input name.
func (s *Store) Tasks(ctx context.Context, runID string) ([]Task, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, input, status, status_changed, attempts, COALESCE(detail, '')
		FROM tasks WHERE run_id = ? ORDER BY input`,
		runID)
	if err != nil {
		return nil, fmt.Errorf("listing tasks for run %s: %w", runID, err)
	}
	defer rows.Close()

	var tasks []Task
	for rows.Next() {
		var t Task
		var changed string
		if err := rows.Scan(&t.RunID, &t.Input, &t.Status, &changed, &t.Attempts, &t.Detail); err != nil {
			return nil, fmt.Errorf("scanning task row: %w", err)
		}
		t.StatusChanged, _ = time.Parse(time.RFC3339, changed)
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}
