// Package history records program runs in a SQLite database.
//
// Each run stores its outcome and the final variable bindings, so past
// results can be listed and inspected after the terminal output is gone.
// The schema is managed with embedded goose migrations.
package history

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // SQLite driver (pure Go)
)

//go:embed migrations/*.sql
var migrations embed.FS

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// timeLayout is fixed width so started_at sorts correctly as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Status is the outcome of a recorded run.
type Status string

// Run outcomes.
const (
	StatusOK          Status = "ok"
	StatusDiagnostics Status = "diagnostics"
	StatusFailed      Status = "failed"
)

// Errors returned by Get.
var (
	ErrNotFound  = errors.New("run not found")
	ErrAmbiguous = errors.New("run id prefix is ambiguous")
)

// Binding is one variable's final value, already formatted.
type Binding struct {
	Name  string `json:"name" yaml:"name"`
	Type  string `json:"type" yaml:"type"`
	Value string `json:"value" yaml:"value"`
}

// Run is one recorded execution.
type Run struct {
	ID          string        `json:"id" yaml:"id"`
	File        string        `json:"file" yaml:"file"`
	Status      Status        `json:"status" yaml:"status"`
	Error       string        `json:"error,omitempty" yaml:"error,omitempty"`
	Diagnostics int           `json:"diagnostics" yaml:"diagnostics"`
	StartedAt   time.Time     `json:"started_at" yaml:"started_at"`
	Duration    time.Duration `json:"duration" yaml:"duration"`
	Bindings    []Binding     `json:"bindings,omitempty" yaml:"bindings,omitempty"`
}

// Store is a run history backed by SQLite.
type Store struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// Open opens the database at path, creating it and its parent directory
// when needed, and applies pending migrations.
func Open(ctx context.Context, path string, logger *slog.Logger) (*Store, error) {
	dsn := path
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return nil, fmt.Errorf("failed to create history directory: %w", err)
		}
		dsn = path + "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping history database: %w", err)
	}

	s := NewWithDB(db, logger)
	s.path = path
	if err := s.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// NewWithDB wraps an existing connection without migrating it.
func NewWithDB(db *sql.DB, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{db: db, logger: logger}
}

// Path returns the path the store was opened with.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// goose keeps its settings in package state.
var gooseMu sync.Mutex

func withGoose[T any](fn func() (T, error)) (T, error) {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	var zero T
	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		return zero, fmt.Errorf("failed to set dialect: %w", err)
	}
	return fn()
}

// Migrate runs all pending migrations.
func (s *Store) Migrate(ctx context.Context) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}
	_, err := withGoose(func() (struct{}, error) {
		if err := goose.UpContext(ctx, s.db, "migrations"); err != nil {
			return struct{}{}, fmt.Errorf("failed to run migrations: %w", err)
		}
		return struct{}{}, nil
	})
	return err
}

// Version returns the current schema version.
func (s *Store) Version(ctx context.Context) (int64, error) {
	if s.db == nil {
		return 0, fmt.Errorf("database not opened")
	}
	return withGoose(func() (int64, error) {
		return goose.GetDBVersionContext(ctx, s.db)
	})
}

// Record stores run and its bindings. An empty ID is filled with a new
// UUID and a zero StartedAt with the current time.
func (s *Store) Record(ctx context.Context, run *Run) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}
	run.StartedAt = run.StartedAt.UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, file, status, error, diagnostics, started_at, duration_ns) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.File, string(run.Status), run.Error, run.Diagnostics,
		run.StartedAt.Format(timeLayout), run.Duration.Nanoseconds(),
	); err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}

	for i, b := range run.Bindings {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO bindings (run_id, position, name, type, value) VALUES (?, ?, ?, ?, ?)`,
			run.ID, i, b.Name, b.Type, b.Value,
		); err != nil {
			return fmt.Errorf("failed to record binding %s: %w", b.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	s.logger.DebugContext(ctx, "run recorded", "run_id", run.ID, "status", string(run.Status), "bindings", len(run.Bindings))
	return nil
}

const runColumns = `id, file, status, error, diagnostics, started_at, duration_ns`

// List returns the most recent runs first, without their bindings.
// A limit of zero or less returns every run.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	matches, err := collectRuns(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	runs := make([]Run, len(matches))
	for i, run := range matches {
		runs[i] = *run
	}
	return runs, nil
}

// Get returns the run whose ID starts with prefix, with its bindings.
func (s *Store) Get(ctx context.Context, prefix string) (*Run, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return nil, ErrNotFound
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs WHERE id LIKE ? ESCAPE '\' LIMIT 2`, escapeLike(prefix)+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	matches, err := collectRuns(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, prefix)
	case 1:
	default:
		return nil, fmt.Errorf("%w: %s", ErrAmbiguous, prefix)
	}

	run := matches[0]
	run.Bindings, err = s.bindings(ctx, run.ID)
	if err != nil {
		return nil, err
	}
	return run, nil
}

// collectRuns drains and closes rows. The connection must be free again
// before bindings are loaded.
func collectRuns(rows *sql.Rows) ([]*Run, error) {
	defer func() { _ = rows.Close() }()
	var out []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

func (s *Store) bindings(ctx context.Context, runID string) ([]Binding, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, type, value FROM bindings WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to load bindings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Binding
	for rows.Next() {
		var b Binding
		if err := rows.Scan(&b.Name, &b.Type, &b.Value); err != nil {
			return nil, fmt.Errorf("failed to scan binding: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Clear deletes every recorded run and returns how many were removed.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	if s.db == nil {
		return 0, fmt.Errorf("database not opened")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM bindings`); err != nil {
		return 0, fmt.Errorf("failed to clear bindings: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM runs`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear runs: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to clear runs: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit clear: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*Run, error) {
	var (
		run        Run
		status     string
		startedAt  string
		durationNs int64
	)
	if err := row.Scan(&run.ID, &run.File, &status, &run.Error, &run.Diagnostics, &startedAt, &durationNs); err != nil {
		return nil, fmt.Errorf("failed to scan run: %w", err)
	}
	t, err := time.Parse(timeLayout, startedAt)
	if err != nil {
		return nil, fmt.Errorf("invalid started_at %q: %w", startedAt, err)
	}
	run.Status = Status(status)
	run.StartedAt = t
	run.Duration = time.Duration(durationNs)
	return &run, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
