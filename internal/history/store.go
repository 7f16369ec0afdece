package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"pareidolia/internal/config"
)

// Job kinds recorded in the ledger.
const (
	KindExtract = "extract"
	KindTrain   = "train"
	KindEnv     = "env"
)

// Job is one recorded external invocation.
type Job struct {
	ID       string    `json:"id"`
	Kind     string    `json:"kind"`
	Script   string    `json:"script"`
	Args     []string  `json:"args"`
	Success  bool      `json:"success"`
	Output   string    `json:"output,omitempty"`
	Error    string    `json:"error,omitempty"`
	Started  time.Time `json:"started"`
	Duration float64   `json:"durationSeconds"`
}

// Store manages job history persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database and applies the schema.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := cfg.HistoryDBPath()
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.applySchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) applySchema(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS jobs (
	id TEXT PRIMARY KEY,
	kind TEXT NOT NULL,
	script TEXT NOT NULL,
	args TEXT NOT NULL DEFAULT '[]',
	success INTEGER NOT NULL DEFAULT 0,
	output TEXT NOT NULL DEFAULT '',
	error TEXT NOT NULL DEFAULT '',
	started_at INTEGER NOT NULL,
	duration_seconds REAL NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_jobs_started_at ON jobs(started_at);
`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// Record inserts a completed job. A missing ID is generated.
func (s *Store) Record(ctx context.Context, job Job) (string, error) {
	if strings.TrimSpace(job.ID) == "" {
		job.ID = uuid.NewString()
	}
	if job.Started.IsZero() {
		job.Started = time.Now().UTC()
	}
	args, err := json.Marshal(job.Args)
	if err != nil {
		return "", fmt.Errorf("encode args: %w", err)
	}

	const query = `
INSERT INTO jobs (id, kind, script, args, success, output, error, started_at, duration_seconds)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`
	// Unix nanos keep ORDER BY correct at sub-second granularity, which
	// formatted timestamps do not survive lexicographically.
	_, err = s.db.ExecContext(ctx, query,
		job.ID, job.Kind, job.Script, string(args),
		boolToInt(job.Success), job.Output, job.Error,
		job.Started.UTC().UnixNano(), job.Duration)
	if err != nil {
		return "", fmt.Errorf("insert job: %w", err)
	}
	return job.ID, nil
}

// List returns the most recent jobs, newest first. A non-positive limit
// defaults to 50.
func (s *Store) List(ctx context.Context, limit int) ([]Job, error) {
	if limit <= 0 {
		limit = 50
	}
	const query = `
SELECT id, kind, script, args, success, output, error, started_at, duration_seconds
FROM jobs ORDER BY started_at DESC, id LIMIT ?
`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate jobs: %w", err)
	}
	return jobs, nil
}

// Get returns the job with the given id, or nil when absent.
func (s *Store) Get(ctx context.Context, id string) (*Job, error) {
	const query = `
SELECT id, kind, script, args, success, output, error, started_at, duration_seconds
FROM jobs WHERE id = ?
`
	row := s.db.QueryRowContext(ctx, query, id)
	job, err := scanJob(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &job, nil
}

// Stats reports total, succeeded, and failed job counts.
func (s *Store) Stats(ctx context.Context) (total, succeeded, failed int64, err error) {
	const query = `
SELECT COUNT(*), COALESCE(SUM(success), 0) FROM jobs
`
	if err = s.db.QueryRowContext(ctx, query).Scan(&total, &succeeded); err != nil {
		return 0, 0, 0, fmt.Errorf("job stats: %w", err)
	}
	return total, succeeded, total - succeeded, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (Job, error) {
	var (
		job         Job
		argsJSON    string
		successInt  int
		startedNano int64
	)
	err := row.Scan(&job.ID, &job.Kind, &job.Script, &argsJSON,
		&successInt, &job.Output, &job.Error, &startedNano, &job.Duration)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Job{}, err
		}
		return Job{}, fmt.Errorf("scan job: %w", err)
	}
	job.Success = successInt != 0
	if err := json.Unmarshal([]byte(argsJSON), &job.Args); err != nil {
		return Job{}, fmt.Errorf("decode args: %w", err)
	}
	job.Started = time.Unix(0, startedNano).UTC()
	return job, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
