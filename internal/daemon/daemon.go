package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"

	"pareidolia/internal/config"
	"pareidolia/internal/deps"
	"pareidolia/internal/executor"
	"pareidolia/internal/history"
	"pareidolia/internal/ingest"
	"pareidolia/internal/logging"
	"pareidolia/internal/pyenv"
	"pareidolia/internal/scripts"
	"pareidolia/internal/store"
)

// Daemon coordinates the background services and enforces single-instance execution.
type Daemon struct {
	cfg     *config.Config
	logger  *slog.Logger
	store   *store.Store
	prov    *pyenv.Provisioner
	runner  *executor.Runner
	history *history.Store
	ingest  *ingest.Server

	lockPath string
	lock     *flock.Flock

	running atomic.Bool
	ctx     context.Context
	cancel  context.CancelFunc
}

// JobStats summarizes the job history ledger.
type JobStats struct {
	Total     int64 `json:"total"`
	Succeeded int64 `json:"succeeded"`
	Failed    int64 `json:"failed"`
}

// Status represents daemon runtime information.
type Status struct {
	Running       bool          `json:"running"`
	PID           int           `json:"pid"`
	DataRoot      string        `json:"dataRoot"`
	IngestAddr    string        `json:"ingestAddr,omitempty"`
	EnvReady      bool          `json:"envReady"`
	LockFilePath  string        `json:"lockFilePath"`
	HistoryDBPath string        `json:"historyDbPath"`
	Dependencies  []deps.Status `json:"dependencies"`
	Jobs          JobStats      `json:"jobs"`
}

// Option configures daemon construction.
type Option func(*settings)

type settings struct {
	exec executor.CommandRunner
}

// WithCommandRunner injects a custom command runner into the executor and
// the environment provisioner (primarily for tests).
func WithCommandRunner(cr executor.CommandRunner) Option {
	return func(s *settings) {
		s.exec = cr
	}
}

// New constructs a daemon with initialized dependencies.
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) (*Daemon, error) {
	if cfg == nil || logger == nil {
		return nil, errors.New("daemon requires config and logger")
	}

	var s settings
	for _, opt := range opts {
		opt(&s)
	}

	hist, err := history.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open job history: %w", err)
	}

	d := &Daemon{
		cfg:     cfg,
		logger:  logging.WithComponent(logger, "daemon"),
		history: hist,
	}
	d.store = store.New(cfg, logger)
	d.prov = pyenv.New(cfg, logger, pyenv.WithCommandRunner(s.exec))
	execOpts := []executor.Option{
		executor.WithTimeout(time.Duration(cfg.Workflow.JobTimeout) * time.Second),
		executor.WithLogger(logger),
		executor.WithCommandRunner(s.exec),
	}
	d.runner = executor.New(cfg.Python.Interpreter, execOpts...)
	d.ingest = ingest.New(cfg, d.store, d.convertForIngest, logger)

	d.lockPath = cfg.LockPath()
	d.lock = flock.New(d.lockPath)
	return d, nil
}

// Start acquires the daemon lock, materializes the script assets, and brings
// up the ingestion server.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another pareidolia daemon instance is already running")
	}

	if _, err := d.store.EnsureRoot(); err != nil {
		_ = d.lock.Unlock()
		return fmt.Errorf("ensure data root: %w", err)
	}
	if err := scripts.Materialize(d.cfg.ScriptsDir()); err != nil {
		_ = d.lock.Unlock()
		return fmt.Errorf("materialize scripts: %w", err)
	}

	d.ctx, d.cancel = context.WithCancel(ctx)
	if err := d.ingest.Start(d.ctx); err != nil {
		_ = d.lock.Unlock()
		d.cancel()
		d.ctx = nil
		d.cancel = nil
		return fmt.Errorf("start ingest server: %w", err)
	}

	d.running.Store(true)
	d.logger.Info("pareidolia daemon started",
		logging.String("lock", d.lockPath),
		logging.String("ingest_addr", d.ingest.Addr()))
	return nil
}

// Stop shuts down the ingestion server and releases the daemon lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}

	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.ingest.Stop()
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.Error(err))
	}
	d.ctx = nil
	d.running.Store(false)
	d.logger.Info("pareidolia daemon stopped")
}

// Close releases resources held by the daemon.
func (d *Daemon) Close() error {
	d.Stop()
	if d.history != nil {
		return d.history.Close()
	}
	return nil
}

// Running reports whether background services are active.
func (d *Daemon) Running() bool {
	return d.running.Load()
}

// Status gathers daemon runtime diagnostics.
func (d *Daemon) Status(ctx context.Context) Status {
	st := Status{
		Running:       d.running.Load(),
		PID:           os.Getpid(),
		DataRoot:      d.cfg.Paths.DataRoot,
		EnvReady:      d.prov.Exists(),
		LockFilePath:  d.lockPath,
		HistoryDBPath: d.history.Path(),
		Dependencies:  deps.CheckBinaries(deps.Default(d.cfg)),
	}
	if st.Running {
		st.IngestAddr = d.ingest.Addr()
	}
	total, succeeded, failed, err := d.history.Stats(ctx)
	if err != nil {
		d.logger.Warn("failed to read job stats", logging.Error(err))
	} else {
		st.Jobs = JobStats{Total: total, Succeeded: succeeded, Failed: failed}
	}
	return st
}
