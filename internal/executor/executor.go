package executor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"pareidolia/internal/config"
	"pareidolia/internal/logging"
)

// Result is the structured outcome of one external job.
type Result struct {
	Success       bool    `json:"success"`
	Output        string  `json:"output,omitempty"`
	Error         string  `json:"error,omitempty"`
	Timestamp     string  `json:"timestamp"`
	ExecutionTime float64 `json:"executionTime"`
}

// Job describes one script invocation.
type Job struct {
	Script string
	Args   []string
	// EnvPath selects the managed environment's interpreter when set;
	// otherwise the system interpreter runs the script.
	EnvPath string
	// Progress, when non-nil, observes each stdout line as it arrives.
	Progress func(line string)
}

// CommandRunner abstracts process execution for testability.
type CommandRunner interface {
	Run(ctx context.Context, binary string, args []string, onStdout, onStderr func(string)) error
}

// Option configures the runner.
type Option func(*Runner)

// WithCommandRunner injects a custom command runner (primarily for tests).
func WithCommandRunner(cr CommandRunner) Option {
	return func(r *Runner) {
		if cr != nil {
			r.exec = cr
		}
	}
}

// WithTimeout bounds each job. Zero means unbounded.
func WithTimeout(timeout time.Duration) Option {
	return func(r *Runner) {
		r.timeout = timeout
	}
}

// WithLogger attaches a logger for job lifecycle events.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logging.WithComponent(logger, "executor")
	}
}

// Runner executes scripts through an interpreter.
type Runner struct {
	interpreter string
	timeout     time.Duration
	exec        CommandRunner
	logger      *slog.Logger
}

// New constructs a runner using the given system interpreter as fallback.
func New(interpreter string, opts ...Option) *Runner {
	interpreter = strings.TrimSpace(interpreter)
	if interpreter == "" {
		interpreter = "python3"
	}
	r := &Runner{
		interpreter: interpreter,
		exec:        shellRunner{},
		logger:      logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Execute runs the job and resolves its outcome. It never returns an error:
// every failure path produces a Result with Success=false.
func (r *Runner) Execute(ctx context.Context, job Job) Result {
	started := time.Now()

	interpreter := r.interpreter
	if job.EnvPath != "" {
		interpreter = config.EnvInterpreter(job.EnvPath)
	}

	runCtx := ctx
	if r.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	var stdout, stderr strings.Builder
	onStdout := func(line string) {
		if stdout.Len() > 0 {
			stdout.WriteByte('\n')
		}
		stdout.WriteString(line)
		if job.Progress != nil {
			job.Progress(line)
		}
	}
	onStderr := func(line string) {
		if stderr.Len() > 0 {
			stderr.WriteByte('\n')
		}
		stderr.WriteString(line)
	}

	args := append([]string{job.Script}, job.Args...)
	r.logger.Debug("running external job",
		logging.String("interpreter", interpreter),
		logging.String("script", job.Script),
		logging.Int("arg_count", len(job.Args)))

	runErr := r.exec.Run(runCtx, interpreter, args, onStdout, onStderr)
	elapsed := time.Since(started)

	result := Result{
		Timestamp:     started.UTC().Format(time.RFC3339),
		ExecutionTime: elapsed.Seconds(),
	}
	if runErr == nil {
		result.Success = true
		result.Output = strings.TrimSpace(stdout.String())
		return result
	}

	result.Error = failureText(runErr, strings.TrimSpace(stderr.String()))
	r.logger.Warn("external job failed",
		logging.String("script", job.Script),
		logging.String("error", result.Error),
		logging.Duration("elapsed", elapsed))
	return result
}

func failureText(runErr error, stderr string) string {
	if stderr != "" {
		return stderr
	}
	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		return fmt.Sprintf("exited with code %d", exitErr.ExitCode())
	}
	return runErr.Error()
}
