package pyenv

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"sync"

	"pareidolia/internal/config"
	"pareidolia/internal/executor"
	"pareidolia/internal/logging"
	"pareidolia/internal/services"
)

// Result reports the provisioned environment.
type Result struct {
	Success     bool   `json:"success"`
	Reused      bool   `json:"reused"`
	Path        string `json:"path"`
	Interpreter string `json:"interpreterPath"`
	Message     string `json:"message,omitempty"`
}

// Option configures the provisioner.
type Option func(*Provisioner)

// WithCommandRunner injects a custom command runner (primarily for tests).
func WithCommandRunner(cr executor.CommandRunner) Option {
	return func(p *Provisioner) {
		if cr != nil {
			p.exec = cr
		}
	}
}

// Provisioner creates and reuses the managed Python environment.
type Provisioner struct {
	envDir      string
	interpreter string
	packages    []string
	exec        executor.CommandRunner
	logger      *slog.Logger

	// mu serializes first-time creation so concurrent callers observe a
	// single bootstrap sequence.
	mu sync.Mutex
}

// New constructs a provisioner from configuration.
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) *Provisioner {
	p := &Provisioner{
		envDir:      cfg.EnvDir(),
		interpreter: cfg.Python.Interpreter,
		packages:    append([]string(nil), cfg.Python.Packages...),
		exec:        executor.ShellRunner(),
		logger:      logging.WithComponent(logger, "pyenv"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Ensure guarantees the environment exists, creating it on first call. An
// existing directory is reused without inspection. Bootstrap failures remove
// the partial directory and surface as external tool errors.
func (p *Provisioner) Ensure(ctx context.Context) (Result, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	interpreter := config.EnvInterpreter(p.envDir)

	if info, err := os.Stat(p.envDir); err == nil && info.IsDir() {
		return Result{
			Success:     true,
			Reused:      true,
			Path:        p.envDir,
			Interpreter: interpreter,
			Message:     "environment already provisioned",
		}, nil
	}

	p.logger.Info("provisioning python environment",
		logging.String("path", p.envDir),
		logging.Int("package_count", len(p.packages)))

	if err := p.run(ctx, p.interpreter, []string{"-m", "venv", p.envDir}); err != nil {
		p.cleanup()
		return Result{}, services.Wrap(services.ErrExternalTool, "pyenv", "create venv", p.envDir, err)
	}

	installArgs := append([]string{"-m", "pip", "install"}, p.packages...)
	if err := p.run(ctx, interpreter, installArgs); err != nil {
		p.cleanup()
		return Result{}, services.Wrap(services.ErrExternalTool, "pyenv", "install packages",
			strings.Join(p.packages, " "), err)
	}

	p.logger.Info("python environment ready", logging.String("path", p.envDir))
	return Result{
		Success:     true,
		Path:        p.envDir,
		Interpreter: interpreter,
		Message:     "environment created",
	}, nil
}

// Path returns the environment directory without provisioning it.
func (p *Provisioner) Path() string {
	return p.envDir
}

// Exists reports whether the environment directory is present.
func (p *Provisioner) Exists() bool {
	info, err := os.Stat(p.envDir)
	return err == nil && info.IsDir()
}

func (p *Provisioner) run(ctx context.Context, binary string, args []string) error {
	var stderr strings.Builder
	onStderr := func(line string) {
		if stderr.Len() > 0 {
			stderr.WriteByte('\n')
		}
		stderr.WriteString(line)
	}
	if err := p.exec.Run(ctx, binary, args, nil, onStderr); err != nil {
		if text := strings.TrimSpace(stderr.String()); text != "" {
			p.logger.Warn("bootstrap command failed",
				logging.String("binary", binary),
				logging.String("stderr", text))
		}
		return err
	}
	return nil
}

func (p *Provisioner) cleanup() {
	if err := os.RemoveAll(p.envDir); err != nil {
		p.logger.Warn("failed to remove partial environment",
			logging.String("path", p.envDir),
			logging.Error(err))
	}
}
