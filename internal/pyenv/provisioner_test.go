package pyenv_test

import (
	"context"
	"errors"
	"os"
	"sync"
	"sync/atomic"
	"testing"

	"pareidolia/internal/logging"
	"pareidolia/internal/pyenv"
	"pareidolia/internal/services"
	"pareidolia/internal/testsupport"
)

// fakeRunner records bootstrap invocations and simulates venv creation.
type fakeRunner struct {
	mu         sync.Mutex
	calls      [][]string
	failOn     int // 1-based call index to fail at; 0 never fails
	envDir     string
	bootstraps atomic.Int32
}

func (f *fakeRunner) Run(ctx context.Context, binary string, args []string, onStdout, onStderr func(string)) error {
	f.mu.Lock()
	call := append([]string{binary}, args...)
	f.calls = append(f.calls, call)
	n := len(f.calls)
	f.mu.Unlock()

	if f.failOn != 0 && n == f.failOn {
		if onStderr != nil {
			onStderr("simulated bootstrap failure")
		}
		return errors.New("exit status 1")
	}
	if len(args) >= 2 && args[0] == "-m" && args[1] == "venv" {
		f.bootstraps.Add(1)
		return os.MkdirAll(f.envDir, 0o755)
	}
	return nil
}

func TestEnsureCreatesThenReuses(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	runner := &fakeRunner{envDir: cfg.EnvDir()}
	p := pyenv.New(cfg, logging.NewNop(), pyenv.WithCommandRunner(runner))

	result, err := p.Ensure(context.Background())
	if err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	if !result.Success || result.Reused {
		t.Fatalf("unexpected first result: %+v", result)
	}
	if result.Path != cfg.EnvDir() {
		t.Fatalf("unexpected path: %q", result.Path)
	}
	if result.Interpreter == "" {
		t.Fatal("expected interpreter path")
	}
	if len(runner.calls) != 2 {
		t.Fatalf("expected venv + pip calls, got %v", runner.calls)
	}

	again, err := p.Ensure(context.Background())
	if err != nil {
		t.Fatalf("second Ensure: %v", err)
	}
	if !again.Reused {
		t.Fatal("expected environment reuse")
	}
	if len(runner.calls) != 2 {
		t.Fatalf("reuse must not spawn commands, got %v", runner.calls)
	}
}

func TestEnsureInstallsConfiguredPackages(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	runner := &fakeRunner{envDir: cfg.EnvDir()}
	p := pyenv.New(cfg, logging.NewNop(), pyenv.WithCommandRunner(runner))

	if _, err := p.Ensure(context.Background()); err != nil {
		t.Fatalf("Ensure: %v", err)
	}

	install := runner.calls[1]
	joined := ""
	for _, part := range install {
		joined += part + " "
	}
	for _, pkg := range []string{"numpy", "opencv-python", "tensorflow"} {
		found := false
		for _, part := range install {
			if part == pkg {
				found = true
			}
		}
		if !found {
			t.Fatalf("package %s missing from install call %q", pkg, joined)
		}
	}
}

func TestEnsureBootstrapFailureCleansUp(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	runner := &fakeRunner{envDir: cfg.EnvDir(), failOn: 2}
	p := pyenv.New(cfg, logging.NewNop(), pyenv.WithCommandRunner(runner))

	_, err := p.Ensure(context.Background())
	if err == nil {
		t.Fatal("expected bootstrap failure")
	}
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
	if p.Exists() {
		t.Fatal("partial environment should have been removed")
	}
}

func TestEnsureConcurrentCallsBootstrapOnce(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	runner := &fakeRunner{envDir: cfg.EnvDir()}
	p := pyenv.New(cfg, logging.NewNop(), pyenv.WithCommandRunner(runner))

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = p.Ensure(context.Background())
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("call %d failed: %v", i, err)
		}
	}
	if got := runner.bootstraps.Load(); got != 1 {
		t.Fatalf("expected exactly one bootstrap, got %d", got)
	}
}
