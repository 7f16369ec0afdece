package daemonctl_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"pareidolia/internal/daemon"
	"pareidolia/internal/daemonctl"
	"pareidolia/internal/ipc"
	"pareidolia/internal/logging"
	"pareidolia/internal/testsupport"
)

type idleRunner struct{}

func (idleRunner) Run(ctx context.Context, binary string, args []string, onStdout, onStderr func(string)) error {
	return nil
}

func TestProcessInfoMissingSocket(t *testing.T) {
	socket := filepath.Join(t.TempDir(), "missing.sock")
	alive, pid, err := daemonctl.ProcessInfo(socket)
	if err != nil {
		t.Fatalf("ProcessInfo: %v", err)
	}
	if alive || pid != 0 {
		t.Fatalf("expected not alive, got alive=%v pid=%d", alive, pid)
	}
}

func TestStopAndTerminateNotRunning(t *testing.T) {
	socket := filepath.Join(t.TempDir(), "missing.sock")
	_, err := daemonctl.StopAndTerminate(socket, nil, time.Second)
	if err != daemonctl.ErrDaemonNotRunning {
		t.Fatalf("expected ErrDaemonNotRunning, got %v", err)
	}
}

func TestEnsureStartedAgainstLiveServer(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	logger := logging.NewNop()
	d, err := daemon.New(cfg, logger, daemon.WithCommandRunner(idleRunner{}))
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	t.Cleanup(func() { d.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	socket := filepath.Join(cfg.Paths.LogDir, "ctl.sock")
	srv, err := ipc.NewServer(ctx, socket, d, logger)
	if err != nil {
		if strings.Contains(err.Error(), "operation not permitted") {
			t.Skipf("skipping: %v", err)
		}
		t.Fatalf("ipc.NewServer: %v", err)
	}
	srv.Serve()
	t.Cleanup(srv.Close)

	// Socket exists but the daemon services are idle: EnsureStarted issues a
	// Start RPC rather than launching a new process.
	result, err := daemonctl.EnsureStarted(socket, "/nonexistent/pareidoliad", daemonctl.LaunchOptions{}, time.Second)
	if err != nil {
		t.Fatalf("EnsureStarted: %v", err)
	}
	if result.State != daemonctl.StartStateStarted {
		t.Fatalf("expected started state, got %+v", result)
	}
	if result.Launched {
		t.Fatal("expected no process launch")
	}

	again, err := daemonctl.EnsureStarted(socket, "/nonexistent/pareidoliad", daemonctl.LaunchOptions{}, time.Second)
	if err != nil {
		t.Fatalf("EnsureStarted again: %v", err)
	}
	if again.State != daemonctl.StartStateAlreadyRunning {
		t.Fatalf("expected already running, got %+v", again)
	}

	// The IPC socket stays reachable in-process after Stop, so termination
	// escalates to a kill and hits the self-kill guard.
	stop, err := daemonctl.StopAndTerminate(socket, cfg, time.Second)
	if err == nil || !strings.Contains(err.Error(), "refusing to kill current process") {
		t.Fatalf("expected self-kill guard, got result=%+v err=%v", stop, err)
	}
	if !stop.StopAcknowledged {
		t.Fatal("expected stop to be acknowledged before escalation")
	}
	if d.Running() {
		t.Fatal("expected daemon services to be stopped")
	}
}
