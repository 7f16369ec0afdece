package executor_test

import (
	"context"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"pareidolia/internal/executor"
	"pareidolia/internal/testsupport"
)

func requireShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell-script jobs require a POSIX shell")
	}
}

func TestExecuteSuccessTrimsOutput(t *testing.T) {
	requireShell(t)

	script := filepath.Join(t.TempDir(), "ok.sh")
	testsupport.WriteScript(t, script, "#!/bin/sh\necho done\n")

	r := executor.New("/bin/sh")
	result := r.Execute(context.Background(), executor.Job{Script: script})

	if !result.Success {
		t.Fatalf("expected success, got error %q", result.Error)
	}
	if result.Output != "done" {
		t.Fatalf("unexpected output: %q", result.Output)
	}
	if result.Timestamp == "" {
		t.Fatal("expected timestamp")
	}
	if _, err := time.Parse(time.RFC3339, result.Timestamp); err != nil {
		t.Fatalf("timestamp is not RFC3339: %v", err)
	}
	if result.ExecutionTime < 0 {
		t.Fatalf("unexpected execution time: %f", result.ExecutionTime)
	}
}

func TestExecuteFailureCapturesStderr(t *testing.T) {
	requireShell(t)

	script := filepath.Join(t.TempDir(), "fail.sh")
	testsupport.WriteScript(t, script, "#!/bin/sh\necho boom >&2\nexit 1\n")

	r := executor.New("/bin/sh")
	result := r.Execute(context.Background(), executor.Job{Script: script})

	if result.Success {
		t.Fatal("expected failure")
	}
	if result.Error != "boom" {
		t.Fatalf("unexpected error text: %q", result.Error)
	}
}

func TestExecuteFailureWithoutStderrReportsExitCode(t *testing.T) {
	requireShell(t)

	script := filepath.Join(t.TempDir(), "silent.sh")
	testsupport.WriteScript(t, script, "#!/bin/sh\nexit 3\n")

	r := executor.New("/bin/sh")
	result := r.Execute(context.Background(), executor.Job{Script: script})

	if result.Success {
		t.Fatal("expected failure")
	}
	if result.Error != "exited with code 3" {
		t.Fatalf("unexpected error text: %q", result.Error)
	}
}

func TestExecuteSpawnFailureResolvesResult(t *testing.T) {
	r := executor.New(filepath.Join(t.TempDir(), "no-such-interpreter"))
	result := r.Execute(context.Background(), executor.Job{Script: "whatever.py"})

	if result.Success {
		t.Fatal("expected failure")
	}
	if result.Error == "" {
		t.Fatal("expected spawn error text")
	}
}

func TestExecuteStreamsProgressLines(t *testing.T) {
	requireShell(t)

	script := filepath.Join(t.TempDir(), "progress.sh")
	testsupport.WriteScript(t, script, "#!/bin/sh\necho one\necho two\necho three\n")

	var lines []string
	r := executor.New("/bin/sh")
	result := r.Execute(context.Background(), executor.Job{
		Script:   script,
		Progress: func(line string) { lines = append(lines, line) },
	})

	if !result.Success {
		t.Fatalf("expected success: %q", result.Error)
	}
	if len(lines) != 3 || lines[0] != "one" || lines[2] != "three" {
		t.Fatalf("unexpected progress lines: %v", lines)
	}
	if result.Output != "one\ntwo\nthree" {
		t.Fatalf("unexpected aggregated output: %q", result.Output)
	}
}

func TestExecuteHonorsTimeout(t *testing.T) {
	requireShell(t)

	script := filepath.Join(t.TempDir(), "slow.sh")
	testsupport.WriteScript(t, script, "#!/bin/sh\nsleep 5\n")

	r := executor.New("/bin/sh", executor.WithTimeout(100*time.Millisecond))
	started := time.Now()
	result := r.Execute(context.Background(), executor.Job{Script: script})

	if result.Success {
		t.Fatal("expected timeout failure")
	}
	if time.Since(started) > 3*time.Second {
		t.Fatal("timeout did not take effect")
	}
}

func TestExecutePassesPositionalArguments(t *testing.T) {
	requireShell(t)

	script := filepath.Join(t.TempDir(), "args.sh")
	testsupport.WriteScript(t, script, "#!/bin/sh\necho \"$1 $2\"\n")

	r := executor.New("/bin/sh")
	result := r.Execute(context.Background(), executor.Job{
		Script: script,
		Args:   []string{"/videos/clip.mp4", "/datasets/cats/positives"},
	})

	if !result.Success {
		t.Fatalf("expected success: %q", result.Error)
	}
	if !strings.Contains(result.Output, "clip.mp4") || !strings.Contains(result.Output, "positives") {
		t.Fatalf("arguments not forwarded: %q", result.Output)
	}
}
