package main

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"pareidolia/internal/testsupport"
)

func TestLogStartupDiagnostics(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	logStartupDiagnostics(logger, cfg)

	out := buf.String()
	if !strings.Contains(out, "paths resolved") {
		t.Fatalf("expected path summary, got:\n%s", out)
	}
	if !strings.Contains(out, "dependency") {
		t.Fatalf("expected dependency report, got:\n%s", out)
	}

	// Nil arguments are a no-op.
	logStartupDiagnostics(nil, cfg)
	logStartupDiagnostics(logger, nil)
}
