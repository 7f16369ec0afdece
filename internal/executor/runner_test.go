package executor

import (
	"strings"
	"testing"
	"time"
)

func collectLines(t *testing.T, input string) []string {
	t.Helper()

	var lines []string
	done := make(chan struct{})
	go func() {
		streamLines(strings.NewReader(input), func(line string) {
			lines = append(lines, line)
		})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("streamLines did not drain its input")
	}
	return lines
}

func TestStreamLinesHandlesOversizedLine(t *testing.T) {
	long := strings.Repeat("x", 4<<20)
	lines := collectLines(t, "before\n"+long+"\nafter\n")

	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "before" || lines[2] != "after" {
		t.Fatalf("unexpected surrounding lines: %q, %q", lines[0], lines[2])
	}
	if lines[1] != long {
		t.Fatalf("long line truncated to %d bytes", len(lines[1]))
	}
}

func TestStreamLinesSplitsCarriageReturnProgress(t *testing.T) {
	lines := collectLines(t, "epoch 1/3\repoch 2/3\repoch 3/3")

	want := []string{"epoch 1/3", "epoch 2/3", "epoch 3/3"}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %v", len(want), lines)
	}
	for i, line := range want {
		if lines[i] != line {
			t.Fatalf("line %d: got %q, want %q", i, lines[i], line)
		}
	}
}

func TestStreamLinesKeepsBlankLinesAndTrailingText(t *testing.T) {
	lines := collectLines(t, "head\r\n\ntail")

	want := []string{"head", "", "tail"}
	if len(lines) != len(want) {
		t.Fatalf("expected %v, got %v", want, lines)
	}
	for i, line := range want {
		if lines[i] != line {
			t.Fatalf("line %d: got %q, want %q", i, lines[i], line)
		}
	}
}
