package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestRenderTableCapsWideColumns(t *testing.T) {
	longPath := strings.Repeat("/very-long-segment", 10)
	out := renderTable([]tableColumn{
		{Header: "Name"},
		{Header: "Path", MaxWidth: 20},
	}, [][]string{{"birds", longPath}})

	for _, line := range strings.Split(out, "\n") {
		if len([]rune(line)) > 40 {
			t.Fatalf("line wider than capped columns allow: %q", line)
		}
	}
	if !strings.Contains(out, "birds") {
		t.Fatalf("missing row content:\n%s", out)
	}
}

func TestRenderTablePadsShortRows(t *testing.T) {
	out := renderTable([]tableColumn{
		{Header: "Outcome"},
		{Header: "Count", Align: alignRight},
	}, [][]string{{"Total"}})

	if strings.Contains(out, "<nil>") {
		t.Fatalf("short row rendered a nil cell:\n%s", out)
	}
	if !strings.Contains(out, "Total") {
		t.Fatalf("missing row content:\n%s", out)
	}
}

func TestWriteJSONRendersNilSliceAsEmptyArray(t *testing.T) {
	cmd := &cobra.Command{}
	var buf bytes.Buffer
	cmd.SetOut(&buf)

	var jobs []string
	if err := writeJSON(cmd, jobs); err != nil {
		t.Fatalf("writeJSON: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "[]" {
		t.Fatalf("expected empty array, got %q", got)
	}
}
