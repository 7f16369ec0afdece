package deps_test

import (
	"testing"

	"pareidolia/internal/deps"
	"pareidolia/internal/testsupport"
)

func TestCheckBinariesFindsStub(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedPython())

	statuses := deps.CheckBinaries(deps.Default(cfg))
	if len(statuses) != 1 {
		t.Fatalf("expected one requirement, got %d", len(statuses))
	}
	if !statuses[0].Available {
		t.Fatalf("expected python stub to be found: %+v", statuses[0])
	}
}

func TestCheckBinariesReportsMissing(t *testing.T) {
	statuses := deps.CheckBinaries([]deps.Requirement{
		{Name: "Ghost", Command: "definitely-not-a-real-binary-name"},
	})
	if statuses[0].Available {
		t.Fatal("expected missing binary")
	}
	if statuses[0].Detail == "" {
		t.Fatal("expected detail message")
	}
}

func TestCheckBinariesUnconfigured(t *testing.T) {
	statuses := deps.CheckBinaries([]deps.Requirement{{Name: "Empty"}})
	if statuses[0].Available {
		t.Fatal("expected unavailable")
	}
	if statuses[0].Detail != "command not configured" {
		t.Fatalf("unexpected detail: %q", statuses[0].Detail)
	}
}
