package history_test

import (
	"context"
	"testing"
	"time"

	"pareidolia/internal/history"
	"pareidolia/internal/testsupport"
)

func openStore(t *testing.T) *history.Store {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	store, err := history.Open(cfg)
	if err != nil {
		t.Fatalf("history.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

func TestRecordAndGet(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	id, err := store.Record(ctx, history.Job{
		Kind:     history.KindExtract,
		Script:   "/data/scripts/extract_images.py",
		Args:     []string{"/tmp/clip.mp4", "/data/datasets/cats/positives"},
		Success:  true,
		Output:   "Created 12 images at /data/datasets/cats/positives.",
		Duration: 3.5,
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if id == "" {
		t.Fatal("expected generated id")
	}

	job, err := store.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if job == nil {
		t.Fatal("expected job")
	}
	if job.Kind != history.KindExtract {
		t.Fatalf("unexpected kind: %q", job.Kind)
	}
	if len(job.Args) != 2 || job.Args[0] != "/tmp/clip.mp4" {
		t.Fatalf("unexpected args: %v", job.Args)
	}
	if !job.Success || job.Output == "" {
		t.Fatalf("unexpected result fields: %+v", job)
	}
	if job.Started.IsZero() {
		t.Fatal("expected started timestamp")
	}
}

func TestGetMissingReturnsNil(t *testing.T) {
	store := openStore(t)
	job, err := store.Get(context.Background(), "no-such-id")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if job != nil {
		t.Fatalf("expected nil job, got %+v", job)
	}
}

func TestListNewestFirst(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		_, err := store.Record(ctx, history.Job{
			ID:      string(rune('a' + i)),
			Kind:    history.KindTrain,
			Script:  "train_model.py",
			Started: base.Add(time.Duration(i) * time.Minute),
			Success: i%2 == 0,
		})
		if err != nil {
			t.Fatalf("Record %d: %v", i, err)
		}
	}

	jobs, err := store.List(ctx, 2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}
	if jobs[0].ID != "c" || jobs[1].ID != "b" {
		t.Fatalf("unexpected order: %s, %s", jobs[0].ID, jobs[1].ID)
	}
}

func TestStats(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	outcomes := []bool{true, true, false}
	for _, ok := range outcomes {
		if _, err := store.Record(ctx, history.Job{Kind: history.KindEnv, Script: "-", Success: ok}); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	total, succeeded, failed, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if total != 3 || succeeded != 2 || failed != 1 {
		t.Fatalf("unexpected stats: total=%d ok=%d failed=%d", total, succeeded, failed)
	}
}

func TestListOrdersSubSecondStarts(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	// 100ms vs 120ms from the same second: a formatted-timestamp column
	// sorts these wrong because trailing zeros are truncated.
	base := time.Now().UTC().Truncate(time.Second)
	earlier := base.Add(100 * time.Millisecond)
	later := base.Add(120 * time.Millisecond)

	for _, job := range []history.Job{
		{ID: "early", Kind: history.KindExtract, Script: "extract_images.py", Started: earlier},
		{ID: "late", Kind: history.KindExtract, Script: "extract_images.py", Started: later},
	} {
		if _, err := store.Record(ctx, job); err != nil {
			t.Fatalf("Record %s: %v", job.ID, err)
		}
	}

	jobs, err := store.List(ctx, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(jobs) != 2 || jobs[0].ID != "late" || jobs[1].ID != "early" {
		t.Fatalf("unexpected order: %+v", jobs)
	}
	if !jobs[0].Started.Equal(later) {
		t.Fatalf("round-tripped start drifted: %v vs %v", jobs[0].Started, later)
	}
}
