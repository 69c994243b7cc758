package exportjob_test

import (
	"context"
	"testing"

	"mixdown/internal/exportjob"
	"mixdown/internal/testsupport"
)

func TestOpenCreatesSchemaAndInsertsJob(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	job, err := store.NewJob(ctx, "Episode 12", "wav", `{"tracks":[]}`)
	if err != nil {
		t.Fatalf("NewJob failed: %v", err)
	}
	if job.ID == 0 {
		t.Fatal("expected job ID to be assigned")
	}
	if job.Status != exportjob.StatusPending {
		t.Fatalf("expected pending status, got %s", job.Status)
	}

	fetched, err := store.GetByID(ctx, job.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if fetched.Title != "Episode 12" || fetched.SnapshotJSON != `{"tracks":[]}` {
		t.Fatalf("unexpected fetched job: %#v", fetched)
	}
}

func TestGetByIDUnknownReturnsNotFound(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	_, err := store.GetByID(context.Background(), 42)
	if err == nil {
		t.Fatal("expected error for missing job")
	}
}

func TestTransitionLifecycle(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	job, err := store.NewJob(ctx, "Episode 1", "wav", "{}")
	if err != nil {
		t.Fatalf("NewJob failed: %v", err)
	}

	job, err = store.Transition(ctx, job.ID, exportjob.StatusExporting, "")
	if err != nil {
		t.Fatalf("transition to exporting: %v", err)
	}
	job, err = store.Transition(ctx, job.ID, exportjob.StatusCompleted, "/tmp/out.wav")
	if err != nil {
		t.Fatalf("transition to completed: %v", err)
	}
	if job.ArtifactPath != "/tmp/out.wav" {
		t.Fatalf("expected artifact path to be recorded, got %q", job.ArtifactPath)
	}
	if !job.Terminal() {
		t.Fatal("completed job should be terminal")
	}
}

func TestTransitionRejectsInvalidEdge(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	job, err := store.NewJob(ctx, "Episode 1", "wav", "{}")
	if err != nil {
		t.Fatalf("NewJob failed: %v", err)
	}
	if _, err := store.Transition(ctx, job.ID, exportjob.StatusCompleted, ""); err == nil {
		t.Fatal("expected pending -> completed to be rejected")
	}
}

func TestFailedJobRecordsMessageAndRetries(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	job, err := store.NewJob(ctx, "Episode 1", "wav", "{}")
	if err != nil {
		t.Fatalf("NewJob failed: %v", err)
	}
	if _, err := store.Transition(ctx, job.ID, exportjob.StatusExporting, ""); err != nil {
		t.Fatalf("transition to exporting: %v", err)
	}
	job, err = store.Transition(ctx, job.ID, exportjob.StatusFailed, "render crashed")
	if err != nil {
		t.Fatalf("transition to failed: %v", err)
	}
	if job.ErrorMessage != "render crashed" {
		t.Fatalf("expected failure message, got %q", job.ErrorMessage)
	}

	job, err = store.Transition(ctx, job.ID, exportjob.StatusPending, "")
	if err != nil {
		t.Fatalf("retry transition: %v", err)
	}
	if job.ErrorMessage != "" {
		t.Fatalf("retry should clear failure message, got %q", job.ErrorMessage)
	}
}

func TestListFiltersByStatus(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	first, err := store.NewJob(ctx, "One", "wav", "{}")
	if err != nil {
		t.Fatalf("NewJob failed: %v", err)
	}
	if _, err := store.NewJob(ctx, "Two", "mp3", "{}"); err != nil {
		t.Fatalf("NewJob failed: %v", err)
	}
	if _, err := store.Transition(ctx, first.ID, exportjob.StatusExporting, ""); err != nil {
		t.Fatalf("transition: %v", err)
	}

	pending, err := store.List(ctx, exportjob.StatusPending)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(pending) != 1 || pending[0].Title != "Two" {
		t.Fatalf("unexpected pending jobs: %#v", pending)
	}

	all, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List all failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(all))
	}
}

func TestResetStuckReturnsExportingToPending(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	job, err := store.NewJob(ctx, "One", "wav", "{}")
	if err != nil {
		t.Fatalf("NewJob failed: %v", err)
	}
	if _, err := store.Transition(ctx, job.ID, exportjob.StatusExporting, ""); err != nil {
		t.Fatalf("transition: %v", err)
	}

	affected, err := store.ResetStuck(ctx)
	if err != nil {
		t.Fatalf("ResetStuck failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("expected 1 reset job, got %d", affected)
	}
	job, err = store.GetByID(ctx, job.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if job.Status != exportjob.StatusPending {
		t.Fatalf("expected pending after reset, got %s", job.Status)
	}
}

func TestHealthCountsByStatus(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	job, err := store.NewJob(ctx, "One", "wav", "{}")
	if err != nil {
		t.Fatalf("NewJob failed: %v", err)
	}
	if _, err := store.NewJob(ctx, "Two", "wav", "{}"); err != nil {
		t.Fatalf("NewJob failed: %v", err)
	}
	if _, err := store.Transition(ctx, job.ID, exportjob.StatusExporting, ""); err != nil {
		t.Fatalf("transition: %v", err)
	}
	if _, err := store.Transition(ctx, job.ID, exportjob.StatusFailed, "disk full"); err != nil {
		t.Fatalf("transition: %v", err)
	}

	health, err := store.Health(ctx)
	if err != nil {
		t.Fatalf("Health failed: %v", err)
	}
	if health.Total != 2 {
		t.Fatalf("expected total 2, got %d", health.Total)
	}
	if health.ByStatus[exportjob.StatusFailed] != 1 || health.ByStatus[exportjob.StatusPending] != 1 {
		t.Fatalf("unexpected counts: %#v", health.ByStatus)
	}
	if health.LastError != "disk full" {
		t.Fatalf("expected last failure message, got %q", health.LastError)
	}
}

func TestParseStatus(t *testing.T) {
	if status, ok := exportjob.ParseStatus(" Pending "); !ok || status != exportjob.StatusPending {
		t.Fatalf("unexpected parse result: %v %v", status, ok)
	}
	if _, ok := exportjob.ParseStatus("bogus"); ok {
		t.Fatal("expected bogus status to be rejected")
	}
}
