package export_test

import (
	"context"
	"errors"
	"testing"

	"mixdown/internal/exportjob"
	"mixdown/internal/logging"
	"mixdown/internal/services"
	"mixdown/internal/services/export"
	"mixdown/internal/testsupport"
	"mixdown/internal/timeline"
)

func newService(t *testing.T) *export.Service {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	return export.NewService(store, nil, logging.NewNop())
}

func TestSubmitSerializesSnapshot(t *testing.T) {
	svc := newService(t)
	store := testsupport.NewConversationStore(t)

	job, err := svc.Submit(context.Background(), store.Timeline(), "Episode 3", "WAV")
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if job.Status != exportjob.StatusPending || job.Format != "wav" {
		t.Fatalf("unexpected job: %#v", job)
	}

	restored, err := export.Restore(job)
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if len(restored.Tracks) != 2 {
		t.Fatalf("expected 2 tracks in snapshot, got %d", len(restored.Tracks))
	}
	if restored.Duration != store.Duration() {
		t.Fatalf("snapshot duration mismatch: %v vs %v", restored.Duration, store.Duration())
	}
}

func TestSubmitRejectsEmptyTimeline(t *testing.T) {
	svc := newService(t)
	_, err := svc.Submit(context.Background(), timeline.Timeline{}, "Episode", "wav")
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestLifecycleStartFinish(t *testing.T) {
	svc := newService(t)
	store := testsupport.NewConversationStore(t)
	ctx := context.Background()

	job, err := svc.Submit(ctx, store.Timeline(), "Episode 3", "wav")
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if _, err := svc.Start(ctx, job.ID); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	finished, err := svc.Finish(ctx, job.ID, "/exports/episode3.wav")
	if err != nil {
		t.Fatalf("Finish failed: %v", err)
	}
	if finished.Status != exportjob.StatusCompleted || finished.ArtifactPath != "/exports/episode3.wav" {
		t.Fatalf("unexpected finished job: %#v", finished)
	}
}

func TestStatusUnknownJob(t *testing.T) {
	svc := newService(t)
	if _, err := svc.Status(context.Background(), 99); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}
