package produce_test

import (
	"context"
	"strings"
	"testing"

	"mixdown/internal/assets"
	"mixdown/internal/logging"
	"mixdown/internal/produce"
	"mixdown/internal/testsupport"
	"mixdown/internal/timeline"
)

func newProducer(t *testing.T, store *timeline.Store) *produce.Producer {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	return produce.New(cfg, store, assets.DefaultLibrary(), nil, logging.NewNop())
}

func TestRunProducesFullEpisode(t *testing.T) {
	store := testsupport.NewConversationStore(t)
	producer := newProducer(t, store)

	if err := producer.Run(context.Background(), "Episode 1"); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	tl := store.Timeline()

	music, ok := store.TrackByRole(timeline.RoleMusic)
	if !ok {
		t.Fatal("expected a music track")
	}
	var intro, outro, background bool
	for _, seg := range music.Segments {
		switch {
		case seg.Start == 0 && !seg.Loop:
			intro = true
		case seg.Loop:
			background = true
		case seg.Start > 0:
			outro = true
		}
	}
	if !intro || !outro || !background {
		t.Fatalf("music track missing material: intro=%v outro=%v background=%v", intro, outro, background)
	}
	if len(music.Automation.Points()) == 0 {
		t.Fatal("expected ducking automation on the music track")
	}

	ambient, ok := store.TrackByRole(timeline.RoleAmbient)
	if !ok || len(ambient.Segments) != 1 {
		t.Fatalf("expected one ambient segment, got %+v", ambient)
	}
	// Conversation text leans tech, so the tech bed should be chosen.
	if ambient.Segments[0].Source != "library://ambient/tech-lab" {
		t.Fatalf("unexpected ambient source %q", ambient.Segments[0].Source)
	}

	var excitedAdjusted bool
	for _, track := range tl.Tracks {
		if track.Role != timeline.RoleSpeech {
			continue
		}
		for _, seg := range track.Segments {
			if strings.Contains(seg.Text, "fantastisch") && seg.Speed > 1.1 {
				excitedAdjusted = true
			}
		}
	}
	if !excitedAdjusted {
		t.Fatal("expected emotional dynamics on the excited line")
	}
}

func TestRunEmitsProgressForEveryStep(t *testing.T) {
	store := testsupport.NewConversationStore(t)
	producer := newProducer(t, store)

	var seen []produce.Progress
	producer.OnProgress(func(p produce.Progress) {
		seen = append(seen, p)
	})

	if err := producer.Run(context.Background(), "Episode 1"); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(seen) != 8 {
		t.Fatalf("expected 8 progress events, got %d", len(seen))
	}
	for i, p := range seen {
		if p.Step != i+1 || p.Total != 8 || p.Name == "" {
			t.Fatalf("unexpected progress event %d: %+v", i, p)
		}
	}
}

func TestRunFailureRestoresSnapshot(t *testing.T) {
	store := timeline.NewStore(0, 0)
	producer := newProducer(t, store)

	// An empty timeline survives the intro step but fails outro placement.
	err := producer.Run(context.Background(), "Episode 1")
	if err == nil {
		t.Fatal("expected pipeline failure on empty timeline")
	}
	if got := len(store.Timeline().Tracks); got != 0 {
		t.Fatalf("timeline should be restored to its snapshot, found %d tracks", got)
	}
}

func TestRunHonorsCancellation(t *testing.T) {
	store := testsupport.NewConversationStore(t)
	cfg := testsupport.NewConfig(t)
	cfg.Production.StepDelayMS = 50
	producer := produce.New(cfg, store, assets.DefaultLibrary(), nil, logging.NewNop())

	before := store.Snapshot()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := producer.Run(ctx, "Episode 1"); err == nil {
		t.Fatal("expected cancellation error")
	}
	after := store.Timeline()
	if len(after.Tracks) != len(before.Tracks) {
		t.Fatalf("canceled run should leave the timeline restored: %d vs %d tracks",
			len(after.Tracks), len(before.Tracks))
	}
}
