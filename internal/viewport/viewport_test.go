package viewport

import (
	"math"
	"testing"

	"mixdown/internal/timeline"
)

func TestTimePixelRoundTrip(t *testing.T) {
	m := Mapper{PixelsPerSecond: 50, Zoom: 2}
	px := m.TimeToPixels(3.2)
	if math.Abs(px-320) > 1e-9 {
		t.Fatalf("expected 320 pixels, got %v", px)
	}
	if got := m.PixelsToTime(px); math.Abs(got-3.2) > 1e-9 {
		t.Fatalf("round trip lost time: %v", got)
	}
}

func TestSnapToGridProducesExactMultiples(t *testing.T) {
	settings := SnapSettings{Enabled: true, Grid: 0.5}
	for _, input := range []float64{0.1, 0.74, 0.76, 3.3, 9.99} {
		snapped := Snap(input, settings, false)
		multiple := snapped / settings.Grid
		if math.Abs(multiple-math.Round(multiple)) > 1e-9 {
			t.Fatalf("Snap(%v) = %v is not a multiple of %v", input, snapped, settings.Grid)
		}
	}
}

func TestSnapOverrideRoundsToTenth(t *testing.T) {
	settings := SnapSettings{Enabled: true, Grid: 2.0}
	if got := Snap(1.234, settings, true); math.Abs(got-1.2) > 1e-9 {
		t.Fatalf("expected 1.2 with override, got %v", got)
	}
	disabled := SnapSettings{Enabled: false, Grid: 2.0}
	if got := Snap(1.234, disabled, false); math.Abs(got-1.2) > 1e-9 {
		t.Fatalf("expected 1.2 with snapping disabled, got %v", got)
	}
}

func TestSnapClampsToZero(t *testing.T) {
	if got := Snap(-3.7, SnapSettings{Enabled: true, Grid: 1}, false); got != 0 {
		t.Fatalf("expected clamp to 0, got %v", got)
	}
}

func TestSnapSettingsValidate(t *testing.T) {
	if err := (SnapSettings{Enabled: true, Grid: 0.05}).Validate(); err == nil {
		t.Fatal("expected error for grid below range")
	}
	if err := (SnapSettings{Enabled: true, Grid: 20}).Validate(); err == nil {
		t.Fatal("expected error for grid above range")
	}
	if err := (SnapSettings{Enabled: true, Grid: 1}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDragMovesByPixelDeltaOverRate(t *testing.T) {
	store := timeline.NewStore(44100, 16)
	track := store.AddTrack(timeline.Track{Name: "Host", Role: timeline.RoleSpeech})
	seg, err := store.AddSegment(track.ID, timeline.Segment{Type: timeline.SegmentSpeech, Start: 4, Duration: 2})
	if err != nil {
		t.Fatalf("add segment: %v", err)
	}

	engine := NewEngine(store, Mapper{PixelsPerSecond: 10, Zoom: 2}, SnapSettings{Enabled: false, Grid: 1})
	if err := engine.PointerDown(100, track.ID, seg.ID); err != nil {
		t.Fatalf("pointer down: %v", err)
	}
	// 44 pixels at 10 px/s and zoom 2 is 2.2 seconds.
	if err := engine.PointerMove(144, false); err != nil {
		t.Fatalf("pointer move: %v", err)
	}
	engine.PointerUp()

	moved, err := store.Segment(track.ID, seg.ID)
	if err != nil {
		t.Fatalf("segment: %v", err)
	}
	if math.Abs(moved.Start-6.2) > 1e-9 {
		t.Fatalf("expected start 6.2, got %v", moved.Start)
	}
	if engine.State() != Idle {
		t.Fatalf("expected Idle after release, got %v", engine.State())
	}
}

func TestDragWithGridSnapping(t *testing.T) {
	store := timeline.NewStore(44100, 16)
	track := store.AddTrack(timeline.Track{Name: "Host", Role: timeline.RoleSpeech})
	seg, err := store.AddSegment(track.ID, timeline.Segment{Type: timeline.SegmentSpeech, Start: 0, Duration: 2})
	if err != nil {
		t.Fatalf("add segment: %v", err)
	}

	engine := NewEngine(store, Mapper{PixelsPerSecond: 100, Zoom: 1}, SnapSettings{Enabled: true, Grid: 0.5})
	if err := engine.PointerDown(0, track.ID, seg.ID); err != nil {
		t.Fatalf("pointer down: %v", err)
	}
	// 130 pixels is 1.3 seconds raw, which snaps to 1.5.
	if err := engine.PointerMove(130, false); err != nil {
		t.Fatalf("pointer move: %v", err)
	}
	engine.PointerUp()

	moved, err := store.Segment(track.ID, seg.ID)
	if err != nil {
		t.Fatalf("segment: %v", err)
	}
	if math.Abs(moved.Start-1.5) > 1e-9 {
		t.Fatalf("expected snapped start 1.5, got %v", moved.Start)
	}
}

func TestDragClampsAtZero(t *testing.T) {
	store := timeline.NewStore(44100, 16)
	track := store.AddTrack(timeline.Track{Name: "Host", Role: timeline.RoleSpeech})
	seg, err := store.AddSegment(track.ID, timeline.Segment{Type: timeline.SegmentSpeech, Start: 1, Duration: 2})
	if err != nil {
		t.Fatalf("add segment: %v", err)
	}

	engine := NewEngine(store, Mapper{PixelsPerSecond: 100, Zoom: 1}, SnapSettings{Enabled: false, Grid: 1})
	if err := engine.PointerDown(500, track.ID, seg.ID); err != nil {
		t.Fatalf("pointer down: %v", err)
	}
	if err := engine.PointerMove(0, false); err != nil {
		t.Fatalf("pointer move: %v", err)
	}
	moved, err := store.Segment(track.ID, seg.ID)
	if err != nil {
		t.Fatalf("segment: %v", err)
	}
	if moved.Start != 0 {
		t.Fatalf("expected clamp to 0, got %v", moved.Start)
	}
}

func TestPanAdjustsScroll(t *testing.T) {
	store := timeline.NewStore(44100, 16)
	engine := NewEngine(store, Mapper{PixelsPerSecond: 100, Zoom: 1, Scroll: 50}, SnapSettings{Enabled: false, Grid: 1})
	if err := engine.PointerDown(200, "", ""); err != nil {
		t.Fatalf("pointer down: %v", err)
	}
	if engine.State() != PanningTimeline {
		t.Fatalf("expected panning state, got %v", engine.State())
	}
	if err := engine.PointerMove(180, false); err != nil {
		t.Fatalf("pointer move: %v", err)
	}
	if engine.Mapper.Scroll != 70 {
		t.Fatalf("expected scroll 70, got %v", engine.Mapper.Scroll)
	}
	// Panning far right clamps scroll at zero.
	if err := engine.PointerMove(500, false); err != nil {
		t.Fatalf("pointer move: %v", err)
	}
	if engine.Mapper.Scroll != 0 {
		t.Fatalf("expected scroll clamped to 0, got %v", engine.Mapper.Scroll)
	}
	engine.PointerUp()
}
