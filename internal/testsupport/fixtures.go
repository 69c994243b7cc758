package testsupport

import (
	"testing"

	"mixdown/internal/timeline"
)

// NewConversationStore builds a two speaker timeline with alternating
// speech turns. Tests that exercise analysis, suggestions, and production
// share this fixture.
func NewConversationStore(t testing.TB) *timeline.Store {
	t.Helper()

	store := timeline.NewStore(0, 0)
	anna := store.AddTrack(timeline.Track{Name: "Anna", Role: timeline.RoleSpeech})
	tom := store.AddTrack(timeline.Track{Name: "Tom", Role: timeline.RoleSpeech})

	MustAddSegment(t, store, anna.ID, timeline.Segment{
		Type:      timeline.SegmentSpeech,
		Character: "Anna",
		Text:      "Willkommen zu unserer Show über Technologie und Software.",
		Start:     0,
		Duration:  4,
		Volume:    1,
		Speed:     1,
	})
	MustAddSegment(t, store, tom.ID, timeline.Segment{
		Type:      timeline.SegmentSpeech,
		Character: "Tom",
		Text:      "Danke Anna, heute sprechen wir über künstliche Intelligenz.",
		Start:     4.5,
		Duration:  4,
		Volume:    1,
		Speed:     1,
	})
	MustAddSegment(t, store, anna.ID, timeline.Segment{
		Type:      timeline.SegmentSpeech,
		Character: "Anna",
		Text:      "Das klingt fantastisch, ich freue mich sehr darauf.",
		Start:     9,
		Duration:  3.5,
		Volume:    1,
		Speed:     1,
	})
	return store
}

// MustAddSegment adds a segment and fails the test on error.
func MustAddSegment(t testing.TB, store *timeline.Store, trackID string, segment timeline.Segment) timeline.Segment {
	t.Helper()

	added, err := store.AddSegment(trackID, segment)
	if err != nil {
		t.Fatalf("add segment to %s: %v", trackID, err)
	}
	return added
}
