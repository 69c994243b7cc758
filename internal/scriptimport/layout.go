package scriptimport

import (
	"unicode/utf8"

	"mixdown/internal/timeline"
)

// Layout selects how imported speaker turns are placed in time. The policy
// is explicit rather than an accident of cursor bookkeeping; every policy
// here produces non-overlapping placement, since nothing suggests overlap is
// wanted on import.
type Layout int

const (
	// LayoutSequential places all of a speaker's turns back-to-back before
	// moving to the next speaker, sharing one running cursor across
	// speakers. This is the historical behavior and the default.
	LayoutSequential Layout = iota
	// LayoutInterleaved places turns in script order with the shared
	// cursor, preserving conversational back-and-forth.
	LayoutInterleaved
)

const (
	// secondsPerChar estimates speech duration from text length. This is a
	// reading-speed heuristic, not measured audio; TTS rendering replaces
	// the estimate later.
	secondsPerChar = 0.05

	// turnGap is the fixed pause between consecutive turns.
	turnGap = 0.5

	// minTurnDuration keeps degenerate turns (single characters, empty
	// bodies) placeable.
	minTurnDuration = 0.1
)

// EstimateDuration returns the estimated seconds of speech for a turn.
func EstimateDuration(text string) float64 {
	d := float64(utf8.RuneCountInString(text)) * secondsPerChar
	if d < minTurnDuration {
		return minTurnDuration
	}
	return d
}

// Import parses the script and builds one track per speaker with segments
// placed per the layout policy. Returns the created tracks in first-seen
// speaker order.
func Import(store *timeline.Store, script string, policy Layout) ([]timeline.Track, error) {
	lines, err := Parse(script)
	if err != nil {
		return nil, err
	}

	tracks := make(map[string]timeline.Track)
	var order []string
	for _, speaker := range Speakers(lines) {
		track := store.AddTrack(timeline.Track{Name: speaker, Role: timeline.RoleSpeech})
		tracks[speaker] = track
		order = append(order, speaker)
	}

	place := func(cursor float64, line Line) (float64, error) {
		duration := EstimateDuration(line.Text)
		_, err := store.AddSegment(tracks[line.Speaker].ID, timeline.Segment{
			Type:      timeline.SegmentSpeech,
			Character: line.Speaker,
			Text:      line.Text,
			Start:     cursor,
			Duration:  duration,
			Status:    timeline.StatusPending,
		})
		if err != nil {
			return cursor, err
		}
		return cursor + duration + turnGap, nil
	}

	cursor := 0.0
	switch policy {
	case LayoutInterleaved:
		for _, line := range lines {
			if cursor, err = place(cursor, line); err != nil {
				return nil, err
			}
		}
	default:
		for _, speaker := range order {
			for _, line := range lines {
				if line.Speaker != speaker {
					continue
				}
				if cursor, err = place(cursor, line); err != nil {
					return nil, err
				}
			}
		}
	}

	out := make([]timeline.Track, 0, len(order))
	for _, speaker := range order {
		track, err := store.Track(tracks[speaker].ID)
		if err != nil {
			return nil, err
		}
		out = append(out, track)
	}
	return out, nil
}
