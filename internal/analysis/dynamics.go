package analysis

import (
	"strings"

	"mixdown/internal/timeline"
)

// Dynamics is the playback adjustment suggested for a sentiment: speed as a
// multiplier and pitch in semitones.
type Dynamics struct {
	Speed float64
	Pitch int
}

// DynamicsFor maps a sentiment to its speed/pitch adjustment.
func DynamicsFor(s Sentiment) Dynamics {
	for _, entry := range sentimentTable {
		if entry.Label == s {
			return Dynamics{Speed: entry.Speed, Pitch: entry.Pitch}
		}
	}
	return Dynamics{Speed: 1.0, Pitch: 0}
}

// ApplyDynamics classifies one segment's text and overwrites its speed and
// pitch with the mapped values.
func ApplyDynamics(store *timeline.Store, trackID, segmentID string) (Sentiment, error) {
	seg, err := store.Segment(trackID, segmentID)
	if err != nil {
		return SentimentNeutral, err
	}
	result := ClassifySentiment(seg.Text)
	dyn := DynamicsFor(result.Sentiment)
	_, err = store.UpdateSegment(trackID, segmentID, func(s timeline.Segment) timeline.Segment {
		s.Speed = dyn.Speed
		s.Pitch = dyn.Pitch
		return s
	})
	if err != nil {
		return SentimentNeutral, err
	}
	return result.Sentiment, nil
}

// ApplyDynamicsToAll applies emotional dynamics to every eligible segment:
// music, sfx, and ambient tracks are skipped, as are segments without text.
// It returns the number of segments touched.
func ApplyDynamicsToAll(store *timeline.Store) (int, error) {
	applied := 0
	for _, track := range store.Timeline().Tracks {
		switch track.Role {
		case timeline.RoleMusic, timeline.RoleSFX, timeline.RoleAmbient:
			continue
		}
		for _, seg := range track.Segments {
			if strings.TrimSpace(seg.Text) == "" {
				continue
			}
			if _, err := ApplyDynamics(store, track.ID, seg.ID); err != nil {
				return applied, err
			}
			applied++
		}
	}
	return applied, nil
}
