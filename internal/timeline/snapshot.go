package timeline

// Snapshot returns a deep copy of the current timeline. The auto-produce
// pipeline takes one before its first step so a mid-pipeline failure can be
// rolled back instead of leaving partial production state behind.
func (s *Store) Snapshot() Timeline {
	return s.timeline.clone()
}

// Restore replaces the timeline with a previously taken snapshot.
func (s *Store) Restore(snapshot Timeline) {
	s.timeline = snapshot.clone()
}

func (t Timeline) clone() Timeline {
	out := t
	out.Tracks = make([]Track, len(t.Tracks))
	for i, track := range t.Tracks {
		out.Tracks[i] = track.clone()
	}
	return out
}

func (t Track) clone() Track {
	out := t
	if len(t.Segments) > 0 {
		out.Segments = make([]Segment, len(t.Segments))
		copy(out.Segments, t.Segments)
	}
	if len(t.Effects) > 0 {
		out.Effects = make([]Effect, len(t.Effects))
		for i, effect := range t.Effects {
			params := make(map[string]float64, len(effect.Params))
			for k, v := range effect.Params {
				params[k] = v
			}
			effect.Params = params
			out.Effects[i] = effect
		}
	}
	out.Automation = t.Automation.clone()
	return out
}
