package timeline

import (
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// Mutations on unknown ids used to be silent no-ops; that made stale ids a
// source of quiet data loss, so the store now reports them.
var (
	ErrTrackNotFound   = errors.New("track not found")
	ErrSegmentNotFound = errors.New("segment not found")
)

const (
	defaultSampleRate = 44100
	defaultBitDepth   = 16
)

// Store owns the timeline for one production session.
type Store struct {
	timeline Timeline
}

// NewStore creates a store with an empty timeline. Zero sample rate or bit
// depth fall back to podcast defaults (44.1 kHz / 16 bit).
func NewStore(sampleRate, bitDepth int) *Store {
	if sampleRate <= 0 {
		sampleRate = defaultSampleRate
	}
	if bitDepth <= 0 {
		bitDepth = defaultBitDepth
	}
	return &Store{timeline: Timeline{SampleRate: sampleRate, BitDepth: bitDepth}}
}

// Timeline returns the current timeline value. Callers must treat the result
// as read-only; all writes go through the store.
func (s *Store) Timeline() Timeline {
	return s.timeline
}

// Duration returns the current total duration in seconds.
func (s *Store) Duration() float64 {
	return s.timeline.Duration
}

// AddTrack appends a track, assigning an id and ordinal when missing, and
// returns the stored value.
func (s *Store) AddTrack(track Track) Track {
	track = track.normalize()
	if track.ID == "" {
		track.ID = uuid.NewString()
	}
	if track.Number == 0 {
		track.Number = len(s.timeline.Tracks) + 1
	}
	s.timeline.Tracks = append(s.timeline.Tracks, track)
	return track
}

// Track returns the track with the given id.
func (s *Store) Track(id string) (Track, error) {
	for _, track := range s.timeline.Tracks {
		if track.ID == id {
			return track, nil
		}
	}
	return Track{}, fmt.Errorf("%w: %s", ErrTrackNotFound, id)
}

// TrackByRole returns the first track with the given role.
func (s *Store) TrackByRole(role Role) (Track, bool) {
	for _, track := range s.timeline.Tracks {
		if track.Role == role {
			return track, true
		}
	}
	return Track{}, false
}

// UpdateTrack replaces the identified track with the value produced by
// update. The update function receives a copy; partial in-place aliasing is
// not possible.
func (s *Store) UpdateTrack(id string, update func(Track) Track) (Track, error) {
	for i, track := range s.timeline.Tracks {
		if track.ID != id {
			continue
		}
		next := update(track).normalize()
		next.ID = track.ID
		s.timeline.Tracks[i] = next
		s.extendDuration()
		return next, nil
	}
	return Track{}, fmt.Errorf("%w: %s", ErrTrackNotFound, id)
}

// RemoveTrack deletes a track and, with it, every segment it holds.
func (s *Store) RemoveTrack(id string) error {
	for i, track := range s.timeline.Tracks {
		if track.ID != id {
			continue
		}
		s.timeline.Tracks = append(s.timeline.Tracks[:i], s.timeline.Tracks[i+1:]...)
		return nil
	}
	return fmt.Errorf("%w: %s", ErrTrackNotFound, id)
}

// AddSegment places a segment on a track, keeping the track's segments sorted
// by start time and extending the timeline duration when needed. Overlap with
// existing segments is allowed; sorting is a presentation and gap-finding
// convenience, not a constraint.
func (s *Store) AddSegment(trackID string, seg Segment) (Segment, error) {
	for i, track := range s.timeline.Tracks {
		if track.ID != trackID {
			continue
		}
		seg = seg.normalize()
		if seg.Duration <= 0 {
			return Segment{}, fmt.Errorf("segment duration must be positive, got %v", seg.Duration)
		}
		if seg.ID == "" {
			seg.ID = uuid.NewString()
		}
		if seg.Number == 0 {
			seg.Number = len(track.Segments) + 1
		}
		segments := make([]Segment, 0, len(track.Segments)+1)
		segments = append(segments, track.Segments...)
		segments = append(segments, seg)
		sort.SliceStable(segments, func(a, b int) bool {
			return segments[a].Start < segments[b].Start
		})
		track.Segments = segments
		s.timeline.Tracks[i] = track
		s.extendDuration()
		return seg, nil
	}
	return Segment{}, fmt.Errorf("%w: %s", ErrTrackNotFound, trackID)
}

// Segment returns a segment by track and segment id.
func (s *Store) Segment(trackID, segmentID string) (Segment, error) {
	track, err := s.Track(trackID)
	if err != nil {
		return Segment{}, err
	}
	for _, seg := range track.Segments {
		if seg.ID == segmentID {
			return seg, nil
		}
	}
	return Segment{}, fmt.Errorf("%w: %s", ErrSegmentNotFound, segmentID)
}

// UpdateSegment replaces the identified segment with the value produced by
// update, re-sorts the track, and extends the timeline duration when needed.
func (s *Store) UpdateSegment(trackID, segmentID string, update func(Segment) Segment) (Segment, error) {
	for i, track := range s.timeline.Tracks {
		if track.ID != trackID {
			continue
		}
		for j, seg := range track.Segments {
			if seg.ID != segmentID {
				continue
			}
			next := update(seg).normalize()
			next.ID = seg.ID
			if next.Duration <= 0 {
				return Segment{}, fmt.Errorf("segment duration must be positive, got %v", next.Duration)
			}
			segments := make([]Segment, len(track.Segments))
			copy(segments, track.Segments)
			segments[j] = next
			sort.SliceStable(segments, func(a, b int) bool {
				return segments[a].Start < segments[b].Start
			})
			track.Segments = segments
			s.timeline.Tracks[i] = track
			s.extendDuration()
			return next, nil
		}
		return Segment{}, fmt.Errorf("%w: %s", ErrSegmentNotFound, segmentID)
	}
	return Segment{}, fmt.Errorf("%w: %s", ErrTrackNotFound, trackID)
}

// RemoveSegment deletes a segment from its track.
func (s *Store) RemoveSegment(trackID, segmentID string) error {
	for i, track := range s.timeline.Tracks {
		if track.ID != trackID {
			continue
		}
		for j, seg := range track.Segments {
			if seg.ID != segmentID {
				continue
			}
			segments := make([]Segment, 0, len(track.Segments)-1)
			segments = append(segments, track.Segments[:j]...)
			segments = append(segments, track.Segments[j+1:]...)
			track.Segments = segments
			s.timeline.Tracks[i] = track
			return nil
		}
		return fmt.Errorf("%w: %s", ErrSegmentNotFound, segmentID)
	}
	return fmt.Errorf("%w: %s", ErrTrackNotFound, trackID)
}

// AddEffect attaches an effect with default parameters to a track.
func (s *Store) AddEffect(trackID string, kind EffectType) (Effect, error) {
	effect := NewEffect(kind)
	_, err := s.UpdateTrack(trackID, func(track Track) Track {
		effects := make([]Effect, 0, len(track.Effects)+1)
		effects = append(effects, track.Effects...)
		effects = append(effects, effect)
		track.Effects = effects
		return track
	})
	if err != nil {
		return Effect{}, err
	}
	return effect, nil
}

// InsertDuckWindow merges a duck window into a track's automation curve.
func (s *Store) InsertDuckWindow(trackID string, w Window) error {
	_, err := s.UpdateTrack(trackID, func(track Track) Track {
		curve := track.Automation.clone()
		curve.InsertWindow(w)
		track.Automation = curve
		return track
	})
	return err
}

// extendDuration keeps the total duration invariant: it only ever grows, and
// never drops below the maximum segment end time.
func (s *Store) extendDuration() {
	if end := s.timeline.LastEnd(nil); end > s.timeline.Duration {
		s.timeline.Duration = end
	}
}
