package arrange

import (
	"sort"

	"mixdown/internal/timeline"
)

const (
	// MaxSameTrackGap is the longest silence tolerated between consecutive
	// turns on one speech track before tightening pulls them together.
	MaxSameTrackGap = 2.0

	// OverlapAmount is how far a reply is pulled under the previous turn to
	// create a conversational overlap.
	OverlapAmount = 0.3

	// MinCrossGap and MaxCrossGap bound the cross-track gaps considered
	// candidates for overlap creation.
	MinCrossGap = 0.1
	MaxCrossGap = 1.0
)

// Gap is a silent span between two consecutive segments on one track.
type Gap struct {
	TrackID string
	PrevID  string
	NextID  string
	Start   float64
	End     float64
}

// Duration returns the gap length in seconds.
func (g Gap) Duration() float64 {
	return g.End - g.Start
}

// Midpoint returns the gap's center.
func (g Gap) Midpoint() float64 {
	return (g.Start + g.End) / 2
}

// SameTrackGaps finds gaps of at least min seconds between consecutive
// segments on each speech track.
func SameTrackGaps(tl timeline.Timeline, min float64) []Gap {
	var gaps []Gap
	for _, track := range tl.Tracks {
		if track.Role != timeline.RoleSpeech {
			continue
		}
		for i := 1; i < len(track.Segments); i++ {
			prev := track.Segments[i-1]
			next := track.Segments[i]
			if next.Start-prev.End() >= min {
				gaps = append(gaps, Gap{
					TrackID: track.ID,
					PrevID:  prev.ID,
					NextID:  next.ID,
					Start:   prev.End(),
					End:     next.Start,
				})
			}
		}
	}
	return gaps
}

// CrossPair is a chronologically adjacent pair of speech segments that sit
// on different tracks, separated by Gap seconds.
type CrossPair struct {
	FromTrack   string
	FromSegment string
	ToTrack     string
	ToSegment   string
	Gap         float64
}

type placedSegment struct {
	trackID string
	segment timeline.Segment
}

func speechSegmentsInOrder(tl timeline.Timeline) []placedSegment {
	var placed []placedSegment
	for _, track := range tl.Tracks {
		if track.Role != timeline.RoleSpeech {
			continue
		}
		for _, seg := range track.Segments {
			placed = append(placed, placedSegment{trackID: track.ID, segment: seg})
		}
	}
	sort.SliceStable(placed, func(i, j int) bool {
		return placed[i].segment.Start < placed[j].segment.Start
	})
	return placed
}

// CrossTrackPairs finds adjacent cross-track speech pairs whose gap falls in
// [minGap, maxGap].
func CrossTrackPairs(tl timeline.Timeline, minGap, maxGap float64) []CrossPair {
	placed := speechSegmentsInOrder(tl)

	var pairs []CrossPair
	for i := 1; i < len(placed); i++ {
		prev := placed[i-1]
		next := placed[i]
		if prev.trackID == next.trackID {
			continue
		}
		gap := next.segment.Start - prev.segment.End()
		if gap < minGap || gap > maxGap {
			continue
		}
		pairs = append(pairs, CrossPair{
			FromTrack:   prev.trackID,
			FromSegment: prev.segment.ID,
			ToTrack:     next.trackID,
			ToSegment:   next.segment.ID,
			Gap:         gap,
		})
	}
	return pairs
}

// TightenGaps clamps same-track gaps longer than maxGap down to maxGap by
// shifting every later segment on that track left. Returns the number of
// gaps tightened.
func TightenGaps(store *timeline.Store, maxGap float64) (int, error) {
	tl := store.Timeline()
	tightened := 0

	for _, track := range tl.Tracks {
		if track.Role != timeline.RoleSpeech {
			continue
		}
		shift := 0.0
		prevEnd := 0.0
		for i, seg := range track.Segments {
			newStart := seg.Start - shift
			if i > 0 {
				if gap := newStart - prevEnd; gap > maxGap {
					shift += gap - maxGap
					newStart = prevEnd + maxGap
					tightened++
				}
			}
			if newStart != seg.Start {
				start := newStart
				if _, err := store.UpdateSegment(track.ID, seg.ID, func(s timeline.Segment) timeline.Segment {
					s.Start = start
					return s
				}); err != nil {
					return tightened, err
				}
			}
			prevEnd = newStart + seg.Duration
		}
	}
	return tightened, nil
}

// Optimize tightens long same-track gaps and creates conversational
// overlaps in one pass. Returns the total number of adjustments.
func Optimize(store *timeline.Store) (int, error) {
	tightened, err := TightenGaps(store, MaxSameTrackGap)
	if err != nil {
		return tightened, err
	}
	overlapped, err := CreateOverlaps(store)
	return tightened + overlapped, err
}

// CreateOverlaps pulls the later segment of each qualifying cross-track pair
// under the previous turn by OverlapAmount. Returns the number of overlaps
// created.
func CreateOverlaps(store *timeline.Store) (int, error) {
	tl := store.Timeline()
	placed := speechSegmentsInOrder(tl)
	created := 0

	for i := 1; i < len(placed); i++ {
		prev := placed[i-1]
		next := placed[i]
		if prev.trackID == next.trackID {
			continue
		}
		gap := next.segment.Start - prev.segment.End()
		if gap < MinCrossGap || gap > MaxCrossGap {
			continue
		}
		start := prev.segment.End() - OverlapAmount
		if start < 0 {
			start = 0
		}
		if _, err := store.UpdateSegment(next.trackID, next.segment.ID, func(s timeline.Segment) timeline.Segment {
			s.Start = start
			return s
		}); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}
