// Package ducking derives volume automation for the music track from the
// time intervals occupied by non-music material, so music dips while speech
// is present and comes back up afterwards.
package ducking

import (
	"errors"

	"mixdown/internal/timeline"
)

const (
	// Lead and Tail pad each duck window: the level drops half a second
	// before the overlapping material starts and recovers half a second
	// after it ends.
	Lead = 0.5
	Tail = 0.5

	// DuckLevel is the music level while other material plays; RestoreLevel
	// is the moderate level it returns to.
	DuckLevel    = 0.15
	RestoreLevel = 0.5
)

// ErrNoMusicTrack is returned when the timeline has nothing to duck.
var ErrNoMusicTrack = errors.New("no music track to duck")

// Generate scans [start, end] for segments on non-music tracks and inserts a
// duck window per overlapping interval into the first music track's
// automation curve. The overlap test is open-interval: a segment touching
// the range boundary exactly does not count. Windows merge on insert, so
// repeated generation over the same range is idempotent.
func Generate(store *timeline.Store, start, end float64) (int, error) {
	music, ok := store.TrackByRole(timeline.RoleMusic)
	if !ok {
		return 0, ErrNoMusicTrack
	}

	inserted := 0
	for _, track := range store.Timeline().Tracks {
		if track.Role == timeline.RoleMusic {
			continue
		}
		for _, seg := range track.Segments {
			if seg.Start >= end || seg.End() <= start {
				continue
			}
			window := timeline.Window{
				Start:   seg.Start - Lead,
				End:     seg.End() + Tail,
				Duck:    DuckLevel,
				Restore: RestoreLevel,
			}
			if err := store.InsertDuckWindow(music.ID, window); err != nil {
				return inserted, err
			}
			inserted++
		}
	}
	return inserted, nil
}
