package assets

import (
	"errors"
	"fmt"
	"math"

	"mixdown/internal/ducking"
	"mixdown/internal/timeline"
)

// Asset describes a library asset by name, known duration, and source
// locator. The core never decodes audio; duration comes from the library.
type Asset struct {
	Name     string  `json:"name" toml:"name"`
	Duration float64 `json:"duration" toml:"duration"`
	Source   string  `json:"source" toml:"source"`
}

// ErrEmptyTimeline is returned by insertions that need existing material to
// size or place themselves against.
var ErrEmptyTimeline = errors.New("timeline has no material yet")

const (
	backgroundVolume = 0.15
	ambientVolume    = 0.25

	longFade = 2.0
	miniFade = 0.1

	outroGap = 1.0
)

func validateAsset(asset Asset) error {
	if asset.Duration <= 0 {
		return fmt.Errorf("asset %q has no duration", asset.Name)
	}
	return nil
}

// ensureTrack finds the first track with the given role or creates one with
// role defaults appended to the timeline.
func ensureTrack(store *timeline.Store, role timeline.Role) timeline.Track {
	if track, ok := store.TrackByRole(role); ok {
		return track
	}
	return store.AddTrack(timeline.Track{
		Name:   trackDisplayName(role),
		Role:   role,
		Volume: defaultTrackVolume(role),
	})
}

func trackDisplayName(role timeline.Role) string {
	switch role {
	case timeline.RoleMusic:
		return "Music"
	case timeline.RoleSFX:
		return "SFX"
	case timeline.RoleAmbient:
		return "Ambient"
	default:
		return "Track"
	}
}

func defaultTrackVolume(role timeline.Role) float64 {
	switch role {
	case timeline.RoleMusic:
		return 0.8
	case timeline.RoleAmbient:
		return 0.4
	default:
		return 1.0
	}
}

// InsertIntroMusic places the asset at t=0 on the music track and ducks the
// music under everything already in that range.
func InsertIntroMusic(store *timeline.Store, asset Asset) (timeline.Segment, error) {
	if err := validateAsset(asset); err != nil {
		return timeline.Segment{}, err
	}
	track := ensureTrack(store, timeline.RoleMusic)
	seg, err := store.AddSegment(track.ID, timeline.Segment{
		Type:      timeline.SegmentMusic,
		Character: asset.Name,
		Source:    asset.Source,
		Start:     0,
		Duration:  asset.Duration,
		FadeIn:    0.5,
		FadeOut:   longFade,
	})
	if err != nil {
		return timeline.Segment{}, err
	}
	if _, err := ducking.Generate(store, 0, asset.Duration); err != nil && !errors.Is(err, ducking.ErrNoMusicTrack) {
		return seg, err
	}
	return seg, nil
}

// InsertOutroMusic places the asset one second after the last non-music
// segment ends, with a long fade-in so it rises out of the closing words.
func InsertOutroMusic(store *timeline.Store, asset Asset) (timeline.Segment, error) {
	if err := validateAsset(asset); err != nil {
		return timeline.Segment{}, err
	}
	lastEnd := store.Timeline().LastEnd(func(t timeline.Track) bool {
		return t.Role != timeline.RoleMusic
	})
	if lastEnd == 0 {
		return timeline.Segment{}, ErrEmptyTimeline
	}
	track := ensureTrack(store, timeline.RoleMusic)
	return store.AddSegment(track.ID, timeline.Segment{
		Type:      timeline.SegmentMusic,
		Character: asset.Name,
		Source:    asset.Source,
		Start:     lastEnd + outroGap,
		Duration:  asset.Duration,
		FadeIn:    longFade + 1,
		FadeOut:   longFade,
	})
}

// InsertJingle places the asset at the caller-supplied time and ducks the
// music under the inserted range.
func InsertJingle(store *timeline.Store, asset Asset, at float64) (timeline.Segment, error) {
	if err := validateAsset(asset); err != nil {
		return timeline.Segment{}, err
	}
	if at < 0 {
		return timeline.Segment{}, fmt.Errorf("jingle time must not be negative, got %v", at)
	}
	track := ensureTrack(store, timeline.RoleMusic)
	seg, err := store.AddSegment(track.ID, timeline.Segment{
		Type:      timeline.SegmentMusic,
		Character: asset.Name,
		Source:    asset.Source,
		Start:     at,
		Duration:  asset.Duration,
		FadeIn:    miniFade,
		FadeOut:   miniFade,
	})
	if err != nil {
		return timeline.Segment{}, err
	}
	if _, err := ducking.Generate(store, at, at+asset.Duration); err != nil && !errors.Is(err, ducking.ErrNoMusicTrack) {
		return seg, err
	}
	return seg, nil
}

// InsertBackgroundMusic tiles the asset across the whole timeline at
// near-silent volume: ceil(totalDuration / assetDuration) replicas, the
// first fading in long, the last fading out long, and everything in between
// on minimal fades.
func InsertBackgroundMusic(store *timeline.Store, asset Asset) ([]timeline.Segment, error) {
	if err := validateAsset(asset); err != nil {
		return nil, err
	}
	total := store.Duration()
	if total <= 0 {
		return nil, ErrEmptyTimeline
	}
	replicas := int(math.Ceil(total / asset.Duration))
	track := ensureTrack(store, timeline.RoleMusic)

	segments := make([]timeline.Segment, 0, replicas)
	for i := 0; i < replicas; i++ {
		fadeIn, fadeOut := miniFade, miniFade
		if i == 0 {
			fadeIn = longFade
		}
		if i == replicas-1 {
			fadeOut = longFade
		}
		seg, err := store.AddSegment(track.ID, timeline.Segment{
			Type:      timeline.SegmentMusic,
			Character: asset.Name,
			Source:    asset.Source,
			Start:     float64(i) * asset.Duration,
			Duration:  asset.Duration,
			Volume:    backgroundVolume,
			Loop:      true,
			FadeIn:    fadeIn,
			FadeOut:   fadeOut,
		})
		if err != nil {
			return segments, err
		}
		segments = append(segments, seg)
	}
	return segments, nil
}

// InsertSFX places a one-shot sound effect at the given time.
func InsertSFX(store *timeline.Store, asset Asset, at float64) (timeline.Segment, error) {
	if err := validateAsset(asset); err != nil {
		return timeline.Segment{}, err
	}
	if at < 0 {
		at = 0
	}
	track := ensureTrack(store, timeline.RoleSFX)
	return store.AddSegment(track.ID, timeline.Segment{
		Type:      timeline.SegmentSFX,
		Character: asset.Name,
		Source:    asset.Source,
		Start:     at,
		Duration:  asset.Duration,
	})
}

// InsertAmbientSound lays a looping ambient bed under the whole timeline.
func InsertAmbientSound(store *timeline.Store, asset Asset) (timeline.Segment, error) {
	if err := validateAsset(asset); err != nil {
		return timeline.Segment{}, err
	}
	duration := store.Duration()
	if duration < asset.Duration {
		duration = asset.Duration
	}
	track := ensureTrack(store, timeline.RoleAmbient)
	return store.AddSegment(track.ID, timeline.Segment{
		Type:      timeline.SegmentSFX,
		Character: asset.Name,
		Source:    asset.Source,
		Start:     0,
		Duration:  duration,
		Volume:    ambientVolume,
		Loop:      true,
		FadeIn:    1.0,
		FadeOut:   1.0,
	})
}
