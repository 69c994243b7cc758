package timeline

import (
	"strings"
)

// Role classifies what a track is for. Roles used to be inferred from
// substring matches on the display name; the explicit field decouples them
// from user-editable text. RoleFromName remains for imported material.
type Role string

const (
	RoleSpeech     Role = "speech"
	RoleMusic      Role = "music"
	RoleSFX        Role = "sfx"
	RoleAmbient    Role = "ambient"
	RoleUnassigned Role = "unassigned"
)

// RoleFromName infers a role from a free-text track name. Matching is a
// case-insensitive substring check, which is exactly as fragile as it sounds;
// it exists only so imported sessions that predate the role field land on
// something sensible.
func RoleFromName(name string) Role {
	lowered := strings.ToLower(name)
	switch {
	case strings.Contains(lowered, "music"):
		return RoleMusic
	case strings.Contains(lowered, "sfx"), strings.Contains(lowered, "sound effect"):
		return RoleSFX
	case strings.Contains(lowered, "ambient"), strings.Contains(lowered, "ambience"):
		return RoleAmbient
	case strings.TrimSpace(lowered) == "":
		return RoleUnassigned
	default:
		return RoleSpeech
	}
}

// SegmentType describes the kind of audio a segment carries.
type SegmentType string

const (
	SegmentSpeech SegmentType = "speech"
	SegmentMusic  SegmentType = "music"
	SegmentSFX    SegmentType = "sfx"
)

// SegmentStatus tracks whether a segment's audio has been rendered yet.
type SegmentStatus string

const (
	StatusPending   SegmentStatus = "pending"
	StatusCompleted SegmentStatus = "completed"
)

// Segment is a placed, time-bounded unit of audio. Segments belong to exactly
// one track; moving one across tracks is delete+recreate, not supported here.
type Segment struct {
	ID        string        `json:"id"`
	Number    int           `json:"number"`
	Type      SegmentType   `json:"type"`
	Character string        `json:"character,omitempty"`
	Text      string        `json:"text,omitempty"`
	Source    string        `json:"source,omitempty"`
	Start     float64       `json:"start_time"`
	Duration  float64       `json:"duration"`
	Volume    float64       `json:"volume"`
	Speed     float64       `json:"speed"`
	Pitch     int           `json:"pitch"`
	Loop      bool          `json:"loop"`
	FadeIn    float64       `json:"fade_in"`
	FadeOut   float64       `json:"fade_out"`
	Status    SegmentStatus `json:"status"`
}

// End returns the derived end time. It is recomputed from start and duration
// on every read and never stored as an independent field.
func (s Segment) End() float64 {
	return s.Start + s.Duration
}

// Track is a named lane holding segments, an effect chain, and a volume
// automation curve.
type Track struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Role       Role      `json:"role"`
	Number     int       `json:"number"`
	Muted      bool      `json:"muted"`
	Solo       bool      `json:"solo"`
	Volume     float64   `json:"volume"`
	Pan        float64   `json:"pan"`
	Segments   []Segment `json:"segments"`
	Effects    []Effect  `json:"effects,omitempty"`
	Automation Curve     `json:"automation"`
}

// Timeline is the full multi-track representation of one production session.
type Timeline struct {
	Duration   float64 `json:"total_duration"`
	SampleRate int     `json:"sample_rate"`
	BitDepth   int     `json:"bit_depth"`
	Tracks     []Track `json:"tracks"`
}

// LastEnd reports the maximum segment end time across tracks that satisfy the
// filter. A nil filter considers every track.
func (t Timeline) LastEnd(filter func(Track) bool) float64 {
	var last float64
	for _, track := range t.Tracks {
		if filter != nil && !filter(track) {
			continue
		}
		for _, seg := range track.Segments {
			if end := seg.End(); end > last {
				last = end
			}
		}
	}
	return last
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// normalize clamps segment playback parameters into their documented ranges
// and fills defaults left at zero values.
func (s Segment) normalize() Segment {
	if s.Volume == 0 {
		s.Volume = 1.0
	}
	if s.Speed == 0 {
		s.Speed = 1.0
	}
	if s.Status == "" {
		s.Status = StatusPending
	}
	s.Volume = clamp(s.Volume, 0, 2)
	s.Speed = clamp(s.Speed, 0.5, 2.0)
	s.Pitch = clampInt(s.Pitch, -12, 12)
	if s.Start < 0 {
		s.Start = 0
	}
	return s
}

// normalize clamps track-level mix parameters.
func (t Track) normalize() Track {
	if t.Volume == 0 {
		t.Volume = 1.0
	}
	t.Volume = clamp(t.Volume, 0, 2)
	t.Pan = clamp(t.Pan, -1, 1)
	if t.Role == "" {
		t.Role = RoleFromName(t.Name)
	}
	return t
}
