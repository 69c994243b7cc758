package suggest

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/google/uuid"

	"mixdown/internal/analysis"
	"mixdown/internal/arrange"
	"mixdown/internal/assets"
	"mixdown/internal/config"
	"mixdown/internal/timeline"
)

// Category groups suggestions for display.
type Category string

const (
	CategoryMusic    Category = "music"
	CategorySFX      Category = "sfx"
	CategoryTiming   Category = "timing"
	CategoryDialogue Category = "dialogue"
	CategoryMixing   Category = "mixing"
	CategoryEmotion  Category = "emotion"
)

// Priority ranks suggestions. Assigned per rule at authoring time; the list
// is never globally re-sorted.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Suggestion is an ephemeral, dismissible recommendation with a one-shot
// remediation action.
type Suggestion struct {
	ID          string
	Category    Category
	Priority    Priority
	Title       string
	Description string
	Icon        string

	action func() error
}

// Engine runs the suggestion rule battery against a timeline store.
type Engine struct {
	store   *timeline.Store
	library *assets.Library
	cfg     *config.Config
	logger  *slog.Logger

	active []*Suggestion
}

// NewEngine wires a suggestion engine to the given store and asset library.
func NewEngine(cfg *config.Config, store *timeline.Store, library *assets.Library, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		store:   store,
		library: library,
		cfg:     cfg,
		logger:  logger.With("component", "suggest"),
	}
}

// Active returns the suggestions from the most recent Analyze call, minus
// any applied or dismissed since.
func (e *Engine) Active() []*Suggestion {
	out := make([]*Suggestion, len(e.active))
	copy(out, e.active)
	return out
}

// Analyze clears prior suggestions and re-runs every check. Suggestions are
// not invalidated by later edits; callers re-run Analyze to refresh.
func (e *Engine) Analyze() []*Suggestion {
	e.active = nil

	tl := e.store.Timeline()
	if !hasSegments(tl) {
		return e.Active()
	}

	e.checkIntro(tl)
	e.checkOutro(tl)
	e.checkLongGaps(tl)
	e.checkVolumes(tl)
	e.checkSmallCrossGaps(tl)
	e.checkLongSegments(tl)
	e.checkRepeatedCrossGaps(tl)
	e.checkAmbient(tl)
	e.checkEmotionalDynamics(tl)

	e.logger.Debug("analysis complete", "suggestions", len(e.active))
	return e.Active()
}

// Apply executes the suggestion's remediation and removes it, and only it,
// from the active list.
func (e *Engine) Apply(id string) error {
	for _, s := range e.active {
		if s.ID != id {
			continue
		}
		if err := s.action(); err != nil {
			return fmt.Errorf("apply suggestion %q: %w", s.Title, err)
		}
		e.remove(id)
		e.logger.Info("suggestion applied", "title", s.Title, "category", s.Category)
		return nil
	}
	return fmt.Errorf("suggestion %s not found", id)
}

// Dismiss removes a suggestion without applying it.
func (e *Engine) Dismiss(id string) bool {
	for _, s := range e.active {
		if s.ID == id {
			e.remove(id)
			return true
		}
	}
	return false
}

func (e *Engine) remove(id string) {
	kept := e.active[:0]
	for _, s := range e.active {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	e.active = kept
}

func (e *Engine) add(s *Suggestion) {
	s.ID = uuid.NewString()
	e.active = append(e.active, s)
}

func hasSegments(tl timeline.Timeline) bool {
	for _, track := range tl.Tracks {
		if len(track.Segments) > 0 {
			return true
		}
	}
	return false
}

func (e *Engine) lookupAsset(name string) (assets.Asset, bool) {
	asset, ok := e.library.Lookup(name)
	if !ok {
		e.logger.Warn("asset missing from library", "asset", name)
	}
	return asset, ok
}

func (e *Engine) checkIntro(tl timeline.Timeline) {
	for _, track := range tl.Tracks {
		if track.Role != timeline.RoleMusic {
			continue
		}
		for _, seg := range track.Segments {
			if seg.Start < 1e-3 {
				return
			}
		}
	}
	asset, ok := e.lookupAsset(e.cfg.Production.IntroAsset)
	if !ok {
		return
	}
	e.add(&Suggestion{
		Category:    CategoryMusic,
		Priority:    PriorityHigh,
		Title:       "Add intro music",
		Description: fmt.Sprintf("No music plays at the start. Open with %q to set the tone.", asset.Name),
		Icon:        "🎵",
		action: func() error {
			_, err := assets.InsertIntroMusic(e.store, asset)
			return err
		},
	})
}

func (e *Engine) checkOutro(tl timeline.Timeline) {
	lastSpeech := tl.LastEnd(func(track timeline.Track) bool {
		return track.Role == timeline.RoleSpeech
	})
	if lastSpeech <= 0 {
		return
	}
	for _, track := range tl.Tracks {
		if track.Role != timeline.RoleMusic {
			continue
		}
		for _, seg := range track.Segments {
			if seg.Start >= lastSpeech {
				return
			}
		}
	}
	asset, ok := e.lookupAsset(e.cfg.Production.OutroAsset)
	if !ok {
		return
	}
	e.add(&Suggestion{
		Category:    CategoryMusic,
		Priority:    PriorityHigh,
		Title:       "Add outro music",
		Description: fmt.Sprintf("Nothing plays after the last spoken line. Close with %q.", asset.Name),
		Icon:        "🎵",
		action: func() error {
			_, err := assets.InsertOutroMusic(e.store, asset)
			return err
		},
	})
}

func (e *Engine) checkLongGaps(tl timeline.Timeline) {
	asset, haveJingle := e.lookupAsset(e.cfg.Production.JingleAsset)
	for _, gap := range arrange.SameTrackGaps(tl, 5) {
		if !haveJingle {
			return
		}
		at := gap.Midpoint() - asset.Duration/2
		if at < 0 {
			at = 0
		}
		e.add(&Suggestion{
			Category: CategoryMusic,
			Priority: PriorityMedium,
			Title:    "Fill a long silence",
			Description: fmt.Sprintf("A %.1fs silence starts at %.1fs. A jingle at %.1fs would bridge it.",
				gap.Duration(), gap.Start, at),
			Icon: "🎵",
			action: func() error {
				_, err := assets.InsertJingle(e.store, asset, at)
				return err
			},
		})
	}
}

// checkVolumes only inspects speech tracks; music and ambient beds are
// deliberately mixed low and would otherwise always trip the quiet rule.
func (e *Engine) checkVolumes(tl timeline.Timeline) {
	for _, track := range tl.Tracks {
		if track.Role != timeline.RoleSpeech {
			continue
		}
		trackID := track.ID
		for _, seg := range track.Segments {
			segID := seg.ID
			switch {
			case seg.Volume < 0.3:
				e.add(&Suggestion{
					Category: CategoryMixing,
					Priority: PriorityMedium,
					Title:    "Segment too quiet",
					Description: fmt.Sprintf("Segment at %.1fs on %q sits at volume %.2f and may be inaudible.",
						seg.Start, track.Name, seg.Volume),
					Icon:   "🎚️",
					action: e.setVolumeAction(trackID, segID),
				})
			case seg.Volume > 1.2:
				e.add(&Suggestion{
					Category: CategoryMixing,
					Priority: PriorityMedium,
					Title:    "Segment risks clipping",
					Description: fmt.Sprintf("Segment at %.1fs on %q sits at volume %.2f and may clip.",
						seg.Start, track.Name, seg.Volume),
					Icon:   "🎚️",
					action: e.setVolumeAction(trackID, segID),
				})
			}
		}
	}
}

func (e *Engine) setVolumeAction(trackID, segmentID string) func() error {
	return func() error {
		_, err := e.store.UpdateSegment(trackID, segmentID, func(s timeline.Segment) timeline.Segment {
			s.Volume = 1.0
			return s
		})
		return err
	}
}

func (e *Engine) checkSmallCrossGaps(tl timeline.Timeline) {
	for _, pair := range arrange.CrossTrackPairs(tl, arrange.MinCrossGap, arrange.MaxCrossGap) {
		e.add(&Suggestion{
			Category: CategoryDialogue,
			Priority: PriorityLow,
			Title:    "Tighten a dialogue hand-off",
			Description: fmt.Sprintf("A %.1fs pause separates two speakers. A slight overlap keeps the conversation flowing.",
				pair.Gap),
			Icon: "💬",
			action: func() error {
				prev, err := e.store.Segment(pair.FromTrack, pair.FromSegment)
				if err != nil {
					return err
				}
				start := prev.End() - arrange.OverlapAmount
				if start < 0 {
					start = 0
				}
				_, err = e.store.UpdateSegment(pair.ToTrack, pair.ToSegment, func(s timeline.Segment) timeline.Segment {
					s.Start = start
					return s
				})
				return err
			},
		})
	}
}

func (e *Engine) checkLongSegments(tl timeline.Timeline) {
	asset, haveBreath := e.lookupAsset("Breath")
	for _, track := range tl.Tracks {
		if track.Role != timeline.RoleSpeech {
			continue
		}
		for _, seg := range track.Segments {
			if seg.Duration <= 8 {
				continue
			}
			if !haveBreath {
				return
			}
			midpoint := seg.Start + seg.Duration/2
			e.add(&Suggestion{
				Category: CategoryDialogue,
				Priority: PriorityLow,
				Title:    "Break up a long monologue",
				Description: fmt.Sprintf("A %.1fs turn starts at %.1fs. A short backchannel near %.1fs keeps listeners engaged.",
					seg.Duration, seg.Start, midpoint),
				Icon: "💬",
				action: func() error {
					_, err := assets.InsertSFX(e.store, asset, midpoint)
					return err
				},
			})
		}
	}
}

func (e *Engine) checkRepeatedCrossGaps(tl timeline.Timeline) {
	pairs := arrange.CrossTrackPairs(tl, 2.0, math.MaxFloat64)
	if len(pairs) < 2 {
		return
	}
	e.add(&Suggestion{
		Category: CategoryTiming,
		Priority: PriorityMedium,
		Title:    "Optimize overall timing",
		Description: fmt.Sprintf("%d long pauses separate speakers. Tightening the whole timeline would improve pacing.",
			len(pairs)),
		Icon: "⏱️",
		action: func() error {
			_, err := arrange.Optimize(e.store)
			return err
		},
	})
}

func (e *Engine) checkAmbient(tl timeline.Timeline) {
	for _, track := range tl.Tracks {
		if track.Role == timeline.RoleAmbient {
			return
		}
	}
	texts := analysis.CollectTexts(tl)
	if len(texts) == 0 {
		return
	}

	ambientName := "Cafe Ambience"
	description := "No ambient bed underpins the episode. A cafe atmosphere is a safe default."
	if theme, ok := analysis.DominantTheme(texts); ok && theme.Ambient != "" {
		ambientName = theme.Ambient
		description = fmt.Sprintf("The episode leans %s but has no ambient bed. %q would match.", theme.Label, theme.Ambient)
	}
	asset, ok := e.lookupAsset(ambientName)
	if !ok {
		return
	}
	e.add(&Suggestion{
		Category:    CategorySFX,
		Priority:    PriorityLow,
		Title:       "Add an ambient bed",
		Description: description,
		Icon:        "🔊",
		action: func() error {
			_, err := assets.InsertAmbientSound(e.store, asset)
			return err
		},
	})
}

func (e *Engine) checkEmotionalDynamics(tl timeline.Timeline) {
	for _, track := range tl.Tracks {
		if track.Role != timeline.RoleSpeech {
			continue
		}
		for _, seg := range track.Segments {
			if seg.Text == "" || seg.Speed != 1.0 || seg.Pitch != 0 {
				continue
			}
			result := analysis.ClassifySentiment(seg.Text)
			if result.Sentiment == analysis.SentimentNeutral {
				continue
			}
			e.add(&Suggestion{
				Category:    CategoryEmotion,
				Priority:    PriorityLow,
				Title:       "Apply emotional dynamics",
				Description: "Some emotionally charged lines still use flat delivery. Speed and pitch adjustments would bring them out.",
				Icon:        "🎭",
				action: func() error {
					_, err := analysis.ApplyDynamicsToAll(e.store)
					return err
				},
			})
			return
		}
	}
}
