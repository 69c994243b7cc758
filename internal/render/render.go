package render

import (
	"context"
	"log/slog"
	"strings"

	"mixdown/internal/services/tts"
	"mixdown/internal/timeline"
)

// Synthesizer is the slice of the TTS client the renderer needs.
type Synthesizer interface {
	Synthesize(ctx context.Context, req tts.Request) (tts.Result, error)
}

// Options selects the rendering voice. An empty Voice falls back to each
// segment's character name, so multi-speaker timelines keep distinct voices.
type Options struct {
	Provider string
	Voice    string
}

// Renderer drives pending speech segments through the TTS service.
type Renderer struct {
	client Synthesizer
	store  *timeline.Store
	logger *slog.Logger
}

// New wires a renderer to a store and a synthesis client.
func New(client Synthesizer, store *timeline.Store, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{client: client, store: store, logger: logger}
}

// RenderPending synthesizes every pending speech segment that carries text,
// in track order. Each rendered segment is marked completed with the audio
// locator as its source; when the measured duration differs from the
// estimate, every later segment on the track shifts by the difference.
// Returns the number of segments rendered; on error the segments rendered so
// far keep their results.
func (r *Renderer) RenderPending(ctx context.Context, opts Options) (int, error) {
	rendered := 0
	for _, track := range r.store.Timeline().Tracks {
		if track.Role != timeline.RoleSpeech {
			continue
		}
		for _, seg := range track.Segments {
			if seg.Type != timeline.SegmentSpeech || seg.Status != timeline.StatusPending {
				continue
			}
			if strings.TrimSpace(seg.Text) == "" {
				continue
			}
			voice := opts.Voice
			if voice == "" {
				voice = seg.Character
			}
			result, err := r.client.Synthesize(ctx, tts.Request{
				Text:     seg.Text,
				Provider: opts.Provider,
				Voice:    voice,
				Speed:    seg.Speed,
			})
			if err != nil {
				return rendered, err
			}

			delta := 0.0
			if result.Duration > 0 {
				delta = result.Duration - seg.Duration
			}
			if _, err := r.store.UpdateSegment(track.ID, seg.ID, func(s timeline.Segment) timeline.Segment {
				if result.Duration > 0 {
					s.Duration = result.Duration
				}
				s.Source = result.AudioURL
				s.Status = timeline.StatusCompleted
				return s
			}); err != nil {
				return rendered, err
			}
			if delta != 0 {
				if err := r.shiftFollowing(track.ID, seg.ID, delta); err != nil {
					return rendered, err
				}
			}
			rendered++
			r.logger.Info("segment rendered",
				"component", "render",
				"track", track.Name,
				"voice", voice,
				"duration", result.Duration)
		}
	}
	return rendered, nil
}

// shiftFollowing moves every segment after the given one on its track by
// delta seconds, preserving the gaps between turns.
func (r *Renderer) shiftFollowing(trackID, segmentID string, delta float64) error {
	track, err := r.store.Track(trackID)
	if err != nil {
		return err
	}
	after := -1
	for i, seg := range track.Segments {
		if seg.ID == segmentID {
			after = i
			break
		}
	}
	if after < 0 {
		return timeline.ErrSegmentNotFound
	}
	for _, seg := range track.Segments[after+1:] {
		if _, err := r.store.UpdateSegment(trackID, seg.ID, func(s timeline.Segment) timeline.Segment {
			s.Start += delta
			return s
		}); err != nil {
			return err
		}
	}
	return nil
}
