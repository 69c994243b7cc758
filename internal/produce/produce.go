package produce

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"mixdown/internal/analysis"
	"mixdown/internal/arrange"
	"mixdown/internal/assets"
	"mixdown/internal/config"
	"mixdown/internal/ducking"
	"mixdown/internal/notifications"
	"mixdown/internal/services"
	"mixdown/internal/timeline"
)

const (
	// coffeePauseMinGap is the shortest speech gap considered for a coffee
	// sip effect when cafe-flavored text surrounds it.
	coffeePauseMinGap = 2.0

	// breathingPauseMinDuration marks monologues long enough to earn a
	// breath effect before they start.
	breathingPauseMinDuration = 8.0
)

// Progress describes the step about to run.
type Progress struct {
	Step  int
	Total int
	Name  string
}

// ProgressFunc receives a Progress before each step executes.
type ProgressFunc func(Progress)

type step struct {
	name string
	run  func(ctx context.Context) error
}

// Producer orchestrates the auto-production pipeline over one store.
type Producer struct {
	cfg      *config.Config
	store    *timeline.Store
	library  *assets.Library
	notifier notifications.Service
	logger   *slog.Logger
	progress ProgressFunc
}

// New wires a producer. The notifier may be nil.
func New(cfg *config.Config, store *timeline.Store, library *assets.Library, notifier notifications.Service, logger *slog.Logger) *Producer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Producer{
		cfg:      cfg,
		store:    store,
		library:  library,
		notifier: notifier,
		logger:   logger.With("component", "produce"),
	}
}

// OnProgress registers a callback invoked before each step.
func (p *Producer) OnProgress(fn ProgressFunc) {
	p.progress = fn
}

// Run executes the pipeline. On failure the timeline is restored to its
// pre-pipeline snapshot and a single aggregate error is returned.
func (p *Producer) Run(ctx context.Context, title string) error {
	snapshot := p.store.Snapshot()
	steps := p.steps()
	started := time.Now()

	if p.notifier != nil {
		if err := p.notifier.NotifyProduceStarted(ctx, title, len(snapshot.Tracks)); err != nil {
			p.logger.Warn("start notification failed", "error", err)
		}
	}

	for i, s := range steps {
		if p.progress != nil {
			p.progress(Progress{Step: i + 1, Total: len(steps), Name: s.name})
		}
		if p.notifier != nil {
			if err := p.notifier.NotifyProduceStep(ctx, i+1, len(steps), s.name); err != nil {
				p.logger.Warn("step notification failed", "error", err)
			}
		}
		if err := p.pace(ctx); err != nil {
			p.store.Restore(snapshot)
			return err
		}

		p.logger.Info("running step", "step", i+1, "total", len(steps), "name", s.name)
		if err := s.run(ctx); err != nil {
			p.store.Restore(snapshot)
			if p.notifier != nil {
				if notifyErr := p.notifier.NotifyProduceFailed(ctx, title, err); notifyErr != nil {
					p.logger.Warn("failure notification failed", "error", notifyErr)
				}
			}
			return services.Wrap(services.ErrTransient, "produce", s.name,
				fmt.Sprintf("pipeline aborted at step %d of %d, timeline restored", i+1, len(steps)), err)
		}
	}

	if p.notifier != nil {
		if err := p.notifier.NotifyProduceCompleted(ctx, title, time.Since(started)); err != nil {
			p.logger.Warn("completion notification failed", "error", err)
		}
	}
	return nil
}

// pace inserts the configured delay between progress emission and step
// execution so rendered progress stays readable. Delays respect ctx.
func (p *Producer) pace(ctx context.Context) error {
	delay := time.Duration(p.cfg.Production.StepDelayMS) * time.Millisecond
	if delay <= 0 {
		return nil
	}
	select {
	case <-time.After(delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Producer) steps() []step {
	return []step{
		{name: "Adding intro music", run: p.stepIntro},
		{name: "Adding outro music", run: p.stepOutro},
		{name: "Adding background music", run: p.stepBackground},
		{name: "Adding natural sound effects", run: p.stepNaturalSFX},
		{name: "Optimizing dialogue timing", run: p.stepTiming},
		{name: "Adding theme ambience", run: p.stepAmbient},
		{name: "Applying emotional dynamics", run: p.stepDynamics},
		{name: "Finalizing production", run: p.stepFinalize},
	}
}

func (p *Producer) asset(name string) (assets.Asset, bool) {
	asset, ok := p.library.Lookup(name)
	if !ok {
		p.logger.Warn("asset missing from library, step skipped", "asset", name)
	}
	return asset, ok
}

func (p *Producer) stepIntro(context.Context) error {
	asset, ok := p.asset(p.cfg.Production.IntroAsset)
	if !ok {
		return nil
	}
	_, err := assets.InsertIntroMusic(p.store, asset)
	return err
}

func (p *Producer) stepOutro(context.Context) error {
	asset, ok := p.asset(p.cfg.Production.OutroAsset)
	if !ok {
		return nil
	}
	_, err := assets.InsertOutroMusic(p.store, asset)
	return err
}

func (p *Producer) stepBackground(context.Context) error {
	asset, ok := p.asset(p.cfg.Production.BackgroundAsset)
	if !ok {
		return nil
	}
	if _, err := assets.InsertBackgroundMusic(p.store, asset); err != nil {
		return err
	}
	_, err := ducking.Generate(p.store, 0, p.store.Duration())
	return err
}

func (p *Producer) stepNaturalSFX(context.Context) error {
	if err := p.insertCoffeePauses(); err != nil {
		return err
	}
	return p.insertBreathingPauses()
}

// insertCoffeePauses drops a sip effect into speech gaps of two seconds or
// more when the surrounding lines carry cafe-flavored keywords.
func (p *Producer) insertCoffeePauses() error {
	sip, ok := p.asset("Coffee Sip")
	if !ok {
		return nil
	}

	tl := p.store.Timeline()
	for _, gap := range arrange.SameTrackGaps(tl, coffeePauseMinGap) {
		if !cafeFlavored(tl, gap) {
			continue
		}
		if _, err := assets.InsertSFX(p.store, sip, gap.Midpoint()-sip.Duration/2); err != nil {
			return err
		}
	}
	return nil
}

func cafeFlavored(tl timeline.Timeline, gap arrange.Gap) bool {
	var texts []string
	for _, track := range tl.Tracks {
		if track.ID != gap.TrackID {
			continue
		}
		for _, seg := range track.Segments {
			if seg.ID == gap.PrevID || seg.ID == gap.NextID {
				texts = append(texts, seg.Text)
			}
		}
	}
	for _, theme := range analysis.DetectThemes(texts) {
		if theme.Label == "cafe" {
			return true
		}
	}
	return false
}

// insertBreathingPauses places a breath just before every monologue long
// enough to need one.
func (p *Producer) insertBreathingPauses() error {
	breath, ok := p.asset("Breath")
	if !ok {
		return nil
	}

	for _, track := range p.store.Timeline().Tracks {
		if track.Role != timeline.RoleSpeech {
			continue
		}
		for _, seg := range track.Segments {
			if seg.Duration <= breathingPauseMinDuration {
				continue
			}
			at := seg.Start - breath.Duration
			if _, err := assets.InsertSFX(p.store, breath, at); err != nil {
				return err
			}
		}
	}
	return nil
}

func (p *Producer) stepTiming(context.Context) error {
	adjusted, err := arrange.Optimize(p.store)
	if err != nil {
		return err
	}
	p.logger.Debug("timing optimized", "adjustments", adjusted)
	return nil
}

func (p *Producer) stepAmbient(context.Context) error {
	if _, ok := p.store.TrackByRole(timeline.RoleAmbient); ok {
		return nil
	}
	theme, ok := analysis.DominantTheme(analysis.CollectTexts(p.store.Timeline()))
	if !ok || theme.Ambient == "" {
		p.logger.Debug("no ambient theme detected, step skipped")
		return nil
	}
	asset, ok := p.asset(theme.Ambient)
	if !ok {
		return nil
	}
	_, err := assets.InsertAmbientSound(p.store, asset)
	return err
}

func (p *Producer) stepDynamics(context.Context) error {
	adjusted, err := analysis.ApplyDynamicsToAll(p.store)
	if err != nil {
		return err
	}
	p.logger.Debug("dynamics applied", "segments", adjusted)
	return nil
}

func (p *Producer) stepFinalize(context.Context) error {
	tl := p.store.Timeline()
	segments := 0
	for _, track := range tl.Tracks {
		segments += len(track.Segments)
	}
	p.logger.Info("production finished",
		"duration", tl.Duration,
		"tracks", len(tl.Tracks),
		"segments", segments)
	return nil
}
