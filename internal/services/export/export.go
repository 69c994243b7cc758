// Package export hands timeline snapshots to the export job store and
// tracks their lifecycle.
package export

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"mixdown/internal/exportjob"
	"mixdown/internal/notifications"
	"mixdown/internal/services"
	"mixdown/internal/timeline"
)

// Service serializes timelines into persisted export jobs.
type Service struct {
	store    *exportjob.Store
	notifier notifications.Service
	logger   *slog.Logger
}

// NewService wires an export service. The notifier may be nil.
func NewService(store *exportjob.Store, notifier notifications.Service, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:    store,
		notifier: notifier,
		logger:   logger.With("component", "export"),
	}
}

// Submit serializes the timeline and enqueues a pending export job.
func (s *Service) Submit(ctx context.Context, tl timeline.Timeline, title, format string) (*exportjob.Job, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, services.Wrap(services.ErrValidation, "export", "submit", "title required", nil)
	}
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = "wav"
	}
	if len(tl.Tracks) == 0 {
		return nil, services.Wrap(services.ErrValidation, "export", "submit", "timeline is empty", nil)
	}

	snapshot, err := json.Marshal(tl)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "export", "submit", "serialize timeline", err)
	}

	job, err := s.store.NewJob(ctx, title, format, string(snapshot))
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "export", "submit", "enqueue job", err)
	}
	s.logger.Info("export job queued", "job", job.ID, "title", title, "format", format)
	return job, nil
}

// Status fetches the current state of a job.
func (s *Service) Status(ctx context.Context, id int64) (*exportjob.Job, error) {
	job, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, services.Wrap(services.ErrNotFound, "export", "status", "look up job", err)
	}
	return job, nil
}

// Start marks a pending job as exporting.
func (s *Service) Start(ctx context.Context, id int64) (*exportjob.Job, error) {
	job, err := s.store.Transition(ctx, id, exportjob.StatusExporting, "")
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "export", "start", "transition job", err)
	}
	return job, nil
}

// Finish marks an exporting job completed with its artifact locator and
// notifies subscribers.
func (s *Service) Finish(ctx context.Context, id int64, artifactPath string) (*exportjob.Job, error) {
	job, err := s.store.Transition(ctx, id, exportjob.StatusCompleted, artifactPath)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "export", "finish", "transition job", err)
	}
	if s.notifier != nil {
		if err := s.notifier.NotifyExportCompleted(ctx, job.Title, job.ArtifactPath); err != nil {
			s.logger.Warn("export notification failed", "error", err)
		}
	}
	return job, nil
}

// Fail marks a job failed with the given reason.
func (s *Service) Fail(ctx context.Context, id int64, reason string) (*exportjob.Job, error) {
	job, err := s.store.Transition(ctx, id, exportjob.StatusFailed, reason)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "export", "fail", "transition job", err)
	}
	if s.notifier != nil {
		if err := s.notifier.NotifyError(ctx, nil, "export of "+job.Title); err != nil {
			s.logger.Warn("export notification failed", "error", err)
		}
	}
	return job, nil
}

// Restore decodes a job's snapshot back into a timeline value.
func Restore(job *exportjob.Job) (timeline.Timeline, error) {
	var tl timeline.Timeline
	if err := json.Unmarshal([]byte(job.SnapshotJSON), &tl); err != nil {
		return timeline.Timeline{}, services.Wrap(services.ErrTransient, "export", "restore", "decode snapshot", err)
	}
	return tl, nil
}
