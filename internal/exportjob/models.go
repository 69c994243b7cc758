package exportjob

import (
	"strings"
	"time"
)

// Status represents the lifecycle of an export job.
type Status string

const (
	StatusPending   Status = "pending"
	StatusExporting Status = "exporting"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

var allStatuses = []Status{
	StatusPending,
	StatusExporting,
	StatusCompleted,
	StatusFailed,
}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(allStatuses))
	for _, status := range allStatuses {
		set[status] = struct{}{}
	}
	return set
}()

// ParseStatus normalizes user input into a Status.
func ParseStatus(value string) (Status, bool) {
	status := Status(strings.ToLower(strings.TrimSpace(value)))
	_, ok := statusSet[status]
	return status, ok
}

var allowedTransitions = map[Status][]Status{
	StatusPending:   {StatusExporting, StatusFailed},
	StatusExporting: {StatusCompleted, StatusFailed},
	StatusFailed:    {StatusPending},
}

func transitionAllowed(from, to Status) bool {
	for _, candidate := range allowedTransitions[from] {
		if candidate == to {
			return true
		}
	}
	return false
}

// Job is a persisted export request.
type Job struct {
	ID           int64
	Title        string
	Format       string
	Status       Status
	SnapshotJSON string
	ArtifactPath string
	ErrorMessage string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Terminal reports whether the job finished, successfully or not.
func (j *Job) Terminal() bool {
	return j.Status == StatusCompleted || j.Status == StatusFailed
}
