package exportjob

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const jobColumns = "id, title, format, status, snapshot_json, artifact_path, error_message, created_at, updated_at"

func scanJob(scanner interface{ Scan(dest ...any) error }) (*Job, error) {
	var (
		id         int64
		title      string
		format     string
		statusStr  string
		snapshot   string
		artifact   sql.NullString
		errMessage sql.NullString
		createdRaw string
		updatedRaw string
	)
	if err := scanner.Scan(&id, &title, &format, &statusStr, &snapshot, &artifact, &errMessage, &createdRaw, &updatedRaw); err != nil {
		return nil, err
	}

	job := &Job{
		ID:           id,
		Title:        title,
		Format:       format,
		Status:       Status(statusStr),
		SnapshotJSON: snapshot,
		ArtifactPath: artifact.String,
		ErrorMessage: errMessage.String,
	}
	job.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdRaw)
	job.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedRaw)
	return job, nil
}

// NewJob inserts a pending export job holding the given timeline snapshot.
func (s *Store) NewJob(ctx context.Context, title, format, snapshotJSON string) (*Job, error) {
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)

	res, err := s.execWithRetry(
		ctx,
		`INSERT INTO export_jobs (title, format, status, snapshot_json, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?, ?)`,
		title,
		format,
		StatusPending,
		snapshotJSON,
		timestamp,
		timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert export job: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(ctx, id)
}

// GetByID fetches a single job.
func (s *Store) GetByID(ctx context.Context, id int64) (*Job, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx, "SELECT "+jobColumns+" FROM export_jobs WHERE id = ?", id)
	job, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id %d", ErrJobNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get export job: %w", err)
	}
	return job, nil
}

// List returns jobs newest first, optionally filtered by status.
func (s *Store) List(ctx context.Context, statuses ...Status) ([]*Job, error) {
	ctx = ensureContext(ctx)

	query := "SELECT " + jobColumns + " FROM export_jobs"
	args := make([]any, 0, len(statuses))
	if len(statuses) > 0 {
		query += " WHERE status IN (?" + repeatPlaceholder(len(statuses)-1) + ")"
		for _, status := range statuses {
			args = append(args, status)
		}
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list export jobs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var jobs []*Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scan export job: %w", err)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate export jobs: %w", err)
	}
	return jobs, nil
}

func repeatPlaceholder(n int) string {
	out := ""
	for i := 0; i < n; i++ {
		out += ", ?"
	}
	return out
}

// Transition moves a job to the given status. Invalid transitions are
// rejected. A failure message may accompany StatusFailed; an artifact path
// may accompany StatusCompleted.
func (s *Store) Transition(ctx context.Context, id int64, to Status, detail string) (*Job, error) {
	if _, ok := statusSet[to]; !ok {
		return nil, fmt.Errorf("unknown export status %q", to)
	}

	job, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !transitionAllowed(job.Status, to) {
		return nil, fmt.Errorf("export job %d: cannot transition %s -> %s", id, job.Status, to)
	}

	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	var (
		artifact sql.NullString
		errMsg   sql.NullString
	)
	switch to {
	case StatusCompleted:
		if detail != "" {
			artifact = sql.NullString{String: detail, Valid: true}
		}
	case StatusFailed:
		if detail != "" {
			errMsg = sql.NullString{String: detail, Valid: true}
		}
	}

	_, err = s.execWithRetry(
		ctx,
		`UPDATE export_jobs SET status = ?, artifact_path = COALESCE(?, artifact_path),
         error_message = ?, updated_at = ? WHERE id = ?`,
		to,
		artifact,
		errMsg,
		timestamp,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("transition export job: %w", err)
	}
	return s.GetByID(ctx, id)
}

// ResetStuck returns exporting jobs to pending. Called on startup to recover
// from a crashed export run.
func (s *Store) ResetStuck(ctx context.Context) (int64, error) {
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := s.execWithRetry(
		ctx,
		"UPDATE export_jobs SET status = ?, updated_at = ? WHERE status = ?",
		StatusPending,
		timestamp,
		StatusExporting,
	)
	if err != nil {
		return 0, fmt.Errorf("reset stuck jobs: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return affected, nil
}

// Health summarizes job counts by status.
type Health struct {
	Total     int64
	ByStatus  map[Status]int64
	LastError string
}

// Health reports aggregate job counts and the most recent failure message.
func (s *Store) Health(ctx context.Context) (Health, error) {
	ctx = ensureContext(ctx)
	health := Health{ByStatus: make(map[Status]int64, len(allStatuses))}

	rows, err := s.db.QueryContext(ctx, "SELECT status, COUNT(1) FROM export_jobs GROUP BY status")
	if err != nil {
		return Health{}, fmt.Errorf("count export jobs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			statusStr string
			count     int64
		)
		if err := rows.Scan(&statusStr, &count); err != nil {
			return Health{}, fmt.Errorf("scan job count: %w", err)
		}
		health.ByStatus[Status(statusStr)] = count
		health.Total += count
	}
	if err := rows.Err(); err != nil {
		return Health{}, fmt.Errorf("iterate job counts: %w", err)
	}

	var lastError sql.NullString
	err = s.db.QueryRowContext(ctx,
		"SELECT error_message FROM export_jobs WHERE status = ? ORDER BY updated_at DESC LIMIT 1",
		StatusFailed,
	).Scan(&lastError)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return Health{}, fmt.Errorf("read last failure: %w", err)
	}
	health.LastError = lastError.String
	return health, nil
}
