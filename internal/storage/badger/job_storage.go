package badger

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/ternarybob/sitescore/internal/interfaces"
	"github.com/ternarybob/sitescore/internal/models"
)

// JobStorage persists jobs in Badger
type JobStorage struct {
	db     *DB
	logger arbor.ILogger
}

var _ interfaces.JobStorage = (*JobStorage)(nil)

// NewJobStorage creates a JobStorage instance
func NewJobStorage(db *DB, logger arbor.ILogger) *JobStorage {
	return &JobStorage{
		db:     db,
		logger: logger,
	}
}

// SaveJob upserts a job keyed by its ID
func (s *JobStorage) SaveJob(ctx context.Context, job *models.Job) error {
	if job.ID == "" {
		return fmt.Errorf("job ID is required")
	}
	if err := s.db.Store().Upsert(job.ID, job); err != nil {
		return fmt.Errorf("failed to save job: %w", err)
	}
	return nil
}

// GetJob loads a job by ID
func (s *JobStorage) GetJob(ctx context.Context, jobID string) (*models.Job, error) {
	var job models.Job
	if err := s.db.Store().Get(jobID, &job); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("job not found: %s", jobID)
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return &job, nil
}

// UpdateProgress stores the latest progress percent and message for a job.
// Regressions are ignored so observed progress stays monotonic even when
// updates race.
func (s *JobStorage) UpdateProgress(ctx context.Context, jobID string, percent int, message string) error {
	job, err := s.GetJob(ctx, jobID)
	if err != nil {
		return err
	}

	if percent < job.Progress {
		s.logger.Debug().
			Str("job_id", jobID).
			Int("current", job.Progress).
			Int("update", percent).
			Msg("Ignoring progress regression")
		return nil
	}

	job.Progress = percent
	job.Message = message
	return s.SaveJob(ctx, job)
}

// UpdateStatus transitions a job's lifecycle status
func (s *JobStorage) UpdateStatus(ctx context.Context, jobID string, status models.JobStatus) error {
	job, err := s.GetJob(ctx, jobID)
	if err != nil {
		return err
	}
	job.Status = status
	return s.SaveJob(ctx, job)
}

// GetJobsByStatus lists jobs in the given status
func (s *JobStorage) GetJobsByStatus(ctx context.Context, status models.JobStatus) ([]*models.Job, error) {
	var jobs []*models.Job
	if err := s.db.Store().Find(&jobs, badgerhold.Where("Status").Eq(status)); err != nil {
		return nil, fmt.Errorf("failed to list jobs by status: %w", err)
	}
	return jobs, nil
}

// DeleteJob removes a job record
func (s *JobStorage) DeleteJob(ctx context.Context, jobID string) error {
	if err := s.db.Store().Delete(jobID, &models.Job{}); err != nil && err != badgerhold.ErrNotFound {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	return nil
}
