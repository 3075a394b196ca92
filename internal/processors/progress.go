// Package processors contains the job dispatcher and the progress sink
// shared by the analysis processors.
package processors

import (
	"context"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/sitescore/internal/interfaces"
)

// StorageProgressSink persists progress updates through job storage.
// Storage ignores regressions, so progress observed by readers is
// monotonic per job.
type StorageProgressSink struct {
	jobs   interfaces.JobStorage
	logger arbor.ILogger
}

var _ interfaces.ProgressSink = (*StorageProgressSink)(nil)

// NewStorageProgressSink creates a progress sink backed by job storage
func NewStorageProgressSink(jobs interfaces.JobStorage, logger arbor.ILogger) *StorageProgressSink {
	return &StorageProgressSink{
		jobs:   jobs,
		logger: logger,
	}
}

// UpdateProgress clamps percent to [0, 100] and persists it
func (s *StorageProgressSink) UpdateProgress(ctx context.Context, jobID string, percent int, message string) error {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	if err := s.jobs.UpdateProgress(ctx, jobID, percent, message); err != nil {
		s.logger.Warn().
			Str("job_id", jobID).
			Int("percent", percent).
			Err(err).
			Msg("Failed to persist progress update")
		return err
	}
	return nil
}
