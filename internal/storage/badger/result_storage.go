package badger

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/ternarybob/sitescore/internal/interfaces"
	"github.com/ternarybob/sitescore/internal/models"
)

// ResultStorage persists analysis results. Results are keyed by job ID so
// saving twice for the same job overwrites rather than duplicates.
type ResultStorage struct {
	db     *DB
	logger arbor.ILogger
}

var _ interfaces.ResultStorage = (*ResultStorage)(nil)

// NewResultStorage creates a ResultStorage instance
func NewResultStorage(db *DB, logger arbor.ILogger) *ResultStorage {
	return &ResultStorage{
		db:     db,
		logger: logger,
	}
}

func resultKey(kind, jobID string) string {
	return fmt.Sprintf("%s:%s", kind, jobID)
}

// SaveContentQualityResult upserts a content quality result
func (s *ResultStorage) SaveContentQualityResult(ctx context.Context, result *models.ContentQualityResult) error {
	if result.JobID == "" {
		return fmt.Errorf("result job ID is required")
	}
	if err := s.db.Store().Upsert(resultKey("content-quality", result.JobID), result); err != nil {
		return fmt.Errorf("failed to save content quality result: %w", err)
	}
	s.logger.Debug().Str("job_id", result.JobID).Msg("Content quality result saved")
	return nil
}

// GetContentQualityResult loads a content quality result by job ID
func (s *ResultStorage) GetContentQualityResult(ctx context.Context, jobID string) (*models.ContentQualityResult, error) {
	var result models.ContentQualityResult
	if err := s.db.Store().Get(resultKey("content-quality", jobID), &result); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("content quality result not found for job %s", jobID)
		}
		return nil, fmt.Errorf("failed to get content quality result: %w", err)
	}
	return &result, nil
}

// SaveSEOHealthResult upserts an SEO health result
func (s *ResultStorage) SaveSEOHealthResult(ctx context.Context, result *models.SEOHealthResult) error {
	if result.JobID == "" {
		return fmt.Errorf("result job ID is required")
	}
	if err := s.db.Store().Upsert(resultKey("seo-health", result.JobID), result); err != nil {
		return fmt.Errorf("failed to save seo health result: %w", err)
	}
	s.logger.Debug().Str("job_id", result.JobID).Msg("SEO health result saved")
	return nil
}

// GetSEOHealthResult loads an SEO health result by job ID
func (s *ResultStorage) GetSEOHealthResult(ctx context.Context, jobID string) (*models.SEOHealthResult, error) {
	var result models.SEOHealthResult
	if err := s.db.Store().Get(resultKey("seo-health", jobID), &result); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("seo health result not found for job %s", jobID)
		}
		return nil, fmt.Errorf("failed to get seo health result: %w", err)
	}
	return &result, nil
}

// SaveCompetitiveResult upserts a competitive analysis result
func (s *ResultStorage) SaveCompetitiveResult(ctx context.Context, result *models.CompetitiveAnalysisResult) error {
	if result.JobID == "" {
		return fmt.Errorf("result job ID is required")
	}
	if err := s.db.Store().Upsert(resultKey("competitive", result.JobID), result); err != nil {
		return fmt.Errorf("failed to save competitive result: %w", err)
	}
	s.logger.Debug().Str("job_id", result.JobID).Msg("Competitive analysis result saved")
	return nil
}

// GetCompetitiveResult loads a competitive analysis result by job ID
func (s *ResultStorage) GetCompetitiveResult(ctx context.Context, jobID string) (*models.CompetitiveAnalysisResult, error) {
	var result models.CompetitiveAnalysisResult
	if err := s.db.Store().Get(resultKey("competitive", jobID), &result); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("competitive result not found for job %s", jobID)
		}
		return nil, fmt.Errorf("failed to get competitive result: %w", err)
	}
	return &result, nil
}
