// Package interfaces defines the contracts between processors and their
// collaborators. Processors depend on these, never on concrete services.
package interfaces

import (
	"context"

	"github.com/ternarybob/sitescore/internal/models"
)

// JobProcessor is the uniform contract every analysis processor implements.
// Validate is a pure predicate; callers must not call Process when it
// returns false. EstimateProcessingTime is advisory only. Process is the
// only method with side effects and must be idempotent per job ID.
type JobProcessor interface {
	Type() models.JobType
	Validate(data models.JobData) bool
	EstimateProcessingTime(data models.JobData) int // seconds
	Process(ctx context.Context, job *models.Job) models.JobResult
}

// ProgressSink receives progress updates keyed by job ID. Processors await
// each update before proceeding so observed progress is monotonic.
type ProgressSink interface {
	UpdateProgress(ctx context.Context, jobID string, percent int, message string) error
}

// ContentFetcher retrieves and extracts page content
type ContentFetcher interface {
	FetchPage(ctx context.Context, url string) (*models.PageContent, error)
	// Probe reports whether a URL responds with a 2xx status (robots.txt,
	// sitemap.xml presence checks).
	Probe(ctx context.Context, url string) bool
}

// ContentAnalyzer is the AI-completion collaborator used by the content
// quality processor.
type ContentAnalyzer interface {
	AnalyzeContentQuality(ctx context.Context, page *models.PageContent, keywords []string) (*models.ContentQualityAnalysis, error)
}

// CompetitiveDataSource produces competitive analysis data. Kind reports
// "live" or "simulated" so confidence scoring and metadata can reflect
// which strategy ran.
type CompetitiveDataSource interface {
	Name() string
	Kind() string
	Analyze(ctx context.Context, req models.CompetitiveRequest) (*models.CompetitiveData, *models.IntegrationMetadata, error)
}

// JobStorage persists jobs and their progress
type JobStorage interface {
	SaveJob(ctx context.Context, job *models.Job) error
	GetJob(ctx context.Context, jobID string) (*models.Job, error)
	UpdateProgress(ctx context.Context, jobID string, percent int, message string) error
	UpdateStatus(ctx context.Context, jobID string, status models.JobStatus) error
}

// ResultStorage persists one result per job per processor kind.
// Saves are upserts keyed by job ID so a re-run overwrites rather than
// duplicates.
type ResultStorage interface {
	SaveContentQualityResult(ctx context.Context, result *models.ContentQualityResult) error
	GetContentQualityResult(ctx context.Context, jobID string) (*models.ContentQualityResult, error)
	SaveSEOHealthResult(ctx context.Context, result *models.SEOHealthResult) error
	GetSEOHealthResult(ctx context.Context, jobID string) (*models.SEOHealthResult, error)
	SaveCompetitiveResult(ctx context.Context, result *models.CompetitiveAnalysisResult) error
	GetCompetitiveResult(ctx context.Context, jobID string) (*models.CompetitiveAnalysisResult, error)
}

// CompetitorStorage loads competitor records
type CompetitorStorage interface {
	SaveCompetitor(ctx context.Context, competitor *models.Competitor) error
	GetCompetitors(ctx context.Context, ids []string) ([]models.Competitor, error)
}

// CacheInvalidator invalidates project-scoped analytics cache entries.
// Invalidation is idempotent remove-key semantics, safe under concurrency.
type CacheInvalidator interface {
	Invalidate(projectID, kind string)
}

// JobSource is the dequeue contract consumed from the job queue. The
// returned ack function removes the job from the queue.
type JobSource interface {
	Dequeue(ctx context.Context) (*models.Job, func() error, error)
}

// StorageManager aggregates the storage interfaces
type StorageManager interface {
	JobStorage() JobStorage
	ResultStorage() ResultStorage
	CompetitorStorage() CompetitorStorage
	Close() error
}
