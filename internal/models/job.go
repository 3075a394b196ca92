// -----------------------------------------------------------------------
// Analysis Job - Immutable job structure consumed from the queue
// -----------------------------------------------------------------------

package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// JobType identifies which processor handles a job
type JobType string

const (
	JobTypeContentAnalysis     JobType = "content-analysis"
	JobTypeSEOHealthCheck      JobType = "seo-health-check"
	JobTypeCompetitiveAnalysis JobType = "competitive-analysis"
)

// JobStatus represents the lifecycle state of a job
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// JobData carries the ownership identifiers and the type-specific params.
// Params stays raw JSON until the owning processor decodes it into its
// typed variant at the validation boundary.
type JobData struct {
	ProjectID string          `json:"project_id"`
	UserID    string          `json:"user_id"`
	TeamID    string          `json:"team_id"`
	Params    json.RawMessage `json:"params"`
}

// Job represents one analysis job instance. Owned by the queue; processors
// treat it as read-only input except for progress updates keyed by ID.
type Job struct {
	ID          string    `json:"id"`
	Type        JobType   `json:"type"`
	Status      JobStatus `json:"status"`
	Priority    int       `json:"priority"`
	Data        JobData   `json:"data"`
	Attempts    int       `json:"attempts"`
	MaxAttempts int       `json:"max_attempts"`
	CreatedAt   time.Time `json:"created_at"`
	Progress    int       `json:"progress"`
	Message     string    `json:"progress_message,omitempty"`
}

// NewJob creates a new pending job with the given type and data
func NewJob(jobType JobType, data JobData) *Job {
	return &Job{
		ID:          "job_" + uuid.New().String(),
		Type:        jobType,
		Status:      JobStatusPending,
		Data:        data,
		Attempts:    0,
		MaxAttempts: 3,
		CreatedAt:   time.Now(),
	}
}

// HasIdentifiers reports whether the job carries the required ownership fields
func (d JobData) HasIdentifiers() bool {
	return d.ProjectID != "" && d.UserID != "" && d.TeamID != ""
}

// ToJSON serializes the job for queue transport
func (j *Job) ToJSON() ([]byte, error) {
	data, err := json.Marshal(j)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal job: %w", err)
	}
	return data, nil
}

// JobFromJSON deserializes a job from queue transport
func JobFromJSON(data []byte) (*Job, error) {
	var job Job
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("failed to unmarshal job: %w", err)
	}
	return &job, nil
}

// JobResult is the terminal value returned once per Process call.
// It is never partially mutated after being returned.
type JobResult struct {
	Success         bool            `json:"success"`
	Data            json.RawMessage `json:"data,omitempty"`
	Error           string          `json:"error,omitempty"`
	Retryable       bool            `json:"retryable"`
	Progress        int             `json:"progress"`
	ProgressMessage string          `json:"progress_message,omitempty"`
	RetryAfter      int             `json:"retry_after,omitempty"` // seconds
}

// SuccessResult builds a successful JobResult carrying the encoded payload
func SuccessResult(payload any) (JobResult, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return JobResult{}, fmt.Errorf("failed to encode result payload: %w", err)
	}
	return JobResult{
		Success:         true,
		Data:            data,
		Progress:        100,
		ProgressMessage: "Analysis complete",
	}, nil
}

// FailureResult builds a failed JobResult. A failed result never carries data.
// Retryable failures suggest a cooldown before the caller re-submits.
func FailureResult(errMsg string, retryable bool, progress int) JobResult {
	result := JobResult{
		Success:   false,
		Error:     errMsg,
		Retryable: retryable,
		Progress:  progress,
	}
	if retryable {
		result.RetryAfter = RetryCooldownSeconds
	}
	return result
}

// RetryCooldownSeconds is the suggested cooldown before re-submitting a
// retryable failure.
const RetryCooldownSeconds = 120
