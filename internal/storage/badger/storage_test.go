package badger

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timshannon/badgerhold/v4"

	"github.com/ternarybob/sitescore/internal/common"
	"github.com/ternarybob/sitescore/internal/models"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	manager, err := NewManager(common.BadgerConfig{Path: t.TempDir()}, common.GetLogger())
	require.NoError(t, err)
	t.Cleanup(func() { manager.Close() })
	return manager
}

func testJob(jobType models.JobType) *models.Job {
	params, _ := json.Marshal(map[string]any{"website_url": "https://example.com"})
	return models.NewJob(jobType, models.JobData{
		ProjectID: "proj-1",
		UserID:    "user-1",
		TeamID:    "team-1",
		Params:    params,
	})
}

func TestJobSaveAndGet(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	job := testJob(models.JobTypeContentAnalysis)
	require.NoError(t, m.JobStorage().SaveJob(ctx, job))

	loaded, err := m.JobStorage().GetJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, job.ID, loaded.ID)
	assert.Equal(t, models.JobStatusPending, loaded.Status)

	_, err = m.JobStorage().GetJob(ctx, "job_missing")
	assert.Error(t, err)
}

func TestJobProgressMonotonic(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	job := testJob(models.JobTypeContentAnalysis)
	require.NoError(t, m.JobStorage().SaveJob(ctx, job))

	require.NoError(t, m.JobStorage().UpdateProgress(ctx, job.ID, 40, "Fetching"))
	require.NoError(t, m.JobStorage().UpdateProgress(ctx, job.ID, 20, "Stale update"))

	loaded, err := m.JobStorage().GetJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, 40, loaded.Progress)
	assert.Equal(t, "Fetching", loaded.Message)
}

func TestResultUpsertByJobID(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	result := &models.ContentQualityResult{
		ID:        common.NewResultID(),
		JobID:     "job_abc",
		ProjectID: "proj-1",
		Scores:    models.ContentQualityScores{Overall: 70},
		CreatedAt: time.Now(),
	}
	require.NoError(t, m.ResultStorage().SaveContentQualityResult(ctx, result))

	// Re-running the same job overwrites, never duplicates
	result.Scores.Overall = 75
	require.NoError(t, m.ResultStorage().SaveContentQualityResult(ctx, result))

	loaded, err := m.ResultStorage().GetContentQualityResult(ctx, "job_abc")
	require.NoError(t, err)
	assert.Equal(t, 75.0, loaded.Scores.Overall)
}

func TestResultKindsDoNotCollide(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, m.ResultStorage().SaveContentQualityResult(ctx, &models.ContentQualityResult{JobID: "job_1"}))
	require.NoError(t, m.ResultStorage().SaveSEOHealthResult(ctx, &models.SEOHealthResult{JobID: "job_1"}))
	require.NoError(t, m.ResultStorage().SaveCompetitiveResult(ctx, &models.CompetitiveAnalysisResult{JobID: "job_1"}))

	_, err := m.ResultStorage().GetContentQualityResult(ctx, "job_1")
	assert.NoError(t, err)
	_, err = m.ResultStorage().GetSEOHealthResult(ctx, "job_1")
	assert.NoError(t, err)
	_, err = m.ResultStorage().GetCompetitiveResult(ctx, "job_1")
	assert.NoError(t, err)
}

func TestCompetitorSynthesizesMissing(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	known := &models.Competitor{ID: "comp_1", Name: "Rival", Domain: "rival.com", CreatedAt: time.Now()}
	require.NoError(t, m.CompetitorStorage().SaveCompetitor(ctx, known))

	competitors, err := m.CompetitorStorage().GetCompetitors(ctx, []string{"comp_1", "comp_missing"})
	require.NoError(t, err)
	require.Len(t, competitors, 2)

	assert.False(t, competitors[0].Synthesized)
	assert.Equal(t, "rival.com", competitors[0].Domain)
	assert.True(t, competitors[1].Synthesized)
	assert.Equal(t, "comp_missing", competitors[1].ID)
}

func TestQueueOrderingAndAck(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	low := testJob(models.JobTypeContentAnalysis)
	low.Priority = 1
	high := testJob(models.JobTypeSEOHealthCheck)
	high.Priority = 5

	require.NoError(t, m.Queue().Enqueue(ctx, low))
	require.NoError(t, m.Queue().Enqueue(ctx, high))

	job, ack, err := m.Queue().Dequeue(ctx)
	require.NoError(t, err)
	assert.Equal(t, high.ID, job.ID, "higher priority dequeues first")
	require.NoError(t, ack())

	job, ack, err = m.Queue().Dequeue(ctx)
	require.NoError(t, err)
	assert.Equal(t, low.ID, job.ID)
	require.NoError(t, ack())

	_, _, err = m.Queue().Dequeue(ctx)
	assert.Equal(t, badgerhold.ErrNotFound, err)
}

func TestQueueDelayedEntryNotReady(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	job := testJob(models.JobTypeContentAnalysis)
	require.NoError(t, m.Queue().EnqueueAfter(ctx, job, time.Hour))

	_, _, err := m.Queue().Dequeue(ctx)
	assert.Equal(t, badgerhold.ErrNotFound, err)

	count, err := m.Queue().Len()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestQueueClaimedEntryHiddenFromOthers(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	job := testJob(models.JobTypeContentAnalysis)
	require.NoError(t, m.Queue().Enqueue(ctx, job))

	_, _, err := m.Queue().Dequeue(ctx)
	require.NoError(t, err)

	// Unacked claim is invisible to subsequent dequeues
	_, _, err = m.Queue().Dequeue(ctx)
	assert.Equal(t, badgerhold.ErrNotFound, err)
}
