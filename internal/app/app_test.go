package app

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/sitescore/internal/common"
	"github.com/ternarybob/sitescore/internal/models"
)

func testConfig(t *testing.T) *common.Config {
	t.Helper()
	config := common.DefaultConfig()
	config.Storage.Badger.Path = t.TempDir()
	config.Processing.Concurrency = 1
	config.Processing.PollInterval = 20 * time.Millisecond
	return config
}

func TestAppProcessesCompetitiveJobEndToEnd(t *testing.T) {
	application, err := New(testConfig(t))
	require.NoError(t, err)
	defer application.Close()

	application.Start(context.Background())

	params := models.CompetitiveAnalysisParams{
		TargetDomain:  "example.com",
		CompetitorIDs: []string{"comp_acme"},
		AnalysisTypes: []models.AnalysisType{models.AnalysisContentGaps},
		Options:       models.CompetitiveOptions{Depth: models.DepthBasic, AlertsEnabled: true},
	}
	raw, err := json.Marshal(params)
	require.NoError(t, err)

	job, err := application.Submit(context.Background(), models.JobTypeCompetitiveAnalysis, models.JobData{
		ProjectID: "proj-1",
		UserID:    "user-1",
		TeamID:    "team-1",
		Params:    raw,
	})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		stored, err := application.Storage.JobStorage().GetJob(context.Background(), job.ID)
		return err == nil && stored.Status == models.JobStatusCompleted
	}, 10*time.Second, 50*time.Millisecond)

	result, err := application.Storage.ResultStorage().GetCompetitiveResult(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, "example.com", result.TargetDomain)
	assert.NotNil(t, result.Data.ContentGaps)
	assert.Greater(t, result.Confidence.Overall, 0.0)
}

func TestAppFailsInvalidJobTerminally(t *testing.T) {
	application, err := New(testConfig(t))
	require.NoError(t, err)
	defer application.Close()

	application.Start(context.Background())

	job, err := application.Submit(context.Background(), models.JobTypeContentAnalysis, models.JobData{
		ProjectID: "proj-1",
		UserID:    "user-1",
		TeamID:    "team-1",
		Params:    json.RawMessage(`{}`),
	})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		stored, err := application.Storage.JobStorage().GetJob(context.Background(), job.ID)
		return err == nil && stored.Status == models.JobStatusFailed
	}, 10*time.Second, 50*time.Millisecond)
}
