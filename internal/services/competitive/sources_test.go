package competitive

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/sitescore/internal/common"
	"github.com/ternarybob/sitescore/internal/models"
)

func fullRequest() models.CompetitiveRequest {
	return models.CompetitiveRequest{
		TargetDomain:      "example.com",
		CompetitorDomains: []string{"rival.com", "other.com"},
		AnalysisTypes: []models.AnalysisType{
			models.AnalysisContentSimilarity,
			models.AnalysisSEOComparison,
			models.AnalysisPerformanceBenchmark,
			models.AnalysisMarketPosition,
			models.AnalysisContentGaps,
		},
		Options: models.CompetitiveOptions{Depth: models.DepthStandard},
	}
}

func TestSimulatedCoversRequestedTypes(t *testing.T) {
	src := NewSimulatedDataSource(common.GetLogger())

	data, meta, err := src.Analyze(context.Background(), fullRequest())
	require.NoError(t, err)

	assert.NotNil(t, data.Content)
	assert.NotNil(t, data.SEO)
	assert.NotNil(t, data.Performance)
	assert.NotNil(t, data.MarketPosition)
	assert.NotNil(t, data.ContentGaps)

	assert.Equal(t, []string{"simulated"}, meta.DataSourcesUsed)
	assert.NotEmpty(t, meta.Limitations)
}

func TestSimulatedSkipsUnrequestedTypes(t *testing.T) {
	src := NewSimulatedDataSource(common.GetLogger())
	req := fullRequest()
	req.AnalysisTypes = []models.AnalysisType{models.AnalysisSEOComparison}

	data, _, err := src.Analyze(context.Background(), req)
	require.NoError(t, err)

	assert.Nil(t, data.Content)
	assert.NotNil(t, data.SEO)
	assert.Nil(t, data.Performance)
}

func TestSimulatedDeterministic(t *testing.T) {
	src := NewSimulatedDataSource(common.GetLogger())
	req := fullRequest()

	first, _, err := src.Analyze(context.Background(), req)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, _, err := src.Analyze(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}

	// Different domain yields different data
	req.TargetDomain = "different.com"
	other, _, err := src.Analyze(context.Background(), req)
	require.NoError(t, err)
	assert.NotEqual(t, first.Content.Similarity, other.Content.Similarity)
}

func TestSimulatedSimilarityWeights(t *testing.T) {
	src := NewSimulatedDataSource(common.GetLogger())
	req := fullRequest()

	data, _, err := src.Analyze(context.Background(), req)
	require.NoError(t, err)

	sim := data.Content.Similarity
	expected := sim.Lexical*0.30 + sim.Semantic*0.40 + sim.Structural*0.15 + sim.Topical*0.15
	assert.InDelta(t, expected, sim.Overall, 0.11)
}

func TestLiveDataSourceDisabled(t *testing.T) {
	src := NewLiveDataSource(common.CompetitiveConfig{MaxAttempts: 1}, common.GetLogger())

	assert.False(t, src.Enabled())
	_, _, err := src.Analyze(context.Background(), fullRequest())
	require.Error(t, err)
}

func TestLiveDataSourceSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/analyze", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req models.CompetitiveRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "example.com", req.TargetDomain)

		resp := apiResponse{}
		resp.Data.SEO = &models.SEOComparisonResult{
			Visibility: models.ScoreComponent{Name: "search visibility", Score: 72},
		}
		resp.Metadata.Confidence = 88
		resp.Metadata.DataSourcesUsed = []string{"serp-index"}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	src := NewLiveDataSource(common.CompetitiveConfig{
		Endpoint:       server.URL,
		APIKey:         "test-key",
		RequestTimeout: 5 * time.Second,
		MaxAttempts:    2,
	}, common.GetLogger())

	data, meta, err := src.Analyze(context.Background(), fullRequest())
	require.NoError(t, err)
	require.NotNil(t, data.SEO)
	assert.Equal(t, 72.0, data.SEO.Visibility.Score)
	assert.Equal(t, 88.0, meta.Confidence)
	assert.Equal(t, []string{"serp-index"}, meta.DataSourcesUsed)
}

func TestLiveDataSourceRetriesServerError(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(apiResponse{})
	}))
	defer server.Close()

	src := NewLiveDataSource(common.CompetitiveConfig{
		Endpoint:       server.URL,
		RequestTimeout: 5 * time.Second,
		MaxAttempts:    2,
	}, common.GetLogger())
	src.policy.InitialBackoff = time.Millisecond

	_, _, err := src.Analyze(context.Background(), fullRequest())
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
}

func TestLiveDataSourceUnauthorizedFailsFast(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	src := NewLiveDataSource(common.CompetitiveConfig{
		Endpoint:       server.URL,
		RequestTimeout: 5 * time.Second,
		MaxAttempts:    3,
	}, common.GetLogger())
	src.policy.InitialBackoff = time.Millisecond

	_, _, err := src.Analyze(context.Background(), fullRequest())
	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}
