package competitive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/sitescore/internal/common"
	"github.com/ternarybob/sitescore/internal/httpclient"
	"github.com/ternarybob/sitescore/internal/interfaces"
	"github.com/ternarybob/sitescore/internal/models"
	"github.com/ternarybob/sitescore/internal/retry"
)

// LiveDataSource calls the external competitive-data API. Enabled reports
// whether an endpoint is configured; callers fall back to the simulated
// source when it is not, or when a call fails.
type LiveDataSource struct {
	config common.CompetitiveConfig
	client *http.Client
	policy *retry.Policy
	logger arbor.ILogger
}

var _ interfaces.CompetitiveDataSource = (*LiveDataSource)(nil)

// NewLiveDataSource creates the live integration from configuration
func NewLiveDataSource(config common.CompetitiveConfig, logger arbor.ILogger) *LiveDataSource {
	return &LiveDataSource{
		config: config,
		client: httpclient.New(config.RequestTimeout),
		policy: retry.NewPolicyWithAttempts(config.MaxAttempts),
		logger: logger,
	}
}

func (l *LiveDataSource) Name() string { return "competitive-api" }
func (l *LiveDataSource) Kind() string { return "live" }

// Enabled reports whether the integration endpoint is configured
func (l *LiveDataSource) Enabled() bool {
	return l.config.Endpoint != ""
}

// apiResponse is the wire shape returned by the competitive-data API
type apiResponse struct {
	Data     models.CompetitiveData `json:"data"`
	Metadata struct {
		DataSourcesUsed []string `json:"data_sources_used"`
		Confidence      float64  `json:"confidence"`
		Limitations     []string `json:"limitations"`
	} `json:"metadata"`
}

// Analyze posts the request to the competitive-data API and decodes the
// aggregated result.
func (l *LiveDataSource) Analyze(ctx context.Context, req models.CompetitiveRequest) (*models.CompetitiveData, *models.IntegrationMetadata, error) {
	if !l.Enabled() {
		return nil, nil, fmt.Errorf("competitive api not found in configuration")
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid competitive request: %w", err)
	}

	start := time.Now()
	var parsed apiResponse

	err = l.policy.Do(ctx, l.logger, "competitive_api", func() error {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, l.config.Endpoint+"/v1/analyze", bytes.NewReader(payload))
		if err != nil {
			return fmt.Errorf("invalid endpoint: %w", err)
		}
		httpReq.Header.Set("Content-Type", "application/json")
		if l.config.APIKey != "" {
			httpReq.Header.Set("Authorization", "Bearer "+l.config.APIKey)
		}

		resp, err := l.client.Do(httpReq)
		if err != nil {
			return fmt.Errorf("competitive api request failed: %w", err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(io.LimitReader(resp.Body, 10*1024*1024))
		if err != nil {
			return fmt.Errorf("competitive api read failed: %w", err)
		}

		switch {
		case resp.StatusCode == http.StatusOK:
		case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
			return fmt.Errorf("competitive api unauthorized: status %d", resp.StatusCode)
		case resp.StatusCode == http.StatusTooManyRequests:
			return fmt.Errorf("competitive api rate limit: status %d", resp.StatusCode)
		case resp.StatusCode >= 500:
			return fmt.Errorf("competitive api server error: status %d", resp.StatusCode)
		default:
			return fmt.Errorf("competitive api invalid request: status %d", resp.StatusCode)
		}

		if err := json.Unmarshal(body, &parsed); err != nil {
			return fmt.Errorf("malformed competitive api response: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	l.logger.Debug().
		Str("target_domain", req.TargetDomain).
		Dur("duration", time.Since(start)).
		Msg("Live competitive data received")

	meta := &models.IntegrationMetadata{
		DataSourcesUsed: parsed.Metadata.DataSourcesUsed,
		Confidence:      parsed.Metadata.Confidence,
		Limitations:     parsed.Metadata.Limitations,
		ProcessingTime:  time.Since(start),
	}
	if len(meta.DataSourcesUsed) == 0 {
		meta.DataSourcesUsed = []string{l.Name()}
	}
	return &parsed.Data, meta, nil
}
