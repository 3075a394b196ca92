// Package competitive implements the competitive-analysis job processor:
// it gathers multi-dimensional competitor data through the live
// integration when available, falling back to simulated data, and scores
// confidence in the outcome.
package competitive

import (
	"context"
	"strings"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/sitescore/internal/common"
	"github.com/ternarybob/sitescore/internal/interfaces"
	"github.com/ternarybob/sitescore/internal/models"
)

const (
	algorithmVersion = "competitive-analysis-v1"
)

// Processor handles competitive-analysis jobs
type Processor struct {
	live        interfaces.CompetitiveDataSource
	simulated   interfaces.CompetitiveDataSource
	liveEnabled bool
	competitors interfaces.CompetitorStorage
	results     interfaces.ResultStorage
	progress    interfaces.ProgressSink
	logger      arbor.ILogger
}

var _ interfaces.JobProcessor = (*Processor)(nil)

// New creates a competitive analysis processor. live may be nil when no
// integration endpoint is configured; the simulated source is mandatory.
func New(live interfaces.CompetitiveDataSource, simulated interfaces.CompetitiveDataSource, competitors interfaces.CompetitorStorage, results interfaces.ResultStorage, progress interfaces.ProgressSink, logger arbor.ILogger) *Processor {
	return &Processor{
		live:        live,
		simulated:   simulated,
		liveEnabled: live != nil,
		competitors: competitors,
		results:     results,
		progress:    progress,
		logger:      logger,
	}
}

// Type returns the job type this processor handles
func (p *Processor) Type() models.JobType {
	return models.JobTypeCompetitiveAnalysis
}

// Validate reports whether the job data can be processed
func (p *Processor) Validate(data models.JobData) bool {
	if !data.HasIdentifiers() {
		return false
	}
	params, err := models.DecodeParams[models.CompetitiveAnalysisParams](data.Params)
	if err != nil {
		return false
	}
	return params.Valid()
}

// EstimateProcessingTime returns the advisory estimate in seconds:
// (180 + 60 per competitor + 90 per analysis type) scaled by depth.
func (p *Processor) EstimateProcessingTime(data models.JobData) int {
	params, err := models.DecodeParams[models.CompetitiveAnalysisParams](data.Params)
	if err != nil {
		return 180
	}
	base := 180 + 60*len(params.CompetitorIDs) + 90*len(params.ResolvedTypes())
	return int(float64(base) * params.Options.Depth.Multiplier())
}

// Process runs the competitive analysis end to end
func (p *Processor) Process(ctx context.Context, job *models.Job) models.JobResult {
	start := time.Now()

	params, err := models.DecodeParams[models.CompetitiveAnalysisParams](job.Data.Params)
	if err != nil {
		return models.FailureResult("invalid competitive analysis params: "+err.Error(), false, 0)
	}

	p.report(ctx, job.ID, 5, "Starting competitive analysis")

	competitors, err := p.competitors.GetCompetitors(ctx, params.CompetitorIDs)
	if err != nil {
		p.logger.Warn().
			Str("target_domain", params.TargetDomain).
			Err(err).
			Msg("Competitor lookup failed, proceeding with synthesized placeholders")
		competitors = placeholderCompetitors(params.CompetitorIDs)
	}
	p.report(ctx, job.ID, 15, "Competitors loaded")

	req := models.CompetitiveRequest{
		TargetDomain:      params.TargetDomain,
		CompetitorDomains: domainsOf(competitors),
		AnalysisTypes:     params.ResolvedTypes(),
		Options:           params.Options,
	}

	data, meta, source := p.gatherData(ctx, req)
	p.report(ctx, job.ID, 60, "Competitive data gathered")

	confidence := scoreConfidence(source.Kind(), meta, params.Options.Depth, data)
	p.report(ctx, job.ID, 75, "Confidence scored")

	var alerts []models.CompetitiveAlert
	if params.Options.AlertsEnabled {
		alerts = buildAlerts(data, competitors, confidence.Overall)
	}
	p.report(ctx, job.ID, 90, "Alerts evaluated")

	result := &models.CompetitiveAnalysisResult{
		ID:           common.NewResultID(),
		JobID:        job.ID,
		ProjectID:    job.Data.ProjectID,
		TargetDomain: params.TargetDomain,
		Competitors:  competitors,
		Data:         *data,
		Alerts:       alerts,
		Confidence:   confidence,
		Metadata:     buildMetadata(params, source, meta, time.Since(start)),
		CreatedAt:    time.Now().UTC(),
	}

	if err := p.results.SaveCompetitiveResult(ctx, result); err != nil {
		return models.FailureResult("failed to save result: "+err.Error(), true, 90)
	}

	p.logger.Info().
		Str("job_id", job.ID).
		Str("target_domain", params.TargetDomain).
		Str("data_source", source.Kind()).
		Float64("confidence", confidence.Overall).
		Int("alerts", len(alerts)).
		Dur("duration", time.Since(start)).
		Msg("Competitive analysis complete")

	success, err := models.SuccessResult(result)
	if err != nil {
		return models.FailureResult("failed to encode result: "+err.Error(), false, 95)
	}
	return success
}

// gatherData tries the live integration first and falls back to the
// simulated source on any failure. The simulated source never fails.
func (p *Processor) gatherData(ctx context.Context, req models.CompetitiveRequest) (*models.CompetitiveData, *models.IntegrationMetadata, interfaces.CompetitiveDataSource) {
	if p.liveEnabled {
		data, meta, err := p.live.Analyze(ctx, req)
		if err == nil {
			return data, meta, p.live
		}
		p.logger.Warn().
			Str("target_domain", req.TargetDomain).
			Err(err).
			Msg("Live competitive integration failed, falling back to simulated data")
	}

	data, meta, _ := p.simulated.Analyze(ctx, req)
	return data, meta, p.simulated
}

// placeholderCompetitors builds synthesized records when the competitor
// store is unreachable, so the analysis can still proceed with degraded
// data.
func placeholderCompetitors(ids []string) []models.Competitor {
	competitors := make([]models.Competitor, 0, len(ids))
	for _, id := range ids {
		competitors = append(competitors, models.Competitor{
			ID:          id,
			Name:        "Competitor " + id,
			Domain:      strings.TrimPrefix(id, "comp_") + ".example.com",
			Synthesized: true,
			CreatedAt:   time.Now().UTC(),
		})
	}
	return competitors
}

func domainsOf(competitors []models.Competitor) []string {
	domains := make([]string, 0, len(competitors))
	for _, c := range competitors {
		domains = append(domains, c.Domain)
	}
	return domains
}

func buildMetadata(params models.CompetitiveAnalysisParams, source interfaces.CompetitiveDataSource, meta *models.IntegrationMetadata, elapsed time.Duration) models.AnalysisMetadata {
	analysisTypes := params.ResolvedTypes()
	typeNames := make([]string, 0, len(analysisTypes))
	for _, t := range analysisTypes {
		typeNames = append(typeNames, string(t))
	}

	out := models.AnalysisMetadata{
		Version:   algorithmVersion,
		Algorithm: "multi-source-aggregate",
		Parameters: map[string]any{
			"analysis_types":   typeNames,
			"depth":            string(params.Options.Depth),
			"competitor_count": len(params.CompetitorIDs),
		},
		ExecutionTime: elapsed,
		DataSources: []models.DataSourceInfo{
			{Name: source.Name(), Kind: source.Kind(), Timestamp: time.Now().UTC()},
		},
		Limitations: meta.Limitations,
	}
	return out
}

func (p *Processor) report(ctx context.Context, jobID string, percent int, message string) {
	if err := p.progress.UpdateProgress(ctx, jobID, percent, message); err != nil {
		p.logger.Debug().Str("job_id", jobID).Err(err).Msg("Progress update failed")
	}
}
