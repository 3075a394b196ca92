// Package contentquality implements the content-analysis job processor:
// it scores a page's content quality across technical SEO, depth,
// readability, and semantic relevance.
package contentquality

import (
	"context"
	"sync"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/sitescore/internal/common"
	"github.com/ternarybob/sitescore/internal/interfaces"
	"github.com/ternarybob/sitescore/internal/models"
	"github.com/ternarybob/sitescore/internal/retry"
	"github.com/ternarybob/sitescore/internal/scoring"
	"github.com/ternarybob/sitescore/internal/services/llm"
	"github.com/ternarybob/sitescore/internal/services/semantic"
)

const (
	// Overall score weights
	weightTechnicalSEO      = 0.30
	weightContentDepth      = 0.40
	weightReadability       = 0.20
	weightSemanticRelevance = 0.10

	maxRecommendations = 10

	algorithmVersion = "content-quality-v1"
)

// Processor handles content-analysis jobs
type Processor struct {
	fetcher  interfaces.ContentFetcher
	analyzer interfaces.ContentAnalyzer
	results  interfaces.ResultStorage
	progress interfaces.ProgressSink
	logger   arbor.ILogger
}

var _ interfaces.JobProcessor = (*Processor)(nil)

// New creates a content quality processor
func New(fetcher interfaces.ContentFetcher, analyzer interfaces.ContentAnalyzer, results interfaces.ResultStorage, progress interfaces.ProgressSink, logger arbor.ILogger) *Processor {
	return &Processor{
		fetcher:  fetcher,
		analyzer: analyzer,
		results:  results,
		progress: progress,
		logger:   logger,
	}
}

// Type returns the job type this processor handles
func (p *Processor) Type() models.JobType {
	return models.JobTypeContentAnalysis
}

// Validate reports whether the job data can be processed. Pure; no side
// effects.
func (p *Processor) Validate(data models.JobData) bool {
	if !data.HasIdentifiers() {
		return false
	}
	params, err := models.DecodeParams[models.ContentAnalysisParams](data.Params)
	if err != nil {
		return false
	}
	return params.Valid()
}

// EstimateProcessingTime returns the advisory estimate in seconds:
// (240 + 60 per competitor) scaled by analysis depth.
func (p *Processor) EstimateProcessingTime(data models.JobData) int {
	params, err := models.DecodeParams[models.ContentAnalysisParams](data.Params)
	if err != nil {
		return 240
	}
	base := 240 + 60*len(params.CompetitorURLs)
	return int(float64(base) * params.AnalysisDepth.Multiplier())
}

// Process runs the content quality analysis end to end
func (p *Processor) Process(ctx context.Context, job *models.Job) models.JobResult {
	start := time.Now()

	params, err := models.DecodeParams[models.ContentAnalysisParams](job.Data.Params)
	if err != nil {
		return models.FailureResult("invalid content analysis params: "+err.Error(), false, 0)
	}

	p.report(ctx, job.ID, 5, "Starting content analysis")

	page, err := p.fetcher.FetchPage(ctx, params.WebsiteURL)
	if err != nil {
		return models.FailureResult("failed to fetch page: "+err.Error(), retry.IsRetryable(err), 5)
	}
	p.report(ctx, job.ID, 20, "Page content fetched")

	// Independent sub-analyses run concurrently and join before aggregation
	var (
		wg          sync.WaitGroup
		analysis    *models.ContentQualityAnalysis
		technical   float64
		readability float64
		relevance   float64
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		analysis = p.analyzeContent(ctx, page, params.TargetKeywords)
	}()
	go func() {
		defer wg.Done()
		technical = technicalSEOScore(page)
		readability = readabilityScore(page)
		relevance = semanticRelevanceScore(page, params.TargetKeywords)
	}()
	wg.Wait()
	p.report(ctx, job.ID, 55, "Content analyzed")

	comparisons, competitorTexts := p.compareCompetitors(ctx, page, params.CompetitorURLs)
	insights := buildInsights(page, params.TargetKeywords, competitorTexts)
	p.report(ctx, job.ID, 75, "Competitor comparisons complete")

	scores := models.ContentQualityScores{
		TechnicalSEO:      scoring.Round1(technical),
		ContentDepth:      scoring.Round1(analysis.ContentDepth),
		Readability:       scoring.Round1(readability),
		SemanticRelevance: scoring.Round1(relevance),
	}
	scores.Overall = scoring.Round1(scoring.WeightedOverall(
		scoring.Weighted{Score: scores.TechnicalSEO, Weight: weightTechnicalSEO},
		scoring.Weighted{Score: scores.ContentDepth, Weight: weightContentDepth},
		scoring.Weighted{Score: scores.Readability, Weight: weightReadability},
		scoring.Weighted{Score: scores.SemanticRelevance, Weight: weightSemanticRelevance},
	))

	recommendations := scoring.RankRecommendations(buildRecommendations(scores, analysis), maxRecommendations)
	p.report(ctx, job.ID, 90, "Recommendations generated")

	result := &models.ContentQualityResult{
		ID:                    common.NewResultID(),
		JobID:                 job.ID,
		ProjectID:             job.Data.ProjectID,
		WebsiteURL:            params.WebsiteURL,
		TargetKeywords:        params.TargetKeywords,
		Scores:                scores,
		Analysis:              *analysis,
		CompetitorComparisons: comparisons,
		Insights:              insights,
		Recommendations:       recommendations,
		Metadata:              p.buildMetadata(params, analysis, time.Since(start)),
		CreatedAt:             time.Now().UTC(),
	}

	if err := p.results.SaveContentQualityResult(ctx, result); err != nil {
		return models.FailureResult("failed to save result: "+err.Error(), true, 90)
	}

	p.logger.Info().
		Str("job_id", job.ID).
		Float64("overall", scores.Overall).
		Bool("degraded", analysis.Degraded).
		Dur("duration", time.Since(start)).
		Msg("Content quality analysis complete")

	success, err := models.SuccessResult(result)
	if err != nil {
		return models.FailureResult("failed to encode result: "+err.Error(), false, 95)
	}
	return success
}

// analyzeContent runs the AI analysis, degrading to the static fallback on
// failure rather than failing the job.
func (p *Processor) analyzeContent(ctx context.Context, page *models.PageContent, keywords []string) *models.ContentQualityAnalysis {
	analysis, err := p.analyzer.AnalyzeContentQuality(ctx, page, keywords)
	if err != nil {
		p.logger.Warn().
			Str("url", page.URL).
			Err(err).
			Msg("AI content analysis unavailable, using fallback")
		return llm.FallbackAnalysis(page, keywords)
	}
	return analysis
}

// compareCompetitors fetches each competitor URL and computes similarity.
// Failures are tolerated; the comparison for a failed URL is simply absent.
// Competitor texts feed the keyword opportunity analysis.
func (p *Processor) compareCompetitors(ctx context.Context, target *models.PageContent, urls []string) ([]models.CompetitorComparison, []string) {
	var comparisons []models.CompetitorComparison
	var texts []string
	for _, competitorURL := range urls {
		competitorPage, err := p.fetcher.FetchPage(ctx, competitorURL)
		if err != nil {
			p.logger.Warn().
				Str("competitor_url", competitorURL).
				Err(err).
				Msg("Competitor fetch failed, skipping comparison")
			continue
		}
		comparisons = append(comparisons, models.CompetitorComparison{
			URL:        competitorURL,
			Similarity: semantic.ComparePages(target, competitorPage),
		})
		texts = append(texts, competitorPage.Text)
	}
	return comparisons, texts
}

// buildInsights assembles the deterministic text-analysis summary. Target
// keywords seed the opportunity analysis so they are scored even when
// phrase extraction misses them.
func buildInsights(page *models.PageContent, targetKeywords []string, competitorTexts []string) models.SemanticInsights {
	sentiment := semantic.Sentiment(page.Text)
	opportunities := semantic.KeywordOpportunities(page.Text, competitorTexts, targetKeywords, maxRecommendations)

	return models.SemanticInsights{
		Topics:               semantic.ExtractTopics(page.Text),
		Sentiment:            sentiment,
		SentimentComparative: semantic.SentimentComparative(page.Text),
		SentimentLabel:       semantic.SentimentLabel(sentiment),
		Entities:             semantic.NamedEntities(page.Text),
		KeywordOpportunities: opportunities,
		OpportunityBuckets:   semantic.BucketOpportunities(opportunities),
	}
}

func (p *Processor) buildMetadata(params models.ContentAnalysisParams, analysis *models.ContentQualityAnalysis, elapsed time.Duration) models.AnalysisMetadata {
	meta := models.AnalysisMetadata{
		Version:   algorithmVersion,
		Algorithm: "weighted-composite",
		Parameters: map[string]any{
			"analysis_depth":   string(params.AnalysisDepth),
			"keyword_count":    len(params.TargetKeywords),
			"competitor_count": len(params.CompetitorURLs),
		},
		ExecutionTime: elapsed,
		DataSources: []models.DataSourceInfo{
			{Name: "page-fetch", Kind: "live", Timestamp: time.Now().UTC()},
		},
	}
	if analysis.Degraded {
		meta.Limitations = append(meta.Limitations, "AI content analysis unavailable; depth and coverage derived from extracted page data")
	}
	return meta
}

func (p *Processor) report(ctx context.Context, jobID string, percent int, message string) {
	if err := p.progress.UpdateProgress(ctx, jobID, percent, message); err != nil {
		p.logger.Debug().Str("job_id", jobID).Err(err).Msg("Progress update failed")
	}
}
