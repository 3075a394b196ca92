// Package seohealth implements the seo-health-check job processor: a
// four-pillar site audit covering technical SEO, on-page factors,
// performance, and mobile readiness.
package seohealth

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/sitescore/internal/common"
	"github.com/ternarybob/sitescore/internal/interfaces"
	"github.com/ternarybob/sitescore/internal/models"
	"github.com/ternarybob/sitescore/internal/scoring"
	"github.com/ternarybob/sitescore/internal/services/fetch"
)

const (
	// Pillar weights
	weightTechnical   = 0.35
	weightOnPage      = 0.30
	weightPerformance = 0.20
	weightMobile      = 0.15

	// Defaults for pillars the job did not request
	defaultPerformanceScore = 85
	defaultMobileScore      = 90

	// On-page analysis samples at most this many pages
	onPageSampleSize = 5

	maxRecommendations = 10

	algorithmVersion = "seo-health-v1"
)

// Processor handles seo-health-check jobs
type Processor struct {
	fetcher  interfaces.ContentFetcher
	results  interfaces.ResultStorage
	progress interfaces.ProgressSink
	logger   arbor.ILogger
}

var _ interfaces.JobProcessor = (*Processor)(nil)

// New creates an SEO health processor
func New(fetcher interfaces.ContentFetcher, results interfaces.ResultStorage, progress interfaces.ProgressSink, logger arbor.ILogger) *Processor {
	return &Processor{
		fetcher:  fetcher,
		results:  results,
		progress: progress,
		logger:   logger,
	}
}

// Type returns the job type this processor handles
func (p *Processor) Type() models.JobType {
	return models.JobTypeSEOHealthCheck
}

// Validate reports whether the job data can be processed
func (p *Processor) Validate(data models.JobData) bool {
	if !data.HasIdentifiers() {
		return false
	}
	params, err := models.DecodeParams[models.SEOHealthParams](data.Params)
	if err != nil {
		return false
	}
	return params.Valid()
}

// EstimateProcessingTime returns the advisory estimate in seconds:
// 120 per page, plus 180 for performance and 120 for mobile analysis.
func (p *Processor) EstimateProcessingTime(data models.JobData) int {
	params, err := models.DecodeParams[models.SEOHealthParams](data.Params)
	if err != nil {
		return 120
	}
	estimate := 120 * len(params.Pages)
	if params.IncludePerformance {
		estimate += 180
	}
	if params.IncludeMobile {
		estimate += 120
	}
	return estimate
}

// Process runs the four-pillar health check
func (p *Processor) Process(ctx context.Context, job *models.Job) models.JobResult {
	start := time.Now()

	params, err := models.DecodeParams[models.SEOHealthParams](job.Data.Params)
	if err != nil {
		return models.FailureResult("invalid seo health params: "+err.Error(), false, 0)
	}

	p.report(ctx, job.ID, 5, "Starting SEO health check")

	pages, fetchIssues := p.fetchPages(ctx, params)
	if len(pages) == 0 {
		return models.FailureResult("no pages could be fetched for analysis", true, 5)
	}
	p.report(ctx, job.ID, 25, "Pages fetched")

	var issues []models.SEOIssue
	issues = append(issues, fetchIssues...)

	technical, technicalIssues := p.technicalScore(ctx, params.WebsiteURL, pages)
	issues = append(issues, technicalIssues...)
	p.report(ctx, job.ID, 45, "Technical analysis complete")

	onPage, onPageIssues := onPageScore(pages)
	issues = append(issues, onPageIssues...)
	p.report(ctx, job.ID, 60, "On-page analysis complete")

	performance := float64(defaultPerformanceScore)
	if params.IncludePerformance {
		var performanceIssues []models.SEOIssue
		performance, performanceIssues = performanceScore(pages)
		issues = append(issues, performanceIssues...)
	}
	p.report(ctx, job.ID, 75, "Performance analysis complete")

	mobile := float64(defaultMobileScore)
	if params.IncludeMobile {
		var mobileIssues []models.SEOIssue
		mobile, mobileIssues = mobileScore(pages)
		issues = append(issues, mobileIssues...)
	}
	p.report(ctx, job.ID, 85, "Mobile analysis complete")

	scores := models.SEOHealthScores{
		Technical:   scoring.Round1(technical),
		OnPage:      scoring.Round1(onPage),
		Performance: scoring.Round1(performance),
		Mobile:      scoring.Round1(mobile),
	}
	scores.Overall = scoring.Round1(scoring.WeightedOverall(
		scoring.Weighted{Score: scores.Technical, Weight: weightTechnical},
		scoring.Weighted{Score: scores.OnPage, Weight: weightOnPage},
		scoring.Weighted{Score: scores.Performance, Weight: weightPerformance},
		scoring.Weighted{Score: scores.Mobile, Weight: weightMobile},
	))

	issues = dedupeIssues(issues)
	critical := filterCritical(issues)
	recommendations := buildRecommendations(issues, maxRecommendations)
	p.report(ctx, job.ID, 95, "Recommendations generated")

	result := &models.SEOHealthResult{
		ID:              common.NewResultID(),
		JobID:           job.ID,
		ProjectID:       job.Data.ProjectID,
		WebsiteURL:      params.WebsiteURL,
		PagesAnalyzed:   len(pages),
		Scores:          scores,
		CriticalIssues:  critical,
		Issues:          issues,
		Recommendations: recommendations,
		Metadata: models.AnalysisMetadata{
			Version:   algorithmVersion,
			Algorithm: "four-pillar-weighted",
			Parameters: map[string]any{
				"pages_requested":     len(params.Pages),
				"include_performance": params.IncludePerformance,
				"include_mobile":      params.IncludeMobile,
			},
			ExecutionTime: time.Since(start),
			DataSources: []models.DataSourceInfo{
				{Name: "page-fetch", Kind: "live", Timestamp: time.Now().UTC()},
			},
		},
		CreatedAt: time.Now().UTC(),
	}

	if err := p.results.SaveSEOHealthResult(ctx, result); err != nil {
		return models.FailureResult("failed to save result: "+err.Error(), true, 95)
	}

	p.logger.Info().
		Str("job_id", job.ID).
		Float64("overall", scores.Overall).
		Int("pages", len(pages)).
		Int("issues", len(issues)).
		Dur("duration", time.Since(start)).
		Msg("SEO health check complete")

	success, err := models.SuccessResult(result)
	if err != nil {
		return models.FailureResult("failed to encode result: "+err.Error(), false, 95)
	}
	return success
}

// fetchPages resolves page references against the site URL and fetches them.
// Individual fetch failures become warnings rather than failing the job.
func (p *Processor) fetchPages(ctx context.Context, params models.SEOHealthParams) ([]*models.PageContent, []models.SEOIssue) {
	var pages []*models.PageContent
	var issues []models.SEOIssue

	for _, ref := range params.Pages {
		pageURL := resolvePageURL(params.WebsiteURL, ref)
		page, err := p.fetcher.FetchPage(ctx, pageURL)
		if err != nil {
			p.logger.Warn().Str("url", pageURL).Err(err).Msg("Page fetch failed during health check")
			issues = append(issues, models.SEOIssue{
				Type:        "fetch-failure",
				Severity:    models.SeverityWarning,
				Title:       "Page could not be fetched",
				Description: "The page did not respond successfully and was excluded from analysis: " + pageURL,
				Impact:      models.LevelMedium,
				Category:    "technical",
				Page:        pageURL,
			})
			continue
		}
		pages = append(pages, page)
	}
	return pages, issues
}

func resolvePageURL(siteURL, ref string) string {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	base, err := url.Parse(siteURL)
	if err != nil {
		return ref
	}
	rel, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return base.ResolveReference(rel).String()
}

// technicalScore combines page speed (40%), mobile responsiveness (25%),
// and site architecture (35%).
func (p *Processor) technicalScore(ctx context.Context, siteURL string, pages []*models.PageContent) (float64, []models.SEOIssue) {
	var issues []models.SEOIssue

	speed := pageSpeedScore(pages)
	if speed < 70 {
		issues = append(issues, models.SEOIssue{
			Type:        "page-speed",
			Severity:    models.SeverityWarning,
			Title:       "Poor page speed",
			Description: "Pages load slowly enough to hurt rankings and user experience",
			Impact:      models.LevelHigh,
			Category:    "technical",
		})
	} else if speed < 80 {
		issues = append(issues, models.SEOIssue{
			Type:        "page-speed",
			Severity:    models.SeverityRecommendation,
			Title:       "Optimize Core Web Vitals",
			Description: "Page load times have room for improvement",
			Impact:      models.LevelMedium,
			Category:    "technical",
		})
	}

	responsive := viewportCoverage(pages)

	architecture, archIssues := p.architectureScore(ctx, siteURL, pages)
	issues = append(issues, archIssues...)

	technical := speed*0.40 + responsive*0.25 + architecture*0.35
	return technical, issues
}

// architectureScore checks robots.txt, sitemap.xml, HTTPS, and URL hygiene,
// 25 points each.
func (p *Processor) architectureScore(ctx context.Context, siteURL string, pages []*models.PageContent) (float64, []models.SEOIssue) {
	var issues []models.SEOIssue
	score := 0.0

	robotsURL, sitemapURL, err := fetch.RootProbeURLs(siteURL)
	if err == nil {
		if p.fetcher.Probe(ctx, robotsURL) {
			score += 25
		} else {
			issues = append(issues, models.SEOIssue{
				Type:        "missing-robots",
				Severity:    models.SeverityWarning,
				Title:       "Missing robots.txt",
				Description: "No robots.txt was found at the site root",
				Impact:      models.LevelMedium,
				Category:    "technical",
			})
		}
		if p.fetcher.Probe(ctx, sitemapURL) {
			score += 25
		} else {
			issues = append(issues, models.SEOIssue{
				Type:        "missing-sitemap",
				Severity:    models.SeverityWarning,
				Title:       "Missing XML sitemap",
				Description: "No sitemap.xml was found at the site root",
				Impact:      models.LevelMedium,
				Category:    "technical",
			})
		}
	}

	if strings.HasPrefix(siteURL, "https://") {
		score += 25
	} else {
		issues = append(issues, models.SEOIssue{
			Type:        "no-https",
			Severity:    models.SeverityCritical,
			Title:       "Site not served over HTTPS",
			Description: "HTTPS is a ranking signal and a trust requirement",
			Impact:      models.LevelHigh,
			Category:    "technical",
		})
	}

	hygiene, hygieneIssues := urlHygieneScore(pages)
	score += hygiene
	issues = append(issues, hygieneIssues...)

	return score, issues
}

func (p *Processor) report(ctx context.Context, jobID string, percent int, message string) {
	if err := p.progress.UpdateProgress(ctx, jobID, percent, message); err != nil {
		p.logger.Debug().Str("job_id", jobID).Err(err).Msg("Progress update failed")
	}
}
