package seohealth

import (
	"net/url"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ternarybob/sitescore/internal/models"
)

// pageSpeedScore bands average fetch duration into a 0-100 score, with a
// penalty for heavy pages.
func pageSpeedScore(pages []*models.PageContent) float64 {
	if len(pages) == 0 {
		return 0
	}

	var totalDuration time.Duration
	var totalSize int
	for _, page := range pages {
		totalDuration += page.FetchDuration
		totalSize += page.PageSize
	}
	avgDuration := totalDuration / time.Duration(len(pages))
	avgSize := totalSize / len(pages)

	var score float64
	switch {
	case avgDuration < time.Second:
		score = 100
	case avgDuration < 2*time.Second:
		score = 85
	case avgDuration < 3*time.Second:
		score = 70
	case avgDuration < 5*time.Second:
		score = 50
	default:
		score = 30
	}

	// Heavy pages cost up to 15 points
	switch {
	case avgSize > 3*1024*1024:
		score -= 15
	case avgSize > 1024*1024:
		score -= 8
	}
	if score < 0 {
		score = 0
	}
	return score
}

// viewportCoverage returns the percentage of pages declaring a viewport
func viewportCoverage(pages []*models.PageContent) float64 {
	if len(pages) == 0 {
		return 0
	}
	with := 0
	for _, page := range pages {
		if page.HasViewport {
			with++
		}
	}
	return float64(with) / float64(len(pages)) * 100
}

// urlHygieneScore grades URL quality out of 25: long paths and unsafe
// characters each cost points and emit a warning.
func urlHygieneScore(pages []*models.PageContent) (float64, []models.SEOIssue) {
	var issues []models.SEOIssue
	score := 25.0

	for _, page := range pages {
		parsed, err := url.Parse(page.URL)
		if err != nil {
			continue
		}
		if len(parsed.Path) > 100 {
			score -= 5
			issues = append(issues, models.SEOIssue{
				Type:        "url-too-long",
				Severity:    models.SeverityWarning,
				Title:       "URL path exceeds 100 characters",
				Description: "Long URLs are truncated in results and harder to share",
				Impact:      models.LevelLow,
				Category:    "technical",
				Page:        page.URL,
			})
		}
		if strings.ContainsAny(parsed.Path, " %&=?#") || strings.Contains(parsed.Path, "_") {
			score -= 5
			issues = append(issues, models.SEOIssue{
				Type:        "url-unsafe-chars",
				Severity:    models.SeverityWarning,
				Title:       "URL contains unsafe characters",
				Description: "Spaces, underscores, or reserved characters in paths hurt crawlability",
				Impact:      models.LevelLow,
				Category:    "technical",
				Page:        page.URL,
			})
		}
	}
	if score < 0 {
		score = 0
	}
	return score, issues
}

// onPageScore samples up to onPageSampleSize pages and averages a per-page
// score: title 25, meta description 20, headings 25, internal links 30.
func onPageScore(pages []*models.PageContent) (float64, []models.SEOIssue) {
	sample := pages
	if len(sample) > onPageSampleSize {
		sample = sample[:onPageSampleSize]
	}

	var issues []models.SEOIssue
	total := 0.0
	for _, page := range sample {
		score, pageIssues := scorePage(page)
		total += score
		issues = append(issues, pageIssues...)
	}
	return total / float64(len(sample)), issues
}

func scorePage(page *models.PageContent) (float64, []models.SEOIssue) {
	var issues []models.SEOIssue
	score := 0.0

	titleLen := utf8.RuneCountInString(page.Title)
	switch {
	case titleLen >= 30 && titleLen <= 60:
		score += 25
	case titleLen > 0:
		score += 10
		issues = append(issues, models.SEOIssue{
			Type:        "title-length",
			Severity:    models.SeverityRecommendation,
			Title:       "Title length outside optimal range",
			Description: "Titles between 30 and 60 characters display fully in search results",
			Impact:      models.LevelMedium,
			Category:    "on-page",
			Page:        page.URL,
		})
	default:
		issues = append(issues, models.SEOIssue{
			Type:        "missing-title",
			Severity:    models.SeverityCritical,
			Title:       "Missing page title",
			Description: "The page has no title tag",
			Impact:      models.LevelHigh,
			Category:    "on-page",
			Page:        page.URL,
		})
	}

	metaLen := utf8.RuneCountInString(page.MetaDescription)
	switch {
	case metaLen >= 120 && metaLen <= 160:
		score += 20
	case metaLen > 0:
		score += 8
		issues = append(issues, models.SEOIssue{
			Type:        "meta-length",
			Severity:    models.SeverityRecommendation,
			Title:       "Meta description length outside optimal range",
			Description: "Meta descriptions between 120 and 160 characters avoid truncation",
			Impact:      models.LevelLow,
			Category:    "on-page",
			Page:        page.URL,
		})
	default:
		issues = append(issues, models.SEOIssue{
			Type:        "missing-meta",
			Severity:    models.SeverityWarning,
			Title:       "Missing meta description",
			Description: "The page has no meta description",
			Impact:      models.LevelMedium,
			Category:    "on-page",
			Page:        page.URL,
		})
	}

	h1 := page.H1Count()
	switch {
	case h1 == 0:
		issues = append(issues, models.SEOIssue{
			Type:        "missing-h1",
			Severity:    models.SeverityCritical,
			Title:       "Missing H1 Tag",
			Description: "The page has no H1 heading",
			Impact:      models.LevelHigh,
			Category:    "on-page",
			Page:        page.URL,
		})
	case h1 > 1:
		score += 15
		issues = append(issues, models.SEOIssue{
			Type:        "multiple-h1",
			Severity:    models.SeverityWarning,
			Title:       "Multiple H1 tags",
			Description: "More than one H1 dilutes the page's primary topic signal",
			Impact:      models.LevelMedium,
			Category:    "on-page",
			Page:        page.URL,
		})
	default:
		score += 20
		if page.HeadingCount(2) >= 1 || page.HeadingCount(3) >= 1 {
			score += 5
		}
	}

	switch {
	case page.InternalLinks >= 3:
		score += 30
	case page.InternalLinks > 0:
		score += 15
		issues = append(issues, models.SEOIssue{
			Type:        "few-internal-links",
			Severity:    models.SeverityRecommendation,
			Title:       "Few internal links",
			Description: "Pages with at least three internal links distribute authority better",
			Impact:      models.LevelLow,
			Category:    "on-page",
			Page:        page.URL,
		})
	default:
		issues = append(issues, models.SEOIssue{
			Type:        "no-internal-links",
			Severity:    models.SeverityWarning,
			Title:       "No internal links",
			Description: "The page links to no other pages on the site",
			Impact:      models.LevelMedium,
			Category:    "on-page",
			Page:        page.URL,
		})
	}

	return score, issues
}

// performanceScore grades load behavior across all fetched pages
func performanceScore(pages []*models.PageContent) (float64, []models.SEOIssue) {
	var issues []models.SEOIssue
	score := pageSpeedScore(pages)

	for _, page := range pages {
		if page.PageSize > 3*1024*1024 {
			issues = append(issues, models.SEOIssue{
				Type:        "heavy-page",
				Severity:    models.SeverityWarning,
				Title:       "Page exceeds 3MB",
				Description: "Heavy pages load slowly on constrained connections",
				Impact:      models.LevelMedium,
				Category:    "performance",
				Page:        page.URL,
			})
		}
	}
	if score < 50 {
		issues = append(issues, models.SEOIssue{
			Type:        "slow-load",
			Severity:    models.SeverityCritical,
			Title:       "Pages load too slowly",
			Description: "Average load time is high enough to hurt both rankings and conversions",
			Impact:      models.LevelHigh,
			Category:    "performance",
		})
	}
	return score, issues
}

// mobileScore grades mobile readiness from viewport declarations
func mobileScore(pages []*models.PageContent) (float64, []models.SEOIssue) {
	var issues []models.SEOIssue
	score := viewportCoverage(pages)

	for _, page := range pages {
		if !page.HasViewport {
			issues = append(issues, models.SEOIssue{
				Type:        "missing-viewport",
				Severity:    models.SeverityWarning,
				Title:       "Missing viewport meta tag",
				Description: "Without a viewport declaration the page renders poorly on mobile",
				Impact:      models.LevelHigh,
				Category:    "mobile",
				Page:        page.URL,
			})
		}
	}
	return score, issues
}

// dedupeIssues removes duplicates by (type, title), keeping first occurrence
func dedupeIssues(issues []models.SEOIssue) []models.SEOIssue {
	type key struct{ issueType, title string }
	seen := make(map[key]bool, len(issues))
	deduped := issues[:0]
	for _, issue := range issues {
		k := key{issue.Type, issue.Title}
		if seen[k] {
			continue
		}
		seen[k] = true
		deduped = append(deduped, issue)
	}
	return deduped
}

// filterCritical returns only the critical issues
func filterCritical(issues []models.SEOIssue) []models.SEOIssue {
	var critical []models.SEOIssue
	for _, issue := range issues {
		if issue.Severity == models.SeverityCritical {
			critical = append(critical, issue)
		}
	}
	return critical
}

var impactScore = map[models.Level]int{
	models.LevelHigh:   90,
	models.LevelMedium: 60,
	models.LevelLow:    30,
}

var severityRank = map[models.SEOIssueSeverity]int{
	models.SeverityCritical:       3,
	models.SeverityWarning:        2,
	models.SeverityRecommendation: 1,
}

// buildRecommendations converts the highest-impact issues to actionable
// recommendations, at most max entries.
func buildRecommendations(issues []models.SEOIssue, max int) []models.SEORecommendation {
	sorted := make([]models.SEOIssue, len(issues))
	copy(sorted, issues)
	sort.SliceStable(sorted, func(i, j int) bool {
		if impactScore[sorted[i].Impact] != impactScore[sorted[j].Impact] {
			return impactScore[sorted[i].Impact] > impactScore[sorted[j].Impact]
		}
		return severityRank[sorted[i].Severity] > severityRank[sorted[j].Severity]
	})

	if len(sorted) > max {
		sorted = sorted[:max]
	}

	recommendations := make([]models.SEORecommendation, 0, len(sorted))
	for _, issue := range sorted {
		difficulty := difficultyFor(issue)
		recommendations = append(recommendations, models.SEORecommendation{
			Title:       "Fix: " + issue.Title,
			Description: issue.Description,
			Category:    issue.Category,
			Impact:      impactScore[issue.Impact],
			Difficulty:  difficulty,
			Timeframe:   timeframeFor(difficulty),
			Resources:   resourcesFor(issue.Category),
		})
	}
	return recommendations
}

// difficultyFor maps an issue to an effort scale: easy=20, medium=50, hard=80
func difficultyFor(issue models.SEOIssue) int {
	switch issue.Category {
	case "on-page":
		return 20
	case "mobile":
		return 50
	case "performance":
		return 80
	default:
		return 50
	}
}

func timeframeFor(difficulty int) string {
	switch {
	case difficulty <= 20:
		return "1-2 days"
	case difficulty <= 50:
		return "1-2 weeks"
	default:
		return "2-4 weeks"
	}
}

func resourcesFor(category string) []string {
	switch category {
	case "on-page":
		return []string{"content editor"}
	case "performance":
		return []string{"frontend developer", "devops"}
	case "mobile":
		return []string{"frontend developer"}
	default:
		return []string{"web developer"}
	}
}
