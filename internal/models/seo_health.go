package models

import "time"

// SEOIssueSeverity grades how urgent an SEO issue is
type SEOIssueSeverity string

const (
	SeverityCritical       SEOIssueSeverity = "critical"
	SeverityWarning        SEOIssueSeverity = "warning"
	SeverityRecommendation SEOIssueSeverity = "recommendation"
)

// SEOIssue is a single finding from a health check
type SEOIssue struct {
	Type        string           `json:"type"`
	Severity    SEOIssueSeverity `json:"severity"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Impact      Level            `json:"impact"`
	Category    string           `json:"category"` // technical, on-page, performance, mobile
	Page        string           `json:"page,omitempty"`
}

// SEOHealthScores holds the four pillar scores and their weighted overall.
// Overall = technical*0.35 + onPage*0.30 + performance*0.20 + mobile*0.15.
type SEOHealthScores struct {
	Technical   float64 `json:"technical"`
	OnPage      float64 `json:"on_page"`
	Performance float64 `json:"performance"`
	Mobile      float64 `json:"mobile"`
	Overall     float64 `json:"overall"`
}

// SEORecommendation is an issue converted to an actionable item with
// numeric impact/difficulty scales and derived timeframe/resources.
type SEORecommendation struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Impact      int      `json:"impact"`     // high=90, medium=60, low=30
	Difficulty  int      `json:"difficulty"` // easy=20, medium=50, hard=80
	Timeframe   string   `json:"timeframe"`
	Resources   []string `json:"resources"`
}

// SEOHealthResult is the persisted outcome of one seo-health-check job
type SEOHealthResult struct {
	ID              string              `json:"id"`
	JobID           string              `json:"job_id"`
	ProjectID       string              `json:"project_id"`
	WebsiteURL      string              `json:"website_url"`
	PagesAnalyzed   int                 `json:"pages_analyzed"`
	Scores          SEOHealthScores     `json:"scores"`
	CriticalIssues  []SEOIssue          `json:"critical_issues"`
	Issues          []SEOIssue          `json:"issues"`
	Recommendations []SEORecommendation `json:"recommendations"`
	Metadata        AnalysisMetadata    `json:"metadata"`
	CreatedAt       time.Time           `json:"created_at"`
}
