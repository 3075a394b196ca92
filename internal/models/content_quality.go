package models

import "time"

// ContentQualityScores holds the four sub-scores and their weighted overall.
// Overall = technical*0.30 + depth*0.40 + readability*0.20 + semantic*0.10.
type ContentQualityScores struct {
	TechnicalSEO      float64 `json:"technical_seo"`
	ContentDepth      float64 `json:"content_depth"`
	Readability       float64 `json:"readability"`
	SemanticRelevance float64 `json:"semantic_relevance"`
	Overall           float64 `json:"overall"`
}

// ContentQualityAnalysis is the AI-assisted content assessment. Degraded is
// set when the external analysis failed and the static fallback was used.
type ContentQualityAnalysis struct {
	WordCount             int                `json:"word_count"`
	HeadingStructureScore float64            `json:"heading_structure_score"`
	KeywordDensity        map[string]float64 `json:"keyword_density"`
	ContentGaps           []string           `json:"content_gaps"`
	TopicCoverage         float64            `json:"topic_coverage"`
	ContentDepth          float64            `json:"content_depth"`
	ExpertiseSignals      []string           `json:"expertise_signals,omitempty"`
	Degraded              bool               `json:"degraded"`
}

// CompetitorComparison captures a best-effort similarity comparison against
// one competitor URL. Absent entirely when the comparison was unavailable.
type CompetitorComparison struct {
	URL        string              `json:"url"`
	Similarity SimilarityBreakdown `json:"similarity"`
}

// ContentQualityResult is the persisted outcome of one content-analysis job
type ContentQualityResult struct {
	ID                    string                 `json:"id"`
	JobID                 string                 `json:"job_id"`
	ProjectID             string                 `json:"project_id"`
	WebsiteURL            string                 `json:"website_url"`
	TargetKeywords        []string               `json:"target_keywords"`
	Scores                ContentQualityScores   `json:"scores"`
	Analysis              ContentQualityAnalysis `json:"analysis"`
	CompetitorComparisons []CompetitorComparison `json:"competitor_comparisons,omitempty"`
	Insights              SemanticInsights       `json:"insights"`
	Recommendations       []Recommendation       `json:"recommendations"`
	Metadata              AnalysisMetadata       `json:"metadata"`
	CreatedAt             time.Time              `json:"created_at"`
}
