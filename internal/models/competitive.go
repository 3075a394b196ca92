package models

import "time"

// Competitor is a tracked competitor record. Synthesized is set when the
// record could not be loaded and a placeholder was generated so the job
// could still proceed.
type Competitor struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Domain      string    `json:"domain"`
	Industry    string    `json:"industry,omitempty"`
	Synthesized bool      `json:"synthesized,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// SimilarityBreakdown is the 4-dimensional similarity result plus its
// weighted overall (0.3 lexical + 0.4 semantic + 0.15 structural + 0.15 topical).
type SimilarityBreakdown struct {
	Overall    float64 `json:"overall"`
	Lexical    float64 `json:"lexical"`
	Semantic   float64 `json:"semantic"`
	Structural float64 `json:"structural"`
	Topical    float64 `json:"topical"`
}

// TopicAnalysis partitions topics between the target and its competitors
type TopicAnalysis struct {
	Shared   []string `json:"shared"`
	Unique   []string `json:"unique"`
	Gaps     []string `json:"gaps"`
	Emerging []string `json:"emerging"`
}

// VolumeComparison compares publishing volume and cadence
type VolumeComparison struct {
	TargetPagesPerMonth     float64 `json:"target_pages_per_month"`
	CompetitorPagesPerMonth float64 `json:"competitor_pages_per_month"`
	Cadence                 string  `json:"cadence"`
}

// ContentComparisonResult is the content-similarity analysis shape
type ContentComparisonResult struct {
	Similarity      SimilarityBreakdown `json:"similarity"`
	Quality         []ScoreComponent    `json:"quality"`
	Topics          TopicAnalysis       `json:"topics"`
	Volume          VolumeComparison    `json:"volume"`
	Recommendations []Recommendation    `json:"recommendations"`
}

// KeywordSets partitions keywords between target and competitors
type KeywordSets struct {
	Shared []string `json:"shared"`
	Unique []string `json:"unique"`
	Gaps   []string `json:"gaps"`
}

// CoreWebVitals holds the three Core Web Vitals measurements
type CoreWebVitals struct {
	LCP float64 `json:"lcp"` // seconds
	FID float64 `json:"fid"` // milliseconds
	CLS float64 `json:"cls"`
}

// TechnicalSEOComparison compares technical SEO including Core Web Vitals
type TechnicalSEOComparison struct {
	TargetVitals     CoreWebVitals    `json:"target_vitals"`
	CompetitorVitals CoreWebVitals    `json:"competitor_vitals"`
	Factors          []ScoreComponent `json:"factors"`
}

// SEOComparisonResult is the seo-comparison analysis shape
type SEOComparisonResult struct {
	Ranking             []ScoreComponent       `json:"ranking"`
	Visibility          ScoreComponent         `json:"visibility"`
	Keywords            KeywordSets            `json:"keywords"`
	Technical           TechnicalSEOComparison `json:"technical"`
	ContentOptimization []ScoreComponent       `json:"content_optimization"`
	LinkProfile         []ScoreComponent       `json:"link_profile"`
}

// ImprovementOpportunity ranks one performance improvement area
type ImprovementOpportunity struct {
	Area                 string  `json:"area"`
	CurrentValue         float64 `json:"current_value"`
	CompetitorValue      float64 `json:"competitor_value"`
	ImprovementPotential float64 `json:"improvement_potential"` // percent
	Priority             Level   `json:"priority"`
}

// PerformanceComparisonResult is the performance-benchmark analysis shape
type PerformanceComparisonResult struct {
	CoreWebVitals []ScoreComponent         `json:"core_web_vitals"`
	UXScores      []ScoreComponent         `json:"ux_scores"`
	Mobile        []ScoreComponent         `json:"mobile"`
	Opportunities []ImprovementOpportunity `json:"opportunities"`
}

// MarketPositionClass classifies overall market standing
type MarketPositionClass string

const (
	PositionLeader     MarketPositionClass = "leader"
	PositionChallenger MarketPositionClass = "challenger"
	PositionFollower   MarketPositionClass = "follower"
	PositionNiche      MarketPositionClass = "niche"
)

// Trend indicates the direction of market position movement
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendStable    Trend = "stable"
	TrendDeclining Trend = "declining"
)

// MarketOpportunity is an opportunity sized by market value
type MarketOpportunity struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	MarketValue float64 `json:"market_value"`
}

// MarketThreat is a threat quantified by probability and impact
type MarketThreat struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Probability float64 `json:"probability"` // [0,1]
	Impact      float64 `json:"impact"`      // [0,100]
}

// MarketPositionResult is the market-position analysis shape
type MarketPositionResult struct {
	Position        MarketPositionClass `json:"position"`
	Trend           Trend               `json:"trend"`
	Strengths       []string            `json:"strengths"`
	Weaknesses      []string            `json:"weaknesses"`
	Opportunities   []MarketOpportunity `json:"opportunities"`
	Threats         []MarketThreat      `json:"threats"`
	Recommendations []Recommendation    `json:"recommendations"`
}

// GapOpportunity places one gap on the impact/effort matrix
type GapOpportunity struct {
	Topic  string `json:"topic"`
	Impact Level  `json:"impact"`
	Effort Level  `json:"effort"`
}

// OpportunityMatrix is the 2x2 impact/effort classification of gaps
type OpportunityMatrix struct {
	QuickWins     []GapOpportunity `json:"quick_wins"`     // high impact, low effort
	StrategicBets []GapOpportunity `json:"strategic_bets"` // high impact, high effort
	FillIns       []GapOpportunity `json:"fill_ins"`       // low impact, low effort
	LowPriority   []GapOpportunity `json:"low_priority"`   // low impact, high effort
}

// ContentGapResult is the content-gaps analysis shape
type ContentGapResult struct {
	TopicGaps       []string          `json:"topic_gaps"`
	KeywordGaps     []string          `json:"keyword_gaps"`
	FormatGaps      []string          `json:"format_gaps"`
	AudienceGaps    []string          `json:"audience_gaps"`
	Matrix          OpportunityMatrix `json:"matrix"`
	Recommendations []Recommendation  `json:"recommendations"`
}

// CompetitiveData aggregates the per-type analysis sections. Sections are
// nil when their analysis type was not requested.
type CompetitiveData struct {
	Content        *ContentComparisonResult     `json:"content,omitempty"`
	SEO            *SEOComparisonResult         `json:"seo,omitempty"`
	Performance    *PerformanceComparisonResult `json:"performance,omitempty"`
	MarketPosition *MarketPositionResult        `json:"market_position,omitempty"`
	ContentGaps    *ContentGapResult            `json:"content_gaps,omitempty"`
}

// AlertMetadata carries the confidence/impact/urgency annotations on an alert
type AlertMetadata struct {
	Confidence      float64        `json:"confidence"`
	Impact          float64        `json:"impact"`
	Urgency         float64        `json:"urgency"`
	RelatedEntities []string       `json:"related_entities,omitempty"`
	Data            map[string]any `json:"data,omitempty"`
}

// CompetitiveAlert is generated per analysis run, never persisted as a
// standing entity.
type CompetitiveAlert struct {
	ID              string        `json:"id"`
	CompetitorID    string        `json:"competitor_id"`
	Type            string        `json:"type"`
	Severity        Level         `json:"severity"`
	Title           string        `json:"title"`
	Description     string        `json:"description"`
	Timestamp       time.Time     `json:"timestamp"`
	Status          string        `json:"status"`
	Metadata        AlertMetadata `json:"metadata"`
	ActionRequired  bool          `json:"action_required"`
	Recommendations []string      `json:"recommendations"`
}

// CompetitiveAnalysisResult is the persisted outcome of one
// competitive-analysis job.
type CompetitiveAnalysisResult struct {
	ID           string             `json:"id"`
	JobID        string             `json:"job_id"`
	ProjectID    string             `json:"project_id"`
	TargetDomain string             `json:"target_domain"`
	Competitors  []Competitor       `json:"competitors"`
	Data         CompetitiveData    `json:"data"`
	Alerts       []CompetitiveAlert `json:"alerts"`
	Confidence   ConfidenceScore    `json:"confidence"`
	Metadata     AnalysisMetadata   `json:"metadata"`
	CreatedAt    time.Time          `json:"created_at"`
}
