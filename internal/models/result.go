package models

import "time"

// Level is a qualitative high/medium/low rating used for recommendation
// priority, impact, and effort.
type Level string

const (
	LevelHigh   Level = "high"
	LevelMedium Level = "medium"
	LevelLow    Level = "low"
)

// Advantage tags which side a score gap favors
type Advantage string

const (
	AdvantageUser       Advantage = "user"
	AdvantageCompetitor Advantage = "competitor"
	AdvantageTie        Advantage = "tie"
)

// ScoreComponent is a named numeric value in [0,100] plus, where applicable,
// a gap (user minus competitor) and an advantage tag. All composite scores in
// the engine are built from these.
type ScoreComponent struct {
	Name      string    `json:"name"`
	Score     float64   `json:"score"`
	Gap       float64   `json:"gap,omitempty"`
	Advantage Advantage `json:"advantage,omitempty"`
}

// Recommendation is an actionable improvement suggestion. Immutable once
// created; lists are deduplicated by (type, title), ranked, and truncated
// before being returned.
type Recommendation struct {
	Type                string  `json:"type"`
	Priority            Level   `json:"priority"`
	Impact              Level   `json:"impact"`
	Effort              Level   `json:"effort"`
	Title               string  `json:"title"`
	Description         string  `json:"description"`
	Implementation      string  `json:"implementation"`
	ExpectedImprovement float64 `json:"expected_improvement"`
}

// ConfidenceScore estimates how trustworthy an analysis result is.
// Each component is in [0,100]. Derived, never persisted independently of
// its parent result.
type ConfidenceScore struct {
	Overall           float64 `json:"overall"`
	DataQuality       float64 `json:"data_quality"`
	SampleSize        float64 `json:"sample_size"`
	Recency           float64 `json:"recency"`
	SourceReliability float64 `json:"source_reliability"`
	AnalysisAccuracy  float64 `json:"analysis_accuracy"`
}

// DataSourceInfo records one data source consulted during analysis
type DataSourceInfo struct {
	Name      string    `json:"name"`
	Kind      string    `json:"kind"` // "live" or "simulated"
	Timestamp time.Time `json:"timestamp"`
}

// AnalysisMetadata is the audit trail of how a result was produced
type AnalysisMetadata struct {
	Version       string           `json:"version"`
	Algorithm     string           `json:"algorithm"`
	Parameters    map[string]any   `json:"parameters,omitempty"`
	ExecutionTime time.Duration    `json:"execution_time"`
	DataSources   []DataSourceInfo `json:"data_sources,omitempty"`
	Limitations   []string         `json:"limitations,omitempty"`
	Notes         string           `json:"notes,omitempty"`
}

// UsesSimulatedData reports whether any consulted source was simulated
func (m AnalysisMetadata) UsesSimulatedData() bool {
	for _, src := range m.DataSources {
		if src.Kind == "simulated" {
			return true
		}
	}
	return false
}
