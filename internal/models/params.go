package models

import (
	"encoding/json"
	"fmt"
)

// AnalysisDepth controls how thorough an analysis run is
type AnalysisDepth string

const (
	DepthBasic         AnalysisDepth = "basic"
	DepthStandard      AnalysisDepth = "standard"
	DepthComprehensive AnalysisDepth = "comprehensive"
)

// Multiplier returns the processing-time multiplier for a depth level
func (d AnalysisDepth) Multiplier() float64 {
	switch d {
	case DepthComprehensive:
		return 2.5
	case DepthStandard:
		return 1.5
	default:
		return 1.0
	}
}

// Rank orders depth levels for monotonicity comparisons
func (d AnalysisDepth) Rank() int {
	switch d {
	case DepthComprehensive:
		return 3
	case DepthStandard:
		return 2
	default:
		return 1
	}
}

// ContentAnalysisParams are the typed params for content-analysis jobs
type ContentAnalysisParams struct {
	WebsiteURL     string        `json:"website_url"`
	TargetKeywords []string      `json:"target_keywords"`
	CompetitorURLs []string      `json:"competitor_urls,omitempty"`
	AnalysisDepth  AnalysisDepth `json:"analysis_depth"`
}

// Valid reports whether the params satisfy the content-analysis requirements
func (p ContentAnalysisParams) Valid() bool {
	return p.WebsiteURL != "" && len(p.TargetKeywords) > 0
}

// SEOHealthParams are the typed params for seo-health-check jobs
type SEOHealthParams struct {
	WebsiteURL         string   `json:"website_url"`
	Pages              []string `json:"pages"`
	IncludePerformance bool     `json:"include_performance"`
	IncludeMobile      bool     `json:"include_mobile"`
}

// Valid reports whether the params satisfy the seo-health requirements
func (p SEOHealthParams) Valid() bool {
	return p.WebsiteURL != "" && len(p.Pages) > 0
}

// AnalysisType names one competitive analysis dimension
type AnalysisType string

const (
	AnalysisContentSimilarity    AnalysisType = "content-similarity"
	AnalysisSEOComparison        AnalysisType = "seo-comparison"
	AnalysisPerformanceBenchmark AnalysisType = "performance-benchmark"
	AnalysisMarketPosition       AnalysisType = "market-position"
	AnalysisContentGaps          AnalysisType = "content-gaps"
	AnalysisComprehensive        AnalysisType = "comprehensive"
)

// CompetitiveOptions tune a competitive-analysis run
type CompetitiveOptions struct {
	Depth             AnalysisDepth  `json:"depth"`
	IncludeHistorical bool           `json:"include_historical"`
	AlertsEnabled     bool           `json:"alerts_enabled"`
	CustomParameters  map[string]any `json:"custom_parameters,omitempty"`
}

// CompetitiveAnalysisParams are the typed params for competitive-analysis jobs
type CompetitiveAnalysisParams struct {
	TargetDomain  string             `json:"target_domain"`
	CompetitorIDs []string           `json:"competitor_ids"`
	AnalysisTypes []AnalysisType     `json:"analysis_types"`
	Options       CompetitiveOptions `json:"options"`
}

// Valid reports whether the params satisfy the competitive-analysis requirements
func (p CompetitiveAnalysisParams) Valid() bool {
	return p.TargetDomain != "" && len(p.CompetitorIDs) > 0 && len(p.AnalysisTypes) > 0
}

// ResolvedTypes expands "comprehensive" into the full set of analysis types
func (p CompetitiveAnalysisParams) ResolvedTypes() []AnalysisType {
	for _, t := range p.AnalysisTypes {
		if t == AnalysisComprehensive {
			return []AnalysisType{
				AnalysisContentSimilarity,
				AnalysisSEOComparison,
				AnalysisPerformanceBenchmark,
				AnalysisMarketPosition,
				AnalysisContentGaps,
			}
		}
	}
	return p.AnalysisTypes
}

// DecodeParams decodes raw job params into the typed variant T.
// Unknown or malformed payloads return an error rather than a zero value so
// validation stays total over the param union.
func DecodeParams[T any](raw json.RawMessage) (T, error) {
	var params T
	if len(raw) == 0 {
		return params, fmt.Errorf("job params are empty")
	}
	if err := json.Unmarshal(raw, &params); err != nil {
		return params, fmt.Errorf("failed to decode job params: %w", err)
	}
	return params, nil
}
