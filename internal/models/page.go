package models

import "time"

// Heading is one heading element with its level (1..6) in document order
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// PageContent is the extracted content of one fetched page. Processors
// perform all scoring on this structure, never on raw markup.
type PageContent struct {
	URL             string        `json:"url"`
	StatusCode      int           `json:"status_code"`
	Title           string        `json:"title"`
	MetaDescription string        `json:"meta_description"`
	Headings        []Heading     `json:"headings"`
	InternalLinks   int           `json:"internal_links"`
	ExternalLinks   int           `json:"external_links"`
	HasViewport     bool          `json:"has_viewport"`
	WordCount       int           `json:"word_count"`
	Text            string        `json:"text"`
	Markdown        string        `json:"markdown,omitempty"`
	PageSize        int           `json:"page_size"` // bytes
	FetchDuration   time.Duration `json:"fetch_duration"`
	FetchedAt       time.Time     `json:"fetched_at"`
}

// H1Count returns the number of H1 headings on the page
func (p *PageContent) H1Count() int {
	count := 0
	for _, h := range p.Headings {
		if h.Level == 1 {
			count++
		}
	}
	return count
}

// HeadingCount returns the number of headings at the given level
func (p *PageContent) HeadingCount(level int) int {
	count := 0
	for _, h := range p.Headings {
		if h.Level == level {
			count++
		}
	}
	return count
}

// HasLogicalHeadingFlow reports whether no heading skips more than one level
// relative to the previous heading (H1 followed by H3 is a violation).
func (p *PageContent) HasLogicalHeadingFlow() bool {
	for i := 1; i < len(p.Headings); i++ {
		if p.Headings[i].Level-p.Headings[i-1].Level > 1 {
			return false
		}
	}
	return len(p.Headings) > 0
}

// CompetitiveRequest is the request shape sent to a competitive data source
type CompetitiveRequest struct {
	TargetDomain      string             `json:"target_domain"`
	CompetitorDomains []string           `json:"competitor_domains"`
	AnalysisTypes     []AnalysisType     `json:"analysis_types"`
	Options           CompetitiveOptions `json:"options"`
}

// IntegrationMetadata describes how a competitive data source produced its data
type IntegrationMetadata struct {
	DataSourcesUsed []string      `json:"data_sources_used"`
	Confidence      float64       `json:"confidence"`
	Limitations     []string      `json:"limitations"`
	ProcessingTime  time.Duration `json:"processing_time"`
}
