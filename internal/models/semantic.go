package models

// KeywordOpportunity ranks a keyword phrase the target underuses relative
// to competitors.
type KeywordOpportunity struct {
	Keyword         string  `json:"keyword"`
	Topic           string  `json:"topic"`
	TargetUsage     float64 `json:"target_usage"`     // occurrences in the target text
	CompetitorUsage float64 `json:"competitor_usage"` // average occurrences across competitors
	Gap             float64 `json:"gap"`
	Opportunity     float64 `json:"opportunity"` // [0, 100]
	Priority        float64 `json:"priority"`
	Difficulty      Level   `json:"difficulty"`
}

// KeywordTopicAction is a content-gap action covering the keywords grouped
// under one topic.
type KeywordTopicAction struct {
	Topic    string   `json:"topic"`
	Action   string   `json:"action"`
	Keywords []string `json:"keywords"`
	Priority float64  `json:"priority"`
}

// KeywordOpportunityBuckets holds the three recommendation buckets, each
// sorted by priority descending: high-priority keywords feasible to win,
// per-topic content-gap actions, and lightly-contested long-tail phrases.
type KeywordOpportunityBuckets struct {
	HighPriority []KeywordOpportunity `json:"high_priority"`
	ContentGaps  []KeywordTopicAction `json:"content_gaps"`
	LongTail     []KeywordOpportunity `json:"long_tail"`
}

// NamedEntity is a proper-noun mention extracted heuristically from text
type NamedEntity struct {
	Text       string  `json:"text"`
	Kind       string  `json:"kind"` // "organization", "person", "place", "other"
	Confidence float64 `json:"confidence"`
}

// SemanticInsights is the deterministic text-analysis summary attached to a
// content quality result.
type SemanticInsights struct {
	Topics               []string                  `json:"topics"`
	Sentiment            float64                   `json:"sentiment"` // [-1, 1]
	SentimentComparative float64                   `json:"sentiment_comparative"`
	SentimentLabel       string                    `json:"sentiment_label"`
	Entities             []NamedEntity             `json:"entities,omitempty"`
	KeywordOpportunities []KeywordOpportunity      `json:"keyword_opportunities,omitempty"`
	OpportunityBuckets   KeywordOpportunityBuckets `json:"opportunity_buckets"`
}
