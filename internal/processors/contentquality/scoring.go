package contentquality

import (
	"unicode/utf8"

	"github.com/ternarybob/sitescore/internal/models"
	"github.com/ternarybob/sitescore/internal/scoring"
	"github.com/ternarybob/sitescore/internal/services/semantic"
)

// technicalSEOScore grades the page on a 100-point rubric: title 25,
// meta description 25, heading usage 25, heading structure 25.
func technicalSEOScore(page *models.PageContent) float64 {
	score := 0.0

	titleLen := utf8.RuneCountInString(page.Title)
	switch {
	case titleLen >= 30 && titleLen <= 60:
		score += 25
	case titleLen >= 20 && titleLen <= 80:
		score += 15
	case titleLen > 0:
		score += 5
	}

	metaLen := utf8.RuneCountInString(page.MetaDescription)
	switch {
	case metaLen >= 120 && metaLen <= 160:
		score += 25
	case metaLen >= 80 && metaLen <= 200:
		score += 15
	case metaLen > 0:
		score += 5
	}

	h1 := page.H1Count()
	switch {
	case h1 == 1 && page.HeadingCount(2) >= 1:
		score += 25
	case h1 == 1:
		score += 15
	case h1 >= 1:
		score += 10
	}

	flow := page.HasLogicalHeadingFlow()
	enough := len(page.Headings) >= 3
	switch {
	case flow && enough:
		score += 25
	case flow:
		score += 15
	case enough:
		score += 10
	}

	return score
}

// readabilityScore is the Flesch reading ease with a small bonus for pages
// that break content up with at least three headings.
func readabilityScore(page *models.PageContent) float64 {
	score := semantic.FleschReadingEase(page.Text)
	if len(page.Headings) >= 3 {
		score += 5
	}
	return scoring.Clamp(score)
}

// semanticRelevanceScore averages the density-band relevance across the
// target keywords.
func semanticRelevanceScore(page *models.PageContent, keywords []string) float64 {
	if len(keywords) == 0 {
		return 0
	}
	total := 0.0
	for _, keyword := range keywords {
		total += semantic.RelevanceFromDensity(semantic.KeywordDensity(page.Text, keyword))
	}
	return total / float64(len(keywords))
}

// buildRecommendations emits threshold-based recommendations from the
// component scores and the content analysis.
func buildRecommendations(scores models.ContentQualityScores, analysis *models.ContentQualityAnalysis) []models.Recommendation {
	var recs []models.Recommendation

	if scores.TechnicalSEO < 80 {
		recs = append(recs, models.Recommendation{
			Type:                "technical-seo",
			Priority:            models.LevelHigh,
			Impact:              models.LevelHigh,
			Effort:              models.LevelLow,
			Title:               "Optimize title tag",
			Description:         "The page title falls outside the 30-60 character range search engines display in full",
			Implementation:      "Rewrite the title to 30-60 characters, leading with the primary keyword",
			ExpectedImprovement: 10,
		})
	}
	if scores.TechnicalSEO < 70 {
		recs = append(recs, models.Recommendation{
			Type:                "technical-seo",
			Priority:            models.LevelHigh,
			Impact:              models.LevelMedium,
			Effort:              models.LevelLow,
			Title:               "Add a meta description",
			Description:         "A 120-160 character meta description improves snippet quality and click-through rate",
			Implementation:      "Write a meta description summarizing the page with the primary keyword included",
			ExpectedImprovement: 8,
		})
	}
	if scores.ContentDepth < 75 {
		recs = append(recs, models.Recommendation{
			Type:                "content",
			Priority:            models.LevelHigh,
			Impact:              models.LevelHigh,
			Effort:              models.LevelMedium,
			Title:               "Expand content depth",
			Description:         "The content covers its topics more shallowly than top-ranking pages",
			Implementation:      "Extend thin sections with examples, data, and subtopic coverage",
			ExpectedImprovement: 15,
		})
	}
	if scores.Readability < 80 {
		recs = append(recs, models.Recommendation{
			Type:                "content",
			Priority:            models.LevelMedium,
			Impact:              models.LevelMedium,
			Effort:              models.LevelLow,
			Title:               "Improve content structure",
			Description:         "Long sentences and sparse headings make the content harder to scan",
			Implementation:      "Shorten sentences and break content into sections with descriptive headings",
			ExpectedImprovement: 7,
		})
	}
	if scores.SemanticRelevance < 85 {
		recs = append(recs, models.Recommendation{
			Type:                "seo",
			Priority:            models.LevelMedium,
			Impact:              models.LevelHigh,
			Effort:              models.LevelMedium,
			Title:               "Strengthen keyword integration",
			Description:         "Target keywords appear outside the 1-3% density range that signals topical focus",
			Implementation:      "Work target keywords naturally into headings and body copy",
			ExpectedImprovement: 9,
		})
	}

	for _, gap := range analysis.ContentGaps {
		recs = append(recs, models.Recommendation{
			Type:                "content-gap",
			Priority:            models.LevelMedium,
			Impact:              models.LevelMedium,
			Effort:              models.LevelMedium,
			Title:               "Cover missing topic: " + gap,
			Description:         "Competing content addresses this topic while the page does not",
			Implementation:      "Add a section covering " + gap,
			ExpectedImprovement: 5,
		})
	}

	return recs
}
