package semantic

import (
	"sort"
	"strings"

	"github.com/ternarybob/sitescore/internal/models"
)

// maxPhraseLength bounds extracted keyword phrases (unigrams through trigrams)
const maxPhraseLength = 3

// Competitor-usage thresholds for difficulty grading
const (
	highCompetitionUsage = 20.0
	lowCompetitionUsage  = 5.0
)

func difficultyScore(level models.Level) float64 {
	switch level {
	case models.LevelLow:
		return 1.0
	case models.LevelMedium:
		return 0.7
	case models.LevelHigh:
		return 0.4
	default:
		return 0.7
	}
}

// classifyDifficulty grades competition on a keyword: heavy competitor
// usage is hard to displace, while a lightly-contested long-tail phrase
// is easy.
func classifyDifficulty(keyword string, competitorUsage float64) models.Level {
	switch {
	case competitorUsage >= highCompetitionUsage:
		return models.LevelHigh
	case phraseLength(keyword) >= 3 && competitorUsage < lowCompetitionUsage:
		return models.LevelLow
	default:
		return models.LevelMedium
	}
}

func phraseLength(keyword string) int {
	return len(strings.Fields(keyword))
}

// PhraseFrequencies counts keyword phrases in text: each run of
// consecutive content tokens yields every sub-phrase of one to three
// words.
func PhraseFrequencies(text string) map[string]int {
	counts := make(map[string]int)
	var run []string

	flush := func() {
		for i := range run {
			for n := 1; n <= maxPhraseLength && i+n <= len(run); n++ {
				counts[strings.Join(run[i:i+n], " ")]++
			}
		}
		run = run[:0]
	}

	for _, tok := range Tokenize(text) {
		if len(tok) < 2 || stopwords[tok] {
			flush()
			continue
		}
		run = append(run, tok)
	}
	flush()
	return counts
}

// phraseOccurrences counts occurrences of a token phrase in text. Unlike
// PhraseFrequencies it scans the full token stream, so seed phrases that
// contain stopwords still match as written.
func phraseOccurrences(text, phrase string) int {
	words := Tokenize(text)
	keyTokens := strings.Fields(phrase)
	if len(words) == 0 || len(keyTokens) == 0 {
		return 0
	}

	occurrences := 0
	for i := 0; i+len(keyTokens) <= len(words); i++ {
		match := true
		for j, kt := range keyTokens {
			if words[i+j] != kt {
				match = false
				break
			}
		}
		if match {
			occurrences++
		}
	}
	return occurrences
}

// topicFor groups a keyword into a naive topic by substring rules,
// defaulting to the phrase's first word.
func topicFor(keyword string) string {
	switch {
	case strings.Contains(keyword, "pricing") || strings.Contains(keyword, "price") || strings.Contains(keyword, "cost"):
		return "pricing"
	case strings.Contains(keyword, "review"):
		return "reviews"
	case strings.Contains(keyword, "tutorial") || strings.Contains(keyword, "guide") || strings.Contains(keyword, "how"):
		return "tutorials"
	case strings.Contains(keyword, "best") || strings.Contains(keyword, "top") || strings.Contains(keyword, "recommend"):
		return "recommendations"
	}
	return strings.Fields(keyword)[0]
}

// KeywordOpportunities finds keyword phrases competitors use more than the
// target (usage gap > 0) and ranks them by priority, descending. Seed
// keywords are always scored, even when phrase extraction misses them.
// Deterministic: ties break alphabetically.
func KeywordOpportunities(targetText string, competitorTexts []string, seedKeywords []string, maxResults int) []models.KeywordOpportunity {
	if len(competitorTexts) == 0 {
		return nil
	}

	targetCounts := PhraseFrequencies(targetText)

	competitorTotals := make(map[string]int)
	for _, text := range competitorTexts {
		for phrase, count := range PhraseFrequencies(text) {
			competitorTotals[phrase] += count
		}
	}

	seeds := make(map[string]bool, len(seedKeywords))
	for _, seed := range seedKeywords {
		phrase := strings.Join(Tokenize(seed), " ")
		if phrase == "" {
			continue
		}
		seeds[phrase] = true
		if _, extracted := competitorTotals[phrase]; extracted {
			continue
		}
		total := 0
		for _, text := range competitorTexts {
			total += phraseOccurrences(text, phrase)
		}
		competitorTotals[phrase] = total
	}

	var opportunities []models.KeywordOpportunity
	for phrase, total := range competitorTotals {
		competitorUsage := float64(total) / float64(len(competitorTexts))
		targetUsage := float64(targetCounts[phrase])
		if seeds[phrase] && targetUsage == 0 {
			targetUsage = float64(phraseOccurrences(targetText, phrase))
		}
		gap := competitorUsage - targetUsage
		if gap <= 0 {
			continue
		}

		opportunity := gap / competitorUsage * 100
		if opportunity > 100 {
			opportunity = 100
		}

		difficulty := classifyDifficulty(phrase, competitorUsage)
		usageScore := competitorUsage / 10
		if usageScore > 1 {
			usageScore = 1
		}
		priority := opportunity*0.5 + difficultyScore(difficulty)*30 + usageScore*20

		opportunities = append(opportunities, models.KeywordOpportunity{
			Keyword:         phrase,
			Topic:           topicFor(phrase),
			TargetUsage:     targetUsage,
			CompetitorUsage: round1(competitorUsage),
			Gap:             round1(gap),
			Opportunity:     round1(opportunity),
			Priority:        round1(priority),
			Difficulty:      difficulty,
		})
	}

	sort.Slice(opportunities, func(i, j int) bool {
		if opportunities[i].Priority != opportunities[j].Priority {
			return opportunities[i].Priority > opportunities[j].Priority
		}
		return opportunities[i].Keyword < opportunities[j].Keyword
	})

	if maxResults > 0 && len(opportunities) > maxResults {
		opportunities = opportunities[:maxResults]
	}
	return opportunities
}

// highPriorityThreshold marks an opportunity worth acting on immediately
const highPriorityThreshold = 70.0

// BucketOpportunities groups ranked opportunities into three
// recommendation buckets: high-priority keywords that are feasible to win,
// one content-gap action per topic, and long-tail phrases with low
// competition. Input order (priority descending) is preserved within each
// bucket.
func BucketOpportunities(opportunities []models.KeywordOpportunity) models.KeywordOpportunityBuckets {
	var buckets models.KeywordOpportunityBuckets

	actions := make(map[string]*models.KeywordTopicAction)
	var topicOrder []string

	for _, opp := range opportunities {
		if opp.Priority >= highPriorityThreshold && opp.Difficulty != models.LevelHigh {
			buckets.HighPriority = append(buckets.HighPriority, opp)
		}
		if phraseLength(opp.Keyword) >= 3 && opp.Difficulty == models.LevelLow {
			buckets.LongTail = append(buckets.LongTail, opp)
		}

		action, ok := actions[opp.Topic]
		if !ok {
			action = &models.KeywordTopicAction{
				Topic:  opp.Topic,
				Action: "Create content covering " + opp.Topic,
			}
			actions[opp.Topic] = action
			topicOrder = append(topicOrder, opp.Topic)
		}
		action.Keywords = append(action.Keywords, opp.Keyword)
		if opp.Priority > action.Priority {
			action.Priority = opp.Priority
		}
	}

	for _, topic := range topicOrder {
		buckets.ContentGaps = append(buckets.ContentGaps, *actions[topic])
	}
	sort.SliceStable(buckets.ContentGaps, func(i, j int) bool {
		return buckets.ContentGaps[i].Priority > buckets.ContentGaps[j].Priority
	})
	return buckets
}
