// Package semantic implements deterministic text analysis: keyword
// extraction, readability, sentiment, topic coverage, similarity, and
// keyword opportunity ranking. No randomness, no external calls; the same
// input always yields the same output.
package semantic

// FleschReadingEase computes the Flesch reading-ease score, clamped to
// [0, 100]. Empty text scores 0.
func FleschReadingEase(text string) float64 {
	sentences := SplitSentences(text)
	words := Tokenize(text)
	if len(sentences) == 0 || len(words) == 0 {
		return 0
	}

	syllables := 0
	for _, w := range words {
		syllables += CountSyllables(w)
	}

	wordsPerSentence := float64(len(words)) / float64(len(sentences))
	syllablesPerWord := float64(syllables) / float64(len(words))

	score := 206.835 - 1.015*wordsPerSentence - 84.6*syllablesPerWord
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return round1(score)
}

// maxTopics caps topic extraction
const maxTopics = 20

// ExtractTopics returns the document's top content terms, at most 20
func ExtractTopics(text string) []string {
	return TopKeywords(text, nil, maxTopics)
}

// TopicCoverage reports what fraction of target keywords appear in the
// text, as a percentage.
func TopicCoverage(text string, keywords []string) float64 {
	if len(keywords) == 0 {
		return 0
	}

	covered := 0
	for _, keyword := range keywords {
		if KeywordDensity(text, keyword) > 0 {
			covered++
		}
	}
	return round1(float64(covered) / float64(len(keywords)) * 100)
}

// DensityProfile computes keyword density for each keyword
func DensityProfile(text string, keywords []string) map[string]float64 {
	profile := make(map[string]float64, len(keywords))
	for _, keyword := range keywords {
		profile[keyword] = round2(KeywordDensity(text, keyword))
	}
	return profile
}

// RelevanceFromDensity bands a keyword density percentage into a relevance
// score. The 1-3% band is the optimization target.
func RelevanceFromDensity(density float64) float64 {
	switch {
	case density >= 1 && density <= 3:
		return 100
	case density >= 0.5 && density <= 5:
		return 60
	case density > 0:
		return 30
	default:
		return 0
	}
}
