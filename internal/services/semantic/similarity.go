package semantic

import (
	"math"

	"github.com/ternarybob/sitescore/internal/models"
)

// Weights for the overall similarity blend
const (
	similarityLexicalWeight    = 0.30
	similaritySemanticWeight   = 0.40
	similarityStructuralWeight = 0.15
	similarityTopicalWeight    = 0.15
)

// ComparePages computes the 4-dimensional similarity between two pages.
// All scores are percentages in [0, 100] and deterministic for the same
// inputs.
func ComparePages(target, competitor *models.PageContent) models.SimilarityBreakdown {
	targetTokens := ContentTokens(target.Text)
	competitorTokens := ContentTokens(competitor.Text)

	lexical := TFIDFCosine(targetTokens, competitorTokens) * 100
	semantic := semanticSimilarity(targetTokens, competitorTokens) * 100
	structural := structuralSimilarity(target, competitor) * 100

	targetTopics := TopKeywords(target.Text, nil, 10)
	competitorTopics := TopKeywords(competitor.Text, nil, 10)
	topical := Jaccard(targetTopics, competitorTopics) * 100

	overall := lexical*similarityLexicalWeight +
		semantic*similaritySemanticWeight +
		structural*similarityStructuralWeight +
		topical*similarityTopicalWeight

	return models.SimilarityBreakdown{
		Overall:    round1(overall),
		Lexical:    round1(lexical),
		Semantic:   round1(semantic),
		Structural: round1(structural),
		Topical:    round1(topical),
	}
}

// semanticSimilarity approximates meaning-level similarity by blending
// cosine over stemmed term frequencies with pairwise near-match coverage,
// in [0, 1].
func semanticSimilarity(aTokens, bTokens []string) float64 {
	aStems := StemmedFrequencies(aTokens)
	bStems := StemmedFrequencies(bTokens)
	return CosineSimilarity(aStems, bStems)*0.7 + pairwiseTermSimilarity(aStems, bStems)*0.3
}

// structuralSimilarity compares heading profiles and content length, in [0, 1]
func structuralSimilarity(a, b *models.PageContent) float64 {
	headingSim := profileSimilarity(headingProfile(a), headingProfile(b))
	lengthSim := ratioSimilarity(float64(a.WordCount), float64(b.WordCount))
	return headingSim*0.7 + lengthSim*0.3
}

func headingProfile(p *models.PageContent) [6]int {
	var profile [6]int
	for _, h := range p.Headings {
		if h.Level >= 1 && h.Level <= 6 {
			profile[h.Level-1]++
		}
	}
	return profile
}

func profileSimilarity(a, b [6]int) float64 {
	var dot, normA, normB float64
	for i := 0; i < 6; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func ratioSimilarity(a, b float64) float64 {
	if a == 0 && b == 0 {
		return 1
	}
	if a == 0 || b == 0 {
		return 0
	}
	if a > b {
		return b / a
	}
	return a / b
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
