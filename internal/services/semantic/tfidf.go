package semantic

import (
	"math"
	"sort"
)

// TermFrequencies counts token occurrences
func TermFrequencies(tokens []string) map[string]int {
	freq := make(map[string]int, len(tokens))
	for _, tok := range tokens {
		freq[tok]++
	}
	return freq
}

// TopKeywords ranks the document's content tokens by TF-IDF against the
// given corpus and returns the top n. Ties break alphabetically so the
// result is deterministic.
func TopKeywords(doc string, corpus []string, n int) []string {
	tokens := ContentTokens(doc)
	if len(tokens) == 0 {
		return nil
	}

	tf := TermFrequencies(tokens)

	docCount := len(corpus) + 1
	containing := make(map[string]int, len(tf))
	for term := range tf {
		containing[term] = 1 // the document itself
	}
	for _, other := range corpus {
		seen := make(map[string]bool)
		for _, tok := range ContentTokens(other) {
			if _, tracked := tf[tok]; tracked && !seen[tok] {
				containing[tok]++
				seen[tok] = true
			}
		}
	}

	type scored struct {
		term  string
		score float64
	}
	ranked := make([]scored, 0, len(tf))
	for term, count := range tf {
		tfScore := float64(count) / float64(len(tokens))
		idf := math.Log(float64(docCount)/float64(containing[term])) + 1
		ranked = append(ranked, scored{term, tfScore * idf})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].term < ranked[j].term
	})

	if n > len(ranked) {
		n = len(ranked)
	}
	keywords := make([]string, 0, n)
	for _, s := range ranked[:n] {
		keywords = append(keywords, s.term)
	}
	return keywords
}

// TFIDFCosine computes cosine similarity between two documents over
// TF-IDF weighted term vectors, in [0, 1]. The pair itself serves as the
// corpus, so terms unique to one document weigh more than shared ones.
func TFIDFCosine(aTokens, bTokens []string) float64 {
	if len(aTokens) == 0 || len(bTokens) == 0 {
		return 0
	}

	tfA := TermFrequencies(aTokens)
	tfB := TermFrequencies(bTokens)

	idf := func(term string) float64 {
		containing := 0.0
		if tfA[term] > 0 {
			containing++
		}
		if tfB[term] > 0 {
			containing++
		}
		return math.Log(2/containing) + 1
	}

	var dot, normA, normB float64
	for term, countA := range tfA {
		weightA := float64(countA) / float64(len(aTokens)) * idf(term)
		normA += weightA * weightA
		if countB, ok := tfB[term]; ok {
			weightB := float64(countB) / float64(len(bTokens)) * idf(term)
			dot += weightA * weightB
		}
	}
	for term, countB := range tfB {
		weightB := float64(countB) / float64(len(bTokens)) * idf(term)
		normB += weightB * weightB
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// CosineSimilarity computes cosine similarity between two term-frequency
// vectors, in [0, 1].
func CosineSimilarity(a, b map[string]int) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for term, countA := range a {
		normA += float64(countA) * float64(countA)
		if countB, ok := b[term]; ok {
			dot += float64(countA) * float64(countB)
		}
	}
	for _, countB := range b {
		normB += float64(countB) * float64(countB)
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Jaccard computes set overlap between two token slices, in [0, 1]
func Jaccard(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}

	setA := make(map[string]bool, len(a))
	for _, tok := range a {
		setA[tok] = true
	}
	setB := make(map[string]bool, len(b))
	for _, tok := range b {
		setB[tok] = true
	}

	intersection := 0
	for tok := range setA {
		if setB[tok] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
