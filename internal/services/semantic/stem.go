package semantic

import "strings"

// suffixes are stripped longest-first
var stemSuffixes = []string{
	"ations", "ation", "ingly", "ments", "ness", "ment", "edly", "ing",
	"ies", "ers", "est", "ed", "ly", "es", "er", "s",
}

// Stem strips common English suffixes from a word. It is a lightweight
// approximation, not a full Porter stemmer; stems shorter than three
// characters are never produced.
func Stem(word string) string {
	word = strings.ToLower(word)
	for _, suffix := range stemSuffixes {
		if strings.HasSuffix(word, suffix) && len(word)-len(suffix) >= 3 {
			stem := word[:len(word)-len(suffix)]
			if suffix == "ies" {
				return stem + "y"
			}
			return stem
		}
	}
	return word
}

// StemmedFrequencies counts token occurrences after stemming
func StemmedFrequencies(tokens []string) map[string]int {
	freq := make(map[string]int, len(tokens))
	for _, tok := range tokens {
		freq[Stem(tok)]++
	}
	return freq
}

// bigramDice computes the Dice coefficient over character bigrams, in [0, 1]
func bigramDice(a, b string) float64 {
	if a == b {
		return 1
	}
	if len(a) < 2 || len(b) < 2 {
		return 0
	}

	bigramsA := make(map[string]int)
	for i := 0; i+2 <= len(a); i++ {
		bigramsA[a[i:i+2]]++
	}

	shared := 0
	for i := 0; i+2 <= len(b); i++ {
		bg := b[i : i+2]
		if bigramsA[bg] > 0 {
			bigramsA[bg]--
			shared++
		}
	}
	return 2 * float64(shared) / float64(len(a)-1+len(b)-1)
}

// nearMatchThreshold is the minimum bigram Dice score for two stems to
// count as variants of the same term.
const nearMatchThreshold = 0.75

// pairwiseTermSimilarity reports the fraction of stems on each side with an
// exact or near counterpart on the other, averaged over both directions.
func pairwiseTermSimilarity(a, b map[string]int) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	return (matchedFraction(a, b) + matchedFraction(b, a)) / 2
}

func matchedFraction(from, to map[string]int) float64 {
	matched := 0
	for stem := range from {
		if _, ok := to[stem]; ok {
			matched++
			continue
		}
		for other := range to {
			if bigramDice(stem, other) >= nearMatchThreshold {
				matched++
				break
			}
		}
	}
	return float64(matched) / float64(len(from))
}
