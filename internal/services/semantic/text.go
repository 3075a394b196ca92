package semantic

import (
	"strings"
	"unicode"
)

var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "but": true, "by": true, "for": true, "from": true, "has": true,
	"have": true, "he": true, "her": true, "his": true, "i": true, "if": true,
	"in": true, "is": true, "it": true, "its": true, "my": true, "not": true,
	"of": true, "on": true, "or": true, "our": true, "she": true, "so": true,
	"that": true, "the": true, "their": true, "them": true, "then": true,
	"there": true, "these": true, "they": true, "this": true, "to": true,
	"was": true, "we": true, "were": true, "what": true, "when": true,
	"which": true, "who": true, "will": true, "with": true, "you": true,
	"your": true,
}

// Tokenize lowercases text and splits it into alphanumeric word tokens
func Tokenize(text string) []string {
	var tokens []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			current.WriteRune(r)
		} else if r == '\'' {
			// Drop apostrophes so "don't" tokenizes as "dont"
			continue
		} else {
			flush()
		}
	}
	flush()
	return tokens
}

// ContentTokens returns tokens with stopwords and single characters removed
func ContentTokens(text string) []string {
	tokens := Tokenize(text)
	filtered := tokens[:0]
	for _, tok := range tokens {
		if len(tok) < 2 || stopwords[tok] {
			continue
		}
		filtered = append(filtered, tok)
	}
	return filtered
}

// SplitSentences splits text on sentence-ending punctuation
func SplitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	for _, r := range text {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			sentence := strings.TrimSpace(current.String())
			if len(strings.Fields(sentence)) > 0 {
				sentences = append(sentences, sentence)
			}
			current.Reset()
		}
	}
	if sentence := strings.TrimSpace(current.String()); len(strings.Fields(sentence)) > 0 {
		sentences = append(sentences, sentence)
	}
	return sentences
}

// CountSyllables estimates syllables in a word by counting vowel groups,
// with silent-e and minimum-one adjustments.
func CountSyllables(word string) int {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return 0
	}

	isVowel := func(r byte) bool {
		return r == 'a' || r == 'e' || r == 'i' || r == 'o' || r == 'u' || r == 'y'
	}

	count := 0
	prevVowel := false
	for i := 0; i < len(word); i++ {
		v := isVowel(word[i])
		if v && !prevVowel {
			count++
		}
		prevVowel = v
	}

	if strings.HasSuffix(word, "e") && !strings.HasSuffix(word, "le") && !strings.HasSuffix(word, "ee") && count > 1 {
		count--
	}
	if count < 1 {
		count = 1
	}
	return count
}

// KeywordDensity returns the percentage of words in text that match the
// keyword. Multi-word keywords count phrase occurrences against total words.
func KeywordDensity(text, keyword string) float64 {
	words := Tokenize(text)
	if len(words) == 0 {
		return 0
	}

	keyTokens := Tokenize(keyword)
	if len(keyTokens) == 0 {
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

	return float64(occurrences) / float64(len(words)) * 100
}
