package semantic

import (
	"strings"
	"unicode"

	"github.com/ternarybob/sitescore/internal/models"
)

const maxEntities = 20

var orgSuffixes = map[string]bool{
	"inc": true, "corp": true, "ltd": true, "llc": true, "co": true,
	"gmbh": true, "group": true, "labs": true,
}

var placeSuffixes = map[string]bool{
	"city": true, "valley": true, "island": true, "lake": true,
	"river": true, "bay": true, "beach": true, "county": true,
	"street": true, "avenue": true, "park": true, "hills": true,
}

// NamedEntities extracts proper-noun mentions heuristically: runs of
// capitalized words, excluding lone sentence-initial words. Multi-word
// mentions and recognized organization or place suffixes score 0.8
// confidence, single words 0.7.
func NamedEntities(text string) []models.NamedEntity {
	var entities []models.NamedEntity
	seen := make(map[string]bool)

	for _, sentence := range SplitSentences(text) {
		words := strings.Fields(sentence)
		var run []string
		for i, word := range words {
			cleaned := strings.Trim(word, ".,;:!?\"'()[]")
			if isCapitalizedWord(cleaned) {
				// A lone capitalized sentence opener is just sentence case
				if i == 0 && len(run) == 0 && (len(words) < 2 || !isCapitalizedWord(strings.Trim(words[1], ".,;:!?\"'()[]"))) {
					continue
				}
				run = append(run, cleaned)
				continue
			}
			entities = appendEntity(entities, seen, run)
			run = nil
		}
		entities = appendEntity(entities, seen, run)

		if len(entities) >= maxEntities {
			entities = entities[:maxEntities]
			break
		}
	}
	return entities
}

func appendEntity(entities []models.NamedEntity, seen map[string]bool, run []string) []models.NamedEntity {
	if len(run) == 0 {
		return entities
	}

	text := strings.Join(run, " ")
	if seen[text] || stopwords[strings.ToLower(text)] {
		return entities
	}
	seen[text] = true

	kind := "other"
	confidence := 0.7
	last := strings.ToLower(strings.TrimSuffix(run[len(run)-1], "."))
	switch {
	case orgSuffixes[last]:
		kind = "organization"
		confidence = 0.8
	case placeSuffixes[last]:
		kind = "place"
		confidence = 0.8
	case len(run) == 2:
		kind = "person"
		confidence = 0.8
	case len(run) > 2:
		confidence = 0.8
	}

	return append(entities, models.NamedEntity{
		Text:       text,
		Kind:       kind,
		Confidence: confidence,
	})
}

func isCapitalizedWord(word string) bool {
	if word == "" {
		return false
	}
	runes := []rune(word)
	if !unicode.IsUpper(runes[0]) {
		return false
	}
	for _, r := range runes[1:] {
		if !unicode.IsLetter(r) && r != '-' {
			return false
		}
	}
	return len(runes) >= 2
}
