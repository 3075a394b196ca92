package semantic

var positiveWords = map[string]bool{
	"best": true, "better": true, "excellent": true, "great": true,
	"good": true, "helpful": true, "improve": true, "improved": true,
	"quality": true, "reliable": true, "easy": true, "effective": true,
	"success": true, "successful": true, "trusted": true, "fast": true,
	"simple": true, "powerful": true, "love": true, "perfect": true,
	"recommended": true, "proven": true, "valuable": true, "win": true,
}

var negativeWords = map[string]bool{
	"bad": true, "worse": true, "worst": true, "poor": true, "slow": true,
	"difficult": true, "hard": true, "problem": true, "problems": true,
	"fail": true, "failure": true, "failed": true, "broken": true,
	"confusing": true, "expensive": true, "risk": true, "risky": true,
	"wrong": true, "hate": true, "avoid": true, "waste": true,
	"complicated": true, "frustrating": true, "unreliable": true,
}

// sentimentLabelThreshold separates neutral from polarized scores
const sentimentLabelThreshold = 0.1

// SentimentLabel maps a sentiment score to a label
func SentimentLabel(score float64) string {
	switch {
	case score >= sentimentLabelThreshold:
		return "positive"
	case score <= -sentimentLabelThreshold:
		return "negative"
	default:
		return "neutral"
	}
}

// Sentiment scores text in [-1, 1] by lexicon hit ratio. Zero means
// neutral or no lexicon hits.
func Sentiment(text string) float64 {
	positive, negative := lexiconHits(Tokenize(text))
	total := positive + negative
	if total == 0 {
		return 0
	}
	return float64(positive-negative) / float64(total)
}

// SentimentComparative returns the net lexicon hits normalized by token
// count, so the same hits in a longer document score closer to zero.
func SentimentComparative(text string) float64 {
	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return 0
	}
	positive, negative := lexiconHits(tokens)
	return float64(positive-negative) / float64(len(tokens))
}

func lexiconHits(tokens []string) (positive, negative int) {
	for _, tok := range tokens {
		if positiveWords[tok] {
			positive++
		} else if negativeWords[tok] {
			negative++
		}
	}
	return positive, negative
}
