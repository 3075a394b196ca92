// Package scoring provides the shared numeric primitives used by all
// analysis processors: clamping, weighted aggregation, and recommendation
// ranking.
package scoring

import (
	"math"
	"sort"

	"github.com/ternarybob/sitescore/internal/models"
)

// Clamp constrains a score to [0, 100]
func Clamp(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// ClampRange constrains a value to [min, max]
func ClampRange(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// Round1 rounds a score to one decimal place
func Round1(score float64) float64 {
	return math.Round(score*10) / 10
}

// Weighted pairs a component score with its weight
type Weighted struct {
	Score  float64
	Weight float64
}

// WeightedOverall computes the weighted sum of component scores, clamping
// each component and the result to [0, 100]. Weights are expected to sum
// to 1 and are not renormalized.
func WeightedOverall(components ...Weighted) float64 {
	total := 0.0
	for _, c := range components {
		total += Clamp(c.Score) * c.Weight
	}
	return Clamp(total)
}

// PriorityWeight maps a priority level to its ranking weight
func PriorityWeight(level models.Level) float64 {
	switch level {
	case models.LevelHigh:
		return 3
	case models.LevelMedium:
		return 2
	case models.LevelLow:
		return 1
	default:
		return 1
	}
}

// RankRecommendations sorts recommendations by priority weight multiplied by
// impact weight, descending, with expected improvement breaking ties. It then
// removes duplicates by (type, title) and truncates to at most max entries.
// The input slice is not modified.
func RankRecommendations(recs []models.Recommendation, max int) []models.Recommendation {
	ranked := make([]models.Recommendation, len(recs))
	copy(ranked, recs)

	sort.SliceStable(ranked, func(i, j int) bool {
		si := PriorityWeight(ranked[i].Priority) * PriorityWeight(ranked[i].Impact)
		sj := PriorityWeight(ranked[j].Priority) * PriorityWeight(ranked[j].Impact)
		if si != sj {
			return si > sj
		}
		return ranked[i].ExpectedImprovement > ranked[j].ExpectedImprovement
	})

	type key struct{ recType, title string }
	seen := make(map[key]bool, len(ranked))
	deduped := ranked[:0]
	for _, rec := range ranked {
		k := key{rec.Type, rec.Title}
		if seen[k] {
			continue
		}
		seen[k] = true
		deduped = append(deduped, rec)
	}

	if max > 0 && len(deduped) > max {
		deduped = deduped[:max]
	}
	return deduped
}
