package scoring

import (
	"math"
	"testing"

	"github.com/ternarybob/sitescore/internal/models"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  float64
	}{
		{"negative", -10, 0},
		{"zero", 0, 0},
		{"mid", 55.5, 55.5},
		{"max", 100, 100},
		{"above max", 120, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp(tt.input); got != tt.want {
				t.Errorf("Clamp(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestWeightedOverall(t *testing.T) {
	// 80*0.30 + 70*0.40 + 90*0.20 + 100*0.10 = 80
	got := WeightedOverall(
		Weighted{Score: 80, Weight: 0.30},
		Weighted{Score: 70, Weight: 0.40},
		Weighted{Score: 90, Weight: 0.20},
		Weighted{Score: 100, Weight: 0.10},
	)
	if math.Abs(got-80) > 0.001 {
		t.Errorf("WeightedOverall = %v, want 80", got)
	}
}

func TestWeightedOverallClampsComponents(t *testing.T) {
	got := WeightedOverall(
		Weighted{Score: 150, Weight: 0.5},
		Weighted{Score: -20, Weight: 0.5},
	)
	if math.Abs(got-50) > 0.001 {
		t.Errorf("WeightedOverall with out-of-range components = %v, want 50", got)
	}
}

func TestPriorityWeight(t *testing.T) {
	if PriorityWeight(models.LevelHigh) != 3 {
		t.Error("high priority should weigh 3")
	}
	if PriorityWeight(models.LevelMedium) != 2 {
		t.Error("medium priority should weigh 2")
	}
	if PriorityWeight(models.LevelLow) != 1 {
		t.Error("low priority should weigh 1")
	}
}

func TestRankRecommendationsOrdering(t *testing.T) {
	recs := []models.Recommendation{
		{Type: "content", Title: "low", Priority: models.LevelLow, Impact: models.LevelLow, ExpectedImprovement: 5},
		{Type: "content", Title: "high", Priority: models.LevelHigh, Impact: models.LevelHigh, ExpectedImprovement: 20},
		{Type: "seo", Title: "medium", Priority: models.LevelMedium, Impact: models.LevelHigh, ExpectedImprovement: 15},
		{Type: "seo", Title: "tiebreak winner", Priority: models.LevelMedium, Impact: models.LevelHigh, ExpectedImprovement: 18},
	}

	ranked := RankRecommendations(recs, 10)
	if len(ranked) != 4 {
		t.Fatalf("expected 4 recommendations, got %d", len(ranked))
	}
	if ranked[0].Title != "high" {
		t.Errorf("expected 'high' first, got %q", ranked[0].Title)
	}
	if ranked[1].Title != "tiebreak winner" {
		t.Errorf("expected improvement tiebreak second, got %q", ranked[1].Title)
	}
	if ranked[3].Title != "low" {
		t.Errorf("expected 'low' last, got %q", ranked[3].Title)
	}
}

func TestRankRecommendationsDedupe(t *testing.T) {
	recs := []models.Recommendation{
		{Type: "content", Title: "Expand content", Priority: models.LevelHigh, ExpectedImprovement: 20},
		{Type: "content", Title: "Expand content", Priority: models.LevelLow, ExpectedImprovement: 2},
		{Type: "seo", Title: "Expand content", Priority: models.LevelMedium, ExpectedImprovement: 10},
	}

	ranked := RankRecommendations(recs, 10)
	if len(ranked) != 2 {
		t.Fatalf("expected 2 after dedupe by (type, title), got %d", len(ranked))
	}
}

func TestRankRecommendationsTruncates(t *testing.T) {
	var recs []models.Recommendation
	for i := 0; i < 15; i++ {
		recs = append(recs, models.Recommendation{
			Type:                "content",
			Title:               string(rune('a' + i)),
			Priority:            models.LevelMedium,
			ExpectedImprovement: float64(i),
		})
	}

	ranked := RankRecommendations(recs, 10)
	if len(ranked) != 10 {
		t.Errorf("expected cap at 10, got %d", len(ranked))
	}
}
