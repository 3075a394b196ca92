// Package competitive provides the data sources for competitive analysis:
// a live HTTP integration and a deterministic simulated fallback.
package competitive

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/sitescore/internal/interfaces"
	"github.com/ternarybob/sitescore/internal/models"
)

// SimulatedDataSource generates plausible competitive data without external
// calls. Output is deterministic: values are drawn from a generator seeded
// by the target domain and analysis type, so the same request always yields
// the same data.
type SimulatedDataSource struct {
	logger arbor.ILogger
}

var _ interfaces.CompetitiveDataSource = (*SimulatedDataSource)(nil)

// NewSimulatedDataSource creates the simulated data source
func NewSimulatedDataSource(logger arbor.ILogger) *SimulatedDataSource {
	return &SimulatedDataSource{logger: logger}
}

func (s *SimulatedDataSource) Name() string { return "simulated" }
func (s *SimulatedDataSource) Kind() string { return "simulated" }

// Analyze generates data for every requested analysis type. It never fails.
func (s *SimulatedDataSource) Analyze(ctx context.Context, req models.CompetitiveRequest) (*models.CompetitiveData, *models.IntegrationMetadata, error) {
	start := time.Now()
	data := &models.CompetitiveData{}

	for _, analysisType := range req.AnalysisTypes {
		rng := seededRand(req.TargetDomain, string(analysisType))
		switch analysisType {
		case models.AnalysisContentSimilarity:
			data.Content = s.simulateContent(rng, req)
		case models.AnalysisSEOComparison:
			data.SEO = s.simulateSEO(rng, req)
		case models.AnalysisPerformanceBenchmark:
			data.Performance = s.simulatePerformance(rng)
		case models.AnalysisMarketPosition:
			data.MarketPosition = s.simulateMarketPosition(rng, req)
		case models.AnalysisContentGaps:
			data.ContentGaps = s.simulateContentGaps(rng, req)
		}
	}

	s.logger.Debug().
		Str("target_domain", req.TargetDomain).
		Int("analysis_types", len(req.AnalysisTypes)).
		Msg("Simulated competitive data generated")

	meta := &models.IntegrationMetadata{
		DataSourcesUsed: []string{"simulated"},
		Confidence:      50,
		Limitations: []string{
			"Data is simulated, not collected from live sources",
			"Competitor metrics are statistical estimates",
		},
		ProcessingTime: time.Since(start),
	}
	return data, meta, nil
}

// seededRand builds a generator whose seed depends only on domain and type
func seededRand(domain, analysisType string) *rand.Rand {
	h := fnv.New64a()
	h.Write([]byte(domain))
	h.Write([]byte("|"))
	h.Write([]byte(analysisType))
	return rand.New(rand.NewSource(int64(h.Sum64())))
}

// scoreIn returns a rounded value in [min, max)
func scoreIn(rng *rand.Rand, min, max float64) float64 {
	v := min + rng.Float64()*(max-min)
	return float64(int(v*10)) / 10
}

func (s *SimulatedDataSource) simulateContent(rng *rand.Rand, req models.CompetitiveRequest) *models.ContentComparisonResult {
	similarity := models.SimilarityBreakdown{
		Lexical:    scoreIn(rng, 20, 70),
		Semantic:   scoreIn(rng, 30, 80),
		Structural: scoreIn(rng, 40, 90),
		Topical:    scoreIn(rng, 25, 75),
	}
	similarity.Overall = float64(int((similarity.Lexical*0.30+similarity.Semantic*0.40+
		similarity.Structural*0.15+similarity.Topical*0.15)*10)) / 10

	return &models.ContentComparisonResult{
		Similarity: similarity,
		Quality: []models.ScoreComponent{
			componentFor(rng, "depth"),
			componentFor(rng, "freshness"),
			componentFor(rng, "originality"),
		},
		Topics: models.TopicAnalysis{
			Shared:   []string{"industry trends", "product comparisons", "how-to guides"},
			Unique:   []string{"case studies"},
			Gaps:     []string{"pricing analysis", "integration tutorials"},
			Emerging: []string{"ai workflows"},
		},
		Volume: models.VolumeComparison{
			TargetPagesPerMonth:     scoreIn(rng, 2, 12),
			CompetitorPagesPerMonth: scoreIn(rng, 4, 20),
			Cadence:                 "weekly",
		},
		Recommendations: []models.Recommendation{
			{
				Type:                "content",
				Priority:            models.LevelHigh,
				Impact:              models.LevelHigh,
				Effort:              models.LevelMedium,
				Title:               "Close the publishing volume gap",
				Description:         fmt.Sprintf("Competitors of %s publish more frequently than the target", req.TargetDomain),
				Implementation:      "Establish an editorial calendar targeting the identified topic gaps",
				ExpectedImprovement: 15,
			},
		},
	}
}

func (s *SimulatedDataSource) simulateSEO(rng *rand.Rand, req models.CompetitiveRequest) *models.SEOComparisonResult {
	return &models.SEOComparisonResult{
		Ranking: []models.ScoreComponent{
			componentFor(rng, "average position"),
			componentFor(rng, "top-10 keywords"),
		},
		Visibility: componentFor(rng, "search visibility"),
		Keywords: models.KeywordSets{
			Shared: []string{"core product terms", "category terms"},
			Unique: []string{"brand terms"},
			Gaps:   []string{"long-tail comparison queries", "alternative-to queries"},
		},
		Technical: models.TechnicalSEOComparison{
			TargetVitals: models.CoreWebVitals{
				LCP: scoreIn(rng, 1.5, 4.5),
				FID: scoreIn(rng, 50, 250),
				CLS: scoreIn(rng, 0, 0.3) / 10,
			},
			CompetitorVitals: models.CoreWebVitals{
				LCP: scoreIn(rng, 1.2, 3.5),
				FID: scoreIn(rng, 40, 200),
				CLS: scoreIn(rng, 0, 0.25) / 10,
			},
			Factors: []models.ScoreComponent{
				componentFor(rng, "crawlability"),
				componentFor(rng, "structured data"),
			},
		},
		ContentOptimization: []models.ScoreComponent{
			componentFor(rng, "title optimization"),
			componentFor(rng, "internal linking"),
		},
		LinkProfile: []models.ScoreComponent{
			componentFor(rng, "referring domains"),
			componentFor(rng, "link authority"),
		},
	}
}

func (s *SimulatedDataSource) simulatePerformance(rng *rand.Rand) *models.PerformanceComparisonResult {
	opportunities := []models.ImprovementOpportunity{
		{
			Area:                 "largest contentful paint",
			CurrentValue:         scoreIn(rng, 2.5, 5),
			CompetitorValue:      scoreIn(rng, 1.5, 2.5),
			ImprovementPotential: scoreIn(rng, 20, 60),
			Priority:             models.LevelHigh,
		},
		{
			Area:                 "image optimization",
			CurrentValue:         scoreIn(rng, 40, 70),
			CompetitorValue:      scoreIn(rng, 70, 95),
			ImprovementPotential: scoreIn(rng, 10, 40),
			Priority:             models.LevelMedium,
		},
	}

	return &models.PerformanceComparisonResult{
		CoreWebVitals: []models.ScoreComponent{
			componentFor(rng, "lcp"),
			componentFor(rng, "fid"),
			componentFor(rng, "cls"),
		},
		UXScores: []models.ScoreComponent{
			componentFor(rng, "navigation clarity"),
			componentFor(rng, "accessibility"),
		},
		Mobile: []models.ScoreComponent{
			componentFor(rng, "mobile usability"),
			componentFor(rng, "responsive layout"),
		},
		Opportunities: opportunities,
	}
}

func (s *SimulatedDataSource) simulateMarketPosition(rng *rand.Rand, req models.CompetitiveRequest) *models.MarketPositionResult {
	positions := []models.MarketPositionClass{
		models.PositionLeader,
		models.PositionChallenger,
		models.PositionFollower,
		models.PositionNiche,
	}
	trends := []models.Trend{models.TrendImproving, models.TrendStable, models.TrendDeclining}

	return &models.MarketPositionResult{
		Position:   positions[rng.Intn(len(positions))],
		Trend:      trends[rng.Intn(len(trends))],
		Strengths:  []string{"established domain authority", "consistent branding"},
		Weaknesses: []string{"lower publishing cadence than competitors"},
		Opportunities: []models.MarketOpportunity{
			{
				Title:       "Underserved comparison queries",
				Description: "Competitors rank weakly for head-to-head comparison searches",
				MarketValue: scoreIn(rng, 30, 90),
			},
		},
		Threats: []models.MarketThreat{
			{
				Title:       "Competitor content acceleration",
				Description: fmt.Sprintf("Competitors of %s are increasing publishing velocity", req.TargetDomain),
				Probability: scoreIn(rng, 3, 8) / 10,
				Impact:      scoreIn(rng, 40, 80),
			},
		},
		Recommendations: []models.Recommendation{
			{
				Type:                "market",
				Priority:            models.LevelMedium,
				Impact:              models.LevelHigh,
				Effort:              models.LevelHigh,
				Title:               "Invest in comparison content",
				Description:         "Build head-to-head comparison pages for top competitor pairings",
				Implementation:      "Publish one comparison page per competitor per quarter",
				ExpectedImprovement: 12,
			},
		},
	}
}

func (s *SimulatedDataSource) simulateContentGaps(rng *rand.Rand, req models.CompetitiveRequest) *models.ContentGapResult {
	matrix := models.OpportunityMatrix{
		QuickWins: []models.GapOpportunity{
			{Topic: "faq coverage", Impact: models.LevelHigh, Effort: models.LevelLow},
		},
		StrategicBets: []models.GapOpportunity{
			{Topic: "original research", Impact: models.LevelHigh, Effort: models.LevelHigh},
		},
		FillIns: []models.GapOpportunity{
			{Topic: "glossary pages", Impact: models.LevelLow, Effort: models.LevelLow},
		},
		LowPriority: []models.GapOpportunity{
			{Topic: "legacy product docs", Impact: models.LevelLow, Effort: models.LevelHigh},
		},
	}

	return &models.ContentGapResult{
		TopicGaps:    []string{"pricing analysis", "migration guides", "integration tutorials"},
		KeywordGaps:  []string{"alternative-to queries", "cost comparison terms"},
		FormatGaps:   []string{"video walkthroughs", "interactive tools"},
		AudienceGaps: []string{"enterprise buyers"},
		Matrix:       matrix,
		Recommendations: []models.Recommendation{
			{
				Type:                "content",
				Priority:            models.LevelHigh,
				Impact:              models.LevelHigh,
				Effort:              models.LevelLow,
				Title:               "Publish FAQ content for shared topics",
				Description:         "Quick-win gap with high search intent and low production cost",
				Implementation:      "Draft FAQ sections for the top five shared topics",
				ExpectedImprovement: float64(int(scoreIn(rng, 8, 20))),
			},
		},
	}
}

// componentFor builds a score component with a deterministic gap and
// advantage direction.
func componentFor(rng *rand.Rand, name string) models.ScoreComponent {
	target := scoreIn(rng, 40, 95)
	competitor := scoreIn(rng, 40, 95)
	gap := float64(int((target-competitor)*10)) / 10

	advantage := models.AdvantageTie
	if gap > 2 {
		advantage = models.AdvantageUser
	} else if gap < -2 {
		advantage = models.AdvantageCompetitor
	}

	return models.ScoreComponent{
		Name:      name,
		Score:     target,
		Gap:       gap,
		Advantage: advantage,
	}
}
