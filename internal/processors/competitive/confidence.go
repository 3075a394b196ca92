package competitive

import (
	"github.com/ternarybob/sitescore/internal/models"
	"github.com/ternarybob/sitescore/internal/scoring"
)

const confidenceBase = 75.0

// scoreConfidence estimates result trustworthiness from the data source
// kind, integration metadata, analysis depth, and section coverage.
// Live data always yields higher overall confidence than simulated data,
// all else equal.
func scoreConfidence(sourceKind string, meta *models.IntegrationMetadata, depth models.AnalysisDepth, data *models.CompetitiveData) models.ConfidenceScore {
	score := models.ConfidenceScore{
		Overall:           confidenceBase,
		DataQuality:       confidenceBase,
		SampleSize:        confidenceBase,
		Recency:           confidenceBase,
		SourceReliability: confidenceBase,
		AnalysisAccuracy:  confidenceBase,
	}

	if sourceKind == "live" {
		if meta != nil && meta.Confidence > score.Overall {
			score.Overall = meta.Confidence
		}
		if meta != nil {
			bonus := 5.0 * float64(len(meta.DataSourcesUsed))
			if bonus > 15 {
				bonus = 15
			}
			score.Overall += bonus

			penalty := 5.0 * float64(len(meta.Limitations))
			if penalty > 15 {
				penalty = 15
			}
			score.Overall -= penalty
		}
	} else {
		score.Overall -= 25
		score.DataQuality -= 30
		score.SourceReliability -= 20
		score.AnalysisAccuracy -= 25
	}

	switch depth {
	case models.DepthComprehensive:
		score.Overall += 15
		score.DataQuality += 10
		score.AnalysisAccuracy += 15
	case models.DepthBasic:
		score.Overall -= 10
		score.DataQuality -= 15
		score.AnalysisAccuracy -= 10
	}

	if data != nil {
		if data.Content != nil {
			score.Overall += 5
		}
		if data.SEO != nil {
			score.Overall += 5
		}
		if data.Performance != nil {
			score.Overall += 5
		}
		if data.MarketPosition != nil {
			score.Overall += 5
		}
		if data.ContentGaps != nil {
			score.Overall += 10
		}
	}

	score.Overall = scoring.Clamp(score.Overall)
	score.DataQuality = scoring.Clamp(score.DataQuality)
	score.SampleSize = scoring.Clamp(score.SampleSize)
	score.Recency = scoring.Clamp(score.Recency)
	score.SourceReliability = scoring.Clamp(score.SourceReliability)
	score.AnalysisAccuracy = scoring.Clamp(score.AnalysisAccuracy)
	return score
}
