package competitive

import (
	"fmt"
	"strings"
	"time"

	"github.com/ternarybob/sitescore/internal/common"
	"github.com/ternarybob/sitescore/internal/models"
)

// buildAlerts derives alerts from the assembled analysis data. Alerts are
// part of the result, never persisted as standing entities.
func buildAlerts(data *models.CompetitiveData, competitors []models.Competitor, confidence float64) []models.CompetitiveAlert {
	var alerts []models.CompetitiveAlert
	now := time.Now().UTC()

	competitorID := ""
	if len(competitors) > 0 {
		competitorID = competitors[0].ID
	}

	if data.SEO != nil && len(data.SEO.Keywords.Gaps) > 0 {
		gaps := data.SEO.Keywords.Gaps
		alerts = append(alerts, models.CompetitiveAlert{
			ID:           common.NewAlertID(),
			CompetitorID: competitorID,
			Type:         "keyword-gap",
			Severity:     models.LevelMedium,
			Title:        "Competitors rank for keywords you do not target",
			Description:  fmt.Sprintf("%d keyword groups are covered by competitors but absent from the target: %s", len(gaps), strings.Join(gaps, ", ")),
			Timestamp:    now,
			Status:       "new",
			Metadata: models.AlertMetadata{
				Confidence: confidence,
				Impact:     70,
				Urgency:    50,
				Data:       map[string]any{"keyword_gaps": gaps},
			},
			ActionRequired: true,
			Recommendations: []string{
				"Add the missing keyword groups to the content roadmap",
			},
		})
	}

	if data.ContentGaps != nil && len(data.ContentGaps.TopicGaps) > 0 {
		gaps := data.ContentGaps.TopicGaps
		alerts = append(alerts, models.CompetitiveAlert{
			ID:           common.NewAlertID(),
			CompetitorID: competitorID,
			Type:         "content-gap",
			Severity:     models.LevelMedium,
			Title:        "Competitors cover topics the target does not",
			Description:  fmt.Sprintf("%d topic gaps identified: %s", len(gaps), strings.Join(gaps, ", ")),
			Timestamp:    now,
			Status:       "new",
			Metadata: models.AlertMetadata{
				Confidence: confidence,
				Impact:     65,
				Urgency:    40,
				Data:       map[string]any{"topic_gaps": gaps},
			},
			ActionRequired: true,
			Recommendations: []string{
				"Prioritize quick-win topics from the opportunity matrix",
			},
		})
	}

	if data.Performance != nil && len(data.Performance.Opportunities) > 0 {
		top := data.Performance.Opportunities[0]
		for _, opp := range data.Performance.Opportunities[1:] {
			if opp.ImprovementPotential > top.ImprovementPotential {
				top = opp
			}
		}
		if top.ImprovementPotential > 50 {
			alerts = append(alerts, models.CompetitiveAlert{
				ID:           common.NewAlertID(),
				CompetitorID: competitorID,
				Type:         "performance-gap",
				Severity:     models.LevelHigh,
				Title:        "Significant performance gap against competitors",
				Description:  fmt.Sprintf("The %s gap offers %.0f%% improvement potential", top.Area, top.ImprovementPotential),
				Timestamp:    now,
				Status:       "new",
				Metadata: models.AlertMetadata{
					Confidence: confidence,
					Impact:     85,
					Urgency:    70,
					Data:       map[string]any{"area": top.Area, "improvement_potential": top.ImprovementPotential},
				},
				ActionRequired: true,
				Recommendations: []string{
					"Schedule performance work targeting " + top.Area,
				},
			})
		}
	}

	return alerts
}
