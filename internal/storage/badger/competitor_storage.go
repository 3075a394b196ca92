package badger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/ternarybob/sitescore/internal/interfaces"
	"github.com/ternarybob/sitescore/internal/models"
)

// CompetitorStorage persists competitor records
type CompetitorStorage struct {
	db     *DB
	logger arbor.ILogger
}

var _ interfaces.CompetitorStorage = (*CompetitorStorage)(nil)

// NewCompetitorStorage creates a CompetitorStorage instance
func NewCompetitorStorage(db *DB, logger arbor.ILogger) *CompetitorStorage {
	return &CompetitorStorage{
		db:     db,
		logger: logger,
	}
}

// SaveCompetitor upserts a competitor keyed by its ID
func (s *CompetitorStorage) SaveCompetitor(ctx context.Context, competitor *models.Competitor) error {
	if competitor.ID == "" {
		return fmt.Errorf("competitor ID is required")
	}
	if err := s.db.Store().Upsert("competitor:"+competitor.ID, competitor); err != nil {
		return fmt.Errorf("failed to save competitor: %w", err)
	}
	return nil
}

// GetCompetitors loads competitors by ID. Missing IDs yield synthesized
// placeholder records so an analysis can proceed with partial data; the
// placeholder is marked Synthesized and never persisted.
func (s *CompetitorStorage) GetCompetitors(ctx context.Context, ids []string) ([]models.Competitor, error) {
	competitors := make([]models.Competitor, 0, len(ids))

	for _, id := range ids {
		var competitor models.Competitor
		err := s.db.Store().Get("competitor:"+id, &competitor)
		if err == badgerhold.ErrNotFound {
			s.logger.Warn().Str("competitor_id", id).Msg("Competitor not found, synthesizing placeholder")
			competitors = append(competitors, synthesizeCompetitor(id))
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to get competitor %s: %w", id, err)
		}
		competitors = append(competitors, competitor)
	}

	return competitors, nil
}

// synthesizeCompetitor builds a deterministic placeholder for an unknown ID
func synthesizeCompetitor(id string) models.Competitor {
	domain := strings.TrimPrefix(id, "comp_") + ".example.com"
	return models.Competitor{
		ID:          id,
		Name:        "Competitor " + id,
		Domain:      domain,
		Synthesized: true,
		CreatedAt:   time.Now().UTC(),
	}
}
