package badger

import (
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/sitescore/internal/common"
	"github.com/ternarybob/sitescore/internal/interfaces"
)

// Manager owns the database connection and the storage instances built on it
type Manager struct {
	db          *DB
	jobs        *JobStorage
	results     *ResultStorage
	competitors *CompetitorStorage
	queue       *JobQueue
	logger      arbor.ILogger
}

var _ interfaces.StorageManager = (*Manager)(nil)

// NewManager opens the database and wires the storage layer
func NewManager(config common.BadgerConfig, logger arbor.ILogger) (*Manager, error) {
	db, err := NewDB(config, logger)
	if err != nil {
		return nil, err
	}

	jobs := NewJobStorage(db, logger)

	return &Manager{
		db:          db,
		jobs:        jobs,
		results:     NewResultStorage(db, logger),
		competitors: NewCompetitorStorage(db, logger),
		queue:       NewJobQueue(db, jobs, logger),
		logger:      logger,
	}, nil
}

// JobStorage returns the job storage
func (m *Manager) JobStorage() interfaces.JobStorage {
	return m.jobs
}

// ResultStorage returns the result storage
func (m *Manager) ResultStorage() interfaces.ResultStorage {
	return m.results
}

// CompetitorStorage returns the competitor storage
func (m *Manager) CompetitorStorage() interfaces.CompetitorStorage {
	return m.competitors
}

// Queue returns the job queue
func (m *Manager) Queue() *JobQueue {
	return m.queue
}

// Close closes the database connection
func (m *Manager) Close() error {
	return m.db.Close()
}
