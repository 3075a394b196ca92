// Package app wires configuration, storage, services, and processors
// into a runnable analysis engine.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/sitescore/internal/common"
	"github.com/ternarybob/sitescore/internal/interfaces"
	"github.com/ternarybob/sitescore/internal/models"
	"github.com/ternarybob/sitescore/internal/processors"
	competitiveproc "github.com/ternarybob/sitescore/internal/processors/competitive"
	"github.com/ternarybob/sitescore/internal/processors/contentquality"
	"github.com/ternarybob/sitescore/internal/processors/seohealth"
	"github.com/ternarybob/sitescore/internal/services/cache"
	competitivesvc "github.com/ternarybob/sitescore/internal/services/competitive"
	"github.com/ternarybob/sitescore/internal/services/fetch"
	"github.com/ternarybob/sitescore/internal/services/llm"
	"github.com/ternarybob/sitescore/internal/storage/badger"
)

const analyticsCacheTTL = 15 * time.Minute

// App owns the wired components and their lifecycle
type App struct {
	Config     *common.Config
	Logger     arbor.ILogger
	Storage    *badger.Manager
	Dispatcher *processors.Dispatcher
	Cache      *cache.Service
}

// New builds the application from configuration
func New(config *common.Config) (*App, error) {
	logger := common.InitLogger(config)

	storage, err := badger.NewManager(config.Storage.Badger, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	fetcher := fetch.NewService(config.Fetcher, logger)
	analyzer := llm.NewService(config.Claude, logger)
	analyticsCache := cache.NewService(analyticsCacheTTL, logger)
	progress := processors.NewStorageProgressSink(storage.JobStorage(), logger)

	var live interfaces.CompetitiveDataSource
	if liveSource := competitivesvc.NewLiveDataSource(config.Competitive, logger); liveSource.Enabled() {
		live = liveSource
		logger.Info().Str("endpoint", config.Competitive.Endpoint).Msg("Live competitive integration enabled")
	} else {
		logger.Info().Msg("Live competitive integration disabled, simulated data only")
	}
	simulated := competitivesvc.NewSimulatedDataSource(logger)

	queue := storage.Queue()
	dispatcher := processors.NewDispatcher(queue, queue, storage.JobStorage(), analyticsCache, config.Processing, logger)
	dispatcher.Register(contentquality.New(fetcher, analyzer, storage.ResultStorage(), progress, logger))
	dispatcher.Register(seohealth.New(fetcher, storage.ResultStorage(), progress, logger))
	dispatcher.Register(competitiveproc.New(live, simulated, storage.CompetitorStorage(), storage.ResultStorage(), progress, logger))

	return &App{
		Config:     config,
		Logger:     logger,
		Storage:    storage,
		Dispatcher: dispatcher,
		Cache:      analyticsCache,
	}, nil
}

// Start launches the job dispatcher
func (a *App) Start(ctx context.Context) {
	a.Logger.Info().
		Str("environment", a.Config.Environment).
		Msg("Starting sitescore")
	a.Dispatcher.Start(ctx)
}

// Submit persists a new job and enqueues it for processing
func (a *App) Submit(ctx context.Context, jobType models.JobType, data models.JobData) (*models.Job, error) {
	job := models.NewJob(jobType, data)
	if err := a.Storage.JobStorage().SaveJob(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to save job: %w", err)
	}
	if err := a.Storage.Queue().Enqueue(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to enqueue job: %w", err)
	}

	a.Logger.Info().
		Str("job_id", job.ID).
		Str("type", string(jobType)).
		Msg("Job submitted")
	return job, nil
}

// Close stops the dispatcher and releases storage
func (a *App) Close() error {
	a.Dispatcher.Stop()
	if err := a.Storage.Close(); err != nil {
		return fmt.Errorf("failed to close storage: %w", err)
	}
	a.Logger.Info().Msg("Shutdown complete")
	return nil
}
