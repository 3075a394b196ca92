package processors

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/ternarybob/sitescore/internal/common"
	"github.com/ternarybob/sitescore/internal/interfaces"
	"github.com/ternarybob/sitescore/internal/models"
)

// Requeuer re-enqueues a job after a cooldown. Satisfied by the badger
// job queue.
type Requeuer interface {
	EnqueueAfter(ctx context.Context, job *models.Job, delay time.Duration) error
}

// Dispatcher polls the job queue and routes each job to the processor
// registered for its type.
type Dispatcher struct {
	source   interfaces.JobSource
	requeuer Requeuer
	jobs     interfaces.JobStorage
	cache    interfaces.CacheInvalidator
	registry map[models.JobType]interfaces.JobProcessor
	logger   arbor.ILogger
	config   common.ProcessingConfig
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewDispatcher creates a dispatcher over the given queue and storage
func NewDispatcher(source interfaces.JobSource, requeuer Requeuer, jobs interfaces.JobStorage, cache interfaces.CacheInvalidator, config common.ProcessingConfig, logger arbor.ILogger) *Dispatcher {
	if config.Concurrency < 1 {
		config.Concurrency = 1
	}
	if config.PollInterval <= 0 {
		config.PollInterval = time.Second
	}

	return &Dispatcher{
		source:   source,
		requeuer: requeuer,
		jobs:     jobs,
		cache:    cache,
		registry: make(map[models.JobType]interfaces.JobProcessor),
		logger:   logger,
		config:   config,
	}
}

// Register adds a processor for its job type. Registering a second
// processor for the same type replaces the first.
func (d *Dispatcher) Register(processor interfaces.JobProcessor) {
	d.registry[processor.Type()] = processor
	d.logger.Debug().
		Str("job_type", string(processor.Type())).
		Msg("Job processor registered")
}

// Start launches the worker goroutines
func (d *Dispatcher) Start(ctx context.Context) {
	ctx, d.cancel = context.WithCancel(ctx)
	d.done = make(chan struct{})

	d.logger.Info().
		Int("concurrency", d.config.Concurrency).
		Dur("poll_interval", d.config.PollInterval).
		Msg("Starting job dispatcher")

	workers := make(chan struct{}, d.config.Concurrency)
	for i := 0; i < d.config.Concurrency; i++ {
		workers <- struct{}{}
		go func(workerID int) {
			defer func() { <-workers }()
			d.worker(ctx, workerID)
		}(i)
	}

	go func() {
		for i := 0; i < d.config.Concurrency; i++ {
			workers <- struct{}{}
		}
		close(d.done)
	}()
}

// Stop cancels the workers and waits for them to drain
func (d *Dispatcher) Stop() {
	d.logger.Info().Msg("Stopping job dispatcher")
	if d.cancel != nil {
		d.cancel()
	}
	if d.done != nil {
		<-d.done
	}
}

// worker polls the queue, backing off exponentially while it is idle
func (d *Dispatcher) worker(ctx context.Context, workerID int) {
	// Stagger worker starts so they do not hammer the queue in lockstep
	stagger := (d.config.PollInterval / time.Duration(d.config.Concurrency)) * time.Duration(workerID)
	select {
	case <-ctx.Done():
		return
	case <-time.After(stagger):
	}

	d.logger.Debug().Int("worker_id", workerID).Msg("Worker started")

	const (
		minIdle = 100 * time.Millisecond
		maxIdle = 5 * time.Second
	)
	idle := minIdle

	for {
		select {
		case <-ctx.Done():
			d.logger.Debug().Int("worker_id", workerID).Msg("Worker stopped")
			return
		default:
		}

		job, ack, err := d.source.Dequeue(ctx)
		if err != nil {
			if err != badgerhold.ErrNotFound {
				d.logger.Warn().Err(err).Int("worker_id", workerID).Msg("Dequeue failed")
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(idle):
			}
			idle *= 2
			if idle > maxIdle {
				idle = maxIdle
			}
			continue
		}
		idle = minIdle

		d.handle(ctx, workerID, job, ack)
	}
}

// handle runs one job end to end
func (d *Dispatcher) handle(ctx context.Context, workerID int, job *models.Job, ack func() error) {
	logger := d.logger
	logger.Info().
		Str("job_id", job.ID).
		Str("type", string(job.Type)).
		Int("worker_id", workerID).
		Int("attempt", job.Attempts+1).
		Msg("Processing job")

	processor, ok := d.registry[job.Type]
	if !ok {
		logger.Error().
			Str("job_id", job.ID).
			Str("type", string(job.Type)).
			Msg("No processor registered for job type")
		d.finishFailed(ctx, job, "no processor registered for job type: "+string(job.Type))
		d.ackOrLog(job.ID, ack)
		return
	}

	if !processor.Validate(job.Data) {
		logger.Warn().
			Str("job_id", job.ID).
			Str("type", string(job.Type)).
			Msg("Job failed validation")
		d.finishFailed(ctx, job, "job data failed validation")
		d.ackOrLog(job.ID, ack)
		return
	}

	estimate := processor.EstimateProcessingTime(job.Data)
	logger.Debug().
		Str("job_id", job.ID).
		Int("estimate_seconds", estimate).
		Msg("Processing time estimated")

	if err := d.jobs.UpdateStatus(ctx, job.ID, models.JobStatusProcessing); err != nil {
		logger.Warn().Str("job_id", job.ID).Err(err).Msg("Failed to mark job processing")
	}

	start := time.Now()
	result := d.processSafely(ctx, processor, job)
	duration := time.Since(start)

	if result.Success {
		if err := d.jobs.UpdateProgress(ctx, job.ID, 100, result.ProgressMessage); err != nil {
			logger.Warn().Str("job_id", job.ID).Err(err).Msg("Failed to persist final progress")
		}
		if err := d.jobs.UpdateStatus(ctx, job.ID, models.JobStatusCompleted); err != nil {
			logger.Warn().Str("job_id", job.ID).Err(err).Msg("Failed to mark job completed")
		}
		d.cache.Invalidate(job.Data.ProjectID, cacheKindFor(job.Type))

		logger.Info().
			Str("job_id", job.ID).
			Str("type", string(job.Type)).
			Dur("duration", duration).
			Msg("Job completed")
		d.ackOrLog(job.ID, ack)
		return
	}

	// Failure path: retry when allowed, otherwise fail terminally
	if result.Retryable && job.Attempts+1 < job.MaxAttempts {
		job.Attempts++
		job.Status = models.JobStatusPending

		cooldown := time.Duration(result.RetryAfter) * time.Second
		d.ackOrLog(job.ID, ack)
		if err := d.requeuer.EnqueueAfter(ctx, job, cooldown); err != nil {
			logger.Error().Str("job_id", job.ID).Err(err).Msg("Failed to requeue job, failing terminally")
			d.finishFailed(ctx, job, result.Error)
			return
		}

		logger.Warn().
			Str("job_id", job.ID).
			Str("error", result.Error).
			Int("attempt", job.Attempts).
			Dur("cooldown", cooldown).
			Msg("Job failed, requeued for retry")
		return
	}

	d.finishFailed(ctx, job, result.Error)
	logger.Error().
		Str("job_id", job.ID).
		Str("error", result.Error).
		Bool("retryable", result.Retryable).
		Int("attempts", job.Attempts+1).
		Msg("Job failed terminally")
	d.ackOrLog(job.ID, ack)
}

// processSafely runs the processor, converting panics to failed results
func (d *Dispatcher) processSafely(ctx context.Context, processor interfaces.JobProcessor, job *models.Job) (result models.JobResult) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error().
				Str("job_id", job.ID).
				Str("panic", fmt.Sprintf("%v", r)).
				Str("stack", string(debug.Stack())).
				Msg("Processor panicked")
			result = models.FailureResult(fmt.Sprintf("processor panic: %v", r), false, job.Progress)
		}
	}()
	return processor.Process(ctx, job)
}

func (d *Dispatcher) finishFailed(ctx context.Context, job *models.Job, errMsg string) {
	if err := d.jobs.UpdateStatus(ctx, job.ID, models.JobStatusFailed); err != nil {
		d.logger.Warn().Str("job_id", job.ID).Err(err).Msg("Failed to mark job failed")
	}
	if errMsg != "" {
		if err := d.jobs.UpdateProgress(ctx, job.ID, job.Progress, errMsg); err != nil {
			d.logger.Debug().Str("job_id", job.ID).Err(err).Msg("Failed to persist failure message")
		}
	}
}

func (d *Dispatcher) ackOrLog(jobID string, ack func() error) {
	if err := ack(); err != nil {
		d.logger.Warn().Str("job_id", jobID).Err(err).Msg("Failed to ack queue entry")
	}
}

// cacheKindFor maps a job type to its analytics cache kind
func cacheKindFor(jobType models.JobType) string {
	switch jobType {
	case models.JobTypeContentAnalysis:
		return "content-quality"
	case models.JobTypeSEOHealthCheck:
		return "seo-health"
	case models.JobTypeCompetitiveAnalysis:
		return "competitive"
	default:
		return string(jobType)
	}
}
