package badger

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/ternarybob/sitescore/internal/interfaces"
	"github.com/ternarybob/sitescore/internal/models"
)

// queueEntry is the persisted queue record. The job itself lives in
// JobStorage; the entry only carries ordering data.
type queueEntry struct {
	JobID     string
	Priority  int
	NotBefore time.Time
	CreatedAt time.Time
}

// JobQueue is a Badger-backed job queue. Dequeue returns the
// highest-priority ready entry along with an ack function that removes it
// from the queue; unacked entries survive restarts.
type JobQueue struct {
	db     *DB
	jobs   *JobStorage
	logger arbor.ILogger
	mu     sync.Mutex
}

var _ interfaces.JobSource = (*JobQueue)(nil)

// NewJobQueue creates a JobQueue instance
func NewJobQueue(db *DB, jobs *JobStorage, logger arbor.ILogger) *JobQueue {
	return &JobQueue{
		db:     db,
		jobs:   jobs,
		logger: logger,
	}
}

func queueKey(jobID string) string {
	return "queue:" + jobID
}

// Enqueue saves the job and adds a queue entry for it
func (q *JobQueue) Enqueue(ctx context.Context, job *models.Job) error {
	return q.EnqueueAfter(ctx, job, 0)
}

// EnqueueAfter saves the job and adds a queue entry that becomes ready
// after the given delay. Used for retry cooldowns.
func (q *JobQueue) EnqueueAfter(ctx context.Context, job *models.Job, delay time.Duration) error {
	if err := q.jobs.SaveJob(ctx, job); err != nil {
		return err
	}

	entry := queueEntry{
		JobID:     job.ID,
		Priority:  job.Priority,
		NotBefore: time.Now().Add(delay),
		CreatedAt: job.CreatedAt,
	}
	if err := q.db.Store().Upsert(queueKey(job.ID), &entry); err != nil {
		return fmt.Errorf("failed to enqueue job: %w", err)
	}

	q.logger.Debug().
		Str("job_id", job.ID).
		Str("type", string(job.Type)).
		Dur("delay", delay).
		Msg("Job enqueued")
	return nil
}

// Dequeue returns the next ready job, highest priority first, oldest first
// within a priority. Returns badgerhold.ErrNotFound when the queue has no
// ready entries.
func (q *JobQueue) Dequeue(ctx context.Context) (*models.Job, func() error, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	var entries []queueEntry
	if err := q.db.Store().Find(&entries, badgerhold.Where("NotBefore").Le(time.Now())); err != nil {
		return nil, nil, fmt.Errorf("failed to scan queue: %w", err)
	}
	if len(entries) == 0 {
		return nil, nil, badgerhold.ErrNotFound
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Priority != entries[j].Priority {
			return entries[i].Priority > entries[j].Priority
		}
		return entries[i].CreatedAt.Before(entries[j].CreatedAt)
	})

	entry := entries[0]
	job, err := q.jobs.GetJob(ctx, entry.JobID)
	if err != nil {
		// Orphaned entry, drop it and report no work this round
		q.db.Store().Delete(queueKey(entry.JobID), &queueEntry{})
		return nil, nil, badgerhold.ErrNotFound
	}

	// Push the entry past the horizon so other workers skip it until acked
	// or re-enqueued.
	entry.NotBefore = time.Now().Add(10 * time.Minute)
	if err := q.db.Store().Upsert(queueKey(entry.JobID), &entry); err != nil {
		return nil, nil, fmt.Errorf("failed to claim queue entry: %w", err)
	}

	ack := func() error {
		if err := q.db.Store().Delete(queueKey(entry.JobID), &queueEntry{}); err != nil && err != badgerhold.ErrNotFound {
			return fmt.Errorf("failed to ack job %s: %w", entry.JobID, err)
		}
		return nil
	}
	return job, ack, nil
}

// Len returns the number of queue entries, ready or not
func (q *JobQueue) Len() (int, error) {
	count, err := q.db.Store().Count(&queueEntry{}, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count queue: %w", err)
	}
	return int(count), nil
}
