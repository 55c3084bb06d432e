package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Job is a queued background task. Context scopes the job to its owner: a
// job whose context is done before a worker picks it up is dropped, and a
// running job sees the cancellation.
type Job struct {
	ID       string
	Type     string
	Context  context.Context
	Run      func(context.Context) error
	Enqueued time.Time
}

// QueueConfig configures worker pool behaviour.
type QueueConfig struct {
	Workers    int
	BufferSize int
	Logger     *zap.Logger
}

// Queue is a lightweight in-memory job dispatcher backed by goroutines. Jobs
// run once; failures are logged and left to the job to record.
type Queue struct {
	name string

	workers    int
	bufferSize int
	logger     *zap.Logger

	jobs    chan Job
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	mu      sync.Mutex
	started bool
}

// NewQueue builds a new queue.
func NewQueue(name string, cfg QueueConfig) *Queue {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = cfg.Workers * 4
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return &Queue{
		name:       name,
		workers:    cfg.Workers,
		bufferSize: cfg.BufferSize,
		logger:     cfg.Logger,
		jobs:       make(chan Job, cfg.BufferSize),
	}
}

// Start begins worker consumption. Safe to call once.
func (q *Queue) Start(ctx context.Context) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.started {
		return
	}
	q.ctx, q.cancel = context.WithCancel(ctx)
	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go q.worker(i + 1)
	}
	q.started = true
	q.logger.Sugar().Infow("queue started", "queue", q.name, "workers", q.workers)
}

// Stop cancels workers and waits for them to exit.
func (q *Queue) Stop() {
	q.mu.Lock()
	if !q.started {
		q.mu.Unlock()
		return
	}
	q.cancel()
	q.mu.Unlock()
	q.wg.Wait()
	q.logger.Sugar().Infow("queue stopped", "queue", q.name)
}

// Enqueue pushes a job onto the queue, blocking while the buffer is full.
func (q *Queue) Enqueue(job Job) error {
	return q.EnqueueContext(context.Background(), job)
}

// EnqueueContext is Enqueue with the wait for a free buffer slot bounded by
// wait. wait does not affect the job once it is queued.
func (q *Queue) EnqueueContext(wait context.Context, job Job) error {
	q.mu.Lock()
	ctx := q.ctx
	started := q.started
	q.mu.Unlock()

	if !started {
		return fmt.Errorf("queue %s not started", q.name)
	}
	if job.Run == nil {
		return fmt.Errorf("queue %s: job %s has nothing to run", q.name, job.ID)
	}
	if job.Context == nil {
		job.Context = ctx
	}
	if job.Enqueued.IsZero() {
		job.Enqueued = time.Now().UTC()
	}
	if err := wait.Err(); err != nil {
		return fmt.Errorf("queue %s: enqueue of %s cancelled: %w", q.name, job.ID, err)
	}

	select {
	case <-wait.Done():
		return fmt.Errorf("queue %s: enqueue of %s cancelled: %w", q.name, job.ID, wait.Err())
	case <-ctx.Done():
		return fmt.Errorf("queue %s stopped: %w", q.name, ctx.Err())
	case <-job.Context.Done():
		return fmt.Errorf("queue %s: job %s abandoned: %w", q.name, job.ID, job.Context.Err())
	case q.jobs <- job:
		return nil
	}
}

func (q *Queue) worker(workerID int) {
	defer q.wg.Done()
	for {
		select {
		case <-q.ctx.Done():
			return
		case job := <-q.jobs:
			q.run(workerID, job)
		}
	}
}

func (q *Queue) run(workerID int, job Job) {
	if err := job.Context.Err(); err != nil {
		q.logger.Sugar().Debugw("job abandoned before start", "queue", q.name, "job_id", job.ID, "type", job.Type)
		return
	}

	runCtx, cancel := context.WithCancel(job.Context)
	stop := context.AfterFunc(q.ctx, cancel)
	defer func() {
		stop()
		cancel()
	}()

	start := time.Now()
	if err := job.Run(runCtx); err != nil {
		q.logger.Sugar().Warnw("job failed", "queue", q.name, "worker", workerID, "job_id", job.ID, "type", job.Type,
			"waited", start.Sub(job.Enqueued), "error", err)
		return
	}
	q.logger.Sugar().Debugw("job done", "queue", q.name, "worker", workerID, "job_id", job.ID, "type", job.Type,
		"took", time.Since(start))
}
