package pool

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jzx17/workpool/pkg/types"
)

// Config defines configuration for a Pool
type Config struct {
	// Size is the number of workers; fixed for the pool's lifetime
	Size int

	// Logger receives worker lifecycle events (optional, defaults to slog.Default)
	Logger *slog.Logger

	// Clock for time operations (optional, defaults to real clock)
	Clock types.Clock

	// metrics is set through WithMetrics; nil disables Prometheus export
	metrics *Metrics
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Size:  4,
		Clock: types.NewRealClock(),
	}
}

// Option configures a Pool at construction time
type Option func(*Config)

// WithLogger sets the logger for worker lifecycle events
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) { c.Logger = logger }
}

// WithClock sets the clock used for job timing
func WithClock(clock types.Clock) Option {
	return func(c *Config) { c.Clock = clock }
}

// Pool is a fixed-size worker pool. A set of long-lived workers, sized at
// construction and never resized, drains a shared unbounded queue of control
// messages. Submit never blocks on worker availability. Close stops intake,
// signals every worker, and waits for all of them to exit.
//
// Known limitation: a job that panics permanently terminates its worker (the
// worker is not replaced), so repeated faults shrink effective capacity. The
// pool carries no job-level error channel; results and failures are the job
// author's concern.
type Pool struct {
	workers []*worker
	queue   *jobQueue
	logger  *slog.Logger
	clock   types.Clock

	closed    atomic.Bool
	closeOnce sync.Once

	// statistics (atomic)
	submitted int64
	executed  int64
	failed    int64

	metrics *Metrics
}

// New constructs a pool of size workers and starts them. It fails with
// ErrInvalidPoolSize when size < 1; a zero-worker pool is a caller-contract
// violation, never silently created.
func New(size int, opts ...Option) (*Pool, error) {
	cfg := DefaultConfig()
	cfg.Size = size
	for _, opt := range opts {
		opt(cfg)
	}
	return NewWithConfig(cfg)
}

// NewWithConfig constructs a pool from an explicit configuration.
func NewWithConfig(cfg *Config) (*Pool, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.Size < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidPoolSize, cfg.Size)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	clock := cfg.Clock
	if clock == nil {
		clock = types.NewRealClock()
	}

	p := &Pool{
		queue:   newJobQueue(),
		logger:  logger,
		clock:   clock,
		workers: make([]*worker, cfg.Size),
		metrics: cfg.metrics,
	}

	for i := 0; i < cfg.Size; i++ {
		w := newWorker(i, p.queue, logger, clock)
		w.completion = p.jobCompleted
		if p.metrics != nil {
			w.dequeued = p.messageDequeued
		}
		p.workers[i] = w
		logger.Debug("creating worker", "worker", i)
		go w.run()
	}

	return p, nil
}

// Submit enqueues a job for execution by some worker. It never blocks on
// worker availability (the queue is unbounded) and returns ErrPoolClosed once
// teardown has begun. A nil job is rejected.
//
// Callers must not submit once teardown has begun: a Submit racing Close may
// be accepted and discarded, landing its job behind the terminate messages
// where no worker will ever run it.
func (p *Pool) Submit(job Job) error {
	if job == nil {
		return fmt.Errorf("job cannot be nil")
	}
	if p.closed.Load() {
		return ErrPoolClosed
	}

	if err := p.queue.send(message{kind: messageJob, job: job}); err != nil {
		return ErrPoolClosed
	}

	atomic.AddInt64(&p.submitted, 1)
	if p.metrics != nil {
		p.metrics.submitted.Inc()
		p.metrics.queueDepth.Set(float64(p.queue.len()))
	}
	return nil
}

// SubmitFunc submits a plain function as a job.
func (p *Pool) SubmitFunc(fn func()) error {
	if fn == nil {
		return fmt.Errorf("job cannot be nil")
	}
	return p.Submit(JobFunc(fn))
}

// Close tears the pool down: it stops accepting new jobs, sends exactly one
// terminate message per worker, closes the queue, and blocks until every
// worker has exited, joining them in creation order. Jobs already queued or
// in flight still run to completion before their worker observes a terminate.
// Close is safe to call more than once; repeat calls return nil immediately.
func (p *Pool) Close() error {
	p.closeOnce.Do(func() {
		p.closed.Store(true)

		// One terminate per worker guarantees every idle worker wakes
		// promptly; queue closure then covers any late receiver as well.
		for range p.workers {
			if err := p.queue.send(message{kind: messageTerminate}); err != nil {
				break
			}
		}
		p.queue.close()

		for _, w := range p.workers {
			p.logger.Info("shutting down worker", "worker", w.id)
			<-w.done
			if w.faultErr != nil {
				p.logger.Error("worker exited abnormally", "worker", w.id, "error", w.faultErr)
			}
		}

		// Workers lost to a fault never consume their terminate message;
		// sync the gauge with the real depth once all joins are done.
		if p.metrics != nil {
			p.metrics.queueDepth.Set(float64(p.queue.len()))
		}
	})
	return nil
}

// Size returns the number of workers in the pool.
func (p *Pool) Size() int {
	return len(p.workers)
}

// QueueDepth returns the number of messages currently queued.
func (p *Pool) QueueDepth() int {
	return p.queue.len()
}

// IsClosed reports whether teardown has begun.
func (p *Pool) IsClosed() bool {
	return p.closed.Load()
}

// Stats returns current pool statistics
func (p *Pool) Stats() PoolStats {
	var active int
	for _, w := range p.workers {
		if w.State() == WorkerStateExecuting {
			active++
		}
	}
	return PoolStats{
		Size:          len(p.workers),
		ActiveWorkers: active,
		QueueDepth:    p.queue.len(),
		Submitted:     atomic.LoadInt64(&p.submitted),
		Executed:      atomic.LoadInt64(&p.executed),
		Failed:        atomic.LoadInt64(&p.failed),
	}
}

// WorkerStats returns per-worker statistics in worker-creation order.
func (p *Pool) WorkerStats() []WorkerStats {
	stats := make([]WorkerStats, len(p.workers))
	for i, w := range p.workers {
		stats[i] = w.Stats()
	}
	return stats
}

// jobCompleted is the worker completion callback keeping stats and metrics in
// step with execution.
func (p *Pool) jobCompleted(d time.Duration, faulted bool) {
	if faulted {
		atomic.AddInt64(&p.failed, 1)
	} else {
		atomic.AddInt64(&p.executed, 1)
	}

	if p.metrics != nil {
		status := "success"
		if faulted {
			p.metrics.failed.Inc()
			status = "fault"
		} else {
			p.metrics.executed.Inc()
		}
		p.metrics.jobDuration.WithLabelValues(status).Observe(d.Seconds())
	}
}

// messageDequeued keeps the queue depth gauge in step as workers drain the
// queue, including the terminate messages consumed during teardown. Without a
// dequeue-side update the gauge would freeze at whatever depth the last
// submit or completion observed.
func (p *Pool) messageDequeued() {
	p.metrics.queueDepth.Set(float64(p.queue.len()))
}

// PoolStats represents pool-level statistics
type PoolStats struct {
	Size          int   `json:"size"`
	ActiveWorkers int   `json:"active_workers"`
	QueueDepth    int   `json:"queue_depth"`
	Submitted     int64 `json:"submitted"`
	Executed      int64 `json:"executed"`
	Failed        int64 `json:"failed"`
}
