/*
Package pool provides a fixed-size worker pool with an unbounded job queue and
explicit shutdown signaling.

# Overview

A Pool owns N long-lived worker goroutines, fixed at construction, that drain
a single shared queue of control messages. A control message is either a job
or a terminate signal; carrying both on one ordered stream keeps shutdown
ordering unambiguous relative to queued work.

	p, err := pool.New(4)
	if err != nil {
		log.Fatal(err)
	}
	defer p.Close()

	p.SubmitFunc(func() {
		// runs on one of the 4 workers
	})

# Submission

Submit wraps the job in a control message and enqueues it. The queue is
unbounded, so submission never blocks on worker availability; memory is the
only ceiling. Once Close has been called, Submit returns ErrPoolClosed.

Jobs are zero-argument and return nothing to the pool. State a job shares
with its producer must be synchronized by the job author; the pool only
guarantees that each job is delivered to exactly one worker.

# Teardown

Close stops intake, sends exactly one terminate message per worker, closes
the queue, and blocks until every worker has exited, joining them in creation
order. Jobs queued before Close still run: a worker that dequeues a terminate
stops immediately, but queued jobs ahead of it are executed first, and other
workers keep draining until they meet their own terminate. Close is
idempotent.

# Known limitations

A job that panics permanently terminates its worker. The worker is not
replaced, so repeated faults shrink effective capacity; the fault is logged
and surfaced again when the worker is joined at teardown. There is no per-job
cancellation, timeout, or error channel.

# Observability

Worker lifecycle transitions are logged through log/slog. Always-on counters
are available via Stats and WorkerStats; Prometheus export is opt-in through
WithMetrics.
*/
package pool
