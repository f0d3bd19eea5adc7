package pool

import (
	"fmt"
	"log/slog"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/jzx17/workpool/pkg/types"
)

// WorkerState defines the state of a worker
type WorkerState int32

const (
	// WorkerStateIdle means the worker is waiting on the job queue
	WorkerStateIdle WorkerState = iota
	// WorkerStateExecuting means the worker is running a dequeued job
	WorkerStateExecuting
	// WorkerStateTerminated means the worker's loop has exited
	WorkerStateTerminated
)

// String returns the string representation of WorkerState
func (ws WorkerState) String() string {
	switch ws {
	case WorkerStateIdle:
		return "idle"
	case WorkerStateExecuting:
		return "executing"
	case WorkerStateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// worker is one long-lived goroutine bound to the shared job queue. It is
// created at pool construction and joined at teardown; nothing touches its
// fields concurrently except the atomic state and counters.
type worker struct {
	id     int
	queue  *jobQueue
	logger *slog.Logger
	clock  types.Clock

	state    int32 // atomic WorkerState
	done     chan struct{}
	faultErr error // set before done is closed, read only after

	// statistics
	executed    int64
	lastJobTime int64 // Unix nanosecond timestamp

	// pool callbacks for syncing stats and metrics
	completion func(d time.Duration, faulted bool)
	dequeued   func()
}

func newWorker(id int, queue *jobQueue, logger *slog.Logger, clock types.Clock) *worker {
	return &worker{
		id:     id,
		queue:  queue,
		logger: logger,
		clock:  clock,
		state:  int32(WorkerStateIdle),
		done:   make(chan struct{}),
	}
}

// State returns the current worker state.
func (w *worker) State() WorkerState {
	return WorkerState(atomic.LoadInt32(&w.state))
}

func (w *worker) setState(s WorkerState) {
	atomic.StoreInt32(&w.state, int32(s))
}

// run is the worker's main loop. It exits on a terminate message, on queue
// disconnect, or permanently when a job panics. A panicking job takes its
// worker with it: the worker is not replaced and pool capacity shrinks by one.
// The deferred recover confines the fault to this worker so the rest of the
// pool keeps serving.
func (w *worker) run() {
	defer close(w.done)
	defer w.setState(WorkerStateTerminated)
	defer func() {
		if r := recover(); r != nil {
			var buf [4096]byte
			n := runtime.Stack(buf[:], false)
			w.faultErr = fmt.Errorf("worker %d: job panic: %v", w.id, r)
			w.logger.Error("worker lost to job panic",
				"worker", w.id,
				"panic", fmt.Sprint(r),
				"stack", string(buf[:n]))
			if w.completion != nil {
				w.completion(0, true)
			}
		}
	}()

	w.logger.Debug("worker started", "worker", w.id)

	for {
		msg, ok := w.queue.receive()
		if !ok {
			w.logger.Info("worker disconnected, shutting down", "worker", w.id)
			return
		}
		if w.dequeued != nil {
			w.dequeued()
		}

		switch msg.kind {
		case messageJob:
			w.logger.Debug("worker got a job", "worker", w.id)
			w.runJob(msg.job)
		case messageTerminate:
			w.logger.Info("worker received terminate signal", "worker", w.id)
			return
		}
	}
}

// runJob executes one job and updates stats. Faults propagate to run's
// recover; a successful job returns the worker to idle.
func (w *worker) runJob(job Job) {
	w.setState(WorkerStateExecuting)
	defer w.setState(WorkerStateIdle)

	start := w.clock.Now()
	atomic.StoreInt64(&w.lastJobTime, start.UnixNano())

	job.Run()

	atomic.AddInt64(&w.executed, 1)
	if w.completion != nil {
		w.completion(w.clock.Since(start), false)
	}
}

// Stats gets worker statistics
func (w *worker) Stats() WorkerStats {
	return WorkerStats{
		ID:          w.id,
		State:       w.State(),
		Executed:    atomic.LoadInt64(&w.executed),
		LastJobTime: time.Unix(0, atomic.LoadInt64(&w.lastJobTime)),
	}
}

// WorkerStats defines per-worker statistics
type WorkerStats struct {
	ID          int
	State       WorkerState
	Executed    int64
	LastJobTime time.Time
}

// IsIdle checks if the worker is waiting for work
func (ws WorkerStats) IsIdle() bool {
	return ws.State == WorkerStateIdle
}

// IsActive checks if the worker is running a job
func (ws WorkerStats) IsActive() bool {
	return ws.State == WorkerStateExecuting
}
