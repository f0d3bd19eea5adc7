package pool

import "errors"

// Sentinel errors for pool operations
var (
	// ErrInvalidPoolSize indicates the pool was constructed with fewer than one worker
	ErrInvalidPoolSize = errors.New("pool size must be at least 1")

	// ErrPoolClosed indicates a submission was attempted after teardown began
	ErrPoolClosed = errors.New("pool is closed")

	// ErrQueueClosed indicates a send on a queue whose producing side has been shut down
	ErrQueueClosed = errors.New("job queue is closed")
)
