package pool

import "sync"

// jobQueue is an unbounded, ordered, multi-producer multi-consumer queue of
// control messages. Sends never block; memory is the only capacity ceiling.
//
// The receiving side is shared by all workers and serialized by a single
// mutex. The blocking wait for the next message happens inside cond.Wait,
// which releases the mutex for the duration of the park, so a waiting worker
// never starves the others, and exactly-once delivery holds because only the
// lock holder can dequeue.
type jobQueue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	items  []message
	closed bool
}

func newJobQueue() *jobQueue {
	q := &jobQueue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// send enqueues a message at the tail. It fails with ErrQueueClosed once the
// queue has been closed by teardown.
func (q *jobQueue) send(m message) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrQueueClosed
	}
	q.items = append(q.items, m)
	q.cond.Signal()
	return nil
}

// receive blocks until a message is available or the queue is closed with no
// pending messages. The second return is false only in the latter case; it is
// the disconnect signal and means no message will ever arrive again.
// Pending messages remain receivable after close: closing stops producers,
// it does not drop queued work.
func (q *jobQueue) receive() (message, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.items) == 0 && !q.closed {
		q.cond.Wait()
	}

	if len(q.items) == 0 {
		return message{}, false
	}

	m := q.items[0]
	q.items[0] = message{}
	q.items = q.items[1:]
	return m, true
}

// close shuts the producing side. Idempotent. All parked receivers are woken
// so they can observe the disconnect once the backlog drains.
func (q *jobQueue) close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.closed = true
	q.cond.Broadcast()
}

// len reports the current queue depth.
func (q *jobQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
