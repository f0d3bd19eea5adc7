package pool

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobQueue_SendReceiveOrder(t *testing.T) {
	q := newJobQueue()

	var got []int
	for i := 0; i < 5; i++ {
		n := i
		err := q.send(message{kind: messageJob, job: JobFunc(func() { got = append(got, n) })})
		require.NoError(t, err)
	}
	assert.Equal(t, 5, q.len())

	// single consumer observes FIFO order
	for i := 0; i < 5; i++ {
		msg, ok := q.receive()
		require.True(t, ok)
		require.Equal(t, messageJob, msg.kind)
		msg.job.Run()
	}
	assert.Equal(t, []int{0, 1, 2, 3, 4}, got)
	assert.Equal(t, 0, q.len())
}

func TestJobQueue_SendAfterClose(t *testing.T) {
	q := newJobQueue()
	q.close()

	err := q.send(message{kind: messageJob, job: JobFunc(func() {})})
	assert.ErrorIs(t, err, ErrQueueClosed)
}

func TestJobQueue_CloseIdempotent(t *testing.T) {
	q := newJobQueue()
	q.close()
	q.close()

	_, ok := q.receive()
	assert.False(t, ok)
}

func TestJobQueue_DrainsPendingAfterClose(t *testing.T) {
	q := newJobQueue()

	require.NoError(t, q.send(message{kind: messageJob, job: JobFunc(func() {})}))
	require.NoError(t, q.send(message{kind: messageTerminate}))
	q.close()

	// pending messages survive closure, in order
	msg, ok := q.receive()
	require.True(t, ok)
	assert.Equal(t, messageJob, msg.kind)

	msg, ok = q.receive()
	require.True(t, ok)
	assert.Equal(t, messageTerminate, msg.kind)

	// drained and closed: disconnect
	_, ok = q.receive()
	assert.False(t, ok)
}

func TestJobQueue_ReceiveBlocksUntilSend(t *testing.T) {
	q := newJobQueue()

	received := make(chan message, 1)
	go func() {
		msg, ok := q.receive()
		if ok {
			received <- msg
		}
	}()

	require.NoError(t, q.send(message{kind: messageJob, job: JobFunc(func() {})}))

	msg := <-received
	assert.Equal(t, messageJob, msg.kind)
}

func TestJobQueue_ReceiveUnblocksOnClose(t *testing.T) {
	q := newJobQueue()

	done := make(chan bool, 3)
	for i := 0; i < 3; i++ {
		go func() {
			_, ok := q.receive()
			done <- ok
		}()
	}

	q.close()

	// every parked receiver wakes and observes the disconnect
	for i := 0; i < 3; i++ {
		assert.False(t, <-done)
	}
}

func TestJobQueue_ExactlyOnceDelivery(t *testing.T) {
	const (
		producers = 4
		consumers = 3
		perProd   = 100
	)

	q := newJobQueue()

	var mu sync.Mutex
	counts := make(map[int]int)

	var consumerWG sync.WaitGroup
	for c := 0; c < consumers; c++ {
		consumerWG.Add(1)
		go func() {
			defer consumerWG.Done()
			for {
				msg, ok := q.receive()
				if !ok {
					return
				}
				msg.job.Run()
			}
		}()
	}

	var producerWG sync.WaitGroup
	for p := 0; p < producers; p++ {
		producerWG.Add(1)
		go func(p int) {
			defer producerWG.Done()
			for i := 0; i < perProd; i++ {
				id := p*perProd + i
				err := q.send(message{kind: messageJob, job: JobFunc(func() {
					mu.Lock()
					counts[id]++
					mu.Unlock()
				})})
				assert.NoError(t, err)
			}
		}(p)
	}

	producerWG.Wait()
	q.close()
	consumerWG.Wait()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, counts, producers*perProd)
	for id, n := range counts {
		assert.Equal(t, 1, n, "message %d delivered %d times", id, n)
	}
}
