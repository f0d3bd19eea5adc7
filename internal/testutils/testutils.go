// Package testutils provides simplified testing utilities and helper functions
package testutils

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// Counter is a mutex-guarded counter for use inside submitted jobs. Jobs own
// their captured state's synchronization, so tests mirror that contract.
type Counter struct {
	mu sync.Mutex
	n  int
}

// Inc increments the counter by one
func (c *Counter) Inc() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.n++
}

// Value returns the current count
func (c *Counter) Value() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}

// Flag is a mutex-guarded boolean flag settable from a job.
type Flag struct {
	mu  sync.Mutex
	set bool
}

// Set raises the flag
func (f *Flag) Set() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.set = true
}

// IsSet reports whether the flag has been raised
func (f *Flag) IsSet() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.set
}

// Eventually polls cond until it returns true or the timeout elapses,
// failing the test on timeout.
func Eventually(t *testing.T, cond func() bool, timeout time.Duration, msg string) {
	t.Helper()
	assert.Eventually(t, cond, timeout, 5*time.Millisecond, msg)
}

// WaitTimeout waits for wg with a deadline, reporting whether it completed.
func WaitTimeout(wg *sync.WaitGroup, timeout time.Duration) bool {
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return true
	case <-time.After(timeout):
		return false
	}
}
