package types

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealClock_Now(t *testing.T) {
	clock := NewRealClock()

	before := time.Now()
	now := clock.Now()
	after := time.Now()

	assert.False(t, now.Before(before))
	assert.False(t, now.After(after))
}

func TestRealClock_Since(t *testing.T) {
	clock := NewRealClock()
	start := clock.Now().Add(-time.Second)
	assert.GreaterOrEqual(t, clock.Since(start), time.Second)
}

func TestRealClock_Timer(t *testing.T) {
	clock := NewRealClock()

	timer := clock.NewTimer(time.Millisecond)
	select {
	case <-timer.C():
	case <-time.After(time.Second):
		t.Fatal("timer did not fire")
	}

	assert.False(t, timer.Stop()) // already fired
	assert.False(t, timer.Reset(time.Millisecond))
}

func TestClockFromContext(t *testing.T) {
	ctx := context.Background()

	// default is a real clock
	clock := ClockFromContext(ctx)
	require.NotNil(t, clock)
	assert.IsType(t, &RealClock{}, clock)

	// injected clock round-trips
	injected := NewRealClock()
	ctx = WithClock(ctx, injected)
	assert.Same(t, injected, ClockFromContext(ctx))
}
