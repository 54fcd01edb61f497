package rlc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimerStartRunningThenExpires(t *testing.T) {
	clock := newFakeClock()
	timer := NewTimer(10 * time.Millisecond)
	timer.now = clock.now

	assert.False(t, timer.IsRunning())
	timer.Start()
	assert.True(t, timer.IsRunning())
	assert.False(t, timer.IsExpired())

	clock.advance(11 * time.Millisecond)
	assert.False(t, timer.IsRunning())
	assert.True(t, timer.IsExpired())
}

func TestTimerStopClearsRunning(t *testing.T) {
	clock := newFakeClock()
	timer := NewTimer(10 * time.Millisecond)
	timer.now = clock.now

	timer.Start()
	timer.Stop()
	assert.False(t, timer.IsRunning())
	assert.False(t, timer.IsExpired())
}

func TestTimerResetExtendsDeadline(t *testing.T) {
	clock := newFakeClock()
	timer := NewTimer(10 * time.Millisecond)
	timer.now = clock.now

	timer.Start()
	clock.advance(8 * time.Millisecond)
	timer.Reset()
	clock.advance(8 * time.Millisecond)
	assert.True(t, timer.IsRunning(), "reset should have pushed the deadline out")
}
