package buffer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolAcquireReleaseRoundTrip(t *testing.T) {
	p := New(2, "test")

	b1, err := p.Acquire()
	require.NoError(t, err)
	b2, err := p.Acquire()
	require.NoError(t, err)

	_, err = p.Acquire()
	assert.ErrorIs(t, err, ErrPoolExhausted)

	p.Release(b1)
	b3, err := p.Acquire()
	require.NoError(t, err)
	assert.Same(t, b1, b3)

	p.Release(b2)
	p.Release(b3)
}

func TestPoolAcquireIsZeroed(t *testing.T) {
	p := New(1, "test")
	b, err := p.Acquire()
	require.NoError(t, err)
	require.NoError(t, b.Append([]byte{1, 2, 3}))
	p.Release(b)

	b2, err := p.Acquire()
	require.NoError(t, err)
	assert.Equal(t, 0, b2.Len())
}

func TestPoolAcquireBlockingWaitsForRelease(t *testing.T) {
	p := New(1, "test")
	b1, err := p.Acquire()
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		b2, err := p.AcquireBlocking(ctx)
		assert.NoError(t, err)
		assert.NotNil(t, b2)
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	p.Release(b1)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("AcquireBlocking did not unblock after release")
	}
}

func TestPoolReleaseOfForeignBufferIsNoop(t *testing.T) {
	p1 := New(1, "p1")
	p2 := New(1, "p2")

	b, err := p1.Acquire()
	require.NoError(t, err)
	_, err = p2.Acquire() // take p2's only buffer so its free list is empty
	require.NoError(t, err)

	p2.Release(b) // should warn, not panic, and not affect p2's free list
	_, err = p2.Acquire()
	assert.ErrorIs(t, err, ErrPoolExhausted)
}
