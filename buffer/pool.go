// Copyright 2024 hhorai. All rights reserved.
// Use of this source code is governed by a MIT license that can be found
// in the LICENSE file.

package buffer

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/xid"

	"github.com/hhorai/ranpdu/internal/rlog"
)

// ErrPoolExhausted is the non-blocking PoolExhausted error of spec.md §7.
var ErrPoolExhausted = errors.New("buffer: pool exhausted")

// Pool is a bounded, process-wide (or per-test, see New) set of
// ByteBuffers, grounded on srsRAN's byte_buffer_pool: fixed capacity,
// O(1) acquire/release, no per-operation heap activity in steady state.
// A Go channel plays the role of the source's intrusive free list guarded
// by a mutex/condvar.
type Pool struct {
	tag    string
	free   chan *ByteBuffer
	inUse  prometheus.Gauge
	exhaust prometheus.Counter
}

// New creates a pool of the given capacity (number of buffers), all
// pre-allocated up front so that acquire/release never touch the heap.
// tag is a diagnostic name used in metric labels and log lines; an empty
// tag gets a generated xid so that multiple pools in the same process
// remain distinguishable.
func New(capacity int, tag string) *Pool {
	if tag == "" {
		tag = xid.New().String()
	}
	p := &Pool{
		tag:  tag,
		free: make(chan *ByteBuffer, capacity),
		inUse: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "ranpdu",
			Subsystem:   "buffer_pool",
			Name:        "buffers_in_use",
			Help:        "Number of buffers currently checked out of the pool.",
			ConstLabels: prometheus.Labels{"pool": tag},
		}),
		exhaust: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "ranpdu",
			Subsystem:   "buffer_pool",
			Name:        "exhausted_total",
			Help:        "Number of times acquire() found the pool empty.",
			ConstLabels: prometheus.Labels{"pool": tag},
		}),
	}
	for i := 0; i < capacity; i++ {
		p.free <- newByteBuffer()
	}
	return p
}

// Tag returns the pool's diagnostic name.
func (p *Pool) Tag() string { return p.tag }

// Collectors returns the pool's prometheus collectors for registration by
// the embedding application.
func (p *Pool) Collectors() []prometheus.Collector {
	return []prometheus.Collector{p.inUse, p.exhaust}
}

// Acquire returns a zeroed-length buffer with full default headroom, or
// ErrPoolExhausted if none are free. It never blocks.
func (p *Pool) Acquire() (*ByteBuffer, error) {
	select {
	case b := <-p.free:
		b.reset()
		b.pool = p
		p.inUse.Inc()
		return b, nil
	default:
		p.exhaust.Inc()
		return nil, ErrPoolExhausted
	}
}

// AcquireBlocking waits for a release if the pool is currently exhausted.
// Used only where backpressure is the correct semantics (spec.md §4.1).
func (p *Pool) AcquireBlocking(ctx context.Context) (*ByteBuffer, error) {
	select {
	case b := <-p.free:
		b.reset()
		b.pool = p
		p.inUse.Inc()
		return b, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Release returns buf to the pool. It is a no-op (logged) if buf did not
// come from this pool. Buffers are zeroed lazily, on next Acquire.
func (p *Pool) Release(buf *ByteBuffer) {
	if buf == nil {
		return
	}
	if buf.pool != p {
		rlog.New("buffer").Warn("release of buffer not owned by this pool", "pool", p.tag)
		return
	}
	buf.pool = nil
	p.inUse.Dec()
	select {
	case p.free <- buf:
	default:
		// Capacity invariant violated (free list already full); drop rather
		// than grow the free list past the pool's configured bound. A second
		// release of the same buffer never gets here: the ownership check
		// above rejects it.
		rlog.New("buffer").Error("pool free list overflow on release, dropping buffer", "pool", p.tag)
	}
}
