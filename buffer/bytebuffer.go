// Copyright 2019-2021 hhorai. All rights reserved.
// Use of this source code is governed by a MIT license that can be found
// in the LICENSE file.

// Package buffer implements the fixed-capacity byte container and pool
// shared by the PER codec and the RLC UM entity, grounded on srsRAN's
// byte_buffer_t / byte_buffer_pool (lib/include/srslte/common/byte_buffer.h).
package buffer

import (
	"errors"
	"time"
)

// Capacity is the size of the backing array of every buffer the pool hands
// out. It must exceed the largest LTE transport block (12,756 bytes).
const Capacity = 16384

// DefaultHeadroom is the number of bytes reserved at the front of a fresh
// buffer for lower-layer headers (RLC/MAC/PHY), mirroring
// SRSLTE_BUFFER_HEADER_OFFSET.
const DefaultHeadroom = 1024

var (
	// ErrOverflow is returned when append/prepend would write past the
	// backing array; it is the buffer-level EncodeFail of spec.md §7.
	ErrOverflow = errors.New("buffer: overflow")
)

// Metadata is auxiliary information carried alongside a buffer's payload.
// It mirrors byte_buffer_t::buffer_metadata_t and buffer_latency_calc.
type Metadata struct {
	ArrivalTime time.Time
	PDCPSN      uint32
}

// ByteBuffer is a fixed-capacity container with headroom for prepended
// headers, a payload length, and buffer metadata. The zero value is not
// usable; obtain one from a Pool.
type ByteBuffer struct {
	backing [Capacity]byte
	head    int // offset of payload start within backing
	n       int // payload length
	md      Metadata

	pool *Pool // weak back-reference for Release
}

func newByteBuffer() *ByteBuffer {
	b := &ByteBuffer{}
	b.reset()
	return b
}

func (b *ByteBuffer) reset() {
	b.head = DefaultHeadroom
	b.n = 0
	b.md = Metadata{}
}

// Clear empties the payload without touching headroom already consumed by
// PrependReserve; use Reset to restore full default headroom.
func (b *ByteBuffer) Clear() { b.n = 0 }

// Reset restores the buffer to its just-acquired state: full headroom, zero
// length, zero metadata. Equivalent to byte_buffer_t::clear().
func (b *ByteBuffer) Reset() { b.reset() }

// Len returns the current payload length.
func (b *ByteBuffer) Len() int { return b.n }

// Capacity returns the size of the backing array.
func (b *ByteBuffer) Capacity() int { return len(b.backing) }

// Headroom returns the number of unused bytes before the payload.
func (b *ByteBuffer) Headroom() int { return b.head }

// Tailroom returns the number of unused bytes after the payload.
func (b *ByteBuffer) Tailroom() int { return len(b.backing) - b.head - b.n }

// Bytes returns the payload as a slice aliasing the buffer's backing array.
// The slice is only valid until the next mutating call.
func (b *ByteBuffer) Bytes() []byte { return b.backing[b.head : b.head+b.n] }

// Append copies p onto the end of the payload. It fails rather than
// overflow the backing array.
func (b *ByteBuffer) Append(p []byte) error {
	if len(p) > b.Tailroom() {
		return ErrOverflow
	}
	copy(b.backing[b.head+b.n:], p)
	b.n += len(p)
	return nil
}

// PrependReserve reduces headroom by n bytes, extending the payload start
// leftward, and returns a slice of those n bytes for the caller to fill
// (e.g. a PDU header). It fails rather than underflow the headroom.
func (b *ByteBuffer) PrependReserve(n int) ([]byte, error) {
	if n > b.head {
		return nil, ErrOverflow
	}
	b.head -= n
	b.n += n
	return b.backing[b.head : b.head+n], nil
}

// SkipHead advances the payload start by n bytes without touching the
// backing data (used when stripping a header or dropping a lost segment
// prefix per spec.md §4.3.4).
func (b *ByteBuffer) SkipHead(n int) error {
	if n > b.n {
		return ErrOverflow
	}
	b.head += n
	b.n -= n
	return nil
}

// Metadata returns a copy of the buffer's metadata.
func (b *ByteBuffer) Metadata() Metadata { return b.md }

// SetMetadata replaces the buffer's metadata.
func (b *ByteBuffer) SetMetadata(md Metadata) { b.md = md }

// SetTimestamp stamps the buffer with the current time, mirroring
// byte_buffer_t::set_timestamp() used to measure stack latency.
func (b *ByteBuffer) SetTimestamp() { b.md.ArrivalTime = time.Now() }

// Timestamp returns the last timestamp set on this buffer.
func (b *ByteBuffer) Timestamp() time.Time { return b.md.ArrivalTime }

// Latency returns the time elapsed since SetTimestamp was last called.
func (b *ByteBuffer) Latency() time.Duration {
	if b.md.ArrivalTime.IsZero() {
		return 0
	}
	return time.Since(b.md.ArrivalTime)
}
