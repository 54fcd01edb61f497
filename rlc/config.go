// Copyright 2024 hhorai. All rights reserved.
// Use of this source code is governed by a MIT license that can be found
// in the LICENSE file.

// Package rlc implements the 3GPP TS 36.322 Unacknowledged Mode (UM) RLC
// entity: SDU segmentation and reassembly, the TX and RX state machines,
// and the UMD PDU header codec. The teacher repo carries no RLC code at
// all — this package is grounded directly on the original C++
// implementation (original_source/lib/{include,src}/upper/rlc_um.{h,cc}
// and its test double in lib/test/upper/rlc_um_test.cc), translated into
// the teacher's Go idiom: plain structs instead of nested C++ classes,
// explicit error returns instead of asserts, and a single
// coarse-grained sync.Mutex per entity rather than the original's
// implicit single-threaded MAC callback model.
package rlc

import "time"

// SNWidth is the sequence-number field width of a UM bearer: 5 bits for
// most DRBs, 10 bits when configured for higher-throughput bearers.
type SNWidth int

const (
	SNWidth5  SNWidth = 5
	SNWidth10 SNWidth = 10
)

// Modulus returns the SN arithmetic modulus for this width (2^width).
func (w SNWidth) Modulus() uint16 {
	if w == SNWidth10 {
		return 1024
	}
	return 32
}

// WindowSize returns UM_Window_Size, half the modulus, per 36.322 §7.2.
func (w SNWidth) WindowSize() uint16 {
	return w.Modulus() / 2
}

// Config holds the per-entity parameters that are normally supplied by
// RRC at bearer establishment.
type Config struct {
	SNWidth           SNWidth
	ReorderingTimeout time.Duration // t-Reordering
	MaxPDUSize        int           // largest PDU expected; BufferSDU rejects SDUs that cannot fit one PDU of this size
	MaxQueuedSDUBytes int           // TX SDU queue backpressure bound; 0 means unbounded
}

// DefaultConfig returns a Config matching a typical LTE DRB: 10-bit SN,
// 45ms reordering timer, 1500-byte PDUs, a 256KB TX queue.
func DefaultConfig() Config {
	return Config{
		MaxQueuedSDUBytes: 256 * 1024,
		SNWidth:           SNWidth10,
		ReorderingTimeout: 45 * time.Millisecond,
		MaxPDUSize:        1500,
	}
}
