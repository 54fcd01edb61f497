// Copyright 2024 hhorai. All rights reserved.
// Use of this source code is governed by a MIT license that can be found
// in the LICENSE file.

package rlc

import "errors"

var (
	// ErrNoData is returned by Entity.ReadPDU when the TX SDU queue is
	// empty; it is an expected, non-fatal condition for the MAC poll loop.
	ErrNoData = errors.New("rlc: no data to send")

	// ErrSDUTooLarge is returned by Entity.BufferSDU when an SDU cannot
	// ever fit a PDU under the configured MaxPDUSize.
	ErrSDUTooLarge = errors.New("rlc: sdu larger than configured max pdu size")

	// ErrMalformedHeader is returned by header decode on an impossible
	// bit pattern (an extension part that ends before its last Length
	// Indicator). A Length Indicator that overruns the Data field is not
	// an error; Header.SplitByLI drops the overrun instead.
	ErrMalformedHeader = errors.New("rlc: malformed pdu header")

	// ErrShortPDU is returned when a received PDU is too short to even
	// hold its fixed header.
	ErrShortPDU = errors.New("rlc: pdu shorter than fixed header")

	// ErrQueueFull is returned by BufferSDU when the TX SDU queue's
	// configured backpressure bound would be exceeded.
	ErrQueueFull = errors.New("rlc: tx sdu queue full")
)
