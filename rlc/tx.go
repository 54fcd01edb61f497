// Copyright 2024 hhorai. All rights reserved.
// Use of this source code is governed by a MIT license that can be found
// in the LICENSE file.

package rlc

// pendingSDU is an SDU queued for transmission, possibly already
// partially segmented into an earlier PDU.
type pendingSDU struct {
	data     []byte
	consumed int
}

func (p *pendingSDU) remaining() []byte { return p.data[p.consumed:] }
func (p *pendingSDU) done() bool        { return p.consumed >= len(p.data) }

// txState is the UM transmitting side: an SDU queue and VT(US), the next
// sequence number to assign, translated from build_data_pdu in the
// original rlc_um.cc.
type txState struct {
	cfg   Config
	queue []*pendingSDU
	vtUS  uint16
}

func newTxState(cfg Config) *txState {
	return &txState{cfg: cfg}
}

// Enqueue appends a fresh SDU to the TX queue. The caller retains
// ownership of data; a private copy is taken. It returns ErrQueueFull,
// without modifying the queue, if cfg.MaxQueuedSDUBytes is set and
// would be exceeded — the non-blocking half of the backpressure policy
// the original calls out for write_sdu; this repo does not offer the
// original's blocking variant (see DESIGN.md).
func (t *txState) Enqueue(sdu []byte) error {
	if t.cfg.MaxQueuedSDUBytes > 0 && t.BufferState()+len(sdu) > t.cfg.MaxQueuedSDUBytes {
		return ErrQueueFull
	}
	cp := make([]byte, len(sdu))
	copy(cp, sdu)
	t.queue = append(t.queue, &pendingSDU{data: cp})
	return nil
}

// BufferState is the byte count the MAC scheduler uses to decide how
// large a grant to offer this bearer: the queued SDU bytes themselves,
// plus a fixed header estimate (2 bytes for a 5-bit SN, 3 for a 10-bit
// SN) present only if anything is queued, and an estimate of 1.5 bytes
// per inter-SDU Length Indicator that shipping the whole queue in one
// PDU would need. The real 10-bit-SN fixed header (header.go) packs
// into exactly 2 octets, one byte less than this estimate budgets; this
// is a scheduler-facing upper bound, not the packed header size, and
// erring high here only ever costs a slightly larger MAC grant than
// strictly necessary, never an under-grant.
func (t *txState) BufferState() int {
	n := 0
	nSDUs := 0
	for _, p := range t.queue {
		rem := len(p.remaining())
		if rem == 0 {
			continue
		}
		n += rem
		nSDUs++
	}
	if nSDUs == 0 {
		return 0
	}
	fixedHeader := 2
	if t.cfg.SNWidth == SNWidth10 {
		fixedHeader = 3
	}
	n += fixedHeader
	if nSDUs > 1 {
		n += (3*(nSDUs-1) + 1) / 2 // ceil((n_sdus-1)*1.5)
	}
	return n
}

// BuildPDU segments the SDU queue into a single PDU whose Data field and
// Length Indicator extension part together take at most maxPayload bytes.
// It assigns the PDU SN = VT(US), advances VT(US), and returns the header
// (FI, SN and LI list) and the concatenated Data field. It returns
// ok=false when the queue is empty or maxPayload is not positive.
func (t *txState) BuildPDU(maxPayload int) (h *Header, payload []byte, ok bool) {
	if len(t.queue) == 0 || maxPayload <= 0 {
		return nil, nil, false
	}

	startsAtBoundary := t.queue[0].consumed == 0
	var chunkLens []int
	completedLast := false

	for len(t.queue) > 0 {
		front := t.queue[0]
		rem := front.remaining()
		// Starting another segment after len(chunkLens) completed ones
		// needs that many LIs: ceil(1.5 bytes) each, E(1)+LI(11) packed.
		space := maxPayload - len(payload) - (3*len(chunkLens)+1)/2
		if space <= 0 {
			break
		}
		if len(rem) <= space {
			payload = append(payload, rem...)
			front.consumed = len(front.data)
			chunkLens = append(chunkLens, len(rem))
			completedLast = true
			t.queue = t.queue[1:]
			continue
		}
		payload = append(payload, rem[:space]...)
		front.consumed += space
		completedLast = false
		break
	}

	fi := FramingInfo(0)
	if !startsAtBoundary {
		fi |= fiNotStart
	}
	if !completedLast {
		fi |= fiNotEnd
	}

	var lis []uint16
	if completedLast && len(chunkLens) > 0 {
		chunkLens = chunkLens[:len(chunkLens)-1]
	}
	for _, n := range chunkLens {
		lis = append(lis, uint16(n))
	}

	sn := t.vtUS
	mod := t.cfg.SNWidth.Modulus()
	t.vtUS = (t.vtUS + 1) % mod

	return &Header{FI: fi, SN: sn, LI: lis}, payload, true
}
