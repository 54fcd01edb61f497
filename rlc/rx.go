// Copyright 2024 hhorai. All rights reserved.
// Use of this source code is governed by a MIT license that can be found
// in the LICENSE file.

package rlc

// SDUSink receives SDUs reassembled by the RX side, the Go analogue of
// the original's pdcp_interface_rlc::write_pdu callback.
type SDUSink interface {
	DeliverSDU(sdu []byte)
}

type rxPDU struct {
	header  Header
	payload []byte
}

// rxState is the UM receiving side: the reception buffer keyed by SN,
// the VR(UR)/VR(UX)/VR(UH) state variables, and the reassembly
// continuation buffer, translated from handle_data_pdu,
// reassemble_rx_sdus and inside_reordering_window in the original
// rlc_um.cc.
type rxState struct {
	cfg    Config
	sink   SDUSink
	window map[uint16]rxPDU
	vrUR   uint16
	vrUX   uint16
	vrUH   uint16
	timer  *Timer

	reassembly     []byte
	haveReassembly bool

	discarded int // PDUs or orphan segments dropped as duplicates, out-of-window arrivals, or pdu_lost tails, for diagnostics
}

// Discarded returns the count of PDUs dropped as duplicates or
// out-of-window arrivals, plus orphaned leading segments dropped during
// reassembly.
func (r *rxState) Discarded() int { return r.discarded }

func newRxState(cfg Config, sink SDUSink) *rxState {
	return &rxState{
		cfg:    cfg,
		sink:   sink,
		window: make(map[uint16]rxPDU),
		timer:  NewTimer(cfg.ReorderingTimeout),
	}
}

func (r *rxState) mod() uint16 { return r.cfg.SNWidth.Modulus() }

// distance returns the forward modular distance from a to b, i.e. how
// many increments of a (mod m) reach b.
func distance(a, b, mod uint16) uint16 {
	return (b - a + mod) % mod
}

// insideReceivingWindow reports whether sn falls within
// [VR(UR), VR(UR)+UM_Window_Size) mod the SN space, the UM equivalent of
// inside_reordering_window in the original.
func (r *rxState) insideReceivingWindow(sn uint16) bool {
	return distance(r.vrUR, sn, r.mod()) < r.cfg.SNWidth.WindowSize()
}

// Handle processes one received UMD PDU.
func (r *rxState) Handle(h *Header, payload []byte) {
	sn := h.SN
	if _, dup := r.window[sn]; dup {
		// Any SN already present in the window is treated as a silent
		// duplicate; payload bytes are never compared.
		r.discarded++
		return
	}
	if !r.insideReceivingWindow(sn) {
		r.discarded++
		return
	}

	r.window[sn] = rxPDU{header: *h, payload: payload}

	mod := r.mod()
	if distance(r.vrUR, sn, mod) >= distance(r.vrUR, r.vrUH, mod) {
		r.vrUH = (sn + 1) % mod
	}

	if r.timer.IsRunning() {
		vux := distance(r.vrUR, r.vrUX, mod)
		if vux <= 0 || vux > r.cfg.SNWidth.WindowSize() || r.vrUX == r.vrUH {
			r.timer.Stop()
		}
	}

	if !r.timer.IsRunning() {
		r.reassembleFromWindow()
		if r.vrUH != r.vrUR {
			r.vrUX = r.vrUH
			r.timer.Start()
		}
	}
}

// reassembleFromWindow delivers every contiguous PDU starting at
// VR(UR), advancing VR(UR) past each one it consumes.
func (r *rxState) reassembleFromWindow() {
	for {
		entry, ok := r.window[r.vrUR]
		if !ok {
			break
		}
		r.deliverSegments(&entry.header, entry.payload)
		delete(r.window, r.vrUR)
		r.vrUR = (r.vrUR + 1) % r.mod()
	}
}

// TimerExpired is invoked once the reordering timer fires. It gives up
// on the PDU(s) that were never received between VR(UR) and VR(UX),
// discarding any reassembly in progress that depended on them, then
// resumes delivery from VR(UX) onward.
func (r *rxState) TimerExpired() {
	mod := r.mod()
	for sn := r.vrUR; sn != r.vrUX; sn = (sn + 1) % mod {
		if entry, ok := r.window[sn]; ok {
			r.deliverSegments(&entry.header, entry.payload)
			delete(r.window, sn)
			continue
		}
		// A missing PDU breaks any SDU segment straddling it.
		r.reassembly = nil
		r.haveReassembly = false
	}
	r.vrUR = r.vrUX
	r.timer.Stop()
	r.reassembleFromWindow()
	if r.vrUH != r.vrUR {
		r.vrUX = r.vrUH
		r.timer.Start()
	}
}

// deliverSegments splits payload by the header's LIs and feeds each
// segment into the in-flight reassembly buffer, delivering completed
// SDUs to the sink as soon as their end boundary is seen.
//
// A PDU's leading segment can be the continuation of an SDU started in
// an earlier PDU (FI says "not start aligned"). If the reassembly
// accumulator is empty at that point, the PDU(s) that carried the start
// of that SDU never arrived — it is pdu_lost territory (36.322
// §4.3.4/handle_data_pdu): the orphan tail cannot be completed into
// anything, so it is dropped rather than mistaken for the start of a
// new SDU.
func (r *rxState) deliverSegments(h *Header, payload []byte) {
	segments := h.SplitByLI(payload)
	for i, seg := range segments {
		first := i == 0
		last := i == len(segments)-1
		startsHere := !first || h.FI.startsSDU()
		endsHere := !last || h.FI.endsSDU()

		if first && !startsHere && !r.haveReassembly {
			r.discarded++
			continue
		}

		if startsHere {
			r.reassembly = append([]byte(nil), seg...)
			r.haveReassembly = true
		} else {
			r.reassembly = append(r.reassembly, seg...)
		}

		if endsHere {
			r.sink.DeliverSDU(r.reassembly)
			r.reassembly = nil
			r.haveReassembly = false
		}
	}
}
