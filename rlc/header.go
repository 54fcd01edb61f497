// Copyright 2024 hhorai. All rights reserved.
// Use of this source code is governed by a MIT license that can be found
// in the LICENSE file.

package rlc

import (
	"fmt"

	"github.com/hhorai/ranpdu/encoding/per"
)

// FramingInfo is the 2-bit FI field of a UMD PDU header (36.322 §6.2.1.3):
// bit 1 (MSB) says whether the first byte of the Data field starts a new
// SDU, bit 2 (LSB) says whether the last byte of the Data field ends one.
type FramingInfo uint8

const (
	fiNotStart FramingInfo = 0b10
	fiNotEnd   FramingInfo = 0b01
)

func (fi FramingInfo) startsSDU() bool { return fi&fiNotStart == 0 }
func (fi FramingInfo) endsSDU() bool   { return fi&fiNotEnd == 0 }

// liWidth is the bit width of each Length Indicator in the extension
// part, fixed at 11 bits by 36.322 for both SN widths.
const liWidth = 11

// Header is a decoded UMD PDU header: the fixed FI/SN part plus the
// variable-length list of Length Indicators that mark SDU boundaries
// inside the PDU's Data field. The final segment's length is never
// carried explicitly — it is whatever remains of the Data field after
// the carried LIs are subtracted, per 36.322 §6.2.1.3.
type Header struct {
	FI FramingInfo
	SN uint16
	LI []uint16
}

// Pack writes the header to w for the given SN width, bit-for-bit as
// 36.322 §6.2.1.3/Figures 6.2.1.3-1..4 lay it out, then zero-pads to the
// next byte boundary so the PDU's Data field always starts byte-aligned.
//
// The fixed part is 1 octet for a 5-bit SN (FI(2)·E(1)·SN(5), which
// already fills the octet with no reserved bits) and 2 octets for a
// 10-bit SN: 3 reserved bits, then FI(2)·E(1)·SN_hi(2) in the first
// octet and SN_lo(8) in the second. Because Writer.Pack is a plain
// MSB-first bit cursor that does not realign between fields, packing
// the 10-bit SN as one 10-bit field immediately after E splits it
// across the octet boundary into the same 2/8 halves the standard
// shows split out explicitly — no manual hi/lo bit math needed.
//
// The extension part packs each Length Indicator as an E(1)·LI(11)
// pair, one after another with no alignment in between, which is
// exactly the standard's "two LIs per three octets" interleave: the
// first LI's 11 bits span the remainder of the E bit's octet (7 bits)
// and the top nibble of the next, the second LI's E bit and top 3 bits
// fill out that nibble's octet, and its remaining 8 bits fill the
// third octet whole, after which the pattern repeats.
func (h *Header) Pack(w *per.Writer, width SNWidth) error {
	if width == SNWidth10 {
		if err := w.Pack(0, 3); err != nil { // reserved
			return err
		}
	}
	if err := w.Pack(uint64(h.FI), 2); err != nil {
		return err
	}
	hasLI := len(h.LI) > 0
	ext := uint64(0)
	if hasLI {
		ext = 1
	}
	if err := w.Pack(ext, 1); err != nil {
		return err
	}
	if err := w.Pack(uint64(h.SN), int(width)); err != nil {
		return err
	}
	for i, li := range h.LI {
		more := uint64(0)
		if i < len(h.LI)-1 {
			more = 1
		}
		if err := w.Pack(more, 1); err != nil {
			return err
		}
		if err := w.Pack(uint64(li), liWidth); err != nil {
			return err
		}
	}
	return w.AlignToByte()
}

// UnpackHeader reads a Header for the given SN width, then aligns the
// cursor to the byte boundary where the Data field begins. It is the
// exact mirror of Pack's bit layout.
func UnpackHeader(r *per.Reader, width SNWidth) (*Header, error) {
	fixedBits := 3 + int(width)
	if width == SNWidth10 {
		fixedBits += 3 // reserved
	}
	if r.Remaining() < fixedBits {
		return nil, ErrShortPDU
	}
	if width == SNWidth10 {
		if _, err := r.Unpack(3); err != nil { // reserved
			return nil, err
		}
	}
	fi, err := r.Unpack(2)
	if err != nil {
		return nil, err
	}
	ext, err := r.Unpack(1)
	if err != nil {
		return nil, err
	}
	snVal, err := r.Unpack(int(width))
	if err != nil {
		return nil, err
	}
	h := &Header{FI: FramingInfo(fi), SN: uint16(snVal)}
	if ext == 1 {
		for {
			if r.Remaining() < 1+liWidth {
				return nil, fmt.Errorf("rlc: truncated extension part: %w", ErrMalformedHeader)
			}
			more, err := r.Unpack(1)
			if err != nil {
				return nil, err
			}
			liVal, err := r.Unpack(liWidth)
			if err != nil {
				return nil, err
			}
			h.LI = append(h.LI, uint16(liVal))
			if more == 0 {
				break
			}
		}
	}
	if err := r.AlignToByte(); err != nil {
		return nil, err
	}
	return h, nil
}

// PackedBits returns the exact bit length this header would occupy
// before byte-alignment padding, used by the TX segmenter to budget the
// space left for the Data field.
func (h *Header) PackedBits(width SNWidth) int {
	bits := 2 + 1 + int(width)
	if width == SNWidth10 {
		bits += 3 // reserved
	}
	bits += len(h.LI) * (liWidth + 1)
	return bits
}

// SplitByLI slices payload into SDU segments according to the header's
// Length Indicators: one slice per LI in order, plus a final implicit
// slice holding whatever remains. If an LI overruns what is actually
// present — a malformed or truncated PDU — already-sliced segments are
// preserved and the offending remainder is simply dropped, rather than
// failing the whole PDU.
func (h *Header) SplitByLI(payload []byte) [][]byte {
	var segments [][]byte
	offset := 0
	for _, li := range h.LI {
		n := int(li)
		if offset+n > len(payload) {
			return segments
		}
		segments = append(segments, payload[offset:offset+n])
		offset += n
	}
	segments = append(segments, payload[offset:])
	return segments
}
