package rlc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRxDuplicateSNIsSilentlyDropped(t *testing.T) {
	sink := &collectingSink{}
	rx := newRxState(Config{SNWidth: SNWidth10}, sink)

	rx.Handle(&Header{SN: 0}, []byte{1})
	rx.Handle(&Header{SN: 0}, []byte{0xFF, 0xFF}) // different payload, same SN

	assert.Equal(t, 1, rx.Discarded())
	assert.Equal(t, [][]byte{{1}}, sink.sdus)
}

func TestRxOutOfWindowSNIsDiscarded(t *testing.T) {
	sink := &collectingSink{}
	rx := newRxState(Config{SNWidth: SNWidth5}, sink)

	// window size for 5-bit SN is 16; far out of range of VR(UR)=0.
	rx.Handle(&Header{SN: 20}, []byte{1})

	assert.Equal(t, 1, rx.Discarded())
	assert.Empty(t, sink.sdus)
}

func TestRxDropsOrphanLeadingSegmentOfLostPDU(t *testing.T) {
	sink := &collectingSink{}
	rx := newRxState(Config{SNWidth: SNWidth10}, sink)

	// No SN0 ever arrives (lost). SN1 carries the tail of A's SDU (LI
	// boundary at 2) followed by a fresh SDU B, with FI saying its first
	// segment is not start-aligned.
	rx.deliverSegments(&Header{FI: fiNotStart, LI: []uint16{2}}, []byte{0xAA, 0xAA, 9, 9})

	assert.Equal(t, 1, rx.Discarded(), "the orphan tail segment is dropped, not merged into a fresh SDU")
	assert.Equal(t, [][]byte{{9, 9}}, sink.sdus)
}

func TestRxInsideReceivingWindow(t *testing.T) {
	rx := newRxState(Config{SNWidth: SNWidth5}, &collectingSink{})
	assert.True(t, rx.insideReceivingWindow(0))
	assert.True(t, rx.insideReceivingWindow(15))
	assert.False(t, rx.insideReceivingWindow(16))
}
