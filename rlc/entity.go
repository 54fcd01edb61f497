// Copyright 2024 hhorai. All rights reserved.
// Use of this source code is governed by a MIT license that can be found
// in the LICENSE file.

package rlc

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/xid"

	"github.com/hhorai/ranpdu/internal/rlog"
	"github.com/hhorai/ranpdu/encoding/per"
)

// Entity is one UM RLC bearer: a TX state machine, an RX state machine,
// and the single mutex that the original implementation gets for free
// from its one-thread-per-MAC-callback model. Per spec.md §5 this is
// deliberately one coarse lock for the whole entity rather than
// per-field locks.
type Entity struct {
	mu      sync.Mutex
	cfg     Config
	tx      *txState
	rx      *rxState
	tag     string
	log     *log.Logger
	metrics *entityMetrics
}

// NewEntity creates a bearer with the given configuration, delivering
// reassembled SDUs to sink. tag labels the entity's log lines and
// metrics; an empty tag gets a generated diagnostic id.
func NewEntity(cfg Config, sink SDUSink, tag string) *Entity {
	if tag == "" {
		tag = xid.New().String()
	}
	metrics := newEntityMetrics(tag)
	e := &Entity{
		cfg:     cfg,
		tx:      newTxState(cfg),
		rx:      newRxState(cfg, &countingSDUSink{inner: sink, metrics: metrics}),
		tag:     tag,
		log:     rlog.New(fmt.Sprintf("rlc[%s]", tag)),
		metrics: metrics,
	}
	return e
}

// Collectors returns this entity's prometheus metrics for registration.
func (e *Entity) Collectors() []prometheus.Collector {
	return e.metrics.Collectors()
}

// BufferSDU accepts one SDU from the upper layer for eventual
// transmission.
func (e *Entity) BufferSDU(sdu []byte) error {
	if len(sdu) > e.cfg.MaxPDUSize-headerLowerBound(e.cfg.SNWidth) {
		return ErrSDUTooLarge
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.tx.Enqueue(sdu); err != nil {
		e.log.Warn("sdu dropped", "reason", err)
		return err
	}
	e.metrics.sdusTX.Inc()
	e.log.Debug("sdu buffered", "bytes", len(sdu))
	return nil
}

// headerLowerBound is the smallest possible header size (fixed part,
// no LIs), used only to reject SDUs that could never fit any PDU.
func headerLowerBound(width SNWidth) int {
	var h Header
	return (h.PackedBits(width) + 7) / 8
}

// BufferState reports how many bytes are queued for transmission (SDU
// bytes plus the header and Length Indicator estimate of
// txState.BufferState), for the MAC scheduler's buffer-status reporting.
func (e *Entity) BufferState() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tx.BufferState()
}

// ReadPDU asks the entity to build one PDU of up to maxSize bytes for
// the lower layer to transmit. It returns ErrNoData if nothing is
// queued.
func (e *Entity) ReadPDU(maxSize int) ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	h, payload, ok := e.tx.BuildPDU(maxSize - headerLowerBound(e.cfg.SNWidth))
	if !ok {
		return nil, ErrNoData
	}

	w := per.NewWriter(make([]byte, 0, maxSize))
	if err := h.Pack(w, e.cfg.SNWidth); err != nil {
		return nil, err
	}
	if err := w.PackBytes(payload); err != nil {
		return nil, err
	}

	e.metrics.pdusTX.Inc()
	e.log.Debug("pdu built", "sn", h.SN, "bytes", len(payload), "lis", len(h.LI))
	return w.Bytes(), nil
}

// WritePDU delivers one PDU received from the lower layer into the RX
// state machine. Reassembled SDUs are pushed to the sink passed to
// NewEntity as a side effect of this call.
func (e *Entity) WritePDU(pdu []byte) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	r := per.NewReader(pdu)
	h, err := UnpackHeader(r, e.cfg.SNWidth)
	if err != nil {
		e.log.Warn("dropping malformed pdu", "err", err)
		return err
	}
	payload, err := r.UnpackBytes(r.Remaining() / 8)
	if err != nil {
		return err
	}

	e.metrics.pdusRX.Inc()
	before := e.rx.Discarded()
	e.rx.Handle(h, payload)
	if e.rx.Discarded() > before {
		e.metrics.pdusDiscarded.Inc()
	}
	return nil
}

// TimerExpired must be called by the driver (MAC/scheduler loop) once
// the reordering timer it is tracking on this entity's behalf fires.
func (e *Entity) TimerExpired() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.rx.timer.IsExpired() {
		return
	}
	e.log.Debug("reordering timer expired", "vr_ur", e.rx.vrUR, "vr_ux", e.rx.vrUX)
	e.rx.TimerExpired()
}

// ReorderingTimerRunning reports whether the RX reordering timer is
// currently armed, so a driver knows whether to keep polling for
// expiry.
func (e *Entity) ReorderingTimerRunning() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rx.timer.IsRunning()
}

// countingSDUSink wraps an SDUSink to bump the delivered-SDU counter;
// Entity installs one of these in front of the caller's sink.
type countingSDUSink struct {
	inner   SDUSink
	metrics *entityMetrics
}

func (c *countingSDUSink) DeliverSDU(sdu []byte) {
	c.metrics.sdusRX.Inc()
	c.inner.DeliverSDU(sdu)
}
