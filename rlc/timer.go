// Copyright 2024 hhorai. All rights reserved.
// Use of this source code is governed by a MIT license that can be found
// in the LICENSE file.

package rlc

import "time"

// Timer is the reordering timer (t-Reordering, 36.322 §7.3). It is
// driven by wall-clock time in production but accepts an injected clock
// so tests can advance it deterministically, the same role the original
// implementation's mac_dummy_timers test double plays for the C++ MAC
// timer service.
type Timer struct {
	duration time.Duration
	now      func() time.Time
	deadline time.Time
	running  bool
}

// NewTimer creates a stopped Timer with the given duration, using the
// real wall clock.
func NewTimer(d time.Duration) *Timer {
	return &Timer{duration: d, now: time.Now}
}

// Start arms the timer, replacing any previous deadline.
func (t *Timer) Start() {
	t.deadline = t.now().Add(t.duration)
	t.running = true
}

// Stop disarms the timer.
func (t *Timer) Stop() {
	t.running = false
}

// Reset restarts the timer from now with its configured duration.
func (t *Timer) Reset() {
	t.Start()
}

// IsRunning reports whether the timer is armed and has not yet expired.
func (t *Timer) IsRunning() bool {
	return t.running && t.now().Before(t.deadline)
}

// IsExpired reports whether the timer was armed and its deadline has
// passed; it stays true (and running stays true) until Stop or Start is
// called, mirroring the one-shot semantics of the MAC timer callback.
func (t *Timer) IsExpired() bool {
	return t.running && !t.now().Before(t.deadline)
}
