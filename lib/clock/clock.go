// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import "time"

// Clock abstracts the time operations used by this module.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// NewTimer returns a Timer that delivers the fire time on C once d
	// has elapsed. If d <= 0 the timer fires immediately.
	NewTimer(d time.Duration) *Timer

	// After is shorthand for NewTimer(d).C when the caller never needs
	// to stop the timer.
	After(d time.Duration) <-chan time.Time
}

// Timer is a one-shot timer. Read the fire time from C; call Stop to
// release it early.
type Timer struct {
	// C receives the fire time. Buffered with capacity 1.
	C <-chan time.Time

	stopFunc func() bool
}

// Stop prevents the Timer from firing. Returns true if the call stopped
// the timer, false if it had already fired or been stopped.
func (t *Timer) Stop() bool { return t.stopFunc() }
