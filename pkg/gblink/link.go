// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 DisreputableCode

// Package gblink exchanges bytes with a Game Boy over its link cable.
//
// The Game Boy is always the clock master; this side is purely reactive.
// Link bit-bangs the exchange over three GPIO lines behind the Pins
// capability. SerialLink and BridgeLink speak to an adapter that does the
// bit-level work in firmware, over a local serial port or a websocket
// bridge respectively.
package gblink

import (
	"errors"
	"time"
)

// Timing constants. The edge timeout is generous because transfer speed
// varies per Game Boy model and game (~8 kHz typical).
const (
	EdgeTimeout = 500 * time.Millisecond
	IdleTimeout = 1000 * time.Millisecond
	ByteDelay   = 100 * time.Microsecond
)

// ErrTimeout is returned by Transfer when no clock edge arrives within
// the per-edge timeout. The caller treats it as "no byte this cycle".
var ErrTimeout = errors.New("gblink: clock edge timeout")

// Exchanger is a full-duplex byte channel to the Game Boy. The byte sent
// on cycle N is clocked simultaneously with the byte received on cycle N,
// so callers must have the next outbound byte ready before the master
// starts clocking again.
type Exchanger interface {
	// Transfer sends one byte while receiving one, or fails with
	// ErrTimeout if the master is not clocking.
	Transfer(send byte) (byte, error)
	// WaitForActivity blocks until clock activity is seen or the timeout
	// elapses.
	WaitForActivity(timeout time.Duration) bool
	// IsIdle reports whether the link has been quiet for at least idle.
	IsIdle(idle time.Duration) bool
}

// Pins is the GPIO capability the bit-bang engine drives. Register-level
// access is platform-specific and lives outside this module; integrations
// implement these three lines with whatever low-overhead mechanism the
// host offers. Implementations must be cheap: all three are called in a
// busy-wait loop per bit.
type Pins interface {
	// Clock samples the master's clock line.
	Clock() bool
	// In samples the Game Boy's data-out line.
	In() bool
	// SetOut drives our data-out line.
	SetOut(level bool)
}

// Link bit-bangs byte exchanges over Pins. Not safe for concurrent use;
// the session controller owns it.
type Link struct {
	pins         Pins
	edgeTimeout  time.Duration
	lastActivity time.Time
	prevClock    int // -1 until first IsIdle sample
}

func NewLink(pins Pins) *Link {
	return &Link{
		pins:         pins,
		edgeTimeout:  EdgeTimeout,
		lastActivity: time.Now(),
		prevClock:    -1,
	}
}

// SetEdgeTimeout overrides the per-edge timeout. Mainly for tests.
func (l *Link) SetEdgeTimeout(d time.Duration) {
	l.edgeTimeout = d
}

// waitClock busy-polls the clock line until it reads level. No
// allocations, no logging: this is the hot path.
func (l *Link) waitClock(level bool) bool {
	deadline := time.Now().Add(l.edgeTimeout)
	for l.pins.Clock() != level {
		if time.Now().After(deadline) {
			return false
		}
	}
	return true
}

// Transfer clocks 8 bits MSB-first. Per bit: wait for the falling edge,
// drive the outbound bit while the clock is low, wait for the rising
// edge, sample the inbound bit.
func (l *Link) Transfer(send byte) (byte, error) {
	var received byte

	for bit := 7; bit >= 0; bit-- {
		if !l.waitClock(false) {
			return 0, ErrTimeout
		}

		l.pins.SetOut(send&0x80 != 0)
		send <<= 1

		if !l.waitClock(true) {
			return 0, ErrTimeout
		}

		if l.pins.In() {
			received |= 1 << bit
		}
	}

	l.lastActivity = time.Now()
	return received, nil
}

// WaitForActivity polls the clock line for any transition.
func (l *Link) WaitForActivity(timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	last := l.pins.Clock()

	for time.Now().Before(deadline) {
		cur := l.pins.Clock()
		if cur != last {
			l.lastActivity = time.Now()
			return true
		}
	}
	return false
}

// IsIdle samples the clock line, counting any transition observed outside
// a Transfer as activity.
func (l *Link) IsIdle(idle time.Duration) bool {
	cur := 0
	if l.pins.Clock() {
		cur = 1
	}
	if l.prevClock >= 0 && cur != l.prevClock {
		l.lastActivity = time.Now()
	}
	l.prevClock = cur

	return time.Since(l.lastActivity) >= idle
}
