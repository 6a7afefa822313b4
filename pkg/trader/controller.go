// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 DisreputableCode

package trader

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/DisreputableCode/poketool/pkg/gblink"
	"github.com/DisreputableCode/poketool/pkg/led"
)

// Controller runs the single-threaded protocol loop: one bounded byte
// exchange per cycle, then one FSM step. The controller owns the single
// mutable out-byte register.
type Controller struct {
	session *Session
	link    gblink.Exchanger

	idleTimeout time.Duration
	byteDelay   time.Duration
}

func NewController(session *Session, link gblink.Exchanger) *Controller {
	return &Controller{
		session:     session,
		link:        link,
		idleTimeout: gblink.IdleTimeout,
		byteDelay:   gblink.ByteDelay,
	}
}

// Run pumps the link until ctx is cancelled. A run of edge timeouts with
// the clock idle for the idle window ends the session: any completed
// trade is committed, then the connection resets to await a new master
// probe.
func (c *Controller) Run(ctx context.Context) error {
	var out byte

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		in, err := c.link.Transfer(out)
		if err != nil {
			if !errors.Is(err, gblink.ErrTimeout) {
				log.Printf("[link] transfer: %v", err)
				c.session.setIndicator(led.VeryFastBlink)
				return err
			}

			if c.link.IsIdle(c.idleTimeout) {
				c.session.Commit()
				if c.session.connState != NotConnected {
					c.session.Reset()
					out = 0x00
				}
			}
			continue
		}

		out = c.session.HandleByte(in)

		// Stability margin between bytes; not a protocol requirement.
		time.Sleep(c.byteDelay)
	}
}
