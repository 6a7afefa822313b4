// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 DisreputableCode

package trader

import (
	"sync"
	"sync/atomic"

	"github.com/DisreputableCode/poketool/pkg/gbtrade"
)

// OpponentMon is one entry of the opponent's party summary.
type OpponentMon struct {
	Species  uint8  `json:"species"`
	Level    uint8  `json:"level"`
	Nickname string `json:"nickname"`
}

// Opponent is the party summary captured after the data exchange.
type Opponent struct {
	Gen  gbtrade.Generation
	Mons []OpponentMon
}

// Context is the state shared between the protocol loop and the control
// plane. Each field has one writer side: the protocol loop owns the FSM
// fields (connection state, trade state, generation, selection, opponent
// summary); the control plane owns the command fields (offer slot, auto
// confirm, the two request flags, trade mode). All word-sized fields are
// atomics; the multi-word opponent summary is swapped under a mutex
// because torn multi-word reads are a race in Go, not merely a stale
// value.
type Context struct {
	connState atomic.Int32
	tcState   atomic.Int32
	gen       atomic.Int32
	selection atomic.Int32 // Game Boy's selected party index, -1 = none

	offerSlot        atomic.Int32
	autoConfirm      atomic.Bool
	confirmRequested atomic.Bool
	declineRequested atomic.Bool
	tradeMode        atomic.Int32

	oppMu    sync.RWMutex
	opponent Opponent
}

func NewContext() *Context {
	c := &Context{}
	c.selection.Store(-1)
	c.autoConfirm.Store(true)
	return c
}

// Protocol-loop writers.

func (c *Context) setStates(conn ConnState, tc TCState, gen gbtrade.Generation) {
	c.connState.Store(int32(conn))
	c.tcState.Store(int32(tc))
	c.gen.Store(int32(gen))
}

func (c *Context) setSelection(i int) { c.selection.Store(int32(i)) }

func (c *Context) setOpponent(o Opponent) {
	c.oppMu.Lock()
	c.opponent = o
	c.oppMu.Unlock()
}

// Control-plane writers.

// SetOfferSlot selects which of our party positions is offered.
func (c *Context) SetOfferSlot(slot int) {
	if slot >= 0 && slot < gbtrade.PartyLength {
		c.offerSlot.Store(int32(slot))
	}
}

// SetAutoConfirm toggles automatic confirmation of trades.
func (c *Context) SetAutoConfirm(on bool) { c.autoConfirm.Store(on) }

// RequestConfirm arms a one-shot confirm; consumed at the next
// confirmation byte.
func (c *Context) RequestConfirm() {
	c.confirmRequested.Store(true)
	c.declineRequested.Store(false)
}

// RequestDecline arms a one-shot decline.
func (c *Context) RequestDecline() {
	c.declineRequested.Store(true)
	c.confirmRequested.Store(false)
}

// SetTradeMode switches between clone and storage offer assembly.
func (c *Context) SetTradeMode(mode gbtrade.TradeMode) { c.tradeMode.Store(int32(mode)) }

// Readers.

func (c *Context) ConnState() ConnState            { return ConnState(c.connState.Load()) }
func (c *Context) TCState() TCState                { return TCState(c.tcState.Load()) }
func (c *Context) Generation() gbtrade.Generation  { return gbtrade.Generation(c.gen.Load()) }
func (c *Context) Selection() int                  { return int(c.selection.Load()) }
func (c *Context) OfferSlot() int                  { return int(c.offerSlot.Load()) }
func (c *Context) AutoConfirm() bool               { return c.autoConfirm.Load() }
func (c *Context) TradeMode() gbtrade.TradeMode    { return gbtrade.TradeMode(c.tradeMode.Load()) }

func (c *Context) Opponent() Opponent {
	c.oppMu.RLock()
	defer c.oppMu.RUnlock()

	o := Opponent{Gen: c.opponent.Gen, Mons: make([]OpponentMon, len(c.opponent.Mons))}
	copy(o.Mons, c.opponent.Mons)
	return o
}

// consumeConfirm atomically takes a pending confirm request.
func (c *Context) consumeConfirm() bool { return c.confirmRequested.Swap(false) }

// consumeDecline atomically takes a pending decline request.
func (c *Context) consumeDecline() bool { return c.declineRequested.Swap(false) }

// Status is a read-only snapshot for the control plane.
type Status struct {
	Mode          string `json:"mode"`
	Conn          string `json:"conn"`
	TC            string `json:"tc"`
	Gen           string `json:"gen"`
	Selection     int    `json:"tradePokemon"`
	OfferSlot     int    `json:"offerSlot"`
	AutoConfirm   bool   `json:"autoConfirm"`
	OpponentCount int    `json:"opponentCount"`
}

// Snapshot captures the current status.
func (c *Context) Snapshot() Status {
	c.oppMu.RLock()
	oppCount := len(c.opponent.Mons)
	c.oppMu.RUnlock()

	return Status{
		Mode:          c.TradeMode().String(),
		Conn:          c.ConnState().String(),
		TC:            c.TCState().String(),
		Gen:           c.Generation().String(),
		Selection:     c.Selection(),
		OfferSlot:     c.OfferSlot(),
		AutoConfirm:   c.AutoConfirm(),
		OpponentCount: oppCount,
	}
}
