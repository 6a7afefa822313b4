// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 DisreputableCode

package trader

import (
	"log"

	"github.com/DisreputableCode/poketool/pkg/gbtrade"
	"github.com/DisreputableCode/poketool/pkg/led"
)

// Storage is the stored-slot collaborator consumed by the session.
type Storage interface {
	Party(gen gbtrade.Generation) [gbtrade.PartyLength]gbtrade.StoredMon
	SaveSlot(gen gbtrade.Generation, slot int, mon gbtrade.StoredMon)
	Mode() gbtrade.TradeMode
}

// Indicator is the one-shot pattern-setting capability handed down from
// the controller.
type Indicator func(led.Pattern)

// Session owns all per-session protocol state: the two state machines,
// the exchange buffers and counters, and the buffers' patch lists. It is
// single-threaded; only the protocol loop touches it. The shared Context
// is updated as a mirror for the control plane.
type Session struct {
	ctx       *Context
	store     Storage
	indicate  Indicator
	onChange  func()

	connState ConnState
	tcState   TCState
	gen       gbtrade.Generation

	// Exchange buffers, sized for Gen 2 (the larger format). sendBlock
	// includes the 6-byte preamble; recvData is the data portion only.
	sendBlock [gbtrade.Gen2BlockSize]byte
	recvData  [gbtrade.Gen2DataSize]byte
	sendPatch [gbtrade.PatchListSize]byte
	recvPatch [gbtrade.PatchListSize]byte

	counter    int
	dataLen    int
	patchTerms int // received patch-list terminators; capture stops at two

	// tradeIndex is the party position the Game Boy selected, -1 = none.
	tradeIndex int

	// reachedPending records that this exchange got at least as far as
	// TradePending, i.e. recvData holds a complete party block.
	reachedPending bool

	// partyToStorage maps offered party positions back to storage slots
	// (-1 = default party, no backing slot).
	partyToStorage [gbtrade.PartyLength]int
}

// NewSession creates a session mirroring into ctx. indicate and onChange
// may be nil.
func NewSession(ctx *Context, store Storage, indicate Indicator) *Session {
	s := &Session{
		ctx:        ctx,
		store:      store,
		indicate:   indicate,
		tradeIndex: -1,
	}
	s.Reset()
	return s
}

// SetOnChange registers a callback fired after every state transition,
// used by the control plane's event stream.
func (s *Session) SetOnChange(fn func()) { s.onChange = fn }

func (s *Session) setIndicator(p led.Pattern) {
	if s.indicate != nil {
		s.indicate(p)
	}
}

func (s *Session) sync() {
	s.ctx.setStates(s.connState, s.tcState, s.gen)
	s.ctx.setSelection(s.tradeIndex)
}

// Reset clears all session state and reopens for a new master probe.
// Stored party slots are untouched.
func (s *Session) Reset() {
	prev := s.connState

	s.connState = NotConnected
	s.tcState = TCInit
	s.gen = gbtrade.GenUnknown
	s.counter = 0
	s.dataLen = 0
	s.patchTerms = 0
	s.tradeIndex = -1
	s.reachedPending = false
	s.ctx.setOpponent(Opponent{})
	s.ctx.confirmRequested.Store(false)
	s.ctx.declineRequested.Store(false)
	s.sync()

	if prev != NotConnected {
		log.Printf("[conn] disconnected (was %s)", prev)
	}

	s.setIndicator(led.SlowBlink)
}

// HandleByte dispatches one received byte and returns the byte to send
// on the next exchange. Unmatched bytes echo; mid-session the Game Boy
// emits filler and status bytes not modelled here, and echoing preserves
// the framing.
func (s *Session) HandleByte(in byte) byte {
	var send byte

	switch s.connState {
	case NotConnected:
		send = s.handleNotConnected(in)
	case Connected:
		send = s.handleConnected(in)
	case TradeCentre:
		send = s.handleTradeCentre(in)
	case Colosseum:
		send = s.handleColosseum(in)
	}

	s.sync()
	if s.onChange != nil {
		s.onChange()
	}
	return send
}

func (s *Session) handleNotConnected(in byte) byte {
	switch in {
	case gbtrade.ByteMaster:
		return gbtrade.ByteSlave
	case gbtrade.ByteBlank:
		return gbtrade.ByteBlank
	case gbtrade.ByteConnectedGen1:
		s.connState = Connected
		s.gen = gbtrade.Gen1
		log.Println("[conn] connected (gen 1)")
		s.setIndicator(led.DoubleBlink)
		return gbtrade.ByteConnectedGen1
	case gbtrade.ByteConnectedGen2:
		s.connState = Connected
		s.gen = gbtrade.Gen2
		log.Println("[conn] connected (gen 2)")
		s.setIndicator(led.DoubleBlink)
		return gbtrade.ByteConnectedGen2
	default:
		return in
	}
}

func (s *Session) handleConnected(in byte) byte {
	switch in {
	case gbtrade.ByteItem1, gbtrade.ByteItem2, gbtrade.ByteItem3:
		return in
	case gbtrade.ByteTradeCentre:
		s.connState = TradeCentre
		s.tcState = TCInit
		log.Printf("[conn] -> trade centre (%s)", s.gen)
		s.setIndicator(led.TripleBlink)
		return in
	case gbtrade.ByteColosseum:
		s.connState = Colosseum
		log.Println("[conn] -> colosseum (echoing)")
		return in
	case gbtrade.ByteBreakLink:
		if s.gen == gbtrade.Gen2 {
			// Time Capsule: renegotiate to the Gen 1 block format.
			s.gen = gbtrade.Gen1
			s.connState = TradeCentre
			s.tcState = TCInit
			log.Println("[conn] time capsule -> trade centre (gen 1 format)")
			s.setIndicator(led.TripleBlink)
			return in
		}
		s.Reset()
		return in
	case gbtrade.ByteMaster:
		s.Reset()
		return gbtrade.ByteBreakLink
	default:
		return in
	}
}

func (s *Session) handleColosseum(in byte) byte {
	if in == gbtrade.ByteBreakLink || in == gbtrade.ByteMaster {
		s.Reset()
		return gbtrade.ByteBreakLink
	}
	return in
}

func (s *Session) handleTradeCentre(in byte) byte {
	switch s.tcState {

	case TCInit:
		if in == 0x00 {
			s.tcState = TCReadyToGo
			return 0x00
		}
		return in

	case TCReadyToGo:
		if in == gbtrade.BytePreamble {
			s.tcState = TCSeenFirstWait
			return gbtrade.BytePreamble
		}
		// 0x6F re-enters here after a cancel; echoing covers it.
		return in

	case TCSeenFirstWait:
		if in != gbtrade.BytePreamble {
			s.tcState = TCSendingRandomData
			s.counter = 0
			return in
		}
		return gbtrade.BytePreamble

	case TCSendingRandomData:
		if in == gbtrade.BytePreamble {
			s.tcState = TCWaitingToSendData
			s.prepare()
			return gbtrade.BytePreamble
		}
		return in

	case TCWaitingToSendData:
		if in == gbtrade.BytePreamble {
			return gbtrade.BytePreamble
		}
		s.counter = 0
		send := s.sendBlock[gbtrade.BlockPreambleSize+s.counter]
		s.recvData[s.counter] = in
		s.counter++
		s.tcState = TCSendingData
		log.Printf("[tc] exchanging party data (%d bytes)", s.dataLen)
		s.setIndicator(led.FastBlink)
		return send

	case TCSendingData:
		send := s.sendBlock[gbtrade.BlockPreambleSize+s.counter]
		s.recvData[s.counter] = in
		s.counter++
		if s.counter >= s.dataLen {
			s.tcState = TCSendingPatchData
			s.patchTerms = 0
			log.Printf("[tc] data exchange complete (%d bytes)", s.counter)
			s.logOpponentParty()
		}
		return send

	case TCSendingPatchData:
		if in == gbtrade.BytePreamble {
			s.counter = 0
			return gbtrade.BytePreamble
		}
		send := s.sendPatch[gbtrade.PatchPreambleSize+s.counter]
		// Stop capturing after the terminator pair; the peer keeps
		// clocking zero filler up to the fixed patch block size.
		if s.patchTerms < 2 {
			s.recvPatch[gbtrade.PatchPreambleSize+s.counter] = in
			if in == gbtrade.BytePatchTerm {
				s.patchTerms++
			}
		}
		s.counter++
		if s.counter >= gbtrade.PatchListSize-gbtrade.PatchPreambleSize {
			s.recvPatch[0] = gbtrade.BytePreamble
			s.recvPatch[1] = gbtrade.BytePreamble
			s.recvPatch[2] = gbtrade.BytePreamble
			s.tcState = TCTradePending
			s.reachedPending = true
			log.Println("[tc] patch exchange complete -> trade pending")
			s.setIndicator(led.TripleBlink)
		}
		return send

	case TCTradePending:
		if in == gbtrade.ByteCancel {
			s.tcState = TCReadyToGo
			s.tradeIndex = -1
			log.Println("[tc] trade cancelled -> ready to go")
			return gbtrade.ByteCancel
		}
		if in&0x60 == 0x60 {
			s.tradeIndex = int(in - gbtrade.ByteSelectBase)
			offer := s.ctx.OfferSlot()
			log.Printf("[tc] game boy selected %d, offering %d", s.tradeIndex, offer)
			return gbtrade.ByteSelectBase + byte(offer)
		}
		if in == 0x00 {
			s.tcState = TCTradeConfirmation
			return 0x00
		}
		return in

	case TCTradeConfirmation:
		if in&0x60 != 0x60 {
			return in
		}
		if in == gbtrade.ByteDecline {
			s.tradeIndex = -1
			s.tcState = TCTradePending
			log.Println("[tc] trade declined by game boy -> trade pending")
			return in
		}
		if s.ctx.AutoConfirm() || s.ctx.consumeConfirm() {
			s.tcState = TCDone
			log.Println("[tc] trade confirmed -> done")
			return gbtrade.ByteAccept
		}
		// Manual decline: nobody armed a confirm before the Game Boy
		// committed, so we back out. An explicit decline request is
		// consumed here but not required.
		s.ctx.consumeDecline()
		s.tradeIndex = -1
		s.tcState = TCTradePending
		log.Println("[tc] trade declined -> trade pending")
		return gbtrade.ByteDecline

	case TCDone:
		if in == 0x00 {
			s.tcState = TCInit
			log.Println("[tc] done -> init (ready for next trade)")
			return 0x00
		}
		return in
	}

	return in
}
