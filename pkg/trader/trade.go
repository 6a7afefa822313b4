// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 DisreputableCode

package trader

import (
	"log"

	"github.com/DisreputableCode/poketool/pkg/gbtrade"
)

// prepare assembles the outbound party block for the negotiated
// generation and runs the patch codec over its data portion. Called once
// per exchange, on the preamble boundary before the data phase.
func (s *Session) prepare() {
	l := gbtrade.LayoutFor(s.gen)
	party := s.store.Party(l.Gen)
	mode := s.ctx.TradeMode()

	var (
		slots      []gbtrade.PartySlot
		playerName []byte
	)

	for i := range s.partyToStorage {
		s.partyToStorage[i] = -1
	}

	switch {
	case mode == gbtrade.ModeClone && party[0].Occupied:
		// Clone slot 0 into all six positions.
		slot := gbtrade.SlotFromStored(l, party[0])
		for i := 0; i < gbtrade.PartyLength; i++ {
			slots = append(slots, slot)
			s.partyToStorage[i] = 0
		}
		playerName = party[0].OT[:]

	case mode == gbtrade.ModeStorage:
		// Compact occupied slots to the leading party positions.
		for i := range party {
			if !party[i].Occupied {
				continue
			}
			s.partyToStorage[len(slots)] = i
			slots = append(slots, gbtrade.SlotFromStored(l, party[i]))
		}
		if len(slots) > 0 {
			playerName = party[s.partyToStorage[0]].OT[:]
		}
	}

	if len(slots) == 0 {
		slots = gbtrade.DefaultParty(l.Gen)
		playerName = gbtrade.DefaultPlayerName()
		for i := range s.partyToStorage {
			s.partyToStorage[i] = -1
		}
	}

	block := gbtrade.PackBlock(l, playerName, slots)
	s.dataLen = l.DataLen
	copy(s.sendBlock[:], block)
	gbtrade.BuildPatchList(
		s.sendBlock[gbtrade.BlockPreambleSize:gbtrade.BlockPreambleSize+s.dataLen],
		s.sendPatch[:],
		gbtrade.PatchSplit,
	)

	log.Printf("[tc] prepared %s party (%d data bytes, %d mons, mode=%s)",
		l.Gen, s.dataLen, len(slots), mode)
}

// logOpponentParty parses the received data portion into the shared
// context's opponent summary.
func (s *Session) logOpponentParty() {
	l := gbtrade.LayoutFor(s.gen)
	data := s.recvData[:s.dataLen]
	count := l.Count(data)

	opp := Opponent{Gen: l.Gen, Mons: make([]OpponentMon, 0, count)}

	log.Printf("[tc] opponent party (%d mons):", count)
	for i := 0; i < count; i++ {
		mon := OpponentMon{
			Species:  l.Mon(data, i)[0],
			Level:    l.Level(data, i),
			Nickname: gbtrade.DecodeText(l.Nickname(data, i)),
		}
		opp.Mons = append(opp.Mons, mon)
		log.Printf("  [%d] %s (0x%02X) lv%d hp=%d",
			i, gbtrade.SpeciesName(l.Gen, mon.Species), mon.Species,
			mon.Level, l.HP(data, i))
	}

	s.ctx.setOpponent(opp)
}

// Commit persists the mon the Game Boy traded away, if this session's
// exchange reached TradePending with a selection still held. Called by
// the controller when the link goes idle. The received patch list is
// applied first to make the buffer addressable.
func (s *Session) Commit() {
	if s.tradeIndex < 0 || s.tradeIndex >= gbtrade.PartyLength || !s.reachedPending {
		return
	}

	l := gbtrade.LayoutFor(s.gen)
	data := s.recvData[:s.dataLen]
	gbtrade.ApplyPatchList(data, s.recvPatch[:])

	received := l.ExtractSlot(data, s.tradeIndex)

	log.Printf("[tc] received %s (0x%02X) lv%d",
		gbtrade.SpeciesName(l.Gen, received.Species), received.Species,
		l.Level(data, s.tradeIndex))

	// Clone mode always refills slot 0; storage mode writes back to the
	// slot that was traded away.
	saveSlot := 0
	if s.ctx.TradeMode() == gbtrade.ModeStorage {
		offer := s.ctx.OfferSlot()
		if offer >= 0 && offer < gbtrade.PartyLength && s.partyToStorage[offer] >= 0 {
			saveSlot = s.partyToStorage[offer]
		}
	}

	s.store.SaveSlot(l.Gen, saveSlot, received)
	s.tradeIndex = -1
	s.reachedPending = false
	s.sync()
}
