// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 DisreputableCode

package trader

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/DisreputableCode/poketool/pkg/gbtrade"
)

// ============================================================
// Test Doubles
// ============================================================

type saveCall struct {
	gen  gbtrade.Generation
	slot int
	mon  gbtrade.StoredMon
}

type fakeStore struct {
	gen1  [gbtrade.PartyLength]gbtrade.StoredMon
	gen2  [gbtrade.PartyLength]gbtrade.StoredMon
	mode  gbtrade.TradeMode
	saves []saveCall
}

func (f *fakeStore) Party(gen gbtrade.Generation) [gbtrade.PartyLength]gbtrade.StoredMon {
	if gen == gbtrade.Gen2 {
		return f.gen2
	}
	return f.gen1
}

func (f *fakeStore) SaveSlot(gen gbtrade.Generation, slot int, mon gbtrade.StoredMon) {
	f.saves = append(f.saves, saveCall{gen, slot, mon})
	if gen == gbtrade.Gen2 {
		f.gen2[slot] = mon
	} else {
		f.gen1[slot] = mon
	}
}

func (f *fakeStore) Mode() gbtrade.TradeMode { return f.mode }

func newTestSession(store *fakeStore) (*Session, *Context) {
	ctx := NewContext()
	ctx.SetTradeMode(store.mode)
	s := NewSession(ctx, store, nil)
	return s, ctx
}

func storedTestMon(l gbtrade.Layout, species, level uint8, nick string) gbtrade.StoredMon {
	var m gbtrade.StoredMon
	m.Species = species
	m.Occupied = true
	m.Mon[0] = species
	m.Mon[l.LevelOff] = level
	m.OT = gbtrade.EncodeText("RIVAL")
	m.Nickname = gbtrade.EncodeText(nick)
	return m
}

// feed drives one scripted exchange: each input byte through HandleByte,
// collecting the replies.
func feed(s *Session, in []byte) []byte {
	out := make([]byte, 0, len(in))
	for _, b := range in {
		out = append(out, s.HandleByte(b))
	}
	return out
}

// opponentWire builds the escaped data portion and full patch list a
// Game Boy with the given party would transmit.
func opponentWire(l gbtrade.Layout, mons []gbtrade.StoredMon) (data, patch []byte) {
	slots := make([]gbtrade.PartySlot, len(mons))
	for i, m := range mons {
		slots[i] = gbtrade.SlotFromStored(l, m)
	}

	block := gbtrade.PackBlock(l, mons[0].OT[:], slots)
	data = block[gbtrade.BlockPreambleSize:]
	patch = make([]byte, gbtrade.PatchListSize)
	gbtrade.BuildPatchList(data, patch, gbtrade.PatchSplit)
	return data, patch
}

// driveToTradePending walks a session from NotConnected through the full
// Trade Centre data exchange, returning the data portion we sent.
func driveToTradePending(t *testing.T, s *Session, gen gbtrade.Generation, oppData, oppPatch []byte) []byte {
	t.Helper()

	connByte := byte(gbtrade.ByteConnectedGen1)
	if gen == gbtrade.Gen2 {
		connByte = gbtrade.ByteConnectedGen2
	}

	// Handshake and menu: probe, quiet, connect, highlight, select.
	feed(s, []byte{gbtrade.ByteMaster, 0x00, connByte, gbtrade.ByteItem1, gbtrade.ByteTradeCentre})
	if s.connState != TradeCentre || s.tcState != TCInit {
		t.Fatalf("after menu: state %s/%s", s.connState, s.tcState)
	}

	// Quiet period, then the random-block preamble and ten filler bytes.
	feed(s, []byte{0x00})
	feed(s, []byte{gbtrade.BytePreamble, 0x31})
	feed(s, bytes.Repeat([]byte{0x42}, 9))
	if s.tcState != TCSendingRandomData {
		t.Fatalf("expected sending_random, got %s", s.tcState)
	}

	// Preamble before the party data.
	feed(s, []byte{gbtrade.BytePreamble, gbtrade.BytePreamble})
	if s.tcState != TCWaitingToSendData {
		t.Fatalf("expected wait_to_send, got %s", s.tcState)
	}

	// Party data portions, byte for byte.
	sent := feed(s, oppData)
	if s.tcState != TCSendingPatchData {
		t.Fatalf("expected sending_patch, got %s", s.tcState)
	}

	// Patch list: three preamble bytes, then the 197 content bytes.
	feed(s, []byte{gbtrade.BytePreamble, gbtrade.BytePreamble, gbtrade.BytePreamble})
	feed(s, oppPatch[gbtrade.PatchPreambleSize:])
	if s.tcState != TCTradePending {
		t.Fatalf("expected trade_pending, got %s", s.tcState)
	}

	return sent
}

// ============================================================
// Scenario S1 / S2: Connection Handshake
// ============================================================

func TestConnect_Gen1(t *testing.T) {
	s, _ := newTestSession(&fakeStore{})

	in := []byte{0x01, 0x00, 0x60, 0xD0, 0xD4}
	want := []byte{0x02, 0x00, 0x60, 0xD0, 0xD4}

	if got := feed(s, in); !bytes.Equal(got, want) {
		t.Errorf("outputs: got % X, want % X", got, want)
	}
	if s.connState != TradeCentre || s.tcState != TCInit || s.gen != gbtrade.Gen1 {
		t.Errorf("final state: %s/%s gen=%s", s.connState, s.tcState, s.gen)
	}
}

func TestConnect_Gen2TimeCapsule(t *testing.T) {
	s, _ := newTestSession(&fakeStore{})

	in := []byte{0x01, 0x61, 0xD0, 0xD6}
	want := []byte{0x02, 0x61, 0xD0, 0xD6}

	if got := feed(s, in); !bytes.Equal(got, want) {
		t.Errorf("outputs: got % X, want % X", got, want)
	}
	if s.connState != TradeCentre || s.tcState != TCInit || s.gen != gbtrade.Gen1 {
		t.Errorf("final state: %s/%s gen=%s (time capsule demotes to gen1)", s.connState, s.tcState, s.gen)
	}
}

func TestConnect_Gen2Native(t *testing.T) {
	s, _ := newTestSession(&fakeStore{})

	feed(s, []byte{0x01, 0x61, 0xD0, 0xD4})
	if s.connState != TradeCentre || s.gen != gbtrade.Gen2 {
		t.Errorf("native gen2 trade centre: %s gen=%s", s.connState, s.gen)
	}
}

func TestConnect_Gen1BreakLink(t *testing.T) {
	s, _ := newTestSession(&fakeStore{})

	feed(s, []byte{0x01, 0x60})
	if s.connState != Connected {
		t.Fatalf("expected connected, got %s", s.connState)
	}

	feed(s, []byte{0xD6})
	if s.connState != NotConnected || s.gen != gbtrade.GenUnknown {
		t.Errorf("break link should reset: %s gen=%s", s.connState, s.gen)
	}
}

func TestConnect_MasterProbeResets(t *testing.T) {
	s, _ := newTestSession(&fakeStore{})

	feed(s, []byte{0x01, 0x60})
	feed(s, []byte{0x01})
	if s.connState != NotConnected {
		t.Errorf("renewed master probe should reset, got %s", s.connState)
	}
}

func TestColosseum_EchoesAndResets(t *testing.T) {
	s, _ := newTestSession(&fakeStore{})

	feed(s, []byte{0x01, 0x60, 0xD5})
	if s.connState != Colosseum {
		t.Fatalf("expected colosseum, got %s", s.connState)
	}

	if got := feed(s, []byte{0x13, 0x37}); !bytes.Equal(got, []byte{0x13, 0x37}) {
		t.Errorf("colosseum should echo, got % X", got)
	}

	feed(s, []byte{0xD6})
	if s.connState != NotConnected {
		t.Errorf("colosseum break link should reset, got %s", s.connState)
	}
}

// ============================================================
// Reset Invariant
// ============================================================

func TestReset_FromMidSession(t *testing.T) {
	store := &fakeStore{}
	l := gbtrade.Gen1Layout
	oppData, oppPatch := opponentWire(l, []gbtrade.StoredMon{storedTestMon(l, 0x85, 20, "KARP")})

	s, ctx := newTestSession(store)
	driveToTradePending(t, s, gbtrade.Gen1, oppData, oppPatch)
	feed(s, []byte{0x62}) // selection held

	s.Reset()

	if s.connState != NotConnected || s.tcState != TCInit {
		t.Errorf("states: %s/%s", s.connState, s.tcState)
	}
	if s.gen != gbtrade.GenUnknown {
		t.Errorf("gen: %s", s.gen)
	}
	if s.counter != 0 {
		t.Errorf("counter: %d", s.counter)
	}
	if ctx.Selection() != -1 {
		t.Errorf("selection: %d", ctx.Selection())
	}
	if n := len(ctx.Opponent().Mons); n != 0 {
		t.Errorf("opponent summary survived reset: %d mons", n)
	}
	if len(store.saves) != 0 {
		t.Errorf("reset must not write storage: %d saves", len(store.saves))
	}
}

// ============================================================
// Scenario S4: Full Exchange and Commit (Clone Mode)
// ============================================================

func TestTradeCentre_CloneCommit(t *testing.T) {
	l := gbtrade.Gen1Layout
	store := &fakeStore{mode: gbtrade.ModeClone}
	store.gen1[0] = storedTestMon(l, 0x99, 5, "BULBASAUR")

	// Opponent party of three; the selected mon carries a 0xFE byte so
	// the commit path has to apply the received patch list.
	oppMons := []gbtrade.StoredMon{
		storedTestMon(l, 0xA5, 3, "RATTATA"),
		storedTestMon(l, 0x24, 9, "PIDGEY"),
		storedTestMon(l, 0x85, 20, "KARP"),
	}
	oppMons[2].Mon[0x1B] = 0xFE // DV byte needing escape
	oppData, oppPatch := opponentWire(l, oppMons)

	s, ctx := newTestSession(store)
	sent := driveToTradePending(t, s, gbtrade.Gen1, oppData, oppPatch)

	// Our clone-mode block offers slot 0 six times.
	if got := int(sent[gbtrade.OffPartyCount]); got != gbtrade.PartyLength {
		t.Errorf("offered party count: %d", got)
	}
	for i := 0; i < gbtrade.PartyLength; i++ {
		if sent[gbtrade.OffSpecies+i] != 0x99 {
			t.Errorf("offered species[%d] = 0x%02X", i, sent[gbtrade.OffSpecies+i])
		}
	}

	// Opponent summary was captured (patch not yet applied; summary reads
	// the escaped buffer, which only differs on escaped bytes).
	opp := ctx.Opponent()
	if len(opp.Mons) != 3 || opp.Mons[0].Nickname != "RATTATA" {
		t.Errorf("opponent summary: %+v", opp)
	}

	// Game Boy selects its party position 2, we answer with our offer.
	if got := feed(s, []byte{0x62}); got[0] != 0x60 {
		t.Errorf("selection reply: 0x%02X", got[0])
	}
	if ctx.Selection() != 2 {
		t.Errorf("selection: %d", ctx.Selection())
	}

	// Commit handshake: quiet byte, then mutual accept.
	if got := feed(s, []byte{0x00, 0x62}); !bytes.Equal(got, []byte{0x00, 0x62}) {
		t.Errorf("confirmation replies: % X", got)
	}
	if s.tcState != TCDone {
		t.Fatalf("expected done, got %s", s.tcState)
	}

	// Back to init, then the link goes idle and the controller commits.
	feed(s, []byte{0x00})
	if s.tcState != TCInit {
		t.Fatalf("expected init, got %s", s.tcState)
	}
	s.Commit()

	if len(store.saves) != 1 {
		t.Fatalf("expected 1 save, got %d", len(store.saves))
	}
	save := store.saves[0]
	if save.gen != gbtrade.Gen1 || save.slot != 0 {
		t.Errorf("saved to %s slot %d, want gen1 slot 0", save.gen, save.slot)
	}
	if save.mon.Species != 0x85 {
		t.Errorf("saved species 0x%02X, want 0x85", save.mon.Species)
	}
	if save.mon.Mon[0x1B] != 0xFE {
		t.Errorf("patch list not applied: mon[0x1B]=0x%02X, want 0xFE", save.mon.Mon[0x1B])
	}
	if nick := gbtrade.DecodeText(save.mon.Nickname[:]); nick != "KARP" {
		t.Errorf("saved nickname %q", nick)
	}

	// A second commit must be a no-op.
	s.Commit()
	if len(store.saves) != 1 {
		t.Errorf("double commit: %d saves", len(store.saves))
	}
}

// ============================================================
// Scenario S5: Cancel
// ============================================================

func TestTradeCentre_CancelClearsSelection(t *testing.T) {
	l := gbtrade.Gen1Layout
	store := &fakeStore{mode: gbtrade.ModeClone}
	oppData, oppPatch := opponentWire(l, []gbtrade.StoredMon{storedTestMon(l, 0x85, 20, "KARP")})

	s, ctx := newTestSession(store)
	driveToTradePending(t, s, gbtrade.Gen1, oppData, oppPatch)

	feed(s, []byte{0x62})
	if ctx.Selection() != 2 {
		t.Fatalf("selection not latched")
	}

	if got := feed(s, []byte{0x6F}); got[0] != 0x6F {
		t.Errorf("cancel reply: 0x%02X", got[0])
	}
	if s.tcState != TCReadyToGo {
		t.Errorf("expected ready_to_go, got %s", s.tcState)
	}
	if ctx.Selection() != -1 {
		t.Errorf("cancel must clear the selection, got %d", ctx.Selection())
	}

	s.Commit()
	if len(store.saves) != 0 {
		t.Errorf("cancelled trade must not commit")
	}
}

// ============================================================
// Decline Paths
// ============================================================

func TestTradeCentre_GameBoyDeclines(t *testing.T) {
	l := gbtrade.Gen1Layout
	store := &fakeStore{mode: gbtrade.ModeClone}
	oppData, oppPatch := opponentWire(l, []gbtrade.StoredMon{storedTestMon(l, 0x85, 20, "KARP")})

	s, ctx := newTestSession(store)
	driveToTradePending(t, s, gbtrade.Gen1, oppData, oppPatch)

	feed(s, []byte{0x60, 0x00})
	if s.tcState != TCTradeConfirmation {
		t.Fatalf("expected trade_confirm, got %s", s.tcState)
	}

	if got := feed(s, []byte{0x61}); got[0] != 0x61 {
		t.Errorf("decline echo: 0x%02X", got[0])
	}
	if s.tcState != TCTradePending || ctx.Selection() != -1 {
		t.Errorf("after gb decline: %s selection=%d", s.tcState, ctx.Selection())
	}
}

func TestTradeCentre_ManualConfirmAndDecline(t *testing.T) {
	l := gbtrade.Gen1Layout

	setup := func(t *testing.T) (*Session, *Context, *fakeStore) {
		store := &fakeStore{mode: gbtrade.ModeClone}
		oppData, oppPatch := opponentWire(l, []gbtrade.StoredMon{storedTestMon(l, 0x85, 20, "KARP")})
		s, ctx := newTestSession(store)
		ctx.SetAutoConfirm(false)
		driveToTradePending(t, s, gbtrade.Gen1, oppData, oppPatch)
		feed(s, []byte{0x60, 0x00})
		return s, ctx, store
	}

	t.Run("no request pending declines", func(t *testing.T) {
		s, ctx, _ := setup(t)
		if got := feed(s, []byte{0x62}); got[0] != 0x61 {
			t.Errorf("reply: 0x%02X, want 0x61", got[0])
		}
		if s.tcState != TCTradePending || ctx.Selection() != -1 {
			t.Errorf("state %s selection=%d", s.tcState, ctx.Selection())
		}
	})

	t.Run("armed confirm commits", func(t *testing.T) {
		s, ctx, _ := setup(t)
		ctx.RequestConfirm()
		if got := feed(s, []byte{0x62}); got[0] != 0x62 {
			t.Errorf("reply: 0x%02X, want 0x62", got[0])
		}
		if s.tcState != TCDone {
			t.Errorf("state %s, want done", s.tcState)
		}
		// The request is one-shot.
		if ctx.consumeConfirm() {
			t.Error("confirm request not consumed")
		}
	})

	t.Run("armed decline declines", func(t *testing.T) {
		s, ctx, _ := setup(t)
		ctx.RequestDecline()
		if got := feed(s, []byte{0x62}); got[0] != 0x61 {
			t.Errorf("reply: 0x%02X, want 0x61", got[0])
		}
		if s.tcState != TCTradePending {
			t.Errorf("state %s, want trade_pending", s.tcState)
		}
	})
}

// ============================================================
// Scenario S6: Storage Mode Compaction
// ============================================================

func TestPrepare_StorageCompaction(t *testing.T) {
	l := gbtrade.Gen2Layout
	store := &fakeStore{mode: gbtrade.ModeStorage}
	store.gen2[1] = storedTestMon(l, 152, 5, "CHIKO")
	store.gen2[3] = storedTestMon(l, 155, 8, "CYNDA")
	store.gen2[4] = storedTestMon(l, 158, 11, "TOTO")

	s, _ := newTestSession(store)
	oppData, oppPatch := opponentWire(l, []gbtrade.StoredMon{storedTestMon(l, 25, 12, "PIKACHU")})
	sent := driveToTradePending(t, s, gbtrade.Gen2, oppData, oppPatch)

	if got := int(sent[gbtrade.OffPartyCount]); got != 3 {
		t.Errorf("party count: %d, want 3", got)
	}
	wantSpecies := []uint8{152, 155, 158}
	for i, want := range wantSpecies {
		if sent[gbtrade.OffSpecies+i] != want {
			t.Errorf("species[%d] = %d, want %d", i, sent[gbtrade.OffSpecies+i], want)
		}
	}
	if sent[gbtrade.OffSpecies+3] != 0xFF {
		t.Errorf("species terminator: 0x%02X", sent[gbtrade.OffSpecies+3])
	}
	if want := [gbtrade.PartyLength]int{1, 3, 4, -1, -1, -1}; s.partyToStorage != want {
		t.Errorf("partyToStorage = %v, want %v", s.partyToStorage, want)
	}
}

func TestCommit_StorageModeMapsOfferSlot(t *testing.T) {
	l := gbtrade.Gen2Layout
	store := &fakeStore{mode: gbtrade.ModeStorage}
	store.gen2[1] = storedTestMon(l, 152, 5, "CHIKO")
	store.gen2[3] = storedTestMon(l, 155, 8, "CYNDA")
	store.gen2[4] = storedTestMon(l, 158, 11, "TOTO")

	oppData, oppPatch := opponentWire(l, []gbtrade.StoredMon{storedTestMon(l, 25, 12, "PIKACHU")})

	s, ctx := newTestSession(store)
	// We trade away party position 1, which came from storage slot 3.
	ctx.SetOfferSlot(1)

	driveToTradePending(t, s, gbtrade.Gen2, oppData, oppPatch)
	feed(s, []byte{0x60, 0x00, 0x62, 0x00})
	s.Commit()

	if len(store.saves) != 1 {
		t.Fatalf("expected 1 save, got %d", len(store.saves))
	}
	save := store.saves[0]
	if save.gen != gbtrade.Gen2 || save.slot != 3 {
		t.Errorf("saved to %s slot %d, want gen2 slot 3", save.gen, save.slot)
	}
	if save.mon.Species != 25 {
		t.Errorf("saved species %d, want 25", save.mon.Species)
	}
	// Untouched slots stay put.
	if !store.gen2[1].Occupied || store.gen2[1].Species != 152 {
		t.Errorf("slot 1 disturbed")
	}
	if !store.gen2[4].Occupied || store.gen2[4].Species != 158 {
		t.Errorf("slot 4 disturbed")
	}
}

// ============================================================
// Default Party Fallback
// ============================================================

func TestPrepare_EmptyStorageOffersDefault(t *testing.T) {
	for _, tt := range []struct {
		gen     gbtrade.Generation
		species uint8
	}{
		{gbtrade.Gen1, 0x99},
		{gbtrade.Gen2, 152},
	} {
		t.Run(tt.gen.String(), func(t *testing.T) {
			store := &fakeStore{mode: gbtrade.ModeClone}
			l := gbtrade.LayoutFor(tt.gen)
			oppData, oppPatch := opponentWire(l, []gbtrade.StoredMon{storedTestMon(l, 1, 7, "IVY")})

			s, _ := newTestSession(store)
			sent := driveToTradePending(t, s, tt.gen, oppData, oppPatch)

			if got := int(sent[gbtrade.OffPartyCount]); got != 1 {
				t.Errorf("party count: %d, want 1", got)
			}
			if sent[gbtrade.OffSpecies] != tt.species {
				t.Errorf("species: 0x%02X, want 0x%02X", sent[gbtrade.OffSpecies], tt.species)
			}
			if s.partyToStorage[0] != -1 {
				t.Errorf("default party must not map to storage")
			}
		})
	}
}

// ============================================================
// Echo Default / Determinism Sweep
// ============================================================

func TestHandleByte_EveryStateHandlesEveryByte(t *testing.T) {
	l := gbtrade.Gen1Layout
	oppData, oppPatch := opponentWire(l, []gbtrade.StoredMon{storedTestMon(l, 0x85, 20, "KARP")})

	connStates := []ConnState{NotConnected, Connected, TradeCentre, Colosseum}
	tcStates := []TCState{
		TCInit, TCReadyToGo, TCSeenFirstWait, TCSendingRandomData,
		TCWaitingToSendData, TCSendingData, TCSendingPatchData,
		TCTradePending, TCTradeConfirmation, TCDone,
	}

	for _, cs := range connStates {
		for _, ts := range tcStates {
			store := &fakeStore{mode: gbtrade.ModeClone}
			s, _ := newTestSession(store)
			driveToTradePending(t, s, gbtrade.Gen1, oppData, oppPatch)

			for b := 0; b < 256; b++ {
				name := fmt.Sprintf("%s/%s/0x%02X", cs, ts, b)

				s.connState = cs
				s.tcState = ts
				s.gen = gbtrade.Gen1
				s.counter = 0

				func() {
					defer func() {
						if r := recover(); r != nil {
							t.Fatalf("%s panicked: %v", name, r)
						}
					}()
					s.HandleByte(byte(b))
				}()
			}

			// The sweep never commits: storage is only written at
			// trade-completion commit points.
			if len(store.saves) != 0 {
				t.Fatalf("%s/%s: FSM wrote storage directly", cs, ts)
			}
		}
	}
}
