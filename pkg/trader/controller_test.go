// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 DisreputableCode

package trader

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DisreputableCode/poketool/pkg/gblink"
	"github.com/DisreputableCode/poketool/pkg/gbtrade"
)

// scriptedLink feeds a fixed master-side byte script, then times out
// forever with the clock idle.
type scriptedLink struct {
	script   []byte
	pos      int
	sent     []byte
	idleHit  chan struct{}
	signaled bool
	err      error
}

func newScriptedLink(script []byte) *scriptedLink {
	return &scriptedLink{script: script, idleHit: make(chan struct{})}
}

func (f *scriptedLink) Transfer(send byte) (byte, error) {
	if f.pos >= len(f.script) {
		if f.err != nil {
			return 0, f.err
		}
		return 0, gblink.ErrTimeout
	}

	f.sent = append(f.sent, send)
	b := f.script[f.pos]
	f.pos++
	return b, nil
}

func (f *scriptedLink) WaitForActivity(time.Duration) bool { return f.pos < len(f.script) }

func (f *scriptedLink) IsIdle(time.Duration) bool {
	idle := f.pos >= len(f.script)
	if idle && !f.signaled {
		f.signaled = true
		close(f.idleHit)
	}
	return idle
}

// masterScript assembles the byte sequence a Game Boy emits for a full
// gen 1 clone-mode trade selecting and confirming party position 0.
func masterScript(oppData, oppPatch []byte) []byte {
	var script []byte
	script = append(script, 0x01, 0x00, 0x60, 0xD0, 0xD4) // handshake + menu
	script = append(script, 0x00)                         // trade centre quiet period
	script = append(script, 0xFD, 0x31)                   // random block preamble
	script = append(script, bytes.Repeat([]byte{0x42}, 9)...)
	script = append(script, 0xFD, 0xFD) // data preamble
	script = append(script, oppData...)
	script = append(script, 0xFD, 0xFD, 0xFD) // patch preamble
	script = append(script, oppPatch[gbtrade.PatchPreambleSize:]...)
	script = append(script, 0x60, 0x00, 0x62, 0x00) // select, confirm, done
	return script
}

func TestController_CommitsAndResetsOnIdle(t *testing.T) {
	l := gbtrade.Gen1Layout
	store := &fakeStore{mode: gbtrade.ModeClone}
	oppData, oppPatch := opponentWire(l, []gbtrade.StoredMon{storedTestMon(l, 0x85, 20, "KARP")})

	link := newScriptedLink(masterScript(oppData, oppPatch))

	s, tctx := newTestSession(store)
	c := NewController(s, link)
	c.byteDelay = 0

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	select {
	case <-link.idleHit:
	case <-time.After(5 * time.Second):
		t.Fatal("controller never drained the script")
	}

	// Give the loop a cycle to commit and reset, then stop it.
	time.Sleep(50 * time.Millisecond)
	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("Run returned %v", err)
	}

	if len(store.saves) != 1 {
		t.Fatalf("expected 1 committed save, got %d", len(store.saves))
	}
	if store.saves[0].slot != 0 || store.saves[0].mon.Species != 0x85 {
		t.Errorf("committed %+v", store.saves[0])
	}

	if tctx.ConnState() != NotConnected || tctx.Generation() != gbtrade.GenUnknown {
		t.Errorf("idle should reset the session: %s gen=%s", tctx.ConnState(), tctx.Generation())
	}

	// Spot-check the early replies: probe ack and echoed menu bytes.
	want := []byte{0x00, 0x02, 0x00, 0x60, 0xD0}
	if !bytes.Equal(link.sent[:len(want)], want) {
		t.Errorf("early replies: got % X, want % X", link.sent[:len(want)], want)
	}
}

func TestController_TransportErrorStopsLoop(t *testing.T) {
	store := &fakeStore{}
	link := newScriptedLink(nil)
	link.err = errors.New("adapter unplugged")

	s, _ := newTestSession(store)
	c := NewController(s, link)
	c.byteDelay = 0

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errc := make(chan error, 1)
	go func() { errc <- c.Run(ctx) }()

	select {
	case err := <-errc:
		if err == nil || errors.Is(err, gblink.ErrTimeout) {
			t.Fatalf("expected transport error, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("controller did not stop on transport error")
	}
}
