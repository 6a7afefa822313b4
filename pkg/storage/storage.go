// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 DisreputableCode

// Package storage persists the six trade slots per generation and the
// trade mode. Slots live as CBOR files under a data directory and are
// mirrored in RAM; disk failures are logged and swallowed so a session
// can still run on the mirror (durability is "eventually flushed").
package storage

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/fxamacker/cbor/v2"

	"github.com/DisreputableCode/poketool/pkg/gbtrade"
)

// slotRecord is the on-disk form of a stored slot.
type slotRecord struct {
	Mon      []byte `cbor:"1,keyasint"`
	OT       []byte `cbor:"2,keyasint"`
	Nickname []byte `cbor:"3,keyasint"`
	Species  uint8  `cbor:"4,keyasint"`
}

type modeRecord struct {
	Mode int `cbor:"1,keyasint"`
}

// Store is the stored-slot collaborator consumed by the trade session and
// the control plane. Safe for concurrent use.
type Store struct {
	dir string

	mu   sync.Mutex
	gen1 [gbtrade.PartyLength]gbtrade.StoredMon
	gen2 [gbtrade.PartyLength]gbtrade.StoredMon
	mode gbtrade.TradeMode
}

// Open loads all slots and the mode from dir, creating it if needed.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage dir: %w", err)
	}

	s := &Store{dir: dir}

	for i := 0; i < gbtrade.PartyLength; i++ {
		s.loadSlot(gbtrade.Gen1, i)
		s.loadSlot(gbtrade.Gen2, i)
	}
	s.loadMode()

	log.Printf("[storage] loaded %d gen1, %d gen2 slots from %s",
		s.Count(gbtrade.Gen1), s.Count(gbtrade.Gen2), dir)

	return s, nil
}

func (s *Store) slotPath(gen gbtrade.Generation, slot int) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s_%d.cbor", gen, slot))
}

func (s *Store) modePath() string {
	return filepath.Join(s.dir, "mode.cbor")
}

func (s *Store) party(gen gbtrade.Generation) *[gbtrade.PartyLength]gbtrade.StoredMon {
	if gen == gbtrade.Gen2 {
		return &s.gen2
	}
	return &s.gen1
}

func monSize(gen gbtrade.Generation) int {
	return gbtrade.LayoutFor(gen).MonSize
}

func (s *Store) loadSlot(gen gbtrade.Generation, slot int) {
	data, err := os.ReadFile(s.slotPath(gen, slot))
	if err != nil {
		return
	}

	var rec slotRecord
	if err := cbor.Unmarshal(data, &rec); err != nil {
		log.Printf("[storage] %s slot %d unreadable: %v", gen, slot, err)
		return
	}
	if len(rec.Mon) != monSize(gen) {
		log.Printf("[storage] %s slot %d: mon struct is %d bytes, want %d",
			gen, slot, len(rec.Mon), monSize(gen))
		return
	}

	m := &s.party(gen)[slot]
	copy(m.Mon[:], rec.Mon)
	copy(m.OT[:], rec.OT)
	copy(m.Nickname[:], rec.Nickname)
	m.Species = rec.Species
	m.Occupied = true
}

func (s *Store) loadMode() {
	data, err := os.ReadFile(s.modePath())
	if err != nil {
		return
	}

	var rec modeRecord
	if err := cbor.Unmarshal(data, &rec); err != nil {
		log.Printf("[storage] mode file unreadable: %v", err)
		return
	}
	if rec.Mode == int(gbtrade.ModeStorage) {
		s.mode = gbtrade.ModeStorage
	}
}

// Party returns a copy of the six slots for gen.
func (s *Store) Party(gen gbtrade.Generation) [gbtrade.PartyLength]gbtrade.StoredMon {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.party(gen)
}

// SaveSlot writes mon into the slot, mirror first. A disk failure leaves
// the mirror updated so the next session still offers the new mon.
func (s *Store) SaveSlot(gen gbtrade.Generation, slot int, mon gbtrade.StoredMon) {
	if slot < 0 || slot >= gbtrade.PartyLength {
		return
	}

	s.mu.Lock()
	mon.Occupied = true
	s.party(gen)[slot] = mon
	s.mu.Unlock()

	rec := slotRecord{
		Mon:      mon.Mon[:monSize(gen)],
		OT:       mon.OT[:],
		Nickname: mon.Nickname[:],
		Species:  mon.Species,
	}

	data, err := cbor.Marshal(rec)
	if err == nil {
		err = os.WriteFile(s.slotPath(gen, slot), data, 0o644)
	}
	if err != nil {
		log.Printf("[storage] save %s slot %d failed: %v", gen, slot, err)
		return
	}

	log.Printf("[storage] saved %s slot %d (species=0x%02X)", gen, slot, mon.Species)
}

// ClearSlot empties the slot and removes its file.
func (s *Store) ClearSlot(gen gbtrade.Generation, slot int) {
	if slot < 0 || slot >= gbtrade.PartyLength {
		return
	}

	s.mu.Lock()
	s.party(gen)[slot] = gbtrade.StoredMon{}
	s.mu.Unlock()

	if err := os.Remove(s.slotPath(gen, slot)); err != nil && !os.IsNotExist(err) {
		log.Printf("[storage] clear %s slot %d failed: %v", gen, slot, err)
		return
	}

	log.Printf("[storage] cleared %s slot %d", gen, slot)
}

// Count returns the number of occupied slots for gen.
func (s *Store) Count(gen gbtrade.Generation) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, m := range s.party(gen) {
		if m.Occupied {
			n++
		}
	}
	return n
}

// Mode returns the persisted trade mode.
func (s *Store) Mode() gbtrade.TradeMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// SetMode persists the trade mode.
func (s *Store) SetMode(mode gbtrade.TradeMode) {
	s.mu.Lock()
	s.mode = mode
	s.mu.Unlock()

	data, err := cbor.Marshal(modeRecord{Mode: int(mode)})
	if err == nil {
		err = os.WriteFile(s.modePath(), data, 0o644)
	}
	if err != nil {
		log.Printf("[storage] save mode failed: %v", err)
		return
	}

	log.Printf("[storage] trade mode set to %s", mode)
}
