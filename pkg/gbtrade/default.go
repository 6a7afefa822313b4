// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 DisreputableCode

package gbtrade

import "encoding/binary"

// Default party offered when storage has nothing to offer (slot 0 empty in
// clone mode, no occupied slot in storage mode): a single level-5 starter
// with plausible stats. Gen 1 gets a Bulbasaur (internal index
// 0x99), Gen 2 a Chikorita (dex 152).

const (
	Gen1Bulbasaur = 0x99
	Gen2Chikorita = 152

	moveTackle = 0x21
	moveGrowl  = 0x2D
)

var (
	defaultTrainerName = EncodeText("POKETOOL")
	nicknameBulbasaur  = EncodeText("BULBASAUR")
	nicknameChikorita  = EncodeText("CHIKORITA")
)

// DefaultPlayerName is the trainer name stamped on default parties.
func DefaultPlayerName() []byte {
	n := defaultTrainerName
	return n[:]
}

// DefaultParty returns the fallback single-starter party for gen.
func DefaultParty(gen Generation) []PartySlot {
	if gen == Gen2 {
		return []PartySlot{{
			Species:  Gen2Chikorita,
			Mon:      defaultChikorita(),
			OT:       DefaultPlayerName(),
			Nickname: nicknameChikorita[:],
		}}
	}
	return []PartySlot{{
		Species:  Gen1Bulbasaur,
		Mon:      defaultBulbasaur(),
		OT:       DefaultPlayerName(),
		Nickname: nicknameBulbasaur[:],
	}}
}

func defaultBulbasaur() []byte {
	mon := make([]byte, Gen1MonSize)

	mon[0x00] = Gen1Bulbasaur
	binary.BigEndian.PutUint16(mon[0x01:], 20) // current HP
	mon[0x03] = 5                              // box level
	mon[0x05] = 0x16                           // grass
	mon[0x06] = 0x03                           // poison
	mon[0x07] = 45                             // catch rate
	mon[0x08] = moveTackle
	mon[0x09] = moveGrowl
	binary.BigEndian.PutUint16(mon[0x0C:], 1) // trainer id
	mon[0x10] = 135                           // exp for level 5 (medium-slow)
	mon[0x1B] = 0xAA                          // DVs
	mon[0x1C] = 0xAA
	mon[0x1D] = 35 // Tackle PP
	mon[0x1E] = 40 // Growl PP
	mon[0x21] = 5  // level
	binary.BigEndian.PutUint16(mon[0x22:], 20) // max HP
	binary.BigEndian.PutUint16(mon[0x24:], 9)  // attack
	binary.BigEndian.PutUint16(mon[0x26:], 9)  // defense
	binary.BigEndian.PutUint16(mon[0x28:], 8)  // speed
	binary.BigEndian.PutUint16(mon[0x2A:], 10) // special

	return mon
}

func defaultChikorita() []byte {
	mon := make([]byte, Gen2MonSize)

	mon[0x00] = Gen2Chikorita
	mon[0x02] = moveTackle
	mon[0x03] = moveGrowl
	binary.BigEndian.PutUint16(mon[0x06:], 1) // trainer id
	mon[0x0A] = 135                           // exp for level 5 (medium-slow)
	mon[0x15] = 0xAA                          // DVs
	mon[0x16] = 0xAA
	mon[0x17] = 35 // Tackle PP
	mon[0x18] = 40 // Growl PP
	mon[0x1B] = 70 // happiness
	mon[0x1F] = 5  // level
	binary.BigEndian.PutUint16(mon[0x22:], 20) // current HP
	binary.BigEndian.PutUint16(mon[0x24:], 20) // max HP
	binary.BigEndian.PutUint16(mon[0x26:], 9)  // attack
	binary.BigEndian.PutUint16(mon[0x28:], 10) // defense
	binary.BigEndian.PutUint16(mon[0x2A:], 8)  // speed
	binary.BigEndian.PutUint16(mon[0x2C:], 9)  // special attack
	binary.BigEndian.PutUint16(mon[0x2E:], 10) // special defense

	return mon
}

// DefaultStoredMon wraps the default party's single slot as a StoredMon,
// for callers that want it in storage form.
func DefaultStoredMon(gen Generation) StoredMon {
	l := LayoutFor(gen)
	slot := DefaultParty(gen)[0]

	var m StoredMon
	copy(m.Mon[:l.MonSize], slot.Mon)
	copy(m.OT[:], slot.OT)
	copy(m.Nickname[:], slot.Nickname)
	m.Species = slot.Species
	m.Occupied = true
	return m
}
