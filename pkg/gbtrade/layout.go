// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 DisreputableCode

package gbtrade

// Layout describes the fixed offsets of one generation's party data
// portion (the block minus its 6-byte preamble). The leading fields are
// shared between generations:
//
//	[0..10]  player name
//	[11]     party count
//	[12..18] species array (6 slots + 0xFF terminator)
//
// Gen 2 inserts a 2-byte player id before the mon structs; mon struct
// sizes and the trailing name tables differ accordingly.
type Layout struct {
	Gen      Generation
	MonSize  int
	MonOff   int // first mon struct
	OTOff    int // first OT name
	NickOff  int // first nickname
	DataLen  int
	LevelOff int // level within a party mon struct
	HPOff    int // current HP within a party mon struct (big-endian u16)
}

// Shared leading-field offsets within a data portion.
const (
	OffPlayerName = 0
	OffPartyCount = 11
	OffSpecies    = 12
	OffPlayerID   = 19 // Gen 2 only
)

var (
	Gen1Layout = Layout{
		Gen:      Gen1,
		MonSize:  Gen1MonSize,
		MonOff:   19,
		OTOff:    283,
		NickOff:  349,
		DataLen:  Gen1DataSize,
		LevelOff: 0x21,
		HPOff:    0x01,
	}

	Gen2Layout = Layout{
		Gen:      Gen2,
		MonSize:  Gen2MonSize,
		MonOff:   21,
		OTOff:    309,
		NickOff:  375,
		DataLen:  Gen2DataSize,
		LevelOff: 0x1F,
		HPOff:    0x22,
	}
)

// LayoutFor returns the data-portion layout for gen. GenUnknown maps to
// Gen 1, the smaller and older format.
func LayoutFor(gen Generation) Layout {
	if gen == Gen2 {
		return Gen2Layout
	}
	return Gen1Layout
}

// Count reads the party count, clamped to PartyLength.
func (l Layout) Count(data []byte) int {
	n := int(data[OffPartyCount])
	if n > PartyLength {
		n = PartyLength
	}
	return n
}

// Species returns the species index at party position i.
func (l Layout) Species(data []byte, i int) uint8 {
	return data[OffSpecies+i]
}

// Mon returns the mon struct at party position i.
func (l Layout) Mon(data []byte, i int) []byte {
	off := l.MonOff + i*l.MonSize
	return data[off : off+l.MonSize]
}

// OT returns the original-trainer name at party position i.
func (l Layout) OT(data []byte, i int) []byte {
	off := l.OTOff + i*NameLength
	return data[off : off+NameLength]
}

// Nickname returns the nickname at party position i.
func (l Layout) Nickname(data []byte, i int) []byte {
	off := l.NickOff + i*NameLength
	return data[off : off+NameLength]
}

// Level reads the level of the mon struct at party position i.
func (l Layout) Level(data []byte, i int) uint8 {
	return l.Mon(data, i)[l.LevelOff]
}

// HP reads the current HP of the mon struct at party position i.
func (l Layout) HP(data []byte, i int) uint16 {
	mon := l.Mon(data, i)
	return uint16(mon[l.HPOff])<<8 | uint16(mon[l.HPOff+1])
}

// ExtractSlot carves the mon at party position i out of a received data
// portion into a StoredMon.
func (l Layout) ExtractSlot(data []byte, i int) StoredMon {
	var m StoredMon
	copy(m.Mon[:], l.Mon(data, i))
	copy(m.OT[:], l.OT(data, i))
	copy(m.Nickname[:], l.Nickname(data, i))
	m.Species = l.Species(data, i)
	m.Occupied = true
	return m
}
