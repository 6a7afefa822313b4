// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 DisreputableCode

// Package gbtrade implements the wire formats of the Generation 1 and
// Generation 2 Pokemon link-cable trade protocol: the party data blocks,
// the 0xFE patch-list escaping scheme, the Game Boy text charset, and the
// species name tables.
//
// Layouts are expressed as explicit byte offsets into the exchanged data
// portion, matching the pokered/pokecrystal RAM structures byte for byte.
package gbtrade

// Link protocol bytes
const (
	ByteBlank         = 0x00
	ByteMaster        = 0x01 // master probe
	ByteSlave         = 0x02 // slave ack
	ByteConnectedGen1 = 0x60
	ByteConnectedGen2 = 0x61
	ByteWait          = 0x7F

	// Menu highlight bytes (items 1-3)
	ByteItem1 = 0xD0
	ByteItem2 = 0xD1
	ByteItem3 = 0xD2

	// Menu selection bytes
	ByteTradeCentre = 0xD4
	ByteColosseum   = 0xD5
	ByteBreakLink   = 0xD6 // Time Capsule in Gen 2

	// Serial framing bytes
	BytePreamble  = 0xFD // block preamble / filler
	ByteNoData    = 0xFE // stream-idle marker, escaped by the patch list
	BytePatchTerm = 0xFF // patch-list section / species terminator

	// Trade Centre selection bytes: 0x60 + party index (0-5)
	ByteSelectBase = 0x60
	ByteCancel     = 0x6F
	ByteDecline    = 0x61
	ByteAccept     = 0x62
)

// Data structure sizes
const (
	NameLength  = 11
	PartyLength = 6
	NumMoves    = 4

	// Party mon structs (pokered wram.asm / pokecrystal pokemon_data_constants.asm)
	Gen1MonSize = 44 // 0x2C
	Gen2MonSize = 48 // 0x30

	// Shared block preamble: 6 bytes of 0xFD. Both generations use the
	// same preamble size, so a single data-start offset serves both.
	BlockPreambleSize = 6

	// Data portions exchanged byte for byte (block minus preamble)
	Gen1DataSize = 418
	Gen2DataSize = 444

	Gen1BlockSize = BlockPreambleSize + Gen1DataSize // 424
	Gen2BlockSize = BlockPreambleSize + Gen2DataSize // 450

	// Patch list: 3-byte 0xFD preamble, two 0xFF-terminated sections
	PatchListSize     = 200
	PatchPreambleSize = 3
	PatchSplit        = 252 // SERIAL_PATCH_DATA_SIZE from the ROM
)

// Generation identifies the trade protocol dialect negotiated during the
// handshake. A Gen 2 game entering the Time Capsule renegotiates to Gen1.
type Generation int

const (
	GenUnknown Generation = iota
	Gen1
	Gen2
)

func (g Generation) String() string {
	switch g {
	case Gen1:
		return "gen1"
	case Gen2:
		return "gen2"
	}
	return "unknown"
}

// TradeMode selects the offer-assembly strategy.
type TradeMode int

const (
	// ModeClone fills all six offered slots with stored slot 0 and writes
	// whatever is received back over slot 0.
	ModeClone TradeMode = iota
	// ModeStorage offers every occupied slot and saves the received mon
	// into the slot that was traded away.
	ModeStorage
)

func (m TradeMode) String() string {
	if m == ModeStorage {
		return "storage"
	}
	return "clone"
}

// StoredMon is one persisted party slot. Mon holds the raw party struct;
// Gen 1 uses the first 44 bytes, Gen 2 all 48.
type StoredMon struct {
	Mon      [Gen2MonSize]uint8
	OT       [NameLength]uint8
	Nickname [NameLength]uint8
	Species  uint8
	Occupied bool
}
