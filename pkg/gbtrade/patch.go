// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 DisreputableCode

package gbtrade

// The patch list escapes 0xFE, which the link protocol reserves as its
// stream-idle marker (pokered home/serial.asm FixDataForLinkTransfer /
// ApplyPatchList). The sender replaces each 0xFE in the payload with 0xFF
// and transmits the 1-indexed positions separately; the receiver restores
// them. Positions are split into two sections at PatchSplit because a
// single section's offsets must fit in one byte.

// BuildPatchList scans data for 0xFE bytes, replaces them with 0xFF in
// place, and writes their 1-indexed positions into patch. patch must be
// PatchListSize bytes; it is zeroed and given a 3-byte 0xFD preamble.
// Writes past the end of patch are dropped.
func BuildPatchList(data, patch []byte, split int) {
	for i := range patch {
		patch[i] = 0
	}
	patch[0] = BytePreamble
	patch[1] = BytePreamble
	patch[2] = BytePreamble

	idx := PatchPreambleSize

	// Section 1: data[0..split)
	end1 := split
	if len(data) < end1 {
		end1 = len(data)
	}
	for i := 0; i < end1 && idx < len(patch)-2; i++ {
		if data[i] == ByteNoData {
			patch[idx] = byte(i + 1)
			idx++
			data[i] = BytePatchTerm
		}
	}
	if idx < len(patch)-1 {
		patch[idx] = BytePatchTerm
		idx++
	}

	// Section 2: data[split..)
	for i := split; i < len(data) && idx < len(patch)-1; i++ {
		if data[i] == ByteNoData {
			patch[idx] = byte(i - split + 1)
			idx++
			data[i] = BytePatchTerm
		}
	}
	if idx < len(patch) {
		patch[idx] = BytePatchTerm
	}
}

// ApplyPatchList restores 0xFE bytes in data at the positions recorded in
// patch. It is the exact inverse of BuildPatchList. Values 0x00, 0xFD and
// 0xFE inside the list are wire framing and are skipped; out-of-range
// positions are ignored.
func ApplyPatchList(data, patch []byte) {
	idx := 0
	for idx < len(patch) && patch[idx] == BytePreamble {
		idx++
	}

	inSection2 := false
	base := 0

	for idx < len(patch) {
		v := patch[idx]
		idx++

		if v == BytePatchTerm {
			if inSection2 {
				break
			}
			inSection2 = true
			base = PatchSplit
			continue
		}
		if v == 0 || v == BytePreamble || v == ByteNoData {
			continue
		}

		off := base + int(v) - 1
		if off < len(data) {
			data[off] = ByteNoData
		}
	}
}
