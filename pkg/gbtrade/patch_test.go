// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 DisreputableCode

package gbtrade

import (
	"bytes"
	"math/rand"
	"os"
	"strconv"
	"testing"
	"time"
)

// getFuzzRounds returns the number of fuzz rounds from FUZZ_ROUNDS env var, default 1000
func getFuzzRounds() int {
	if envRounds := os.Getenv("FUZZ_ROUNDS"); envRounds != "" {
		if rounds, err := strconv.Atoi(envRounds); err == nil && rounds > 0 {
			return rounds
		}
	}
	return 1000
}

// getFuzzSeed returns the seed from FUZZ_SEED env var, or generates one from current time
func getFuzzSeed() int64 {
	if envSeed := os.Getenv("FUZZ_SEED"); envSeed != "" {
		if seed, err := strconv.ParseInt(envSeed, 10, 64); err == nil {
			return seed
		}
	}
	return time.Now().UnixNano()
}

// newFuzzRng creates a new random number generator and logs the seed for reproducibility
func newFuzzRng(t *testing.T) *rand.Rand {
	seed := getFuzzSeed()
	t.Logf("Seed: %d (reproduce with FUZZ_SEED=%d)", seed, seed)
	return rand.New(rand.NewSource(seed))
}

func buildAndApply(t *testing.T, data []byte, split int) []byte {
	t.Helper()

	work := make([]byte, len(data))
	copy(work, data)

	patch := make([]byte, PatchListSize)
	BuildPatchList(work, patch, split)
	ApplyPatchList(work, patch)
	return work
}

// ============================================================
// Round-Trip Tests
// ============================================================

func TestPatchList_RoundTrip_Empty(t *testing.T) {
	patch := make([]byte, PatchListSize)
	BuildPatchList(nil, patch, PatchSplit)

	if patch[0] != BytePreamble || patch[1] != BytePreamble || patch[2] != BytePreamble {
		t.Errorf("missing preamble: % X", patch[:3])
	}
	if patch[3] != BytePatchTerm || patch[4] != BytePatchTerm {
		t.Errorf("expected empty terminator pair, got % X", patch[3:5])
	}
}

func TestPatchList_RoundTrip_Boundaries(t *testing.T) {
	mk := func(length int, positions ...int) []byte {
		data := make([]byte, length)
		for i := range data {
			data[i] = 0xAA
		}
		for _, p := range positions {
			data[p] = ByteNoData
		}
		return data
	}

	tests := []struct {
		name string
		data []byte
	}{
		{"no escapes", mk(100)},
		{"escape at 0", mk(100, 0)},
		{"escape at end", mk(100, 99)},
		{"exactly split-size data", mk(PatchSplit, 0, PatchSplit-1)},
		{"escape at 251", mk(300, 251)},
		{"escape at 252", mk(300, 252)},
		{"escape at last byte", mk(300, 299)},
		{"straddling the split", mk(300, 250, 251, 252, 253)},
		{"gen1 data portion", mk(Gen1DataSize, 0, 251, 252, Gen1DataSize-1)},
		{"gen2 data portion", mk(Gen2DataSize, 13, 252, Gen2DataSize-1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildAndApply(t, tt.data, PatchSplit)
			if !bytes.Equal(got, tt.data) {
				t.Errorf("round trip mismatch\n got  % X\n want % X", got, tt.data)
			}
		})
	}
}

func TestPatchList_BuildScrubsNoDataBytes(t *testing.T) {
	data := make([]byte, 300)
	data[5] = ByteNoData
	data[260] = ByteNoData

	patch := make([]byte, PatchListSize)
	BuildPatchList(data, patch, PatchSplit)

	if data[5] != BytePatchTerm || data[260] != BytePatchTerm {
		t.Errorf("0xFE bytes not replaced: data[5]=0x%02X data[260]=0x%02X", data[5], data[260])
	}
	for i, b := range data {
		if b == ByteNoData {
			t.Errorf("stray 0xFE left at %d", i)
		}
	}

	// Section 1 entry: position 5 -> 6; section 2 entry: 260-252 -> 9.
	if patch[3] != 6 {
		t.Errorf("section 1 entry: got %d, want 6", patch[3])
	}
	if patch[4] != BytePatchTerm {
		t.Errorf("section 1 terminator: got 0x%02X", patch[4])
	}
	if patch[5] != 9 {
		t.Errorf("section 2 entry: got %d, want 9", patch[5])
	}
	if patch[6] != BytePatchTerm {
		t.Errorf("section 2 terminator: got 0x%02X", patch[6])
	}
}

// Scenario: data of length 253 with 0xFE at positions 1 and 252.
func TestPatchList_SplitScenario(t *testing.T) {
	data := make([]byte, 253)
	data[0] = 0xAA
	data[1] = ByteNoData
	data[2] = 0xBB
	data[252] = ByteNoData
	work := make([]byte, len(data))
	copy(work, data)
	patch := make([]byte, PatchListSize)
	BuildPatchList(work, patch, PatchSplit)

	if work[1] != BytePatchTerm {
		t.Errorf("data[1] = 0x%02X, want 0xFF", work[1])
	}
	if work[252] != BytePatchTerm {
		t.Errorf("data[252] = 0x%02X, want 0xFF", work[252])
	}

	want := []byte{BytePreamble, BytePreamble, BytePreamble, 2, BytePatchTerm, 1, BytePatchTerm}
	if !bytes.Equal(patch[:len(want)], want) {
		t.Errorf("patch prefix: got % X, want % X", patch[:len(want)], want)
	}

	ApplyPatchList(work, patch)
	if !bytes.Equal(work, data) {
		t.Errorf("round trip mismatch")
	}
}

func TestPatchList_ApplySkipsReservedBytes(t *testing.T) {
	data := make([]byte, 20)
	patch := make([]byte, PatchListSize)
	patch[0] = BytePreamble
	patch[1] = BytePreamble
	patch[2] = BytePreamble
	patch[3] = 0x00          // reserved, skipped
	patch[4] = BytePreamble  // reserved, skipped
	patch[5] = ByteNoData    // reserved, skipped
	patch[6] = 3             // restores data[2]
	patch[7] = BytePatchTerm // end of section 1
	patch[8] = BytePatchTerm // end of section 2

	ApplyPatchList(data, patch)

	for i, b := range data {
		want := byte(0)
		if i == 2 {
			want = ByteNoData
		}
		if b != want {
			t.Errorf("data[%d] = 0x%02X, want 0x%02X", i, b, want)
		}
	}
}

func TestPatchList_ApplyIgnoresOutOfRange(t *testing.T) {
	data := make([]byte, 4)
	patch := make([]byte, PatchListSize)
	patch[0] = BytePreamble
	patch[1] = BytePreamble
	patch[2] = BytePreamble
	patch[3] = 200 // beyond len(data)
	patch[4] = BytePatchTerm
	patch[5] = 10 // section 2: 252+9, far out of range
	patch[6] = BytePatchTerm

	ApplyPatchList(data, patch)

	for i, b := range data {
		if b != 0 {
			t.Errorf("data[%d] modified to 0x%02X", i, b)
		}
	}
}

// ============================================================
// Randomized Round-Trip Sweep
// ============================================================

func TestPatchList_RoundTrip_Fuzz(t *testing.T) {
	rng := newFuzzRng(t)
	rounds := getFuzzRounds()

	for round := 0; round < rounds; round++ {
		length := rng.Intn(501)
		data := make([]byte, length)
		for i := range data {
			// Bias towards 0xFE so escapes are common.
			if rng.Intn(4) == 0 {
				data[i] = ByteNoData
			} else {
				data[i] = byte(rng.Intn(256))
			}
		}

		split := PatchSplit
		got := buildAndApply(t, data, split)
		if !bytes.Equal(got, data) {
			t.Fatalf("round %d: round trip mismatch (len=%d)", round, length)
		}
	}
}
