// Copyright 2014 Google Inc. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package fountain

import (
	"bytes"
	"strings"
	"testing"
)

// TestRlfEncodeDecodeRoundTrip mirrors the RLF equivalent of
// original_source/lt.cc's simple encode/decode scenarios: generate a
// modest surplus of encoded symbols over k, feed them all to an
// independently-constructed decoder, and confirm Gauss-Jordan
// elimination recovers the exact input across a spread of seeds.
func TestRlfEncodeDecodeRoundTrip(t *testing.T) {
	raw := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	data := repeatedPattern(raw, 4)
	const symbolLength = 2
	inputSymbols := len(data) / symbolLength
	// Each extra row roughly halves the chance a random GF(2) matrix
	// stays rank-deficient, so 24 extra rows over 40 seeds keeps the
	// combined failure probability negligible.
	const encodeExtra = 24

	for seed := uint32(100); seed < 140; seed++ {
		encoder := NewRlfCodec()
		encoder.SetSeed(seed)
		encoder.SetInputDataSize(len(data))
		if err := encoder.SetSymbolLength(symbolLength); err != nil {
			t.Fatalf("seed %d: SetSymbolLength: %v", seed, err)
		}
		if err := encoder.SetInputData(data, Copied); err != nil {
			t.Fatalf("seed %d: SetInputData: %v", seed, err)
		}

		symbols := make([][]byte, inputSymbols+encodeExtra)
		for i := range symbols {
			symbols[i] = encoder.GenerateSymbol()
		}

		decoder := NewRlfCodec()
		decoder.SetSeed(seed)
		decoder.SetInputDataSize(len(data))
		if err := decoder.SetSymbolLength(symbolLength); err != nil {
			t.Fatalf("seed %d: SetSymbolLength: %v", seed, err)
		}

		for i, sym := range symbols {
			decoder.Feed(sym, i, Viewed)
		}

		if !decoder.Decode(false) {
			t.Fatalf("seed %d: decode did not succeed with %d symbols for %d source symbols", seed, len(symbols), inputSymbols)
		}
		if got := decoder.DecodedBuffer(); !bytes.Equal(got, data) {
			t.Fatalf("seed %d: decoded %x, want %x", seed, got, data)
		}
	}
}

func TestRlfDecodeRejectsPartialWithoutFlag(t *testing.T) {
	decoder := NewRlfCodec()
	decoder.SetSeed(1)
	decoder.SetInputDataSize(20)
	decoder.SetSymbolLength(2)

	decoder.Feed([]byte{1, 2}, 0, Owned)
	if decoder.Decode(false) {
		t.Errorf("Decode(false) = true with 1 of 10 symbols, want false")
	}
}

func TestRlfSetSymbolLengthRejectsZero(t *testing.T) {
	c := NewRlfCodec()
	c.SetInputDataSize(8)
	if err := c.SetSymbolLength(0); err == nil {
		t.Errorf("SetSymbolLength(0) succeeded, want error")
	}
}

func TestRlfSetInputDataRejectsLengthMismatch(t *testing.T) {
	c := NewRlfCodec()
	c.SetInputDataSize(8)
	c.SetSymbolLength(2)
	if err := c.SetInputData(make([]byte, 6), Owned); err == nil {
		t.Errorf("SetInputData with mismatched length succeeded, want error")
	}
}

// TestRlfDecodeSingularMatrix feeds k copies of the same row,
// guaranteeing the matrix can never reach full rank: Decode must
// report false rather than panicking (spec §7, SingularMatrix).
func TestRlfDecodeSingularMatrix(t *testing.T) {
	raw := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	data := repeatedPattern(raw, 1)
	const symbolLength = 1
	inputSymbols := len(data) / symbolLength

	encoder := NewRlfCodec()
	encoder.SetSeed(7)
	encoder.SetInputDataSize(len(data))
	encoder.SetSymbolLength(symbolLength)
	encoder.SetInputData(data, Copied)

	decoder := NewRlfCodec()
	decoder.SetSeed(7)
	decoder.SetInputDataSize(len(data))
	decoder.SetSymbolLength(symbolLength)

	sym := encoder.GenerateSymbol()
	// Feeding the same sequence number repeatedly leaves currentRow
	// unchanged between calls, so every fed row is identical: the
	// resulting matrix can never reach full rank.
	for i := 0; i < inputSymbols; i++ {
		decoder.Feed(sym, 0, Copied)
	}

	if decoder.Decode(true) {
		t.Errorf("Decode(true) = true over %d copies of the same row, want false", inputSymbols)
	}
}

func TestRlfSetSymbolLengthRejectsZeroInputSize(t *testing.T) {
	c := NewRlfCodec()
	c.SetInputDataSize(0)
	if err := c.SetSymbolLength(2); err != ErrNoSourceSymbols {
		t.Errorf("SetSymbolLength over a 0-byte input = %v, want ErrNoSourceSymbols", err)
	}
}

func TestRlfDebugStringListsAdmittedRows(t *testing.T) {
	raw := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	data := repeatedPattern(raw, 1)
	const symbolLength = 1

	encoder := NewRlfCodec()
	encoder.SetSeed(3)
	encoder.SetInputDataSize(len(data))
	encoder.SetSymbolLength(symbolLength)
	encoder.SetInputData(data, Copied)

	decoder := NewRlfCodec()
	decoder.SetSeed(3)
	decoder.SetInputDataSize(len(data))
	decoder.SetSymbolLength(symbolLength)
	decoder.Feed(encoder.GenerateSymbol(), 0, Copied)

	out := decoder.DebugString()
	if !strings.HasPrefix(out, "0 ") {
		t.Errorf("DebugString() = %q, want a line for row 0", out)
	}
}
