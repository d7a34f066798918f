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
	"io"

	"github.com/icza/bitio"
)

// bitset is a packed, word-addressed GF(2) vector of a fixed length.
// RlfCodec uses one per encoded row (the h_n coefficient vector of
// spec §4.5): the original C++ implementation stores one byte per
// coefficient bit, which is simple but wastes 7 bits per entry and
// forces byte-at-a-time XOR during Gauss-Jordan elimination. Packing
// into uint64 words keeps the same algorithm (spec §4.5.2 is unchanged)
// while making row XOR run a word at a time.
type bitset struct {
	words []uint64
	n     int
}

func newBitset(n int) bitset {
	return bitset{words: make([]uint64, (n+63)/64), n: n}
}

func (b *bitset) get(i int) bool {
	return b.words[i/64]&(uint64(1)<<(uint(i)%64)) != 0
}

func (b *bitset) set(i int, v bool) {
	w := i / 64
	mask := uint64(1) << (uint(i) % 64)
	if v {
		b.words[w] |= mask
	} else {
		b.words[w] &^= mask
	}
}

// xor XORs other into b in place; both must have the same length.
func (b *bitset) xor(other bitset) {
	for i := range b.words {
		b.words[i] ^= other.words[i]
	}
}

func (b *bitset) clone() bitset {
	cp := bitset{words: make([]uint64, len(b.words)), n: b.n}
	copy(cp.words, b.words)
	return cp
}

// marshalBinary packs the bitset into a byte slice, one bit per
// coefficient, MSB-first within each byte — used only by tests that
// cross-check the packed representation against an unpacked reference
// using github.com/icza/bitio, the same bit-level I/O library
// mewkiz/flac uses for sub-byte field packing.
func (b *bitset) marshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	w := bitio.NewWriter(&buf)
	for i := 0; i < b.n; i++ {
		if err := w.WriteBool(b.get(i)); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// unmarshalBitset restores a bitset of length n from its packed form.
func unmarshalBitset(n int, data []byte) (bitset, error) {
	b := newBitset(n)
	r := bitio.NewReader(bytes.NewReader(data))
	for i := 0; i < n; i++ {
		bit, err := r.ReadBool()
		if err != nil {
			if err == io.EOF {
				break
			}
			return bitset{}, err
		}
		b.set(i, bit)
	}
	return b, nil
}
