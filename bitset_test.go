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

import "testing"

func TestBitsetSetGet(t *testing.T) {
	b := newBitset(130) // spans three 64-bit words
	for _, i := range []int{0, 1, 63, 64, 65, 129} {
		b.set(i, true)
	}
	for i := 0; i < 130; i++ {
		want := i == 0 || i == 1 || i == 63 || i == 64 || i == 65 || i == 129
		if got := b.get(i); got != want {
			t.Errorf("bit %d = %v, want %v", i, got, want)
		}
	}
}

func TestBitsetXor(t *testing.T) {
	a := newBitset(8)
	b := newBitset(8)
	a.set(0, true)
	a.set(3, true)
	b.set(3, true)
	b.set(5, true)

	a.xor(b)
	want := map[int]bool{0: true, 5: true}
	for i := 0; i < 8; i++ {
		if got := a.get(i); got != want[i] {
			t.Errorf("bit %d after xor = %v, want %v", i, got, want[i])
		}
	}
}

func TestBitsetClone(t *testing.T) {
	a := newBitset(8)
	a.set(2, true)
	cp := a.clone()
	cp.set(2, false)
	cp.set(5, true)

	if !a.get(2) {
		t.Errorf("clone mutation leaked back into original")
	}
	if a.get(5) {
		t.Errorf("clone mutation leaked back into original")
	}
}

func TestBitsetMarshalRoundTrip(t *testing.T) {
	b := newBitset(37)
	for i := 0; i < 37; i += 3 {
		b.set(i, true)
	}

	packed, err := b.marshalBinary()
	if err != nil {
		t.Fatalf("marshalBinary: %v", err)
	}

	restored, err := unmarshalBitset(37, packed)
	if err != nil {
		t.Fatalf("unmarshalBitset: %v", err)
	}

	for i := 0; i < 37; i++ {
		if got, want := restored.get(i), b.get(i); got != want {
			t.Errorf("bit %d after round trip = %v, want %v", i, got, want)
		}
	}
}
