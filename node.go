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

import "sort"

// Ownership records how a Node's buffer relates to the caller's
// allocation. It mirrors the Memory{Owner, MakeCopy, View} variant of
// the original C++ Node (include/node.h): Go's garbage collector makes
// the *lifetime* management moot, but the aliasing contract still
// matters (spec §8, "Ownership correctness") — an Owned or Viewed
// buffer is used in place, so the decoder's XOR reductions write into
// the caller's slice, while a Copy is independent of the caller's
// original slice from the moment it is taken.
type Ownership int

const (
	// Owned means the codec adopts the caller's slice outright; the
	// caller must not touch it again.
	Owned Ownership = iota
	// Copied means the codec immediately duplicates the caller's
	// slice; later mutation of the original by the caller is invisible
	// to the codec.
	Copied
	// Viewed means the codec borrows the slice without copying; the
	// caller must keep it alive and unchanged for as long as the codec
	// needs it.
	Viewed
)

// Node is a bipartite-graph vertex: a symbol buffer plus the set of
// edges (source<->encoded indices) still incident to it. The same type
// backs both source nodes and encoded nodes in LtCodec.
type Node struct {
	buf       []byte
	ownership Ownership
	known     bool
	edges     []uint64
}

// newNode wraps buf according to the requested ownership variant.
func newNode(buf []byte, own Ownership) Node {
	n := Node{ownership: own}
	switch own {
	case Copied:
		cp := make([]byte, len(buf))
		copy(cp, buf)
		n.buf = cp
	default: // Owned, Viewed
		n.buf = buf
	}
	return n
}

// newEmptyNode allocates a fresh, zeroed L-byte owned buffer. Used for
// source nodes before anything is known about them.
func newEmptyNode(length int) Node {
	return Node{buf: make([]byte, length), ownership: Owned}
}

func (n *Node) at(i int) byte { return n.buf[i] }

func (n *Node) set(i int, v byte) { n.buf[i] = v }

// xorInto XORs other's bytes into n's buffer, byte for byte. Both
// buffers must be the same length.
func (n *Node) xorInto(other []byte) {
	for i := range other {
		n.buf[i] ^= other[i]
	}
}

func (n *Node) initEdges(edges []uint64) {
	n.edges = edges
}

func (n *Node) edgeCount() int { return len(n.edges) }

func (n *Node) edgeAt(i int) uint64 { return n.edges[i] }

// addEdge appends an edge, keeping the edge list sorted the way the
// original's std::set<size_t> iteration order does.
func (n *Node) addEdge(e uint64) {
	i := sort.Search(len(n.edges), func(i int) bool { return n.edges[i] >= e })
	if i < len(n.edges) && n.edges[i] == e {
		return
	}
	n.edges = append(n.edges, 0)
	copy(n.edges[i+1:], n.edges[i:])
	n.edges[i] = e
}

// eraseEdge removes e from the edge set if present.
func (n *Node) eraseEdge(e uint64) {
	i := sort.Search(len(n.edges), func(i int) bool { return n.edges[i] >= e })
	if i < len(n.edges) && n.edges[i] == e {
		n.edges = append(n.edges[:i], n.edges[i+1:]...)
	}
}

func (n *Node) clearEdges() { n.edges = n.edges[:0] }

func (n *Node) makeKnown() { n.known = true }

func (n *Node) isKnown() bool { return n.known }

// swap exchanges buffer, ownership and known-ness with other. Used by
// the peeling decoder to hand an encoded symbol's buffer over to the
// source node it solves, without ever double-owning a buffer.
func (n *Node) swap(other *Node) {
	n.buf, other.buf = other.buf, n.buf
	n.ownership, other.ownership = other.ownership, n.ownership
	n.known, other.known = other.known, n.known
}
