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
	"fmt"
	"log/slog"
	"sort"
	"strings"
)

// DecodeMode controls whether Feed attempts a decode pass immediately
// after admitting a symbol, or leaves that to an explicit call to
// Decode. Mirrors the original's Decoding::{Defer,Start} enum.
type DecodeMode int

const (
	// DecodeDefer admits the symbol without attempting to decode.
	DecodeDefer DecodeMode = iota
	// DecodeNow admits the symbol and immediately runs the peeling
	// decoder over whatever is newly resolvable.
	DecodeNow
)

// LtCodec implements the Luby Transform fountain code: encoding XORs a
// Soliton-sampled number of source symbols together; decoding runs a
// belief-propagation "peeling" pass over the bipartite graph of source
// and encoded symbols as they arrive.
//
// The same LtCodec type serves both sides of a transfer: the encoding
// half (GenerateSymbol) reads from the buffer handed to SetInputData,
// while the decoding half (Feed, Decode) builds its own graph of Nodes.
// Both halves advance the same Prng and symbol counter, so one instance
// acts as either an encoder or a decoder, not both. A decoder never
// calls SetInputData; an encoder never calls Feed.
type LtCodec struct {
	degreeDist DegreeDistribution
	prng       Prng

	symbolLength  int
	inputDataSize int
	inputSymbols  int
	inputData     []byte

	currentSymbol int
	currentEdges  []uint64

	dataNodes    []Node
	encodedNodes []Node

	dataQueue    []int
	encodedQueue []int
	unknownSyms  int

	logger *slog.Logger
}

// NewLtCodec returns an LtCodec driven by dist. Call SetSeed,
// SetInputDataSize and SetSymbolLength before encoding or decoding.
func NewLtCodec(dist DegreeDistribution) *LtCodec {
	return &LtCodec{degreeDist: dist, logger: defaultLogger}
}

// SetLogger overrides the codec's default (root) slog.Logger.
func (c *LtCodec) SetLogger(l *slog.Logger) { c.logger = l }

// SetSeed seeds both the codec's own Prng (used for symbol selection)
// and its DegreeDistribution. An encoder and a decoder configured with
// the same seed, input size and symbol length draw identical degree
// and edge sequences.
func (c *LtCodec) SetSeed(seed uint32) {
	c.prng.SetSeed(seed)
	c.degreeDist.SetSeed(seed)
}

// SetInputDataSize records the total size, in bytes, of the data this
// codec will encode or decode. Must be called before SetSymbolLength.
func (c *LtCodec) SetInputDataSize(size int) { c.inputDataSize = size }

// SetSymbolLength fixes the per-symbol length and derives the number
// of source symbols (k = inputDataSize / length), allocating k empty,
// unknown data nodes. Returns an error if length is non-positive or
// does not evenly divide the configured input data size.
func (c *LtCodec) SetSymbolLength(length int) error {
	if length <= 0 {
		return ErrZeroSymbolLength
	}
	if c.inputDataSize%length != 0 {
		return wrapf(ErrInputSizeNotMultiple, "symbol length %d, input size %d", length, c.inputDataSize)
	}
	if c.inputDataSize/length == 0 {
		return ErrNoSourceSymbols
	}

	c.symbolLength = length
	c.inputSymbols = c.inputDataSize / length
	c.degreeDist.SetInputSize(c.inputSymbols)

	c.dataNodes = make([]Node, c.inputSymbols)
	for i := range c.dataNodes {
		c.dataNodes[i] = newEmptyNode(length)
	}
	c.encodedNodes = nil
	c.dataQueue = nil
	c.encodedQueue = nil
	c.currentSymbol = 0
	c.unknownSyms = c.inputSymbols
	return nil
}

// SetInputData hands the codec its source buffer for encoding, under
// the given ownership contract (spec §8, "Ownership correctness").
// len(data) must equal the size passed to SetInputDataSize.
func (c *LtCodec) SetInputData(data []byte, own Ownership) error {
	if len(data) != c.inputDataSize {
		return wrapf(ErrInputLengthMismatch, "got %d bytes, want %d", len(data), c.inputDataSize)
	}
	switch own {
	case Copied:
		cp := make([]byte, len(data))
		copy(cp, data)
		c.inputData = cp
	default: // Owned, Viewed
		c.inputData = data
	}
	return nil
}

// selectSymbols draws num distinct source indices in [0, inputSymbols)
// by rejection sampling, the same approach as the original's
// std::set-backed select_symbols: duplicates are simply redrawn until
// the set reaches the target size. For degree num close to
// inputSymbols this degrades, but degrees this large are vanishingly
// rare under either Soliton distribution.
func (c *LtCodec) selectSymbols(num int) {
	chosen := make(map[uint64]struct{}, num)
	for len(chosen) < num {
		v := c.prng.Next() % uint64(c.inputSymbols)
		chosen[v] = struct{}{}
	}
	edges := make([]uint64, 0, num)
	for v := range chosen {
		edges = append(edges, v)
	}
	sort.Slice(edges, func(i, j int) bool { return edges[i] < edges[j] })
	c.currentEdges = edges
}

// shuffleInputSymbols draws the next degree and the edge set for it.
// discard is kept only to mirror the original's fast-forward call
// shape (src/lt.cpp shuffle_input_symbols); it has no effect on the
// computation, since every step must still consume exactly one degree
// sample and one rejection-sampling draw to keep the Prng in lockstep
// between encoder and decoder.
func (c *LtCodec) shuffleInputSymbols(discard bool) {
	_ = discard
	c.selectSymbols(c.degreeDist.SampleDegree())
}

// SymbolDegree draws and returns the next degree the distribution
// would produce, without generating or feeding a symbol. A debug aid
// carried over from the original's symbol_degree(), not used by
// GenerateSymbol or Feed themselves.
func (c *LtCodec) SymbolDegree() int {
	return c.degreeDist.SampleDegree()
}

// GenerateSymbol produces the next encoded symbol in sequence, XORing
// together the source symbols chosen by the current degree and edge
// draw. The caller is responsible for tracking which sequential symbol
// number this is; Feed on the decode side expects numbers to increase
// monotonically starting from 0.
func (c *LtCodec) GenerateSymbol() []byte {
	out := make([]byte, c.symbolLength)
	c.shuffleInputSymbols(false)
	c.currentSymbol++

	for _, idx := range c.currentEdges {
		off := int(idx) * c.symbolLength
		in := c.inputData[off : off+c.symbolLength]
		for i := range out {
			out[i] ^= in[i]
		}
	}
	return out
}

// Feed admits an encoded symbol with the given sequence number into
// the decode graph, fast-forwarding the shared Prng/degree sequence to
// that position if symbols were skipped. If mode is DecodeNow, Feed
// also runs Decode before returning. The return value reports whether
// the full input is now decodable, exactly as Decode would.
//
// number must be the sequence index the encoder used when it produced
// data via GenerateSymbol; numbers must be fed in non-decreasing order
// (spec §9, Open Question 1). Feeding the same number again admits a
// redundant copy with the same edge set. A number smaller than one
// already fed does not rewind the Prng: the symbol is admitted with the
// edge set of the most recently drawn number, which corrupts the graph.
// That case is reported only via a Warn log, not an error return, to
// keep the boolean-only protocol the original exposes for Feed/Decode.
func (c *LtCodec) Feed(data []byte, number int, own Ownership, mode DecodeMode) bool {
	if number+1 < c.currentSymbol {
		c.logger.Warn("lt feed received non-monotonic symbol number", "number", number, "current", c.currentSymbol)
	}
	for c.currentSymbol < number+1 {
		discard := c.currentSymbol != number
		c.shuffleInputSymbols(discard)
		c.currentSymbol++
	}

	node := newNode(data, own)
	edges := make([]uint64, len(c.currentEdges))
	copy(edges, c.currentEdges)
	node.initEdges(edges)

	// Source nodes refer to encoded nodes by their position in
	// encodedNodes, which differs from number once symbols are skipped.
	id := len(c.encodedNodes)
	for _, srcIdx := range c.currentEdges {
		src := &c.dataNodes[srcIdx]
		if src.isKnown() {
			node.eraseEdge(srcIdx)
			node.xorInto(src.buf)
		}
		src.addEdge(uint64(id))
	}

	if node.edgeCount() == 1 {
		c.encodedQueue = append(c.encodedQueue, id)
	}
	c.encodedNodes = append(c.encodedNodes, node)

	c.logger.Debug("lt symbol fed", "number", number, "degree", node.edgeCount())

	return mode == DecodeNow && c.Decode()
}

// Decode runs belief-propagation peeling to exhaustion: any encoded
// node of degree 1 resolves its one remaining source symbol, which in
// turn reduces the degree of every encoded node it still touches,
// possibly unlocking more degree-1 nodes. It returns true once every
// source symbol is known, false if the graph runs dry first (spec §7,
// IncompleteGraph).
func (c *LtCodec) Decode() bool {
	if c.unknownSyms != 0 {
		for len(c.dataQueue) != 0 || len(c.encodedQueue) != 0 {
			encodedBatch := c.encodedQueue
			dataBatch := c.dataQueue
			c.encodedQueue = nil
			c.dataQueue = nil

			for _, idx := range encodedBatch {
				c.processEncodedNode(idx)
			}
			for _, idx := range dataBatch {
				c.processInputNode(idx)
			}
		}
	}
	return c.unknownSyms == 0
}

// IsDecoded reports whether every source symbol has been recovered.
func (c *LtCodec) IsDecoded() bool { return c.unknownSyms == 0 }

// processEncodedNode resolves the single source symbol an encoded node
// of degree 1 still points to, handing that node's buffer over to the
// source node via swap (so no extra allocation or copy is needed) and
// scheduling the now-known source symbol for release.
func (c *LtCodec) processEncodedNode(num int) {
	node := &c.encodedNodes[num]
	if node.edgeCount() != 1 {
		return
	}
	edge := node.edgeAt(0)
	node.clearEdges()

	src := &c.dataNodes[edge]
	if src.isKnown() {
		return
	}

	src.swap(node)
	src.makeKnown()
	src.eraseEdge(uint64(num))

	c.unknownSyms--
	c.logger.Debug("lt source symbol resolved", "symbol", edge, "via_encoded", num)
	c.dataQueue = append(c.dataQueue, int(edge))
}

// processInputNode XORs a newly-known source symbol out of every
// encoded node still connected to it, queuing any encoded node that
// drops to degree 1 as a result.
func (c *LtCodec) processInputNode(num int) {
	src := &c.dataNodes[num]
	for i := 0; i < src.edgeCount(); i++ {
		edge := src.edgeAt(i)
		droplet := &c.encodedNodes[edge]
		droplet.eraseEdge(uint64(num))

		if droplet.edgeCount() == 0 {
			continue
		}
		droplet.xorInto(src.buf)

		if droplet.edgeCount() == 1 {
			c.encodedQueue = append(c.encodedQueue, int(edge))
		}
	}
	src.clearEdges()
}

// DebugString renders the current state of every source and encoded
// node, one per line, the Go equivalent of the original's
// print_hash_matrix (LT::print_hash_matrix, gated there behind a trace
// log level rather than exposed as its own method). Intended for tests
// and interactive debugging, not for wire use.
func (c *LtCodec) DebugString() string {
	var b strings.Builder
	b.WriteString("Input nodes\n")
	for idx := range c.dataNodes {
		n := &c.dataNodes[idx]
		if n.isKnown() {
			fmt.Fprintf(&b, "%d K %#x\n", idx, n.buf)
			continue
		}
		edges := make([]string, n.edgeCount())
		for i := range edges {
			edges[i] = fmt.Sprintf("%d", n.edgeAt(i))
		}
		fmt.Fprintf(&b, "%d %s\n", idx, strings.Join(edges, ", "))
	}
	b.WriteString("Encoded nodes\n")
	for idx := range c.encodedNodes {
		n := &c.encodedNodes[idx]
		edges := make([]string, n.edgeCount())
		for i := range edges {
			edges[i] = fmt.Sprintf("%d", n.edgeAt(i))
		}
		fmt.Fprintf(&b, "%d %s %#x\n", idx, strings.Join(edges, ", "), n.buf)
	}
	return b.String()
}

// DecodedBuffer concatenates the recovered source symbols, in order,
// into a single buffer the size of the original input. Call only after
// Decode (or a Feed in DecodeNow mode) has returned true; symbols not
// yet known are returned as their zero-filled placeholder.
func (c *LtCodec) DecodedBuffer() []byte {
	out := make([]byte, c.inputDataSize)
	for i := range c.dataNodes {
		copy(out[i*c.symbolLength:(i+1)*c.symbolLength], c.dataNodes[i].buf)
	}
	return out
}
