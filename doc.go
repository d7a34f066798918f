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

/*
Package fountain implements two rateless erasure codes over GF(2): the
Luby Transform (LT) and a Random Linear Fountain (RLF).

A fountain code splits a fixed-size input into k source symbols and can
then generate an effectively unbounded stream of encoded symbols, each
the XOR of some subset of the source symbols. A receiver that collects
any k+epsilon encoded symbols (for small epsilon, depending on the
code) can reconstruct the original input, without the sender ever
needing to know which specific symbols were lost in transit.

LtCodec implements LT: encoding samples a degree from a Soliton-family
DegreeDistribution and XORs that many randomly chosen source symbols
together; decoding is an incremental belief-propagation ("peeling")
process over a bipartite graph of source and encoded symbols.

RlfCodec implements RLF: encoding XORs a dense, uniformly random subset
of source symbols (roughly half, on average) into every encoded
symbol; decoding is Gauss-Jordan elimination over GF(2).

Both codecs are driven by Prng, a WELL-512 generator seeded identically
on the encoding and decoding side, so that the decoder can replay the
exact sequence of random choices the encoder made for any given
encoded symbol index without any side channel beyond the shared seed,
k, and symbol length.

Everything in this package is synchronous and single-threaded: no
method is safe to call concurrently on the same codec from two
goroutines, though two distinct codec instances are fully independent.
*/
package fountain
