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
	"math"
	"sort"
)

// DegreeDistribution samples the number of source symbols combined
// into one encoded symbol. Implementations own their own Prng so that
// an encoder and a decoder configured with the same seed draw the same
// sequence of degrees.
type DegreeDistribution interface {
	// SetSeed seeds the distribution's internal Prng.
	SetSeed(seed uint32)
	// SetInputSize tells the distribution how many source symbols (k)
	// it is sampling degrees for; must be called before SampleDegree.
	SetInputSize(k int)
	// SampleDegree draws one degree in [1, k].
	SampleDegree() int
	// ExpectedPMF returns the closed-form probability of each degree
	// 1..k, indexed 0..k-1.
	ExpectedPMF(k int) []float64
}

// IdealSoliton implements ρ(1)=1/k, ρ(d)=1/(d(d-1)) for 2<=d<=k (spec
// §4.2.1), sampled by folding the distribution's tail onto degree 1.
type IdealSoliton struct {
	prng Prng
	k    int
}

// NewIdealSoliton returns a ready-to-seed IdealSoliton distribution.
func NewIdealSoliton() *IdealSoliton {
	return &IdealSoliton{}
}

func (d *IdealSoliton) SetSeed(seed uint32) { d.prng.SetSeed(seed) }

func (d *IdealSoliton) SetInputSize(k int) { d.k = k }

// SampleDegree draws u in [0,1), sets v = 1/(1-u), and returns ceil(v)
// if v < k, else 1 — this folds the soliton tail onto degree 1 so that
// the empirical mass at 1 matches ρ(1) exactly.
func (d *IdealSoliton) SampleDegree() int {
	u := d.prng.RandFloat()
	v := 1.0 / (1.0 - u)
	if v < float64(d.k) {
		return int(math.Ceil(v))
	}
	return 1
}

// ExpectedPMF returns ρ(1..k) directly.
func (d *IdealSoliton) ExpectedPMF(k int) []float64 {
	return idealPMF(k)
}

func idealPMF(k int) []float64 {
	pmf := make([]float64, k)
	if k == 0 {
		return pmf
	}
	pmf[0] = 1.0 / float64(k)
	for d := 2; d <= k; d++ {
		pmf[d-1] = 1.0 / (float64(d) * float64(d-1))
	}
	return pmf
}

// RobustSoliton adds a spike term to the Ideal Soliton distribution,
// parameterised by the target decode-failure probability delta and a
// tuning constant c (spec §4.2.2).
type RobustSoliton struct {
	prng   Prng
	delta  float64
	c      float64
	k      int
	cdf    []float64 // cumulative, length k
	pmf    []float64 // normalized, length k
}

// NewRobustSoliton returns a RobustSoliton with the given (delta, c).
func NewRobustSoliton(delta, c float64) *RobustSoliton {
	return &RobustSoliton{delta: delta, c: c}
}

func (d *RobustSoliton) SetSeed(seed uint32) { d.prng.SetSeed(seed) }

// SetInputSize precomputes the normalized PMF and its running
// cumulative distribution for k source symbols.
func (d *RobustSoliton) SetInputSize(k int) {
	d.k = k
	d.pmf = d.ExpectedPMF(k)
	d.cdf = make([]float64, k)
	sum := 0.0
	for i, p := range d.pmf {
		sum += p
		d.cdf[i] = sum
	}
}

// SampleDegree draws u in [0,1) and returns 1 + the lowest index whose
// cumulative value is >= u; if u exceeds the last entry, returns k.
func (d *RobustSoliton) SampleDegree() int {
	u := d.prng.RandFloat()
	i := sort.Search(len(d.cdf), func(i int) bool { return d.cdf[i] >= u })
	if i >= len(d.cdf) {
		return d.k
	}
	return i + 1
}

// ExpectedPMF computes the normalized mu(d) = (rho(d) + tau(d)) / Z for
// d = 1..k, per spec §4.2.2:
//
//	R      = c * ln(k/delta) * sqrt(k)
//	spike  = min(k-1, ceil(k/R))
//	tau(d) = R/(d*k)                       for d = 1..spike
//	tau(spike+1) = R*ln(R/delta)/k
//	tau(d) = 0                             otherwise
func (d *RobustSoliton) ExpectedPMF(k int) []float64 {
	pmf := idealPMF(k)
	if k == 0 {
		return pmf
	}

	r := d.c * math.Log(float64(k)/d.delta) * math.Sqrt(float64(k))
	spike := int(math.Ceil(float64(k) / r))
	if spike > k-1 {
		spike = k - 1
	}
	if spike < 0 {
		spike = 0
	}

	for deg := 1; deg <= spike; deg++ {
		pmf[deg-1] += r / (float64(deg) * float64(k))
	}
	if spike+1 <= k {
		pmf[spike] += r * math.Log(r/d.delta) / float64(k)
	}

	total := 0.0
	for _, p := range pmf {
		total += p
	}
	if total > 0 {
		for i := range pmf {
			pmf[i] /= total
		}
	}
	return pmf
}
