// Copyright (c) 2025 Ali Ghaffaari
// SPDX-License-Identifier: MIT

// Package bitvec implements succinct rank/select bitvectors.
//
// A BitVector wraps a github.com/bits-and-blooms/bitset.BitSet word slice
// and layers a block-summary index on top of it so that Rank1 and Select1
// answer in O(1) and O(log blocks) respectively once the vector has been
// frozen with Freeze. This is a generalization of the popcount-compressed
// philosophy used throughout the bart routing-table package (see e.g. its
// internal bitset.Rank helper) into a full rank/select support structure,
// which bart itself never needed since it only ever counts prefixes of a
// single node's children.
//
// A BitVector is built by repeated calls to Set, then frozen once with
// Freeze before Rank1/Select1 may be called. Mutating a frozen vector
// invalidates the block index; call Freeze again before querying it.
package bitvec

import (
	"math/bits"

	"github.com/bits-and-blooms/bitset"
)

// blockBits is the number of bits summarized by one rank-index entry.
// Chosen equal to the machine word size so each block boundary aligns
// with a bitset word boundary.
const blockBits = 64

// BitVector is a growable bit sequence supporting O(1) rank and
// O(log n) select once frozen.
type BitVector struct {
	bits   *bitset.BitSet
	length uint

	// cumulative[i] is the number of set bits in [0, i*blockBits).
	// Built by Freeze; nil (and stale) after a mutation.
	cumulative []uint32
	frozen     bool
}

// New returns an empty BitVector with room for at least n bits.
func New(n uint) *BitVector {
	return &BitVector{bits: bitset.New(n)}
}

// Set sets bit i to 1, growing the vector if necessary, and invalidates
// the rank/select index.
func (v *BitVector) Set(i uint) {
	v.bits.Set(i)
	if i+1 > v.length {
		v.length = i + 1
	}
	v.frozen = false
}

// Test reports whether bit i is set.
func (v *BitVector) Test(i uint) bool {
	return v.bits.Test(i)
}

// Len returns the number of bits addressable by the vector (the index one
// past the highest bit ever Set).
func (v *BitVector) Len() uint {
	return v.length
}

// Count returns the total number of set bits.
func (v *BitVector) Count() uint {
	return v.bits.Count()
}

// Freeze (re)builds the block-summary rank index. It must be called at
// least once before Rank1 or Select1, and again after any Set call that
// should be reflected in subsequent queries.
func (v *BitVector) Freeze() {
	nBlocks := int(v.length)/blockBits + 2
	cum := make([]uint32, nBlocks)
	var running uint32
	for b := 1; b < nBlocks; b++ {
		lo := uint((b - 1) * blockBits)
		hi := lo + blockBits
		running += uint32(popcountRange(v.bits, lo, hi))
		cum[b] = running
	}
	v.cumulative = cum
	v.frozen = true
}

// popcountRange counts set bits in [lo, hi) by delegating to NextSet, which
// is the only range-scan primitive the underlying library exposes cheaply.
func popcountRange(b *bitset.BitSet, lo, hi uint) int {
	count := 0
	i := lo
	for {
		next, ok := b.NextSet(i)
		if !ok || next >= hi {
			break
		}
		count++
		i = next + 1
	}
	return count
}

// Rank1 returns the number of set bits in [0, i), i.e. the 0-based rank of
// position i among all positions. Requires a prior Freeze.
func (v *BitVector) Rank1(i uint) int {
	block := i / blockBits
	base := int(v.cumulative[block])
	lo := block * blockBits
	return base + popcountRange(v.bits, lo, i)
}

// Select1 returns the position of the (r+1)-th set bit (0-based rank r),
// i.e. the smallest i such that Rank1(i+1) == r+1 and bit i is set.
// Requires a prior Freeze. ok is false when fewer than r+1 bits are set.
func (v *BitVector) Select1(r int) (pos uint, ok bool) {
	if r < 0 {
		return 0, false
	}
	target := uint32(r + 1)

	// binary search the largest block whose cumulative count is < target
	lo, hi := 0, len(v.cumulative)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if v.cumulative[mid] < target {
			lo = mid
		} else {
			hi = mid - 1
		}
	}

	need := int(target - v.cumulative[lo])
	start := uint(lo * blockBits)
	i := start
	for need > 0 {
		next, found := v.bits.NextSet(i)
		if !found {
			return 0, false
		}
		need--
		if need == 0 {
			return next, true
		}
		i = next + 1
	}
	return 0, false
}

// PopcountWord exposes bits.OnesCount64 for callers that keep their own
// packed words alongside a BitVector (e.g. compact path encodings).
func PopcountWord(w uint64) int {
	return bits.OnesCount64(w)
}

// Clone returns a deep, independent copy of v, re-binding its index to the
// copy's own backing storage. BitVector is otherwise unsafe to share across
// goroutines that mutate it, so Clone is the only supported way to fork one.
func (v *BitVector) Clone() *BitVector {
	c := &BitVector{
		length: v.length,
		frozen: v.frozen,
	}
	c.bits = v.bits.Clone()
	if v.frozen {
		c.cumulative = append([]uint32(nil), v.cumulative...)
	}
	return c
}
