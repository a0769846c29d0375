// Copyright (c) 2025 Ali Ghaffaari
// SPDX-License-Identifier: MIT

package vgseed

import (
	"encoding/binary"
	"fmt"

	"github.com/ghaffaari/vgseed/internal/bitvec"
)

// CompactPath is an immutable, delta-encoded path, produced once a walk is
// finalised and no longer needs mutation (e.g. a committed haplotype kept
// only for coverage queries and position look-ups). The wire/storage form
// is a varint-delta encoding of the node-id sequence -- the same technique
// the bart routing table package uses to keep large prefix sets small on
// disk -- kept alongside the plain id slice it is encoded from, so that
// Rank/Select/PositionToID stay O(1) and never decode it.
type CompactPath struct {
	graph *Graph
	ids   []NodeID // the node ids the delta-varint encoding is built from
	raw   []byte   // the delta-varint encoding itself, kept for Bytes()
	nodeSet map[NodeID]struct{}
	bv    *bitvec.BitVector
}

// NewCompactPath builds a read-only CompactPath from any already-populated
// Path (typically a finalised DefaultPath or DynamicPath).
func NewCompactPath(src Path) *CompactPath {
	ids := append([]NodeID(nil), src.NodeIDs()...)
	cp := &CompactPath{
		graph:   src.Graph(),
		ids:     ids,
		nodeSet: make(map[NodeID]struct{}, len(ids)),
	}
	cp.raw = encodeDeltaVarint(ids)
	for _, id := range ids {
		cp.nodeSet[id] = struct{}{}
	}
	cp.Initialise()
	return cp
}

func encodeDeltaVarint(ids []NodeID) []byte {
	buf := make([]byte, 0, len(ids)*2)
	var prev int64
	var scratch [binary.MaxVarintLen64]byte
	for _, id := range ids {
		delta := int64(id) - prev
		n := binary.PutVarint(scratch[:], delta)
		buf = append(buf, scratch[:n]...)
		prev = int64(id)
	}
	return buf
}

// Bytes returns the delta-varint encoded representation, e.g. for
// persistence alongside a path's node-break bitvector.
func (p *CompactPath) Bytes() []byte { return p.raw }

func (p *CompactPath) Kind() PathKind    { return KindCompact }
func (p *CompactPath) Graph() *Graph     { return p.graph }
func (p *CompactPath) NodeLen() int      { return len(p.ids) }
func (p *CompactPath) NodeIDs() []NodeID { return p.ids }
func (p *CompactPath) Initialised() bool { return p.bv != nil }

func (p *CompactPath) BPLen() int {
	total := 0
	for _, id := range p.ids {
		total += p.graph.NodeLength(id)
	}
	return total
}

// Initialise is idempotent and a no-op after construction: CompactPath is
// always fully initialised, since it is immutable from the moment it is
// built. It exists only so CompactPath satisfies the Path interface.
func (p *CompactPath) Initialise() error {
	if p.bv != nil {
		return nil
	}
	bv := bitvec.New(uint(p.BPLen()))
	pos := uint(0)
	for _, id := range p.ids {
		pos += uint(p.graph.NodeLength(id))
		bv.Set(pos - 1)
	}
	bv.Freeze()
	p.bv = bv
	return nil
}

func (p *CompactPath) Rank(pos int) (int, error) {
	if pos < 0 || pos >= int(p.bv.Len()) {
		return 0, fmt.Errorf("vgseed: %w: position %d", ErrOutOfRange, pos)
	}
	return p.bv.Rank1(uint(pos)), nil
}

func (p *CompactPath) Select(r int) (int, error) {
	if r == 0 {
		return 0, nil
	}
	sel, ok := p.bv.Select1(r - 1)
	if !ok {
		return 0, fmt.Errorf("vgseed: %w: rank %d", ErrOutOfRange, r)
	}
	return int(sel) + 1, nil
}

func (p *CompactPath) PositionToID(pos int) (NodeID, error) {
	r, err := p.Rank(pos)
	if err != nil {
		return 0, err
	}
	if r >= len(p.ids) {
		return 0, fmt.Errorf("vgseed: %w: position %d", ErrOutOfRange, pos)
	}
	return p.ids[r], nil
}

func (p *CompactPath) PositionToOffset(pos int) (int, error) {
	r, err := p.Rank(pos)
	if err != nil {
		return 0, err
	}
	start, err := p.Select(r)
	if err != nil {
		return 0, err
	}
	return pos - start, nil
}

func (p *CompactPath) Sequence(direction Direction, context int) ([]byte, error) {
	return buildSequence(p.graph, p.ids, direction, context)
}

func (p *CompactPath) Contains(id NodeID) bool {
	_, ok := p.nodeSet[id]
	return ok
}

func (p *CompactPath) ContainsRange(ids []NodeID) bool {
	return containsOrdered(p.ids, ids)
}
