// Copyright (c) 2025 Ali Ghaffaari
// SPDX-License-Identifier: MIT

package vgseed

// MicroPath reduces a path to the set of its node ids, discarding walk
// order, for use where only coverage (set-membership) queries are needed
// -- in particular the Haplotyper's visited-set of previously committed
// walks, which is consulted far more often than any full path is
// replayed.
type MicroPath struct {
	graph *Graph
	set   map[NodeID]struct{}
}

// newMicroFrom builds a MicroPath from an id slice, used internally by
// DynamicPath.ToMicro and DefaultPath-derived callers.
func newMicroFrom(g *Graph, ids []NodeID) *MicroPath {
	m := &MicroPath{graph: g, set: make(map[NodeID]struct{}, len(ids))}
	for _, id := range ids {
		m.set[id] = struct{}{}
	}
	return m
}

func (p *MicroPath) Kind() PathKind { return KindMicro }
func (p *MicroPath) Graph() *Graph  { return p.graph }
func (p *MicroPath) NodeLen() int   { return len(p.set) }

// NodeIDs returns the node ids in arbitrary (map iteration) order: Micro
// paths do not retain walk order.
func (p *MicroPath) NodeIDs() []NodeID {
	out := make([]NodeID, 0, len(p.set))
	for id := range p.set {
		out = append(out, id)
	}
	return out
}

func (p *MicroPath) Initialised() bool      { return true }
func (p *MicroPath) Initialise() error      { return nil }
func (p *MicroPath) BPLen() int {
	total := 0
	for id := range p.set {
		total += p.graph.NodeLength(id)
	}
	return total
}

// Rank, Select, PositionToID and PositionToOffset are not meaningful
// without walk order and always fail for a MicroPath.
func (p *MicroPath) Rank(int) (int, error)           { return 0, ErrUninitialized }
func (p *MicroPath) Select(int) (int, error)          { return 0, ErrUninitialized }
func (p *MicroPath) PositionToID(int) (NodeID, error) { return 0, ErrUninitialized }
func (p *MicroPath) PositionToOffset(int) (int, error) { return 0, ErrUninitialized }

func (p *MicroPath) Sequence(Direction, int) ([]byte, error) {
	return nil, ErrUninitialized
}

func (p *MicroPath) Contains(id NodeID) bool {
	_, ok := p.set[id]
	return ok
}

// ContainsRange reports whether every id in ids is present in the set,
// regardless of order -- the Micro variant's weaker, set-inclusion notion
// of "contains a range".
func (p *MicroPath) ContainsRange(ids []NodeID) bool {
	for _, id := range ids {
		if _, ok := p.set[id]; !ok {
			return false
		}
	}
	return true
}
