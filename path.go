// Copyright (c) 2025 Ali Ghaffaari
// SPDX-License-Identifier: MIT

package vgseed

import (
	"fmt"

	"github.com/ghaffaari/vgseed/internal/bitvec"
)

// Direction tags whether a path's string is stored as encountered (Forward)
// or reversed (Reversed). PathIndex and the suffix index both key off this
// tag, asserting statically that ESA indices only ever see Forward text
// and FM-indices only ever see Reversed text.
type Direction int

const (
	Forward Direction = iota
	Reversed
)

func (d Direction) String() string {
	if d == Reversed {
		return "reversed"
	}
	return "forward"
}

// PathKind tags which of the four representations backs a Path, replacing
// a compile-time polymorphic hierarchy (path_base.h, path_interface.h,
// path.h) with a small tagged sum.
type PathKind int

const (
	KindDefault PathKind = iota
	KindDynamic
	KindCompact
	KindMicro
)

// Path is the shared capability set across all four representations.
// Default and Dynamic additionally expose mutation (see DefaultPath and
// DynamicPath); Compact and Micro are read-only once constructed.
type Path interface {
	// Kind reports which concrete representation backs this value.
	Kind() PathKind

	// Graph returns the graph this path was built against.
	Graph() *Graph

	// NodeLen returns the number of nodes (the path's "length" in the
	// walk sense, as opposed to its base-pair length).
	NodeLen() int

	// NodeIDs returns the path's node sequence in walk order. Default and
	// Dynamic return it cheaply (no copy for Default); Micro returns an
	// arbitrary order since it does not track one.
	NodeIDs() []NodeID

	// Initialise builds the node-break bitvector and rank/select support.
	// Idempotent. Required before Rank, Select, PositionToID,
	// PositionToOffset.
	Initialise() error

	// Initialised reports whether Initialise has been called since the
	// last mutation.
	Initialised() bool

	// BPLen returns the path's total base-pair length. Valid even before
	// Initialise.
	BPLen() int

	// Rank returns the 0-based index, within the path's node sequence, of
	// the node containing base-pair position p.
	Rank(p int) (int, error)

	// Select returns the path-position at which the r-th node (0-based)
	// starts.
	Select(r int) (int, error)

	// PositionToID returns nodes[Rank(p)].
	PositionToID(p int) (NodeID, error)

	// PositionToOffset returns p - Select(Rank(p)).
	PositionToOffset(p int) (int, error)

	// Sequence returns the concatenated path string. When context > 0 the
	// first node is trimmed to its last min(context-1, len) bases and the
	// last node to its first context-1 bases; when direction is Reversed
	// the whole string (post-trim) is reverse-complemented is NOT done
	// here -- Reversed means "stored reversed", i.e. the byte order is
	// reversed, not complemented, Path-index contract.
	Sequence(direction Direction, context int) ([]byte, error)

	// Contains reports set-membership of id in the path, O(1).
	Contains(id NodeID) bool

	// ContainsRange reports whether ids occurs, in order, as a contiguous
	// sub-walk of the path (Default/Dynamic), or whether every id in ids
	// is present regardless of order (Micro).
	ContainsRange(ids []NodeID) bool
}

// DefaultPath is a random-access, append-only path: O(1) amortised
// push-back, no pop support.
type DefaultPath struct {
	graph *Graph
	ids   []NodeID
	nodeSet map[NodeID]struct{}
	bv    *bitvec.BitVector
	init  bool
}

// NewDefaultPath returns an empty Default path over g.
func NewDefaultPath(g *Graph) *DefaultPath {
	return &DefaultPath{graph: g, nodeSet: map[NodeID]struct{}{}}
}

func (p *DefaultPath) Kind() PathKind { return KindDefault }
func (p *DefaultPath) Graph() *Graph  { return p.graph }
func (p *DefaultPath) NodeLen() int   { return len(p.ids) }
func (p *DefaultPath) NodeIDs() []NodeID { return p.ids }
func (p *DefaultPath) Initialised() bool { return p.init }

// AddNode appends id to the path and invalidates the rank/select index.
func (p *DefaultPath) AddNode(id NodeID) error {
	if !p.graph.valid(id) {
		return fmt.Errorf("vgseed: %w: node %d not in graph", ErrOutOfRange, id)
	}
	p.ids = append(p.ids, id)
	p.nodeSet[id] = struct{}{}
	p.init = false
	return nil
}

func (p *DefaultPath) BPLen() int {
	total := 0
	for _, id := range p.ids {
		total += p.graph.NodeLength(id)
	}
	return total
}

// Initialise builds the node-break bitvector: bit i is set at the
// path-local position of the last base of each node.
func (p *DefaultPath) Initialise() error {
	bv := bitvec.New(uint(p.BPLen()))
	pos := uint(0)
	for _, id := range p.ids {
		pos += uint(p.graph.NodeLength(id))
		bv.Set(pos - 1)
	}
	bv.Freeze()
	p.bv = bv
	p.init = true
	return nil
}

func (p *DefaultPath) Rank(pos int) (int, error) {
	if !p.init {
		return 0, ErrUninitialized
	}
	if pos < 0 || pos >= int(p.bv.Len()) {
		return 0, fmt.Errorf("vgseed: %w: position %d", ErrOutOfRange, pos)
	}
	return p.bv.Rank1(uint(pos)), nil
}

func (p *DefaultPath) Select(r int) (int, error) {
	if !p.init {
		return 0, ErrUninitialized
	}
	if r == 0 {
		return 0, nil
	}
	sel, ok := p.bv.Select1(r - 1)
	if !ok {
		return 0, fmt.Errorf("vgseed: %w: rank %d", ErrOutOfRange, r)
	}
	return int(sel) + 1, nil
}

func (p *DefaultPath) PositionToID(pos int) (NodeID, error) {
	r, err := p.Rank(pos)
	if err != nil {
		return 0, err
	}
	if r >= len(p.ids) {
		return 0, fmt.Errorf("vgseed: %w: position %d", ErrOutOfRange, pos)
	}
	return p.ids[r], nil
}

func (p *DefaultPath) PositionToOffset(pos int) (int, error) {
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

func (p *DefaultPath) Sequence(direction Direction, context int) ([]byte, error) {
	return buildSequence(p.graph, p.ids, direction, context)
}

func (p *DefaultPath) Contains(id NodeID) bool {
	_, ok := p.nodeSet[id]
	return ok
}

func (p *DefaultPath) ContainsRange(ids []NodeID) bool {
	return containsOrdered(p.ids, ids)
}

// Extend appends all nodes of other to p. Forbidden between paths over
// mismatched graphs, and forbidden for self-append.
func (p *DefaultPath) Extend(other Path) error {
	if other.Graph() != p.graph {
		return ErrGraphMismatch
	}
	if samePath(p, other) {
		return ErrSelfExtend
	}
	for _, id := range other.NodeIDs() {
		if err := p.AddNode(id); err != nil {
			return err
		}
	}
	return nil
}

// samePath reports pointer identity between a DefaultPath and a Path value,
// guarding the "self-append via += is forbidden" contract.
func samePath(p *DefaultPath, other Path) bool {
	if dp, ok := other.(*DefaultPath); ok {
		return dp == p
	}
	return false
}

// buildSequence concatenates node sequences for ids, applying the
// context-trim to the first and last node and the direction tag, shared by
// all Path kinds.
func buildSequence(g *Graph, ids []NodeID, direction Direction, context int) ([]byte, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	out := make([]byte, 0, g.TotalLoci())
	for i, id := range ids {
		seq := g.NodeSequence(id)
		if context > 0 {
			if i == 0 {
				keep := context - 1
				if keep < 0 {
					keep = 0
				}
				if keep < len(seq) {
					seq = seq[len(seq)-keep:]
				}
			}
			if i == len(ids)-1 {
				keep := context - 1
				if keep < 0 {
					keep = 0
				}
				if keep < len(seq) {
					seq = seq[:keep]
				}
			}
		}
		out = append(out, seq...)
	}
	if direction == Reversed {
		reverseBytes(out)
	}
	return out, nil
}

func reverseBytes(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}

// containsOrdered reports whether sub occurs, in order, as a contiguous
// run within full.
func containsOrdered(full, sub []NodeID) bool {
	if len(sub) == 0 {
		return true
	}
	if len(sub) > len(full) {
		return false
	}
	for i := 0; i+len(sub) <= len(full); i++ {
		match := true
		for j := range sub {
			if full[i+j] != sub[j] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}
