// Copyright (c) 2025 Ali Ghaffaari
// SPDX-License-Identifier: MIT

package vgseed

import (
	"fmt"

	"github.com/ghaffaari/vgseed/internal/bitvec"
)

// DynamicPath is a double-ended path: O(1) amortised push/pop at both
// ends, used by the Haplotyper and the patch-mode sliding frontier.
//
// Backed by a single slice plus a front offset, following the classic
// "grow into spare front capacity, double on overflow" deque trick rather
// than a container/ring-buffer dependency, since the corpus never reaches
// for one and the access pattern here (append-heavy, occasional pop) does
// not need it.
type DynamicPath struct {
	graph   *Graph
	buf     []NodeID
	front   int // buf[front:front+n] is the live window
	n       int
	nodeSet map[NodeID]int // id -> reference count, for O(1) Contains under pop
	bv      *bitvec.BitVector
	init    bool
}

// NewDynamicPath returns an empty Dynamic path over g.
func NewDynamicPath(g *Graph) *DynamicPath {
	return &DynamicPath{graph: g, nodeSet: map[NodeID]int{}}
}

func (p *DynamicPath) Kind() PathKind    { return KindDynamic }
func (p *DynamicPath) Graph() *Graph     { return p.graph }
func (p *DynamicPath) NodeLen() int      { return p.n }
func (p *DynamicPath) Initialised() bool { return p.init }

func (p *DynamicPath) NodeIDs() []NodeID {
	return p.buf[p.front : p.front+p.n]
}

func (p *DynamicPath) track(id NodeID) { p.nodeSet[id]++ }

func (p *DynamicPath) untrack(id NodeID) {
	p.nodeSet[id]--
	if p.nodeSet[id] <= 0 {
		delete(p.nodeSet, id)
	}
}

// PushBack appends id at the end of the walk.
func (p *DynamicPath) PushBack(id NodeID) error {
	if !p.graph.valid(id) {
		return fmt.Errorf("vgseed: %w: node %d not in graph", ErrOutOfRange, id)
	}
	if p.front+p.n == len(p.buf) {
		p.grow()
	}
	p.buf[p.front+p.n] = id
	p.n++
	p.track(id)
	p.init = false
	return nil
}

// PushFront prepends id at the start of the walk.
func (p *DynamicPath) PushFront(id NodeID) error {
	if !p.graph.valid(id) {
		return fmt.Errorf("vgseed: %w: node %d not in graph", ErrOutOfRange, id)
	}
	if p.front == 0 {
		p.grow()
	}
	p.front--
	p.buf[p.front] = id
	p.n++
	p.track(id)
	p.init = false
	return nil
}

// PopBack removes and returns the last node of the walk.
func (p *DynamicPath) PopBack() (NodeID, error) {
	if p.n == 0 {
		return 0, fmt.Errorf("vgseed: %w: empty path", ErrOutOfRange)
	}
	id := p.buf[p.front+p.n-1]
	p.n--
	p.untrack(id)
	p.init = false
	return id, nil
}

// PopFront removes and returns the first node of the walk.
func (p *DynamicPath) PopFront() (NodeID, error) {
	if p.n == 0 {
		return 0, fmt.Errorf("vgseed: %w: empty path", ErrOutOfRange)
	}
	id := p.buf[p.front]
	p.front++
	p.n--
	p.untrack(id)
	p.init = false
	return id, nil
}

// grow doubles the backing array, re-centering the live window so there is
// spare capacity on both ends.
func (p *DynamicPath) grow() {
	newCap := (len(p.buf) + 1) * 2
	nb := make([]NodeID, newCap)
	newFront := (newCap - p.n) / 2
	copy(nb[newFront:], p.buf[p.front:p.front+p.n])
	p.buf = nb
	p.front = newFront
}

// TrimBack removes nodes from the back until the back node's id equals id
// (exclusive), or, if id == 0, removes exactly one node.
func (p *DynamicPath) TrimBack(id NodeID) error {
	if id == 0 {
		_, err := p.PopBack()
		return err
	}
	for p.n > 0 && p.buf[p.front+p.n-1] != id {
		if _, err := p.PopBack(); err != nil {
			return err
		}
	}
	return nil
}

// TrimFront removes nodes from the front until the front node's id equals
// id (exclusive), or, if id == 0, removes exactly one node.
func (p *DynamicPath) TrimFront(id NodeID) error {
	if id == 0 {
		_, err := p.PopFront()
		return err
	}
	for p.n > 0 && p.buf[p.front] != id {
		if _, err := p.PopFront(); err != nil {
			return err
		}
	}
	return nil
}

// TrimBackByLen pops nodes from the back until the path's base-pair length
// has dropped by at least k (it may drop by more, since nodes are atomic).
func (p *DynamicPath) TrimBackByLen(k int) error {
	removed := 0
	for removed < k && p.n > 0 {
		id := p.buf[p.front+p.n-1]
		if _, err := p.PopBack(); err != nil {
			return err
		}
		removed += p.graph.NodeLength(id)
	}
	return nil
}

// TrimFrontByLen pops nodes from the front until the path's base-pair
// length has dropped by at least k.
func (p *DynamicPath) TrimFrontByLen(k int) error {
	removed := 0
	for removed < k && p.n > 0 {
		id := p.buf[p.front]
		if _, err := p.PopFront(); err != nil {
			return err
		}
		removed += p.graph.NodeLength(id)
	}
	return nil
}

func (p *DynamicPath) BPLen() int {
	total := 0
	for _, id := range p.NodeIDs() {
		total += p.graph.NodeLength(id)
	}
	return total
}

func (p *DynamicPath) Initialise() error {
	bv := bitvec.New(uint(p.BPLen()))
	pos := uint(0)
	for _, id := range p.NodeIDs() {
		pos += uint(p.graph.NodeLength(id))
		bv.Set(pos - 1)
	}
	bv.Freeze()
	p.bv = bv
	p.init = true
	return nil
}

func (p *DynamicPath) Rank(pos int) (int, error) {
	if !p.init {
		return 0, ErrUninitialized
	}
	if pos < 0 || pos >= int(p.bv.Len()) {
		return 0, fmt.Errorf("vgseed: %w: position %d", ErrOutOfRange, pos)
	}
	return p.bv.Rank1(uint(pos)), nil
}

func (p *DynamicPath) Select(r int) (int, error) {
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

func (p *DynamicPath) PositionToID(pos int) (NodeID, error) {
	r, err := p.Rank(pos)
	if err != nil {
		return 0, err
	}
	ids := p.NodeIDs()
	if r >= len(ids) {
		return 0, fmt.Errorf("vgseed: %w: position %d", ErrOutOfRange, pos)
	}
	return ids[r], nil
}

func (p *DynamicPath) PositionToOffset(pos int) (int, error) {
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

func (p *DynamicPath) Sequence(direction Direction, context int) ([]byte, error) {
	return buildSequence(p.graph, p.NodeIDs(), direction, context)
}

func (p *DynamicPath) Contains(id NodeID) bool {
	_, ok := p.nodeSet[id]
	return ok
}

func (p *DynamicPath) ContainsRange(ids []NodeID) bool {
	return containsOrdered(p.NodeIDs(), ids)
}

// ToMicro collapses the path to its node-id set, discarding order.
func (p *DynamicPath) ToMicro() *MicroPath {
	return newMicroFrom(p.graph, p.NodeIDs())
}
