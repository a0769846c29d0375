// Copyright (c) 2025 Ali Ghaffaari
// SPDX-License-Identifier: MIT

package vgseed

import "github.com/ghaffaari/vgseed/internal/sufindex"

// PathPosition identifies a location within a PathIndex's trimmed text
// collection: which path (by insertion order into the index) and the byte
// offset into that path's trimmed, indexed sequence.
type PathPosition struct {
	PathIdx int
	Offset  int
}

// PathIndex is a built, queryable full-text index over a PathSet's
// sequences, trimmed by context and indexed as an enhanced suffix array
// (Forward) or FM-index (Reversed).
type PathIndex struct {
	graph      *Graph
	paths      *PathSet
	context    int
	direction  Direction
	idx        *sufindex.Index
	trimmedLen []int
}

// Graph returns the graph the indexed paths were built against.
func (pi *PathIndex) Graph() *Graph { return pi.graph }

// Paths returns the indexed path set.
func (pi *PathIndex) Paths() *PathSet { return pi.paths }

// Context returns the context length this index was built with.
func (pi *PathIndex) Context() int { return pi.context }

// Direction returns this index's direction tag.
func (pi *PathIndex) Direction() Direction { return pi.direction }

// TextIndex returns the underlying full-text index, for the cross-matcher.
func (pi *PathIndex) TextIndex() *sufindex.Index { return pi.idx }

// GetContextShift returns the offset to add to a trimmed-string offset to
// recover the path's true local offset: nonzero only when context > 0 (so
// the first node was trimmed) and the first node's length plus 1 exceeds
// context, in which case it equals first_node_length - context + 1.
func (pi *PathIndex) GetContextShift(pos PathPosition) (int, error) {
	if pos.PathIdx < 0 || pos.PathIdx >= pi.paths.Len() {
		return 0, ErrOutOfRange
	}
	ids := pi.paths.Paths()[pos.PathIdx].NodeIDs()
	if len(ids) == 0 {
		return 0, ErrOutOfRange
	}
	firstLen := pi.graph.NodeLength(ids[0])
	if pi.context > 0 && firstLen+1 > pi.context {
		return firstLen - pi.context + 1, nil
	}
	return 0, nil
}

// PositionToID maps a trimmed-text position back to the graph node
// containing it.
func (pi *PathIndex) PositionToID(pos PathPosition) (NodeID, error) {
	trueOffset, p, err := pi.resolveOffset(pos)
	if err != nil {
		return 0, err
	}
	return p.PositionToID(trueOffset)
}

// PositionToOffset maps a trimmed-text position back to the offset within
// its containing node.
func (pi *PathIndex) PositionToOffset(pos PathPosition) (int, error) {
	trueOffset, p, err := pi.resolveOffset(pos)
	if err != nil {
		return 0, err
	}
	return p.PositionToOffset(trueOffset)
}

// resolveOffset implements the Forward/Reversed position-mapping
// pipeline: for Reversed, the trimmed-string offset is first converted to
// its forward equivalent (trimmed_length - offset - 1), then the context
// shift is applied in both directions before delegating to the Path.
func (pi *PathIndex) resolveOffset(pos PathPosition) (int, Path, error) {
	if pos.PathIdx < 0 || pos.PathIdx >= pi.paths.Len() {
		return 0, nil, ErrOutOfRange
	}
	p := pi.paths.Paths()[pos.PathIdx]
	offset := pos.Offset
	if pi.direction == Reversed {
		offset = pi.trimmedLen[pos.PathIdx] - offset - 1
	}
	shift, err := pi.GetContextShift(pos)
	if err != nil {
		return 0, nil, err
	}
	return offset + shift, p, nil
}

// PathIndexBuilder accumulates paths and their trimmed, indexed sequences,
// deferring the expensive text-index build to Build -- a two-phase builder
// preferred here over a mutable lazy-mode flag.
type PathIndexBuilder struct {
	graph     *Graph
	context   int
	direction Direction
	kind      sufindex.Kind

	paths      *PathSet
	texts      [][]byte
	trimmedLen []int
}

// NewPathIndexBuilder begins building a PathIndex over g with the given
// context length and direction. It rejects the Reversed+ESA and
// Forward+FM combinations outright as a static constraint.
func NewPathIndexBuilder(g *Graph, context int, direction Direction) (*PathIndexBuilder, error) {
	kind := sufindex.KindESA
	if direction == Reversed {
		kind = sufindex.KindFM
	}
	if err := AssertIndexDirection(direction, kind); err != nil {
		return nil, err
	}
	return &PathIndexBuilder{
		graph:     g,
		context:   context,
		direction: direction,
		kind:      kind,
		paths:     NewPathSet(),
	}, nil
}

// AddPath initialises p (if not already) and appends its trimmed sequence
// to the pending text collection.
func (b *PathIndexBuilder) AddPath(p Path) error {
	if p.Graph() != b.graph {
		return ErrGraphMismatch
	}
	if !p.Initialised() {
		if err := p.Initialise(); err != nil {
			return err
		}
	}
	seq, err := p.Sequence(b.direction, b.context)
	if err != nil {
		return err
	}
	b.paths.PushBack(p)
	b.texts = append(b.texts, seq)
	b.trimmedLen = append(b.trimmedLen, len(seq))
	return nil
}

// Build flushes the accumulated sequences into a full-text index and
// returns the finished PathIndex. Required before any query.
func (b *PathIndexBuilder) Build() *PathIndex {
	idx := sufindex.New(b.texts, b.kind)
	return &PathIndex{
		graph:      b.graph,
		paths:      b.paths,
		context:    b.context,
		direction:  b.direction,
		idx:        idx,
		trimmedLen: append([]int(nil), b.trimmedLen...),
	}
}
