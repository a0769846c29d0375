// Copyright (c) 2025 Ali Ghaffaari
// SPDX-License-Identifier: MIT

package vgseed

import "math/rand/v2"

// NodeIterator is the shared capability set across the three graph
// iterator families (BFS, Backtracker, Haplotyper): advance, test for
// exhaustion, read the current node. ExtendToK operates against this
// interface but explicitly rejects *BFSIter.
type NodeIterator interface {
	Value() NodeID
	Advance()
	AtEnd() bool
}

// HaplotypeStrategy selects between the Unique Haplotyper (setback-driven
// novelty search) and the Random specialisation (uniform choice among
// outgoing edges, no visited memory).
type HaplotypeStrategy int

const (
	StrategyUnique HaplotypeStrategy = iota
	StrategyRandom
)

// HaplotyperIter generates a sequence of distinct full-graph walks (or, in
// StrategyRandom mode, arbitrary walks with no uniqueness tracking).
type HaplotyperIter struct {
	graph    *Graph
	strategy HaplotypeStrategy
	rng      *rand.Rand

	start   NodeID
	cur     NodeID
	current   *DynamicPath // the walk being generated
	visited   []*MicroPath // previously committed walks, as Micro-paths
	committed [][]NodeID   // previously committed walks' exact node sequences
	buffer    []NodeID     // sliding setback window, last `setback` chosen nodes
	setback   int
	atEnd     bool
}

// NewHaplotyperIter begins generating walks from start with the given
// strategy. rng must be non-nil for reproducible tests; supply one seeded
// via math/rand/v2, never the process-global source.
func NewHaplotyperIter(g *Graph, start NodeID, strategy HaplotypeStrategy, rng *rand.Rand) *HaplotyperIter {
	if start == 0 {
		start = g.RankToID(0)
	}
	it := &HaplotyperIter{
		graph:    g,
		strategy: strategy,
		rng:      rng,
		start:    start,
		cur:      start,
	}
	it.current = NewDefaultWalk(g, start)
	return it
}

// NewDefaultWalk returns a DynamicPath seeded with a single node, used to
// start the Haplotyper's current-walk accumulator.
func NewDefaultWalk(g *Graph, start NodeID) *DynamicPath {
	w := NewDynamicPath(g)
	_ = w.PushBack(start)
	return w
}

func (it *HaplotyperIter) Value() NodeID { return it.cur }
func (it *HaplotyperIter) AtEnd() bool   { return it.atEnd }

// Visited returns the walks committed so far, as Micro-paths.
func (it *HaplotyperIter) Visited() []*MicroPath { return it.visited }

// CurrentWalk returns the walk accumulated since the last Commit/Discard.
func (it *HaplotyperIter) CurrentWalk() *DynamicPath { return it.current }

// Advance moves to the next node of the walk being generated.
func (it *HaplotyperIter) Advance() {
	if !it.graph.HasEdgesFrom(it.cur) {
		it.atEnd = true
		return
	}
	edges := it.graph.EdgesFrom(it.cur)

	if it.strategy == StrategyRandom {
		next := edges[it.rng.IntN(len(edges))]
		it.cur = next
		_ = it.current.PushBack(next)
		return
	}

	if it.setback != 0 && len(it.buffer) >= it.setback {
		it.buffer = it.buffer[1:]
	}

	var next NodeID
	if it.setback == 0 || len(edges) == 1 {
		next = edges[0]
	} else {
		for _, e := range edges {
			candidate := append(append([]NodeID(nil), it.buffer...), e)
			if it.coveredByVisited(candidate) {
				continue
			}
			next = e
			break
		}
	}
	if next == 0 {
		next = it.leastCoveredAdjacent(edges)
	}
	if next == 0 {
		next = edges[it.rng.IntN(len(edges))]
	}

	it.cur = next
	if it.setback != 0 {
		it.buffer = append(it.buffer, next)
	}
	_ = it.current.PushBack(next)
}

// coveredByVisited reports whether every node of nodes appears in one
// previously committed walk. Committed walks are kept as Micro-paths, so
// this is a set-inclusion test: the order and contiguity of nodes are not
// checked.
func (it *HaplotyperIter) coveredByVisited(nodes []NodeID) bool {
	for _, v := range it.visited {
		if v.ContainsRange(nodes) {
			return true
		}
	}
	return false
}

// leastCoveredAdjacent returns the edge target with the fewest occurrences
// across all visited walks, ties broken uniformly at random; returns 0 if
// edges is empty (never happens: callers only invoke it with fwd_edges).
func (it *HaplotyperIter) leastCoveredAdjacent(edges []NodeID) NodeID {
	if len(edges) == 0 {
		return 0
	}
	best := make([]NodeID, 0, len(edges))
	bestCount := -1
	for _, e := range edges {
		count := 0
		for _, v := range it.visited {
			if v.Contains(e) {
				count++
			}
		}
		switch {
		case bestCount == -1 || count < bestCount:
			bestCount = count
			best = best[:0]
			best = append(best, e)
		case count == bestCount:
			best = append(best, e)
		}
	}
	if len(best) == 1 {
		return best[0]
	}
	return best[it.rng.IntN(len(best))]
}

// setSetback implements the doubling-like schedule: s = n if n == 0 or odd
// else n+1, where n is the number of committed walks, matching
// vargraph.cc's set_setback.
func (it *HaplotyperIter) setSetback() {
	n := len(it.visited)
	if n == 0 || n%2 == 1 {
		it.setback = n
	} else {
		it.setback = n + 1
	}
}

// Commit (pre-decrement) records the current walk as visited, advances the
// setback schedule, then resets the walk to the configured start (without
// clearing the visited set), matching vargraph.cc's operator--() which
// calls set_setback() then the postfix reset.
func (it *HaplotyperIter) Commit() {
	it.visited = append(it.visited, it.current.ToMicro())
	it.committed = append(it.committed, append([]NodeID(nil), it.current.NodeIDs()...))
	it.setSetback()
	it.resetWalk()
}

// Discard (postfix reset) resets the walk to the configured start without
// recording it as visited, used to retry after a duplicate is detected.
func (it *HaplotyperIter) Discard() {
	it.resetWalk()
}

func (it *HaplotyperIter) resetWalk() {
	it.cur = it.start
	it.buffer = it.buffer[:0]
	if it.setback != 0 {
		it.buffer = append(it.buffer, it.start)
	}
	it.atEnd = false
	it.current = NewDefaultWalk(it.graph, it.start)
}

// GetUniqFullHaplotype produces a full walk from the current start,
// retrying up to tries times if the generated walk duplicates one already
// visited. Best-effort: may still return a duplicate if the combinatorial
// space is exhausted.
func GetUniqFullHaplotype(it *HaplotyperIter, tries int) Path {
	for {
		for !it.AtEnd() {
			it.Advance()
		}
		if tries > 0 && it.isDuplicate(it.current.NodeIDs()) {
			tries--
			it.Discard()
			continue
		}
		walk := it.current
		it.Commit()
		return walk
	}
}

// isDuplicate reports whether nodes is identical, element for element, to
// some previously committed walk.
func (it *HaplotyperIter) isDuplicate(nodes []NodeID) bool {
	for _, c := range it.committed {
		if len(c) != len(nodes) {
			continue
		}
		match := true
		for i := range nodes {
			if c[i] != nodes[i] {
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

// ExtendToK repeatedly advances iter and appends its emitted node to path
// until path's base-pair length is >= k, or until the iterator is
// exhausted (which is not itself an error: the caller simply gets a
// shorter-than-k path). It refuses to operate on BFS iterators, which have
// no single well-defined successor to append.
func ExtendToK(path interface{ AddNode(NodeID) error }, iter NodeIterator, bpLenFn func() int, k int) error {
	if _, isBFS := iter.(*BFSIter); isBFS {
		return ErrNotBFS
	}
	for bpLenFn() < k && !iter.AtEnd() {
		iter.Advance()
		if iter.AtEnd() {
			return nil
		}
		if err := path.AddNode(iter.Value()); err != nil {
			return err
		}
	}
	return nil
}
