// Copyright (c) 2025 Ali Ghaffaari
// SPDX-License-Identifier: MIT

package vgseed

// Seed is the seed-finder's output record: an exact k-mer match between a
// graph position and a read position.
type Seed struct {
	NodeID       NodeID
	OffsetInNode int
	ReadID       string
	OffsetInRead int
}

// MatchPolicy selects how many mismatches in total (including an N in the
// graph sequence) a frontier tolerates before it is dropped; matches in
// between do not restore the budget.
type MatchPolicy int

const (
	// ExactMatching allows zero mismatches: any disagreement kills the
	// frontier immediately.
	ExactMatching MatchPolicy = iota
	// ApproxMatching allows up to 3 mismatches before the frontier is
	// dropped.
	ApproxMatching
)

func (m MatchPolicy) maxMismatches() int {
	if m == ApproxMatching {
		return 3
	}
	return 0
}

// ReadSet is an in-memory collection of FASTA/FASTQ-like records, the
// traverser's second text collection.
type ReadSet struct {
	records []FastqRecord
}

// FastqRecord is one read: identifier, base sequence, and (for FASTQ)
// quality string.
type FastqRecord struct {
	ID   string
	Seq  []byte
	Qual []byte
}

// NewReadSet wraps records as a ReadSet.
func NewReadSet(records []FastqRecord) *ReadSet { return &ReadSet{records: records} }

// Len returns the number of records.
func (r *ReadSet) Len() int { return len(r.records) }

// Record returns the i-th record.
func (r *ReadSet) Record(i int) FastqRecord { return r.records[i] }

// frontierState is one live extension attempt of the traverser: a
// read-suffix-tree cursor, a remaining mismatch budget, and the current
// graph walk position.
type frontierState struct {
	iter                *FineIter
	mismatchesRemaining int
	nodeID              NodeID
	nodeOffset          int
}

// Traverser enumerates all graph walks of total base-pair length exactly k
// starting at a given locus, descending the reads suffix-tree in lock-step.
type Traverser struct {
	graph    *Graph
	reads    *ReadSet
	readsIdx *ReadIndex
	k        int
	policy   MatchPolicy
	dfs      bool
}

// NewTraverser returns a Traverser over graph using readsIdx as the second
// text collection. dfsSchedule selects the DFS scheduling variant; the
// default (false) is the BFS variant.
func NewTraverser(graph *Graph, readsIdx *ReadIndex, k int, policy MatchPolicy, dfsSchedule bool) *Traverser {
	return &Traverser{
		graph:    graph,
		reads:    readsIdx.reads,
		readsIdx: readsIdx,
		k:        k,
		policy:   policy,
		dfs:      dfsSchedule,
	}
}

// Traverse runs the extension from (startID, startOffset), emitting one
// Seed per successful (walk, read-occurrence) pair. No hit is ever emitted
// twice: each frontier is filtered (and dropped) the moment it succeeds, so
// no frontier is ever processed past its own single success.
func (tv *Traverser) Traverse(startID NodeID, startOffset int, emit func(Seed) error) error {
	start := &frontierState{
		iter:                NewFineIter(tv.readsIdx.idx),
		mismatchesRemaining: tv.policy.maxMismatches() + 1,
		nodeID:              startID,
		nodeOffset:          startOffset,
	}
	if tv.dfs {
		return tv.traverseDFS(startID, startOffset, start, emit)
	}
	return tv.traverseBFS(startID, startOffset, start, emit)
}

// traverseBFS processes every live frontier once per round (filter,
// compute, advance), looping until no frontier survives or a round
// produces no live successors.
func (tv *Traverser) traverseBFS(startID NodeID, startOffset int, start *frontierState, emit func(Seed) error) error {
	frontiers := []*frontierState{start}
	for len(frontiers) > 0 {
		var alive []*frontierState
		for _, f := range frontiers {
			if tv.succeeded(f) {
				if err := tv.emitHits(startID, startOffset, f, emit); err != nil {
					return err
				}
				continue
			}
			alive = append(alive, f)
		}
		if len(alive) == 0 {
			return nil
		}
		var next []*frontierState
		for _, f := range alive {
			successors := tv.computeAndAdvance(f)
			next = append(next, successors...)
		}
		if len(next) == 0 {
			return nil
		}
		frontiers = next
	}
	return nil
}

// traverseDFS processes one frontier at a time off a LIFO stack, giving a
// single-path depth-first schedule with identical per-frontier contracts.
func (tv *Traverser) traverseDFS(startID NodeID, startOffset int, start *frontierState, emit func(Seed) error) error {
	stack := []*frontierState{start}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if tv.succeeded(f) {
			if err := tv.emitHits(startID, startOffset, f, emit); err != nil {
				return err
			}
			continue
		}
		successors := tv.computeAndAdvance(f)
		stack = append(stack, successors...)
	}
	return nil
}

// succeeded reports whether a frontier succeeds: it still has mismatch
// budget left and has matched exactly k characters.
func (tv *Traverser) succeeded(f *frontierState) bool {
	return f.mismatchesRemaining > 0 && f.iter.RepLength() == tv.k
}

func (tv *Traverser) emitHits(startID NodeID, startOffset int, f *frontierState, emit func(Seed) error) error {
	for _, occ := range f.iter.Occurrences() {
		rec := tv.reads.records[occ.Text]
		hit := Seed{NodeID: startID, OffsetInNode: startOffset, ReadID: rec.ID, OffsetInRead: occ.Pos}
		if err := emit(hit); err != nil {
			return err
		}
	}
	return nil
}

// computeAndAdvance implements the compute-and-advance step for one
// frontier: it consumes the rest of the current node's sequence (stopping
// early the instant rep_length reaches k, so the next round's Filter can
// catch the success), dropping the frontier if its mismatch budget is
// exhausted; a frontier that fully consumes its node is then advanced onto
// every outgoing edge, the first in place and the rest as clones. A
// frontier with no outgoing edges at that point is silently dropped.
//
// On a mismatch (including an N base), the walk still needs to cover one
// more graph character, so the read-suffix-tree cursor is advanced along an
// arbitrary branch via GoDownPreorder rather than left in place -- leaving
// it in place would make rep_length lag behind the walk's true length by
// one per tolerated mismatch, so a frontier could only ever reach
// rep_length == k by having zero mismatches, defeating ApproxMatching
// entirely. A frontier that mismatches at a leaf has nowhere left to
// advance and is dropped.
func (tv *Traverser) computeAndAdvance(f *frontierState) []*frontierState {
	seq := tv.graph.NodeSequence(f.nodeID)
	for f.nodeOffset < len(seq) {
		c := seq[f.nodeOffset]
		f.nodeOffset++
		if c == 'N' || !f.iter.GoDown(c) {
			f.mismatchesRemaining--
			if f.mismatchesRemaining <= 0 {
				return nil
			}
			if !f.iter.GoDownPreorder() {
				return nil
			}
		}
		if f.iter.RepLength() == tv.k {
			return []*frontierState{f}
		}
	}
	edges := tv.graph.EdgesFrom(f.nodeID)
	if len(edges) == 0 {
		return nil
	}
	f.nodeID = edges[0]
	f.nodeOffset = 0
	out := make([]*frontierState, 0, len(edges))
	out = append(out, f)
	for _, alt := range edges[1:] {
		out = append(out, &frontierState{
			iter:                f.iter.Clone(),
			mismatchesRemaining: f.mismatchesRemaining,
			nodeID:              alt,
			nodeOffset:          0,
		})
	}
	return out
}
