// Copyright (c) 2025 Ali Ghaffaari
// SPDX-License-Identifier: MIT

package vgseed

import (
	"math/rand/v2"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ghaffaari/vgseed/internal/stats"
)

// Locus is a graph position: a node id and an offset within that node.
type Locus struct {
	NodeID NodeID
	Offset int
}

// SeedFinder is the top-level orchestrator: it samples paths, builds a
// path index over them, chooses starting loci, and drives the traverser
// and cross-matcher from each.
type SeedFinder struct {
	graph   *Graph
	k       int
	rng     *rand.Rand
	paths   *PathSet
	pathIdx *PathIndex
	starts  []Locus
}

// NewSeedFinder returns an orchestrator over graph for k-mers of length k.
// rng must be supplied by the caller, never the process-global source.
func NewSeedFinder(graph *Graph, k int, rng *rand.Rand) *SeedFinder {
	return &SeedFinder{graph: graph, k: k, rng: rng, paths: NewPathSet()}
}

// Paths returns the sampled path set.
func (sf *SeedFinder) Paths() *PathSet { return sf.paths }

// PathIndex returns the built path index, or nil before IndexPaths.
func (sf *SeedFinder) PathIndex() *PathIndex { return sf.pathIdx }

// Starts returns the currently accumulated starting loci.
func (sf *SeedFinder) Starts() []Locus { return sf.starts }

// PickPaths samples up to n walks from the graph using a Unique-strategy
// Haplotyper. When patched, each walk is reduced to its covering patches
// using contextLen as the sliding window; the full
// walk is still committed to the Haplotyper's visited set, so later walks
// are sampled against everything already seen, patched or not. When not
// patched, each sampled walk is a full haplotype, retried against
// duplicates with a small budget.
func (sf *SeedFinder) PickPaths(n int, patched bool, contextLen int) {
	it := NewHaplotyperIter(sf.graph, 0, StrategyUnique, sf.rng)
	count := 0
	const fullHaplotypeRetries = 5
	for count < n && !it.AtEnd() {
		if patched {
			for _, p := range GetUniqPatches(it, contextLen) {
				if count >= n {
					break
				}
				sf.paths.PushBack(p)
				count++
			}
			it.Commit()
			continue
		}
		walk := GetUniqFullHaplotype(it, fullHaplotypeRetries)
		sf.paths.PushBack(walk)
		count++
	}
}

// IndexPaths builds the text index over every sampled path.
func (sf *SeedFinder) IndexPaths(context int, direction Direction) error {
	builder, err := NewPathIndexBuilder(sf.graph, context, direction)
	if err != nil {
		return err
	}
	for _, p := range sf.paths.Paths() {
		if err := builder.AddPath(p); err != nil {
			return err
		}
	}
	sf.pathIdx = builder.Build()
	return nil
}

// AddUncoveredLoci enumerates every (node, offset) locus whose canonical
// (first-edge-always) extension of base-pair length >= k is not a sub-walk
// of any stored path. A true existential check over every
// branching of every walk from every locus is combinatorially infeasible
// on branchy graphs; checking the single canonical extension is a
// documented, conservative approximation -- it can miss a locus whose only
// novel extension lies down a non-first branch, but never reports a
// covered locus as uncovered. Discovered loci are both returned and appended
// to Starts.
func (sf *SeedFinder) AddUncoveredLoci() []Locus {
	if !sf.paths.SortedByMinID() {
		sf.paths.Sort()
	}
	var uncovered []Locus
	for rank := 0; rank <= sf.graph.MaxNodeRank(); rank++ {
		id := sf.graph.RankToID(rank)
		for offset := 0; offset < sf.graph.NodeLength(id); offset++ {
			if walk := sf.walkFromLocus(id, offset); walk != nil && !CoveredBy(walk, sf.paths) {
				uncovered = append(uncovered, Locus{NodeID: id, Offset: offset})
			}
		}
	}
	sf.starts = append(sf.starts, uncovered...)
	return uncovered
}

// walkFromLocus extends the canonical (first-outgoing-edge) walk from
// (id, offset) to base-pair length >= k, returning nil if the graph runs
// out of outgoing edges before reaching that length.
func (sf *SeedFinder) walkFromLocus(id NodeID, offset int) Path {
	walk := NewDefaultPath(sf.graph)
	if err := walk.AddNode(id); err != nil {
		return nil
	}
	remaining := sf.graph.NodeLength(id) - offset
	bpLenFn := func() int { return remaining + (walk.BPLen() - sf.graph.NodeLength(id)) }
	bt := NewBacktrackerIter(sf.graph, id)
	if err := ExtendToK(walk, bt, bpLenFn, sf.k); err != nil {
		return nil
	}
	if bpLenFn() < sf.k {
		return nil
	}
	return walk
}

// AddAllLoci adds one starting locus every step base pairs across the
// whole graph, counting bases in BFS visiting order, so consecutive loci in
// that order are exactly step bases apart. The count runs on from one
// visited node to the next whether or not an edge joins them, so two loci
// on one branch of the graph are not in general step bases apart.
func (sf *SeedFinder) AddAllLoci(step int) []Locus {
	it := NewBFSIter(sf.graph, 0)
	var added []Locus
	acc := 0
	for {
		id := it.Value()
		length := sf.graph.NodeLength(id)
		for off := 0; off < length; off++ {
			if acc%step == 0 {
				added = append(added, Locus{NodeID: id, Offset: off})
			}
			acc++
		}
		it.Advance()
		if it.AtEnd() {
			break
		}
	}
	sf.starts = append(sf.starts, added...)
	return added
}

// SeedsOnPaths runs the k-mer cross-matcher between readsIdx and the
// orchestrator's path index, translating every hit's path-side position
// back to (node_id, offset) before invoking callback.
func (sf *SeedFinder) SeedsOnPaths(readsIdx *ReadIndex, callback func(Seed) error) error {
	matcher := &Matcher{K: sf.k}
	return matcher.Match(readsIdx.TextIndex(), sf.pathIdx.idx, func(hit KmerHit) error {
		pos := PathPosition{PathIdx: hit.Pos2.Text, Offset: hit.Pos2.Pos}
		nodeID, err := sf.pathIdx.PositionToID(pos)
		if err != nil {
			return err
		}
		offsetInNode, err := sf.pathIdx.PositionToOffset(pos)
		if err != nil {
			return err
		}
		rec := readsIdx.Reads().Record(hit.Pos1.Text)
		return callback(Seed{
			NodeID:       nodeID,
			OffsetInNode: offsetInNode,
			ReadID:       rec.ID,
			OffsetInRead: hit.Pos1.Pos,
		})
	})
}

// Traverse runs the traverser from every accumulated starting locus
// against readsIdx, streaming hits to callback.
func (sf *SeedFinder) Traverse(readsIdx *ReadIndex, policy MatchPolicy, callback func(Seed) error) error {
	tv := NewTraverser(sf.graph, readsIdx, sf.k, policy, false)
	for _, locus := range sf.starts {
		if err := tv.Traverse(locus.NodeID, locus.Offset, callback); err != nil {
			return err
		}
	}
	return nil
}

// TraverseParallel shards Starts across workers goroutines, each owning its
// own Traverser against the shared, read-only graph and readsIdx. callback
// is serialized behind a mutex, since hit output is a single function and
// is not assumed to be concurrency-safe on its own; st, if non-nil, gets
// an Add(1) on its "loci_per_shard" counter for every locus a worker
// finishes. No timing is recorded.
func (sf *SeedFinder) TraverseParallel(readsIdx *ReadIndex, policy MatchPolicy, workers int, st *stats.Stats, callback func(Seed) error) error {
	if workers < 1 {
		workers = 1
	}
	var mu sync.Mutex
	safeEmit := func(s Seed) error {
		mu.Lock()
		defer mu.Unlock()
		return callback(s)
	}

	shards := make([][]Locus, workers)
	for i, locus := range sf.starts {
		shards[i%workers] = append(shards[i%workers], locus)
	}

	var g errgroup.Group
	for _, shard := range shards {
		shard := shard
		if len(shard) == 0 {
			continue
		}
		g.Go(func() error {
			tv := NewTraverser(sf.graph, readsIdx, sf.k, policy, false)
			for _, locus := range shard {
				if err := tv.Traverse(locus.NodeID, locus.Offset, safeEmit); err != nil {
					return err
				}
				if st != nil {
					st.Counter("loci_per_shard").Add(1)
				}
			}
			return nil
		})
	}
	return g.Wait()
}
