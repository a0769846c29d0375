// Copyright (c) 2025 Ali Ghaffaari
// SPDX-License-Identifier: MIT

package vgseed

import (
	"math/rand/v2"
	"testing"
)

// buildCoverageTestGraph returns a 5-node branch/merge graph reachable from
// node 1 ("AAAA"->{"CCCC","GGGG"}->"TTTT", "GGGG"->"ACAC"), plus a 6th node
// with no edges at all, unreachable from node 1 by any walk.
func buildCoverageTestGraph(t *testing.T) *Graph {
	t.Helper()
	b := NewGraphBuilder()
	ids := make([]NodeID, 6)
	seqs := []string{"AAAA", "CCCC", "GGGG", "TTTT", "ACAC", "GTGT"}
	for i, s := range seqs {
		id, err := b.AddNode([]byte(s))
		if err != nil {
			t.Fatal(err)
		}
		ids[i] = id
	}
	for _, e := range [][2]int{{0, 1}, {0, 2}, {1, 3}, {2, 3}, {2, 4}} {
		if err := b.AddEdge(ids[e[0]], ids[e[1]]); err != nil {
			t.Fatal(err)
		}
	}
	return b.Build()
}

func TestGetUniqPatchesProducesInitialisedNonEmptyPatches(t *testing.T) {
	g := buildCoverageTestGraph(t)
	it := NewHaplotyperIter(g, 0, StrategyUnique, rand.New(rand.NewPCG(1, 2)))

	patches := GetUniqPatches(it, 3)
	if len(patches) == 0 {
		t.Fatal("expected at least one patch from a fresh (entirely novel) haplotyper walk")
	}
	for _, p := range patches {
		if !p.Initialised() {
			t.Fatalf("patch %v returned uninitialised", p.NodeIDs())
		}
		if p.NodeLen() == 0 {
			t.Fatal("patch has zero nodes")
		}
	}
	// Nothing has been committed yet, so the entire first walk is novel and
	// collapses to a single patch covering it end to end.
	if len(patches) != 1 || !nodeSeqsEqual(patches[0].NodeIDs(), []NodeID{1, 2, 4}) {
		t.Fatalf("patches = %v, want a single [1,2,4] patch", patches)
	}
}

func TestGetUniqPatchesSkipsAlreadyVisitedPrefix(t *testing.T) {
	g := buildCoverageTestGraph(t)
	it := NewHaplotyperIter(g, 0, StrategyUnique, rand.New(rand.NewPCG(1, 2)))

	first := GetUniqPatches(it, 3)
	it.Commit()
	if len(first) != 1 {
		t.Fatalf("first = %v, want exactly one patch", first)
	}

	second := GetUniqPatches(it, 3)
	it.Commit()
	// The second walk is [1,3,5]; node 1 is already covered by the first
	// commit's visited set, so the patch opens only once the walk reaches
	// the novel node 3.
	if len(second) != 1 || !nodeSeqsEqual(second[0].NodeIDs(), []NodeID{3, 5}) {
		t.Fatalf("second = %v, want a single [3,5] patch", second)
	}
}

// TestPickPathsPatchedSatisfiesCoverageInvariant verifies Property 6: after
// picking patched paths and computing uncovered loci, every locus in the
// range AddUncoveredLoci is guaranteed to resolve a canonical walk for
// (offset <= NodeLength-k, so a length-k walk never immediately runs out of
// node before reaching an edge) is either a recorded starting locus or
// covered by some sampled path -- and the node with no path to it at all
// (node 6, disconnected) is always reported uncovered.
func TestPickPathsPatchedSatisfiesCoverageInvariant(t *testing.T) {
	g := buildCoverageTestGraph(t)
	const k = 3
	sf := NewSeedFinder(g, k, rand.New(rand.NewPCG(1, 2)))
	sf.PickPaths(2, true, k)
	sf.AddUncoveredLoci()

	starts := map[Locus]bool{}
	for _, l := range sf.Starts() {
		starts[l] = true
	}

	for rank := 0; rank <= g.MaxNodeRank(); rank++ {
		id := g.RankToID(rank)
		for offset := 0; offset < g.NodeLength(id)-k+1; offset++ {
			locus := Locus{NodeID: id, Offset: offset}
			if starts[locus] {
				continue
			}
			walk := sf.walkFromLocus(id, offset)
			if walk == nil || !CoveredBy(walk, sf.paths) {
				t.Fatalf("locus %+v is neither a starting locus nor covered by any sampled path", locus)
			}
		}
	}

	disconnected := g.RankToID(5) // node 6, unreachable from node 1
	for offset := 0; offset < g.NodeLength(disconnected)-k+1; offset++ {
		if !starts[Locus{NodeID: disconnected, Offset: offset}] {
			t.Fatalf("locus (%d,%d) on the disconnected node should have been reported uncovered", disconnected, offset)
		}
	}
}
