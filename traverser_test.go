// Copyright (c) 2025 Ali Ghaffaari
// SPDX-License-Identifier: MIT

package vgseed

import "testing"

func buildSingleNodeGraph(t *testing.T, seq string) *Graph {
	t.Helper()
	b := NewGraphBuilder()
	if _, err := b.AddNode([]byte(seq)); err != nil {
		t.Fatal(err)
	}
	return b.Build()
}

func TestTraverseExactHit(t *testing.T) {
	g := buildSingleNodeGraph(t, "ACGTAC")
	reads := NewReadSet([]FastqRecord{{ID: "r1", Seq: []byte("GTA")}})
	ri := NewReadIndex(reads)
	tv := NewTraverser(g, ri, 3, ExactMatching, false)

	var hits []Seed
	err := tv.Traverse(1, 2, func(s Seed) error {
		hits = append(hits, s)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 1 {
		t.Fatalf("hits = %v, want exactly one", hits)
	}
	want := Seed{NodeID: 1, OffsetInNode: 2, ReadID: "r1", OffsetInRead: 0}
	if hits[0] != want {
		t.Fatalf("hit = %+v, want %+v", hits[0], want)
	}
}

func TestTraverseExactMismatchDropsFrontier(t *testing.T) {
	g := buildSingleNodeGraph(t, "ACGTAC")
	reads := NewReadSet([]FastqRecord{{ID: "r1", Seq: []byte("GGA")}})
	ri := NewReadIndex(reads)
	tv := NewTraverser(g, ri, 3, ExactMatching, false)

	var hits []Seed
	err := tv.Traverse(1, 2, func(s Seed) error {
		hits = append(hits, s)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 0 {
		t.Fatalf("hits = %v, want none: GTA vs GGA mismatches at position 1", hits)
	}
}

func TestTraverseApproxToleratesOneMismatch(t *testing.T) {
	g := buildSingleNodeGraph(t, "ACGTAC")
	reads := NewReadSet([]FastqRecord{{ID: "r1", Seq: []byte("GGA")}})
	ri := NewReadIndex(reads)
	tv := NewTraverser(g, ri, 3, ApproxMatching, false)

	var hits []Seed
	err := tv.Traverse(1, 2, func(s Seed) error {
		hits = append(hits, s)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 1 {
		t.Fatalf("hits = %v, want exactly one: two tolerated mismatches land within ApproxMatching's 3-mismatch budget", hits)
	}
	// The preorder fallback always descends the lexicographically first
	// child on a mismatch, so after 'G' matches and 'T','A' both mismatch
	// against the GGA suffix tree, the cursor lands on the GA suffix (read
	// offset 1), not the GGA suffix (offset 0).
	want := Seed{NodeID: 1, OffsetInNode: 2, ReadID: "r1", OffsetInRead: 1}
	if hits[0] != want {
		t.Fatalf("hit = %+v, want %+v", hits[0], want)
	}
}

func TestTraverseExactMatchingNeverTakesApproxPath(t *testing.T) {
	g := buildSingleNodeGraph(t, "ACGTAC")
	reads := NewReadSet([]FastqRecord{{ID: "r1", Seq: []byte("GGA")}})
	ri := NewReadIndex(reads)
	tv := NewTraverser(g, ri, 3, ExactMatching, false)

	var hits []Seed
	err := tv.Traverse(1, 2, func(s Seed) error {
		hits = append(hits, s)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 0 {
		t.Fatalf("hits = %v, want none: ExactMatching has zero mismatch budget", hits)
	}
}

func TestTraverseDFSScheduleMatchesBFS(t *testing.T) {
	g := buildSingleNodeGraph(t, "ACGTACGTAC")
	reads := NewReadSet([]FastqRecord{{ID: "r1", Seq: []byte("CGTA")}})
	ri := NewReadIndex(reads)

	bfs := NewTraverser(g, ri, 4, ExactMatching, false)
	dfs := NewTraverser(g, ri, 4, ExactMatching, true)

	var bfsHits, dfsHits []Seed
	if err := bfs.Traverse(1, 1, func(s Seed) error { bfsHits = append(bfsHits, s); return nil }); err != nil {
		t.Fatal(err)
	}
	if err := dfs.Traverse(1, 1, func(s Seed) error { dfsHits = append(dfsHits, s); return nil }); err != nil {
		t.Fatal(err)
	}
	if len(bfsHits) != len(dfsHits) || len(bfsHits) == 0 {
		t.Fatalf("bfsHits = %v, dfsHits = %v", bfsHits, dfsHits)
	}
}
