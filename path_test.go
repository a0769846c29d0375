// Copyright (c) 2025 Ali Ghaffaari
// SPDX-License-Identifier: MIT

package vgseed

import "testing"

// checkPositionRoundTrip verifies Property 1 (position-to-node round trip):
// for every path-local position p, the node id and offset it maps to locate
// exactly the base at p in the path's own concatenated sequence.
func checkPositionRoundTrip(t *testing.T, p Path) {
	t.Helper()
	if err := p.Initialise(); err != nil {
		t.Fatalf("Initialise: %v", err)
	}
	seq, err := p.Sequence(Forward, 0)
	if err != nil {
		t.Fatalf("Sequence: %v", err)
	}
	g := p.Graph()
	for pos := 0; pos < len(seq); pos++ {
		id, err := p.PositionToID(pos)
		if err != nil {
			t.Fatalf("PositionToID(%d): %v", pos, err)
		}
		off, err := p.PositionToOffset(pos)
		if err != nil {
			t.Fatalf("PositionToOffset(%d): %v", pos, err)
		}
		got := g.NodeSequence(id)[off]
		if got != seq[pos] {
			t.Fatalf("pos %d: node %d offset %d = %q, want %q (path seq)", pos, id, off, got, seq[pos])
		}
	}
}

func TestDefaultPathPositionRoundTrip(t *testing.T) {
	g := buildLinearGraph(t)
	p := NewDefaultPath(g)
	for _, id := range []NodeID{1, 2, 3} {
		if err := p.AddNode(id); err != nil {
			t.Fatal(err)
		}
	}
	checkPositionRoundTrip(t, p)
}

func TestDynamicPathPositionRoundTrip(t *testing.T) {
	g := buildLinearGraph(t)
	p := NewDynamicPath(g)
	for _, id := range []NodeID{1, 2, 3} {
		if err := p.PushBack(id); err != nil {
			t.Fatal(err)
		}
	}
	checkPositionRoundTrip(t, p)
}

func TestDefaultPathSelectRankExactOffsets(t *testing.T) {
	g := buildLinearGraph(t)
	p := NewDefaultPath(g)
	for _, id := range []NodeID{1, 2, 3} {
		if err := p.AddNode(id); err != nil {
			t.Fatal(err)
		}
	}
	if err := p.Initialise(); err != nil {
		t.Fatal(err)
	}
	// Each node is 4 bases long: node 0 spans [0,4), node 1 spans [4,8),
	// node 2 spans [8,12).
	for _, tc := range []struct {
		pos     int
		wantID  NodeID
		wantOff int
	}{
		{0, 1, 0}, {3, 1, 3}, {4, 2, 0}, {7, 2, 3}, {8, 3, 0}, {11, 3, 3},
	} {
		id, err := p.PositionToID(tc.pos)
		if err != nil {
			t.Fatalf("PositionToID(%d): %v", tc.pos, err)
		}
		off, err := p.PositionToOffset(tc.pos)
		if err != nil {
			t.Fatalf("PositionToOffset(%d): %v", tc.pos, err)
		}
		if id != tc.wantID || off != tc.wantOff {
			t.Fatalf("pos %d: got (%d,%d), want (%d,%d)", tc.pos, id, off, tc.wantID, tc.wantOff)
		}
	}
}

func TestDefaultPathContainsAndContainsRange(t *testing.T) {
	g := buildLinearGraph(t)
	p := NewDefaultPath(g)
	for _, id := range []NodeID{1, 2, 3} {
		if err := p.AddNode(id); err != nil {
			t.Fatal(err)
		}
	}
	if !p.Contains(2) {
		t.Fatal("expected Contains(2) true")
	}
	if p.Contains(99) {
		t.Fatal("expected Contains(99) false")
	}
	if !p.ContainsRange([]NodeID{1, 2}) {
		t.Fatal("expected ContainsRange([1,2]) true: contiguous prefix")
	}
	if p.ContainsRange([]NodeID{2, 1}) {
		t.Fatal("expected ContainsRange([2,1]) false: wrong order")
	}
	if p.ContainsRange([]NodeID{1, 3}) {
		t.Fatal("expected ContainsRange([1,3]) false: not contiguous")
	}
}

func TestDefaultPathSequenceContextTrim(t *testing.T) {
	g := buildLinearGraph(t)
	p := NewDefaultPath(g)
	for _, id := range []NodeID{1, 2, 3} {
		if err := p.AddNode(id); err != nil {
			t.Fatal(err)
		}
	}
	// context = 2: trim first/last node to their last/first 1 base.
	seq, err := p.Sequence(Forward, 2)
	if err != nil {
		t.Fatal(err)
	}
	want := "T" + "GGCC" + "T" // last base of ACGT, all of GGCC, first base of TTAA
	if string(seq) != want {
		t.Fatalf("trimmed sequence = %q, want %q", seq, want)
	}
}

func TestDefaultPathExtendRejectsSelfAndMismatchedGraph(t *testing.T) {
	g := buildLinearGraph(t)
	p := NewDefaultPath(g)
	if err := p.AddNode(1); err != nil {
		t.Fatal(err)
	}
	if err := p.Extend(p); err == nil {
		t.Fatal("expected Extend(self) to fail")
	}

	other := buildLinearGraph(t)
	q := NewDefaultPath(other)
	if err := q.AddNode(1); err != nil {
		t.Fatal(err)
	}
	if err := p.Extend(q); err == nil {
		t.Fatal("expected Extend across different graphs to fail")
	}
}
