// Copyright (c) 2025 Ali Ghaffaari
// SPDX-License-Identifier: MIT

package sufindex

import "testing"

func TestGoDownFindsExactSuffix(t *testing.T) {
	idx := New([][]byte{[]byte("BANANA")}, KindESA)
	it := idx.NewIter()
	// GoDown consumes a whole edge per call, so the pattern is stepped by
	// the returned edge length rather than one character at a time.
	pattern := []byte("ANA")
	for d := 0; d < len(pattern); {
		n, ok := it.GoDown(pattern[d])
		if !ok {
			t.Fatalf("expected to descend on %q", pattern[d])
		}
		d += n
	}
	if it.RepLength() != 3 {
		t.Fatalf("RepLength = %d, want 3", it.RepLength())
	}
	occs := it.Occurrences()
	if len(occs) != 2 {
		t.Fatalf("Occurrences = %v, want 2 occurrences of ANA", occs)
	}
	want := map[int]bool{1: true, 3: true}
	for _, o := range occs {
		if o.Text != 0 || !want[o.Pos] {
			t.Fatalf("unexpected occurrence %+v", o)
		}
	}
}

func TestGoDownFailsOnAbsentChar(t *testing.T) {
	idx := New([][]byte{[]byte("ACGT")}, KindESA)
	it := idx.NewIter()
	if _, ok := it.GoDown('N'); ok {
		t.Fatalf("did not expect to descend on N from root")
	}
}

func TestGoUpAndGoRight(t *testing.T) {
	idx := New([][]byte{[]byte("AC"), []byte("AG")}, KindFM)
	it := idx.NewIter()
	if _, ok := it.GoDown('A'); !ok {
		t.Fatal("expected to descend on A")
	}
	depthAtA := it.RepLength()
	if depthAtA != 1 {
		t.Fatalf("depth at A = %d, want 1", depthAtA)
	}
	it.GoUp()
	if !it.IsRoot() {
		t.Fatal("expected to be back at root")
	}
	if _, ok := it.GoRight(); ok {
		t.Fatalf("GoRight from the root itself should fail: the root has no parent to enumerate siblings under")
	}
	if _, ok := it.GoDown('A'); !ok {
		t.Fatal("expected to descend on A again")
	}
	edgeLen, ok := it.GoRight()
	if !ok {
		t.Fatal("expected GoRight to reach the C sibling of A")
	}
	// The C sibling is a leaf, and leaf edges carry the text terminator:
	// its label is "C\x00".
	if edgeLen != 2 {
		t.Fatalf("sibling edge length = %d, want 2", edgeLen)
	}
}

func TestMultipleTextsDistinctOccurrences(t *testing.T) {
	idx := New([][]byte{[]byte("ACGTACGT"), []byte("TTACGTTT")}, KindESA)
	it := idx.NewIter()
	pattern := []byte("ACGT")
	for d := 0; d < len(pattern); {
		n, ok := it.GoDown(pattern[d])
		if !ok {
			t.Fatalf("expected to descend on %q", pattern[d])
		}
		d += n
	}
	occs := it.Occurrences()
	if len(occs) != 3 {
		t.Fatalf("Occurrences = %v, want 3 (two in text 0, one in text 1)", occs)
	}
}
