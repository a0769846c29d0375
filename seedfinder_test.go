// Copyright (c) 2025 Ali Ghaffaari
// SPDX-License-Identifier: MIT

package vgseed

import (
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"
)

// buildBranchGraph returns a 4-node diamond: "AAAA" -> {"CCCC", "GGGG"} -> "TTTT".
func buildBranchGraph(t *testing.T) *Graph {
	t.Helper()
	b := NewGraphBuilder()
	n1, err := b.AddNode([]byte("AAAA"))
	if err != nil {
		t.Fatal(err)
	}
	n2, err := b.AddNode([]byte("CCCC"))
	if err != nil {
		t.Fatal(err)
	}
	n3, err := b.AddNode([]byte("GGGG"))
	if err != nil {
		t.Fatal(err)
	}
	n4, err := b.AddNode([]byte("TTTT"))
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range [][2]NodeID{{n1, n2}, {n1, n3}, {n2, n4}, {n3, n4}} {
		if err := b.AddEdge(e[0], e[1]); err != nil {
			t.Fatal(err)
		}
	}
	return b.Build()
}

func testRNG() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestPickPathsSamplesRequestedCount(t *testing.T) {
	g := buildBranchGraph(t)
	sf := NewSeedFinder(g, 3, testRNG())
	sf.PickPaths(2, false, 0)
	if sf.Paths().Len() != 2 {
		t.Fatalf("Paths().Len() = %d, want 2", sf.Paths().Len())
	}
}

func TestSeedsOnPathsFindsExactMatch(t *testing.T) {
	g := buildBranchGraph(t)
	sf := NewSeedFinder(g, 3, testRNG())
	sf.PickPaths(2, false, 0)
	if err := sf.IndexPaths(4, Forward); err != nil {
		t.Fatal(err)
	}

	reads := NewReadSet([]FastqRecord{{ID: "r1", Seq: []byte("AAA")}})
	ri := NewReadIndex(reads)

	var seeds []Seed
	err := sf.SeedsOnPaths(ri, func(s Seed) error {
		seeds = append(seeds, s)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(seeds) == 0 {
		t.Fatal("expected at least one seed for AAA, which occurs in every sampled path's first node")
	}
	for _, s := range seeds {
		if s.NodeID != 1 {
			t.Fatalf("seed %+v: want NodeID 1 (the all-A node)", s)
		}
	}
}

func TestAddAllLociSpacing(t *testing.T) {
	g := buildLinearGraph(t)
	sf := NewSeedFinder(g, 2, testRNG())
	loci := sf.AddAllLoci(3)
	if len(loci) == 0 {
		t.Fatal("expected at least one locus")
	}
	if loci[0] != (Locus{NodeID: 1, Offset: 0}) {
		t.Fatalf("first locus = %+v, want (1, 0)", loci[0])
	}
	if len(sf.Starts()) != len(loci) {
		t.Fatalf("Starts() not updated: got %d, want %d", len(sf.Starts()), len(loci))
	}
}

func TestSaveAndOpenStartsRoundTrip(t *testing.T) {
	g := buildLinearGraph(t)
	sf := NewSeedFinder(g, 4, testRNG())
	sf.AddAllLoci(2)
	want := append([]Locus(nil), sf.Starts()...)

	dir := t.TempDir()
	p := filepath.Join(dir, "starts.bin")
	if err := sf.SaveStarts(p); err != nil {
		t.Fatal(err)
	}

	sf2 := NewSeedFinder(g, 4, testRNG())
	if err := sf2.OpenStarts(p); err != nil {
		t.Fatal(err)
	}
	if len(sf2.Starts()) != len(want) {
		t.Fatalf("loaded %d loci, want %d", len(sf2.Starts()), len(want))
	}
	for i, l := range want {
		if sf2.Starts()[i] != l {
			t.Fatalf("locus %d = %+v, want %+v", i, sf2.Starts()[i], l)
		}
	}
}

func TestOpenStartsRejectsKMismatch(t *testing.T) {
	g := buildLinearGraph(t)
	sf := NewSeedFinder(g, 4, testRNG())
	sf.AddAllLoci(2)
	dir := t.TempDir()
	p := filepath.Join(dir, "starts.bin")
	if err := sf.SaveStarts(p); err != nil {
		t.Fatal(err)
	}

	sf2 := NewSeedFinder(g, 5, testRNG())
	if err := sf2.OpenStarts(p); err == nil {
		t.Fatal("expected an error loading starts saved for a different k")
	}
}

func TestSavePathIndexRoundTrip(t *testing.T) {
	g := buildLinearGraph(t)
	sf := NewSeedFinder(g, 3, testRNG())
	sf.PickPaths(1, false, 0)
	if err := sf.IndexPaths(1, Forward); err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	prefix := filepath.Join(dir, "pidx")
	if err := SavePathIndex(sf.PathIndex(), prefix); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(prefix + ".paths"); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(prefix + ".sufidx"); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadPathIndex(g, prefix)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Paths().Len() != sf.PathIndex().Paths().Len() {
		t.Fatalf("loaded %d paths, want %d", loaded.Paths().Len(), sf.PathIndex().Paths().Len())
	}
	if loaded.Context() != sf.PathIndex().Context() {
		t.Fatalf("loaded context = %d, want %d", loaded.Context(), sf.PathIndex().Context())
	}
}
