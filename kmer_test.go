// Copyright (c) 2025 Ali Ghaffaari
// SPDX-License-Identifier: MIT

package vgseed

import (
	"testing"

	"github.com/ghaffaari/vgseed/internal/sufindex"
)

func countHits(t *testing.T, m *Matcher, idx1, idx2 *sufindex.Index) int {
	t.Helper()
	n := 0
	err := m.Match(idx1, idx2, func(KmerHit) error {
		n++
		return nil
	})
	if err != nil {
		t.Fatalf("Match returned error: %v", err)
	}
	return n
}

func TestCrossMatchDrivenDisjointReads(t *testing.T) {
	idx1 := sufindex.New([][]byte{[]byte("CATATA")}, sufindex.KindESA)
	idx2 := sufindex.New([][]byte{[]byte("ATATAC")}, sufindex.KindESA)
	m := &Matcher{K: 3}
	if got := countHits(t, m, idx1, idx2); got != 5 {
		t.Fatalf("hits = %d, want 5", got)
	}
}

func TestCrossMatchOracleMatchesDriven(t *testing.T) {
	idx1 := sufindex.New([][]byte{[]byte("CATATA")}, sufindex.KindESA)
	idx2 := sufindex.New([][]byte{[]byte("ATATAC")}, sufindex.KindESA)
	driven := &Matcher{K: 3}
	oracle := &Matcher{K: 3, OracleThreshold: 1 << 20}
	got1 := countHits(t, driven, idx1, idx2)
	got2 := countHits(t, oracle, idx1, idx2)
	if got1 != got2 {
		t.Fatalf("driven found %d hits, oracle found %d", got1, got2)
	}
}

// TestCrossMatchMultiRead reproduces end-to-end scenario (iii): each of the
// two T1 reads carries two of T2's four distinct 10-mers, at the
// overlapping offsets 8 and 9, and each of those 10-mers occurs in exactly
// two of T2's four 11-base reads, for an exact total of
// 2 (T1 windows) x 2 (matching T2 occurrences) x 2 (T1 reads) = 8 hits.
func TestCrossMatchMultiRead(t *testing.T) {
	idx1 := sufindex.New([][]byte{
		[]byte("TAGGCTACCGATTTAAATAGGCACAC"),
		[]byte("TAGGCTACGGATTTAAATCGGCACAC"),
	}, sufindex.KindESA)
	idx2 := sufindex.New([][]byte{
		[]byte("GGATTTAAATA"),
		[]byte("CGATTTAAATC"),
		[]byte("GGATTTAAATC"),
		[]byte("CGATTTAAATA"),
	}, sufindex.KindESA)
	m := &Matcher{K: 10}
	if got := countHits(t, m, idx1, idx2); got != 8 {
		t.Fatalf("hits = %d, want exactly 8", got)
	}
}

// TestCrossMatchNFreeInvariant reproduces end-to-end scenario (iv): scenario
// (iii)'s two T1 reads with the base at offset 12 (the middle of their
// shared "TTT" run, which every one of scenario (iii)'s four matching
// 10-mer windows spans) replaced by N. Every window that previously matched
// now carries an N and must be excluded, for an exact count of 0 hits; the
// callback additionally asserts no emitted hit ever covers an N.
func TestCrossMatchNFreeInvariant(t *testing.T) {
	idx1 := sufindex.New([][]byte{
		[]byte("TAGGCTACCGATNTAAATAGGCACAC"),
		[]byte("TAGGCTACGGATNTAAATCGGCACAC"),
	}, sufindex.KindESA)
	idx2 := sufindex.New([][]byte{
		[]byte("GGATTTAAATA"),
		[]byte("CGATTTAAATC"),
		[]byte("GGATTTAAATC"),
		[]byte("CGATTTAAATA"),
	}, sufindex.KindESA)
	m := &Matcher{K: 10}
	n := 0
	err := m.Match(idx1, idx2, func(h KmerHit) error {
		t1, t2 := idx1.Text(h.Pos1.Text), idx2.Text(h.Pos2.Text)
		for i := 0; i < m.K; i++ {
			if t1[h.Pos1.Pos+i] == 'N' || t2[h.Pos2.Pos+i] == 'N' {
				t.Fatalf("emitted hit containing N: %+v", h)
			}
		}
		n++
		return nil
	})
	if err != nil {
		t.Fatalf("Match returned error: %v", err)
	}
	if n != 0 {
		t.Fatalf("hits = %d, want exactly 0: the N at offset 12 falls inside every formerly-matching window", n)
	}
}

func TestAssertIndexDirection(t *testing.T) {
	if err := AssertIndexDirection(Forward, sufindex.KindESA); err != nil {
		t.Fatalf("Forward+ESA should be accepted: %v", err)
	}
	if err := AssertIndexDirection(Reversed, sufindex.KindFM); err != nil {
		t.Fatalf("Reversed+FM should be accepted: %v", err)
	}
	if err := AssertIndexDirection(Reversed, sufindex.KindESA); err == nil {
		t.Fatal("expected Reversed+ESA to be rejected")
	}
	if err := AssertIndexDirection(Forward, sufindex.KindFM); err == nil {
		t.Fatal("expected Forward+FM to be rejected")
	}
}
