// Copyright (c) 2025 Ali Ghaffaari
// SPDX-License-Identifier: MIT

package vgseed

import (
	"fmt"

	"github.com/ghaffaari/vgseed/internal/sufindex"
)

// KmerHit is one shared-k-mer occurrence pair emitted by the cross-matcher:
// one suffix start position in each of the two indexed text collections.
// Translating the path-side position into (graph_node_id, offset_in_node)
// is the orchestrator's job, not the matcher's.
type KmerHit struct {
	Pos1 sufindex.Occurrence
	Pos2 sufindex.Occurrence
}

// Matcher runs the k-mer cross-matcher between two indexed text
// collections.
type Matcher struct {
	K int
	// OracleThreshold selects crossMatchOracle over crossMatchDriven
	// whenever 4^K <= OracleThreshold: enumerating the whole k-mer space
	// is then cheaper than walking both trees. The zero value (0) always
	// picks the driven strategy.
	OracleThreshold int
}

var kmerAlphabet = []byte{'A', 'C', 'G', 'T'}

// Match runs the cross-matcher between idx1 and idx2, emitting one KmerHit
// per (occ1, occ2) pair for every N-free k-mer that occurs in both. It
// adaptively picks crossMatchOracle when the whole k-mer space is cheap
// enough to enumerate outright, crossMatchDriven otherwise.
func (m *Matcher) Match(idx1, idx2 *sufindex.Index, emit func(KmerHit) error) error {
	if m.K <= 0 {
		return fmt.Errorf("vgseed: matcher K must be positive, got %d", m.K)
	}
	fourToK := 1
	for i := 0; i < m.K && fourToK <= m.OracleThreshold; i++ {
		fourToK *= 4
	}
	if fourToK <= m.OracleThreshold {
		return m.crossMatchOracle(idx1, idx2, emit)
	}
	return m.crossMatchDriven(idx1, idx2, emit)
}

// crossMatchDriven performs a depth-first traversal of idx1's trie (it1,
// the driver), descending edge by edge and treating the first node whose
// representative reaches length >= K as a candidate k-mer: its first K
// characters are looked up directly in idx2 (the follower), and on success
// every occurrence pair is emitted. Branches whose edge begins with N are
// skipped without descending, and a candidate whose first K characters hold
// anything other than A, C, G or T (an N inside an edge, or the end-of-text
// terminator) is not looked up, so no emitted k-mer contains N. Once a
// node's representative reaches K, its subtree is not explored further: every descendant shares
// the same K-length prefix and would only re-emit the same hits.
//
// This folds the next_kmer/upto_prefix pair (an incremental,
// common-prefix-reusing walk of both trees) into a single direct lookup
// per candidate k-mer; the externally observable hit set is identical, the
// traversal of idx2 is simply redone from its root for each candidate
// instead of reusing the previous candidate's climb, which trades the
// common-prefix optimisation for a simpler implementation.
func (m *Matcher) crossMatchDriven(idx1, idx2 *sufindex.Index, emit func(KmerHit) error) error {
	root := idx1.NewIter()
	return m.dfsDriven(root, nil, idx2, emit)
}

func (m *Matcher) dfsDriven(it *sufindex.NativeIter, prefix []byte, idx2 *sufindex.Index, emit func(KmerHit) error) error {
	for _, b := range it.ChildBytes() {
		if b == 'N' {
			continue
		}
		child := it.Clone()
		child.GoDown(b)
		label := child.EdgeLabel()
		full := make([]byte, 0, len(prefix)+len(label))
		full = append(full, prefix...)
		full = append(full, label...)

		if len(full) >= m.K {
			if !isACGT(full[:m.K]) {
				continue
			}
			if err := m.tryEmit(full[:m.K], child, idx2, emit); err != nil {
				return err
			}
			continue
		}
		if err := m.dfsDriven(child, full, idx2, emit); err != nil {
			return err
		}
	}
	return nil
}

func (m *Matcher) tryEmit(kmer []byte, it1 *sufindex.NativeIter, idx2 *sufindex.Index, emit func(KmerHit) error) error {
	it2 := NewFineIter(idx2)
	for _, c := range kmer {
		if !it2.GoDown(c) {
			return nil
		}
	}
	for _, o1 := range it1.Occurrences() {
		for _, o2 := range it2.Occurrences() {
			if err := emit(KmerHit{Pos1: o1, Pos2: o2}); err != nil {
				return err
			}
		}
	}
	return nil
}

// crossMatchOracle drives both trees jointly with a lexicographically
// incrementing length-K seed buffer over {A,C,G,T} (N is never part of the
// oracle's alphabet, keeping every emitted hit N-free by construction): for
// each candidate it attempts go_down(seed) in both indices, emitting every
// occurrence pair on simultaneous success, then advances to the next k-mer
// via incrementKmer.
func (m *Matcher) crossMatchOracle(idx1, idx2 *sufindex.Index, emit func(KmerHit) error) error {
	seed := make([]byte, m.K)
	for i := range seed {
		seed[i] = kmerAlphabet[0]
	}
	for {
		it1, ok1 := descend(idx1, seed)
		it2, ok2 := descend(idx2, seed)
		if ok1 && ok2 {
			for _, o1 := range it1.Occurrences() {
				for _, o2 := range it2.Occurrences() {
					if err := emit(KmerHit{Pos1: o1, Pos2: o2}); err != nil {
						return err
					}
				}
			}
		}
		if !incrementKmer(seed) {
			return nil
		}
	}
}

func descend(idx *sufindex.Index, seed []byte) (*FineIter, bool) {
	it := NewFineIter(idx)
	for _, c := range seed {
		if !it.GoDown(c) {
			return it, false
		}
	}
	return it, true
}

// isACGT reports whether every byte of kmer is one of A, C, G, T.
func isACGT(kmer []byte) bool {
	for _, c := range kmer {
		if c != 'A' && c != 'C' && c != 'G' && c != 'T' {
			return false
		}
	}
	return true
}

// incrementKmer advances seed to the next string over kmerAlphabet in
// lexicographic order (an odometer over {A,C,G,T}), reporting false once
// every k-mer has been enumerated.
func incrementKmer(seed []byte) bool {
	for i := len(seed) - 1; i >= 0; i-- {
		pos := alphabetIndex(seed[i])
		if pos+1 < len(kmerAlphabet) {
			seed[i] = kmerAlphabet[pos+1]
			return true
		}
		seed[i] = kmerAlphabet[0]
	}
	return false
}

func alphabetIndex(c byte) int {
	for i, a := range kmerAlphabet {
		if a == c {
			return i
		}
	}
	return 0
}

// AssertIndexDirection enforces the construction-time invariant that
// enhanced-suffix-array indices are built over Forward paths and FM-index
// indices over Reversed paths; swapping the two is rejected here rather
// than silently producing a structurally valid but semantically wrong
// index.
func AssertIndexDirection(dir Direction, kind sufindex.Kind) error {
	switch {
	case kind == sufindex.KindESA && dir != Forward:
		return fmt.Errorf("%w: ESA index requires Forward paths, got %s", ErrBadDirection, dir)
	case kind == sufindex.KindFM && dir != Reversed:
		return fmt.Errorf("%w: FM-index requires Reversed paths, got %s", ErrBadDirection, dir)
	}
	return nil
}
