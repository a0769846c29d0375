// Copyright (c) 2025 Ali Ghaffaari
// SPDX-License-Identifier: MIT

package vgseed

import "github.com/ghaffaari/vgseed/internal/sufindex"

// ReadIndex is a built, queryable full-text index over a ReadSet, the
// traverser's second text collection. Reads are indexed Forward/ESA: the
// traverser descends them front-to-back in lock-step with the graph walk,
// so no reversed/FM-index pairing is required here (only the path index
// is constrained by the Forward<->ESA/Reversed<->FM assertion, since only
// it ever participates in the bidirectional path-index contract).
type ReadIndex struct {
	reads *ReadSet
	idx   *sufindex.Index
}

// NewReadIndex builds a full-text index over every record in reads.
func NewReadIndex(reads *ReadSet) *ReadIndex {
	texts := make([][]byte, reads.Len())
	for i := 0; i < reads.Len(); i++ {
		texts[i] = reads.Record(i).Seq
	}
	return &ReadIndex{reads: reads, idx: sufindex.New(texts, sufindex.KindESA)}
}

// Reads returns the underlying ReadSet.
func (ri *ReadIndex) Reads() *ReadSet { return ri.reads }

// TextIndex returns the underlying full-text index, for the cross-matcher.
func (ri *ReadIndex) TextIndex() *sufindex.Index { return ri.idx }
