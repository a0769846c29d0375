// Copyright (c) 2025 Ali Ghaffaari
// SPDX-License-Identifier: MIT

package vgseed

import "github.com/ghaffaari/vgseed/internal/sufindex"

// FineIter wraps an internal/sufindex.NativeIter with an integer
// back-offset b, giving per-character positions mid-edge on top of a
// native cursor that only ever sits at trie nodes. b == 0 means
// the virtual position coincides with the native node; b > 0 means b
// characters short of it, somewhere along the parent edge.
type FineIter struct {
	native *sufindex.NativeIter
	b      int
}

// NewFineIter returns a cursor at the root of idx.
func NewFineIter(idx *sufindex.Index) *FineIter {
	return &FineIter{native: idx.NewIter()}
}

// IsRoot reports whether the cursor is virtually at the trie's root.
func (f *FineIter) IsRoot() bool { return f.b == 0 && f.native.IsRoot() }

// RepLength returns the virtual string-depth of the cursor.
func (f *FineIter) RepLength() int { return f.native.RepLength() - f.b }

// ParentEdgeLength returns the length of the underlying native edge the
// cursor currently sits on (or partway along).
func (f *FineIter) ParentEdgeLength() int { return f.native.ParentEdgeLength() }

// ParentEdgeLabel returns the character at depth parent_edge_length - b - 1
// of the parent edge, i.e. the last character consumed to reach the
// cursor's current virtual position.
func (f *FineIter) ParentEdgeLabel() byte {
	idx := f.native.ParentEdgeLength() - f.b - 1
	return f.native.EdgeChar(idx)
}

// GoDown attempts to consume one character c. At a node (b == 0) this
// performs a native go_down, landing at the top of the matched child's
// edge (b = edgeLen-1); mid-edge (b > 0) it only succeeds if c matches the
// next character already fixed by the edge label, in which case b
// decreases by one.
func (f *FineIter) GoDown(c byte) bool {
	if f.b == 0 {
		edgeLen, ok := f.native.GoDown(c)
		if !ok {
			return false
		}
		f.b = edgeLen - 1
		return true
	}
	next := f.native.EdgeChar(f.native.ParentEdgeLength() - f.b)
	if next != c {
		return false
	}
	f.b--
	return true
}

// GoDownPreorder descends one character with no constraint on which one,
// used by the traverser to step past a mismatching character. It returns
// false only at a leaf.
func (f *FineIter) GoDownPreorder() bool {
	if f.b == 0 {
		edgeLen, ok := f.native.GoDownFirst()
		if !ok {
			return false
		}
		f.b = edgeLen - 1
		return true
	}
	f.b--
	return true
}

// GoUp retreats one character: mid-edge it increases b; at the top of an
// edge (b == parent_edge_length-1) it performs a native go_up and resets
// b to 0. A no-op at the root.
func (f *FineIter) GoUp() {
	if f.IsRoot() {
		return
	}
	if f.b == f.native.ParentEdgeLength()-1 {
		f.native.GoUp()
		f.b = 0
		return
	}
	f.b++
}

// GoRight moves to the next sibling edge, only valid when the cursor is
// virtually positioned at the top of its current edge (one character below
// the parent) -- sibling edges only align at that single virtual depth.
func (f *FineIter) GoRight() bool {
	if f.native.IsRoot() || f.b != f.native.ParentEdgeLength()-1 {
		return false
	}
	newLen, ok := f.native.GoRight()
	if !ok {
		return false
	}
	f.b = newLen - 1
	return true
}

// IsLeaf reports whether the cursor is virtually at a leaf of the trie
// (only meaningful at b == 0, since mid-edge positions always have a
// continuation).
func (f *FineIter) IsLeaf() bool { return f.b == 0 && f.native.IsLeaf() }

// FirstEdgeByte returns the first byte of the lexicographically first
// child edge beneath the cursor's native node, which lets a caller test for
// an N-labelled branch without descending it. Only meaningful at b == 0.
func (f *FineIter) FirstEdgeByte() (byte, bool) { return f.native.FirstEdgeByte() }

// Occurrences returns every occurrence in the subtree rooted at the
// cursor's virtual position (identical to the native node's subtree: the
// back-offset only affects which character we're virtually positioned at
// along an edge, never which leaves are reachable below it).
func (f *FineIter) Occurrences() []sufindex.Occurrence { return f.native.Occurrences() }

// Clone returns an independent cursor at the same position.
func (f *FineIter) Clone() *FineIter {
	return &FineIter{native: f.native.Clone(), b: f.b}
}
