// Copyright (c) 2025 Ali Ghaffaari
// SPDX-License-Identifier: MIT

package vgseed

import "testing"

func pathOf(t *testing.T, g *Graph, ids ...NodeID) Path {
	t.Helper()
	p := NewDefaultPath(g)
	for _, id := range ids {
		if err := p.AddNode(id); err != nil {
			t.Fatal(err)
		}
	}
	return p
}

func TestPathSetCoveredByUnsorted(t *testing.T) {
	g := buildLinearGraph(t)
	s := NewPathSet()
	s.PushBack(pathOf(t, g, 1, 2, 3))

	if !CoveredBy(pathOf(t, g, 2), s) {
		t.Fatal("expected node 2 alone to be covered by [1,2,3]")
	}
	if !CoveredBy(pathOf(t, g, 1, 2), s) {
		t.Fatal("expected contiguous prefix [1,2] to be covered")
	}
	if CoveredBy(pathOf(t, g, 3, 2), s) {
		t.Fatal("expected reversed order [3,2] not to be covered")
	}
}

func TestPathSetCoveredByAfterSort(t *testing.T) {
	g := buildLinearGraph(t)
	s := NewPathSet()
	s.PushBack(pathOf(t, g, 2, 3))
	s.PushBack(pathOf(t, g, 1))
	if s.SortedByMinID() {
		t.Fatal("expected unsorted right after PushBack")
	}
	s.Sort()
	if !s.SortedByMinID() {
		t.Fatal("expected sorted after Sort")
	}

	if !CoveredBy(pathOf(t, g, 1), s) {
		t.Fatal("expected node 1 covered by its own singleton path")
	}
	if !CoveredBy(pathOf(t, g, 2, 3), s) {
		t.Fatal("expected [2,3] covered by its own path")
	}
	if CoveredBy(pathOf(t, g, 1, 2), s) {
		t.Fatal("expected [1,2] not covered: split across two paths")
	}
}

func TestPathSetCoveredByEmptySet(t *testing.T) {
	g := buildLinearGraph(t)
	s := NewPathSet()
	if CoveredBy(pathOf(t, g, 1), s) {
		t.Fatal("expected nothing covered by an empty set")
	}
}

func TestPathSetPushBackInvalidatesSort(t *testing.T) {
	g := buildLinearGraph(t)
	s := NewPathSet()
	s.PushBack(pathOf(t, g, 1))
	s.Sort()
	s.PushBack(pathOf(t, g, 2))
	if s.SortedByMinID() {
		t.Fatal("expected PushBack to clear the sorted flag")
	}
}
