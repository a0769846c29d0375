// Copyright (c) 2025 Ali Ghaffaari
// SPDX-License-Identifier: MIT

package vgseed

import "slices"

// PathSet owns an ordered collection of Paths plus a sortedness flag.
// When sorted, CoveredBy restricts its search to the sub-range of paths
// whose min-id/max-id bracket the query, via binary search.
type PathSet struct {
	paths  []Path
	minIDs []NodeID // minIDs[i] caches the min node id of paths[i]
	maxIDs []NodeID // maxIDs[i] caches the max node id of paths[i]
	sorted bool
}

// NewPathSet returns an empty PathSet.
func NewPathSet() *PathSet {
	return &PathSet{}
}

// Len returns the number of paths in the set.
func (s *PathSet) Len() int { return len(s.paths) }

// Paths returns the underlying path slice. Callers must not mutate it.
func (s *PathSet) Paths() []Path { return s.paths }

// SortedByMinID reports whether Sort has been called since the last
// PushBack.
func (s *PathSet) SortedByMinID() bool { return s.sorted }

// PushBack appends path and clears the sortedness flag.
func (s *PathSet) PushBack(p Path) {
	mn, mx := minMaxID(p.NodeIDs())
	s.paths = append(s.paths, p)
	s.minIDs = append(s.minIDs, mn)
	s.maxIDs = append(s.maxIDs, mx)
	s.sorted = false
}

func minMaxID(ids []NodeID) (min, max NodeID) {
	if len(ids) == 0 {
		return 0, 0
	}
	min, max = ids[0], ids[0]
	for _, id := range ids[1:] {
		if id < min {
			min = id
		}
		if id > max {
			max = id
		}
	}
	return min, max
}

// Sort orders the paths by ascending min(node-ids).
func (s *PathSet) Sort() {
	idx := make([]int, len(s.paths))
	for i := range idx {
		idx[i] = i
	}
	slices.SortFunc(idx, func(a, b int) int {
		switch {
		case s.minIDs[a] < s.minIDs[b]:
			return -1
		case s.minIDs[a] > s.minIDs[b]:
			return 1
		default:
			return 0
		}
	})
	paths := make([]Path, len(s.paths))
	minIDs := make([]NodeID, len(s.paths))
	maxIDs := make([]NodeID, len(s.paths))
	for i, j := range idx {
		paths[i] = s.paths[j]
		minIDs[i] = s.minIDs[j]
		maxIDs[i] = s.maxIDs[j]
	}
	s.paths, s.minIDs, s.maxIDs = paths, minIDs, maxIDs
	s.sorted = true
}

// CoveredBy reports whether any path in s contains query's node sequence
// (Default/Dynamic/Compact: order-preserving sub-walk) or node set (Micro:
// set-inclusion).
//
// When s is sorted, the search restricts itself to the window of paths
// whose min-id <= query's max-id and whose max-id >= query's min-id,
// located by binary search; ties within that window are resolved by a
// linear scan.
func CoveredBy(query Path, s *PathSet) bool {
	ids := query.NodeIDs()
	if len(ids) == 0 {
		return true
	}
	qMin, qMax := minMaxID(ids)

	lo, hi := 0, len(s.paths)
	if s.sorted {
		lo, hi = coverageWindow(s, qMin, qMax)
	}
	for i := lo; i < hi; i++ {
		if s.maxIDs[i] < qMin || s.minIDs[i] > qMax {
			continue
		}
		if query.Kind() == KindMicro {
			if s.paths[i].ContainsRange(ids) {
				return true
			}
			continue
		}
		if s.paths[i].ContainsRange(ids) {
			return true
		}
	}
	return false
}

// coverageWindow returns [lb, ub) over a min-id-sorted path set such that
// every path whose min-id <= qMax could possibly satisfy maxID >= qMin;
// paths are sorted ascending by min-id, so the lower bound is simply the
// first index whose min-id could still bracket qMin (0, since earlier
// paths might have a large max-id despite a small min-id) and the upper
// bound is the first index whose min-id exceeds qMax.
func coverageWindow(s *PathSet, qMin, qMax NodeID) (lo, hi int) {
	_ = qMin
	hi = sortSearchUpperBound(s.minIDs, qMax)
	return 0, hi
}

// sortSearchUpperBound returns the index of the first element in a
// (ascending) sorted slice strictly greater than x, i.e. len(a) if none.
func sortSearchUpperBound(a []NodeID, x NodeID) int {
	lo, hi := 0, len(a)
	for lo < hi {
		mid := (lo + hi) / 2
		if a[mid] <= x {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}
