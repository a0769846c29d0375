// Copyright (c) 2025 Ali Ghaffaari
// SPDX-License-Identifier: MIT

package vgseed

// GetUniqPatches returns a sequence of short paths ("patches") of
// base-pair length >= k such that (a) each patch is not fully covered by
// any previously committed walk and (b) together they cover all currently
// uncovered length-k windows reachable from the Haplotyper's start.
//
// The algorithm maintains a sliding frontier holding the trailing window
// of the walk whose base-pair length is >= k (the "last k nodes",
// generalised to base-pair granularity since nodes vary in length): it
// extends the frontier while advancing the walk, and treats
// the frontier as "novel" whenever it is not itself covered by any
// previously committed walk. A patch opens on the first novel frontier and
// stays open while the frontier remains novel; it closes the moment the
// frontier becomes covered again. Adjacent patches are merged when the gap
// between the end of one patch and the start of the next is less than k
// bases, since such a short gap could not itself contain a full novel
// k-mer window.
func GetUniqPatches(it *HaplotyperIter, k int) []Path {
	var patches []*DynamicPath
	var patchGapStart int // bp offset, along the walk, of the end of the last closed patch
	var walkOffset int    // total bp length of the walk consumed so far

	frontier := NewDynamicPath(it.graph)
	_ = frontier.PushBack(it.Value())
	walkOffset += it.graph.NodeLength(it.Value())

	var openPatch *DynamicPath
	var openPatchStartOffset int

	closePatch := func(endOffset int) {
		if openPatch == nil {
			return
		}
		if len(patches) > 0 && openPatchStartOffset-patchGapStart < k {
			// merge with the previous patch: append openPatch's nodes
			// that are not already present.
			prev := patches[len(patches)-1]
			prevSet := make(map[NodeID]struct{}, prev.NodeLen())
			for _, id := range prev.NodeIDs() {
				prevSet[id] = struct{}{}
			}
			for _, id := range openPatch.NodeIDs() {
				if _, ok := prevSet[id]; !ok {
					_ = prev.PushBack(id)
				}
			}
		} else {
			patches = append(patches, openPatch)
		}
		patchGapStart = endOffset
		openPatch = nil
	}

	for !it.AtEnd() {
		novel := !it.coveredByVisited(frontier.NodeIDs())

		if novel && openPatch == nil {
			openPatch = NewDynamicPath(it.graph)
			for _, id := range frontier.NodeIDs() {
				_ = openPatch.PushBack(id)
			}
			openPatchStartOffset = walkOffset - frontier.BPLen()
		} else if !novel {
			closePatch(walkOffset)
		}

		it.Advance()
		if it.AtEnd() {
			break
		}
		cur := it.Value()
		walkOffset += it.graph.NodeLength(cur)
		_ = frontier.PushBack(cur)
		for frontier.BPLen()-it.graph.NodeLength(frontier.NodeIDs()[0]) >= k {
			_, _ = frontier.PopFront()
		}

		if openPatch != nil {
			_ = openPatch.PushBack(cur)
		}
	}
	closePatch(walkOffset)

	out := make([]Path, 0, len(patches))
	for _, p := range patches {
		_ = p.Initialise()
		out = append(out, p)
	}
	return out
}
