// Copyright (c) 2025 Ali Ghaffaari
// SPDX-License-Identifier: MIT

// Package sufindex implements a full-text self-index over a collection of
// byte strings, exposing top-down, parent-linked traversal with occurrence
// enumeration -- the shared contract that FM-indices and enhanced suffix
// arrays both provide as black boxes to the rest of this module (see
// vgseed's fineiter.go and kmer.go).
//
// No ready-made Go implementation of either structure turned up anywhere in
// the reference corpus, so this package builds a generalised suffix trie
// directly: an edge-compressed radix tree over every suffix of every input
// text, one insertion at a time. That is O(total length squared) in the
// worst case rather than the linear-time construction a production ESA/FM
// build would use (Kasai's algorithm over a suffix array built with
// SA-IS, or a BWT via a Burrows-Wheeler transform), but it satisfies the
// exact same top-down/parent-link/occurrence-enumeration contract the rest
// of the package depends on, at a scale (sampled-path and read collections)
// where the quadratic factor is not the bottleneck.
package sufindex

import "sort"

// Kind distinguishes the two black-box index kinds the rest of the module
// reasons about. Both are backed by the same trie structure here; Kind only
// records which directional contract (Forward/Reversed) the caller asserted
// at construction time, enforced by vgseed's static direction check.
type Kind int

const (
	// KindESA is the enhanced-suffix-array contract: inputs must be Forward.
	KindESA Kind = iota
	// KindFM is the FM-index contract: inputs must be Reversed.
	KindFM
)

// Occurrence identifies one suffix start position: which input text (by
// index into the slice passed to New) and the byte offset within it.
type Occurrence struct {
	Text int
	Pos  int
}

type trieNode struct {
	edgeLabel   []byte
	firstByte   byte
	parent      *trieNode
	children    map[byte]*trieNode
	childOrder  []byte // sorted keys of children, maintained incrementally
	depth       int    // string-depth: cumulative label length from the root
	ends        []Occurrence
	subtreeOccs []Occurrence // populated by Index.Freeze; nil before Freeze
}

// Index is a generalised suffix trie over a fixed collection of texts.
type Index struct {
	root  *trieNode
	texts [][]byte
	kind  Kind
	built bool
}

// New builds a generalised suffix trie over texts. Every suffix of every
// text is inserted, so New is O(sum(len(t)^2)). A private per-build
// sentinel byte terminates each text's suffixes so that no suffix is ever
// a byte-for-byte prefix of another text's suffix purely by truncation at
// the slice boundary; the sentinel is never matched by GoDown since no real
// base ever equals it.
func New(texts [][]byte, kind Kind) *Index {
	idx := &Index{
		root:  &trieNode{children: map[byte]*trieNode{}},
		texts: texts,
		kind:  kind,
	}
	for ti, text := range texts {
		buf := make([]byte, len(text)+1)
		copy(buf, text)
		buf[len(text)] = sentinelByte
		for pos := 0; pos < len(text); pos++ {
			idx.insert(buf[pos:], Occurrence{Text: ti, Pos: pos})
		}
	}
	idx.freeze(idx.root)
	idx.built = true
	return idx
}

const sentinelByte byte = 0x00

func (idx *Index) insert(suffix []byte, occ Occurrence) {
	cur := idx.root
	i := 0
	for {
		c := suffix[i]
		child, ok := cur.children[c]
		if !ok {
			leaf := &trieNode{
				edgeLabel: suffix[i:],
				firstByte: c,
				parent:    cur,
				children:  map[byte]*trieNode{},
				depth:     cur.depth + (len(suffix) - i),
			}
			leaf.ends = append(leaf.ends, occ)
			addChild(cur, leaf)
			return
		}
		lbl := child.edgeLabel
		j := 0
		for j < len(lbl) && i+j < len(suffix) && lbl[j] == suffix[i+j] {
			j++
		}
		if j < len(lbl) {
			// Split child's edge at offset j.
			mid := &trieNode{
				edgeLabel: append([]byte(nil), lbl[:j]...),
				firstByte: c,
				parent:    cur,
				children:  map[byte]*trieNode{},
				depth:     cur.depth + j,
			}
			child.edgeLabel = lbl[j:]
			child.firstByte = lbl[j]
			child.parent = mid
			addChild(mid, child)
			cur.children[c] = mid
			// c is already in cur.childOrder at the right sorted
			// position since mid keeps the same firstByte as child did.
			cur = mid
		} else {
			cur = child
		}
		i += j
		if i == len(suffix) {
			cur.ends = append(cur.ends, occ)
			return
		}
	}
}

func addChild(parent, child *trieNode) {
	parent.children[child.firstByte] = child
	pos := sort.Search(len(parent.childOrder), func(k int) bool {
		return parent.childOrder[k] >= child.firstByte
	})
	parent.childOrder = append(parent.childOrder, 0)
	copy(parent.childOrder[pos+1:], parent.childOrder[pos:])
	parent.childOrder[pos] = child.firstByte
}

// freeze performs a post-order aggregation of occurrence lists so every
// node's subtreeOccs holds every occurrence reachable beneath it, allowing
// O(1)-amortised occurrence enumeration at query time.
func (idx *Index) freeze(n *trieNode) []Occurrence {
	occs := append([]Occurrence(nil), n.ends...)
	for _, b := range n.childOrder {
		occs = append(occs, idx.freeze(n.children[b])...)
	}
	n.subtreeOccs = occs
	return occs
}

// Kind reports which directional contract this index was built under.
func (idx *Index) Kind() Kind { return idx.kind }

// Text returns the i-th input text.
func (idx *Index) Text(i int) []byte { return idx.texts[i] }

// Size returns the total number of suffixes indexed (the sum of the input
// texts' lengths), used by the cross-matcher to pick between its driven and
// oracle strategies.
func (idx *Index) Size() int {
	n := 0
	for _, t := range idx.texts {
		n += len(t)
	}
	return n
}

// ChildBytes returns, in lexicographic order, the first byte of each child
// edge of the cursor's node.
func (it *NativeIter) ChildBytes() []byte { return it.node.childOrder }

// NativeIter is a top-down cursor over the trie, always positioned exactly
// at a node (never mid-edge); FineIter layers a back-offset on top of this
// to allow per-character positions within an edge.
type NativeIter struct {
	idx  *Index
	node *trieNode
}

// NewIter returns a cursor positioned at the root.
func (idx *Index) NewIter() *NativeIter { return &NativeIter{idx: idx, node: idx.root} }

// IsRoot reports whether the cursor is at the trie's root.
func (it *NativeIter) IsRoot() bool { return it.node.parent == nil }

// RepLength returns the string-depth (cumulative edge-label length from the
// root) of the node the cursor is at.
func (it *NativeIter) RepLength() int { return it.node.depth }

// ParentEdgeLength returns the length of the edge connecting the cursor's
// node to its parent; 0 at the root.
func (it *NativeIter) ParentEdgeLength() int {
	if it.node.parent == nil {
		return 0
	}
	return len(it.node.edgeLabel)
}

// EdgeChar returns the byte at offset depthInEdge of the node's parent
// edge label.
func (it *NativeIter) EdgeChar(depthInEdge int) byte { return it.node.edgeLabel[depthInEdge] }

// EdgeLabel returns the full label of the edge connecting the cursor's
// node to its parent (empty at the root).
func (it *NativeIter) EdgeLabel() []byte { return it.node.edgeLabel }

// GoDown descends the single child edge beginning with c, consuming the
// whole edge in one step; it reports the edge's length on success.
func (it *NativeIter) GoDown(c byte) (edgeLen int, ok bool) {
	child, ok := it.node.children[c]
	if !ok {
		return 0, false
	}
	it.node = child
	return len(child.edgeLabel), true
}

// GoDownFirst descends the lexicographically first child edge, used by the
// preorder (character-unconstrained) traversal.
func (it *NativeIter) GoDownFirst() (edgeLen int, ok bool) {
	if len(it.node.childOrder) == 0 {
		return 0, false
	}
	return it.GoDown(it.node.childOrder[0])
}

// GoUp moves to the parent node; a no-op at the root.
func (it *NativeIter) GoUp() {
	if it.node.parent != nil {
		it.node = it.node.parent
	}
}

// GoRight moves to the next sibling edge of the cursor's node, in
// lexicographic order of first byte; it reports the new edge's length.
func (it *NativeIter) GoRight() (edgeLen int, ok bool) {
	if it.node.parent == nil {
		return 0, false
	}
	siblings := it.node.parent.childOrder
	pos := sort.Search(len(siblings), func(k int) bool { return siblings[k] >= it.node.firstByte })
	if pos >= len(siblings) || pos+1 >= len(siblings) {
		return 0, false
	}
	next := it.node.parent.children[siblings[pos+1]]
	it.node = next
	return len(next.edgeLabel), true
}

// IsLeaf reports whether the cursor's node has no children.
func (it *NativeIter) IsLeaf() bool { return len(it.node.childOrder) == 0 }

// FirstEdgeByte returns the first byte of the lexicographically first child
// edge, which lets a caller detect an N-labelled edge without descending
// it.
func (it *NativeIter) FirstEdgeByte() (byte, bool) {
	if len(it.node.childOrder) == 0 {
		return 0, false
	}
	return it.node.childOrder[0], true
}

// Occurrences returns every suffix-start position reachable from the
// cursor's node.
func (it *NativeIter) Occurrences() []Occurrence { return it.node.subtreeOccs }

// Clone returns an independent cursor at the same position.
func (it *NativeIter) Clone() *NativeIter { return &NativeIter{idx: it.idx, node: it.node} }
