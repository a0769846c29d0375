// Copyright (c) 2025 Ali Ghaffaari
// SPDX-License-Identifier: MIT

package vgseed

import "fmt"

// NodeID identifies a node in a Graph. Ids are dense in [1, N].
type NodeID uint32

// Base is a single DNA base. The alphabet is {A, C, G, T, N}.
type Base = byte

// node is the immutable per-node record backing a built Graph.
type node struct {
	seq  []byte   // DNA string, length >= 1
	out  []NodeID // outgoing edges, in insertion order
	in   []NodeID // incoming edges, in insertion order
}

// Graph is an immutable, directed, node-labelled sequence graph.
//
// Ids are dense in [1, N] and rank equals id-1: the builder assigns ranks
// in insertion order, which callers are expected to have already laid out
// in a topologically stable order (the concrete representation used here
// does not itself need a topological sort to satisfy node-lookup
// contracts, but downstream components such as the BFS/Backtracker
// iterators assume rank reflects a stable traversal order across loads).
//
// A Graph is built once via GraphBuilder and never mutated afterwards;
// every query is O(1) or O(out-degree/in-degree).
type Graph struct {
	nodes         []node // indexed by rank (id - 1)
	totalLoci     int
	maxNodeLength int
}

// GraphBuilder is the two-phase construction API for Graph: parsing of an
// external graph file format (VG/GFA/XG) is out of scope for the core and
// is left to a caller-supplied loader (see internal/gfaio for a minimal
// fixture loader); GraphBuilder is what that loader (or a test) drives.
type GraphBuilder struct {
	nodes []node
}

// NewGraphBuilder returns an empty builder.
func NewGraphBuilder() *GraphBuilder {
	return &GraphBuilder{}
}

// AddNode appends a new node with the given sequence and returns its id.
// Ids are assigned densely starting at 1, in call order.
func (b *GraphBuilder) AddNode(seq []byte) (NodeID, error) {
	if len(seq) == 0 {
		return 0, fmt.Errorf("vgseed: %w: node sequence must not be empty", ErrOutOfRange)
	}
	cp := make([]byte, len(seq))
	copy(cp, seq)
	b.nodes = append(b.nodes, node{seq: cp})
	return NodeID(len(b.nodes)), nil
}

// AddEdge adds a directed edge from -> to. Both ids must already have been
// produced by AddNode.
func (b *GraphBuilder) AddEdge(from, to NodeID) error {
	if !b.valid(from) || !b.valid(to) {
		return fmt.Errorf("vgseed: %w: edge references unknown node", ErrOutOfRange)
	}
	b.nodes[from-1].out = append(b.nodes[from-1].out, to)
	b.nodes[to-1].in = append(b.nodes[to-1].in, from)
	return nil
}

func (b *GraphBuilder) valid(id NodeID) bool {
	return id >= 1 && int(id) <= len(b.nodes)
}

// Build finalises the graph, computing the derived O(1) quantities.
func (b *GraphBuilder) Build() *Graph {
	g := &Graph{nodes: b.nodes}
	for _, n := range g.nodes {
		g.totalLoci += len(n.seq)
		if len(n.seq) > g.maxNodeLength {
			g.maxNodeLength = len(n.seq)
		}
	}
	return g
}

// NodeCount returns N, the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// MaxNodeRank returns the highest valid rank (NodeCount - 1).
func (g *Graph) MaxNodeRank() int { return len(g.nodes) - 1 }

// RankToID maps a 0-based rank to its node id.
func (g *Graph) RankToID(rank int) NodeID {
	return NodeID(rank + 1)
}

// IDToRank maps a node id to its 0-based rank.
func (g *Graph) IDToRank(id NodeID) int {
	return int(id) - 1
}

// valid reports whether id names a real node of g.
func (g *Graph) valid(id NodeID) bool {
	return id >= 1 && int(id) <= len(g.nodes)
}

// NodeLength returns the length, in bases, of the node's sequence.
func (g *Graph) NodeLength(id NodeID) int {
	return len(g.nodes[id-1].seq)
}

// NodeSequence returns the node's DNA string. The returned slice must not
// be mutated by the caller; it is shared with the graph's storage.
func (g *Graph) NodeSequence(id NodeID) []byte {
	return g.nodes[id-1].seq
}

// EdgesFrom returns the ids of nodes reachable by one outgoing edge from id,
// in the order the edges were added.
func (g *Graph) EdgesFrom(id NodeID) []NodeID {
	return g.nodes[id-1].out
}

// EdgesTo returns the ids of nodes with an outgoing edge into id.
func (g *Graph) EdgesTo(id NodeID) []NodeID {
	return g.nodes[id-1].in
}

// HasEdgesFrom reports whether id has at least one outgoing edge.
func (g *Graph) HasEdgesFrom(id NodeID) bool {
	return len(g.nodes[id-1].out) > 0
}

// IsBranch reports whether id has out-degree > 1.
func (g *Graph) IsBranch(id NodeID) bool {
	return len(g.nodes[id-1].out) > 1
}

// IsMerge reports whether id has in-degree > 1.
func (g *Graph) IsMerge(id NodeID) bool {
	return len(g.nodes[id-1].in) > 1
}

// TotalLoci returns the sum of all node lengths.
func (g *Graph) TotalLoci() int { return g.totalLoci }

// MaxNodeLength returns the length of the longest node.
func (g *Graph) MaxNodeLength() int { return g.maxNodeLength }
