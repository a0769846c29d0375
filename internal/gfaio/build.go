// Copyright (c) 2025 Ali Ghaffaari
// SPDX-License-Identifier: MIT

package gfaio

import (
	"fmt"
	"io"

	"github.com/ghaffaari/vgseed"
)

// LoadGraph reads a GFA1 stream and builds a vgseed.Graph from it. S-lines
// are added to the builder in file order, so the GFA segment ids do not
// need to match vgseed's dense [1, N] node ids directly -- the caller's
// file order becomes the graph's rank order, which it is expected to have
// already laid out topologically, per Graph's own documented assumption.
func LoadGraph(r io.Reader) (*vgseed.Graph, error) {
	parsed, err := Read(r)
	if err != nil {
		return nil, err
	}
	b := vgseed.NewGraphBuilder()
	idToNodeID := make(map[uint32]vgseed.NodeID, len(parsed.Segments))
	for _, s := range parsed.Segments {
		id, err := b.AddNode(s.Seq)
		if err != nil {
			return nil, fmt.Errorf("gfaio: segment %d: %w", s.ID, err)
		}
		idToNodeID[s.ID] = id
	}
	for _, l := range parsed.Links {
		from, ok := idToNodeID[l.From]
		if !ok {
			return nil, fmt.Errorf("gfaio: link references unknown segment %d", l.From)
		}
		to, ok := idToNodeID[l.To]
		if !ok {
			return nil, fmt.Errorf("gfaio: link references unknown segment %d", l.To)
		}
		if err := b.AddEdge(from, to); err != nil {
			return nil, err
		}
	}
	return b.Build(), nil
}
