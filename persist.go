// Copyright (c) 2025 Ali Ghaffaari
// SPDX-License-Identifier: MIT

package vgseed

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/ghaffaari/vgseed/internal/sufindex"
)

// Starting-loci file layout (little-endian, fixed-width, version-free):
//
//	uint64 k
//	uint64 count
//	count * (uint32 nodeID, uint32 offset)
//
// No magic number or version tag: the format is simple enough that a
// truncated or foreign file is caught by a short read or an out-of-range
// node id, both surfaced as ErrCorruptFile.

// SaveStarts writes the orchestrator's accumulated starting loci to path.
func (sf *SeedFinder) SaveStarts(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	if err := binary.Write(w, binary.LittleEndian, uint64(sf.k)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint64(len(sf.starts))); err != nil {
		return err
	}
	for _, l := range sf.starts {
		if err := binary.Write(w, binary.LittleEndian, uint32(l.NodeID)); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, uint32(l.Offset)); err != nil {
			return err
		}
	}
	return w.Flush()
}

// OpenStarts replaces the orchestrator's starting loci with the contents of
// path, previously written by SaveStarts. It does not alter sf.k: the
// stored k is checked against it and a mismatch is reported as
// ErrCorruptFile rather than silently adopted, since a starting-loci file
// sampled for a different seed length is not meaningfully reusable. On any
// error the orchestrator is left with no starting loci.
func (sf *SeedFinder) OpenStarts(path string) (err error) {
	defer func() {
		if err != nil {
			sf.starts = nil
		}
	}()
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	r := bufio.NewReader(f)

	var k, count uint64
	if err := binary.Read(r, binary.LittleEndian, &k); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptFile, err)
	}
	if int(k) != sf.k {
		return fmt.Errorf("%w: starting-loci file was sampled for k=%d, seed finder has k=%d", ErrCorruptFile, k, sf.k)
	}
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptFile, err)
	}
	loci := make([]Locus, 0, count)
	for i := uint64(0); i < count; i++ {
		var id, off uint32
		if err := binary.Read(r, binary.LittleEndian, &id); err != nil {
			return fmt.Errorf("%w: %v", ErrCorruptFile, err)
		}
		if err := binary.Read(r, binary.LittleEndian, &off); err != nil {
			return fmt.Errorf("%w: %v", ErrCorruptFile, err)
		}
		if !sf.graph.valid(NodeID(id)) {
			return fmt.Errorf("%w: node id %d not in graph", ErrCorruptFile, id)
		}
		loci = append(loci, Locus{NodeID: NodeID(id), Offset: int(off)})
	}
	sf.starts = loci
	return nil
}

// Path-index file set layout, two files sharing a prefix:
//
//   <prefix>.paths — little-endian, fixed-width:
//	uint8  direction (0 = Forward, 1 = Reversed)
//	uint64 context
//	uint8  sorted (PathSet.SortedByMinID)
//	uint64 pathCount
//	pathCount * (uint64 nodeCount, nodeCount * uint32 nodeID)
//
//   <prefix>.sufidx — the concatenated trimmed sequences, one per path, as
//   length-prefixed byte strings (uint64 length + raw bytes); the suffix
//   index itself is rebuilt from these texts on load rather than
//   serialized fibre-by-fibre, since internal/sufindex's construction is
//   cheap relative to I/O at the path-index scale this module targets.

// SavePathIndex writes pi's path set and trimmed-text fibres to
// <prefix>.paths and <prefix>.sufidx.
func SavePathIndex(pi *PathIndex, prefix string) error {
	pf, err := os.Create(prefix + ".paths")
	if err != nil {
		return err
	}
	defer pf.Close()
	pw := bufio.NewWriter(pf)

	dirByte := byte(0)
	if pi.direction == Reversed {
		dirByte = 1
	}
	if err := binary.Write(pw, binary.LittleEndian, dirByte); err != nil {
		return err
	}
	if err := binary.Write(pw, binary.LittleEndian, uint64(pi.context)); err != nil {
		return err
	}
	sortedByte := byte(0)
	if pi.paths.SortedByMinID() {
		sortedByte = 1
	}
	if err := binary.Write(pw, binary.LittleEndian, sortedByte); err != nil {
		return err
	}
	paths := pi.paths.Paths()
	if err := binary.Write(pw, binary.LittleEndian, uint64(len(paths))); err != nil {
		return err
	}
	for _, p := range paths {
		ids := p.NodeIDs()
		if err := binary.Write(pw, binary.LittleEndian, uint64(len(ids))); err != nil {
			return err
		}
		for _, id := range ids {
			if err := binary.Write(pw, binary.LittleEndian, uint32(id)); err != nil {
				return err
			}
		}
	}
	if err := pw.Flush(); err != nil {
		return err
	}

	sf, err := os.Create(prefix + ".sufidx")
	if err != nil {
		return err
	}
	defer sf.Close()
	sw := bufio.NewWriter(sf)
	for idx := 0; idx < len(paths); idx++ {
		text := pi.idx.Text(idx)
		if err := binary.Write(sw, binary.LittleEndian, uint64(len(text))); err != nil {
			return err
		}
		if _, err := sw.Write(text); err != nil {
			return err
		}
	}
	return sw.Flush()
}

// LoadPathIndex reconstructs a PathIndex against graph from a file set
// previously written by SavePathIndex. The node-id sequences are used to
// rebuild each path's Path object (re-initialised against graph); the
// trimmed-text fibres are read back verbatim and fed directly into a fresh
// suffix index, bypassing PathIndexBuilder's own re-trimming (the
// persisted text already reflects whatever context it was built with).
func LoadPathIndex(graph *Graph, prefix string) (*PathIndex, error) {
	pf, err := os.Open(prefix + ".paths")
	if err != nil {
		return nil, err
	}
	defer pf.Close()
	pr := bufio.NewReader(pf)

	var dirByte, sortedByte byte
	var context, pathCount uint64
	if err := binary.Read(pr, binary.LittleEndian, &dirByte); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptFile, err)
	}
	if err := binary.Read(pr, binary.LittleEndian, &context); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptFile, err)
	}
	if err := binary.Read(pr, binary.LittleEndian, &sortedByte); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptFile, err)
	}
	if err := binary.Read(pr, binary.LittleEndian, &pathCount); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptFile, err)
	}
	direction := Forward
	if dirByte == 1 {
		direction = Reversed
	}

	paths := NewPathSet()
	for i := uint64(0); i < pathCount; i++ {
		var nodeCount uint64
		if err := binary.Read(pr, binary.LittleEndian, &nodeCount); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptFile, err)
		}
		p := NewDefaultPath(graph)
		for j := uint64(0); j < nodeCount; j++ {
			var id uint32
			if err := binary.Read(pr, binary.LittleEndian, &id); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrCorruptFile, err)
			}
			if err := p.AddNode(NodeID(id)); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrCorruptFile, err)
			}
		}
		if err := p.Initialise(); err != nil {
			return nil, err
		}
		paths.PushBack(p)
	}
	if sortedByte == 1 {
		paths.Sort()
	}

	sf, err := os.Open(prefix + ".sufidx")
	if err != nil {
		return nil, err
	}
	defer sf.Close()
	sr := bufio.NewReader(sf)
	texts := make([][]byte, 0, pathCount)
	trimmedLen := make([]int, 0, pathCount)
	for {
		var length uint64
		if err := binary.Read(sr, binary.LittleEndian, &length); err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("%w: %v", ErrCorruptFile, err)
		}
		text := make([]byte, length)
		if _, err := io.ReadFull(sr, text); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptFile, err)
		}
		texts = append(texts, text)
		trimmedLen = append(trimmedLen, len(text))
	}
	if uint64(len(texts)) != pathCount {
		return nil, fmt.Errorf("%w: path count %d does not match text fibre count %d", ErrCorruptFile, pathCount, len(texts))
	}

	kind := sufindex.KindESA
	if direction == Reversed {
		kind = sufindex.KindFM
	}
	return &PathIndex{
		graph:      graph,
		paths:      paths,
		context:    int(context),
		direction:  direction,
		idx:        sufindex.New(texts, kind),
		trimmedLen: trimmedLen,
	}, nil
}
