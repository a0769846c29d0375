// Copyright (c) 2025 Ali Ghaffaari
// SPDX-License-Identifier: MIT

package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/spf13/cobra"

	"github.com/ghaffaari/vgseed"
	"github.com/ghaffaari/vgseed/internal/fastqio"
	"github.com/ghaffaari/vgseed/internal/gfaio"
	"github.com/ghaffaari/vgseed/internal/stats"
)

var (
	seedIndexPrefix string
	seedStartsPath  string
	seedApprox      bool
	seedOnPathsOnly bool
)

func init() {
	cmd := newSeedCmd()
	cmd.Flags().StringVar(&seedIndexPrefix, "index", "", "path-index prefix (required)")
	cmd.Flags().StringVar(&seedStartsPath, "starts", "", "starting-loci file (required unless --on-paths-only)")
	cmd.Flags().BoolVar(&seedApprox, "approx", false, "allow up to 3 mismatches instead of exact matching")
	cmd.Flags().BoolVar(&seedOnPathsOnly, "on-paths-only", false, "cross-match against the path index only, skip graph traversal")
	cmd.MarkFlagRequired("index")
	rootCmd.AddCommand(cmd)
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed <graph.gfa> <reads.fastq>",
		Short: "Find exact k-mer seeds between reads and a variation graph",
		Long: `seed loads a path index and, unless --on-paths-only is set, a
starting-loci file, cross-matches the reads against the indexed paths,
then extends through graph branches from every starting locus the path
index did not cover. Seeds are streamed to stdout as JSON lines.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(args[0], args[1])
		},
	}
}

type seedRecord struct {
	NodeID       uint32 `json:"node_id"`
	OffsetInNode int    `json:"offset_in_node"`
	ReadID       string `json:"read_id"`
	OffsetInRead int    `json:"offset_in_read"`
}

func runSeed(graphPath, readsPath string) error {
	if seedIndexPrefix == "" {
		return fmt.Errorf("seed: --index is required")
	}

	gf, err := os.Open(graphPath)
	if err != nil {
		return fmt.Errorf("opening graph: %w", err)
	}
	defer gf.Close()
	graph, err := gfaio.LoadGraph(gf)
	if err != nil {
		return fmt.Errorf("loading graph: %w", err)
	}

	rf, err := os.Open(readsPath)
	if err != nil {
		return fmt.Errorf("opening reads: %w", err)
	}
	defer rf.Close()
	reads, err := fastqio.Read(rf)
	if err != nil {
		return fmt.Errorf("loading reads: %w", err)
	}
	readsIdx := vgseed.NewReadIndex(reads)

	pi, err := vgseed.LoadPathIndex(graph, seedIndexPrefix)
	if err != nil {
		return fmt.Errorf("loading path index: %w", err)
	}

	sf := vgseed.NewSeedFinder(graph, cfg.SeedLength, rand.New(rand.NewPCG(1, 2)))
	for _, p := range pi.Paths().Paths() {
		sf.Paths().PushBack(p)
	}
	if err := sf.IndexPaths(pi.Context(), pi.Direction()); err != nil {
		return fmt.Errorf("rebuilding path index: %w", err)
	}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()
	emit := func(s vgseed.Seed) error {
		return json.NewEncoder(out).Encode(seedRecord{
			NodeID:       uint32(s.NodeID),
			OffsetInNode: s.OffsetInNode,
			ReadID:       s.ReadID,
			OffsetInRead: s.OffsetInRead,
		})
	}

	count := 0
	countingEmit := func(s vgseed.Seed) error {
		count++
		return emit(s)
	}

	if err := sf.SeedsOnPaths(readsIdx, countingEmit); err != nil {
		return fmt.Errorf("cross-matching reads against paths: %w", err)
	}

	if !seedOnPathsOnly {
		if seedStartsPath == "" {
			return fmt.Errorf("seed: --starts is required unless --on-paths-only is set")
		}
		if err := sf.OpenStarts(seedStartsPath); err != nil {
			return fmt.Errorf("loading starting loci: %w", err)
		}
		policy := vgseed.ExactMatching
		if seedApprox {
			policy = vgseed.ApproxMatching
		}
		st := stats.New(nil)
		if cfg.Workers > 1 {
			if err := sf.TraverseParallel(readsIdx, policy, cfg.Workers, st, countingEmit); err != nil {
				return fmt.Errorf("traversing from starting loci: %w", err)
			}
		} else {
			if err := sf.Traverse(readsIdx, policy, countingEmit); err != nil {
				return fmt.Errorf("traversing from starting loci: %w", err)
			}
		}
	}

	logger.Info("seeding complete", "seeds", count)
	return nil
}
