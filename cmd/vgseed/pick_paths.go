// Copyright (c) 2025 Ali Ghaffaari
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/spf13/cobra"

	"github.com/ghaffaari/vgseed"
	"github.com/ghaffaari/vgseed/internal/gfaio"
)

var pickPathsOut string

func init() {
	cmd := newPickPathsCmd()
	cmd.Flags().StringVar(&pickPathsOut, "out", "paths", "output prefix for the saved path index")
	rootCmd.AddCommand(cmd)
}

func newPickPathsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pick-paths <graph.gfa>",
		Short: "Sample haplotype-like walks from a variation graph and index them",
		Long: `pick-paths samples --num-paths walks from the graph using the unique
haplotyper, optionally reduced to their covering patches when --patched is
set, builds a trimmed-text path index over them, and writes the index to
--out.paths / --out.sufidx.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPickPaths(args[0])
		},
	}
}

func runPickPaths(graphPath string) error {
	f, err := os.Open(graphPath)
	if err != nil {
		return fmt.Errorf("opening graph: %w", err)
	}
	defer f.Close()

	graph, err := gfaio.LoadGraph(f)
	if err != nil {
		return fmt.Errorf("loading graph: %w", err)
	}

	rng := rand.New(rand.NewPCG(1, 2))
	sf := vgseed.NewSeedFinder(graph, cfg.SeedLength, rng)
	sf.PickPaths(cfg.NumPaths, cfg.Patched, cfg.Context)

	direction := vgseed.Forward
	if cfg.Reverse {
		direction = vgseed.Reversed
	}
	if err := sf.IndexPaths(cfg.Context, direction); err != nil {
		return fmt.Errorf("indexing paths: %w", err)
	}
	if err := vgseed.SavePathIndex(sf.PathIndex(), pickPathsOut); err != nil {
		return fmt.Errorf("saving path index: %w", err)
	}

	logger.Info("sampled and indexed paths",
		"graph", graphPath,
		"paths", sf.Paths().Len(),
		"out", pickPathsOut)
	return nil
}
