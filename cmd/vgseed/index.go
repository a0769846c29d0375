// Copyright (c) 2025 Ali Ghaffaari
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ghaffaari/vgseed"
	"github.com/ghaffaari/vgseed/internal/gfaio"
)

func init() {
	rootCmd.AddCommand(newIndexCmd())
}

func newIndexCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "index <graph.gfa> <prefix>",
		Short: "Load a saved path index and report its shape",
		Long: `index reconstructs a path index from <prefix>.paths and
<prefix>.sufidx against <graph.gfa>, the inverse of pick-paths, and prints
the path count, context length, and direction it was built with. Useful
to confirm a path index saved by one run is loadable before handing it
to seed or dump-subgraph.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIndex(args[0], args[1])
		},
	}
}

func runIndex(graphPath, prefix string) error {
	f, err := os.Open(graphPath)
	if err != nil {
		return fmt.Errorf("opening graph: %w", err)
	}
	defer f.Close()

	graph, err := gfaio.LoadGraph(f)
	if err != nil {
		return fmt.Errorf("loading graph: %w", err)
	}

	pi, err := vgseed.LoadPathIndex(graph, prefix)
	if err != nil {
		return fmt.Errorf("loading path index: %w", err)
	}

	logger.Info("loaded path index",
		"prefix", prefix,
		"paths", pi.Paths().Len(),
		"context", pi.Context(),
		"direction", pi.Direction())
	return nil
}
