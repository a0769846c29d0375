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

var (
	lociIndexPrefix string
	lociOut         string
	lociAll         bool
)

func init() {
	cmd := newLociCmd()
	cmd.Flags().StringVar(&lociIndexPrefix, "index", "", "path-index prefix (required unless --all)")
	cmd.Flags().StringVar(&lociOut, "out", "starts", "output path for the saved starting loci")
	cmd.Flags().BoolVar(&lociAll, "all", false, "space starting loci every --step-size bases instead of covering uncovered loci")
	rootCmd.AddCommand(cmd)
}

func newLociCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "loci <graph.gfa>",
		Short: "Pick traversal starting loci and save them",
		Long: `loci either loads --index and computes the loci whose canonical
extension is not already covered by the indexed path set, or, with --all,
adds one locus every --step-size bases across the whole graph regardless
of coverage. The resulting starting loci are saved to --out.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoci(args[0])
		},
	}
}

func runLoci(graphPath string) error {
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

	if lociAll {
		added := sf.AddAllLoci(cfg.StepSize)
		logger.Info("spaced loci across graph", "count", len(added), "step", cfg.StepSize)
	} else {
		if lociIndexPrefix == "" {
			return fmt.Errorf("loci: --index is required unless --all is set")
		}
		pi, err := vgseed.LoadPathIndex(graph, lociIndexPrefix)
		if err != nil {
			return fmt.Errorf("loading path index: %w", err)
		}
		for _, p := range pi.Paths().Paths() {
			sf.Paths().PushBack(p)
		}
		added := sf.AddUncoveredLoci()
		logger.Info("found uncovered loci", "count", len(added))
	}

	if err := sf.SaveStarts(lociOut); err != nil {
		return fmt.Errorf("saving starting loci: %w", err)
	}
	logger.Info("saved starting loci", "out", lociOut, "total", len(sf.Starts()))
	return nil
}
