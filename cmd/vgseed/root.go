// Copyright (c) 2025 Ali Ghaffaari
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	cfgFile string
	cfg     Config
	verbose bool
	logger  *slog.Logger

	// flagCfg receives whatever the user typed on the command line. loadConfig
	// merges only the flags actually Changed() onto the file/default config,
	// since flagCfg itself starts zero-valued and would otherwise stomp the
	// loaded values with false/0 for every flag the user left unset.
	flagCfg Config
)

var rootCmd = &cobra.Command{
	Use:   "vgseed",
	Short: "Find exact k-mer seeds between reads and a variation graph",
	Long: `vgseed samples haplotype-like walks from a variation graph, indexes
them, and cross-matches them against a set of sequencing reads to locate
exact k-mer seeds, extending matches through graph branches the sampled
paths alone did not cover.`,
	Version:           "0.1.0",
	PersistentPreRunE: loadConfig,
}

func loadConfig(cmd *cobra.Command, args []string) error {
	loaded, err := loadConfigFile(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg = loaded
	applyChangedFlags(cmd.Flags())
	logger = newLogger(cfg.JSONLogs, verbose)
	return nil
}

func applyChangedFlags(flags *pflag.FlagSet) {
	if flags.Changed("seed-length") {
		cfg.SeedLength = flagCfg.SeedLength
	}
	if flags.Changed("step-size") {
		cfg.StepSize = flagCfg.StepSize
	}
	if flags.Changed("context") {
		cfg.Context = flagCfg.Context
	}
	if flags.Changed("forward") {
		cfg.Forward = flagCfg.Forward
	}
	if flags.Changed("reverse") {
		cfg.Reverse = flagCfg.Reverse
	}
	if flags.Changed("ploidy") {
		cfg.Ploidy = flagCfg.Ploidy
	}
	if flags.Changed("num-paths") {
		cfg.NumPaths = flagCfg.NumPaths
	}
	if flags.Changed("patched") {
		cfg.Patched = flagCfg.Patched
	}
	if flags.Changed("workers") {
		cfg.Workers = flagCfg.Workers
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.PersistentFlags().IntVar(&flagCfg.SeedLength, "seed-length", 0, "k-mer seed length")
	rootCmd.PersistentFlags().IntVar(&flagCfg.StepSize, "step-size", 0, "spacing for add-all-loci")
	rootCmd.PersistentFlags().IntVar(&flagCfg.Context, "context", 0, "path-index trimming context")
	rootCmd.PersistentFlags().BoolVar(&flagCfg.Forward, "forward", false, "build a Forward/ESA path index")
	rootCmd.PersistentFlags().BoolVar(&flagCfg.Reverse, "reverse", false, "build a Reversed/FM-index path index")
	rootCmd.PersistentFlags().IntVar(&flagCfg.Ploidy, "ploidy", 0, "number of haplotypes per sampled path set")
	rootCmd.PersistentFlags().IntVar(&flagCfg.NumPaths, "num-paths", 0, "number of paths to sample")
	rootCmd.PersistentFlags().BoolVar(&flagCfg.Patched, "patched", false, "sample patches instead of full haplotypes")
	rootCmd.PersistentFlags().IntVar(&flagCfg.Workers, "workers", 0, "parallel traversal worker count")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
