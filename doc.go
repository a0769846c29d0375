// Copyright (c) 2025 Ali Ghaffaari
// SPDX-License-Identifier: MIT

// Package vgseed finds exact k-mer seeds between a set of sequencing reads
// and a variation graph (a pangenome represented as a directed,
// node-labelled sequence graph).
//
// A small number of haplotype-like walks are sampled from the graph
// (haplotyper.go, patches.go), indexed as a full-text suffix structure
// (pathindex.go, backed by internal/sufindex), and cross-matched against an
// index of the reads (kmer.go) to locate shared k-mers. From each starting
// locus (the loci the sampled paths leave uncovered, or one locus every step
// bases), a graph-walking traverser (traverser.go) matches the reads along
// every walk of length k, through branch points the sampled paths did not
// themselves cover, recovering seeds a pure path-index lookup would miss.
//
// The orchestrator (seedfinder.go) ties these stages together: pick paths,
// build the index, choose starting loci, match, traverse, persist.
//
// Parsing of a GFA subset and of FASTQ, and a CLI, live outside this
// package (internal/gfaio, internal/fastqio, cmd/vgseed); there is no VG or
// XG parser and no read simulator. vgseed itself only depends on Graph,
// Path and ReadSet, constructed in-process by a caller.
package vgseed
