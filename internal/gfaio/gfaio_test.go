// Copyright (c) 2025 Ali Ghaffaari
// SPDX-License-Identifier: MIT

package gfaio

import (
	"bytes"
	"strings"
	"testing"
)

const tinyGFA = "S\t1\tACGT\nS\t2\tGGCC\nL\t1\t+\t2\t+\t0M\n"

func TestReadParsesSegmentsAndLinks(t *testing.T) {
	g, err := Read(strings.NewReader(tinyGFA))
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Segments) != 2 || len(g.Links) != 1 {
		t.Fatalf("segments=%d links=%d, want 2 and 1", len(g.Segments), len(g.Links))
	}
	if string(g.Segments[0].Seq) != "ACGT" {
		t.Fatalf("segment 0 seq = %q, want ACGT", g.Segments[0].Seq)
	}
	if g.Links[0].From != 1 || g.Links[0].To != 2 {
		t.Fatalf("link = %+v, want {1 2}", g.Links[0])
	}
}

func TestWriteRoundTrip(t *testing.T) {
	g, err := Read(strings.NewReader(tinyGFA))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := Write(&buf, g); err != nil {
		t.Fatal(err)
	}
	g2, err := Read(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(g2.Segments) != len(g.Segments) || len(g2.Links) != len(g.Links) {
		t.Fatalf("round trip mismatch: %+v vs %+v", g2, g)
	}
}

func TestLoadGraphBuildsVgseedGraph(t *testing.T) {
	graph, err := LoadGraph(strings.NewReader(tinyGFA))
	if err != nil {
		t.Fatal(err)
	}
	if graph.NodeCount() != 2 {
		t.Fatalf("NodeCount() = %d, want 2", graph.NodeCount())
	}
	if !graph.HasEdgesFrom(1) {
		t.Fatal("expected node 1 to have an outgoing edge")
	}
}

func TestLoadGraphRejectsUnknownLinkTarget(t *testing.T) {
	_, err := LoadGraph(strings.NewReader("S\t1\tACGT\nL\t1\t+\t9\t+\t0M\n"))
	if err == nil {
		t.Fatal("expected an error for a link referencing an undeclared segment")
	}
}
