// Copyright (c) 2025 Ali Ghaffaari
// SPDX-License-Identifier: MIT

package fastqio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ghaffaari/vgseed"
)

const sample = "@r1\nACGT\n+\nIIII\n@r2\nGGCC\n+\nIIII\n"

func TestReadParsesRecords(t *testing.T) {
	reads, err := Read(strings.NewReader(sample))
	if err != nil {
		t.Fatal(err)
	}
	if reads.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", reads.Len())
	}
	r0 := reads.Record(0)
	if r0.ID != "r1" || string(r0.Seq) != "ACGT" || string(r0.Qual) != "IIII" {
		t.Fatalf("record 0 = %+v", r0)
	}
}

func TestReadRejectsTruncatedRecord(t *testing.T) {
	if _, err := Read(strings.NewReader("@r1\nACGT\n+\n")); err == nil {
		t.Fatal("expected an error for a truncated record")
	}
}

func TestReadRejectsQualLengthMismatch(t *testing.T) {
	if _, err := Read(strings.NewReader("@r1\nACGT\n+\nII\n")); err == nil {
		t.Fatal("expected an error for mismatched quality length")
	}
}

func TestWriteUsesFakeQualWhenMissing(t *testing.T) {
	reads := vgseed.NewReadSet([]vgseed.FastqRecord{{ID: "p1", Seq: []byte("ACGT")}})
	var buf bytes.Buffer
	if err := Write(&buf, reads); err != nil {
		t.Fatal(err)
	}
	want := "@p1\nACGT\n+\nIIII\n"
	if buf.String() != want {
		t.Fatalf("Write() = %q, want %q", buf.String(), want)
	}
}
