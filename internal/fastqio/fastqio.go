// Copyright (c) 2025 Ali Ghaffaari
// SPDX-License-Identifier: MIT

// Package fastqio provides a minimal FASTQ reader sufficient for the CLI's
// reads input, not a general-purpose FASTQ/FASTA toolkit.
package fastqio

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/ghaffaari/vgseed"
)

// FakeQual is the quality byte Write emits for every base of a record whose
// Qual is empty, such as a sampled path written out as a pseudo-read, since
// a sampled haplotype has no real base-call quality to report.
const FakeQual byte = 'I'

// Read parses a four-line-per-record FASTQ stream into a ReadSet.
func Read(r io.Reader) (*vgseed.ReadSet, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	var records []vgseed.FastqRecord
	lineNo := 0
	for {
		header, ok, err := nextLine(sc, &lineNo)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if !strings.HasPrefix(header, "@") {
			return nil, fmt.Errorf("fastqio: line %d: expected '@' header, got %q", lineNo, header)
		}
		seq, ok, err := nextLine(sc, &lineNo)
		if err != nil || !ok {
			return nil, fmt.Errorf("fastqio: line %d: truncated record (missing sequence line)", lineNo)
		}
		plus, ok, err := nextLine(sc, &lineNo)
		if err != nil || !ok {
			return nil, fmt.Errorf("fastqio: line %d: truncated record (missing '+' line)", lineNo)
		}
		if !strings.HasPrefix(plus, "+") {
			return nil, fmt.Errorf("fastqio: line %d: expected '+' separator, got %q", lineNo, plus)
		}
		qual, ok, err := nextLine(sc, &lineNo)
		if err != nil || !ok {
			return nil, fmt.Errorf("fastqio: line %d: truncated record (missing quality line)", lineNo)
		}
		if len(qual) != len(seq) {
			return nil, fmt.Errorf("fastqio: line %d: quality length %d does not match sequence length %d", lineNo, len(qual), len(seq))
		}
		records = append(records, vgseed.FastqRecord{
			ID:   strings.TrimPrefix(header, "@"),
			Seq:  []byte(seq),
			Qual: []byte(qual),
		})
	}
	return vgseed.NewReadSet(records), nil
}

func nextLine(sc *bufio.Scanner, lineNo *int) (string, bool, error) {
	if !sc.Scan() {
		return "", false, sc.Err()
	}
	*lineNo++
	return sc.Text(), true, nil
}

// Write emits reads as a four-line-per-record FASTQ stream.
func Write(w io.Writer, reads *vgseed.ReadSet) error {
	bw := bufio.NewWriter(w)
	for i := 0; i < reads.Len(); i++ {
		rec := reads.Record(i)
		qual := rec.Qual
		if len(qual) == 0 {
			qual = make([]byte, len(rec.Seq))
			for j := range qual {
				qual[j] = FakeQual
			}
		}
		if _, err := fmt.Fprintf(bw, "@%s\n%s\n+\n%s\n", rec.ID, rec.Seq, qual); err != nil {
			return err
		}
	}
	return bw.Flush()
}
