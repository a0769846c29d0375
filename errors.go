// Copyright (c) 2025 Ali Ghaffaari
// SPDX-License-Identifier: MIT

package vgseed

import "errors"

// Sentinel error kinds. Callers should use errors.Is against these rather
// than string-matching, per the error handling design: every fallible
// operation returns one of these wrapped with context via fmt.Errorf.
var (
	// ErrUninitialized is returned when rank/select or position queries are
	// attempted on a Path that has not been initialised (or whose index was
	// invalidated by a subsequent mutation).
	ErrUninitialized = errors.New("vgseed: path not initialised")

	// ErrOutOfRange is returned when a path-local position or a node offset
	// falls outside the valid range for the operation.
	ErrOutOfRange = errors.New("vgseed: position out of range")

	// ErrGraphMismatch is returned when an operation combines two paths, or
	// a path and a query, that were built against different graphs.
	ErrGraphMismatch = errors.New("vgseed: operands reference different graphs")

	// ErrSelfExtend is returned by Path.Extend when asked to append a path
	// to itself.
	ErrSelfExtend = errors.New("vgseed: cannot extend a path with itself")

	// ErrIteratorAtEnd reports an iterator advanced past its end. No
	// iterator in this package returns it: each one reports exhaustion
	// through AtEnd instead.
	ErrIteratorAtEnd = errors.New("vgseed: iterator already at end")

	// ErrNotIndexed reports a query against a PathIndex that was never
	// built. No function in this package returns it: a PathIndex is only
	// obtained from PathIndexBuilder.Build or LoadPathIndex.
	ErrNotIndexed = errors.New("vgseed: path index has not been built")

	// ErrCorruptFile is returned when a persisted starting-loci or
	// path-index file fails to parse; no partial state is exposed to the
	// caller in that case.
	ErrCorruptFile = errors.New("vgseed: corrupt or truncated file")

	// ErrBadDirection is returned at index-construction time when the
	// direction tag (Forward/Reversed) is paired with an incompatible
	// index kind (ESA requires Forward, FM-index requires Reversed).
	ErrBadDirection = errors.New("vgseed: direction incompatible with index kind")

	// ErrNotBFS is returned by ExtendToK when handed a BFS graph iterator,
	// which has no well-defined single successor to append.
	ErrNotBFS = errors.New("vgseed: ExtendToK does not support BFS iterators")
)
