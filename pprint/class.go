// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pprint

// Class* name the HTML span classes the original debugger UI styles
// rendered tokens with (spec.md §6's "bit-exact format elements").
// The core never touches CSS; it only hands a transport layer these
// exact strings so it can reproduce the original styling.
const (
	ClassVar   = "var"
	ClassBVar  = "bvar"
	ClassDummy = "dummy"
	ClassTerm  = "term"
	ClassThm   = "thm"
	ClassAx    = "ax"
	ClassDef   = "def"
	ClassSort  = "sort"
	ClassMMB   = "mmb"
)

// RowClass* name the HTML table row classes the snapshot recorder's
// row accumulator tags each row with.
const (
	RowClassProof    = "proof_row"
	RowClassSubunify = "subunify_row"
	RowClassUnify    = "unify_row"
)
