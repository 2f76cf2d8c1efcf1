// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package debugger

import "github.com/luxfi/mmbdebug/snapshot"

// Meta is the declaration-level header of a response: the facts a UI
// needs before it ever looks at a single step.
type Meta struct {
	Decl     string `json:"decl"`
	Kind     string `json:"kind"`
	ProofLen int    `json:"proof_len"`
	UnifyLen int    `json:"unify_len,omitempty"`
	NumArgs  int    `json:"num_args"`
}

// Response is the full JSON envelope a transport layer returns for
// one Verify1 call (spec.md §6). Error is the *in-band* verification
// failure, if any; it is always paired with whatever snapshots were
// recorded before the failing command. A malformed request (unknown
// declaration, wrong proof-nullness) is instead returned as Verify1's
// Go error and never reaches this struct.
type Response struct {
	Meta Meta `json:"meta"`
	// States holds whichever stream params.UnifyReq selected: proof
	// snapshots (false) or unify/sub-unification snapshots (true),
	// windowed to [Target-50, Target+50).
	States []snapshot.Snap `json:"states,omitempty"`
	Table  *string         `json:"table,omitempty"`
	Error  *string         `json:"error,omitempty"`
}
