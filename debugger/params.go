// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package debugger wires the type algebra, expression arena, proof
// and unify interpreters, snapshot recorder, and pretty-printer into
// a single per-request entry point: Verify1. It mirrors the original
// implementation's `verify1_extern`/`verify1_extern_aux` (mod.rs lines
// 127-161, 300-443, 947-1029): route on the declaration kind, build a
// fresh engine state, run the matching interpreter, and always return
// a response unless the request itself cannot be resolved.
package debugger

// Params is the sole per-request configuration surface (spec.md §6);
// there is no process-level config, since this module is a library
// invoked per request by an external transport.
type Params struct {
	// FileURI names the MMB file the request concerns; this module
	// neither opens it nor copies it into the response.
	FileURI string
	// Decl names the declaration to verify, as the caller-facing
	// identifier (resolved against File.Index()).
	Decl string
	// Level selects the pretty-printer's elaboration level: 0 (raw
	// indices), 1 (binder names, bare prefix), or 2 (MM1 notation).
	Level int
	// BracketLevel, meaningful only at Level 2, selects whether
	// precedence-driven parentheses are added (1) or suppressed (0).
	BracketLevel int
	// Target, if non-nil, centers the snapshot window on that proof
	// step; if nil, only the HTML table (if Table) is recorded.
	Target *int
	// UnifyReq selects whether the windowed JSON snapshots come from
	// the unify stream (true) or the proof stream (false).
	UnifyReq bool
	// Table requests HTML row accumulation for both streams,
	// independent of Target.
	Table bool
}
