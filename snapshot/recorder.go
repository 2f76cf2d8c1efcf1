// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package snapshot implements the verifier's recorder: it watches
// every proof and unify command as it executes and, for the ones that
// fall inside a requested step window, serializes the engine's full
// visible state into a JSON-friendly form the interactive UI consumes
// (spec.md §4.6). It also accumulates an HTML table of every step
// when requested, independent of the window.
package snapshot

import (
	"strings"

	"github.com/luxfi/mmbdebug/pprint"
)

// WindowRadius is the fixed half-width of the snapshot window around
// a requested target step (spec.md §6's bit-exact-format list).
const WindowRadius = 50

// Snap is one recorded instant: the serialized stacks/heaps, the
// command that is about to run ("Done" for the terminal entry of a
// proof or unify run), and, for a sub-unification, the nested counters.
type Snap struct {
	Step   int      `json:"step"`
	Mode   string   `json:"mode"`
	Stack  []string `json:"stack,omitempty"`
	Heap   []string `json:"heap,omitempty"`
	UStack []string `json:"ustack,omitempty"`
	UHeap  []string `json:"uheap,omitempty"`
	HStack []string `json:"hstack,omitempty"`
	Cmd    string   `json:"cmd"`

	SubStep  *int    `json:"sub_step,omitempty"`
	SubTotal *int    `json:"sub_total,omitempty"`
	Finish   *string `json:"finish,omitempty"`
}

// Recorder implements state.ProofRecorder and state.UnifyRecorder. One
// Recorder instance is owned by a single verification request.
type Recorder struct {
	Printer *pprint.Printer
	Table   bool
	// Target, if non-nil, centers the snapshot window; if nil no JSON
	// snapshot is ever appended for either stream (only table rows, if
	// requested).
	Target *int
	// UnifyReq selects which stream's JSON array this recorder fills:
	// true collects unify-stream (and sub-unification) snapshots,
	// false collects proof-stream snapshots.
	UnifyReq bool

	ProofStep int
	UnifyStep int
	// SubStep counts commands within the current sub-unification run
	// (a single Thm/Unfold's nested unify.Run call); it resets to 0
	// once that run's terminal Done fires, so the next sub-unification
	// starts renumbering from 0 instead of continuing the prior run's
	// count.
	SubStep int

	ProofJSON []Snap
	UnifyJSON []Snap

	ProofRows strings.Builder
	UnifyRows strings.Builder
}
