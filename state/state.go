// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package state implements the mutable engine state the proof and
// unify interpreters share: the five stacks/heaps, the bound-variable
// counter, the binder table, and the expression arena that backs all
// of it (spec.md §3, §5). It is kept as its own package, independent
// of both proof and unify, because the proof interpreter calls into
// the unify interpreter (Thm, Unfold) and both need to operate on the
// same state value — putting State in either package would make the
// other import it and close a cycle.
package state

import (
	"github.com/luxfi/mmbdebug/binder"
	"github.com/luxfi/mmbdebug/expr"
	"github.com/luxfi/mmbdebug/mmbiface"
	"github.com/luxfi/mmbdebug/typ"
	"github.com/luxfi/mmbdebug/verr"
)

// Mode selects which top-level declaration kind a proof stream is
// running for; it gates whether Hyp is legal and whether Term's
// return-type masking rule applies.
type Mode int

const (
	ModeDef Mode = iota
	ModeThm
)

// FinishKind tags why run_unify was invoked: as a sub-unification
// nested inside a proof command, or as a definition's/theorem's
// terminal (proper) unification.
type FinishKind int

const (
	FinishNone FinishKind = iota
	FinishThm
	FinishUnfold
)

// Finish names the caller of a unify run, for the recorder's
// sub-unification vs. proper-unification classification (spec.md
// §4.5, §4.6). A nil *Finish denotes a proper (terminal) unification;
// Kind != FinishNone denotes a sub-unification nested inside Thm or
// Unfold.
type Finish struct {
	Kind FinishKind
	Thm  mmbiface.ThmID
	Term mmbiface.TermID
	// Total is the sub-unification's pre-counted stream length, for the
	// recorder's sub_total field.
	Total int
}

// ProofRecorder is invoked once before each proof command executes,
// and once more with cmd == nil after the stream is exhausted (the
// terminal "Done" snapshot).
type ProofRecorder interface {
	Step(st *State, cmd *mmbiface.ProofCmd) error
}

// UnifyRecorder is invoked once before each unify command executes.
// finish classifies the run as described on Finish. Named StepUnify
// (not Step) so one concrete recorder type can implement both this
// interface and ProofRecorder without a method-signature clash.
type UnifyRecorder interface {
	StepUnify(st *State, cmd *mmbiface.UnifyCmd, finish *Finish) error
}

// State is the full mutable state of one verification request: an
// arena, a binder table, and the five stacks/heaps spec.md §3
// describes. It owns nothing beyond the lifetime of one request; New
// resets it to empty.
type State struct {
	Arena     *expr.Arena
	Binders   *binder.Table
	MainStack []*expr.Node
	MainHeap  []*expr.Node
	UStack    []*expr.Node
	UHeap     []*expr.Node
	HStack    []*expr.Node

	// NextBV is the one-hot bitmask of bound ordinals already assigned;
	// the next Dummy command's bit is the lowest zero bit not yet set
	// here, and an error is raised once that would exceed ordinal 55
	// (typ.MaxBoundVars).
	NextBV uint64

	Mode Mode

	ProofRec ProofRecorder
	UnifyRec UnifyRecorder
}

// New builds a fresh state over an already-constructed binder table
// (the table is seeded by the caller from the declaration's signature
// before the first command runs).
func New(mode Mode, binders *binder.Table, proofRec ProofRecorder, unifyRec UnifyRecorder) *State {
	return &State{
		Arena:    expr.NewArena(),
		Binders:  binders,
		Mode:     mode,
		ProofRec: proofRec,
		UnifyRec: unifyRec,
	}
}

// PushMain pushes e onto the main stack.
func (s *State) PushMain(e *expr.Node) { s.MainStack = append(s.MainStack, e) }

// PopMain pops the top of the main stack.
func (s *State) PopMain() (*expr.Node, error) {
	if len(s.MainStack) == 0 {
		return nil, verr.MakeSure()
	}
	n := len(s.MainStack) - 1
	e := s.MainStack[n]
	s.MainStack = s.MainStack[:n]
	return e, nil
}

// PeekMain returns the top of the main stack without popping it.
func (s *State) PeekMain() (*expr.Node, error) {
	if len(s.MainStack) == 0 {
		return nil, verr.MakeSure()
	}
	return s.MainStack[len(s.MainStack)-1], nil
}

// HeapGet returns the idx-th entry of the main heap.
func (s *State) HeapGet(idx uint32) (*expr.Node, error) {
	if int(idx) >= len(s.MainHeap) {
		return nil, verr.MakeSure()
	}
	return s.MainHeap[idx], nil
}

// PushHeap appends e to the main heap.
func (s *State) PushHeap(e *expr.Node) { s.MainHeap = append(s.MainHeap, e) }

// PushUStack pushes e onto the unify stack.
func (s *State) PushUStack(e *expr.Node) { s.UStack = append(s.UStack, e) }

// PopUStack pops the top of the unify stack.
func (s *State) PopUStack() (*expr.Node, error) {
	if len(s.UStack) == 0 {
		return nil, verr.MakeSure()
	}
	n := len(s.UStack) - 1
	e := s.UStack[n]
	s.UStack = s.UStack[:n]
	return e, nil
}

// UHeapGet returns the idx-th entry of the unify heap.
func (s *State) UHeapGet(idx uint32) (*expr.Node, error) {
	if int(idx) >= len(s.UHeap) {
		return nil, verr.MakeSure()
	}
	return s.UHeap[idx], nil
}

// PushUHeap appends e to the unify heap.
func (s *State) PushUHeap(e *expr.Node) { s.UHeap = append(s.UHeap, e) }

// ResetUHeap clears the unify heap; unify.Run calls it when it returns
// successfully (callers seed the heap before the run starts).
func (s *State) ResetUHeap() { s.UHeap = s.UHeap[:0] }

// PushHyp pushes e onto the hypothesis stack.
func (s *State) PushHyp(e *expr.Node) { s.HStack = append(s.HStack, e) }

// PopHyp pops the top of the hypothesis stack.
func (s *State) PopHyp() (*expr.Node, error) {
	if len(s.HStack) == 0 {
		return nil, verr.MakeSure()
	}
	n := len(s.HStack) - 1
	e := s.HStack[n]
	s.HStack = s.HStack[:n]
	return e, nil
}

// NextBoundBit allocates and returns the next bound ordinal's one-hot
// bit, failing once all 56 ordinals are exhausted (spec.md invariant
// 2; typ.MaxBoundVars).
func (s *State) NextBoundBit() (uint64, error) {
	n := 0
	for s.NextBV&(1<<uint(n)) != 0 {
		n++
		if n >= typ.MaxBoundVars {
			return 0, verr.MakeSure()
		}
	}
	bit := uint64(1) << uint(n)
	s.NextBV |= bit
	return bit, nil
}
