// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package unify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/mmbdebug/binder"
	"github.com/luxfi/mmbdebug/expr"
	"github.com/luxfi/mmbdebug/mmbiface"
	"github.com/luxfi/mmbdebug/state"
	"github.com/luxfi/mmbdebug/typ"
)

// fixedStream replays a canned slice of UnifyCmd values, used to drive
// Run without a real MMB unify stream.
type fixedStream struct {
	cmds []mmbiface.UnifyCmd
	pos  int
}

func newFixedStream(cmds ...mmbiface.UnifyCmd) *fixedStream {
	return &fixedStream{cmds: cmds}
}

func (f *fixedStream) Next() (mmbiface.UnifyCmd, bool, error) {
	if f.pos >= len(f.cmds) {
		return mmbiface.UnifyCmd{}, false, nil
	}
	c := f.cmds[f.pos]
	f.pos++
	return c, true, nil
}

func (f *fixedStream) Clone() mmbiface.UnifyIter {
	cp := *f
	return &cp
}

func newState() *state.State {
	tb, _ := binder.NewTable(nil, nil)
	return state.New(state.ModeThm, tb, nil, nil)
}

func TestRunRefMatchesHeap(t *testing.T) {
	st := newState()
	v := st.Arena.Var(0, typ.OfSort(0))
	st.PushUHeap(v)

	err := Run(st, UThm, nil, mmbiface.Stmt{}, newFixedStream(
		mmbiface.UnifyCmd{Op: mmbiface.URef, Ref: 0},
	), v, nil)
	require.NoError(t, err)
	assert.Empty(t, st.UStack)
}

func TestRunRefMismatchFails(t *testing.T) {
	st := newState()
	a := st.Arena.Var(0, typ.OfSort(0))
	b := st.Arena.Var(1, typ.OfSort(0))
	st.PushUHeap(b)

	err := Run(st, UThm, nil, mmbiface.Stmt{}, newFixedStream(
		mmbiface.UnifyCmd{Op: mmbiface.URef, Ref: 0},
	), a, nil)
	require.Error(t, err)
}

func TestRunTermPushesChildrenReversed(t *testing.T) {
	st := newState()
	c0 := st.Arena.Var(0, typ.OfSort(0))
	c1 := st.Arena.Var(1, typ.OfSort(0))
	app := st.Arena.App(7, []*expr.Node{c0, c1}, typ.OfSort(0))

	err := Run(st, UThm, nil, mmbiface.Stmt{}, newFixedStream(
		mmbiface.UnifyCmd{Op: mmbiface.UTerm, Term: 7},
		mmbiface.UnifyCmd{Op: mmbiface.URef, Ref: 0}, // placeholder, won't run past Term check below
	), app, nil)
	// After Term runs, ustack holds [c1, c0] (c0 on top). The canned
	// Ref(0) then pops c0 and fails against the empty uheap, leaving
	// only c1 behind.
	require.Error(t, err) // URef against empty uheap legitimately fails
	require.Len(t, st.UStack, 1)
	assert.Same(t, c1, st.UStack[0])
}

func TestRunDummyOnlyLegalInUDef(t *testing.T) {
	st := newState()
	v := st.Arena.Var(0, typ.Type(typ.BoundMask|uint64(typ.OfSort(0))|1))

	err := Run(st, UThm, nil, mmbiface.Stmt{}, newFixedStream(
		mmbiface.UnifyCmd{Op: mmbiface.UDummy, Sort: 0},
	), v, nil)
	require.Error(t, err)
}

func TestRunDummyRejectsOverlappingDeps(t *testing.T) {
	st := newState()
	existing := st.Arena.Var(0, typ.Type(uint64(typ.OfSort(0))|1))
	st.PushUHeap(existing)
	v := st.Arena.Var(1, typ.Type(typ.BoundMask|uint64(typ.OfSort(0))|1))

	err := Run(st, UDef, nil, mmbiface.Stmt{}, newFixedStream(
		mmbiface.UnifyCmd{Op: mmbiface.UDummy, Sort: 0},
	), v, nil)
	require.Error(t, err)
}

func TestRunHypUThmPullsFromMainStack(t *testing.T) {
	st := newState()
	e := st.Arena.Var(0, typ.OfSort(0))
	st.PushMain(st.Arena.Proof(e))
	target := e

	err := Run(st, UThm, nil, mmbiface.Stmt{}, newFixedStream(
		mmbiface.UnifyCmd{Op: mmbiface.UHyp},
		mmbiface.UnifyCmd{Op: mmbiface.URef, Ref: 0},
	), target, nil)
	require.Error(t, err)         // Ref against empty heap is expected to fail; Hyp itself must not panic
	assert.Empty(t, st.MainStack) // Hyp popped the Proof off the main stack
}

func TestRunRequiresEmptyUStackAtEnd(t *testing.T) {
	st := newState()
	v := st.Arena.Var(0, typ.OfSort(0))
	// no commands at all: target stays on ustack, Run must fail
	err := Run(st, UThm, nil, mmbiface.Stmt{}, newFixedStream(), v, nil)
	require.Error(t, err)
}

// recordingStepper counts how many times StepUnify saw cmd == nil, to
// confirm Run always appends a terminal "Done" entry, mirroring the
// proof stream's own convention.
type recordingStepper struct {
	calls int
	dones int
}

func (r *recordingStepper) StepUnify(st *state.State, cmd *mmbiface.UnifyCmd, finish *state.Finish) error {
	r.calls++
	if cmd == nil {
		r.dones++
	}
	return nil
}

func TestRunRecordsTerminalDone(t *testing.T) {
	rec := &recordingStepper{}
	tb, _ := binder.NewTable(nil, nil)
	st := state.New(state.ModeThm, tb, nil, rec)
	v := st.Arena.Var(0, typ.OfSort(0))
	st.PushUHeap(v)

	err := Run(st, UThm, nil, mmbiface.Stmt{}, newFixedStream(
		mmbiface.UnifyCmd{Op: mmbiface.URef, Ref: 0},
	), v, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, rec.calls) // one real command, one terminal Done
	assert.Equal(t, 1, rec.dones)
}
