// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package proof

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

// emptyUnify is a zero-length unify stream, standing in for terms
// whose unify check always trivially succeeds in these tests.
type emptyUnify struct{}

func (emptyUnify) Next() (mmbiface.UnifyCmd, bool, error) { return mmbiface.UnifyCmd{}, false, nil }
func (emptyUnify) Clone() mmbiface.UnifyIter              { return emptyUnify{} }

type fixtureTerm struct {
	args []typ.Type
	ret  typ.Type
	isDef bool
}

func (t fixtureTerm) Args() []typ.Type      { return t.args }
func (t fixtureTerm) Ret() typ.Type         { return t.ret }
func (t fixtureTerm) IsDef() bool           { return t.isDef }
func (t fixtureTerm) Unify() mmbiface.UnifyIter { return emptyUnify{} }

type fixtureThm struct {
	args []typ.Type
}

func (t fixtureThm) Args() []typ.Type          { return t.args }
func (t fixtureThm) Unify() mmbiface.UnifyIter { return emptyUnify{} }

type fixtureFile struct {
	sorts map[typ.SortID]typ.SortFlags
	terms map[mmbiface.TermID]fixtureTerm
	thms  map[mmbiface.ThmID]fixtureThm
}

func (f *fixtureFile) NumSorts() int { return len(f.sorts) }
func (f *fixtureFile) Sort(id typ.SortID) (typ.SortFlags, bool) {
	flags, ok := f.sorts[id]
	return flags, ok
}
func (f *fixtureFile) NumTerms() uint32 { return uint32(len(f.terms)) }
func (f *fixtureFile) Term(id mmbiface.TermID) (mmbiface.Term, bool) {
	t, ok := f.terms[id]
	return t, ok
}
func (f *fixtureFile) NumThms() uint32 { return uint32(len(f.thms)) }
func (f *fixtureFile) Thm(id mmbiface.ThmID) (mmbiface.Thm, bool) {
	t, ok := f.thms[id]
	return t, ok
}
func (f *fixtureFile) Index() mmbiface.Index { return nil }

// cmdStream replays a canned slice of ProofCmd values.
type cmdStream struct {
	cmds []mmbiface.ProofCmd
	pos  int
}

func newCmdStream(cmds ...mmbiface.ProofCmd) *cmdStream { return &cmdStream{cmds: cmds} }

func (c *cmdStream) Next() (mmbiface.ProofCmd, bool, error) {
	if c.pos >= len(c.cmds) {
		return mmbiface.ProofCmd{}, false, nil
	}
	cmd := c.cmds[c.pos]
	c.pos++
	return cmd, true, nil
}
func (c *cmdStream) Clone() mmbiface.ProofIter { cp := *c; return &cp }
func (c *cmdStream) IsNull() bool              { return len(c.cmds) == 0 }

func newState(mode state.Mode) *state.State {
	tb, _ := binder.NewTable(nil, nil)
	return state.New(mode, tb, nil, nil)
}

func TestDummyThenTerm(t *testing.T) {
	st := newState(state.ModeDef)
	file := &fixtureFile{
		sorts: map[typ.SortID]typ.SortFlags{0: 0},
		terms: map[mmbiface.TermID]fixtureTerm{
			5: {args: []typ.Type{typ.Type(typ.BoundMask | 1)}, ret: typ.OfSort(0), isDef: false},
		},
	}
	stream := newCmdStream(
		mmbiface.ProofCmd{Op: mmbiface.PDummy, Sort: 0},
		mmbiface.ProofCmd{Op: mmbiface.PTerm, Term: 5, Save: true},
	)
	err := Run(st, file, nil, mmbiface.Stmt{}, stream)
	require.NoError(t, err)
	assert.Len(t, st.MainStack, 1)
	assert.Len(t, st.MainHeap, 2) // the dummy var, then the saved App
}

func TestDummyRejectsStrictSort(t *testing.T) {
	st := newState(state.ModeDef)
	file := &fixtureFile{sorts: map[typ.SortID]typ.SortFlags{0: typ.SortStrict}}
	stream := newCmdStream(mmbiface.ProofCmd{Op: mmbiface.PDummy, Sort: 0})
	err := Run(st, file, nil, mmbiface.Stmt{}, stream)
	require.Error(t, err)
}

func TestReflRequiresPointerIdentity(t *testing.T) {
	st := newState(state.ModeThm)
	a := st.Arena.Var(0, typ.OfSort(0))
	st.PushMain(st.Arena.CoConv(a, a))
	require.NoError(t, reflCmd(st))
}

func TestReflRejectsDifferentNodes(t *testing.T) {
	st := newState(state.ModeThm)
	a := st.Arena.Var(0, typ.OfSort(0))
	b := st.Arena.Var(1, typ.OfSort(0))
	st.PushMain(st.Arena.CoConv(a, b))
	require.Error(t, reflCmd(st))
}

func TestSymIdempotentAfterTwoApplications(t *testing.T) {
	st := newState(state.ModeThm)
	a := st.Arena.Var(0, typ.OfSort(0))
	b := st.Arena.Var(1, typ.OfSort(0))
	st.PushMain(st.Arena.CoConv(a, b))

	require.NoError(t, symCmd(st))
	require.NoError(t, symCmd(st))

	top, err := st.PeekMain()
	require.NoError(t, err)
	assert.Same(t, a, top.A)
	assert.Same(t, b, top.B)
}

func TestCongRoundTripsWithRefl(t *testing.T) {
	st := newState(state.ModeThm)
	c0 := st.Arena.Var(0, typ.OfSort(0))
	c1 := st.Arena.Var(1, typ.OfSort(0))
	lhs := st.Arena.App(9, []*expr.Node{c0, c1}, typ.OfSort(0))
	rhs := st.Arena.App(9, []*expr.Node{c0, c1}, typ.OfSort(0))

	st.PushMain(st.Arena.CoConv(lhs, rhs))
	require.NoError(t, congCmd(st))

	// Cong pushes one CoConv per argument pair, in reverse so the
	// first one popped is the leftmost pair.
	require.NoError(t, reflCmd(st))
	require.NoError(t, reflCmd(st))
	assert.Empty(t, st.MainStack)
}

func TestCongRejectsMismatchedTermID(t *testing.T) {
	st := newState(state.ModeThm)
	c0 := st.Arena.Var(0, typ.OfSort(0))
	lhs := st.Arena.App(9, []*expr.Node{c0}, typ.OfSort(0))
	rhs := st.Arena.App(10, []*expr.Node{c0}, typ.OfSort(0))

	st.PushMain(st.Arena.CoConv(lhs, rhs))
	require.Error(t, congCmd(st))
}
