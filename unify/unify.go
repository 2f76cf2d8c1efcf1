// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package unify executes the unify stream: the small stack machine
// that checks a term or theorem's declared signature against the
// concrete arguments a proof command supplied, and (for definitions)
// checks a proof's unfolded form against its declared body (spec.md
// §4.5). Every exported entry point is named and shaped after
// `run_unify` and its per-command helpers in the original
// implementation's `unify.rs`.
package unify

import (
	"github.com/luxfi/mmbdebug/expr"
	"github.com/luxfi/mmbdebug/mmbiface"
	"github.com/luxfi/mmbdebug/state"
	"github.com/luxfi/mmbdebug/verr"
)

// Mode selects which of the three legal calling contexts this run
// occurs in; Dummy is legal only under UDef, and Hyp's behavior
// differs between UThm and UThmEnd.
type Mode int

const (
	UThm Mode = iota
	UDef
	UThmEnd
)

// Run pushes target onto the unify stack and executes stream to
// exhaustion. finish classifies this run for the recorder as a
// sub-unification (non-nil, nested inside a proof command) or a
// proper unification (nil, the terminal check of a def/theorem).
// idx/stmt are consulted only to name a dummy binder discovered by a
// top-level (finish == nil) UDef run; they may be zero values when
// mode != UDef.
func Run(
	st *state.State,
	mode Mode,
	idx mmbiface.Index,
	stmt mmbiface.Stmt,
	stream mmbiface.UnifyIter,
	target *expr.Node,
	finish *state.Finish,
) error {
	st.PushUStack(target)
	total := mmbiface.UnifyStreamLen(stream)
	executed := 0

	for {
		cmd, ok, err := stream.Next()
		if err != nil {
			return verr.Local(err)
		}
		if !ok {
			break
		}
		if st.UnifyRec != nil {
			if err := st.UnifyRec.StepUnify(st, &cmd, finish); err != nil {
				return verr.Local(err)
			}
		}
		if err := step(st, mode, idx, stmt, cmd, finish); err != nil {
			return err
		}
		executed++
	}

	if st.UnifyRec != nil {
		if err := st.UnifyRec.StepUnify(st, nil, finish); err != nil {
			return verr.Local(err)
		}
	}
	if executed != total {
		return verr.MakeSure()
	}
	if len(st.UStack) != 0 {
		return verr.MakeSure()
	}
	if mode == UThmEnd && len(st.HStack) != 0 {
		return verr.MakeSure()
	}
	st.ResetUHeap()
	return nil
}

func step(st *state.State, mode Mode, idx mmbiface.Index, stmt mmbiface.Stmt, cmd mmbiface.UnifyCmd, finish *state.Finish) error {
	switch cmd.Op {
	case mmbiface.URef:
		return refCmd(st, cmd)
	case mmbiface.UTerm:
		return termCmd(st, cmd)
	case mmbiface.UDummy:
		return dummyCmd(st, mode, idx, stmt, cmd, finish)
	case mmbiface.UHyp:
		return hypCmd(st, mode)
	default:
		return verr.Unreachable()
	}
}

func refCmd(st *state.State, cmd mmbiface.UnifyCmd) error {
	got, err := st.PopUStack()
	if err != nil {
		return err
	}
	want, err := st.UHeapGet(cmd.Ref)
	if err != nil {
		return err
	}
	if got != want {
		return verr.MakeSure()
	}
	return nil
}

func termCmd(st *state.State, cmd mmbiface.UnifyCmd) error {
	got, err := st.PopUStack()
	if err != nil {
		return err
	}
	if got.Kind != expr.KindApp || got.Term != cmd.Term {
		return verr.MakeSure()
	}
	for i := len(got.Args) - 1; i >= 0; i-- {
		st.PushUStack(got.Args[i])
	}
	if cmd.Save {
		st.PushUHeap(got)
	}
	return nil
}

func dummyCmd(st *state.State, mode Mode, idx mmbiface.Index, stmt mmbiface.Stmt, cmd mmbiface.UnifyCmd, finish *state.Finish) error {
	if mode != UDef {
		return verr.MakeSure()
	}
	v, err := st.PopUStack()
	if err != nil {
		return err
	}
	ty, err := v.GetType()
	if err != nil {
		return verr.Local(err)
	}
	if v.Kind != expr.KindVar || !ty.Bound() || ty.Sort() != cmd.Sort {
		return verr.MakeSure()
	}
	digit, _ := ty.BoundDigit()
	for _, h := range st.UHeap {
		hty, err := h.GetType()
		if err != nil {
			continue
		}
		if hty.Low()&digit != 0 {
			return verr.MakeSure()
		}
	}
	st.PushUHeap(v)

	// Only a run invoked directly for a definition's own unify stream
	// (finish == nil) introduces a new binder entry here; a nested
	// sub-unification inside Unfold re-walks a unify stream whose
	// dummies were already registered when the definition itself was
	// verified.
	if finish == nil && idx != nil {
		ordinal := ty.BoundOrdinal()
		name := idx.VarName(stmt, ordinal)
		tableOrd := st.Binders.PushDummy(name)
		if err := st.Binders.SetDummy(tableOrd, ty); err != nil {
			return verr.Local(err)
		}
	}
	return nil
}

func hypCmd(st *state.State, mode Mode) error {
	switch mode {
	case UThm:
		e, err := st.PopMain()
		if err != nil {
			return err
		}
		if e.Kind != expr.KindProof {
			return verr.MakeSure()
		}
		st.PushUStack(e.Inner)
		return nil
	case UThmEnd:
		if len(st.UStack) != 0 {
			return verr.MakeSure()
		}
		e, err := st.PopHyp()
		if err != nil {
			return err
		}
		st.PushUStack(e)
		return nil
	default:
		return verr.Unreachable()
	}
}
