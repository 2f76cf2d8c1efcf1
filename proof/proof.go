// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package proof executes a declaration's proof stream: the stack
// machine that builds up a typed-expression DAG and, for theorems,
// a chain of equality conversions, checking each step against the
// declared signatures of the terms and theorems it references
// (spec.md §4.4). Every per-command function mirrors the original
// implementation's `proof.rs` one-to-one (`proof_ref` -> `refCmd`,
// `proof_term` -> `termCmd`, and so on).
package proof

import (
	"github.com/luxfi/mmbdebug/expr"
	"github.com/luxfi/mmbdebug/mmbiface"
	"github.com/luxfi/mmbdebug/state"
	"github.com/luxfi/mmbdebug/typ"
	"github.com/luxfi/mmbdebug/unify"
	"github.com/luxfi/mmbdebug/verr"
)

// Run executes stream to exhaustion against st, which must already be
// seeded with a binder table matching stmt's declared signature and
// have its Mode set to the declaration kind stmt names. file and idx
// resolve term/theorem signatures and binder names respectively.
func Run(st *state.State, file mmbiface.File, idx mmbiface.Index, stmt mmbiface.Stmt, stream mmbiface.ProofIter) error {
	total := mmbiface.StreamLen(stream)
	executed := 0

	for {
		cmd, ok, err := stream.Next()
		if err != nil {
			return verr.Local(err)
		}
		if !ok {
			break
		}
		if st.ProofRec != nil {
			if err := st.ProofRec.Step(st, &cmd); err != nil {
				return verr.Local(err)
			}
		}
		if err := dispatch(st, file, idx, stmt, cmd); err != nil {
			return err
		}
		executed++
	}

	if st.ProofRec != nil {
		if err := st.ProofRec.Step(st, nil); err != nil {
			return verr.Local(err)
		}
	}
	if executed != total {
		return verr.MakeSure()
	}
	return nil
}

func dispatch(st *state.State, file mmbiface.File, idx mmbiface.Index, stmt mmbiface.Stmt, cmd mmbiface.ProofCmd) error {
	switch cmd.Op {
	case mmbiface.PRef:
		return refCmd(st, cmd)
	case mmbiface.PDummy:
		return dummyCmd(st, file, idx, stmt, cmd)
	case mmbiface.PTerm:
		return termCmd(st, file, cmd)
	case mmbiface.PThm:
		return thmCmd(st, file, idx, cmd)
	case mmbiface.PHyp:
		return hypCmd(st, file)
	case mmbiface.PConv:
		return convCmd(st)
	case mmbiface.PRefl:
		return reflCmd(st)
	case mmbiface.PSym:
		return symCmd(st)
	case mmbiface.PCong:
		return congCmd(st)
	case mmbiface.PUnfold:
		return unfoldCmd(st, file, idx)
	case mmbiface.PConvCut:
		return convCutCmd(st)
	case mmbiface.PConvRef:
		return convRefCmd(st, cmd)
	case mmbiface.PConvSave:
		return convSaveCmd(st)
	case mmbiface.PSave:
		return saveCmd(st)
	case mmbiface.PSorry:
		return sorryCmd(st)
	default:
		return verr.Unreachable()
	}
}

func refCmd(st *state.State, cmd mmbiface.ProofCmd) error {
	e, err := st.HeapGet(cmd.Ref)
	if err != nil {
		return err
	}
	st.PushMain(e)
	return nil
}

func dummyCmd(st *state.State, file mmbiface.File, idx mmbiface.Index, stmt mmbiface.Stmt, cmd mmbiface.ProofCmd) error {
	flags, ok := file.Sort(cmd.Sort)
	if !ok {
		return verr.NoneErr()
	}
	if flags&typ.SortStrict != 0 {
		return verr.MakeSure()
	}
	bit, err := st.NextBoundBit()
	if err != nil {
		return err
	}
	ty := typ.Type(typ.BoundMask | uint64(typ.OfSort(cmd.Sort)) | bit)
	v := st.Arena.Var(len(st.MainHeap), ty)
	st.PushMain(v)
	st.PushHeap(v)

	// A definition's own dummies are named later, when its unify stream
	// runs at top level (unify.dummyCmd's finish == nil case); only a
	// theorem/axiom's proof-stream dummy registers its binder here.
	if idx != nil && st.Mode == state.ModeThm {
		ordinal := ty.BoundOrdinal()
		name := idx.VarName(stmt, ordinal)
		tableOrd := st.Binders.PushDummy(name)
		if err := st.Binders.SetDummy(tableOrd, ty); err != nil {
			return verr.Local(err)
		}
	}
	return nil
}

func termCmd(st *state.State, file mmbiface.File, cmd mmbiface.ProofCmd) error {
	term, ok := file.Term(cmd.Term)
	if !ok {
		return verr.NoneErr()
	}
	sig := term.Args()
	n := len(sig)
	args := make([]*expr.Node, n)
	for i := n - 1; i >= 0; i-- {
		e, err := st.PopMain()
		if err != nil {
			return err
		}
		args[i] = e
	}

	ret := typ.OfSort(term.Ret().Sort())
	for i, sigTy := range sig {
		argTy, err := args[i].GetType()
		if err != nil {
			return verr.Local(err)
		}
		if !typ.SortsCompatible(argTy, sigTy) {
			return verr.MakeSure()
		}
		if sigTy.Bound() {
			continue
		}
		low := lowBitsOf(argTy)
		if st.Mode == state.ModeDef {
			for _, other := range sig {
				if !other.Bound() {
					continue
				}
				ord := other.BoundOrdinal()
				if !sigTy.DependsOn(uint64(ord)) {
					low &^= uint64(1) << uint(ord)
				}
			}
		}
		ret = ret.Union(typ.FromRaw(low))
	}

	if term.IsDef() {
		retDecl := term.Ret()
		for i, sigTy := range sig {
			if !sigTy.Bound() {
				continue
			}
			ord := sigTy.BoundOrdinal()
			if retDecl.DependsOn(uint64(ord)) {
				argTy, err := args[i].GetType()
				if err != nil {
					return verr.Local(err)
				}
				ret = ret.Union(typ.FromRaw(lowBitsOf(argTy)))
			}
		}
	}

	app := st.Arena.App(cmd.Term, args, ret)
	st.PushMain(app)
	if cmd.Save {
		st.PushHeap(app)
	}
	return nil
}

func thmCmd(st *state.State, file mmbiface.File, idx mmbiface.Index, cmd mmbiface.ProofCmd) error {
	a, err := st.PopMain()
	if err != nil {
		return err
	}
	thm, ok := file.Thm(cmd.Thm)
	if !ok {
		return verr.NoneErr()
	}
	sig := thm.Args()
	n := len(sig)
	if len(st.MainStack) < n {
		return verr.MakeSure()
	}
	top := st.MainStack[len(st.MainStack)-n:]

	for i, sigTy := range sig {
		e := top[i]
		eTy, err := e.GetType()
		if err != nil {
			return verr.Local(err)
		}
		if sigTy.Bound() {
			for _, prior := range st.UHeap {
				priorTy, err := prior.GetType()
				if err != nil {
					continue
				}
				if !eTy.Disjoint(priorTy) {
					return verr.MakeSure()
				}
			}
		} else {
			for j, otherSig := range sig {
				if !otherSig.Bound() || !sigTy.DependsOn(uint64(otherSig.BoundOrdinal())) {
					continue
				}
				boundTy, err := top[j].GetType()
				if err != nil {
					return verr.Local(err)
				}
				if boundTy.Disjoint(eTy) {
					return verr.MakeSure()
				}
			}
		}
		st.PushUHeap(e)
	}
	st.MainStack = st.MainStack[:len(st.MainStack)-n]

	unifyStream := thm.Unify()
	finish := &state.Finish{Kind: state.FinishThm, Thm: cmd.Thm, Total: mmbiface.UnifyStreamLen(unifyStream)}
	if err := unify.Run(st, unify.UThm, idx, mmbiface.Stmt{Kind: mmbiface.StmtThm, ThmID: cmd.Thm}, unifyStream, a, finish); err != nil {
		return err
	}

	p := st.Arena.Proof(a)
	st.PushMain(p)
	if cmd.Save {
		st.PushHeap(p)
	}
	return nil
}

func hypCmd(st *state.State, file mmbiface.File) error {
	if st.Mode != state.ModeThm {
		return verr.MakeSure()
	}
	e, err := st.PopMain()
	if err != nil {
		return err
	}
	ty, err := e.GetType()
	if err != nil {
		return verr.Local(err)
	}
	flags, ok := file.Sort(ty.Sort())
	if !ok || flags&typ.SortProvable == 0 {
		return verr.MakeSure()
	}
	st.PushHyp(e)
	st.PushHeap(st.Arena.Proof(e))
	return nil
}

func convCmd(st *state.State) error {
	p, err := st.PopMain()
	if err != nil {
		return err
	}
	if p.Kind != expr.KindProof {
		return verr.MakeSure()
	}
	lhs, err := st.PopMain()
	if err != nil {
		return err
	}
	conc := p.Inner
	st.PushMain(st.Arena.Proof(lhs))
	st.PushMain(st.Arena.CoConv(lhs, conc))
	return nil
}

func reflCmd(st *state.State) error {
	c, err := st.PopMain()
	if err != nil {
		return err
	}
	if !c.IsCoConv() {
		return verr.MakeSure()
	}
	if c.A != c.B {
		return verr.MakeSure()
	}
	return nil
}

func symCmd(st *state.State) error {
	c, err := st.PopMain()
	if err != nil {
		return err
	}
	if !c.IsCoConv() {
		return verr.MakeSure()
	}
	st.PushMain(st.Arena.CoConv(c.B, c.A))
	return nil
}

func congCmd(st *state.State) error {
	c, err := st.PopMain()
	if err != nil {
		return err
	}
	if !c.IsCoConv() {
		return verr.MakeSure()
	}
	a, b := c.A, c.B
	if a.Kind != expr.KindApp || b.Kind != expr.KindApp || a.Term != b.Term || len(a.Args) != len(b.Args) {
		return verr.MakeSure()
	}
	for i := len(a.Args) - 1; i >= 0; i-- {
		st.PushMain(st.Arena.CoConv(a.Args[i], b.Args[i]))
	}
	return nil
}

func unfoldCmd(st *state.State, file mmbiface.File, idx mmbiface.Index) error {
	eprime, err := st.PopMain()
	if err != nil {
		return err
	}
	app, err := st.PopMain()
	if err != nil {
		return err
	}
	if app.Kind != expr.KindApp {
		return verr.MakeSure()
	}
	term, ok := file.Term(app.Term)
	if !ok {
		return verr.NoneErr()
	}
	if len(st.UHeap) != 0 {
		return verr.MakeSure()
	}
	for _, a := range app.Args {
		st.PushUHeap(a)
	}

	unifyStream := term.Unify()
	finish := &state.Finish{Kind: state.FinishUnfold, Term: app.Term, Total: mmbiface.UnifyStreamLen(unifyStream)}
	if err := unify.Run(st, unify.UDef, idx, mmbiface.Stmt{Kind: mmbiface.StmtTermDef, TermID: app.Term}, unifyStream, eprime, finish); err != nil {
		return err
	}

	c, err := st.PopMain()
	if err != nil {
		return err
	}
	if !c.IsCoConv() {
		return verr.MakeSure()
	}
	if !sameApp(app, c.A) {
		return verr.ConvErr()
	}
	st.PushMain(st.Arena.CoConv(eprime, c.B))
	return nil
}

func convCutCmd(st *state.State) error {
	c, err := st.PopMain()
	if err != nil {
		return err
	}
	if !c.IsCoConv() {
		return verr.MakeSure()
	}
	st.PushMain(st.Arena.Conv(c.A, c.B))
	st.PushMain(c)
	return nil
}

func convRefCmd(st *state.State, cmd mmbiface.ProofCmd) error {
	c, err := st.PopMain()
	if err != nil {
		return err
	}
	if !c.IsCoConv() {
		return verr.MakeSure()
	}
	h, err := st.HeapGet(cmd.Ref)
	if err != nil {
		return err
	}
	if !h.IsConv() || h.A != c.A || h.B != c.B {
		return verr.MakeSure()
	}
	return nil
}

func convSaveCmd(st *state.State) error {
	c, err := st.PopMain()
	if err != nil {
		return err
	}
	if !c.IsConv() {
		return verr.MakeSure()
	}
	st.PushHeap(c)
	return nil
}

func saveCmd(st *state.State) error {
	e, err := st.PeekMain()
	if err != nil {
		return err
	}
	if e.IsCoConv() {
		return verr.MakeSure()
	}
	st.PushHeap(e)
	return nil
}

func sorryCmd(st *state.State) error {
	e, err := st.PopMain()
	if err != nil {
		return err
	}
	switch e.Kind {
	case expr.KindVar, expr.KindApp:
		st.PushMain(st.Arena.Proof(e))
	case expr.KindConv:
		if e.Pending {
			return verr.MakeSure()
		}
		// discard: an established conversion proved by Sorry carries no
		// further obligation.
	default:
		return verr.MakeSure()
	}
	return nil
}

// lowBitsOf returns ty's dependency set if it is non-bound, or its
// one-hot bound digit if it is bound: the value Term's return-type
// union folds in for each non-bound signature argument.
func lowBitsOf(ty typ.Type) uint64 {
	if ty.Bound() {
		digit, _ := ty.BoundDigit()
		return digit
	}
	deps, _ := ty.Deps()
	return deps
}

func sameApp(a, b *expr.Node) bool {
	if a.Kind != expr.KindApp || b.Kind != expr.KindApp {
		return false
	}
	if a.Term != b.Term || len(a.Args) != len(b.Args) {
		return false
	}
	for i := range a.Args {
		if a.Args[i] != b.Args[i] {
			return false
		}
	}
	return true
}
