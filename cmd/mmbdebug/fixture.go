// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"github.com/luxfi/mmbdebug/mmbiface"
	"github.com/luxfi/mmbdebug/typ"
)

// fixtureUnify replays the canned unify stream of `wnew`'s own
// definition: it deconstructs the App the proof stream just built
// (Term) and then matches its sole bound dummy argument (Dummy), the
// same shape the proof stream constructed it in reverse.
type fixtureUnify struct {
	cmds []mmbiface.UnifyCmd
	pos  int
}

func newFixtureUnify() *fixtureUnify {
	return &fixtureUnify{cmds: []mmbiface.UnifyCmd{
		{Op: mmbiface.UTerm, Term: 0},
		{Op: mmbiface.UDummy, Sort: 0},
	}}
}

func (u *fixtureUnify) Next() (mmbiface.UnifyCmd, bool, error) {
	if u.pos >= len(u.cmds) {
		return mmbiface.UnifyCmd{}, false, nil
	}
	c := u.cmds[u.pos]
	u.pos++
	return c, true, nil
}
func (u *fixtureUnify) Clone() mmbiface.UnifyIter { cp := *u; return &cp }

type fixtureTerm struct {
	args  []typ.Type
	ret   typ.Type
	isDef bool
}

func (t fixtureTerm) Args() []typ.Type          { return t.args }
func (t fixtureTerm) Ret() typ.Type             { return t.ret }
func (t fixtureTerm) IsDef() bool               { return t.isDef }
func (t fixtureTerm) Unify() mmbiface.UnifyIter { return newFixtureUnify() }

// fixtureIndex names the single sort and the one declaration this
// fixture carries; it stands in for a real MMB debug index, which a
// production caller would parse from the file's name table.
type fixtureIndex struct{}

func (fixtureIndex) StmtName(stmt mmbiface.Stmt) (string, bool) {
	if stmt.Kind == mmbiface.StmtTermDef && stmt.TermID == 0 {
		return "wnew", true
	}
	return "", false
}
func (fixtureIndex) VarName(mmbiface.Stmt, int) string { return "x" }
func (fixtureIndex) TermName(mmbiface.TermID) string   { return "wnew" }
func (fixtureIndex) ThmName(mmbiface.ThmID) string     { return "" }
func (fixtureIndex) SortName(typ.SortID) string        { return "wff" }

// fixtureFile is a one-declaration MMB file stand-in: a single
// unstrict sort 0 and a single definition `wnew`, a new wff built from
// one dummy bound variable. A real binary parser is out of scope
// (spec.md §1); this exercises Verify1 end to end without one.
type fixtureFile struct{}

func (fixtureFile) NumSorts() int { return 1 }
func (fixtureFile) Sort(id typ.SortID) (typ.SortFlags, bool) {
	if id != 0 {
		return 0, false
	}
	return 0, true
}
func (fixtureFile) NumTerms() uint32 { return 1 }
func (fixtureFile) Term(id mmbiface.TermID) (mmbiface.Term, bool) {
	if id != 0 {
		return nil, false
	}
	return fixtureTerm{args: []typ.Type{typ.Type(typ.BoundMask | 1)}, ret: typ.OfSort(0), isDef: true}, true
}
func (fixtureFile) NumThms() uint32                              { return 0 }
func (fixtureFile) Thm(mmbiface.ThmID) (mmbiface.Thm, bool)       { return nil, false }
func (fixtureFile) Index() mmbiface.Index                        { return fixtureIndex{} }

type fixtureNotation struct{}

func (fixtureNotation) Decl(mmbiface.TermID) ([]mmbiface.NotaTok, bool) { return nil, false }
func (fixtureNotation) Prefix(string) (mmbiface.NotaInfo, bool)        { return mmbiface.NotaInfo{}, false }
func (fixtureNotation) Infix(string) (mmbiface.NotaInfo, bool)         { return mmbiface.NotaInfo{}, false }

// fixtureProof is the canned proof stream for `wnew`: allocate a dummy
// bound variable, then apply the definition's own term to it and save
// the result.
type fixtureProof struct {
	cmds []mmbiface.ProofCmd
	pos  int
}

func newFixtureProof() *fixtureProof {
	return &fixtureProof{cmds: []mmbiface.ProofCmd{
		{Op: mmbiface.PDummy, Sort: 0},
		{Op: mmbiface.PTerm, Term: 0, Save: true},
	}}
}

func (p *fixtureProof) Next() (mmbiface.ProofCmd, bool, error) {
	if p.pos >= len(p.cmds) {
		return mmbiface.ProofCmd{}, false, nil
	}
	cmd := p.cmds[p.pos]
	p.pos++
	return cmd, true, nil
}
func (p *fixtureProof) Clone() mmbiface.ProofIter { cp := *p; return &cp }
func (p *fixtureProof) IsNull() bool              { return len(p.cmds) == 0 }
