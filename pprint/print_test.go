// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pprint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/mmbdebug/binder"
	"github.com/luxfi/mmbdebug/expr"
	"github.com/luxfi/mmbdebug/mmbiface"
	"github.com/luxfi/mmbdebug/typ"
)

type fakeNotation struct {
	decl   map[mmbiface.TermID][]mmbiface.NotaTok
	infix  map[string]mmbiface.NotaInfo
	prefix map[string]mmbiface.NotaInfo
}

func (n *fakeNotation) Decl(id mmbiface.TermID) ([]mmbiface.NotaTok, bool) {
	ts, ok := n.decl[id]
	return ts, ok
}
func (n *fakeNotation) Prefix(tok string) (mmbiface.NotaInfo, bool) { i, ok := n.prefix[tok]; return i, ok }
func (n *fakeNotation) Infix(tok string) (mmbiface.NotaInfo, bool)  { i, ok := n.infix[tok]; return i, ok }

type fakeIndex struct{}

func (fakeIndex) StmtName(mmbiface.Stmt) (string, bool)     { return "", false }
func (fakeIndex) VarName(mmbiface.Stmt, int) string         { return "" }
func (fakeIndex) TermName(id mmbiface.TermID) string        { return map[mmbiface.TermID]string{1: "wi", 2: "wa"}[id] }
func (fakeIndex) ThmName(mmbiface.ThmID) string             { return "" }
func (fakeIndex) SortName(typ.SortID) string                { return "" }

func TestLevel0NumericRendering(t *testing.T) {
	a := expr.NewArena()
	v := a.Var(0, typ.OfSort(0))
	app := a.App(3, []*expr.Node{v}, typ.OfSort(0))

	p := &Printer{Level: 0}
	assert.Equal(t, "t3(v0)", p.Print(app))
}

func TestLevel1UsesBinderNamesAndTermNames(t *testing.T) {
	tb, err := binder.NewTable([]string{"ph"}, []typ.Type{typ.OfSort(0)})
	require.NoError(t, err)

	a := expr.NewArena()
	v := a.Var(0, typ.OfSort(0))
	app := a.App(1, []*expr.Node{v}, typ.OfSort(0))

	p := &Printer{Level: 1, Idx: fakeIndex{}, Binders: tb}
	assert.Equal(t, "(wi ph)", p.Print(app))
}

func TestLevel2InfixNotation(t *testing.T) {
	nota := &fakeNotation{
		decl: map[mmbiface.TermID][]mmbiface.NotaTok{2: {{Tok: "->", Infix: true}}},
		infix: map[string]mmbiface.NotaInfo{"->": {}},
	}
	tb, err := binder.NewTable([]string{"ph", "ps"}, []typ.Type{typ.OfSort(0), typ.OfSort(0)})
	require.NoError(t, err)

	a := expr.NewArena()
	ph := a.Var(0, typ.OfSort(0))
	ps := a.Var(1, typ.OfSort(0))
	app := a.App(2, []*expr.Node{ph, ps}, typ.OfSort(0))

	p := &Printer{Level: 2, Idx: fakeIndex{}, Notation: nota, Binders: tb, BracketLevel: 1}
	assert.Equal(t, "ph -> ps", p.Print(app))
}

func TestLevel2RawApplicationAlwaysWraps(t *testing.T) {
	tb, err := binder.NewTable([]string{"ph"}, []typ.Type{typ.OfSort(0)})
	require.NoError(t, err)

	a := expr.NewArena()
	ph := a.Var(0, typ.OfSort(0))
	app := a.App(9, []*expr.Node{ph}, typ.OfSort(0))

	p := &Printer{Level: 2, Idx: fakeIndex{}, Binders: tb, BracketLevel: 1}
	assert.Equal(t, "(t9 ph)", p.Print(app))
}

func TestBracketLevelZeroSuppressesAddedParens(t *testing.T) {
	nota := &fakeNotation{
		decl:  map[mmbiface.TermID][]mmbiface.NotaTok{2: {{Tok: "->", Infix: true}}},
		infix: map[string]mmbiface.NotaInfo{"->": {}},
	}
	tb, err := binder.NewTable([]string{"ph", "ps", "ch"}, []typ.Type{typ.OfSort(0), typ.OfSort(0), typ.OfSort(0)})
	require.NoError(t, err)

	a := expr.NewArena()
	ph := a.Var(0, typ.OfSort(0))
	ps := a.Var(1, typ.OfSort(0))
	ch := a.Var(2, typ.OfSort(0))
	inner := a.App(2, []*expr.Node{ph, ps}, typ.OfSort(0))
	outer := a.App(2, []*expr.Node{inner, ch}, typ.OfSort(0))

	p := &Printer{Level: 2, Idx: fakeIndex{}, Notation: nota, Binders: tb, BracketLevel: 0}
	assert.Equal(t, "ph -> ps -> ch", p.Print(outer))
}
