// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mmbiface

import "github.com/luxfi/mmbdebug/typ"

// Term is a declared term or definition's signature.
type Term interface {
	// Args returns the declared argument types, in order.
	Args() []typ.Type
	// Ret returns the declared return type.
	Ret() typ.Type
	// IsDef reports whether this term has a body (a `def`, not a bare
	// `term`).
	IsDef() bool
	// Unify returns the term's unify stream.
	Unify() UnifyIter
}

// Thm is a declared axiom or theorem's signature.
type Thm interface {
	// Args returns the declared hypothesis/argument types, in order.
	Args() []typ.Type
	// Unify returns the theorem's unify stream.
	Unify() UnifyIter
}

// Index is the MMB debug index: per-declaration user-facing names.
type Index interface {
	// StmtName returns the declaration identifier for stmt.
	StmtName(stmt Stmt) (string, bool)
	// VarName returns the source name of the ordinal-th variable bound
	// by stmt (used to label binders and dummies).
	VarName(stmt Stmt, ordinal int) string
	TermName(id TermID) string
	ThmName(id ThmID) string
	SortName(id typ.SortID) string
}

// File is the parsed MMB file: indexed lookup of terms, theorems, and
// sorts, plus the debug index.
type File interface {
	NumSorts() int
	Sort(id typ.SortID) (typ.SortFlags, bool)
	NumTerms() uint32
	Term(id TermID) (Term, bool)
	NumThms() uint32
	Thm(id ThmID) (Thm, bool)
	Index() Index
}
