// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mmbiface

// Literal is one element of a notation's literal list: either a
// reference to the idx-th argument (rendered at the given priority) or
// a literal constant token. Mirrors mm0-rs's `Literal::Var`/`Const`
// (elab.rs, `environment::Literal`).
type Literal struct {
	IsVar bool
	// Var fields.
	ArgPos int
	Prec   uint16
	// Const field.
	Const string
}

// NotaInfo is the fixity-independent shape of a declared notation: an
// ordered list of literals to interleave with a term's arguments.
type NotaInfo struct {
	Lits []Literal
}

// NotaTok names one fixity entry for a term id: a token plus whether
// it is infix (true) or prefix (false). The MM1 notation table may
// declare more than one token per term; by convention the first entry
// determines how the term prints (spec.md §4.7).
type NotaTok struct {
	Tok   string
	Infix bool
}

// Notation is the MM1 environment's presentation-only surface: fixity
// declarations per term id, and the literal lists for each declared
// prefix/infix token.
type Notation interface {
	// Decl returns the ordered fixity declarations for term id, or
	// ok=false if the term has no declared notation at all.
	Decl(id TermID) (toks []NotaTok, ok bool)
	Prefix(tok string) (NotaInfo, bool)
	Infix(tok string) (NotaInfo, bool)
}
