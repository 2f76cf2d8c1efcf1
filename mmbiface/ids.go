// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package mmbiface defines the read-only contracts the verification
// core consumes from the two collaborators spec.md places out of
// scope: the MMB binary parser and the MM1 source-level elaborator.
// Nothing in this package parses bytes or elaborates source; it only
// names the shapes proof/unify/snapshot/pprint depend on, so that
// package can be compiled and tested against an in-memory fixture.
package mmbiface

// TermID identifies a declared term or definition.
type TermID uint32

// ThmID identifies a declared axiom or theorem.
type ThmID uint32

// StmtKind distinguishes the four kinds of top-level MMB declaration.
type StmtKind int

const (
	StmtSort StmtKind = iota
	StmtTermDef
	StmtAxiom
	StmtThm
)

func (k StmtKind) String() string {
	switch k {
	case StmtSort:
		return "sort"
	case StmtTermDef:
		return "termdef"
	case StmtAxiom:
		return "axiom"
	case StmtThm:
		return "theorem"
	default:
		return "unknown"
	}
}

// Stmt names one numbered statement command from the MMB file. Only
// one of TermID/ThmID is meaningful, selected by Kind.
type Stmt struct {
	Kind   StmtKind
	TermID TermID
	ThmID  ThmID
}
