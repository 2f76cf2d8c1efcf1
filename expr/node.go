// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package expr implements the shared typed-expression DAG the proof
// and unify interpreters operate on: an arena of immutable Node
// values, shared by pointer so that `Save`/`Ref` can reference the
// same sub-expression from multiple places (spec.md §4.2).
package expr

import (
	"fmt"

	"github.com/luxfi/mmbdebug/mmbiface"
	"github.com/luxfi/mmbdebug/typ"
)

// Kind discriminates Node's four cases (spec.md §3: Var, App, Proof,
// Conv/CoConv).
type Kind int

const (
	KindVar Kind = iota
	KindApp
	KindProof
	KindConv
)

// Node is a closed sum type over the expression DAG's four cases.
// Equality between two *Node values is Go pointer identity, which is
// the comparator `Refl`, `ConvRef`, and `Cong` all rely on (spec.md
// §4.2's design note: any implementation must keep sub-expression
// comparison consistent, and arena-backed pointer identity gives that
// for free once `Save`/`Ref` always reuse the same allocated node).
type Node struct {
	Kind Kind

	// KindVar
	VarIdx int
	Ty     typ.Type // also used by KindApp

	// KindApp
	Term mmbiface.TermID
	Args []*Node

	// KindProof
	Inner *Node

	// KindConv: an established conversion when Pending is false, a
	// pending equality obligation (CoConv) when true.
	A, B    *Node
	Pending bool
}

// GetType returns the computed type of a Var or App node.
func (n *Node) GetType() (typ.Type, error) {
	switch n.Kind {
	case KindVar, KindApp:
		return n.Ty, nil
	default:
		return 0, fmt.Errorf("cannot get type from a non-expr node (kind %d)", n.Kind)
	}
}

// Deps returns the node's dependency set, wrapped back into a Type
// with no sort/bound bits so it can be OR'd/AND'd freely.
func (n *Node) Deps() (typ.Type, error) {
	ty, err := n.GetType()
	if err != nil {
		return 0, err
	}
	deps, ok := ty.Deps()
	if !ok {
		return 0, fmt.Errorf("node type has no dependency set (it is bound)")
	}
	return typ.FromRaw(deps), nil
}

// BoundDigit returns the node's one-hot bound ordinal bit, wrapped
// into a bare Type.
func (n *Node) BoundDigit() (typ.Type, error) {
	ty, err := n.GetType()
	if err != nil {
		return 0, err
	}
	digit, ok := ty.BoundDigit()
	if !ok {
		return 0, fmt.Errorf("node type is not bound")
	}
	return typ.FromRaw(digit), nil
}

// LowBits returns Deps() if the node's type is non-bound, else
// BoundDigit(): the low 56 bits regardless of which case applies.
// Panics only if the node carries no type at all (a Proof/Conv node),
// which is always a caller bug — none of the spec's rules ever ask a
// non-expression node for its low bits.
func (n *Node) LowBits() typ.Type {
	if deps, err := n.Deps(); err == nil {
		return deps
	}
	digit, err := n.BoundDigit()
	if err != nil {
		panic(fmt.Sprintf("expr: LowBits called on node with no type: %v", err))
	}
	return digit
}

// IsCoConv reports whether n is a pending equality obligation.
func (n *Node) IsCoConv() bool { return n.Kind == KindConv && n.Pending }

// IsConv reports whether n is an established conversion.
func (n *Node) IsConv() bool { return n.Kind == KindConv && !n.Pending }
