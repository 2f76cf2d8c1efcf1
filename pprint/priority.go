// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package pprint renders expression-DAG nodes as text at one of three
// elaboration levels (spec.md §4.7): raw numeric indices, binder-named
// prefix application, or full MM1 notation with priority-driven
// parenthesization.
package pprint

// PrioKind discriminates Priority's three cases.
type PrioKind int

const (
	PrioNever PrioKind = iota
	PrioVal
	PrioAlways
)

// Priority is a rendered value's binding strength for the purpose of
// deciding whether its parent must wrap it in parentheses. Never means
// the value is atomic and is never wrapped (nullary prefix forms,
// variables, raw term names); Always means the value always wraps
// itself regardless of context (an un-notated term application,
// printed lisp-style); Val(n) is an ordinary operator priority,
// compared against the surrounding context's ceiling.
type Priority struct {
	Kind PrioKind
	Val  uint16
}

func Never() Priority      { return Priority{Kind: PrioNever} }
func Always() Priority     { return Priority{Kind: PrioAlways} }
func ValPriority(v uint16) Priority { return Priority{Kind: PrioVal, Val: v} }

// PrefixPriority returns the priority a prefix-notated term of the
// given argument count renders at: nullary forms are atomic (Never),
// unary is 20, and arity two or more is 15 (spec.md §4.7).
func PrefixPriority(arity int) Priority {
	switch {
	case arity == 0:
		return Never()
	case arity == 1:
		return ValPriority(20)
	default:
		return ValPriority(15)
	}
}

// InfixPriority is the fixed priority every infix-notated term renders
// at.
func InfixPriority() Priority { return ValPriority(10) }

// needsParen decides whether a value of priority current, appearing in
// a context whose ceiling priority is ceiling, must be parenthesized.
func needsParen(current, ceiling Priority) bool {
	if current.Kind == PrioAlways {
		return true
	}
	if ceiling.Kind == PrioAlways {
		return true
	}
	return current.Kind == PrioVal && ceiling.Kind == PrioVal && current.Val <= ceiling.Val
}
