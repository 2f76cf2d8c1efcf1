// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package binder implements the per-declaration variable table the
// proof and unify interpreters consult for binder names and dummy
// types (spec.md §4.3). A declaration's binder list is fixed by its
// MMB header (one entry per named argument/bound variable, in
// ordinal order); dummy variables are *not* listed there and are
// instead discovered one at a time as a Dummy command runs (the proof
// stream's for a theorem, the top-level unify stream's for a
// definition), which is why SetDummy exists as a separate, failable
// step instead of being part of construction.
package binder

import (
	"fmt"

	"github.com/luxfi/mmbdebug/typ"
)

// Entry is one variable slot: either a declared binder (named,
// type fixed up front) or a dummy (discovered lazily, name assigned
// by the index, type filled in by SetDummy once the Dummy command
// that introduces it runs).
type Entry struct {
	Name  string
	Ty    typ.Type
	Dummy bool
	// Filled reports whether Ty is meaningful yet. Declared binders are
	// always Filled from construction; dummies start unfilled until
	// SetDummy runs.
	Filled bool
}

// Table is the ordinal-indexed variable list for one declaration in
// progress: the binders fixed by the header, plus however many
// dummies have been introduced so far. Ordinals are dense
// and stable: a dummy's ordinal is its index in Entries at the point
// it is appended, and never changes afterward (mod.rs's `StmtBinders`
// grows the same way).
type Table struct {
	Entries []Entry
}

// NewTable builds a table from a declaration's fixed binder list. No
// dummies are known yet.
func NewTable(names []string, types []typ.Type) (*Table, error) {
	if len(names) != len(types) {
		return nil, fmt.Errorf("binder: %d names but %d types", len(names), len(types))
	}
	entries := make([]Entry, len(names))
	for i := range names {
		entries[i] = Entry{Name: names[i], Ty: types[i], Filled: true}
	}
	return &Table{Entries: entries}, nil
}

// Len returns the number of ordinals currently known, declared plus
// dummy.
func (t *Table) Len() int { return len(t.Entries) }

// Get returns the entry at ordinal, or ok=false if it is out of
// range.
func (t *Table) Get(ordinal int) (Entry, bool) {
	if ordinal < 0 || ordinal >= len(t.Entries) {
		return Entry{}, false
	}
	return t.Entries[ordinal], true
}

// BoundVars returns, in ordinal order, the ordinals whose type is
// marked bound. Declared binders answer immediately; a dummy answers
// only once SetDummy has filled its type (Dummy commands always
// introduce a bound variable, by construction, but until the command
// runs the table does not yet know its sort).
func (t *Table) BoundVars() []int {
	var out []int
	for i, e := range t.Entries {
		if e.Filled && e.Ty.Bound() {
			out = append(out, i)
		}
	}
	return out
}

// PushDummy appends a new, as-yet-untyped dummy entry named name and
// returns its ordinal. The caller fills in its type with SetDummy
// once the sort byte of the Dummy command is known.
func (t *Table) PushDummy(name string) int {
	t.Entries = append(t.Entries, Entry{Name: name, Dummy: true})
	return len(t.Entries) - 1
}

// SetDummy records the type discovered for the dummy at ordinal. It
// is an error to call this on an ordinal that is not a dummy slot
// (mismatched proof stream vs. binder table), or on a dummy whose type
// is already set: each Dummy command introduces its variable exactly
// once, so a second assignment is reported rather than silently
// accepted or overwritten.
func (t *Table) SetDummy(ordinal int, ty typ.Type) error {
	if ordinal < 0 || ordinal >= len(t.Entries) {
		return fmt.Errorf("binder: SetDummy: ordinal %d out of range (len %d)", ordinal, len(t.Entries))
	}
	e := &t.Entries[ordinal]
	if !e.Dummy {
		return fmt.Errorf("binder: SetDummy: ordinal %d is not a dummy slot", ordinal)
	}
	if e.Filled {
		return fmt.Errorf("binder: SetDummy: ordinal %d already set to %#x, got %#x", ordinal, uint64(e.Ty), uint64(ty))
	}
	e.Ty = ty
	e.Filled = true
	return nil
}
