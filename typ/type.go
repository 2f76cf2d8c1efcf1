// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package typ implements the bit-packed type word used by the MMB
// proof verifier: a single uint64 that carries a sort id, a bound
// flag, and either a bound-variable ordinal or a dependency set over
// bound ordinals, depending on that flag.
package typ

import "math/bits"

// BoundMask is the high bit: 1 if the type is a bound variable.
//
// 10000000_00000000_00000000_00000000_00000000_00000000_00000000_00000000
const BoundMask uint64 = 1 << 63

// DepsMask covers the low 56 bits, used either as a one-hot
// bound-variable ordinal or as a dependency set over ordinals.
//
// 00000000_11111111_11111111_11111111_11111111_11111111_11111111_11111111
const DepsMask uint64 = (1 << 56) - 1

// sortShift is where the 7-bit sort id starts.
const sortShift = 56

// sortMask isolates the 7-bit sort id once shifted down.
const sortMask = 0x7f

// MaxBoundVars is the hard limit on bound variables per declaration:
// the low 56 bits only have room for 56 distinct one-hot ordinals.
const MaxBoundVars = 56

// SortFlags are the modifier bits carried alongside a sort id in the
// MMB sort table (one byte per sort; the high nibble is unused).
type SortFlags uint8

const (
	SortPure     SortFlags = 1
	SortStrict   SortFlags = 2
	SortProvable SortFlags = 4
	SortFree     SortFlags = 8
)

// SortID identifies one of a file's (at most 128) sorts.
type SortID uint8

// Type is the 64-bit packed type word described in spec.md §3.
type Type uint64

// FromRaw wraps a raw 64-bit word with no validation; used when the
// word is already known to respect the packed layout (e.g. read back
// out of an MMB file, or constructed bit-by-bit by the caller).
func FromRaw(raw uint64) Type { return Type(raw) }

// OfSort constructs a type with only the sort field set: zero-cost,
// no bound flag, no dependencies.
func OfSort(s SortID) Type {
	return Type(uint64(s&sortMask) << sortShift)
}

// Raw returns the underlying 64-bit word.
func (t Type) Raw() uint64 { return uint64(t) }

// Bound reports whether the bound flag is set.
func (t Type) Bound() bool { return uint64(t)&BoundMask != 0 }

// Sort extracts the 7-bit sort id.
func (t Type) Sort() SortID { return SortID((uint64(t) >> sortShift) & sortMask) }

// Low returns the low 56 bits verbatim, regardless of the bound flag.
// This is the value the original implementation calls `low_bits`:
// either the one-hot bound digit or the dependency set, whichever the
// bound flag says is present.
func (t Type) Low() uint64 { return uint64(t) & DepsMask }

// Deps returns the dependency set and true, or (0, false) if this type
// is itself a bound variable (in which case its low bits are a bound
// digit, not a dependency set).
func (t Type) Deps() (uint64, bool) {
	if t.Bound() {
		return 0, false
	}
	return t.Low(), true
}

// BoundDigit returns the one-hot bound ordinal bit and true, or
// (0, false) if this type is not itself bound.
func (t Type) BoundDigit() (uint64, bool) {
	if !t.Bound() {
		return 0, false
	}
	return t.Low(), true
}

// BoundOrdinal returns the bound variable's 0-based ordinal, assuming
// Bound() is true and the low bits are a single one-hot bit.
func (t Type) BoundOrdinal() int {
	return bits.TrailingZeros64(t.Low())
}

// HasDeps reports whether this (necessarily non-bound) type carries
// any dependency bits at all.
func (t Type) HasDeps() bool {
	deps, ok := t.Deps()
	return ok && deps != 0
}

// DependsOn reports whether this type's low bits claim a dependency on
// (or, if bound, identity with) the given bound ordinal.
func (t Type) DependsOn(ordinal uint64) bool {
	if ordinal >= MaxBoundVars {
		return false
	}
	return t.Low()&(uint64(1)<<ordinal) != 0
}

// Disjoint reports whether this type's low bits share no set bit with
// other's low bits.
func (t Type) Disjoint(other Type) bool {
	return t.Low()&other.Low() == 0
}

// Union returns a type whose low bits are the bitwise OR of both
// operands' low bits, keeping this type's sort/bound bits.
func (t Type) Union(other Type) Type {
	return Type(uint64(t) | other.Low())
}

// Intersect returns a type whose low bits are the bitwise AND of both
// operands' low bits, keeping this type's sort/bound bits.
func (t Type) Intersect(other Type) Type {
	return Type((uint64(t) &^ DepsMask) | (t.Low() & other.Low()))
}

// Mask clears from this type's low bits every bit set in other's low
// bits.
func (t Type) Mask(other Type) Type {
	return Type(uint64(t) &^ other.Low())
}

// SortsCompatible reports whether a value of type `from` may be used
// where a value of type `to` is expected: same sort, and either only
// dependency bits differ, or only the bound flag differs in addition
// and `from` is itself bound (a bound value may be forgotten into a
// non-bound context; never the reverse).
func SortsCompatible(from, to Type) bool {
	diff := uint64(from) ^ uint64(to)
	sameModuloDeps := diff&^DepsMask == 0
	sameModuloBoundAndDeps := diff&^BoundMask&^DepsMask == 0
	fromIsBound := uint64(from)&BoundMask != 0
	return sameModuloDeps || (sameModuloBoundAndDeps && fromIsBound)
}
