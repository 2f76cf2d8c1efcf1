// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package typ

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boundVar(sort SortID, ordinal int) Type {
	return Type(BoundMask | (uint64(sort) << sortShift) | (uint64(1) << ordinal))
}

func TestSortsCompatibleReflexive(t *testing.T) {
	// Invariant 3: sorts_compatible(t, t) holds for all t.
	cases := []Type{
		OfSort(0),
		OfSort(5),
		boundVar(2, 3),
		Type(uint64(OfSort(1)) | 0b1011),
	}
	for _, ty := range cases {
		assert.True(t, SortsCompatible(ty, ty))
	}
}

func TestSortsCompatibleBoundAsymmetry(t *testing.T) {
	// Invariant 4: a bound type may be forgotten into a non-bound
	// context of the same sort, never the reverse.
	bound := boundVar(3, 4)
	nonBound := Type(uint64(OfSort(3)))

	assert.True(t, SortsCompatible(bound, nonBound))
	assert.False(t, SortsCompatible(nonBound, bound))
}

func TestSortsCompatibleDifferentSort(t *testing.T) {
	assert.False(t, SortsCompatible(OfSort(1), OfSort(2)))
}

func TestSortsCompatibleDepsOnlyDiffer(t *testing.T) {
	a := Type(uint64(OfSort(1)) | 0b001)
	b := Type(uint64(OfSort(1)) | 0b110)
	assert.True(t, SortsCompatible(a, b))
	assert.True(t, SortsCompatible(b, a))
}

func TestBoundDigitAndOrdinal(t *testing.T) {
	ty := boundVar(2, 5)
	digit, ok := ty.BoundDigit()
	require.True(t, ok)
	assert.Equal(t, uint64(1)<<5, digit)
	assert.Equal(t, 5, ty.BoundOrdinal())

	_, ok = ty.Deps()
	assert.False(t, ok)
}

func TestDepsAndDependsOn(t *testing.T) {
	ty := Type(uint64(OfSort(4)) | (1 << 2) | (1 << 7))
	deps, ok := ty.Deps()
	require.True(t, ok)
	assert.Equal(t, uint64(1<<2|1<<7), deps)
	assert.True(t, ty.DependsOn(2))
	assert.True(t, ty.DependsOn(7))
	assert.False(t, ty.DependsOn(3))

	_, ok = ty.BoundDigit()
	assert.False(t, ok)
}

func TestDisjoint(t *testing.T) {
	a := boundVar(0, 1)
	b := boundVar(0, 2)
	assert.True(t, a.Disjoint(b))

	c := Type(uint64(OfSort(0)) | (1 << 1) | (1 << 3))
	assert.False(t, a.Disjoint(c))
}

func TestUnionAndMask(t *testing.T) {
	base := OfSort(6)
	d1 := Type(1 << 1)
	d2 := Type(1 << 4)

	u := base.Union(d1).Union(d2)
	assert.Equal(t, uint64(1<<1|1<<4), u.Low())
	assert.Equal(t, SortID(6), u.Sort())

	masked := u.Mask(d1)
	assert.Equal(t, uint64(1<<4), masked.Low())
}

func TestBoundVarOrdinalLimit(t *testing.T) {
	// MaxBoundVars caps the one-hot ordinal space at 56.
	ty := boundVar(0, MaxBoundVars-1)
	assert.True(t, ty.DependsOn(MaxBoundVars - 1))
	assert.False(t, ty.DependsOn(MaxBoundVars))
}
