// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/mmbdebug/typ"
)

func TestArenaResetDropsNodes(t *testing.T) {
	a := NewArena()
	a.Var(0, typ.OfSort(0))
	a.Var(1, typ.OfSort(0))
	assert.Equal(t, 2, a.Len())

	a.Reset()
	assert.Equal(t, 0, a.Len())
}

func TestSaveRefSharing(t *testing.T) {
	// Two references to the same heap slot must be the identical
	// pointer, which is what Refl/ConvRef/Cong rely on.
	a := NewArena()
	v := a.Var(0, typ.OfSort(0))
	heap := []*Node{v}

	ref1 := heap[0]
	ref2 := heap[0]
	assert.True(t, ref1 == ref2)
	assert.Same(t, v, ref1)
}

func TestLowBitsBoundVsDeps(t *testing.T) {
	a := NewArena()
	bound := a.Var(0, typ.Type(typ.BoundMask|(1<<3)))
	nonBound := a.Var(1, typ.Type(uint64(typ.OfSort(0))|(1<<3)))

	assert.Equal(t, uint64(1<<3), bound.LowBits().Low())
	assert.Equal(t, uint64(1<<3), nonBound.LowBits().Low())
}

func TestGetTypeRejectsNonExpr(t *testing.T) {
	a := NewArena()
	v := a.Var(0, typ.OfSort(0))
	p := a.Proof(v)
	_, err := p.GetType()
	require.Error(t, err)
}
