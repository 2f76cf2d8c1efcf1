// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mmbiface

import "github.com/luxfi/mmbdebug/typ"

// ProofOp names one proof-stream instruction kind (spec.md §4.4).
type ProofOp int

const (
	PRef ProofOp = iota
	PDummy
	PTerm
	PThm
	PHyp
	PConv
	PRefl
	PSym
	PCong
	PUnfold
	PConvCut
	PConvRef
	PConvSave
	PSave
	PSorry
)

func (op ProofOp) String() string {
	switch op {
	case PRef:
		return "Ref"
	case PDummy:
		return "Dummy"
	case PTerm:
		return "Term"
	case PThm:
		return "Thm"
	case PHyp:
		return "Hyp"
	case PConv:
		return "Conv"
	case PRefl:
		return "Refl"
	case PSym:
		return "Sym"
	case PCong:
		return "Cong"
	case PUnfold:
		return "Unfold"
	case PConvCut:
		return "ConvCut"
	case PConvRef:
		return "ConvRef"
	case PConvSave:
		return "ConvSave"
	case PSave:
		return "Save"
	case PSorry:
		return "Sorry"
	default:
		return "Unknown"
	}
}

// ProofCmd is one instruction of the proof stream. Only the fields
// relevant to Op are meaningful (Go has no tagged union, so this plays
// the role of the original `ProofCmd` enum's variants with payloads).
type ProofCmd struct {
	Op     ProofOp
	Ref    uint32      // PRef, PConvRef
	Sort   typ.SortID  // PDummy
	Term   TermID      // PTerm
	Thm    ThmID       // PThm
	Save   bool        // PTerm, PThm
}

// ProofIter iterates a declaration's proof stream. Clone must produce
// an independent cursor at the same position, so callers can count
// the remaining length without disturbing the iterator actually being
// run (spec.md §9's "must not consume the stream to count it" note).
type ProofIter interface {
	// Next returns the next command, or ok=false at end of stream.
	Next() (cmd ProofCmd, ok bool, err error)
	// Clone returns an independent copy positioned identically to this
	// iterator.
	Clone() ProofIter
	// IsNull reports whether this is the null iterator (used for Sort
	// declarations and non-`def` terms, which carry no proof stream).
	IsNull() bool
}

// UnifyOp names one unify-stream instruction kind (spec.md §4.5).
type UnifyOp int

const (
	URef UnifyOp = iota
	UTerm
	UDummy
	UHyp
)

func (op UnifyOp) String() string {
	switch op {
	case URef:
		return "Ref"
	case UTerm:
		return "Term"
	case UDummy:
		return "Dummy"
	case UHyp:
		return "Hyp"
	default:
		return "Unknown"
	}
}

// UnifyCmd is one instruction of the unify stream.
type UnifyCmd struct {
	Op   UnifyOp
	Ref  uint32     // URef
	Term TermID     // UTerm
	Save bool       // UTerm
	Sort typ.SortID // UDummy
}

// UnifyIter iterates a term or theorem's unify stream, with the same
// Clone contract as ProofIter.
type UnifyIter interface {
	Next() (cmd UnifyCmd, ok bool, err error)
	Clone() UnifyIter
}

// StreamLen counts the remaining commands in a cloned proof iterator
// without disturbing it, used for the up-front checksum length.
func StreamLen(it ProofIter) int {
	c := it.Clone()
	n := 0
	for {
		_, ok, err := c.Next()
		if err != nil || !ok {
			return n
		}
		n++
	}
}

// UnifyStreamLen is StreamLen's analogue for unify iterators.
func UnifyStreamLen(it UnifyIter) int {
	c := it.Clone()
	n := 0
	for {
		_, ok, err := c.Next()
		if err != nil || !ok {
			return n
		}
		n++
	}
}
