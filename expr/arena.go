// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package expr

import (
	"github.com/luxfi/mmbdebug/mmbiface"
	"github.com/luxfi/mmbdebug/typ"
)

// Arena allocates Node values for the lifetime of a single
// verification request (spec.md §5: the arena is reset at the start
// of a request and dropped, with everything it allocated, at the
// end). Go's garbage collector makes the original's bump-allocator
// micro-optimization unnecessary; Arena's job here is purely to give
// allocation a single obvious choke point and to make the "reset at
// request start" lifecycle explicit and testable, the way the
// original's `bump.reset()` does in `MmbState::new_from`.
type Arena struct {
	nodes []*Node
}

// NewArena returns a freshly reset arena.
func NewArena() *Arena {
	return &Arena{}
}

// Reset discards every node this arena has allocated.
func (a *Arena) Reset() {
	a.nodes = a.nodes[:0]
}

// Len reports how many nodes this arena has allocated since the last
// Reset.
func (a *Arena) Len() int { return len(a.nodes) }

func (a *Arena) track(n *Node) *Node {
	a.nodes = append(a.nodes, n)
	return n
}

// Var allocates a variable node referencing heap slot idx.
func (a *Arena) Var(idx int, ty typ.Type) *Node {
	return a.track(&Node{Kind: KindVar, VarIdx: idx, Ty: ty})
}

// App allocates an application node. args is stored as-is (already in
// original signature order); callers must not mutate the slice
// afterward since nodes are immutable once allocated.
func (a *Arena) App(term mmbiface.TermID, args []*Node, ty typ.Type) *Node {
	return a.track(&Node{Kind: KindApp, Term: term, Args: args, Ty: ty})
}

// Proof allocates a proof witness wrapping e.
func (a *Arena) Proof(e *Node) *Node {
	return a.track(&Node{Kind: KindProof, Inner: e})
}

// Conv allocates an established conversion between a and b.
func (a *Arena) Conv(x, y *Node) *Node {
	return a.track(&Node{Kind: KindConv, A: x, B: y, Pending: false})
}

// CoConv allocates a pending equality obligation between a and b.
func (a *Arena) CoConv(x, y *Node) *Node {
	return a.track(&Node{Kind: KindConv, A: x, B: y, Pending: true})
}
