// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pprint

import (
	"fmt"
	"strings"

	"github.com/luxfi/mmbdebug/binder"
	"github.com/luxfi/mmbdebug/expr"
	"github.com/luxfi/mmbdebug/mmbiface"
)

// Printer renders expr.Node values at one of three elaboration levels
// (spec.md §4.7). A single Printer is built once per request and
// reused for every stack/heap entry a snapshot serializes.
type Printer struct {
	File     mmbiface.File
	Idx      mmbiface.Index
	Notation mmbiface.Notation
	Binders  *binder.Table

	// Level selects 0 (raw indices), 1 (binder names, bare prefix), or
	// 2 (MM1 notation).
	Level int
	// BracketLevel == 0 suppresses every precedence-driven added
	// parenthesis; only level 2 consults it.
	BracketLevel int
}

// Print renders n at p.Level.
func (p *Printer) Print(n *expr.Node) string {
	switch p.Level {
	case 0:
		return p.level0(n)
	case 1:
		return p.level1(n)
	default:
		return p.level2(n, Never())
	}
}

func (p *Printer) level0(n *expr.Node) string {
	switch n.Kind {
	case expr.KindVar:
		return fmt.Sprintf("v%d", n.VarIdx)
	case expr.KindApp:
		parts := make([]string, len(n.Args))
		for i, a := range n.Args {
			parts[i] = p.level0(a)
		}
		return fmt.Sprintf("t%d(%s)", n.Term, strings.Join(parts, ","))
	case expr.KindProof:
		return "proof(" + p.level0(n.Inner) + ")"
	case expr.KindConv:
		op := "="
		if n.Pending {
			op = "=?"
		}
		return fmt.Sprintf("(%s %s %s)", p.level0(n.A), op, p.level0(n.B))
	default:
		return "?"
	}
}

func (p *Printer) level1(n *expr.Node) string {
	switch n.Kind {
	case expr.KindVar:
		if p.Binders != nil {
			if e, ok := p.Binders.Get(n.VarIdx); ok {
				return e.Name
			}
		}
		return fmt.Sprintf("v%d", n.VarIdx)
	case expr.KindApp:
		name := p.termName(n.Term)
		var sb strings.Builder
		sb.WriteString("(")
		sb.WriteString(name)
		for _, a := range n.Args {
			sb.WriteString(" ")
			sb.WriteString(p.level1(a))
		}
		sb.WriteString(")")
		return sb.String()
	case expr.KindProof:
		return "(proof " + p.level1(n.Inner) + ")"
	case expr.KindConv:
		op := "="
		if n.Pending {
			op = "=?"
		}
		return fmt.Sprintf("(%s %s %s)", p.level1(n.A), op, p.level1(n.B))
	default:
		return "?"
	}
}

func (p *Printer) termName(id mmbiface.TermID) string {
	if p.Idx != nil {
		if name := p.Idx.TermName(id); name != "" {
			return name
		}
	}
	return fmt.Sprintf("t%d", id)
}

func (p *Printer) level2(n *expr.Node, ceiling Priority) string {
	switch n.Kind {
	case expr.KindVar:
		return p.level1(n)
	case expr.KindProof:
		return "(proof " + p.level2(n.Inner, Never()) + ")"
	case expr.KindConv:
		op := "="
		if n.Pending {
			op = "=?"
		}
		return fmt.Sprintf("(%s %s %s)", p.level2(n.A, Never()), op, p.level2(n.B, Never()))
	case expr.KindApp:
		return p.level2App(n, ceiling)
	default:
		return "?"
	}
}

func (p *Printer) level2App(n *expr.Node, ceiling Priority) string {
	var toks []mmbiface.NotaTok
	if p.Notation != nil {
		if ts, ok := p.Notation.Decl(n.Term); ok {
			toks = ts
		}
	}
	if len(toks) == 0 {
		return p.rawApp(n)
	}
	tok := toks[0]
	if tok.Infix {
		if info, ok := p.Notation.Infix(tok.Tok); ok && len(n.Args) == 2 {
			return p.renderInfix(n, tok.Tok, info, ceiling)
		}
		return p.rawApp(n)
	}
	info, ok := p.Notation.Prefix(tok.Tok)
	if !ok {
		return p.rawApp(n)
	}
	return p.renderPrefix(n, tok.Tok, info, ceiling)
}

// rawApp renders an un-notated application lisp-style; it always
// wraps itself, independent of the needsParen/ceiling machinery,
// because its own parentheses are the notation, not an addition.
func (p *Printer) rawApp(n *expr.Node) string {
	var sb strings.Builder
	sb.WriteString("(")
	sb.WriteString(p.termName(n.Term))
	for _, a := range n.Args {
		sb.WriteString(" ")
		sb.WriteString(p.level2(a, Never()))
	}
	sb.WriteString(")")
	return sb.String()
}

func (p *Printer) renderInfix(n *expr.Node, tok string, info mmbiface.NotaInfo, ceiling Priority) string {
	prio := InfixPriority()
	left := p.level2(n.Args[0], prio)
	right := p.level2(n.Args[1], prio)
	s := left + " " + tok + " " + right
	if p.wrap(prio, ceiling) {
		s = "(" + s + ")"
	}
	return s
}

func (p *Printer) renderPrefix(n *expr.Node, tok string, info mmbiface.NotaInfo, ceiling Priority) string {
	prio := PrefixPriority(len(n.Args))
	var sb strings.Builder
	sb.WriteString(tok)
	if len(info.Lits) > 0 {
		for _, lit := range info.Lits {
			sb.WriteString(" ")
			if lit.IsVar {
				if lit.ArgPos < len(n.Args) {
					sb.WriteString(p.level2(n.Args[lit.ArgPos], ValPriority(lit.Prec)))
				}
			} else {
				sb.WriteString(lit.Const)
			}
		}
	} else {
		for _, a := range n.Args {
			sb.WriteString(" ")
			sb.WriteString(p.level2(a, prio))
		}
	}
	s := sb.String()
	if p.wrap(prio, ceiling) {
		s = "(" + s + ")"
	}
	return s
}

func (p *Printer) wrap(current, ceiling Priority) bool {
	if p.BracketLevel == 0 {
		return false
	}
	return needsParen(current, ceiling)
}
