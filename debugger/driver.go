// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package debugger

import (
	"fmt"

	"github.com/luxfi/log"
	"go.uber.org/zap"

	"github.com/luxfi/mmbdebug/binder"
	"github.com/luxfi/mmbdebug/expr"
	"github.com/luxfi/mmbdebug/mmbiface"
	"github.com/luxfi/mmbdebug/pprint"
	"github.com/luxfi/mmbdebug/proof"
	"github.com/luxfi/mmbdebug/snapshot"
	"github.com/luxfi/mmbdebug/state"
	"github.com/luxfi/mmbdebug/typ"
	"github.com/luxfi/mmbdebug/unify"
	"github.com/luxfi/mmbdebug/verr"
)

// defaultLogger is used when no logger is threaded through a request;
// it never touches the per-command hot loop, only this file's
// coarse-grained request tracing.
var defaultLogger log.Logger = log.NewNoOpLogger()

// Verify1 resolves params.Decl against file, builds a fresh engine
// state, and runs the matching interpreter. It always returns a
// *Response — even when verification fails partway through — unless
// the request itself cannot be served: an unknown declaration, or a
// proof stream whose nullness disagrees with the declaration kind
// (spec.md §7's outer vs. in-band distinction).
func Verify1(file mmbiface.File, env mmbiface.Notation, stmt mmbiface.Stmt, it mmbiface.ProofIter, params Params) (*Response, error) {
	return verify1(defaultLogger, file, env, stmt, it, params)
}

// Verify1WithLogger is Verify1 with an explicit ambient logger, for
// callers that want request tracing wired to their own sink.
func Verify1WithLogger(logger log.Logger, file mmbiface.File, env mmbiface.Notation, stmt mmbiface.Stmt, it mmbiface.ProofIter, params Params) (*Response, error) {
	return verify1(logger, file, env, stmt, it, params)
}

func verify1(logger log.Logger, file mmbiface.File, env mmbiface.Notation, stmt mmbiface.Stmt, it mmbiface.ProofIter, params Params) (*Response, error) {
	logger.Info("verify1 start", zap.String("decl", params.Decl), zap.String("kind", stmt.Kind.String()))

	idx := file.Index()
	name, ok := idx.StmtName(stmt)
	if !ok || name != params.Decl {
		logger.Warn("verify1 declaration mismatch", zap.String("decl", params.Decl))
		return nil, fmt.Errorf("debugger: declaration %q not found", params.Decl)
	}

	switch stmt.Kind {
	case mmbiface.StmtSort:
		// A sort has nothing to verify; only a non-null proof stream
		// makes the request malformed.
		if !it.IsNull() {
			return nil, fmt.Errorf("debugger: sort %q must carry a null proof stream", params.Decl)
		}
		return &Response{Meta: Meta{Decl: params.Decl, Kind: stmt.Kind.String()}}, nil
	case mmbiface.StmtTermDef:
		return verifyTermdef(logger, file, env, idx, stmt, it, params)
	case mmbiface.StmtAxiom, mmbiface.StmtThm:
		return verifyAssert(logger, file, env, idx, stmt, it, params)
	default:
		return nil, fmt.Errorf("debugger: unknown statement kind %v", stmt.Kind)
	}
}

// verifyTermdef runs the proof stream for a term/definition. A bare
// `term` (IsDef() == false) must carry a null proof stream; a `def`
// must carry a real one (spec.md §4.4's Dummy/Term interplay implies
// this pairing, matching verify_termdef's own check in mod.rs).
func verifyTermdef(logger log.Logger, file mmbiface.File, env mmbiface.Notation, idx mmbiface.Index, stmt mmbiface.Stmt, it mmbiface.ProofIter, params Params) (*Response, error) {
	term, ok := file.Term(stmt.TermID)
	if !ok {
		return nil, fmt.Errorf("debugger: term %d not found", stmt.TermID)
	}
	if term.IsDef() == it.IsNull() {
		return nil, fmt.Errorf("debugger: term %q proof-stream nullness disagrees with IsDef", params.Decl)
	}

	binders, err := seedBinders(idx, stmt, term.Args())
	if err != nil {
		return nil, err
	}
	rec := newRecorder(file, env, idx, binders, params)
	st := state.New(state.ModeDef, binders, rec, rec)
	seedHeap(st, term.Args())

	// proof.Run consumes it; keep an unconsumed copy for Meta.ProofLen.
	lenIt := it.Clone()
	runErr := proof.Run(st, file, idx, stmt, it)
	// A definition's dummies are named by its own unify stream, run
	// here at top level (finish == nil) against the body the proof
	// stream just built, matching spec.md §4.5's "invoked at top level"
	// registration rule and scenario S3's 3-unify-snapshot count. The
	// body is popped, not merely peeked: the main stack must end empty
	// (spec.md §8 invariant 7).
	if runErr == nil && term.IsDef() {
		body, err := st.PopMain()
		if err != nil {
			runErr = err
		} else {
			seedUnifyArgs(st, len(term.Args()))
			runErr = unify.Run(st, unify.UDef, idx, stmt, term.Unify(), body, nil)
		}
	}
	if runErr == nil && len(st.MainStack) != 0 {
		runErr = verr.MakeSure()
	}
	return buildResponse(logger, params, stmt, rec, lenIt, term.Unify(), runErr), nil
}

// verifyAssert runs the proof stream for an axiom or theorem. Axioms
// carry a null proof stream (nothing to check beyond the signature);
// theorems carry a real one.
func verifyAssert(logger log.Logger, file mmbiface.File, env mmbiface.Notation, idx mmbiface.Index, stmt mmbiface.Stmt, it mmbiface.ProofIter, params Params) (*Response, error) {
	thm, ok := file.Thm(stmt.ThmID)
	if !ok {
		return nil, fmt.Errorf("debugger: theorem %d not found", stmt.ThmID)
	}
	wantNull := stmt.Kind == mmbiface.StmtAxiom
	if wantNull != it.IsNull() {
		return nil, fmt.Errorf("debugger: theorem %q proof-stream nullness disagrees with its axiom/theorem kind", params.Decl)
	}

	binders, err := seedBinders(idx, stmt, thm.Args())
	if err != nil {
		return nil, err
	}
	rec := newRecorder(file, env, idx, binders, params)
	st := state.New(state.ModeThm, binders, rec, rec)
	seedHeap(st, thm.Args())

	// proof.Run consumes it; keep an unconsumed copy for Meta.ProofLen.
	lenIt := it.Clone()
	var runErr error
	if !it.IsNull() {
		runErr = proof.Run(st, file, idx, stmt, it)
		// The proof stream leaves exactly one Proof-wrapped conclusion
		// on the main stack; unwrap it and check it against the
		// theorem's own declared statement pattern in UThmEnd mode,
		// which also drains HStack (spec.md §8 invariant 7) via the
		// Hyp unify command's UThmEnd branch.
		if runErr == nil {
			concl, err := st.PopMain()
			if err != nil {
				runErr = err
			} else if concl.Kind != expr.KindProof {
				runErr = verr.MakeSure()
			} else {
				seedUnifyArgs(st, len(thm.Args()))
				runErr = unify.Run(st, unify.UThmEnd, idx, stmt, thm.Unify(), concl.Inner, nil)
			}
		}
	}
	if runErr == nil && len(st.MainStack) != 0 {
		runErr = verr.MakeSure()
	}
	return buildResponse(logger, params, stmt, rec, lenIt, thm.Unify(), runErr), nil
}

// seedBinders builds the binder table an interpreter run starts from:
// one filled entry per declared argument, named via the index up
// front (dummies get their own PushDummy entry later, as the proof
// stream discovers them).
func seedBinders(idx mmbiface.Index, stmt mmbiface.Stmt, sig []typ.Type) (*binder.Table, error) {
	names := make([]string, len(sig))
	for i := range sig {
		if idx != nil {
			names[i] = idx.VarName(stmt, i)
		}
	}
	return binder.NewTable(names, sig)
}

// seedHeap pre-populates the main heap with one Var node per declared
// argument, at the same ordinal the signature names it by, and
// reserves each declared bound argument's one-hot bit so a later
// Dummy command never collides with it.
func seedHeap(st *state.State, sig []typ.Type) {
	for i, ty := range sig {
		st.PushHeap(st.Arena.Var(i, ty))
		if ty.Bound() {
			if digit, ok := ty.BoundDigit(); ok {
				st.NextBV |= digit
			}
		}
	}
}

// seedUnifyArgs re-pushes the declaration's own first n main-heap
// entries (the Var nodes seedHeap already built, in signature order)
// onto the unify heap, immediately before the declaration's final
// top-level unify run. This mirrors proof.thmCmd's own population of
// the unify heap when some OTHER proof applies this declaration via
// Thm{tid}: the declaration's unify stream addresses its args at the
// same indices either way. It must happen right before the call, not
// up front in seedHeap, because every nested unify.Run the proof
// stream triggers along the way (Thm/Unfold sub-unifications) clears
// the unify heap again on return.
func seedUnifyArgs(st *state.State, n int) {
	for _, v := range st.MainHeap[:n] {
		st.PushUHeap(v)
	}
}

func newRecorder(file mmbiface.File, env mmbiface.Notation, idx mmbiface.Index, binders *binder.Table, params Params) *snapshot.Recorder {
	return &snapshot.Recorder{
		Printer: &pprint.Printer{
			File:         file,
			Idx:          idx,
			Notation:     env,
			Binders:      binders,
			Level:        params.Level,
			BracketLevel: params.BracketLevel,
		},
		Table:    params.Table,
		Target:   params.Target,
		UnifyReq: params.UnifyReq,
	}
}

func buildResponse(logger log.Logger, params Params, stmt mmbiface.Stmt, rec *snapshot.Recorder, it mmbiface.ProofIter, unifyIt mmbiface.UnifyIter, runErr error) *Response {
	resp := &Response{
		Meta: Meta{
			Decl:     params.Decl,
			Kind:     stmt.Kind.String(),
			ProofLen: mmbiface.StreamLen(it),
			UnifyLen: mmbiface.UnifyStreamLen(unifyIt),
		},
	}
	if params.UnifyReq {
		resp.States = rec.UnifyJSON
	} else {
		resp.States = rec.ProofJSON
	}
	if params.Table {
		var table string
		if params.UnifyReq {
			table = rec.UnifyRows.String()
		} else {
			table = rec.ProofRows.String()
		}
		resp.Table = &table
	}
	if runErr != nil {
		logger.Info("verify1 in-band failure", zap.String("decl", params.Decl), zap.Error(runErr))
		msg := runErr.Error()
		resp.Error = &msg
	} else {
		logger.Info("verify1 ok", zap.String("decl", params.Decl))
	}
	return resp
}
