// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package snapshot

import (
	"fmt"
	"html"
	"strings"

	"github.com/luxfi/mmbdebug/expr"
	"github.com/luxfi/mmbdebug/mmbiface"
	"github.com/luxfi/mmbdebug/pprint"
	"github.com/luxfi/mmbdebug/state"
)

var _ state.ProofRecorder = (*Recorder)(nil)
var _ state.UnifyRecorder = (*Recorder)(nil)

// inWindow reports whether step falls inside the recorder's target
// window [target-50, target+50), clamped at 0. With no target set, no
// step is ever inside the window.
func (r *Recorder) inWindow(step int) bool {
	if r.Target == nil {
		return false
	}
	lo := *r.Target - WindowRadius
	if lo < 0 {
		lo = 0
	}
	hi := *r.Target + WindowRadius
	return step >= lo && step < hi
}

func renderNodes(p *pprint.Printer, nodes []*expr.Node) []string {
	if p == nil || len(nodes) == 0 {
		return nil
	}
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = p.Print(n)
	}
	return out
}

func modeString(m state.Mode) string {
	if m == state.ModeThm {
		return "thm"
	}
	return "def"
}

func (r *Recorder) snapFromState(st *state.State, step int, cmdStr string) Snap {
	return Snap{
		Step:   step,
		Mode:   modeString(st.Mode),
		Stack:  renderNodes(r.Printer, st.MainStack),
		Heap:   renderNodes(r.Printer, st.MainHeap),
		UStack: renderNodes(r.Printer, st.UStack),
		UHeap:  renderNodes(r.Printer, st.UHeap),
		HStack: renderNodes(r.Printer, st.HStack),
		Cmd:    cmdStr,
	}
}

func describeProof(cmd mmbiface.ProofCmd) string {
	switch cmd.Op {
	case mmbiface.PRef:
		return fmt.Sprintf("Ref(%d)", cmd.Ref)
	case mmbiface.PDummy:
		return fmt.Sprintf("Dummy(sort=%d)", cmd.Sort)
	case mmbiface.PTerm:
		return fmt.Sprintf("Term(%d,save=%v)", cmd.Term, cmd.Save)
	case mmbiface.PThm:
		return fmt.Sprintf("Thm(%d,save=%v)", cmd.Thm, cmd.Save)
	case mmbiface.PConvRef:
		return fmt.Sprintf("ConvRef(%d)", cmd.Ref)
	default:
		return cmd.Op.String()
	}
}

func describeUnify(cmd mmbiface.UnifyCmd) string {
	switch cmd.Op {
	case mmbiface.URef:
		return fmt.Sprintf("Ref(%d)", cmd.Ref)
	case mmbiface.UTerm:
		return fmt.Sprintf("Term(%d,save=%v)", cmd.Term, cmd.Save)
	case mmbiface.UDummy:
		return fmt.Sprintf("Dummy(sort=%d)", cmd.Sort)
	default:
		return cmd.Op.String()
	}
}

func finishString(f state.Finish) string {
	switch f.Kind {
	case state.FinishThm:
		return fmt.Sprintf("thm(%d)", f.Thm)
	case state.FinishUnfold:
		return fmt.Sprintf("unfold(%d)", f.Term)
	default:
		return "none"
	}
}

func (r *Recorder) writeRow(b *strings.Builder, class string, s Snap) {
	fmt.Fprintf(b, "<tr class=\"%s\"><td>%d</td><td>%s</td></tr>\n", class, s.Step, html.EscapeString(s.Cmd))
}

// Step implements state.ProofRecorder. cmd == nil signals the
// terminal "Done" snapshot, fired once after the stream is exhausted.
func (r *Recorder) Step(st *state.State, cmd *mmbiface.ProofCmd) error {
	step := r.ProofStep
	cmdStr := "Done"
	if cmd != nil {
		cmdStr = describeProof(*cmd)
	}
	s := r.snapFromState(st, step, cmdStr)

	if r.Table {
		r.writeRow(&r.ProofRows, pprint.RowClassProof, s)
	}
	if !r.UnifyReq && r.inWindow(step) {
		r.ProofJSON = append(r.ProofJSON, s)
	}
	if cmd != nil {
		r.ProofStep++
	}
	return nil
}

// StepUnify implements state.UnifyRecorder. finish classifies this
// run as a sub-unification (non-nil) or a proper, terminal
// unification (nil). cmd == nil signals that run's own terminal
// "Done" snapshot, fired once after its stream is exhausted — every
// run_unify invocation gets one, exactly like the proof stream's.
func (r *Recorder) StepUnify(st *state.State, cmd *mmbiface.UnifyCmd, finish *state.Finish) error {
	cmdStr := "Done"
	if cmd != nil {
		cmdStr = describeUnify(*cmd)
	}

	if finish != nil {
		sub := r.SubStep
		total := finish.Total
		fstr := finishString(*finish)

		s := r.snapFromState(st, r.ProofStep, cmdStr)
		s.SubStep = &sub
		s.SubTotal = &total
		s.Finish = &fstr

		if r.Table {
			r.writeRow(&r.ProofRows, pprint.RowClassSubunify, s)
		}
		if !r.UnifyReq && r.inWindow(r.ProofStep) {
			r.ProofJSON = append(r.ProofJSON, s)
		}
		if cmd != nil {
			r.SubStep++
		} else {
			// This sub-unification run is done; the next Thm/Unfold's
			// own sub-unification starts renumbering from 0.
			r.SubStep = 0
		}
		return nil
	}

	step := r.UnifyStep
	s := r.snapFromState(st, step, cmdStr)

	if r.Table {
		r.writeRow(&r.UnifyRows, pprint.RowClassUnify, s)
	}
	if r.UnifyReq && r.inWindow(step) {
		r.UnifyJSON = append(r.UnifyJSON, s)
	}
	if cmd != nil {
		r.UnifyStep++
	}
	return nil
}
