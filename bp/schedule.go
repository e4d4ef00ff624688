package bp

import (
	"fmt"

	"github.com/katalvlaran/scalib-bp/fgraph"
)

// PropagateFactorAll sends factor f's outgoing message to every incident
// variable at once (spec.md §6's "propagate_factor_all"), with no clearing
// of the edges it reads from.
func (s *BPState) PropagateFactorAll(f fgraph.FactorID) {
	fac := &s.graph.Factors[f]
	dest := make([]int, len(fac.Edges))
	for i := range fac.Edges {
		dest[i] = i
	}
	s.propagateFactor(f, dest, false)
}

// PropagateVar sends variable v's outgoing message to every incident
// factor at once, folding in v's current evidence; no evidence clearing.
func (s *BPState) PropagateVar(v fgraph.VarID, clearBeliefs bool) {
	edges := make([]fgraph.EdgeID, len(s.graph.Vars[v].Edges))
	for i, r := range s.graph.Vars[v].Edges {
		edges[i] = r.Edge
	}
	s.propagateVarTo(v, edges, clearBeliefs, false)
}

// PropagateAllVars calls PropagateVar on every variable of the graph, in
// VarID order.
func (s *BPState) PropagateAllVars(clearBeliefs bool) {
	for v := 0; v < s.graph.NVars(); v++ {
		s.PropagateVar(fgraph.VarID(v), clearBeliefs)
	}
}

// PropagateLoopyStep runs n rounds of loopy belief propagation: every
// factor broadcasts to all its variables, then every variable broadcasts
// to all its factors, repeated n times (spec.md §4.4's loopy schedule,
// which never terminates on its own and is the caller's responsibility to
// bound and to judge convergence of).
func (s *BPState) PropagateLoopyStep(n int, clearBeliefs bool) {
	for i := 0; i < n; i++ {
		for f := 0; f < s.graph.NFactors(); f++ {
			s.PropagateFactorAll(fgraph.FactorID(f))
		}
		s.PropagateAllVars(clearBeliefs)
	}
}

// PropagateAcyclic runs exact sum-product propagation toward dest along
// fgraph.PropagationOrder(dest): every node other than dest sends exactly
// one message, across the single edge leading toward its DFS parent: a
// NodeVar step forwards on that edge, a NodeFactor step forwards on the
// edge matching its destination variable. dest itself (the final, root
// step) still calls propagateVarTo with an empty edge list rather than
// being skipped — its leave-one-out degenerates (spec.md §4.2) to the
// plain product of evidence with every incident belief, writing varState
// without touching any beliefFromVar slot.
//
// Returns ErrNotAcyclic if the graph (for this state's Nmulti) is cyclic;
// PropagationOrder's walk is undefined on a cyclic graph.
func (s *BPState) PropagateAcyclic(dest fgraph.VarID, clearIntermediates, clearEvidence bool) error {
	if s.cyclic {
		return fmt.Errorf("%w: dest var %d", ErrNotAcyclic, dest)
	}

	for _, step := range s.graph.PropagationOrder(dest) {
		switch step.Kind {
		case fgraph.NodeVar:
			if step.IsRoot {
				s.propagateVarTo(step.Var, nil, clearIntermediates, clearEvidence)
			} else {
				s.propagateVarTo(step.Var, []fgraph.EdgeID{step.ToEdge}, clearIntermediates, clearEvidence)
			}
		case fgraph.NodeFactor:
			toVar := s.graph.Edges[step.ToEdge].Var
			idx, _ := s.graph.Factors[step.Fac].IndexOf(toVar)
			s.propagateFactor(step.Fac, []int{idx}, clearIntermediates)
		}
	}
	return nil
}
