package bp

import (
	"github.com/katalvlaran/scalib-bp/dist"
	"github.com/katalvlaran/scalib-bp/fgraph"
)

// propagateVarTo dispatches to the multi or single fast path by v's own
// Multi flag (spec.md §4.2): a per-trace variable combines evidence with
// full-Distribution leave-one-out products, while a shared variable must
// additionally fold across the rows of every multi incoming belief.
func (s *BPState) propagateVarTo(v fgraph.VarID, toEdges []fgraph.EdgeID, clearBeliefs, clearEvidence bool) {
	if s.graph.Vars[v].Multi {
		s.propagateVarToMulti(v, toEdges, clearBeliefs, clearEvidence)
	} else {
		s.propagateVarToSingle(v, toEdges, clearBeliefs, clearEvidence)
	}
}

// otherEdges returns v's incident edges that are not in toEdges, in v's own
// edge order (the sorted set-difference spec.md §4.2 calls for).
func (s *BPState) otherEdges(v fgraph.VarID, toEdges []fgraph.EdgeID) []fgraph.EdgeID {
	skip := make(map[fgraph.EdgeID]bool, len(toEdges))
	for _, e := range toEdges {
		skip[e] = true
	}
	out := make([]fgraph.EdgeID, 0, len(s.graph.Vars[v].Edges))
	for _, r := range s.graph.Vars[v].Edges {
		if !skip[r.Edge] {
			out = append(out, r.Edge)
		}
	}
	return out
}

func (s *BPState) clearBeliefsIfRequested(edges []fgraph.EdgeID, clear bool) {
	if !clear {
		return
	}
	for _, e := range edges {
		s.beliefToVar[e] = s.beliefToVar[e].AsUniform()
	}
}

// propagateVarToMulti is the per-trace fast path: base folds evidence with
// every other-edge belief (whole Distributions, no row decomposition
// needed since v itself carries one row per trace already), then
// dist.ReciprocalProduct supplies the leave-one-out messages across toEdges
// in one pass.
func (s *BPState) propagateVarToMulti(v fgraph.VarID, toEdges []fgraph.EdgeID, clearBeliefs, clearEvidence bool) {
	base := s.evidence[v].TakeOrClone(clearEvidence)

	others := s.otherEdges(v, toEdges)
	otherDists := make([]dist.Distribution, len(others))
	for i, e := range others {
		otherDists[i] = s.beliefToVar[e]
	}
	base = dist.MultiplyNorm(base, otherDists...)

	toDists := make([]dist.Distribution, len(toEdges))
	for i, e := range toEdges {
		toDists[i] = s.beliefToVar[e]
	}
	full, perEdge := dist.ReciprocalProduct(base, toDists)
	full.Regularize()
	s.varState[v] = full

	for i, e := range toEdges {
		perEdge[i].Regularize()
		s.beliefFromVar[e] = perEdge[i]
	}
	s.clearBeliefsIfRequested(toEdges, clearBeliefs)
}

// propagateVarToSingle is the shared-variable fast path. Every incident
// belief can itself be multi (one row per trace, from a per-trace factor),
// so each toEdge's own belief is first decomposed via RowsReciprocalProduct
// into (global = product of all its rows collapsed to single, local = the
// per-row leave-one-out residual). The globals combine with base and with
// each other through the ordinary ReciprocalProduct leave-one-out exactly
// as in the multi path; each toEdge's outgoing message is then its
// per-edge global broadcast against its own local residual, reproducing
// "product of every belief on every (edge, row) slot except (e, r) itself"
// without ever materializing that full cross product.
func (s *BPState) propagateVarToSingle(v fgraph.VarID, toEdges []fgraph.EdgeID, clearBeliefs, clearEvidence bool) {
	base := s.evidence[v].TakeOrClone(clearEvidence)
	for _, e := range s.otherEdges(v, toEdges) {
		base = dist.MultiplyToSingle(base, s.beliefToVar[e])
	}

	globals := make([]dist.Distribution, len(toEdges))
	locals := make([]dist.Distribution, len(toEdges))
	for i, e := range toEdges {
		g, l := s.beliefToVar[e].RowsReciprocalProduct()
		globals[i] = g
		locals[i] = l
	}

	fullGlobal, perEdgeGlobal := dist.ReciprocalProduct(base, globals)
	fullGlobal.Regularize()
	s.varState[v] = fullGlobal

	for i, e := range toEdges {
		msg := dist.MultiplyNorm(perEdgeGlobal[i], locals[i])
		s.beliefFromVar[e] = msg
	}
	s.clearBeliefsIfRequested(toEdges, clearBeliefs)
}
