package bp

import (
	"fmt"

	"github.com/katalvlaran/scalib-bp/dist"
	"github.com/katalvlaran/scalib-bp/fgraph"
)

// BPState is the mutable belief-propagation instance over one immutable,
// shared FactorGraph: evidence, current posterior estimates, and the two
// message slots (variable->factor, factor->variable) on every edge.
//
// The zero value is not valid; use New. BPState is dropped as a unit — there
// is no explicit Close, matching spec's "owned" lifecycle.
type BPState struct {
	graph  *fgraph.FactorGraph
	nmulti int

	// publicValues is exactly what the caller supplied to New (nil means
	// "use the graph's own Factor.Public for every factor"). pubReduced is
	// the effective value this instance actually consults, computed once
	// here rather than re-resolved on every kernel call.
	publicValues []fgraph.PublicValue
	pubReduced   []fgraph.PublicValue

	evidence []dist.Distribution
	varState []dist.Distribution

	beliefFromVar []dist.Distribution
	beliefToVar   []dist.Distribution

	cyclic bool
}

// New builds a BPState over graph with nmulti trace rows and the given
// per-factor public values. publicValues may be nil, in which case every
// factor's public constant is taken from graph.Factors[i].Public (the value
// baked in at build time); when non-nil it must have exactly one entry per
// factor and overrides the graph's values for this instance — the pattern
// that lets one immutable FactorGraph back many BPStates carrying different
// leaked constants (e.g. different plaintext bytes per attack run).
func New(graph *fgraph.FactorGraph, nmulti uint32, publicValues []fgraph.PublicValue) *BPState {
	nf := graph.NFactors()
	if publicValues != nil && len(publicValues) != nf {
		panic(fmt.Sprintf("bp: New: publicValues has %d entries, want %d", len(publicValues), nf))
	}

	pubReduced := make([]fgraph.PublicValue, nf)
	for i := 0; i < nf; i++ {
		if publicValues != nil {
			pubReduced[i] = publicValues[i]
		} else {
			pubReduced[i] = graph.Factors[i].Public
		}
	}

	nv := graph.NVars()
	evidence := make([]dist.Distribution, nv)
	varState := make([]dist.Distribution, nv)
	for i := 0; i < nv; i++ {
		evidence[i] = dist.New(graph.Vars[i].Multi, graph.Nc, rowCount(graph.Vars[i].Multi, nmulti))
		varState[i] = dist.New(graph.Vars[i].Multi, graph.Nc, rowCount(graph.Vars[i].Multi, nmulti))
	}

	ne := graph.NEdges()
	beliefFromVar := make([]dist.Distribution, ne)
	beliefToVar := make([]dist.Distribution, ne)
	for i := 0; i < ne; i++ {
		multi := graph.Vars[graph.Edges[i].Var].Multi
		beliefFromVar[i] = dist.New(multi, graph.Nc, rowCount(multi, nmulti))
		beliefToVar[i] = dist.New(multi, graph.Nc, rowCount(multi, nmulti))
	}

	return &BPState{
		graph:         graph,
		nmulti:        int(nmulti),
		publicValues:  publicValues,
		pubReduced:    pubReduced,
		evidence:      evidence,
		varState:      varState,
		beliefFromVar: beliefFromVar,
		beliefToVar:   beliefToVar,
		cyclic:        graph.IsCyclic(nmulti > 1),
	}
}

func rowCount(multi bool, nmulti uint32) int {
	if !multi {
		return 1
	}
	return int(nmulti)
}

// Graph returns the FactorGraph this state was built over.
func (s *BPState) Graph() *fgraph.FactorGraph { return s.graph }

// IsCyclic reports whether PropagateAcyclic would fail on this graph for
// this instance's Nmulti.
func (s *BPState) IsCyclic() bool { return s.cyclic }

// Nmulti returns the trace count this state was constructed with.
func (s *BPState) Nmulti() int { return s.nmulti }

// SetEvidence installs d as the prior on variable v, replacing whatever was
// there (uniform by default). d's shape must match v's.
func (s *BPState) SetEvidence(v fgraph.VarID, d dist.Distribution) error {
	if err := s.checkVarShape(v, d); err != nil {
		return err
	}
	s.evidence[v] = d
	return nil
}

// DropEvidence resets variable v's prior to uniform.
func (s *BPState) DropEvidence(v fgraph.VarID) {
	s.evidence[v] = s.evidence[v].AsUniform()
}

// GetState returns the current posterior estimate for variable v.
func (s *BPState) GetState(v fgraph.VarID) dist.Distribution { return s.varState[v] }

// SetState overwrites variable v's posterior estimate directly (bypassing
// propagation) — used to seed or inject a known value.
func (s *BPState) SetState(v fgraph.VarID, d dist.Distribution) error {
	if err := s.checkVarShape(v, d); err != nil {
		return err
	}
	s.varState[v] = d
	return nil
}

// DropState resets variable v's posterior estimate to uniform.
func (s *BPState) DropState(v fgraph.VarID) {
	s.varState[v] = s.varState[v].AsUniform()
}

func (s *BPState) checkVarShape(v fgraph.VarID, d dist.Distribution) error {
	multi := s.graph.Vars[v].Multi
	return checkKindErr(dist.CheckKind(d, multi, s.graph.Nc, rowCount(multi, uint32(s.nmulti))))
}

// edgeBetween resolves the EdgeID connecting v and f, or ErrNoEdge.
func (s *BPState) edgeBetween(v fgraph.VarID, f fgraph.FactorID) (fgraph.EdgeID, error) {
	e, ok := s.graph.Vars[v].EdgeOf(f)
	if !ok {
		return 0, fmt.Errorf("%w: var %d, factor %d", ErrNoEdge, v, f)
	}
	return e, nil
}

// GetBeliefToVar returns the current factor->variable message on the edge
// between v and f.
func (s *BPState) GetBeliefToVar(v fgraph.VarID, f fgraph.FactorID) (dist.Distribution, error) {
	e, err := s.edgeBetween(v, f)
	if err != nil {
		return dist.Distribution{}, err
	}
	return s.beliefToVar[e], nil
}

// GetBeliefFromVar returns the current variable->factor message on the edge
// between v and f.
func (s *BPState) GetBeliefFromVar(v fgraph.VarID, f fgraph.FactorID) (dist.Distribution, error) {
	e, err := s.edgeBetween(v, f)
	if err != nil {
		return dist.Distribution{}, err
	}
	return s.beliefFromVar[e], nil
}

// SetBeliefToVar overwrites the factor->variable message on the edge
// between v and f.
func (s *BPState) SetBeliefToVar(v fgraph.VarID, f fgraph.FactorID, d dist.Distribution) error {
	e, err := s.edgeBetween(v, f)
	if err != nil {
		return err
	}
	if err := s.checkVarShape(v, d); err != nil {
		return err
	}
	s.beliefToVar[e] = d
	return nil
}

// SetBeliefFromVar overwrites the variable->factor message on the edge
// between v and f.
func (s *BPState) SetBeliefFromVar(v fgraph.VarID, f fgraph.FactorID, d dist.Distribution) error {
	e, err := s.edgeBetween(v, f)
	if err != nil {
		return err
	}
	if err := s.checkVarShape(v, d); err != nil {
		return err
	}
	s.beliefFromVar[e] = d
	return nil
}
