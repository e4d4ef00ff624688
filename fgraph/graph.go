package fgraph

import "fmt"

// FactorGraph is the static description of a SASCA belief-propagation
// problem: a bipartite graph of variables and factors over a finite domain
// of cardinality Nc, plus the lookup tables referenced by KindLOOKUP
// factors.
//
// FactorGraph is immutable once built. bp.BPState only reads from it.
type FactorGraph struct {
	// Nc is the domain cardinality; every Var ranges over {0, ..., Nc-1}.
	Nc int

	Vars    []Var
	Factors []Factor
	Edges   []Edge
	Tables  []Table

	varIndex    map[string]VarID
	factorIndex map[string]FactorID
}

// New assembles a FactorGraph from its raw parts and builds the name
// indices consulted by VarByName and FactorByName. It is the only way to
// populate those indices; struct literals (as used directly by tests that
// don't need name lookup) leave them nil.
func New(nc int, vars []Var, factors []Factor, edges []Edge, tables []Table) *FactorGraph {
	g := &FactorGraph{
		Nc:          nc,
		Vars:        vars,
		Factors:     factors,
		Edges:       edges,
		Tables:      tables,
		varIndex:    make(map[string]VarID, len(vars)),
		factorIndex: make(map[string]FactorID, len(factors)),
	}
	for i, v := range vars {
		g.varIndex[v.Name] = VarID(i)
	}
	for i, f := range factors {
		g.factorIndex[f.Name] = FactorID(i)
	}
	return g
}

// VarByName resolves a variable by name.
func (g *FactorGraph) VarByName(name string) (VarID, error) {
	id, ok := g.varIndex[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownVar, name)
	}
	return id, nil
}

// FactorByName resolves a factor by name.
func (g *FactorGraph) FactorByName(name string) (FactorID, error) {
	id, ok := g.factorIndex[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownFactor, name)
	}
	return id, nil
}

// VarNames returns the names of every variable, in VarID order.
func (g *FactorGraph) VarNames() []string {
	names := make([]string, len(g.Vars))
	for i, v := range g.Vars {
		names[i] = v.Name
	}
	return names
}

// FactorNames returns the names of every factor, in FactorID order.
func (g *FactorGraph) FactorNames() []string {
	names := make([]string, len(g.Factors))
	for i, f := range g.Factors {
		names[i] = f.Name
	}
	return names
}

// FactorScope returns the variable ids in a factor's edge order; index 0 is
// the result variable when the factor HasRes.
func (g *FactorGraph) FactorScope(f FactorID) []VarID {
	fac := &g.Factors[f]
	scope := make([]VarID, len(fac.Edges))
	for i, r := range fac.Edges {
		scope[i] = r.Var
	}
	return scope
}

// NVars returns the number of variables in the graph.
func (g *FactorGraph) NVars() int { return len(g.Vars) }

// NFactors returns the number of factors in the graph.
func (g *FactorGraph) NFactors() int { return len(g.Factors) }

// NEdges returns the number of edges in the graph.
func (g *FactorGraph) NEdges() int { return len(g.Edges) }

// SanityCheck verifies that a concrete assignment (one ClassVal per
// variable) satisfies every factor's constraint, using each factor's own
// Public value (and, for PublicMulti, trace 0). It is intended for tests
// and for validating hand-built graphs, not for use on the BP hot path.
func (g *FactorGraph) SanityCheck(assignment []ClassVal, _ []PublicValue) error {
	nc := ClassVal(g.Nc)
	for fid := range g.Factors {
		f := &g.Factors[fid]
		scope := make([]ClassVal, len(f.Edges))
		for i, r := range f.Edges {
			scope[i] = assignment[r.Var]
		}
		pub := f.Public.At(0)
		ok, err := checkFactor(f, scope, pub, nc, g.Tables)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: factor %q", ErrSanityCheck, f.Name)
		}
	}
	return nil
}

func checkFactor(f *Factor, scope []ClassVal, pub ClassVal, nc ClassVal, tables []Table) (bool, error) {
	switch f.Kind {
	case KindXOR, KindNOT:
		acc := pub
		if f.Kind == KindNOT {
			acc = nc - 1
		}
		for _, v := range scope {
			acc ^= v
		}
		return acc == 0, nil
	case KindADD:
		var acc int
		acc = int(pub)
		for i, v := range scope {
			if i == 0 {
				acc -= int(v)
			} else {
				acc += int(v)
			}
		}
		acc %= int(nc)
		if acc < 0 {
			acc += int(nc)
		}
		return acc == 0, nil
	case KindMUL:
		acc := int(pub)
		if acc == 0 {
			acc = 1
		}
		res := int(scope[0])
		prod := 1
		for i := 1; i < len(scope); i++ {
			prod = (prod * int(scope[i])) % int(nc)
		}
		prod = (prod * acc) % int(nc)
		return res == prod, nil
	case KindAND:
		negate := func(i int, v int) int {
			if i < len(f.VarsNeg) && f.VarsNeg[i] {
				return int(nc) - 1 - v
			}
			return v
		}
		res := negate(0, int(scope[0]))
		acc := int(pub)
		for i := 1; i < len(scope); i++ {
			acc &= negate(i, int(scope[i]))
		}
		return res == acc, nil
	case KindLOOKUP:
		if f.Table < 0 || f.Table >= len(tables) {
			return false, fmt.Errorf("fgraph: factor %q references unknown table %d", f.Name, f.Table)
		}
		t := tables[f.Table]
		return t.Values[scope[1]] == scope[0], nil
	default:
		return false, fmt.Errorf("fgraph: unknown factor kind %v", f.Kind)
	}
}
