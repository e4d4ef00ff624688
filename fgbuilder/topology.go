package fgbuilder

import (
	"fmt"

	"github.com/katalvlaran/scalib-bp/fgraph"
)

// File-local constants; stable method tags for error context.
const (
	methodXorChain = "BuildXorChain"
	methodXorCycle = "BuildXorCycle"
	minChainVars   = 2
	minCycleVars   = 3
)

// BuildXorChain builds n variables x0..x(n-1) and n-1 binary XOR factors
// f0..f(n-2) with fi: x(i+1) = xi ^ pub, forming a simple acyclic chain.
// Variables are multi (per-trace) when multi is true. Deterministic IDs:
// variable i is named "x{i}", factor i is named "f{i}", matching the
// teacher's idFn-driven deterministic ID emission.
func BuildXorChain(nc, n int, multi bool, pub fgraph.PublicValue) (*fgraph.FactorGraph, error) {
	if n < minChainVars {
		return nil, fmt.Errorf("%s: n=%d < min=%d: %w", methodXorChain, n, minChainVars, ErrEmptyScope)
	}
	b := New(nc)
	ids := make([]fgraph.VarID, n)
	for i := 0; i < n; i++ {
		id, err := b.AddVar(fmt.Sprintf("x%d", i), multi)
		if err != nil {
			return nil, fmt.Errorf("%s: AddVar(x%d): %w", methodXorChain, i, err)
		}
		ids[i] = id
	}
	for i := 0; i < n-1; i++ {
		name := fmt.Sprintf("f%d", i)
		if _, err := b.AddXor(name, ids[i+1], []fgraph.VarID{ids[i]}, pub); err != nil {
			return nil, fmt.Errorf("%s: AddXor(%s): %w", methodXorChain, name, err)
		}
	}
	return b.Build()
}

// BuildXorCycle builds n variables x0..x(n-1) and n binary XOR factors
// f0..f(n-1) with fi: x((i+1)%n) = xi ^ pub, closing the chain into a ring.
// The resulting graph is cyclic (IsCyclic(false) == true) and is the
// canonical fixture for exercising loopy belief propagation.
func BuildXorCycle(nc, n int, multi bool, pub fgraph.PublicValue) (*fgraph.FactorGraph, error) {
	if n < minCycleVars {
		return nil, fmt.Errorf("%s: n=%d < min=%d: %w", methodXorCycle, n, minCycleVars, ErrEmptyScope)
	}
	b := New(nc)
	ids := make([]fgraph.VarID, n)
	for i := 0; i < n; i++ {
		id, err := b.AddVar(fmt.Sprintf("x%d", i), multi)
		if err != nil {
			return nil, fmt.Errorf("%s: AddVar(x%d): %w", methodXorCycle, i, err)
		}
		ids[i] = id
	}
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("f%d", i)
		if _, err := b.AddXor(name, ids[(i+1)%n], []fgraph.VarID{ids[i]}, pub); err != nil {
			return nil, fmt.Errorf("%s: AddXor(%s): %w", methodXorCycle, name, err)
		}
	}
	return b.Build()
}
