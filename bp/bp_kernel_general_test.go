package bp_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/scalib-bp/bp"
	"github.com/katalvlaran/scalib-bp/fgbuilder"
	"github.com/katalvlaran/scalib-bp/fgraph"
)

// A 3-edge (result + 2 operands) AND factor forces the general Cumt/Opandt
// path rather than the 2-edge AndCst/InvAndCst fast path, directly
// exercising the destination-role inverse-transform dispatch
// (Cumti for the result, Opandt for an operand).
func TestGenAndMultiOperandForward(t *testing.T) {
	b := fgbuilder.New(4)
	x, err := b.AddVar("x", false)
	require.NoError(t, err)
	y, err := b.AddVar("y", false)
	require.NoError(t, err)
	z, err := b.AddVar("z", false)
	require.NoError(t, err)
	// pub=3 (all bits set, nc=4) is the AND identity, so z = x & y.
	_, err = b.AddAnd("f", z, []fgraph.VarID{x, y}, nil, fgraph.NewPublicSingle(3))
	require.NoError(t, err)
	g, err := b.Build()
	require.NoError(t, err)

	s := bp.New(g, 1, nil)
	require.NoError(t, s.SetEvidence(x, dirac(t, 4, 3))) // 11
	require.NoError(t, s.SetEvidence(y, dirac(t, 4, 2))) // 10
	require.NoError(t, s.PropagateAcyclic(z, false, false))
	requireDirac(t, s.GetState(z), 4, 2) // 11 & 10 = 10
}

func TestGenAndMultiOperandReverse(t *testing.T) {
	b := fgbuilder.New(4)
	x, err := b.AddVar("x", false)
	require.NoError(t, err)
	y, err := b.AddVar("y", false)
	require.NoError(t, err)
	z, err := b.AddVar("z", false)
	require.NoError(t, err)
	_, err = b.AddAnd("f", z, []fgraph.VarID{x, y}, nil, fgraph.NewPublicSingle(3))
	require.NoError(t, err)
	g, err := b.Build()
	require.NoError(t, err)

	fx, err := g.FactorByName("f")
	require.NoError(t, err)

	s := bp.New(g, 1, nil)
	// y = 3 (all bits set) is neutral for AND, so x & y & pub = x, and
	// evidence z = Dirac(1) pins x to exactly 1.
	require.NoError(t, s.SetEvidence(y, dirac(t, 4, 3)))
	require.NoError(t, s.SetEvidence(z, dirac(t, 4, 1)))
	s.PropagateVar(y, false)
	s.PropagateVar(z, false)
	s.PropagateFactorAll(fx)

	msg, err := s.GetBeliefToVar(x, fx)
	require.NoError(t, err)
	requireDirac(t, msg, 4, 1)
}

// A 3-input ADD factor (result + 2 operands, besides the public constant)
// exercises the general FFT-based kernel for both the sum and an operand
// destination.
func TestGenAddThreeOperandsForward(t *testing.T) {
	b := fgbuilder.New(8)
	a, err := b.AddVar("a", false)
	require.NoError(t, err)
	bb, err := b.AddVar("b", false)
	require.NoError(t, err)
	c, err := b.AddVar("c", false)
	require.NoError(t, err)
	sum, err := b.AddVar("sum", false)
	require.NoError(t, err)
	_, err = b.AddAdd("f", sum, []fgraph.VarID{a, bb, c}, fgraph.NewPublicSingle(1))
	require.NoError(t, err)
	g, err := b.Build()
	require.NoError(t, err)

	s := bp.New(g, 1, nil)
	require.NoError(t, s.SetEvidence(a, dirac(t, 8, 2)))
	require.NoError(t, s.SetEvidence(bb, dirac(t, 8, 3)))
	require.NoError(t, s.SetEvidence(c, dirac(t, 8, 5)))
	require.NoError(t, s.PropagateAcyclic(sum, false, false))
	requireDirac(t, s.GetState(sum), 8, (2+3+5+1)%8)
}

func TestGenAddThreeOperandsReverse(t *testing.T) {
	b := fgbuilder.New(8)
	a, err := b.AddVar("a", false)
	require.NoError(t, err)
	bb, err := b.AddVar("b", false)
	require.NoError(t, err)
	c, err := b.AddVar("c", false)
	require.NoError(t, err)
	sum, err := b.AddVar("sum", false)
	require.NoError(t, err)
	_, err = b.AddAdd("f", sum, []fgraph.VarID{a, bb, c}, fgraph.NewPublicSingle(1))
	require.NoError(t, err)
	g, err := b.Build()
	require.NoError(t, err)

	fx, err := g.FactorByName("f")
	require.NoError(t, err)

	s := bp.New(g, 1, nil)
	require.NoError(t, s.SetEvidence(a, dirac(t, 8, 2)))
	require.NoError(t, s.SetEvidence(bb, dirac(t, 8, 3)))
	require.NoError(t, s.SetEvidence(sum, dirac(t, 8, (2+3+5+1)%8)))
	s.PropagateVar(a, false)
	s.PropagateVar(bb, false)
	s.PropagateVar(sum, false)
	s.PropagateFactorAll(fx)

	msg, err := s.GetBeliefToVar(c, fx)
	require.NoError(t, err)
	requireDirac(t, msg, 8, 5)
}
