package bp_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/scalib-bp/bp"
	"github.com/katalvlaran/scalib-bp/dist"
	"github.com/katalvlaran/scalib-bp/fgbuilder"
	"github.com/katalvlaran/scalib-bp/fgraph"
)

func dirac(t *testing.T, nc int, c int) dist.Distribution {
	t.Helper()
	row := make([]float64, nc)
	row[c] = 1
	d, err := dist.FromSliceSingle(row, nc)
	require.NoError(t, err)
	return d
}

func requireDirac(t *testing.T, d dist.Distribution, nc, c int) {
	t.Helper()
	require.Equal(t, nc, d.Nc())
	row := d.Row(0)
	for i, v := range row {
		if i == c {
			require.InDelta(t, 1.0, v, 1e-9)
		} else {
			require.InDelta(t, 0.0, v, 1e-9)
		}
	}
}

// S1 — single XOR, known operand.
func TestScenarioS1XorKnownOperands(t *testing.T) {
	b := fgbuilder.New(4)
	x, err := b.AddVar("x", false)
	require.NoError(t, err)
	y, err := b.AddVar("y", false)
	require.NoError(t, err)
	z, err := b.AddVar("z", false)
	require.NoError(t, err)
	_, err = b.AddXor("f", z, []fgraph.VarID{x, y}, fgraph.NewPublicSingle(0))
	require.NoError(t, err)
	g, err := b.Build()
	require.NoError(t, err)

	s := bp.New(g, 1, nil)
	require.NoError(t, s.SetEvidence(x, dirac(t, 4, 1)))
	require.NoError(t, s.SetEvidence(y, dirac(t, 4, 2)))

	require.NoError(t, s.PropagateAcyclic(z, false, false))
	requireDirac(t, s.GetState(z), 4, 3)
}

// S2 — AND with constant.
func TestScenarioS2AndWithConstant(t *testing.T) {
	build := func(t *testing.T) (*fgraph.FactorGraph, fgraph.VarID, fgraph.VarID) {
		b := fgbuilder.New(4)
		x, err := b.AddVar("x", false)
		require.NoError(t, err)
		z, err := b.AddVar("z", false)
		require.NoError(t, err)
		_, err = b.AddAnd("f", z, []fgraph.VarID{x}, nil, fgraph.NewPublicSingle(3))
		require.NoError(t, err)
		g, err := b.Build()
		require.NoError(t, err)
		return g, x, z
	}

	t.Run("uniform", func(t *testing.T) {
		g, x, z := build(t)
		s := bp.New(g, 1, nil)
		_ = x
		require.NoError(t, s.PropagateAcyclic(z, false, false))
		row := s.GetState(z).Row(0)
		for _, v := range row {
			require.InDelta(t, 0.25, v, 1e-9)
		}
	})

	t.Run("dirac2", func(t *testing.T) {
		g, x, z := build(t)
		s := bp.New(g, 1, nil)
		require.NoError(t, s.SetEvidence(x, dirac(t, 4, 2)))
		require.NoError(t, s.PropagateAcyclic(z, false, false))
		requireDirac(t, s.GetState(z), 4, 2)
	})

	t.Run("dirac0", func(t *testing.T) {
		g, x, z := build(t)
		s := bp.New(g, 1, nil)
		require.NoError(t, s.SetEvidence(x, dirac(t, 4, 0)))
		require.NoError(t, s.PropagateAcyclic(z, false, false))
		requireDirac(t, s.GetState(z), 4, 0)
	})
}

// S3 — ADD with public subtraction: c = a + b - 5 mod 8.
func TestScenarioS3AddPublicSubtraction(t *testing.T) {
	b := fgbuilder.New(8)
	a, err := b.AddVar("a", false)
	require.NoError(t, err)
	bb, err := b.AddVar("b", false)
	require.NoError(t, err)
	c, err := b.AddVar("c", false)
	require.NoError(t, err)
	// a + b = c + 5  <=>  c = a + b - 5 (mod 8)  <=>  a + b + (-5 mod 8) = c
	_, err = b.AddAdd("f", c, []fgraph.VarID{a, bb}, fgraph.NewPublicSingle(fgraph.ClassVal((8 - 5) % 8)))
	require.NoError(t, err)
	g, err := b.Build()
	require.NoError(t, err)

	s := bp.New(g, 1, nil)
	require.NoError(t, s.SetEvidence(a, dirac(t, 8, 3)))
	require.NoError(t, s.SetEvidence(bb, dirac(t, 8, 4)))
	require.NoError(t, s.PropagateAcyclic(c, false, false))
	requireDirac(t, s.GetState(c), 8, 2)
}

// S4 — LOOKUP.
func TestScenarioS4Lookup(t *testing.T) {
	b := fgbuilder.New(4)
	x, err := b.AddVar("x", false)
	require.NoError(t, err)
	y, err := b.AddVar("y", false)
	require.NoError(t, err)
	tbl, err := b.AddTable("T", []fgraph.ClassVal{2, 0, 3, 1})
	require.NoError(t, err)
	_, err = b.AddLookup("f", y, x, tbl)
	require.NoError(t, err)
	g, err := b.Build()
	require.NoError(t, err)

	s := bp.New(g, 1, nil)
	xBelief, err := dist.FromSliceSingle([]float64{0.5, 0.5, 0, 0}, 4)
	require.NoError(t, err)
	require.NoError(t, s.SetEvidence(x, xBelief))
	require.NoError(t, s.PropagateAcyclic(y, false, false))
	require.Equal(t, []float64{0.5, 0, 0.5, 0}, s.GetState(y).Row(0))
}

// S5 — loopy on a 4-cycle of XOR factors.
func TestScenarioS5LoopyFourCycle(t *testing.T) {
	b := fgbuilder.New(4)
	v := make([]fgraph.VarID, 4)
	for i := range v {
		id, err := b.AddVar(string(rune('a'+i)), false)
		require.NoError(t, err)
		v[i] = id
	}
	for i := 0; i < 4; i++ {
		next := (i + 1) % 4
		_, err := b.AddXor(string(rune('A'+i)), v[next], []fgraph.VarID{v[i]}, fgraph.NewPublicSingle(0))
		require.NoError(t, err)
	}
	g, err := b.Build()
	require.NoError(t, err)
	require.True(t, g.IsCyclic(false))

	s := bp.New(g, 1, nil)
	require.NoError(t, s.SetEvidence(v[0], dirac(t, 4, 1)))

	prev := make([][]float64, 4)
	for i := range v {
		st := s.GetState(v[i])
		st.EnsureFull() // states start as the uniform sentinel
		prev[i] = append([]float64(nil), st.Row(0)...)
	}

	var maxDelta float64
	for iter := 0; iter < 20; iter++ {
		s.PropagateLoopyStep(1, false)
		maxDelta = 0
		for i := range v {
			st := s.GetState(v[i])
			st.EnsureFull()
			row := st.Row(0)
			for k, val := range row {
				d := val - prev[i][k]
				if d < 0 {
					d = -d
				}
				if d > maxDelta {
					maxDelta = d
				}
			}
			prev[i] = append([]float64(nil), row...)
		}
	}
	require.Less(t, maxDelta, 1e-6)
}

// S6 — multi/PARA trace independence.
func TestScenarioS6MultiMatchesIndependentSingleRuns(t *testing.T) {
	buildMulti := func(t *testing.T) (*fgraph.FactorGraph, fgraph.VarID, fgraph.VarID, fgraph.VarID) {
		b := fgbuilder.New(4)
		x, err := b.AddVar("x", true)
		require.NoError(t, err)
		y, err := b.AddVar("y", true)
		require.NoError(t, err)
		z, err := b.AddVar("z", true)
		require.NoError(t, err)
		_, err = b.AddXor("f", z, []fgraph.VarID{x, y}, fgraph.NewPublicSingle(0))
		require.NoError(t, err)
		g, err := b.Build()
		require.NoError(t, err)
		return g, x, y, z
	}

	xVals := []int{1, 3, 0}
	yVals := []int{2, 2, 1}

	g, x, y, z := buildMulti(t)
	s := bp.New(g, 3, nil)

	xRows := make([][]float64, 3)
	yRows := make([][]float64, 3)
	for r := 0; r < 3; r++ {
		xRows[r] = make([]float64, 4)
		xRows[r][xVals[r]] = 1
		yRows[r] = make([]float64, 4)
		yRows[r][yVals[r]] = 1
	}
	xd, err := dist.FromArrayMulti(xRows, 4, 3)
	require.NoError(t, err)
	yd, err := dist.FromArrayMulti(yRows, 4, 3)
	require.NoError(t, err)
	require.NoError(t, s.SetEvidence(x, xd))
	require.NoError(t, s.SetEvidence(y, yd))
	require.NoError(t, s.PropagateAcyclic(z, false, false))
	zMulti := s.GetState(z)

	for r := 0; r < 3; r++ {
		gs, xs, ys, zs := func() (*fgraph.FactorGraph, fgraph.VarID, fgraph.VarID, fgraph.VarID) {
			b := fgbuilder.New(4)
			x, err := b.AddVar("x", false)
			require.NoError(t, err)
			y, err := b.AddVar("y", false)
			require.NoError(t, err)
			z, err := b.AddVar("z", false)
			require.NoError(t, err)
			_, err = b.AddXor("f", z, []fgraph.VarID{x, y}, fgraph.NewPublicSingle(0))
			require.NoError(t, err)
			g, err := b.Build()
			require.NoError(t, err)
			return g, x, y, z
		}()
		ss := bp.New(gs, 1, nil)
		require.NoError(t, ss.SetEvidence(xs, dirac(t, 4, xVals[r])))
		require.NoError(t, ss.SetEvidence(ys, dirac(t, 4, yVals[r])))
		require.NoError(t, ss.PropagateAcyclic(zs, false, false))
		require.Equal(t, ss.GetState(zs).Row(0), zMulti.Row(r))
	}
}
