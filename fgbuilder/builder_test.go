package fgbuilder_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/scalib-bp/fgbuilder"
	"github.com/katalvlaran/scalib-bp/fgraph"
)

func TestBuilderSimpleXor(t *testing.T) {
	b := fgbuilder.New(256)
	x0, err := b.AddVar("x0", false)
	require.NoError(t, err)
	x1, err := b.AddVar("x1", false)
	require.NoError(t, err)
	x2, err := b.AddVar("x2", false)
	require.NoError(t, err)

	_, err = b.AddXor("f0", x0, []fgraph.VarID{x1, x2}, fgraph.NewPublicSingle(0))
	require.NoError(t, err)

	g, err := b.Build()
	require.NoError(t, err)
	require.Equal(t, 3, g.NVars())
	require.Equal(t, 1, g.NFactors())
	require.Equal(t, 3, g.NEdges())

	id, err := g.VarByName("x1")
	require.NoError(t, err)
	require.Equal(t, x1, id)
}

func TestBuilderDuplicateVar(t *testing.T) {
	b := fgbuilder.New(256)
	_, err := b.AddVar("x", false)
	require.NoError(t, err)
	_, err = b.AddVar("x", false)
	require.ErrorIs(t, err, fgbuilder.ErrDuplicateVar)

	_, err = b.Build()
	require.ErrorIs(t, err, fgbuilder.ErrDuplicateVar)
}

func TestBuilderUnknownVar(t *testing.T) {
	b := fgbuilder.New(256)
	x0, err := b.AddVar("x0", false)
	require.NoError(t, err)
	_, err = b.AddXor("f0", x0, []fgraph.VarID{99}, fgraph.NewPublicSingle(0))
	require.ErrorIs(t, err, fgbuilder.ErrUnknownVar)
}

func TestBuilderMixedMulti(t *testing.T) {
	b := fgbuilder.New(256)
	x0, err := b.AddVar("x0", true)
	require.NoError(t, err)
	x1, err := b.AddVar("x1", false)
	require.NoError(t, err)
	_, err = b.AddXor("f0", x0, []fgraph.VarID{x1}, fgraph.NewPublicSingle(0))
	require.ErrorIs(t, err, fgbuilder.ErrMixedMulti)
}

func TestBuildXorChainAcyclic(t *testing.T) {
	g, err := fgbuilder.BuildXorChain(256, 5, false, fgraph.NewPublicSingle(0))
	require.NoError(t, err)
	require.Equal(t, 5, g.NVars())
	require.Equal(t, 4, g.NFactors())
	require.False(t, g.IsCyclic(false))
}

func TestBuildXorCycleCyclic(t *testing.T) {
	g, err := fgbuilder.BuildXorCycle(256, 5, false, fgraph.NewPublicSingle(0))
	require.NoError(t, err)
	require.Equal(t, 5, g.NVars())
	require.Equal(t, 5, g.NFactors())
	require.True(t, g.IsCyclic(false))
}

func TestBuildXorChainTooShort(t *testing.T) {
	_, err := fgbuilder.BuildXorChain(256, 1, false, fgraph.NewPublicSingle(0))
	require.Error(t, err)
}
