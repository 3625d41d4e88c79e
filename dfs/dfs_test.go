package dfs_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ermabp/core"
	"github.com/katalvlaran/ermabp/dfs"
	"github.com/katalvlaran/ermabp/model"
)

func vars(t *testing.T, n int) []*model.Var {
	t.Helper()
	out := make([]*model.Var, n)
	for i := range out {
		v, err := model.NewVar(model.Predicted, 2, fmt.Sprintf("v%d", i), nil)
		require.NoError(t, err)
		out[i] = v
	}

	return out
}

func addFactors(t *testing.T, g *core.FactorGraph, sets ...[]*model.Var) {
	t.Helper()
	for _, s := range sets {
		_, err := g.AddFactor(model.NewExplicitFactor(model.NewVarSet(s...)))
		require.NoError(t, err)
	}
}

func TestComponents(t *testing.T) {
	v := vars(t, 5)
	g := core.NewFactorGraph()
	addFactors(t, g, []*model.Var{v[0], v[1]}, []*model.Var{v[2]}, []*model.Var{v[1], v[3]})
	_, err := g.AddVar(v[4])
	require.NoError(t, err)

	labels, reps, err := dfs.Components(g)
	require.NoError(t, err)
	require.Len(t, reps, 3)
	require.Same(t, g.VarNode(0), reps[0])
	require.Equal(t, labels[g.VarNode(0).ID()], labels[g.VarNode(3).ID()])
	require.NotEqual(t, labels[g.VarNode(0).ID()], labels[g.VarNode(2).ID()])
	require.Equal(t, 2, labels[g.VarNode(4).ID()])

	_, _, err = dfs.Components(nil)
	require.ErrorIs(t, err, dfs.ErrGraphNil)
}

func TestTreeIsAcyclic(t *testing.T) {
	v := vars(t, 4)
	g := core.NewFactorGraph()
	addFactors(t, g,
		[]*model.Var{v[0]}, []*model.Var{v[0], v[1]}, []*model.Var{v[1], v[2]},
		[]*model.Var{v[1], v[3]}, []*model.Var{v[3]})
	require.True(t, dfs.IsAcyclic(g))
	found, cyc := dfs.DetectCycle(g)
	require.False(t, found)
	require.Nil(t, cyc)
}

func TestLoopDetected(t *testing.T) {
	v := vars(t, 3)
	g := core.NewFactorGraph()
	addFactors(t, g, []*model.Var{v[0], v[1]}, []*model.Var{v[1], v[2]}, []*model.Var{v[2], v[0]})
	found, cyc := dfs.DetectCycle(g)
	require.True(t, found)
	// three vars and three factors, closed
	require.Len(t, cyc, 7)
	require.Same(t, cyc[0], cyc[len(cyc)-1])
}

func TestTwoFactorsSharingTwoVarsIsALoop(t *testing.T) {
	v := vars(t, 2)
	g := core.NewFactorGraph()
	addFactors(t, g, []*model.Var{v[0], v[1]}, []*model.Var{v[0], v[1]})
	require.False(t, dfs.IsAcyclic(g))
}
