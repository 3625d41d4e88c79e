package bfs_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ermabp/bfs"
	"github.com/katalvlaran/ermabp/core"
	"github.com/katalvlaran/ermabp/model"
)

// chain builds x0 - f01 - x1 - f12 - x2 with a unary factor on x0.
// Node IDs: x0=0 f0=1 x1=2 f01=3 x2=4 f12=5.
func chain(t *testing.T) *core.FactorGraph {
	t.Helper()
	vars := make([]*model.Var, 3)
	for i := range vars {
		v, err := model.NewVar(model.Predicted, 2, "x"+string(rune('0'+i)), nil)
		require.NoError(t, err)
		vars[i] = v
	}
	g := core.NewFactorGraph()
	for _, vs := range []*model.VarSet{
		model.NewVarSet(vars[0]),
		model.NewVarSet(vars[0], vars[1]),
		model.NewVarSet(vars[1], vars[2]),
	} {
		_, err := g.AddFactor(model.NewExplicitFactor(vs))
		require.NoError(t, err)
	}

	return g
}

func nodeIDs(ns []*core.FgNode) []int {
	out := make([]int, len(ns))
	for i, n := range ns {
		out[i] = n.ID()
	}

	return out
}

func edgeIDs(es []*core.FgEdge) []int {
	out := make([]int, len(es))
	for i, e := range es {
		out[i] = e.ID()
	}

	return out
}

func TestBFSOrderAndTree(t *testing.T) {
	g := chain(t)
	res, err := bfs.BFS(g, g.VarNode(0))
	require.NoError(t, err)

	require.Equal(t, []int{0, 1, 3, 2, 5, 4}, nodeIDs(res.Order))
	require.Equal(t, []int{1, 3, 4, 7, 8}, edgeIDs(res.TreeEdges))
	require.Equal(t, []int{0, 1, 2, 1, 4, 3}, res.Depth)

	path, err := res.PathTo(g.VarNode(2))
	require.NoError(t, err)
	require.Equal(t, []int{3, 4, 7, 8}, edgeIDs(path))
}

func TestBFSMaxDepthAndFilter(t *testing.T) {
	g := chain(t)
	res, err := bfs.BFS(g, g.VarNode(0), bfs.WithMaxDepth(2))
	require.NoError(t, err)
	require.Len(t, res.Order, 4)
	require.False(t, res.Reached(g.VarNode(2)))
	_, err = res.PathTo(g.VarNode(2))
	require.Error(t, err)

	// never cross into the pairwise factor f01
	res, err = bfs.BFS(g, g.VarNode(0), bfs.WithFilterEdge(func(e *core.FgEdge) bool {
		return e.Child() != g.FactorNode(1)
	}))
	require.NoError(t, err)
	require.Equal(t, []int{0, 1}, nodeIDs(res.Order))
}

func TestBFSHooks(t *testing.T) {
	g := chain(t)
	var enq []int
	stop := errors.New("stop")
	_, err := bfs.BFS(g, g.VarNode(0),
		bfs.WithOnEnqueue(func(n *core.FgNode, _ int) { enq = append(enq, n.ID()) }),
		bfs.WithOnVisit(func(n *core.FgNode, depth int) error {
			if depth == 2 {
				return stop
			}
			return nil
		}),
	)
	require.True(t, errors.Is(err, stop))
	require.Equal(t, []int{0, 1, 3, 2}, enq)
}

func TestBFSErrors(t *testing.T) {
	g := chain(t)
	_, err := bfs.BFS(nil, nil)
	require.True(t, errors.Is(err, bfs.ErrGraphNil))
	_, err = bfs.BFS(g, nil)
	require.True(t, errors.Is(err, bfs.ErrRootNotFound))
	_, err = bfs.BFS(g, chain(t).VarNode(0))
	require.True(t, errors.Is(err, bfs.ErrRootNotFound))
	_, err = bfs.BFS(g, g.VarNode(0), bfs.WithMaxDepth(-1))
	require.True(t, errors.Is(err, bfs.ErrOptionViolation))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = bfs.BFS(g, g.VarNode(0), bfs.WithContext(ctx))
	require.True(t, errors.Is(err, context.Canceled))
}
