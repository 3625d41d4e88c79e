package schedule

import (
	"fmt"

	"github.com/katalvlaran/ermabp/bfs"
	"github.com/katalvlaran/ermabp/core"
	"github.com/katalvlaran/ermabp/dfs"
	"github.com/katalvlaran/ermabp/model"
)

// TreeLike is the two-pass BFS schedule.
type TreeLike struct {
	order []*core.FgEdge
}

// NewTreeLike builds the schedule. Each component is rooted at its first
// global factor node when it has one, so that all of that factor's outgoing
// messages are created after every message into it; otherwise at the
// component's first node.
// Complexity: O(V + E).
func NewTreeLike(g *core.FactorGraph) (*TreeLike, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	labels, roots, err := dfs.Components(g)
	if err != nil {
		return nil, fmt.Errorf("NewTreeLike: %w", err)
	}
	hasGlobal := make([]bool, len(roots))
	for _, n := range g.FactorNodes() {
		k := labels[n.ID()]
		if _, ok := model.AsGlobal(n.Factor()); ok && !hasGlobal[k] {
			roots[k] = n
			hasGlobal[k] = true
		}
	}

	order := make([]*core.FgEdge, 0, g.NumEdges())
	for _, root := range roots {
		res, err := bfs.BFS(g, root)
		if err != nil {
			return nil, fmt.Errorf("NewTreeLike: %w", err)
		}
		tree := res.TreeEdges
		// leaves to root
		for i := len(tree) - 1; i >= 0; i-- {
			order = append(order, tree[i].Opposing())
		}
		// root to leaves
		order = append(order, tree...)
	}

	return &TreeLike{order: order}, nil
}

// Order returns the two-pass order. On a graph with cycles the non-tree
// incidences are not scheduled.
func (t *TreeLike) Order() []*core.FgEdge {
	return append([]*core.FgEdge(nil), t.order...)
}
