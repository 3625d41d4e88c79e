package dfs

import "github.com/katalvlaran/ermabp/core"

// Components labels every node with the index of its connected component.
// Components are numbered in order of their first node (insertion order),
// and reps[k] is that first node of component k.
// Complexity: O(V + E).
func Components(g *core.FactorGraph) (labels []int, reps []*core.FgNode, err error) {
	if g == nil {
		return nil, nil, ErrGraphNil
	}
	nodes := g.Nodes()
	labels = make([]int, len(nodes))
	for i := range labels {
		labels[i] = -1
	}

	stack := make([]*core.FgNode, 0, len(nodes))
	for _, start := range nodes {
		if labels[start.ID()] >= 0 {
			continue
		}
		k := len(reps)
		reps = append(reps, start)
		labels[start.ID()] = k
		stack = append(stack[:0], start)
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, e := range n.OutEdges() {
				if c := e.Child(); labels[c.ID()] < 0 {
					labels[c.ID()] = k
					stack = append(stack, c)
				}
			}
		}
	}

	return labels, reps, nil
}

// ComponentRoots returns the first node of every connected component.
func ComponentRoots(g *core.FactorGraph) ([]*core.FgNode, error) {
	_, reps, err := Components(g)

	return reps, err
}
