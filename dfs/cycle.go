package dfs

import "github.com/katalvlaran/ermabp/core"

// DetectCycle reports whether the undirected factor graph contains a cycle
// and, if so, returns one as a closed node sequence [v0, ..., v0].
// A nil graph is treated as cycle-free.
// Complexity: O(V + E).
func DetectCycle(g *core.FactorGraph) (bool, []*core.FgNode) {
	if g == nil {
		return false, nil
	}
	nodes := g.Nodes()
	state := make([]int, len(nodes))
	path := make([]*core.FgNode, 0, len(nodes))

	for _, n := range nodes {
		if state[n.ID()] != White {
			continue
		}
		if cyc := visit(n, nil, state, &path); cyc != nil {
			return true, cyc
		}
	}

	return false, nil
}

// IsAcyclic reports whether g is a forest.
func IsAcyclic(g *core.FactorGraph) bool {
	found, _ := DetectCycle(g)

	return !found
}

// visit explores n, arriving through edge via (nil for roots). The reverse
// incidence of via is skipped; reaching any other Gray node closes a cycle.
func visit(n *core.FgNode, via *core.FgEdge, state []int, path *[]*core.FgNode) []*core.FgNode {
	state[n.ID()] = Gray
	*path = append(*path, n)

	for _, e := range n.OutEdges() {
		if via != nil && e == via.Opposing() {
			continue
		}
		c := e.Child()
		switch state[c.ID()] {
		case White:
			if cyc := visit(c, e, state, path); cyc != nil {
				return cyc
			}
		case Gray:
			return closeCycle(c, *path)
		}
	}

	*path = (*path)[:len(*path)-1]
	state[n.ID()] = Black

	return nil
}

// closeCycle extracts the path segment starting at start and closes it.
func closeCycle(start *core.FgNode, path []*core.FgNode) []*core.FgNode {
	idx := 0
	for i, n := range path {
		if n == start {
			idx = i
			break
		}
	}
	cyc := append([]*core.FgNode(nil), path[idx:]...)

	return append(cyc, start)
}
