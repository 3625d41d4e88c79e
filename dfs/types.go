// Package dfs implements depth-first structure queries over a
// core.FactorGraph: connected components and undirected cycle detection.
//
// A factor graph is treated as an undirected bipartite graph whose edges are
// the (factor, variable) incidences; the two directed FgEdges of one
// incidence count as a single undirected edge.
package dfs

import "errors"

// Node visitation states.
const (
	White = iota // not visited yet
	Gray         // on the recursion stack
	Black        // fully explored
)

// ErrGraphNil is returned when a nil *core.FactorGraph is passed.
var ErrGraphNil = errors.New("dfs: graph is nil")
