// Package bfs provides breadth-first search over a core.FactorGraph,
// returning visit order, depths, and the tree edges in discovery order.
//
// Nodes are explored in increasing distance from a root node, following out
// edges (factor→var and var→factor alike), with optional hooks, depth
// limiting, and edge filtering. The discovery order of tree edges is what
// the tree-like message schedule is built from.
package bfs
