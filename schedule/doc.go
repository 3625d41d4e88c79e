// Package schedule produces the edge orders used for belief propagation
// message updates over a core.FactorGraph.
//
//	TreeLike  per connected component, a BFS two-pass order: leaves to root,
//	          then root to leaves. Exact for acyclic graphs in one sweep.
//	Random    a uniformly shuffled order, reshuffled on every call.
//	Parallel  every edge in ID order (synchronous updates).
//
// Edges leaving a node with exactly one out edge carry constant messages:
// they never depend on other messages. Partition splits an order into those
// constant edges and the iterated remainder.
package schedule
