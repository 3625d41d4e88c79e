// Package core defines the bipartite FactorGraph and its FgNode and FgEdge
// types.
//
// A FactorGraph holds variable nodes and factor nodes. Adding a factor adds
// its variables (idempotently) and, for every variable of the factor, a pair
// of directed edges factor→var and var→factor that reference each other as
// opposing edges. Every edge carries a stable integer ID in [0, NumEdges())
// so that inference engines can keep per-edge state in flat slices.
//
// Mutation is guarded by a sync.RWMutex. The graph is meant to be built
// once and then shared read-only by any number of concurrent inference runs.
//
// Errors:
//
//	ErrNilVar      - a nil variable was added.
//	ErrNilFactor   - a nil factor was added.
//	ErrVarNotFound - a lookup referenced a variable absent from the graph.
package core
