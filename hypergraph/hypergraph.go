package hypergraph

import (
	"errors"
	"fmt"
)

// NoWeight marks a hyperedge whose weight is the algebra's One.
const NoWeight = -1

var (
	// ErrNodeRange indicates a node index outside [0, NumNodes).
	ErrNodeRange = errors.New("hypergraph: node out of range")

	// ErrWeightRange indicates a weight index outside [0, NumWeights) other than NoWeight.
	ErrWeightRange = errors.New("hypergraph: weight index out of range")

	// ErrOrder indicates an edge that breaks topological numbering: a tail not
	// before its head, or a head smaller than a previously added head.
	ErrOrder = errors.New("hypergraph: edge violates topological order")

	// ErrLength indicates a value slice of the wrong length.
	ErrLength = errors.New("hypergraph: slice length mismatch")
)

// Hyperedge joins tails into head with the weight at index Weight.
type Hyperedge struct {
	Head   int
	Tails  []int
	Weight int
}

// Hypergraph is an immutable-after-construction B-hypergraph.
type Hypergraph struct {
	numNodes   int
	numWeights int
	edges      []Hyperedge
}

// New allocates a hypergraph with numNodes nodes and numWeights weights.
func New(numNodes, numWeights int) *Hypergraph {
	return &Hypergraph{numNodes: numNodes, numWeights: numWeights}
}

// AddEdge appends the hyperedge head ← tails with the given weight index.
func (h *Hypergraph) AddEdge(head int, tails []int, weight int) error {
	if head < 0 || head >= h.numNodes {
		return fmt.Errorf("AddEdge: head %d: %w", head, ErrNodeRange)
	}
	if weight != NoWeight && (weight < 0 || weight >= h.numWeights) {
		return fmt.Errorf("AddEdge: weight %d: %w", weight, ErrWeightRange)
	}
	if k := len(h.edges); k > 0 && h.edges[k-1].Head > head {
		return fmt.Errorf("AddEdge: head %d after %d: %w", head, h.edges[k-1].Head, ErrOrder)
	}
	for _, t := range tails {
		if t < 0 || t >= head {
			return fmt.Errorf("AddEdge: tail %d of head %d: %w", t, head, ErrOrder)
		}
	}
	h.edges = append(h.edges, Hyperedge{Head: head, Tails: append([]int(nil), tails...), Weight: weight})

	return nil
}

func (h *Hypergraph) NumNodes() int   { return h.numNodes }
func (h *Hypergraph) NumWeights() int { return h.numWeights }
func (h *Hypergraph) NumEdges() int   { return len(h.edges) }

// Root is the last node.
func (h *Hypergraph) Root() int { return h.numNodes - 1 }

// Edges returns the hyperedges in insertion order. The slice must not be modified.
func (h *Hypergraph) Edges() []Hyperedge { return h.edges }
