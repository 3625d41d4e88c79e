// Package hypergraph implements semiring inside-outside over an acyclic
// B-hypergraph and the reverse mode of both passes.
//
// A hyperedge e = (head, tails, weight) contributes
//
//	β[head] ⊕= w[weight] ⊗ ⨂_{t ∈ tails} β[t]
//
// to the inside score of its head. An edge with no tails and weight NoWeight
// is a leaf rule of value One. Nodes are numbered in topological order: every
// tail precedes its head, and edges are added in non-decreasing head order.
// The last node is the root; β[root] is the total score Z.
//
// Passes:
//
//	Inside          β, in edge order.
//	Outside         α[root] = One; α[t] ⊕= α[head] ⊗ w ⊗ ⨂_{t'≠t} β[t'], in reverse edge order.
//	WeightGradient  ∂Z/∂w[k] = ⊕_{e: weight k} α[head] ⊗ ⨂ β[tails].
//	Backward        given adjoints of ∂Z/∂w, adds the adjoints of w.
//	Viterbi         max-plus inside with back pointers, for decoding.
//
// All passes take an algebra and plain float64 slices, so the same code runs
// in Real, Log and LogSign.
//
// Complexity: every pass is O(Σ_e |tails(e)|²) time, O(V) extra memory.
package hypergraph
