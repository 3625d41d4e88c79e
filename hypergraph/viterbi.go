package hypergraph

import "math"

// Viterbi computes, for additive scores w, the best score of every node under
// max-plus and the index of the edge achieving it (-1 when unreachable).
// Ties keep the earliest edge.
func (h *Hypergraph) Viterbi(w []float64) (best []float64, back []int, err error) {
	if err = h.checkLen("Viterbi", h.numWeights, w); err != nil {
		return nil, nil, err
	}
	best = fill(h.numNodes, math.Inf(-1))
	back = make([]int, h.numNodes)
	for i := range back {
		back[i] = -1
	}
	for k, e := range h.edges {
		score := 0.0
		if e.Weight != NoWeight {
			score = w[e.Weight]
		}
		for _, t := range e.Tails {
			score += best[t]
		}
		if score > best[e.Head] {
			best[e.Head] = score
			back[e.Head] = k
		}
	}

	return best, back, nil
}

// Derivation returns the edges of the best derivation of node, head first,
// following the back pointers produced by Viterbi.
func (h *Hypergraph) Derivation(back []int, node int) []Hyperedge {
	var out []Hyperedge
	stack := []int{node}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if back[n] < 0 {
			continue
		}
		e := h.edges[back[n]]
		out = append(out, e)
		stack = append(stack, e.Tails...)
	}

	return out
}
