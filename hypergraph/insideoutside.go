package hypergraph

import (
	"fmt"

	"github.com/katalvlaran/ermabp/semiring"
)

func (h *Hypergraph) checkLen(method string, want int, xs ...[]float64) error {
	for _, x := range xs {
		if len(x) != want {
			return fmt.Errorf("%s: got %d values, want %d: %w", method, len(x), want, ErrLength)
		}
	}

	return nil
}

func fill(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}

	return out
}

// weightOf returns w[e.Weight] or One for NoWeight.
func weightOf(s semiring.Algebra, e Hyperedge, w []float64) float64 {
	if e.Weight == NoWeight {
		return s.One()
	}

	return w[e.Weight]
}

// tailProduct multiplies β over e.Tails, skipping the positions in skip.
func tailProduct(s semiring.Algebra, e Hyperedge, beta []float64, skip ...int) float64 {
	p := s.One()
outer:
	for i, t := range e.Tails {
		for _, k := range skip {
			if i == k {
				continue outer
			}
		}
		p = s.Times(p, beta[t])
	}

	return p
}

// Inside returns β for weights w.
func (h *Hypergraph) Inside(s semiring.Algebra, w []float64) ([]float64, error) {
	if err := h.checkLen("Inside", h.numWeights, w); err != nil {
		return nil, err
	}
	beta := fill(h.numNodes, s.Zero())
	for _, e := range h.edges {
		prod := s.Times(weightOf(s, e, w), tailProduct(s, e, beta))
		beta[e.Head] = s.Plus(beta[e.Head], prod)
	}

	return beta, nil
}

// Outside returns α given w and the inside scores β.
func (h *Hypergraph) Outside(s semiring.Algebra, w, beta []float64) ([]float64, error) {
	if err := h.checkLen("Outside", h.numWeights, w); err != nil {
		return nil, err
	}
	if err := h.checkLen("Outside", h.numNodes, beta); err != nil {
		return nil, err
	}
	alpha := fill(h.numNodes, s.Zero())
	alpha[h.Root()] = s.One()
	for k := len(h.edges) - 1; k >= 0; k-- {
		e := h.edges[k]
		hw := s.Times(alpha[e.Head], weightOf(s, e, w))
		for i, t := range e.Tails {
			alpha[t] = s.Plus(alpha[t], s.Times(hw, tailProduct(s, e, beta, i)))
		}
	}

	return alpha, nil
}

// WeightGradient returns ∂Z/∂w from α and β.
func (h *Hypergraph) WeightGradient(s semiring.Algebra, beta, alpha []float64) ([]float64, error) {
	if err := h.checkLen("WeightGradient", h.numNodes, beta, alpha); err != nil {
		return nil, err
	}
	g := fill(h.numWeights, s.Zero())
	for _, e := range h.edges {
		if e.Weight == NoWeight {
			continue
		}
		g[e.Weight] = s.Plus(g[e.Weight], s.Times(alpha[e.Head], tailProduct(s, e, beta)))
	}

	return g, nil
}

// InsideOutside runs Inside, Outside and WeightGradient in one call and
// returns β, α and ∂Z/∂w.
func (h *Hypergraph) InsideOutside(s semiring.Algebra, w []float64) (beta, alpha, grad []float64, err error) {
	if beta, err = h.Inside(s, w); err != nil {
		return nil, nil, nil, err
	}
	if alpha, err = h.Outside(s, w, beta); err != nil {
		return nil, nil, nil, err
	}
	if grad, err = h.WeightGradient(s, beta, alpha); err != nil {
		return nil, nil, nil, err
	}

	return beta, alpha, grad, nil
}
