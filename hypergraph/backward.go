package hypergraph

import "github.com/katalvlaran/ermabp/semiring"

// Backward adds into wAdj the adjoint of w given gradAdj, the adjoint of the
// WeightGradient output. beta and alpha are the forward values for w.
//
// The three forward passes are reversed in turn:
//
//  1. gradient:  ∂Z/∂w[k] = α[head] ⊗ ⨂β   feeds ᾱ[head] and β̄[tails].
//  2. outside:   edges in increasing order; ᾱ[t] flows into ᾱ[head], w̄ and β̄[t'].
//  3. inside:    edges in decreasing order; β̄[head] flows into w̄ and β̄[tails].
func (h *Hypergraph) Backward(s semiring.Algebra, w, beta, alpha, gradAdj, wAdj []float64) error {
	if err := h.checkLen("Backward", h.numWeights, w, gradAdj, wAdj); err != nil {
		return err
	}
	if err := h.checkLen("Backward", h.numNodes, beta, alpha); err != nil {
		return err
	}
	alphaAdj := fill(h.numNodes, s.Zero())
	betaAdj := fill(h.numNodes, s.Zero())

	for _, e := range h.edges {
		if e.Weight == NoWeight {
			continue
		}
		g := gradAdj[e.Weight]
		alphaAdj[e.Head] = s.Plus(alphaAdj[e.Head], s.Times(g, tailProduct(s, e, beta)))
		ga := s.Times(g, alpha[e.Head])
		for i, t := range e.Tails {
			betaAdj[t] = s.Plus(betaAdj[t], s.Times(ga, tailProduct(s, e, beta, i)))
		}
	}

	for _, e := range h.edges {
		we := weightOf(s, e, w)
		for i, t := range e.Tails {
			at := alphaAdj[t]
			others := tailProduct(s, e, beta, i)
			alphaAdj[e.Head] = s.Plus(alphaAdj[e.Head], s.Times(at, s.Times(we, others)))
			ah := s.Times(at, alpha[e.Head])
			if e.Weight != NoWeight {
				wAdj[e.Weight] = s.Plus(wAdj[e.Weight], s.Times(ah, others))
			}
			ahw := s.Times(ah, we)
			for j, u := range e.Tails {
				if j == i {
					continue
				}
				betaAdj[u] = s.Plus(betaAdj[u], s.Times(ahw, tailProduct(s, e, beta, i, j)))
			}
		}
	}

	for k := len(h.edges) - 1; k >= 0; k-- {
		e := h.edges[k]
		bh := betaAdj[e.Head]
		if e.Weight != NoWeight {
			wAdj[e.Weight] = s.Plus(wAdj[e.Weight], s.Times(bh, tailProduct(s, e, beta)))
		}
		bw := s.Times(bh, weightOf(s, e, w))
		for i, t := range e.Tails {
			betaAdj[t] = s.Plus(betaAdj[t], s.Times(bw, tailProduct(s, e, beta, i)))
		}
	}

	return nil
}
