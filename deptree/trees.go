package deptree

import (
	"fmt"
	"math"

	"github.com/katalvlaran/ermabp/semiring"
)

// IsProjectiveTree reports whether parents encodes a single-rooted projective
// tree: parents[j] ∈ [-1, n), parents[j] ≠ j, exactly one j with parent -1,
// no cycles, and every arc h→d dominates all tokens strictly between h and d.
func IsProjectiveTree(parents []int) bool {
	n := len(parents)
	if n == 0 {
		return false
	}
	roots := 0
	for j, p := range parents {
		if p < -1 || p >= n || p == j {
			return false
		}
		if p == -1 {
			roots++
		}
	}
	if roots != 1 {
		return false
	}
	for j := range parents {
		k := j
		for steps := 0; k != -1; steps++ {
			if steps > n {
				return false
			}
			k = parents[k]
		}
	}
	for d, h := range parents {
		if h < 0 {
			continue
		}
		lo, hi := min(h, d), max(h, d)
		for k := lo + 1; k < hi; k++ {
			if !dominates(parents, h, k) {
				return false
			}
		}
	}

	return true
}

// dominates reports whether h is an ancestor of k. parents must be acyclic.
func dominates(parents []int, h, k int) bool {
	for k != -1 {
		k = parents[k]
		if k == h {
			return true
		}
	}

	return false
}

// CountTrees returns the number of single-rooted projective trees over n
// tokens: 1, 2, 7, 30, 143, 728, … for n = 1, 2, 3, ….
func CountTrees(n int) (int, error) {
	if n < 1 {
		return 0, fmt.Errorf("CountTrees(%d): %w", n, ErrNumTokens)
	}
	hg, err := eisner(n)
	if err != nil {
		return 0, fmt.Errorf("CountTrees: %w", err)
	}
	w := make([]float64, hg.NumWeights())
	for i := range w {
		w[i] = 1
	}
	beta, err := hg.Inside(semiring.Real{}, w)
	if err != nil {
		return 0, fmt.Errorf("CountTrees: %w", err)
	}

	return int(math.Round(beta[hg.Root()])), nil
}

// weights lays out root[j] (wall→j) and child[i][j] (i→j) by arc index.
// Diagonal entries of child are ignored.
func weights(method string, root []float64, child [][]float64) (int, []float64, error) {
	n := len(root)
	if n == 0 || len(child) != n {
		return 0, nil, fmt.Errorf("%s: %w", method, ErrScoreShape)
	}
	w := make([]float64, (n+1)*n)
	for j := 0; j < n; j++ {
		w[arcIndex(n, -1, j)] = root[j]
	}
	for i, row := range child {
		if len(row) != n {
			return 0, nil, fmt.Errorf("%s: row %d: %w", method, i, ErrScoreShape)
		}
		for j, v := range row {
			if i != j {
				w[arcIndex(n, i, j)] = v
			}
		}
	}

	return n, w, nil
}

// Decode returns the maximum-score projective tree for additive arc scores
// (root[j] for wall→j, child[i][j] for i→j) as a parent array, with its score.
// Complexity: O(n³).
func Decode(root []float64, child [][]float64) ([]int, float64, error) {
	n, w, err := weights("Decode", root, child)
	if err != nil {
		return nil, 0, err
	}
	hg, err := eisner(n)
	if err != nil {
		return nil, 0, fmt.Errorf("Decode: %w", err)
	}
	best, back, err := hg.Viterbi(w)
	if err != nil {
		return nil, 0, fmt.Errorf("Decode: %w", err)
	}
	parents := make([]int, n)
	for _, e := range hg.Derivation(back, hg.Root()) {
		if e.Weight < 0 {
			continue
		}
		p, c := arcOf(n, e.Weight)
		parents[c] = p
	}

	return parents, best[hg.Root()], nil
}

// LinkMarginals returns the arc marginals under multiplicative potentials
// (root[j] for wall→j, child[i][j] for i→j) and the partition function Z.
// Diagonal entries of childMarg are zero.
func LinkMarginals(root []float64, child [][]float64) (rootMarg []float64, childMarg [][]float64, z float64, err error) {
	n, w, err := weights("LinkMarginals", root, child)
	if err != nil {
		return nil, nil, 0, err
	}
	hg, err := eisner(n)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("LinkMarginals: %w", err)
	}
	s := semiring.Real{}
	beta, _, grad, err := hg.InsideOutside(s, w)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("LinkMarginals: %w", err)
	}
	z = beta[hg.Root()]
	marg := func(a int) float64 { return w[a] * grad[a] / z }

	rootMarg = make([]float64, n)
	childMarg = make([][]float64, n)
	for j := 0; j < n; j++ {
		rootMarg[j] = marg(arcIndex(n, -1, j))
		childMarg[j] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i != j {
				childMarg[i][j] = marg(arcIndex(n, i, j))
			}
		}
	}

	return rootMarg, childMarg, z, nil
}
