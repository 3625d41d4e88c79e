package deptree

import "github.com/katalvlaran/ermabp/hypergraph"

const (
	left  = 0 // head at the right end, dependents to the left
	right = 1 // head at the left end, dependents to the right
)

// arcIndex is the weight index of parent→child; parent -1 is the wall.
func arcIndex(n, parent, child int) int { return (parent+1)*n + child }

// arcOf inverts arcIndex.
func arcOf(n, idx int) (parent, child int) { return idx/n - 1, idx % n }

// eisner is the single-root first-order projective parsing hypergraph.
//
//	C[s][s][d]   leaf
//	I[s][t][←] = ⨁_{s≤r<t} C[s][r][→] ⊗ C[r+1][t][←] ⊗ w(t→s)
//	I[s][t][→] = ⨁_{s≤r<t} C[s][r][→] ⊗ C[r+1][t][←] ⊗ w(s→t)
//	C[s][t][←] = ⨁_{s≤r<t} C[s][r][←] ⊗ I[r][t][←]
//	C[s][t][→] = ⨁_{s<r≤t} I[s][r][→] ⊗ C[r][t][→]
//	root       = ⨁_r w(wall→r) ⊗ C[0][r][←] ⊗ C[r][n-1][→]
//
// Nodes are numbered by span width, incomplete before complete, root last.
func eisner(n int) (*hypergraph.Hypergraph, error) {
	numNodes := 2*n + 2*n*(n-1) + 1
	hg := hypergraph.New(numNodes, (n+1)*n)

	complete := make([][][2]int, n)
	incomplete := make([][][2]int, n)
	for s := range complete {
		complete[s] = make([][2]int, n)
		incomplete[s] = make([][2]int, n)
	}
	next := 0
	node := func() int {
		next++
		return next - 1
	}

	for s := 0; s < n; s++ {
		for d := left; d <= right; d++ {
			id := node()
			complete[s][s][d] = id
			if err := hg.AddEdge(id, nil, hypergraph.NoWeight); err != nil {
				return nil, err
			}
		}
	}

	for width := 1; width < n; width++ {
		for s := 0; s+width < n; s++ {
			t := s + width
			for d, w := range [2]int{arcIndex(n, t, s), arcIndex(n, s, t)} {
				id := node()
				incomplete[s][t][d] = id
				for r := s; r < t; r++ {
					tails := []int{complete[s][r][right], complete[r+1][t][left]}
					if err := hg.AddEdge(id, tails, w); err != nil {
						return nil, err
					}
				}
			}
		}
		for s := 0; s+width < n; s++ {
			t := s + width
			id := node()
			complete[s][t][left] = id
			for r := s; r < t; r++ {
				tails := []int{complete[s][r][left], incomplete[r][t][left]}
				if err := hg.AddEdge(id, tails, hypergraph.NoWeight); err != nil {
					return nil, err
				}
			}
			id = node()
			complete[s][t][right] = id
			for r := s + 1; r <= t; r++ {
				tails := []int{incomplete[s][r][right], complete[r][t][right]}
				if err := hg.AddEdge(id, tails, hypergraph.NoWeight); err != nil {
					return nil, err
				}
			}
		}
	}

	root := node()
	for r := 0; r < n; r++ {
		tails := []int{complete[0][r][left], complete[r][n-1][right]}
		if err := hg.AddEdge(root, tails, arcIndex(n, -1, r)); err != nil {
			return nil, err
		}
	}

	return hg, nil
}
