// SPDX-License-Identifier: MIT
// Package: ermabp/builder
//
// impl_deptree.go - dependency parsing fixtures.
//
// Contract:
//   - n ≥ 1 tokens (else ErrTooFewVars); score shapes must match n (else ErrBadSize).
//   - Adds one deptree.ProjDepTreeFactor, then one unary factor per link
//     variable in (parent, child) order with log potential 0 for FALSE and
//     the arc score for TRUE.
//   - DepTree draws arc scores from cfg.potentialFn; DepTreeScores takes them
//     explicitly (root[c] for the wall, child[p][c] otherwise, diagonal ignored).

package builder

import (
	"fmt"

	"github.com/katalvlaran/ermabp/core"
	"github.com/katalvlaran/ermabp/deptree"
	"github.com/katalvlaran/ermabp/model"
)

// DepTree returns a Constructor for an n-token sentence with random arc scores.
func DepTree(n int) Constructor {
	return func(g *core.FactorGraph, cfg builderConfig) error {
		if n < MinTokens {
			return fmt.Errorf("%s: n=%d < min=%d: %w", MethodDepTree, n, MinTokens, ErrTooFewVars)
		}

		return addDepTree(MethodDepTree, g, cfg, n, func(_, _ int) float64 {
			return cfg.potentialFn(cfg.rng)
		})
	}
}

// DepTreeScores returns a Constructor for a sentence of len(root) tokens
// with the given log arc scores.
func DepTreeScores(root []float64, child [][]float64) Constructor {
	return func(g *core.FactorGraph, cfg builderConfig) error {
		n := len(root)
		if n < MinTokens {
			return fmt.Errorf("%s: n=%d < min=%d: %w", MethodDepTreeScores, n, MinTokens, ErrTooFewVars)
		}
		if len(child) != n {
			return fmt.Errorf("%s: %d child rows for %d tokens: %w", MethodDepTreeScores, len(child), n, ErrBadSize)
		}
		for p, row := range child {
			if len(row) != n {
				return fmt.Errorf("%s: child row %d has %d scores for %d tokens: %w",
					MethodDepTreeScores, p, len(row), n, ErrBadSize)
			}
		}

		return addDepTree(MethodDepTreeScores, g, cfg, n, func(p, c int) float64 {
			if p == -1 {
				return root[c]
			}
			return child[p][c]
		})
	}
}

func addDepTree(method string, g *core.FactorGraph, cfg builderConfig, n int, score func(p, c int) float64) error {
	tree, err := deptree.NewProjDepTreeFactor(n, cfg.varType)
	if err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	if _, err = g.AddFactor(tree); err != nil {
		return fmt.Errorf("%s: AddFactor(tree): %w", method, err)
	}
	for p := -1; p < n; p++ {
		for c := 0; c < n; c++ {
			link := tree.LinkVar(p, c)
			if link == nil {
				continue
			}
			f, err := model.NewExplicitFactorFromLog(model.NewVarSet(link), []float64{0, score(p, c)})
			if err != nil {
				return fmt.Errorf("%s: link %s: %w", method, link.Name(), err)
			}
			if _, err = g.AddFactor(f); err != nil {
				return fmt.Errorf("%s: AddFactor(%s): %w", method, link.Name(), err)
			}
		}
	}

	return nil
}
