// SPDX-License-Identifier: MIT
// Package: ermabp/builder
//
// impl_chain.go - implementation of Chain(n) constructor.
//
// Contract:
//   - n ≥ 1 (else ErrTooFewVars).
//   - Adds variables 0..n-1 named by cfg.idFn.
//   - Emits one unary factor per variable in index order, then pairwise
//     factors (i-1, i) for i=1..n-1.
//
// Complexity:
//   - Time: O(n·k²) for arity k.

package builder

import (
	"fmt"

	"github.com/katalvlaran/ermabp/core"
)

// Chain returns a Constructor that builds an acyclic chain x0 - x1 - ... - x(n-1).
func Chain(n int) Constructor {
	return func(g *core.FactorGraph, cfg builderConfig) error {
		if n < MinChainVars {
			return fmt.Errorf("%s: n=%d < min=%d: %w", MethodChain, n, MinChainVars, ErrTooFewVars)
		}
		vars, err := newVars(MethodChain, cfg, n)
		if err != nil {
			return err
		}
		if err = addUnaries(MethodChain, g, cfg, vars); err != nil {
			return err
		}
		for i := 1; i < n; i++ {
			if err = addFactor(MethodChain, g, cfg, vars[i-1], vars[i]); err != nil {
				return err
			}
		}

		return nil
	}
}
