// SPDX-License-Identifier: MIT
// Package: ermabp/builder
//
// impl_complete.go - implementation of Complete(n) constructor.
//
// Contract:
//   - n ≥ 1 (else ErrTooFewVars).
//   - Unary factors in index order, then one pairwise factor per pair
//     (i<j) in lexicographic order.
//
// Complexity: O(n²) factors.

package builder

import (
	"fmt"

	"github.com/katalvlaran/ermabp/core"
)

// Complete returns a Constructor that builds a fully connected pairwise model.
func Complete(n int) Constructor {
	return func(g *core.FactorGraph, cfg builderConfig) error {
		if n < MinCompleteVars {
			return fmt.Errorf("%s: n=%d < min=%d: %w", MethodComplete, n, MinCompleteVars, ErrTooFewVars)
		}
		vars, err := newVars(MethodComplete, cfg, n)
		if err != nil {
			return err
		}
		if err = addUnaries(MethodComplete, g, cfg, vars); err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if err = addFactor(MethodComplete, g, cfg, vars[i], vars[j]); err != nil {
					return err
				}
			}
		}

		return nil
	}
}
