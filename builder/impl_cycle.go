// SPDX-License-Identifier: MIT
// Package: ermabp/builder
//
// impl_cycle.go - implementation of Cycle(n) constructor.
//
// Contract:
//   - n ≥ 3 (else ErrTooFewVars).
//   - Same emission order as Chain(n), followed by the closing factor
//     (x(n-1), x0). The result has exactly one cycle.

package builder

import (
	"fmt"

	"github.com/katalvlaran/ermabp/core"
)

// Cycle returns a Constructor that builds a single loop of n variables.
func Cycle(n int) Constructor {
	return func(g *core.FactorGraph, cfg builderConfig) error {
		if n < MinCycleVars {
			return fmt.Errorf("%s: n=%d < min=%d: %w", MethodCycle, n, MinCycleVars, ErrTooFewVars)
		}
		vars, err := newVars(MethodCycle, cfg, n)
		if err != nil {
			return err
		}
		if err = addUnaries(MethodCycle, g, cfg, vars); err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			if err = addFactor(MethodCycle, g, cfg, vars[i], vars[(i+1)%n]); err != nil {
				return err
			}
		}

		return nil
	}
}
