// SPDX-License-Identifier: MIT
// Package: ermabp/builder
//
// impl_star.go - implementation of Star(n) constructor.
//
// Contract:
//   - n ≥ 2 (else ErrTooFewVars).
//   - Hub variable named CenterVarName; leaves named cfg.idFn(1..n-1).
//   - Emits unary factors (hub first, then leaves), then pairwise
//     factors (Center, leaf i) in increasing i.

package builder

import (
	"fmt"

	"github.com/katalvlaran/ermabp/core"
	"github.com/katalvlaran/ermabp/model"
)

// Star returns a Constructor that builds a hub variable with n-1 leaves.
func Star(n int) Constructor {
	return func(g *core.FactorGraph, cfg builderConfig) error {
		if n < MinStarVars {
			return fmt.Errorf("%s: n=%d < min=%d: %w", MethodStar, n, MinStarVars, ErrTooFewVars)
		}
		vars := make([]*model.Var, n)
		var err error
		if vars[0], err = newVar(MethodStar, cfg, CenterVarName); err != nil {
			return err
		}
		for i := 1; i < n; i++ {
			if vars[i], err = newVar(MethodStar, cfg, cfg.idFn(i)); err != nil {
				return err
			}
		}
		if err = addUnaries(MethodStar, g, cfg, vars); err != nil {
			return err
		}
		for i := 1; i < n; i++ {
			if err = addFactor(MethodStar, g, cfg, vars[0], vars[i]); err != nil {
				return err
			}
		}

		return nil
	}
}
