// SPDX-License-Identifier: MIT
// Package: ermabp/builder
//
// impl_grid.go - implementation of Grid(rows, cols) constructor.
//
// Contract:
//   - rows ≥ 1 and cols ≥ 1 (else ErrTooFewVars).
//   - Variables in row-major order named "r,c" (fixed coordinate scheme,
//     cfg.idFn is not used).
//   - Emits unary factors in row-major order, then for each (r,c) the Right
//     factor then the Bottom factor if present.
//   - Any grid with rows ≥ 2 and cols ≥ 2 is loopy.

package builder

import (
	"fmt"

	"github.com/katalvlaran/ermabp/core"
	"github.com/katalvlaran/ermabp/model"
)

const gridIDFmt = "%d,%d"

// Grid returns a Constructor that builds a rows×cols 4-neighbourhood Ising-style grid.
func Grid(rows, cols int) Constructor {
	return func(g *core.FactorGraph, cfg builderConfig) error {
		if rows < MinGridDim || cols < MinGridDim {
			return fmt.Errorf("%s: rows=%d, cols=%d (each must be ≥ %d): %w",
				MethodGrid, rows, cols, MinGridDim, ErrTooFewVars)
		}
		vars := make([]*model.Var, rows*cols)
		var err error
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				if vars[r*cols+c], err = newVar(MethodGrid, cfg, fmt.Sprintf(gridIDFmt, r, c)); err != nil {
					return err
				}
			}
		}
		if err = addUnaries(MethodGrid, g, cfg, vars); err != nil {
			return err
		}
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				u := vars[r*cols+c]
				if c+1 < cols {
					if err = addFactor(MethodGrid, g, cfg, u, vars[r*cols+c+1]); err != nil {
						return err
					}
				}
				if r+1 < rows {
					if err = addFactor(MethodGrid, g, cfg, u, vars[(r+1)*cols+c]); err != nil {
						return err
					}
				}
			}
		}

		return nil
	}
}
