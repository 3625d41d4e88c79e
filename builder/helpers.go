// SPDX-License-Identifier: MIT
// Package: ermabp/builder
//
// helpers.go - shared variable and factor helpers for constructors.

package builder

import (
	"fmt"

	"github.com/katalvlaran/ermabp/core"
	"github.com/katalvlaran/ermabp/model"
)

// newVar creates one variable with the configured arity and type.
func newVar(method string, cfg builderConfig, name string) (*model.Var, error) {
	v, err := model.NewVar(cfg.varType, cfg.numStates, name, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: NewVar(%s): %w", method, name, err)
	}

	return v, nil
}

// newVars creates n variables named by cfg.idFn in index order.
func newVars(method string, cfg builderConfig, n int) ([]*model.Var, error) {
	vars := make([]*model.Var, n)
	for i := range vars {
		v, err := newVar(method, cfg, cfg.idFn(i))
		if err != nil {
			return nil, err
		}
		vars[i] = v
	}

	return vars, nil
}

// addFactor adds an explicit factor over vars whose log potentials are drawn
// from cfg.potentialFn in configuration order.
func addFactor(method string, g *core.FactorGraph, cfg builderConfig, vars ...*model.Var) error {
	vs := model.NewVarSet(vars...)
	logs := make([]float64, vs.NumConfigs())
	for c := range logs {
		logs[c] = cfg.potentialFn(cfg.rng)
	}
	f, err := model.NewExplicitFactorFromLog(vs, logs)
	if err != nil {
		return fmt.Errorf("%s: factor %s: %w", method, vs, err)
	}
	if _, err = g.AddFactor(f); err != nil {
		return fmt.Errorf("%s: AddFactor(%s): %w", method, vs, err)
	}

	return nil
}

// addUnaries adds one unary factor per variable.
func addUnaries(method string, g *core.FactorGraph, cfg builderConfig, vars []*model.Var) error {
	for _, v := range vars {
		if err := addFactor(method, g, cfg, v); err != nil {
			return err
		}
	}

	return nil
}
