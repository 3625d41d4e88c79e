// SPDX-License-Identifier: MIT
// Package: ermabp/builder
//
// config.go - internal configuration and deterministic defaults.
//
// Deterministic defaults:
//   • idFn        = SymbolNumberIDFn("x")   ("x0","x1",...)
//   • rng         = nil                     (pure/deterministic unless seeded)
//   • potentialFn = ConstantPotentialFn(0)  (uniform factors)
//   • numStates   = 2
//   • varType     = model.Predicted

package builder

import (
	"math/rand"

	"github.com/katalvlaran/ermabp/model"
)

// builderConfig aggregates all knobs used by constructors.
// It is passed by VALUE to constructors.
type builderConfig struct {
	// Variable naming: index -> name.
	idFn IDFn
	// RNG for potential draws; nil means “no randomness”.
	rng *rand.Rand
	// Log-potential generator, called once per table entry.
	potentialFn PotentialFn

	numStates int
	varType   model.VarType
}

const (
	defaultVarPrefix    = "x"
	defaultNumStates    = 2
	defaultLogPotential = 0.0
)

// newBuilderConfig constructs a config with deterministic defaults and
// applies all options in order (later overrides earlier).
func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{
		idFn:        SymbolNumberIDFn(defaultVarPrefix),
		rng:         nil,
		potentialFn: DefaultPotentialFn,
		numStates:   defaultNumStates,
		varType:     model.Predicted,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}
