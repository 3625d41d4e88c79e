// SPDX-License-Identifier: MIT
// Package: ermabp/builder
//
// options.go - functional options for the builder package.
//
// Contract:
//   • Options are functional (type BuilderOption func(*builderConfig)).
//   • Option constructors VALIDATE and PANIC on meaningless inputs.
//     Constructors themselves MUST NOT panic.
//   • Determinism is explicit: seeding is done via WithSeed or WithRand.

package builder

import (
	"math/rand"

	"github.com/katalvlaran/ermabp/model"
)

// BuilderOption customizes a builderConfig before graph construction begins.
type BuilderOption func(*builderConfig)

// WithIDScheme sets the variable naming scheme: idx -> name. Panics on nil.
func WithIDScheme(fn IDFn) BuilderOption {
	if fn == nil {
		panic("builder: WithIDScheme(nil)")
	}
	return func(c *builderConfig) {
		c.idFn = fn
	}
}

// WithRand provides an explicit RNG for potential draws. Panics on nil;
// prefer WithSeed for reproducible runs.
func WithRand(r *rand.Rand) BuilderOption {
	if r == nil {
		panic("builder: WithRand(nil)")
	}
	return func(c *builderConfig) {
		c.rng = r
	}
}

// WithSeed creates a new *rand.Rand with the given seed.
func WithSeed(seed int64) BuilderOption {
	return func(c *builderConfig) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}

// WithPotentialFn overrides the log-potential generator. Panics on nil.
func WithPotentialFn(fn PotentialFn) BuilderOption {
	if fn == nil {
		panic("builder: WithPotentialFn(nil)")
	}
	return func(c *builderConfig) {
		c.potentialFn = fn
	}
}

// WithNumStates sets the arity of every variable of the pairwise
// topologies. Panics if k < 1.
func WithNumStates(k int) BuilderOption {
	if k < 1 {
		panic("builder: WithNumStates(k<1)")
	}
	return func(c *builderConfig) {
		c.numStates = k
	}
}

// WithVarType sets the type of every created variable.
func WithVarType(t model.VarType) BuilderOption {
	return func(c *builderConfig) {
		c.varType = t
	}
}
