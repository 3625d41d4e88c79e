// SPDX-License-Identifier: MIT
// Package: ermabp/builder
//
// potential_fn.go - log-potential generators.
//
// A PotentialFn is called once per factor table entry, in configuration
// order, so a seeded RNG reproduces the same tables. Generators return
// DefaultLogPotential when the RNG is nil.

package builder

import (
	"fmt"
	"math"
	"math/rand"
)

// DefaultLogPotential is the log potential of the default uniform factors.
const DefaultLogPotential = defaultLogPotential

// PotentialFn draws one log potential.
type PotentialFn func(rng *rand.Rand) float64

// DefaultPotentialFn always returns DefaultLogPotential.
func DefaultPotentialFn(_ *rand.Rand) float64 {
	return DefaultLogPotential
}

// ConstantPotentialFn always returns value. Panics on NaN or ±Inf.
func ConstantPotentialFn(value float64) PotentialFn {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		panic(fmt.Sprintf("ConstantPotentialFn: value must be finite, got %g", value))
	}

	return func(_ *rand.Rand) float64 {
		return value
	}
}

// UniformPotentialFn draws from U[min,max]. Panics unless min ≤ max.
func UniformPotentialFn(min, max float64) PotentialFn {
	if !(min <= max) {
		panic(fmt.Sprintf("UniformPotentialFn: require min ≤ max, got min=%g, max=%g", min, max))
	}

	return func(rng *rand.Rand) float64 {
		if rng == nil {
			return DefaultLogPotential
		}
		if max == min {
			return min
		}

		return min + rng.Float64()*(max-min)
	}
}

// NormalPotentialFn draws from N(mean, stddev²). Panics on stddev < 0.
func NormalPotentialFn(mean, stddev float64) PotentialFn {
	if stddev < 0 {
		panic(fmt.Sprintf("NormalPotentialFn: stddev must be ≥ 0, got %f", stddev))
	}

	return func(rng *rand.Rand) float64 {
		if rng == nil {
			return DefaultLogPotential
		}

		return rng.NormFloat64()*stddev + mean
	}
}

// WithConstantPotential uses ConstantPotentialFn(v).
func WithConstantPotential(v float64) BuilderOption {
	return WithPotentialFn(ConstantPotentialFn(v))
}

// WithUniformPotential uses UniformPotentialFn(min, max).
func WithUniformPotential(min, max float64) BuilderOption {
	return WithPotentialFn(UniformPotentialFn(min, max))
}

// WithNormalPotential uses NormalPotentialFn(mean, stddev).
func WithNormalPotential(mean, stddev float64) BuilderOption {
	return WithPotentialFn(NormalPotentialFn(mean, stddev))
}
