package model

import (
	"fmt"
	"math"

	"github.com/katalvlaran/ermabp/semiring"
)

// Factor is a potential over a VarSet. LogUnnormalizedScore returns the
// natural log of the potential of a configuration of Vars(); -Inf marks an
// impossible configuration.
//
// Factors come in two shapes: explicit tables (ExplicitFactor) and global
// factors, which additionally implement GlobalFactor and are never
// enumerated by inference.
type Factor interface {
	Vars() *VarSet
	LogUnnormalizedScore(configIndex int) float64
}

// ExplicitFactor stores its potential as a table of log scores.
type ExplicitFactor struct {
	table *VarTensor
}

// NewExplicitFactor returns a factor over vars with every potential equal to one.
func NewExplicitFactor(vars *VarSet) *ExplicitFactor {
	return &ExplicitFactor{table: NewVarTensor(semiring.Log{}, vars, 0)}
}

// NewExplicitFactorFromReal builds a factor from real-valued potentials.
func NewExplicitFactorFromReal(vars *VarSet, potentials []float64) (*ExplicitFactor, error) {
	logs := make([]float64, len(potentials))
	for i, p := range potentials {
		logs[i] = math.Log(p)
	}

	return NewExplicitFactorFromLog(vars, logs)
}

// NewExplicitFactorFromLog builds a factor from log potentials.
func NewExplicitFactorFromLog(vars *VarSet, logPotentials []float64) (*ExplicitFactor, error) {
	t, err := NewVarTensorFromValues(semiring.Log{}, vars, logPotentials)
	if err != nil {
		return nil, fmt.Errorf("NewExplicitFactor: %w", err)
	}

	return &ExplicitFactor{table: t}, nil
}

// NewClampFactor returns a unary factor that allows only state for v.
func NewClampFactor(v *Var, state int) (*ExplicitFactor, error) {
	if state < 0 || state >= v.numStates {
		return nil, fmt.Errorf("NewClampFactor(%s=%d): %w", v.name, state, ErrStateRange)
	}
	f := &ExplicitFactor{table: NewVarTensor(semiring.Log{}, NewVarSet(v), math.Inf(-1))}
	f.table.values[state] = 0

	return f, nil
}

func (f *ExplicitFactor) Vars() *VarSet { return f.table.vars }

func (f *ExplicitFactor) LogUnnormalizedScore(c int) float64 { return f.table.values[c] }

// SetLogValue sets the log potential of configuration c.
// Factors must not be mutated while an inference run is using them.
func (f *ExplicitFactor) SetLogValue(c int, logPotential float64) {
	f.table.values[c] = logPotential
}

// SetValue sets the real potential of configuration c.
func (f *ExplicitFactor) SetValue(c int, potential float64) {
	f.table.values[c] = math.Log(potential)
}

// LogTable returns a copy of the log potential table.
func (f *ExplicitFactor) LogTable() *VarTensor { return f.table.Copy() }

// FactorTensor materialises f's potentials in algebra s. For a global factor
// this enumerates the full configuration space.
func FactorTensor(s semiring.Algebra, f Factor) *VarTensor {
	vars := f.Vars()
	t := NewVarTensor(s, vars, 0)
	for c := range t.values {
		t.values[c] = s.FromLogProb(f.LogUnnormalizedScore(c))
	}

	return t
}
