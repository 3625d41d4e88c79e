// Package bruteforce computes exact marginals and partition functions of a
// factor graph by enumerating the joint configuration space. It is the
// reference against which approximate inference is measured and is only
// practical for small graphs.
package bruteforce

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/ermabp/core"
	"github.com/katalvlaran/ermabp/model"
	"github.com/katalvlaran/ermabp/semiring"
)

// MaxConfigs bounds the size of the joint table.
const MaxConfigs = 1 << 22

var (
	// ErrGraphNil indicates a nil graph.
	ErrGraphNil = errors.New("bruteforce: graph is nil")

	// ErrTooLarge indicates a joint configuration space above MaxConfigs.
	ErrTooLarge = errors.New("bruteforce: joint configuration space too large")
)

// Result holds exact marginals indexed by variable and factor ID.
type Result struct {
	logZ    float64
	varMarg []*model.VarTensor
	facMarg []*model.VarTensor
}

// Infer enumerates every joint configuration of g in the Log algebra.
// Global factors are evaluated through LogUnnormalizedScore like any other.
// Complexity: O(Π|states| · (|F| + |V|)).
func Infer(g *core.FactorGraph) (*Result, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	all := g.AllVars()
	n, err := all.CheckedNumConfigs()
	if err != nil {
		return nil, fmt.Errorf("Infer: %w: %w", ErrTooLarge, err)
	}
	if n > MaxConfigs {
		return nil, fmt.Errorf("Infer: %d configurations: %w", n, ErrTooLarge)
	}
	s := semiring.Log{}
	joint := model.NewVarTensor(s, all, s.One())
	for _, f := range g.Factors() {
		if err := joint.Prod(model.FactorTensor(s, f)); err != nil {
			return nil, fmt.Errorf("Infer: %w", err)
		}
	}

	res := &Result{logZ: joint.Sum()}
	for _, v := range g.Vars() {
		m, err := joint.Marginal(model.NewVarSet(v), true)
		if err != nil {
			return nil, fmt.Errorf("Infer: %w", err)
		}
		res.varMarg = append(res.varMarg, m)
	}
	for _, f := range g.Factors() {
		m, err := joint.Marginal(f.Vars(), true)
		if err != nil {
			return nil, fmt.Errorf("Infer: %w", err)
		}
		res.facMarg = append(res.facMarg, m)
	}

	return res, nil
}

// LogPartition is ln Z.
func (r *Result) LogPartition() float64 { return r.logZ }

// Partition is Z expressed in algebra s.
func (r *Result) Partition(s semiring.Algebra) float64 { return s.FromLogProb(r.logZ) }

// VarMarginal returns the normalized marginal of the variable with ID id, in the Log algebra.
func (r *Result) VarMarginal(id int) *model.VarTensor { return r.varMarg[id].Copy() }

// FactorMarginal returns the normalized marginal over the variables of factor id.
func (r *Result) FactorMarginal(id int) *model.VarTensor { return r.facMarg[id].Copy() }
