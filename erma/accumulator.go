package erma

import (
	"fmt"
	"sync"

	"github.com/katalvlaran/ermabp/core"
	"github.com/katalvlaran/ermabp/model"
	"github.com/katalvlaran/ermabp/semiring"
)

// AdjointAccumulator sums potential adjoints of explicit factors across many
// Backward runs over graphs sharing the same factor layout. It is safe for
// concurrent use by several engines.
type AdjointAccumulator struct {
	mu   sync.Mutex
	s    semiring.Algebra
	adjs []*model.VarTensor // nil for global factors
	runs int
}

// NewAdjointAccumulator allocates zero adjoints for every explicit factor of g.
func NewAdjointAccumulator(s semiring.Algebra, g *core.FactorGraph) (*AdjointAccumulator, error) {
	if s == nil {
		return nil, fmt.Errorf("NewAdjointAccumulator: %w: nil algebra", ErrOptionViolation)
	}
	if g == nil {
		return nil, ErrGraphNil
	}
	acc := &AdjointAccumulator{s: s, adjs: make([]*model.VarTensor, g.NumFactors())}
	for id, f := range g.Factors() {
		if _, ok := model.AsGlobal(f); ok {
			continue
		}
		acc.adjs[id] = model.NewVarTensor(s, f.Vars(), s.Zero())
	}

	return acc, nil
}

// Algebra returns the accumulator's semiring.
func (a *AdjointAccumulator) Algebra() semiring.Algebra { return a.s }

// Add sums one run's potential adjoints into the accumulator. Every entry
// is checked first, so a failed Add leaves the accumulator unchanged.
func (a *AdjointAccumulator) Add(adjs []*model.VarTensor) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(adjs) != len(a.adjs) {
		return fmt.Errorf("Add: %d adjoints for %d factors: %w", len(adjs), len(a.adjs), model.ErrLength)
	}
	for id, adj := range adjs {
		if adj == nil || a.adjs[id] == nil {
			continue
		}
		if err := a.adjs[id].Compatible(adj); err != nil {
			return fmt.Errorf("Add: factor %d: %w", id, err)
		}
	}
	for id, adj := range adjs {
		if adj != nil && a.adjs[id] != nil {
			_ = a.adjs[id].Add(adj)
		}
	}
	a.runs++

	return nil
}

// Adjoints returns copies of the accumulated adjoints indexed by factor ID.
func (a *AdjointAccumulator) Adjoints() []*model.VarTensor {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]*model.VarTensor, len(a.adjs))
	for id, adj := range a.adjs {
		if adj != nil {
			out[id] = adj.Copy()
		}
	}

	return out
}

// Runs is the number of successful Add calls.
func (a *AdjointAccumulator) Runs() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.runs
}

// Reset zeroes every adjoint.
func (a *AdjointAccumulator) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, adj := range a.adjs {
		if adj != nil {
			adj.Fill(a.s.Zero())
		}
	}
	a.runs = 0
}
