package erma

import (
	"fmt"
	"log/slog"

	"github.com/katalvlaran/ermabp/core"
	"github.com/katalvlaran/ermabp/model"
)

// computeBeliefs fills the normalized variable and explicit factor beliefs
// and keeps each normalizing sum for Backward.
func (b *BP) computeBeliefs() error {
	b.varBeliefs = make([]*model.VarTensor, b.g.NumVars())
	b.varSums = make([]float64, b.g.NumVars())
	for _, vn := range b.g.VarNodes() {
		bel, err := b.unnormalizedVarBelief(vn)
		if err != nil {
			return err
		}
		b.varSums[vn.VarID()] = bel.Normalize()
		if err = model.ValidateNotNaN("var belief "+vn.String(), bel); err != nil {
			return err
		}
		b.varBeliefs[vn.VarID()] = bel
	}

	b.facBeliefs = make([]*model.VarTensor, b.g.NumFactors())
	b.facSums = make([]float64, b.g.NumFactors())
	for _, fn := range b.g.FactorNodes() {
		if _, ok := model.AsGlobal(fn.Factor()); ok {
			continue
		}
		bel, err := b.unnormalizedFactorBelief(fn)
		if err != nil {
			return err
		}
		b.facSums[fn.FactorID()] = bel.Normalize()
		if err = model.ValidateNotNaN("factor belief "+fn.String(), bel); err != nil {
			return err
		}
		b.facBeliefs[fn.FactorID()] = bel
	}

	return nil
}

func (b *BP) unnormalizedVarBelief(vn *core.FgNode) (*model.VarTensor, error) {
	bel := model.NewVarTensor(b.s, model.NewVarSet(vn.Var()), b.s.One())
	if err := b.productOfMessages(vn, bel); err != nil {
		return nil, err
	}

	return bel, nil
}

func (b *BP) unnormalizedFactorBelief(fn *core.FgNode) (*model.VarTensor, error) {
	bel := model.FactorTensor(b.s, fn.Factor())
	if err := b.productOfMessages(fn, bel); err != nil {
		return nil, err
	}

	return bel, nil
}

// VarBelief returns a copy of the normalized belief of variable id.
func (b *BP) VarBelief(id int) (*model.VarTensor, error) {
	if b.varBeliefs == nil {
		return nil, ErrNotRun
	}
	if id < 0 || id >= len(b.varBeliefs) {
		return nil, fmt.Errorf("VarBelief: id %d: %w", id, ErrIDRange)
	}

	return b.varBeliefs[id].Copy(), nil
}

// VarBeliefOf looks the variable up in the graph and returns its belief.
func (b *BP) VarBeliefOf(v *model.Var) (*model.VarTensor, error) {
	id, err := b.g.VarID(v)
	if err != nil {
		return nil, fmt.Errorf("VarBeliefOf: %w", err)
	}

	return b.VarBelief(id)
}

// MaxBeliefConfigs bounds the table enumerated for a global factor belief.
const MaxBeliefConfigs = 1 << 22

// FactorBelief returns a copy of the normalized belief of factor id. A
// global factor's belief is not cached: it is enumerated on every call,
// which is exponential in its arity and logged as a warning. Global factors
// with more than MaxBeliefConfigs configurations yield ErrTooLarge.
func (b *BP) FactorBelief(id int) (*model.VarTensor, error) {
	if b.facBeliefs == nil {
		return nil, ErrNotRun
	}
	if id < 0 || id >= len(b.facBeliefs) {
		return nil, fmt.Errorf("FactorBelief: id %d: %w", id, ErrIDRange)
	}
	if bel := b.facBeliefs[id]; bel != nil {
		return bel.Copy(), nil
	}

	fn := b.g.FactorNode(id)
	n, err := fn.Factor().Vars().CheckedNumConfigs()
	if err != nil {
		return nil, fmt.Errorf("FactorBelief: factor %d: %w: %w", id, ErrTooLarge, err)
	}
	if n > MaxBeliefConfigs {
		return nil, fmt.Errorf("FactorBelief: factor %d has %d configurations: %w", id, n, ErrTooLarge)
	}
	b.logger.Warn("enumerating global factor belief",
		slog.Int("factor", id),
		slog.Int("vars", fn.Factor().Vars().Len()))
	bel, err := b.unnormalizedFactorBelief(fn)
	if err != nil {
		return nil, fmt.Errorf("FactorBelief: %w", err)
	}
	bel.Normalize()

	return bel, nil
}

// VarBeliefs returns copies of all variable beliefs indexed by variable ID.
func (b *BP) VarBeliefs() ([]*model.VarTensor, error) {
	out := make([]*model.VarTensor, b.g.NumVars())
	for i := range out {
		bel, err := b.VarBelief(i)
		if err != nil {
			return nil, err
		}
		out[i] = bel
	}

	return out, nil
}

// FactorBeliefs returns copies of all factor beliefs indexed by factor ID,
// enumerating global ones.
func (b *BP) FactorBeliefs() ([]*model.VarTensor, error) {
	out := make([]*model.VarTensor, b.g.NumFactors())
	for i := range out {
		bel, err := b.FactorBelief(i)
		if err != nil {
			return nil, err
		}
		out[i] = bel
	}

	return out, nil
}
