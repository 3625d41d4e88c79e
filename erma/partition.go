package erma

import (
	"fmt"

	"github.com/katalvlaran/ermabp/dfs"
	"github.com/katalvlaran/ermabp/model"
)

// Partition returns the partition function in the engine's algebra. It is
// exact for a tree-like schedule with unnormalized messages on an acyclic
// graph, and the Bethe approximation exp(−F) otherwise.
func (b *BP) Partition() (float64, error) {
	if b.varBeliefs == nil {
		return 0, ErrNotRun
	}
	if b.exactPartition() {
		return b.treePartition(), nil
	}
	bethe, err := b.betheFreeEnergy()
	if err != nil {
		return 0, fmt.Errorf("Partition: %w", err)
	}

	return b.s.FromLogProb(-bethe), nil
}

// LogPartition returns the natural log of Partition. On the Bethe path it
// is −F without a round trip through the algebra.
func (b *BP) LogPartition() (float64, error) {
	if b.varBeliefs == nil {
		return 0, ErrNotRun
	}
	if b.exactPartition() {
		return b.s.ToLogProb(b.treePartition()), nil
	}
	bethe, err := b.betheFreeEnergy()
	if err != nil {
		return 0, fmt.Errorf("LogPartition: %w", err)
	}

	return -bethe, nil
}

func (b *BP) exactPartition() bool {
	return b.opts.Schedule == TreeLike &&
		!b.opts.NormalizeMessages &&
		dfs.IsAcyclic(b.g)
}

// treePartition multiplies, over connected components, the unnormalized
// belief sum of one variable in the component.
func (b *BP) treePartition() float64 {
	_, reps, _ := dfs.Components(b.g)
	z := b.s.One()
	for _, rep := range reps {
		vn := rep
		if !rep.IsVar() {
			if len(rep.OutEdges()) == 0 {
				continue
			}
			vn = rep.OutEdges()[0].Child()
		}
		z = b.s.Times(z, b.varSums[vn.VarID()])
	}

	return z
}

// betheFreeEnergy is
//
//	F = Σ_a Σ_x b_a(x) ln(b_a(x)/χ_a(x)) − Σ_i (deg_i − 1) Σ_x b_i(x) ln b_i(x)
//
// where a global factor contributes its ExpectedLogBelief.
func (b *BP) betheFreeEnergy() (float64, error) {
	bethe := 0.0
	for _, fn := range b.g.FactorNodes() {
		if gf, ok := model.AsGlobal(fn.Factor()); ok {
			in := make([]*model.VarTensor, len(fn.InEdges()))
			for k, ie := range fn.InEdges() {
				in[k] = b.msgs[ie.ID()].message
			}
			e, err := gf.ExpectedLogBelief(in)
			if err != nil {
				return 0, fmt.Errorf("factor %d: %w", fn.FactorID(), err)
			}
			bethe += e
			continue
		}
		bel := b.facBeliefs[fn.FactorID()]
		f := fn.Factor()
		for c := 0; c < bel.Len(); c++ {
			v := bel.Value(c)
			if v == b.s.Zero() {
				continue
			}
			bethe += b.s.ToReal(v) * (b.s.ToLogProb(v) - f.LogUnnormalizedScore(c))
		}
	}
	for _, vn := range b.g.VarNodes() {
		bel := b.varBeliefs[vn.VarID()]
		ent := 0.0
		for c := 0; c < bel.Len(); c++ {
			v := bel.Value(c)
			if v == b.s.Zero() {
				continue
			}
			ent += b.s.ToReal(v) * b.s.ToLogProb(v)
		}
		bethe -= float64(len(vn.OutEdges())-1) * ent
	}

	return bethe, nil
}
