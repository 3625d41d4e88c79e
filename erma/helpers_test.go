package erma_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ermabp/bruteforce"
	"github.com/katalvlaran/ermabp/core"
	"github.com/katalvlaran/ermabp/erma"
	"github.com/katalvlaran/ermabp/model"
	"github.com/katalvlaran/ermabp/semiring"
)

var algebras = []semiring.Algebra{semiring.Real{}, semiring.Log{}, semiring.LogSign{}}

// exactOpts is the configuration under which BP must equal brute force on trees.
func exactOpts(s semiring.Algebra) []erma.Option {
	return []erma.Option{
		erma.WithSchedule(erma.TreeLike),
		erma.WithUpdateOrder(erma.Sequential),
		erma.WithMaxIterations(1),
		erma.WithNormalizeMessages(false),
		erma.WithAlgebra(s),
	}
}

func run(t *testing.T, g *core.FactorGraph, opts ...erma.Option) *erma.BP {
	t.Helper()
	b, err := erma.New(g, opts...)
	require.NoError(t, err)
	require.NoError(t, b.Forward(context.Background()))

	return b
}

func binary(t *testing.T, name string) *model.Var {
	t.Helper()
	v, err := model.NewVar(model.Predicted, 2, name, nil)
	require.NoError(t, err)

	return v
}

func addReal(t *testing.T, g *core.FactorGraph, potentials []float64, vars ...*model.Var) int {
	t.Helper()
	f, err := model.NewExplicitFactorFromReal(model.NewVarSet(vars...), potentials)
	require.NoError(t, err)
	id, err := g.AddFactor(f)
	require.NoError(t, err)

	return id
}

// requireExact compares beliefs and partition with brute-force enumeration.
func requireExact(t *testing.T, g *core.FactorGraph, b *erma.BP, tol float64) {
	t.Helper()
	exact, err := bruteforce.Infer(g)
	require.NoError(t, err)

	for id := 0; id < g.NumVars(); id++ {
		bel, err := b.VarBelief(id)
		require.NoError(t, err)
		require.InDeltaSlice(t, exact.VarMarginal(id).Reals(), bel.Reals(), tol, "var %s", g.Var(id))
	}
	for id := 0; id < g.NumFactors(); id++ {
		if _, ok := model.AsGlobal(g.Factor(id)); ok {
			continue
		}
		bel, err := b.FactorBelief(id)
		require.NoError(t, err)
		require.InDeltaSlice(t, exact.FactorMarginal(id).Reals(), bel.Reals(), tol, "factor %d", id)
	}
	logZ, err := b.LogPartition()
	require.NoError(t, err)
	require.InDelta(t, exact.LogPartition(), logZ, tol)
}

// beliefLoss is L = Σ w·b over every variable belief and explicit factor belief.
type beliefLoss struct {
	vars, factors [][]float64
}

func newBeliefLoss(g *core.FactorGraph, draw func() float64) *beliefLoss {
	l := &beliefLoss{
		vars:    make([][]float64, g.NumVars()),
		factors: make([][]float64, g.NumFactors()),
	}
	for id := range l.vars {
		l.vars[id] = make([]float64, g.Var(id).NumStates())
		for c := range l.vars[id] {
			l.vars[id][c] = draw()
		}
	}
	for id := range l.factors {
		f := g.Factor(id)
		if _, ok := model.AsGlobal(f); ok {
			continue
		}
		l.factors[id] = make([]float64, f.Vars().NumConfigs())
		for c := range l.factors[id] {
			l.factors[id][c] = draw()
		}
	}

	return l
}

func (l *beliefLoss) value(t *testing.T, b *erma.BP) float64 {
	t.Helper()
	sum := 0.0
	for id, w := range l.vars {
		bel, err := b.VarBelief(id)
		require.NoError(t, err)
		for c, r := range bel.Reals() {
			sum += w[c] * r
		}
	}
	for id, w := range l.factors {
		if w == nil {
			continue
		}
		bel, err := b.FactorBelief(id)
		require.NoError(t, err)
		for c, r := range bel.Reals() {
			sum += w[c] * r
		}
	}

	return sum
}

func (l *beliefLoss) seed(t *testing.T, b *erma.BP) {
	t.Helper()
	adj, err := b.OutputAdj()
	require.NoError(t, err)
	s := b.Algebra()
	for id, w := range l.vars {
		for c, x := range w {
			adj.Vars[id].SetValue(c, s.FromReal(x))
		}
	}
	for id, w := range l.factors {
		for c, x := range w {
			adj.Factors[id].SetValue(c, s.FromReal(x))
		}
	}
}

// requireGradient checks Backward against centered finite differences on
// every entry of every explicit factor.
func requireGradient(t *testing.T, g *core.FactorGraph, l *beliefLoss, opts ...erma.Option) {
	t.Helper()
	b := run(t, g, opts...)
	l.seed(t, b)
	require.NoError(t, b.Backward(context.Background()))
	grads, err := b.PotentialsAdj()
	require.NoError(t, err)
	s := b.Algebra()

	for id := 0; id < g.NumFactors(); id++ {
		f, ok := g.Factor(id).(*model.ExplicitFactor)
		if !ok {
			require.Nil(t, grads[id])
			continue
		}
		for c := 0; c < f.Vars().NumConfigs(); c++ {
			logChi := f.LogUnnormalizedScore(c)
			chi := math.Exp(logChi)
			h := 1e-5 * chi

			f.SetValue(c, chi+h)
			up := l.value(t, run(t, g, opts...))
			f.SetValue(c, chi-h)
			down := l.value(t, run(t, g, opts...))
			f.SetLogValue(c, logChi)

			fd := (up - down) / (2 * h)
			got := s.ToReal(grads[id].Value(c))
			require.InDelta(t, fd, got, 1e-6+1e-5*math.Abs(fd), "factor %d config %d", id, c)
		}
	}
}
