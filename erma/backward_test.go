package erma_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ermabp/builder"
	"github.com/katalvlaran/ermabp/erma"
	"github.com/katalvlaran/ermabp/model"
	"github.com/katalvlaran/ermabp/semiring"
)

func TestGradientMatchesFiniteDifferences(t *testing.T) {
	cases := []struct {
		name string
		cons []builder.Constructor
		opts []erma.Option
	}{
		{"chain/tree/normalized", []builder.Constructor{builder.Chain(4)}, []erma.Option{
			erma.WithUpdateOrder(erma.Sequential), erma.WithMaxIterations(3),
		}},
		{"chain/tree/unnormalized", []builder.Constructor{builder.Chain(3)}, []erma.Option{
			erma.WithUpdateOrder(erma.Sequential), erma.WithMaxIterations(1), erma.WithNormalizeMessages(false),
		}},
		{"chain/tree/real", []builder.Constructor{builder.Chain(3)}, []erma.Option{
			erma.WithUpdateOrder(erma.Sequential), erma.WithMaxIterations(2), erma.WithAlgebra(semiring.Real{}),
		}},
		{"star/parallel", []builder.Constructor{builder.Star(4)}, []erma.Option{
			erma.WithUpdateOrder(erma.Parallel), erma.WithMaxIterations(10),
		}},
		{"cycle/parallel", []builder.Constructor{builder.Cycle(4)}, []erma.Option{
			erma.WithUpdateOrder(erma.Parallel), erma.WithMaxIterations(6),
		}},
		{"cycle/random", []builder.Constructor{builder.Cycle(4)}, []erma.Option{
			erma.WithSchedule(erma.Random), erma.WithUpdateOrder(erma.Sequential),
			erma.WithMaxIterations(4), erma.WithSeed(5),
		}},
		{"deptree/tree", []builder.Constructor{builder.DepTree(3)}, []erma.Option{
			erma.WithUpdateOrder(erma.Sequential), erma.WithMaxIterations(2),
		}},
		{"deptree/parallel", []builder.Constructor{builder.DepTree(2)}, []erma.Option{
			erma.WithUpdateOrder(erma.Parallel), erma.WithMaxIterations(5),
		}},
	}
	for i, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g, err := builder.BuildGraph([]builder.BuilderOption{
				builder.WithSeed(int64(100 + i)),
				builder.WithUniformPotential(-1, 1),
			}, tc.cons...)
			require.NoError(t, err)

			rng := rand.New(rand.NewSource(int64(i)))
			loss := newBeliefLoss(g, rng.NormFloat64)
			opts := append([]erma.Option{erma.WithAlgebra(semiring.LogSign{})}, tc.opts...)
			requireGradient(t, g, loss, opts...)
		})
	}
}

// A loss constant on the simplex has zero gradient everywhere.
func TestBackwardConstantAdjointIsZero(t *testing.T) {
	g, err := builder.BuildGraph([]builder.BuilderOption{
		builder.WithSeed(12),
		builder.WithNormalPotential(0, 1),
	}, builder.Grid(2, 2), builder.DepTree(2))
	require.NoError(t, err)

	for _, order := range []erma.UpdateOrder{erma.Sequential, erma.Parallel} {
		b := run(t, g,
			erma.WithAlgebra(semiring.LogSign{}),
			erma.WithUpdateOrder(order),
			erma.WithMaxIterations(5))
		adj, err := b.OutputAdj()
		require.NoError(t, err)
		for _, a := range adj.Vars {
			a.Fill(b.Algebra().One())
		}
		for _, a := range adj.Factors {
			if a != nil {
				a.Fill(b.Algebra().One())
			}
		}
		require.NoError(t, b.Backward(context.Background()))

		grads, err := b.PotentialsAdj()
		require.NoError(t, err)
		for id, gr := range grads {
			if _, ok := model.AsGlobal(g.Factor(id)); ok {
				require.Nil(t, gr)
				continue
			}
			require.False(t, gr.ContainsNaN())
			for _, r := range gr.Reals() {
				require.InDelta(t, 0, r, 1e-9)
			}
		}
	}
}

func TestAccumulatorSumsRuns(t *testing.T) {
	g, err := builder.BuildGraph([]builder.BuilderOption{
		builder.WithSeed(4),
		builder.WithUniformPotential(-1, 1),
	}, builder.Chain(3))
	require.NoError(t, err)
	s := semiring.LogSign{}
	acc, err := erma.NewAdjointAccumulator(s, g)
	require.NoError(t, err)
	loss := newBeliefLoss(g, rand.New(rand.NewSource(1)).NormFloat64)

	var single []*model.VarTensor
	for r := 0; r < 2; r++ {
		b := run(t, g, erma.WithAlgebra(s), erma.WithAccumulator(acc))
		loss.seed(t, b)
		require.NoError(t, b.Backward(context.Background()))
		single, err = b.PotentialsAdj()
		require.NoError(t, err)
	}
	require.Equal(t, 2, acc.Runs())

	total := acc.Adjoints()
	for id, gr := range single {
		want := gr.Reals()
		for c := range want {
			want[c] *= 2
		}
		require.InDeltaSlice(t, want, total[id].Reals(), 1e-12)
	}

	acc.Reset()
	require.Equal(t, 0, acc.Runs())
	for _, a := range acc.Adjoints() {
		for _, r := range a.Reals() {
			require.Zero(t, r)
		}
	}
}

func TestAccumulatorRejectsWholeRun(t *testing.T) {
	g, err := builder.BuildGraph(nil, builder.Chain(3))
	require.NoError(t, err)
	s := semiring.LogSign{}
	acc, err := erma.NewAdjointAccumulator(s, g)
	require.NoError(t, err)

	last := g.NumFactors() - 1
	cases := []struct {
		name string
		bad  *model.VarTensor
		want error
	}{
		{"var set", model.NewVarTensor(s, g.Factor(0).Vars(), s.One()), model.ErrVarSetMismatch},
		{"algebra", model.NewVarTensor(semiring.Real{}, g.Factor(last).Vars(), 1), model.ErrAlgebraMismatch},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			adjs := acc.Adjoints()
			adjs[0].Fill(s.One())
			adjs[last] = tc.bad
			require.ErrorIs(t, acc.Add(adjs), tc.want)

			require.Zero(t, acc.Runs())
			for _, a := range acc.Adjoints() {
				for _, r := range a.Reals() {
					require.Zero(t, r)
				}
			}
		})
	}

	require.ErrorIs(t, acc.Add(nil), model.ErrLength)
}
