package model_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/ermabp/model"
	"github.com/katalvlaran/ermabp/semiring"
)

func newVar(t require.TestingT, name string, n int) *model.Var {
	v, err := model.NewVar(model.Predicted, n, name, nil)
	require.NoError(t, err)

	return v
}

// VarSetSuite covers ordering and mixed-radix indexing.
type VarSetSuite struct {
	suite.Suite
	a, b, c *model.Var
}

func (s *VarSetSuite) SetupTest() {
	s.a = newVar(s.T(), "a", 2)
	s.b = newVar(s.T(), "b", 3)
	s.c = newVar(s.T(), "c", 2)
}

func (s *VarSetSuite) TestCanonicalOrder() {
	vs := model.NewVarSet(s.c, s.a, s.b, s.a, nil)
	require.Equal(s.T(), 3, vs.Len())
	require.Equal(s.T(), []*model.Var{s.a, s.b, s.c}, vs.Vars())
	require.True(s.T(), vs.Equal(model.NewVarSet(s.b, s.c, s.a)))
	require.Equal(s.T(), 12, vs.NumConfigs())
	require.Equal(s.T(), 1, model.NewVarSet().NumConfigs())
}

func (s *VarSetSuite) TestConfigIndexRoundTrip() {
	vs := model.NewVarSet(s.a, s.b, s.c)
	// last variable varies fastest
	idx, err := vs.ConfigIndex([]int{0, 0, 1})
	require.NoError(s.T(), err)
	require.Equal(s.T(), 1, idx)
	idx, err = vs.ConfigIndex([]int{1, 2, 1})
	require.NoError(s.T(), err)
	require.Equal(s.T(), 11, idx)

	for c := 0; c < vs.NumConfigs(); c++ {
		states, err := vs.States(c)
		require.NoError(s.T(), err)
		back, err := vs.ConfigIndex(states)
		require.NoError(s.T(), err)
		require.Equal(s.T(), c, back)
	}

	_, err = vs.ConfigIndex([]int{0, 3, 0})
	require.True(s.T(), errors.Is(err, model.ErrStateRange))
	_, err = vs.States(12)
	require.True(s.T(), errors.Is(err, model.ErrConfigRange))
}

func (s *VarSetSuite) TestProjectMatchesVarConfig() {
	vs := model.NewVarSet(s.a, s.b, s.c)
	sub := model.NewVarSet(s.c, s.a)
	idx, err := vs.Project(sub)
	require.NoError(s.T(), err)
	for c := 0; c < vs.NumConfigs(); c++ {
		vc, err := vs.Config(c)
		require.NoError(s.T(), err)
		want, err := vc.ConfigIndexOf(sub)
		require.NoError(s.T(), err)
		require.Equal(s.T(), want, idx[c], "config %d", c)
	}

	_, err = sub.Project(vs)
	require.True(s.T(), errors.Is(err, model.ErrNotSubset))
}

func (s *VarSetSuite) TestSetAlgebra() {
	ab := model.NewVarSet(s.a, s.b)
	bc := model.NewVarSet(s.b, s.c)
	require.True(s.T(), ab.Union(bc).Equal(model.NewVarSet(s.a, s.b, s.c)))
	require.True(s.T(), ab.Intersect(bc).Equal(model.NewVarSet(s.b)))
	require.True(s.T(), ab.Diff(bc).Equal(model.NewVarSet(s.a)))
	require.True(s.T(), ab.Union(bc).IsSuperset(ab))
	require.False(s.T(), ab.IsSuperset(bc))
	require.Equal(s.T(), "{a,b}", ab.String())
}

func (s *VarSetSuite) TestCheckedNumConfigs() {
	n, err := model.NewVarSet(s.a, s.b, s.c).CheckedNumConfigs()
	require.NoError(s.T(), err)
	require.Equal(s.T(), 12, n)

	vars := make([]*model.Var, 64)
	for i := range vars {
		vars[i] = newVar(s.T(), "bit", 2)
	}
	n, err = model.NewVarSet(vars[:62]...).CheckedNumConfigs()
	require.NoError(s.T(), err)
	require.Equal(s.T(), 1<<62, n)

	_, err = model.NewVarSet(vars[:63]...).CheckedNumConfigs()
	require.ErrorIs(s.T(), err, model.ErrTooManyConfigs)
	_, err = model.NewVarSet(vars...).CheckedNumConfigs()
	require.ErrorIs(s.T(), err, model.ErrTooManyConfigs)
}

func TestVarSetSuite(t *testing.T) {
	suite.Run(t, new(VarSetSuite))
}

func TestSameNameVarsAreDistinct(t *testing.T) {
	x1 := newVar(t, "x", 2)
	x2 := newVar(t, "x", 2)
	vs := model.NewVarSet(x2, x1)
	require.Equal(t, 2, vs.Len())
	require.Same(t, x1, vs.Get(0))
	require.Equal(t, 1, vs.IndexOf(x2))
}

func TestNewVarValidation(t *testing.T) {
	_, err := model.NewVar(model.Latent, 0, "z", nil)
	require.True(t, errors.Is(err, model.ErrBadNumStates))
	_, err = model.NewVar(model.Latent, 2, "z", []string{"only"})
	require.True(t, errors.Is(err, model.ErrStateNames))

	v, err := model.NewVar(model.Observed, 2, "y", []string{"no", "yes"})
	require.NoError(t, err)
	i, ok := v.StateIndex("yes")
	require.True(t, ok)
	require.Equal(t, 1, i)
	require.Equal(t, "OBSERVED", v.Type().String())
}

func TestVarConfig(t *testing.T) {
	a, b := newVar(t, "a", 2), newVar(t, "b", 3)
	vc := model.NewVarConfig()
	require.NoError(t, vc.Put(a, 1))
	require.NoError(t, vc.Put(b, 2))
	require.True(t, errors.Is(vc.Put(b, 3), model.ErrStateRange))
	require.Equal(t, 5, vc.ConfigIndex())

	sub, err := vc.Subset(model.NewVarSet(b))
	require.NoError(t, err)
	require.Equal(t, 2, sub.ConfigIndex())

	c := newVar(t, "c", 2)
	_, err = vc.ConfigIndexOf(model.NewVarSet(a, c))
	require.True(t, errors.Is(err, model.ErrMissingVar))

	other := model.NewVarConfig()
	require.NoError(t, other.Put(c, 1))
	merged := model.NewVarConfig()
	merged.PutAll(vc)
	merged.PutAll(other)
	require.Equal(t, 3, merged.Len())
	require.True(t, merged.Intersection(model.NewVarSet(a, b)).Equal(vc))
	require.Equal(t, "[a=1 b=2 c=1]", merged.String())
}

func TestTensorProdAndMarginal(t *testing.T) {
	a, b := newVar(t, "a", 2), newVar(t, "b", 2)
	for _, s := range []semiring.Algebra{semiring.Real{}, semiring.Log{}, semiring.LogSign{}} {
		ta := tensorOf(t, s, model.NewVarSet(a), 1, 2)
		tb := tensorOf(t, s, model.NewVarSet(b), 3, 5)

		// outer product expands the receiver
		require.NoError(t, ta.Prod(tb))
		require.True(t, ta.Vars().Equal(model.NewVarSet(a, b)))
		assert.InDeltaSlice(t, []float64{3, 5, 6, 10}, ta.Reals(), 1e-12, s.Name())

		mb, err := ta.Marginal(model.NewVarSet(b), false)
		require.NoError(t, err)
		assert.InDeltaSlice(t, []float64{9, 15}, mb.Reals(), 1e-12, s.Name())

		// subset product stays in place
		require.NoError(t, ta.Prod(tensorOf(t, s, model.NewVarSet(a), 2, 1)))
		assert.InDeltaSlice(t, []float64{6, 10, 6, 10}, ta.Reals(), 1e-12, s.Name())

		d, err := mb.Dot(mb)
		require.NoError(t, err)
		assert.InDelta(t, 81+225, s.ToReal(d), 1e-9)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	a := newVar(t, "a", 3)
	for _, s := range []semiring.Algebra{semiring.Real{}, semiring.Log{}, semiring.LogSign{}} {
		x := tensorOf(t, s, model.NewVarSet(a), 1, 3, 4)
		sum := x.Normalize()
		assert.InDelta(t, 8, s.ToReal(sum), 1e-12)
		before := x.Copy()
		sum = x.Normalize()
		assert.True(t, semiring.Equal(s, sum, s.One(), semiring.Tolerance))
		assert.True(t, before.Equal(x, semiring.Tolerance))
	}
}

func TestNormalizeZeroSumIsUniform(t *testing.T) {
	a := newVar(t, "a", 4)
	x := model.NewVarTensor(semiring.Log{}, model.NewVarSet(a), math.Inf(-1))
	sum := x.Normalize()
	require.True(t, math.IsInf(sum, -1))
	assert.InDeltaSlice(t, []float64{0.25, 0.25, 0.25, 0.25}, x.Reals(), 1e-12)
}

func TestTensorErrors(t *testing.T) {
	a, b := newVar(t, "a", 2), newVar(t, "b", 2)
	x := model.NewVarTensor(semiring.Real{}, model.NewVarSet(a), 1)
	y := model.NewVarTensor(semiring.Log{}, model.NewVarSet(a), 0)
	z := model.NewVarTensor(semiring.Real{}, model.NewVarSet(b), 1)

	require.True(t, errors.Is(x.Prod(y), model.ErrAlgebraMismatch))
	require.True(t, errors.Is(x.Add(z), model.ErrVarSetMismatch))
	_, err := x.Marginal(model.NewVarSet(b), false)
	require.True(t, errors.Is(err, model.ErrNotSubset))
	_, err = model.NewVarTensorFromValues(semiring.Real{}, model.NewVarSet(a), []float64{1})
	require.True(t, errors.Is(err, model.ErrLength))

	// tensors from different algebras compare in real space
	require.True(t, x.Equal(y, semiring.Tolerance))

	x.SetValue(1, math.NaN())
	require.True(t, x.ContainsNaN())
	require.True(t, errors.Is(model.ValidateNotNaN("x", x), model.ErrNaN))
}

func TestConvertAlgebra(t *testing.T) {
	a := newVar(t, "a", 3)
	x := tensorOf(t, semiring.LogSign{}, model.NewVarSet(a), 0.5, -2, 0)
	r := x.ConvertAlgebra(semiring.Real{})
	assert.InDeltaSlice(t, []float64{0.5, -2, 0}, r.Values(), 1e-12)
	require.True(t, x.Equal(r, semiring.Tolerance))
}

func TestClampFactor(t *testing.T) {
	a := newVar(t, "a", 3)
	f, err := model.NewClampFactor(a, 2)
	require.NoError(t, err)
	require.True(t, math.IsInf(f.LogUnnormalizedScore(0), -1))
	require.Equal(t, 0.0, f.LogUnnormalizedScore(2))
	_, err = model.NewClampFactor(a, 3)
	require.True(t, errors.Is(err, model.ErrStateRange))
}

func TestExplicitGlobalFactorMessages(t *testing.T) {
	a, b := newVar(t, "a", 2), newVar(t, "b", 2)
	f, err := model.NewExplicitFactorFromReal(model.NewVarSet(a, b), []float64{1, 2, 3, 4})
	require.NoError(t, err)
	g := model.NewExplicitGlobalFactor(f)
	_, ok := model.AsGlobal(g)
	require.True(t, ok)
	_, ok = model.AsGlobal(f)
	require.False(t, ok)

	s := semiring.Real{}
	in := []*model.VarTensor{tensorOf(t, s, model.NewVarSet(a), 1, 2), tensorOf(t, s, model.NewVarSet(b), 5, 7)}
	out := []*model.VarTensor{model.NewVarTensor(s, model.NewVarSet(a), 0), model.NewVarTensor(s, model.NewVarSet(b), 0)}
	require.NoError(t, g.CreateMessages(in, out))
	// out to a: sum_b f(a,b) in_b(b)
	assert.InDeltaSlice(t, []float64{1*5 + 2*7, 3*5 + 4*7}, out[0].Values(), 1e-12)
	assert.InDeltaSlice(t, []float64{1*1 + 3*2, 2*1 + 4*2}, out[1].Values(), 1e-12)

	outAdj := []*model.VarTensor{tensorOf(t, s, model.NewVarSet(a), 1, 0), model.NewVarTensor(s, model.NewVarSet(b), 0)}
	inAdj := []*model.VarTensor{model.NewVarTensor(s, model.NewVarSet(a), 0), model.NewVarTensor(s, model.NewVarSet(b), 0)}
	require.NoError(t, g.BackwardCreateMessages(in, outAdj, inAdj))
	// d out_a(0) / d in_b = f(0, b)
	assert.InDeltaSlice(t, []float64{1, 2}, inAdj[1].Values(), 1e-12)
	assert.InDeltaSlice(t, []float64{0, 0}, inAdj[0].Values(), 1e-12)

	e, err := g.ExpectedLogBelief(in)
	require.NoError(t, err)
	want := 0.0
	raw := []float64{1 * 1 * 5, 2 * 1 * 7, 3 * 2 * 5, 4 * 2 * 7}
	pot := []float64{1, 2, 3, 4}
	z := 0.0
	for _, r := range raw {
		z += r
	}
	for i, r := range raw {
		want += r / z * math.Log(r/z/pot[i])
	}
	assert.InDelta(t, want, e, 1e-12)

	require.True(t, errors.Is(g.CreateMessages(in[:1], out), model.ErrMessageCount))
}

func tensorOf(t require.TestingT, s semiring.Algebra, vars *model.VarSet, reals ...float64) *model.VarTensor {
	vals := make([]float64, len(reals))
	for i, r := range reals {
		vals[i] = s.FromReal(r)
	}
	x, err := model.NewVarTensorFromValues(s, vars, vals)
	require.NoError(t, err)

	return x
}
