package builder_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ermabp/builder"
)

// TestPotentialFnConstructors verifies that generator constructors panic on
// invalid parameters.
func TestPotentialFnConstructors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		constructor func() builder.PotentialFn
	}{
		{"ConstantPotentialFn_NaN", func() builder.PotentialFn { return builder.ConstantPotentialFn(math.NaN()) }},
		{"ConstantPotentialFn_Inf", func() builder.PotentialFn { return builder.ConstantPotentialFn(math.Inf(-1)) }},
		{"UniformPotentialFn_maxLessThanMin", func() builder.PotentialFn { return builder.UniformPotentialFn(5, 4) }},
		{"NormalPotentialFn_stddevNegative", func() builder.PotentialFn { return builder.NormalPotentialFn(0, -0.1) }},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Panics(t, func() { tc.constructor() })
		})
	}
}

// TestPotentialFnBehavior covers nil-RNG defaults and sampling ranges.
func TestPotentialFnBehavior(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(3))
	require.Equal(t, builder.DefaultLogPotential, builder.DefaultPotentialFn(rng))
	require.Equal(t, -2.0, builder.ConstantPotentialFn(-2)(nil))

	uni := builder.UniformPotentialFn(-3, 3)
	require.Equal(t, builder.DefaultLogPotential, uni(nil))
	for i := 0; i < 100; i++ {
		v := uni(rng)
		require.GreaterOrEqual(t, v, -3.0)
		require.LessOrEqual(t, v, 3.0)
	}
	require.Equal(t, 1.5, builder.UniformPotentialFn(1.5, 1.5)(rng))

	norm := builder.NormalPotentialFn(10, 0)
	require.Equal(t, builder.DefaultLogPotential, norm(nil))
	require.Equal(t, 10.0, norm(rng))
}
