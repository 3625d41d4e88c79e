// Package builder contains unit tests for the configuration primitives
// (builderConfig and BuilderOption) to ensure correct application and override behavior.
package builder

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ermabp/model"
)

// TestIDSchemeOptions verifies that naming options are applied in order.
func TestIDSchemeOptions(t *testing.T) {
	t.Parallel()

	require.Equal(t, "x7", newBuilderConfig().idFn(7))
	require.Equal(t, "A", newBuilderConfig(WithSymbolIDs()).idFn(0))
	require.Equal(t, "AB", newBuilderConfig(WithExcelColumnIDs()).idFn(27))
	require.Equal(t, "tok3", newBuilderConfig(WithVarPrefix("tok")).idFn(3))
	// last option wins
	require.Equal(t, "3", newBuilderConfig(WithSymbolIDs(), WithDefaultIDs()).idFn(3))
	require.Panics(t, func() { WithIDScheme(nil) })
}

// TestRNGOptions verifies that RNG options configure the rng field and that
// WithSeed is reproducible.
func TestRNGOptions(t *testing.T) {
	t.Parallel()

	require.Nil(t, newBuilderConfig().rng)

	exp := rand.New(rand.NewSource(123))
	require.Same(t, exp, newBuilderConfig(WithRand(exp)).rng)
	require.Panics(t, func() { WithRand(nil) })

	c1, c2 := newBuilderConfig(WithSeed(42)), newBuilderConfig(WithSeed(42))
	require.Equal(t, c1.rng.Int63(), c2.rng.Int63())
	require.Equal(t, c1.rng.Int63(), c2.rng.Int63())
}

// TestPotentialOptions verifies the default generator and override order.
func TestPotentialOptions(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(1))
	require.Equal(t, DefaultLogPotential, newBuilderConfig().potentialFn(rng))
	require.Equal(t, 2.5, newBuilderConfig(WithConstantPotential(2.5)).potentialFn(rng))

	cfg := newBuilderConfig(WithConstantPotential(9), WithUniformPotential(-1, 1))
	v := cfg.potentialFn(rng)
	require.GreaterOrEqual(t, v, -1.0)
	require.LessOrEqual(t, v, 1.0)
	require.Panics(t, func() { WithPotentialFn(nil) })
}

// TestArityAndTypeOptions covers WithNumStates and WithVarType.
func TestArityAndTypeOptions(t *testing.T) {
	t.Parallel()

	cfg := newBuilderConfig()
	require.Equal(t, defaultNumStates, cfg.numStates)
	require.Equal(t, model.Predicted, cfg.varType)

	cfg = newBuilderConfig(WithNumStates(3), WithVarType(model.Latent))
	require.Equal(t, 3, cfg.numStates)
	require.Equal(t, model.Latent, cfg.varType)
	require.Panics(t, func() { WithNumStates(0) })
}
