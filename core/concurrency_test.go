// Package core_test verifies thread-safety of core.FactorGraph under concurrent operations.
package core_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ermabp/core"
	"github.com/katalvlaran/ermabp/model"
)

// TestConcurrentAddFactor ensures concurrent AddFactor calls keep edge IDs dense.
func TestConcurrentAddFactor(t *testing.T) {
	g := core.NewFactorGraph()
	hub, err := model.NewVar(model.Predicted, 2, "hub", nil)
	require.NoError(t, err)

	const num = 200
	leaves := make([]*model.Var, num)
	for i := range leaves {
		leaves[i], err = model.NewVar(model.Predicted, 2, fmt.Sprintf("v%d", i), nil)
		require.NoError(t, err)
	}

	var wg sync.WaitGroup
	wg.Add(num)
	errs := make([]error, num)
	for i := 0; i < num; i++ {
		go func(i int) {
			defer wg.Done()
			_, errs[i] = g.AddFactor(model.NewExplicitFactor(model.NewVarSet(hub, leaves[i])))
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	require.Equal(t, num+1, g.NumVars())
	require.Equal(t, 4*num, g.NumEdges())
	for i, e := range g.Edges() {
		require.Equal(t, i, e.ID())
	}
}

// TestConcurrentReaders validates that snapshots can be taken while factors are added.
func TestConcurrentReaders(t *testing.T) {
	g := core.NewFactorGraph()
	const rounds = 100
	var wg sync.WaitGroup
	wg.Add(2 * rounds)
	for i := 0; i < rounds; i++ {
		go func(i int) {
			defer wg.Done()
			v, err := model.NewVar(model.Latent, 2, fmt.Sprintf("x%d", i), nil)
			if err != nil {
				return
			}
			_, _ = g.AddFactor(model.NewExplicitFactor(model.NewVarSet(v)))
		}(i)
		go func() {
			defer wg.Done()
			_ = g.Edges()
			_ = g.Stats()
		}()
	}
	wg.Wait()
	require.Equal(t, rounds, g.NumFactors())
}
