package erma_test

import (
	"context"
	"testing"

	"github.com/katalvlaran/ermabp/builder"
	"github.com/katalvlaran/ermabp/core"
	"github.com/katalvlaran/ermabp/erma"
	"github.com/katalvlaran/ermabp/semiring"
)

func benchGrid(b *testing.B) *core.FactorGraph {
	b.Helper()
	g, err := builder.BuildGraph([]builder.BuilderOption{builder.WithSeed(3)}, builder.Grid(8, 8))
	if err != nil {
		b.Fatal(err)
	}

	return g
}

// BenchmarkForwardGrid runs 20 parallel iterations on an 8x8 grid without a tape.
func BenchmarkForwardGrid(b *testing.B) {
	g := benchGrid(b) // pre-build graph once
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		bp, _ := erma.New(g, erma.WithMaxIterations(20), erma.WithKeepTape(false))
		_ = bp.Forward(ctx)
	}
}

// BenchmarkForwardBackwardGrid adds tape recording and the reverse pass.
func BenchmarkForwardBackwardGrid(b *testing.B) {
	g := benchGrid(b)
	ctx := context.Background()
	one := semiring.LogSign{}.One()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		bp, _ := erma.New(g, erma.WithMaxIterations(20), erma.WithAlgebra(semiring.LogSign{}))
		_ = bp.Forward(ctx)
		adj, _ := bp.OutputAdj()
		for _, t := range adj.Vars {
			t.SetValue(0, one)
		}
		_ = bp.Backward(ctx)
	}
}

// BenchmarkDepTree runs tree-like BP on an 8-token sentence.
func BenchmarkDepTree(b *testing.B) {
	g, err := builder.BuildGraph([]builder.BuilderOption{builder.WithSeed(5)}, builder.DepTree(8))
	if err != nil {
		b.Fatal(err)
	}
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		bp, _ := erma.New(g, erma.WithMaxIterations(2), erma.WithUpdateOrder(erma.Sequential))
		_ = bp.Forward(ctx)
	}
}
