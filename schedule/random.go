package schedule

import (
	"math/rand"

	"github.com/katalvlaran/ermabp/core"
)

// defaultRNGSeed is used when callers pass seed==0.
const defaultRNGSeed int64 = 1

// rngFromSeed returns a deterministic *rand.Rand.
// Policy: seed==0 ⇒ use defaultRNGSeed; otherwise use the provided seed verbatim.
func rngFromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultRNGSeed
	}

	return rand.New(rand.NewSource(seed))
}

// Random shuffles every edge anew on each Order call.
// It owns its rng and must not be shared across goroutines.
type Random struct {
	edges []*core.FgEdge
	rng   *rand.Rand
}

// NewRandom returns a random schedule seeded deterministically.
func NewRandom(g *core.FactorGraph, seed int64) (*Random, error) {
	if g == nil {
		return nil, ErrGraphNil
	}

	return &Random{edges: g.Edges(), rng: rngFromSeed(seed)}, nil
}

// Order returns a fresh Fisher–Yates shuffle of all edges.
func (r *Random) Order() []*core.FgEdge {
	out := append([]*core.FgEdge(nil), r.edges...)
	for i := len(out) - 1; i > 0; i-- {
		j := r.rng.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}

	return out
}
