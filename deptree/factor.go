// SPDX-License-Identifier: MIT

package deptree

import (
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/katalvlaran/ermabp/hypergraph"
	"github.com/katalvlaran/ermabp/model"
)

// Link variable states.
const (
	False = 0
	True  = 1
)

// Option configures a ProjDepTreeFactor.
type Option func(*ProjDepTreeFactor)

// WithLogger sets the logger used for numerical warnings.
func WithLogger(l *slog.Logger) Option {
	return func(f *ProjDepTreeFactor) {
		if l != nil {
			f.logger = l
		}
	}
}

// ProjDepTreeFactor is the projective dependency tree global factor.
// It is immutable after construction and safe for concurrent use.
type ProjDepTreeFactor struct {
	n      int
	vars   *model.VarSet
	links  []*model.Var // by arc index, nil on the diagonal
	arcs   []int        // arcs[k] is the arc index of vars.Get(k)
	hg     *hypergraph.Hypergraph
	logger *slog.Logger
}

// LinkName is the variable name of parent→child; parent -1 is the wall.
func LinkName(parent, child int) string {
	return fmt.Sprintf("Link_%d_%d", parent, child)
}

// NewProjDepTreeFactor creates the factor and its n² link variables of type typ.
func NewProjDepTreeFactor(n int, typ model.VarType, opts ...Option) (*ProjDepTreeFactor, error) {
	if n < 1 {
		return nil, fmt.Errorf("NewProjDepTreeFactor(%d): %w", n, ErrNumTokens)
	}
	hg, err := eisner(n)
	if err != nil {
		return nil, fmt.Errorf("NewProjDepTreeFactor: %w", err)
	}
	f := &ProjDepTreeFactor{
		n:      n,
		links:  make([]*model.Var, (n+1)*n),
		hg:     hg,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(f)
	}

	all := make([]*model.Var, 0, n*n)
	for p := -1; p < n; p++ {
		for c := 0; c < n; c++ {
			if p == c {
				continue
			}
			v, err := model.NewVar(typ, 2, LinkName(p, c), []string{"FALSE", "TRUE"})
			if err != nil {
				return nil, fmt.Errorf("NewProjDepTreeFactor: %w", err)
			}
			f.links[arcIndex(n, p, c)] = v
			all = append(all, v)
		}
	}
	f.vars = model.NewVarSet(all...)
	f.arcs = make([]int, f.vars.Len())
	for a, v := range f.links {
		if v != nil {
			f.arcs[f.vars.IndexOf(v)] = a
		}
	}

	return f, nil
}

// NumTokens is the sentence length n.
func (f *ProjDepTreeFactor) NumTokens() int { return f.n }

func (f *ProjDepTreeFactor) Vars() *model.VarSet { return f.vars }

// LinkVar returns the link variable of parent→child, or nil when the pair is
// not a valid arc.
func (f *ProjDepTreeFactor) LinkVar(parent, child int) *model.Var {
	if parent < -1 || parent >= f.n || child < 0 || child >= f.n || parent == child {
		return nil
	}

	return f.links[arcIndex(f.n, parent, child)]
}

// Parents decodes a configuration index of Vars into a parent array, where
// parents[j] is -1 for the root and -2 when j has no parent. ok is false
// when some token has more than one parent.
func (f *ProjDepTreeFactor) Parents(configIndex int) (parents []int, ok bool, err error) {
	states, err := f.vars.States(configIndex)
	if err != nil {
		return nil, false, fmt.Errorf("Parents: %w", err)
	}
	parents = make([]int, f.n)
	for i := range parents {
		parents[i] = -2
	}
	ok = true
	for k, st := range states {
		if st != True {
			continue
		}
		p, c := arcOf(f.n, f.arcs[k])
		if parents[c] != -2 {
			ok = false
		}
		parents[c] = p
	}

	return parents, ok, nil
}

// LogUnnormalizedScore is 0 for a single-rooted projective tree and -Inf otherwise.
func (f *ProjDepTreeFactor) LogUnnormalizedScore(configIndex int) float64 {
	parents, ok, err := f.Parents(configIndex)
	if err != nil || !ok || !IsProjectiveTree(parents) {
		return math.Inf(-1)
	}

	return 0
}
