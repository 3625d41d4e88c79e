package model

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// VarSet is an immutable, canonically ordered set of variables.
// A nil *VarSet behaves as the empty set.
type VarSet struct {
	vars []*Var
}

// NewVarSet builds a set from vars, dropping nils and duplicates.
func NewVarSet(vars ...*Var) *VarSet {
	out := make([]*Var, 0, len(vars))
	for _, v := range vars {
		if v != nil {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].before(out[j]) })
	// drop duplicates in place
	k := 0
	for i, v := range out {
		if i > 0 && v == out[k-1] {
			continue
		}
		out[k] = v
		k++
	}

	return &VarSet{vars: out[:k]}
}

// Len returns the number of variables.
func (vs *VarSet) Len() int {
	if vs == nil {
		return 0
	}

	return len(vs.vars)
}

// Get returns the i-th variable in canonical order.
func (vs *VarSet) Get(i int) *Var { return vs.vars[i] }

// Vars returns a copy of the variables in canonical order.
func (vs *VarSet) Vars() []*Var {
	if vs == nil {
		return nil
	}

	return append([]*Var(nil), vs.vars...)
}

// IndexOf returns the position of v, or -1.
func (vs *VarSet) IndexOf(v *Var) int {
	n := vs.Len()
	i := sort.Search(n, func(i int) bool { return !vs.vars[i].before(v) })
	if i < n && vs.vars[i] == v {
		return i
	}

	return -1
}

// Contains reports whether v is a member.
func (vs *VarSet) Contains(v *Var) bool { return vs.IndexOf(v) >= 0 }

// IsSuperset reports whether every variable of o is in vs.
func (vs *VarSet) IsSuperset(o *VarSet) bool {
	for i := 0; i < o.Len(); i++ {
		if !vs.Contains(o.vars[i]) {
			return false
		}
	}

	return true
}

// Equal reports set equality.
func (vs *VarSet) Equal(o *VarSet) bool {
	if vs.Len() != o.Len() {
		return false
	}
	for i := 0; i < vs.Len(); i++ {
		if vs.vars[i] != o.vars[i] {
			return false
		}
	}

	return true
}

// Union returns vs ∪ o.
func (vs *VarSet) Union(o *VarSet) *VarSet {
	all := make([]*Var, 0, vs.Len()+o.Len())
	all = append(all, vs.Vars()...)
	all = append(all, o.Vars()...)

	return NewVarSet(all...)
}

// Intersect returns vs ∩ o.
func (vs *VarSet) Intersect(o *VarSet) *VarSet {
	out := make([]*Var, 0, vs.Len())
	for i := 0; i < vs.Len(); i++ {
		if o.Contains(vs.vars[i]) {
			out = append(out, vs.vars[i])
		}
	}

	return &VarSet{vars: out}
}

// Diff returns vs \ o.
func (vs *VarSet) Diff(o *VarSet) *VarSet {
	out := make([]*Var, 0, vs.Len())
	for i := 0; i < vs.Len(); i++ {
		if !o.Contains(vs.vars[i]) {
			out = append(out, vs.vars[i])
		}
	}

	return &VarSet{vars: out}
}

// NumConfigs is the product of the state counts; 1 for the empty set.
// The result wraps on overflow; use CheckedNumConfigs for large sets.
func (vs *VarSet) NumConfigs() int {
	n := 1
	for i := 0; i < vs.Len(); i++ {
		n *= vs.vars[i].numStates
	}

	return n
}

// CheckedNumConfigs is NumConfigs with an ErrTooManyConfigs error when the
// product does not fit in an int.
func (vs *VarSet) CheckedNumConfigs() (int, error) {
	n := 1
	for i := 0; i < vs.Len(); i++ {
		k := vs.vars[i].numStates
		if n > math.MaxInt/k {
			return 0, fmt.Errorf("CheckedNumConfigs(%d vars): %w", vs.Len(), ErrTooManyConfigs)
		}
		n *= k
	}

	return n, nil
}

// ConfigIndex encodes one state per variable (canonical order) as a
// mixed-radix index, most significant variable first.
func (vs *VarSet) ConfigIndex(states []int) (int, error) {
	if len(states) != vs.Len() {
		return 0, fmt.Errorf("ConfigIndex: %d states for %d vars: %w", len(states), vs.Len(), ErrLength)
	}
	idx := 0
	for i, v := range vs.vars {
		if states[i] < 0 || states[i] >= v.numStates {
			return 0, fmt.Errorf("ConfigIndex: %s=%d: %w", v.name, states[i], ErrStateRange)
		}
		idx = idx*v.numStates + states[i]
	}

	return idx, nil
}

// States decodes a configuration index into one state per variable.
func (vs *VarSet) States(configIndex int) ([]int, error) {
	if configIndex < 0 || configIndex >= vs.NumConfigs() {
		return nil, fmt.Errorf("States(%d): %w", configIndex, ErrConfigRange)
	}
	states := make([]int, vs.Len())
	for i := vs.Len() - 1; i >= 0; i-- {
		ns := vs.vars[i].numStates
		states[i] = configIndex % ns
		configIndex /= ns
	}

	return states, nil
}

// Config decodes a configuration index into a VarConfig.
func (vs *VarSet) Config(configIndex int) (*VarConfig, error) {
	states, err := vs.States(configIndex)
	if err != nil {
		return nil, err
	}
	vc := NewVarConfig()
	for i, v := range vs.vars {
		vc.states[v] = states[i]
	}

	return vc, nil
}

// Project maps every configuration index of vs to the index of its
// restriction in sub. sub must be a subset of vs.
// Complexity: O(NumConfigs) amortised.
func (vs *VarSet) Project(sub *VarSet) ([]int, error) {
	if !vs.IsSuperset(sub) {
		return nil, fmt.Errorf("Project(%s onto %s): %w", vs, sub, ErrNotSubset)
	}
	n := vs.Len()
	strides := make([]int, n)
	stride := 1
	for k := sub.Len() - 1; k >= 0; k-- {
		strides[vs.IndexOf(sub.vars[k])] = stride
		stride *= sub.vars[k].numStates
	}

	out := make([]int, vs.NumConfigs())
	states := make([]int, n)
	cur := 0
	for c := range out {
		out[c] = cur
		// odometer step, last variable fastest
		for k := n - 1; k >= 0; k-- {
			states[k]++
			cur += strides[k]
			if states[k] < vs.vars[k].numStates {
				break
			}
			cur -= strides[k] * states[k]
			states[k] = 0
		}
	}

	return out, nil
}

func (vs *VarSet) String() string {
	names := make([]string, vs.Len())
	for i := range names {
		names[i] = vs.vars[i].name
	}

	return "{" + strings.Join(names, ",") + "}"
}
