package model

import (
	"fmt"
	"strings"
)

// VarConfig assigns states to a set of variables. It may be partial with
// respect to any VarSet it is later indexed against.
type VarConfig struct {
	states map[*Var]int
}

// NewVarConfig returns an empty assignment.
func NewVarConfig() *VarConfig {
	return &VarConfig{states: make(map[*Var]int)}
}

// Put assigns state to v, replacing any previous assignment.
func (vc *VarConfig) Put(v *Var, state int) error {
	if state < 0 || state >= v.numStates {
		return fmt.Errorf("Put(%s=%d): %w", v.name, state, ErrStateRange)
	}
	vc.states[v] = state

	return nil
}

// PutName assigns the state called name to v.
func (vc *VarConfig) PutName(v *Var, name string) error {
	i, ok := v.StateIndex(name)
	if !ok {
		return fmt.Errorf("PutName(%s=%q): %w", v.name, name, ErrStateRange)
	}
	vc.states[v] = i

	return nil
}

// PutAll merges every assignment of o into vc; o wins on conflicts.
func (vc *VarConfig) PutAll(o *VarConfig) {
	for v, s := range o.states {
		vc.states[v] = s
	}
}

// State returns the state assigned to v.
func (vc *VarConfig) State(v *Var) (int, bool) {
	s, ok := vc.states[v]

	return s, ok
}

// Len returns the number of assigned variables.
func (vc *VarConfig) Len() int { return len(vc.states) }

// Vars returns the assigned variables as a VarSet.
func (vc *VarConfig) Vars() *VarSet {
	vars := make([]*Var, 0, len(vc.states))
	for v := range vc.states {
		vars = append(vars, v)
	}

	return NewVarSet(vars...)
}

// ConfigIndex is the index of vc within its own VarSet.
func (vc *VarConfig) ConfigIndex() int {
	idx, _ := vc.ConfigIndexOf(vc.Vars())

	return idx
}

// ConfigIndexOf is the index of vc restricted to vs. Every variable of vs
// must be assigned.
func (vc *VarConfig) ConfigIndexOf(vs *VarSet) (int, error) {
	idx := 0
	for i := 0; i < vs.Len(); i++ {
		v := vs.vars[i]
		s, ok := vc.states[v]
		if !ok {
			return 0, fmt.Errorf("ConfigIndexOf(%s): %s: %w", vs, v.name, ErrMissingVar)
		}
		idx = idx*v.numStates + s
	}

	return idx, nil
}

// Subset projects vc onto vs; every variable of vs must be assigned.
func (vc *VarConfig) Subset(vs *VarSet) (*VarConfig, error) {
	out := NewVarConfig()
	for i := 0; i < vs.Len(); i++ {
		v := vs.vars[i]
		s, ok := vc.states[v]
		if !ok {
			return nil, fmt.Errorf("Subset(%s): %s: %w", vs, v.name, ErrMissingVar)
		}
		out.states[v] = s
	}

	return out, nil
}

// Intersection keeps only the assignments of variables in vs.
func (vc *VarConfig) Intersection(vs *VarSet) *VarConfig {
	out := NewVarConfig()
	for v, s := range vc.states {
		if vs.Contains(v) {
			out.states[v] = s
		}
	}

	return out
}

// Equal reports whether both configs assign the same states to the same variables.
func (vc *VarConfig) Equal(o *VarConfig) bool {
	if len(vc.states) != len(o.states) {
		return false
	}
	for v, s := range vc.states {
		if t, ok := o.states[v]; !ok || t != s {
			return false
		}
	}

	return true
}

func (vc *VarConfig) String() string {
	vs := vc.Vars()
	parts := make([]string, vs.Len())
	for i := range parts {
		v := vs.vars[i]
		parts[i] = v.name + "=" + v.StateName(vc.states[v])
	}

	return "[" + strings.Join(parts, " ") + "]"
}
