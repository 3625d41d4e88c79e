package model

import (
	"fmt"
	"strconv"
	"sync/atomic"
)

// VarType tags the role a variable plays during training and decoding.
type VarType int

const (
	// Predicted variables are output by the model.
	Predicted VarType = iota
	// Latent variables are summed out.
	Latent
	// Observed variables are clamped to evidence.
	Observed
)

func (t VarType) String() string {
	switch t {
	case Predicted:
		return "PREDICTED"
	case Latent:
		return "LATENT"
	case Observed:
		return "OBSERVED"
	default:
		return "VarType(" + strconv.Itoa(int(t)) + ")"
	}
}

// varSerial orders variables that share a name.
var varSerial atomic.Uint64

// Var is an immutable discrete random variable. Identity is the pointer.
type Var struct {
	name       string
	numStates  int
	stateNames []string
	typ        VarType
	serial     uint64
}

// NewVar creates a variable with numStates states. stateNames may be nil;
// otherwise it must have exactly numStates entries.
func NewVar(typ VarType, numStates int, name string, stateNames []string) (*Var, error) {
	if numStates < 1 {
		return nil, fmt.Errorf("NewVar(%q): %d: %w", name, numStates, ErrBadNumStates)
	}
	if stateNames != nil && len(stateNames) != numStates {
		return nil, fmt.Errorf("NewVar(%q): %d names for %d states: %w", name, len(stateNames), numStates, ErrStateNames)
	}
	v := &Var{
		name:      name,
		numStates: numStates,
		typ:       typ,
		serial:    varSerial.Add(1),
	}
	if stateNames != nil {
		v.stateNames = append([]string(nil), stateNames...)
	}

	return v, nil
}

func (v *Var) Name() string   { return v.name }
func (v *Var) NumStates() int { return v.numStates }
func (v *Var) Type() VarType  { return v.typ }

// StateNames returns a copy of the state names, or nil when none were given.
func (v *Var) StateNames() []string {
	if v.stateNames == nil {
		return nil
	}

	return append([]string(nil), v.stateNames...)
}

// StateName returns the name of state i, falling back to its decimal index.
func (v *Var) StateName(i int) string {
	if v.stateNames != nil && i >= 0 && i < len(v.stateNames) {
		return v.stateNames[i]
	}

	return strconv.Itoa(i)
}

// StateIndex looks up a state by name.
func (v *Var) StateIndex(name string) (int, bool) {
	for i := 0; i < v.numStates; i++ {
		if v.StateName(i) == name {
			return i, true
		}
	}

	return -1, false
}

func (v *Var) String() string {
	return fmt.Sprintf("%s(%s,%d)", v.name, v.typ, v.numStates)
}

// before is the canonical total order used by VarSet.
func (v *Var) before(o *Var) bool {
	if v.name != o.name {
		return v.name < o.name
	}

	return v.serial < o.serial
}
