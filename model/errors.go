// SPDX-License-Identifier: MIT
// Package model: sentinel error set.
// Callers branch with errors.Is; call sites attach context with %w.

package model

import "errors"

var (
	// ErrBadNumStates is returned when a variable is declared with fewer than one state.
	ErrBadNumStates = errors.New("model: number of states must be positive")

	// ErrStateNames indicates a state-name list whose length differs from the number of states.
	ErrStateNames = errors.New("model: state names do not match number of states")

	// ErrStateRange indicates a state index outside [0, NumStates).
	ErrStateRange = errors.New("model: state out of range")

	// ErrConfigRange indicates a configuration index outside [0, NumConfigs).
	ErrConfigRange = errors.New("model: configuration index out of range")

	// ErrMissingVar indicates that a variable required by an operation is absent.
	ErrMissingVar = errors.New("model: variable not present")

	// ErrNotSubset is returned when an operation expects a subset of the receiver's variables.
	ErrNotSubset = errors.New("model: not a subset")

	// ErrVarSetMismatch indicates two tensors that must share a VarSet do not.
	ErrVarSetMismatch = errors.New("model: variable set mismatch")

	// ErrAlgebraMismatch indicates two tensors built in different algebras.
	ErrAlgebraMismatch = errors.New("model: algebra mismatch")

	// ErrLength indicates a value slice whose length differs from the number of configurations.
	ErrLength = errors.New("model: value count does not match configurations")

	// ErrTooManyConfigs indicates a configuration count that overflows int.
	ErrTooManyConfigs = errors.New("model: configuration count overflows int")

	// ErrNaN signals a NaN value inside a tensor.
	ErrNaN = errors.New("model: NaN encountered")

	// ErrMessageCount indicates a global factor received message slices that do not
	// line up with its variables.
	ErrMessageCount = errors.New("model: message count does not match factor variables")
)
