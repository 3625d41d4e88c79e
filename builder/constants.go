// SPDX-License-Identifier: MIT
// Package: ermabp/builder
//
// constants.go - method tags, fixed names and parameter minima.

package builder

// Method tags prefix constructor errors.
const (
	MethodChain         = "Chain"
	MethodStar          = "Star"
	MethodCycle         = "Cycle"
	MethodGrid          = "Grid"
	MethodComplete      = "Complete"
	MethodDepTree       = "DepTree"
	MethodDepTreeScores = "DepTreeScores"
)

// CenterVarName is the fixed name of the Star hub variable.
const CenterVarName = "Center"

// Parameter minima.
const (
	MinChainVars    = 1
	MinStarVars     = 2
	MinCycleVars    = 3
	MinGridDim      = 1
	MinCompleteVars = 1
	MinTokens       = 1
)
