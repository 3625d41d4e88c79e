package semiring

import "math"

// Real is the probability semiring (+, ×) over the reals.
type Real struct{}

func (Real) Zero() float64                 { return 0 }
func (Real) One() float64                  { return 1 }
func (Real) Plus(a, b float64) float64     { return a + b }
func (Real) Times(a, b float64) float64    { return a * b }
func (Real) Minus(a, b float64) float64    { return a - b }
func (Real) Divide(a, b float64) float64   { return a / b }
func (Real) FromReal(x float64) float64    { return x }
func (Real) ToReal(x float64) float64      { return x }
func (Real) FromLogProb(x float64) float64 { return math.Exp(x) }
func (Real) ToLogProb(x float64) float64   { return math.Log(x) }
func (Real) IsNaN(x float64) bool          { return math.IsNaN(x) }
func (Real) Name() string                  { return "real" }
func (Real) String() string                { return "Real" }
