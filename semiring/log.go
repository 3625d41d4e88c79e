package semiring

import "math"

// Log is the log semiring: values are natural logs, plus is log-add and
// times is addition. Negative reals are not representable, so Minus returns
// NaN whenever the difference would be negative.
type Log struct{}

func (Log) Zero() float64 { return math.Inf(-1) }
func (Log) One() float64  { return 0 }

func (Log) Plus(a, b float64) float64  { return logAdd(a, b) }
func (Log) Minus(a, b float64) float64 { return logSubtract(a, b) }

func (Log) Times(a, b float64) float64 {
	if math.IsInf(a, -1) || math.IsInf(b, -1) {
		return math.Inf(-1)
	}

	return a + b
}

func (Log) Divide(a, b float64) float64 { return a - b }

func (Log) FromReal(x float64) float64    { return math.Log(x) }
func (Log) ToReal(x float64) float64      { return math.Exp(x) }
func (Log) FromLogProb(x float64) float64 { return x }
func (Log) ToLogProb(x float64) float64   { return x }
func (Log) IsNaN(x float64) bool          { return math.IsNaN(x) }
func (Log) Name() string                  { return "log" }
func (Log) String() string                { return "Log" }
