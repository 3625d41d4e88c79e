package semiring

import "math"

// signBit marks a negative LogSign value. It occupies the least significant
// mantissa bit of the stored log magnitude, costing one bit of precision.
const signBit uint64 = 1

// LogSign is the signed log semiring. A value encodes (sign, log|x|) in one
// float64. Infinite magnitudes are always positive: -Inf is zero and +Inf
// is positive infinity.
type LogSign struct{}

// compact packs a sign and a log magnitude into a single float64.
func compact(negative bool, logAbs float64) float64 {
	if math.IsInf(logAbs, 0) || math.IsNaN(logAbs) {
		return logAbs
	}
	bits := math.Float64bits(logAbs) &^ signBit
	if negative {
		bits |= signBit
	}

	return math.Float64frombits(bits)
}

func isNegative(x float64) bool {
	if math.IsInf(x, 0) || math.IsNaN(x) {
		return false
	}

	return math.Float64bits(x)&signBit == signBit
}

func natLog(x float64) float64 {
	if math.IsInf(x, 0) || math.IsNaN(x) {
		return x
	}

	return math.Float64frombits(math.Float64bits(x) &^ signBit)
}

func (LogSign) Zero() float64 { return math.Inf(-1) }
func (LogSign) One() float64  { return 0 }

func (LogSign) Plus(a, b float64) float64 {
	la, lb := natLog(a), natLog(b)
	if math.IsInf(la, -1) {
		return b
	}
	if math.IsInf(lb, -1) {
		return a
	}
	na, nb := isNegative(a), isNegative(b)
	if na == nb {
		return compact(na, logAdd(la, lb))
	}
	if la >= lb {
		return compact(na, logSubtract(la, lb))
	}

	return compact(nb, logSubtract(lb, la))
}

func (s LogSign) Minus(a, b float64) float64 {
	return s.Plus(a, negate(b))
}

func negate(x float64) float64 {
	l := natLog(x)
	if math.IsInf(l, 0) || math.IsNaN(l) {
		return x
	}

	return compact(!isNegative(x), l)
}

func (LogSign) Times(a, b float64) float64 {
	la, lb := natLog(a), natLog(b)
	if math.IsInf(la, -1) || math.IsInf(lb, -1) {
		return math.Inf(-1)
	}

	return compact(isNegative(a) != isNegative(b), la+lb)
}

func (LogSign) Divide(a, b float64) float64 {
	return compact(isNegative(a) != isNegative(b), natLog(a)-natLog(b))
}

func (LogSign) FromReal(x float64) float64 {
	if x < 0 {
		return compact(true, math.Log(-x))
	}

	return compact(false, math.Log(x))
}

func (LogSign) ToReal(x float64) float64 {
	if isNegative(x) {
		return -math.Exp(natLog(x))
	}

	return math.Exp(natLog(x))
}

func (LogSign) FromLogProb(x float64) float64 { return compact(false, x) }

// ToLogProb returns NaN for negative values, which have no log probability.
func (LogSign) ToLogProb(x float64) float64 {
	if isNegative(x) {
		return math.NaN()
	}

	return natLog(x)
}

func (LogSign) IsNaN(x float64) bool { return math.IsNaN(x) }
func (LogSign) Name() string         { return "logsign" }
func (LogSign) String() string       { return "LogSign" }
