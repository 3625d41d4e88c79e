package semiring

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Tolerance is the absolute real-space tolerance used to compare algebra values.
const Tolerance = 1e-13

// ErrUnknownAlgebra is returned by ByName for an unrecognised algebra name.
var ErrUnknownAlgebra = errors.New("semiring: unknown algebra")

// Algebra is a commutative semiring extended with the inverse operations and
// conversions needed by belief propagation and its reverse mode.
type Algebra interface {
	// Zero is the additive identity.
	Zero() float64
	// One is the multiplicative identity.
	One() float64

	Plus(a, b float64) float64
	Times(a, b float64) float64
	Minus(a, b float64) float64
	Divide(a, b float64) float64

	// FromReal maps a real number into the algebra; ToReal is its inverse.
	FromReal(x float64) float64
	ToReal(x float64) float64

	// FromLogProb maps a natural log probability into the algebra; ToLogProb is its inverse.
	FromLogProb(x float64) float64
	ToLogProb(x float64) float64

	IsNaN(x float64) bool

	// Name is the stable identifier accepted by ByName.
	Name() string
}

// ByName resolves "real", "log" or "logsign" (case-insensitive).
func ByName(name string) (Algebra, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case Real{}.Name():
		return Real{}, nil
	case Log{}.Name():
		return Log{}, nil
	case LogSign{}.Name(), "log_sign", "log-sign":
		return LogSign{}, nil
	default:
		return nil, fmt.Errorf("ByName(%q): %w", name, ErrUnknownAlgebra)
	}
}

// Equal reports whether a and b have real images within tol of each other.
// Two NaN values are never equal; two infinities of the same sign are.
func Equal(s Algebra, a, b, tol float64) bool {
	ra, rb := s.ToReal(a), s.ToReal(b)
	if math.IsNaN(ra) || math.IsNaN(rb) {
		return false
	}
	if ra == rb {
		return true
	}

	return math.Abs(ra-rb) <= tol
}

// Signed reports whether s can represent negative real numbers.
func Signed(s Algebra) bool {
	return !s.IsNaN(s.FromReal(-1))
}

// Convert maps x from algebra src into algebra dst.
// Conversion goes through log space when both sides support it.
func Convert(x float64, src, dst Algebra) float64 {
	if src == dst {
		return x
	}
	if _, ok := src.(Real); ok {
		return dst.FromReal(x)
	}
	if _, ok := dst.(Real); ok {
		return src.ToReal(x)
	}
	if r := src.ToReal(x); r < 0 {
		// negative values have no log probability
		return dst.FromReal(r)
	}

	return dst.FromLogProb(src.ToLogProb(x))
}

// logAdd returns log(exp(a) + exp(b)).
func logAdd(a, b float64) float64 {
	if a < b {
		a, b = b, a
	}
	if math.IsInf(b, -1) || math.IsInf(a, 1) {
		return a
	}

	return a + math.Log1p(math.Exp(b-a))
}

// logSubtract returns log(exp(a) - exp(b)); NaN when b > a.
func logSubtract(a, b float64) float64 {
	if a < b {
		return math.NaN()
	}
	if math.IsInf(b, -1) {
		return a
	}
	if a == b {
		return math.Inf(-1)
	}

	return a + math.Log1p(-math.Exp(b-a))
}
