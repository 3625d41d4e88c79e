package model

import (
	"fmt"
	"math"
)

// GlobalFactor is the capability of a factor whose messages are computed by
// a dedicated algorithm instead of enumeration. Message slices line up with
// Vars(): in[k], out[k] and the adjoint slices all concern Vars().Get(k).
type GlobalFactor interface {
	Factor

	// CreateMessages writes every outgoing message given all incoming ones.
	CreateMessages(in, out []*VarTensor) error

	// BackwardCreateMessages adds into inAdj the adjoints of the incoming
	// messages given the adjoints of the outgoing messages.
	BackwardCreateMessages(in, outAdj, inAdj []*VarTensor) error

	// ExpectedLogBelief returns Σ_x b(x)·ln(b(x)/χ(x)) where b is the factor
	// belief implied by in and χ the potential. For 0/1 potentials this is
	// the expected log belief (negative entropy).
	ExpectedLogBelief(in []*VarTensor) (float64, error)
}

// AsGlobal reports whether f implements the global capability.
func AsGlobal(f Factor) (GlobalFactor, bool) {
	g, ok := f.(GlobalFactor)

	return g, ok
}

// ExplicitGlobalFactor gives any factor the global capability by brute-force
// enumeration. It is exponential in the number of variables and serves as a
// reference implementation.
type ExplicitGlobalFactor struct {
	Factor
}

// NewExplicitGlobalFactor wraps f.
func NewExplicitGlobalFactor(f Factor) *ExplicitGlobalFactor {
	return &ExplicitGlobalFactor{Factor: f}
}

func (g *ExplicitGlobalFactor) check(method string, slices ...[]*VarTensor) error {
	n := g.Vars().Len()
	for _, s := range slices {
		if len(s) != n {
			return fmt.Errorf("%s: %d messages for %d vars: %w", method, len(s), n, ErrMessageCount)
		}
	}
	if n == 0 {
		return fmt.Errorf("%s: factor has no variables: %w", method, ErrMessageCount)
	}

	return nil
}

// productExcept multiplies the potential by every incoming message except
// those at positions skip.
func (g *ExplicitGlobalFactor) productExcept(in []*VarTensor, skip ...int) (*VarTensor, error) {
	prod := FactorTensor(in[0].s, g.Factor)
outer:
	for k, m := range in {
		for _, s := range skip {
			if k == s {
				continue outer
			}
		}
		if err := prod.Prod(m); err != nil {
			return nil, err
		}
	}

	return prod, nil
}

func (g *ExplicitGlobalFactor) CreateMessages(in, out []*VarTensor) error {
	if err := g.check("CreateMessages", in, out); err != nil {
		return err
	}
	for k := range out {
		prod, err := g.productExcept(in, k)
		if err != nil {
			return fmt.Errorf("CreateMessages: %w", err)
		}
		marg, err := prod.Marginal(out[k].vars, false)
		if err != nil {
			return fmt.Errorf("CreateMessages: %w", err)
		}
		if err = out[k].CopyFrom(marg); err != nil {
			return fmt.Errorf("CreateMessages: %w", err)
		}
	}

	return nil
}

func (g *ExplicitGlobalFactor) BackwardCreateMessages(in, outAdj, inAdj []*VarTensor) error {
	if err := g.check("BackwardCreateMessages", in, outAdj, inAdj); err != nil {
		return err
	}
	for k := range outAdj {
		for j := range in {
			if j == k {
				continue
			}
			prod, err := g.productExcept(in, k, j)
			if err != nil {
				return fmt.Errorf("BackwardCreateMessages: %w", err)
			}
			if err = prod.Prod(outAdj[k]); err != nil {
				return fmt.Errorf("BackwardCreateMessages: %w", err)
			}
			marg, err := prod.Marginal(inAdj[j].vars, false)
			if err != nil {
				return fmt.Errorf("BackwardCreateMessages: %w", err)
			}
			if err = inAdj[j].Add(marg); err != nil {
				return fmt.Errorf("BackwardCreateMessages: %w", err)
			}
		}
	}

	return nil
}

func (g *ExplicitGlobalFactor) ExpectedLogBelief(in []*VarTensor) (float64, error) {
	if err := g.check("ExpectedLogBelief", in); err != nil {
		return 0, err
	}
	b, err := g.productExcept(in)
	if err != nil {
		return 0, fmt.Errorf("ExpectedLogBelief: %w", err)
	}
	b.Normalize()
	s := b.s
	sum := 0.0
	for c, v := range b.values {
		if v == s.Zero() {
			continue
		}
		lb := s.ToLogProb(v)
		sum += math.Exp(lb) * (lb - g.LogUnnormalizedScore(c))
	}

	return sum, nil
}
