package deptree

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/katalvlaran/ermabp/model"
	"github.com/katalvlaran/ermabp/semiring"
)

// ExpectedLogBelief returns Σ_x b(x)·ln b(x) for the factor belief b implied
// by the incoming messages. Every tree has potential one, so this is also
// Σ b ln(b/χ). The dynamic program runs in LogSign whatever the algebra of in:
//
//	E = (⨁_a W(a) ⊗ ∂Z/∂W(a) ⊗ ln W(a)) / Z − ln Z
//
// A NaN result (for example when every tree has zero weight) is reported as
// 0 with a warning.
func (f *ProjDepTreeFactor) ExpectedLogBelief(in []*model.VarTensor) (float64, error) {
	if _, err := f.check("ExpectedLogBelief", in); err != nil {
		return 0, err
	}
	ls := semiring.LogSign{}
	conv := make([]*model.VarTensor, len(in))
	for k, m := range in {
		conv[k] = m.ConvertAlgebra(ls)
	}
	fw, err := f.forward(ls, conv)
	if err != nil {
		return 0, fmt.Errorf("ExpectedLogBelief: %w", err)
	}

	z := fw.beta[f.hg.Root()]
	rbar := ls.Zero()
	for a, w := range fw.w {
		if w == ls.Zero() {
			continue
		}
		term := ls.Times(ls.Times(w, fw.grad[a]), ls.FromReal(ls.ToLogProb(w)))
		rbar = ls.Plus(rbar, term)
	}
	e := ls.ToReal(ls.Divide(rbar, z)) - ls.ToLogProb(z)
	if math.IsNaN(e) {
		f.logger.Warn("deptree: expected log belief is NaN, using 0",
			slog.Int("tokens", f.n),
			slog.Float64("log_z", ls.ToLogProb(z)))

		return 0, nil
	}

	return e, nil
}
