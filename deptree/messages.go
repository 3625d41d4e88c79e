package deptree

import (
	"fmt"

	"github.com/katalvlaran/ermabp/model"
	"github.com/katalvlaran/ermabp/semiring"
)

// column gathers the incoming link messages of one child, ordered by parent.
type column struct {
	arcs []int // arc index per candidate parent
	pos  []int // position in Vars per candidate parent
	t, f []float64

	pre, suf []float64   // pre[i] = ⨂_{j<i} f[j], suf[i] = ⨂_{j≥i} f[j]
	excl2    [][]float64 // excl2[i][j] = ⨂_{k∉{i,j}} f[k], i≠j
}

// excl1 is ⨂_{k≠i} f[k].
func (c *column) excl1(s semiring.Algebra, i int) float64 {
	return s.Times(c.pre[i], c.suf[i+1])
}

func newColumn(s semiring.Algebra, f *ProjDepTreeFactor, child int, in []*model.VarTensor) *column {
	m := f.n
	c := &column{
		arcs: make([]int, 0, m),
		pos:  make([]int, 0, m),
		t:    make([]float64, 0, m),
		f:    make([]float64, 0, m),
	}
	for p := -1; p < f.n; p++ {
		if p == child {
			continue
		}
		a := arcIndex(f.n, p, child)
		k := f.vars.IndexOf(f.links[a])
		c.arcs = append(c.arcs, a)
		c.pos = append(c.pos, k)
		c.t = append(c.t, in[k].Value(True))
		c.f = append(c.f, in[k].Value(False))
	}

	c.pre = make([]float64, m+1)
	c.suf = make([]float64, m+1)
	c.pre[0], c.suf[m] = s.One(), s.One()
	for i := 0; i < m; i++ {
		c.pre[i+1] = s.Times(c.pre[i], c.f[i])
	}
	for i := m - 1; i >= 0; i-- {
		c.suf[i] = s.Times(c.f[i], c.suf[i+1])
	}

	c.excl2 = make([][]float64, m)
	for i := range c.excl2 {
		c.excl2[i] = make([]float64, m)
	}
	for i := 0; i < m; i++ {
		mid := s.One()
		for j := i + 1; j < m; j++ {
			v := s.Times(s.Times(c.pre[i], mid), c.suf[j+1])
			c.excl2[i][j], c.excl2[j][i] = v, v
			mid = s.Times(mid, c.f[j])
		}
	}

	return c
}

// pairSumGrad adds scale ⊗ ∂P/∂f[k] into fAdj[k] for every k≠skip, where
// P = ⨁_{b≠skip} a[b] ⊗ ⨂_{j∉{skip,b}} f[j].
func (c *column) pairSumGrad(s semiring.Algebra, skip int, a []float64, scale float64, fAdj []float64) {
	m := len(c.f)
	// prefix/suffix pairs over the positions other than skip:
	// P is the plain product, S the sum of products with one factor swapped for a.
	pp, ps := make([]float64, m+1), make([]float64, m+1)
	sp, ss := make([]float64, m+1), make([]float64, m+1)
	pp[0], sp[0] = s.One(), s.Zero()
	for i := 0; i < m; i++ {
		if i == skip {
			pp[i+1], sp[i+1] = pp[i], sp[i]
			continue
		}
		sp[i+1] = s.Plus(s.Times(sp[i], c.f[i]), s.Times(pp[i], a[i]))
		pp[i+1] = s.Times(pp[i], c.f[i])
	}
	ps[m], ss[m] = s.One(), s.Zero()
	for i := m - 1; i >= 0; i-- {
		if i == skip {
			ps[i], ss[i] = ps[i+1], ss[i+1]
			continue
		}
		ss[i] = s.Plus(s.Times(c.f[i], ss[i+1]), s.Times(a[i], ps[i+1]))
		ps[i] = s.Times(c.f[i], ps[i+1])
	}
	for k := 0; k < m; k++ {
		if k == skip {
			continue
		}
		d := s.Plus(s.Times(pp[k], ss[k+1]), s.Times(sp[k], ps[k+1]))
		fAdj[k] = s.Plus(fAdj[k], s.Times(scale, d))
	}
}

func (f *ProjDepTreeFactor) check(method string, slices ...[]*model.VarTensor) (semiring.Algebra, error) {
	nv := f.vars.Len()
	for _, ms := range slices {
		if len(ms) != nv {
			return nil, fmt.Errorf("%s: %d messages for %d vars: %w", method, len(ms), nv, model.ErrMessageCount)
		}
		for k, m := range ms {
			if m == nil || m.Len() != 2 || m.Vars().Len() != 1 || m.Vars().Get(0) != f.vars.Get(k) {
				return nil, fmt.Errorf("%s: message %d: %w", method, k, ErrNotBinary)
			}
		}
	}
	s := slices[0][0].Algebra()
	for _, ms := range slices[1:] {
		for _, m := range ms {
			if m.Algebra() != s {
				return nil, fmt.Errorf("%s: %w", method, model.ErrAlgebraMismatch)
			}
		}
	}

	return s, nil
}

// forward computes the per-child columns, the arc weights W and the
// inside-outside quantities over the Eisner hypergraph.
type forward struct {
	cols        []*column
	w           []float64
	beta, alpha []float64
	grad        []float64
}

func (f *ProjDepTreeFactor) forward(s semiring.Algebra, in []*model.VarTensor) (*forward, error) {
	fw := &forward{cols: make([]*column, f.n), w: make([]float64, f.hg.NumWeights())}
	for i := range fw.w {
		fw.w[i] = s.Zero()
	}
	for j := 0; j < f.n; j++ {
		c := newColumn(s, f, j, in)
		for i, a := range c.arcs {
			fw.w[a] = s.Times(c.t[i], c.excl1(s, i))
		}
		fw.cols[j] = c
	}
	var err error
	if fw.beta, fw.alpha, fw.grad, err = f.hg.InsideOutside(s, fw.w); err != nil {
		return nil, err
	}

	return fw, nil
}

// CreateMessages writes the outgoing message of every link variable.
// Complexity: O(n³).
func (f *ProjDepTreeFactor) CreateMessages(in, out []*model.VarTensor) error {
	s, err := f.check("CreateMessages", in, out)
	if err != nil {
		return err
	}
	fw, err := f.forward(s, in)
	if err != nil {
		return fmt.Errorf("CreateMessages: %w", err)
	}
	for _, c := range fw.cols {
		for i, a := range c.arcs {
			msg := out[c.pos[i]]
			msg.SetValue(True, s.Times(fw.grad[a], c.excl1(s, i)))
			sum := s.Zero()
			for j, b := range c.arcs {
				if j == i {
					continue
				}
				sum = s.Plus(sum, s.Times(s.Times(fw.grad[b], c.t[j]), c.excl2[i][j]))
			}
			msg.SetValue(False, sum)
		}
	}

	return nil
}

// BackwardCreateMessages adds into inAdj the adjoints of the incoming
// messages given the adjoints outAdj of the messages CreateMessages wrote.
// Complexity: O(n³).
func (f *ProjDepTreeFactor) BackwardCreateMessages(in, outAdj, inAdj []*model.VarTensor) error {
	s, err := f.check("BackwardCreateMessages", in, outAdj, inAdj)
	if err != nil {
		return err
	}
	fw, err := f.forward(s, in)
	if err != nil {
		return fmt.Errorf("BackwardCreateMessages: %w", err)
	}

	zeros := func(n int) []float64 {
		out := make([]float64, n)
		for i := range out {
			out[i] = s.Zero()
		}
		return out
	}
	gradAdj := zeros(len(fw.grad))
	tAdj := make([][]float64, f.n)
	fAdj := make([][]float64, f.n)
	fmAdj := make([][]float64, f.n)

	// outgoing messages → ∂Z/∂W, T, F and the exclusion products
	for j, c := range fw.cols {
		m := len(c.arcs)
		tAdj[j], fAdj[j], fmAdj[j] = zeros(m), zeros(m), zeros(m)
		a := make([]float64, m)
		for i, arc := range c.arcs {
			a[i] = s.Times(fw.grad[arc], c.t[i])
		}
		aAdj := zeros(m)
		for i, arc := range c.arcs {
			oT := outAdj[c.pos[i]].Value(True)
			oF := outAdj[c.pos[i]].Value(False)
			gradAdj[arc] = s.Plus(gradAdj[arc], s.Times(oT, c.excl1(s, i)))
			fmAdj[j][i] = s.Plus(fmAdj[j][i], s.Times(oT, fw.grad[arc]))
			for k := range c.arcs {
				if k != i {
					aAdj[k] = s.Plus(aAdj[k], s.Times(oF, c.excl2[i][k]))
				}
			}
			c.pairSumGrad(s, i, a, oF, fAdj[j])
		}
		for k, arc := range c.arcs {
			gradAdj[arc] = s.Plus(gradAdj[arc], s.Times(aAdj[k], c.t[k]))
			tAdj[j][k] = s.Plus(tAdj[j][k], s.Times(aAdj[k], fw.grad[arc]))
		}
	}

	// ∂Z/∂W → W
	wAdj := zeros(len(fw.w))
	if err = f.hg.Backward(s, fw.w, fw.beta, fw.alpha, gradAdj, wAdj); err != nil {
		return fmt.Errorf("BackwardCreateMessages: %w", err)
	}

	// W = T ⊗ excl1 → T, F
	for j, c := range fw.cols {
		for i, arc := range c.arcs {
			tAdj[j][i] = s.Plus(tAdj[j][i], s.Times(wAdj[arc], c.excl1(s, i)))
			fmAdj[j][i] = s.Plus(fmAdj[j][i], s.Times(wAdj[arc], c.t[i]))
		}
		for k := range c.arcs {
			for i := range c.arcs {
				if i != k {
					fAdj[j][k] = s.Plus(fAdj[j][k], s.Times(fmAdj[j][i], c.excl2[i][k]))
				}
			}
		}
		for i, k := range c.pos {
			inAdj[k].AddValue(True, tAdj[j][i])
			inAdj[k].AddValue(False, fAdj[j][i])
		}
	}

	return nil
}
