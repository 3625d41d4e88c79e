package model

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/ermabp/semiring"
)

// VarTensor is a dense table of algebra values over a VarSet, indexed by
// configuration index. Methods that combine two tensors require both to use
// the same algebra.
type VarTensor struct {
	s      semiring.Algebra
	vars   *VarSet
	values []float64
}

// NewVarTensor allocates a tensor over vars with every entry set to init.
func NewVarTensor(s semiring.Algebra, vars *VarSet, init float64) *VarTensor {
	if vars == nil {
		vars = NewVarSet()
	}
	t := &VarTensor{s: s, vars: vars, values: make([]float64, vars.NumConfigs())}
	if init != 0 {
		t.Fill(init)
	}

	return t
}

// NewVarTensorFromValues wraps a copy of values (already in algebra s).
func NewVarTensorFromValues(s semiring.Algebra, vars *VarSet, values []float64) (*VarTensor, error) {
	t := NewVarTensor(s, vars, 0)
	if len(values) != len(t.values) {
		return nil, fmt.Errorf("NewVarTensorFromValues(%s): %d values for %d configs: %w",
			vars, len(values), len(t.values), ErrLength)
	}
	copy(t.values, values)

	return t, nil
}

func (t *VarTensor) Algebra() semiring.Algebra { return t.s }
func (t *VarTensor) Vars() *VarSet             { return t.vars }
func (t *VarTensor) Len() int                  { return len(t.values) }
func (t *VarTensor) Value(c int) float64       { return t.values[c] }
func (t *VarTensor) SetValue(c int, v float64) { t.values[c] = v }

// AddValue adds v to entry c in the tensor's algebra.
func (t *VarTensor) AddValue(c int, v float64) {
	t.values[c] = t.s.Plus(t.values[c], v)
}

// Values returns a copy of the raw algebra values.
func (t *VarTensor) Values() []float64 {
	return append([]float64(nil), t.values...)
}

// Fill sets every entry to v.
func (t *VarTensor) Fill(v float64) {
	for i := range t.values {
		t.values[i] = v
	}
}

// Copy returns a deep copy.
func (t *VarTensor) Copy() *VarTensor {
	return &VarTensor{s: t.s, vars: t.vars, values: t.Values()}
}

// CopyFrom overwrites the values of t with those of o.
func (t *VarTensor) CopyFrom(o *VarTensor) error {
	if err := t.compatible("CopyFrom", o); err != nil {
		return err
	}
	copy(t.values, o.values)

	return nil
}

// Sum returns the algebra sum of all entries.
func (t *VarTensor) Sum() float64 {
	sum := t.s.Zero()
	for _, v := range t.values {
		sum = t.s.Plus(sum, v)
	}

	return sum
}

// Normalize divides every entry by the sum and returns the sum.
// A tensor summing to zero becomes uniform.
func (t *VarTensor) Normalize() float64 {
	sum := t.Sum()
	if sum == t.s.Zero() {
		t.Fill(t.s.Divide(t.s.One(), t.s.FromReal(float64(len(t.values)))))
		return sum
	}
	for i, v := range t.values {
		t.values[i] = t.s.Divide(v, sum)
	}

	return sum
}

// Prod multiplies o into t. When o has variables outside t, t is expanded in
// place to the outer product over the union of both VarSets.
func (t *VarTensor) Prod(o *VarTensor) error {
	if t.s != o.s {
		return fmt.Errorf("Prod(%s, %s): %w", t.s.Name(), o.s.Name(), ErrAlgebraMismatch)
	}
	if t.vars.IsSuperset(o.vars) {
		idx, err := t.vars.Project(o.vars)
		if err != nil {
			return err
		}
		for c, oc := range idx {
			t.values[c] = t.s.Times(t.values[c], o.values[oc])
		}

		return nil
	}

	union := t.vars.Union(o.vars)
	idxT, err := union.Project(t.vars)
	if err != nil {
		return err
	}
	idxO, err := union.Project(o.vars)
	if err != nil {
		return err
	}
	values := make([]float64, len(idxT))
	for c := range values {
		values[c] = t.s.Times(t.values[idxT[c]], o.values[idxO[c]])
	}
	t.vars, t.values = union, values

	return nil
}

// Marginal sums t down to vars, which must be a subset of t's variables.
func (t *VarTensor) Marginal(vars *VarSet, normalize bool) (*VarTensor, error) {
	idx, err := t.vars.Project(vars)
	if err != nil {
		return nil, fmt.Errorf("Marginal: %w", err)
	}
	out := NewVarTensor(t.s, vars, t.s.Zero())
	for c, oc := range idx {
		out.values[oc] = t.s.Plus(out.values[oc], t.values[c])
	}
	if normalize {
		out.Normalize()
	}

	return out, nil
}

// Dot returns Σ_c t[c]·o[c] in the tensor's algebra.
func (t *VarTensor) Dot(o *VarTensor) (float64, error) {
	if err := t.compatible("Dot", o); err != nil {
		return 0, err
	}
	sum := t.s.Zero()
	for i, v := range t.values {
		sum = t.s.Plus(sum, t.s.Times(v, o.values[i]))
	}

	return sum, nil
}

// Add adds o elementwise.
func (t *VarTensor) Add(o *VarTensor) error {
	return t.elementwise("Add", o, t.s.Plus)
}

// Subtract subtracts o elementwise.
func (t *VarTensor) Subtract(o *VarTensor) error {
	return t.elementwise("Subtract", o, t.s.Minus)
}

// Multiply multiplies by o elementwise; both tensors must share a VarSet.
func (t *VarTensor) Multiply(o *VarTensor) error {
	return t.elementwise("Multiply", o, t.s.Times)
}

// Divide divides by o elementwise.
func (t *VarTensor) Divide(o *VarTensor) error {
	return t.elementwise("Divide", o, t.s.Divide)
}

func (t *VarTensor) AddConst(v float64)      { t.scalar(v, t.s.Plus) }
func (t *VarTensor) SubtractConst(v float64) { t.scalar(v, t.s.Minus) }
func (t *VarTensor) MultiplyConst(v float64) { t.scalar(v, t.s.Times) }
func (t *VarTensor) DivideConst(v float64)   { t.scalar(v, t.s.Divide) }

func (t *VarTensor) scalar(v float64, op func(a, b float64) float64) {
	for i, x := range t.values {
		t.values[i] = op(x, v)
	}
}

func (t *VarTensor) elementwise(method string, o *VarTensor, op func(a, b float64) float64) error {
	if err := t.compatible(method, o); err != nil {
		return err
	}
	for i, x := range t.values {
		t.values[i] = op(x, o.values[i])
	}

	return nil
}

// Compatible reports, as ErrAlgebraMismatch or ErrVarSetMismatch, whether o
// cannot be combined elementwise with t.
func (t *VarTensor) Compatible(o *VarTensor) error {
	return t.compatible("Compatible", o)
}

func (t *VarTensor) compatible(method string, o *VarTensor) error {
	if t.s != o.s {
		return fmt.Errorf("%s(%s, %s): %w", method, t.s.Name(), o.s.Name(), ErrAlgebraMismatch)
	}
	if !t.vars.Equal(o.vars) {
		return fmt.Errorf("%s(%s, %s): %w", method, t.vars, o.vars, ErrVarSetMismatch)
	}

	return nil
}

// ConvertAlgebra returns a copy of t expressed in algebra to.
func (t *VarTensor) ConvertAlgebra(to semiring.Algebra) *VarTensor {
	out := &VarTensor{s: to, vars: t.vars, values: make([]float64, len(t.values))}
	for i, v := range t.values {
		out.values[i] = semiring.Convert(v, t.s, to)
	}

	return out
}

// Equal compares VarSets and real images of the entries within tol.
// Tensors in different algebras may be compared.
func (t *VarTensor) Equal(o *VarTensor, tol float64) bool {
	if o == nil || !t.vars.Equal(o.vars) || len(t.values) != len(o.values) {
		return false
	}
	for i, v := range t.values {
		a, b := t.s.ToReal(v), o.s.ToReal(o.values[i])
		if a == b {
			continue
		}
		if !(a-b <= tol && b-a <= tol) {
			return false
		}
	}

	return true
}

// ContainsNaN reports whether any entry is NaN.
func (t *VarTensor) ContainsNaN() bool {
	for _, v := range t.values {
		if t.s.IsNaN(v) {
			return true
		}
	}

	return false
}

// Reals returns the entries mapped to real space.
func (t *VarTensor) Reals() []float64 {
	out := make([]float64, len(t.values))
	for i, v := range t.values {
		out[i] = t.s.ToReal(v)
	}

	return out
}

func (t *VarTensor) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "VarTensor[%s]%s", t.s.Name(), t.vars)
	for c, v := range t.values {
		states, _ := t.vars.States(c)
		fmt.Fprintf(&sb, "\n  %v: %.6g", states, t.s.ToReal(v))
	}

	return sb.String()
}
