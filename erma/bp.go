package erma

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/google/uuid"

	"github.com/katalvlaran/ermabp/core"
	"github.com/katalvlaran/ermabp/model"
	"github.com/katalvlaran/ermabp/schedule"
	"github.com/katalvlaran/ermabp/semiring"
)

// State is the lifecycle stage of an engine.
type State int

const (
	Uninitialized State = iota
	Iterating
	Converged
	IterationLimitReached
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Iterating:
		return "iterating"
	case Converged:
		return "converged"
	case IterationLimitReached:
		return "iteration_limit_reached"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// BP is one ERMA belief propagation run over a shared factor graph.
type BP struct {
	g      *core.FactorGraph
	opts   Options
	s      semiring.Algebra
	sched  schedule.Schedule
	logger *slog.Logger
	runID  uuid.UUID

	state        State
	iterations   int
	msgs         []*messages
	numConverged int
	lastCreated  []int // per factor ID, iteration of the last global creation
	tape         *tape

	varBeliefs, facBeliefs []*model.VarTensor
	varSums, facSums       []float64

	outVarAdj, outFacAdj []*model.VarTensor
	msgsAdj              []*messages
	potentialsAdj        []*model.VarTensor
}

// New validates the options and builds the schedule.
func New(g *core.FactorGraph, opts ...Option) (*BP, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, fmt.Errorf("New: %w", o.err)
	}
	if o.Accumulator != nil && o.Accumulator.Algebra() != o.Algebra {
		return nil, fmt.Errorf("New: accumulator %s, engine %s: %w",
			o.Accumulator.Algebra().Name(), o.Algebra.Name(), ErrAlgebraMismatch)
	}

	var (
		sched schedule.Schedule
		err   error
	)
	switch {
	case o.UpdateOrder == Parallel:
		sched, err = schedule.NewParallel(g)
	case o.Schedule == TreeLike:
		sched, err = schedule.NewTreeLike(g)
	case o.Schedule == Random:
		sched, err = schedule.NewRandom(g, o.Seed)
	default:
		err = fmt.Errorf("%w: %s/%s", ErrUnsupportedSchedule, o.Schedule, o.UpdateOrder)
	}
	if err != nil {
		return nil, fmt.Errorf("New: %w", err)
	}

	b := &BP{
		g:     g,
		opts:  o,
		s:     o.Algebra,
		sched: sched,
		runID: uuid.New(),
	}
	b.logger = o.Logger.With(
		slog.String("run", b.runID.String()),
		slog.String("schedule", o.Schedule.String()),
		slog.String("update_order", o.UpdateOrder.String()),
		slog.String("algebra", o.Algebra.Name()),
	)

	return b, nil
}

// RunID identifies this engine in log records.
func (b *BP) RunID() uuid.UUID { return b.runID }

// Algebra is the semiring of all messages, beliefs and adjoints.
func (b *BP) Algebra() semiring.Algebra { return b.s }

// Options returns the resolved options.
func (b *BP) Options() Options { return b.opts }

// State returns the lifecycle stage.
func (b *BP) State() State { return b.state }

// Iterations is the number of outer iterations run by the last Forward,
// not counting the constant-message sweep.
func (b *BP) Iterations() int { return b.iterations }

// IsConverged reports whether every edge's residual is at or below the threshold.
func (b *BP) IsConverged() bool { return b.msgs != nil && b.numConverged == len(b.msgs) }

// NumConverged is the number of converged edges.
func (b *BP) NumConverged() int { return b.numConverged }

// Message returns a copy of the current message on edge id, or nil before
// Forward or for an unknown edge.
func (b *BP) Message(id int) *model.VarTensor {
	if b.msgs == nil || id < 0 || id >= len(b.msgs) {
		return nil
	}

	return b.msgs[id].message.Copy()
}

// Residual returns the last residual of edge id.
func (b *BP) Residual(id int) (float64, error) {
	if b.msgs == nil {
		return 0, ErrNotRun
	}
	if id < 0 || id >= len(b.msgs) {
		return 0, fmt.Errorf("Residual: edge %d: %w", id, ErrIDRange)
	}

	return b.msgs[id].residual, nil
}

func (b *BP) reset() {
	edges := b.g.Edges()
	b.msgs = make([]*messages, len(edges))
	for _, e := range edges {
		b.msgs[e.ID()] = newMessages(b, e, b.s.One())
	}
	b.numConverged = 0
	b.lastCreated = make([]int, b.g.NumFactors())
	for i := range b.lastCreated {
		b.lastCreated[i] = -2
	}
	b.tape = &tape{}
	b.iterations = 0
	b.varBeliefs, b.facBeliefs = nil, nil
	b.outVarAdj, b.outFacAdj, b.msgsAdj, b.potentialsAdj = nil, nil, nil, nil
	b.state = Iterating
}

// Forward runs message passing and computes beliefs. Not converging within
// MaxIterations is not an error; inspect IsConverged. ctx is checked between
// iterations.
func (b *BP) Forward(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	b.reset()

	var order []*core.FgEdge
	for iter := -1; iter < b.opts.MaxIterations; iter++ {
		if err := ctx.Err(); err != nil {
			b.state = Uninitialized
			return err
		}
		order = b.updateOrder(order, iter)
		if err := b.sweep(order, iter); err != nil {
			b.state = Uninitialized
			return fmt.Errorf("Forward: iteration %d: %w", iter, err)
		}
		b.iterations = iter + 1
		b.logger.Debug("bp iteration",
			slog.Int("iter", iter),
			slog.Int("edges", len(order)),
			slog.Int("converged", b.numConverged))
		if b.IsConverged() {
			break
		}
	}
	if b.IsConverged() {
		b.state = Converged
	} else {
		b.state = IterationLimitReached
	}

	if err := b.computeBeliefs(); err != nil {
		return fmt.Errorf("Forward: %w", err)
	}
	b.logger.Debug("bp forward done",
		slog.String("state", b.state.String()),
		slog.Int("iterations", b.iterations),
		slog.Int("tape", b.tape.len()))

	return nil
}

// updateOrder reuses the previous order from iteration 1 on, unless the
// updates are sequential or the schedule is random. Iteration -1 keeps only
// constant edges; all later iterations drop them.
func (b *BP) updateOrder(order []*core.FgEdge, iter int) []*core.FgEdge {
	if iter >= 1 && b.opts.UpdateOrder != Sequential && b.opts.Schedule != Random {
		return order
	}
	constant, iterated := schedule.Partition(b.sched.Order())
	if iter == -1 {
		return constant
	}

	return iterated
}

func (b *BP) sweep(order []*core.FgEdge, iter int) error {
	if b.opts.UpdateOrder == Sequential {
		for _, e := range order {
			if err := b.createMessage(e, iter); err != nil {
				return err
			}
			b.sendMessage(e)
			if b.IsConverged() {
				break
			}
		}

		return nil
	}

	for _, e := range order {
		if err := b.createMessage(e, iter); err != nil {
			return err
		}
	}
	if b.opts.KeepTape {
		b.tape.push(tapeEntry{edge: endOfCreation})
	}
	for _, e := range order {
		b.sendMessage(e)
	}

	return nil
}

func (b *BP) createMessage(e *core.FgEdge, iter int) error {
	if !e.IsVarToFactor() {
		if gf, ok := model.AsGlobal(e.Factor()); ok {
			return b.createGlobal(e, gf, iter)
		}
	}
	var err error
	if e.IsVarToFactor() {
		err = b.varToFactor(e)
	} else {
		err = b.factorToVar(e)
	}
	if err != nil {
		return fmt.Errorf("create %s: %w", e, err)
	}

	return b.normalizeAndTape(e, true)
}

// createGlobal creates all outgoing messages of a global factor once per
// iteration. The triggering edge is taped as created; its siblings are taped
// right after so their normalization can be reversed.
func (b *BP) createGlobal(e *core.FgEdge, gf model.GlobalFactor, iter int) error {
	fn := e.Parent()
	if b.lastCreated[fn.FactorID()] >= iter {
		return nil
	}
	b.lastCreated[fn.FactorID()] = iter

	in := make([]*model.VarTensor, len(fn.InEdges()))
	for k, ie := range fn.InEdges() {
		in[k] = b.msgs[ie.ID()].message
	}
	out := make([]*model.VarTensor, len(fn.OutEdges()))
	for k, oe := range fn.OutEdges() {
		out[k] = b.msgs[oe.ID()].newMessage
	}
	if err := gf.CreateMessages(in, out); err != nil {
		return fmt.Errorf("create %s: %w", e, err)
	}

	if err := b.normalizeAndTape(e, true); err != nil {
		return err
	}
	for _, oe := range fn.OutEdges() {
		if oe == e {
			continue
		}
		if err := b.normalizeAndTape(oe, false); err != nil {
			return err
		}
	}

	return nil
}

// productOfMessages multiplies into prod every current message arriving at
// node, skipping those sent by the excluded nodes.
func (b *BP) productOfMessages(node *core.FgNode, prod *model.VarTensor, exclude ...*core.FgNode) error {
outer:
	for _, ie := range node.InEdges() {
		for _, x := range exclude {
			if ie.Parent() == x {
				continue outer
			}
		}
		if err := prod.Prod(b.msgs[ie.ID()].message); err != nil {
			return err
		}
	}

	return nil
}

func (b *BP) varToFactor(e *core.FgEdge) error {
	msg := b.msgs[e.ID()].newMessage
	msg.Fill(b.s.One())

	return b.productOfMessages(e.Parent(), msg, e.Child())
}

func (b *BP) factorToVar(e *core.FgEdge) error {
	prod := model.FactorTensor(b.s, e.Factor())
	if err := b.productOfMessages(e.Parent(), prod, e.Child()); err != nil {
		return err
	}
	marg, err := prod.Marginal(model.NewVarSet(e.Var()), false)
	if err != nil {
		return err
	}

	return b.msgs[e.ID()].newMessage.CopyFrom(marg)
}

func (b *BP) normalizeAndTape(e *core.FgEdge, created bool) error {
	m := b.msgs[e.ID()]
	if err := model.ValidateNotNaN(e.String(), m.newMessage); err != nil {
		return err
	}
	sum := 0.0
	if b.opts.NormalizeMessages {
		sum = m.newMessage.Normalize()
	}
	if b.opts.KeepTape {
		b.tape.push(tapeEntry{edge: e.ID(), msg: m.message.Copy(), msgSum: sum, created: created})
	}

	return nil
}

func (b *BP) sendMessage(e *core.FgEdge) {
	m := b.msgs[e.ID()]
	thr := b.opts.ConvergenceThreshold
	old := m.residual
	if schedule.IsConstant(e) {
		m.residual = 0
	} else {
		m.residual = b.residual(m.message, m.newMessage)
	}
	if old > thr && m.residual <= thr {
		b.numConverged++
	}
	if old <= thr && m.residual > thr {
		b.numConverged--
	}
	m.swap()
}

// residual is max_c |toLogProb(a[c]) − toLogProb(b[c])|. Entries equal in the
// algebra contribute 0, so a zero entry that stays zero is converged.
func (b *BP) residual(x, y *model.VarTensor) float64 {
	r := math.Inf(-1)
	for c := 0; c < x.Len(); c++ {
		xv, yv := x.Value(c), y.Value(c)
		d := 0.0
		if xv != yv {
			d = math.Abs(b.s.ToLogProb(xv) - b.s.ToLogProb(yv))
		}
		if d > r || math.IsNaN(d) {
			r = d
		}
	}

	return r
}
