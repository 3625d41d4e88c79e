package erma

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/katalvlaran/ermabp/core"
	"github.com/katalvlaran/ermabp/model"
	"github.com/katalvlaran/ermabp/semiring"
)

// BeliefAdjoints holds the adjoints of a loss with respect to the normalized
// beliefs. Entries are indexed by variable and factor ID; global factors
// have nil entries.
type BeliefAdjoints struct {
	Vars    []*model.VarTensor
	Factors []*model.VarTensor
}

// OutputAdj returns zeroed belief adjoints for the caller to fill before
// Backward. Repeated calls return the same tensors.
func (b *BP) OutputAdj() (*BeliefAdjoints, error) {
	if b.varBeliefs == nil {
		return nil, ErrNotRun
	}
	if b.outVarAdj == nil {
		b.outVarAdj = make([]*model.VarTensor, len(b.varBeliefs))
		for id, bel := range b.varBeliefs {
			b.outVarAdj[id] = model.NewVarTensor(b.s, bel.Vars(), b.s.Zero())
		}
		b.outFacAdj = make([]*model.VarTensor, len(b.facBeliefs))
		for id, bel := range b.facBeliefs {
			if bel != nil {
				b.outFacAdj[id] = model.NewVarTensor(b.s, bel.Vars(), b.s.Zero())
			}
		}
	}

	return &BeliefAdjoints{Vars: b.outVarAdj, Factors: b.outFacAdj}, nil
}

// Backward propagates the belief adjoints from OutputAdj through the whole
// recorded forward pass into potential adjoints. It consumes the tape, so it
// runs at most once per Forward. ctx is checked between tape entries.
func (b *BP) Backward(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if b.varBeliefs == nil {
		return ErrNotRun
	}
	if !semiring.Signed(b.s) {
		return fmt.Errorf("Backward: %s: %w", b.s.Name(), ErrUnsignedAlgebra)
	}
	if !b.opts.KeepTape || b.tape == nil {
		return ErrNoTape
	}
	if _, err := b.OutputAdj(); err != nil {
		return err
	}

	if err := b.unnormalizeBeliefAdj(); err != nil {
		return fmt.Errorf("Backward: %w", err)
	}
	if err := b.seedAdjoints(); err != nil {
		return fmt.Errorf("Backward: %w", err)
	}

	var err error
	if b.opts.UpdateOrder == Sequential {
		err = b.replaySequential(ctx)
	} else {
		err = b.replayParallel(ctx)
	}
	if err != nil {
		return fmt.Errorf("Backward: %w", err)
	}
	b.logger.Debug("bp backward done", slog.Int("tape", b.tape.len()))
	b.tape = nil

	if acc := b.opts.Accumulator; acc != nil {
		if err = acc.Add(b.potentialsAdj); err != nil {
			return fmt.Errorf("Backward: %w", err)
		}
	}

	return nil
}

// PotentialsAdj returns copies of the potential adjoints from the last
// Backward, indexed by factor ID; global factors have nil entries.
func (b *BP) PotentialsAdj() ([]*model.VarTensor, error) {
	if b.potentialsAdj == nil {
		return nil, ErrNotRun
	}
	out := make([]*model.VarTensor, len(b.potentialsAdj))
	for id, adj := range b.potentialsAdj {
		if adj != nil {
			out[id] = adj.Copy()
		}
	}

	return out, nil
}

// unnormalize maps the adjoint of dist = u/Z onto the adjoint of u.
func (b *BP) unnormalize(dist, adj *model.VarTensor, z float64) error {
	if z == b.s.Zero() {
		return ErrZeroSum
	}
	dot, err := dist.Dot(adj)
	if err != nil {
		return err
	}
	adj.SubtractConst(dot)
	adj.DivideConst(z)

	return nil
}

func (b *BP) unnormalizeBeliefAdj() error {
	for id, adj := range b.outVarAdj {
		if err := b.unnormalize(b.varBeliefs[id], adj, b.varSums[id]); err != nil {
			return fmt.Errorf("var %d: %w", id, err)
		}
	}
	for id, adj := range b.outFacAdj {
		if adj == nil {
			continue
		}
		if err := b.unnormalize(b.facBeliefs[id], adj, b.facSums[id]); err != nil {
			return fmt.Errorf("factor %d: %w", id, err)
		}
	}

	return nil
}

// seedAdjoints differentiates the unnormalized beliefs with respect to the
// final messages and the potentials.
func (b *BP) seedAdjoints() error {
	edges := b.g.Edges()
	b.msgsAdj = make([]*messages, len(edges))
	for _, e := range edges {
		b.msgsAdj[e.ID()] = newMessages(b, e, b.s.Zero())
	}

	for _, e := range edges {
		adj := b.msgsAdj[e.ID()].message
		if !e.IsVarToFactor() {
			t := b.outVarAdj[e.Child().VarID()].Copy()
			if err := b.productOfMessages(e.Child(), t, e.Parent()); err != nil {
				return err
			}
			if err := adj.CopyFrom(t); err != nil {
				return err
			}
			continue
		}
		facAdj := b.outFacAdj[e.Child().FactorID()]
		if facAdj == nil {
			continue
		}
		t := model.FactorTensor(b.s, e.Factor())
		if err := t.Prod(facAdj); err != nil {
			return err
		}
		if err := b.productOfMessages(e.Child(), t, e.Parent()); err != nil {
			return err
		}
		marg, err := t.Marginal(adj.Vars(), false)
		if err != nil {
			return err
		}
		if err = adj.CopyFrom(marg); err != nil {
			return err
		}
	}

	b.potentialsAdj = make([]*model.VarTensor, b.g.NumFactors())
	for _, fn := range b.g.FactorNodes() {
		facAdj := b.outFacAdj[fn.FactorID()]
		if facAdj == nil {
			continue
		}
		t := facAdj.Copy()
		if err := b.productOfMessages(fn, t); err != nil {
			return err
		}
		b.potentialsAdj[fn.FactorID()] = t
	}

	return b.validateAdjoints("seed")
}

func (b *BP) validateAdjoints(what string) error {
	for id, m := range b.msgsAdj {
		if err := model.ValidateNotNaN(fmt.Sprintf("%s: message adjoint %d", what, id), m.message); err != nil {
			return err
		}
	}

	return model.ValidateAllNotNaN(what+": potential adjoint", b.potentialsAdj)
}

func (b *BP) replaySequential(ctx context.Context) error {
	for t := b.tape.len() - 1; t >= 0; t-- {
		if err := ctx.Err(); err != nil {
			return err
		}
		entry := b.tape.entries[t]
		if entry.edge == endOfCreation {
			continue
		}
		if err := b.backwardSend(entry); err != nil {
			return err
		}
		if err := b.backwardCreate(entry); err != nil {
			return err
		}
	}

	return nil
}

// replayParallel walks blocks delimited by end-of-creation markers. Every
// send of a block happened after every creation, so all sends are reversed
// before any creation.
func (b *BP) replayParallel(ctx context.Context) error {
	entries := b.tape.entries
	t := len(entries) - 1
	for t >= 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		if entries[t].edge == endOfCreation {
			t--
		}
		top := t
		for ; t >= 0 && entries[t].edge != endOfCreation; t-- {
			if err := b.backwardSend(entries[t]); err != nil {
				return err
			}
		}
		for u := top; u > t; u-- {
			if err := b.backwardCreate(entries[u]); err != nil {
				return err
			}
		}
	}

	return nil
}

// backwardSend restores the pre-send messages, moves the adjoint of the sent
// message into the pending slot and reverses normalization.
func (b *BP) backwardSend(entry tapeEntry) error {
	m := b.msgs[entry.edge]
	m.newMessage = m.message
	m.message = entry.msg

	a := b.msgsAdj[entry.edge]
	a.newMessage.Fill(b.s.Zero())
	a.message, a.newMessage = a.newMessage, a.message

	if b.opts.NormalizeMessages {
		if err := b.unnormalize(m.newMessage, a.newMessage, entry.msgSum); err != nil {
			return fmt.Errorf("edge %d: %w", entry.edge, err)
		}
	}

	return model.ValidateNotNaN(fmt.Sprintf("message adjoint %d", entry.edge), a.newMessage)
}

func (b *BP) backwardCreate(entry tapeEntry) error {
	e := b.g.Edge(entry.edge)
	var err error
	switch gf, ok := model.AsGlobal(e.Factor()); {
	case e.IsVarToFactor():
		err = b.backwardVarToFactor(e)
	case ok:
		if entry.created {
			err = b.backwardGlobal(e.Parent(), gf)
		}
	default:
		err = b.backwardFactorToVar(e)
	}
	if err != nil {
		return fmt.Errorf("create %s: %w", e, err)
	}

	return nil
}

func (b *BP) backwardVarToFactor(e *core.FgEdge) error {
	vn := e.Parent()
	adj := b.msgsAdj[e.ID()].newMessage
	for _, bi := range vn.InEdges() {
		if bi == e.Opposing() {
			continue
		}
		t := adj.Copy()
		if err := b.productOfMessages(vn, t, e.Child(), bi.Parent()); err != nil {
			return err
		}
		target := b.msgsAdj[bi.ID()].message
		if err := target.Add(t); err != nil {
			return err
		}
		if err := model.ValidateNotNaN(fmt.Sprintf("message adjoint %d", bi.ID()), target); err != nil {
			return err
		}
	}

	return nil
}

func (b *BP) backwardFactorToVar(e *core.FgEdge) error {
	fn := e.Parent()
	f := e.Factor()
	adj := b.msgsAdj[e.ID()].newMessage

	t := model.NewVarTensor(b.s, f.Vars(), b.s.One())
	if err := t.Prod(adj); err != nil {
		return err
	}
	if err := b.productOfMessages(fn, t, e.Child()); err != nil {
		return err
	}
	potAdj := b.potentialsAdj[fn.FactorID()]
	if potAdj == nil {
		potAdj = model.NewVarTensor(b.s, f.Vars(), b.s.Zero())
		b.potentialsAdj[fn.FactorID()] = potAdj
	}
	if err := potAdj.Add(t); err != nil {
		return err
	}
	if err := model.ValidateNotNaN(fmt.Sprintf("potential adjoint %d", fn.FactorID()), potAdj); err != nil {
		return err
	}

	for _, ja := range fn.InEdges() {
		if ja == e.Opposing() {
			continue
		}
		prod := model.FactorTensor(b.s, f)
		if err := prod.Prod(adj); err != nil {
			return err
		}
		if err := b.productOfMessages(fn, prod, e.Child(), ja.Parent()); err != nil {
			return err
		}
		target := b.msgsAdj[ja.ID()].message
		marg, err := prod.Marginal(target.Vars(), false)
		if err != nil {
			return err
		}
		if err = target.Add(marg); err != nil {
			return err
		}
		if err = model.ValidateNotNaN(fmt.Sprintf("message adjoint %d", ja.ID()), target); err != nil {
			return err
		}
	}

	return nil
}

func (b *BP) backwardGlobal(fn *core.FgNode, gf model.GlobalFactor) error {
	n := len(fn.OutEdges())
	in := make([]*model.VarTensor, n)
	outAdj := make([]*model.VarTensor, n)
	inAdj := make([]*model.VarTensor, n)
	for k := 0; k < n; k++ {
		ie, oe := fn.InEdges()[k], fn.OutEdges()[k]
		in[k] = b.msgs[ie.ID()].message
		outAdj[k] = b.msgsAdj[oe.ID()].newMessage
		inAdj[k] = b.msgsAdj[ie.ID()].message
	}
	if err := gf.BackwardCreateMessages(in, outAdj, inAdj); err != nil {
		return err
	}

	return model.ValidateAllNotNaN("global input adjoint", inAdj)
}
