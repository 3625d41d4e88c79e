package schedule

import (
	"errors"

	"github.com/katalvlaran/ermabp/core"
)

// ErrGraphNil is returned when a nil graph is scheduled.
var ErrGraphNil = errors.New("schedule: graph is nil")

// Schedule yields the edge order of one BP iteration.
type Schedule interface {
	Order() []*core.FgEdge
}

// IsConstant reports whether e carries a constant message, i.e. its parent
// node has exactly one out edge.
func IsConstant(e *core.FgEdge) bool {
	return len(e.Parent().OutEdges()) == 1
}

// Partition splits order into constant and iterated edges, preserving order.
func Partition(order []*core.FgEdge) (constant, iterated []*core.FgEdge) {
	for _, e := range order {
		if IsConstant(e) {
			constant = append(constant, e)
		} else {
			iterated = append(iterated, e)
		}
	}

	return constant, iterated
}

// Parallel is the identity schedule over all edges.
type Parallel struct {
	edges []*core.FgEdge
}

// NewParallel returns the all-edges schedule.
func NewParallel(g *core.FactorGraph) (*Parallel, error) {
	if g == nil {
		return nil, ErrGraphNil
	}

	return &Parallel{edges: g.Edges()}, nil
}

// Order returns every edge in ID order.
func (p *Parallel) Order() []*core.FgEdge {
	return append([]*core.FgEdge(nil), p.edges...)
}
