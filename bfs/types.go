// Package bfs provides tunable options and error definitions
// for breadth-first search over a core.FactorGraph.
package bfs

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/ermabp/core"
)

// Sentinel errors for BFS execution.
var (
	// ErrRootNotFound is returned when the root is nil or not a node of the graph.
	ErrRootNotFound = errors.New("bfs: root node not found")

	// ErrGraphNil is returned if a nil graph pointer is passed.
	ErrGraphNil = errors.New("bfs: graph is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("bfs: invalid option supplied")
)

// Option configures BFS behavior via functional arguments.
// If an Option is invalid (e.g. negative depth), it will be recorded
// internally and surfaced as ErrOptionViolation when BFS is invoked.
type Option func(*BFSOptions)

// BFSOptions holds parameters and callbacks to customize BFS execution.
type BFSOptions struct {
	// Ctx allows cancellation and deadlines.
	Ctx context.Context

	// OnEnqueue is called when a node is enqueued, before visiting.
	OnEnqueue func(n *core.FgNode, depth int)

	// OnVisit is called when visiting a node. If it returns an error,
	// BFS aborts and propagates that error.
	OnVisit func(n *core.FgNode, depth int) error

	// MaxDepth, if > 0, stops exploring beyond this depth.
	MaxDepth int

	// FilterEdge can skip out edges by returning false.
	FilterEdge func(e *core.FgEdge) bool

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns a BFSOptions with background context, no depth
// limit, no filtering and no-op hooks.
func DefaultOptions() BFSOptions {
	return BFSOptions{
		Ctx:        context.Background(),
		OnEnqueue:  func(*core.FgNode, int) {},
		OnVisit:    func(*core.FgNode, int) error { return nil },
		MaxDepth:   0,
		FilterEdge: func(*core.FgEdge) bool { return true },
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *BFSOptions) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnEnqueue registers a callback to run on enqueue.
func WithOnEnqueue(fn func(n *core.FgNode, depth int)) Option {
	return func(o *BFSOptions) {
		if fn != nil {
			o.OnEnqueue = fn
		}
	}
}

// WithOnVisit registers a callback to run on visit; returning an error
// from this callback stops the BFS.
func WithOnVisit(fn func(n *core.FgNode, depth int) error) Option {
	return func(o *BFSOptions) {
		if fn != nil {
			o.OnVisit = fn
		}
	}
}

// WithMaxDepth stops the search at the given depth.
//
//	d > 0: limit to depth d
//	d == 0: explicit no depth limit
//	d < 0: invalid option → ErrOptionViolation
func WithMaxDepth(d int) Option {
	return func(o *BFSOptions) {
		if d < 0 {
			o.err = fmt.Errorf("%w: MaxDepth cannot be negative (%d)", ErrOptionViolation, d)
			return
		}
		o.MaxDepth = d
	}
}

// WithFilterEdge skips out edges when fn returns false.
func WithFilterEdge(fn func(e *core.FgEdge) bool) Option {
	return func(o *BFSOptions) {
		if fn != nil {
			o.FilterEdge = fn
		}
	}
}

// BFSResult holds the outcome of a BFS traversal:
//   - Order: nodes visited, in visit sequence.
//   - TreeEdges: the edge that discovered each non-root node, in discovery order.
//   - Depth: distance from the root per node ID, -1 when unreached.
//   - ParentEdge: discovering edge per node ID, nil for the root and unreached nodes.
type BFSResult struct {
	Order      []*core.FgNode
	TreeEdges  []*core.FgEdge
	Depth      []int
	ParentEdge []*core.FgEdge
}

// Reached reports whether n was visited.
func (r *BFSResult) Reached(n *core.FgNode) bool {
	return n.ID() < len(r.Depth) && r.Depth[n.ID()] >= 0
}

// PathTo returns the tree edges from the root to dest.
func (r *BFSResult) PathTo(dest *core.FgNode) ([]*core.FgEdge, error) {
	if !r.Reached(dest) {
		return nil, fmt.Errorf("bfs: no path to %s", dest)
	}
	var path []*core.FgEdge
	for e := r.ParentEdge[dest.ID()]; e != nil; e = r.ParentEdge[e.Parent().ID()] {
		path = append(path, e)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path, nil
}
