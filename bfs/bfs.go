package bfs

import (
	"context"
	"fmt"

	"github.com/katalvlaran/ermabp/core"
)

// queueItem pairs a node with its BFS depth.
type queueItem struct {
	node  *core.FgNode
	depth int
}

// walker encapsulates mutable BFS state.
type walker struct {
	opts  BFSOptions
	ctx   context.Context
	queue []queueItem
	res   *BFSResult
}

// BFS runs breadth-first search on g starting from root, applying any number
// of functional Options. Returns ErrGraphNil or ErrRootNotFound for invalid
// input, ErrOptionViolation for bad options, the context error on
// cancellation, or any user-supplied hook error.
func BFS(g *core.FactorGraph, root *core.FgNode, opts ...Option) (*BFSResult, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	nodes := g.Nodes()
	if root == nil || root.ID() >= len(nodes) || nodes[root.ID()] != root {
		return nil, ErrRootNotFound
	}

	n := len(nodes)
	w := &walker{
		opts:  o,
		ctx:   o.Ctx,
		queue: make([]queueItem, 0, n),
		res: &BFSResult{
			Order:      make([]*core.FgNode, 0, n),
			TreeEdges:  make([]*core.FgEdge, 0, n),
			Depth:      make([]int, n),
			ParentEdge: make([]*core.FgEdge, n),
		},
	}
	for i := range w.res.Depth {
		w.res.Depth[i] = -1
	}

	w.enqueue(root, 0, nil)

	return w.res, w.loop()
}

// enqueue marks n discovered at depth d through edge via.
func (w *walker) enqueue(n *core.FgNode, d int, via *core.FgEdge) {
	w.res.Depth[n.ID()] = d
	if via != nil {
		w.res.ParentEdge[n.ID()] = via
		w.res.TreeEdges = append(w.res.TreeEdges, via)
	}
	w.opts.OnEnqueue(n, d)
	w.queue = append(w.queue, queueItem{node: n, depth: d})
}

// loop processes the queue until empty, error, or cancellation.
func (w *walker) loop() error {
	for len(w.queue) > 0 {
		select {
		case <-w.ctx.Done():
			return w.ctx.Err()
		default:
		}

		item := w.queue[0]
		w.queue = w.queue[1:]

		w.res.Order = append(w.res.Order, item.node)
		if err := w.opts.OnVisit(item.node, item.depth); err != nil {
			return fmt.Errorf("bfs: OnVisit error at %s: %w", item.node, err)
		}
		w.enqueueChildren(item)
	}

	return nil
}

// enqueueChildren follows the out edges of item in order, skipping filtered
// edges, edges beyond MaxDepth, and already discovered nodes.
func (w *walker) enqueueChildren(item queueItem) {
	next := item.depth + 1
	if w.opts.MaxDepth > 0 && next > w.opts.MaxDepth {
		return
	}
	for _, e := range item.node.OutEdges() {
		if !w.opts.FilterEdge(e) {
			continue
		}
		if child := e.Child(); w.res.Depth[child.ID()] < 0 {
			w.enqueue(child, next, e)
		}
	}
}
