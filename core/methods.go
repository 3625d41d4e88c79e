package core

import (
	"fmt"

	"github.com/katalvlaran/ermabp/model"
)

// AddVar inserts v and returns its variable ID. Adding a variable that is
// already present is a no-op returning the existing ID.
// Complexity: O(1) amortized.
func (g *FactorGraph) AddVar(v *model.Var) (int, error) {
	if v == nil {
		return -1, ErrNilVar
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.addVarLocked(v).varID, nil
}

func (g *FactorGraph) addVarLocked(v *model.Var) *FgNode {
	if id, ok := g.varIndex[v]; ok {
		return g.varNodes[id]
	}
	n := &FgNode{id: len(g.nodes), isVar: true, v: v, varID: len(g.varNodes), factorID: -1}
	g.nodes = append(g.nodes, n)
	g.varNodes = append(g.varNodes, n)
	g.varIndex[v] = n.varID

	return n
}

// AddFactor inserts f, its missing variables, and one pair of opposing
// edges per variable (factor→var then var→factor, in VarSet order).
// Returns the factor ID.
// Complexity: O(|f.Vars()|).
func (g *FactorGraph) AddFactor(f model.Factor) (int, error) {
	if f == nil {
		return -1, ErrNilFactor
	}
	vars := f.Vars()
	g.mu.Lock()
	defer g.mu.Unlock()

	varNodes := make([]*FgNode, vars.Len())
	for i := range varNodes {
		varNodes[i] = g.addVarLocked(vars.Get(i))
	}
	fn := &FgNode{id: len(g.nodes), f: f, varID: -1, factorID: len(g.facNodes)}
	g.nodes = append(g.nodes, fn)
	g.facNodes = append(g.facNodes, fn)

	for _, vn := range varNodes {
		down := &FgEdge{id: len(g.edges), parent: fn, child: vn}
		up := &FgEdge{id: len(g.edges) + 1, parent: vn, child: fn}
		down.opposing, up.opposing = up, down
		g.edges = append(g.edges, down, up)

		fn.out = append(fn.out, down)
		vn.in = append(vn.in, down)
		vn.out = append(vn.out, up)
		fn.in = append(fn.in, up)
	}

	return fn.factorID, nil
}

// NumVars returns the number of variable nodes.
func (g *FactorGraph) NumVars() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.varNodes)
}

// NumFactors returns the number of factor nodes.
func (g *FactorGraph) NumFactors() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.facNodes)
}

// NumEdges returns the number of directed edges (twice the incidences).
func (g *FactorGraph) NumEdges() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.edges)
}

// NumNodes returns the number of variable and factor nodes.
func (g *FactorGraph) NumNodes() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.nodes)
}

// Var returns the variable with the given ID.
func (g *FactorGraph) Var(id int) *model.Var {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.varNodes[id].v
}

// Factor returns the factor with the given ID.
func (g *FactorGraph) Factor(id int) model.Factor {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.facNodes[id].f
}

// VarNode returns the node of the variable with the given ID.
func (g *FactorGraph) VarNode(id int) *FgNode {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.varNodes[id]
}

// FactorNode returns the node of the factor with the given ID.
func (g *FactorGraph) FactorNode(id int) *FgNode {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.facNodes[id]
}

// Edge returns the edge with the given ID.
func (g *FactorGraph) Edge(id int) *FgEdge {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.edges[id]
}

// VarID returns the ID of v.
func (g *FactorGraph) VarID(v *model.Var) (int, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	id, ok := g.varIndex[v]
	if !ok {
		return -1, fmt.Errorf("VarID(%s): %w", v, ErrVarNotFound)
	}

	return id, nil
}

// Vars returns all variables in ID order.
func (g *FactorGraph) Vars() []*model.Var {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]*model.Var, len(g.varNodes))
	for i, n := range g.varNodes {
		out[i] = n.v
	}

	return out
}

// Factors returns all factors in ID order.
func (g *FactorGraph) Factors() []model.Factor {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]model.Factor, len(g.facNodes))
	for i, n := range g.facNodes {
		out[i] = n.f
	}

	return out
}

// Nodes returns a snapshot of all nodes in insertion order.
func (g *FactorGraph) Nodes() []*FgNode {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return append([]*FgNode(nil), g.nodes...)
}

// VarNodes returns a snapshot of the variable nodes in ID order.
func (g *FactorGraph) VarNodes() []*FgNode {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return append([]*FgNode(nil), g.varNodes...)
}

// FactorNodes returns a snapshot of the factor nodes in ID order.
func (g *FactorGraph) FactorNodes() []*FgNode {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return append([]*FgNode(nil), g.facNodes...)
}

// Edges returns a snapshot of all edges in ID order.
func (g *FactorGraph) Edges() []*FgEdge {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return append([]*FgEdge(nil), g.edges...)
}

// AllVars returns a VarSet over every variable of the graph.
func (g *FactorGraph) AllVars() *model.VarSet {
	return model.NewVarSet(g.Vars()...)
}

// Stats summarises graph size.
type Stats struct {
	Vars, Factors, Edges int
	GlobalFactors        int
}

// Stats returns node and edge counts.
func (g *FactorGraph) Stats() Stats {
	g.mu.RLock()
	defer g.mu.RUnlock()
	st := Stats{Vars: len(g.varNodes), Factors: len(g.facNodes), Edges: len(g.edges)}
	for _, n := range g.facNodes {
		if _, ok := model.AsGlobal(n.f); ok {
			st.GlobalFactors++
		}
	}

	return st
}
