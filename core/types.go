package core

import (
	"errors"
	"fmt"
	"sync"

	"github.com/katalvlaran/ermabp/model"
)

// Sentinel errors for factor graph operations.
var (
	// ErrNilVar indicates that a nil *model.Var was supplied.
	ErrNilVar = errors.New("core: variable is nil")

	// ErrNilFactor indicates that a nil model.Factor was supplied.
	ErrNilFactor = errors.New("core: factor is nil")

	// ErrVarNotFound indicates an operation referenced a variable not in the graph.
	ErrVarNotFound = errors.New("core: variable not found")
)

// FgNode is a variable node or a factor node.
//
// InEdges and OutEdges are owned by the graph and must not be modified.
type FgNode struct {
	id    int // position in FactorGraph.nodes
	isVar bool

	v     *model.Var
	varID int

	f        model.Factor
	factorID int

	in  []*FgEdge
	out []*FgEdge
}

// ID is the node's position in insertion order across both node kinds.
func (n *FgNode) ID() int { return n.id }

// IsVar reports whether n is a variable node.
func (n *FgNode) IsVar() bool { return n.isVar }

// Var returns the variable of a variable node, nil otherwise.
func (n *FgNode) Var() *model.Var { return n.v }

// VarID is the variable index of a variable node, -1 otherwise.
func (n *FgNode) VarID() int { return n.varID }

// Factor returns the factor of a factor node, nil otherwise.
func (n *FgNode) Factor() model.Factor { return n.f }

// FactorID is the factor index of a factor node, -1 otherwise.
func (n *FgNode) FactorID() int { return n.factorID }

// InEdges returns the edges whose child is n.
func (n *FgNode) InEdges() []*FgEdge { return n.in }

// OutEdges returns the edges whose parent is n.
func (n *FgNode) OutEdges() []*FgEdge { return n.out }

func (n *FgNode) String() string {
	if n.isVar {
		return "Var[" + n.v.Name() + "]"
	}

	return fmt.Sprintf("Factor%d%s", n.factorID, n.f.Vars())
}

// FgEdge is a directed edge between a factor node and a variable node.
type FgEdge struct {
	id       int
	parent   *FgNode
	child    *FgNode
	opposing *FgEdge
}

func (e *FgEdge) ID() int           { return e.id }
func (e *FgEdge) Parent() *FgNode   { return e.parent }
func (e *FgEdge) Child() *FgNode    { return e.child }
func (e *FgEdge) Opposing() *FgEdge { return e.opposing }

// IsVarToFactor reports whether the edge runs from a variable to a factor.
func (e *FgEdge) IsVarToFactor() bool { return e.parent.isVar }

// VarNode returns the variable end of the edge.
func (e *FgEdge) VarNode() *FgNode {
	if e.parent.isVar {
		return e.parent
	}

	return e.child
}

// FactorNode returns the factor end of the edge.
func (e *FgEdge) FactorNode() *FgNode {
	if e.parent.isVar {
		return e.child
	}

	return e.parent
}

// Var returns the variable the edge's message is defined over.
func (e *FgEdge) Var() *model.Var { return e.VarNode().v }

// Factor returns the factor at the factor end of the edge.
func (e *FgEdge) Factor() model.Factor { return e.FactorNode().f }

func (e *FgEdge) String() string {
	return fmt.Sprintf("%s-->%s", e.parent, e.child)
}

// FactorGraph is a bipartite graph of variables and factors.
//
// mu guards every slice and map below.
type FactorGraph struct {
	mu sync.RWMutex

	nodes    []*FgNode
	varNodes []*FgNode
	facNodes []*FgNode
	edges    []*FgEdge
	varIndex map[*model.Var]int
}

// NewFactorGraph returns an empty graph.
func NewFactorGraph() *FactorGraph {
	return &FactorGraph{varIndex: make(map[*model.Var]int)}
}
