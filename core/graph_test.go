package core_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/ermabp/core"
	"github.com/katalvlaran/ermabp/model"
)

// FactorGraphSuite checks node and edge bookkeeping.
type FactorGraphSuite struct {
	suite.Suite
	x0, x1 *model.Var
	g      *core.FactorGraph
}

func (s *FactorGraphSuite) SetupTest() {
	var err error
	s.x0, err = model.NewVar(model.Predicted, 2, "x0", nil)
	require.NoError(s.T(), err)
	s.x1, err = model.NewVar(model.Predicted, 3, "x1", nil)
	require.NoError(s.T(), err)

	s.g = core.NewFactorGraph()
	_, err = s.g.AddFactor(model.NewExplicitFactor(model.NewVarSet(s.x0)))
	require.NoError(s.T(), err)
	_, err = s.g.AddFactor(model.NewExplicitFactor(model.NewVarSet(s.x0, s.x1)))
	require.NoError(s.T(), err)
}

func (s *FactorGraphSuite) TestCounts() {
	require.Equal(s.T(), 2, s.g.NumVars())
	require.Equal(s.T(), 2, s.g.NumFactors())
	require.Equal(s.T(), 6, s.g.NumEdges())
	require.Equal(s.T(), 4, s.g.NumNodes())
	require.Equal(s.T(), core.Stats{Vars: 2, Factors: 2, Edges: 6}, s.g.Stats())
}

func (s *FactorGraphSuite) TestEdgeIDsAndOpposing() {
	for i, e := range s.g.Edges() {
		require.Equal(s.T(), i, e.ID())
		require.Same(s.T(), e, e.Opposing().Opposing())
		require.Same(s.T(), e.Parent(), e.Opposing().Child())
		require.NotEqual(s.T(), e.IsVarToFactor(), e.Opposing().IsVarToFactor())
		require.True(s.T(), e.VarNode().IsVar())
		require.False(s.T(), e.FactorNode().IsVar())
	}
	// factor→var precedes var→factor for each incidence
	require.False(s.T(), s.g.Edge(0).IsVarToFactor())
	require.True(s.T(), s.g.Edge(1).IsVarToFactor())
}

func (s *FactorGraphSuite) TestAdjacency() {
	id, err := s.g.VarID(s.x0)
	require.NoError(s.T(), err)
	n := s.g.VarNode(id)
	require.Len(s.T(), n.InEdges(), 2)
	require.Len(s.T(), n.OutEdges(), 2)
	for _, e := range n.InEdges() {
		require.Same(s.T(), n, e.Child())
		require.Same(s.T(), s.x0, e.Var())
	}
	pair := s.g.FactorNode(1)
	require.Len(s.T(), pair.OutEdges(), 2)
	require.Equal(s.T(), 1, pair.FactorID())
	require.Equal(s.T(), -1, pair.VarID())
}

func (s *FactorGraphSuite) TestAddVarIdempotent() {
	id, err := s.g.AddVar(s.x1)
	require.NoError(s.T(), err)
	require.Equal(s.T(), 1, id)
	require.Equal(s.T(), 2, s.g.NumVars())
}

func (s *FactorGraphSuite) TestErrors() {
	_, err := s.g.AddVar(nil)
	require.True(s.T(), errors.Is(err, core.ErrNilVar))
	_, err = s.g.AddFactor(nil)
	require.True(s.T(), errors.Is(err, core.ErrNilFactor))
	stranger, err := model.NewVar(model.Latent, 2, "z", nil)
	require.NoError(s.T(), err)
	_, err = s.g.VarID(stranger)
	require.True(s.T(), errors.Is(err, core.ErrVarNotFound))
}

func TestFactorGraphSuite(t *testing.T) {
	suite.Run(t, new(FactorGraphSuite))
}
