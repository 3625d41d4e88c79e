package erma

import (
	"math"

	"github.com/katalvlaran/ermabp/core"
	"github.com/katalvlaran/ermabp/model"
)

// messages is the double-buffered state of one edge: the current message
// (time t), the pending one (time t+1) and the last residual. The same
// shape holds message adjoints during Backward.
type messages struct {
	message    *model.VarTensor
	newMessage *model.VarTensor
	residual   float64
}

func newMessages(b *BP, e *core.FgEdge, init float64) *messages {
	vs := model.NewVarSet(e.Var())

	return &messages{
		message:    model.NewVarTensor(b.s, vs, init),
		newMessage: model.NewVarTensor(b.s, vs, init),
		residual:   math.Inf(1),
	}
}

func (m *messages) swap() {
	m.message, m.newMessage = m.newMessage, m.message
}

// tapeEntry records one created message: the edge, a snapshot of the
// message it will replace, the normalizing sum and whether this entry
// triggered a global factor's batch creation. edge == endOfCreation marks
// the end of a parallel creation sweep.
type tapeEntry struct {
	edge    int
	msg     *model.VarTensor
	msgSum  float64
	created bool
}

const endOfCreation = -1

type tape struct {
	entries []tapeEntry
}

func (t *tape) push(e tapeEntry) { t.entries = append(t.entries, e) }
func (t *tape) len() int          { return len(t.entries) }
