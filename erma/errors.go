package erma

import (
	"errors"

	"github.com/katalvlaran/ermabp/model"
)

var (
	// ErrGraphNil indicates a nil factor graph.
	ErrGraphNil = errors.New("erma: graph is nil")

	// ErrOptionViolation indicates an invalid option value.
	ErrOptionViolation = errors.New("erma: invalid option supplied")

	// ErrUnsupportedSchedule indicates an unknown schedule type or update order.
	ErrUnsupportedSchedule = errors.New("erma: unsupported schedule")

	// ErrAlgebraMismatch indicates an adjoint accumulator built in another algebra.
	ErrAlgebraMismatch = errors.New("erma: algebra mismatch")

	// ErrZeroSum indicates an un-normalization whose stored sum is the algebra's zero.
	ErrZeroSum = errors.New("erma: cannot un-normalize a zero sum")

	// ErrUnsignedAlgebra indicates Backward in an algebra that cannot hold negative adjoints.
	ErrUnsignedAlgebra = errors.New("erma: backward requires a signed algebra")

	// ErrNoTape indicates Backward after a forward pass run without KeepTape.
	ErrNoTape = errors.New("erma: no tape recorded")

	// ErrIDRange indicates a variable or factor ID outside the graph.
	ErrIDRange = errors.New("erma: id out of range")

	// ErrTooLarge indicates a global factor belief too large to enumerate.
	ErrTooLarge = errors.New("erma: factor belief too large to enumerate")

	// ErrNotRun indicates a query before Forward.
	ErrNotRun = errors.New("erma: forward has not run")
)

// ErrNaN aliases model.ErrNaN so errors.Is matches both.
var ErrNaN = model.ErrNaN
