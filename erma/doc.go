// Package erma implements loopy belief propagation with reverse-mode
// automatic differentiation (ERMA: empirical risk minimization under
// approximations) over a core.FactorGraph.
//
// Forward runs message passing to convergence or an iteration limit and
// records every message update on a tape. Afterwards the engine exposes
// normalized variable and factor beliefs and a partition function estimate.
// Backward replays the tape in reverse: given adjoints of a scalar loss with
// respect to the normalized beliefs, it produces the adjoints of every factor
// potential, differentiating through all iterations, normalizations and
// global factor dynamic programs.
//
// Lifecycle:
//
//	New → Forward → beliefs / Partition → OutputAdj (fill) → Backward → PotentialsAdj
//
// All numeric work is generic over semiring.Algebra; Backward needs a signed
// algebra (Real or LogSign) because adjoints can be negative.
//
// Concurrency: a BP owns its messages, tape, beliefs and adjoints and must
// not be used from several goroutines at once. Any number of engines may
// share one read-only FactorGraph.
//
// Errors:
//
//	ErrGraphNil            - nil graph.
//	ErrOptionViolation     - invalid option value.
//	ErrUnsupportedSchedule - unknown schedule or update order.
//	ErrAlgebraMismatch     - accumulator built for another algebra.
//	ErrNaN                 - NaN in a message, belief or adjoint.
//	ErrZeroSum             - cannot un-normalize a tensor that summed to zero.
//	ErrUnsignedAlgebra     - Backward in an algebra without negative values.
//	ErrNoTape / ErrNotRun  - Backward without a recorded forward pass.
//	ErrIDRange             - variable or factor ID outside the graph.
//	ErrTooLarge            - global factor belief above MaxBeliefConfigs.
package erma
