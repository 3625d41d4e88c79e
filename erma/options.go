package erma

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"

	"github.com/katalvlaran/ermabp/semiring"
)

// ScheduleType selects the sequential edge order.
type ScheduleType int

const (
	// TreeLike is the two-pass BFS order, exact on trees.
	TreeLike ScheduleType = iota
	// Random reshuffles all edges every iteration.
	Random
)

func (t ScheduleType) String() string {
	switch t {
	case TreeLike:
		return "tree_like"
	case Random:
		return "random"
	default:
		return fmt.Sprintf("ScheduleType(%d)", int(t))
	}
}

// MarshalText encodes the type by name.
func (t ScheduleType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// UnmarshalText accepts "tree_like" or "random" (case-insensitive, '-' for '_').
func (t *ScheduleType) UnmarshalText(b []byte) error {
	switch normalizeName(string(b)) {
	case "tree_like":
		*t = TreeLike
	case "random":
		*t = Random
	default:
		return fmt.Errorf("schedule %q: %w", b, ErrUnsupportedSchedule)
	}

	return nil
}

// UpdateOrder selects sequential (asynchronous) or parallel (synchronous) updates.
type UpdateOrder int

const (
	// Sequential creates and sends each message before the next.
	Sequential UpdateOrder = iota
	// Parallel creates every message from the previous iteration's state, then sends all.
	Parallel
)

func (u UpdateOrder) String() string {
	switch u {
	case Sequential:
		return "sequential"
	case Parallel:
		return "parallel"
	default:
		return fmt.Sprintf("UpdateOrder(%d)", int(u))
	}
}

// MarshalText encodes the order by name.
func (u UpdateOrder) MarshalText() ([]byte, error) { return []byte(u.String()), nil }

// UnmarshalText accepts "sequential" or "parallel".
func (u *UpdateOrder) UnmarshalText(b []byte) error {
	switch normalizeName(string(b)) {
	case "sequential":
		*u = Sequential
	case "parallel":
		*u = Parallel
	default:
		return fmt.Errorf("update order %q: %w", b, ErrUnsupportedSchedule)
	}

	return nil
}

func normalizeName(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
}

// Option configures a BP engine. Invalid values are recorded and surface as
// ErrOptionViolation from New.
type Option func(*Options)

// Options holds the engine parameters.
type Options struct {
	Schedule    ScheduleType
	UpdateOrder UpdateOrder

	// MaxIterations bounds the outer loop; 0 sends only the constant messages.
	MaxIterations int

	Algebra semiring.Algebra

	// NormalizeMessages divides every created message by its sum.
	NormalizeMessages bool

	// ConvergenceThreshold is the residual at or below which an edge counts as converged.
	ConvergenceThreshold float64

	// KeepTape records the forward pass for Backward.
	KeepTape bool

	// Seed drives the Random schedule; 0 selects a fixed default.
	Seed int64

	Logger      *slog.Logger
	Accumulator *AdjointAccumulator

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns tree-like parallel updates in the Log algebra with
// normalized messages, 100 iterations, threshold 0 and a tape.
func DefaultOptions() Options {
	return Options{
		Schedule:             TreeLike,
		UpdateOrder:          Parallel,
		MaxIterations:        100,
		Algebra:              semiring.Log{},
		NormalizeMessages:    true,
		ConvergenceThreshold: 0,
		KeepTape:             true,
		Logger:               slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithSchedule sets the sequential schedule type.
func WithSchedule(t ScheduleType) Option {
	return func(o *Options) {
		if t != TreeLike && t != Random {
			o.err = fmt.Errorf("%w: %s", ErrUnsupportedSchedule, t)
			return
		}
		o.Schedule = t
	}
}

// WithUpdateOrder sets sequential or parallel updates.
func WithUpdateOrder(u UpdateOrder) Option {
	return func(o *Options) {
		if u != Sequential && u != Parallel {
			o.err = fmt.Errorf("%w: %s", ErrUnsupportedSchedule, u)
			return
		}
		o.UpdateOrder = u
	}
}

// WithMaxIterations sets the iteration limit; negative values are rejected.
func WithMaxIterations(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: MaxIterations cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxIterations = n
	}
}

// WithAlgebra sets the semiring all messages and beliefs live in.
func WithAlgebra(s semiring.Algebra) Option {
	return func(o *Options) {
		if s == nil {
			o.err = fmt.Errorf("%w: nil algebra", ErrOptionViolation)
			return
		}
		o.Algebra = s
	}
}

// WithNormalizeMessages toggles message normalization.
func WithNormalizeMessages(on bool) Option {
	return func(o *Options) { o.NormalizeMessages = on }
}

// WithConvergenceThreshold sets the residual threshold; it must be a finite value ≥ 0.
func WithConvergenceThreshold(thr float64) Option {
	return func(o *Options) {
		if thr < 0 || math.IsNaN(thr) || math.IsInf(thr, 0) {
			o.err = fmt.Errorf("%w: ConvergenceThreshold must be finite and >= 0 (%v)", ErrOptionViolation, thr)
			return
		}
		o.ConvergenceThreshold = thr
	}
}

// WithKeepTape toggles tape recording.
func WithKeepTape(on bool) Option {
	return func(o *Options) { o.KeepTape = on }
}

// WithSeed seeds the Random schedule.
func WithSeed(seed int64) Option {
	return func(o *Options) { o.Seed = seed }
}

// WithLogger sets the structured logger; nil keeps the default discard logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithAccumulator routes potential adjoints into acc, which must be built in
// the engine's algebra.
func WithAccumulator(acc *AdjointAccumulator) Option {
	return func(o *Options) { o.Accumulator = acc }
}
