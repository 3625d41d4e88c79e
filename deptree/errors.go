package deptree

import "errors"

var (
	// ErrNumTokens indicates a sentence length below one.
	ErrNumTokens = errors.New("deptree: number of tokens must be positive")

	// ErrScoreShape indicates score slices that do not match the sentence length.
	ErrScoreShape = errors.New("deptree: score shape does not match sentence length")

	// ErrNotBinary indicates an incoming message that is not over one binary link variable.
	ErrNotBinary = errors.New("deptree: message is not over a binary link variable")
)
