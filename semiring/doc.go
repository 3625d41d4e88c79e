// Package semiring defines the Algebra contract shared by every numeric routine
// of ermabp, together with its three instances:
//
//	Real     ordinary probability space
//	Log      natural-log space, numerically stable products of many factors
//	LogSign  signed natural-log space, for expectations and adjoints that may be negative
//
// All values are plain float64 so a tensor, a message or a dynamic-programming
// chart can be written once and run in any algebra. LogSign packs the sign into
// the least significant mantissa bit of the stored log magnitude.
//
// Equality is defined in real space: two values are equal when their real
// images differ by at most an absolute tolerance (Tolerance = 1e-13 in tests).
package semiring
