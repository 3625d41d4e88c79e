// Package deptree provides the projective dependency tree constraint as a
// global factor over binary link variables.
//
// For a sentence of n tokens there is one link variable Link_i_j for every
// candidate parent i ∈ {-1, …, n-1} (-1 is the wall) and child j ≠ i. A
// configuration scores 0 (log potential) when the TRUE links form a single
// rooted projective tree and -Inf otherwise.
//
// Messages out of the factor are computed in O(n³) by inside-outside over
// the Eisner hypergraph instead of enumerating the 2^(n²) configurations:
//
//	W(i,j)     = T(i,j) ⊗ ⨂_{k≠i} F(k,j)             per child, no division
//	∂Z/∂W      from hypergraph inside-outside
//	out TRUE   = ∂Z/∂W(i,j) ⊗ ⨂_{k≠i} F(k,j)
//	out FALSE  = ⨁_{i'≠i} ∂Z/∂W(i',j) ⊗ T(i',j) ⊗ ⨂_{k∉{i,i'}} F(k,j)
//
// where T and F are the incoming TRUE and FALSE message entries. Exclusion
// products are built from prefix and suffix products, so messages clamped to
// zero are handled exactly. The same code runs in every semiring.Algebra.
//
// The package also exposes the plain tree algorithms used around the factor:
// Decode (Eisner argmax), LinkMarginals, CountTrees and IsProjectiveTree.
package deptree
