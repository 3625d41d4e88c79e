// SPDX-License-Identifier: MIT
// Package model holds the discrete variable model used by factor graphs:
//
//	Var        a discrete random variable with a type tag
//	VarSet     a canonically ordered, duplicate-free set of variables
//	VarConfig  a (partial) assignment of states to variables
//	VarTensor  a dense table of algebra values indexed by configuration
//	Factor     a potential over a VarSet (explicit table or global capability)
//
// Configuration indices use mixed-radix encoding over the VarSet order with the
// last variable varying fastest. Because every VarSet sorts its variables the
// same way (by name, then by creation order), the index of a configuration in a
// subset can always be recovered from its index in a superset (see Project).
//
// Tensors carry their semiring.Algebra; binary operations between tensors of
// different algebras fail with ErrAlgebraMismatch.
package model
