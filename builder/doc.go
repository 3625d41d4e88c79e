// Package builder assembles reproducible factor-graph fixtures for tests,
// benchmarks and the command line tool.
//
// The package offers the following key components:
//
//   - Orchestration:
//     – BuildGraph:   creates a core.FactorGraph and applies Constructors in order.
//     – Constructor:  a closure adding variables and factors to the graph.
//   - Topologies:
//     – Chain, Star:        acyclic pairwise models (BP is exact on them).
//     – Cycle, Grid, Complete: loopy pairwise models.
//     – DepTree, DepTreeScores: a projective dependency tree factor with
//     unary link potentials.
//   - Configuration primitives:
//     – BuilderOption:  a function that mutates builderConfig before use.
//     – builderConfig:  variable naming, RNG, potential generator, arity, type.
//   - Variable naming schemes (IDFn): DefaultIDFn, SymbolIDFn,
//     ExcelColumnIDFn, SymbolNumberIDFn; selected with WithIDScheme or
//     WithVarPrefix.
//   - Log-potential generators (PotentialFn): ConstantPotentialFn,
//     UniformPotentialFn, NormalPotentialFn.
//
// Guarantees:
//
//   - Determinism: the same options, seed and constructor order give the same
//     graph, variable names and potentials.
//   - Fast-fail on meaningless option parameters via panics in option constructors.
//   - Constructors never panic; they return sentinel errors wrapped with the
//     method name.
//   - Every constructor creates fresh variables, so composing several
//     constructors yields disconnected components.
package builder
