// Package ermabp is an in-memory toolkit for loopy belief propagation with
// reverse-mode automatic differentiation over factor graphs.
//
// What is inside?
//
//	A thread-safe graph core plus the inference and gradient machinery:
//		• Models: discrete variables, variable sets, tensors, explicit and global factors
//		• Semirings: Real, Log and signed-log arithmetic behind one Algebra interface
//		• Graph: bipartite factor graph with paired directed edges
//		• Traversals: BFS edge schedules, DFS components and cycle checks
//		• Inference: ERMA belief propagation with a recorded tape (erma)
//		• Gradients: adjoints of factor potentials through every message update
//		• Global factors: projective dependency trees via Eisner's hypergraph
//		• Oracles: brute-force enumeration for small graphs
//
// Packages:
//
//	model/      - Var, VarSet, VarTensor, ExplicitFactor, GlobalFactor
//	semiring/   - Real, Log, LogSign algebras
//	core/       - FactorGraph, FgNode, FgEdge
//	bfs/, dfs/  - traversal over the factor graph
//	schedule/   - tree-like and random message orders
//	hypergraph/ - inside-outside, Viterbi and their adjoints
//	deptree/    - ProjDepTreeFactor and tree utilities
//	erma/       - BP engine, beliefs, partition, Backward, YAML config
//	bruteforce/ - exact marginals by enumeration
//	builder/    - synthetic graphs: chain, star, cycle, grid, complete, deptree
//	cmd/ermabp  - command line front end
//
// Quick ASCII example, a two-variable chain with one pairwise factor:
//
//	    x0 ── f ── x1
//
// becomes four directed edges: f→x0, x0→f, f→x1, x1→f.
//
//	go get github.com/katalvlaran/ermabp
package ermabp
