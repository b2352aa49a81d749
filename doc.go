// Package spinsym builds symmetry-adapted bases for systems of spin-1/2
// sites and applies spin Hamiltonians in them.
//
// 🚀 What is spinsym?
//
//	A library for exact-diagonalization workflows that need:
//		• Symmetries: lattice permutations with optional global spin flip,
//		  each pinned to a sector (character)
//		• Groups: closure of generators with consistency checks
//		• Bases: one representative per orbit, optional fixed magnetization,
//		  parallel construction, binary caches
//		• Operators: sums of 1–4 spin interactions applied to blocks of
//		  vectors (matmat) and expectation values
//
// ✨ Why choose spinsym?
//
//   - Small Hilbert spaces – every symmetry divides the dimension
//   - Predictable – explicit errors (status), explicit ownership (Close)
//   - Parallel – bounded worker pools, cooperative cancellation via context
//   - Observable – slog diagnostics and opt-in Prometheus metrics
//
// Packages:
//
//	bits/     — fixed-width spin configurations and packed sorted tables
//	status/   — error kinds with numeric codes
//	symmetry/ — Symmetry, Group, characters
//	basis/    — SpinBasis: build, lookup, state info, cache files
//	operator/ — Interaction, Operator, Apply, Expectation
//	model/    — YAML model files → basis + operator
//	metrics/  — Prometheus recorder
//
// Quick sketch (4-site ring, zero momentum, Sz = 0):
//
//	T, _ := symmetry.New([]int{1, 2, 3, 0}, 0, false)
//	G, _ := symmetry.NewGroup([]*symmetry.Symmetry{T})
//	b, _ := basis.New(4, 2, G)
//	_ = b.Build(ctx)                 // 2 states: 0011, 0101
//	h, _ := operator.New(b, terms)
//	_ = operator.Apply(ctx, h, x, y) // y = H·x
package spinsym
