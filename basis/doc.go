// Package basis builds symmetry-adapted bases of spin-1/2 configurations.
//
// What & Why:
//
//	A SpinBasis keeps one representative per symmetry orbit: the smallest
//	configuration reachable by any group element. Representatives whose
//	symmetrized state vanishes in the chosen sector are discarded. For a
//	representative r with stabilizer S(r) = {g : g r = r} and characters χ:
//
//	  norm(r)² = Re Σ_{g∈S(r)} χ(g) / |G|
//
//	which is the squared length of P|r⟩, P = |G|⁻¹ Σ_g χ(g)* T_g the sector
//	projector. In exact arithmetic the sum is |S(r)| or 0; NormTolerance
//	decides "0" in floating point.
//
// Lifecycle:
//
//	New → structural queries → Build(ctx) → StateInfo/Index/States/Acquire
//	→ SaveCache / LoadCache → Close.
//
// Enumeration:
//
//	Candidates are visited in ascending numeric order: all 2ⁿ patterns, or
//	with a fixed Hamming weight the combinations in colex order (unranked
//	with the combinatorial number system, then stepped). Work is split into
//	chunks processed in parallel; each chunk owns its output slot and chunks
//	are concatenated in order, so the table is sorted by construction.
//
// Lookup:
//
//	Index uses a prefix table over the top (≤16) spins that narrows the
//	binary search to one bucket of the sorted table.
//
// Concurrency:
//
//	A built basis is read-only; StateInfo, Index and View lookups are safe
//	from many goroutines. Build, LoadCache and Close take the write lock.
package basis
