// Package operator applies spin Hamiltonians to vectors expressed in a
// symmetry-adapted basis.
//
// An Operator is a sum of Interactions. Each Interaction is a small dense
// matrix on k ∈ {1, 2, 3, 4} spins together with the site tuples it acts on.
// In a local index the first site of a tuple is the least significant bit,
// so for sites (i, j) the local state 2·s_j + s_i selects the matrix row.
//
// Application is row-oriented: for representative r_i,
//
//	y_i = Σ_terms Σ_tuples Σ_l' M[l(r_i)][l'] · χ(x) · n_j / n_i · x_j
//
// where x is r_i with the tuple's spins replaced by l', and StateInfo(x)
// gives its representative r_j, character χ(x) and norm n_j. Rows are
// partitioned across workers, so every output element has one writer.
//
// Element types are float32, float64, complex64 and complex128. Blocks are
// column-major; other layouts are accepted and copied. Real element types
// are only meaningful for real operators: the imaginary part of each result
// is discarded.
package operator
