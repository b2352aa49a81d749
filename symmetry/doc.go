// Package symmetry models lattice symmetries and the groups they generate.
//
// A Symmetry is a permutation of spin indices, optionally combined with a
// global spin flip, together with a sector that selects the eigenvalue
// exp(2πi·sector/periodicity) of the symmetry operator. Acting on a
// configuration x, spin i of the image is spin permutation[i] of x (flipped
// when Flip is set).
//
// NewGroup closes a list of generators under composition with a worklist
// keyed by the action (permutation + flip). Phases are tracked as exact
// rationals, so a set of generators that is not a one-dimensional
// representation of the group it generates is rejected with
// status.ErrIncompatibleSymmetries instead of silently producing wrong
// characters.
//
// Complexity: NewGroup is O(|G|·k·n) for k generators on n spins.
package symmetry
