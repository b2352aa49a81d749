// Package bits implements spin configurations as fixed-width wide integers.
//
// A configuration of n spin-1/2 degrees of freedom is an n-bit pattern where
// bit i is the state of spin i. Bits stores up to MaxSpins spins in an array
// of machine words with explicit little-endian word order, which keeps
// comparison, bit extraction and permutation application allocation-free.
//
// Table packs many configurations of a fixed spin count into a flat []uint64
// using only Words(n) words per entry. This is the storage behind the sorted
// representative tables of a basis: a 20-spin basis costs 8 bytes per state.
//
// Ordering: configurations compare as unsigned integers (most significant
// word first), so "lexicographically smallest" and "numerically smallest"
// coincide.
package bits
