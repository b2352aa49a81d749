// SPDX-License-Identifier: MIT

package operator

import (
	"fmt"
	"math/cmplx"

	"github.com/katalvlaran/spinsym/bits"
	"github.com/katalvlaran/spinsym/status"
)

// MaxArity is the largest number of spins a single Interaction couples.
const MaxArity = 4

// HermitianTolerance is the absolute tolerance of IsHermitian.
const HermitianTolerance = 1e-12

// Interaction is a 2^k × 2^k matrix applied on every k-tuple of sites.
// Immutable after construction.
type Interaction struct {
	arity  int
	matrix [][]complex128
	sites  [][]int
}

// NewInteraction validates and copies matrix and sites.
//
// Errors (status.ErrInvalidArgument):
//   - matrix not square with side 2^k, k ∈ [1, MaxArity];
//   - a tuple whose length differs from k, or with negative, too large or
//     repeated indices.
func NewInteraction(matrix [][]complex128, sites [][]int) (*Interaction, error) {
	side := len(matrix)
	arity := 0
	for s := side; s > 1 && s%2 == 0; s /= 2 {
		arity++
	}
	if side < 2 || 1<<arity != side || arity > MaxArity {
		return nil, fmt.Errorf("operator.NewInteraction: matrix side %d is not 2^k, k in [1,%d]: %w",
			side, MaxArity, status.ErrInvalidArgument)
	}
	m := make([][]complex128, side)
	for i, row := range matrix {
		if len(row) != side {
			return nil, fmt.Errorf("operator.NewInteraction: row %d has %d entries, want %d: %w",
				i, len(row), side, status.ErrInvalidArgument)
		}
		m[i] = append([]complex128(nil), row...)
	}

	ss := make([][]int, len(sites))
	for t, tuple := range sites {
		if len(tuple) != arity {
			return nil, fmt.Errorf("operator.NewInteraction: tuple %d has %d sites, want %d: %w",
				t, len(tuple), arity, status.ErrInvalidArgument)
		}
		for a, s := range tuple {
			if s < 0 || s >= bits.MaxSpins {
				return nil, fmt.Errorf("operator.NewInteraction: tuple %d: site %d out of range: %w",
					t, s, status.ErrInvalidArgument)
			}
			for _, prev := range tuple[:a] {
				if prev == s {
					return nil, fmt.Errorf("operator.NewInteraction: tuple %d repeats site %d: %w",
						t, s, status.ErrInvalidArgument)
				}
			}
		}
		ss[t] = append([]int(nil), tuple...)
	}

	return &Interaction{arity: arity, matrix: m, sites: ss}, nil
}

// NewInteraction1 builds a single-spin term.
func NewInteraction1(matrix [2][2]complex128, sites [][1]int) (*Interaction, error) {
	m := make([][]complex128, len(matrix))
	for i := range matrix {
		m[i] = matrix[i][:]
	}
	s := make([][]int, len(sites))
	for i := range sites {
		s[i] = sites[i][:]
	}

	return NewInteraction(m, s)
}

// NewInteraction2 builds a two-spin term.
func NewInteraction2(matrix [4][4]complex128, sites [][2]int) (*Interaction, error) {
	m := make([][]complex128, len(matrix))
	for i := range matrix {
		m[i] = matrix[i][:]
	}
	s := make([][]int, len(sites))
	for i := range sites {
		s[i] = sites[i][:]
	}

	return NewInteraction(m, s)
}

// NewInteraction3 builds a three-spin term.
func NewInteraction3(matrix [8][8]complex128, sites [][3]int) (*Interaction, error) {
	m := make([][]complex128, len(matrix))
	for i := range matrix {
		m[i] = matrix[i][:]
	}
	s := make([][]int, len(sites))
	for i := range sites {
		s[i] = sites[i][:]
	}

	return NewInteraction(m, s)
}

// NewInteraction4 builds a four-spin term.
func NewInteraction4(matrix [16][16]complex128, sites [][4]int) (*Interaction, error) {
	m := make([][]complex128, len(matrix))
	for i := range matrix {
		m[i] = matrix[i][:]
	}
	s := make([][]int, len(sites))
	for i := range sites {
		s[i] = sites[i][:]
	}

	return NewInteraction(m, s)
}

// Arity returns k, the number of spins per tuple.
func (it *Interaction) Arity() int { return it.arity }

// Matrix returns a copy of the local matrix.
func (it *Interaction) Matrix() [][]complex128 {
	out := make([][]complex128, len(it.matrix))
	for i, row := range it.matrix {
		out[i] = append([]complex128(nil), row...)
	}

	return out
}

// Sites returns a copy of the site tuples.
func (it *Interaction) Sites() [][]int {
	out := make([][]int, len(it.sites))
	for i, t := range it.sites {
		out[i] = append([]int(nil), t...)
	}

	return out
}

// maxSite returns the largest site index, or -1 without tuples.
func (it *Interaction) maxSite() int {
	m := -1
	for _, t := range it.sites {
		for _, s := range t {
			m = max(m, s)
		}
	}

	return m
}

// IsHermitian reports whether M = M† within HermitianTolerance.
func (it *Interaction) IsHermitian() bool {
	for i, row := range it.matrix {
		for j := i; j < len(row); j++ {
			if cmplx.Abs(row[j]-cmplx.Conj(it.matrix[j][i])) > HermitianTolerance {
				return false
			}
		}
	}

	return true
}

// IsReal reports whether every matrix entry has a zero imaginary part.
func (it *Interaction) IsReal() bool {
	for _, row := range it.matrix {
		for _, v := range row {
			if imag(v) != 0 {
				return false
			}
		}
	}

	return true
}
