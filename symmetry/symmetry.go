// SPDX-License-Identifier: MIT

package symmetry

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/katalvlaran/spinsym/bits"
	"github.com/katalvlaran/spinsym/status"
)

// maxPeriodicity bounds the order of a single symmetry. Orders beyond it
// cannot be enumerated as group elements anyway.
const maxPeriodicity = math.MaxInt32

// Symmetry is one generator: permutation, optional spin flip and sector.
// Immutable after New.
type Symmetry struct {
	permutation []int
	flip        bool
	sector      int
	periodicity int
	mask        bits.Bits // low-n mask used for the flip
}

// New validates and constructs a Symmetry.
//
// Implementation:
//   - Stage 1: permutation must be a bijection on {0..n-1}, 1 ≤ n ≤ bits.MaxSpins.
//   - Stage 2: periodicity = order of (permutation, flip) on configurations.
//   - Stage 3: 0 ≤ sector < periodicity.
//
// Errors:
//   - status.ErrInvalidArgument for any violated stage.
//
// Complexity:
//   - Time O(n), Space O(n).
func New(permutation []int, sector int, flip bool) (*Symmetry, error) {
	if err := validatePermutation(permutation); err != nil {
		return nil, err
	}
	p, err := periodicityOf(permutation, flip)
	if err != nil {
		return nil, err
	}
	if sector < 0 || sector >= p {
		return nil, fmt.Errorf("symmetry.New: sector %d outside [0, %d): %w", sector, p, status.ErrInvalidArgument)
	}
	perm := make([]int, len(permutation))
	copy(perm, permutation)

	return &Symmetry{
		permutation: perm,
		flip:        flip,
		sector:      sector,
		periodicity: p,
		mask:        bits.Mask(len(perm)),
	}, nil
}

// Permutation returns a copy of the spin permutation.
func (s *Symmetry) Permutation() []int {
	out := make([]int, len(s.permutation))
	copy(out, s.permutation)

	return out
}

// NumberSpins returns the length of the permutation.
func (s *Symmetry) NumberSpins() int { return len(s.permutation) }

// Flip reports whether the symmetry includes a global spin inversion.
func (s *Symmetry) Flip() bool { return s.flip }

// Sector returns the sector index in [0, Periodicity).
func (s *Symmetry) Sector() int { return s.sector }

// Periodicity returns the smallest p > 0 with S^p = identity.
func (s *Symmetry) Periodicity() int { return s.periodicity }

// Phase returns sector/periodicity.
func (s *Symmetry) Phase() float64 { return float64(s.sector) / float64(s.periodicity) }

// Eigenvalue returns exp(2πi·Phase()).
func (s *Symmetry) Eigenvalue() complex128 { return eigenvalueOf(newPhase(s.sector, s.periodicity)) }

// Apply maps a configuration through the symmetry.
func (s *Symmetry) Apply(x bits.Bits) bits.Bits {
	y := x.Permute(s.permutation)
	if s.flip {
		y = y.Xor(s.mask)
	}

	return y
}

// validatePermutation checks bijectivity on {0..n-1}.
func validatePermutation(permutation []int) error {
	n := len(permutation)
	if n == 0 || n > bits.MaxSpins {
		return fmt.Errorf("symmetry: permutation length %d outside [1, %d]: %w", n, bits.MaxSpins, status.ErrInvalidArgument)
	}
	seen := make([]bool, n)
	for i, p := range permutation {
		if p < 0 || p >= n {
			return fmt.Errorf("symmetry: permutation[%d]=%d out of range: %w", i, p, status.ErrInvalidArgument)
		}
		if seen[p] {
			return fmt.Errorf("symmetry: permutation repeats %d: %w", p, status.ErrInvalidArgument)
		}
		seen[p] = true
	}

	return nil
}

// periodicityOf returns the order of (permutation, flip): the lcm of the
// cycle lengths, doubled when the flip survives an odd number of rounds.
func periodicityOf(permutation []int, flip bool) (int, error) {
	visited := make([]bool, len(permutation))
	order := 1
	for start := range permutation {
		if visited[start] {
			continue
		}
		length := 0
		for i := start; !visited[i]; i = permutation[i] {
			visited[i] = true
			length++
		}
		order = order / gcd(order, length) * length
		if order > maxPeriodicity {
			return 0, fmt.Errorf("symmetry: periodicity exceeds %d: %w", maxPeriodicity, status.ErrInvalidArgument)
		}
	}
	if flip && order%2 == 1 {
		order *= 2
	}

	return order, nil
}

// eigenvalueOf computes exp(2πi·p), snapping quarter turns to exact values so
// that characters like -1 or i do not carry rounding noise into norms.
func eigenvalueOf(p phase) complex128 {
	switch {
	case p.num == 0:
		return 1
	case p.den == 2:
		return -1
	case p.den == 4 && p.num == 1:
		return 1i
	case p.den == 4 && p.num == 3:
		return -1i
	}

	return cmplx.Exp(complex(0, 2*math.Pi*p.float()))
}
