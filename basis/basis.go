// SPDX-License-Identifier: MIT

package basis

import (
	"fmt"
	"math"
	"sync"

	"github.com/katalvlaran/spinsym/bits"
	"github.com/katalvlaran/spinsym/status"
	"github.com/katalvlaran/spinsym/symmetry"
)

// SpinBasis is a symmetry-adapted basis of numberSpins spin-1/2 sites,
// optionally restricted to a fixed number of up spins.
type SpinBasis struct {
	numberSpins   int
	hammingWeight int // -1 when unrestricted
	group         *symmetry.Group
	opts          options

	mu    sync.RWMutex
	built bool
	table *bits.Table
	norms []float64
	index *prefixIndex
}

// New validates the configuration and returns an unbuilt basis.
//
// A nil or empty group means "no symmetries". A negative hammingWeight means
// the Hamming weight is not fixed.
//
// Errors (status.ErrInvalidArgument):
//   - numberSpins outside [1, bits.MaxSpins];
//   - hammingWeight > numberSpins;
//   - group acting on a different number of spins;
//   - group containing spin flip while hammingWeight ≠ numberSpins/2
//     (odd numberSpins with a fixed weight included).
func New(numberSpins, hammingWeight int, group *symmetry.Group, opts ...Option) (*SpinBasis, error) {
	if numberSpins < 1 || numberSpins > bits.MaxSpins {
		return nil, fmt.Errorf("basis.New: numberSpins=%d outside [1, %d]: %w",
			numberSpins, bits.MaxSpins, status.ErrInvalidArgument)
	}
	if hammingWeight > numberSpins {
		return nil, fmt.Errorf("basis.New: hammingWeight=%d > numberSpins=%d: %w",
			hammingWeight, numberSpins, status.ErrInvalidArgument)
	}
	if hammingWeight < 0 {
		hammingWeight = -1
	}
	if group == nil || group.Size() == 0 {
		g, err := symmetry.TrivialGroup(numberSpins)
		if err != nil {
			return nil, err
		}
		group = g
	}
	if group.NumberSpins() != numberSpins {
		return nil, fmt.Errorf("basis.New: group acts on %d spins, basis has %d: %w",
			group.NumberSpins(), numberSpins, status.ErrInvalidArgument)
	}
	if group.HasFlip() && hammingWeight >= 0 && 2*hammingWeight != numberSpins {
		return nil, fmt.Errorf("basis.New: spin flip requires hammingWeight=numberSpins/2, got %d of %d: %w",
			hammingWeight, numberSpins, status.ErrInvalidArgument)
	}

	return &SpinBasis{
		numberSpins:   numberSpins,
		hammingWeight: hammingWeight,
		group:         group,
		opts:          gatherOptions(opts...),
	}, nil
}

// NumberSpins returns the number of sites.
func (b *SpinBasis) NumberSpins() int { return b.numberSpins }

// HammingWeight returns the fixed number of up spins, if any.
func (b *SpinBasis) HammingWeight() (int, bool) {
	return b.hammingWeight, b.hammingWeight >= 0
}

// HasSymmetries reports whether the group is larger than the identity.
func (b *SpinBasis) HasSymmetries() bool { return b.group.Size() > 1 }

// Group returns the symmetry group (the trivial group when none was given).
func (b *SpinBasis) Group() *symmetry.Group { return b.group }

// NumberBits returns the storage width of one configuration in bits.
func (b *SpinBasis) NumberBits() int { return bits.WordSize * bits.Words(b.numberSpins) }

// IsBuilt reports whether Build (or LoadCache) has completed.
func (b *SpinBasis) IsBuilt() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.built
}

// StateInfo returns the orbit representative of x, the character χ(g) of an
// element g with g·x = representative, and the norm of the representative.
// It does not require a built basis. Bits at or above NumberSpins are
// ignored. Without symmetries it returns (x, 1, 1) for the masked x.
//
// Complexity: O(|G|·n).
func (b *SpinBasis) StateInfo(x bits.Bits) (bits.Bits, complex128, float64) {
	x = x.And(bits.Mask(b.numberSpins))
	if !b.HasSymmetries() {
		return x, 1, 1
	}
	rep, chi := x, complex128(1)
	var stab complex128
	for i := 0; i < b.group.Size(); i++ {
		e := b.group.At(i)
		y := e.Apply(x)
		if y.Less(rep) {
			rep, chi = y, e.Eigenvalue()
		}
		if y == x {
			stab += e.Eigenvalue()
		}
	}

	return rep, chi, b.normOf(stab)
}

// IsRepresentative reports whether x is the smallest member of its orbit and
// has a non-zero norm. The norm is returned either way (0 when x is not the
// representative). Bits at or above NumberSpins are ignored.
func (b *SpinBasis) IsRepresentative(x bits.Bits) (bool, float64) {
	x = x.And(bits.Mask(b.numberSpins))
	if !b.HasSymmetries() {
		return true, 1
	}
	var stab complex128
	for i := 0; i < b.group.Size(); i++ {
		e := b.group.At(i)
		y := e.Apply(x)
		if y.Less(x) {
			return false, 0
		}
		if y == x {
			stab += e.Eigenvalue()
		}
	}
	n := b.normOf(stab)

	return n > 0, n
}

func (b *SpinBasis) normOf(stab complex128) float64 {
	re := real(stab)
	if re <= NormTolerance {
		return 0
	}

	return math.Sqrt(re / float64(b.group.Size()))
}

// NumberStates returns the number of representatives.
func (b *SpinBasis) NumberStates() (uint64, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.built {
		return 0, fmt.Errorf("basis.NumberStates: %w", status.ErrBasisNotBuilt)
	}

	return uint64(b.table.Len()), nil
}

// States returns an owned copy of the representatives in ascending order.
func (b *SpinBasis) States() ([]bits.Bits, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.built {
		return nil, fmt.Errorf("basis.States: %w", status.ErrBasisNotBuilt)
	}
	out := make([]bits.Bits, b.table.Len())
	for i := range out {
		out[i] = b.table.At(i)
	}

	return out, nil
}

// StatesUint64 is States for bases of at most 64 spins.
func (b *SpinBasis) StatesUint64() ([]uint64, error) {
	if b.numberSpins > bits.WordSize {
		return nil, fmt.Errorf("basis.StatesUint64: %d spins do not fit in uint64: %w",
			b.numberSpins, status.ErrInvalidArgument)
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.built {
		return nil, fmt.Errorf("basis.StatesUint64: %w", status.ErrBasisNotBuilt)
	}
	out := make([]uint64, len(b.table.Raw()))
	copy(out, b.table.Raw())

	return out, nil
}

// Norms returns an owned copy of the representatives' norms.
func (b *SpinBasis) Norms() ([]float64, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.built {
		return nil, fmt.Errorf("basis.Norms: %w", status.ErrBasisNotBuilt)
	}
	out := make([]float64, len(b.norms))
	copy(out, b.norms)

	return out, nil
}

// Index returns the position of representative x.
//
// Errors:
//   - status.ErrBasisNotBuilt before Build;
//   - status.ErrStateNotFound when x is not a representative.
func (b *SpinBasis) Index(x bits.Bits) (uint64, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.built {
		return 0, fmt.Errorf("basis.Index: %w", status.ErrBasisNotBuilt)
	}
	i, ok := b.lookup(x)
	if !ok {
		return 0, fmt.Errorf("basis.Index: %v: %w", x, status.ErrStateNotFound)
	}

	return uint64(i), nil
}

// lookup requires the read lock and a built basis.
func (b *SpinBasis) lookup(x bits.Bits) (int, bool) {
	if x.And(bits.Mask(b.numberSpins)) != x {
		return 0, false
	}

	return b.index.find(b.table, x)
}

// Close releases the representative tables; the basis returns to the unbuilt
// state and may be rebuilt. Close waits for outstanding Views.
func (b *SpinBasis) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.built = false
	b.table, b.norms, b.index = nil, nil, nil

	return nil
}

// View is a read-only borrowed view of a built basis. It holds the basis'
// read lock until Release, so Build, LoadCache and Close wait for it.
// Do not call locking SpinBasis methods (Index, States, ...) while holding a
// View from the same goroutine; use the View's own methods.
type View struct {
	b    *SpinBasis
	once sync.Once
}

// Acquire borrows a View. Errors: status.ErrBasisNotBuilt.
func (b *SpinBasis) Acquire() (*View, error) {
	b.mu.RLock()
	if !b.built {
		b.mu.RUnlock()
		return nil, fmt.Errorf("basis.Acquire: %w", status.ErrBasisNotBuilt)
	}

	return &View{b: b}, nil
}

// Release returns the borrowed lock. Safe to call more than once.
func (v *View) Release() {
	v.once.Do(v.b.mu.RUnlock)
}

// Basis returns the owning basis.
func (v *View) Basis() *SpinBasis { return v.b }

// Len returns the number of representatives.
func (v *View) Len() int { return v.b.table.Len() }

// State returns representative i.
func (v *View) State(i int) bits.Bits { return v.b.table.At(i) }

// Norm returns the norm of representative i.
func (v *View) Norm(i int) float64 { return v.b.norms[i] }

// Lookup returns the position of representative x.
func (v *View) Lookup(x bits.Bits) (int, bool) { return v.b.lookup(x) }
