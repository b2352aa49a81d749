// SPDX-License-Identifier: MIT

package operator

import (
	"fmt"
	"sync"

	"github.com/katalvlaran/spinsym/basis"
	"github.com/katalvlaran/spinsym/status"
)

// Operator is a sum of Interactions bound to a basis. The basis must be
// built before the operator is applied, and must outlive it until Close.
type Operator struct {
	mu     sync.RWMutex
	basis  *basis.SpinBasis
	terms  []*Interaction
	opts   options
	closed bool
}

// New binds terms to b.
//
// Errors (status.ErrInvalidArgument): nil basis, nil term, or a site index
// ≥ b.NumberSpins().
func New(b *basis.SpinBasis, terms []*Interaction, opts ...Option) (*Operator, error) {
	if b == nil {
		return nil, fmt.Errorf("operator.New: nil basis: %w", status.ErrInvalidArgument)
	}
	for i, t := range terms {
		if t == nil {
			return nil, fmt.Errorf("operator.New: term %d is nil: %w", i, status.ErrInvalidArgument)
		}
		if m := t.maxSite(); m >= b.NumberSpins() {
			return nil, fmt.Errorf("operator.New: term %d uses site %d, basis has %d spins: %w",
				i, m, b.NumberSpins(), status.ErrInvalidArgument)
		}
	}

	return &Operator{
		basis: b,
		terms: append([]*Interaction(nil), terms...),
		opts:  gatherOptions(opts...),
	}, nil
}

// Basis returns the bound basis, or nil after Close.
func (op *Operator) Basis() *basis.SpinBasis {
	op.mu.RLock()
	defer op.mu.RUnlock()

	return op.basis
}

// Terms returns the interactions (shared, immutable).
func (op *Operator) Terms() []*Interaction {
	return append([]*Interaction(nil), op.terms...)
}

// IsHermitian reports whether every term is Hermitian.
func (op *Operator) IsHermitian() bool {
	for _, t := range op.terms {
		if !t.IsHermitian() {
			return false
		}
	}

	return true
}

// IsReal reports whether every term has real matrix entries.
func (op *Operator) IsReal() bool {
	for _, t := range op.terms {
		if !t.IsReal() {
			return false
		}
	}

	return true
}

// Close drops the basis reference. Applying a closed operator fails with
// status.ErrInvalidArgument. Close waits for running applications.
func (op *Operator) Close() error {
	op.mu.Lock()
	defer op.mu.Unlock()
	op.closed = true
	op.basis = nil

	return nil
}

// acquire locks the operator for reading and borrows the basis view.
// The returned release undoes both.
func (op *Operator) acquire(ctxTag string) (*basis.View, func(), error) {
	op.mu.RLock()
	if op.closed {
		op.mu.RUnlock()
		return nil, nil, fmt.Errorf("%s: operator is closed: %w", ctxTag, status.ErrInvalidArgument)
	}
	v, err := op.basis.Acquire()
	if err != nil {
		op.mu.RUnlock()
		return nil, nil, fmt.Errorf("%s: %w", ctxTag, err)
	}

	return v, func() { v.Release(); op.mu.RUnlock() }, nil
}

// rowSum accumulates row i of the operator times x into acc (len x.Cols).
func rowSum[T Scalar](op *Operator, v *basis.View, i int, x *Block[T], acc []complex128) {
	b := v.Basis()
	r := v.State(i)
	ni := v.Norm(i)
	for _, t := range op.terms {
		for _, sites := range t.sites {
			row := t.matrix[r.Gather(sites)]
			for l, m := range row {
				if m == 0 {
					continue
				}
				rep, chi, nj := b.StateInfo(r.Scatter(sites, l))
				if nj == 0 {
					continue
				}
				j, ok := v.Lookup(rep)
				if !ok {
					continue
				}
				coeff := m * chi * complex(nj/ni, 0)
				base := j * x.RowStride
				for c := range acc {
					acc[c] += coeff * widen(x.Data[base+c*x.ColStride])
				}
			}
		}
	}
}
