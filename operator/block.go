// SPDX-License-Identifier: MIT

package operator

import (
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/katalvlaran/spinsym/status"
)

// Scalar enumerates the supported element types.
type Scalar interface {
	float32 | float64 | complex64 | complex128
}

// Block is a dense rows × cols matrix stored in Data with explicit strides:
// element (i, j) lives at Data[i*RowStride + j*ColStride]. The preferred
// layout is column-major (RowStride 1, ColStride ≥ Rows).
type Block[T Scalar] struct {
	Data      []T
	Rows      int
	Cols      int
	RowStride int
	ColStride int
}

// NewBlock allocates a zeroed column-major block.
func NewBlock[T Scalar](rows, cols int) *Block[T] {
	return ColumnMajor(make([]T, rows*cols), rows, cols, rows)
}

// ColumnMajor wraps data as a column-major block with leading dimension ld.
func ColumnMajor[T Scalar](data []T, rows, cols, ld int) *Block[T] {
	return &Block[T]{Data: data, Rows: rows, Cols: cols, RowStride: 1, ColStride: ld}
}

// At returns element (i, j).
func (b *Block[T]) At(i, j int) T { return b.Data[i*b.RowStride+j*b.ColStride] }

// Set stores v at (i, j).
func (b *Block[T]) Set(i, j int, v T) { b.Data[i*b.RowStride+j*b.ColStride] = v }

// IsColumnMajor reports whether columns are contiguous and disjoint.
func (b *Block[T]) IsColumnMajor() bool {
	return b.RowStride == 1 && (b.ColStride >= b.Rows || b.Cols <= 1)
}

// validate checks that every element is addressable.
func (b *Block[T]) validate(ctxTag string) error {
	if b == nil {
		return fmt.Errorf("%s: nil block: %w", ctxTag, status.ErrInvalidArgument)
	}
	if b.Rows < 0 || b.Cols < 0 || b.RowStride < 1 || b.ColStride < 1 {
		return fmt.Errorf("%s: shape %dx%d with strides (%d,%d): %w",
			ctxTag, b.Rows, b.Cols, b.RowStride, b.ColStride, status.ErrDimensionMismatch)
	}
	if b.Rows == 0 || b.Cols == 0 {
		return nil
	}
	if last := (b.Rows-1)*b.RowStride + (b.Cols-1)*b.ColStride; last >= len(b.Data) {
		return fmt.Errorf("%s: element (%d,%d) at %d beyond %d elements: %w",
			ctxTag, b.Rows-1, b.Cols-1, last, len(b.Data), status.ErrDimensionMismatch)
	}

	return nil
}

// columnMajor returns b itself when already column-major, else a contiguous
// copy. The copy is reported on logger.
func (b *Block[T]) columnMajor(logger *slog.Logger, what string) *Block[T] {
	if b.IsColumnMajor() {
		return b
	}
	logger.Warn("operator: copying block into column-major layout",
		"block", what, "rows", b.Rows, "cols", b.Cols,
		"row_stride", b.RowStride, "col_stride", b.ColStride)
	c := NewBlock[T](b.Rows, b.Cols)
	for j := 0; j < b.Cols; j++ {
		for i := 0; i < b.Rows; i++ {
			c.Set(i, j, b.At(i, j))
		}
	}

	return c
}

// copyInto writes every element of b into dst (same shape).
func (b *Block[T]) copyInto(dst *Block[T]) {
	for j := 0; j < b.Cols; j++ {
		for i := 0; i < b.Rows; i++ {
			dst.Set(i, j, b.At(i, j))
		}
	}
}

// span returns the address range [lo, hi) covered by the addressable
// elements of a validated block; empty blocks cover nothing.
func (b *Block[T]) span() (lo, hi uintptr) {
	if b.Rows == 0 || b.Cols == 0 || len(b.Data) == 0 {
		return 0, 0
	}
	var zero T
	last := (b.Rows-1)*b.RowStride + (b.Cols-1)*b.ColStride
	lo = uintptr(unsafe.Pointer(&b.Data[0]))

	return lo, lo + uintptr(last+1)*unsafe.Sizeof(zero)
}

// overlaps reports whether the address ranges of a and b intersect.
// Interleaved strided blocks that never touch the same element still count.
func overlaps[T Scalar](a, b *Block[T]) bool {
	aLo, aHi := a.span()
	bLo, bHi := b.span()

	return aLo < aHi && bLo < bHi && aLo < bHi && bLo < aHi
}

func widen[T Scalar](v T) complex128 {
	switch v := any(v).(type) {
	case float32:
		return complex(float64(v), 0)
	case float64:
		return complex(v, 0)
	case complex64:
		return complex128(v)
	case complex128:
		return v
	}

	return 0
}

func narrow[T Scalar](c complex128) T {
	var z T
	switch p := any(&z).(type) {
	case *float32:
		*p = float32(real(c))
	case *float64:
		*p = real(c)
	case *complex64:
		*p = complex64(c)
	case *complex128:
		*p = c
	}

	return z
}
