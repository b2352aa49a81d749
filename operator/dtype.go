// SPDX-License-Identifier: MIT

package operator

import (
	"context"
	"fmt"

	"github.com/katalvlaran/spinsym/status"
)

// DType names an element type for the dynamically typed entry points.
type DType int

// Supported element types. The zero value is invalid.
const (
	Float32 DType = iota + 1
	Float64
	Complex64
	Complex128
)

// String returns the Go name of the element type.
func (d DType) String() string {
	switch d {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Complex64:
		return "complex64"
	case Complex128:
		return "complex128"
	}

	return fmt.Sprintf("DType(%d)", int(d))
}

// MatMat is Apply for callers holding untyped column-major buffers: x and out
// must be []float32, []float64, []complex64 or []complex128 matching dtype,
// with leading dimensions xStride and outStride.
//
// Errors: status.ErrUnsupportedDataType for an unknown dtype;
// status.ErrDimensionMismatch when a buffer's type does not match dtype;
// otherwise as Apply.
func (op *Operator) MatMat(ctx context.Context, dtype DType, rows, cols int,
	x any, xStride int, out any, outStride int) error {
	switch dtype {
	case Float32:
		return matMatAs[float32](ctx, op, dtype, rows, cols, x, xStride, out, outStride)
	case Float64:
		return matMatAs[float64](ctx, op, dtype, rows, cols, x, xStride, out, outStride)
	case Complex64:
		return matMatAs[complex64](ctx, op, dtype, rows, cols, x, xStride, out, outStride)
	case Complex128:
		return matMatAs[complex128](ctx, op, dtype, rows, cols, x, xStride, out, outStride)
	}

	return fmt.Errorf("operator.MatMat: %v: %w", dtype, status.ErrUnsupportedDataType)
}

// ExpectationOf is Expectation for untyped column-major buffers.
func (op *Operator) ExpectationOf(ctx context.Context, dtype DType, rows, cols int,
	x any, xStride int) ([]complex128, error) {
	switch dtype {
	case Float32:
		return expectationAs[float32](ctx, op, dtype, rows, cols, x, xStride)
	case Float64:
		return expectationAs[float64](ctx, op, dtype, rows, cols, x, xStride)
	case Complex64:
		return expectationAs[complex64](ctx, op, dtype, rows, cols, x, xStride)
	case Complex128:
		return expectationAs[complex128](ctx, op, dtype, rows, cols, x, xStride)
	}

	return nil, fmt.Errorf("operator.ExpectationOf: %v: %w", dtype, status.ErrUnsupportedDataType)
}

func matMatAs[T Scalar](ctx context.Context, op *Operator, dtype DType, rows, cols int,
	x any, xStride int, out any, outStride int) error {
	xs, ok := x.([]T)
	if !ok {
		return fmt.Errorf("operator.MatMat: x is %T, want []%v: %w", x, dtype, status.ErrDimensionMismatch)
	}
	outs, ok := out.([]T)
	if !ok {
		return fmt.Errorf("operator.MatMat: out is %T, want []%v: %w", out, dtype, status.ErrDimensionMismatch)
	}
	if err := checkLeading("operator.MatMat: x", rows, cols, xStride); err != nil {
		return err
	}
	if err := checkLeading("operator.MatMat: out", rows, cols, outStride); err != nil {
		return err
	}

	return Apply(ctx, op, ColumnMajor(xs, rows, cols, xStride), ColumnMajor(outs, rows, cols, outStride))
}

func expectationAs[T Scalar](ctx context.Context, op *Operator, dtype DType, rows, cols int,
	x any, xStride int) ([]complex128, error) {
	xs, ok := x.([]T)
	if !ok {
		return nil, fmt.Errorf("operator.ExpectationOf: x is %T, want []%v: %w", x, dtype, status.ErrDimensionMismatch)
	}
	if err := checkLeading("operator.ExpectationOf: x", rows, cols, xStride); err != nil {
		return nil, err
	}

	return Expectation(ctx, op, ColumnMajor(xs, rows, cols, xStride))
}

// checkLeading rejects leading dimensions that would overlap columns.
func checkLeading(ctxTag string, rows, cols, ld int) error {
	if cols > 1 && ld < rows {
		return fmt.Errorf("%s: leading dimension %d < %d rows: %w", ctxTag, ld, rows, status.ErrDimensionMismatch)
	}

	return nil
}
