// SPDX-License-Identifier: MIT

package operator

import (
	"context"
	"fmt"
	"math/cmplx"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/spinsym/metrics"
	"github.com/katalvlaran/spinsym/status"
)

// Apply computes out = op · x for every column of x.
//
// Implementation:
//   - Stage 1: validate shapes; borrow the basis view for the whole call.
//   - Stage 2: bring x (and out, if needed) into column-major layout.
//   - Stage 3: row chunks run on a bounded errgroup; each task owns its
//     rows of out, so no synchronization is needed on the output.
//
// Errors:
//   - status.ErrInvalidArgument for a closed operator, nil blocks or out
//     sharing storage with x;
//   - status.ErrBasisNotBuilt when the basis is not built;
//   - status.ErrDimensionMismatch when x.Rows ≠ number of states or the
//     shapes of x and out differ;
//   - status.ErrCancelled when ctx is done (out is then unspecified).
func Apply[T Scalar](ctx context.Context, op *Operator, x, out *Block[T]) error {
	const tag = "operator.Apply"
	if ctx == nil {
		ctx = context.Background()
	}
	if err := x.validate(tag + ": x"); err != nil {
		return err
	}
	if err := out.validate(tag + ": out"); err != nil {
		return err
	}
	if out.Rows != x.Rows || out.Cols != x.Cols {
		return fmt.Errorf("%s: out is %dx%d, x is %dx%d: %w",
			tag, out.Rows, out.Cols, x.Rows, x.Cols, status.ErrDimensionMismatch)
	}
	if overlaps(x, out) {
		return fmt.Errorf("%s: out overlaps x: %w", tag, status.ErrInvalidArgument)
	}
	v, release, err := op.acquire(tag)
	if err != nil {
		return err
	}
	defer release()
	if x.Rows != v.Len() {
		return fmt.Errorf("%s: x has %d rows, basis has %d states: %w",
			tag, x.Rows, v.Len(), status.ErrDimensionMismatch)
	}

	start := time.Now()
	xin := x.columnMajor(op.opts.logger, "x")
	dst := out.columnMajor(op.opts.logger, "out")
	err = forEachChunk(ctx, op, x.Rows, func(lo, hi int) {
		acc := make([]complex128, x.Cols)
		for i := lo; i < hi; i++ {
			clear(acc)
			rowSum(op, v, i, xin, acc)
			for c, a := range acc {
				dst.Set(i, c, narrow[T](a))
			}
		}
	})
	if err != nil {
		op.opts.metrics.IncCancelled(metrics.KindMatMat)
		return status.WrapCancelled(tag, err)
	}
	if dst != out {
		dst.copyInto(out)
	}
	op.opts.metrics.ObserveApply(metrics.KindMatMat, time.Since(start))

	return nil
}

// Expectation returns ⟨x_c|op|x_c⟩ for every column c of x. The vectors are
// used as given; normalize them first for normalized expectation values.
//
// Errors follow Apply.
func Expectation[T Scalar](ctx context.Context, op *Operator, x *Block[T]) ([]complex128, error) {
	const tag = "operator.Expectation"
	if ctx == nil {
		ctx = context.Background()
	}
	if err := x.validate(tag + ": x"); err != nil {
		return nil, err
	}
	v, release, err := op.acquire(tag)
	if err != nil {
		return nil, err
	}
	defer release()
	if x.Rows != v.Len() {
		return nil, fmt.Errorf("%s: x has %d rows, basis has %d states: %w",
			tag, x.Rows, v.Len(), status.ErrDimensionMismatch)
	}

	start := time.Now()
	xin := x.columnMajor(op.opts.logger, "x")
	chunks := (x.Rows + op.opts.rowChunk - 1) / op.opts.rowChunk
	partial := make([][]complex128, chunks)
	err = forEachChunk(ctx, op, x.Rows, func(lo, hi int) {
		sum := make([]complex128, x.Cols)
		acc := make([]complex128, x.Cols)
		for i := lo; i < hi; i++ {
			clear(acc)
			rowSum(op, v, i, xin, acc)
			for c, a := range acc {
				sum[c] += cmplx.Conj(widen(xin.At(i, c))) * a
			}
		}
		partial[lo/op.opts.rowChunk] = sum
	})
	if err != nil {
		op.opts.metrics.IncCancelled(metrics.KindExpectation)
		return nil, status.WrapCancelled(tag, err)
	}

	out := make([]complex128, x.Cols)
	for _, p := range partial {
		for c, s := range p {
			out[c] += s
		}
	}
	op.opts.metrics.ObserveApply(metrics.KindExpectation, time.Since(start))

	return out, nil
}

// forEachChunk runs fn over [0, rows) in rowChunk pieces on a bounded group.
func forEachChunk(ctx context.Context, op *Operator, rows int, fn func(lo, hi int)) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(op.opts.workers)
	for lo := 0; lo < rows; lo += op.opts.rowChunk {
		if gctx.Err() != nil {
			break
		}
		lo := lo
		hi := min(lo+op.opts.rowChunk, rows)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fn(lo, hi)

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	return ctx.Err()
}
