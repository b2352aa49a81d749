// SPDX-License-Identifier: MIT

package basis

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/spinsym/bits"
	"github.com/katalvlaran/spinsym/status"
)

// chunk is the output of one enumeration task.
type chunk struct {
	states *bits.Table
	norms  []float64
}

// Build enumerates representatives and their norms.
//
// Implementation:
//   - Stage 1: count candidates; refuse enumerations above the configured cap.
//   - Stage 2: split [0, count) into chunks; a bounded errgroup scans them,
//     each task unranking its first candidate and stepping from there.
//   - Stage 3: concatenate chunk outputs in order (ascending by construction),
//     then build the prefix index and publish atomically.
//
// Build is idempotent: rebuilding yields identical tables. On failure the
// previous state (built or not) is left untouched.
//
// Errors:
//   - status.ErrOutOfMemory when the enumeration is too large;
//   - status.ErrCancelled when ctx is done;
//   - status.ErrBasisIsEmpty when no representative survives.
//
// Complexity: O(C·|G|·n / workers) for C candidates.
func (b *SpinBasis) Build(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	start := time.Now()
	total, ok := candidateCount(b.numberSpins, b.hammingWeight)
	if !ok || total > b.opts.maxCandidates {
		return fmt.Errorf("basis.Build: %d spins (hamming weight %d) exceed %d candidates: %w",
			b.numberSpins, b.hammingWeight, b.opts.maxCandidates, status.ErrOutOfMemory)
	}

	size := uint64(b.opts.chunkSize)
	chunks := make([]chunk, (total+size-1)/size)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.opts.workers)
	for c := range chunks {
		if gctx.Err() != nil {
			break
		}
		c := c
		lo := uint64(c) * size
		hi := min(lo+size, total)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			chunks[c] = b.scan(lo, hi)

			return nil
		})
	}
	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		b.opts.metrics.IncCancelled("build")
		return status.WrapCancelled("basis.Build", err)
	}

	count := 0
	for _, ch := range chunks {
		count += ch.states.Len()
	}
	if count == 0 {
		return fmt.Errorf("basis.Build: %d spins, hamming weight %d, %d group elements: %w",
			b.numberSpins, b.hammingWeight, b.group.Size(), status.ErrBasisIsEmpty)
	}
	table := bits.NewTable(b.numberSpins, count)
	norms := make([]float64, 0, count)
	for _, ch := range chunks {
		table.AppendTable(ch.states)
		norms = append(norms, ch.norms...)
	}

	b.publish(table, norms)
	elapsed := time.Since(start)
	b.opts.metrics.ObserveBuild(elapsed, count)
	b.opts.logger.Debug("basis built",
		"spins", b.numberSpins,
		"hamming_weight", b.hammingWeight,
		"group_size", b.group.Size(),
		"candidates", total,
		"states", count,
		"elapsed", elapsed)

	return nil
}

// publish installs tables; the write lock must be held.
func (b *SpinBasis) publish(table *bits.Table, norms []float64) {
	b.table = table
	b.norms = norms
	b.index = newPrefixIndex(b.numberSpins, table)
	b.built = true
}

// scan filters candidates of rank [lo, hi).
func (b *SpinBasis) scan(lo, hi uint64) chunk {
	out := chunk{states: bits.NewTable(b.numberSpins, 0)}
	x := unrank(lo, b.numberSpins, b.hammingWeight)
	for r := lo; r < hi; r++ {
		if ok, n := b.IsRepresentative(x); ok {
			out.states.Append(x)
			out.norms = append(out.norms, n)
		}
		if r+1 < hi {
			x = nextCandidate(x, b.numberSpins, b.hammingWeight)
		}
	}

	return out
}
