// SPDX-License-Identifier: MIT

// Package basis: functional configuration for basis construction.
//   - Option / options with documented defaults (single source of truth).
//   - WithX constructors panic on nonsensical values (programmer error).

package basis

import (
	"log/slog"
	"runtime"

	"github.com/katalvlaran/spinsym/metrics"
)

// Defaults.
const (
	// DefaultChunkSize is the number of candidates handled by one task.
	DefaultChunkSize = 1 << 14

	// DefaultMaxCandidates caps the enumeration (≈ 2^40 patterns).
	DefaultMaxCandidates uint64 = 1 << 40

	// NormTolerance is the threshold on Re Σ_stab χ below which a
	// representative is treated as null. Non-null sums are ≥ 1.
	NormTolerance = 1e-5
)

const (
	panicWorkersInvalid   = "basis: WithWorkers: workers must be ≥ 1"
	panicChunkInvalid     = "basis: WithChunkSize: chunk size must be ≥ 1"
	panicMaxCandInvalid   = "basis: WithMaxCandidates: limit must be > 0"
	panicLoggerNilInvalid = "basis: WithLogger: logger must not be nil"
)

// Option mutates build options.
type Option func(*options)

type options struct {
	workers       int
	chunkSize     int
	maxCandidates uint64
	logger        *slog.Logger
	metrics       *metrics.Recorder
}

// WithWorkers bounds the number of goroutines used by Build.
// Default: runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	if n < 1 {
		panic(panicWorkersInvalid)
	}

	return func(o *options) { o.workers = n }
}

// WithChunkSize sets how many candidates one build task scans.
func WithChunkSize(n int) Option {
	if n < 1 {
		panic(panicChunkInvalid)
	}

	return func(o *options) { o.chunkSize = n }
}

// WithMaxCandidates caps the number of candidates Build may enumerate;
// larger enumerations fail with status.ErrOutOfMemory up front.
func WithMaxCandidates(n uint64) Option {
	if n == 0 {
		panic(panicMaxCandInvalid)
	}

	return func(o *options) { o.maxCandidates = n }
}

// WithLogger routes build diagnostics to l. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic(panicLoggerNilInvalid)
	}

	return func(o *options) { o.logger = l }
}

// WithMetrics records build durations and sizes on r (nil disables).
func WithMetrics(r *metrics.Recorder) Option {
	return func(o *options) { o.metrics = r }
}

func gatherOptions(opts ...Option) options {
	o := options{
		workers:       runtime.GOMAXPROCS(0),
		chunkSize:     DefaultChunkSize,
		maxCandidates: DefaultMaxCandidates,
		logger:        slog.Default(),
	}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
