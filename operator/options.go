// SPDX-License-Identifier: MIT

package operator

import (
	"log/slog"
	"runtime"

	"github.com/katalvlaran/spinsym/metrics"
)

// DefaultRowChunk is the number of output rows handled by one task.
const DefaultRowChunk = 256

const (
	panicWorkersInvalid  = "operator: WithWorkers: workers must be ≥ 1"
	panicRowChunkInvalid = "operator: WithRowChunk: rows must be ≥ 1"
	panicLoggerNil       = "operator: WithLogger: logger must not be nil"
)

// Option configures an Operator.
type Option func(*options)

type options struct {
	workers  int
	rowChunk int
	logger   *slog.Logger
	metrics  *metrics.Recorder
}

// WithWorkers bounds the goroutines used per application.
// Default: runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	if n < 1 {
		panic(panicWorkersInvalid)
	}

	return func(o *options) { o.workers = n }
}

// WithRowChunk sets how many rows one task processes.
func WithRowChunk(n int) Option {
	if n < 1 {
		panic(panicRowChunkInvalid)
	}

	return func(o *options) { o.rowChunk = n }
}

// WithLogger sets the logger used for layout warnings.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic(panicLoggerNil)
	}

	return func(o *options) { o.logger = l }
}

// WithMetrics records application durations on r (nil disables).
func WithMetrics(r *metrics.Recorder) Option {
	return func(o *options) { o.metrics = r }
}

func gatherOptions(opts ...Option) options {
	o := options{
		workers:  runtime.GOMAXPROCS(0),
		rowChunk: DefaultRowChunk,
		logger:   slog.Default(),
	}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
