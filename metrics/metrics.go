// Package metrics instruments basis construction and operator application
// with Prometheus collectors.
//
// A Recorder is opt-in: pass one to basis.WithMetrics / operator.WithMetrics.
// All methods are safe on a nil *Recorder, so instrumented code never needs
// to branch on whether metrics are enabled.
//
// Collectors are registered on the caller's prometheus.Registerer rather
// than the global default registry, which keeps tests isolated.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "spinsym"

	// KindMatMat labels operator applications.
	KindMatMat = "matmat"
	// KindExpectation labels expectation-value evaluations.
	KindExpectation = "expectation"
)

// Recorder holds the module's collectors.
type Recorder struct {
	// BuildDuration measures SpinBasis.Build wall time.
	BuildDuration prometheus.Histogram

	// BasisStates is the number of representatives of the last built basis.
	BasisStates prometheus.Gauge

	// ApplyDuration measures operator work. Labels: kind (matmat, expectation).
	ApplyDuration *prometheus.HistogramVec

	// CancelledTotal counts operations aborted by their context.
	// Labels: op (build, matmat, expectation).
	CancelledTotal *prometheus.CounterVec
}

// NewRecorder creates the collectors and registers them on reg.
// Registering twice on one registry fails with the registry's error.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	if reg == nil {
		return nil, errors.New("metrics: nil registerer")
	}
	r := &Recorder{
		BuildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "basis",
			Name:      "build_duration_seconds",
			Help:      "Time spent enumerating and symmetrizing basis states",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
		BasisStates: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "basis",
			Name:      "states",
			Help:      "Number of representatives in the most recently built basis",
		}),
		ApplyDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "operator",
			Name:      "apply_duration_seconds",
			Help:      "Time spent applying an operator to a block of vectors",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"kind"}),
		CancelledTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cancelled_total",
			Help:      "Operations aborted by context cancellation",
		}, []string{"op"}),
	}
	for _, c := range []prometheus.Collector{r.BuildDuration, r.BasisStates, r.ApplyDuration, r.CancelledTotal} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// ObserveBuild records one finished build.
func (r *Recorder) ObserveBuild(d time.Duration, states int) {
	if r == nil {
		return
	}
	r.BuildDuration.Observe(d.Seconds())
	r.BasisStates.Set(float64(states))
}

// ObserveApply records one operator application of the given kind.
func (r *Recorder) ObserveApply(kind string, d time.Duration) {
	if r == nil {
		return
	}
	r.ApplyDuration.WithLabelValues(kind).Observe(d.Seconds())
}

// IncCancelled counts a cancelled operation.
func (r *Recorder) IncCancelled(op string) {
	if r == nil {
		return
	}
	r.CancelledTotal.WithLabelValues(op).Inc()
}
