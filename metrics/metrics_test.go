package metrics_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/spinsym/metrics"
)

// TestRecorder_Observations checks every collector is wired.
func TestRecorder_Observations(t *testing.T) {
	reg := prometheus.NewRegistry()
	r, err := metrics.NewRecorder(reg)
	require.NoError(t, err)

	r.ObserveBuild(20*time.Millisecond, 6)
	r.ObserveApply(metrics.KindMatMat, time.Millisecond)
	r.ObserveApply(metrics.KindExpectation, time.Millisecond)
	r.IncCancelled("build")
	r.IncCancelled("build")

	assert.Equal(t, 6.0, testutil.ToFloat64(r.BasisStates))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.CancelledTotal.WithLabelValues("build")))
	assert.Equal(t, 1, testutil.CollectAndCount(r.BuildDuration))
	assert.Equal(t, 2, testutil.CollectAndCount(r.ApplyDuration))
}

// TestRecorder_DoubleRegistration fails on the second registration.
func TestRecorder_DoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := metrics.NewRecorder(reg)
	require.NoError(t, err)
	_, err = metrics.NewRecorder(reg)
	assert.Error(t, err)

	_, err = metrics.NewRecorder(nil)
	assert.Error(t, err)
}

// TestRecorder_NilSafe never panics on a nil recorder.
func TestRecorder_NilSafe(t *testing.T) {
	var r *metrics.Recorder
	assert.NotPanics(t, func() {
		r.ObserveBuild(time.Second, 1)
		r.ObserveApply(metrics.KindMatMat, time.Second)
		r.IncCancelled("matmat")
	})
}
