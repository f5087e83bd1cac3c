package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	r := NewRecorder()
	r.ObserveSolve("intensity", 1000, 3*time.Millisecond)
	r.ObserveSolve("intensity", 500, time.Millisecond)
	r.ObserveSolve("voltage", 1000, 2*time.Millisecond)
	r.ObserveSimulation(nil)
	r.ObserveSimulation(errors.New("boom"))

	assert.Equal(t, 1500.0, testutil.ToFloat64(r.samples.WithLabelValues("intensity")))
	assert.Equal(t, 1000.0, testutil.ToFloat64(r.samples.WithLabelValues("voltage")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.simulations.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.simulations.WithLabelValues(OutcomeFailure)))
	assert.Equal(t, 2, testutil.CollectAndCount(r.duration))

	path := filepath.Join(t.TempDir(), "reactor.prom")
	require.NoError(t, r.WriteTextfile(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "reactor_samples_solved_total")
	assert.Contains(t, string(data), `reactor_simulations_total{outcome="failure"} 1`)
	assert.Contains(t, string(data), "reactor_solve_duration_seconds_bucket")
}

func TestNilRecorder(t *testing.T) {
	var r *Recorder
	r.ObserveSolve("intensity", 1, time.Millisecond)
	r.ObserveSimulation(nil)
}
