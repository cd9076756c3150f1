// File: metrics/prometheus_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package metrics

import (
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestPrometheusCounters(t *testing.T) {
	p := NewPrometheus()

	p.ObserveOperations(10, 2)
	p.ObserveBatches(5, 1)
	p.ObserveFlush(3, 12, 0.5)
	p.ObserveAlloc(4096)
	p.ObserveTruncations(1)

	require.Equal(t, 10.0, testutil.ToFloat64(p.opsTotal))
	require.Equal(t, 2.0, testutil.ToFloat64(p.opErrorsTotal))
	require.Equal(t, 4.0, testutil.ToFloat64(p.batchesTotal.With(prometheus.Labels{"result": "success"})))
	require.Equal(t, 1.0, testutil.ToFloat64(p.batchesTotal.With(prometheus.Labels{"result": "failure"})))
	require.Equal(t, 3.0, testutil.ToFloat64(p.flushesTotal))
	require.Equal(t, 12.0, testutil.ToFloat64(p.flushedOps))
	require.Equal(t, 4096.0, testutil.ToFloat64(p.allocBytes))
	require.Equal(t, 1.0, testutil.ToFloat64(p.truncations))
}

func TestPrometheusRegistriesIndependent(t *testing.T) {
	// Two backends must not collide on metric names.
	a := NewPrometheus()
	b := NewPrometheus()

	a.ObserveOperations(1, 0)
	require.Equal(t, 1.0, testutil.ToFloat64(a.opsTotal))
	require.Zero(t, testutil.ToFloat64(b.opsTotal))
}

func TestPrometheusHandlerServesMetrics(t *testing.T) {
	p := NewPrometheus()
	p.ObserveOperations(7, 0)

	rr := httptest.NewRecorder()
	p.Handler().ServeHTTP(rr, httptest.NewRequest("GET", "/metrics", nil))

	require.Equal(t, 200, rr.Code)
	require.Contains(t, rr.Body.String(), "hioload_mem_operations_total 7")
}
