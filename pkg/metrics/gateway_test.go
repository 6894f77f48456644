package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestGatewayMetricsCounts(t *testing.T) {
	t.Parallel()

	registry := prometheus.NewRegistry()
	gm := NewGatewayMetrics(registry)

	gm.ObserveOrder("success")
	gm.ObserveOrder("success")
	gm.ObserveOrder("failure")
	gm.ObserveCatalogRefresh("")
	gm.IncSnapshotFailure()

	assert.Equal(t, float64(2), testutil.ToFloat64(gm.ordersSubmitted.WithLabelValues("success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(gm.ordersSubmitted.WithLabelValues("failure")))
	assert.Equal(t, float64(1), testutil.ToFloat64(gm.catalogRefreshes.WithLabelValues("unknown")))
	assert.Equal(t, float64(1), testutil.ToFloat64(gm.snapshotFailures))
}

func TestGatewayMetricsNilSafe(t *testing.T) {
	t.Parallel()

	var gm *GatewayMetrics
	gm.ObserveOrder("success")
	gm.ObserveCatalogRefresh("failure")
	gm.IncSnapshotFailure()

	unregistered := NewGatewayMetrics(nil)
	unregistered.ObserveOrder("success")
	unregistered.IncSnapshotFailure()
}
