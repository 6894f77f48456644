package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// GatewayMetrics records the gateway's business-level counters.
type GatewayMetrics struct {
	ordersSubmitted  *prometheus.CounterVec
	catalogRefreshes *prometheus.CounterVec
	snapshotFailures prometheus.Counter
}

// NewGatewayMetrics registers the gateway metrics on the provided registerer.
func NewGatewayMetrics(reg prometheus.Registerer) *GatewayMetrics {
	if reg == nil {
		return &GatewayMetrics{}
	}
	ordersSubmitted := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_submitted_total",
		Help: "Order submissions by outcome.",
	}, []string{"outcome"})
	catalogRefreshes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_refreshes_total",
		Help: "Catalog load attempts by outcome.",
	}, []string{"outcome"})
	snapshotFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "session_snapshot_failures_total",
		Help: "Session snapshots discarded because they failed to parse.",
	})
	reg.MustRegister(ordersSubmitted, catalogRefreshes, snapshotFailures)
	return &GatewayMetrics{
		ordersSubmitted:  ordersSubmitted,
		catalogRefreshes: catalogRefreshes,
		snapshotFailures: snapshotFailures,
	}
}

// ObserveOrder counts one order submission with the given outcome.
func (g *GatewayMetrics) ObserveOrder(outcome string) {
	if g == nil || g.ordersSubmitted == nil {
		return
	}
	g.ordersSubmitted.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// ObserveCatalogRefresh counts one catalog load attempt.
func (g *GatewayMetrics) ObserveCatalogRefresh(outcome string) {
	if g == nil || g.catalogRefreshes == nil {
		return
	}
	g.catalogRefreshes.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// IncSnapshotFailure counts one discarded session snapshot.
func (g *GatewayMetrics) IncSnapshotFailure() {
	if g == nil || g.snapshotFailures == nil {
		return
	}
	g.snapshotFailures.Inc()
}

func normalizeLabel(outcome string) string {
	if outcome == "" {
		return "unknown"
	}
	return outcome
}
