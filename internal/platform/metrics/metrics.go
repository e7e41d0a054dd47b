package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the storefront. Every method is
// safe on a nil receiver so components can run without metrics in tests.
type Metrics struct {
	GateDecisions      *prometheus.CounterVec
	UpstreamLatency    *prometheus.HistogramVec
	UpstreamRetries    *prometheus.CounterVec
	CircuitOpen        prometheus.Gauge
	CartCountRefreshes *prometheus.CounterVec
	SessionsCleared    *prometheus.CounterVec
	AuditDropped       prometheus.Counter
	HTTPLatency        *prometheus.HistogramVec
}

// New creates and registers all metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		GateDecisions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_gate_decisions_total",
			Help: "Navigation gate decisions by route class and outcome",
		}, []string{"class", "decision"}),
		UpstreamLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "storefront_upstream_request_duration_seconds",
			Help:    "Latency of upstream e-commerce API calls",
			Buckets: []float64{0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"operation", "outcome"}),
		UpstreamRetries: f.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_upstream_retries_total",
			Help: "Upstream calls retried after a transient failure",
		}, []string{"operation"}),
		CircuitOpen: f.NewGauge(prometheus.GaugeOpts{
			Name: "storefront_upstream_circuit_open",
			Help: "1 while the upstream circuit breaker is open",
		}),
		CartCountRefreshes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_cart_count_refreshes_total",
			Help: "Cart item count refetches by result (applied, dropped, error)",
		}, []string{"result"}),
		SessionsCleared: f.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_sessions_cleared_total",
			Help: "Sessions cleared by reason (sign_out, unauthorized)",
		}, []string{"reason"}),
		AuditDropped: f.NewCounter(prometheus.CounterOpts{
			Name: "storefront_audit_events_dropped_total",
			Help: "Audit events dropped because the buffer was full",
		}),
		HTTPLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "storefront_http_request_duration_seconds",
			Help:    "Latency of gateway HTTP requests",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

func (m *Metrics) ObserveGateDecision(class, decision string) {
	if m == nil {
		return
	}
	m.GateDecisions.WithLabelValues(class, decision).Inc()
}

func (m *Metrics) ObserveUpstream(operation, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.UpstreamLatency.WithLabelValues(operation, outcome).Observe(d.Seconds())
}

func (m *Metrics) IncUpstreamRetry(operation string) {
	if m == nil {
		return
	}
	m.UpstreamRetries.WithLabelValues(operation).Inc()
}

func (m *Metrics) SetCircuitOpen(open bool) {
	if m == nil {
		return
	}
	if open {
		m.CircuitOpen.Set(1)
		return
	}
	m.CircuitOpen.Set(0)
}

func (m *Metrics) IncCartRefresh(result string) {
	if m == nil {
		return
	}
	m.CartCountRefreshes.WithLabelValues(result).Inc()
}

func (m *Metrics) IncSessionCleared(reason string) {
	if m == nil {
		return
	}
	m.SessionsCleared.WithLabelValues(reason).Inc()
}

func (m *Metrics) IncAuditDropped() {
	if m == nil {
		return
	}
	m.AuditDropped.Inc()
}

func (m *Metrics) ObserveHTTP(method, route, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPLatency.WithLabelValues(method, route, status).Observe(d.Seconds())
}
