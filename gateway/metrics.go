package gateway

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/TykTechnologies/tyk-rpc-router/internal/classifier"
	"github.com/TykTechnologies/tyk-rpc-router/internal/dispatch"
)

const metricsNamespace = "tyk_rpc_router"

// Metrics holds the Prometheus collectors of the router.
type Metrics struct {
	incomingRequests *prometheus.CounterVec
	failedRequests   *prometheus.CounterVec
	rejectedRequests *prometheus.CounterVec
	responseTime     *prometheus.HistogramVec

	registry *prometheus.Registry
}

// NewMetrics creates and registers the router collectors on a new registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
	}

	m.incomingRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "incoming_requests_total",
		Help:      "Requests routed, by destination and routing reason",
	}, []string{"destination", "reason"})

	m.failedRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "failed_requests_total",
		Help:      "Routed requests with no backend answer or a 5xx answer",
	}, []string{"destination", "response_flag"})

	m.rejectedRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "rejected_requests_total",
		Help:      "Requests answered by the router itself, by HTTP status",
	}, []string{"status"})

	m.responseTime = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Name:      "response_time_seconds",
		Help:      "Time from request arrival to the destination answer",
		Buckets:   prometheus.DefBuckets,
	}, []string{"destination", "mode"})

	registry.MustRegister(
		m.incomingRequests,
		m.failedRequests,
		m.rejectedRequests,
		m.responseTime,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	for _, d := range classifier.Destinations() {
		m.failedRequests.WithLabelValues(d.String(), "")
	}

	return m
}

// ObserveRouted records a dispatched request.
func (m *Metrics) ObserveRouted(decision classifier.Decision, out dispatch.Outcome, elapsed time.Duration) {
	dest := decision.Destination.String()

	m.incomingRequests.WithLabelValues(dest, string(decision.Reason)).Inc()
	m.responseTime.WithLabelValues(dest, string(out.Mode)).Observe(elapsed.Seconds())

	if out.Failed() {
		flag := ""
		if out.Classification != nil {
			flag = out.Classification.Flag.String()
		}
		m.failedRequests.WithLabelValues(dest, flag).Inc()
	}
}

// ObserveRejected records a request the router answered itself.
func (m *Metrics) ObserveRejected(status int) {
	m.rejectedRequests.WithLabelValues(http.StatusText(status)).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
