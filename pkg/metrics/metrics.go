package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "waitlist"

var (
	registry = prometheus.NewRegistry()

	// AccessOutcomes counts protected-content requests by terminal state
	AccessOutcomes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_outcomes_total",
		Help:      "Protected content requests by outcome.",
	}, []string{"outcome"})

	// FacilitatorLatency tracks verify and settle round trips
	FacilitatorLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "facilitator_request_duration_seconds",
		Help:      "Latency of payment facilitator calls.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "result"})

	// HTTPRequests counts served requests by route template
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	// MembershipCache counts membership cache lookups
	MembershipCache = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "membership_cache_lookups_total",
		Help:      "Membership cache lookups by result.",
	}, []string{"result"})
)

func init() {
	registry.MustRegister(
		AccessOutcomes,
		FacilitatorLatency,
		HTTPRequests,
		MembershipCache,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// Handler exposes the registry in the Prometheus text format
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}

func RecordAccess(outcome string) {
	AccessOutcomes.WithLabelValues(outcome).Inc()
}

func ObserveFacilitator(operation, result string, elapsed time.Duration) {
	FacilitatorLatency.WithLabelValues(operation, result).Observe(elapsed.Seconds())
}

func RecordHTTPRequest(method, route, status string) {
	HTTPRequests.WithLabelValues(method, route, status).Inc()
}

func RecordCacheLookup(result string) {
	MembershipCache.WithLabelValues(result).Inc()
}
