package proxy

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	metricsNamespace = "catalogproxy"

	outcomeSuccess          = "success"
	outcomeUpstreamError    = "upstream_error"
	outcomeMissingParameter = "missing_parameter"
)

// Metrics records upstream call outcomes. A nil *Metrics records nothing.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{ //nolint:exhaustruct
			Namespace: metricsNamespace,
			Name:      "upstream_requests_total",
			Help:      "Proxy translations by proxy and outcome.",
		}, []string{"proxy", "outcome"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{ //nolint:exhaustruct
			Namespace: metricsNamespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Latency of outbound upstream calls.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"proxy"}),
	}
}

func (m *Metrics) observe(proxyName, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}

	m.requests.WithLabelValues(proxyName, outcome).Inc()

	if elapsed > 0 {
		m.duration.WithLabelValues(proxyName).Observe(elapsed.Seconds())
	}
}
