package metrics

import "github.com/prometheus/client_golang/prometheus"

// ChatMetrics exposes counters/histograms for the chat HTTP surface.
type ChatMetrics struct {
	requestsTotal  *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

func NewChatMetrics(reg prometheus.Registerer) *ChatMetrics {
	m := &ChatMetrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "recipechat",
			Subsystem: "http",
			Name:      "chat_requests_total",
			Help:      "Total chat requests by outcome",
		}, []string{"status"}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "recipechat",
			Subsystem: "http",
			Name:      "chat_request_latency_seconds",
			Help:      "Latency of chat request handling",
			Buckets:   prometheus.DefBuckets,
		}, []string{"status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.requestsTotal, m.requestLatency)
	return m
}

func (m *ChatMetrics) ObserveRequest(status string, seconds float64) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(status).Inc()
	m.requestLatency.WithLabelValues(status).Observe(seconds)
}
