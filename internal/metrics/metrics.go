package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service counters on a private registry so tests can
// construct independent instances.
type Metrics struct {
	SignalsReceived prometheus.Counter
	TradesRecorded  *prometheus.CounterVec
	OrderLatency    prometheus.Histogram

	registry *prometheus.Registry
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		SignalsReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tradebridge_signals_received_total",
			Help: "Webhook signals accepted for processing.",
		}),
		TradesRecorded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tradebridge_trades_recorded_total",
			Help: "Trade records appended to the ledger, by status.",
		}, []string{"status"}),
		OrderLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "tradebridge_order_latency_seconds",
			Help:    "Wall time of venue order placement calls.",
			Buckets: prometheus.DefBuckets,
		}),
		registry: reg,
	}
	reg.MustRegister(m.SignalsReceived, m.TradesRecorded, m.OrderLatency)
	reg.MustRegister(collectors.NewGoCollector())
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
