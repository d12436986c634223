package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "kanboard"

// Collector holds the board's Prometheus metrics on a private registry
type Collector struct {
	registry *prometheus.Registry

	Drops          *prometheus.CounterVec
	CardsAdded     prometheus.Counter
	CardsRemoved   prometheus.Counter
	AddsRejected   prometheus.Counter
	SnapshotWrites *prometheus.CounterVec
	SnapshotWrite  prometheus.Histogram
	Cards          prometheus.Gauge

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
}

// NewCollector creates and registers all metrics
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		Drops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "drops_total",
			Help:      "Drop intents applied, by outcome",
		}, []string{"outcome"}),
		CardsAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cards_added_total",
			Help:      "Cards created",
		}),
		CardsRemoved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cards_removed_total",
			Help:      "Cards removed by ID",
		}),
		AddsRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "add_rejected_total",
			Help:      "Add requests rejected because the title was blank",
		}),
		SnapshotWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshot_writes_total",
			Help:      "Snapshot writes, by result",
		}, []string{"result"}),
		SnapshotWrite: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "snapshot_write_duration_seconds",
			Help:      "Snapshot write latency",
			Buckets:   prometheus.DefBuckets,
		}),
		Cards: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cards",
			Help:      "Cards currently on the board",
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests, by method, route and status",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	c.registry.MustRegister(
		c.Drops,
		c.CardsAdded,
		c.CardsRemoved,
		c.AddsRejected,
		c.SnapshotWrites,
		c.SnapshotWrite,
		c.Cards,
		c.HTTPRequests,
		c.HTTPDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return c
}

// Registry returns the collector's registry
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// RecordDrop counts one applied drop intent
func (c *Collector) RecordDrop(outcome string) {
	c.Drops.WithLabelValues(outcome).Inc()
}

// RecordSnapshotWrite records a snapshot write and its latency
func (c *Collector) RecordSnapshotWrite(elapsed time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	c.SnapshotWrites.WithLabelValues(result).Inc()
	c.SnapshotWrite.Observe(elapsed.Seconds())
}

// RecordHTTP records one served request
func (c *Collector) RecordHTTP(method, route, status string, elapsed time.Duration) {
	c.HTTPRequests.WithLabelValues(method, route, status).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
