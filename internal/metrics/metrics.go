// Package metrics exposes Prometheus instrumentation for sync runs.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "jushuitan"

// Recorder records pipeline metrics on its own registry
type Recorder struct {
	registry       *prometheus.Registry
	syncRuns       *prometheus.CounterVec
	syncDuration   *prometheus.HistogramVec
	upstreamOrders *prometheus.CounterVec
	rowsWritten    *prometheus.CounterVec
}

// NewRecorder creates a recorder with the Go runtime collector registered
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		syncRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sync_runs_total",
			Help:      "Sync runs by kind and result.",
		}, []string{"kind", "result"}),
		syncDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "sync_duration_seconds",
			Help:      "Wall time of sync runs.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}, []string{"kind"}),
		upstreamOrders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_orders_total",
			Help:      "Orders received from the upstream API by view.",
		}, []string{"view"}),
		rowsWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_written_total",
			Help:      "Rows persisted by the sync pipeline by table.",
		}, []string{"table"}),
	}
	r.registry.MustRegister(
		collectors.NewGoCollector(),
		r.syncRuns,
		r.syncDuration,
		r.upstreamOrders,
		r.rowsWritten,
	)
	return r
}

// ObserveSync records one finished sync run
func (r *Recorder) ObserveSync(kind string, started time.Time, err error) {
	if r == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "error"
	}
	r.syncRuns.WithLabelValues(kind, result).Inc()
	r.syncDuration.WithLabelValues(kind).Observe(time.Since(started).Seconds())
}

// AddUpstreamOrders counts orders fetched for a view
func (r *Recorder) AddUpstreamOrders(view string, n int) {
	if r == nil {
		return
	}
	r.upstreamOrders.WithLabelValues(view).Add(float64(n))
}

// AddRows counts rows persisted into table
func (r *Recorder) AddRows(table string, n int) {
	if r == nil {
		return
	}
	r.rowsWritten.WithLabelValues(table).Add(float64(n))
}

// Handler serves the registry in the Prometheus text format
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{
		Registry:      r.registry,
		ErrorHandling: promhttp.ContinueOnError,
	})
}
