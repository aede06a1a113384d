// Package metrics exposes Prometheus collectors for download activity.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "grabarr"

// Metrics holds the download collectors. A nil *Metrics records nothing.
type Metrics struct {
	attemptsTotal  prometheus.Counter
	resultsTotal   *prometheus.CounterVec
	bytesTotal     *prometheus.CounterVec
	mergeSeconds   prometheus.Histogram
	fileSizeBytes  prometheus.Histogram
	inProgress     prometheus.Gauge
	batchItemTotal *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
//
// Panics if registration fails (e.g. duplicate names).
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		attemptsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "attempts_total",
			Help:      "Download attempts started, retries included.",
		}),
		resultsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "downloads_total",
			Help:      "Finished downloads by final status.",
		}, []string{"status"}),
		bytesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transferred_bytes_total",
			Help:      "Bytes transferred by stream kind.",
		}, []string{"kind"}),
		mergeSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "merge_duration_seconds",
			Help:      "Time spent merging video and audio tracks.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		}),
		fileSizeBytes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "file_size_bytes",
			Help:      "Size of finished media files.",
			Buckets:   prometheus.ExponentialBuckets(1024*1024, 4, 8), // 1MiB to 16GiB
		}),
		inProgress: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "downloads_in_progress",
			Help:      "Downloads currently running.",
		}),
		batchItemTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batch_items_total",
			Help:      "Collection members processed by outcome.",
		}, []string{"status"}),
	}

	reg.MustRegister(
		m.attemptsTotal,
		m.resultsTotal,
		m.bytesTotal,
		m.mergeSeconds,
		m.fileSizeBytes,
		m.inProgress,
		m.batchItemTotal,
	)
	return m
}

// Attempt counts one started attempt.
func (m *Metrics) Attempt() {
	if m == nil {
		return
	}
	m.attemptsTotal.Inc()
}

// Finished records the final status of one resource and its file size (0 when none).
func (m *Metrics) Finished(status string, size int64) {
	if m == nil {
		return
	}
	m.resultsTotal.WithLabelValues(status).Inc()
	if size > 0 {
		m.fileSizeBytes.Observe(float64(size))
	}
}

// Transferred adds n bytes for a stream kind.
func (m *Metrics) Transferred(kind string, n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.bytesTotal.WithLabelValues(kind).Add(float64(n))
}

// Merged observes one merge duration.
func (m *Metrics) Merged(d time.Duration) {
	if m == nil {
		return
	}
	m.mergeSeconds.Observe(d.Seconds())
}

// Started marks a download as running and returns the func ending it.
func (m *Metrics) Started() func() {
	if m == nil {
		return func() {}
	}
	m.inProgress.Inc()
	return m.inProgress.Dec
}

// BatchItem counts one processed collection member.
func (m *Metrics) BatchItem(ok bool) {
	if m == nil {
		return
	}
	status := "failed"
	if ok {
		status = "succeeded"
	}
	m.batchItemTotal.WithLabelValues(status).Inc()
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
