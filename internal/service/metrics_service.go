package service

import (
	"fmt"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsSnapshot is an aggregated view for the admin dashboard.
type MetricsSnapshot struct {
	RequestsTotal            uint64    `json:"requests_total"`
	AverageRequestDurationMs float64   `json:"average_request_duration_ms"`
	SnapshotFlushes          uint64    `json:"snapshot_flushes"`
	AverageFlushDurationMs   float64   `json:"average_flush_duration_ms"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generated_at"`
}

// MetricsService encapsulates Prometheus instrumentation plus lightweight
// counters for the in-API snapshot.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	flushDuration   *prometheus.HistogramVec
	exportTotal     *prometheus.CounterVec

	requestCount       uint64
	requestDurationSum uint64
	flushCount         uint64
	flushDurationSum   uint64
}

// NewMetricsService registers the core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	flushDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "snapshot_flush_duration_seconds",
		Help:    "Duration of snapshot blob writes to the backend",
		Buckets: prometheus.DefBuckets,
	}, []string{"key"})

	exportTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "document_exports_total",
		Help: "Generated PDF and CSV exports",
	}, []string{"kind"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, flushDuration, exportTotal, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		flushDuration:   flushDuration,
		exportTotal:     exportTotal,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics and aggregates simple stats for
// the snapshot endpoint.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
	atomic.AddUint64(&m.requestCount, 1)
	atomic.AddUint64(&m.requestDurationSum, uint64(duration.Nanoseconds()))
}

// ObserveSnapshotFlush records one blob write to the persistence backend.
func (m *MetricsService) ObserveSnapshotFlush(key string, duration time.Duration) {
	if m == nil {
		return
	}
	m.flushDuration.WithLabelValues(key).Observe(duration.Seconds())
	atomic.AddUint64(&m.flushCount, 1)
	atomic.AddUint64(&m.flushDurationSum, uint64(duration.Nanoseconds()))
}

// CountExport counts one generated document. Kind is "report_pdf",
// "admit_pdf", "marks_csv", "marks_pdf" or "students_csv".
func (m *MetricsService) CountExport(kind string) {
	if m == nil {
		return
	}
	m.exportTotal.WithLabelValues(kind).Inc()
}

// Snapshot returns aggregated metrics for the dashboard endpoint.
func (m *MetricsService) Snapshot() MetricsSnapshot {
	if m == nil {
		return MetricsSnapshot{}
	}
	requests := atomic.LoadUint64(&m.requestCount)
	reqDuration := atomic.LoadUint64(&m.requestDurationSum)
	flushes := atomic.LoadUint64(&m.flushCount)
	flushDuration := atomic.LoadUint64(&m.flushDurationSum)

	var avgRequestMs float64
	if requests > 0 {
		avgRequestMs = float64(reqDuration) / float64(requests) / float64(time.Millisecond)
	}
	var avgFlushMs float64
	if flushes > 0 {
		avgFlushMs = float64(flushDuration) / float64(flushes) / float64(time.Millisecond)
	}

	return MetricsSnapshot{
		RequestsTotal:            requests,
		AverageRequestDurationMs: avgRequestMs,
		SnapshotFlushes:          flushes,
		AverageFlushDurationMs:   avgFlushMs,
		Goroutines:               runtime.NumGoroutine(),
		GeneratedAt:              time.Now().UTC(),
	}
}
