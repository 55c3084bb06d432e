package service

import (
	"fmt"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/noah-isme/school-dashboard-api/internal/models"
)

// MetricsService encapsulates Prometheus instrumentation and provides lightweight snapshots for API consumption.
type MetricsService struct {
	registry             *prometheus.Registry
	handler              http.Handler
	requestDuration      *prometheus.HistogramVec
	requestTotal         *prometheus.CounterVec
	storeRequestDuration *prometheus.HistogramVec
	storeRequestTotal    *prometheus.CounterVec
	activeViews          *prometheus.GaugeVec
	cacheLookup          *prometheus.HistogramVec
	cacheWrite           prometheus.Histogram
	cacheHitRatio        prometheus.Gauge

	requestCount         uint64
	requestDurationTotal uint64
	storeCount           uint64
	storeFailures        uint64
	storeDurationTotal   uint64
	viewCount            int64
	cacheHitCount        uint64
	cacheMissCount       uint64
}

// NewMetricsService registers core Prometheus collectors.
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

	storeRequestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "store_request_duration_seconds",
		Help:    "Duration of round trips to the remote record store",
		Buckets: prometheus.DefBuckets,
	}, []string{"entity", "op"})

	storeRequestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "store_requests_total",
		Help: "Round trips to the remote record store by outcome",
	}, []string{"entity", "op", "status"})

	activeViews := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "dashboard_active_views",
		Help: "Mounted list views per entity",
	}, []string{"entity"})

	cacheLookup := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "record_cache_lookup_seconds",
		Help:    "Latency of record cache lookups by result",
		Buckets: prometheus.DefBuckets,
	}, []string{"result"})

	cacheWrite := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "record_cache_write_seconds",
		Help:    "Latency of record cache writes",
		Buckets: prometheus.DefBuckets,
	})

	cacheHitRatio := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "record_cache_hit_ratio",
		Help: "Ratio of record cache hits to lookups",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, storeRequestDuration, storeRequestTotal, activeViews, cacheLookup, cacheWrite, cacheHitRatio, goroutines)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return &MetricsService{
		registry:             registry,
		handler:              handler,
		requestDuration:      requestDuration,
		requestTotal:         requestTotal,
		storeRequestDuration: storeRequestDuration,
		storeRequestTotal:    storeRequestTotal,
		activeViews:          activeViews,
		cacheLookup:          cacheLookup,
		cacheWrite:           cacheWrite,
		cacheHitRatio:        cacheHitRatio,
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

// ObserveHTTPRequest records request metrics and aggregates simple stats for snapshots.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
	atomic.AddUint64(&m.requestCount, 1)
	atomic.AddUint64(&m.requestDurationTotal, uint64(duration.Nanoseconds()))
}

// ObserveStoreRequest records one round trip to the record store.
func (m *MetricsService) ObserveStoreRequest(entity, op string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.storeRequestDuration.WithLabelValues(entity, op).Observe(duration.Seconds())
	m.storeRequestTotal.WithLabelValues(entity, op, fmt.Sprintf("%d", status)).Inc()
	atomic.AddUint64(&m.storeCount, 1)
	atomic.AddUint64(&m.storeDurationTotal, uint64(duration.Nanoseconds()))
	if status < 200 || status >= 300 {
		atomic.AddUint64(&m.storeFailures, 1)
	}
}

// ViewMounted tracks a newly mounted view.
func (m *MetricsService) ViewMounted(entity string) {
	if m == nil {
		return
	}
	m.activeViews.WithLabelValues(entity).Inc()
	atomic.AddInt64(&m.viewCount, 1)
}

// ViewClosed tracks a torn down view.
func (m *MetricsService) ViewClosed(entity string) {
	if m == nil {
		return
	}
	m.activeViews.WithLabelValues(entity).Dec()
	atomic.AddInt64(&m.viewCount, -1)
}

// RecordCacheOperation records a record cache lookup and updates the hit ratio.
func (m *MetricsService) RecordCacheOperation(hit bool, duration time.Duration) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
		atomic.AddUint64(&m.cacheHitCount, 1)
	} else {
		atomic.AddUint64(&m.cacheMissCount, 1)
	}
	m.cacheLookup.WithLabelValues(result).Observe(duration.Seconds())
	hits := atomic.LoadUint64(&m.cacheHitCount)
	total := hits + atomic.LoadUint64(&m.cacheMissCount)
	if total > 0 {
		m.cacheHitRatio.Set(float64(hits) / float64(total))
	}
}

// ObserveCacheWrite tracks record cache write latency.
func (m *MetricsService) ObserveCacheWrite(duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheWrite.Observe(duration.Seconds())
}

// Snapshot returns aggregated counters for the system endpoint.
func (m *MetricsService) Snapshot() models.SystemMetrics {
	if m == nil {
		return models.SystemMetrics{}
	}
	requests := atomic.LoadUint64(&m.requestCount)
	reqDuration := atomic.LoadUint64(&m.requestDurationTotal)
	storeCount := atomic.LoadUint64(&m.storeCount)
	storeDuration := atomic.LoadUint64(&m.storeDurationTotal)

	var avgRequestMs float64
	if requests > 0 {
		avgRequestMs = float64(reqDuration) / float64(requests) / float64(time.Millisecond)
	}

	hits := atomic.LoadUint64(&m.cacheHitCount)
	misses := atomic.LoadUint64(&m.cacheMissCount)
	var hitRatio float64
	if hits+misses > 0 {
		hitRatio = float64(hits) / float64(hits+misses)
	}

	var avgStoreMs float64
	if storeCount > 0 {
		avgStoreMs = float64(storeDuration) / float64(storeCount) / float64(time.Millisecond)
	}

	return models.SystemMetrics{
		RequestsTotal:            requests,
		AverageRequestDurationMs: avgRequestMs,
		StoreRequestsTotal:       storeCount,
		StoreFailuresTotal:       atomic.LoadUint64(&m.storeFailures),
		AverageStoreDurationMs:   avgStoreMs,
		ActiveViews:              atomic.LoadInt64(&m.viewCount),
		CacheHitRatio:            hitRatio,
		Goroutines:               runtime.NumGoroutine(),
		GeneratedAt:              time.Now().UTC(),
	}
}
