package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics records hook events as Prometheus metrics. One value implements
// [PipelineHooks], [CacheHooks] and [HTTPHooks] so it can be registered for
// all three.
type Metrics struct {
	registry *prometheus.Registry

	TranslationsTotal   *prometheus.CounterVec
	TranslationDuration *prometheus.HistogramVec
	StageDuration       *prometheus.HistogramVec
	ValidationsTotal    *prometheus.CounterVec
	Violations          prometheus.Counter

	CacheOpsTotal   *prometheus.CounterVec
	CacheWriteBytes prometheus.Counter
	HTTPRequests    *prometheus.CounterVec
	HTTPDuration    *prometheus.HistogramVec
	HTTPInFlight    prometheus.Gauge
}

// NewMetrics creates the metric set on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		TranslationsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "diagramkit_translations_total",
			Help: "Total number of translations by input, output and status",
		}, []string{"input", "output", "status"}),
		TranslationDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "diagramkit_translation_duration_seconds",
			Help:    "Translation latency in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"input", "output"}),
		StageDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "diagramkit_stage_duration_seconds",
			Help:    "Pipeline stage latency in seconds",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5},
		}, []string{"stage"}),
		ValidationsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "diagramkit_validations_total",
			Help: "Structural validations by outcome",
		}, []string{"valid"}),
		Violations: f.NewCounter(prometheus.CounterOpts{
			Name: "diagramkit_validation_violations_total",
			Help: "Total number of reported validation violations",
		}),
		CacheOpsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "diagramkit_cache_operations_total",
			Help: "Cache operations by key type and result",
		}, []string{"key_type", "result"}),
		CacheWriteBytes: f.NewCounter(prometheus.CounterOpts{
			Name: "diagramkit_cache_write_bytes_total",
			Help: "Bytes written to the cache",
		}),
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "diagramkit_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "diagramkit_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		HTTPInFlight: f.NewGauge(prometheus.GaugeOpts{
			Name: "diagramkit_http_requests_in_flight",
			Help: "Current number of HTTP requests being processed",
		}),
	}
}

// Registry returns the underlying Prometheus registry for exposition.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) OnTranslateStart(context.Context, string, string) {}

func (m *Metrics) OnTranslateComplete(_ context.Context, input, output string, d time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.TranslationsTotal.WithLabelValues(input, output, status).Inc()
	m.TranslationDuration.WithLabelValues(input, output).Observe(d.Seconds())
}

func (m *Metrics) OnStageComplete(_ context.Context, stage string, d time.Duration) {
	m.StageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (m *Metrics) OnValidate(_ context.Context, valid bool, violations int) {
	m.ValidationsTotal.WithLabelValues(strconv.FormatBool(valid)).Inc()
	m.Violations.Add(float64(violations))
}

func (m *Metrics) OnCacheHit(_ context.Context, keyType string) {
	m.CacheOpsTotal.WithLabelValues(keyType, "hit").Inc()
}

func (m *Metrics) OnCacheMiss(_ context.Context, keyType string) {
	m.CacheOpsTotal.WithLabelValues(keyType, "miss").Inc()
}

func (m *Metrics) OnCacheSet(_ context.Context, keyType string, size int) {
	m.CacheOpsTotal.WithLabelValues(keyType, "set").Inc()
	m.CacheWriteBytes.Add(float64(size))
}

func (m *Metrics) OnRequest(context.Context, string, string) {
	m.HTTPInFlight.Inc()
}

func (m *Metrics) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	m.HTTPInFlight.Dec()
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

var (
	_ PipelineHooks = (*Metrics)(nil)
	_ CacheHooks    = (*Metrics)(nil)
	_ HTTPHooks     = (*Metrics)(nil)
)
