package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tocview"

// Prometheus implements every hook interface on top of Prometheus
// collectors.
type Prometheus struct {
	resolveDuration  *prometheus.HistogramVec
	connectedSize    prometheus.Histogram
	renderDuration   *prometheus.HistogramVec
	renderErrors     *prometheus.CounterVec
	renderBytes      *prometheus.CounterVec
	cacheLookups     *prometheus.CounterVec
	cacheWrittenSize *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
}

// NewPrometheus creates the collectors and registers them with reg.
func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	f := promauto.With(reg)
	return &Prometheus{
		resolveDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "resolve",
			Name:      "duration_seconds",
			Help:      "Time to resolve the connected and neighbour sets of a diagram",
			Buckets:   []float64{0.00001, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
		}, []string{"diagram"}),
		connectedSize: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "resolve",
			Name:      "connected_nodes",
			Help:      "Size of the resolved connected set",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
		renderDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "render",
			Name:      "duration_seconds",
			Help:      "Time to render a diagram artifact",
			Buckets:   prometheus.DefBuckets,
		}, []string{"format"}),
		renderErrors: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "render",
			Name:      "errors_total",
			Help:      "Total failed renders",
		}, []string{"format"}),
		renderBytes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "render",
			Name:      "bytes_total",
			Help:      "Total bytes of rendered artifacts",
		}, []string{"format"}),
		cacheLookups: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Cache lookups by result (hit, miss)",
		}, []string{"key_type", "result"}),
		cacheWrittenSize: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "written_bytes_total",
			Help:      "Total bytes written to the cache",
		}, []string{"key_type"}),
		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route and status",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

// Register installs p as the global resolve, render, cache and HTTP hooks.
func (p *Prometheus) Register() {
	SetResolveHooks(p)
	SetRenderHooks(p)
	SetCacheHooks(p)
	SetHTTPHooks(p)
}

func (p *Prometheus) OnResolve(_ context.Context, diagram string, _, connected, _ int, d time.Duration) {
	p.resolveDuration.WithLabelValues(diagram).Observe(d.Seconds())
	p.connectedSize.Observe(float64(connected))
}

func (p *Prometheus) OnRenderStart(context.Context, string, int) {}

func (p *Prometheus) OnRenderComplete(_ context.Context, format string, size int, d time.Duration, err error) {
	p.renderDuration.WithLabelValues(format).Observe(d.Seconds())
	if err != nil {
		p.renderErrors.WithLabelValues(format).Inc()
		return
	}
	p.renderBytes.WithLabelValues(format).Add(float64(size))
}

func (p *Prometheus) OnCacheHit(_ context.Context, keyType string) {
	p.cacheLookups.WithLabelValues(keyType, "hit").Inc()
}

func (p *Prometheus) OnCacheMiss(_ context.Context, keyType string) {
	p.cacheLookups.WithLabelValues(keyType, "miss").Inc()
}

func (p *Prometheus) OnCacheSet(_ context.Context, keyType string, size int) {
	p.cacheWrittenSize.WithLabelValues(keyType).Add(float64(size))
}

func (p *Prometheus) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	p.httpDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}

var (
	_ ResolveHooks = (*Prometheus)(nil)
	_ RenderHooks  = (*Prometheus)(nil)
	_ CacheHooks   = (*Prometheus)(nil)
	_ HTTPHooks    = (*Prometheus)(nil)
)
