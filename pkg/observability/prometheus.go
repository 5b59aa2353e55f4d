package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus implements every hook interface on a Prometheus registry.
type Prometheus struct {
	ParseTotal       *prometheus.CounterVec
	LayoutsTotal     *prometheus.CounterVec
	LayoutDuration   prometheus.Histogram
	LayoutNodes      prometheus.Histogram
	CurvedEdgesTotal prometheus.Counter
	RendersTotal     *prometheus.CounterVec
	RenderDuration   *prometheus.HistogramVec

	CacheRequestsTotal *prometheus.CounterVec
	CacheWriteBytes    *prometheus.HistogramVec

	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge
}

// NewPrometheus registers orbit's collectors on reg.
func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	f := promauto.With(reg)
	return &Prometheus{
		ParseTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orbit_graph_parse_total",
				Help: "Total number of graph documents parsed",
			},
			[]string{"source", "result"},
		),
		LayoutsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orbit_layouts_total",
				Help: "Total number of circular layouts computed",
			},
			[]string{"result"},
		),
		LayoutDuration: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "orbit_layout_duration_seconds",
				Help:    "Layout computation latency in seconds",
				Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5},
			},
		),
		LayoutNodes: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "orbit_layout_nodes",
				Help:    "Number of nodes per computed layout",
				Buckets: prometheus.ExponentialBuckets(1, 4, 8),
			},
		),
		CurvedEdgesTotal: f.NewCounter(
			prometheus.CounterOpts{
				Name: "orbit_curved_edges_total",
				Help: "Total number of edges laid out with a control point",
			},
		),
		RendersTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orbit_renders_total",
				Help: "Total number of render requests",
			},
			[]string{"format", "result"},
		),
		RenderDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "orbit_render_duration_seconds",
				Help:    "Render latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"format"},
		),
		CacheRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orbit_cache_requests_total",
				Help: "Total number of cache lookups",
			},
			[]string{"type", "result"},
		),
		CacheWriteBytes: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "orbit_cache_write_bytes",
				Help:    "Size of cache writes in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000},
			},
			[]string{"type"},
		),
		HTTPRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orbit_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "orbit_http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		HTTPRequestsInFlight: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "orbit_http_requests_in_flight",
				Help: "Current number of HTTP requests being processed",
			},
		),
	}
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (p *Prometheus) OnParseStart(context.Context, string) {}

func (p *Prometheus) OnParseComplete(_ context.Context, source string, _ int, _ time.Duration, err error) {
	p.ParseTotal.WithLabelValues(source, result(err)).Inc()
}

func (p *Prometheus) OnLayoutStart(_ context.Context, nodeCount, _ int) {
	p.LayoutNodes.Observe(float64(nodeCount))
}

func (p *Prometheus) OnLayoutComplete(_ context.Context, curved int, d time.Duration, err error) {
	p.LayoutsTotal.WithLabelValues(result(err)).Inc()
	p.LayoutDuration.Observe(d.Seconds())
	p.CurvedEdgesTotal.Add(float64(curved))
}

func (p *Prometheus) OnRenderStart(context.Context, []string) {}

func (p *Prometheus) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	for _, f := range formats {
		p.RendersTotal.WithLabelValues(f, result(err)).Inc()
		p.RenderDuration.WithLabelValues(f).Observe(d.Seconds())
	}
}

func (p *Prometheus) OnCacheHit(_ context.Context, keyType string) {
	p.CacheRequestsTotal.WithLabelValues(keyType, "hit").Inc()
}

func (p *Prometheus) OnCacheMiss(_ context.Context, keyType string) {
	p.CacheRequestsTotal.WithLabelValues(keyType, "miss").Inc()
}

func (p *Prometheus) OnCacheSet(_ context.Context, keyType string, size int) {
	p.CacheWriteBytes.WithLabelValues(keyType).Observe(float64(size))
}

func (p *Prometheus) OnRequest(context.Context, string, string) {
	p.HTTPRequestsInFlight.Inc()
}

func (p *Prometheus) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	p.HTTPRequestsInFlight.Dec()
	p.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	p.HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

var (
	_ PipelineHooks = (*Prometheus)(nil)
	_ CacheHooks    = (*Prometheus)(nil)
	_ HTTPHooks     = (*Prometheus)(nil)
)
