// Package metrics owns the process Prometheus registry. Vectors are created
// once per fully qualified name; asking again returns the existing vector
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace prefixes every metric name
const Namespace = "parachute"

// DurationBuckets are seconds buckets for request and run latencies
var DurationBuckets = []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5}

// Options configures a Registry
type Options struct {
	Subsystem   string
	GoRuntime   bool
	Process     bool
	ConstLabels prometheus.Labels
}

// Registry is a private prometheus registry plus a name index
type Registry struct {
	reg  *prometheus.Registry
	opts Options

	mu   sync.Mutex
	vecs map[string]prometheus.Collector
}

// New returns a registry with the optional runtime collectors attached
func New(opts Options) *Registry {
	reg := prometheus.NewRegistry()
	if opts.GoRuntime {
		reg.MustRegister(collectors.NewGoCollector())
	}
	if opts.Process {
		reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{Namespace: Namespace}))
	}
	return &Registry{reg: reg, opts: opts, vecs: map[string]prometheus.Collector{}}
}

// Gatherer exposes the underlying registry for tests and custom handlers
func (r *Registry) Gatherer() prometheus.Gatherer { return r.reg }

// Handler serves the registry in the Prometheus text or OpenMetrics format
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

// Counter returns the counter vector called name
func (r *Registry) Counter(name, help string, labels ...string) *prometheus.CounterVec {
	return get(r, name, func() *prometheus.CounterVec {
		return prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   Namespace,
			Subsystem:   r.opts.Subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: r.opts.ConstLabels,
		}, labels)
	})
}

// Histogram returns the histogram vector called name. nil buckets use DurationBuckets
func (r *Registry) Histogram(name, help string, buckets []float64, labels ...string) *prometheus.HistogramVec {
	if buckets == nil {
		buckets = DurationBuckets
	}
	return get(r, name, func() *prometheus.HistogramVec {
		return prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   Namespace,
			Subsystem:   r.opts.Subsystem,
			Name:        name,
			Help:        help,
			Buckets:     buckets,
			ConstLabels: r.opts.ConstLabels,
		}, labels)
	})
}

// Gauge returns the gauge vector called name
func (r *Registry) Gauge(name, help string, labels ...string) *prometheus.GaugeVec {
	return get(r, name, func() *prometheus.GaugeVec {
		return prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   Namespace,
			Subsystem:   r.opts.Subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: r.opts.ConstLabels,
		}, labels)
	})
}

// get registers the vector built by mk unless name already exists. Reusing a
// name for a different metric type panics, like MustRegister would
func get[T prometheus.Collector](r *Registry, name string, mk func() T) T {
	fq := prometheus.BuildFQName(Namespace, r.opts.Subsystem, name)
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.vecs[fq]; ok {
		v, ok := c.(T)
		if !ok {
			panic("metrics: " + fq + " already registered with another type")
		}
		return v
	}
	v := mk()
	r.reg.MustRegister(v)
	r.vecs[fq] = v
	return v
}
