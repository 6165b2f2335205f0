// Package metrics exports tracking engine and HTTP counters to Prometheus.
package metrics

import (
	"net/http"
	"strconv"

	"couriertracking/internal/core/application/tracking"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "courier_tracking"

// Collector implements tracking.Metrics and the HTTP request observer on a dedicated registry.
type Collector struct {
	registry *prometheus.Registry

	pings            prometheus.Counter
	entrances        prometheus.Counter
	suppressed       prometheus.Counter
	flushes          *prometheus.CounterVec
	flushedMeters    prometheus.Counter
	observerFailures prometheus.Counter
	reaped           prometheus.Counter
	trackedCouriers  prometheus.Gauge
	httpRequests     *prometheus.CounterVec
}

var _ tracking.Metrics = (*Collector)(nil)

// NewCollector registers every metric plus the Go and process collectors.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		pings: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "pings_total",
			Help: "Location pings accepted by the tracking engine.",
		}),
		entrances: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "store_entrances_total",
			Help: "Store entrances recorded.",
		}),
		suppressed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "entrances_suppressed_total",
			Help: "Store entrances suppressed by the re-entry cooldown.",
		}),
		flushes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "flushes_total",
			Help: "Flush attempts of pending distance by result.",
		}, []string{"result"}),
		flushedMeters: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "flushed_distance_meters_total",
			Help: "Meters written to durable storage.",
		}),
		observerFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "observer_failures_total",
			Help: "Entrance observer calls that returned an error or panicked.",
		}),
		reaped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "reaped_couriers_total",
			Help: "Idle couriers evicted from memory.",
		}),
		trackedCouriers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "tracked_couriers",
			Help: "Couriers currently held in memory.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "path", "status"}),
	}

	c.registry.MustRegister(
		c.pings,
		c.entrances,
		c.suppressed,
		c.flushes,
		c.flushedMeters,
		c.observerFailures,
		c.reaped,
		c.trackedCouriers,
		c.httpRequests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

// Registry exposes the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

func (c *Collector) PingRecorded()       { c.pings.Inc() }
func (c *Collector) EntranceRecorded()   { c.entrances.Inc() }
func (c *Collector) EntranceSuppressed() { c.suppressed.Inc() }
func (c *Collector) ObserverFailed()     { c.observerFailures.Inc() }

// FlushCompleted counts the attempt; written meters add to the distance total.
func (c *Collector) FlushCompleted(result tracking.FlushResult, meters float64) {
	c.flushes.WithLabelValues(string(result)).Inc()
	if result == tracking.FlushWritten && meters > 0 {
		c.flushedMeters.Add(meters)
	}
}

func (c *Collector) CouriersReaped(n int) {
	if n > 0 {
		c.reaped.Add(float64(n))
	}
}

func (c *Collector) TrackedCouriers(n int) { c.trackedCouriers.Set(float64(n)) }

// ObserveRequest counts one served HTTP request.
func (c *Collector) ObserveRequest(method, path string, status int) {
	c.httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
}
