// Package metrics provides Prometheus collectors for pipeline runs and their fetches.
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"
)

type Collector struct {
	registry *prometheus.Registry

	fetchesTotal    *prometheus.CounterVec
	fetchDuration   *prometheus.HistogramVec
	runsTotal       *prometheus.CounterVec
	runDuration     prometheus.Histogram
	aggregatesTotal prometheus.Counter
}

// New registers all collectors on a fresh registry.
func New() *Collector {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Collector{
		registry: reg,
		fetchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "postagg_fetches_total",
				Help: "Total number of resource loads by resource and outcome",
			},
			[]string{"resource", "outcome"},
		),
		fetchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "postagg_fetch_duration_seconds",
				Help:    "Resource load duration in seconds",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"resource"},
		),
		runsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "postagg_runs_total",
				Help: "Total number of pipeline runs by terminal state",
			},
			[]string{"state"},
		),
		runDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "postagg_run_duration_seconds",
				Help:    "Pipeline run duration in seconds",
				Buckets: prometheus.ExponentialBuckets(.05, 2, 12),
			},
		),
		aggregatesTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "postagg_aggregates_total",
				Help: "Total number of post aggregates produced",
			},
		),
	}
}

func (c *Collector) ObserveFetch(resource, outcome string, duration time.Duration) {
	c.fetchesTotal.WithLabelValues(resource, outcome).Inc()
	c.fetchDuration.WithLabelValues(resource).Observe(duration.Seconds())
}

func (c *Collector) ObserveRun(state string, aggregates int, duration time.Duration) {
	c.runsTotal.WithLabelValues(state).Inc()
	c.runDuration.Observe(duration.Seconds())
	c.aggregatesTotal.Add(float64(aggregates))
}

func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Push sends the current values to a Prometheus Pushgateway under job.
func (c *Collector) Push(ctx context.Context, url, job string) error {
	return push.New(url, job).Gatherer(c.registry).PushContext(ctx)
}
