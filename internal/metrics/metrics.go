// Package metrics exposes Prometheus metrics for searches.
//
// A Collector registers its metrics on the registry it is given and is fed
// by subscribing to the query event bus:
//
//	reg := prometheus.NewRegistry()
//	m := metrics.NewCollector(reg)
//	bus := event.NewBus(logger)
//	m.Subscribe(bus)
//	ctrl := query.NewController(searcher, query.WithBus(bus))
//	http.Handle("/metrics", m.Handler())
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Iron-Ham/moviefinder/internal/event"
)

const namespace = "moviefinder"

// Search outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeEmpty   = "empty"
	OutcomeFailed  = "failed"
)

// Collector holds the search metrics for one registry.
type Collector struct {
	reg prometheus.Gatherer

	SearchesTotal       *prometheus.CounterVec
	SearchFailuresTotal *prometheus.CounterVec
	RejectedTotal       *prometheus.CounterVec
	SearchDuration      prometheus.Histogram
	SearchesInFlight    prometheus.Gauge
	MoviesReturned      prometheus.Histogram
	CircuitBreakerState prometheus.Gauge
}

// NewCollector creates the metrics and registers them on reg.
func NewCollector(reg *prometheus.Registry) *Collector {
	factory := promauto.With(reg)
	return &Collector{
		reg: reg,
		SearchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "searches_total",
				Help:      "Completed searches by outcome",
			},
			[]string{"outcome"},
		),
		SearchFailuresTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "search_failures_total",
				Help:      "Failed searches by failure kind",
			},
			[]string{"kind"},
		),
		RejectedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "submissions_rejected_total",
				Help:      "Submissions rejected before any request was sent",
			},
			[]string{"reason"},
		),
		SearchDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "search_duration_seconds",
				Help:      "Time from submission to completion",
				// LLM-backed searches take seconds.
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
			},
		),
		SearchesInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "searches_in_flight",
				Help:      "1 while a search is loading",
			},
		),
		MoviesReturned: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "movies_returned",
				Help:      "Number of movies in successful results",
				Buckets:   []float64{0, 1, 3, 5, 10, 20},
			},
		),
		CircuitBreakerState: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "circuit_breaker_state",
				Help:      "Search backend circuit breaker state (0=closed, 1=half-open, 2=open)",
			},
		),
	}
}

// Subscribe feeds the collector from bus.
func (c *Collector) Subscribe(bus *event.Bus) {
	bus.Subscribe(event.TypeSearchStarted, func(event.Event) {
		c.SearchesInFlight.Set(1)
	})
	bus.Subscribe(event.TypeSearchCompleted, func(e event.Event) {
		if done, ok := e.(event.SearchCompletedEvent); ok {
			c.RecordCompletion(done)
		}
	})
	bus.Subscribe(event.TypeSubmissionRejected, func(e event.Event) {
		if rejected, ok := e.(event.SubmissionRejectedEvent); ok {
			c.RejectedTotal.WithLabelValues(rejected.Reason).Inc()
		}
	})
}

// RecordCompletion records one finished search.
func (c *Collector) RecordCompletion(e event.SearchCompletedEvent) {
	c.SearchesInFlight.Set(0)
	c.SearchDuration.Observe(e.Duration.Seconds())

	switch {
	case !e.Success:
		c.SearchesTotal.WithLabelValues(OutcomeFailed).Inc()
		kind := e.ErrorKind
		if kind == "" {
			kind = "unknown"
		}
		c.SearchFailuresTotal.WithLabelValues(kind).Inc()
	case e.MovieCount == 0:
		c.SearchesTotal.WithLabelValues(OutcomeEmpty).Inc()
		c.MoviesReturned.Observe(0)
	default:
		c.SearchesTotal.WithLabelValues(OutcomeSuccess).Inc()
		c.MoviesReturned.Observe(float64(e.MovieCount))
	}
}

// SetBreakerState records a circuit breaker state name as reported by
// search.BreakerSearcher.
func (c *Collector) SetBreakerState(state string) {
	switch state {
	case "open":
		c.CircuitBreakerState.Set(2)
	case "half-open":
		c.CircuitBreakerState.Set(1)
	default:
		c.CircuitBreakerState.Set(0)
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{})
}
