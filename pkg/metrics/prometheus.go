package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Fetch kinds and outcomes used as label values
const (
	KindInitial = "initial"
	KindReload  = "reload"
	KindPage    = "page"

	OutcomeSuccess    = "success"
	OutcomeEmpty      = "empty"
	OutcomeFailure    = "failure"
	OutcomeSuperseded = "superseded"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	FetchesTotal   *prometheus.CounterVec
	FetchDuration  prometheus.Histogram
	FlightsLoaded  prometheus.Counter
	ActiveSessions prometheus.Gauge
	ErrorsCount    *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics registered on reg.
// Pass prometheus.DefaultRegisterer in production and a fresh registry in tests.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		FetchesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetches_total",
			Help:      "The total number of flight page fetches by kind and outcome",
		}, []string{"kind", "outcome"}),
		FetchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Time taken by the flight data provider to answer a page request",
			Buckets:   prometheus.DefBuckets,
		}),
		FlightsLoaded: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "flights_loaded_total",
			Help:      "The total number of flights received from the provider",
		}),
		ActiveSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "The number of open flight list sessions",
		}),
		ErrorsCount: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
	}
}

// NewNopMetrics returns metrics registered on a private registry
func NewNopMetrics() *Metrics {
	return NewMetrics("test", prometheus.NewRegistry())
}
