package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/riskibarqy/football-insights/internal/platform/cache"
	"github.com/riskibarqy/football-insights/internal/platform/resilience"
)

const namespace = "football_insights"

// Recorder owns a private registry so tests can build as many as they need.
type Recorder struct {
	registry *prometheus.Registry

	providerCalls       *prometheus.CounterVec
	providerDuration    *prometheus.HistogramVec
	matchesNormalized   *prometheus.CounterVec
	httpRequests        *prometheus.CounterVec
	httpDuration        *prometheus.HistogramVec
	circuitBreakerState *prometheus.GaugeVec
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		providerCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_calls_total",
			Help:      "Upstream provider calls by source, league and outcome.",
		}, []string{"source", "league", "outcome"}),
		providerDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "provider_call_duration_seconds",
			Help:      "Upstream provider call latency.",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2, 4, 8, 15},
		}, []string{"source"}),
		matchesNormalized: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "matches_normalized_total",
			Help:      "Provider events that normalized into canonical matches.",
		}, []string{"source"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by route pattern and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		circuitBreakerState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_state",
			Help:      "0 closed, 0.5 half open, 1 open.",
		}, []string{"provider"}),
	}

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.providerCalls,
		r.providerDuration,
		r.matchesNormalized,
		r.httpRequests,
		r.httpDuration,
		r.circuitBreakerState,
	)
	return r
}

// ObserveProviderCall records one merger call.
func (r *Recorder) ObserveProviderCall(source, league, outcome string, duration time.Duration, normalized int) {
	if r == nil {
		return
	}
	r.providerCalls.WithLabelValues(source, league, outcome).Inc()
	r.providerDuration.WithLabelValues(source).Observe(duration.Seconds())
	if normalized > 0 {
		r.matchesNormalized.WithLabelValues(source).Add(float64(normalized))
	}
}

func (r *Recorder) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if r == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	r.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// TrackCircuitBreakers exports every breaker transition as a gauge value.
func (r *Recorder) TrackCircuitBreakers(providers ...string) {
	if r == nil {
		return
	}
	for _, provider := range providers {
		r.circuitBreakerState.WithLabelValues(provider).Set(resilience.StateValue(resilience.CircuitStateClosed))
	}
	resilience.OnStateChange(func(name string, _, to resilience.CircuitState) {
		if name == "" {
			return
		}
		r.circuitBreakerState.WithLabelValues(name).Set(resilience.StateValue(to))
	})
}

// TrackCache exposes the store's hit and miss counters.
func (r *Recorder) TrackCache(store *cache.Store) {
	if r == nil || store == nil {
		return
	}
	r.registry.MustRegister(
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cache_entries",
			Help:      "Entries currently held by the response cache.",
		}, func() float64 { return float64(store.Stats().Entries) }),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Response cache hits.",
		}, func() float64 { return float64(store.Stats().Hits) }),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_misses_total",
			Help:      "Response cache misses.",
		}, func() float64 { return float64(store.Stats().Misses) }),
	)
}

func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}
