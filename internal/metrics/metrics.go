package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds the engine's prometheus collectors.
type Registry struct {
	SourceFetches     *prometheus.CounterVec
	SourceLatency     *prometheus.HistogramVec
	Calculations      *prometheus.CounterVec
	FallbackSteps     *prometheus.CounterVec
	FinalRate         prometheus.Gauge
	BaselineRate      prometheus.Gauge
	RateLimitRejected prometheus.Counter

	gatherer prometheus.Gatherer
}

// New registers all collectors with reg. A nil reg uses a fresh private registry.
func New(reg *prometheus.Registry) *Registry {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	m := &Registry{
		SourceFetches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ngnfx_source_fetches_total",
				Help: "External rate source fetch attempts by source and status",
			},
			[]string{"source", "status"},
		),
		SourceLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ngnfx_source_fetch_duration_seconds",
				Help:    "External rate source response time in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 3, 5},
			},
			[]string{"source"},
		),
		Calculations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ngnfx_calculations_total",
				Help: "Completed rate calculations by method",
			},
			[]string{"method"},
		),
		FallbackSteps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ngnfx_fallback_total",
				Help: "Fallback cascade outcomes by step",
			},
			[]string{"step"},
		),
		FinalRate: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ngnfx_final_usd_ngn_rate",
			Help: "Last published USD/NGN rate",
		}),
		BaselineRate: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ngnfx_baseline_usd_ngn_rate",
			Help: "Last computed baseline USD/NGN rate",
		}),
		RateLimitRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ngnfx_rate_limit_rejected_total",
			Help: "Requests rejected by the rate limiter",
		}),
		gatherer: reg,
	}

	reg.MustRegister(
		m.SourceFetches,
		m.SourceLatency,
		m.Calculations,
		m.FallbackSteps,
		m.FinalRate,
		m.BaselineRate,
		m.RateLimitRejected,
	)
	return m
}

func (m *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// The helpers below accept a nil receiver so metrics stay optional for callers.

func (m *Registry) ObserveSource(source, status string, seconds float64) {
	if m == nil {
		return
	}
	m.SourceFetches.WithLabelValues(source, status).Inc()
	m.SourceLatency.WithLabelValues(source).Observe(seconds)
}

func (m *Registry) ObserveCalculation(method string, baseline, final float64) {
	if m == nil {
		return
	}
	m.Calculations.WithLabelValues(method).Inc()
	m.BaselineRate.Set(baseline)
	m.FinalRate.Set(final)
}

func (m *Registry) ObserveFallback(step string) {
	if m == nil {
		return
	}
	m.FallbackSteps.WithLabelValues(step).Inc()
}

func (m *Registry) ObserveRateLimited() {
	if m == nil {
		return
	}
	m.RateLimitRejected.Inc()
}
