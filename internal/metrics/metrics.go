// Package metrics exposes Prometheus collectors fed by session lifecycle hooks.
package metrics

import (
	"context"
	"net/http"

	"github.com/aretw0/unitconv/pkg/conversion"
	"github.com/aretw0/unitconv/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "unitconv"

// Metrics owns a private registry so several instances can coexist (tests, embedded hosts).
type Metrics struct {
	Registry *prometheus.Registry

	events      *prometheus.CounterVec
	conversions *prometheus.CounterVec
	degraded    prometheus.Counter
	duration    *prometheus.HistogramVec
}

// New creates the collectors and registers them, along with Go runtime collectors.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		events: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "session_events_total",
				Help:      "Total number of session events by type",
			},
			[]string{"type"},
		),
		conversions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "conversions_total",
				Help:      "Total number of conversions by mode",
			},
			[]string{"mode"},
		),
		degraded: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "degraded_inputs_total",
				Help:      "Conversions whose input did not parse and was treated as 0",
			},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "conversion_duration_seconds",
				Help:      "Duration of result recomputation",
				Buckets:   []float64{1e-7, 1e-6, 1e-5, 1e-4, 1e-3},
			},
			[]string{"mode"},
		),
	}

	m.Registry.MustRegister(
		m.events,
		m.conversions,
		m.degraded,
		m.duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Hooks returns lifecycle hooks that record every session event.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnInputChanged: func(ctx context.Context, e *domain.Event) {
			m.events.WithLabelValues(string(e.Type)).Inc()
		},
		OnModeSelected: func(ctx context.Context, e *domain.Event) {
			m.events.WithLabelValues(string(e.Type)).Inc()
		},
		OnConverted: func(ctx context.Context, e *domain.Event) {
			m.ObserveConversion(e.Input, e.Mode, e.Duration.Seconds())
		},
	}
}

// ObserveConversion records a conversion made outside a session (stateless API).
func (m *Metrics) ObserveConversion(input string, mode domain.Mode, seconds float64) {
	label := modeLabel(mode)
	m.conversions.WithLabelValues(label).Inc()
	m.duration.WithLabelValues(label).Observe(seconds)
	if _, ok := conversion.TryParse(input); !ok {
		m.degraded.Inc()
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}

// modeLabel bounds label cardinality: arbitrary mode strings collapse to "unknown".
func modeLabel(mode domain.Mode) string {
	if mode.Known() {
		return string(mode)
	}
	return "unknown"
}
