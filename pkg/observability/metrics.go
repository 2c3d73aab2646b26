package observability

import (
	"context"
	"net/http"

	"github.com/aretw0/tracentm/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors fed by the engine hooks.
type Metrics struct {
	registry *prometheus.Registry

	Runs       *prometheus.CounterVec
	Explored   *prometheus.HistogramVec
	TreeDepth  *prometheus.HistogramVec
	Levels     *prometheus.CounterVec
	LevelWidth *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tracentm_runs_total",
				Help: "Total number of finished simulations by verdict",
			},
			[]string{"machine", "verdict"},
		),
		Explored: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tracentm_configurations_explored",
				Help:    "Configurations explored per simulation, duplicates included",
				Buckets: prometheus.ExponentialBuckets(1, 4, 10),
			},
			[]string{"machine"},
		),
		TreeDepth: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tracentm_tree_depth",
				Help:    "Depth of the configuration tree per simulation",
				Buckets: prometheus.LinearBuckets(0, 5, 10),
			},
			[]string{"machine"},
		),
		Levels: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tracentm_levels_total",
				Help: "Total number of tree levels that produced successors",
			},
			[]string{"machine"},
		),
		LevelWidth: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tracentm_level_width",
				Help:    "Configurations queued per expanded level",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
			[]string{"machine"},
		),
	}
	m.registry.MustRegister(m.Runs, m.Explored, m.TreeDepth, m.Levels, m.LevelWidth)
	return m
}

// Registry exposes the registry for gathering in tests or custom exporters.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnLevel: func(_ context.Context, e *domain.LevelEvent) {
			m.Levels.WithLabelValues(e.Machine).Inc()
			m.LevelWidth.WithLabelValues(e.Machine).Observe(float64(e.Width))
		},
		OnVerdict: func(_ context.Context, e *domain.VerdictEvent) {
			m.Runs.WithLabelValues(e.Machine, string(e.Verdict)).Inc()
			m.Explored.WithLabelValues(e.Machine).Observe(float64(e.Explored))
			m.TreeDepth.WithLabelValues(e.Machine).Observe(float64(e.Depth))
		},
	}
}
