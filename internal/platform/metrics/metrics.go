// Package metrics keeps Prometheus counters for local practice activity.
package metrics

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns a private registry so the textfile snapshot contains only
// FocusFlow series.
type Manager struct {
	namespace string
	registry  *prometheus.Registry

	practicesStarted   *prometheus.CounterVec
	practicesCompleted prometheus.Counter
	practicesEnded     prometheus.Counter
	sessionsLogged     prometheus.Counter
	sessionsSkipped    prometheus.Counter
	xpAwarded          prometheus.Counter
	totalXP            prometheus.Gauge
	streakDays         prometheus.Gauge
}

// Option applies a configuration option to the Manager.
type Option func(*Manager)

// WithNamespace sets the namespace for all metrics.
func WithNamespace(namespace string) Option {
	return func(m *Manager) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}

// WithRegistry replaces the private registry.
func WithRegistry(registry *prometheus.Registry) Option {
	return func(m *Manager) {
		if registry != nil {
			m.registry = registry
		}
	}
}

func NewManager(opts ...Option) *Manager {
	m := &Manager{namespace: "focusflow", registry: prometheus.NewRegistry()}
	for _, opt := range opts {
		opt(m)
	}
	auto := promauto.With(m.registry)
	m.practicesStarted = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "practices_started_total",
		Help:      "Practices started, by drill.",
	}, []string{"drill"})
	m.practicesCompleted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "practices_completed_total",
		Help:      "Practices whose countdown reached zero.",
	})
	m.practicesEnded = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "practices_ended_early_total",
		Help:      "Practices cancelled before completion.",
	})
	m.sessionsLogged = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "sessions_logged_total",
		Help:      "Completed practices persisted as session records.",
	})
	m.sessionsSkipped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "sessions_skipped_total",
		Help:      "Completed practices discarded without logging.",
	})
	m.xpAwarded = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "xp_awarded_total",
		Help:      "Experience points awarded in this process.",
	})
	m.totalXP = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "total_xp",
		Help:      "Cumulative experience points.",
	})
	m.streakDays = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "streak_days",
		Help:      "Current consecutive-day practice streak.",
	})
	return m
}

func (m *Manager) PracticeStarted(drillID string) { m.practicesStarted.WithLabelValues(drillID).Inc() }
func (m *Manager) PracticeCompleted()             { m.practicesCompleted.Inc() }
func (m *Manager) PracticeEndedEarly()            { m.practicesEnded.Inc() }
func (m *Manager) SessionSkipped()                { m.sessionsSkipped.Inc() }

func (m *Manager) SessionLogged(xpEarned, totalXP int) {
	m.sessionsLogged.Inc()
	m.xpAwarded.Add(float64(xpEarned))
	m.totalXP.Set(float64(totalXP))
}

func (m *Manager) ObserveProgress(streak, totalXP int) {
	m.streakDays.Set(float64(streak))
	m.totalXP.Set(float64(totalXP))
}

// Gatherer exposes the registry for tests and exporters.
func (m *Manager) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteTextfile writes the registry in the node_exporter textfile format.
func (m *Manager) WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create metrics dir: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
