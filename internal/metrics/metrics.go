// Package metrics defines the Prometheus collectors of the scoring server.
package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/trentd187/golf-scoring/internal/scoring"
)

const namespace = "golf"

// Metrics groups the collectors the handlers and jobs update.
type Metrics struct {
	ScoresRecorded  prometheus.Counter
	ScoresCleared   prometheus.Counter
	NotableEvents   *prometheus.CounterVec
	StaleAggregates prometheus.Counter
	SnapshotRuns    *prometheus.CounterVec

	registry *prometheus.Registry
}

// New registers every collector on a fresh registry. clients reports the live
// spectator count and may be nil.
func New(clients func() int) *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		ScoresRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scores_recorded_total",
			Help:      "Gross scores saved.",
		}),
		ScoresCleared: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scores_cleared_total",
			Help:      "Score cells cleared.",
		}),
		NotableEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notable_events_total",
			Help:      "Notable hole results announced, by category.",
		}, []string{"category"}),
		StaleAggregates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stale_aggregates_total",
			Help:      "Stored team totals found to disagree with the live computation.",
		}),
		SnapshotRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshot_runs_total",
			Help:      "Team snapshot job runs, by result.",
		}, []string{"result"}),
		registry: reg,
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.ScoresRecorded,
		m.ScoresCleared,
		m.NotableEvents,
		m.StaleAggregates,
		m.SnapshotRuns,
	)
	if clients != nil {
		reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "websocket_clients",
			Help:      "Connected live score spectators.",
		}, func() float64 { return float64(clients()) }))
	}
	return m
}

// Notable counts an announced event.
func (m *Metrics) Notable(c scoring.Category) {
	m.NotableEvents.WithLabelValues(string(c)).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

// SnapshotDone records one run of the team snapshot job.
func (m *Metrics) SnapshotDone(stale int, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.SnapshotRuns.WithLabelValues(result).Inc()
	m.StaleAggregates.Add(float64(stale))
}
