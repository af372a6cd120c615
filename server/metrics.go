package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics counts simulation runs served over websocket.
type Metrics struct {
	gatherer prometheus.Gatherer

	Runs        *prometheus.CounterVec
	RunDuration prometheus.Histogram
	Steps       prometheus.Counter
	ActiveRuns  prometheus.Gauge
	Connections prometheus.Gauge
}

// NewMetrics registers against reg, the default registry when nil.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}
	m := &Metrics{gatherer: gatherer}

	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dhpipe_runs_total",
		Help: "Simulation runs, labeled by outcome (ok, rejected, canceled).",
	}, []string{"outcome"})
	if err := register(reg, runs, "dhpipe_runs_total"); err != nil {
		return nil, err
	}
	m.Runs = runs

	m.RunDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "dhpipe_run_duration_seconds",
		Help:    "Wall time of completed simulation runs.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
	})
	if err := register(reg, m.RunDuration, "dhpipe_run_duration_seconds"); err != nil {
		return nil, err
	}

	m.Steps = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dhpipe_steps_total",
		Help: "Time steps advanced by completed runs.",
	})
	if err := register(reg, m.Steps, "dhpipe_steps_total"); err != nil {
		return nil, err
	}

	m.ActiveRuns = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "dhpipe_active_runs",
		Help: "Simulations currently stepping.",
	})
	if err := register(reg, m.ActiveRuns, "dhpipe_active_runs"); err != nil {
		return nil, err
	}

	m.Connections = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "dhpipe_ws_connections",
		Help: "Open websocket connections.",
	})
	if err := register(reg, m.Connections, "dhpipe_ws_connections"); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Metrics) observeRun(outcome string, steps int, elapsed time.Duration) {
	m.Runs.WithLabelValues(outcome).Inc()
	if outcome == outcomeOK {
		m.RunDuration.Observe(elapsed.Seconds())
		m.Steps.Add(float64(steps))
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func register(reg prometheus.Registerer, c prometheus.Collector, name string) error {
	if err := reg.Register(c); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return fmt.Errorf("collector %s already registered", name)
		}
		return err
	}
	return nil
}
