package metrics

import (
	"errors"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/carrental/core/metrics"
)

// PromSink records solver runs in Prometheus metrics.
type PromSink struct {
	runs       *prometheus.CounterVec
	duration   prometheus.Histogram
	iterations prometheus.Gauge
	sweeps     prometheus.Counter
	delta      prometheus.Gauge
	changes    prometheus.Counter
}

// NewPromSink registers solver metrics on the default Prometheus registerer.
// The HTTP endpoint is served separately by StartPromServer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	s := &PromSink{}
	var err error
	if s.runs, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "solver_runs_total",
		Help: "Total number of policy iteration runs",
	}, []string{"modified", "converged"})); err != nil {
		return nil, err
	}
	if s.duration, err = register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "solver_run_duration_seconds",
		Help:    "Wall time of policy iteration runs",
		Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
	})); err != nil {
		return nil, err
	}
	if s.iterations, err = register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "solver_policy_iterations",
		Help: "Policy improvement steps of the last run",
	})); err != nil {
		return nil, err
	}
	if s.sweeps, err = register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "solver_sweeps_total",
		Help: "Total number of policy evaluation sweeps",
	})); err != nil {
		return nil, err
	}
	if s.delta, err = register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "solver_sweep_delta",
		Help: "Largest value change of the last evaluation sweep",
	})); err != nil {
		return nil, err
	}
	if s.changes, err = register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "solver_policy_changes_total",
		Help: "Total number of state actions changed by policy improvement",
	})); err != nil {
		return nil, err
	}
	return s, nil
}

// register adds c to reg, reusing an identical collector registered earlier.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordRun counts the run and records its duration and iteration count.
func (s *PromSink) RecordRun(ev coremetrics.RunEvent) error {
	s.runs.WithLabelValues(strconv.FormatBool(ev.Modified), strconv.FormatBool(ev.Converged)).Inc()
	if ev.Converged {
		s.duration.Observe(ev.Duration.Seconds())
		s.iterations.Set(float64(ev.Iterations))
	}
	return nil
}

// RecordSweep counts the sweep and exposes its delta.
func (s *PromSink) RecordSweep(ev coremetrics.SweepEvent) error {
	s.sweeps.Inc()
	s.delta.Set(ev.Delta)
	return nil
}

// RecordImprovement adds the number of changed states.
func (s *PromSink) RecordImprovement(ev coremetrics.ImprovementEvent) error {
	s.changes.Add(float64(ev.Changes))
	return nil
}
