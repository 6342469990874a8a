package metrics

import "time"

// RunEvent summarises a finished policy iteration run.
type RunEvent struct {
	RunID      string
	Modified   bool
	Gamma      float64
	Epsilon    float64
	Iterations int
	Sweeps     int
	Duration   time.Duration
	Converged  bool
	Error      string
	Time       time.Time
}

// MetricsSink records solver runs for observability purposes.
type MetricsSink interface {
	RecordRun(ev RunEvent) error
}

// SweepEvent is one policy evaluation sweep.
type SweepEvent struct {
	RunID     string
	Iteration int
	Sweep     int
	Delta     float64
	Time      time.Time
}

// SweepRecorder records evaluation sweeps.
type SweepRecorder interface {
	RecordSweep(ev SweepEvent) error
}

// ImprovementEvent is one policy improvement step.
type ImprovementEvent struct {
	RunID     string
	Iteration int
	Changes   int
	Stable    bool
	Time      time.Time
}

// ImprovementRecorder records policy improvement steps.
type ImprovementRecorder interface {
	RecordImprovement(ev ImprovementEvent) error
}

// NopSink implements every recorder with no-op methods.
type NopSink struct{}

func (NopSink) RecordRun(RunEvent) error                 { return nil }
func (NopSink) RecordSweep(SweepEvent) error             { return nil }
func (NopSink) RecordImprovement(ImprovementEvent) error { return nil }
