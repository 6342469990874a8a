// Package metrics defines the sinks that record solver runs. A sink must
// record completed runs; it may additionally implement SweepRecorder or
// ImprovementRecorder to receive per-sweep and per-improvement progress.
// NewMetricsSink builds sinks from configuration and returns a MultiSink
// when several are configured.
package metrics
