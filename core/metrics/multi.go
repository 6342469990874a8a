package metrics

// MultiSink fans records out to multiple sinks.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordRun forwards the record to all sinks, returning the first error encountered.
func (m *MultiSink) RecordRun(ev RunEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordRun(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordSweep forwards sweeps to sinks that support them.
func (m *MultiSink) RecordSweep(ev SweepEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(SweepRecorder); ok {
			if err := rec.RecordSweep(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordImprovement forwards improvement steps to sinks that support them.
func (m *MultiSink) RecordImprovement(ev ImprovementEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(ImprovementRecorder); ok {
			if err := rec.RecordImprovement(ev); err != nil {
				return err
			}
		}
	}
	return nil
}
