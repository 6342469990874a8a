package metrics

import (
	"errors"
	"testing"
)

type recordSink struct {
	runs, sweeps, improvements int
	err                        error
}

func (r *recordSink) RecordRun(RunEvent) error {
	r.runs++
	return r.err
}

func (r *recordSink) RecordSweep(SweepEvent) error {
	r.sweeps++
	return nil
}

func (r *recordSink) RecordImprovement(ImprovementEvent) error {
	r.improvements++
	return nil
}

type runOnlySink struct{ runs int }

func (r *runOnlySink) RecordRun(RunEvent) error {
	r.runs++
	return nil
}

func TestMultiSinkForwards(t *testing.T) {
	s1 := &recordSink{}
	s2 := &runOnlySink{}
	m := NewMultiSink(s1, s2)
	if err := m.RecordRun(RunEvent{RunID: "r"}); err != nil {
		t.Fatalf("record run: %v", err)
	}
	if err := m.RecordSweep(SweepEvent{Sweep: 1}); err != nil {
		t.Fatalf("record sweep: %v", err)
	}
	if err := m.RecordImprovement(ImprovementEvent{Iteration: 1}); err != nil {
		t.Fatalf("record improvement: %v", err)
	}
	if s1.runs != 1 || s1.sweeps != 1 || s1.improvements != 1 {
		t.Fatalf("unexpected forwarding to full sink: %+v", s1)
	}
	if s2.runs != 1 {
		t.Fatalf("run not forwarded to run-only sink")
	}
}

func TestMultiSinkStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	s1 := &recordSink{err: boom}
	s2 := &recordSink{}
	m := NewMultiSink(s1, s2)
	if err := m.RecordRun(RunEvent{}); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if s2.runs != 0 {
		t.Fatalf("second sink should not be reached")
	}
}
