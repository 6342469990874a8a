package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/kilianp07/carrental/core/metrics"
)

type lineRecorder struct {
	mu     sync.Mutex
	bodies []string
}

func (l *lineRecorder) handler(w http.ResponseWriter, r *http.Request) {
	data, _ := io.ReadAll(r.Body)
	l.mu.Lock()
	l.bodies = append(l.bodies, strings.TrimSpace(string(data)))
	l.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func TestInfluxSink_RecordRun(t *testing.T) {
	rec := &lineRecorder{}
	srv := httptest.NewServer(http.HandlerFunc(rec.handler))
	defer srv.Close()

	sink := NewInfluxSink(srv.URL, "token", "org", "bucket")
	defer sink.Close()
	now := time.Now()
	ev := coremetrics.RunEvent{
		RunID:      "run-1",
		Modified:   true,
		Gamma:      0.9,
		Epsilon:    0.1,
		Iterations: 5,
		Sweeps:     210,
		Duration:   1500 * time.Millisecond,
		Converged:  true,
		Time:       now,
	}
	if err := sink.RecordRun(ev); err != nil {
		t.Fatalf("record error: %v", err)
	}
	p := write.NewPointWithMeasurement("solver_run").
		AddTag("run_id", "run-1").
		AddTag("modified", "true").
		AddTag("converged", "true").
		AddField("iterations", 5).
		AddField("sweeps", 210).
		AddField("duration_ms", int64(1500)).
		AddField("gamma", 0.9).
		AddField("epsilon", 0.1).
		SetTime(now)
	expected := strings.TrimSpace(write.PointToLineProtocol(p, time.Nanosecond))
	if len(rec.bodies) != 1 || rec.bodies[0] != expected {
		t.Errorf("unexpected bodies: %#v", rec.bodies)
	}
}

func TestInfluxSink_RecordProgress(t *testing.T) {
	rec := &lineRecorder{}
	srv := httptest.NewServer(http.HandlerFunc(rec.handler))
	defer srv.Close()

	sink := NewInfluxSink(srv.URL+"/api/v2/write", "token", "org", "bucket")
	defer sink.Close()
	now := time.Now()
	if err := sink.RecordSweep(coremetrics.SweepEvent{RunID: "r", Iteration: 1, Sweep: 3, Delta: 0.5, Time: now}); err != nil {
		t.Fatalf("record sweep: %v", err)
	}
	if err := sink.RecordImprovement(coremetrics.ImprovementEvent{RunID: "r", Iteration: 1, Changes: 9, Time: now}); err != nil {
		t.Fatalf("record improvement: %v", err)
	}
	sweep := write.NewPointWithMeasurement("solver_sweep").
		AddTag("run_id", "r").
		AddField("iteration", 1).
		AddField("sweep", 3).
		AddField("delta", 0.5).
		SetTime(now)
	improvement := write.NewPointWithMeasurement("solver_improvement").
		AddTag("run_id", "r").
		AddTag("stable", "false").
		AddField("iteration", 1).
		AddField("changes", 9).
		SetTime(now)
	exp1 := strings.TrimSpace(write.PointToLineProtocol(sweep, time.Nanosecond))
	exp2 := strings.TrimSpace(write.PointToLineProtocol(improvement, time.Nanosecond))
	if len(rec.bodies) != 2 || rec.bodies[0] != exp1 || rec.bodies[1] != exp2 {
		t.Errorf("unexpected bodies: %#v", rec.bodies)
	}
}

func TestNewInfluxSinkWithFallback(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			called = true
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
	}))
	defer srv.Close()

	sink := NewInfluxSinkWithFallback(srv.URL+"/api/v2/write", "tok", "org", "bucket")
	if _, ok := sink.(*InfluxSink); ok {
		t.Fatalf("expected NopSink on failing health check")
	}
	if !called {
		t.Fatalf("health endpoint not called")
	}
}
