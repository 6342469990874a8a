package metrics

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/kilianp07/carrental/core/metrics"
	"github.com/kilianp07/carrental/infra/logger"
)

// InfluxSink writes solver progress to an InfluxDB instance using the official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and
// returns a NopSink if the health check fails.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.MetricsSink {
	sink := NewInfluxSink(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// Close releases the underlying client.
func (s *InfluxSink) Close() { s.client.Close() }

// RecordRun writes the run summary.
func (s *InfluxSink) RecordRun(ev coremetrics.RunEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("solver_run").
		AddTag("run_id", ev.RunID).
		AddTag("modified", strconv.FormatBool(ev.Modified)).
		AddTag("converged", strconv.FormatBool(ev.Converged)).
		AddField("iterations", ev.Iterations).
		AddField("sweeps", ev.Sweeps).
		AddField("duration_ms", ev.Duration.Milliseconds()).
		AddField("gamma", ev.Gamma).
		AddField("epsilon", ev.Epsilon)
	if ev.Error != "" {
		p = p.AddField("error", ev.Error)
	}
	p = p.SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordSweep writes one evaluation sweep.
func (s *InfluxSink) RecordSweep(ev coremetrics.SweepEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("solver_sweep").
		AddTag("run_id", ev.RunID).
		AddField("iteration", ev.Iteration).
		AddField("sweep", ev.Sweep).
		AddField("delta", ev.Delta).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordImprovement writes one policy improvement step.
func (s *InfluxSink) RecordImprovement(ev coremetrics.ImprovementEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("solver_improvement").
		AddTag("run_id", ev.RunID).
		AddTag("stable", strconv.FormatBool(ev.Stable)).
		AddField("iteration", ev.Iteration).
		AddField("changes", ev.Changes).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}
