package metrics

import (
	coremetrics "github.com/kilianp07/carrental/core/metrics"
	"github.com/kilianp07/carrental/core/solver"
	"github.com/kilianp07/carrental/infra/logger"
)

// Subscriber is the subscribing side of an event bus carrying solver events.
type Subscriber interface {
	Subscribe() <-chan solver.Event
	Unsubscribe(<-chan solver.Event)
}

// StartEventCollector subscribes to bus and forwards solver events to sink,
// tagging them with runID. It stops once the bus is closed; the returned
// channel is closed when every received event has been recorded.
func StartEventCollector(bus Subscriber, sink coremetrics.MetricsSink, runID string, log logger.Logger) <-chan struct{} {
	done := make(chan struct{})
	if bus == nil || sink == nil {
		close(done)
		return done
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	sub := bus.Subscribe()
	go func() {
		defer close(done)
		for ev := range sub {
			if err := record(sink, runID, ev); err != nil {
				log.Warnf("record %s event: %v", ev.Kind, err)
			}
		}
	}()
	return done
}

func record(sink coremetrics.MetricsSink, runID string, ev solver.Event) error {
	switch ev.Kind {
	case solver.EventSweep:
		if r, ok := sink.(coremetrics.SweepRecorder); ok {
			return r.RecordSweep(coremetrics.SweepEvent{
				RunID:     runID,
				Iteration: ev.Iteration,
				Sweep:     ev.Sweep,
				Delta:     ev.Delta,
				Time:      ev.Time,
			})
		}
	case solver.EventImprovement:
		if r, ok := sink.(coremetrics.ImprovementRecorder); ok {
			return r.RecordImprovement(coremetrics.ImprovementEvent{
				RunID:     runID,
				Iteration: ev.Iteration,
				Changes:   ev.Changes,
				Stable:    ev.Stable,
				Time:      ev.Time,
			})
		}
	}
	return nil
}
