package solver

import "time"

// EventKind identifies a solver progress event.
type EventKind string

const (
	EventSweep       EventKind = "sweep"
	EventImprovement EventKind = "improvement"
	EventConverged   EventKind = "converged"
)

// Event reports solver progress. Fields that do not apply to Kind are zero.
type Event struct {
	Kind      EventKind
	Iteration int
	Sweep     int
	Sweeps    int
	Delta     float64
	Changes   int
	Stable    bool
	Time      time.Time
}

// Publisher receives progress events. Delivery may be lossy.
type Publisher interface {
	Publish(Event)
}

// Observer is called synchronously from the solver goroutine.
type Observer interface {
	// OnPolicy is called with the policy about to be evaluated.
	OnPolicy(iteration int, p *Policy)
	// OnConverged is called once with the optimal policy and its values.
	OnConverged(p *Policy, v *ValueFunction)
}

type nopObserver struct{}

func (nopObserver) OnPolicy(int, *Policy)                 {}
func (nopObserver) OnConverged(*Policy, *ValueFunction) {}

type nopPublisher struct{}

func (nopPublisher) Publish(Event) {}
