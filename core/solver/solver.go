package solver

import (
	"context"
	"runtime"
	"time"

	"github.com/kilianp07/carrental/core/logger"
	"github.com/kilianp07/carrental/core/rental"
)

// Phase is a step of the policy iteration state machine.
type Phase int

const (
	PhaseEvaluating Phase = iota
	PhaseImproving
	PhaseConverged
)

func (p Phase) String() string {
	switch p {
	case PhaseEvaluating:
		return "evaluating"
	case PhaseImproving:
		return "improving"
	case PhaseConverged:
		return "converged"
	default:
		return "unknown"
	}
}

// Result is the outcome of a converged run.
type Result struct {
	Policy     *Policy
	Values     *ValueFunction
	Iterations int
	Sweeps     int
	Duration   time.Duration
}

// Solver runs policy iteration for one model.
type Solver struct {
	model    *rental.Model
	cfg      Config
	log      logger.Logger
	pub      Publisher
	observer Observer
}

// Option customises a Solver.
type Option func(*Solver)

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Solver) {
		if l != nil {
			s.log = l
		}
	}
}

// WithPublisher sets the progress event publisher.
func WithPublisher(p Publisher) Option {
	return func(s *Solver) {
		if p != nil {
			s.pub = p
		}
	}
}

// WithObserver sets the observer notified of policies and final values.
func WithObserver(o Observer) Option {
	return func(s *Solver) {
		if o != nil {
			s.observer = o
		}
	}
}

// New validates cfg and builds a solver for m.
func New(m *rental.Model, cfg Config, opts ...Option) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Solver{
		model:    m,
		cfg:      cfg,
		log:      logger.NopLogger{},
		pub:      nopPublisher{},
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Model returns the underlying model.
func (s *Solver) Model() *rental.Model { return s.model }

// Config returns the solver settings.
func (s *Solver) Config() Config { return s.cfg }

// ActionValue is Backup with the solver's discount and reward variant.
func (s *Solver) ActionValue(st rental.State, a int, v *ValueFunction) (float64, error) {
	return Backup(s.model, st, a, v, s.cfg.Gamma, s.cfg.Modified)
}

func (s *Solver) workers() int {
	if s.cfg.Workers > 0 {
		return s.cfg.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// Solve runs policy iteration from the zero policy and zero values until the
// policy is stable. No partial result is returned on error.
func (s *Solver) Solve(ctx context.Context) (*Result, error) {
	start := time.Now()
	n := s.model.Size()
	p := NewPolicy(n)
	v := NewValueFunction(n)

	res := &Result{}
	phase := PhaseEvaluating
	for phase != PhaseConverged {
		switch phase {
		case PhaseEvaluating:
			res.Iterations++
			s.observer.OnPolicy(res.Iterations, p)
			sweeps, err := s.evaluate(ctx, res.Iterations, p, v)
			res.Sweeps += sweeps
			if err != nil {
				return nil, err
			}
			phase = PhaseImproving
		case PhaseImproving:
			stable, changes, err := s.Improve(ctx, p, v)
			if err != nil {
				return nil, err
			}
			s.log.Infof("policy improvement iteration %d, stable=%t", res.Iterations, stable)
			s.pub.Publish(Event{Kind: EventImprovement, Iteration: res.Iterations, Changes: changes, Stable: stable, Time: time.Now()})
			if stable {
				phase = PhaseConverged
			} else {
				phase = PhaseEvaluating
			}
		}
	}
	res.Policy = p
	res.Values = v
	res.Duration = time.Since(start)
	s.observer.OnConverged(p, v)
	s.pub.Publish(Event{Kind: EventConverged, Iteration: res.Iterations, Sweeps: res.Sweeps, Time: time.Now()})
	s.log.Debugw("policy iteration converged", map[string]any{
		"iterations": res.Iterations,
		"sweeps":     res.Sweeps,
		"duration":   res.Duration.String(),
	})
	return res, nil
}
