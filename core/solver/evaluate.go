package solver

import (
	"context"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kilianp07/carrental/core/rental"
)

// Evaluate updates v in place to the fixed point of policy p. It returns the
// number of sweeps performed, and a *ConvergenceError when MaxSweeps is
// reached with a delta still above Epsilon.
func (s *Solver) Evaluate(ctx context.Context, p *Policy, v *ValueFunction) (int, error) {
	return s.evaluate(ctx, 0, p, v)
}

func (s *Solver) evaluate(ctx context.Context, iteration int, p *Policy, v *ValueFunction) (int, error) {
	var delta float64
	for sweep := 1; sweep <= s.cfg.MaxSweeps; sweep++ {
		if err := ctx.Err(); err != nil {
			return sweep - 1, err
		}
		next, d, err := s.sweep(ctx, p, v)
		if err != nil {
			return sweep, err
		}
		v.swap(next)
		delta = d
		s.pub.Publish(Event{Kind: EventSweep, Iteration: iteration, Sweep: sweep, Delta: delta, Time: time.Now()})
		if delta <= s.cfg.Epsilon {
			s.log.Infof("policy evaluation converged after %d sweeps", sweep)
			return sweep, nil
		}
		s.log.Debugf("sweep %d: delta %f", sweep, delta)
	}
	return s.cfg.MaxSweeps, &ConvergenceError{Sweeps: s.cfg.MaxSweeps, Delta: delta, Epsilon: s.cfg.Epsilon}
}

// sweep computes a new table from the snapshot v. Rows are evaluated
// concurrently; each row writes only its own slice of next.
func (s *Solver) sweep(ctx context.Context, p *Policy, v *ValueFunction) (*ValueFunction, float64, error) {
	n := v.Size()
	next := NewValueFunction(n)
	rowDelta := make([]float64, n)

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(s.workers())
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			for j := 0; j < n; j++ {
				st := rental.State{First: i, Second: j}
				x, err := s.ActionValue(st, p.At(st), v)
				if err != nil {
					return err
				}
				next.Set(st, x)
				rowDelta[i] = math.Max(rowDelta[i], math.Abs(x-v.At(st)))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	var delta float64
	for _, d := range rowDelta {
		delta = math.Max(delta, d)
	}
	return next, delta, nil
}
