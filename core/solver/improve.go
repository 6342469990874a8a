package solver

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/kilianp07/carrental/core/rental"
)

type stateUpdate struct {
	state     rental.State
	from, to  int
	oldReturn float64
	newReturn float64
}

// Improve makes p greedy with respect to v. A state switches action only
// when another action has a strictly greater return than its current one.
// It reports whether p was already stable and how many states changed.
func (s *Solver) Improve(ctx context.Context, p *Policy, v *ValueFunction) (bool, int, error) {
	n := p.Size()
	rows := make([][]stateUpdate, n)

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(s.workers())
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			for j := 0; j < n; j++ {
				st := rental.State{First: i, Second: j}
				u, changed, err := s.greedy(st, p.At(st), v)
				if err != nil {
					return err
				}
				if changed {
					rows[i] = append(rows[i], u)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return false, 0, err
	}

	changes := 0
	for _, row := range rows {
		for _, u := range row {
			s.log.Infof("updating policy %s: %d:%f -> %d:%f (%f)", u.state, u.from, u.oldReturn, u.to, u.newReturn, u.newReturn-u.oldReturn)
			p.Set(u.state, u.to)
			changes++
		}
	}
	return changes == 0, changes, nil
}

func (s *Solver) greedy(st rental.State, current int, v *ValueFunction) (stateUpdate, bool, error) {
	lo, hi, err := s.model.ActionRange(st)
	if err != nil {
		return stateUpdate{}, false, err
	}
	currentReturn, err := s.ActionValue(st, current, v)
	if err != nil {
		return stateUpdate{}, false, err
	}
	best, bestReturn := current, currentReturn
	for a := lo; a <= hi; a++ {
		if a == current {
			continue
		}
		ret, err := s.ActionValue(st, a, v)
		if err != nil {
			return stateUpdate{}, false, err
		}
		if ret > bestReturn {
			best, bestReturn = a, ret
		}
	}
	if best == current {
		return stateUpdate{}, false, nil
	}
	return stateUpdate{state: st, from: current, to: best, oldReturn: currentReturn, newReturn: bestReturn}, true, nil
}
