package solver

import (
	"errors"
	"fmt"
)

// ErrNotConverged is wrapped by ConvergenceError.
var ErrNotConverged = errors.New("value function non-convergence")

// ConvergenceError reports a policy evaluation that hit the sweep cap.
type ConvergenceError struct {
	Sweeps  int
	Delta   float64
	Epsilon float64
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("%v: delta %g above %g after %d sweeps", ErrNotConverged, e.Delta, e.Epsilon, e.Sweeps)
}

func (e *ConvergenceError) Unwrap() error { return ErrNotConverged }
