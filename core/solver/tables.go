package solver

import "github.com/kilianp07/carrental/core/rental"

// ValueFunction maps every state of a square grid to its estimated return.
// At and Set panic with rental.ErrInvalidState for off-grid states.
type ValueFunction struct {
	size   int
	values []float64
}

// NewValueFunction returns an all-zero table for size counts per location.
func NewValueFunction(size int) *ValueFunction {
	return &ValueFunction{size: size, values: make([]float64, size*size)}
}

func (v *ValueFunction) Size() int { return v.size }

func (v *ValueFunction) At(s rental.State) float64 { return v.values[rental.Index(s, v.size)] }

func (v *ValueFunction) Set(s rental.State, x float64) { v.values[rental.Index(s, v.size)] = x }

// Clone returns an independent copy.
func (v *ValueFunction) Clone() *ValueFunction {
	c := &ValueFunction{size: v.size, values: make([]float64, len(v.values))}
	copy(c.values, v.values)
	return c
}

// Rows returns a copy indexed by [first][second].
func (v *ValueFunction) Rows() [][]float64 {
	rows := make([][]float64, v.size)
	for i := range rows {
		rows[i] = append([]float64(nil), v.values[i*v.size:(i+1)*v.size]...)
	}
	return rows
}

func (v *ValueFunction) swap(next *ValueFunction) { v.values = next.values }

// Policy maps every state to the number of cars moved overnight. At and Set
// panic with rental.ErrInvalidState for off-grid states.
type Policy struct {
	size    int
	actions []int
}

// NewPolicy returns the policy that never moves a car.
func NewPolicy(size int) *Policy {
	return &Policy{size: size, actions: make([]int, size*size)}
}

func (p *Policy) Size() int { return p.size }

func (p *Policy) At(s rental.State) int { return p.actions[rental.Index(s, p.size)] }

func (p *Policy) Set(s rental.State, a int) { p.actions[rental.Index(s, p.size)] = a }

// Clone returns an independent copy.
func (p *Policy) Clone() *Policy {
	c := &Policy{size: p.size, actions: make([]int, len(p.actions))}
	copy(c.actions, p.actions)
	return c
}

// Rows returns a copy indexed by [first][second].
func (p *Policy) Rows() [][]int {
	rows := make([][]int, p.size)
	for i := range rows {
		rows[i] = append([]int(nil), p.actions[i*p.size:(i+1)*p.size]...)
	}
	return rows
}

// Equal reports whether both policies pick the same action everywhere.
func (p *Policy) Equal(o *Policy) bool {
	if p.size != o.size {
		return false
	}
	for i := range p.actions {
		if p.actions[i] != o.actions[i] {
			return false
		}
	}
	return true
}
