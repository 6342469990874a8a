package rental

import (
	"fmt"
	"sync"

	"github.com/kilianp07/carrental/core/poisson"
)

// State is the number of cars at each location at the end of a day.
type State struct {
	First  int `json:"first"`
	Second int `json:"second"`
}

func (s State) String() string { return fmt.Sprintf("(%d,%d)", s.First, s.Second) }

// Model evaluates transition probabilities for a problem instance. Joint
// transitions are memoized per start-of-day state.
type Model struct {
	cfg   Config
	cache *poisson.Cache

	mu    sync.RWMutex
	joint map[State]*JointTransitions
}

// NewModel validates cfg and returns a model. A nil cache is replaced by a
// fresh one.
func NewModel(cfg Config, cache *poisson.Cache) (*Model, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cache == nil {
		cache = poisson.NewCache()
	}
	return &Model{cfg: cfg, cache: cache, joint: make(map[State]*JointTransitions)}, nil
}

// Config returns the instance parameters.
func (m *Model) Config() Config { return m.cfg }

// Cache returns the Poisson cache backing the model.
func (m *Model) Cache() *poisson.Cache { return m.cache }

// Size is the number of possible counts per location.
func (m *Model) Size() int { return m.cfg.Capacity + 1 }

// Contains reports whether s lies on the state grid.
func (m *Model) Contains(s State) bool {
	return s.First >= 0 && s.First <= m.cfg.Capacity && s.Second >= 0 && s.Second <= m.cfg.Capacity
}

func (m *Model) checkState(s State) error {
	if !m.Contains(s) {
		return fmt.Errorf("%w: %s outside [0,%d]", ErrInvalidState, s, m.cfg.Capacity)
	}
	return nil
}

// States lists the grid in row-major order of the first location.
func (m *Model) States() []State {
	n := m.Size()
	out := make([]State, 0, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			out = append(out, State{First: i, Second: j})
		}
	}
	return out
}

// ActionRange returns the inclusive transfer bounds for s. Positive actions
// move cars from the first location to the second.
func (m *Model) ActionRange(s State) (lo, hi int, err error) {
	if err := m.checkState(s); err != nil {
		return 0, 0, err
	}
	return -min(s.Second, m.cfg.MaxMove), min(s.First, m.cfg.MaxMove), nil
}

// ValidateAction checks that a is allowed in s.
func (m *Model) ValidateAction(s State, a int) error {
	lo, hi, err := m.ActionRange(s)
	if err != nil {
		return err
	}
	if a < lo || a > hi {
		return fmt.Errorf("%w: %d not in [%d,%d] for %s", ErrInvalidAction, a, lo, hi, s)
	}
	return nil
}

// AfterTransfer applies the overnight move. Cars beyond capacity are lost.
func (m *Model) AfterTransfer(s State, a int) State {
	return State{
		First:  min(m.cfg.Capacity, s.First-a),
		Second: min(m.cfg.Capacity, s.Second+a),
	}
}

// Index returns the row-major offset of s on a size x size grid. An off-grid
// state is a caller bug and panics with ErrInvalidState.
func Index(s State, size int) int {
	if s.First < 0 || s.First >= size || s.Second < 0 || s.Second >= size {
		panic(fmt.Errorf("%w: %s outside [0,%d)", ErrInvalidState, s, size))
	}
	return s.First*size + s.Second
}
