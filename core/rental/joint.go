package rental

// Transition aggregates every outcome leading to one next state. Reward is
// already weighted by probability.
type Transition struct {
	Prob   float64 `json:"prob"`
	Reward float64 `json:"reward"`
}

// JointTransitions is a dense next-state -> Transition table.
type JointTransitions struct {
	size  int
	cells []Transition
}

// At returns the transition into next. It panics when next is off the grid.
func (j *JointTransitions) At(next State) Transition {
	return j.cells[Index(next, j.size)]
}

// Each calls fn for every next state in row-major order.
func (j *JointTransitions) Each(fn func(next State, t Transition)) {
	for i, t := range j.cells {
		fn(State{First: i / j.size, Second: i % j.size}, t)
	}
}

// TotalProb sums the probabilities of all next states.
func (j *JointTransitions) TotalProb() float64 {
	var sum float64
	for _, t := range j.cells {
		sum += t.Prob
	}
	return sum
}

// ExpectedReward is the expected rental income of the day.
func (j *JointTransitions) ExpectedReward() float64 {
	var sum float64
	for _, t := range j.cells {
		sum += t.Reward
	}
	return sum
}

// Transitions returns the day transition table for the start-of-day state
// start, i.e. the state after the overnight transfer. Results are memoized.
func (m *Model) Transitions(start State) (*JointTransitions, error) {
	if err := m.checkState(start); err != nil {
		return nil, err
	}
	m.mu.RLock()
	jt, ok := m.joint[start]
	m.mu.RUnlock()
	if ok {
		return jt, nil
	}
	jt, err := m.computeTransitions(start)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	if existing, ok := m.joint[start]; ok {
		jt = existing
	} else {
		m.joint[start] = jt
	}
	m.mu.Unlock()
	return jt, nil
}

func (m *Model) computeTransitions(start State) (*JointTransitions, error) {
	n := m.Size()
	first := make([][]Outcome, n)
	second := make([][]Outcome, n)
	for end := 0; end < n; end++ {
		var err error
		if first[end], err = m.LocationOutcomes(start.First, end, m.cfg.First); err != nil {
			return nil, err
		}
		if second[end], err = m.LocationOutcomes(start.Second, end, m.cfg.Second); err != nil {
			return nil, err
		}
	}
	jt := &JointTransitions{size: n, cells: make([]Transition, n*n)}
	for l1 := 0; l1 < n; l1++ {
		for l2 := 0; l2 < n; l2++ {
			var t Transition
			for _, o1 := range first[l1] {
				for _, o2 := range second[l2] {
					p := o1.Prob * o2.Prob
					t.Prob += p
					t.Reward += p * (o1.Reward + o2.Reward)
				}
			}
			jt.cells[l1*n+l2] = t
		}
	}
	return jt, nil
}
