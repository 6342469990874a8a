package rental

import "fmt"

// Outcome is one way a location can go from its start-of-day count to its
// end-of-day count.
type Outcome struct {
	Rented int     `json:"rented"`
	Prob   float64 `json:"prob"`
	Reward float64 `json:"reward"`
}

// LocationOutcomes enumerates the feasible rental counts explaining a
// start -> end transition at one location.
//
// Demand beyond the cars on hand is unobservable, so renting every car takes
// the whole upper tail of the rental distribution. Likewise returns that would
// overflow the lot are lost, so ending at capacity takes the upper tail of the
// return distribution.
func (m *Model) LocationOutcomes(start, end int, rates LocationRates) ([]Outcome, error) {
	capacity := m.cfg.Capacity
	if start < 0 || start > capacity || end < 0 || end > capacity {
		return nil, fmt.Errorf("%w: location transition %d->%d outside [0,%d]", ErrInvalidState, start, end, capacity)
	}
	var out []Outcome
	for rented := 0; rented <= start; rented++ {
		remaining := start - rented
		returned := end - remaining
		if returned < 0 {
			continue
		}
		var rentProb float64
		if remaining == 0 {
			rentProb = m.cache.Tail(rented, rates.Rent)
		} else {
			rentProb = m.cache.Mass(rented, rates.Rent)
		}
		var returnProb float64
		if end == capacity {
			returnProb = m.cache.Tail(returned, rates.Return)
		} else {
			returnProb = m.cache.Mass(returned, rates.Return)
		}
		out = append(out, Outcome{
			Rented: rented,
			Prob:   rentProb * returnProb,
			Reward: m.cfg.RentalReward * float64(rented),
		})
	}
	return out, nil
}
