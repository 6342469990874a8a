package solver

import (
	"math"

	"github.com/kilianp07/carrental/core/rental"
)

// TransferReward is the immediate reward of moving a cars overnight, given the
// resulting start-of-day state post.
func TransferReward(cfg rental.Config, post rental.State, a int, modified bool) float64 {
	ret := -cfg.MoveCost * math.Abs(float64(a))
	if !modified {
		return ret
	}
	if a > 0 {
		ret += cfg.MoveCost * float64(min(a, cfg.FreeShuttles))
	}
	if post.First > cfg.StorageLimit {
		ret -= cfg.StorageFee
	}
	if post.Second > cfg.StorageLimit {
		ret -= cfg.StorageFee
	}
	return ret
}

// Backup returns the expected discounted return of taking action a in state s
// and following v afterwards. It has no side effects besides warming the
// model's memo tables.
func Backup(m *rental.Model, s rental.State, a int, v *ValueFunction, gamma float64, modified bool) (float64, error) {
	if err := m.ValidateAction(s, a); err != nil {
		return 0, err
	}
	post := m.AfterTransfer(s, a)
	ret := TransferReward(m.Config(), post, a, modified)
	jt, err := m.Transitions(post)
	if err != nil {
		return 0, err
	}
	jt.Each(func(next rental.State, t rental.Transition) {
		ret += t.Reward + t.Prob*gamma*v.At(next)
	})
	return ret, nil
}
