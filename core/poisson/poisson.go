package poisson

import (
	"errors"
	"fmt"
	"sync"

	"gonum.org/v1/gonum/stat/distuv"
)

type key struct {
	n      int
	lambda float64
}

// Cache memoizes Poisson masses keyed by (count, rate). It is safe for
// concurrent use; concurrent misses on the same key compute the same value.
type Cache struct {
	mu     sync.RWMutex
	values map[key]float64
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{values: make(map[key]float64)}
}

// Mass returns P(N=n) for N ~ Poisson(lambda). Negative n yields 0.
func (c *Cache) Mass(n int, lambda float64) float64 {
	if n < 0 {
		return 0
	}
	k := key{n: n, lambda: lambda}
	c.mu.RLock()
	v, ok := c.values[k]
	c.mu.RUnlock()
	if ok {
		return v
	}
	v = distuv.Poisson{Lambda: lambda}.Prob(float64(n))
	c.mu.Lock()
	if existing, ok := c.values[k]; ok {
		v = existing
	} else {
		c.values[k] = v
	}
	c.mu.Unlock()
	return v
}

// Tail returns P(N>=k) computed as 1 minus the cached masses below k.
// Rounding can push the subtraction slightly below zero; the result is
// clamped.
func (c *Cache) Tail(k int, lambda float64) float64 {
	p := 1.0
	for i := 0; i < k; i++ {
		p -= c.Mass(i, lambda)
	}
	return ClampProbability(p)
}

// Len reports the number of memoized masses.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.values)
}

// Reset drops every memoized value.
func (c *Cache) Reset() {
	c.mu.Lock()
	c.values = make(map[key]float64)
	c.mu.Unlock()
}

// ClampTolerance is the largest negative rounding error ClampProbability
// absorbs.
const ClampTolerance = 1e-9

// ErrNegativeProbability reports a probability below -ClampTolerance.
var ErrNegativeProbability = errors.New("negative probability")

// ClampProbability maps negative values produced by floating point
// cancellation to zero. Anything below -ClampTolerance is an accounting
// error and panics with ErrNegativeProbability.
func ClampProbability(p float64) float64 {
	if p < -ClampTolerance {
		panic(fmt.Errorf("%w: %g", ErrNegativeProbability, p))
	}
	if p < 0 {
		return 0
	}
	return p
}
