// Package rental models the two-location car rental problem: the state grid,
// the per-night transfer action space and the exact day transition
// probabilities derived from Poisson rental and return processes.
package rental
