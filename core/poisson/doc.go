// Package poisson provides a memoizing evaluator for the Poisson probability
// mass function and its upper tail. A Cache is owned by whoever builds the
// transition model so that independent solver runs do not share state.
package poisson
