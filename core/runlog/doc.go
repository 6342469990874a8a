// Package runlog persists finished solver runs. Each RunRecord carries the
// problem and solver parameters together with the resulting policy and
// value grids. Stores are append-only and can be queried by time window and
// reward variant.
package runlog
