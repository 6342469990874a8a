// Package solver runs exact policy iteration over a rental.Model.
//
// Policy evaluation performs synchronous sweeps: every sweep reads the value
// table produced by the previous one and writes a fresh table that is swapped
// in once the sweep completes. States within a sweep are independent and are
// evaluated concurrently, row by row. Policy improvement follows the same
// pattern and only switches a state's action when another action is strictly
// better.
package solver
