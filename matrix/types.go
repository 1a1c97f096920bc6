// SPDX-License-Identifier: MIT

// Package matrix: the shared Matrix contract and numeric policy defaults.
package matrix

// DefaultValidateNaNInf toggles strict finite-value validation on Set/Add.
// Inventory data must be finite; a NaN amount signals a broken formula
// upstream and must not silently reach the solver.
const DefaultValidateNaNInf = true

// ZeroSum is the initial value of all accumulations.
const ZeroSum = 0.0

// Matrix represents a two-dimensional mutable array of float64 values.
//
// Complexity notes: Dense implements every method in O(1) except Clone
// (O(r*c)); Sparse implements At/Set in O(1) expected and Clone in O(nnz).
type Matrix interface {
	// Rows returns the number of rows in the matrix.
	Rows() int

	// Cols returns the number of columns in the matrix.
	Cols() int

	// At retrieves the element at position (i, j).
	// Returns ErrOutOfRange if i<0, i>=Rows(), j<0 or j>=Cols().
	At(i, j int) (float64, error)

	// Set assigns the value v at position (i, j).
	// Returns ErrOutOfRange if indices are invalid.
	Set(i, j int, v float64) error

	// Clone returns a deep copy of the matrix.
	Clone() Matrix
}
