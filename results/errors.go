// SPDX-License-Identifier: MIT

package results

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidState indicates an operation called in the wrong engine state.
	ErrInvalidState = errors.New("results: invalid engine state")

	// ErrEmptyInventory indicates a nil or empty inventory.
	ErrEmptyInventory = errors.New("results: empty inventory")

	// ErrNilSolver indicates a missing solver.
	ErrNilSolver = errors.New("results: nil solver")

	// ErrDimensionMismatch indicates a demand vector or characterization
	// matrix that does not fit the inventory.
	ErrDimensionMismatch = errors.New("results: dimension mismatch")
)

const (
	opNewEngine = "NewEngine"
	opSolve     = "Solve"
	opDecompose = "Decompose"
)

func resultsErrorf(tag string, err error) error {
	return fmt.Errorf("results.%s: %w", tag, err)
}
