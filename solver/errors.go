// SPDX-License-Identifier: MIT

package solver

import (
	"errors"
	"fmt"
)

var (
	// ErrSingular indicates a singular or numerically singular matrix.
	ErrSingular = errors.New("solver: matrix is singular")

	// ErrNoConvergence indicates that an iterative solver hit its iteration limit.
	ErrNoConvergence = errors.New("solver: no convergence")

	// ErrNotSquare indicates a non-square coefficient matrix.
	ErrNotSquare = errors.New("solver: matrix is not square")

	// ErrDimensionMismatch indicates a right-hand side or column outside the matrix.
	ErrDimensionMismatch = errors.New("solver: dimension mismatch")

	// ErrUnknownKind is returned by New and ParseKind for unsupported solvers.
	ErrUnknownKind = errors.New("solver: unknown kind")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("solver: invalid option supplied")
)

const (
	opSolve         = "Solve"
	opInvertColumns = "InvertColumns"
	opInvert        = "Invert"
)

// solverErrorf wraps err with the solver name and operation tag.
func solverErrorf(name, op string, err error) error {
	return fmt.Errorf("%s.%s: %w", name, op, err)
}
