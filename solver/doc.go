// SPDX-License-Identifier: MIT

// Package solver is the linear-algebra boundary of the engine.
//
// A Solver receives matrices only in flat triplet form (matrix.Triplets) and
// answers three questions about a square technology matrix A:
//
//   - Solve:          x with A·x = b.
//   - InvertColumns:  selected columns of A⁻¹.
//   - Invert:         the full inverse.
//
// Implementations:
//
//   - LU        dense LU decomposition from gonum/mat. Factorizes once per
//     call and reuses the factors for every column; rejects matrices whose
//     condition estimate exceeds MaxCondition with ErrSingular.
//   - BiCGStab  Jacobi-scaled BiCGStab over a CSR copy of A. Never
//     densifies A, so it suits large sparse systems; reports
//     ErrNoConvergence when the residual does not reach Tolerance.
//
// Errors surface unchanged to the caller; nothing here retries or falls
// back to another implementation.
package solver
