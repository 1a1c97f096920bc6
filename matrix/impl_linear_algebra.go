// SPDX-License-Identifier: MIT
// Package matrix provides the linear-algebra kernels used by the result engine:
// matrix-vector products, matrix products and column scaling. All functions
// perform strict fail-fast validation and return clear errors on dimension
// mismatches.
//
// Purpose:
//   - The left operand is always a Sparse inventory or characterization
//     matrix; results are always a fresh *Dense or slice.
//   - Stored cells are walked column by column, rows ascending, so every
//     accumulation happens in a fixed order.
//
// Notes:
//   - All kernels use the central validators and wrap errors via matrixErrorf.

package matrix

import (
	"fmt"
)

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opMul          = "Mul"
	opMatVec       = "MatVec"
	opScaleColumns = "ScaleColumns"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil to avoid creating a non-nil wrapper around a nil cause.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// MatVec computes y = m * x for a column vector x: g = B·s, h = C·g.
//
// Contract: m non-nil; x non-nil; len(x) == m.Cols().
// Determinism: y[i] accumulates its terms in ascending column order.
// Complexity: O(nnz); Space O(r) for y.
func MatVec(m *Sparse, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(x, m.Cols()); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	y := make([]float64, m.r)
	for j := 0; j < m.c; j++ {
		xj := x[j]
		if xj == 0 {
			continue
		}
		m.DoColumn(j, func(i int, v float64) { y[i] += v * xj })
	}

	return y, nil
}

// Mul performs C = A × B into a fresh Dense, with A sparse and B dense
// (characterization × flow results, interventions × scaled inverse).
// Implementation:
//   - Stage 1: validate A,B (not nil) and inner dimensions (A.Cols == B.Rows).
//   - Stage 2: for each stored A[i,k] add A[i,k]*B[k,:] to C[i,:], columns
//     of A ascending.
//
// Errors:
//   - ErrNilMatrix (nil input), ErrDimensionMismatch (inner mismatch).
//
// Complexity:
//   - Time O(nnz(A)*c), Space O(r*c).
//
// Notes:
//   - Zero-sized results are legal (e.g. no impact categories).
func Mul(a *Sparse, b *Dense) (*Dense, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	bCols := b.c
	res, err := NewZeros(a.r, bCols)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	for k := 0; k < a.c; k++ {
		rowB := k * bCols
		a.DoColumn(k, func(i int, av float64) {
			rowR := i * bCols
			for j := 0; j < bCols; j++ {
				res.data[rowR+j] += av * b.data[rowB+j]
			}
		})
	}

	return res, nil
}

// ScaleColumns returns M·diag(s) as a fresh Dense: out[i,j] = m[i,j]*s[j].
// This is the "direct contribution" kernel: each process-product column of
// the intervention matrix scaled by its scaling factor.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch (len(s) != m.Cols()).
// Complexity: O(nnz + r*c) for the dense output.
func ScaleColumns(m *Sparse, s []float64) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opScaleColumns, err)
	}
	if err := ValidateVecLen(s, m.Cols()); err != nil {
		return nil, matrixErrorf(opScaleColumns, err)
	}
	cols := m.c
	res, err := NewZeros(m.r, cols)
	if err != nil {
		return nil, matrixErrorf(opScaleColumns, err)
	}
	for j := 0; j < cols; j++ {
		sj := s[j]
		m.DoColumn(j, func(i int, v float64) { res.data[i*cols+j] = v * sj })
	}

	return res, nil
}
