// SPDX-License-Identifier: MIT
// Package matrix_test contains unit tests for the matrix validators.
package matrix_test

import (
	"errors"
	"testing"

	"github.com/katalvlaran/lcamatrix/matrix"
	"github.com/stretchr/testify/require"
)

// TestValidateNotNil covers untyped nil, typed nil pointers and live matrices.
func TestValidateNotNil(t *testing.T) {
	t.Parallel()

	var nilDense *matrix.Dense
	var nilSparse *matrix.Sparse
	live, err := matrix.NewSparse(1, 1)
	require.NoError(t, err)

	tests := []struct {
		name    string
		m       matrix.Matrix
		wantErr error
	}{
		{"untyped nil", nil, matrix.ErrNilMatrix},
		{"typed nil dense", nilDense, matrix.ErrNilMatrix},
		{"typed nil sparse", nilSparse, matrix.ErrNilMatrix},
		{"sparse 1x1", live, nil},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := matrix.ValidateNotNil(tc.m)
			if tc.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.Truef(t, errors.Is(err, tc.wantErr),
				"expected errors.Is(%v, %v)", err, tc.wantErr)
		})
	}
}

// TestValidateVecLen checks nil handling and length matching.
func TestValidateVecLen(t *testing.T) {
	t.Parallel()

	require.NoError(t, matrix.ValidateVecLen(nil, 0))
	require.NoError(t, matrix.ValidateVecLen([]float64{1, 2}, 2))
	require.ErrorIs(t, matrix.ValidateVecLen(nil, 2), matrix.ErrNilMatrix)
	require.ErrorIs(t, matrix.ValidateVecLen([]float64{1}, 2), matrix.ErrDimensionMismatch)
}

// TestValidateMulCompatible checks the inner dimension rule.
func TestValidateMulCompatible(t *testing.T) {
	t.Parallel()

	a, err := matrix.NewSparse(2, 3)
	require.NoError(t, err)
	b, err := matrix.NewZeros(3, 0)
	require.NoError(t, err)
	c, err := matrix.NewZeros(2, 2)
	require.NoError(t, err)

	require.NoError(t, matrix.ValidateMulCompatible(a, b))
	require.ErrorIs(t, matrix.ValidateMulCompatible(a, c), matrix.ErrDimensionMismatch)
	require.ErrorIs(t, matrix.ValidateMulCompatible(nil, b), matrix.ErrNilMatrix)
	require.ErrorIs(t, matrix.ValidateMulCompatible(a, nil), matrix.ErrNilMatrix)
}
