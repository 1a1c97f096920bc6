// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// All kernels return these sentinels (possibly wrapped with an operation tag
// via matrixErrorf); callers match them with errors.Is. No kernel panics on
// user-triggered error conditions.

package matrix

import "errors"

var (
	// ErrOutOfRange indicates that a row or column index is outside valid bounds.
	// Public indexers (At/Set/Add) MUST return this, not panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between operands,
	// e.g. Mul where a.Cols != b.Rows, or a vector of the wrong length.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNaNInf signals a NaN or ±Inf value where finite values are required.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNilMatrix indicates that a nil Matrix (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil receiver")

	// ErrInvalidDimensions indicates negative dimensions.
	ErrInvalidDimensions = errors.New("matrix: invalid dimensions")

	// ErrMalformedTriplets indicates triplet slices of unequal length or
	// entries outside the declared shape.
	ErrMalformedTriplets = errors.New("matrix: malformed triplets")
)
