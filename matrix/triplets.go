// SPDX-License-Identifier: MIT

// Package matrix - flat triplet form for the solver boundary.
//
// Triplets is the only matrix shape that crosses into a solver: three parallel
// slices (I, J, V) plus the declared dimensions. It holds no hidden state and
// can be handed to an out-of-process or native solver as-is.

package matrix

import (
	"fmt"
	"math"
)

const opTriplets = "Triplets"

// Triplets is a coordinate-form sparse matrix. Entry k is a(I[k], J[k]) = V[k].
// Sparse.Triplets emits entries ordered by column then row, without duplicates;
// consumers must nevertheless accept duplicates and sum them.
type Triplets struct {
	Rows, Cols int
	I, J       []int
	V          []float64
}

// Len returns the number of entries.
func (t *Triplets) Len() int {
	if t == nil {
		return 0
	}

	return len(t.V)
}

// Validate checks slice lengths, index bounds and finiteness.
// Errors: ErrNilMatrix, ErrInvalidDimensions, ErrMalformedTriplets, ErrNaNInf.
func (t *Triplets) Validate() error {
	if t == nil {
		return matrixErrorf(opTriplets, ErrNilMatrix)
	}
	if t.Rows < 0 || t.Cols < 0 {
		return matrixErrorf(opTriplets, ErrInvalidDimensions)
	}
	if len(t.I) != len(t.V) || len(t.J) != len(t.V) {
		return matrixErrorf(opTriplets, ErrMalformedTriplets)
	}
	for k := range t.V {
		if t.I[k] < 0 || t.I[k] >= t.Rows || t.J[k] < 0 || t.J[k] >= t.Cols {
			return matrixErrorf(opTriplets, fmt.Errorf("entry %d (%d,%d): %w", k, t.I[k], t.J[k], ErrMalformedTriplets))
		}
		if math.IsNaN(t.V[k]) || math.IsInf(t.V[k], 0) {
			return matrixErrorf(opTriplets, fmt.Errorf("entry %d (%d,%d): %w", k, t.I[k], t.J[k], ErrNaNInf))
		}
	}

	return nil
}

// Triplets serializes s into coordinate form, columns ascending then rows
// ascending. The result shares nothing with s.
func (s *Sparse) Triplets() *Triplets {
	t := &Triplets{
		Rows: s.r,
		Cols: s.c,
		I:    make([]int, 0, s.nnz),
		J:    make([]int, 0, s.nnz),
		V:    make([]float64, 0, s.nnz),
	}
	s.Do(func(i, j int, v float64) bool {
		t.I = append(t.I, i)
		t.J = append(t.J, j)
		t.V = append(t.V, v)
		return true
	})

	return t
}

// ToSparse deserializes triplets, summing duplicate coordinates.
func (t *Triplets) ToSparse() (*Sparse, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	s, err := NewSparse(t.Rows, t.Cols)
	if err != nil {
		return nil, matrixErrorf(opTriplets, err)
	}
	for k := range t.V {
		if err = s.Add(t.I[k], t.J[k], t.V[k]); err != nil {
			return nil, matrixErrorf(opTriplets, err)
		}
	}

	return s, nil
}

// ToDense materializes triplets into a Dense, summing duplicates.
func (t *Triplets) ToDense() (*Dense, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	d, err := NewZeros(t.Rows, t.Cols)
	if err != nil {
		return nil, matrixErrorf(opTriplets, err)
	}
	for k := range t.V {
		d.data[t.I[k]*t.Cols+t.J[k]] += t.V[k]
	}

	return d, nil
}
