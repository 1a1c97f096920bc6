// SPDX-License-Identifier: MIT

package solver

import (
	"errors"
	"fmt"
	"math"

	"github.com/RoaringBitmap/roaring"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lcamatrix/matrix"
)

const nameLU = "LU"

// LU solves with a dense partial-pivoting LU decomposition (gonum/mat).
type LU struct {
	opts Options
}

var _ Solver = (*LU)(nil)

// NewLU returns an LU solver with default options.
func NewLU() *LU { return &LU{opts: DefaultOptions()} }

// factorize densifies a, factorizes it and checks the condition estimate.
func (s *LU) factorize(a *matrix.Triplets) (*mat.LU, int, error) {
	n, err := checkSquare(a)
	if err != nil || n == 0 {
		return nil, n, err
	}
	d, err := a.ToDense()
	if err != nil {
		return nil, n, err
	}

	var lu mat.LU
	lu.Factorize(d.ToGonum())
	cond := lu.Cond()
	s.opts.Logger.Debug().Int("order", n).Float64("cond", cond).Msg("lu factorized")
	if math.IsInf(cond, 0) || math.IsNaN(cond) || cond > s.opts.MaxCondition {
		return nil, n, fmt.Errorf("%w: condition number %g", ErrSingular, cond)
	}

	return &lu, n, nil
}

// solveWith solves one right-hand side with existing factors.
func solveWith(lu *mat.LU, n int, b []float64) ([]float64, error) {
	rhs := make([]float64, n)
	copy(rhs, b)
	var x mat.VecDense
	if err := lu.SolveVecTo(&x, false, mat.NewVecDense(n, rhs)); err != nil {
		var cond mat.Condition
		if errors.As(err, &cond) {
			return nil, fmt.Errorf("%w: %v", ErrSingular, err)
		}
		return nil, err
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = x.AtVec(i)
	}

	return out, nil
}

// Solve returns x with A·x = b.
func (s *LU) Solve(a *matrix.Triplets, b []float64) ([]float64, error) {
	lu, n, err := s.factorize(a)
	if err != nil {
		return nil, solverErrorf(nameLU, opSolve, err)
	}
	if len(b) != n {
		return nil, solverErrorf(nameLU, opSolve, fmt.Errorf("%w: len(b)=%d, order %d", ErrDimensionMismatch, len(b), n))
	}
	if n == 0 {
		return []float64{}, nil
	}
	x, err := solveWith(lu, n, b)
	if err != nil {
		return nil, solverErrorf(nameLU, opSolve, err)
	}

	return x, nil
}

// InvertColumns solves A·x = e_j for every j in cols with one factorization.
func (s *LU) InvertColumns(a *matrix.Triplets, cols *roaring.Bitmap) (map[int][]float64, error) {
	lu, n, err := s.factorize(a)
	if err != nil {
		return nil, solverErrorf(nameLU, opInvertColumns, err)
	}
	if err = checkColumns(cols, n); err != nil {
		return nil, solverErrorf(nameLU, opInvertColumns, err)
	}
	out := make(map[int][]float64)
	if cols == nil {
		return out, nil
	}
	it := cols.Iterator()
	for it.HasNext() {
		j := int(it.Next())
		if out[j], err = solveWith(lu, n, unit(n, j)); err != nil {
			return nil, solverErrorf(nameLU, opInvertColumns, err)
		}
	}

	return out, nil
}

// Invert returns A⁻¹ as a Dense.
func (s *LU) Invert(a *matrix.Triplets) (*matrix.Dense, error) {
	lu, n, err := s.factorize(a)
	if err != nil {
		return nil, solverErrorf(nameLU, opInvert, err)
	}
	inv, err := matrix.NewZeros(n, n)
	if err != nil {
		return nil, solverErrorf(nameLU, opInvert, err)
	}
	for j := 0; j < n; j++ {
		col, err := solveWith(lu, n, unit(n, j))
		if err != nil {
			return nil, solverErrorf(nameLU, opInvert, err)
		}
		if err = inv.SetCol(j, col); err != nil {
			return nil, solverErrorf(nameLU, opInvert, err)
		}
	}

	return inv, nil
}
