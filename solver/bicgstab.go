// SPDX-License-Identifier: MIT

// Package solver - BiCGStab iterative solver.
//
// MAIN DESCRIPTION:
//   - Stabilized bi-conjugate gradient method on a compressed-row copy of A.
//   - Rows are scaled by 1/A[i,i] (Jacobi) when every diagonal entry is
//     non-zero; technology matrices carry reference amounts on the diagonal.
//
// Behavior highlights:
//   - A zero right-hand side returns the zero vector without iterating.
//   - Breakdown (rho, <rhat,v> or <t,t> vanishing before convergence)
//     restarts from the current iterate with the true residual as shadow
//     vector. Only a breakdown right after a restart is ErrSingular.
//
// Complexity:
//   - Time O(k·nnz) for k iterations, Space O(n + nnz).

package solver

import (
	"fmt"
	"math"

	"github.com/RoaringBitmap/roaring"

	"github.com/katalvlaran/lcamatrix/matrix"
)

const nameBiCGStab = "BiCGStab"

// BiCGStab is an iterative solver for large sparse systems.
type BiCGStab struct {
	opts Options
}

var _ Solver = (*BiCGStab)(nil)

// NewBiCGStab returns a BiCGStab solver with default options.
func NewBiCGStab() *BiCGStab { return &BiCGStab{opts: DefaultOptions()} }

// csr is a compressed sparse row matrix scaled by rowScale.
type csr struct {
	n        int
	rowPtr   []int
	colIdx   []int
	val      []float64
	rowScale []float64 // 1/A[i,i], or nil when unscaled
}

// newCSR sums duplicate coordinates while converting.
func newCSR(a *matrix.Triplets) (*csr, error) {
	n, err := checkSquare(a)
	if err != nil {
		return nil, err
	}
	sp, err := a.ToSparse()
	if err != nil {
		return nil, err
	}
	rows := make([][]int, n)
	vals := make([][]float64, n)
	diag := make([]float64, n)
	sp.Do(func(i, j int, v float64) bool {
		rows[i] = append(rows[i], j)
		vals[i] = append(vals[i], v)
		if i == j {
			diag[i] = v
		}
		return true
	})

	m := &csr{n: n, rowPtr: make([]int, n+1)}
	scaled := true
	for _, d := range diag {
		if d == 0 {
			scaled = false
			break
		}
	}
	if scaled {
		m.rowScale = make([]float64, n)
		for i, d := range diag {
			m.rowScale[i] = 1 / d
		}
	}
	for i := 0; i < n; i++ {
		for k, j := range rows[i] {
			v := vals[i][k]
			if scaled {
				v *= m.rowScale[i]
			}
			m.colIdx = append(m.colIdx, j)
			m.val = append(m.val, v)
		}
		m.rowPtr[i+1] = len(m.colIdx)
	}

	return m, nil
}

// mulVec writes (scaled A)·x into y.
func (m *csr) mulVec(y, x []float64) {
	for i := 0; i < m.n; i++ {
		acc := 0.0
		for k := m.rowPtr[i]; k < m.rowPtr[i+1]; k++ {
			acc += m.val[k] * x[m.colIdx[k]]
		}
		y[i] = acc
	}
}

func dot(a, b []float64) float64 {
	s := 0.0
	for i := range a {
		s += a[i] * b[i]
	}

	return s
}

func norm(a []float64) float64 { return math.Sqrt(dot(a, a)) }

// breakdownEps is the relative size below which an inner product counts
// as vanished.
const breakdownEps = 1e-14

// vanishes reports whether d is negligible against |a|·|b|.
func vanishes(d float64, a, b []float64) bool {
	return math.Abs(d) <= breakdownEps*norm(a)*norm(b)
}

// bicgState is one BiCGStab run over a scaled system.
type bicgState struct {
	m                      *csr
	b, x, r, rhat, p, v, t []float64
	sv                     []float64
	rho, alpha, omega      float64
}

// restart recomputes the true residual at the current iterate and takes it
// as the new shadow residual, so rho = |r|² again.
func (st *bicgState) restart() {
	st.m.mulVec(st.t, st.x)
	for i := range st.r {
		st.r[i] = st.b[i] - st.t[i]
		st.p[i], st.v[i] = 0, 0
	}
	copy(st.rhat, st.r)
	st.rho, st.alpha, st.omega = 1, 1, 1
}

// solve runs BiCGStab for one right-hand side. A breakdown restarts the
// iteration from the current iterate; a breakdown right after a restart
// means A is singular on the residual and is reported as ErrSingular.
func (s *BiCGStab) solve(m *csr, b []float64) ([]float64, error) {
	n := m.n
	st := &bicgState{
		m: m, b: make([]float64, n), x: make([]float64, n), r: make([]float64, n),
		rhat: make([]float64, n), p: make([]float64, n), v: make([]float64, n),
		t: make([]float64, n), sv: make([]float64, n),
	}
	copy(st.b, b)
	if m.rowScale != nil {
		for i := range st.b {
			st.b[i] *= m.rowScale[i]
		}
	}
	bnorm := norm(st.b)
	if bnorm == 0 {
		return st.x, nil
	}
	st.restart()
	fresh := true
	tol := s.opts.Tolerance

	for k := 0; k < s.opts.MaxIterations; k++ {
		x, r, p, v, t, sv, rhat := st.x, st.r, st.p, st.v, st.t, st.sv, st.rhat
		breakdown := func(what string) error {
			if fresh {
				return fmt.Errorf("%w: breakdown (%s) at iteration %d", ErrSingular, what, k)
			}
			st.restart()
			fresh = true
			return nil
		}

		rhoNew := dot(rhat, r)
		if vanishes(rhoNew, rhat, r) {
			if err := breakdown("rho"); err != nil {
				return nil, err
			}
			if norm(st.r)/bnorm < tol {
				return st.x, nil
			}
			continue
		}
		beta := (rhoNew / st.rho) * (st.alpha / st.omega)
		for i := range p {
			p[i] = r[i] + beta*(p[i]-st.omega*v[i])
		}
		m.mulVec(v, p)
		den := dot(rhat, v)
		if vanishes(den, rhat, v) {
			if err := breakdown("rhat·v"); err != nil {
				return nil, err
			}
			continue
		}
		st.alpha = rhoNew / den
		for i := range sv {
			sv[i] = r[i] - st.alpha*v[i]
		}
		if norm(sv)/bnorm < tol {
			for i := range x {
				x[i] += st.alpha * p[i]
			}
			return x, nil
		}
		m.mulVec(t, sv)
		tt := dot(t, t)
		if tt == 0 {
			if err := breakdown("t·t"); err != nil {
				return nil, err
			}
			continue
		}
		st.omega = dot(t, sv) / tt
		for i := range x {
			x[i] += st.alpha*p[i] + st.omega*sv[i]
			r[i] = sv[i] - st.omega*t[i]
		}
		if norm(r)/bnorm < tol {
			return x, nil
		}
		st.rho = rhoNew
		fresh = false
		if st.omega == 0 {
			if err := breakdown("omega"); err != nil {
				return nil, err
			}
		}
	}

	return nil, fmt.Errorf("%w: residual above %g after %d iterations", ErrNoConvergence, tol, s.opts.MaxIterations)
}

// Solve returns x with A·x = b.
func (s *BiCGStab) Solve(a *matrix.Triplets, b []float64) ([]float64, error) {
	m, err := newCSR(a)
	if err != nil {
		return nil, solverErrorf(nameBiCGStab, opSolve, err)
	}
	if len(b) != m.n {
		return nil, solverErrorf(nameBiCGStab, opSolve, fmt.Errorf("%w: len(b)=%d, order %d", ErrDimensionMismatch, len(b), m.n))
	}
	x, err := s.solve(m, b)
	if err != nil {
		return nil, solverErrorf(nameBiCGStab, opSolve, err)
	}

	return x, nil
}

// InvertColumns solves A·x = e_j for every j in cols.
func (s *BiCGStab) InvertColumns(a *matrix.Triplets, cols *roaring.Bitmap) (map[int][]float64, error) {
	m, err := newCSR(a)
	if err != nil {
		return nil, solverErrorf(nameBiCGStab, opInvertColumns, err)
	}
	if err = checkColumns(cols, m.n); err != nil {
		return nil, solverErrorf(nameBiCGStab, opInvertColumns, err)
	}
	out := make(map[int][]float64)
	if cols == nil {
		return out, nil
	}
	it := cols.Iterator()
	for it.HasNext() {
		j := int(it.Next())
		if out[j], err = s.solve(m, unit(m.n, j)); err != nil {
			return nil, solverErrorf(nameBiCGStab, opInvertColumns, err)
		}
	}

	return out, nil
}

// Invert returns A⁻¹ column by column.
func (s *BiCGStab) Invert(a *matrix.Triplets) (*matrix.Dense, error) {
	m, err := newCSR(a)
	if err != nil {
		return nil, solverErrorf(nameBiCGStab, opInvert, err)
	}
	inv, err := matrix.NewZeros(m.n, m.n)
	if err != nil {
		return nil, solverErrorf(nameBiCGStab, opInvert, err)
	}
	for j := 0; j < m.n; j++ {
		col, err := s.solve(m, unit(m.n, j))
		if err != nil {
			return nil, solverErrorf(nameBiCGStab, opInvert, err)
		}
		if err = inv.SetCol(j, col); err != nil {
			return nil, solverErrorf(nameBiCGStab, opInvert, err)
		}
	}

	return inv, nil
}
