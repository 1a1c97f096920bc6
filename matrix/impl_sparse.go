// SPDX-License-Identifier: MIT

// Package matrix - Sparse storage (column-major hash) with accumulation.
//
// Purpose:
//   - Hold technology, intervention and characterization matrices while they
//     are assembled from exchange records: O(nnz) memory instead of O(r*c).
//   - Add(i, j, v) accumulates so that parallel links into the same cell sum up.
//   - Deterministic traversal: every visitor walks columns ascending and, within
//     a column, rows ascending, so floating-point sums are reproducible.
//
// Complexity quicksheet:
//   - At/Set/Add: O(1) expected; Do/Triplets: O(nnz log nnz_col); Clone: O(nnz).

package matrix

import (
	"fmt"
	"math"
	"sort"
)

// sparseErrorf mirrors denseErrorf for the Sparse surface.
func sparseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Sparse.%s(%d,%d): %w", method, row, col, err)
}

// Sparse is a column-major hash matrix. Absent cells are zero.
type Sparse struct {
	r, c int
	cols []map[int]float64 // cols[j][i] = a(i,j); nil map for empty columns
	nnz  int
}

var _ Matrix = (*Sparse)(nil)

// NewSparse creates an empty rows×cols sparse matrix. Zero dimensions are
// legal (an inventory without elementary flows has a 0×n intervention matrix).
// Errors: ErrInvalidDimensions for negative dimensions.
func NewSparse(rows, cols int) (*Sparse, error) {
	if rows < 0 || cols < 0 {
		return nil, ErrInvalidDimensions
	}

	return &Sparse{r: rows, c: cols, cols: make([]map[int]float64, cols)}, nil
}

// Rows returns the row count.
func (s *Sparse) Rows() int { return s.r }

// Cols returns the column count.
func (s *Sparse) Cols() int { return s.c }

// NonZeros returns the number of stored cells.
func (s *Sparse) NonZeros() int { return s.nnz }

func (s *Sparse) check(row, col int) error {
	if row < 0 || row >= s.r || col < 0 || col >= s.c {
		return ErrOutOfRange
	}

	return nil
}

// At returns a(row, col); absent cells read as zero.
func (s *Sparse) At(row, col int) (float64, error) {
	if err := s.check(row, col); err != nil {
		return 0, sparseErrorf(ctxAt, row, col, err)
	}

	return s.cols[col][row], nil
}

// Set overwrites a(row, col). Setting zero removes the cell.
func (s *Sparse) Set(row, col int, v float64) error {
	if err := s.check(row, col); err != nil {
		return sparseErrorf(ctxSet, row, col, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return sparseErrorf(ctxSet, row, col, ErrNaNInf)
	}
	s.store(row, col, v)

	return nil
}

// Add accumulates v into a(row, col).
// MAIN DESCRIPTION:
//   - The builder's only write primitive: duplicate links and repeated
//     exchanges of the same flow sum into one cell instead of overwriting.
//
// Behavior highlights:
//   - A cell that accumulates to exactly zero is removed.
//   - Non-finite inputs or sums are rejected with ErrNaNInf; the cell is untouched.
//
// Complexity:
//   - Time O(1) expected.
func (s *Sparse) Add(row, col int, v float64) error {
	if err := s.check(row, col); err != nil {
		return sparseErrorf(ctxAdd, row, col, err)
	}
	nv := s.cols[col][row] + v
	if math.IsNaN(nv) || math.IsInf(nv, 0) {
		return sparseErrorf(ctxAdd, row, col, ErrNaNInf)
	}
	s.store(row, col, nv)

	return nil
}

func (s *Sparse) store(row, col int, v float64) {
	column := s.cols[col]
	_, had := column[row]
	if v == 0 {
		if had {
			delete(column, row)
			s.nnz--
		}
		return
	}
	if column == nil {
		column = make(map[int]float64, 4)
		s.cols[col] = column
	}
	column[row] = v
	if !had {
		s.nnz++
	}
}

// Clone returns a deep copy.
func (s *Sparse) Clone() Matrix { return s.CloneSparse() }

// CloneSparse is Clone without the interface conversion.
func (s *Sparse) CloneSparse() *Sparse {
	out := &Sparse{r: s.r, c: s.c, cols: make([]map[int]float64, s.c), nnz: s.nnz}
	for j, column := range s.cols {
		if len(column) == 0 {
			continue
		}
		cp := make(map[int]float64, len(column))
		for i, v := range column {
			cp[i] = v
		}
		out.cols[j] = cp
	}

	return out
}

// sortedRows returns the stored row indices of column j, ascending.
func (s *Sparse) sortedRows(j int) []int {
	column := s.cols[j]
	rows := make([]int, 0, len(column))
	for i := range column {
		rows = append(rows, i)
	}
	sort.Ints(rows)

	return rows
}

// DoColumn visits the stored cells of column j in ascending row order.
// Out-of-range columns visit nothing.
func (s *Sparse) DoColumn(j int, f func(i int, v float64)) {
	if j < 0 || j >= s.c {
		return
	}
	column := s.cols[j]
	for _, i := range s.sortedRows(j) {
		f(i, column[i])
	}
}

// Do visits every stored cell, columns ascending then rows ascending.
// Stops early when f returns false.
func (s *Sparse) Do(f func(i, j int, v float64) bool) {
	for j := 0; j < s.c; j++ {
		column := s.cols[j]
		for _, i := range s.sortedRows(j) {
			if !f(i, j, column[i]) {
				return
			}
		}
	}
}

// Column returns column j as a dense vector of length Rows().
func (s *Sparse) Column(j int) ([]float64, error) {
	if j < 0 || j >= s.c {
		return nil, sparseErrorf(ctxCol, 0, j, ErrOutOfRange)
	}
	out := make([]float64, s.r)
	for i, v := range s.cols[j] {
		out[i] = v
	}

	return out, nil
}

// Diagonal returns a(i,i) for i < min(Rows, Cols).
func (s *Sparse) Diagonal() []float64 {
	n := min(s.r, s.c)
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = s.cols[i][i]
	}

	return out
}

// ToDense materializes the matrix. Zero-sized shapes are legal.
// Complexity: O(r*c + nnz).
func (s *Sparse) ToDense() *Dense {
	d, _ := NewZeros(s.r, s.c) // shape is non-negative by construction
	for j, column := range s.cols {
		for i, v := range column {
			d.data[i*s.c+j] = v
		}
	}

	return d
}
