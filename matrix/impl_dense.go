// SPDX-License-Identifier: MIT

// Package matrix - Dense result storage.
//
// Purpose:
//   - Hold result matrices (direct and upstream flows, impacts by column) in
//     one flat row-major buffer, offset i*cols + j.
//   - Accessors return errors for bad coordinates; nothing here panics.
//   - Writes honour the finite-only policy of DefaultValidateNaNInf.
//
// Complexity quicksheet:
//   - NewZeros: O(r*c); At/Set: O(1); SetCol: O(r); Clone: O(r*c).

package matrix

import (
	"fmt"
	"math"
	"strings"
)

const (
	ctxAt  = "At"
	ctxSet = "Set"
	ctxAdd = "Add"
	ctxCol = "Col"
)

const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// denseErrorf tags err with the Dense method and coordinates.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a row-major matrix. A result matrix is flows × process-products
// or categories × process-products, so either side may be zero.
type Dense struct {
	r, c           int
	data           []float64 // len == r*c
	validateNaNInf bool      // reject NaN/Inf on writes
}

var (
	_ Matrix       = (*Dense)(nil)
	_ fmt.Stringer = (*Dense)(nil)
)

// NewZeros returns a zero-initialized *Dense that may have zero rows or columns.
// Negative dimensions yield ErrInvalidDimensions.
// Complexity: O(r*c).
func NewZeros(rows, cols int) (*Dense, error) {
	if rows < 0 || cols < 0 {
		return nil, ErrInvalidDimensions
	}

	return &Dense{
		r:              rows,
		c:              cols,
		data:           make([]float64, rows*cols),
		validateNaNInf: DefaultValidateNaNInf,
	}, nil
}

// Rows returns the row count.
func (m *Dense) Rows() int { return m.r }

// Cols returns the column count.
func (m *Dense) Cols() int { return m.c }

func (m *Dense) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, ErrOutOfRange
	}

	return row*m.c + col, nil
}

// At returns m[row, col] or ErrOutOfRange.
func (m *Dense) At(row, col int) (float64, error) {
	off, err := m.indexOf(row, col)
	if err != nil {
		return 0, denseErrorf(ctxAt, row, col, err)
	}

	return m.data[off], nil
}

// Set overwrites m[row, col].
// Errors: ErrOutOfRange, ErrNaNInf.
func (m *Dense) Set(row, col int, v float64) error {
	off, err := m.indexOf(row, col)
	if err != nil {
		return denseErrorf(ctxSet, row, col, err)
	}
	if m.validateNaNInf && (math.IsNaN(v) || math.IsInf(v, 0)) {
		return denseErrorf(ctxSet, row, col, ErrNaNInf)
	}
	m.data[off] = v

	return nil
}

// Clone returns a deep copy.
func (m *Dense) Clone() Matrix {
	return m.clone()
}

// CloneDense is Clone without the interface conversion.
func (m *Dense) CloneDense() *Dense {
	return m.clone()
}

func (m *Dense) clone() *Dense {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)

	return &Dense{
		r:              m.r,
		c:              m.c,
		data:           cp,
		validateNaNInf: m.validateNaNInf,
	}
}

// SetCol overwrites column j with x. len(x) must equal Rows().
func (m *Dense) SetCol(j int, x []float64) error {
	if j < 0 || j >= m.c {
		return denseErrorf(ctxCol, 0, j, ErrOutOfRange)
	}
	if len(x) != m.r {
		return denseErrorf(ctxCol, 0, j, ErrDimensionMismatch)
	}
	for i, v := range x {
		if m.validateNaNInf && (math.IsNaN(v) || math.IsInf(v, 0)) {
			return denseErrorf(ctxCol, i, j, ErrNaNInf)
		}
		m.data[i*m.c+j] = v
	}

	return nil
}

// RowSumOver returns sum_{j in cols} m[i,j]. Out-of-range columns are skipped;
// an out-of-range row yields 0. Used for "by process" result sums where the
// column set comes from an index and is valid by construction.
// Complexity: O(len(cols)).
func (m *Dense) RowSumOver(i int, cols []int) float64 {
	if i < 0 || i >= m.r {
		return 0
	}
	sum := ZeroSum
	base := i * m.c
	for _, j := range cols {
		if j < 0 || j >= m.c {
			continue
		}
		sum += m.data[base+j]
	}

	return sum
}

// RawRowMajor returns a copy of the backing buffer in row-major order.
func (m *Dense) RawRowMajor() []float64 {
	out := make([]float64, len(m.data))
	copy(out, m.data)

	return out
}

// String prints one bracketed row per line, for test failures and debug logs.
func (m *Dense) String() string {
	var b strings.Builder
	var i, j, base int
	for i = 0; i < m.r; i++ {
		b.WriteString(_fmtRowOpen)
		base = i * m.c
		for j = 0; j < m.c; j++ {
			b.WriteString(fmt.Sprintf("%g", m.data[base+j]))
			if j+1 < m.c {
				b.WriteString(_fmtSep)
			}
		}
		b.WriteString(_fmtRowClose)
	}

	return b.String()
}
