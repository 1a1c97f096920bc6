// SPDX-License-Identifier: MIT

// Package impact holds characterization factors and turns them into the
// characterization matrix C (impact categories × elementary flows) aligned
// with an inventory's flow index.
package impact

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/lcamatrix/index"
	"github.com/katalvlaran/lcamatrix/matrix"
)

// ErrInvalidFactor indicates a non-finite characterization factor.
var ErrInvalidFactor = errors.New("impact: invalid characterization factor")

// Factor characterizes one elementary flow for one impact category.
type Factor struct {
	CategoryID int64
	FlowID     int64
	Value      float64
}

// Table is a named impact assessment method.
type Table struct {
	ID      int64
	Name    string
	Factors []Factor
}

// Categories returns the category index in first-appearance order.
func (t *Table) Categories() *index.LongIndex {
	idx := index.NewLongIndex(0)
	if t == nil {
		return idx
	}
	for _, f := range t.Factors {
		idx.Put(f.CategoryID)
	}

	return idx
}

// Matrix builds C for the given flow index. Factors of flows outside flows
// are ignored; repeated (category, flow) factors accumulate.
// Errors: ErrInvalidFactor for NaN or infinite values.
func (t *Table) Matrix(flows *index.LongIndex) (*index.LongIndex, *matrix.Sparse, error) {
	categories := t.Categories()
	c, err := matrix.NewSparse(categories.Size(), flows.Size())
	if err != nil {
		return nil, nil, err
	}
	if t == nil {
		return categories, c, nil
	}
	for _, f := range t.Factors {
		if math.IsNaN(f.Value) || math.IsInf(f.Value, 0) {
			return nil, nil, fmt.Errorf("%w: category %d flow %d", ErrInvalidFactor, f.CategoryID, f.FlowID)
		}
		col := flows.IndexOf(f.FlowID)
		if col == index.NotFound {
			continue
		}
		if err = c.Add(categories.IndexOf(f.CategoryID), col, f.Value); err != nil {
			return nil, nil, err
		}
	}

	return categories, c, nil
}
