// SPDX-License-Identifier: MIT

package inventory

import (
	"fmt"

	"github.com/katalvlaran/lcamatrix/index"
	"github.com/katalvlaran/lcamatrix/matrix"
)

// ReferenceColumn is the technology column of the reference process-product.
const ReferenceColumn = 0

// Inventory is the matrix form of a product system: technology matrix A
// (process-products × process-products), intervention matrix B
// (elementary flows × process-products), their indexes, the demand vector,
// and the gaps found while building. It is read-only after Build.
type Inventory struct {
	techIndex     *index.PairIndex
	flowIndex     *index.LongIndex
	technology    *matrix.Sparse
	interventions *matrix.Sparse
	demand        []float64
	gaps          []Gap
}

// TechIndex returns the process-product column index.
func (inv *Inventory) TechIndex() *index.PairIndex { return inv.techIndex }

// FlowIndex returns the elementary flow row index.
func (inv *Inventory) FlowIndex() *index.LongIndex { return inv.flowIndex }

// Technology returns A. Callers must not modify it.
func (inv *Inventory) Technology() *matrix.Sparse { return inv.technology }

// Interventions returns B. Callers must not modify it.
func (inv *Inventory) Interventions() *matrix.Sparse { return inv.interventions }

// Demand returns a copy of the final demand vector f: the target amount at
// ReferenceColumn, zero elsewhere.
func (inv *Inventory) Demand() []float64 {
	out := make([]float64, len(inv.demand))
	copy(out, inv.demand)

	return out
}

// Gaps returns a copy of the unlinked-exchange diagnostics.
func (inv *Inventory) Gaps() []Gap {
	out := make([]Gap, len(inv.gaps))
	copy(out, inv.gaps)

	return out
}

// IsEmpty reports whether the inventory has no technology columns. An
// inventory without elementary flows is not empty; it still has a scaling
// vector.
func (inv *Inventory) IsEmpty() bool {
	return inv == nil || inv.techIndex.IsEmpty()
}

// DemandFor builds a demand vector from weighted process-products. Use it to
// solve for combined demands instead of the system's reference.
func (inv *Inventory) DemandFor(weights map[index.ProcessProduct]float64) ([]float64, error) {
	f := make([]float64, inv.techIndex.Size())
	for pp, w := range weights {
		j := inv.techIndex.IndexOf(pp)
		if j == index.NotFound {
			return nil, fmt.Errorf("%w: %s", ErrUnknownProduct, pp)
		}
		f[j] += w
	}

	return f, nil
}
