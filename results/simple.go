// SPDX-License-Identifier: MIT

package results

import (
	"github.com/katalvlaran/lcamatrix/index"
	"github.com/katalvlaran/lcamatrix/matrix"
)

// SimpleResult holds the scaling vector and the total flow and impact results.
type SimpleResult struct {
	techIndex   *index.PairIndex
	flowIndex   *index.LongIndex
	impactIndex *index.LongIndex

	scaling           []float64
	totalRequirements []float64
	totalFlows        []float64
	totalImpacts      []float64 // nil without characterization
}

func clone(v []float64) []float64 {
	out := make([]float64, len(v))
	copy(out, v)

	return out
}

// lookup reads v[i], 0 for misses.
func lookup(v []float64, i int) float64 {
	if i < 0 || i >= len(v) {
		return 0
	}

	return v[i]
}

// cell reads m[i,j], 0 for misses or a nil matrix.
func cell(m *matrix.Dense, i, j int) float64 {
	if m == nil || i == index.NotFound || j == index.NotFound {
		return 0
	}
	v, err := m.At(i, j)
	if err != nil {
		return 0
	}

	return v
}

// rowOverProcess sums row i of m over the columns of one process.
func rowOverProcess(m *matrix.Dense, techIndex *index.PairIndex, i int, processID int64) float64 {
	if m == nil || i == index.NotFound {
		return 0
	}

	return m.RowSumOver(i, techIndex.ColumnsOf(processID))
}

// ProductIndex returns the process-product column index.
func (r *SimpleResult) ProductIndex() *index.PairIndex { return r.techIndex }

// FlowIndex returns the elementary flow index.
func (r *SimpleResult) FlowIndex() *index.LongIndex { return r.flowIndex }

// ImpactIndex returns the impact category index; empty without characterization.
func (r *SimpleResult) ImpactIndex() *index.LongIndex {
	if r.impactIndex == nil {
		return index.NewLongIndex(0)
	}

	return r.impactIndex
}

// HasImpactResults reports whether impact results were computed.
func (r *SimpleResult) HasImpactResults() bool { return r.totalImpacts != nil }

// Scaling returns a copy of the scaling vector s.
func (r *SimpleResult) Scaling() []float64 { return clone(r.scaling) }

// ScalingFactor returns s at the column of pp.
func (r *SimpleResult) ScalingFactor(pp index.ProcessProduct) float64 {
	return lookup(r.scaling, r.techIndex.IndexOf(pp))
}

// TotalRequirements returns a copy of s[j]·A[j,j]: the amount of each
// process-product produced in the system.
func (r *SimpleResult) TotalRequirements() []float64 { return clone(r.totalRequirements) }

// TotalRequirement returns the total requirement of pp.
func (r *SimpleResult) TotalRequirement(pp index.ProcessProduct) float64 {
	return lookup(r.totalRequirements, r.techIndex.IndexOf(pp))
}

// TotalFlowResult returns the total result of an elementary flow.
func (r *SimpleResult) TotalFlowResult(flowID int64) float64 {
	return lookup(r.totalFlows, r.flowIndex.IndexOf(flowID))
}

// TotalFlowResults returns a copy of all total flow results in flow-index order.
func (r *SimpleResult) TotalFlowResults() []float64 { return clone(r.totalFlows) }

// TotalImpactResult returns the total result of an impact category.
func (r *SimpleResult) TotalImpactResult(categoryID int64) float64 {
	if r.totalImpacts == nil {
		return 0
	}

	return lookup(r.totalImpacts, r.impactIndex.IndexOf(categoryID))
}

// TotalImpactResults returns a copy of all impact results in category-index order.
func (r *SimpleResult) TotalImpactResults() []float64 { return clone(r.totalImpacts) }
