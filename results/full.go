// SPDX-License-Identifier: MIT

package results

import (
	"github.com/katalvlaran/lcamatrix/index"
	"github.com/katalvlaran/lcamatrix/matrix"
)

// FullResult adds upstream results: for each process-product, the result
// of the process and its whole supply subgraph.
type FullResult struct {
	*ContributionResult

	upstreamFlows   *matrix.Dense // flows × process-products
	upstreamImpacts *matrix.Dense // categories × process-products; nil without characterization
}

// UpstreamFlowResult returns the upstream result of pp for flowID.
func (r *FullResult) UpstreamFlowResult(pp index.ProcessProduct, flowID int64) float64 {
	return cell(r.upstreamFlows, r.flowIndex.IndexOf(flowID), r.techIndex.IndexOf(pp))
}

// UpstreamFlowResultOfProcess sums the upstream results over all columns of a process.
func (r *FullResult) UpstreamFlowResultOfProcess(processID, flowID int64) float64 {
	return rowOverProcess(r.upstreamFlows, r.techIndex, r.flowIndex.IndexOf(flowID), processID)
}

// UpstreamImpactResult returns the upstream impact result of pp for a category.
func (r *FullResult) UpstreamImpactResult(pp index.ProcessProduct, categoryID int64) float64 {
	return cell(r.upstreamImpacts, r.impactIndex.IndexOf(categoryID), r.techIndex.IndexOf(pp))
}

// UpstreamImpactResultOfProcess sums the upstream impact results over all columns of a process.
func (r *FullResult) UpstreamImpactResultOfProcess(processID, categoryID int64) float64 {
	return rowOverProcess(r.upstreamImpacts, r.techIndex, r.impactIndex.IndexOf(categoryID), processID)
}

// UpstreamFlowResults returns a copy of the upstream flow matrix.
func (r *FullResult) UpstreamFlowResults() *matrix.Dense { return r.upstreamFlows.CloneDense() }

// UpstreamImpactResults returns a copy of the upstream impact matrix, or nil
// without characterization.
func (r *FullResult) UpstreamImpactResults() *matrix.Dense {
	if r.upstreamImpacts == nil {
		return nil
	}

	return r.upstreamImpacts.CloneDense()
}
