// SPDX-License-Identifier: MIT

package results

import (
	"github.com/katalvlaran/lcamatrix/index"
	"github.com/katalvlaran/lcamatrix/matrix"
)

// ContributionResult adds the direct results of each process-product: what
// the process itself emits (or characterizes to) at its scaling factor,
// without its suppliers.
type ContributionResult struct {
	*SimpleResult

	singleFlows   *matrix.Dense // B·diag(s)
	singleImpacts *matrix.Dense // C·B·diag(s); nil without characterization
}

// SingleFlowResult returns the direct result of pp for flowID.
func (r *ContributionResult) SingleFlowResult(pp index.ProcessProduct, flowID int64) float64 {
	return cell(r.singleFlows, r.flowIndex.IndexOf(flowID), r.techIndex.IndexOf(pp))
}

// SingleFlowResultOfProcess sums the direct results of all columns of a process.
func (r *ContributionResult) SingleFlowResultOfProcess(processID, flowID int64) float64 {
	return rowOverProcess(r.singleFlows, r.techIndex, r.flowIndex.IndexOf(flowID), processID)
}

// SingleImpactResult returns the direct impact result of pp for a category.
func (r *ContributionResult) SingleImpactResult(pp index.ProcessProduct, categoryID int64) float64 {
	return cell(r.singleImpacts, r.impactIndex.IndexOf(categoryID), r.techIndex.IndexOf(pp))
}

// SingleImpactResultOfProcess sums the direct impact results of all columns of a process.
func (r *ContributionResult) SingleImpactResultOfProcess(processID, categoryID int64) float64 {
	return rowOverProcess(r.singleImpacts, r.techIndex, r.impactIndex.IndexOf(categoryID), processID)
}

// SingleFlowResults returns a copy of B·diag(s) (flows × process-products).
func (r *ContributionResult) SingleFlowResults() *matrix.Dense { return r.singleFlows.CloneDense() }

// SingleImpactResults returns a copy of C·B·diag(s), or nil without characterization.
func (r *ContributionResult) SingleImpactResults() *matrix.Dense {
	if r.singleImpacts == nil {
		return nil
	}

	return r.singleImpacts.CloneDense()
}
