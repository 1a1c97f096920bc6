// SPDX-License-Identifier: MIT

// Package contribution computes relative shares of sibling result values,
// e.g. the contribution of every process to one flow, for display.
//
// The reference value of a group is max(|max amount|, |min amount|); each
// share is amount/reference, or 0 when the reference is 0. Shares therefore
// lie in [-1, 1] and the largest absolute amount has |share| == 1.
package contribution

import (
	"math"
	"sort"

	"github.com/katalvlaran/lcamatrix/index"
	"github.com/katalvlaran/lcamatrix/results"
)

// Contribution is one item of a sibling group with its amount and share.
type Contribution[T any] struct {
	Item   T
	Amount float64
	Share  float64
}

// RefValue returns max(|max|, |min|) of amounts, 0 for an empty group.
func RefValue(amounts []float64) float64 {
	if len(amounts) == 0 {
		return 0
	}
	lo, hi := amounts[0], amounts[0]
	for _, a := range amounts[1:] {
		lo = math.Min(lo, a)
		hi = math.Max(hi, a)
	}

	return math.Max(math.Abs(hi), math.Abs(lo))
}

// CalculateShares sets Share on every item. Amounts are not modified; an
// empty group is a no-op. Nil entries are skipped.
func CalculateShares[T any](items []*Contribution[T]) {
	if len(items) == 0 {
		return
	}
	amounts := make([]float64, 0, len(items))
	for _, c := range items {
		if c != nil {
			amounts = append(amounts, c.Amount)
		}
	}
	ref := RefValue(amounts)
	for _, c := range items {
		if c == nil {
			continue
		}
		if ref == 0 {
			c.Share = 0
			continue
		}
		c.Share = c.Amount / ref
	}
}

// Sort orders items by descending absolute amount; ties keep their order.
// Nil entries are skipped like in CalculateShares and end up last.
func Sort[T any](items []*Contribution[T]) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a == nil || b == nil {
			return a != nil && b == nil
		}
		return math.Abs(a.Amount) > math.Abs(b.Amount)
	})
}

// processes lists the process ids of idx in first-column order.
func processes(idx *index.PairIndex) []int64 {
	var out []int64
	seen := make(map[int64]bool)
	for _, pp := range idx.Pairs() {
		if !seen[pp.ProcessID] {
			seen[pp.ProcessID] = true
			out = append(out, pp.ProcessID)
		}
	}

	return out
}

// ByProcess returns the direct contribution of every process to flowID,
// with shares calculated.
func ByProcess(r *results.ContributionResult, flowID int64) []*Contribution[int64] {
	ids := processes(r.ProductIndex())
	out := make([]*Contribution[int64], 0, len(ids))
	for _, id := range ids {
		out = append(out, &Contribution[int64]{Item: id, Amount: r.SingleFlowResultOfProcess(id, flowID)})
	}
	CalculateShares(out)

	return out
}

// ImpactByProcess returns the direct contribution of every process to an
// impact category, with shares calculated.
func ImpactByProcess(r *results.ContributionResult, categoryID int64) []*Contribution[int64] {
	ids := processes(r.ProductIndex())
	out := make([]*Contribution[int64], 0, len(ids))
	for _, id := range ids {
		out = append(out, &Contribution[int64]{Item: id, Amount: r.SingleImpactResultOfProcess(id, categoryID)})
	}
	CalculateShares(out)

	return out
}

// UpstreamByProduct returns the upstream result of every process-product for
// flowID, with shares calculated.
func UpstreamByProduct(r *results.FullResult, flowID int64) []*Contribution[index.ProcessProduct] {
	pairs := r.ProductIndex().Pairs()
	out := make([]*Contribution[index.ProcessProduct], 0, len(pairs))
	for _, pp := range pairs {
		out = append(out, &Contribution[index.ProcessProduct]{Item: pp, Amount: r.UpstreamFlowResult(pp, flowID)})
	}
	CalculateShares(out)

	return out
}
