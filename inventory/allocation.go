// SPDX-License-Identifier: MIT

package inventory

import (
	"fmt"
	"math"
)

// causalKey addresses a causal factor: (product flow, exchange flow).
type causalKey struct{ product, exchange int64 }

// allocator resolves the fraction of a shared exchange attributed to one
// product of a process. Single-output processes get factor 1 for everything.
type allocator struct {
	method    AllocationMethod
	multi     bool
	byProduct map[int64]float64
	causal    map[causalKey]float64
}

// resolveMethod applies the override rules: an explicit method wins, then
// the process default, then none.
func resolveMethod(p *Process, override AllocationMethod) AllocationMethod {
	m := override
	if m == AllocationUseDefault {
		m = p.DefaultAllocation
	}
	if m == AllocationUseDefault {
		m = AllocationNone
	}

	return m
}

// suppliedProducts returns the distinct flow ids the process supplies, in
// exchange order.
func suppliedProducts(p *Process) []int64 {
	var out []int64
	seen := make(map[int64]bool)
	for _, e := range p.Exchanges {
		kind, _, err := classify(e)
		if err != nil || kind != kindSupply || seen[e.FlowID] {
			continue
		}
		seen[e.FlowID] = true
		out = append(out, e.FlowID)
	}

	return out
}

// newAllocator validates the factors of p for the resolved method.
func newAllocator(p *Process, override AllocationMethod, eps float64) (*allocator, error) {
	products := suppliedProducts(p)
	a := &allocator{method: resolveMethod(p, override), multi: len(products) > 1}
	if !a.multi {
		return a, nil
	}

	switch a.method {
	case AllocationNone:
		return nil, fmt.Errorf("%w: process %d has %d outputs and no allocation method",
			ErrAllocation, p.ID, len(products))

	case AllocationPhysical, AllocationEconomic:
		a.byProduct = make(map[int64]float64, len(products))
		for _, f := range p.AllocationFactors {
			if f.Method != a.method {
				continue
			}
			if err := checkFactor(p, f); err != nil {
				return nil, err
			}
			a.byProduct[f.ProductID] += f.Value
		}
		sum := 0.0
		for _, pid := range products {
			sum += a.byProduct[pid]
		}
		if math.Abs(sum-1) > eps {
			return nil, fmt.Errorf("%w: process %d %s factors sum to %v",
				ErrAllocation, p.ID, a.method, sum)
		}

	case AllocationCausal:
		a.causal = make(map[causalKey]float64)
		for _, f := range p.AllocationFactors {
			if f.Method != AllocationCausal {
				continue
			}
			if err := checkFactor(p, f); err != nil {
				return nil, err
			}
			a.causal[causalKey{f.ProductID, f.ExchangeFlowID}] += f.Value
		}
		for _, e := range p.Exchanges {
			kind, _, err := classify(e)
			if err != nil || kind == kindSupply {
				continue
			}
			sum := 0.0
			for _, pid := range products {
				sum += a.causal[causalKey{pid, e.FlowID}]
			}
			if math.Abs(sum-1) > eps {
				return nil, fmt.Errorf("%w: process %d causal factors of flow %d sum to %v",
					ErrAllocation, p.ID, e.FlowID, sum)
			}
		}

	default:
		return nil, fmt.Errorf("%w: process %d unknown method %s", ErrAllocation, p.ID, a.method)
	}

	return a, nil
}

func checkFactor(p *Process, f AllocationFactor) error {
	if math.IsNaN(f.Value) || f.Value < 0 || f.Value > 1 {
		return fmt.Errorf("%w: process %d factor for product %d is %v",
			ErrAllocation, p.ID, f.ProductID, f.Value)
	}

	return nil
}

// factor returns the share of exchange flow exchangeFlow attributed to product.
func (a *allocator) factor(product, exchangeFlow int64) float64 {
	if !a.multi {
		return 1
	}
	if a.method == AllocationCausal {
		return a.causal[causalKey{product, exchangeFlow}]
	}

	return a.byProduct[product]
}

// ValidateAllocation reports whether the factors of p resolve to usable
// fractions under method: every factor in [0,1] and, for multi-output
// processes, the factors of each shared exchange summing to 1 within eps.
// A non-positive eps selects DefaultEpsilon.
func ValidateAllocation(p *Process, method AllocationMethod, eps float64) error {
	if p == nil {
		return fmt.Errorf("%w: nil process", ErrAllocation)
	}
	if !(eps > 0) {
		eps = DefaultEpsilon
	}
	_, err := newAllocator(p, method, eps)

	return err
}
