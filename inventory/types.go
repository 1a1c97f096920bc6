// SPDX-License-Identifier: MIT

// Package inventory: input model (processes, exchanges, links) consumed by the builder.
package inventory

import "fmt"

// FlowType classifies the flow of an exchange.
type FlowType uint8

const (
	// FlowUnknown is the zero value and is rejected by the builder.
	FlowUnknown FlowType = iota
	// FlowElementary marks exchanges with the environment (emissions, resources).
	FlowElementary
	// FlowProduct marks technical product flows between processes.
	FlowProduct
	// FlowWaste marks technical waste flows; the treatment process takes the
	// waste as input and is its provider.
	FlowWaste
)

// String implements fmt.Stringer.
func (t FlowType) String() string {
	switch t {
	case FlowElementary:
		return "elementary"
	case FlowProduct:
		return "product"
	case FlowWaste:
		return "waste"
	default:
		return fmt.Sprintf("FlowType(%d)", uint8(t))
	}
}

// AllocationMethod selects how shared exchanges of a multi-output process are split.
type AllocationMethod uint8

const (
	// AllocationUseDefault applies each process's own default method.
	AllocationUseDefault AllocationMethod = iota
	// AllocationNone disables allocation; multi-output processes become an error.
	AllocationNone
	// AllocationPhysical uses per-product physical factors.
	AllocationPhysical
	// AllocationEconomic uses per-product economic factors.
	AllocationEconomic
	// AllocationCausal uses per-product, per-exchange factors.
	AllocationCausal
)

// String implements fmt.Stringer.
func (m AllocationMethod) String() string {
	switch m {
	case AllocationUseDefault:
		return "use_default"
	case AllocationNone:
		return "none"
	case AllocationPhysical:
		return "physical"
	case AllocationEconomic:
		return "economic"
	case AllocationCausal:
		return "causal"
	default:
		return fmt.Sprintf("AllocationMethod(%d)", uint8(m))
	}
}

// ParseAllocationMethod maps the names returned by String back to methods.
func ParseAllocationMethod(s string) (AllocationMethod, error) {
	for m := AllocationUseDefault; m <= AllocationCausal; m++ {
		if m.String() == s {
			return m, nil
		}
	}

	return AllocationUseDefault, fmt.Errorf("inventory: unknown allocation method %q", s)
}

// Exchange is one input or output of a process. Amount is already evaluated
// (formulas and parameters are resolved by the data provider).
type Exchange struct {
	FlowID   int64
	FlowType FlowType
	Amount   float64
	Input    bool
	Avoided  bool

	// DefaultProviderID optionally selects among several links of the same
	// flow into the same process. Zero means no preference.
	DefaultProviderID int64
}

// AllocationFactor attributes a fraction of shared exchanges to one product.
// ExchangeFlowID is only set for causal factors.
type AllocationFactor struct {
	Method         AllocationMethod
	ProductID      int64 // flow id of the output the factor belongs to
	ExchangeFlowID int64 // causal only
	Value          float64
}

// Process is a unit process with its exchanges. QuantitativeReference is the
// flow id of the reference exchange.
type Process struct {
	ID                    int64
	Name                  string
	QuantitativeReference int64
	DefaultAllocation     AllocationMethod
	Exchanges             []Exchange
	AllocationFactors     []AllocationFactor
}

// Link connects a demanded flow of ProcessID to the provider process-product
// (ProviderID, FlowID).
type Link struct {
	ProviderID int64
	FlowID     int64
	ProcessID  int64
}

// ProductSystem anchors the calculation: the reference process-product, the
// demanded amount and the links of the graph. A zero TargetAmount means 1.
type ProductSystem struct {
	ID                 int64
	Name               string
	ReferenceProcessID int64
	ReferenceFlowID    int64
	TargetAmount       float64
	Links              []Link
}

// ProcessSource resolves process data by id from a read-only snapshot.
type ProcessSource interface {
	Process(id int64) (*Process, bool)
}

// Gap records a demanded exchange without a provider. The amount was left out
// of the technology matrix.
type Gap struct {
	ProcessID int64
	FlowID    int64
	Amount    float64
	Reason    string
}

// String renders the gap for logs.
func (g Gap) String() string {
	return fmt.Sprintf("process %d flow %d: %s", g.ProcessID, g.FlowID, g.Reason)
}

// exchangeKind is the once-per-exchange classification used while filling
// matrices, so the fill loop only switches on a small tag.
type exchangeKind uint8

const (
	kindElementary exchangeKind = iota
	kindSupply                  // product output or waste input: provides a column's product
	kindDemand                  // product input, waste output or any avoided flow: needs a provider
)

// classify resolves the kind and the signed amount of e.
func classify(e Exchange) (exchangeKind, float64, error) {
	switch e.FlowType {
	case FlowElementary:
		if e.Input {
			return kindElementary, -e.Amount, nil
		}
		return kindElementary, e.Amount, nil
	case FlowProduct, FlowWaste:
		supplies := !e.Input
		if e.FlowType == FlowWaste {
			supplies = e.Input
		}
		if e.Avoided {
			// credited: linked to a provider like a demand, sign inverted
			return kindDemand, e.Amount, nil
		}
		if supplies {
			return kindSupply, e.Amount, nil
		}
		return kindDemand, -e.Amount, nil
	default:
		return kindElementary, 0, ErrUnknownFlowType
	}
}
