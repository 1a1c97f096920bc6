package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lcamatrix/index"
	"github.com/katalvlaran/lcamatrix/inventory"
)

// source is an in-memory ProcessSource.
type source map[int64]*inventory.Process

func (s source) Process(id int64) (*inventory.Process, bool) {
	p, ok := s[id]
	return p, ok
}

func output(flow int64, amount float64) inventory.Exchange {
	return inventory.Exchange{FlowID: flow, FlowType: inventory.FlowProduct, Amount: amount}
}

func input(flow int64, amount float64) inventory.Exchange {
	return inventory.Exchange{FlowID: flow, FlowType: inventory.FlowProduct, Amount: amount, Input: true}
}

func emission(flow int64, amount float64) inventory.Exchange {
	return inventory.Exchange{FlowID: flow, FlowType: inventory.FlowElementary, Amount: amount}
}

func resource(flow int64, amount float64) inventory.Exchange {
	return inventory.Exchange{FlowID: flow, FlowType: inventory.FlowElementary, Amount: amount, Input: true}
}

func proc(id, ref int64, exchanges ...inventory.Exchange) *inventory.Process {
	return &inventory.Process{ID: id, QuantitativeReference: ref, Exchanges: exchanges}
}

func system(refProcess, refFlow int64, links ...inventory.Link) *inventory.ProductSystem {
	return &inventory.ProductSystem{ID: 1, ReferenceProcessID: refProcess, ReferenceFlowID: refFlow, Links: links}
}

func link(provider, flow, consumer int64) inventory.Link {
	return inventory.Link{ProviderID: provider, FlowID: flow, ProcessID: consumer}
}

// tech reads A at the given process-products.
func tech(t *testing.T, inv *inventory.Inventory, row, col index.ProcessProduct) float64 {
	t.Helper()
	i, j := inv.TechIndex().IndexOf(row), inv.TechIndex().IndexOf(col)
	require.NotEqual(t, index.NotFound, i, "row %s", row)
	require.NotEqual(t, index.NotFound, j, "col %s", col)
	v, err := inv.Technology().At(i, j)
	require.NoError(t, err)
	return v
}

// elem reads B at (flow, process-product).
func elem(t *testing.T, inv *inventory.Inventory, flow int64, col index.ProcessProduct) float64 {
	t.Helper()
	i, j := inv.FlowIndex().IndexOf(flow), inv.TechIndex().IndexOf(col)
	require.NotEqual(t, index.NotFound, i, "flow %d", flow)
	require.NotEqual(t, index.NotFound, j, "col %s", col)
	v, err := inv.Interventions().At(i, j)
	require.NoError(t, err)
	return v
}
