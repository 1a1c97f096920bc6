package inventory_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lcamatrix/index"
	"github.com/katalvlaran/lcamatrix/inventory"
)

func TestBuildSingleProcess(t *testing.T) {
	src := source{1: proc(1, 10, output(10, 2), emission(100, 3), resource(101, 4))}

	inv, err := inventory.Build(src, system(1, 10))
	require.NoError(t, err)
	require.False(t, inv.IsEmpty())
	require.Equal(t, 1, inv.TechIndex().Size())
	require.Equal(t, 2, inv.FlowIndex().Size())

	pp := index.Of(1, 10)
	require.Equal(t, 2.0, tech(t, inv, pp, pp))
	require.Equal(t, 3.0, elem(t, inv, 100, pp))
	require.Equal(t, -4.0, elem(t, inv, 101, pp))
	require.Equal(t, []float64{1}, inv.Demand())
	require.Empty(t, inv.Gaps())
}

func TestReferenceAmountOnDiagonal(t *testing.T) {
	for _, amount := range []float64{1, 0.5, 2, 1000, -3} {
		src := source{1: proc(1, 10, output(10, amount))}
		inv, err := inventory.Build(src, system(1, 10))
		require.NoError(t, err)
		pp := index.Of(1, 10)
		require.Equal(t, amount, tech(t, inv, pp, pp))
	}
}

func TestTargetAmount(t *testing.T) {
	src := source{1: proc(1, 10, output(10, 1))}
	sys := system(1, 10)
	sys.TargetAmount = 42

	inv, err := inventory.Build(src, sys)
	require.NoError(t, err)
	require.Equal(t, []float64{42}, inv.Demand())
}

func TestSignConventions(t *testing.T) {
	src := source{
		1: proc(1, 10,
			output(10, 1),
			inventory.Exchange{FlowID: 20, FlowType: inventory.FlowWaste, Amount: 0.5},
			inventory.Exchange{FlowID: 30, FlowType: inventory.FlowProduct, Amount: 0.2, Avoided: true},
		),
		2: proc(2, 20, inventory.Exchange{FlowID: 20, FlowType: inventory.FlowWaste, Amount: 1, Input: true}),
		3: proc(3, 30, output(30, 1)),
	}

	inv, err := inventory.Build(src, system(1, 10, link(2, 20, 1), link(3, 30, 1)))
	require.NoError(t, err)

	ref, treatment, avoided := index.Of(1, 10), index.Of(2, 20), index.Of(3, 30)
	require.Equal(t, []index.ProcessProduct{ref, treatment, avoided}, inv.TechIndex().Pairs())
	require.Equal(t, 1.0, tech(t, inv, ref, ref))
	require.Equal(t, -0.5, tech(t, inv, treatment, ref), "waste output is a demand")
	require.Equal(t, 1.0, tech(t, inv, treatment, treatment), "waste input is the treatment's product")
	require.Equal(t, 0.2, tech(t, inv, avoided, ref), "avoided product is a credited demand")
}

func TestDuplicateLinksAccumulate(t *testing.T) {
	src := source{
		1: proc(1, 10, output(10, 1), input(20, 1), input(20, 2)),
		2: proc(2, 20, output(20, 1)),
	}

	inv, err := inventory.Build(src, system(1, 10, link(2, 20, 1), link(2, 20, 1)))
	require.NoError(t, err)
	require.Equal(t, 2, inv.TechIndex().Size())
	require.Equal(t, -3.0, tech(t, inv, index.Of(2, 20), index.Of(1, 10)))
}

func TestCyclesArePermitted(t *testing.T) {
	src := source{
		1: proc(1, 10, output(10, 1), input(20, 0.5)),
		2: proc(2, 20, output(20, 1), input(10, 0.2)),
	}

	inv, err := inventory.Build(src, system(1, 10, link(2, 20, 1), link(1, 10, 2)))
	require.NoError(t, err)

	a, b := index.Of(1, 10), index.Of(2, 20)
	require.Equal(t, 2, inv.TechIndex().Size())
	require.Equal(t, -0.5, tech(t, inv, b, a))
	require.Equal(t, -0.2, tech(t, inv, a, b))
}

func TestSelfLoop(t *testing.T) {
	src := source{1: proc(1, 10, output(10, 1), input(10, 0.1))}

	inv, err := inventory.Build(src, system(1, 10, link(1, 10, 1)))
	require.NoError(t, err)
	pp := index.Of(1, 10)
	require.InDelta(t, 0.9, tech(t, inv, pp, pp), 1e-12)
}

func TestBreadthFirstColumnOrder(t *testing.T) {
	// 1 -> {2, 3}, 2 -> 4, 3 -> 4
	src := source{
		1: proc(1, 10, output(10, 1), input(20, 1), input(30, 1)),
		2: proc(2, 20, output(20, 1), input(40, 1)),
		3: proc(3, 30, output(30, 1), input(40, 1)),
		4: proc(4, 40, output(40, 1)),
	}
	sys := system(1, 10, link(2, 20, 1), link(3, 30, 1), link(4, 40, 2), link(4, 40, 3))

	for run := 0; run < 5; run++ {
		inv, err := inventory.Build(src, sys)
		require.NoError(t, err)
		require.Equal(t, []index.ProcessProduct{
			index.Of(1, 10), index.Of(2, 20), index.Of(3, 30), index.Of(4, 40),
		}, inv.TechIndex().Pairs())
	}
}

func TestUnreachableProcessesAreIgnored(t *testing.T) {
	src := source{
		1: proc(1, 10, output(10, 1)),
		2: proc(2, 20, output(20, 1), emission(100, 1)),
	}

	inv, err := inventory.Build(src, system(1, 10, link(2, 20, 3)))
	require.NoError(t, err)
	require.Equal(t, 1, inv.TechIndex().Size())
	require.True(t, inv.FlowIndex().IsEmpty())
	require.Equal(t, 0, inv.Interventions().Rows())
}

func TestDefaultProviderSelection(t *testing.T) {
	in := input(20, 1)
	in.DefaultProviderID = 3
	src := source{
		1: proc(1, 10, output(10, 1), in),
		2: proc(2, 20, output(20, 1)),
		3: proc(3, 20, output(20, 1)),
	}

	inv, err := inventory.Build(src, system(1, 10, link(2, 20, 1), link(3, 20, 1)))
	require.NoError(t, err)
	require.True(t, inv.TechIndex().Contains(index.Of(3, 20)))
	require.False(t, inv.TechIndex().Contains(index.Of(2, 20)))
}

func TestGapDiagnostics(t *testing.T) {
	src := source{1: proc(1, 10, output(10, 1), input(20, 2), emission(100, 1))}

	inv, err := inventory.Build(src, system(1, 10))
	require.NoError(t, err)
	require.Equal(t, 1, inv.TechIndex().Size())
	require.Equal(t, []inventory.Gap{{ProcessID: 1, FlowID: 20, Amount: -2, Reason: "no provider linked"}}, inv.Gaps())
	require.Equal(t, 1, inv.Technology().NonZeros())
}

func TestStrictLinking(t *testing.T) {
	src := source{1: proc(1, 10, output(10, 1), input(20, 2))}

	_, err := inventory.Build(src, system(1, 10), inventory.WithStrictLinking())
	require.ErrorIs(t, err, inventory.ErrUnlinkedExchange)

	var be *inventory.BuildError
	require.True(t, errors.As(err, &be))
	require.Equal(t, index.Of(1, 10), be.Key)
}

func TestZeroReferenceAmount(t *testing.T) {
	src := source{1: proc(1, 10, output(10, 0))}

	_, err := inventory.Build(src, system(1, 10))
	require.ErrorIs(t, err, inventory.ErrZeroReference)

	var be *inventory.BuildError
	require.ErrorAs(t, err, &be)
	require.Equal(t, index.Of(1, 10), be.Key)
}

func TestMissingProviderProduct(t *testing.T) {
	// the linked provider does not produce the demanded flow
	src := source{
		1: proc(1, 10, output(10, 1), input(20, 1)),
		2: proc(2, 30, output(30, 1)),
	}

	_, err := inventory.Build(src, system(1, 10, link(2, 20, 1)))
	require.ErrorIs(t, err, inventory.ErrZeroReference)

	var be *inventory.BuildError
	require.ErrorAs(t, err, &be)
	require.Equal(t, index.Of(2, 20), be.Key)
}

func TestUnknownProcess(t *testing.T) {
	src := source{1: proc(1, 10, output(10, 1), input(20, 1))}

	_, err := inventory.Build(src, system(1, 10, link(9, 20, 1)))
	require.ErrorIs(t, err, inventory.ErrUnknownProcess)
}

func TestUnknownFlowType(t *testing.T) {
	src := source{1: proc(1, 10, output(10, 1), inventory.Exchange{FlowID: 5, Amount: 1})}

	_, err := inventory.Build(src, system(1, 10))
	require.ErrorIs(t, err, inventory.ErrUnknownFlowType)
}

func TestInvalidSystem(t *testing.T) {
	src := source{}
	_, err := inventory.Build(src, nil)
	require.ErrorIs(t, err, inventory.ErrInvalidSystem)

	_, err = inventory.Build(nil, system(1, 10))
	require.ErrorIs(t, err, inventory.ErrInvalidSystem)

	_, err = inventory.Build(src, &inventory.ProductSystem{})
	require.ErrorIs(t, err, inventory.ErrInvalidSystem)
}

func TestReferenceFlowDefaultsToQuantitativeReference(t *testing.T) {
	src := source{
		1: proc(1, 10, output(10, 2), input(20, 1)),
		2: proc(2, 20, output(20, 1)),
		3: proc(3, 0, output(30, 1)),
	}
	sys := system(1, 0, link(2, 20, 1))

	inv, err := inventory.Build(src, sys)
	require.NoError(t, err)
	require.Equal(t, index.Of(1, 10), inv.TechIndex().KeyAt(inventory.ReferenceColumn))
	require.Equal(t, 2.0, tech(t, inv, index.Of(1, 10), index.Of(1, 10)))
	require.Equal(t, []float64{1, 0}, inv.Demand())
	require.Equal(t, 0, inv.FlowIndex().Size())
	require.False(t, inv.IsEmpty(), "no elementary flows is still a solvable inventory")

	_, err = inventory.Build(src, system(3, 0))
	require.ErrorIs(t, err, inventory.ErrInvalidSystem)

	_, err = inventory.Build(src, system(9, 0))
	require.ErrorIs(t, err, inventory.ErrUnknownProcess)
}

func TestOptionViolation(t *testing.T) {
	src := source{1: proc(1, 10, output(10, 1))}

	_, err := inventory.Build(src, system(1, 10), inventory.WithEpsilon(-1))
	require.ErrorIs(t, err, inventory.ErrOptionViolation)

	_, err = inventory.Build(src, system(1, 10), inventory.WithAllocation(inventory.AllocationMethod(99)))
	require.ErrorIs(t, err, inventory.ErrOptionViolation)
}

func TestDemandFor(t *testing.T) {
	src := source{
		1: proc(1, 10, output(10, 1), input(20, 1)),
		2: proc(2, 20, output(20, 1)),
	}
	inv, err := inventory.Build(src, system(1, 10, link(2, 20, 1)))
	require.NoError(t, err)

	f, err := inv.DemandFor(map[index.ProcessProduct]float64{index.Of(2, 20): 3})
	require.NoError(t, err)
	require.Equal(t, []float64{0, 3}, f)

	_, err = inv.DemandFor(map[index.ProcessProduct]float64{index.Of(7, 7): 1})
	require.ErrorIs(t, err, inventory.ErrUnknownProduct)
}

func TestAccessorsReturnCopies(t *testing.T) {
	src := source{1: proc(1, 10, output(10, 1), input(20, 1))}
	inv, err := inventory.Build(src, system(1, 10))
	require.NoError(t, err)

	d := inv.Demand()
	d[0] = 99
	require.Equal(t, 1.0, inv.Demand()[0])

	g := inv.Gaps()
	g[0].Amount = 99
	require.Equal(t, -1.0, inv.Gaps()[0].Amount)
}

func TestNilInventoryIsEmpty(t *testing.T) {
	var inv *inventory.Inventory
	require.True(t, inv.IsEmpty())
}
