package provider_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lcamatrix/impact"
	"github.com/katalvlaran/lcamatrix/index"
	"github.com/katalvlaran/lcamatrix/inventory"
	"github.com/katalvlaran/lcamatrix/provider"
)

func TestLoadFile(t *testing.T) {
	s, err := provider.LoadFile(filepath.Join("testdata", "snapshot.yaml"))
	require.NoError(t, err)
	require.Len(t, s.Processes, 3)
	require.Equal(t, []int64{1}, s.SystemIDs())

	p, ok := s.Process(1)
	require.True(t, ok)
	require.Equal(t, "steel production", p.Name)
	require.Equal(t, int64(10), p.QuantitativeReference)
	require.Equal(t, inventory.Exchange{FlowID: 20, FlowType: inventory.FlowProduct, Amount: 2, Input: true, DefaultProviderID: 2}, p.Exchanges[1])
	require.Equal(t, inventory.FlowWaste, p.Exchanges[2].FlowType)

	sys, ok := s.System(1)
	require.True(t, ok)
	require.Equal(t, 1000.0, sys.TargetAmount)
	require.Len(t, sys.Links, 2)

	m, ok := s.Method("gwp")
	require.True(t, ok)
	require.Equal(t, []impact.Factor{{CategoryID: 7, FlowID: 100, Value: 1}, {CategoryID: 7, FlowID: 102, Value: 25}}, m.Factors)

	_, ok = s.Method("odp")
	require.False(t, ok)
	_, ok = s.Process(9)
	require.False(t, ok)
}

func TestSnapshotFeedsBuilder(t *testing.T) {
	s, err := provider.LoadFile(filepath.Join("testdata", "snapshot.yaml"))
	require.NoError(t, err)
	sys, _ := s.System(1)

	inv, err := inventory.Build(s, sys)
	require.NoError(t, err)
	require.Equal(t, []index.ProcessProduct{index.Of(1, 10), index.Of(2, 20), index.Of(3, 30)}, inv.TechIndex().Pairs())
	require.Equal(t, []int64{100, 101, 102}, inv.FlowIndex().Keys())
	require.Equal(t, []float64{1000, 0, 0}, inv.Demand())
}

func TestLoadYAMLErrors(t *testing.T) {
	cases := map[string]string{
		"malformed":     "processes: [",
		"unknown field": "processez: []",
		"flow type":     "processes:\n  - id: 1\n    exchanges:\n      - {flow: 1, type: energy}\n",
		"allocation":    "processes:\n  - id: 1\n    allocation: mass\n",
		"factor method": "processes:\n  - id: 1\n    factors:\n      - {method: mass, product: 1, value: 1}\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := provider.LoadYAML(strings.NewReader(doc))
			require.ErrorIs(t, err, provider.ErrDecode)
		})
	}

	_, err := provider.LoadYAML(strings.NewReader("processes:\n  - id: 1\n  - id: 1\n"))
	require.ErrorIs(t, err, provider.ErrDuplicate)

	_, err = provider.LoadYAML(strings.NewReader("systems:\n  - name: no id\n"))
	require.ErrorIs(t, err, provider.ErrInvalid)

	_, err = provider.LoadFile(filepath.Join("testdata", "missing.yaml"))
	require.Error(t, err)
}

func TestLoadEmptyDocument(t *testing.T) {
	s, err := provider.LoadYAML(strings.NewReader(""))
	require.NoError(t, err)
	require.Empty(t, s.Processes)
}

func TestAddValidation(t *testing.T) {
	s := provider.NewSnapshot()
	require.ErrorIs(t, s.AddProcess(nil), provider.ErrInvalid)
	require.ErrorIs(t, s.AddSystem(&inventory.ProductSystem{}), provider.ErrInvalid)
	require.ErrorIs(t, s.AddMethod(&impact.Table{}), provider.ErrInvalid)

	require.NoError(t, s.AddMethod(&impact.Table{Name: "gwp"}))
	require.ErrorIs(t, s.AddMethod(&impact.Table{Name: "gwp"}), provider.ErrDuplicate)
	require.NoError(t, s.AddSystem(&inventory.ProductSystem{ID: 2}))
	require.ErrorIs(t, s.AddSystem(&inventory.ProductSystem{ID: 2}), provider.ErrDuplicate)
}
