// SPDX-License-Identifier: MIT

package provider

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lcamatrix/impact"
	"github.com/katalvlaran/lcamatrix/inventory"
)

// document is the YAML layout of a snapshot.
type document struct {
	Processes []processDoc `yaml:"processes"`
	Systems   []systemDoc  `yaml:"systems"`
	Methods   []methodDoc  `yaml:"methods"`
}

type processDoc struct {
	ID         int64         `yaml:"id"`
	Name       string        `yaml:"name"`
	Reference  int64         `yaml:"reference"`
	Allocation string        `yaml:"allocation"`
	Exchanges  []exchangeDoc `yaml:"exchanges"`
	Factors    []factorDoc   `yaml:"factors"`
}

type exchangeDoc struct {
	Flow     int64   `yaml:"flow"`
	Type     string  `yaml:"type"`
	Amount   float64 `yaml:"amount"`
	Input    bool    `yaml:"input"`
	Avoided  bool    `yaml:"avoided"`
	Provider int64   `yaml:"provider"`
}

type factorDoc struct {
	Method   string  `yaml:"method"`
	Product  int64   `yaml:"product"`
	Exchange int64   `yaml:"exchange"`
	Value    float64 `yaml:"value"`
}

type systemDoc struct {
	ID      int64     `yaml:"id"`
	Name    string    `yaml:"name"`
	Process int64     `yaml:"process"`
	Flow    int64     `yaml:"flow"`
	Amount  float64   `yaml:"amount"`
	Links   []linkDoc `yaml:"links"`
}

type linkDoc struct {
	Provider int64 `yaml:"provider"`
	Flow     int64 `yaml:"flow"`
	Process  int64 `yaml:"process"`
}

type methodDoc struct {
	ID      int64             `yaml:"id"`
	Name    string            `yaml:"name"`
	Factors []impactFactorDoc `yaml:"factors"`
}

type impactFactorDoc struct {
	Category int64   `yaml:"category"`
	Flow     int64   `yaml:"flow"`
	Value    float64 `yaml:"value"`
}

func parseFlowType(s string) (inventory.FlowType, error) {
	switch s {
	case "elementary":
		return inventory.FlowElementary, nil
	case "product":
		return inventory.FlowProduct, nil
	case "waste":
		return inventory.FlowWaste, nil
	}

	return inventory.FlowUnknown, fmt.Errorf("%w: unknown flow type %q", ErrDecode, s)
}

func parseMethod(s string) (inventory.AllocationMethod, error) {
	if s == "" {
		return inventory.AllocationUseDefault, nil
	}
	m, err := inventory.ParseAllocationMethod(s)
	if err != nil {
		return m, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	return m, nil
}

func (d processDoc) toProcess() (*inventory.Process, error) {
	def, err := parseMethod(d.Allocation)
	if err != nil {
		return nil, fmt.Errorf("process %d: %w", d.ID, err)
	}
	p := &inventory.Process{
		ID:                    d.ID,
		Name:                  d.Name,
		QuantitativeReference: d.Reference,
		DefaultAllocation:     def,
		Exchanges:             make([]inventory.Exchange, 0, len(d.Exchanges)),
	}
	for _, e := range d.Exchanges {
		ft, err := parseFlowType(e.Type)
		if err != nil {
			return nil, fmt.Errorf("process %d flow %d: %w", d.ID, e.Flow, err)
		}
		p.Exchanges = append(p.Exchanges, inventory.Exchange{
			FlowID:            e.Flow,
			FlowType:          ft,
			Amount:            e.Amount,
			Input:             e.Input,
			Avoided:           e.Avoided,
			DefaultProviderID: e.Provider,
		})
	}
	for _, f := range d.Factors {
		m, err := parseMethod(f.Method)
		if err != nil {
			return nil, fmt.Errorf("process %d: %w", d.ID, err)
		}
		p.AllocationFactors = append(p.AllocationFactors, inventory.AllocationFactor{
			Method:         m,
			ProductID:      f.Product,
			ExchangeFlowID: f.Exchange,
			Value:          f.Value,
		})
	}

	return p, nil
}

func (d systemDoc) toSystem() *inventory.ProductSystem {
	sys := &inventory.ProductSystem{
		ID:                 d.ID,
		Name:               d.Name,
		ReferenceProcessID: d.Process,
		ReferenceFlowID:    d.Flow,
		TargetAmount:       d.Amount,
		Links:              make([]inventory.Link, 0, len(d.Links)),
	}
	for _, l := range d.Links {
		sys.Links = append(sys.Links, inventory.Link{ProviderID: l.Provider, FlowID: l.Flow, ProcessID: l.Process})
	}

	return sys
}

func (d methodDoc) toTable() *impact.Table {
	t := &impact.Table{ID: d.ID, Name: d.Name, Factors: make([]impact.Factor, 0, len(d.Factors))}
	for _, f := range d.Factors {
		t.Factors = append(t.Factors, impact.Factor{CategoryID: f.Category, FlowID: f.Flow, Value: f.Value})
	}

	return t
}

// LoadYAML decodes a snapshot document.
func LoadYAML(r io.Reader) (*Snapshot, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && err != io.EOF {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	s := NewSnapshot()
	for _, pd := range doc.Processes {
		p, err := pd.toProcess()
		if err != nil {
			return nil, err
		}
		if err = s.AddProcess(p); err != nil {
			return nil, err
		}
	}
	for _, sd := range doc.Systems {
		if err := s.AddSystem(sd.toSystem()); err != nil {
			return nil, err
		}
	}
	for _, md := range doc.Methods {
		if err := s.AddMethod(md.toTable()); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// LoadFile reads a snapshot document from path.
func LoadFile(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return LoadYAML(f)
}
