// SPDX-License-Identifier: MIT

// Package provider supplies process data, product systems and impact
// methods to a calculation as a read-only in-memory snapshot.
package provider

import (
	"errors"
	"fmt"
	"sort"

	"github.com/katalvlaran/lcamatrix/impact"
	"github.com/katalvlaran/lcamatrix/inventory"
)

var (
	// ErrDuplicate indicates an id or name added twice.
	ErrDuplicate = errors.New("provider: duplicate entry")

	// ErrInvalid indicates an entry that cannot be added (nil or zero id).
	ErrInvalid = errors.New("provider: invalid entry")

	// ErrDecode indicates a malformed snapshot document.
	ErrDecode = errors.New("provider: cannot decode snapshot")
)

// Provider is what a calculation needs from a data source.
type Provider interface {
	inventory.ProcessSource
	System(id int64) (*inventory.ProductSystem, bool)
	Method(name string) (*impact.Table, bool)
}

// Snapshot is an in-memory Provider. Populate it with the Add methods or a
// loader, then treat it as read-only; concurrent readers need no locking.
type Snapshot struct {
	Processes map[int64]*inventory.Process
	Systems   map[int64]*inventory.ProductSystem
	Methods   map[string]*impact.Table
}

var _ Provider = (*Snapshot)(nil)

// NewSnapshot returns an empty snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Processes: make(map[int64]*inventory.Process),
		Systems:   make(map[int64]*inventory.ProductSystem),
		Methods:   make(map[string]*impact.Table),
	}
}

// AddProcess stores p under p.ID.
func (s *Snapshot) AddProcess(p *inventory.Process) error {
	if p == nil || p.ID == 0 {
		return fmt.Errorf("%w: process without id", ErrInvalid)
	}
	if _, ok := s.Processes[p.ID]; ok {
		return fmt.Errorf("%w: process %d", ErrDuplicate, p.ID)
	}
	s.Processes[p.ID] = p

	return nil
}

// AddSystem stores sys under sys.ID.
func (s *Snapshot) AddSystem(sys *inventory.ProductSystem) error {
	if sys == nil || sys.ID == 0 {
		return fmt.Errorf("%w: product system without id", ErrInvalid)
	}
	if _, ok := s.Systems[sys.ID]; ok {
		return fmt.Errorf("%w: product system %d", ErrDuplicate, sys.ID)
	}
	s.Systems[sys.ID] = sys

	return nil
}

// AddMethod stores t under t.Name.
func (s *Snapshot) AddMethod(t *impact.Table) error {
	if t == nil || t.Name == "" {
		return fmt.Errorf("%w: method without name", ErrInvalid)
	}
	if _, ok := s.Methods[t.Name]; ok {
		return fmt.Errorf("%w: method %q", ErrDuplicate, t.Name)
	}
	s.Methods[t.Name] = t

	return nil
}

// Process implements inventory.ProcessSource.
func (s *Snapshot) Process(id int64) (*inventory.Process, bool) {
	p, ok := s.Processes[id]
	return p, ok
}

// System returns the product system with the given id.
func (s *Snapshot) System(id int64) (*inventory.ProductSystem, bool) {
	sys, ok := s.Systems[id]
	return sys, ok
}

// Method returns the impact method with the given name.
func (s *Snapshot) Method(name string) (*impact.Table, bool) {
	t, ok := s.Methods[name]
	return t, ok
}

// SystemIDs returns all product system ids in ascending order.
func (s *Snapshot) SystemIDs() []int64 {
	ids := make([]int64, 0, len(s.Systems))
	for id := range s.Systems {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return ids
}
