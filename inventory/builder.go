// SPDX-License-Identifier: MIT

// Package inventory - matrix construction.
//
// MAIN DESCRIPTION:
//   - Build turns a product system into an Inventory in three stages.
//
// Implementation:
//   - Stage 1: validate options and the system anchor.
//   - Stage 2: reachability walk; assigns technology columns.
//   - Stage 3: fill A and B column by column in index order, applying
//     signs and allocation; unlinked demands become gaps.
//
// Complexity:
//   - Time O(P·E) for P process-products with E exchanges each; Space O(nnz).

package inventory

import (
	"fmt"

	"github.com/katalvlaran/lcamatrix/index"
	"github.com/katalvlaran/lcamatrix/matrix"
)

const reasonUnlinked = "no provider linked"

// Build constructs the inventory of system using processes from src.
// A zero ReferenceFlowID selects the reference process's quantitative
// reference.
//
// Errors:
//   - ErrOptionViolation for invalid options.
//   - ErrInvalidSystem for a nil source/system, a zero reference process,
//     or a zero reference flow with no quantitative reference to fall back on.
//   - *BuildError wrapping ErrUnknownProcess, ErrZeroReference, ErrAllocation,
//     ErrUnknownFlowType or (strict linking) ErrUnlinkedExchange.
func Build(src ProcessSource, system *ProductSystem, opts ...Option) (*Inventory, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if src == nil || system == nil {
		return nil, fmt.Errorf("%w: nil source or system", ErrInvalidSystem)
	}
	if system.ReferenceProcessID == 0 {
		return nil, fmt.Errorf("%w: system %d has no reference process", ErrInvalidSystem, system.ID)
	}
	cache := newProcessCache(src)
	refFlow := system.ReferenceFlowID
	if refFlow == 0 {
		p, err := cache.get(index.Of(system.ReferenceProcessID, 0))
		if err != nil {
			return nil, err
		}
		if refFlow = p.QuantitativeReference; refFlow == 0 {
			return nil, fmt.Errorf("%w: system %d: process %d has no quantitative reference",
				ErrInvalidSystem, system.ID, system.ReferenceProcessID)
		}
	}

	b := &builder{
		opts:       o,
		cache:      cache,
		links:      newLinkTable(system.Links),
		allocators: make(map[int64]*allocator),
		techIndex:  index.NewPairIndex(len(system.Links) + 1),
		flowIndex:  index.NewLongIndex(0),
		gapSeen:    make(map[linkKey]bool),
	}

	w := &walker{src: b.cache, links: b.links, index: b.techIndex}
	if err := w.walk(index.Of(system.ReferenceProcessID, refFlow)); err != nil {
		return nil, err
	}

	inv, err := b.fill()
	if err != nil {
		return nil, err
	}
	target := system.TargetAmount
	if target == 0 {
		target = 1
	}
	inv.demand[ReferenceColumn] = target

	o.Logger.Debug().
		Int64("system", system.ID).
		Int("columns", inv.techIndex.Size()).
		Int("flows", inv.flowIndex.Size()).
		Int("technologyNonZeros", inv.technology.NonZeros()).
		Int("gaps", len(inv.gaps)).
		Msg("inventory built")

	return inv, nil
}

type builder struct {
	opts       Options
	cache      *processCache
	links      linkTable
	allocators map[int64]*allocator
	techIndex  *index.PairIndex
	flowIndex  *index.LongIndex
	gapSeen    map[linkKey]bool
	gaps       []Gap
	elementary matrix.Triplets
}

func (b *builder) allocatorFor(pp index.ProcessProduct, p *Process) (*allocator, error) {
	if a, ok := b.allocators[p.ID]; ok {
		return a, nil
	}
	a, err := newAllocator(p, b.opts.Allocation, b.opts.Epsilon)
	if err != nil {
		return nil, &BuildError{Key: pp, Err: err}
	}
	b.allocators[p.ID] = a

	return a, nil
}

func (b *builder) fill() (*Inventory, error) {
	n := b.techIndex.Size()
	tech, err := matrix.NewSparse(n, n)
	if err != nil {
		return nil, err
	}
	for col := 0; col < n; col++ {
		if err = b.fillColumn(tech, col); err != nil {
			return nil, err
		}
	}

	b.elementary.Rows, b.elementary.Cols = b.flowIndex.Size(), n
	interventions, err := b.elementary.ToSparse()
	if err != nil {
		return nil, err
	}

	return &Inventory{
		techIndex:     b.techIndex,
		flowIndex:     b.flowIndex,
		technology:    tech,
		interventions: interventions,
		demand:        make([]float64, n),
		gaps:          b.gaps,
	}, nil
}

// fillColumn writes every exchange of the column's process into A or B.
// Co-products of a multi-output process are not written: their share of the
// process lives in their own column.
func (b *builder) fillColumn(tech *matrix.Sparse, col int) error {
	pp := b.techIndex.KeyAt(col)
	p, err := b.cache.get(pp)
	if err != nil {
		return err
	}
	alloc, err := b.allocatorFor(pp, p)
	if err != nil {
		return err
	}

	reference := 0.0
	for _, e := range p.Exchanges {
		kind, v, err := classify(e)
		if err != nil {
			return buildErrorf(pp, err, "flow %d", e.FlowID)
		}
		switch kind {
		case kindSupply:
			if e.FlowID != pp.FlowID {
				continue
			}
			reference += v
			if err = tech.Add(col, col, v); err != nil {
				return &BuildError{Key: pp, Err: err}
			}

		case kindDemand:
			v *= alloc.factor(pp.FlowID, e.FlowID)
			providerID, ok := b.links.provider(p.ID, e)
			if !ok {
				if err = b.gap(pp, p, e, v); err != nil {
					return err
				}
				continue
			}
			row := b.techIndex.IndexOf(index.Of(providerID, e.FlowID))
			if err = tech.Add(row, col, v); err != nil {
				return &BuildError{Key: pp, Err: err}
			}

		case kindElementary:
			v *= alloc.factor(pp.FlowID, e.FlowID)
			b.elementary.I = append(b.elementary.I, b.flowIndex.Put(e.FlowID))
			b.elementary.J = append(b.elementary.J, col)
			b.elementary.V = append(b.elementary.V, v)
		}
	}
	if reference == 0 {
		return buildErrorf(pp, ErrZeroReference, "process %d flow %d", pp.ProcessID, pp.FlowID)
	}

	return nil
}

// gap records an unlinked demand once per (process, flow), or fails under
// strict linking.
func (b *builder) gap(pp index.ProcessProduct, p *Process, e Exchange, amount float64) error {
	if b.opts.StrictLinking {
		return buildErrorf(pp, ErrUnlinkedExchange, "flow %d", e.FlowID)
	}
	k := linkKey{p.ID, e.FlowID}
	if b.gapSeen[k] {
		return nil
	}
	b.gapSeen[k] = true
	g := Gap{ProcessID: p.ID, FlowID: e.FlowID, Amount: amount, Reason: reasonUnlinked}
	b.gaps = append(b.gaps, g)
	b.opts.Logger.Warn().
		Int64("process", g.ProcessID).
		Int64("flow", g.FlowID).
		Float64("amount", g.Amount).
		Msg("technical exchange without provider excluded")

	return nil
}
