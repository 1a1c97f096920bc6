// SPDX-License-Identifier: MIT

// Package inventory - reachability walk over process links.
//
// The walk is a plain breadth-first traversal seeded with the reference
// process-product. The technology index doubles as the visited set: a
// process-product is enqueued exactly when it receives its column, so
// columns are numbered in discovery order and loops terminate.

package inventory

import (
	"github.com/katalvlaran/lcamatrix/index"
)

// linkKey addresses the demanded side of a link.
type linkKey struct{ process, flow int64 }

// linkTable maps (consumer process, flow) to candidate providers in link order.
type linkTable map[linkKey][]int64

func newLinkTable(links []Link) linkTable {
	t := make(linkTable, len(links))
	for _, l := range links {
		k := linkKey{l.ProcessID, l.FlowID}
		dup := false
		for _, p := range t[k] {
			if p == l.ProviderID {
				dup = true
				break
			}
		}
		if !dup {
			t[k] = append(t[k], l.ProviderID)
		}
	}

	return t
}

// provider picks the provider for a demanded exchange of process: the
// exchange's default provider when it is among the links, else the first link.
func (t linkTable) provider(process int64, e Exchange) (int64, bool) {
	candidates := t[linkKey{process, e.FlowID}]
	if len(candidates) == 0 {
		return 0, false
	}
	if e.DefaultProviderID != 0 {
		for _, p := range candidates {
			if p == e.DefaultProviderID {
				return p, true
			}
		}
	}

	return candidates[0], true
}

// walker holds the queue and the lookups of one reachability pass.
type walker struct {
	src   *processCache
	links linkTable
	index *index.PairIndex
	queue []index.ProcessProduct
}

// walk numbers every process-product reachable from start.
func (w *walker) walk(start index.ProcessProduct) error {
	w.enqueue(start)
	for len(w.queue) > 0 {
		pp := w.queue[0]
		w.queue = w.queue[1:]
		if err := w.enqueueProviders(pp); err != nil {
			return err
		}
	}

	return nil
}

func (w *walker) enqueue(pp index.ProcessProduct) {
	w.index.Put(pp)
	w.queue = append(w.queue, pp)
}

// enqueueProviders visits the demanded exchanges of pp's process and
// enqueues each linked provider that has no column yet.
func (w *walker) enqueueProviders(pp index.ProcessProduct) error {
	p, err := w.src.get(pp)
	if err != nil {
		return err
	}
	for _, e := range p.Exchanges {
		kind, _, err := classify(e)
		if err != nil {
			return buildErrorf(pp, err, "flow %d", e.FlowID)
		}
		if kind != kindDemand {
			continue
		}
		providerID, ok := w.links.provider(p.ID, e)
		if !ok {
			continue // reported as a gap while filling
		}
		next := index.Of(providerID, e.FlowID)
		if !w.index.Contains(next) {
			w.enqueue(next)
		}
	}

	return nil
}

// processCache memoizes source lookups for one build.
type processCache struct {
	src  ProcessSource
	byID map[int64]*Process
}

func newProcessCache(src ProcessSource) *processCache {
	return &processCache{src: src, byID: make(map[int64]*Process)}
}

func (c *processCache) get(pp index.ProcessProduct) (*Process, error) {
	if p, ok := c.byID[pp.ProcessID]; ok {
		return p, nil
	}
	p, ok := c.src.Process(pp.ProcessID)
	if !ok || p == nil {
		return nil, buildErrorf(pp, ErrUnknownProcess, "process %d", pp.ProcessID)
	}
	c.byID[pp.ProcessID] = p

	return p, nil
}
