// SPDX-License-Identifier: MIT

package index

// PairIndex maps ProcessProduct keys to technology-matrix columns.
//
// Besides the forward and backward mapping it keeps, per process id, the list
// of columns that belong to the process. Result accessors "by process" sum
// over exactly these columns, so a multi-output process is resolved without
// scanning the whole index.
type PairIndex struct {
	pos       map[ProcessProduct]int
	pairs     []ProcessProduct
	byProcess map[int64][]int // process id → columns, ascending
}

// NewPairIndex creates an empty index; sizeHint may be zero.
func NewPairIndex(sizeHint int) *PairIndex {
	if sizeHint < 0 {
		sizeHint = 0
	}

	return &PairIndex{
		pos:       make(map[ProcessProduct]int, sizeHint),
		pairs:     make([]ProcessProduct, 0, sizeHint),
		byProcess: make(map[int64][]int),
	}
}

// Put assigns the next free column to pp if it is new and returns its column.
func (x *PairIndex) Put(pp ProcessProduct) int {
	if p, ok := x.pos[pp]; ok {
		return p
	}
	p := len(x.pairs)
	x.pos[pp] = p
	x.pairs = append(x.pairs, pp)
	// columns are handed out in increasing order, so append keeps them sorted
	x.byProcess[pp.ProcessID] = append(x.byProcess[pp.ProcessID], p)

	return p
}

// IndexOf returns the column of pp or NotFound.
func (x *PairIndex) IndexOf(pp ProcessProduct) int {
	if x == nil {
		return NotFound
	}
	if p, ok := x.pos[pp]; ok {
		return p
	}

	return NotFound
}

// Contains reports whether pp has a column.
func (x *PairIndex) Contains(pp ProcessProduct) bool {
	return x.IndexOf(pp) != NotFound
}

// KeyAt returns the pair at column i; the zero pair when i is out of range.
func (x *PairIndex) KeyAt(i int) ProcessProduct {
	pp, _ := x.KeyAtOK(i)

	return pp
}

// KeyAtOK returns the pair at column i and whether i is valid.
func (x *PairIndex) KeyAtOK(i int) (ProcessProduct, bool) {
	if x == nil || i < 0 || i >= len(x.pairs) {
		return ProcessProduct{}, false
	}

	return x.pairs[i], true
}

// ColumnsOf returns a copy of the columns owned by processID, in ascending
// order. Unknown processes yield an empty slice.
func (x *PairIndex) ColumnsOf(processID int64) []int {
	if x == nil {
		return nil
	}
	cols := x.byProcess[processID]
	out := make([]int, len(cols))
	copy(out, cols)

	return out
}

// ContainsProcess reports whether any column belongs to processID.
func (x *PairIndex) ContainsProcess(processID int64) bool {
	if x == nil {
		return false
	}

	return len(x.byProcess[processID]) > 0
}

// Size returns the number of columns.
func (x *PairIndex) Size() int {
	if x == nil {
		return 0
	}

	return len(x.pairs)
}

// IsEmpty reports whether the index holds no column.
func (x *PairIndex) IsEmpty() bool { return x.Size() == 0 }

// Pairs returns a copy of all pairs in column order.
func (x *PairIndex) Pairs() []ProcessProduct {
	out := make([]ProcessProduct, x.Size())
	if x != nil {
		copy(out, x.pairs)
	}

	return out
}
