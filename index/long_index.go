// SPDX-License-Identifier: MIT

package index

// LongIndex maps int64 keys to positions 0..Size()-1 in insertion order.
type LongIndex struct {
	pos  map[int64]int // key → position
	keys []int64       // position → key
}

// NewLongIndex creates an empty index. sizeHint pre-sizes the storage and
// may be zero.
func NewLongIndex(sizeHint int) *LongIndex {
	if sizeHint < 0 {
		sizeHint = 0
	}

	return &LongIndex{
		pos:  make(map[int64]int, sizeHint),
		keys: make([]int64, 0, sizeHint),
	}
}

// LongIndexOf builds an index from keys in the given order; duplicates keep
// their first position.
func LongIndexOf(keys ...int64) *LongIndex {
	idx := NewLongIndex(len(keys))
	for _, k := range keys {
		idx.Put(k)
	}

	return idx
}

// Put assigns the next free position to key if it is new and returns the
// position of key either way.
func (x *LongIndex) Put(key int64) int {
	if p, ok := x.pos[key]; ok {
		return p
	}
	p := len(x.keys)
	x.pos[key] = p
	x.keys = append(x.keys, key)

	return p
}

// IndexOf returns the position of key or NotFound.
func (x *LongIndex) IndexOf(key int64) int {
	if x == nil {
		return NotFound
	}
	if p, ok := x.pos[key]; ok {
		return p
	}

	return NotFound
}

// Contains reports whether key has a position.
func (x *LongIndex) Contains(key int64) bool {
	return x.IndexOf(key) != NotFound
}

// KeyAt returns the key stored at position i, or 0 when i is out of range.
// Use KeyAtOK to distinguish a stored zero key from a miss.
func (x *LongIndex) KeyAt(i int) int64 {
	k, _ := x.KeyAtOK(i)

	return k
}

// KeyAtOK returns the key at position i and whether i is a valid position.
func (x *LongIndex) KeyAtOK(i int) (int64, bool) {
	if x == nil || i < 0 || i >= len(x.keys) {
		return 0, false
	}

	return x.keys[i], true
}

// Size returns the number of distinct keys ever inserted.
func (x *LongIndex) Size() int {
	if x == nil {
		return 0
	}

	return len(x.keys)
}

// IsEmpty reports whether no key was inserted yet.
func (x *LongIndex) IsEmpty() bool { return x.Size() == 0 }

// Keys returns a copy of all keys in position order.
func (x *LongIndex) Keys() []int64 {
	out := make([]int64, x.Size())
	if x != nil {
		copy(out, x.keys)
	}

	return out
}
