// SPDX-License-Identifier: MIT

// Package index maps domain identifiers to dense, zero-based matrix positions.
//
// Two flavors are provided:
//
//   - LongIndex: single int64 keys (elementary flows, impact categories).
//   - PairIndex: composite ProcessProduct keys (technology columns).
//
// Positions are assigned in first-insertion order and never change once
// assigned. Re-inserting a key is a no-op. Positions always form the
// contiguous range 0..Size()-1.
//
// Lookups of unknown keys return NotFound instead of failing, so result
// accessors can resolve absent identifiers to zero without error handling.
//
// Complexity:
//
//   - Put, IndexOf, Contains: O(1) amortized (hash map forward lookup).
//   - KeyAt: O(1) (slice backward lookup).
//
// An index is not safe for concurrent mutation. Each calculation builds and
// owns its own indices and passes them explicitly to the result engine.
package index
