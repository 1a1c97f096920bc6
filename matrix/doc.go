// Package matrix provides the numeric containers of the inventory engine.
//
// The matrix package provides:
//
//   - Dense, a row-major matrix with error-returning accessors, used for
//     dense result containers (upstream and single contribution matrices).
//   - Sparse, an accumulating hash-based matrix used while building the
//     technology, intervention and characterization matrices.
//   - Triplets, the flat (row, column, value) form handed across the solver
//     boundary.
//   - Kernels that mix the two: MatVec, Mul, ScaleColumns.
//
// Sparse is the natural shape of inventory data: a product system with
// thousands of process-products has only a handful of exchanges per column.
// Dense is only materialized for results that are dense by nature.
//
// See the examples in this package for usage patterns.
package matrix
