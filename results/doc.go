// SPDX-License-Identifier: MIT

// Package results turns a solved inventory into flow, impact, direct and
// upstream results.
//
// An Engine moves through three states:
//
//	Empty --Solve--> Solved --Decompose--> Decomposed
//
// Solve computes the scaling vector s (A·s = f), total flow results
// g = B·s, total impact results h = C·g, and the direct contributions
// B·diag(s) and C·B·diag(s) of every process-product.
//
// Decompose additionally asks the solver for the columns of A⁻¹ and
// computes the upstream result of every process-product p: everything p
// and its supply subgraph cause to deliver the total requirement
// t[p] = s[p]·A[p,p] of p. In an acyclic system the reference column's
// upstream result equals the total result.
//
// Result values are immutable. Lookups by identifier resolve through the
// inventory's indexes; unknown identifiers read as exactly 0.
package results
